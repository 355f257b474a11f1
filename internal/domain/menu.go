package domain

const (
	CategoryFood  = "food"
	CategoryDrink = "drink"
)

// Menu is a catalog item scoped to a stall. Removal is always a soft
// delete via IsAvailable so historical order lines stay resolvable.
type Menu struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Photo       string  `json:"photo"`
	IsAvailable bool    `json:"is_available"`
	StallID     uint    `json:"stall_id"`
	StallName   string  `json:"stall_name,omitempty"`
}

package response

import (
	"github.com/hanifz/kantin-api/internal/domain"
	"github.com/hanifz/kantin-api/internal/service"
)

type OrderResponse struct {
	Order domain.Order `json:"order"`
	Total float64      `json:"total"`
}

func NewOrderResponse(order domain.Order) OrderResponse {
	return OrderResponse{
		Order: order,
		Total: order.Total(),
	}
}

type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
}

func NewOrderListResponse(orders []domain.Order) OrderListResponse {
	resp := OrderListResponse{Orders: make([]OrderResponse, len(orders))}
	for i, o := range orders {
		resp.Orders[i] = NewOrderResponse(o)
	}

	return resp
}

type StallHistoryResponse struct {
	Orders  []OrderResponse      `json:"orders"`
	Summary service.StallRevenue `json:"summary"`
}

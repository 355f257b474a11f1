package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Student{},
		&Staff{},
		&Stall{},
		&Menu{},
		&Discount{},
		&MenuDiscount{},
		&Order{},
		&OrderLine{},
	)
}

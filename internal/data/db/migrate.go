package db

import (
	"gorm.io/gorm"

	"github.com/calegray/commerce-backend/internal/domain"
)

// AutoMigrateAll creates the five-aggregate commerce schema. Order matters:
// parents before children so foreign keys resolve.
func AutoMigrateAll(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&domain.Customer{},
		&domain.Product{},
		&domain.Order{},
		&domain.OrderItem{},
		&domain.ShoppingCart{},
		&domain.CartItem{},
	)
}

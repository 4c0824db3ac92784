package testutil

import (
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/calegray/commerce-backend/internal/domain"
)

func SeedCustomer(tb testing.TB, tx *gorm.DB) *domain.Customer {
	tb.Helper()
	c, err := domain.NewCustomer("Test", "Customer", "1 Test St", "0000")
	if err != nil {
		tb.Fatalf("new customer: %v", err)
	}
	if err := tx.Create(c).Error; err != nil {
		tb.Fatalf("seed customer: %v", err)
	}
	return c
}

func SeedProduct(tb testing.TB, tx *gorm.DB, name, price string) *domain.Product {
	tb.Helper()
	p, err := domain.NewProduct(name, decimal.RequireFromString(price))
	if err != nil {
		tb.Fatalf("new product: %v", err)
	}
	if err := tx.Create(p).Error; err != nil {
		tb.Fatalf("seed product: %v", err)
	}
	return p
}

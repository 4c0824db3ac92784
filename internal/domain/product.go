package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const maxProductNameLen = 200

// Product is a sellable item. Its price is copied onto order/cart lines at
// add-time, so later price changes never touch existing lines.
type Product struct {
	ID    uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name  string          `gorm:"column:name;size:200;not null" json:"name"`
	Price decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null" json:"price"`
	SoftDelete
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Product) TableName() string { return "products" }

func NewProduct(name string, price decimal.Decimal) (*Product, error) {
	p := &Product{ID: uuid.New()}
	if err := p.UpdateDetails(name, price); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Product) UpdateDetails(name string, price decimal.Decimal) error {
	const op = "product.update_details"
	if strings.TrimSpace(name) == "" {
		return ValidationError(op, "name is required")
	}
	if len(name) > maxProductNameLen {
		return ValidationError(op, "name exceeds 200 characters")
	}
	if price.IsNegative() {
		return ValidationError(op, "price cannot be negative")
	}
	p.Name = name
	p.Price = price
	return nil
}

package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Customer is the aggregate root for a person record and its Orders.
// Entities are identity-compared: two customers are equal iff their IDs match.
type Customer struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName  string    `gorm:"column:first_name;not null" json:"first_name"`
	LastName   string    `gorm:"column:last_name;not null" json:"last_name"`
	Address    string    `gorm:"column:address;not null" json:"address"`
	PostalCode string    `gorm:"column:postal_code;not null" json:"postal_code"`
	SoftDelete
	Orders    []Order   `gorm:"foreignKey:CustomerID;references:ID;constraint:OnDelete:CASCADE" json:"orders,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Customer) TableName() string { return "customers" }

func NewCustomer(firstName, lastName, address, postalCode string) (*Customer, error) {
	c := &Customer{ID: uuid.New()}
	if err := c.UpdateDetails(firstName, lastName, address, postalCode); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateDetails validates every field before assigning any of them, so a
// failed update leaves the customer unchanged.
func (c *Customer) UpdateDetails(firstName, lastName, address, postalCode string) error {
	const op = "customer.update_details"
	if strings.TrimSpace(firstName) == "" {
		return ValidationError(op, "first name is required")
	}
	if strings.TrimSpace(lastName) == "" {
		return ValidationError(op, "last name is required")
	}
	if strings.TrimSpace(address) == "" {
		return ValidationError(op, "address is required")
	}
	if strings.TrimSpace(postalCode) == "" {
		return ValidationError(op, "postal code is required")
	}
	c.FirstName = firstName
	c.LastName = lastName
	c.Address = address
	c.PostalCode = postalCode
	return nil
}

// CreateOrder starts a new empty order owned by this customer.
func (c *Customer) CreateOrder() *Order {
	order := NewOrder(c.ID)
	c.Orders = append(c.Orders, *order)
	return order
}

package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/calegray/commerce-backend/internal/domain"
)

// Read models projected by the query handlers. These are response shapes
// only; no business logic ever runs on them.

type CustomerDTO struct {
	ID         uuid.UUID `json:"id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Address    string    `json:"address"`
	PostalCode string    `json:"postal_code"`
}

type CustomerDetailDTO struct {
	CustomerDTO
	Orders []OrderDTO `json:"orders"`
}

type ProductDTO struct {
	ID    uuid.UUID       `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type OrderDTO struct {
	ID         uuid.UUID       `json:"id"`
	CustomerID uuid.UUID       `json:"customer_id"`
	OrderDate  time.Time       `json:"order_date"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Items      []OrderItemDTO  `json:"items"`
}

type OrderItemDTO struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

type ShoppingCartDTO struct {
	ID               uuid.UUID       `json:"id"`
	CustomerID       uuid.UUID       `json:"customer_id"`
	CreatedDate      time.Time       `json:"created_date"`
	LastModifiedDate time.Time       `json:"last_modified_date"`
	TotalPrice       decimal.Decimal `json:"total_price"`
	ItemCount        int             `json:"item_count"`
	Items            []CartItemDTO   `json:"items"`
}

type CartItemDTO struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

func customerDTO(c *domain.Customer) CustomerDTO {
	return CustomerDTO{
		ID:         c.ID,
		FirstName:  c.FirstName,
		LastName:   c.LastName,
		Address:    c.Address,
		PostalCode: c.PostalCode,
	}
}

func productDTO(p *domain.Product) ProductDTO {
	return ProductDTO{ID: p.ID, Name: p.Name, Price: p.Price}
}

func orderDTO(o *domain.Order) OrderDTO {
	dto := OrderDTO{
		ID:         o.ID,
		CustomerID: o.CustomerID,
		OrderDate:  o.CreatedOnUTC,
		TotalPrice: o.TotalPrice,
		Items:      make([]OrderItemDTO, 0, len(o.Items)),
	}
	for idx := range o.Items {
		it := o.Items[idx]
		name := ""
		if it.Product != nil {
			name = it.Product.Name
		}
		dto.Items = append(dto.Items, OrderItemDTO{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: name,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			LineTotal:   it.LineTotal(),
		})
	}
	return dto
}

func shoppingCartDTO(sc *domain.ShoppingCart) ShoppingCartDTO {
	dto := ShoppingCartDTO{
		ID:               sc.ID,
		CustomerID:       sc.CustomerID,
		CreatedDate:      sc.CreatedOnUTC,
		LastModifiedDate: sc.UpdatedOnUTC,
		TotalPrice:       sc.TotalPrice,
		ItemCount:        len(sc.Items),
		Items:            make([]CartItemDTO, 0, len(sc.Items)),
	}
	for idx := range sc.Items {
		it := sc.Items[idx]
		name := ""
		if it.Product != nil {
			name = it.Product.Name
		}
		dto.Items = append(dto.Items, CartItemDTO{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: name,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			LineTotal:   it.LineTotal(),
		})
	}
	return dto
}

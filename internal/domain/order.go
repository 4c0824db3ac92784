package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is an immutable-once-placed purchase record. The only mutations after
// creation are the line-item operations below; CreatedOnUTC is set once and
// TotalPrice is always derived from the lines, never set directly.
type Order struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"customer_id"`
	CreatedOnUTC time.Time       `gorm:"column:created_on_utc;not null" json:"created_on_utc"`
	TotalPrice   decimal.Decimal `gorm:"column:total_price;type:numeric(12,2);not null" json:"total_price"`
	Items        []OrderItem     `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE" json:"items"`
}

func (Order) TableName() string { return "orders" }

// OrderItem is fully owned by its Order; it is never mutated outside the
// parent's operations. UnitPrice is the product price captured at add-time.
type OrderItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Product   *Product        `gorm:"foreignKey:ProductID;references:ID;constraint:OnDelete:RESTRICT" json:"product,omitempty"`
	Quantity  int             `gorm:"column:quantity;not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null" json:"unit_price"`
}

func (OrderItem) TableName() string { return "order_items" }

func newOrderItem(orderID, productID uuid.UUID, quantity int, unitPrice decimal.Decimal) (OrderItem, error) {
	const op = "order_item.new"
	if quantity <= 0 {
		return OrderItem{}, ValidationError(op, "quantity must be greater than zero")
	}
	if unitPrice.IsNegative() {
		return OrderItem{}, ValidationError(op, "unit price cannot be negative")
	}
	return OrderItem{
		ID:        uuid.New(),
		OrderID:   orderID,
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	}, nil
}

func (i *OrderItem) updateQuantity(quantity int) error {
	if quantity <= 0 {
		return ValidationError("order_item.update_quantity", "quantity must be greater than zero")
	}
	i.Quantity = quantity
	return nil
}

func (i OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

func NewOrder(customerID uuid.UUID) *Order {
	return &Order{
		ID:           uuid.New(),
		CustomerID:   customerID,
		CreatedOnUTC: time.Now().UTC(),
		TotalPrice:   decimal.Zero,
	}
}

// AddItem appends a line priced at the product's current price, or bumps the
// quantity of an existing line for the same product. A product is unique
// within the item collection.
func (o *Order) AddItem(product *Product, quantity int) error {
	const op = "order.add_item"
	if product == nil {
		return ValidationError(op, "product is required")
	}
	if quantity <= 0 {
		return ValidationError(op, "quantity must be greater than zero")
	}
	for idx := range o.Items {
		if o.Items[idx].ProductID == product.ID {
			if err := o.Items[idx].updateQuantity(o.Items[idx].Quantity + quantity); err != nil {
				return err
			}
			o.recalculateTotal()
			return nil
		}
	}
	item, err := newOrderItem(o.ID, product.ID, quantity, product.Price)
	if err != nil {
		return err
	}
	o.Items = append(o.Items, item)
	o.recalculateTotal()
	return nil
}

// RemoveItem is a no-op when the product is not a line in the order.
func (o *Order) RemoveItem(productID uuid.UUID) {
	for idx := range o.Items {
		if o.Items[idx].ProductID == productID {
			o.Items = append(o.Items[:idx], o.Items[idx+1:]...)
			o.recalculateTotal()
			return
		}
	}
}

func (o *Order) UpdateItemQuantity(productID uuid.UUID, quantity int) error {
	const op = "order.update_item_quantity"
	if quantity <= 0 {
		return ValidationError(op, "quantity must be greater than zero")
	}
	for idx := range o.Items {
		if o.Items[idx].ProductID == productID {
			if err := o.Items[idx].updateQuantity(quantity); err != nil {
				return err
			}
			o.recalculateTotal()
			return nil
		}
	}
	return InvalidStateError(op, "item not found in order")
}

// addItemDirectly transplants a known-good quantity/price pair during
// cart-to-order conversion without a live product lookup.
func (o *Order) addItemDirectly(productID uuid.UUID, quantity int, unitPrice decimal.Decimal) error {
	item, err := newOrderItem(o.ID, productID, quantity, unitPrice)
	if err != nil {
		return err
	}
	o.Items = append(o.Items, item)
	o.recalculateTotal()
	return nil
}

func (o *Order) recalculateTotal() {
	total := decimal.Zero
	for idx := range o.Items {
		total = total.Add(o.Items[idx].LineTotal())
	}
	o.TotalPrice = total
}

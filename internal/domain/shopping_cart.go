package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShoppingCart is the per-customer staging area for a future order. It is
// structurally parallel to Order but mutable, and additionally tracks a
// last-modified timestamp bumped on every mutation. A customer holds at most
// one cart, enforced by the unique index on CustomerID.
type ShoppingCart struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex" json:"customer_id"`
	CreatedOnUTC time.Time       `gorm:"column:created_on_utc;not null" json:"created_on_utc"`
	UpdatedOnUTC time.Time       `gorm:"column:updated_on_utc;not null" json:"updated_on_utc"`
	TotalPrice   decimal.Decimal `gorm:"column:total_price;type:numeric(12,2);not null" json:"total_price"`
	Items        []CartItem      `gorm:"foreignKey:ShoppingCartID;references:ID;constraint:OnDelete:CASCADE" json:"items"`
}

func (ShoppingCart) TableName() string { return "shopping_carts" }

// CartItem is fully owned by its ShoppingCart.
type CartItem struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	ShoppingCartID uuid.UUID       `gorm:"type:uuid;not null;index" json:"shopping_cart_id"`
	ProductID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Product        *Product        `gorm:"foreignKey:ProductID;references:ID;constraint:OnDelete:RESTRICT" json:"product,omitempty"`
	Quantity       int             `gorm:"column:quantity;not null" json:"quantity"`
	UnitPrice      decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null" json:"unit_price"`
}

func (CartItem) TableName() string { return "cart_items" }

func newCartItem(cartID, productID uuid.UUID, quantity int, unitPrice decimal.Decimal) (CartItem, error) {
	const op = "cart_item.new"
	if quantity <= 0 {
		return CartItem{}, ValidationError(op, "quantity must be greater than zero")
	}
	if unitPrice.IsNegative() {
		return CartItem{}, ValidationError(op, "unit price cannot be negative")
	}
	return CartItem{
		ID:             uuid.New(),
		ShoppingCartID: cartID,
		ProductID:      productID,
		Quantity:       quantity,
		UnitPrice:      unitPrice,
	}, nil
}

func (i *CartItem) updateQuantity(quantity int) error {
	if quantity <= 0 {
		return ValidationError("cart_item.update_quantity", "quantity must be greater than zero")
	}
	i.Quantity = quantity
	return nil
}

func (i CartItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

func NewShoppingCart(customerID uuid.UUID) *ShoppingCart {
	now := time.Now().UTC()
	return &ShoppingCart{
		ID:           uuid.New(),
		CustomerID:   customerID,
		CreatedOnUTC: now,
		UpdatedOnUTC: now,
		TotalPrice:   decimal.Zero,
	}
}

func (sc *ShoppingCart) AddItem(product *Product, quantity int) error {
	const op = "shopping_cart.add_item"
	if product == nil {
		return ValidationError(op, "product is required")
	}
	if quantity <= 0 {
		return ValidationError(op, "quantity must be greater than zero")
	}
	for idx := range sc.Items {
		if sc.Items[idx].ProductID == product.ID {
			if err := sc.Items[idx].updateQuantity(sc.Items[idx].Quantity + quantity); err != nil {
				return err
			}
			sc.touch()
			sc.recalculateTotal()
			return nil
		}
	}
	item, err := newCartItem(sc.ID, product.ID, quantity, product.Price)
	if err != nil {
		return err
	}
	sc.Items = append(sc.Items, item)
	sc.touch()
	sc.recalculateTotal()
	return nil
}

func (sc *ShoppingCart) UpdateItemQuantity(productID uuid.UUID, quantity int) error {
	const op = "shopping_cart.update_item_quantity"
	if quantity <= 0 {
		return ValidationError(op, "quantity must be greater than zero")
	}
	for idx := range sc.Items {
		if sc.Items[idx].ProductID == productID {
			if err := sc.Items[idx].updateQuantity(quantity); err != nil {
				return err
			}
			sc.touch()
			sc.recalculateTotal()
			return nil
		}
	}
	return InvalidStateError(op, "item not found in cart")
}

// RemoveItem is a no-op when the product is not a line in the cart.
func (sc *ShoppingCart) RemoveItem(productID uuid.UUID) {
	for idx := range sc.Items {
		if sc.Items[idx].ProductID == productID {
			sc.Items = append(sc.Items[:idx], sc.Items[idx+1:]...)
			sc.touch()
			sc.recalculateTotal()
			return
		}
	}
}

func (sc *ShoppingCart) Clear() {
	sc.Items = nil
	sc.touch()
	sc.recalculateTotal()
}

func (sc *ShoppingCart) IsEmpty() bool { return len(sc.Items) == 0 }

// Item returns the line for a product, or nil.
func (sc *ShoppingCart) Item(productID uuid.UUID) *CartItem {
	for idx := range sc.Items {
		if sc.Items[idx].ProductID == productID {
			return &sc.Items[idx]
		}
	}
	return nil
}

// ConvertToOrder builds a new Order for the same customer, transplanting
// every cart line's quantity and captured unit price exactly. The cart itself
// is untouched; removing it is the checkout workflow's responsibility.
func (sc *ShoppingCart) ConvertToOrder() (*Order, error) {
	const op = "shopping_cart.convert_to_order"
	if sc.IsEmpty() {
		return nil, InvalidStateError(op, "cannot create order from empty cart")
	}
	order := NewOrder(sc.CustomerID)
	for idx := range sc.Items {
		if err := order.addItemDirectly(sc.Items[idx].ProductID, sc.Items[idx].Quantity, sc.Items[idx].UnitPrice); err != nil {
			return nil, err
		}
	}
	return order, nil
}

func (sc *ShoppingCart) touch() {
	sc.UpdatedOnUTC = time.Now().UTC()
}

func (sc *ShoppingCart) recalculateTotal() {
	total := decimal.Zero
	for idx := range sc.Items {
		total = total.Add(sc.Items[idx].LineTotal())
	}
	sc.TotalPrice = total
}

package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/calegray/commerce-backend/internal/data/cache"
	"github.com/calegray/commerce-backend/internal/data/repos"
	"github.com/calegray/commerce-backend/internal/domain"
	"github.com/calegray/commerce-backend/internal/pkg/logger"
)

type AddToCartCommand struct {
	CustomerID uuid.UUID `json:"-"`
	ProductID  uuid.UUID `json:"product_id" binding:"required"`
	Quantity   int       `json:"quantity" binding:"required"`
}

type UpdateCartItemCommand struct {
	CustomerID uuid.UUID `json:"-"`
	ProductID  uuid.UUID `json:"-"`
	Quantity   int       `json:"quantity" binding:"required"`
}

type ShoppingCartCommands interface {
	AddToCart(ctx context.Context, cmd AddToCartCommand) error
	UpdateCartItem(ctx context.Context, cmd UpdateCartItemCommand) error
	RemoveFromCart(ctx context.Context, customerID, productID uuid.UUID) error
	ClearCart(ctx context.Context, customerID uuid.UUID) error
	Checkout(ctx context.Context, customerID uuid.UUID) (uuid.UUID, error)
}

type shoppingCartCommands struct {
	db    *gorm.DB
	log   *logger.Logger
	cache cache.CartCache
}

// NewShoppingCartCommands builds the cart write side. cartCache may be nil,
// in which case invalidation is skipped.
func NewShoppingCartCommands(db *gorm.DB, log *logger.Logger, cartCache cache.CartCache) ShoppingCartCommands {
	return &shoppingCartCommands{
		db:    db,
		log:   log.With("service", "cart_commands"),
		cache: cartCache,
	}
}

func (s *shoppingCartCommands) uow() *repos.UnitOfWork {
	return repos.NewUnitOfWork(s.db, s.log)
}

func (s *shoppingCartCommands) invalidate(ctx context.Context, customerID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, customerID); err != nil {
		s.log.Warn("cart cache invalidation failed", "customer_id", customerID, "error", err)
	}
}

func (s *shoppingCartCommands) AddToCart(ctx context.Context, cmd AddToCartCommand) error {
	err := s.addToCart(ctx, cmd)
	if domain.IsCode(err, domain.CodeConflict) {
		// Two first-time adds for the same customer can race on the cart's
		// unique customer index; the loser retries against the winner's cart.
		err = s.addToCart(ctx, cmd)
	}
	if err != nil {
		return err
	}
	s.invalidate(ctx, cmd.CustomerID)
	return nil
}

func (s *shoppingCartCommands) addToCart(ctx context.Context, cmd AddToCartCommand) error {
	const op = "services.AddToCart"
	uow := s.uow()
	product, err := uow.Products.GetByID(ctx, cmd.ProductID)
	if err != nil {
		return err
	}
	if product == nil || product.Deleted() {
		return domain.NotFoundError(op, "product not found")
	}
	customer, err := uow.Customers.GetByID(ctx, cmd.CustomerID)
	if err != nil {
		return err
	}
	if customer == nil || customer.Deleted() {
		return domain.NotFoundError(op, "customer not found")
	}

	cart, err := uow.ShoppingCarts.GetByCustomerIDWithItems(ctx, cmd.CustomerID)
	if err != nil {
		return err
	}
	if cart == nil {
		cart = domain.NewShoppingCart(cmd.CustomerID)
		if err := cart.AddItem(product, cmd.Quantity); err != nil {
			return err
		}
		uow.ShoppingCarts.Add(cart)
		return uow.Complete(ctx)
	}

	existing := cart.Item(cmd.ProductID) != nil
	if err := cart.AddItem(product, cmd.Quantity); err != nil {
		return err
	}
	if !existing {
		uow.CartItems.Add(cart.Item(cmd.ProductID))
	}
	uow.ShoppingCarts.Update(cart)
	return uow.Complete(ctx)
}

func (s *shoppingCartCommands) UpdateCartItem(ctx context.Context, cmd UpdateCartItemCommand) error {
	const op = "services.UpdateCartItem"
	uow := s.uow()
	cart, err := uow.ShoppingCarts.GetByCustomerIDWithItems(ctx, cmd.CustomerID)
	if err != nil {
		return err
	}
	if cart == nil {
		return domain.NotFoundError(op, "shopping cart not found")
	}
	if err := cart.UpdateItemQuantity(cmd.ProductID, cmd.Quantity); err != nil {
		return err
	}
	uow.ShoppingCarts.Update(cart)
	if err := uow.Complete(ctx); err != nil {
		return err
	}
	s.invalidate(ctx, cmd.CustomerID)
	return nil
}

func (s *shoppingCartCommands) RemoveFromCart(ctx context.Context, customerID, productID uuid.UUID) error {
	const op = "services.RemoveFromCart"
	uow := s.uow()
	cart, err := uow.ShoppingCarts.GetByCustomerIDWithItems(ctx, customerID)
	if err != nil {
		return err
	}
	if cart == nil {
		return domain.NotFoundError(op, "shopping cart not found")
	}
	item := cart.Item(productID)
	if item == nil {
		return nil
	}
	removed := *item
	cart.RemoveItem(productID)
	uow.CartItems.Remove(&removed)
	uow.ShoppingCarts.Update(cart)
	if err := uow.Complete(ctx); err != nil {
		return err
	}
	s.invalidate(ctx, customerID)
	return nil
}

func (s *shoppingCartCommands) ClearCart(ctx context.Context, customerID uuid.UUID) error {
	uow := s.uow()
	cart, err := uow.ShoppingCarts.GetByCustomerIDWithItems(ctx, customerID)
	if err != nil {
		return err
	}
	if cart == nil {
		return nil
	}
	for idx := range cart.Items {
		item := cart.Items[idx]
		uow.CartItems.Remove(&item)
	}
	cart.Clear()
	uow.ShoppingCarts.Update(cart)
	if err := uow.Complete(ctx); err != nil {
		return err
	}
	s.invalidate(ctx, customerID)
	return nil
}

// Checkout converts the customer's cart into an order and removes the cart,
// both inside one transaction. Either the order exists and the cart is gone,
// or neither changed.
func (s *shoppingCartCommands) Checkout(ctx context.Context, customerID uuid.UUID) (uuid.UUID, error) {
	const op = "services.Checkout"
	uow := s.uow()
	if err := uow.Begin(ctx); err != nil {
		return uuid.Nil, err
	}
	cart, err := uow.ShoppingCarts.GetByCustomerIDWithItems(ctx, customerID)
	if err != nil {
		uow.Rollback()
		return uuid.Nil, err
	}
	if cart == nil {
		uow.Rollback()
		return uuid.Nil, domain.NotFoundError(op, "shopping cart not found")
	}
	order, err := cart.ConvertToOrder()
	if err != nil {
		uow.Rollback()
		return uuid.Nil, err
	}
	uow.Orders.Add(order)
	uow.ShoppingCarts.Remove(cart)
	if err := uow.Commit(ctx); err != nil {
		return uuid.Nil, err
	}
	s.invalidate(ctx, customerID)
	s.log.Info("cart checked out", "customer_id", customerID, "order_id", order.ID, "total_price", order.TotalPrice)
	return order.ID, nil
}

package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/calegray/commerce-backend/internal/data/repos"
	"github.com/calegray/commerce-backend/internal/domain"
	"github.com/calegray/commerce-backend/internal/pkg/logger"
)

type CreateOrderCommand struct {
	CustomerID uuid.UUID `json:"customer_id" binding:"required"`
}

type AddOrderItemCommand struct {
	OrderID   uuid.UUID `json:"-"`
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required"`
}

type UpdateOrderItemCommand struct {
	OrderID   uuid.UUID `json:"-"`
	ProductID uuid.UUID `json:"-"`
	Quantity  int       `json:"quantity" binding:"required"`
}

type OrderCommands interface {
	CreateOrder(ctx context.Context, cmd CreateOrderCommand) (uuid.UUID, error)
	AddOrderItem(ctx context.Context, cmd AddOrderItemCommand) error
	UpdateOrderItem(ctx context.Context, cmd UpdateOrderItemCommand) error
	RemoveOrderItem(ctx context.Context, orderID, productID uuid.UUID) error
	DeleteOrder(ctx context.Context, id uuid.UUID) error
}

type orderCommands struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOrderCommands(db *gorm.DB, log *logger.Logger) OrderCommands {
	return &orderCommands{db: db, log: log.With("service", "order_commands")}
}

func (s *orderCommands) uow() *repos.UnitOfWork {
	return repos.NewUnitOfWork(s.db, s.log)
}

func (s *orderCommands) CreateOrder(ctx context.Context, cmd CreateOrderCommand) (uuid.UUID, error) {
	const op = "services.CreateOrder"
	uow := s.uow()
	customer, err := uow.Customers.GetByID(ctx, cmd.CustomerID)
	if err != nil {
		return uuid.Nil, err
	}
	if customer == nil || customer.Deleted() {
		return uuid.Nil, domain.NotFoundError(op, "customer not found")
	}
	order := customer.CreateOrder()
	uow.Orders.Add(order)
	if err := uow.Complete(ctx); err != nil {
		return uuid.Nil, err
	}
	s.log.Info("order created", "order_id", order.ID, "customer_id", cmd.CustomerID)
	return order.ID, nil
}

func (s *orderCommands) AddOrderItem(ctx context.Context, cmd AddOrderItemCommand) error {
	const op = "services.AddOrderItem"
	uow := s.uow()
	order, err := uow.Orders.GetByIDWithItems(ctx, cmd.OrderID)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.NotFoundError(op, "order not found")
	}
	product, err := uow.Products.GetByID(ctx, cmd.ProductID)
	if err != nil {
		return err
	}
	if product == nil || product.Deleted() {
		return domain.NotFoundError(op, "product not found")
	}
	if err := order.AddItem(product, cmd.Quantity); err != nil {
		return err
	}
	uow.Orders.Update(order)
	return uow.Complete(ctx)
}

func (s *orderCommands) UpdateOrderItem(ctx context.Context, cmd UpdateOrderItemCommand) error {
	const op = "services.UpdateOrderItem"
	uow := s.uow()
	order, err := uow.Orders.GetByIDWithItems(ctx, cmd.OrderID)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.NotFoundError(op, "order not found")
	}
	if err := order.UpdateItemQuantity(cmd.ProductID, cmd.Quantity); err != nil {
		return err
	}
	uow.Orders.Update(order)
	return uow.Complete(ctx)
}

func (s *orderCommands) RemoveOrderItem(ctx context.Context, orderID, productID uuid.UUID) error {
	const op = "services.RemoveOrderItem"
	uow := s.uow()
	order, err := uow.Orders.GetByIDWithItems(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.NotFoundError(op, "order not found")
	}
	order.RemoveItem(productID)
	uow.Orders.Update(order)
	return uow.Complete(ctx)
}

func (s *orderCommands) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	const op = "services.DeleteOrder"
	uow := s.uow()
	order, err := uow.Orders.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.NotFoundError(op, "order not found")
	}
	uow.Orders.Remove(order)
	if err := uow.Complete(ctx); err != nil {
		return err
	}
	s.log.Info("order deleted", "order_id", id)
	return nil
}

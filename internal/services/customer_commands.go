package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/calegray/commerce-backend/internal/data/repos"
	"github.com/calegray/commerce-backend/internal/domain"
	"github.com/calegray/commerce-backend/internal/pkg/logger"
)

type CreateCustomerCommand struct {
	FirstName  string `json:"first_name" binding:"required"`
	LastName   string `json:"last_name" binding:"required"`
	Address    string `json:"address" binding:"required"`
	PostalCode string `json:"postal_code" binding:"required"`
}

type UpdateCustomerCommand struct {
	ID         uuid.UUID `json:"-"`
	FirstName  string    `json:"first_name" binding:"required"`
	LastName   string    `json:"last_name" binding:"required"`
	Address    string    `json:"address" binding:"required"`
	PostalCode string    `json:"postal_code" binding:"required"`
}

type CustomerCommands interface {
	CreateCustomer(ctx context.Context, cmd CreateCustomerCommand) (uuid.UUID, error)
	UpdateCustomer(ctx context.Context, cmd UpdateCustomerCommand) error
	DeleteCustomer(ctx context.Context, id uuid.UUID) error
}

type customerCommands struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCustomerCommands(db *gorm.DB, log *logger.Logger) CustomerCommands {
	return &customerCommands{db: db, log: log.With("service", "customer_commands")}
}

func (s *customerCommands) uow() *repos.UnitOfWork {
	return repos.NewUnitOfWork(s.db, s.log)
}

func (s *customerCommands) CreateCustomer(ctx context.Context, cmd CreateCustomerCommand) (uuid.UUID, error) {
	customer, err := domain.NewCustomer(cmd.FirstName, cmd.LastName, cmd.Address, cmd.PostalCode)
	if err != nil {
		return uuid.Nil, err
	}
	uow := s.uow()
	uow.Customers.Add(customer)
	if err := uow.Complete(ctx); err != nil {
		return uuid.Nil, err
	}
	s.log.Info("customer created", "customer_id", customer.ID)
	return customer.ID, nil
}

func (s *customerCommands) UpdateCustomer(ctx context.Context, cmd UpdateCustomerCommand) error {
	const op = "services.UpdateCustomer"
	uow := s.uow()
	customer, err := uow.Customers.GetByID(ctx, cmd.ID)
	if err != nil {
		return err
	}
	if customer == nil {
		return domain.NotFoundError(op, "customer not found")
	}
	if err := customer.UpdateDetails(cmd.FirstName, cmd.LastName, cmd.Address, cmd.PostalCode); err != nil {
		return err
	}
	uow.Customers.Update(customer)
	return uow.Complete(ctx)
}

func (s *customerCommands) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	const op = "services.DeleteCustomer"
	uow := s.uow()
	customer, err := uow.Customers.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return domain.NotFoundError(op, "customer not found")
	}
	customer.MarkDeleted()
	uow.Customers.Update(customer)
	if err := uow.Complete(ctx); err != nil {
		return err
	}
	s.log.Info("customer soft-deleted", "customer_id", id)
	return nil
}

package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/calegray/commerce-backend/internal/data/repos"
	"github.com/calegray/commerce-backend/internal/domain"
	"github.com/calegray/commerce-backend/internal/pkg/logger"
)

type CustomerQueries interface {
	GetCustomerByID(ctx context.Context, id uuid.UUID) (*CustomerDTO, error)
	GetAllCustomers(ctx context.Context, includeDeleted bool) ([]CustomerDTO, error)
	GetCustomerWithOrders(ctx context.Context, id uuid.UUID) (*CustomerDetailDTO, error)
}

type customerQueries struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCustomerQueries(db *gorm.DB, log *logger.Logger) CustomerQueries {
	return &customerQueries{db: db, log: log.With("service", "customer_queries")}
}

func (s *customerQueries) uow() *repos.UnitOfWork {
	return repos.NewUnitOfWork(s.db, s.log)
}

func (s *customerQueries) GetCustomerByID(ctx context.Context, id uuid.UUID) (*CustomerDTO, error) {
	const op = "services.GetCustomerByID"
	customer, err := s.uow().Customers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.NotFoundError(op, "customer not found")
	}
	dto := customerDTO(customer)
	return &dto, nil
}

func (s *customerQueries) GetAllCustomers(ctx context.Context, includeDeleted bool) ([]CustomerDTO, error) {
	customers, err := s.uow().Customers.GetAll(ctx, includeDeleted)
	if err != nil {
		return nil, err
	}
	dtos := make([]CustomerDTO, 0, len(customers))
	for _, c := range customers {
		dtos = append(dtos, customerDTO(c))
	}
	return dtos, nil
}

func (s *customerQueries) GetCustomerWithOrders(ctx context.Context, id uuid.UUID) (*CustomerDetailDTO, error) {
	const op = "services.GetCustomerWithOrders"
	customer, err := s.uow().Customers.GetByIDWithOrders(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.NotFoundError(op, "customer not found")
	}
	dto := CustomerDetailDTO{
		CustomerDTO: customerDTO(customer),
		Orders:      make([]OrderDTO, 0, len(customer.Orders)),
	}
	for idx := range customer.Orders {
		dto.Orders = append(dto.Orders, orderDTO(&customer.Orders[idx]))
	}
	return &dto, nil
}

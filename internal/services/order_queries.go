package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/calegray/commerce-backend/internal/data/repos"
	"github.com/calegray/commerce-backend/internal/domain"
	"github.com/calegray/commerce-backend/internal/pkg/logger"
)

type OrderQueries interface {
	GetOrderByID(ctx context.Context, id uuid.UUID) (*OrderDTO, error)
	GetCustomerOrdersByDate(ctx context.Context, customerID uuid.UUID, startUTC, endUTC *time.Time) ([]OrderDTO, error)
}

type orderQueries struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOrderQueries(db *gorm.DB, log *logger.Logger) OrderQueries {
	return &orderQueries{db: db, log: log.With("service", "order_queries")}
}

func (s *orderQueries) uow() *repos.UnitOfWork {
	return repos.NewUnitOfWork(s.db, s.log)
}

func (s *orderQueries) GetOrderByID(ctx context.Context, id uuid.UUID) (*OrderDTO, error) {
	const op = "services.GetOrderByID"
	order, err := s.uow().Orders.GetByIDWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.NotFoundError(op, "order not found")
	}
	dto := orderDTO(order)
	return &dto, nil
}

func (s *orderQueries) GetCustomerOrdersByDate(ctx context.Context, customerID uuid.UUID, startUTC, endUTC *time.Time) ([]OrderDTO, error) {
	orders, err := s.uow().Customers.GetOrdersByDate(ctx, customerID, startUTC, endUTC)
	if err != nil {
		return nil, err
	}
	dtos := make([]OrderDTO, 0, len(orders))
	for _, o := range orders {
		dtos = append(dtos, orderDTO(o))
	}
	return dtos, nil
}

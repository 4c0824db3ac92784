package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/calegray/commerce-backend/internal/data/repos"
	"github.com/calegray/commerce-backend/internal/domain"
	"github.com/calegray/commerce-backend/internal/pkg/logger"
)

type ProductQueries interface {
	GetProductByID(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	GetAllProducts(ctx context.Context, includeDeleted bool) ([]ProductDTO, error)
}

type productQueries struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProductQueries(db *gorm.DB, log *logger.Logger) ProductQueries {
	return &productQueries{db: db, log: log.With("service", "product_queries")}
}

func (s *productQueries) uow() *repos.UnitOfWork {
	return repos.NewUnitOfWork(s.db, s.log)
}

func (s *productQueries) GetProductByID(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	const op = "services.GetProductByID"
	product, err := s.uow().Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFoundError(op, "product not found")
	}
	dto := productDTO(product)
	return &dto, nil
}

func (s *productQueries) GetAllProducts(ctx context.Context, includeDeleted bool) ([]ProductDTO, error) {
	products, err := s.uow().Products.GetAll(ctx, includeDeleted)
	if err != nil {
		return nil, err
	}
	dtos := make([]ProductDTO, 0, len(products))
	for _, p := range products {
		dtos = append(dtos, productDTO(p))
	}
	return dtos, nil
}

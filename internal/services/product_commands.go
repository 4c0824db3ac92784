package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/calegray/commerce-backend/internal/data/repos"
	"github.com/calegray/commerce-backend/internal/domain"
	"github.com/calegray/commerce-backend/internal/pkg/logger"
)

type CreateProductCommand struct {
	Name  string          `json:"name" binding:"required"`
	Price decimal.Decimal `json:"price"`
}

type UpdateProductCommand struct {
	ID    uuid.UUID       `json:"-"`
	Name  string          `json:"name" binding:"required"`
	Price decimal.Decimal `json:"price"`
}

type ProductCommands interface {
	CreateProduct(ctx context.Context, cmd CreateProductCommand) (uuid.UUID, error)
	UpdateProduct(ctx context.Context, cmd UpdateProductCommand) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type productCommands struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProductCommands(db *gorm.DB, log *logger.Logger) ProductCommands {
	return &productCommands{db: db, log: log.With("service", "product_commands")}
}

func (s *productCommands) uow() *repos.UnitOfWork {
	return repos.NewUnitOfWork(s.db, s.log)
}

func (s *productCommands) CreateProduct(ctx context.Context, cmd CreateProductCommand) (uuid.UUID, error) {
	product, err := domain.NewProduct(cmd.Name, cmd.Price)
	if err != nil {
		return uuid.Nil, err
	}
	uow := s.uow()
	uow.Products.Add(product)
	if err := uow.Complete(ctx); err != nil {
		return uuid.Nil, err
	}
	s.log.Info("product created", "product_id", product.ID)
	return product.ID, nil
}

func (s *productCommands) UpdateProduct(ctx context.Context, cmd UpdateProductCommand) error {
	const op = "services.UpdateProduct"
	uow := s.uow()
	product, err := uow.Products.GetByID(ctx, cmd.ID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.NotFoundError(op, "product not found")
	}
	if err := product.UpdateDetails(cmd.Name, cmd.Price); err != nil {
		return err
	}
	uow.Products.Update(product)
	return uow.Complete(ctx)
}

func (s *productCommands) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	const op = "services.DeleteProduct"
	uow := s.uow()
	product, err := uow.Products.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.NotFoundError(op, "product not found")
	}
	product.MarkDeleted()
	uow.Products.Update(product)
	if err := uow.Complete(ctx); err != nil {
		return err
	}
	s.log.Info("product soft-deleted", "product_id", id)
	return nil
}

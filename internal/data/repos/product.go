package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/calegray/commerce-backend/internal/domain"
	"github.com/calegray/commerce-backend/internal/pkg/logger"
)

type ProductRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	GetAll(ctx context.Context, includeDeleted bool) ([]*domain.Product, error)

	Add(row *domain.Product)
	Update(row *domain.Product)
}

type productRepo struct {
	uow *UnitOfWork
	log *logger.Logger
}

func (r *productRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var row domain.Product
	err := r.uow.conn(ctx).First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, MapError("product.get_by_id", err)
	}
	return &row, nil
}

func (r *productRepo) GetAll(ctx context.Context, includeDeleted bool) ([]*domain.Product, error) {
	var out []*domain.Product
	q := r.uow.conn(ctx)
	if !includeDeleted {
		q = q.Where("is_deleted = ?", false)
	}
	if err := q.Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, MapError("product.get_all", err)
	}
	return out, nil
}

func (r *productRepo) Add(row *domain.Product) {
	r.uow.enqueue(func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(row).Error
	})
}

func (r *productRepo) Update(row *domain.Product) {
	r.uow.enqueue(func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Save(row).Error
	})
}

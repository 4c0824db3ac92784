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

type OrderRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	GetByIDWithItems(ctx context.Context, id uuid.UUID) (*domain.Order, error)

	Add(row *domain.Order)
	Update(row *domain.Order)
	Remove(row *domain.Order)
}

type orderRepo struct {
	uow *UnitOfWork
	log *logger.Logger
}

func (r *orderRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var row domain.Order
	err := r.uow.conn(ctx).First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, MapError("order.get_by_id", err)
	}
	return &row, nil
}

func (r *orderRepo) GetByIDWithItems(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var row domain.Order
	err := r.uow.conn(ctx).Preload("Items.Product").First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, MapError("order.get_by_id_with_items", err)
	}
	return &row, nil
}

func (r *orderRepo) Add(row *domain.Order) {
	r.uow.enqueue(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(row).Error; err != nil {
			return err
		}
		return upsertOrderItems(tx, row.Items)
	})
}

// Update persists the parent row, upserts its current lines, and deletes
// lines no longer present in the aggregate.
func (r *orderRepo) Update(row *domain.Order) {
	r.uow.enqueue(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(row).Error; err != nil {
			return err
		}
		if err := upsertOrderItems(tx, row.Items); err != nil {
			return err
		}
		return deleteOrphanedOrderItems(tx, row)
	})
}

func (r *orderRepo) Remove(row *domain.Order) {
	r.uow.enqueue(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", row.ID).Delete(&domain.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Order{}, "id = ?", row.ID).Error
	})
}

func upsertOrderItems(tx *gorm.DB, items []domain.OrderItem) error {
	for i := range items {
		item := items[i]
		item.Product = nil
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Omit(clause.Associations).Create(&item).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func deleteOrphanedOrderItems(tx *gorm.DB, row *domain.Order) error {
	q := tx.Where("order_id = ?", row.ID)
	if len(row.Items) > 0 {
		keep := make([]uuid.UUID, 0, len(row.Items))
		for i := range row.Items {
			keep = append(keep, row.Items[i].ID)
		}
		q = q.Where("id NOT IN ?", keep)
	}
	return q.Delete(&domain.OrderItem{}).Error
}

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

type ShoppingCartRepo interface {
	GetByCustomerID(ctx context.Context, customerID uuid.UUID) (*domain.ShoppingCart, error)
	GetByCustomerIDWithItems(ctx context.Context, customerID uuid.UUID) (*domain.ShoppingCart, error)

	Add(row *domain.ShoppingCart)
	Update(row *domain.ShoppingCart)
	Remove(row *domain.ShoppingCart)
}

type shoppingCartRepo struct {
	uow *UnitOfWork
	log *logger.Logger
}

func (r *shoppingCartRepo) GetByCustomerID(ctx context.Context, customerID uuid.UUID) (*domain.ShoppingCart, error) {
	if customerID == uuid.Nil {
		return nil, nil
	}
	var row domain.ShoppingCart
	err := r.uow.conn(ctx).First(&row, "customer_id = ?", customerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, MapError("shopping_cart.get_by_customer_id", err)
	}
	return &row, nil
}

func (r *shoppingCartRepo) GetByCustomerIDWithItems(ctx context.Context, customerID uuid.UUID) (*domain.ShoppingCart, error) {
	if customerID == uuid.Nil {
		return nil, nil
	}
	var row domain.ShoppingCart
	err := r.uow.conn(ctx).Preload("Items.Product").First(&row, "customer_id = ?", customerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, MapError("shopping_cart.get_by_customer_id_with_items", err)
	}
	return &row, nil
}

func (r *shoppingCartRepo) Add(row *domain.ShoppingCart) {
	r.uow.enqueue(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(row).Error; err != nil {
			return err
		}
		return upsertCartItems(tx, row.Items)
	})
}

func (r *shoppingCartRepo) Update(row *domain.ShoppingCart) {
	r.uow.enqueue(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(row).Error; err != nil {
			return err
		}
		if err := upsertCartItems(tx, row.Items); err != nil {
			return err
		}
		return deleteOrphanedCartItems(tx, row)
	})
}

func (r *shoppingCartRepo) Remove(row *domain.ShoppingCart) {
	r.uow.enqueue(func(tx *gorm.DB) error {
		if err := tx.Where("shopping_cart_id = ?", row.ID).Delete(&domain.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.ShoppingCart{}, "id = ?", row.ID).Error
	})
}

func upsertCartItems(tx *gorm.DB, items []domain.CartItem) error {
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

func deleteOrphanedCartItems(tx *gorm.DB, row *domain.ShoppingCart) error {
	q := tx.Where("shopping_cart_id = ?", row.ID)
	if len(row.Items) > 0 {
		keep := make([]uuid.UUID, 0, len(row.Items))
		for i := range row.Items {
			keep = append(keep, row.Items[i].ID)
		}
		q = q.Where("id NOT IN ?", keep)
	}
	return q.Delete(&domain.CartItem{}).Error
}

package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/calegray/commerce-backend/internal/domain"
	"github.com/calegray/commerce-backend/internal/pkg/logger"
)

type CustomerRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	GetByIDWithOrders(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	GetAll(ctx context.Context, includeDeleted bool) ([]*domain.Customer, error)
	GetOrdersByDate(ctx context.Context, customerID uuid.UUID, startUTC, endUTC *time.Time) ([]*domain.Order, error)

	Add(row *domain.Customer)
	Update(row *domain.Customer)
	Remove(row *domain.Customer)
}

type customerRepo struct {
	uow *UnitOfWork
	log *logger.Logger
}

func (r *customerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var row domain.Customer
	err := r.uow.conn(ctx).First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, MapError("customer.get_by_id", err)
	}
	return &row, nil
}

func (r *customerRepo) GetByIDWithOrders(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var row domain.Customer
	err := r.uow.conn(ctx).
		Preload("Orders", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_on_utc ASC")
		}).
		Preload("Orders.Items.Product").
		First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, MapError("customer.get_by_id_with_orders", err)
	}
	return &row, nil
}

func (r *customerRepo) GetAll(ctx context.Context, includeDeleted bool) ([]*domain.Customer, error) {
	var out []*domain.Customer
	q := r.uow.conn(ctx)
	if !includeDeleted {
		q = q.Where("is_deleted = ?", false)
	}
	if err := q.Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, MapError("customer.get_all", err)
	}
	return out, nil
}

func (r *customerRepo) GetOrdersByDate(ctx context.Context, customerID uuid.UUID, startUTC, endUTC *time.Time) ([]*domain.Order, error) {
	var out []*domain.Order
	q := r.uow.conn(ctx).Where("customer_id = ?", customerID)
	if startUTC != nil {
		q = q.Where("created_on_utc >= ?", *startUTC)
	}
	if endUTC != nil {
		q = q.Where("created_on_utc <= ?", *endUTC)
	}
	if err := q.Preload("Items.Product").Order("created_on_utc ASC").Find(&out).Error; err != nil {
		return nil, MapError("customer.get_orders_by_date", err)
	}
	return out, nil
}

func (r *customerRepo) Add(row *domain.Customer) {
	r.uow.enqueue(func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(row).Error
	})
}

func (r *customerRepo) Update(row *domain.Customer) {
	r.uow.enqueue(func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Save(row).Error
	})
}

// Remove hard-deletes the customer and cascades through orders, order items,
// the cart and cart items. The cascade runs in the application so it behaves
// identically on every backing store the tests use.
func (r *customerRepo) Remove(row *domain.Customer) {
	r.uow.enqueue(func(tx *gorm.DB) error {
		if err := tx.Where("order_id IN (?)",
			tx.Session(&gorm.Session{NewDB: true}).Model(&domain.Order{}).Select("id").Where("customer_id = ?", row.ID),
		).Delete(&domain.OrderItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("customer_id = ?", row.ID).Delete(&domain.Order{}).Error; err != nil {
			return err
		}
		if err := tx.Where("shopping_cart_id IN (?)",
			tx.Session(&gorm.Session{NewDB: true}).Model(&domain.ShoppingCart{}).Select("id").Where("customer_id = ?", row.ID),
		).Delete(&domain.CartItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("customer_id = ?", row.ID).Delete(&domain.ShoppingCart{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Customer{}, "id = ?", row.ID).Error
	})
}

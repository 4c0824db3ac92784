package repos

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/calegray/commerce-backend/internal/domain"
	"github.com/calegray/commerce-backend/internal/pkg/logger"
)

// CartItemRepo covers the line-level persistence moves the cart workflows
// make alongside the parent update (separate insert of a brand-new line,
// removal of a dropped line). Line lifetimes are still owned by the cart.
type CartItemRepo interface {
	Add(row *domain.CartItem)
	Remove(row *domain.CartItem)
}

type cartItemRepo struct {
	uow *UnitOfWork
	log *logger.Logger
}

// Add inserts a new line; it is a no-op when the parent update already
// upserted the row.
func (r *cartItemRepo) Add(row *domain.CartItem) {
	item := *row
	item.Product = nil
	r.uow.enqueue(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{DoNothing: true}).
			Omit(clause.Associations).Create(&item).Error
	})
}

func (r *cartItemRepo) Remove(row *domain.CartItem) {
	id := row.ID
	r.uow.enqueue(func(tx *gorm.DB) error {
		return tx.Delete(&domain.CartItem{}, "id = ?", id).Error
	})
}

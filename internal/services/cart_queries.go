package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/calegray/commerce-backend/internal/data/cache"
	"github.com/calegray/commerce-backend/internal/data/repos"
	"github.com/calegray/commerce-backend/internal/domain"
	"github.com/calegray/commerce-backend/internal/pkg/logger"
)

type ShoppingCartQueries interface {
	GetShoppingCart(ctx context.Context, customerID uuid.UUID) (*ShoppingCartDTO, error)
}

type shoppingCartQueries struct {
	db    *gorm.DB
	log   *logger.Logger
	cache cache.CartCache
}

// NewShoppingCartQueries builds the cart read side. cartCache may be nil,
// in which case every read goes to the database.
func NewShoppingCartQueries(db *gorm.DB, log *logger.Logger, cartCache cache.CartCache) ShoppingCartQueries {
	return &shoppingCartQueries{
		db:    db,
		log:   log.With("service", "cart_queries"),
		cache: cartCache,
	}
}

func (s *shoppingCartQueries) uow() *repos.UnitOfWork {
	return repos.NewUnitOfWork(s.db, s.log)
}

func (s *shoppingCartQueries) GetShoppingCart(ctx context.Context, customerID uuid.UUID) (*ShoppingCartDTO, error) {
	const op = "services.GetShoppingCart"
	if s.cache != nil {
		var cached ShoppingCartDTO
		err := s.cache.Get(ctx, customerID, &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.log.Warn("cart cache read failed", "customer_id", customerID, "error", err)
		}
	}

	cart, err := s.uow().ShoppingCarts.GetByCustomerIDWithItems(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, domain.NotFoundError(op, "shopping cart not found")
	}
	dto := shoppingCartDTO(cart)
	if s.cache != nil {
		if err := s.cache.Set(ctx, customerID, dto); err != nil {
			s.log.Warn("cart cache write failed", "customer_id", customerID, "error", err)
		}
	}
	return &dto, nil
}

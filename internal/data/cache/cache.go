package cache

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// CartCache holds the cart projection served by the cart query handler. Keys
// are customer identifiers because a customer owns at most one cart.
// Implementations must return ErrCacheMiss for absent keys.
type CartCache interface {
	Get(ctx context.Context, customerID uuid.UUID, dest interface{}) error
	Set(ctx context.Context, customerID uuid.UUID, cart interface{}) error
	Delete(ctx context.Context, customerID uuid.UUID) error
}

var ErrCacheMiss = errors.New("cache miss")

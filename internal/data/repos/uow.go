package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/calegray/commerce-backend/internal/domain"
	"github.com/calegray/commerce-backend/internal/pkg/logger"
)

// UnitOfWork bundles one repository per aggregate type over a shared
// connection, and owns the transaction boundary for multi-step workflows.
// It is request-scoped: construct one per inbound operation and discard it.
//
// Repository reads execute immediately against the open transaction (or the
// base handle when none is open). Repository writes are recorded as pending
// operations; Complete flushes them as one atomic batch, and Commit flushes
// them into the open transaction before committing it.
//
// State machine: Idle -> Begin -> InTransaction -> Commit/Rollback -> Idle.
// Begin while InTransaction is a programmer error and is rejected.
type UnitOfWork struct {
	db      *gorm.DB
	log     *logger.Logger
	tx      *gorm.DB
	pending []func(tx *gorm.DB) error

	Customers     CustomerRepo
	Orders        OrderRepo
	Products      ProductRepo
	ShoppingCarts ShoppingCartRepo
	CartItems     CartItemRepo
}

func NewUnitOfWork(gdb *gorm.DB, baseLog *logger.Logger) *UnitOfWork {
	u := &UnitOfWork{db: gdb, log: baseLog.With("component", "UnitOfWork")}
	u.Customers = &customerRepo{uow: u, log: baseLog.With("repo", "CustomerRepo")}
	u.Orders = &orderRepo{uow: u, log: baseLog.With("repo", "OrderRepo")}
	u.Products = &productRepo{uow: u, log: baseLog.With("repo", "ProductRepo")}
	u.ShoppingCarts = &shoppingCartRepo{uow: u, log: baseLog.With("repo", "ShoppingCartRepo")}
	u.CartItems = &cartItemRepo{uow: u, log: baseLog.With("repo", "CartItemRepo")}
	return u
}

func (u *UnitOfWork) conn(ctx context.Context) *gorm.DB {
	if u.tx != nil {
		return u.tx.WithContext(ctx)
	}
	return u.db.WithContext(ctx)
}

func (u *UnitOfWork) enqueue(op func(tx *gorm.DB) error) {
	u.pending = append(u.pending, op)
}

func (u *UnitOfWork) InTransaction() bool { return u.tx != nil }

// Begin opens an explicit transaction for workflows that span more than one
// persistence step (checkout).
func (u *UnitOfWork) Begin(ctx context.Context) error {
	const op = "uow.begin"
	if u.tx != nil {
		return domain.NewError(domain.CodeInternal, op, "transaction already open", nil)
	}
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return MapError(op, tx.Error)
	}
	u.tx = tx
	return nil
}

// Complete flushes all pending writes as a single atomic batch. Inside an
// explicit transaction the batch runs on that transaction and the caller
// commits; outside, the batch gets its own transaction.
func (u *UnitOfWork) Complete(ctx context.Context) error {
	const op = "uow.complete"
	if len(u.pending) == 0 {
		return nil
	}
	ops := u.pending
	u.pending = nil
	if u.tx != nil {
		return MapError(op, u.flush(u.tx.WithContext(ctx), ops))
	}
	return MapError(op, u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return u.flush(tx, ops)
	}))
}

// Commit flushes pending writes into the open transaction and commits it. On
// any failure the transaction is rolled back and the original error returned;
// callers must not assume a partial commit succeeded.
func (u *UnitOfWork) Commit(ctx context.Context) error {
	const op = "uow.commit"
	if u.tx == nil {
		return domain.NewError(domain.CodeInternal, op, "no transaction open", nil)
	}
	ops := u.pending
	u.pending = nil
	if err := u.flush(u.tx.WithContext(ctx), ops); err != nil {
		u.Rollback()
		return MapError(op, err)
	}
	if err := u.tx.Commit().Error; err != nil {
		u.Rollback()
		return MapError(op, err)
	}
	u.tx = nil
	return nil
}

// Rollback discards the open transaction and any pending writes. Safe to call
// when no transaction is open.
func (u *UnitOfWork) Rollback() {
	if u.tx != nil {
		if err := u.tx.Rollback().Error; err != nil {
			u.log.Warn("rollback failed", "error", err)
		}
		u.tx = nil
	}
	u.pending = nil
}

func (u *UnitOfWork) flush(tx *gorm.DB, ops []func(tx *gorm.DB) error) error {
	for _, op := range ops {
		if err := op(tx); err != nil {
			return err
		}
	}
	return nil
}

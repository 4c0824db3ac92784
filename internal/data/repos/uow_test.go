package repos

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/calegray/commerce-backend/internal/data/repos/testutil"
	"github.com/calegray/commerce-backend/internal/domain"
)

func newProduct(t *testing.T, name, price string) *domain.Product {
	t.Helper()
	p, err := domain.NewProduct(name, decimal.RequireFromString(price))
	if err != nil {
		t.Fatalf("new product: %v", err)
	}
	return p
}

func TestCompleteFlushesPendingAsOneBatch(t *testing.T) {
	gdb := testutil.SQLiteDB(t)
	ctx := context.Background()

	uow := NewUnitOfWork(gdb, testutil.Logger(t))
	uow.Products.Add(newProduct(t, "A", "1.00"))
	uow.Products.Add(newProduct(t, "B", "2.00"))
	if err := uow.Complete(ctx); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	check := NewUnitOfWork(gdb, testutil.Logger(t))
	rows, err := check.Products.GetAll(ctx, true)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("want 2 products, got %d", len(rows))
	}
}

func TestCompleteIsAtomic(t *testing.T) {
	gdb := testutil.SQLiteDB(t)
	ctx := context.Background()

	first := newProduct(t, "A", "1.00")
	dup := newProduct(t, "B", "2.00")
	dup.ID = first.ID // forces a primary-key violation on the second insert

	uow := NewUnitOfWork(gdb, testutil.Logger(t))
	uow.Products.Add(first)
	uow.Products.Add(dup)
	err := uow.Complete(ctx)
	if !domain.IsCode(err, domain.CodeConflict) {
		t.Fatalf("Complete: got %v, want conflict", err)
	}

	check := NewUnitOfWork(gdb, testutil.Logger(t))
	rows, err := check.Products.GetAll(ctx, true)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("failed batch must persist nothing, got %d rows", len(rows))
	}
}

func TestBeginWhileInTransactionIsRejected(t *testing.T) {
	gdb := testutil.SQLiteDB(t)
	ctx := context.Background()

	uow := NewUnitOfWork(gdb, testutil.Logger(t))
	if err := uow.Begin(ctx); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	defer uow.Rollback()

	if err := uow.Begin(ctx); !domain.IsCode(err, domain.CodeInternal) {
		t.Fatalf("second Begin: got %v, want internal error", err)
	}
}

func TestRollbackDiscardsPendingWrites(t *testing.T) {
	gdb := testutil.SQLiteDB(t)
	ctx := context.Background()

	uow := NewUnitOfWork(gdb, testutil.Logger(t))
	if err := uow.Begin(ctx); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	uow.Products.Add(newProduct(t, "A", "1.00"))
	uow.Rollback()
	if uow.InTransaction() {
		t.Fatalf("rollback must return the unit of work to idle")
	}
	// pending queue was discarded with the transaction
	if err := uow.Complete(ctx); err != nil {
		t.Fatalf("Complete after rollback: %v", err)
	}

	check := NewUnitOfWork(gdb, testutil.Logger(t))
	rows, err := check.Products.GetAll(ctx, true)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("rolled-back writes must not be visible, got %d rows", len(rows))
	}
}

func TestCommitFailureRollsBack(t *testing.T) {
	gdb := testutil.SQLiteDB(t)
	ctx := context.Background()

	first := newProduct(t, "A", "1.00")
	dup := newProduct(t, "B", "2.00")
	dup.ID = first.ID

	uow := NewUnitOfWork(gdb, testutil.Logger(t))
	if err := uow.Begin(ctx); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	uow.Products.Add(first)
	uow.Products.Add(dup)
	if err := uow.Commit(ctx); err == nil {
		t.Fatalf("Commit must surface the flush failure")
	}
	if uow.InTransaction() {
		t.Fatalf("failed commit must return the unit of work to idle")
	}

	check := NewUnitOfWork(gdb, testutil.Logger(t))
	rows, err := check.Products.GetAll(ctx, true)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("failed commit must persist nothing, got %d rows", len(rows))
	}
}

func TestCommitWithoutTransaction(t *testing.T) {
	gdb := testutil.SQLiteDB(t)
	uow := NewUnitOfWork(gdb, testutil.Logger(t))
	if err := uow.Commit(context.Background()); !domain.IsCode(err, domain.CodeInternal) {
		t.Fatalf("Commit without Begin: got %v, want internal error", err)
	}
}

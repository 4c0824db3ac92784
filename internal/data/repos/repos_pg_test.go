package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/calegray/commerce-backend/internal/data/repos/testutil"
	"github.com/calegray/commerce-backend/internal/domain"
)

// Integration coverage against a real Postgres; every test runs inside a
// transaction rolled back on cleanup.

func pgUow(t *testing.T) (*UnitOfWork, context.Context) {
	t.Helper()
	gdb := testutil.DB(t)
	uow := NewUnitOfWork(gdb, testutil.Logger(t))
	uow.tx = testutil.Tx(t, gdb)
	return uow, context.Background()
}

func TestCustomerRepoRoundTrip(t *testing.T) {
	uow, ctx := pgUow(t)

	c, err := domain.NewCustomer("Ada", "Lovelace", "12 Analytical Way", "1815")
	if err != nil {
		t.Fatalf("new customer: %v", err)
	}
	uow.Customers.Add(c)
	if err := uow.Complete(ctx); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	got, err := uow.Customers.GetByID(ctx, c.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByID: got=%v err=%v", got, err)
	}
	if got.FirstName != "Ada" || got.PostalCode != "1815" {
		t.Fatalf("round-trip mismatch: %+v", got)
	}

	if missing, err := uow.Customers.GetByID(ctx, uuid.New()); err != nil || missing != nil {
		t.Fatalf("missing customer: got=%v err=%v", missing, err)
	}

	got.MarkDeleted()
	uow.Customers.Update(got)
	if err := uow.Complete(ctx); err != nil {
		t.Fatalf("Complete update: %v", err)
	}
	active, err := uow.Customers.GetAll(ctx, false)
	if err != nil {
		t.Fatalf("GetAll active: %v", err)
	}
	for _, row := range active {
		if row.ID == c.ID {
			t.Fatalf("soft-deleted customer must be excluded from active listing")
		}
	}
	all, err := uow.Customers.GetAll(ctx, true)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	found := false
	for _, row := range all {
		if row.ID == c.ID {
			found = true
		}
	}
	if !found {
		t.Fatalf("includeDeleted listing must contain the soft-deleted customer")
	}
}

func TestOrderRepoWithItems(t *testing.T) {
	uow, ctx := pgUow(t)
	c := testutil.SeedCustomer(t, uow.tx)
	p := testutil.SeedProduct(t, uow.tx, "Widget", "10.00")

	order := domain.NewOrder(c.ID)
	if err := order.AddItem(p, 2); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	uow.Orders.Add(order)
	if err := uow.Complete(ctx); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	got, err := uow.Orders.GetByIDWithItems(ctx, order.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByIDWithItems: got=%v err=%v", got, err)
	}
	if len(got.Items) != 1 || got.Items[0].Product == nil || got.Items[0].Product.Name != "Widget" {
		t.Fatalf("eager load must include items and product names: %+v", got.Items)
	}

	// line removal deletes the orphaned row
	got.RemoveItem(p.ID)
	uow.Orders.Update(got)
	if err := uow.Complete(ctx); err != nil {
		t.Fatalf("Complete update: %v", err)
	}
	again, err := uow.Orders.GetByIDWithItems(ctx, order.ID)
	if err != nil || again == nil {
		t.Fatalf("reload: got=%v err=%v", again, err)
	}
	if len(again.Items) != 0 {
		t.Fatalf("removed line must be deleted, got %d items", len(again.Items))
	}

	uow.Orders.Remove(again)
	if err := uow.Complete(ctx); err != nil {
		t.Fatalf("Complete remove: %v", err)
	}
	if gone, err := uow.Orders.GetByID(ctx, order.ID); err != nil || gone != nil {
		t.Fatalf("removed order must be gone: got=%v err=%v", gone, err)
	}
}

func TestCustomerOrdersByDate(t *testing.T) {
	uow, ctx := pgUow(t)
	c := testutil.SeedCustomer(t, uow.tx)
	p := testutil.SeedProduct(t, uow.tx, "Widget", "10.00")

	old := domain.NewOrder(c.ID)
	old.CreatedOnUTC = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := old.AddItem(p, 1); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	recent := domain.NewOrder(c.ID)
	if err := recent.AddItem(p, 2); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	uow.Orders.Add(old)
	uow.Orders.Add(recent)
	if err := uow.Complete(ctx); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	cutoff := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	rows, err := uow.Customers.GetOrdersByDate(ctx, c.ID, &cutoff, nil)
	if err != nil {
		t.Fatalf("GetOrdersByDate: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != recent.ID {
		t.Fatalf("date filter must return only the recent order, got %d", len(rows))
	}
	both, err := uow.Customers.GetOrdersByDate(ctx, c.ID, nil, nil)
	if err != nil {
		t.Fatalf("GetOrdersByDate all: %v", err)
	}
	if len(both) != 2 || both[0].ID != old.ID {
		t.Fatalf("unfiltered listing must be ascending by creation time")
	}
}

func TestShoppingCartRepoUniquePerCustomer(t *testing.T) {
	uow, ctx := pgUow(t)
	c := testutil.SeedCustomer(t, uow.tx)
	p := testutil.SeedProduct(t, uow.tx, "Widget", "10.00")

	cart := domain.NewShoppingCart(c.ID)
	if err := cart.AddItem(p, 1); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	uow.ShoppingCarts.Add(cart)
	if err := uow.Complete(ctx); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	got, err := uow.ShoppingCarts.GetByCustomerIDWithItems(ctx, c.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByCustomerIDWithItems: got=%v err=%v", got, err)
	}
	if len(got.Items) != 1 || got.Items[0].Product == nil {
		t.Fatalf("eager load must include items and products")
	}

	second := domain.NewShoppingCart(c.ID)
	uow.ShoppingCarts.Add(second)
	if err := uow.Complete(ctx); !domain.IsCode(err, domain.CodeConflict) {
		t.Fatalf("second cart for one customer: got %v, want conflict", err)
	}
}

func TestShoppingCartRemoveCascadesItems(t *testing.T) {
	uow, ctx := pgUow(t)
	c := testutil.SeedCustomer(t, uow.tx)
	p := testutil.SeedProduct(t, uow.tx, "Widget", "10.00")

	cart := domain.NewShoppingCart(c.ID)
	if err := cart.AddItem(p, 3); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	uow.ShoppingCarts.Add(cart)
	if err := uow.Complete(ctx); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	uow.ShoppingCarts.Remove(cart)
	if err := uow.Complete(ctx); err != nil {
		t.Fatalf("Complete remove: %v", err)
	}
	if gone, err := uow.ShoppingCarts.GetByCustomerID(ctx, c.ID); err != nil || gone != nil {
		t.Fatalf("cart must be gone: got=%v err=%v", gone, err)
	}
	var count int64
	if err := uow.tx.Model(&domain.CartItem{}).Where("shopping_cart_id = ?", cart.ID).Count(&count).Error; err != nil {
		t.Fatalf("count items: %v", err)
	}
	if count != 0 {
		t.Fatalf("cart removal must delete its items, %d left", count)
	}
}

func TestProductRepoListing(t *testing.T) {
	uow, ctx := pgUow(t)

	p, err := domain.NewProduct("Widget", decimal.RequireFromString("10.00"))
	if err != nil {
		t.Fatalf("new product: %v", err)
	}
	uow.Products.Add(p)
	if err := uow.Complete(ctx); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	p.MarkDeleted()
	uow.Products.Update(p)
	if err := uow.Complete(ctx); err != nil {
		t.Fatalf("Complete update: %v", err)
	}

	active, err := uow.Products.GetAll(ctx, false)
	if err != nil {
		t.Fatalf("GetAll active: %v", err)
	}
	for _, row := range active {
		if row.ID == p.ID {
			t.Fatalf("soft-deleted product must be excluded from active listing")
		}
	}
}

package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/calegray/commerce-backend/internal/data/cache"
	"github.com/calegray/commerce-backend/internal/data/repos/testutil"
	"github.com/calegray/commerce-backend/internal/domain"
	"github.com/calegray/commerce-backend/internal/pkg/logger"
)

type env struct {
	gdb *gorm.DB
	log *logger.Logger

	customers CustomerCommands
	products  ProductCommands
	orders    OrderCommands
	carts     ShoppingCartCommands

	customerQ CustomerQueries
	productQ  ProductQueries
	orderQ    OrderQueries
	cartQ     ShoppingCartQueries
}

func newEnv(t *testing.T, cartCache cache.CartCache) *env {
	t.Helper()
	gdb := testutil.SQLiteDB(t)
	log := testutil.Logger(t)
	return &env{
		gdb:       gdb,
		log:       log,
		customers: NewCustomerCommands(gdb, log),
		products:  NewProductCommands(gdb, log),
		orders:    NewOrderCommands(gdb, log),
		carts:     NewShoppingCartCommands(gdb, log, cartCache),
		customerQ: NewCustomerQueries(gdb, log),
		productQ:  NewProductQueries(gdb, log),
		orderQ:    NewOrderQueries(gdb, log),
		cartQ:     NewShoppingCartQueries(gdb, log, cartCache),
	}
}

func (e *env) seedCustomer(t *testing.T) uuid.UUID {
	t.Helper()
	id, err := e.customers.CreateCustomer(context.Background(), CreateCustomerCommand{
		FirstName:  "Ada",
		LastName:   "Lovelace",
		Address:    "12 Analytical Way",
		PostalCode: "1815",
	})
	require.NoError(t, err)
	return id
}

func (e *env) seedProduct(t *testing.T, name, price string) uuid.UUID {
	t.Helper()
	id, err := e.products.CreateProduct(context.Background(), CreateProductCommand{
		Name:  name,
		Price: decimal.RequireFromString(price),
	})
	require.NoError(t, err)
	return id
}

func TestAddToCartCreatesCartAndMergesLines(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()
	customerID := e.seedCustomer(t)
	productID := e.seedProduct(t, "Widget", "10.00")

	require.NoError(t, e.carts.AddToCart(ctx, AddToCartCommand{CustomerID: customerID, ProductID: productID, Quantity: 2}))
	require.NoError(t, e.carts.AddToCart(ctx, AddToCartCommand{CustomerID: customerID, ProductID: productID, Quantity: 3}))

	dto, err := e.cartQ.GetShoppingCart(ctx, customerID)
	require.NoError(t, err)
	require.Len(t, dto.Items, 1)
	require.Equal(t, 5, dto.Items[0].Quantity)
	require.True(t, dto.TotalPrice.Equal(decimal.RequireFromString("50.00")),
		"total = %s", dto.TotalPrice)
	require.Equal(t, "Widget", dto.Items[0].ProductName)
}

func TestAddToCartUnknownProduct(t *testing.T) {
	e := newEnv(t, nil)
	customerID := e.seedCustomer(t)

	err := e.carts.AddToCart(context.Background(), AddToCartCommand{
		CustomerID: customerID,
		ProductID:  uuid.New(),
		Quantity:   1,
	})
	require.True(t, domain.IsCode(err, domain.CodeNotFound), "got %v", err)
}

func TestAddToCartDeletedProduct(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()
	customerID := e.seedCustomer(t)
	productID := e.seedProduct(t, "Retired", "1.00")
	require.NoError(t, e.products.DeleteProduct(ctx, productID))

	err := e.carts.AddToCart(ctx, AddToCartCommand{CustomerID: customerID, ProductID: productID, Quantity: 1})
	require.True(t, domain.IsCode(err, domain.CodeNotFound), "got %v", err)
}

func TestUpdateAndRemoveCartItem(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()
	customerID := e.seedCustomer(t)
	productID := e.seedProduct(t, "Widget", "10.00")

	require.NoError(t, e.carts.AddToCart(ctx, AddToCartCommand{CustomerID: customerID, ProductID: productID, Quantity: 2}))
	require.NoError(t, e.carts.UpdateCartItem(ctx, UpdateCartItemCommand{CustomerID: customerID, ProductID: productID, Quantity: 7}))

	dto, err := e.cartQ.GetShoppingCart(ctx, customerID)
	require.NoError(t, err)
	require.Equal(t, 7, dto.Items[0].Quantity)

	require.NoError(t, e.carts.RemoveFromCart(ctx, customerID, productID))
	// removing an absent line is a no-op
	require.NoError(t, e.carts.RemoveFromCart(ctx, customerID, productID))

	dto, err = e.cartQ.GetShoppingCart(ctx, customerID)
	require.NoError(t, err)
	require.Equal(t, 0, dto.ItemCount)
	require.True(t, dto.TotalPrice.IsZero())
}

func TestClearCartWithoutCartIsNoop(t *testing.T) {
	e := newEnv(t, nil)
	require.NoError(t, e.carts.ClearCart(context.Background(), uuid.New()))
}

func TestCheckoutConvertsCartToOrder(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()
	customerID := e.seedCustomer(t)
	widget := e.seedProduct(t, "Widget", "10.00")
	gadget := e.seedProduct(t, "Gadget", "22.50")

	require.NoError(t, e.carts.AddToCart(ctx, AddToCartCommand{CustomerID: customerID, ProductID: widget, Quantity: 2}))
	require.NoError(t, e.carts.AddToCart(ctx, AddToCartCommand{CustomerID: customerID, ProductID: gadget, Quantity: 2}))

	orderID, err := e.carts.Checkout(ctx, customerID)
	require.NoError(t, err)

	order, err := e.orderQ.GetOrderByID(ctx, orderID)
	require.NoError(t, err)
	require.Equal(t, customerID, order.CustomerID)
	require.Len(t, order.Items, 2)
	require.True(t, order.TotalPrice.Equal(decimal.RequireFromString("65.00")),
		"total = %s", order.TotalPrice)

	_, err = e.cartQ.GetShoppingCart(ctx, customerID)
	require.True(t, domain.IsCode(err, domain.CodeNotFound), "cart should be gone, got %v", err)
}

func TestCheckoutEmptyCart(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()
	customerID := e.seedCustomer(t)
	productID := e.seedProduct(t, "Widget", "10.00")

	require.NoError(t, e.carts.AddToCart(ctx, AddToCartCommand{CustomerID: customerID, ProductID: productID, Quantity: 1}))
	require.NoError(t, e.carts.RemoveFromCart(ctx, customerID, productID))

	_, err := e.carts.Checkout(ctx, customerID)
	require.True(t, domain.IsCode(err, domain.CodeInvalidState), "got %v", err)
}

func TestCheckoutWithoutCart(t *testing.T) {
	e := newEnv(t, nil)
	customerID := e.seedCustomer(t)

	_, err := e.carts.Checkout(context.Background(), customerID)
	require.True(t, domain.IsCode(err, domain.CodeNotFound), "got %v", err)
}

func TestCheckoutFailureLeavesCartIntact(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()
	customerID := e.seedCustomer(t)
	productID := e.seedProduct(t, "Widget", "10.00")
	require.NoError(t, e.carts.AddToCart(ctx, AddToCartCommand{CustomerID: customerID, ProductID: productID, Quantity: 1}))

	// sabotage the order insert so the commit's flush fails
	require.NoError(t, e.gdb.Exec("DROP TABLE orders").Error)

	_, err := e.carts.Checkout(ctx, customerID)
	require.Error(t, err)

	dto, qerr := e.cartQ.GetShoppingCart(ctx, customerID)
	require.NoError(t, qerr)
	require.Equal(t, 1, dto.ItemCount)
}

func TestOrderItemLifecycle(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()
	customerID := e.seedCustomer(t)
	widget := e.seedProduct(t, "Widget", "10.00")
	gadget := e.seedProduct(t, "Gadget", "2.50")

	orderID, err := e.orders.CreateOrder(ctx, CreateOrderCommand{CustomerID: customerID})
	require.NoError(t, err)

	require.NoError(t, e.orders.AddOrderItem(ctx, AddOrderItemCommand{OrderID: orderID, ProductID: widget, Quantity: 2}))
	require.NoError(t, e.orders.AddOrderItem(ctx, AddOrderItemCommand{OrderID: orderID, ProductID: gadget, Quantity: 4}))

	dto, err := e.orderQ.GetOrderByID(ctx, orderID)
	require.NoError(t, err)
	require.True(t, dto.TotalPrice.Equal(decimal.RequireFromString("30.00")), "total = %s", dto.TotalPrice)

	require.NoError(t, e.orders.UpdateOrderItem(ctx, UpdateOrderItemCommand{OrderID: orderID, ProductID: widget, Quantity: 1}))
	require.NoError(t, e.orders.RemoveOrderItem(ctx, orderID, gadget))

	dto, err = e.orderQ.GetOrderByID(ctx, orderID)
	require.NoError(t, err)
	require.Len(t, dto.Items, 1)
	require.True(t, dto.TotalPrice.Equal(decimal.RequireFromString("10.00")), "total = %s", dto.TotalPrice)

	require.NoError(t, e.orders.DeleteOrder(ctx, orderID))
	_, err = e.orderQ.GetOrderByID(ctx, orderID)
	require.True(t, domain.IsCode(err, domain.CodeNotFound), "got %v", err)
}

func TestCreateOrderForDeletedCustomer(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()
	customerID := e.seedCustomer(t)
	require.NoError(t, e.customers.DeleteCustomer(ctx, customerID))

	_, err := e.orders.CreateOrder(ctx, CreateOrderCommand{CustomerID: customerID})
	require.True(t, domain.IsCode(err, domain.CodeNotFound), "got %v", err)
}

func TestCustomerSoftDeleteFiltering(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()
	keepID := e.seedCustomer(t)
	dropID, err := e.customers.CreateCustomer(ctx, CreateCustomerCommand{
		FirstName:  "Grace",
		LastName:   "Hopper",
		Address:    "9 Compiler Ct",
		PostalCode: "1906",
	})
	require.NoError(t, err)

	require.NoError(t, e.customers.DeleteCustomer(ctx, dropID))
	// soft delete is idempotent
	require.NoError(t, e.customers.DeleteCustomer(ctx, dropID))

	active, err := e.customerQ.GetAllCustomers(ctx, false)
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Equal(t, keepID, active[0].ID)

	all, err := e.customerQ.GetAllCustomers(ctx, true)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestGetCustomerWithOrders(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()
	customerID := e.seedCustomer(t)
	productID := e.seedProduct(t, "Widget", "10.00")

	require.NoError(t, e.carts.AddToCart(ctx, AddToCartCommand{CustomerID: customerID, ProductID: productID, Quantity: 3}))
	orderID, err := e.carts.Checkout(ctx, customerID)
	require.NoError(t, err)

	detail, err := e.customerQ.GetCustomerWithOrders(ctx, customerID)
	require.NoError(t, err)
	require.Len(t, detail.Orders, 1)
	require.Equal(t, orderID, detail.Orders[0].ID)
	require.Equal(t, "Widget", detail.Orders[0].Items[0].ProductName)
}

func TestUpdateCustomerRejectsBlankField(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()
	customerID := e.seedCustomer(t)

	err := e.customers.UpdateCustomer(ctx, UpdateCustomerCommand{
		ID:         customerID,
		FirstName:  " ",
		LastName:   "Lovelace",
		Address:    "12 Analytical Way",
		PostalCode: "1815",
	})
	require.True(t, domain.IsCode(err, domain.CodeValidation), "got %v", err)

	dto, err := e.customerQ.GetCustomerByID(ctx, customerID)
	require.NoError(t, err)
	require.Equal(t, "Ada", dto.FirstName)
}

type fakeCartCache struct {
	store   map[uuid.UUID][]byte
	deletes int
}

func newFakeCartCache() *fakeCartCache {
	return &fakeCartCache{store: map[uuid.UUID][]byte{}}
}

func (f *fakeCartCache) Get(_ context.Context, customerID uuid.UUID, dest interface{}) error {
	raw, ok := f.store[customerID]
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (f *fakeCartCache) Set(_ context.Context, customerID uuid.UUID, cart interface{}) error {
	raw, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	f.store[customerID] = raw
	return nil
}

func (f *fakeCartCache) Delete(_ context.Context, customerID uuid.UUID) error {
	delete(f.store, customerID)
	f.deletes++
	return nil
}

func TestCartQueryUsesCache(t *testing.T) {
	cc := newFakeCartCache()
	e := newEnv(t, cc)
	ctx := context.Background()
	customerID := e.seedCustomer(t)
	productID := e.seedProduct(t, "Widget", "10.00")

	require.NoError(t, e.carts.AddToCart(ctx, AddToCartCommand{CustomerID: customerID, ProductID: productID, Quantity: 1}))
	require.Greater(t, cc.deletes, 0, "write should invalidate the cache")

	dto, err := e.cartQ.GetShoppingCart(ctx, customerID)
	require.NoError(t, err)
	require.Equal(t, 1, dto.ItemCount)

	// wipe the tables; a second read must be served from the cache
	require.NoError(t, e.gdb.Exec("DELETE FROM cart_items").Error)
	require.NoError(t, e.gdb.Exec("DELETE FROM shopping_carts").Error)

	cached, err := e.cartQ.GetShoppingCart(ctx, customerID)
	require.NoError(t, err)
	require.Equal(t, 1, cached.ItemCount)
	require.Equal(t, dto.ID, cached.ID)
}

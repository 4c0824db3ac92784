package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/calegray/commerce-backend/internal/http/handlers"
	httpMW "github.com/calegray/commerce-backend/internal/http/middleware"
	"github.com/calegray/commerce-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	CORSOrigins []string

	CustomerHandler *httpH.CustomerHandler
	ProductHandler  *httpH.ProductHandler
	OrderHandler    *httpH.OrderHandler
	CartHandler     *httpH.CartHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Customers
		if cfg.CustomerHandler != nil {
			api.POST("/customers", cfg.CustomerHandler.CreateCustomer)
			api.GET("/customers", cfg.CustomerHandler.ListCustomers)
			api.GET("/customers/:id", cfg.CustomerHandler.GetCustomer)
			api.GET("/customers/:id/with-orders", cfg.CustomerHandler.GetCustomerWithOrders)
			api.PUT("/customers/:id", cfg.CustomerHandler.UpdateCustomer)
			api.DELETE("/customers/:id", cfg.CustomerHandler.DeleteCustomer)
		}

		// Products
		if cfg.ProductHandler != nil {
			api.POST("/products", cfg.ProductHandler.CreateProduct)
			api.GET("/products", cfg.ProductHandler.ListProducts)
			api.GET("/products/:id", cfg.ProductHandler.GetProduct)
			api.PUT("/products/:id", cfg.ProductHandler.UpdateProduct)
			api.DELETE("/products/:id", cfg.ProductHandler.DeleteProduct)
		}

		// Orders
		if cfg.OrderHandler != nil {
			api.POST("/orders", cfg.OrderHandler.CreateOrder)
			api.GET("/orders/:id", cfg.OrderHandler.GetOrder)
			api.GET("/orders/customer/:customerId", cfg.OrderHandler.ListCustomerOrders)
			api.POST("/orders/:id/items", cfg.OrderHandler.AddOrderItem)
			api.PUT("/orders/:id/items/:productId", cfg.OrderHandler.UpdateOrderItem)
			api.DELETE("/orders/:id/items/:productId", cfg.OrderHandler.RemoveOrderItem)
			api.DELETE("/orders/:id", cfg.OrderHandler.DeleteOrder)
		}

		// Shopping cart
		if cfg.CartHandler != nil {
			api.GET("/cart/customer/:customerId", cfg.CartHandler.GetCart)
			api.POST("/cart/customer/:customerId/items", cfg.CartHandler.AddItem)
			api.PUT("/cart/customer/:customerId/items/:productId", cfg.CartHandler.UpdateItem)
			api.DELETE("/cart/customer/:customerId/items/:productId", cfg.CartHandler.RemoveItem)
			api.DELETE("/cart/customer/:customerId", cfg.CartHandler.ClearCart)
			api.POST("/cart/customer/:customerId/checkout", cfg.CartHandler.Checkout)
		}
	}

	return r
}

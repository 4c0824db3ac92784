package app

import (
	"gorm.io/gorm"

	"github.com/calegray/commerce-backend/internal/data/cache"
	"github.com/calegray/commerce-backend/internal/pkg/logger"
	"github.com/calegray/commerce-backend/internal/services"
)

type Services struct {
	CustomerCommands services.CustomerCommands
	CustomerQueries  services.CustomerQueries
	ProductCommands  services.ProductCommands
	ProductQueries   services.ProductQueries
	OrderCommands    services.OrderCommands
	OrderQueries     services.OrderQueries
	CartCommands     services.ShoppingCartCommands
	CartQueries      services.ShoppingCartQueries
}

func wireServices(db *gorm.DB, log *logger.Logger, cartCache cache.CartCache) Services {
	return Services{
		CustomerCommands: services.NewCustomerCommands(db, log),
		CustomerQueries:  services.NewCustomerQueries(db, log),
		ProductCommands:  services.NewProductCommands(db, log),
		ProductQueries:   services.NewProductQueries(db, log),
		OrderCommands:    services.NewOrderCommands(db, log),
		OrderQueries:     services.NewOrderQueries(db, log),
		CartCommands:     services.NewShoppingCartCommands(db, log, cartCache),
		CartQueries:      services.NewShoppingCartQueries(db, log, cartCache),
	}
}

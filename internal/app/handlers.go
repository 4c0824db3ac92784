package app

import (
	httpH "github.com/calegray/commerce-backend/internal/http/handlers"
	"github.com/calegray/commerce-backend/internal/pkg/logger"
)

type Handlers struct {
	Customer *httpH.CustomerHandler
	Product  *httpH.ProductHandler
	Order    *httpH.OrderHandler
	Cart     *httpH.CartHandler
	Health   *httpH.HealthHandler
}

func wireHandlers(log *logger.Logger, svc Services) Handlers {
	return Handlers{
		Customer: httpH.NewCustomerHandler(log, svc.CustomerCommands, svc.CustomerQueries),
		Product:  httpH.NewProductHandler(log, svc.ProductCommands, svc.ProductQueries),
		Order:    httpH.NewOrderHandler(log, svc.OrderCommands, svc.OrderQueries),
		Cart:     httpH.NewCartHandler(log, svc.CartCommands, svc.CartQueries),
		Health:   httpH.NewHealthHandler(),
	}
}

package app

import (
	internalhttp "github.com/calegray/commerce-backend/internal/http"
	"github.com/calegray/commerce-backend/internal/pkg/logger"
)

func wireServer(log *logger.Logger, cfg Config, h Handlers) *internalhttp.Server {
	return internalhttp.NewServer(internalhttp.RouterConfig{
		Log:             log,
		CORSOrigins:     cfg.CORSOrigins,
		CustomerHandler: h.Customer,
		ProductHandler:  h.Product,
		OrderHandler:    h.Order,
		CartHandler:     h.Cart,
		HealthHandler:   h.Health,
	})
}

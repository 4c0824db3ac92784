package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/calegray/commerce-backend/internal/domain"
	"github.com/calegray/commerce-backend/internal/http/response"
	"github.com/calegray/commerce-backend/internal/pkg/logger"
	"github.com/calegray/commerce-backend/internal/services"
)

type CartHandler struct {
	log      *logger.Logger
	commands services.ShoppingCartCommands
	queries  services.ShoppingCartQueries
}

func NewCartHandler(log *logger.Logger, commands services.ShoppingCartCommands, queries services.ShoppingCartQueries) *CartHandler {
	return &CartHandler{
		log:      log.With("handler", "CartHandler"),
		commands: commands,
		queries:  queries,
	}
}

func (h *CartHandler) GetCart(c *gin.Context) {
	customerID, ok := uuidParam(c, "customerId")
	if !ok {
		return
	}
	dto, err := h.queries.GetShoppingCart(c.Request.Context(), customerID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, dto)
}

func (h *CartHandler) AddItem(c *gin.Context) {
	customerID, ok := uuidParam(c, "customerId")
	if !ok {
		return
	}
	var cmd services.AddToCartCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	cmd.CustomerID = customerID
	if err := h.commands.AddToCart(c.Request.Context(), cmd); err != nil {
		if domain.CodeOf(err) == domain.CodeInternal {
			h.log.Error("AddItem failed", "error", err, "customer_id", customerID)
		}
		response.RespondDomainError(c, err)
		return
	}
	response.RespondNoContent(c)
}

func (h *CartHandler) UpdateItem(c *gin.Context) {
	customerID, ok := uuidParam(c, "customerId")
	if !ok {
		return
	}
	productID, ok := uuidParam(c, "productId")
	if !ok {
		return
	}
	var cmd services.UpdateCartItemCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	cmd.CustomerID = customerID
	cmd.ProductID = productID
	if err := h.commands.UpdateCartItem(c.Request.Context(), cmd); err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondNoContent(c)
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	customerID, ok := uuidParam(c, "customerId")
	if !ok {
		return
	}
	productID, ok := uuidParam(c, "productId")
	if !ok {
		return
	}
	if err := h.commands.RemoveFromCart(c.Request.Context(), customerID, productID); err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondNoContent(c)
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	customerID, ok := uuidParam(c, "customerId")
	if !ok {
		return
	}
	if err := h.commands.ClearCart(c.Request.Context(), customerID); err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondNoContent(c)
}

func (h *CartHandler) Checkout(c *gin.Context) {
	customerID, ok := uuidParam(c, "customerId")
	if !ok {
		return
	}
	orderID, err := h.commands.Checkout(c.Request.Context(), customerID)
	if err != nil {
		if domain.CodeOf(err) == domain.CodeInternal {
			h.log.Error("Checkout failed", "error", err, "customer_id", customerID)
		}
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"order_id": orderID})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/calegray/commerce-backend/internal/domain"
	"github.com/calegray/commerce-backend/internal/http/response"
	"github.com/calegray/commerce-backend/internal/pkg/logger"
	"github.com/calegray/commerce-backend/internal/services"
)

type OrderHandler struct {
	log      *logger.Logger
	commands services.OrderCommands
	queries  services.OrderQueries
}

func NewOrderHandler(log *logger.Logger, commands services.OrderCommands, queries services.OrderQueries) *OrderHandler {
	return &OrderHandler{
		log:      log.With("handler", "OrderHandler"),
		commands: commands,
		queries:  queries,
	}
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	dto, err := h.queries.GetOrderByID(c.Request.Context(), id)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, dto)
}

func (h *OrderHandler) ListCustomerOrders(c *gin.Context) {
	customerID, ok := uuidParam(c, "customerId")
	if !ok {
		return
	}
	start, ok := timeQuery(c, "start")
	if !ok {
		return
	}
	end, ok := timeQuery(c, "end")
	if !ok {
		return
	}
	dtos, err := h.queries.GetCustomerOrdersByDate(c.Request.Context(), customerID, start, end)
	if err != nil {
		h.log.Error("ListCustomerOrders failed", "error", err, "customer_id", customerID)
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"orders": dtos})
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var cmd services.CreateOrderCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	id, err := h.commands.CreateOrder(c.Request.Context(), cmd)
	if err != nil {
		if domain.CodeOf(err) == domain.CodeInternal {
			h.log.Error("CreateOrder failed", "error", err)
		}
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"id": id})
}

func (h *OrderHandler) AddOrderItem(c *gin.Context) {
	orderID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var cmd services.AddOrderItemCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	cmd.OrderID = orderID
	if err := h.commands.AddOrderItem(c.Request.Context(), cmd); err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondNoContent(c)
}

func (h *OrderHandler) UpdateOrderItem(c *gin.Context) {
	orderID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	productID, ok := uuidParam(c, "productId")
	if !ok {
		return
	}
	var cmd services.UpdateOrderItemCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	cmd.OrderID = orderID
	cmd.ProductID = productID
	if err := h.commands.UpdateOrderItem(c.Request.Context(), cmd); err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondNoContent(c)
}

func (h *OrderHandler) RemoveOrderItem(c *gin.Context) {
	orderID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	productID, ok := uuidParam(c, "productId")
	if !ok {
		return
	}
	if err := h.commands.RemoveOrderItem(c.Request.Context(), orderID, productID); err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondNoContent(c)
}

func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.commands.DeleteOrder(c.Request.Context(), id); err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondNoContent(c)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/calegray/commerce-backend/internal/domain"
	"github.com/calegray/commerce-backend/internal/http/response"
	"github.com/calegray/commerce-backend/internal/pkg/logger"
	"github.com/calegray/commerce-backend/internal/services"
)

type CustomerHandler struct {
	log      *logger.Logger
	commands services.CustomerCommands
	queries  services.CustomerQueries
}

func NewCustomerHandler(log *logger.Logger, commands services.CustomerCommands, queries services.CustomerQueries) *CustomerHandler {
	return &CustomerHandler{
		log:      log.With("handler", "CustomerHandler"),
		commands: commands,
		queries:  queries,
	}
}

func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var cmd services.CreateCustomerCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	id, err := h.commands.CreateCustomer(c.Request.Context(), cmd)
	if err != nil {
		if domain.CodeOf(err) == domain.CodeInternal {
			h.log.Error("CreateCustomer failed", "error", err)
		}
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"id": id})
}

func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	dto, err := h.queries.GetCustomerByID(c.Request.Context(), id)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, dto)
}

func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	dtos, err := h.queries.GetAllCustomers(c.Request.Context(), includeDeletedQuery(c))
	if err != nil {
		h.log.Error("ListCustomers failed", "error", err)
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"customers": dtos})
}

func (h *CustomerHandler) GetCustomerWithOrders(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	dto, err := h.queries.GetCustomerWithOrders(c.Request.Context(), id)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, dto)
}

func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var cmd services.UpdateCustomerCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	cmd.ID = id
	if err := h.commands.UpdateCustomer(c.Request.Context(), cmd); err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondNoContent(c)
}

func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.commands.DeleteCustomer(c.Request.Context(), id); err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondNoContent(c)
}

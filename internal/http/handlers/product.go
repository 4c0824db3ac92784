package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/calegray/commerce-backend/internal/domain"
	"github.com/calegray/commerce-backend/internal/http/response"
	"github.com/calegray/commerce-backend/internal/pkg/logger"
	"github.com/calegray/commerce-backend/internal/services"
)

type ProductHandler struct {
	log      *logger.Logger
	commands services.ProductCommands
	queries  services.ProductQueries
}

func NewProductHandler(log *logger.Logger, commands services.ProductCommands, queries services.ProductQueries) *ProductHandler {
	return &ProductHandler{
		log:      log.With("handler", "ProductHandler"),
		commands: commands,
		queries:  queries,
	}
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var cmd services.CreateProductCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	id, err := h.commands.CreateProduct(c.Request.Context(), cmd)
	if err != nil {
		if domain.CodeOf(err) == domain.CodeInternal {
			h.log.Error("CreateProduct failed", "error", err)
		}
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"id": id})
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	dto, err := h.queries.GetProductByID(c.Request.Context(), id)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, dto)
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	dtos, err := h.queries.GetAllProducts(c.Request.Context(), includeDeletedQuery(c))
	if err != nil {
		h.log.Error("ListProducts failed", "error", err)
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"products": dtos})
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var cmd services.UpdateProductCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	cmd.ID = id
	if err := h.commands.UpdateProduct(c.Request.Context(), cmd); err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondNoContent(c)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.commands.DeleteProduct(c.Request.Context(), id); err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondNoContent(c)
}

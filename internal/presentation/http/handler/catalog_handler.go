package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sonitraders/invoicify-api/internal/application/service"
	"github.com/sonitraders/invoicify-api/internal/domain/entity"
	"github.com/sonitraders/invoicify-api/internal/presentation/http/dto/response"
)

// CatalogHandler handles catalog HTTP requests backed by the inventory
// service
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// List handles listing catalog items. Only items with remaining stock are
// offered for selection unless all=true is passed.
// @Summary List Catalog Items
// @Description Get selectable catalog items from the inventory service for the line item picker
// @Tags catalog
// @Produce json
// @Param search query string false "Search term"
// @Param all query bool false "Include sold-out items"
// @Success 200 {object} response.APIResponse
// @Router /catalog/items [get]
func (h *CatalogHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var items []entity.CatalogItem
	var err error
	if c.Query("all") == "true" {
		items, err = h.catalogService.ListAll(ctx, c.Query("search"))
	} else {
		items, err = h.catalogService.ListItems(ctx, c.Query("search"))
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Catalog items retrieved successfully", items)
}

// Get handles getting one catalog item
// @Summary Get Catalog Item
// @Description Get one catalog item by ID
// @Tags catalog
// @Produce json
// @Param id path string true "Catalog item ID"
// @Success 200 {object} response.APIResponse
// @Router /catalog/items/{id} [get]
func (h *CatalogHandler) Get(c *gin.Context) {
	item, err := h.catalogService.GetItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Catalog item retrieved successfully", item)
}

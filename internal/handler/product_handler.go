package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"stockflow/internal/service"
)

// ProductHandler handles product catalog endpoints.
type ProductHandler struct {
	productService service.ProductService
	alertService   service.AlertService
}

// NewProductHandler creates a new product handler.
func NewProductHandler(productService service.ProductService, alertService service.AlertService) *ProductHandler {
	return &ProductHandler{productService: productService, alertService: alertService}
}

// ProductRequest is the body for creating or replacing a product.
// Price accepts a JSON number or a decimal string.
type ProductRequest struct {
	Name          string          `json:"name" validate:"required,max=255"`
	SKU           string          `json:"sku" validate:"required,max=100"`
	Description   string          `json:"description"`
	SectorID      uint            `json:"sector_id" validate:"required"`
	Price         decimal.Decimal `json:"price" swaggertype:"string" example:"19.99"`
	StockQuantity *int            `json:"stock_quantity" validate:"required,min=0"`
	MinStock      *int            `json:"min_stock" validate:"omitempty,min=0"`
}

func (r ProductRequest) input() service.ProductInput {
	return service.ProductInput{
		Name:          r.Name,
		SKU:           r.SKU,
		Description:   r.Description,
		SectorID:      r.SectorID,
		Price:         r.Price,
		StockQuantity: r.StockQuantity,
		MinStock:      r.MinStock,
	}
}

// CreatedResponse acknowledges a created resource.
type CreatedResponse struct {
	Message string `json:"message"`
	ID      uint   `json:"id"`
}

// NotifyResponse reports how many alerts a manual check raised.
type NotifyResponse struct {
	Created int `json:"created"`
}

// List godoc
// @Summary List products
// @Tags products
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.ProductView
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.productService.ListProducts(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, products)
}

// Get godoc
// @Summary Get product by id
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} model.ProductView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	product, err := h.productService.GetProduct(c.Request().Context(), id)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, product)
}

// LowStock godoc
// @Summary List low stock products
// @Description Products whose stock is at or below their minimum, emptiest first.
// @Tags products
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.ProductView
// @Failure 401 {object} errors.ErrorResponse
// @Router /products/low-stock [get]
func (h *ProductHandler) LowStock(c echo.Context) error {
	products, err := h.productService.ListLowStockProducts(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, products)
}

// Create godoc
// @Summary Create product
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ProductRequest true "Product"
// @Success 201 {object} CreatedResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req ProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	id, err := h.productService.CreateProduct(c.Request().Context(), currentUserID(c), req.input())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, CreatedResponse{Message: "product created successfully", ID: id})
}

// Update godoc
// @Summary Update product
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param request body ProductRequest true "Product"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req ProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.productService.UpdateProduct(c.Request().Context(), id, req.input()); err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "product updated successfully"})
}

// Delete godoc
// @Summary Delete product
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.productService.DeleteProduct(c.Request().Context(), id); err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "product deleted successfully"})
}

// Notify godoc
// @Summary Run the low stock check for a product
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} NotifyResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /products/{id}/notify [post]
func (h *ProductHandler) Notify(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	created, err := h.alertService.NotifyIfLowStock(c.Request().Context(), id)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, NotifyResponse{Created: created})
}

// DebugSKUs godoc
// @Summary List stored SKUs with their normalized form
// @Tags debug
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.SKUEntry
// @Router /debug/skus [get]
func (h *ProductHandler) DebugSKUs(c echo.Context) error {
	entries, err := h.productService.ListSKUs(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, entries)
}

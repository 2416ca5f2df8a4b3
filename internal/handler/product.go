package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/retail-pos-backend/internal/model"
	"github.com/iliyamo/retail-pos-backend/internal/repository"
)

// ProductStore is the repository surface the product endpoints use.
type ProductStore interface {
	List(ctx context.Context) ([]*model.Product, error)
	ListForStore(ctx context.Context) ([]*model.Product, error)
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	Create(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, id int64) error
}

// ProductHandler serves the product CRUD under /v1/products.
type ProductHandler struct {
	Products ProductStore
}

func NewProductHandler(products ProductStore) *ProductHandler {
	return &ProductHandler{Products: products}
}

type createProductReq struct {
	Name          string  `json:"name" validate:"required"`
	Price         float64 `json:"price" validate:"gte=0"`
	StockQuantity float64 `json:"stock_quantity"`
	CategoryID    int64   `json:"category_id" validate:"required"`
}

// ListProducts handles GET /v1/products with the category name joined.
func (h *ProductHandler) ListProducts(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	items, err := h.Products.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, items)
}

// GetProduct handles GET /v1/products/:id.
func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	p, err := h.Products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, p)
}

// CreateProduct handles POST /v1/products.  The category id is only
// checked by the foreign key; a bad one surfaces as a generic failure.
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req createProductReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and category_id are required"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	p := &model.Product{
		Name:          req.Name,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		CategoryID:    req.CategoryID,
	}
	if err := h.Products.Create(ctx, p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create product"})
	}
	return c.JSON(http.StatusCreated, p)
}

// DeleteProduct handles DELETE /v1/products/:id.  Ledger entries that
// reference the product are left alone; they carry their own name
// snapshot.
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Products.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

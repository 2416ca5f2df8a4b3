package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/retail-pos-backend/internal/repository"
	"github.com/iliyamo/retail-pos-backend/internal/utils"
)

// SupplyHandler serves the supply side of the ledger: single stock
// additions, multi-line deliveries and the supply history.
type SupplyHandler struct {
	Ledger LedgerStore
}

func NewSupplyHandler(ledger LedgerStore) *SupplyHandler {
	return &SupplyHandler{Ledger: ledger}
}

// supplyLineReq is one line of an add-multiple-stock request.
type supplyLineReq struct {
	ProductID int64   `json:"product_id"`
	Quantity  float64 `json:"quantity"`
}

// AddStock handles POST /v1/supply/add-stock?productId=&quantity=.
// It raises the product's stock and appends one supply entry under a
// fresh group code; there is no upper bound on stock.
func (h *SupplyHandler) AddStock(c echo.Context) error {
	productID, err := strconv.ParseInt(c.QueryParam("productId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid productId"})
	}
	quantity, err := strconv.ParseFloat(c.QueryParam("quantity"), 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid quantity"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	entry, err := h.Ledger.RecordStock(ctx, productID, quantity, utils.NewStockCode())
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "supply failed"})
	}
	return c.JSON(http.StatusOK, entry)
}

// AddMultipleStock handles PUT /v1/products/add-multiple-stock.  All
// lines share one batch code and commit together; unknown product ids
// are silently skipped.
func (h *SupplyHandler) AddMultipleStock(c echo.Context) error {
	var lines []supplyLineReq
	if err := c.Bind(&lines); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if len(lines) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no supply lines provided"})
	}

	batch := make([]repository.SupplyLine, 0, len(lines))
	for _, l := range lines {
		batch = append(batch, repository.SupplyLine{ProductID: l.ProductID, Quantity: l.Quantity})
	}

	code := utils.NewSupplyBatchCode()
	ctx, cancel := reqCtx(c)
	defer cancel()
	if _, err := h.Ledger.RecordSupplyBatch(ctx, batch, code); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "supply failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "delivery recorded", "code": code})
}

// SupplyHistory handles GET /v1/supply/history: supply entries only,
// newest first.
func (h *SupplyHandler) SupplyHistory(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	items, err := h.Ledger.ListSupplyHistory(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, items)
}

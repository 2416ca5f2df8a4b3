package handler

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/retail-pos-backend/internal/model"
	"github.com/iliyamo/retail-pos-backend/internal/queue"
	"github.com/iliyamo/retail-pos-backend/internal/repository"
	"github.com/iliyamo/retail-pos-backend/internal/utils"
)

// UnknownCashier is recorded when a sale batch does not name its
// cashier.
const UnknownCashier = "Unknown cashier"

// LedgerStore is the slice of the sale repository the ledger endpoints
// use.  *repository.SaleRepo satisfies it; tests provide stubs.
type LedgerStore interface {
	ListAll(ctx context.Context) ([]*model.Sale, error)
	ListSupplyHistory(ctx context.Context) ([]*model.Sale, error)
	RecordStock(ctx context.Context, productID int64, quantity float64, code string) (*model.Sale, error)
	RecordSupplyBatch(ctx context.Context, lines []repository.SupplyLine, code string) (int, error)
	RecordSaleBatch(ctx context.Context, lines []repository.SaleLine, cashier, receiptCode string) (int, float64, error)
}

// EventPublisher sends a sale event to the broker.  Wired to
// queue.PublishSaleCompleted in production; nil disables publishing.
type EventPublisher func(ctx context.Context, event queue.SaleCompletedEvent) error

// SaleHandler serves the sale side of the ledger under /v1/sales.
type SaleHandler struct {
	Ledger   LedgerStore
	Products ProductStore
	Publish  EventPublisher
}

func NewSaleHandler(ledger LedgerStore, products ProductStore, publish EventPublisher) *SaleHandler {
	return &SaleHandler{Ledger: ledger, Products: products, Publish: publish}
}

// saleLineReq is one line of a sell-multiple request.  The group code
// and cashier are read from the first line, matching the legacy wire
// format where every line repeats them.
type saleLineReq struct {
	ProductID   int64   `json:"product_id"`
	Quantity    float64 `json:"quantity"`
	GroupCode   string  `json:"group_code"`
	CashierName string  `json:"cashier_name"`
}

// ListSales handles GET /v1/sales: the full ledger, newest first.
func (h *SaleHandler) ListSales(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	items, err := h.Ledger.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, items)
}

// StoreProducts handles GET /v1/sales/products: the product projection
// the POS sale screen works from, ordered by name.
func (h *SaleHandler) StoreProducts(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	items, err := h.Products.ListForStore(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, items)
}

// SellMultiple handles POST /v1/sales/sell-multiple.  The whole batch
// commits atomically; lines with unknown product ids are silently
// skipped.  Stock may go negative: the terminal is trusted over the
// counted stock, which is reconciled out of band.
func (h *SaleHandler) SellMultiple(c echo.Context) error {
	var lines []saleLineReq
	if err := c.Bind(&lines); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if len(lines) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cart is empty"})
	}

	cashier := strings.TrimSpace(lines[0].CashierName)
	if cashier == "" {
		cashier = UnknownCashier
	}
	receiptCode := lines[0].GroupCode
	if receiptCode == "" {
		receiptCode = utils.NewReceiptCode()
	}

	batch := make([]repository.SaleLine, 0, len(lines))
	for _, l := range lines {
		batch = append(batch, repository.SaleLine{ProductID: l.ProductID, Quantity: l.Quantity})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	applied, total, err := h.Ledger.RecordSaleBatch(ctx, batch, cashier, receiptCode)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "sale failed"})
	}

	if h.Publish != nil && applied > 0 {
		event := queue.SaleCompletedEvent{
			ReceiptCode: receiptCode,
			CashierName: cashier,
			LineCount:   applied,
			TotalAmount: total,
			CompletedAt: time.Now().UTC().Format(time.RFC3339),
		}
		// Fire and forget; the sale already committed.
		go func() {
			if err := h.Publish(context.Background(), event); err != nil {
				log.Printf("sale event publish failed: %v", err)
			}
		}()
	}

	return c.JSON(http.StatusOK, echo.Map{"receipt_code": receiptCode})
}

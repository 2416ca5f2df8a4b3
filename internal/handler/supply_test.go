package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/retail-pos-backend/internal/handler"
	"github.com/iliyamo/retail-pos-backend/internal/model"
	"github.com/iliyamo/retail-pos-backend/internal/repository"
)

func TestAddStock(t *testing.T) {
	ledger := &stubLedger{stockEntry: &model.Sale{
		ID:          1,
		ProductID:   3,
		ProductName: "[SUPPLY] Milk",
		Kind:        model.KindSupply,
		Quantity:    20,
	}}
	h := handler.NewSupplyHandler(ledger)

	e := newEcho()
	req := httptest.NewRequest(http.MethodPost, "/v1/supply/add-stock?productId=3&quantity=20", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.AddStock(e.NewContext(req, rec)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(3), ledger.stockProductID)
	assert.Equal(t, 20.0, ledger.stockQuantity)
	assert.True(t, strings.HasPrefix(ledger.stockCode, "SUPPLY-"), ledger.stockCode)
	assert.Contains(t, rec.Body.String(), "[SUPPLY] Milk")
}

func TestAddStockUnknownProduct(t *testing.T) {
	ledger := &stubLedger{stockErr: repository.ErrProductNotFound}
	h := handler.NewSupplyHandler(ledger)

	e := newEcho()
	req := httptest.NewRequest(http.MethodPost, "/v1/supply/add-stock?productId=999&quantity=5", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.AddStock(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "product not found")
}

func TestAddStockInvalidParams(t *testing.T) {
	h := handler.NewSupplyHandler(&stubLedger{})
	e := newEcho()

	req := httptest.NewRequest(http.MethodPost, "/v1/supply/add-stock?productId=abc&quantity=5", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.AddStock(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/v1/supply/add-stock?productId=1&quantity=lots", nil)
	rec = httptest.NewRecorder()
	require.NoError(t, h.AddStock(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddMultipleStock(t *testing.T) {
	ledger := &stubLedger{supplyApplied: 2}
	h := handler.NewSupplyHandler(ledger)

	e := newEcho()
	req := jsonRequest(http.MethodPut, "/v1/products/add-multiple-stock",
		`[{"product_id":1,"quantity":10},{"product_id":2,"quantity":4.5}]`)
	rec := httptest.NewRecorder()
	require.NoError(t, h.AddMultipleStock(e.NewContext(req, rec)))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "delivery recorded", resp.Message)
	assert.True(t, strings.HasPrefix(resp.Code, "IN-"), resp.Code)
	assert.Equal(t, resp.Code, ledger.supplyCode)
	require.Len(t, ledger.supplyLines, 2)
	assert.Equal(t, 4.5, ledger.supplyLines[1].Quantity)
}

func TestAddMultipleStockEmptyBody(t *testing.T) {
	ledger := &stubLedger{}
	h := handler.NewSupplyHandler(ledger)

	e := newEcho()
	req := jsonRequest(http.MethodPut, "/v1/products/add-multiple-stock", `[]`)
	rec := httptest.NewRecorder()
	require.NoError(t, h.AddMultipleStock(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, ledger.supplyLines)
}

func TestSupplyHistory(t *testing.T) {
	ledger := &stubLedger{supplies: []*model.Sale{
		{ID: 5, ProductName: "[SUPPLY] Bread", Kind: model.KindSupply, Quantity: 30, GroupCode: "IN-1A2B"},
	}}
	h := handler.NewSupplyHandler(ledger)

	e := newEcho()
	req := httptest.NewRequest(http.MethodGet, "/v1/supply/history", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.SupplyHistory(e.NewContext(req, rec)))

	require.Equal(t, http.StatusOK, rec.Code)
	var items []model.Sale
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, model.KindSupply, items[0].Kind)
	assert.Equal(t, "IN-1A2B", items[0].GroupCode)
}

package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewReceiptCode(t *testing.T) {
	code := NewReceiptCode()
	assert.True(t, strings.HasPrefix(code, "SALE-"), code)
	assert.Len(t, code, len("SALE-")+8)
	assert.Equal(t, strings.ToUpper(code), code)

	// Codes are random per call; two receipts must not share one.
	assert.NotEqual(t, code, NewReceiptCode())
}

func TestNewSupplyBatchCode(t *testing.T) {
	code := NewSupplyBatchCode()
	assert.True(t, strings.HasPrefix(code, "IN-"), code)
	assert.Len(t, code, len("IN-")+4)
}

func TestNewStockCode(t *testing.T) {
	code := NewStockCode()
	assert.True(t, strings.HasPrefix(code, "SUPPLY-"), code)
	assert.Len(t, code, len("SUPPLY-")+4)
}

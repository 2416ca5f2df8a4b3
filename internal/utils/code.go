package utils

import (
	"strings"

	"github.com/google/uuid"
)

// Group code prefixes.  Every ledger line created by one logical
// transaction shares a single code so receipts can be reassembled.
const (
	saleCodePrefix   = "SALE-"
	supplyCodePrefix = "IN-"
	stockCodePrefix  = "SUPPLY-"
)

// NewReceiptCode returns a receipt code for a sale batch, e.g. "SALE-1A2B3C4D".
func NewReceiptCode() string { return saleCodePrefix + uuidFragment(8) }

// NewSupplyBatchCode returns a code shared by all lines of one supply
// delivery, e.g. "IN-1A2B".
func NewSupplyBatchCode() string { return supplyCodePrefix + uuidFragment(4) }

// NewStockCode returns a code for a single-line stock addition,
// e.g. "SUPPLY-1A2B".
func NewStockCode() string { return stockCodePrefix + uuidFragment(4) }

// uuidFragment returns the first n characters of a fresh UUID,
// upper-cased.  Short codes are for humans reading receipts; collisions
// across distinct transactions are tolerable because lines also carry
// their own ids and timestamps.
func uuidFragment(n int) string {
	return strings.ToUpper(uuid.NewString()[:n])
}

package model

import "time"

// Ledger entry kinds stored in sales.kind.  Supplies and sales share
// the same append-only table; the kind column tells them apart.
const (
	KindSale   = "SALE"   // customer purchase, total_price carries money
	KindSupply = "SUPPLY" // incoming stock, total_price is always 0
)

// SupplyNamePrefix is prepended to the product name snapshot on supply
// entries so legacy read paths keep rendering them the way the old
// system did.  Filtering never relies on it; the kind column does that.
const SupplyNamePrefix = "[SUPPLY] "

// Sale is an immutable ledger entry in the `sales` table recording a
// stock-affecting event.  Rows are created once per product line of a
// batch and never updated or deleted through the API.  The product
// name is denormalized so receipts survive later product deletion.
//
// Fields:
//  ID          – primary key identifier.
//  ProductID   – product the event touched (no FK; product may be gone).
//  ProductName – name snapshot at event time; supply rows carry the
//                "[SUPPLY] " display prefix.
//  Kind        – SALE or SUPPLY.
//  Quantity    – quantity moved; positive for both kinds.
//  TotalPrice  – quantity × unit price at sale time; 0 for supplies.
//  SaleDate    – UTC timestamp of the event.
//  GroupCode   – receipt/batch code shared by all lines of one transaction.
//  CashierName – acting cashier; empty on system-generated supply rows.
type Sale struct {
	ID          int64     `json:"id"`           // sales.id
	ProductID   int64     `json:"product_id"`   // sales.product_id
	ProductName string    `json:"product_name"` // sales.product_name
	Kind        string    `json:"kind"`         // sales.kind
	Quantity    float64   `json:"quantity"`     // sales.quantity
	TotalPrice  float64   `json:"total_price"`  // sales.total_price
	SaleDate    time.Time `json:"sale_date"`    // sales.sale_date
	GroupCode   string    `json:"group_code"`   // sales.group_code
	CashierName string    `json:"cashier_name"` // sales.cashier_name
}

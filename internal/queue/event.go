// Package queue defines message payloads exchanged over the message broker.
package queue

// SaleCompletedEvent is published after a sale batch commits.  It
// carries enough information for downstream consumers (receipt
// printers, analytics) to act without querying the primary database.
type SaleCompletedEvent struct {
	ReceiptCode string  `json:"receipt_code"`
	CashierName string  `json:"cashier_name"`
	LineCount   int     `json:"line_count"`
	TotalAmount float64 `json:"total_amount"`
	CompletedAt string  `json:"completed_at"`
}

// This file implements the stock/sales ledger.  Sales and supplies
// share one append-only table; every batch mutates product stock and
// appends its ledger rows inside a single transaction, so either the
// whole batch becomes visible or none of it does.  There is no row
// locking on products: concurrent batches touching the same product
// race and last write wins on stock, which is the accepted behavior.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/retail-pos-backend/internal/model"
)

// SupplyLine is one product/quantity pair of a supply delivery.
type SupplyLine struct {
	ProductID int64
	Quantity  float64
}

// SaleLine is one product/quantity pair of a sale batch.  The unit
// price is not part of the request; it is read from the product at
// sale time.
type SaleLine struct {
	ProductID int64
	Quantity  float64
}

// SaleRepo encapsulates the ledger queries and batch transactions.
type SaleRepo struct {
	db *sql.DB
}

// NewSaleRepo constructs a SaleRepo with the provided DB handle.
func NewSaleRepo(db *sql.DB) *SaleRepo {
	return &SaleRepo{db: db}
}

const saleColumns = `id, product_id, product_name, kind, quantity, total_price, sale_date, group_code, cashier_name`

const insertSale = `INSERT INTO sales
	(product_id, product_name, kind, quantity, total_price, sale_date, group_code, cashier_name)
	VALUES (?,?,?,?,?,?,?,?)`

// ListAll returns every ledger entry, newest first.
func (r *SaleRepo) ListAll(ctx context.Context) ([]*model.Sale, error) {
	return r.list(ctx, "SELECT "+saleColumns+" FROM sales ORDER BY sale_date DESC")
}

// ListSupplyHistory returns only supply entries, newest first.
func (r *SaleRepo) ListSupplyHistory(ctx context.Context) ([]*model.Sale, error) {
	return r.list(ctx,
		"SELECT "+saleColumns+" FROM sales WHERE kind = ? ORDER BY sale_date DESC",
		model.KindSupply)
}

func (r *SaleRepo) list(ctx context.Context, q string, args ...any) ([]*model.Sale, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Sale{}
	for rows.Next() {
		s := new(model.Sale)
		if err := rows.Scan(&s.ID, &s.ProductID, &s.ProductName, &s.Kind,
			&s.Quantity, &s.TotalPrice, &s.SaleDate, &s.GroupCode, &s.CashierName); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// RecordStock registers a single incoming delivery for one product:
// stock goes up by quantity (no upper bound) and one supply entry is
// appended under a fresh group code.  ErrProductNotFound is returned
// when the product does not exist; nothing is written in that case.
func (r *SaleRepo) RecordStock(ctx context.Context, productID int64, quantity float64, code string) (*model.Sale, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()

	var name string
	if err = tx.QueryRowContext(ctx, "SELECT name FROM products WHERE id = ?", productID).Scan(&name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrProductNotFound
		}
		return nil, err
	}
	if _, err = tx.ExecContext(ctx,
		"UPDATE products SET stock_quantity = stock_quantity + ? WHERE id = ?",
		quantity, productID); err != nil {
		return nil, err
	}

	entry := &model.Sale{
		ProductID:   productID,
		ProductName: model.SupplyNamePrefix + name,
		Kind:        model.KindSupply,
		Quantity:    quantity,
		TotalPrice:  0,
		SaleDate:    time.Now().UTC(),
		GroupCode:   code,
	}
	var res sql.Result
	res, err = tx.ExecContext(ctx, insertSale,
		entry.ProductID, entry.ProductName, entry.Kind, entry.Quantity,
		entry.TotalPrice, entry.SaleDate, entry.GroupCode, entry.CashierName)
	if err != nil {
		return nil, err
	}
	entry.ID, err = res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// RecordSupplyBatch applies a multi-line delivery under one shared
// group code.  Lines referencing unknown products are skipped without
// error; the returned count is the number of lines actually applied.
// All applied lines commit together.
func (r *SaleRepo) RecordSupplyBatch(ctx context.Context, lines []SupplyLine, code string) (applied int, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()

	now := time.Now().UTC()
	for _, line := range lines {
		var name string
		if err = tx.QueryRowContext(ctx, "SELECT name FROM products WHERE id = ?", line.ProductID).Scan(&name); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				err = nil // unknown product: skip the line
				continue
			}
			return 0, err
		}
		if _, err = tx.ExecContext(ctx,
			"UPDATE products SET stock_quantity = stock_quantity + ? WHERE id = ?",
			line.Quantity, line.ProductID); err != nil {
			return 0, err
		}
		if _, err = tx.ExecContext(ctx, insertSale,
			line.ProductID, model.SupplyNamePrefix+name, model.KindSupply,
			line.Quantity, 0, now, code, ""); err != nil {
			return 0, err
		}
		applied++
	}
	return applied, nil
}

// RecordSaleBatch registers a customer purchase: for every recognized
// line, stock drops by the requested quantity (stock is allowed to go
// negative) and a sale entry is appended with total price = quantity ×
// the unit price at sale time.  Unknown products are skipped without
// error.  All lines share the given receipt code and cashier, and the
// batch commits as a whole.  The returned total is the sum of the
// applied line totals, for receipt events.
func (r *SaleRepo) RecordSaleBatch(ctx context.Context, lines []SaleLine, cashier, receiptCode string) (applied int, total float64, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()

	now := time.Now().UTC()
	for _, line := range lines {
		var (
			name  string
			price float64
		)
		if err = tx.QueryRowContext(ctx,
			"SELECT name, price FROM products WHERE id = ?", line.ProductID).Scan(&name, &price); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				err = nil // unknown product: skip the line
				continue
			}
			return 0, 0, err
		}
		if _, err = tx.ExecContext(ctx,
			"UPDATE products SET stock_quantity = stock_quantity - ? WHERE id = ?",
			line.Quantity, line.ProductID); err != nil {
			return 0, 0, err
		}
		lineTotal := line.Quantity * price
		if _, err = tx.ExecContext(ctx, insertSale,
			line.ProductID, name, model.KindSale,
			line.Quantity, lineTotal, now, receiptCode, cashier); err != nil {
			return 0, 0, err
		}
		applied++
		total += lineTotal
	}
	return applied, total, nil
}

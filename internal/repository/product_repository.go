// This file defines repository methods for products.  Reads always join
// the owning category so responses can show its current name.  Stock
// mutations are not done here; they belong to the sale repository where
// they commit atomically with their ledger entries.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/retail-pos-backend/internal/model"
)

// ErrProductNotFound is returned when a product cannot be found.
var ErrProductNotFound = errors.New("product not found")

// ProductRepo encapsulates all database queries related to products.
type ProductRepo struct {
	db *sql.DB
}

// NewProductRepo constructs a ProductRepo with the provided DB handle.
func NewProductRepo(db *sql.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

const productColumns = `p.id, p.name, p.price, p.stock_quantity, p.category_id, c.name`

// List returns all products with the owning category's name resolved.
func (r *ProductRepo) List(ctx context.Context) ([]*model.Product, error) {
	const q = `SELECT ` + productColumns + `
	           FROM products p JOIN categories c ON c.id = p.category_id
	           ORDER BY p.id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Product{}
	for rows.Next() {
		p := new(model.Product)
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.StockQuantity, &p.CategoryID, &p.CategoryName); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListForStore returns the lightweight product projection used by the
// POS sale screen, ordered by name.
func (r *ProductRepo) ListForStore(ctx context.Context) ([]*model.Product, error) {
	const q = `SELECT id, name, price, stock_quantity, category_id
	           FROM products ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Product{}
	for rows.Next() {
		p := new(model.Product)
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.StockQuantity, &p.CategoryID); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a product by id with its category name.  It returns
// ErrProductNotFound if no row exists.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	const q = `SELECT ` + productColumns + `
	           FROM products p JOIN categories c ON c.id = p.category_id
	           WHERE p.id = ?`
	var p model.Product
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&p.ID, &p.Name, &p.Price, &p.StockQuantity, &p.CategoryID, &p.CategoryName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Create inserts a new product.  The category id is not pre-validated;
// an unknown category fails the foreign key constraint and surfaces as
// a generic error, matching the thin-CRUD behavior of the rest of the
// catalog.
func (r *ProductRepo) Create(ctx context.Context, p *model.Product) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO products (name, price, stock_quantity, category_id) VALUES (?,?,?,?)",
		p.Name, p.Price, p.StockQuantity, p.CategoryID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = id
	return nil
}

// Delete removes a product.  It returns ErrProductNotFound when no row
// is affected.  Existing ledger entries are intentionally not checked;
// they keep a denormalized product name for display.
func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM products WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProductNotFound
	}
	return nil
}

// This file defines repository methods for the product categories.  A
// category is the smallest entity in the system: an id and a name.  The
// only rule it carries is referential: a category with products cannot
// be deleted.
package repository

import (
	"context"      // context allows passing deadlines and cancellation signals to DB operations
	"database/sql" // sql provides generic database operations and drivers
	"errors"       // errors is used to define custom error values

	"github.com/iliyamo/retail-pos-backend/internal/model"
)

// ErrCategoryNotFound is returned when a category cannot be found.
var ErrCategoryNotFound = errors.New("category not found")

// CategoryRepo encapsulates all database queries related to categories.
type CategoryRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewCategoryRepo constructs a CategoryRepo with the provided DB handle.
func NewCategoryRepo(db *sql.DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

// List returns all categories ordered by id.
func (r *CategoryRepo) List(ctx context.Context) ([]*model.Category, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name FROM categories ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Category{}
	for rows.Next() {
		c := new(model.Category)
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a category by id. It returns ErrCategoryNotFound if
// no row exists.
func (r *CategoryRepo) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	var c model.Category
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name FROM categories WHERE id = ?", id).Scan(&c.ID, &c.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Create inserts a new category.  On success the ID field is populated
// with the auto-generated value.
func (r *CategoryRepo) Create(ctx context.Context, c *model.Category) error {
	res, err := r.db.ExecContext(ctx, "INSERT INTO categories (name) VALUES (?)", c.Name)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

// UpdateName renames a category in place.  It returns
// ErrCategoryNotFound when no row is affected.
func (r *CategoryRepo) UpdateName(ctx context.Context, id int64, name string) error {
	res, err := r.db.ExecContext(ctx, "UPDATE categories SET name = ? WHERE id = ?", name, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// Delete removes a category.  A category that still has products is
// protected: the method returns ErrConflict and leaves the row intact.
// ErrCategoryNotFound is returned when the category does not exist.
func (r *CategoryRepo) Delete(ctx context.Context, id int64) error {
	var products int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM products WHERE category_id = ?", id).Scan(&products)
	if err != nil {
		return err
	}
	if products > 0 {
		return ErrConflict
	}
	res, err := r.db.ExecContext(ctx, "DELETE FROM categories WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

package database

import (
	"context"
	"database/sql"
	"log"

	"github.com/google/uuid"

	"github.com/iliyamo/retail-pos-backend/internal/model"
	"github.com/iliyamo/retail-pos-backend/internal/utils"
)

// Default admin account created on first boot.  The password must be
// changed in any real installation.
const (
	seedAdminEmail    = "admin@easystore.local"
	seedAdminPassword = "Admin123!"
)

type seedProduct struct {
	name  string
	price float64
	stock float64
}

var seedCatalog = map[string][]seedProduct{
	"Fruits": {
		{"Apples (kg)", 2.50, 100},
		{"Bananas (kg)", 3.20, 80},
		{"Oranges (kg)", 2.80, 60},
		{"Kiwi (pc)", 0.90, 150},
		{"Lemons (kg)", 3.50, 40},
	},
	"Vegetables": {
		{"Tomatoes (kg)", 4.50, 50},
		{"Cucumbers (kg)", 3.80, 70},
		{"Potatoes (kg)", 1.60, 200},
		{"Onions (kg)", 1.40, 120},
		{"Carrots (kg)", 1.80, 90},
	},
	"Dairy": {
		{"Fresh milk (pc)", 2.90, 45},
		{"Yogurt (pc)", 1.50, 100},
		{"White cheese (kg)", 14.50, 25},
		{"Yellow cheese (kg)", 18.90, 20},
		{"Butter (pc)", 5.60, 35},
	},
	"Meat": {
		{"Chicken fillet (kg)", 12.50, 15},
		{"Pork neck (kg)", 15.20, 12},
		{"Ground beef (kg)", 13.80, 18},
		{"Flat sausage (pc)", 9.50, 30},
		{"Frankfurters (kg)", 8.40, 40},
	},
	"Bakery": {
		{"White bread (pc)", 1.60, 60},
		{"Whole grain bread (pc)", 1.90, 40},
		{"Cheese pastry (pc)", 2.20, 25},
		{"Croissant (pc)", 1.80, 50},
		{"Bagel (pc)", 1.20, 30},
	},
}

// Seed populates initial data: the default admin user, and demo
// categories with products when the catalog is empty.  It is safe to
// call on every boot; existing data short-circuits each step.
func Seed(ctx context.Context, db *sql.DB, bcryptCost int) error {
	if err := seedAdmin(ctx, db, bcryptCost); err != nil {
		return err
	}
	return seedCatalogData(ctx, db)
}

func seedAdmin(ctx context.Context, db *sql.DB, bcryptCost int) error {
	var n int
	if err := db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM users WHERE email=? AND is_deleted=0",
		seedAdminEmail).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	hash, err := utils.HashPassword(seedAdminPassword, bcryptCost)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx,
		"INSERT INTO users (id, email, names, phone, role, password_hash) VALUES (?,?,?,?,?,?)",
		uuid.NewString(), seedAdminEmail, "Admin", "0000000000", model.RoleAdmin, hash)
	if err == nil {
		log.Printf("seed: created default admin %s", seedAdminEmail)
	}
	return err
}

func seedCatalogData(ctx context.Context, db *sql.DB) error {
	var n int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM categories").Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	for catName, products := range seedCatalog {
		res, err := db.ExecContext(ctx, "INSERT INTO categories (name) VALUES (?)", catName)
		if err != nil {
			return err
		}
		catID, err := res.LastInsertId()
		if err != nil {
			return err
		}
		for _, p := range products {
			if _, err := db.ExecContext(ctx,
				"INSERT INTO products (name, price, stock_quantity, category_id) VALUES (?,?,?,?)",
				p.name, p.price, p.stock, catID); err != nil {
				return err
			}
		}
	}
	log.Printf("seed: loaded demo catalog (%d categories)", len(seedCatalog))
	return nil
}

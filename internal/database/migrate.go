package database

import (
	"context"
	"database/sql"
)

// Statements that bring the schema up.  Every statement is idempotent
// (CREATE TABLE IF NOT EXISTS) so Migrate can run on every boot.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		id   INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS products (
		id             INT AUTO_INCREMENT PRIMARY KEY,
		name           VARCHAR(255) NOT NULL,
		price          DECIMAL(18,2) NOT NULL DEFAULT 0,
		stock_quantity DOUBLE NOT NULL DEFAULT 0,
		category_id    INT NOT NULL,
		CONSTRAINT fk_products_category FOREIGN KEY (category_id)
			REFERENCES categories (id) ON DELETE RESTRICT
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS sales (
		id           INT AUTO_INCREMENT PRIMARY KEY,
		product_id   INT NOT NULL,
		product_name VARCHAR(255) NOT NULL,
		kind         VARCHAR(10) NOT NULL DEFAULT 'SALE',
		quantity     DOUBLE NOT NULL,
		total_price  DECIMAL(18,2) NOT NULL DEFAULT 0,
		sale_date    DATETIME NOT NULL,
		group_code   VARCHAR(32) NOT NULL,
		cashier_name VARCHAR(255) NOT NULL DEFAULT '',
		INDEX idx_sales_date (sale_date),
		INDEX idx_sales_kind (kind),
		INDEX idx_sales_group (group_code)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS users (
		id                       CHAR(36) PRIMARY KEY,
		email                    VARCHAR(255) NOT NULL,
		names                    VARCHAR(255) NOT NULL DEFAULT '',
		phone                    VARCHAR(64)  NOT NULL DEFAULT '',
		role                     VARCHAR(32)  NOT NULL DEFAULT 'Customer',
		password_hash            VARCHAR(255) NOT NULL,
		refresh_token            VARCHAR(255) NOT NULL DEFAULT '',
		refresh_token_expires_at DATETIME NULL,
		is_deleted               TINYINT(1) NOT NULL DEFAULT 0,
		created_at               DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		modified_at              DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_users_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate creates the four application tables if they do not exist yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// Truncate wipes all application tables.  Used together with the
// DROP_DB_ON_RUN flag to reset a demo installation on startup.  The
// foreign key check is disabled for the duration so table order does
// not matter.
func Truncate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, "SET FOREIGN_KEY_CHECKS = 0"); err != nil {
		return err
	}
	for _, table := range []string{"sales", "products", "categories", "users"} {
		if _, err := db.ExecContext(ctx, "TRUNCATE TABLE "+table); err != nil {
			return err
		}
	}
	_, err := db.ExecContext(ctx, "SET FOREIGN_KEY_CHECKS = 1")
	return err
}

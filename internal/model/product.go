package model

// Product represents a sellable item stored in the `products` table.
// Prices are fixed-point with two decimals (DECIMAL in MySQL) while the
// stock quantity is a double so fractional units such as kilograms can
// be sold.  Each product belongs to exactly one category; deleting a
// category with products is rejected at the application layer and the
// foreign key restricts it at the database layer as well.
//
// Fields:
//  ID            – primary key identifier.
//  Name          – product name shown on receipts.
//  Price         – unit price with two decimal places.
//  StockQuantity – quantity on hand; may be fractional and may go
//                  negative when sales outrun supplies.
//  CategoryID    – owning category (products.category_id, restrict on delete).
//  CategoryName  – current name of the owning category, resolved on reads.
type Product struct {
	ID            int64   `json:"id"`                      // products.id
	Name          string  `json:"name"`                    // products.name
	Price         float64 `json:"price"`                   // products.price
	StockQuantity float64 `json:"stock_quantity"`          // products.stock_quantity
	CategoryID    int64   `json:"category_id"`             // products.category_id
	CategoryName  string  `json:"category_name,omitempty"` // joined from categories.name
}

package model

// Category represents a row in the `categories` table.  Categories
// group products for the storefront and cannot be removed while any
// product still references them.
//
// Fields:
//  ID   – primary key identifier of the category.
//  Name – human readable category name.
type Category struct {
	ID   int64  `json:"id"`   // categories.id
	Name string `json:"name"` // categories.name
}

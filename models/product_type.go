package models

// ProductType represents a category that sellable products belong to.
type ProductType struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// TableName returns the table name for the ProductType model
func (ProductType) TableName() string {
	return "product_types"
}

package models

// Product represents a sellable item in the catalog. Like ingredients, its
// Status is derived from Amount and Measurement on every write.
type Product struct {
	ID            int64   `json:"id" db:"id"`
	Name          string  `json:"name" db:"name"`
	Price         float64 `json:"price" db:"price"`
	Amount        float64 `json:"amount" db:"amount"`
	Measurement   string  `json:"measurement" db:"measurement"`
	ProductTypeID int64   `json:"productTypeId" db:"product_type_id"`
	Status        string  `json:"status" db:"status"`
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

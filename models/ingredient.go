package models

// Ingredient represents a stock record for a raw ingredient tracked by the
// back office. Status is derived from Amount and Measurement on every write
// and is never accepted from clients.
type Ingredient struct {
	ID             int64   `json:"id" db:"id"`
	Name           string  `json:"name" db:"name"`
	Amount         float64 `json:"amount" db:"amount"`
	Measurement    string  `json:"measurement" db:"measurement"`
	BestBeforeDate Date    `json:"bestBeforeDate" db:"best_before_date"`
	ExpirationDate Date    `json:"expirationDate" db:"expiration_date"`
	Status         string  `json:"status" db:"status"`
}

// TableName returns the table name for the Ingredient model
func (Ingredient) TableName() string {
	return "ingredients"
}

package domain

import "time"

// Transaction is a single income or expense entry.
// TransDate is a unix timestamp in milliseconds as supplied by clients.
type Transaction struct {
	ID          int64
	Name        string
	Description string
	Amount      float64
	CategoryID  int64
	TransDate   int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TransactionPatch carries the fields of a partial update; nil means unchanged.
type TransactionPatch struct {
	Name        *string
	Description *string
	Amount      *float64
	CategoryID  *int64
	TransDate   *int64
}

// Empty reports whether the patch changes nothing.
func (p TransactionPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Amount == nil && p.CategoryID == nil && p.TransDate == nil
}

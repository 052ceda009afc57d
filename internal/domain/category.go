package domain

import "time"

// Category is a node in the two-level category taxonomy. Top-level categories have a nil ParentID.
type Category struct {
	ID               int64
	Name             string
	Color            string
	ParentID         *int64
	UniqueIdentifier string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	Children         []Category
}

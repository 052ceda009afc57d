package domain

import "time"

// Export describes a transaction snapshot archived in object storage.
type Export struct {
	Key          string
	Location     string
	Size         int64
	LastModified *time.Time
	URL          string
}

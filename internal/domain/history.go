package domain

import "time"

// QueryHistoryEntry is one past search query of a user. Entries are
// append-only and immutable once written; ordering is by Timestamp.
type QueryHistoryEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Query     string    `json:"query"`
	Timestamp time.Time `json:"timestamp"`
}

package model

import "time"

// LedgerEntry is one append-only points record. A user's balance is the
// sum of their deltas; entries are never updated or deleted.
type LedgerEntry struct {
	ID     int64     `json:"id"`
	UserID int64     `json:"user_id"`
	Delta  int       `json:"delta"`
	Reason string    `json:"reason"`
	TS     time.Time `json:"ts"`
}

type PointBalance struct {
	UserID   int64  `json:"user_id"`
	UserName string `json:"user_name"`
	Total    int    `json:"total"`
}

package models

import "time"

// Activity entry types. Purely observational; nothing reads these back
// beyond the dashboard feed.
const (
	ActivityAdd      = "add"
	ActivityUpdate   = "update"
	ActivityDelete   = "delete"
	ActivityTransfer = "transfer"
	ActivityAI       = "ai"
)

type ActivityEntry struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
}

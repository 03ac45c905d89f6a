package domain

import (
	"crypto/rand"
	"time"
)

// Status is the workflow stage of a dialog record.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusTranslated Status = "translated"
)

// Statuses lists every value a record may hold, in reporting order.
var Statuses = []Status{StatusPending, StatusInProgress, StatusTranslated}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusTranslated:
		return true
	}
	return false
}

// HistoryEntry is one immutable audit record of an edit.
type HistoryEntry struct {
	EditedBy string    `json:"translated_by"`
	OldText  *string   `json:"old_text"`
	NewText  *string   `json:"new_text"`
	EditedAt time.Time `json:"translated_at"`
}

// Dialog is one localizable string unit. SourceText holds the en-US text,
// TargetText the es-ES text; both are nullable.
type Dialog struct {
	ID         string         `json:"id"`
	Key        string         `json:"key"`
	SourceText *string        `json:"en-US"`
	TargetText *string        `json:"es-ES"`
	Status     Status         `json:"status"`
	History    []HistoryEntry `json:"history"`
	CreatedAt  time.Time      `json:"created_at"`
}

const idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// IDLength is the size of store-assigned dialog identifiers.
const IDLength = 10

// NewID returns a short random identifier for a dialog record.
func NewID() string {
	b := make([]byte, IDLength)
	if _, err := rand.Read(b); err != nil {
		panic("domain: read random: " + err.Error())
	}
	for i := range b {
		b[i] = idAlphabet[int(b[i])%len(idAlphabet)]
	}
	return string(b)
}

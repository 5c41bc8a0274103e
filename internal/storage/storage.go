// Package storage defines the Journal interface — a contract for recording
// what happened to the registries (adds, removals, rejected drafts).
//
// The registries themselves are the source of truth and live in memory.
// The journal is a side record the console can show as an activity log;
// it is never read back into a registry.
//
// WHY AN INTERFACE?
// ─────────────────
// Handlers should not know which backend keeps the journal. Tests can pass
// a fake that satisfies the interface; main.go wires the SQLite one.
package storage

import (
	"context"
	"time"
)

// Action is what happened to a record.
type Action string

const (
	ActionAdded    Action = "added"
	ActionRemoved  Action = "removed"
	ActionRejected Action = "rejected"
)

// DefaultLimit is used by Entries when the caller passes limit <= 0.
const DefaultLimit = 50

// Entry is one line of the activity journal.
type Entry struct {
	ID       int64     `json:"id"`
	Kind     string    `json:"kind"`
	Action   Action    `json:"action"`
	RecordID int       `json:"recordId,omitempty"`
	Detail   string    `json:"detail,omitempty"`
	At       time.Time `json:"at"`
}

// Journal is the activity log contract.
type Journal interface {
	// Record appends an entry and returns its generated ID.
	// A zero At is replaced with the current time.
	Record(ctx context.Context, e Entry) (int64, error)

	// Entries returns the newest entries first. An empty kind matches every
	// kind; limit <= 0 means DefaultLimit.
	// Returns an empty slice (not nil) when nothing matches.
	Entries(ctx context.Context, kind string, limit int) ([]Entry, error)

	// Close releases the backend.
	Close() error
}

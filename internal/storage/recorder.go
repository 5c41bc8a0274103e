package storage

import (
	"context"
	"log/slog"
	"time"
)

// Recorder writes registry events to a Journal. It satisfies
// registry.Observer.
//
// Journal failures are logged and swallowed: the journal is a side record
// and must never fail the registry operation that produced the event.
type Recorder struct {
	Journal Journal
	Log     *slog.Logger

	// Timeout bounds each journal write. Zero means one second.
	Timeout time.Duration

	// RejectedDetail is stored as the Detail of rejected-draft entries.
	RejectedDetail string
}

func (r Recorder) RecordAdded(kind string, id int, _ int) {
	r.record(Entry{Kind: kind, Action: ActionAdded, RecordID: id})
}

func (r Recorder) RecordRemoved(kind string, id int, _ int, _ int) {
	r.record(Entry{Kind: kind, Action: ActionRemoved, RecordID: id})
}

func (r Recorder) RecordRejected(kind string) {
	r.record(Entry{Kind: kind, Action: ActionRejected, Detail: r.RejectedDetail})
}

func (r Recorder) record(e Entry) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if _, err := r.Journal.Record(ctx, e); err != nil {
		log := r.Log
		if log == nil {
			log = slog.Default()
		}
		log.Error("failed to journal registry event",
			slog.String("kind", e.Kind),
			slog.String("action", string(e.Action)),
			slog.String("error", err.Error()))
	}
}

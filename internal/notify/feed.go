package notify

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound       = errors.New("notification not found")
	ErrNotDismissible = errors.New("notification cannot be dismissed")
)

// Notification is one entry of a Feed.
type Notification struct {
	ID        string    `json:"id"`
	Severity  Severity  `json:"severity"`
	Message   string    `json:"message"`
	Options   Options   `json:"options"`
	CreatedAt time.Time `json:"createdAt"`
}

// expired reports whether the auto-hide window has passed at now.
func (n Notification) expired(now time.Time) bool {
	if n.Options.AutoHideAfter <= 0 {
		return false
	}
	return !now.Before(n.CreatedAt.Add(n.Options.AutoHideAfter))
}

// Feed is a Sink that keeps the most recent notifications in memory so a
// front end can poll and render them. It holds at most size entries; the
// oldest entry is dropped when a new one arrives on a full feed.
//
// Feed is safe for concurrent use.
type Feed struct {
	mu      sync.Mutex
	size    int
	entries []Notification
	now     func() time.Time
}

// NewFeed returns a feed holding at most size notifications.
// A size below 1 is treated as 1.
func NewFeed(size int) *Feed {
	if size < 1 {
		size = 1
	}
	return &Feed{size: size, now: time.Now}
}

// WithClock replaces the feed's time source. Used by tests.
func (f *Feed) WithClock(now func() time.Time) *Feed {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = now
	return f
}

func (f *Feed) Notify(severity Severity, message string, opts Options) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.entries) == f.size {
		f.entries = append(f.entries[:0], f.entries[1:]...)
	}
	f.entries = append(f.entries, Notification{
		ID:        uuid.NewString(),
		Severity:  severity,
		Message:   message,
		Options:   opts,
		CreatedAt: f.now(),
	})
}

// Active returns the notifications that are still visible, oldest first.
// Expired entries are pruned as a side effect.
func (f *Feed) Active() []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := f.now()
	kept := f.entries[:0]
	for _, n := range f.entries {
		if !n.expired(now) {
			kept = append(kept, n)
		}
	}
	f.entries = kept

	out := make([]Notification, len(kept))
	copy(out, kept)
	return out
}

// Dismiss removes the notification with the given id. It fails with
// ErrNotFound for an unknown (or already expired) id and with
// ErrNotDismissible when the notification was not created with
// DismissOnClick.
func (f *Feed) Dismiss(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := f.now()
	for i, n := range f.entries {
		if n.ID != id || n.expired(now) {
			continue
		}
		if !n.Options.DismissOnClick {
			return ErrNotDismissible
		}
		f.entries = append(f.entries[:i], f.entries[i+1:]...)
		return nil
	}
	return ErrNotFound
}

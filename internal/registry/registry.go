// Package registry implements the generic in-memory entity registry: an
// ordered collection of records of one kind that validates drafts, assigns
// ids, derives fields, and reports outcomes to a notification sink.
//
// The console builds three independent registries (students, courses,
// faculty) from the Kind descriptors in kinds.go. Nothing here is global:
// each registry owns its own records and seed.
//
// CONTRACT:
//
//	Add(&draft)  validate → assign id → derive fields → append → notify
//	Remove(id)   drop every record with that id; unknown id is a no-op
//	List()       copy of the records in insertion order
//
// A registry serialises Add/Remove/List with a mutex. The length-based id
// policy reads the record count and appends in one step, which is only
// correct when no other writer can interleave.
package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/aanand-mishra/college-console/internal/notify"
)

// ErrValidation is matched by every error Add returns for a rejected draft.
var ErrValidation = errors.New("validation failed")

// ValidationError describes a rejected draft. Message is the text shown to
// the user; Err is the underlying validator error, if any.
type ValidationError struct {
	Kind    string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Picker chooses an index in [0, n). It is the random source behind
// derived fields such as a course's color.
type Picker interface {
	Pick(n int) int
}

// PickerFunc adapts a function to Picker.
type PickerFunc func(n int) int

func (f PickerFunc) Pick(n int) int { return f(n) }

// Uniform draws uniformly with math/rand/v2. It is the default Picker.
type Uniform struct{}

func (Uniform) Pick(n int) int { return rand.IntN(n) }

// IDPolicy decides the id of the next record.
type IDPolicy string

const (
	// PolicyLength assigns len(records)+1. Ids can repeat after a removal:
	// with ids [1 2 3], removing 2 and adding yields [1 3 3].
	PolicyLength IDPolicy = "length"

	// PolicySequence assigns one more than the highest id ever held, so an
	// id is never handed out twice in the registry's lifetime.
	PolicySequence IDPolicy = "sequence"
)

// ParseIDPolicy converts a configuration value into an IDPolicy.
// The empty string selects PolicyLength.
func ParseIDPolicy(s string) (IDPolicy, error) {
	switch IDPolicy(s) {
	case "", PolicyLength:
		return PolicyLength, nil
	case PolicySequence:
		return PolicySequence, nil
	default:
		return "", fmt.Errorf("registry: unknown id policy %q", s)
	}
}

// Observer is told about every completed operation. Metrics hang off it.
type Observer interface {
	RecordAdded(kind string, id int, size int)
	RecordRemoved(kind string, id int, removed int, size int)
	RecordRejected(kind string)
}

// Observers combines several observers into one, called in order.
func Observers(obs ...Observer) Observer { return observers(obs) }

type observers []Observer

func (o observers) RecordAdded(kind string, id int, size int) {
	for _, ob := range o {
		ob.RecordAdded(kind, id, size)
	}
}

func (o observers) RecordRemoved(kind string, id int, removed int, size int) {
	for _, ob := range o {
		ob.RecordRemoved(kind, id, removed, size)
	}
}

func (o observers) RecordRejected(kind string) {
	for _, ob := range o {
		ob.RecordRejected(kind)
	}
}

// Kind describes one entity kind: how to validate its drafts, how to turn
// a draft into a record, and what to tell the user.
type Kind[T, D any] struct {
	// Name is the singular kind name used in logs and metrics, e.g. "student".
	Name string

	// Seed is copied into every new registry of this kind.
	Seed []T

	// Validate returns a non-nil error to reject a draft. Nil means every
	// draft is accepted.
	Validate func(D) error

	// InvalidMessage is the error notification shown on rejection.
	InvalidMessage string

	// Build creates the record for a draft, computing derived fields.
	Build func(id int, draft D, pick Picker) T

	// ID extracts a record's id.
	ID func(T) int

	// AddedMessage is the success notification. Empty means silent.
	AddedMessage string
}

// Registry is the ordered, in-memory collection of one entity kind.
type Registry[T, D any] struct {
	mu      sync.Mutex
	kind    Kind[T, D]
	records []T
	maxID   int

	policy   IDPolicy
	sink     notify.Sink
	opts     notify.Options
	pick     Picker
	log      *slog.Logger
	observer Observer
	unify    bool
}

// Option configures a Registry.
type Option func(*config)

type config struct {
	policy   IDPolicy
	sink     notify.Sink
	opts     notify.Options
	pick     Picker
	log      *slog.Logger
	observer Observer
	unify    bool
}

// WithIDPolicy selects the id assignment policy. Default PolicyLength.
func WithIDPolicy(p IDPolicy) Option { return func(c *config) { c.policy = p } }

// WithSink injects the notification sink. Default notify.Discard.
func WithSink(s notify.Sink) Option { return func(c *config) { c.sink = s } }

// WithNotifyOptions sets the display options attached to every
// notification. Default notify.DefaultOptions().
func WithNotifyOptions(o notify.Options) Option { return func(c *config) { c.opts = o } }

// WithPicker replaces the random source used for derived fields.
func WithPicker(p Picker) Option { return func(c *config) { c.pick = p } }

// WithLogger sets the logger. Default slog.Default().
func WithLogger(l *slog.Logger) Option { return func(c *config) { c.log = l } }

// WithObserver attaches an Observer.
func WithObserver(o Observer) Option { return func(c *config) { c.observer = o } }

// WithUnifiedSuccess makes kinds without an AddedMessage announce a
// successful add as "<Kind> added successfully!".
func WithUnifiedSuccess(on bool) Option { return func(c *config) { c.unify = on } }

// New returns a registry of the given kind holding a copy of its seed.
func New[T, D any](kind Kind[T, D], opts ...Option) *Registry[T, D] {
	c := config{
		policy: PolicyLength,
		sink:   notify.Discard,
		opts:   notify.DefaultOptions(),
		pick:   Uniform{},
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(&c)
	}

	r := &Registry[T, D]{
		kind:     kind,
		records:  append([]T(nil), kind.Seed...),
		policy:   c.policy,
		sink:     c.sink,
		opts:     c.opts,
		pick:     c.pick,
		log:      c.log.With(slog.String("kind", kind.Name)),
		observer: c.observer,
		unify:    c.unify,
	}
	for _, rec := range r.records {
		r.maxID = max(r.maxID, kind.ID(rec))
	}
	return r
}

// Kind returns the singular kind name.
func (r *Registry[T, D]) Kind() string { return r.kind.Name }

// Add validates *draft and, if it passes, appends a new record built from
// it and resets *draft to its zero value. A rejected draft is left as-is so
// the caller can correct it; the rejection is reported to the sink and
// returned as a *ValidationError.
func (r *Registry[T, D]) Add(draft *D) (T, error) {
	var zero T

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.kind.Validate != nil {
		if err := r.kind.Validate(*draft); err != nil {
			r.sink.Notify(notify.SeverityError, r.kind.InvalidMessage, r.opts)
			r.log.Info("record rejected", slog.String("error", err.Error()))
			if r.observer != nil {
				r.observer.RecordRejected(r.kind.Name)
			}
			return zero, &ValidationError{Kind: r.kind.Name, Message: r.kind.InvalidMessage, Err: err}
		}
	}

	id := r.nextID()
	rec := r.kind.Build(id, *draft, r.pick)
	r.records = append(r.records, rec)
	r.maxID = max(r.maxID, id)

	var cleared D
	*draft = cleared

	if msg := r.addedMessage(); msg != "" {
		r.sink.Notify(notify.SeveritySuccess, msg, r.opts)
	}
	r.log.Info("record added", slog.Int("id", id), slog.Int("size", len(r.records)))
	if r.observer != nil {
		r.observer.RecordAdded(r.kind.Name, id, len(r.records))
	}

	return rec, nil
}

// Remove deletes every record whose id equals id and returns how many were
// removed. Survivors keep their order and ids. An unknown id removes
// nothing and is not an error.
func (r *Registry[T, D]) Remove(id int) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.records[:0]
	for _, rec := range r.records {
		if r.kind.ID(rec) != id {
			kept = append(kept, rec)
		}
	}
	removed := len(r.records) - len(kept)
	// Release dropped records.
	clear(r.records[len(kept):])
	r.records = kept

	if removed == 0 {
		r.log.Debug("remove ignored: no such id", slog.Int("id", id))
		return 0
	}

	r.log.Info("record removed", slog.Int("id", id), slog.Int("size", len(r.records)))
	if r.observer != nil {
		r.observer.RecordRemoved(r.kind.Name, id, removed, len(r.records))
	}
	return removed
}

// List returns a copy of the records in insertion order. It is never nil.
func (r *Registry[T, D]) List() []T {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]T, len(r.records))
	copy(out, r.records)
	return out
}

// Len returns the number of records.
func (r *Registry[T, D]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

func (r *Registry[T, D]) nextID() int {
	if r.policy == PolicySequence {
		return r.maxID + 1
	}
	return len(r.records) + 1
}

func (r *Registry[T, D]) addedMessage() string {
	if r.kind.AddedMessage != "" || !r.unify {
		return r.kind.AddedMessage
	}
	return title(r.kind.Name) + " added successfully!"
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Package notify defines the NotificationSink contract the registries use to
// report outcomes to the user, plus the sinks the console ships with.
//
// Notifications are fire-and-forget: Notify has no return value and a
// registry never branches on what a sink does with a message.
package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"
)

// Severity classifies a notification.
type Severity string

const (
	SeverityError   Severity = "error"
	SeveritySuccess Severity = "success"
)

// Options are display hints forwarded to whatever renders the notification.
type Options struct {
	// AutoHideAfter is how long the notification stays visible.
	// Zero keeps it until dismissed.
	AutoHideAfter   time.Duration
	Position        string
	HideProgressBar bool
	DismissOnClick  bool
	PauseOnHover    bool
	Draggable       bool
}

// optionsJSON is the wire form of Options.
type optionsJSON struct {
	AutoHideAfterMs int64  `json:"autoHideAfterMs"`
	Position        string `json:"position,omitempty"`
	HideProgressBar bool   `json:"hideProgressBar"`
	DismissOnClick  bool   `json:"dismissOnClick"`
	PauseOnHover    bool   `json:"pauseOnHover"`
	Draggable       bool   `json:"draggable"`
}

// MarshalJSON encodes AutoHideAfter in milliseconds, the unit browsers use.
func (o Options) MarshalJSON() ([]byte, error) {
	return json.Marshal(optionsJSON{
		AutoHideAfterMs: o.AutoHideAfter.Milliseconds(),
		Position:        o.Position,
		HideProgressBar: o.HideProgressBar,
		DismissOnClick:  o.DismissOnClick,
		PauseOnHover:    o.PauseOnHover,
		Draggable:       o.Draggable,
	})
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (o *Options) UnmarshalJSON(data []byte) error {
	var w optionsJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*o = Options{
		AutoHideAfter:   time.Duration(w.AutoHideAfterMs) * time.Millisecond,
		Position:        w.Position,
		HideProgressBar: w.HideProgressBar,
		DismissOnClick:  w.DismissOnClick,
		PauseOnHover:    w.PauseOnHover,
		Draggable:       w.Draggable,
	}
	return nil
}

// DefaultOptions matches the console's toast settings: top-right, hidden
// after three seconds, dismissible, pausable, draggable.
func DefaultOptions() Options {
	return Options{
		AutoHideAfter:  3 * time.Second,
		Position:       "top-right",
		DismissOnClick: true,
		PauseOnHover:   true,
		Draggable:      true,
	}
}

// Sink receives notifications.
type Sink interface {
	Notify(severity Severity, message string, opts Options)
}

// SinkFunc adapts a plain function to Sink.
type SinkFunc func(severity Severity, message string, opts Options)

func (f SinkFunc) Notify(severity Severity, message string, opts Options) {
	f(severity, message, opts)
}

// Discard drops every notification.
var Discard Sink = SinkFunc(func(Severity, string, Options) {})

// Multi fans a notification out to every sink in order.
func Multi(sinks ...Sink) Sink {
	return SinkFunc(func(severity Severity, message string, opts Options) {
		for _, s := range sinks {
			s.Notify(severity, message, opts)
		}
	})
}

// LogSink writes notifications as structured log lines: errors at WARN
// (the user made a mistake, the process is fine), successes at INFO.
type LogSink struct {
	Log *slog.Logger
}

func (s LogSink) Notify(severity Severity, message string, opts Options) {
	log := s.Log
	if log == nil {
		log = slog.Default()
	}

	level := slog.LevelInfo
	if severity == SeverityError {
		level = slog.LevelWarn
	}

	log.Log(context.Background(), level, "notification",
		slog.String("severity", string(severity)),
		slog.String("message", message),
		slog.Duration("auto_hide_after", opts.AutoHideAfter),
	)
}

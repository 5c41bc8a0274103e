// Package notification serves the notification feed: the front end polls
// it to render toasts and calls Dismiss when the user clicks one away.
package notification

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/college-console/internal/notify"
	"github.com/aanand-mishra/college-console/internal/utils/response"
)

// Feed is what the handlers need from *notify.Feed.
type Feed interface {
	Active() []notify.Notification
	Dismiss(id string) error
}

// List handles GET /api/notifications
// Returns the visible notifications, oldest first.
func List(feed Feed) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusOK, feed.Active())
	}
}

// Dismiss handles DELETE /api/notifications/{id}
//
//	200 OK       — { "status": "dismissed" }
//	404 Not Found — unknown or expired id
//	409 Conflict  — the notification was not created dismissible
func Dismiss(feed Feed) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Debug("dismissing a notification", slog.String("id", id))

		err := feed.Dismiss(id)
		switch {
		case err == nil:
			response.WriteJSON(w, http.StatusOK, map[string]string{"status": "dismissed"})
		case errors.Is(err, notify.ErrNotFound):
			response.WriteJSON(w, http.StatusNotFound, response.GeneralError(err))
		case errors.Is(err, notify.ErrNotDismissible):
			response.WriteJSON(w, http.StatusConflict, response.GeneralError(err))
		default:
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
		}
	}
}

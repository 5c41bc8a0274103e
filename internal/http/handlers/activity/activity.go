// Package activity serves the journal of registry events.
package activity

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aanand-mishra/college-console/internal/storage"
	"github.com/aanand-mishra/college-console/internal/utils/response"
)

// List handles GET /api/activity?kind=student&limit=20
//
// Both query parameters are optional. Entries come newest first.
//
// Error responses:
//
//	400 Bad Request  — limit is not an integer
//	500 Internal     — journal error
func List(journal storage.Journal) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind := r.URL.Query().Get("kind")

		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				response.WriteJSON(w, http.StatusBadRequest,
					response.GeneralError(errors.New("invalid limit: must be an integer")))
				return
			}
			limit = n
		}

		entries, err := journal.Entries(r.Context(), kind, limit)
		if err != nil {
			slog.Error("error reading activity journal", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, entries)
	}
}

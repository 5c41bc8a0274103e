// Package entity contains the HTTP handlers shared by the three entity
// kinds (students, courses, faculty).
//
// HANDLER PATTERN USED HERE — THE CLOSURE / FACTORY PATTERN:
// ────────────────────────────────────────────────────────────
// Each exported function accepts its dependencies (a registry) and returns
// the http.HandlerFunc the router needs:
//
//	router.HandleFunc("POST /api/students", entity.New(students))
//	//                                                 ^^^^^^^^
//	//                         New(students) is called ONCE at startup.
//	//                         It returns a handler func which is called
//	//                         on EVERY incoming request.
//
// The factories are generic over the record type T and the draft type D,
// so one set of handlers serves every kind.
package entity

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/college-console/internal/registry"
	"github.com/aanand-mishra/college-console/internal/utils/response"
)

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /api/{kind}
// Adds a record built from the JSON draft in the request body.
//
// Request body (JSON), e.g. for a student:
//
//	{ "name": "Amy", "email": "amy@x.co", "major": "Math" }
//
// Success response (201 Created): the new record, id and derived fields
// included.
//
// Error responses:
//
//	400 Bad Request  — empty body, malformed JSON, or rejected draft
//
// ─────────────────────────────────────────────────────────────────────────────
func New[T, D any](reg *registry.Registry[T, D]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind := reg.Kind()
		slog.Info("creating a "+kind, slog.String("kind", kind))

		// ── Step 1: Decode JSON body into a draft ─────────────────────
		var draft D
		err := json.NewDecoder(r.Body).Decode(&draft)
		if errors.Is(err, io.EOF) {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("request body is empty")))
			return
		}
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		// ── Step 2: Hand it to the registry ───────────────────────────
		// The registry validates, notifies the user, and appends.
		record, err := reg.Add(&draft)
		if err != nil {
			writeAddError(w, err)
			return
		}

		// ── Step 3: Return 201 Created with the new record ────────────
		response.WriteJSON(w, http.StatusCreated, record)
	}
}

func writeAddError(w http.ResponseWriter, err error) {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(fieldErrs))
		return
	}

	var verr *registry.ValidationError
	if errors.As(err, &verr) {
		response.WriteJSON(w, http.StatusBadRequest,
			response.GeneralError(errors.New(verr.Message)))
		return
	}

	slog.Error("error adding record", slog.String("error", err.Error()))
	response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
}

// ─────────────────────────────────────────────────────────────────────────────
// GetList handles GET /api/{kind}
// Returns a JSON array of every record in insertion order, or [] when the
// registry is empty.
// ─────────────────────────────────────────────────────────────────────────────
func GetList[T, D any](reg *registry.Registry[T, D]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Debug("listing records", slog.String("kind", reg.Kind()))

		response.WriteJSON(w, http.StatusOK, reg.List())
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Delete handles DELETE /api/{kind}/{id}
// Removes every record with the given id.
//
// Success response (200 OK), also for an id that matches nothing:
//
//	{ "status": "deleted", "removed": 1 }
//
// Error responses:
//
//	400 Bad Request  — id is not a valid integer
//
// ─────────────────────────────────────────────────────────────────────────────
func Delete[T, D any](reg *registry.Registry[T, D]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		kind := reg.Kind()
		slog.Info("deleting a "+kind, slog.String("kind", kind), slog.String("id", id))

		intID, err := strconv.Atoi(id)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("invalid id: must be an integer")))
			return
		}

		removed := reg.Remove(intID)

		response.WriteJSON(w, http.StatusOK, map[string]any{
			"status":  "deleted",
			"removed": removed,
		})
	}
}

package entity_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/college-console/internal/http/handlers/entity"
	"github.com/aanand-mishra/college-console/internal/notify"
	"github.com/aanand-mishra/college-console/internal/registry"
	"github.com/aanand-mishra/college-console/internal/types"
	"github.com/aanand-mishra/college-console/internal/utils/response"
	"github.com/aanand-mishra/college-console/internal/validation"
)

var quiet = registry.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

func routes[T, D any](prefix string, reg *registry.Registry[T, D]) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST "+prefix, entity.New(reg))
	mux.HandleFunc("GET "+prefix, entity.GetList(reg))
	mux.HandleFunc("DELETE "+prefix+"/{id}", entity.Delete(reg))
	return mux
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, rd))
	return rec
}

func TestStudentLifecycle(t *testing.T) {
	feed := notify.NewFeed(10)
	students := registry.NewStudents(validation.New(), registry.WithSink(feed), quiet)
	mux := routes("/api/students", students)

	rec := do(t, mux, http.MethodPost, "/api/students", `{"name":"Amy","email":"amy@x.co","major":"Math"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.JSONEq(t, `{
		"id": 3,
		"name": "Amy",
		"email": "amy@x.co",
		"major": "Math",
		"avatar": "/placeholder.svg?height=40&width=40",
		"initials": "A"
	}`, rec.Body.String())

	rec = do(t, mux, http.MethodGet, "/api/students", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []types.Student
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 3)
	require.Equal(t, []int{1, 2, 3}, []int{list[0].ID, list[1].ID, list[2].ID})

	rec = do(t, mux, http.MethodDelete, "/api/students/2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"deleted","removed":1}`, rec.Body.String())
	require.Len(t, students.List(), 2)

	active := feed.Active()
	require.Len(t, active, 1)
	require.Equal(t, notify.SeveritySuccess, active[0].Severity)
}

func TestStudentRejectedEmail(t *testing.T) {
	feed := notify.NewFeed(10)
	students := registry.NewStudents(validation.New(), registry.WithSink(feed), quiet)
	mux := routes("/api/students", students)

	rec := do(t, mux, http.MethodPost, "/api/students", `{"name":"Amy","email":"not-an-email","major":"Math"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, response.StatusError, body.Status)
	require.Equal(t, "field Email must be a valid email address", body.Error)

	require.Len(t, students.List(), 2)
	active := feed.Active()
	require.Len(t, active, 1)
	require.Equal(t, notify.SeverityError, active[0].Severity)
	require.Equal(t, registry.MsgInvalidEmail, active[0].Message)
}

func TestBadRequests(t *testing.T) {
	mux := routes("/api/courses", registry.NewCourses(quiet))

	testCases := []struct {
		name, method, path, body string
		wantErr                  string
	}{
		{"empty body", http.MethodPost, "/api/courses", "", "request body is empty"},
		{"malformed body", http.MethodPost, "/api/courses", `{"code":`, ""},
		{"non-integer id", http.MethodDelete, "/api/courses/abc", "", "invalid id: must be an integer"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, mux, tc.method, tc.path, tc.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			var body response.Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			require.Equal(t, response.StatusError, body.Status)
			if tc.wantErr != "" {
				require.Equal(t, tc.wantErr, body.Error)
			}
		})
	}
}

func TestDeleteUnknownIDIsNotAnError(t *testing.T) {
	faculty := registry.NewFaculty(quiet)
	mux := routes("/api/faculty", faculty)

	rec := do(t, mux, http.MethodDelete, "/api/faculty/99", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"deleted","removed":0}`, rec.Body.String())
	require.Len(t, faculty.List(), 2)
}

func TestCourseAddIsSilent(t *testing.T) {
	feed := notify.NewFeed(10)
	courses := registry.NewCourses(
		registry.WithSink(feed),
		registry.WithPicker(registry.PickerFunc(func(int) int { return 3 })),
		quiet,
	)
	mux := routes("/api/courses", courses)

	rec := do(t, mux, http.MethodPost, "/api/courses", `{"code":"MATH1","name":"Calculus","instructor":"Dr. Euler"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var got types.Course
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, types.Course{ID: 3, Code: "MATH1", Name: "Calculus", Instructor: "Dr. Euler", Color: "bg-red-500"}, got)
	require.Empty(t, feed.Active())
}

func TestEmptyListEncodesAsArray(t *testing.T) {
	faculty := registry.NewFaculty(quiet)
	faculty.Remove(1)
	faculty.Remove(2)

	rec := do(t, routes("/api/faculty", faculty), http.MethodGet, "/api/faculty", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[]`, rec.Body.String())
}

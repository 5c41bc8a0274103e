package console_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/college-console/internal/config"
	"github.com/aanand-mishra/college-console/internal/console"
	"github.com/aanand-mishra/college-console/internal/metrics"
	"github.com/aanand-mishra/college-console/internal/notify"
	"github.com/aanand-mishra/college-console/internal/registry"
	"github.com/aanand-mishra/college-console/internal/storage"
	"github.com/aanand-mishra/college-console/internal/storage/sqlite"
	"github.com/aanand-mishra/college-console/internal/types"
)

func testConfig(policy string, unify bool) *config.Config {
	return &config.Config{
		Env:      "dev",
		Registry: config.Registry{IDPolicy: policy},
		Notifications: config.Notifications{
			AutoHideAfter:  0, // keep everything visible for assertions
			DismissOnClick: true,
			FeedSize:       20,
			UnifySuccess:   unify,
		},
	}
}

func cfgOptions() notify.Options {
	return testConfig("length", false).Notifications.Options()
}

type harness struct {
	app     *console.Console
	feed    *notify.Feed
	journal *sqlite.SQLite
	server  *httptest.Server
}

func newHarness(t *testing.T, cfg *config.Config) *harness {
	t.Helper()

	journal, err := sqlite.New(sqlite.MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { _ = journal.Close() })

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	feed := notify.NewFeed(cfg.Notifications.FeedSize)
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	app, err := console.New(cfg, console.Deps{
		Sink:     feed,
		Observer: registry.Observers(m, storage.Recorder{Journal: journal, Log: log, RejectedDetail: registry.MsgInvalidEmail}),
		Picker:   registry.PickerFunc(func(int) int { return 0 }),
		Log:      log,
	})
	require.NoError(t, err)
	for kind, size := range app.Sizes() {
		m.SetSize(kind, size)
	}

	srv := httptest.NewServer(app.Routes(feed, journal, promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	t.Cleanup(srv.Close)

	return &harness{app: app, feed: feed, journal: journal, server: srv}
}

func (h *harness) do(t *testing.T, method, path, body string) (int, []byte) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, h.server.URL+path, rd)
	require.NoError(t, err)
	resp, err := h.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func TestSeededConsole(t *testing.T) {
	h := newHarness(t, testConfig("length", false))

	require.Equal(t, map[string]int{"student": 2, "course": 2, "faculty": 2}, h.app.Sizes())

	status, raw := h.do(t, http.MethodGet, "/api/courses", "")
	require.Equal(t, http.StatusOK, status)
	var courses []types.Course
	require.NoError(t, json.Unmarshal(raw, &courses))
	require.Equal(t, []types.Course{
		{ID: 1, Code: "CS101", Name: "Introduction to Programming", Instructor: "Dr. Smith", Color: "bg-blue-500"},
		{ID: 2, Code: "BIO201", Name: "Cell Biology", Instructor: "Dr. Johnson", Color: "bg-green-500"},
	}, courses)
}

func TestEndToEnd(t *testing.T) {
	h := newHarness(t, testConfig("length", false))

	status, _ := h.do(t, http.MethodPost, "/api/students", `{"name":"Amy","email":"amy@x.co","major":"Math"}`)
	require.Equal(t, http.StatusCreated, status)
	status, _ = h.do(t, http.MethodPost, "/api/students", `{"name":"Bob","email":"bob","major":"Art"}`)
	require.Equal(t, http.StatusBadRequest, status)
	status, _ = h.do(t, http.MethodPost, "/api/faculty", `{"name":"Dr. Who","email":"nope","department":"Time"}`)
	require.Equal(t, http.StatusCreated, status)
	status, _ = h.do(t, http.MethodDelete, "/api/faculty/1", "")
	require.Equal(t, http.StatusOK, status)

	require.Len(t, h.app.Students.List(), 3)
	require.Len(t, h.app.Faculty.List(), 2)

	// Notifications: one success and one error, both from students.
	status, raw := h.do(t, http.MethodGet, "/api/notifications", "")
	require.Equal(t, http.StatusOK, status)
	var notes []notify.Notification
	require.NoError(t, json.Unmarshal(raw, &notes))
	require.Len(t, notes, 2)
	require.Equal(t, registry.MsgStudentAdded, notes[0].Message)
	require.Equal(t, registry.MsgInvalidEmail, notes[1].Message)
	require.Equal(t, cfgOptions(), notes[0].Options)
	require.Equal(t, notify.SeverityError, notes[1].Severity)

	// Journal: newest first.
	entries, err := h.journal.Entries(context.Background(), "", 0)
	require.NoError(t, err)
	actions := make([]string, 0, len(entries))
	for _, e := range entries {
		actions = append(actions, e.Kind+":"+string(e.Action))
	}
	require.Equal(t, []string{"faculty:removed", "faculty:added", "student:rejected", "student:added"}, actions)

	status, raw = h.do(t, http.MethodGet, "/api/activity?kind=student", "")
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(raw, &entries))
	require.Len(t, entries, 2)

	status, raw = h.do(t, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, string(raw), `college_records{kind="faculty"} 2`)
	require.Contains(t, string(raw), `college_records_rejected_total{kind="student"} 1`)
}

func TestSequencePolicyAndUnifiedSuccess(t *testing.T) {
	h := newHarness(t, testConfig("sequence", true))

	require.Equal(t, 1, h.app.Courses.Remove(2))
	c, err := h.app.Courses.Add(&types.CourseDraft{Code: "NEW"})
	require.NoError(t, err)
	require.Equal(t, 3, c.ID)
	require.Equal(t, "bg-blue-500", c.Color)

	notes := h.feed.Active()
	require.Len(t, notes, 1)
	require.Equal(t, "Course added successfully!", notes[0].Message)
}

func TestRejectsUnknownPolicy(t *testing.T) {
	_, err := console.New(testConfig("random", false), console.Deps{})
	require.Error(t, err)
}

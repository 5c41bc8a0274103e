package metrics_test

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/college-console/internal/metrics"
	"github.com/aanand-mishra/college-console/internal/registry"
	"github.com/aanand-mishra/college-console/internal/types"
	"github.com/aanand-mishra/college-console/internal/validation"
)

func TestObserverCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	quiet := registry.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	students := registry.NewStudents(validation.New(), registry.WithObserver(m), quiet)
	m.SetSize(students.Kind(), students.Len())

	_, err := students.Add(&types.StudentDraft{Email: "amy@x.co"})
	require.NoError(t, err)
	_, err = students.Add(&types.StudentDraft{Email: "nope"})
	require.Error(t, err)
	students.Remove(1)
	students.Remove(42)

	expected := `
# HELP college_records Current number of records, by entity kind.
# TYPE college_records gauge
college_records{kind="student"} 2
# HELP college_records_added_total Records added, by entity kind.
# TYPE college_records_added_total counter
college_records_added_total{kind="student"} 1
# HELP college_records_rejected_total Drafts rejected by validation, by entity kind.
# TYPE college_records_rejected_total counter
college_records_rejected_total{kind="student"} 1
# HELP college_records_removed_total Records removed, by entity kind.
# TYPE college_records_removed_total counter
college_records_removed_total{kind="student"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected)))
}

func TestSeedGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.SetSize("course", 2)
	m.SetSize("faculty", 2)

	require.Equal(t, 2, testutil.CollectAndCount(reg, "college_records"))
}

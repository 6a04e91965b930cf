package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecordRequestCounts(t *testing.T) {
	m := NewMetrics()

	m.RecordRequest("/tickets", "GET", 200, time.Millisecond)
	m.RecordRequest("/tickets", "GET", 200, time.Millisecond)
	m.RecordRequest("/tickets", "POST", 201, time.Millisecond)

	requests, _ := m.Snapshot()
	assert.Equal(t, int64(2), requests["/tickets|GET|200"])
	assert.Equal(t, int64(1), requests["/tickets|POST|201"])
}

func TestRecordErrorCounts(t *testing.T) {
	m := NewMetrics()

	m.RecordError("/tickets/1", "PATCH", "UNAUTHORIZED")

	_, errs := m.Snapshot()
	assert.Equal(t, int64(1), errs["/tickets/1|PATCH|UNAUTHORIZED"])
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics

	m.RecordRequest("/x", "GET", 200, 0)
	m.RecordError("/x", "GET", "CODE")

	requests, errs := m.Snapshot()
	assert.Empty(t, requests)
	assert.Empty(t, errs)
}

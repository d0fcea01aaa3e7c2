package store

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/roach88/posixtime/internal/harness"
	"github.com/roach88/posixtime/internal/timespec"
)

// createTestStore creates a new temp-dir store with sequential run IDs.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, WithIDGenerator(sequentialIDs()))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// sequentialIDs returns a generator producing run-001, run-002, ...
func sequentialIDs() IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("run-%03d", n)
	}
}

// createTestResult builds a result with one passing and one failing case.
func createTestResult(name string) *harness.Result {
	ticks := uint64(1000)
	r := harness.NewResult(name)
	r.AddOutcome(harness.Outcome{
		Index:  0,
		Name:   "one_second",
		Op:     harness.OpToTicks,
		Pass:   true,
		Actual: harness.Actual{Ticks: &ticks},
	})
	r.AddOutcome(harness.Outcome{
		Index: 1,
		Name:  "borrow",
		Op:    harness.OpSubtract,
		Pass:  false,
		Actual: harness.Actual{
			Status: "ok",
			Value:  &timespec.Timestamp{Seconds: 1, Nanoseconds: 500_000_000},
		},
		Mismatches: []string{"expected value 2.000000000, got 1.500000000"},
	})
	return r
}

package store

import (
	"context"
	"path/filepath"
	"reflect"
	"regexp"
	"testing"

	"github.com/roach88/posixtime/internal/config"
	"github.com/roach88/posixtime/internal/harness"
)

func TestRecordRun_Basic(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	run, err := s.RecordRun(ctx, "vectors/ticks.yaml", config.Default(), createTestResult("ticks"))
	if err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}

	want := Run{
		ID:         "run-001",
		Seq:        1,
		VectorFile: "vectors/ticks.yaml",
		Name:       "ticks",
		TickRateHz: 1000,
		TickWidth:  32,
		Pass:       false,
		Total:      2,
		Failed:     1,
	}
	if run != want {
		t.Errorf("RecordRun() = %+v, want %+v", run, want)
	}
}

func TestRecordRun_SeqIncrements(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		run, err := s.RecordRun(ctx, "f.yaml", config.Default(), harness.NewResult("f"))
		if err != nil {
			t.Fatalf("RecordRun() %d failed: %v", i, err)
		}
		if run.Seq != i {
			t.Errorf("run %d: seq = %d, want %d", i, run.Seq, i)
		}
	}
}

func TestRecordRun_NilResult(t *testing.T) {
	s := createTestStore(t)

	if _, err := s.RecordRun(context.Background(), "f.yaml", config.Default(), nil); err == nil {
		t.Error("expected error for nil result")
	}
}

func TestRecordRun_CancelledContext(t *testing.T) {
	s := createTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.RecordRun(ctx, "f.yaml", config.Default(), createTestResult("f")); err == nil {
		t.Error("expected error for cancelled context")
	}

	runs, err := s.ListRuns(context.Background(), ListFilter{})
	if err != nil {
		t.Fatalf("ListRuns() failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("cancelled record left %d runs", len(runs))
	}
}

func TestRecordRun_DefaultIDsAreUUIDv7(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	run, err := s.RecordRun(context.Background(), "f.yaml", config.Default(), harness.NewResult("f"))
	if err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}

	uuidV7 := regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-7[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)
	if !uuidV7.MatchString(run.ID) {
		t.Errorf("run ID %q is not a UUIDv7", run.ID)
	}
}

func TestListRuns_NewestFirst(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"a", "b", "a"} {
		if _, err := s.RecordRun(ctx, name+".yaml", config.Default(), harness.NewResult(name)); err != nil {
			t.Fatalf("RecordRun(%s) failed: %v", name, err)
		}
	}

	runs, err := s.ListRuns(ctx, ListFilter{})
	if err != nil {
		t.Fatalf("ListRuns() failed: %v", err)
	}

	var ids []string
	for _, r := range runs {
		ids = append(ids, r.ID)
	}
	want := []string{"run-003", "run-002", "run-001"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("ListRuns() ids = %v, want %v", ids, want)
	}
	if !runs[0].Pass || runs[0].Total != 0 {
		t.Errorf("empty result should record as passing with zero total, got %+v", runs[0])
	}
}

func TestListRuns_FilterAndLimit(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"a", "b", "a", "a"} {
		if _, err := s.RecordRun(ctx, name+".yaml", config.Default(), harness.NewResult(name)); err != nil {
			t.Fatalf("RecordRun(%s) failed: %v", name, err)
		}
	}

	runs, err := s.ListRuns(ctx, ListFilter{Name: "a", Limit: 2})
	if err != nil {
		t.Fatalf("ListRuns() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("len(runs) = %d, want 2", len(runs))
	}
	if runs[0].ID != "run-004" || runs[1].ID != "run-003" {
		t.Errorf("got %s, %s; want run-004, run-003", runs[0].ID, runs[1].ID)
	}
}

func TestListRuns_Empty(t *testing.T) {
	s := createTestStore(t)

	runs, err := s.ListRuns(context.Background(), ListFilter{Name: "missing"})
	if err != nil {
		t.Fatalf("ListRuns() failed: %v", err)
	}
	if runs == nil {
		t.Error("ListRuns() returned nil, want empty slice")
	}
}

func TestReadOutcomes_RoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	run, err := s.RecordRun(ctx, "ticks.yaml", config.Default(), createTestResult("ticks"))
	if err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}

	got, err := s.ReadOutcomes(ctx, run.ID)
	if err != nil {
		t.Fatalf("ReadOutcomes() failed: %v", err)
	}

	want := []OutcomeRecord{
		{
			RunID:      "run-001",
			Index:      0,
			CaseName:   "one_second",
			Op:         "to_ticks",
			Pass:       true,
			Actual:     `{"ticks":1000}`,
			Mismatches: []string{},
		},
		{
			RunID:      "run-001",
			Index:      1,
			CaseName:   "borrow",
			Op:         "subtract",
			Pass:       false,
			Actual:     `{"status":"ok","value":{"nsec":500000000,"sec":1}}`,
			Mismatches: []string{"expected value 2.000000000, got 1.500000000"},
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ReadOutcomes() =\n%+v\nwant\n%+v", got, want)
	}
}

func TestReadOutcomes_UnknownRun(t *testing.T) {
	s := createTestStore(t)

	got, err := s.ReadOutcomes(context.Background(), "missing")
	if err != nil {
		t.Fatalf("ReadOutcomes() failed: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("ReadOutcomes() = %v, want empty slice", got)
	}
}

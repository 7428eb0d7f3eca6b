package store

import (
	"testing"
	"time"

	"github.com/tiagomars/weather-data-pipeline/internal/pipeline"
)

func exec(date string, state pipeline.RunState) pipeline.RunExecution {
	return pipeline.RunExecution{ID: "id-" + date, RunDate: date, State: state}
}

func TestSaveAndGetByDate(t *testing.T) {
	s := NewMemoryStore(0)

	if _, err := s.GetByDate("2024-03-01"); err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	s.SaveExecution(exec("2024-03-01", pipeline.StateDone))

	got, err := s.GetByDate("2024-03-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.State != pipeline.StateDone {
		t.Errorf("state = %s", got.State)
	}
}

func TestSaveSameDateReplaces(t *testing.T) {
	s := NewMemoryStore(0)

	s.SaveExecution(exec("2024-03-01", pipeline.StateFailed))
	s.SaveExecution(exec("2024-03-01", pipeline.StateDone))

	got, err := s.GetByDate("2024-03-01")
	if err != nil {
		t.Fatal(err)
	}
	if got.State != pipeline.StateDone {
		t.Errorf("state = %s, want the re-trigger's DONE", got.State)
	}
}

func TestGetLatest(t *testing.T) {
	s := NewMemoryStore(0)

	if _, err := s.GetLatest(); err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	s.SaveExecution(exec("2024-03-02", pipeline.StateDone))
	s.SaveExecution(exec("2024-03-01", pipeline.StateDone))
	s.SaveExecution(exec("2024-02-28", pipeline.StateFailed))

	got, err := s.GetLatest()
	if err != nil {
		t.Fatal(err)
	}
	if got.RunDate != "2024-03-02" {
		t.Errorf("latest = %s, want 2024-03-02", got.RunDate)
	}
}

func TestGetRange(t *testing.T) {
	s := NewMemoryStore(0)
	for _, d := range []string{"2024-02-28", "2024-03-01", "2024-03-02", "2024-03-05"} {
		s.SaveExecution(exec(d, pipeline.StateDone))
	}

	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)

	execs, err := s.GetRange(from, to)
	if err != nil {
		t.Fatal(err)
	}
	if len(execs) != 2 {
		t.Fatalf("runs = %d, want 2", len(execs))
	}
	if execs[0].RunDate != "2024-03-01" || execs[1].RunDate != "2024-03-02" {
		t.Errorf("runs out of order: %s, %s", execs[0].RunDate, execs[1].RunDate)
	}

	if _, err := s.GetRange(from.AddDate(1, 0, 0), to.AddDate(1, 0, 0)); err != ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound for empty range", err)
	}
}

func TestRetentionDropsOldestDates(t *testing.T) {
	s := NewMemoryStore(2)

	s.SaveExecution(exec("2024-03-01", pipeline.StateDone))
	s.SaveExecution(exec("2024-03-02", pipeline.StateDone))
	s.SaveExecution(exec("2024-03-03", pipeline.StateDone))

	if _, err := s.GetByDate("2024-03-01"); err != ErrNotFound {
		t.Errorf("oldest date should be evicted, got err = %v", err)
	}
	if _, err := s.GetByDate("2024-03-03"); err != nil {
		t.Errorf("newest date missing: %v", err)
	}
}

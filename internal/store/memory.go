package store

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/tiagomars/weather-data-pipeline/internal/pipeline"
)

var (
	// ErrNotFound is returned when no execution is recorded for a run date.
	ErrNotFound = errors.New("no run execution for date")
)

// MemoryStore is a concurrency-safe in-memory run-history store. One
// execution per run date is kept: a re-trigger of the same date replaces the
// previous record, mirroring the overwrite semantics of the storage layer.
type MemoryStore struct {
	mu sync.RWMutex

	// key: run date, value: latest execution snapshot for that date
	runs map[string]pipeline.RunExecution

	// retention configuration
	maxHistory int // max number of run dates kept (0 = unlimited)
}

// NewMemoryStore creates a new MemoryStore with an optional retention limit.
// If maxHistory is <= 0, it is treated as unlimited.
func NewMemoryStore(maxHistory int) *MemoryStore {
	return &MemoryStore{
		runs:       make(map[string]pipeline.RunExecution),
		maxHistory: maxHistory,
	}
}

// SaveExecution stores the execution snapshot under its run date and enforces
// retention, dropping the oldest dates first.
func (s *MemoryStore) SaveExecution(exec pipeline.RunExecution) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs[exec.RunDate] = exec

	if s.maxHistory > 0 && len(s.runs) > s.maxHistory {
		dates := s.sortedDates()
		over := len(dates) - s.maxHistory
		for _, d := range dates[:over] {
			delete(s.runs, d)
		}
	}
}

// GetByDate returns the recorded execution for a run date.
func (s *MemoryStore) GetByDate(runDate string) (pipeline.RunExecution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	exec, ok := s.runs[runDate]
	if !ok {
		return pipeline.RunExecution{}, ErrNotFound
	}
	return exec, nil
}

// GetLatest returns the execution with the most recent run date.
func (s *MemoryStore) GetLatest() (pipeline.RunExecution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.runs) == 0 {
		return pipeline.RunExecution{}, ErrNotFound
	}

	dates := s.sortedDates()
	return s.runs[dates[len(dates)-1]], nil
}

// GetRange returns executions whose run date falls between from and to
// (inclusive), ordered by date ascending.
func (s *MemoryStore) GetRange(from, to time.Time) ([]pipeline.RunExecution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []pipeline.RunExecution
	for _, d := range s.sortedDates() {
		day, err := time.Parse("2006-01-02", d)
		if err != nil {
			continue
		}
		if (day.Equal(from) || day.After(from)) && (day.Equal(to) || day.Before(to)) {
			result = append(result, s.runs[d])
		}
	}

	if len(result) == 0 {
		return nil, ErrNotFound
	}
	return result, nil
}

// sortedDates returns all recorded run dates ascending. Callers must hold at
// least a read lock. Run dates sort lexicographically in date order.
func (s *MemoryStore) sortedDates() []string {
	dates := make([]string, 0, len(s.runs))
	for d := range s.runs {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

package pipeline

import "time"

// RunState is where a run currently is in its lifecycle. DONE and FAILED are
// terminal; a FAILED run is never advanced to the next calendar run.
type RunState string

const (
	StatePending          RunState = "PENDING"
	StateExtracting       RunState = "EXTRACTING"
	StateRawLoading       RunState = "RAW_LOADING"
	StateTransforming     RunState = "TRANSFORMING"
	StateProcessedLoading RunState = "PROCESSED_LOADING"
	StateDone             RunState = "DONE"
	StateFailed           RunState = "FAILED"
)

// StageResult records one stage's execution within a run, including how many
// attempts the retry runner spent on it.
type StageResult struct {
	Name       string    `json:"name"`
	Attempts   int       `json:"attempts"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
	Error      string    `json:"error,omitempty"`
}

// RunExecution is the record of one pipeline run. The run date is the sole
// correlation key for all of a run's artifacts; the uuid only distinguishes
// re-triggers of the same date in the history.
type RunExecution struct {
	ID         string        `json:"id"`
	RunDate    string        `json:"runDate"`
	State      RunState      `json:"state"`
	StartedAt  time.Time     `json:"startedAt"`
	FinishedAt time.Time     `json:"finishedAt,omitempty"`
	Stages     []StageResult `json:"stages"`

	FetchedLocations int `json:"fetchedLocations"`
	FailedLocations  int `json:"failedLocations"`

	RawKey       string `json:"rawKey,omitempty"`
	ProcessedKey string `json:"processedKey,omitempty"`

	Error string `json:"error,omitempty"`
}

// HistoryStore receives run execution snapshots as the state machine advances.
type HistoryStore interface {
	SaveExecution(exec RunExecution)
}

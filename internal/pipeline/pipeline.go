// Package pipeline implements the four-stage daily weather batch:
// extract current conditions per configured location, land the raw batch in
// object storage, derive the categorized records, land those too. Stages run
// strictly in sequence and hand artifacts to each other through a RunContext.
package pipeline

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/tiagomars/weather-data-pipeline/internal/storage"
	"github.com/tiagomars/weather-data-pipeline/internal/weather"
)

type boundStage struct {
	stage Stage
	state RunState
}

// Pipeline drives one run through the stage chain under a retry policy,
// recording state transitions into the history store.
//
// Runs for different dates never contend: every artifact path and storage key
// is partitioned by run date. Concurrent runs for the same date are not
// coordinated; storage overwrite makes that last-writer-wins.
type Pipeline struct {
	stages  []boundStage
	runner  Runner
	history HistoryStore
}

// New wires the four stages. history may be nil for one-off runs.
func New(
	fetcher Fetcher,
	locations []weather.Location,
	stagingDir string,
	store storage.ObjectStore,
	history HistoryStore,
	policy RetryPolicy,
) *Pipeline {
	return &Pipeline{
		stages: []boundStage{
			{NewExtractor(fetcher, locations, stagingDir), StateExtracting},
			{NewRawLoader(store), StateRawLoading},
			{NewTransformer(stagingDir), StateTransforming},
			{NewProcessedLoader(store), StateProcessedLoading},
		},
		runner:  Runner{Policy: policy},
		history: history,
	}
}

// Execute runs the full chain for runDate (YYYY-MM-DD). It stops at the first
// stage that exhausts its retry budget; downstream stages are then never
// invoked and the run ends FAILED. The returned execution reflects the final
// state either way.
func (p *Pipeline) Execute(ctx context.Context, runDate string) (RunExecution, error) {
	exec := RunExecution{
		ID:        uuid.NewString(),
		RunDate:   runDate,
		State:     StatePending,
		StartedAt: time.Now().UTC(),
	}
	p.save(exec)

	log.Printf("INFO: pipeline: starting run %s (%s)", runDate, exec.ID)

	rc := &RunContext{RunDate: runDate}

	for _, b := range p.stages {
		exec.State = b.state
		p.save(exec)

		started := time.Now().UTC()
		attempts, err := p.runner.Run(ctx, b.stage, rc)

		result := StageResult{
			Name:       b.stage.Name(),
			Attempts:   attempts,
			StartedAt:  started,
			FinishedAt: time.Now().UTC(),
		}

		if err != nil {
			result.Error = err.Error()
			exec.Stages = append(exec.Stages, result)
			exec.State = StateFailed
			exec.Error = err.Error()
			exec.FinishedAt = time.Now().UTC()
			p.save(exec)
			log.Printf("ERROR: pipeline: run %s failed in %s: %v", runDate, b.stage.Name(), err)
			return exec, err
		}

		exec.Stages = append(exec.Stages, result)
		exec.FetchedLocations = rc.Fetched
		exec.FailedLocations = len(rc.Failures)
		exec.RawKey = rc.RawKey
		exec.ProcessedKey = rc.ProcessedKey
	}

	exec.State = StateDone
	exec.FinishedAt = time.Now().UTC()
	p.save(exec)

	log.Printf("INFO: pipeline: run %s done (%d fetched, %d failed)",
		runDate, exec.FetchedLocations, exec.FailedLocations)
	return exec, nil
}

func (p *Pipeline) save(exec RunExecution) {
	if p.history != nil {
		p.history.SaveExecution(exec)
	}
}

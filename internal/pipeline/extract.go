package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/tiagomars/weather-data-pipeline/internal/weather"
)

// Fetcher is the upstream weather source the Extractor pulls from.
type Fetcher interface {
	Fetch(ctx context.Context, loc weather.Location, runDate string) (weather.RawObservation, error)
}

// FetchOutcome is the per-location result of one extraction attempt: either an
// observation or an error, never both.
type FetchOutcome struct {
	Location    weather.Location
	Observation weather.RawObservation
	Err         error
}

// Extractor fetches current weather for every configured location and stages
// the successful observations as an indented JSON file named after the run
// date. A location's failure is skipped, not fatal; only the staging write can
// fail the stage.
type Extractor struct {
	fetcher    Fetcher
	locations  []weather.Location
	stagingDir string
}

// NewExtractor creates the extract stage.
func NewExtractor(fetcher Fetcher, locations []weather.Location, stagingDir string) *Extractor {
	return &Extractor{
		fetcher:    fetcher,
		locations:  locations,
		stagingDir: stagingDir,
	}
}

func (e *Extractor) Name() string { return "extract" }

// Collect fetches every location sequentially and returns one outcome per
// location, in configuration order. Duplicated locations are fetched again.
func (e *Extractor) Collect(ctx context.Context, runDate string) []FetchOutcome {
	outcomes := make([]FetchOutcome, 0, len(e.locations))
	for _, loc := range e.locations {
		obs, err := e.fetcher.Fetch(ctx, loc, runDate)
		if err != nil {
			log.Printf("WARN: extract: fetch failed for %s: %v", loc.Query(), err)
			outcomes = append(outcomes, FetchOutcome{Location: loc, Err: err})
			continue
		}
		outcomes = append(outcomes, FetchOutcome{Location: loc, Observation: obs})
	}
	return outcomes
}

func (e *Extractor) Run(ctx context.Context, rc *RunContext) error {
	outcomes := e.Collect(ctx, rc.RunDate)

	batch := make([]weather.RawObservation, 0, len(outcomes))
	var failures []FetchError
	for _, o := range outcomes {
		if o.Err != nil {
			failures = append(failures, FetchError{Location: o.Location, Err: o.Err})
			continue
		}
		batch = append(batch, o.Observation)
	}

	log.Printf("INFO: extract: collected %d/%d locations for %s", len(batch), len(e.locations), rc.RunDate)

	path := filepath.Join(e.stagingDir, fmt.Sprintf("weather_raw_%s.json", rc.RunDate))
	if err := writeRawStaging(path, batch); err != nil {
		return &StagingError{Stage: e.Name(), Path: path, Err: err}
	}

	rc.RawStagingPath = path
	rc.Fetched = len(batch)
	rc.Failures = failures
	return nil
}

func writeRawStaging(path string, batch []weather.RawObservation) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(batch); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadRawStaging loads a staged raw batch back from disk. An empty file body
// ("[]") yields an empty, non-nil batch.
func ReadRawStaging(path string) ([]weather.RawObservation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	batch := []weather.RawObservation{}
	if err := json.NewDecoder(f).Decode(&batch); err != nil {
		return nil, fmt.Errorf("malformed raw batch: %w", err)
	}
	return batch, nil
}

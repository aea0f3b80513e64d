// Package store persists headless run output: a JSON run record plus the
// sampled telemetry as CSV.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/anand-ps/reverie/internal/telemetry"
)

// Store writes run directories under a base directory.
type Store struct {
	baseDir string
}

// New returns a store rooted at baseDir.
func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// Init creates the base directory.
func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata describes one headless run.
type RunMetadata struct {
	ID        string                   `json:"id"`
	Model     string                   `json:"model"`
	Timestamp time.Time                `json:"timestamp"`
	Seed      int64                    `json:"seed"`
	StepRate  float64                  `json:"step_rate"`
	Duration  float64                  `json:"duration"`
	Samples   int                      `json:"samples"`
	Stats     telemetry.AvalancheStats `json:"avalanche_stats"`
}

// Save writes metadata.json and telemetry.csv for one run and returns the
// run ID.
func (s *Store) Save(model string, stepRate, duration float64, seed int64,
	records []telemetry.Record, stats telemetry.AvalancheStats) (string, error) {

	runID := fmt.Sprintf("%s_%d", model, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Model:     model,
		Timestamp: time.Now(),
		Seed:      seed,
		StepRate:  stepRate,
		Duration:  duration,
		Samples:   len(records),
		Stats:     stats,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "telemetry.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := gocsv.MarshalFile(&records, csvFile); err != nil {
		return "", err
	}
	return runID, nil
}

// List returns the run IDs under the base directory, newest last.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			ids = append(ids, e.Name())
		}
	}
	return ids, nil
}

// LoadMetadata reads one run's metadata.json.
func (s *Store) LoadMetadata(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

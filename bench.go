package blockgrid

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// BenchResult captures one benchmark measurement for the session file.
type BenchResult struct {
	Name      string    `json:"name"`
	Elements  int       `json:"elements"`
	NsPerOp   float64   `json:"ns_per_op"`
	GBPerSec  float64   `json:"gb_per_sec"`
	Timestamp time.Time `json:"timestamp"`
}

// BenchCollector accumulates results and writes them as one JSON document,
// so separate runs can be diffed against each other.
type BenchCollector struct {
	mu      sync.Mutex
	results []BenchResult
}

// Record appends a result to the session.
func (bc *BenchCollector) Record(r BenchResult) {
	bc.mu.Lock()
	defer bc.mu.Unlock()
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now()
	}
	bc.results = append(bc.results, r)
}

// Results returns a copy of the recorded results.
func (bc *BenchCollector) Results() []BenchResult {
	bc.mu.Lock()
	defer bc.mu.Unlock()
	out := make([]BenchResult, len(bc.results))
	copy(out, bc.results)
	return out
}

// WriteFile writes the session to path as indented JSON, creating parent
// directories as needed.
func (bc *BenchCollector) WriteFile(path string) error {
	bc.mu.Lock()
	defer bc.mu.Unlock()

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating result directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(bc.results, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

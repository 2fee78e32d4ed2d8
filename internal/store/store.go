// Package store persists identification and tuning runs under a data
// directory, one subdirectory per run: metadata as JSON plus the
// simulated step response as CSV.
package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata describes one identify or tune invocation.
type RunMetadata struct {
	ID        string             `json:"id"`
	Kind      string             `json:"kind"` // "identify" or "tune"
	Method    string             `json:"method"`
	Tuner     string             `json:"tuner,omitempty"`
	Structure string             `json:"structure,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
	K         float64            `json:"k"`
	Tau       float64            `json:"tau"`
	Theta     float64            `json:"theta"`
	Kp        float64            `json:"kp,omitempty"`
	Ki        float64            `json:"ki,omitempty"`
	Kd        float64            `json:"kd,omitempty"`
	Metrics   map[string]float64 `json:"metrics,omitempty"`
}

// Save writes the metadata and the (time, output) trajectory and returns
// the generated run ID.
func (s *Store) Save(meta RunMetadata, times, y []float64) (string, error) {
	runID := fmt.Sprintf("%s_%s_%d", meta.Kind, meta.Method, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()

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

	csvFile, err := os.Create(filepath.Join(runDir, "response.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"time", "output"}); err != nil {
		return "", err
	}
	for i := range times {
		row := []string{
			strconv.FormatFloat(times[i], 'f', 6, 64),
			strconv.FormatFloat(y[i], 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	return runID, nil
}

// List returns the metadata of every stored run.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	return runs, nil
}

// Load reads one run's metadata.
func (s *Store) Load(runID string) (*RunMetadata, error) {
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

// LoadResponse reads back a stored trajectory.
func (s *Store) LoadResponse(runID string) (times, y []float64, err error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "response.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, err
	}
	for i := 1; i < len(records); i++ {
		if len(records[i]) < 2 {
			continue
		}
		t, err := strconv.ParseFloat(records[i][0], 64)
		if err != nil {
			continue
		}
		v, err := strconv.ParseFloat(records[i][1], 64)
		if err != nil {
			continue
		}
		times = append(times, t)
		y = append(y, v)
	}
	return times, y, nil
}

package store

import (
	"encoding/json"
	"io"
	"os"
)

// ExportData is a run flattened into a single self-contained JSON
// document, metadata and trajectory together, for handing off to other
// tools.
type ExportData struct {
	RunMetadata
	Times   []float64 `json:"times"`
	Outputs []float64 `json:"outputs"`
}

// Export writes one run as a single JSON document to the given path,
// or to stdout when the path is "-".
func (s *Store) Export(runID, path string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	times, y, err := s.LoadResponse(runID)
	if err != nil {
		return err
	}

	data := ExportData{
		RunMetadata: *meta,
		Times:       times,
		Outputs:     y,
	}

	var w io.Writer = os.Stdout
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

package storage

import (
	"encoding/json"
	"io"
)

// ExportData is the JSON form of a stored run.
type ExportData struct {
	Run    Run                  `json:"run"`
	Series map[string][]float64 `json:"series"`
}

// ExportJSON writes a run with its full series as indented JSON.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	run, err := s.Load(runID)
	if err != nil {
		return err
	}
	series, err := s.LoadSeries(runID)
	if err != nil {
		return err
	}
	data := ExportData{Run: *run, Series: make(map[string][]float64, len(series.Names))}
	for _, name := range series.Names {
		data.Series[name] = series.Column(name)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

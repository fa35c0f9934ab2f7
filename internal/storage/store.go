package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"
)

var ErrUnknownRun = errors.New("storage: unknown run")

// Store keeps captures as one directory per run under baseDir.
type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

// Run describes one capture.
type Run struct {
	ID        string             `json:"id"`
	Effect    string             `json:"effect"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Frames    int                `json:"frames"`
	Width     int                `json:"width"`
	Height    int                `json:"height"`
	Dark      bool               `json:"dark"`
	Output    string             `json:"output,omitempty"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes metadata.json and stats.csv for a capture and returns its id.
// Frames and Metrics are filled from the series.
func (s *Store) Save(run Run, series *Series) (string, error) {
	now := s.now()
	id := fmt.Sprintf("%s_%d", run.Effect, now.Unix())
	for n := 1; s.exists(id); n++ {
		id = fmt.Sprintf("%s_%d_%d", run.Effect, now.Unix(), n)
	}
	runDir := filepath.Join(s.baseDir, id)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", fmt.Errorf("create run dir: %w", err)
	}

	run.ID = id
	run.Timestamp = now
	run.Frames = series.Len()
	run.Metrics = series.Final()

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(run); err != nil {
		return "", fmt.Errorf("encode metadata: %w", err)
	}

	csvFile, err := os.Create(filepath.Join(runDir, "stats.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := writeSeries(csvFile, series); err != nil {
		return "", fmt.Errorf("write stats: %w", err)
	}
	return id, nil
}

func writeSeries(out io.Writer, series *Series) error {
	w := csv.NewWriter(out)
	header := append([]string{"frame"}, series.Names...)
	if err := w.Write(header); err != nil {
		return err
	}
	for i, frame := range series.Frames {
		row := []string{strconv.Itoa(i)}
		for _, val := range frame {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func (s *Store) exists(id string) bool {
	_, err := os.Stat(filepath.Join(s.baseDir, id))
	return err == nil
}

// List returns every readable run, oldest first. A missing base directory is
// an empty store.
func (s *Store) List() ([]Run, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Run{}, nil
		}
		return nil, err
	}

	runs := make([]Run, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		run, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *run)
	}
	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*Run, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownRun, runID)
		}
		return nil, err
	}

	var run Run
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("decode %s metadata: %w", runID, err)
	}
	return &run, nil
}

// LoadSeries reads stats.csv back. Unparseable cells become zero.
func (s *Store) LoadSeries(runID string) (*Series, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "stats.csv"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownRun, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s stats: %w", runID, err)
	}
	if len(records) == 0 {
		return NewSeries(), nil
	}

	series := NewSeries(records[0][1:]...)
	for _, record := range records[1:] {
		if len(record) == 0 {
			continue
		}
		values := make([]float64, 0, len(record)-1)
		for _, cell := range record[1:] {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				v = 0
			}
			values = append(values, v)
		}
		series.Append(values...)
	}
	return series, nil
}

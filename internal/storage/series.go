package storage

// Series is a per-frame table of metric samples. Column i of every row
// belongs to Names[i].
type Series struct {
	Names  []string
	Frames [][]float64
}

func NewSeries(names ...string) *Series {
	return &Series{Names: append([]string(nil), names...)}
}

// Append adds one frame. Short rows are padded with zeros.
func (s *Series) Append(values ...float64) {
	row := make([]float64, len(s.Names))
	copy(row, values)
	s.Frames = append(s.Frames, row)
}

func (s *Series) Len() int { return len(s.Frames) }

// Column returns the samples for one metric, or nil if it is not recorded.
func (s *Series) Column(name string) []float64 {
	idx := -1
	for i, n := range s.Names {
		if n == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	out := make([]float64, len(s.Frames))
	for i, row := range s.Frames {
		out[i] = row[idx]
	}
	return out
}

// Final maps each metric to its last sample.
func (s *Series) Final() map[string]float64 {
	out := make(map[string]float64, len(s.Names))
	if len(s.Frames) == 0 {
		return out
	}
	last := s.Frames[len(s.Frames)-1]
	for i, n := range s.Names {
		out[n] = last[i]
	}
	return out
}

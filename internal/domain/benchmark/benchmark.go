// Package benchmark supplies peer statistics that individual evaluations are
// compared against: market averages, top-quintile averages, quartile cut
// points and outlier totals.
package benchmark

import (
	"fmt"
	"sort"

	"github.com/okian/brokerscore/internal/domain/model"
	"github.com/okian/brokerscore/internal/domain/scoring"
)

// Snapshot sources.
const (
	SourceStatic     = "static"
	SourceFile       = "file"
	SourcePopulation = "population"
)

// Profile is the average evaluation of a peer group.
type Profile struct {
	Total      float64          `json:"total" yaml:"total" koanf:"total"`
	Categories model.Categories `json:"categories" yaml:"categories" koanf:"categories"`
	Scores     model.SubScores  `json:"scores" yaml:"scores" koanf:"scores"`

	// "HH:MM:SS" or "N/A".
	FirstResponseAverage string `json:"first_response_average" yaml:"first_response_average" koanf:"first_response_average"`
	BrokerHandoffAverage string `json:"broker_handoff_average" yaml:"broker_handoff_average" koanf:"broker_handoff_average"`

	MeanFollowUps float64 `json:"mean_follow_ups" yaml:"mean_follow_ups" koanf:"mean_follow_ups"`
	MeanItemsSent float64 `json:"mean_items_sent" yaml:"mean_items_sent" koanf:"mean_items_sent"`
}

// Quartiles are the cut points of the total-score distribution.
type Quartiles struct {
	Q1 float64 `json:"q1" yaml:"q1" koanf:"q1"`
	Q2 float64 `json:"q2" yaml:"q2" koanf:"q2"`
	Q3 float64 `json:"q3" yaml:"q3" koanf:"q3"`
}

// Statistics is one versioned benchmark snapshot.
type Statistics struct {
	Version string `json:"version" yaml:"version" koanf:"version"`
	Source  string `json:"source" yaml:"source" koanf:"source"`
	Size    int    `json:"size" yaml:"size" koanf:"size"`

	Market      Profile `json:"market" yaml:"market" koanf:"market"`
	TopQuintile Profile `json:"top_quintile" yaml:"top_quintile" koanf:"top_quintile"`

	Quartiles Quartiles `json:"quartiles" yaml:"quartiles" koanf:"quartiles"`
	Outliers  []float64 `json:"outliers" yaml:"outliers" koanf:"outliers"`
	MinTotal  float64   `json:"min_total" yaml:"min_total" koanf:"min_total"`
	MaxTotal  float64   `json:"max_total" yaml:"max_total" koanf:"max_total"`
}

// Clone returns a deep copy.
func (s Statistics) Clone() Statistics {
	if s.Outliers != nil {
		s.Outliers = append([]float64(nil), s.Outliers...)
	}
	return s
}

// Validate checks totals and category averages against the score bounds and
// that quartiles are ordered.
func (s Statistics) Validate() error {
	if s.Version == "" {
		return fmt.Errorf("%w: version must not be empty", ErrInvalidSnapshot)
	}
	for name, p := range map[string]Profile{"market": s.Market, "top_quintile": s.TopQuintile} {
		if err := p.validate(); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidSnapshot, name, err)
		}
	}
	q := s.Quartiles
	if q.Q1 > q.Q2 || q.Q2 > q.Q3 {
		return fmt.Errorf("%w: quartiles out of order (%v, %v, %v)", ErrInvalidSnapshot, q.Q1, q.Q2, q.Q3)
	}
	if s.MinTotal > s.MaxTotal || s.MinTotal < 0 || s.MaxTotal > scoring.MaxTotal {
		return fmt.Errorf("%w: total range [%v, %v]", ErrInvalidSnapshot, s.MinTotal, s.MaxTotal)
	}
	if !sort.Float64sAreSorted(s.Outliers) {
		return fmt.Errorf("%w: outliers must be ascending", ErrInvalidSnapshot)
	}
	return nil
}

func (p Profile) validate() error {
	if p.Total < 0 || p.Total > scoring.MaxTotal {
		return fmt.Errorf("total %v outside [0, %d]", p.Total, scoring.MaxTotal)
	}
	for _, sh := range scoring.Shares(p.Categories) {
		if sh.Score < 0 || sh.Score > sh.Max {
			return fmt.Errorf("category %s %v outside [0, %v]", sh.Category, sh.Score, sh.Max)
		}
	}
	return nil
}

// Provider supplies the active benchmark snapshot.
type Provider interface {
	Get() Statistics
}

type staticProvider struct {
	stats Statistics
}

// Static returns a Provider that always serves a copy of stats.
func Static(stats Statistics) Provider {
	return &staticProvider{stats: stats.Clone()}
}

func (p *staticProvider) Get() Statistics { return p.stats.Clone() }

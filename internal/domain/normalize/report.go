package normalize

import "github.com/okian/brokerscore/internal/domain/fields"

// Kind distinguishes why a field fell back to its default.
type Kind int

const (
	// KindMissing: no column resolved, or the cell was blank or "N/A".
	KindMissing Kind = iota + 1
	// KindMalformed: a value was present but could not be parsed.
	KindMalformed
)

func (k Kind) String() string {
	switch k {
	case KindMissing:
		return "missing"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// MarshalText renders the kind by name in JSON and YAML output.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Diagnostic records one defaulted field.
type Diagnostic struct {
	Row   int          `json:"row"`
	Field fields.Field `json:"field"`
	Kind  Kind         `json:"kind"`
	Key   string       `json:"column,omitempty"`
	Raw   string       `json:"raw,omitempty"`
}

// Report summarizes one NormalizeAll pass. Missing diagnostics are counted
// but only malformed ones are kept, since absence is the common case in
// sparse sheets.
type Report struct {
	Rows      int          `json:"rows"`
	Missing   int          `json:"missing"`
	Malformed int          `json:"malformed"`
	Problems  []Diagnostic `json:"problems,omitempty"`
}

func (r *Report) add(diags []Diagnostic) {
	for _, d := range diags {
		switch d.Kind {
		case KindMissing:
			r.Missing++
		case KindMalformed:
			r.Malformed++
			r.Problems = append(r.Problems, d)
		}
	}
}

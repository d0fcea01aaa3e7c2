package harness

import "github.com/roach88/posixtime/internal/timespec"

// Actual is what an operation produced. Only the fields the operation
// defines are set.
type Actual struct {
	Status  string              `json:"status,omitempty"`
	Error   string              `json:"error,omitempty"`
	Value   *timespec.Timestamp `json:"value,omitempty"`
	Ticks   *uint64             `json:"ticks,omitempty"`
	Compare *int                `json:"compare,omitempty"`
	Valid   *bool               `json:"valid,omitempty"`
	Length  *int                `json:"length,omitempty"`
}

// Outcome is the evaluation of one case.
type Outcome struct {
	Index      int      `json:"index"`
	Name       string   `json:"name"`
	Op         string   `json:"op"`
	Pass       bool     `json:"pass"`
	Actual     Actual   `json:"actual"`
	Mismatches []string `json:"mismatches,omitempty"`
}

// Result is the outcome of running a vector file.
type Result struct {
	// Name is the vector file name.
	Name string `json:"name"`

	// Pass is true when every case matched its expectation.
	Pass bool `json:"pass"`

	// Outcomes holds one entry per case, in file order.
	Outcomes []Outcome `json:"outcomes"`

	// Errors collects mismatch messages prefixed with the case name.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a passing result for the named file.
func NewResult(name string) *Result {
	return &Result{
		Name:     name,
		Pass:     true,
		Outcomes: []Outcome{},
		Errors:   []string{},
	}
}

// AddOutcome records an outcome, failing the result on mismatch.
func (r *Result) AddOutcome(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
	if !o.Pass {
		r.Pass = false
		for _, m := range o.Mismatches {
			r.Errors = append(r.Errors, o.Name+": "+m)
		}
	}
}

// Failed returns the number of failing outcomes.
func (r *Result) Failed() int {
	n := 0
	for _, o := range r.Outcomes {
		if !o.Pass {
			n++
		}
	}
	return n
}

// CanonicalMap converts a to the value form MarshalCanonical accepts.
func (a Actual) CanonicalMap() map[string]any {
	m := map[string]any{}
	if a.Status != "" {
		m["status"] = a.Status
	}
	if a.Error != "" {
		m["error"] = a.Error
	}
	if a.Value != nil {
		m["value"] = map[string]any{"sec": a.Value.Seconds, "nsec": a.Value.Nanoseconds}
	}
	if a.Ticks != nil {
		m["ticks"] = *a.Ticks
	}
	if a.Compare != nil {
		m["compare"] = *a.Compare
	}
	if a.Valid != nil {
		m["valid"] = *a.Valid
	}
	if a.Length != nil {
		m["length"] = *a.Length
	}
	return m
}

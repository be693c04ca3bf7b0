package harness

import (
	"github.com/roach88/gradebook/internal/record"
)

// TraceEvent records the input and outcome of one step.
type TraceEvent struct {
	Seq     int64          `json:"seq"`
	Op      string         `json:"op"`
	Args    string         `json:"args"`
	Outcome string         `json:"outcome"`
	Record  *record.Record `json:"record,omitempty"` // record returned by the step, if any
	IDs     []int          `json:"ids,omitempty"`    // ids returned by find and list
	Size    int            `json:"size"`             // store size after the step
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true if every expectation matched.
	Pass bool `json:"pass"`

	// Trace has one event per step, in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains expectation mismatches. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

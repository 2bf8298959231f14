package harness

// TraceEvent records one step: the call made and what the engine did.
type TraceEvent struct {
	Seq     int64  `json:"seq"`
	Op      string `json:"op"`
	Label   string `json:"label,omitempty"`
	Outcome string `json:"outcome"`
	State   string `json:"state"`            // engine state after the step
	Detail  string `json:"detail,omitempty"` // error message or act value
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall success: every step want and every
	// assertion matched.
	Pass bool `json:"pass"`

	// Trace contains one event per step, in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains mismatch messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Final is the outcome of the dispose step, or OutcomeNotDisposed.
	Final string `json:"final"`

	// Failures lists the labels of captured assertion failures in order.
	Failures []string `json:"failures"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:     true,
		Trace:    []TraceEvent{},
		Errors:   []string{},
		Final:    OutcomeNotDisposed,
		Failures: []string{},
	}
}

// AddError adds a mismatch message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends a step event to the trace.
func (r *Result) AddTrace(event TraceEvent) {
	r.Trace = append(r.Trace, event)
}

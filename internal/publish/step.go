package publish

// Outcome classifies the result of one idempotent publish.
type Outcome int

const (
	// OutcomePublished - no active snapshot existed; a new chain was started.
	OutcomePublished Outcome = iota
	// OutcomeSkipped - the active snapshot's hash matched; nothing written.
	OutcomeSkipped
	// OutcomeUpdated - content drifted; a successor snapshot was published.
	OutcomeUpdated
)

// String returns the lowercase name of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomePublished:
		return "published"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeUpdated:
		return "updated"
	default:
		return "unknown"
	}
}

// StepResult accumulates per-phase publish counters. Counters only ever
// increment; each processed item touches exactly one of them.
type StepResult struct {
	Published int      `json:"published"`
	Skipped   int      `json:"skipped"`
	Updated   int      `json:"updated"`
	Errors    []string `json:"errors,omitempty"`
}

// Record increments the counter matching the outcome.
func (r *StepResult) Record(o Outcome) {
	switch o {
	case OutcomePublished:
		r.RecordPublish()
	case OutcomeSkipped:
		r.RecordSkip()
	case OutcomeUpdated:
		r.RecordUpdate()
	}
}

// RecordPublish counts a fresh insert.
func (r *StepResult) RecordPublish() { r.Published++ }

// RecordSkip counts an unchanged item.
func (r *StepResult) RecordSkip() { r.Skipped++ }

// RecordUpdate counts a drift successor.
func (r *StepResult) RecordUpdate() { r.Updated++ }

// RecordError captures a per-item failure message. Processing continues with
// the next item; a non-empty error list does not mean the phase failed.
func (r *StepResult) RecordError(msg string) {
	r.Errors = append(r.Errors, msg)
}

// Processed returns the number of items that completed without error.
func (r *StepResult) Processed() int {
	return r.Published + r.Skipped + r.Updated
}

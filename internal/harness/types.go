package harness

// Check is the outcome of one expectation.
type Check struct {
	Type     string  `json:"type"`
	Field    string  `json:"field,omitempty"`
	Expected string  `json:"expected"`
	Actual   string  `json:"actual"`
	Pass     bool    `json:"pass"`
	Delta    float64 `json:"delta,omitempty"`
}

// Result is the outcome of a benchmark scenario execution.
type Result struct {
	// Pass indicates overall success: every expectation held.
	Pass bool `json:"pass"`

	Scenario string `json:"scenario"`
	RunID    string `json:"run_id"`

	// Dir is the run directory holding the artifacts.
	Dir string `json:"dir"`

	// Checks holds one entry per expectation, in scenario order.
	Checks []Check `json:"checks"`

	// Errors contains a message per failed check.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult(scenario string) *Result {
	return &Result{
		Pass:     true,
		Scenario: scenario,
		Checks:   []Check{},
		Errors:   []string{},
	}
}

// AddCheck records a check and marks the result failed when it did not
// pass.
func (r *Result) AddCheck(c Check) {
	r.Checks = append(r.Checks, c)
	if !c.Pass {
		r.AddError((&ExpectationError{Check: c}).Error())
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

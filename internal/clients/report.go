package clients

import (
	"fmt"

	"go.uber.org/multierr"
)

const (
	StepEvent  = "event"
	StepBudget = "budget_template"
	StepVendor = "vendor"
)

// StepResult is the outcome of one best-effort step of client creation.
// Entry identifies the item within the step, e.g. the vendor text.
type StepResult struct {
	Step  string
	Entry string
	Err   error
}

// OK reports whether the step completed.
func (s StepResult) OK() bool {
	return s.Err == nil
}

// Report collects best-effort step outcomes.
type Report struct {
	Steps []StepResult
}

func (r *Report) add(res StepResult) {
	r.Steps = append(r.Steps, res)
}

// Failures returns the failed steps in execution order.
func (r Report) Failures() []StepResult {
	var out []StepResult
	for _, s := range r.Steps {
		if !s.OK() {
			out = append(out, s)
		}
	}
	return out
}

// Err combines every failure, or returns nil when all steps succeeded.
func (r Report) Err() error {
	var err error
	for _, s := range r.Failures() {
		if s.Entry != "" {
			err = multierr.Append(err, fmt.Errorf("%s %q: %w", s.Step, s.Entry, s.Err))
			continue
		}
		err = multierr.Append(err, fmt.Errorf("%s: %w", s.Step, s.Err))
	}
	return err
}

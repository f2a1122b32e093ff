package wizard

import (
	"context"
	"fmt"
	"maps"

	"github.com/dhrions/ha-public-transports/discovery"
)

// Flow is one run of the setup wizard. A Flow is not safe for concurrent
// use; each user session owns its own.
type Flow struct {
	registry   Registry
	discoverer Discoverer

	current     state
	errors      map[string]string
	lastOutcome discovery.Outcome
}

// New starts a flow at the city step
func New(reg Registry, d Discoverer) *Flow {
	return &Flow{
		registry:   reg,
		discoverer: d,
		current:    cityState{},
	}
}

// State returns the current state
func (f *Flow) State() State { return f.current.kind() }

// LastOutcome returns the outcome of the latest stop discovery
func (f *Flow) LastOutcome() discovery.Outcome { return f.lastOutcome }

// Current returns the step to show, including pending errors
func (f *Flow) Current() Step {
	if c, ok := f.current.(committedState); ok {
		return Step{
			State: Committed,
			Entry: &Entry{Title: c.result.Title(), Result: c.result},
		}
	}
	form := f.current.form()
	if len(f.errors) > 0 {
		form.Errors = maps.Clone(f.errors)
	}
	return Step{State: f.current.kind(), Form: &form}
}

// Submit answers the current form and advances the flow
func (f *Flow) Submit(ctx context.Context, in Input) (Step, error) {
	if f.current.kind() == Committed {
		return f.Current(), ErrFlowCommitted
	}
	field := f.current.form().Field
	value, ok := in[field]
	if !ok {
		return f.Current(), fmt.Errorf("%w: %s", ErrMissingField, field)
	}
	f.current, f.errors = f.current.submit(ctx, f, value)
	return f.Current(), nil
}

// Result returns the committed selection
func (f *Flow) Result() (SelectionResult, bool) {
	c, ok := f.current.(committedState)
	return c.result, ok
}

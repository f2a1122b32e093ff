package wizard

import (
	"context"
	"log"
	"slices"

	"github.com/go-playground/validator/v10"

	"github.com/dhrions/ha-public-transports/discovery"
	"github.com/dhrions/ha-public-transports/internal"
	"github.com/dhrions/ha-public-transports/registry"
)

var validate = validator.New()

// required reports whether a submitted value is non-empty
func required(value string) bool {
	return validate.Var(value, "required") == nil
}

// state is one node of the flow. submit returns the next state and the form
// errors to show with it; a state returning itself with errors re-prompts.
type state interface {
	kind() State
	form() Form
	submit(ctx context.Context, f *Flow, value string) (state, map[string]string)
}

type cityState struct{}

func (cityState) kind() State { return CollectCity }

func (cityState) form() Form {
	return Form{
		StepID:      StepUser,
		Field:       FieldCity,
		Description: "Enter the name of your city (e.g. Paris).",
	}
}

func (s cityState) submit(_ context.Context, f *Flow, city string) (state, map[string]string) {
	if !required(city) {
		return s, fieldError(FieldCity, ErrCityNotFound)
	}
	operators, ok := f.registry.LookupCity(city)
	if !ok {
		return s, fieldError(FieldCity, ErrCityNotFound)
	}
	return operatorState{city: city, operators: operators}, nil
}

type operatorState struct {
	city      string
	operators []string
}

func (operatorState) kind() State { return CollectOperator }

func (s operatorState) form() Form {
	return Form{
		StepID:      StepSelectCompany,
		Field:       FieldTransitCompany,
		Description: "Select the public transports company of " + s.city + ".",
		Options:     slices.Clone(s.operators),
	}
}

func (s operatorState) submit(ctx context.Context, f *Flow, name string) (state, map[string]string) {
	if !required(name) || !slices.Contains(s.operators, name) {
		return s, fieldError(FieldTransitCompany, ErrInvalidCompany)
	}
	d, ok := f.registry.LookupOperator(name)
	if !ok || !d.Discoverable() {
		log.Printf("wizard: operator %q of %s has no usable stop discovery endpoint", name, s.city)
		return s, fieldError(FieldTransitCompany, ErrCompanyNotSupported)
	}
	if d.RequiresToken {
		return credentialState{city: s.city, operator: d}, nil
	}
	return f.enterStop(ctx, s.city, d, nil)
}

type credentialState struct {
	city     string
	operator registry.OperatorDescriptor
}

func (credentialState) kind() State { return CollectCredential }

func (s credentialState) form() Form {
	return Form{
		StepID:      StepGetToken,
		Field:       FieldAPIToken,
		Description: "Enter your " + s.operator.Name + " API token (e.g. a65d0a21-560c-43c7-a549-7a27e2413eef).",
	}
}

func (s credentialState) submit(ctx context.Context, f *Flow, token string) (state, map[string]string) {
	if !required(token) {
		return s, fieldError(FieldAPIToken, ErrTokenRequired)
	}
	return f.enterStop(ctx, s.city, s.operator, &token)
}

type stopState struct {
	city       string
	operator   registry.OperatorDescriptor
	credential *string
	stops      []discovery.StopRecord
}

func (stopState) kind() State { return CollectStop }

func (s stopState) form() Form {
	names := make([]string, 0, len(s.stops))
	for _, stop := range s.stops {
		names = append(names, stop.StopName)
	}
	return Form{
		StepID:      StepGetStop,
		Field:       FieldStopName,
		Description: "Select your " + s.operator.Name + " stop.",
		Options:     names,
	}
}

func (s stopState) submit(ctx context.Context, f *Flow, name string) (state, map[string]string) {
	// An empty answer, or any answer while nothing could be listed, asks for
	// a fresh discovery.
	if name == "" || len(s.stops) == 0 {
		return f.enterStop(ctx, s.city, s.operator, s.credential)
	}
	stop, ok := discovery.FirstMatch(s.stops, name)
	if !ok {
		return s, fieldError(FieldStopName, ErrInvalidStop)
	}
	return committedState{result: SelectionResult{
		City:           s.city,
		TransitCompany: s.operator.Name,
		APIToken:       s.credential,
		StopName:       stop.StopName,
		StopCode:       stop.StopCode,
	}}, nil
}

type committedState struct {
	result SelectionResult
}

func (committedState) kind() State { return Committed }

func (committedState) form() Form { return Form{} }

func (s committedState) submit(context.Context, *Flow, string) (state, map[string]string) {
	return s, nil
}

// enterStop runs discovery and builds the stop state from its result
func (f *Flow) enterStop(ctx context.Context, city string, d registry.OperatorDescriptor, credential *string) (state, map[string]string) {
	res := f.discoverer.DiscoverStops(ctx, d, credential)
	f.lastOutcome = res.Outcome
	next := stopState{city: city, operator: d, credential: credential, stops: res.Stops}

	if !res.Outcome.OK() {
		log.Printf("wizard: stop discovery for %s failed: %s (class=%s retryable=%t)",
			d.Name, res.Outcome, res.Outcome.Class(), res.Outcome.Retryable())
	}
	if len(res.Stops) == 0 {
		internal.Debugf("wizard: no stops listed for %s (%s)", d.Name, res.Outcome)
		return next, fieldError(FieldBase, ErrNoStopsFound)
	}
	return next, nil
}

func fieldError(field, key string) map[string]string {
	return map[string]string{field: key}
}

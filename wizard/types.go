package wizard

import (
	"context"
	"errors"
	"fmt"

	"github.com/dhrions/ha-public-transports/discovery"
	"github.com/dhrions/ha-public-transports/registry"
)

var (
	ErrFlowCommitted = errors.New("wizard: flow already committed")
	ErrMissingField  = errors.New("wizard: missing field")
)

// State identifies a wizard step
type State int

const (
	CollectCity State = iota
	CollectOperator
	CollectCredential
	CollectStop
	Committed
)

func (s State) String() string {
	switch s {
	case CollectCity:
		return "collect_city"
	case CollectOperator:
		return "collect_operator"
	case CollectCredential:
		return "collect_credential"
	case CollectStop:
		return "collect_stop"
	case Committed:
		return "committed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Step ids and field names, as exposed to form renderers
const (
	StepUser          = "user"
	StepSelectCompany = "select_company"
	StepGetToken      = "get_token"
	StepGetStop       = "get_stop"

	FieldCity           = "city"
	FieldTransitCompany = "transit_company"
	FieldAPIToken       = "api_token"
	FieldStopName       = "stop_name"
	FieldStopCode       = "stop_code"

	// FieldBase carries errors not tied to one input
	FieldBase = "base"
)

// Form error keys
const (
	ErrCityNotFound        = "city_not_found"
	ErrInvalidCompany      = "invalid_company"
	ErrCompanyNotSupported = "company_not_supported"
	ErrTokenRequired       = "token_required"
	ErrNoStopsFound        = "no_stops_found"
	ErrInvalidStop         = "invalid_stop"
)

// Registry is the lookup table a flow consults
type Registry interface {
	LookupCity(city string) ([]string, bool)
	LookupOperator(name string) (registry.OperatorDescriptor, bool)
}

// Discoverer fetches the stops of an operator
type Discoverer interface {
	DiscoverStops(ctx context.Context, d registry.OperatorDescriptor, credential *string) discovery.Result
}

// Input is the user's answer to the current form, keyed by field name
type Input map[string]string

// Form describes what to ask the user next
type Form struct {
	StepID      string            `json:"step_id"`
	Field       string            `json:"field"`
	Description string            `json:"description,omitempty"`
	Options     []string          `json:"options,omitempty"`
	Errors      map[string]string `json:"errors,omitempty"`
}

// Entry is the final record of a committed flow
type Entry struct {
	Title  string          `json:"title"`
	Result SelectionResult `json:"data"`
}

// Step is either a form to show or the committed entry
type Step struct {
	State State  `json:"-"`
	Form  *Form  `json:"form,omitempty"`
	Entry *Entry `json:"entry,omitempty"`
}

// Done reports whether the flow has committed
func (s Step) Done() bool { return s.Entry != nil }

// SelectionResult is the tuple persisted at the end of a successful run
type SelectionResult struct {
	City           string  `json:"city" yaml:"city"`
	TransitCompany string  `json:"transit_company" yaml:"transit_company"`
	APIToken       *string `json:"api_token" yaml:"api_token"`
	StopName       string  `json:"stop_name" yaml:"stop_name"`
	StopCode       *string `json:"stop_code" yaml:"stop_code"`
}

// Title names the entry after its city and operator
func (r SelectionResult) Title() string {
	return fmt.Sprintf("%s - %s", r.City, r.TransitCompany)
}

// Data returns the flat persisted mapping; absent values are nil
func (r SelectionResult) Data() map[string]any {
	return map[string]any{
		FieldCity:           r.City,
		FieldTransitCompany: r.TransitCompany,
		FieldAPIToken:       derefOrNil(r.APIToken),
		FieldStopName:       r.StopName,
		FieldStopCode:       derefOrNil(r.StopCode),
	}
}

func derefOrNil(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

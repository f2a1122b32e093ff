package discovery

import "fmt"

// Kind enumerates discovery outcomes
type Kind int

const (
	Success Kind = iota
	Unsupported
	NetworkError
	UpstreamError
	MalformedResponse
)

// MarshalText renders the kind by name in JSON and YAML output
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case Unsupported:
		return "unsupported"
	case NetworkError:
		return "network_error"
	case UpstreamError:
		return "upstream_error"
	case MalformedResponse:
		return "malformed_response"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ErrorClass groups failures by how they can be remedied
type ErrorClass string

const (
	ClassNone             ErrorClass = ""
	ClassConfigurationGap ErrorClass = "configuration_gap" // fix the registry
	ClassTransport        ErrorClass = "transport"         // retry later
	ClassProtocol         ErrorClass = "protocol"          // upstream status
	ClassFormat           ErrorClass = "format"            // unparseable body
)

// Outcome describes how a discovery call ended
type Outcome struct {
	Kind       Kind   `json:"kind" yaml:"kind"`
	StatusCode int    `json:"status_code,omitempty" yaml:"status_code,omitempty"` // UpstreamError only
	Detail     string `json:"detail,omitempty" yaml:"detail,omitempty"`
}

func (o Outcome) OK() bool { return o.Kind == Success }

// Class maps the outcome onto its error class
func (o Outcome) Class() ErrorClass {
	switch o.Kind {
	case Unsupported:
		return ClassConfigurationGap
	case NetworkError:
		return ClassTransport
	case UpstreamError:
		return ClassProtocol
	case MalformedResponse:
		return ClassFormat
	default:
		return ClassNone
	}
}

// Retryable reports whether re-running discovery unchanged could succeed
func (o Outcome) Retryable() bool {
	switch o.Kind {
	case NetworkError:
		return true
	case UpstreamError:
		return o.StatusCode == 429 || o.StatusCode >= 500
	default:
		return false
	}
}

func (o Outcome) String() string {
	switch o.Kind {
	case UpstreamError:
		return fmt.Sprintf("%s(%d)", o.Kind, o.StatusCode)
	case NetworkError, Unsupported:
		if o.Detail != "" {
			return fmt.Sprintf("%s(%s)", o.Kind, o.Detail)
		}
	}
	return o.Kind.String()
}

// StopRecord is one selectable stop. StopCode is nil when the operator
// did not publish one.
type StopRecord struct {
	StopName string  `json:"stop_name" yaml:"stop_name"`
	StopCode *string `json:"stop_code" yaml:"stop_code"`
}

// Result is the outcome of one discovery call
type Result struct {
	Stops   []StopRecord `json:"stops" yaml:"stops"`
	Outcome Outcome      `json:"outcome" yaml:"outcome"`
}

// Names returns the stop names in upstream order, duplicates included
func (r Result) Names() []string {
	out := make([]string, 0, len(r.Stops))
	for _, s := range r.Stops {
		out = append(out, s.StopName)
	}
	return out
}

// FirstMatch returns the first stop named name. When several stops share a
// name the earliest one wins.
func FirstMatch(stops []StopRecord, name string) (StopRecord, bool) {
	for _, s := range stops {
		if s.StopName == name {
			return s, true
		}
	}
	return StopRecord{}, false
}

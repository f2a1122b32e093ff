// Package discovery queries a transit operator's SIRI-lite stop point
// discovery endpoint and returns the stops it publishes.
//
// The client never fails with an error value. Every call yields a Result
// holding the (possibly empty) stops and an Outcome classifying what
// happened, so the caller can re-prompt instead of aborting:
//
//	Success            request succeeded (stops may be empty)
//	Unsupported        descriptor has no usable endpoint; no request made
//	NetworkError       transport failure (refused, DNS, timeout)
//	UpstreamError      non-200 HTTP status
//	MalformedResponse  body is not JSON
//
// Each call issues at most one GET, bounded by the client timeout. Nothing
// is cached between calls.
package discovery

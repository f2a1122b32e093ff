// Package wizard sequences the setup of one public transport stop.
//
// A Flow is an explicit state machine:
//
//	CollectCity -> CollectOperator -> [CollectCredential] -> CollectStop -> Committed
//
// Each state carries only what it needs. The credential step is skipped for
// operators that do not require a token. Entering CollectStop runs stop
// discovery once; submitting an empty stop name runs it again. A committed
// flow yields a SelectionResult and accepts no further input.
//
// User mistakes are reported as form errors keyed by field name, never as Go
// errors. Submit returns an error only when the caller breaks the protocol
// (missing field, flow already committed).
package wizard

// Package server exposes the setup wizard over HTTP.
//
// Each POST /api/flows starts an independent wizard run identified by a
// flow id. Answers are posted to /api/flows/:id as a JSON object keyed by
// the field of the current form. When a run commits, its selection is saved
// to the entry store and the run is discarded. Errors are reported as
// RFC 7807 problem documents.
package server

// Package formatter serializes entries and discovery results for display.
//
// This package is organized into:
// - json.go: indented JSON
// - yaml.go: YAML
// - format.go: format selection by name
package formatter

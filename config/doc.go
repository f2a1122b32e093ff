// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags.
// A handful of settings can be overridden from the environment (or a .env
// file) so the interactive CLI can be driven without editing YAML.
package config

// Package store persists committed wizard selections as configuration
// entries in SQLite. Nothing else is stored: in-progress flows and
// discovery results stay in memory.
package store

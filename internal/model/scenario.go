// Package model defines the scenario types shared by config, storage,
// the service and the TUI.
package model

import (
	"time"

	"github.com/theirongolddev/revcalc/internal/revenue"
)

// Source records where a scenario's parameters came from.
type Source string

const (
	SourcePreset Source = "preset" // embedded fixture
	SourceConfig Source = "config" // [[scenarios]] in config.toml
	SourceFile   Source = "file"   // scenario file on disk
	SourceSaved  Source = "saved"  // SQLite store
	SourceCustom Source = "custom" // flags or interactive edits
)

// Scenario is a named set of business parameters.
type Scenario struct {
	ID          string         `json:"id,omitempty"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Source      Source         `json:"source"`
	Params      revenue.Params `json:"params"`
	CreatedAt   time.Time      `json:"created_at,omitempty"`
	UpdatedAt   time.Time      `json:"updated_at,omitempty"`
}

// Run is one recorded calculation.
type Run struct {
	ID           int64           `json:"id"`
	ScenarioName string          `json:"scenario"`
	Params       revenue.Params  `json:"params"`
	Results      revenue.Results `json:"results"`
	At           time.Time       `json:"at"`
}

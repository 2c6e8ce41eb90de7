// Package source discovers and parses scenario files on disk.
//
// A scenario file is TOML or JSON with a name, an optional description and
// a params table using the same keys as config.toml:
//
//	name = "Pilot"
//	description = "two channel trial"
//
//	[params]
//	call_duration_minutes = 2
//	target_volume = 10000
//	...
package source

import "github.com/theirongolddev/revcalc/internal/revenue"

// Format is a scenario file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// DiscoveredFile is a scenario file found by ScanDir.
type DiscoveredFile struct {
	Path   string
	Format Format
}

// fileScenario is the on-disk shape of a scenario file.
type fileScenario struct {
	Name        string          `toml:"name" json:"name"`
	Description string          `toml:"description" json:"description"`
	Params      *revenue.Params `toml:"params" json:"params"`
}

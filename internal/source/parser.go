package source

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/theirongolddev/revcalc/internal/model"
)

// ParseResult holds the output of parsing a single scenario file.
type ParseResult struct {
	File     DiscoveredFile
	Scenario model.Scenario
	Err      error
}

// Parse parses a discovered file, capturing any error in the result.
func Parse(df DiscoveredFile) ParseResult {
	s, err := ParseFile(df.Path)
	return ParseResult{File: df, Scenario: s, Err: err}
}

// ParseFile reads the scenario at path. The name defaults to the file name
// without its extension. Parameters are validated.
func ParseFile(path string) (model.Scenario, error) {
	format, ok := FormatOf(path)
	if !ok {
		return model.Scenario{}, fmt.Errorf("%s: unsupported scenario file type %q", path, filepath.Ext(path))
	}

	data, err := os.ReadFile(path) //nolint:gosec // path comes from the user or ScanDir
	if err != nil {
		return model.Scenario{}, fmt.Errorf("reading %s: %w", path, err)
	}

	var fs fileScenario
	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(data), &fs)
		if err != nil {
			return model.Scenario{}, fmt.Errorf("parsing %s: %w", path, err)
		}
		if undec := md.Undecoded(); len(undec) > 0 {
			return model.Scenario{}, fmt.Errorf("%s: unknown key %q", path, undec[0].String())
		}
	case FormatJSON:
		dec := json.NewDecoder(strings.NewReader(string(data)))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&fs); err != nil {
			return model.Scenario{}, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	if fs.Params == nil {
		return model.Scenario{}, fmt.Errorf("%s: missing params", path)
	}
	if err := fs.Params.Validate(); err != nil {
		return model.Scenario{}, fmt.Errorf("%s: %w", path, err)
	}

	name := strings.TrimSpace(fs.Name)
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return model.Scenario{
		Name:        name,
		Description: fs.Description,
		Source:      model.SourceFile,
		Params:      *fs.Params,
	}, nil
}

package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/theirongolddev/revcalc/internal/model"
	"github.com/theirongolddev/revcalc/internal/revenue"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

const pilotTOML = `
name = "Pilot"
description = "two channel trial"

[params]
call_duration_minutes = 2
target_volume = 10000
price_per_minute = 450
hours_per_day = 8
channels = 2
one_time_purchase_cost = 5000000
operational_cost_per_period = 12000000
tax_rate_percent = 11
`

func TestParseFile_TOML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "pilot.toml", pilotTOML)

	s, err := ParseFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Name != "Pilot" || s.Source != model.SourceFile {
		t.Errorf("scenario = %+v", s)
	}
	if s.Params.Channels != 2 || s.Params.TaxRatePercent != 11 {
		t.Errorf("params = %+v", s.Params)
	}
}

func TestParseFile_JSONNameFromFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "rollout.json", `{
		"params": {"call_duration_minutes": 3, "target_volume": 1000, "price_per_minute": 450,
		           "hours_per_day": 12, "channels": 4, "one_time_purchase_cost": 1,
		           "operational_cost_per_period": 1, "tax_rate_percent": 0}
	}`)

	s, err := ParseFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Name != "rollout" {
		t.Errorf("Name = %q, want rollout", s.Name)
	}
	if _, err := revenue.Compute(s.Params); err != nil {
		t.Errorf("Compute: %v", err)
	}
}

func TestParseFile_Errors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name, file, body, want string
	}{
		{"extension", "a.yaml", "x: 1", "unsupported"},
		{"missing params", "b.toml", `name = "B"`, "missing params"},
		{"unknown toml key", "c.toml", pilotTOML + "\nchanels = 3\n", "unknown key"},
		{"unknown json key", "d.json", `{"params": {"channelz": 1}}`, "unknown field"},
		{"invalid", "e.toml", strings.Replace(pilotTOML, "tax_rate_percent = 11", "tax_rate_percent = 101", 1), "tax_rate_percent"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFile(writeFile(t, dir, tt.file, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestScanDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.toml", pilotTOML)
	writeFile(t, dir, "a.JSON", "{}")
	writeFile(t, dir, "nested/c.toml", pilotTOML)
	writeFile(t, dir, "notes.txt", "ignore me")
	writeFile(t, dir, ".hidden/d.toml", pilotTOML)
	writeFile(t, dir, ".e.toml", pilotTOML)

	files, err := ScanDir(dir)
	if err != nil {
		t.Fatal(err)
	}

	var got []string
	for _, f := range files {
		rel, _ := filepath.Rel(dir, f.Path)
		got = append(got, filepath.ToSlash(rel)+":"+string(f.Format))
	}
	want := "a.JSON:json b.toml:toml nested/c.toml:toml"
	if strings.Join(got, " ") != want {
		t.Fatalf("ScanDir = %v, want %s", got, want)
	}
}

func TestScanDir_Missing(t *testing.T) {
	files, err := ScanDir(filepath.Join(t.TempDir(), "nope"))
	if err != nil || files != nil {
		t.Fatalf("ScanDir(missing) = %v, %v", files, err)
	}
}

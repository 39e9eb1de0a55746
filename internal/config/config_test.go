package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "salesreport.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, ".", cfg.OutputDir)
	assert.Equal(t, "xml", cfg.OutputFormat)
	assert.Equal(t, "{command}", cfg.FileNameFormat)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "monday", cfg.WeekStart)
	assert.Equal(t, ",", cfg.CSV.Delimiter)
	assert.Equal(t, 1, cfg.CSV.HeaderRows)
	assert.Equal(t, "utf-8", cfg.CSV.Encoding)
	assert.Equal(t, 1, cfg.XLSX.HeaderRows)
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.yaml")

	cfg, err := Load(missing, false)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = Load(missing, true)
	assert.Error(t, err)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
output_dir: ./reports
output_format: JSON
week_start: Sunday
timezone: UTC
csv:
  delimiter: ";"
  header_rows: 0
  encoding: windows-1252
xlsx:
  sheet: Sales
`)

	cfg, err := Load(path, true)
	require.NoError(t, err)

	assert.Equal(t, "./reports", cfg.OutputDir)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, "sunday", cfg.WeekStart)
	assert.Equal(t, time.Sunday, cfg.FirstWeekday())
	assert.Equal(t, ";", cfg.CSV.Delimiter)
	assert.Equal(t, 0, cfg.CSV.HeaderRows)
	assert.Equal(t, "windows-1252", cfg.CSV.Encoding)
	assert.Equal(t, "Sales", cfg.XLSX.Sheet)
	assert.Equal(t, 1, cfg.XLSX.HeaderRows)
	assert.Equal(t, "info", cfg.LogLevel)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "unknown output format", content: "output_format: csv\n"},
		{name: "unknown log level", content: "log_level: loud\n"},
		{name: "unknown week start", content: "week_start: friday\n"},
		{name: "negative header rows", content: "csv:\n  header_rows: -1\n"},
		{name: "unknown timezone", content: "timezone: Mars/Olympus\n"},
		{name: "malformed yaml", content: "output_dir: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content), true)
			assert.Error(t, err)
		})
	}
}

func TestFirstWeekdayDefaultsToMonday(t *testing.T) {
	assert.Equal(t, time.Monday, Default().FirstWeekday())
}

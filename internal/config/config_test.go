package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// clearEnv blanks every override so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"LOG_DIR", "PROCESSED_DIR", "FORCE_DEBUG", "HEADER_FILL", "MAIN_PHONE", "CELL_PHONE"} {
		t.Setenv(name, "")
	}
}

func TestLoadMainConfig_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadMainConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "logs", cfg.LogDir)
	assert.Equal(t, "processed", cfg.ProcessedDir)
	assert.False(t, cfg.Debug)
	assert.Equal(t, HeaderFill{StartColor: "4CAF50", EndColor: "4CAF50", FillType: "solid"}, cfg.HeaderFill)
	assert.Equal(t, []string{"Tel", "Main", "Home", "Office", "Phone", "Telephone"}, cfg.Parser.PhoneLabels.Tel)
	assert.Equal(t, []string{"Cell", "Mobile", "iPhone"}, cfg.Parser.PhoneLabels.Cell)
	assert.Equal(t, 10, cfg.Parser.YearWindow)
	assert.Equal(t, DefaultProductHeaders, cfg.Parser.ProductHeaders)
}

func TestLoadMainConfig_ValidFile(t *testing.T) {
	clearEnv(t)

	path := writeTempFile(t, "config.yaml", `
log_dir: /var/log/orders
processed_dir: converted
debug: true
header_fill:
  start_color: "FF0000"
  end_color: "00FF00"
  fill_type: gradient
parser:
  year_window: 3
  phone_labels:
    tel: [Office]
    cell: [Mobile]
  product_headers:
    - "Item Qty Unit Total"
`)

	cfg, err := LoadMainConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/log/orders", cfg.LogDir)
	assert.Equal(t, "converted", cfg.ProcessedDir)
	assert.True(t, cfg.Debug)
	assert.Equal(t, HeaderFill{StartColor: "FF0000", EndColor: "00FF00", FillType: "gradient"}, cfg.HeaderFill)
	assert.Equal(t, 3, cfg.Parser.YearWindow)
	assert.Equal(t, []string{"Office"}, cfg.Parser.PhoneLabels.Tel)
	assert.Equal(t, []string{"Mobile"}, cfg.Parser.PhoneLabels.Cell)
	assert.Equal(t, []string{"Item Qty Unit Total"}, cfg.Parser.ProductHeaders)
}

func TestLoadMainConfig_EndColorDefaultsToStartColor(t *testing.T) {
	clearEnv(t)

	path := writeTempFile(t, "config.yaml", "header_fill:\n  start_color: \"123456\"\n")
	cfg, err := LoadMainConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "123456", cfg.HeaderFill.EndColor)
	assert.Equal(t, "solid", cfg.HeaderFill.FillType)
}

func TestLoadMainConfig_YearWindow(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"explicit zero is kept", "parser:\n  year_window: 0\n", 0},
		{"absent key uses default", "parser:\n  phone_labels:\n    tel: [Office]\n", DefaultYearWindow},
		{"empty file uses default", "", DefaultYearWindow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadMainConfig(writeTempFile(t, "config.yaml", tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Parser.YearWindow)
		})
	}
}

func TestLoadMainConfig_InvalidYAML(t *testing.T) {
	clearEnv(t)

	path := writeTempFile(t, "config.yaml", "invalid: yaml: content: [")
	_, err := LoadMainConfig(path)
	assert.Error(t, err)
}

func TestLoadMainConfig_EnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_DIR", "envlogs")
	t.Setenv("PROCESSED_DIR", "done")
	t.Setenv("FORCE_DEBUG", "True")
	t.Setenv("HEADER_FILL", `["AAAAAA", "BBBBBB", "lightGray"]`)
	t.Setenv("MAIN_PHONE", `["Main"]`)
	t.Setenv("CELL_PHONE", "Cell, Mobile")

	path := writeTempFile(t, "config.yaml", "log_dir: filelogs\n")
	cfg, err := LoadMainConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "envlogs", cfg.LogDir)
	assert.Equal(t, "done", cfg.ProcessedDir)
	assert.True(t, cfg.Debug)
	assert.Equal(t, HeaderFill{StartColor: "AAAAAA", EndColor: "BBBBBB", FillType: "lightGray"}, cfg.HeaderFill)
	assert.Equal(t, []string{"Main"}, cfg.Parser.PhoneLabels.Tel)
	assert.Equal(t, []string{"Cell", "Mobile"}, cfg.Parser.PhoneLabels.Cell)
}

func TestLoadMainConfig_BadOverrides(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"debug not a bool", "FORCE_DEBUG", "maybe"},
		{"header fill too short", "HEADER_FILL", `["AAAAAA", "solid"]`},
		{"broken flow sequence", "MAIN_PHONE", `["Tel", `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := LoadMainConfig("")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestValidateMainConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*MainConfig)
	}{
		{"processed dir is a path", func(c *MainConfig) { c.ProcessedDir = "a/b" }},
		{"negative year window", func(c *MainConfig) { c.Parser.YearWindow = -1 }},
		{"no product headers", func(c *MainConfig) { c.Parser.ProductHeaders = []string{} }},
		{"blank product header", func(c *MainConfig) { c.Parser.ProductHeaders = []string{"  "} }},
		{"no phone labels", func(c *MainConfig) {
			c.Parser.PhoneLabels.Tel = []string{}
			c.Parser.PhoneLabels.Cell = []string{}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultMainConfig()
			tt.mutate(cfg)
			assert.Error(t, validateMainConfig(cfg))
		})
	}

	assert.NoError(t, validateMainConfig(DefaultMainConfig()))
}

func TestParseList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{`["Tel", "Main"]`, []string{"Tel", "Main"}},
		{"[Tel, Main]", []string{"Tel", "Main"}},
		{"Tel,Main , Office", []string{"Tel", "Main", "Office"}},
		{"Tel", []string{"Tel"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseList(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

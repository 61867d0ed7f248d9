package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(filename, []byte(contents), 0644))
	return filename
}

func TestGetConfig(t *testing.T) {
	expected := Config{
		Port:    9000,
		DB:      "memory",
		LogFile: "server.log",
		Trace:   true,
		Ranges:  RangesConfig{Combine: true, MaxRanges: 5},
	}

	tests := []struct {
		name     string
		filename string
		contents string
	}{
		{
			name:     "yaml",
			filename: "config.yaml",
			contents: `
port: 9000
db: memory
logFile: server.log
trace: true
ranges:
  combine: true
  maxRanges: 5
`,
		},
		{
			name:     "toml",
			filename: "config.toml",
			contents: `
port = 9000
db = "memory"
logFile = "server.log"
trace = true

[ranges]
combine = true
maxRanges = 5
`,
		},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			config, err := getConfig(writeFile(t, tc.filename, tc.contents), Config{})
			require.NoError(t, err)
			require.Equal(t, expected, config)
		})
	}
}

func TestGetConfigErrors(t *testing.T) {
	_, err := getConfig(filepath.Join(t.TempDir(), "missing.yaml"), Config{})
	require.ErrorContains(t, err, "failed to read configuration file")

	_, err = getConfig(writeFile(t, "config.json", "{}"), Config{})
	require.ErrorContains(t, err, "unsupported configuration file type")

	_, err = getConfig(writeFile(t, "config.yaml", "port: [1"), Config{})
	require.ErrorContains(t, err, "failed to decode configuration file")
}

func TestGetConfigOverridesFlags(t *testing.T) {
	flags := Config{
		Port:    8080,
		DB:      "blobs.db",
		LogFile: "server.log",
		Trace:   true,
		Ranges:  RangesConfig{Combine: true, MaxRanges: 50},
	}

	tests := []struct {
		name     string
		filename string
		contents string
		expected Config
	}{
		{
			name:     "yaml_zero_values",
			filename: "config.yaml",
			contents: "trace: false\nranges:\n  combine: false\n  maxRanges: 0\n",
			expected: Config{Port: 8080, DB: "blobs.db", LogFile: "server.log"},
		},
		{
			name:     "toml_zero_values",
			filename: "config.toml",
			contents: "trace = false\n\n[ranges]\ncombine = false\nmaxRanges = 0\n",
			expected: Config{Port: 8080, DB: "blobs.db", LogFile: "server.log"},
		},
		{
			name:     "yaml_missing_keys",
			filename: "config.yml",
			contents: "db: memory\n",
			expected: Config{
				Port:    8080,
				DB:      "memory",
				LogFile: "server.log",
				Trace:   true,
				Ranges:  RangesConfig{Combine: true, MaxRanges: 50},
			},
		},
		{
			name:     "toml_missing_keys",
			filename: "config.toml",
			contents: "[ranges]\nmaxRanges = 5\n",
			expected: Config{
				Port:    8080,
				DB:      "blobs.db",
				LogFile: "server.log",
				Trace:   true,
				Ranges:  RangesConfig{Combine: true, MaxRanges: 5},
			},
		},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			config, err := getConfig(writeFile(t, tc.filename, tc.contents), flags)
			require.NoError(t, err)
			require.Equal(t, tc.expected, config)
		})
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pixelops.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	pc, err := cfg.Chain(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"normalize", "otsu"}, pc.GetStepNames())
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[log]
level = "debug"

[pipeline]
workers = 2
backend = "opencv"
output_dir = "out"

[[steps]]
name = "normalize"

[[steps]]
name = "binarize"
threshold = 140

[[steps]]
name = "border"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 2, cfg.Pipeline.Workers)
	assert.Equal(t, BackendOpenCV, cfg.Pipeline.Backend)
	assert.Equal(t, "out", cfg.Pipeline.OutputDir)
	assert.Equal(t, "_bin", cfg.Pipeline.Suffix, "unset keys keep defaults")
	require.Len(t, cfg.Steps, 3)
	assert.Equal(t, StepConfig{Name: "binarize", Threshold: 140}, cfg.Steps[1])
}

func TestLoadKeepsDefaultSteps(t *testing.T) {
	cfg, err := Load(writeConfig(t, "[pipeline]\nworkers = 1\n"))
	require.NoError(t, err)
	assert.Equal(t, Default().Steps, cfg.Steps)
}

func TestLoadRejects(t *testing.T) {
	tests := map[string]string{
		"unknown key":     "[pipeline]\nthreads = 3\n",
		"bad level":       "[log]\nlevel = \"chatty\"\n",
		"zero workers":    "[pipeline]\nworkers = 0\n",
		"bad backend":     "[pipeline]\nbackend = \"gpu\"\n",
		"unknown step":    "[[steps]]\nname = \"erode\"\n",
		"threshold range": "[[steps]]\nname = \"binarize\"\nthreshold = 300\n",
		"overwrite input": "[pipeline]\nsuffix = \"\"\n",
		"syntax":          "[pipeline\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

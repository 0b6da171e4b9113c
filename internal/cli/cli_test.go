package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/metagraph/internal/app"
	"github.com/vk/metagraph/internal/config"
	"github.com/vk/metagraph/internal/nodeid"
	"github.com/vk/metagraph/internal/report"
)

func envOf(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestParse_Success(t *testing.T) {
	t.Parallel()

	args := []string{
		"-input-format", "hcl", "-o", "out.json", "-format", "json",
		"-log-level", "DEBUG", "-log-format", "text", "-workers", "3",
		"-metrics-file", "m.prom", "-fail-on-cycle", "a.hcl", "graphs/**/*.hcl",
	}

	cfg, shouldExit, err := ParseWithEnv(args, &bytes.Buffer{}, envOf(nil))

	require.NoError(t, err)
	assert.False(t, shouldExit)
	expected := &app.Config{
		Inputs:       []string{"a.hcl", "graphs/**/*.hcl"},
		InputFormat:  config.FormatHCL,
		OutputPath:   "out.json",
		OutputFormat: report.FormatJSON,
		LogFormat:    "text",
		LogLevel:     "debug",
		WorkerCount:  3,
		MetricsFile:  "m.prom",
		FailOnCycle:  true,
	}
	assert.Equal(t, expected, cfg)
}

func TestParse_EnvironmentDefaults(t *testing.T) {
	t.Parallel()

	env := envOf(map[string]string{EnvLogLevel: "warn", EnvWorkers: "7"})

	t.Run("env fills defaults", func(t *testing.T) {
		cfg, _, err := ParseWithEnv([]string{"g.txt"}, &bytes.Buffer{}, env)
		require.NoError(t, err)
		assert.Equal(t, "warn", cfg.LogLevel)
		assert.Equal(t, 7, cfg.WorkerCount)
	})

	t.Run("flags override env", func(t *testing.T) {
		cfg, _, err := ParseWithEnv([]string{"-workers", "1", "-log-level", "error", "g.txt"}, &bytes.Buffer{}, env)
		require.NoError(t, err)
		assert.Equal(t, "error", cfg.LogLevel)
		assert.Equal(t, 1, cfg.WorkerCount)
	})

	t.Run("invalid env workers", func(t *testing.T) {
		_, _, err := ParseWithEnv([]string{"g.txt"}, &bytes.Buffer{}, envOf(map[string]string{EnvWorkers: "many"}))
		var exitErr *ExitError
		require.True(t, errors.As(err, &exitErr))
		assert.Equal(t, 2, exitErr.Code)
	})
}

func TestParse_ShouldExit(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		args []string
	}{
		{name: "help", args: []string{"-h"}},
		{name: "no inputs", args: []string{"-format", "json"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			out := &bytes.Buffer{}

			cfg, shouldExit, err := ParseWithEnv(tc.args, out, envOf(nil))

			require.NoError(t, err)
			assert.True(t, shouldExit)
			assert.Nil(t, cfg)
			assert.Contains(t, out.String(), "Usage:")
		})
	}
}

func TestParse_UsageErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{name: "unknown flag", args: []string{"-nope", "g.txt"}, wantMsg: "flag provided but not defined"},
		{name: "bad log format", args: []string{"-log-format", "xml", "g.txt"}, wantMsg: "invalid log-format"},
		{name: "bad log level", args: []string{"-log-level", "loud", "g.txt"}, wantMsg: "invalid log-level"},
		{name: "bad input format", args: []string{"-input-format", "csv", "g.txt"}, wantMsg: "unknown input format"},
		{name: "bad output format", args: []string{"-format", "csv", "g.txt"}, wantMsg: "unknown output format"},
		{name: "zero workers", args: []string{"-workers", "0", "g.txt"}, wantMsg: "worker count"},
		{name: "conflicting output flags", args: []string{"-output", "a.txt", "-o", "b.txt", "g.txt"}, wantMsg: "-output and -o"},
		{name: "bad node key", args: []string{"-nodes", "v1,x2", "g.txt"}, wantMsg: "invalid nodes"},
		{name: "both outputs", args: []string{"-o", "a", "-output-dir", "d", "g.txt"}, wantMsg: "mutually exclusive"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := ParseWithEnv(tc.args, &bytes.Buffer{}, envOf(nil))

			var exitErr *ExitError
			require.True(t, errors.As(err, &exitErr))
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.wantMsg)
		})
	}
}

func TestParse_Nodes(t *testing.T) {
	t.Parallel()

	cfg, _, err := ParseWithEnv([]string{"-nodes", "v2, e1,Vertex(3)", "g.txt"}, &bytes.Buffer{}, envOf(nil))

	require.NoError(t, err)
	expected := []nodeid.Key{nodeid.VertexKey(2), nodeid.EdgeKey(1), nodeid.VertexKey(3)}
	assert.Equal(t, expected, cfg.Nodes)
}

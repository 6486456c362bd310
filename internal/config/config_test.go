package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-avgdev/internal/report"
	"github.com/cwbudde/algo-avgdev/stats/deviation"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "adev.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Valid(t *testing.T) {
	path := writeConfig(t, `
format: prom
delimiter: ";"
header: true
mean: true
workers: 4
parallel_threshold: 1024
metric_prefix: binaural_adev
log:
  level: debug
  json: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "prom", cfg.Format)
	require.Equal(t, ";", cfg.Delimiter)
	require.True(t, cfg.Header)
	require.True(t, cfg.Mean)
	require.Equal(t, 4, cfg.Workers)
	require.Equal(t, 1024, cfg.ParallelThreshold)
	require.Equal(t, "binaural_adev", cfg.MetricPrefix)
	require.True(t, cfg.Log.JSON)
	require.Equal(t, slog.LevelDebug, cfg.Log.SlogLevel())
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "header: true\n"))
	require.NoError(t, err)
	require.Equal(t, DefaultFormat, cfg.Format)
	require.Equal(t, DefaultDelimiter, cfg.Delimiter)
	require.Equal(t, deviation.DefaultParallelThreshold, cfg.ParallelThreshold)
	require.Equal(t, DefaultMetricPrefix, cfg.MetricPrefix)
	require.Equal(t, slog.LevelInfo, cfg.Log.SlogLevel())
	require.Zero(t, cfg.Workers)
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorContains(t, err, "config: read file")
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"bad yaml", "format: [", "parse yaml"},
		{"unknown format", "format: xml", "format"},
		{"long delimiter", "delimiter: '::'", "delimiter"},
		{"quote delimiter", "delimiter: '\"'", "delimiter"},
		{"negative workers", "workers: -2", "workers"},
		{"negative threshold", "parallel_threshold: -1", "parallel_threshold"},
		{"bad prefix", "metric_prefix: 'a b'", "metric_prefix"},
		{"bad level", "log:\n  level: loud", "log.level"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			require.Error(t, err)
			require.ErrorContains(t, err, tc.want)
		})
	}
}

func TestParse_FormatsMatchReportWriters(t *testing.T) {
	for _, f := range []report.Format{report.FormatText, report.FormatCSV, report.FormatJSON, report.FormatProm} {
		cfg, err := Parse([]byte("format: " + string(f) + "\n"))
		require.NoError(t, err)
		require.Equal(t, string(f), cfg.Format)
	}

	_, err := Parse([]byte("format: xml\n"))
	require.ErrorIs(t, err, report.ErrUnknownFormat)
}

func TestParse_WhitespaceDelimiter(t *testing.T) {
	cfg, err := Parse([]byte("delimiter: ws\n"))
	require.NoError(t, err)
	require.Equal(t, "ws", cfg.Delimiter)
}

func TestOptions(t *testing.T) {
	cfg := Default()
	cfg.Workers = 1

	m, err := deviation.NewDenseFromColumns([]float64{1, 2, 3, 4, 5})
	require.NoError(t, err)

	got, err := deviation.AverageDeviation(m, cfg.Options()...)
	require.NoError(t, err)
	require.InDelta(t, 1.2, got[0], 1e-12)
}

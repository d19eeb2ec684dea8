package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "data/hospitalization_rates.csv", cfg.Inputs.HospitalizationCSV)
	assert.Equal(t, "data/wastewater_levels.csv", cfg.Inputs.WastewaterCSV)
	assert.Equal(t, 1.0, cfg.Analysis.RateFloor)
	assert.Equal(t, 10, cfg.Analysis.MinJoinedPoints)
	assert.Empty(t, cfg.Output.ReportPath)
	assert.Empty(t, cfg.Output.JoinedJSONPath)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("COVID_REPORT_INPUTS_HOSPITALIZATION_CSV", "/tmp/hosp.csv")
	t.Setenv("COVID_REPORT_ANALYSIS_RATE_FLOOR", "0.5")
	t.Setenv("COVID_REPORT_ANALYSIS_MIN_JOINED_POINTS", "5")
	t.Setenv("COVID_REPORT_LOGGING_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "/tmp/hosp.csv", cfg.Inputs.HospitalizationCSV)
	assert.Equal(t, 0.5, cfg.Analysis.RateFloor)
	assert.Equal(t, 5, cfg.Analysis.MinJoinedPoints)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
inputs:
  hospitalization_csv: weekly_rates.csv
  wastewater_csv: nwss_levels.csv
analysis:
  rate_floor: 2.0
output:
  report_path: out/report.txt
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "weekly_rates.csv", cfg.Inputs.HospitalizationCSV)
	assert.Equal(t, "nwss_levels.csv", cfg.Inputs.WastewaterCSV)
	assert.Equal(t, 2.0, cfg.Analysis.RateFloor)
	assert.Equal(t, "out/report.txt", cfg.Output.ReportPath)
	// File values merge over defaults.
	assert.Equal(t, 10, cfg.Analysis.MinJoinedPoints)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}

func TestLoad_Validation(t *testing.T) {
	t.Run("negative rate floor", func(t *testing.T) {
		t.Setenv("COVID_REPORT_ANALYSIS_RATE_FLOOR", "-1")
		_, err := Load("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rate_floor")
	})

	t.Run("min joined points below statistical minimum", func(t *testing.T) {
		t.Setenv("COVID_REPORT_ANALYSIS_MIN_JOINED_POINTS", "2")
		_, err := Load("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "min_joined_points")
	})
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cashflow-forecast/internal/model"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "data/sample_data.csv", cfg.Data.DailyCSV)
	assert.Equal(t, "output", cfg.Data.OutputDir)
	assert.Equal(t, model.ColumnNetCashFlow, cfg.Forecast.Column)
	assert.Equal(t, 12, cfg.Forecast.Horizon)
	assert.Equal(t, 3, cfg.Forecast.MovingAverageWindow)
	assert.Equal(t, 12, cfg.Forecast.SeasonalPeriod)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.NoError(t, cfg.Validate())
}

func TestLoadPartialConfigAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
data:
  daily_csv: /srv/flows/daily.csv
forecast:
  column: cash_inflow
  horizon: 6
scenarios:
  stress: 0.5
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/flows/daily.csv", cfg.Data.DailyCSV)
	assert.Equal(t, "output", cfg.Data.OutputDir)
	assert.Equal(t, "cash_inflow", cfg.Forecast.Column)
	assert.Equal(t, 6, cfg.Forecast.Horizon)
	assert.Equal(t, 3, cfg.Forecast.MovingAverageWindow)
	assert.Equal(t, map[string]float64{"stress": 0.5}, cfg.Scenarios)
}

func TestLoadRejectsUnknownColumn(t *testing.T) {
	path := writeConfig(t, `
forecast:
  column: revenue
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "revenue")
}

func TestLoadRejectsBadScenarioMultiplier(t *testing.T) {
	path := writeConfig(t, `
scenarios:
  broken: -1
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestLoadRejectsNegativeHorizon(t *testing.T) {
	path := writeConfig(t, `
forecast:
  horizon: -3
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeConfig(t, "forecast: [not a map")
	_, err := Load(path)
	assert.Error(t, err)
}

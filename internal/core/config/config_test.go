package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	require.Equal(t, "data.csv", cfg.Input.Path)
	require.True(t, cfg.Input.DayFirst)
	require.Equal(t, "outputs", cfg.Output.Dir)
	require.Equal(t, "fuel_consumption_report.pdf", cfg.Output.ReportName)
	require.Equal(t, "28d", cfg.Report.TrailingWindow)
	require.Equal(t, "$", cfg.Report.Currency)
	require.Equal(t, 800, cfg.Charts.Width)
	require.Equal(t, 7, cfg.Charts.FirstGapDays)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_FileThenEnvThenOverrides(t *testing.T) {
	root := t.TempDir()
	cfgPath := filepath.Join(root, "fueltrack.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
input:
  path: "log.csv"
  date_format: "%Y-%m-%d"
  day_first: false
output:
  dir: "from-file"
report:
  title: "Hatchback"
  trailing_window: "14d"
  currency: "€"
charts:
  width: 640
log:
  level: "debug"
  format: "json"
`), 0o644))

	t.Setenv("FUELTRACK_OUTPUT__DIR", "from-env")
	t.Setenv("FUELTRACK_CHARTS__HEIGHT", "300")

	cfg, err := Load(cfgPath, map[string]interface{}{"input.path": "cli.csv"})
	require.NoError(t, err)

	require.Equal(t, "cli.csv", cfg.Input.Path)
	require.Equal(t, "%Y-%m-%d", cfg.Input.DateFormat)
	require.False(t, cfg.Input.DayFirst)
	require.Equal(t, "from-env", cfg.Output.Dir)
	require.Equal(t, "Hatchback", cfg.Report.Title)
	require.Equal(t, "14d", cfg.Report.TrailingWindow)
	require.Equal(t, "€", cfg.Report.Currency)
	require.Equal(t, 640, cfg.Charts.Width)
	require.Equal(t, 300, cfg.Charts.Height)
	require.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_MissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.ErrorContains(t, err, "failed to load config file")
}

func TestLoad_ValidationFailures(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]interface{}
		wantErr   string
	}{
		{
			name:      "bad trailing window",
			overrides: map[string]interface{}{"report.trailing_window": "soon"},
			wantErr:   "invalid report.trailing_window",
		},
		{
			name:      "empty output dir",
			overrides: map[string]interface{}{"output.dir": " "},
			wantErr:   "output.dir is required",
		},
		{
			name:      "report name with path",
			overrides: map[string]interface{}{"output.report_name": "a/b.pdf"},
			wantErr:   "must be a file name",
		},
		{
			name:      "non-positive chart size",
			overrides: map[string]interface{}{"charts.width": 0},
			wantErr:   "charts.width and charts.height",
		},
		{
			name:      "first gap days",
			overrides: map[string]interface{}{"charts.first_gap_days": -1},
			wantErr:   "charts.first_gap_days",
		},
		{
			name:      "log level",
			overrides: map[string]interface{}{"log.level": "trace"},
			wantErr:   "invalid log.level",
		},
		{
			name:      "log format",
			overrides: map[string]interface{}{"log.format": "xml"},
			wantErr:   "invalid log.format",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load("", tc.overrides)
			require.ErrorContains(t, err, tc.wantErr)
		})
	}
}

package charts

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"saltlens/internal/analysis"
	"saltlens/internal/cleaning"
	"saltlens/internal/interview"
)

func fixtureReport(t *testing.T) *analysis.Report {
	t.Helper()
	path := filepath.Join(t.TempDir(), "interviews.csv")
	require.NoError(t, os.WriteFile(path, []byte(interview.SampleCSV), 0o644))
	recs, err := interview.Load(path)
	require.NoError(t, err)
	res, err := cleaning.Clean(recs)
	require.NoError(t, err)
	rep, err := analysis.Analyze(res.Records)
	require.NoError(t, err)
	return rep
}

func TestRenderDashboard(t *testing.T) {
	rep := fixtureReport(t)
	path := filepath.Join(t.TempDir(), "jtbd_dashboard.png")

	require.NoError(t, RenderDashboard(rep, path, Options{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err, "output is not a valid PNG")
	assert.Equal(t, defaultWidthPx, cfg.Width)
	assert.Equal(t, defaultHeightPx, cfg.Height)
}

func TestRenderJourney(t *testing.T) {
	rep := fixtureReport(t)
	path := filepath.Join(t.TempDir(), "journey_satisfaction.png")

	require.NoError(t, RenderJourney(rep, path, Options{WidthPx: 1400, HeightPx: 700, DPI: 100}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 1400, cfg.Width)
	assert.Equal(t, 700, cfg.Height)
}

func TestOptionsDefaults(t *testing.T) {
	assert.Equal(t, Options{WidthPx: 1600, HeightPx: 1200, DPI: 100}, Options{}.withDefaults())
	assert.Equal(t,
		Options{WidthPx: 800, HeightPx: 600, DPI: 72},
		Options{WidthPx: 800, HeightPx: 600, DPI: 72}.withDefaults())
}

func TestTitleWords(t *testing.T) {
	cases := map[string]string{
		"social_bonding": "Social Bonding",
		"healthy_meal":   "Healthy Meal",
		"daily":          "Daily",
		"200k+":          "200k+",
	}
	for in, want := range cases {
		assert.Equal(t, want, titleWords(in), in)
	}
}

package exporter

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"saltlens/internal/analysis"
	"saltlens/internal/cleaning"
	"saltlens/internal/interview"
	"saltlens/internal/report"
)

func cleanedFixture(t *testing.T) cleaning.Result {
	t.Helper()
	path := filepath.Join(t.TempDir(), "interviews.csv")
	require.NoError(t, os.WriteFile(path, []byte(interview.SampleCSV), 0o644))
	recs, err := interview.Load(path)
	require.NoError(t, err)
	res, err := cleaning.Clean(recs)
	require.NoError(t, err)
	return res
}

func TestWriteCleanCSVShape(t *testing.T) {
	res := cleanedFixture(t)
	path := filepath.Join(t.TempDir(), "interviews_clean.csv")
	require.NoError(t, WriteCleanCSV(path, res.Records, false))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	wantCols := len(interview.Columns) + len(DerivedColumns)
	require.Len(t, rows, len(res.Records)+1)
	for i, row := range rows {
		assert.Len(t, row, wantCols, "row %d", i)
	}
	assert.Equal(t, "participant_id", rows[0][0])
	assert.Equal(t, "segment", rows[0][wantCols-1])

	byID := map[string][]string{}
	for _, row := range rows[1:] {
		byID[row[0]] = row
	}
	p1 := byID["P001"]
	require.NotNil(t, p1)
	assert.Equal(t, "once", p1[7], "raw usage_frequency survives export")
	assert.Equal(t, interview.UsageOccasional, p1[len(interview.Columns)])
	assert.Equal(t, "false", p1[wantCols-2], "P001 does not recommend")
	assert.Equal(t, interview.SegmentSocialEntertainers, p1[wantCols-1])
}

// Exported data must load and clean back to the same records.
func TestWriteCleanCSVRoundTrip(t *testing.T) {
	res := cleanedFixture(t)
	for _, withBOM := range []bool{false, true} {
		path := filepath.Join(t.TempDir(), "interviews_clean.csv")
		require.NoError(t, WriteCleanCSV(path, res.Records, withBOM))

		reloaded, err := interview.Load(path)
		require.NoError(t, err)
		again, err := cleaning.Clean(reloaded)
		require.NoError(t, err)
		assert.Equal(t, res.Records, again.Records, "withBOM=%v", withBOM)
		assert.Equal(t, res.Summary, again.Summary, "withBOM=%v", withBOM)
	}
}

func TestWriteCleanCSVBOM(t *testing.T) {
	res := cleanedFixture(t)
	dir := t.TempDir()

	plain := filepath.Join(dir, "plain.csv")
	require.NoError(t, WriteCleanCSV(plain, res.Records, false))
	marked := filepath.Join(dir, "marked.csv")
	require.NoError(t, WriteCleanCSV(marked, res.Records, true))

	plainData, err := os.ReadFile(plain)
	require.NoError(t, err)
	markedData, err := os.ReadFile(marked)
	require.NoError(t, err)

	assert.False(t, strings.HasPrefix(string(plainData), bom))
	assert.True(t, strings.HasPrefix(string(markedData), bom))
	assert.Equal(t, string(plainData), strings.TrimPrefix(string(markedData), bom))
}

func TestWriteSummaryJSON(t *testing.T) {
	res := cleanedFixture(t)
	rep, err := analysis.Analyze(res.Records)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "analysis_summary.json")
	sum := RunSummary{
		Meta:     report.Meta{RunID: "run-test", GeneratedAt: time.Date(2025, 1, 21, 9, 0, 0, 0, time.UTC)},
		Cleaning: res.Summary,
		Analysis: rep,
	}
	require.NoError(t, WriteSummaryJSON(path, sum))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded struct {
		Meta struct {
			RunID string `json:"run_id"`
		} `json:"meta"`
		Cleaning cleaning.Summary `json:"cleaning"`
		Analysis struct {
			SampleSize int `json:"sample_size"`
			JTBD       struct {
				DominantJob string `json:"dominant_job"`
			} `json:"jtbd"`
		} `json:"analysis"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "run-test", decoded.Meta.RunID)
	assert.Equal(t, 7, decoded.Cleaning.Records)
	assert.Equal(t, 7, decoded.Analysis.SampleSize)
	assert.Equal(t, interview.JobSocialBonding, decoded.Analysis.JTBD.DominantJob)
	assert.True(t, strings.HasSuffix(string(data), "\n"))
}

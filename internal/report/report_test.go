package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"saltlens/internal/analysis"
	"saltlens/internal/cleaning"
	"saltlens/internal/interview"
)

func fixture(t *testing.T) (*analysis.Report, cleaning.Summary) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "interviews.csv")
	if err := os.WriteFile(path, []byte(interview.SampleCSV), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	recs, err := interview.Load(path)
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}
	res, err := cleaning.Clean(recs)
	if err != nil {
		t.Fatalf("clean fixture: %v", err)
	}
	rep, err := analysis.Analyze(res.Records)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	return rep, res.Summary
}

func buildFixture(t *testing.T) string {
	t.Helper()
	rep, cs := fixture(t)
	return Build(rep, cs, Meta{RunID: "run-test", GeneratedAt: time.Date(2025, 1, 21, 9, 0, 0, 0, time.UTC)})
}

func TestBuildSectionsInOrder(t *testing.T) {
	text := buildFixture(t)
	sections := []string{
		"BLUE SALT CUSTOMER DISCOVERY ANALYSIS",
		"EXECUTIVE SUMMARY",
		"KEY FINDINGS",
		"JOBS TO BE DONE",
		"CUSTOMER SEGMENTS",
		"JOURNEY SATISFACTION",
		"STRATEGIC RECOMMENDATION",
		"IMPLEMENTATION PRIORITIES",
		"SUCCESS METRICS",
		"DATA NOTES",
	}
	last := -1
	for _, s := range sections {
		idx := strings.Index(text, s)
		if idx < 0 {
			t.Fatalf("section %q missing:\n%s", s, text)
		}
		if idx <= last {
			t.Fatalf("section %q out of order", s)
		}
		last = idx
	}
}

// Printed percentages must be the analyzer's formatted labels, verbatim.
func TestBuildVerbatimPercentages(t *testing.T) {
	rep, cs := fixture(t)
	text := Build(rep, cs, Meta{RunID: "run-test", GeneratedAt: time.Now()})

	labels := []string{
		rep.PainPoints.Price.Label,
		rep.PainPoints.Visual.Label,
		rep.PainPoints.TasteUncertainty.Label,
		rep.Recommend.Label,
	}
	for _, c := range rep.JTBD.Distribution {
		labels = append(labels, c.Label)
	}
	for _, s := range rep.Segments {
		labels = append(labels, s.Label)
	}
	for _, l := range labels {
		if !strings.Contains(text, l) {
			t.Fatalf("label %q not in report:\n%s", l, text)
		}
	}
}

func TestBuildFixtureFigures(t *testing.T) {
	text := buildFixture(t)
	for _, want := range []string{
		"57.1%",
		"42.9%",
		"85.7%",
		"social_bonding   3 interviews",
		"Social Entertainers    3 (42.9%)",
		"Positioning:  Premium Salt Brand -> Social Currency Tool",
		"Pricing:      $14.99-$19.99 -> $8.99 (accessible luxury)",
		"By income bracket:",
		"200k+",
		"Run: run-test",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("report missing %q:\n%s", want, text)
		}
	}
}

func TestBuildMarksLowestStage(t *testing.T) {
	text := buildFixture(t)
	marked := ""
	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(line, "<- biggest drop-off") {
			marked = line
			break
		}
	}
	if !strings.HasPrefix(marked, "Usage") {
		t.Fatalf("drop-off marker on wrong line: %q", marked)
	}
	if !strings.Contains(marked, "2.3") {
		t.Fatalf("drop-off line missing mean: %q", marked)
	}
}

func TestBuildDataNotes(t *testing.T) {
	text := buildFixture(t)
	for _, want := range []string{
		"Sample: 7 interviews",
		"Usage values recoded: 6",
		"Missing scores filled: 0",
		"Empty text fields normalized: 0",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("data notes missing %q:\n%s", want, text)
		}
	}
}

func TestWrite(t *testing.T) {
	rep, cs := fixture(t)
	meta := Meta{RunID: "run-test", GeneratedAt: time.Now().UTC()}
	path := filepath.Join(t.TempDir(), "analysis_report.txt")

	if err := Write(path, rep, cs, meta); err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if string(data) != Build(rep, cs, meta) {
		t.Fatalf("written report differs from Build output")
	}
}

func TestNewMeta(t *testing.T) {
	m := NewMeta()
	if _, err := uuid.Parse(m.RunID); err != nil {
		t.Fatalf("run id %q not a uuid: %v", m.RunID, err)
	}
	if m.GeneratedAt.IsZero() || m.GeneratedAt.Location() != time.UTC {
		t.Fatalf("generated at = %v", m.GeneratedAt)
	}
}

// Package report renders the analysis results as the plain-text strategy
// report delivered at the end of a pipeline run.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"saltlens/internal/analysis"
	"saltlens/internal/cleaning"
	"saltlens/internal/interview"
	"saltlens/internal/utils"
)

const rule = "================================================================================"

// Meta identifies one pipeline run.
type Meta struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
}

// NewMeta mints a fresh run identity.
func NewMeta() Meta {
	return Meta{RunID: uuid.NewString(), GeneratedAt: time.Now().UTC()}
}

// Write renders the report and writes it atomically.
func Write(path string, rep *analysis.Report, clean cleaning.Summary, meta Meta) error {
	if err := utils.SafeWriteFile(path, []byte(Build(rep, clean, meta))); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// Build renders the full report text. Percentages come straight from the
// analyzer's formatted labels so printed figures match the computed ones.
func Build(rep *analysis.Report, clean cleaning.Summary, meta Meta) string {
	var b strings.Builder

	b.WriteString(rule + "\n")
	b.WriteString("BLUE SALT CUSTOMER DISCOVERY ANALYSIS\n")
	fmt.Fprintf(&b, "Run: %s\n", meta.RunID)
	fmt.Fprintf(&b, "Generated: %s\n", meta.GeneratedAt.Format("2006-01-02 15:04 MST"))
	b.WriteString(rule + "\n\n")

	executiveSummary(&b, rep)
	keyFindings(&b, rep)
	jobsSection(&b, rep)
	segmentsSection(&b, rep)
	journeySection(&b, rep)
	recommendationSection(&b, rep)
	prioritiesSection(&b, rep)
	metricsSection(&b, rep)
	dataNotes(&b, rep, clean)

	b.WriteString(rule + "\n")
	return b.String()
}

func section(b *strings.Builder, title string) {
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("-", len(title)) + "\n")
}

func executiveSummary(b *strings.Builder, rep *analysis.Report) {
	section(b, "EXECUTIVE SUMMARY")
	fmt.Fprintf(b, "%d interviews (%s to %s) show that the dominant job customers hire\n",
		rep.SampleSize, rep.Dates.From, rep.Dates.To)
	fmt.Fprintf(b, "Blue Salt for is %s (%s of the sample).\n",
		prettyName(rep.JTBD.DominantJob), analysis.FormatPct(rep.JTBD.Concentration))
	fmt.Fprintf(b, "Recommended direction: reposition from %s to %s.\n\n",
		rep.Recommendation.PositioningFrom, rep.Recommendation.PositioningTo)
}

func keyFindings(b *strings.Builder, rep *analysis.Report) {
	section(b, "KEY FINDINGS")

	findings := []string{
		fmt.Sprintf("%s accounts for %s of primary jobs; purchases are social, not nutritional.",
			prettyName(rep.JTBD.DominantJob), analysis.FormatPct(rep.JTBD.Concentration)),
		fmt.Sprintf("Price concern appears in %s of interviews.", rep.PainPoints.Price.Label),
		fmt.Sprintf("%s expected a bluer product than they received.", rep.PainPoints.Visual.Label),
		fmt.Sprintf("%s report no clear taste benefit.", rep.PainPoints.TasteUncertainty.Label),
		fmt.Sprintf("%s would recommend Blue Salt in some form.", rep.Recommend.Label),
	}
	if rep.Usage.IncomeParadox {
		findings = append(findings, fmt.Sprintf(
			"Income paradox: occasional users average %s against %s for daily users.",
			incomeByUsage(rep, interview.UsageOccasional), incomeByUsage(rep, interview.UsageDaily)))
	}
	if rep.IncomeFrequency != nil {
		findings = append(findings, fmt.Sprintf(
			"Income and usage frequency correlate negatively (r = %.2f, n = %d).",
			rep.IncomeFrequency.R, rep.IncomeFrequency.N))
	}
	for i, f := range findings {
		fmt.Fprintf(b, "%d. %s\n", i+1, f)
	}
	b.WriteString("\n")
}

func jobsSection(b *strings.Builder, rep *analysis.Report) {
	section(b, "JOBS TO BE DONE")

	incomeByJob := make(map[string]float64, len(rep.JTBD.AvgIncomeByJob))
	for _, g := range rep.JTBD.AvgIncomeByJob {
		incomeByJob[g.Group] = g.Mean
	}
	for _, c := range rep.JTBD.Distribution {
		fmt.Fprintf(b, "%-16s %d interviews  %6s  avg income %s\n",
			c.Value, c.Count, c.Label, analysis.FormatMoney(incomeByJob[c.Value]))
	}

	b.WriteString("\nBy income bracket:\n")
	ct := rep.JTBD.ByIncomeBracket
	fmt.Fprintf(b, "%-12s", "")
	for _, col := range ct.Cols {
		fmt.Fprintf(b, "  %s", col)
	}
	b.WriteString("\n")
	for i, row := range ct.Rows {
		fmt.Fprintf(b, "%-12s", row)
		for j, col := range ct.Cols {
			fmt.Fprintf(b, "  %*d", len(col), ct.Counts[i][j])
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func segmentsSection(b *strings.Builder, rep *analysis.Report) {
	section(b, "CUSTOMER SEGMENTS")
	for _, s := range rep.Segments {
		fmt.Fprintf(b, "%-22s %d (%s)\n", s.Value, s.Count, s.Label)
	}
	b.WriteString("\n")
}

func journeySection(b *strings.Builder, rep *analysis.Report) {
	section(b, "JOURNEY SATISFACTION")
	for _, st := range rep.Journey.Stages {
		fmt.Fprintf(b, "%-15s %.1f", string(st.Stage), st.Mean)
		if st.Stage == rep.Journey.Lowest {
			b.WriteString("  <- biggest drop-off")
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func recommendationSection(b *strings.Builder, rep *analysis.Report) {
	section(b, "STRATEGIC RECOMMENDATION")
	rec := rep.Recommendation
	fmt.Fprintf(b, "Positioning:  %s -> %s\n", rec.PositioningFrom, rec.PositioningTo)
	fmt.Fprintf(b, "Target:       %s -> %s\n", rec.TargetFrom, rec.TargetTo)
	fmt.Fprintf(b, "Pricing:      %s -> %s\n\n", rec.PricingFrom, rec.PricingTo)
	fmt.Fprintf(b, "%s\n\n", rec.Rationale)
}

func prioritiesSection(b *strings.Builder, rep *analysis.Report) {
	section(b, "IMPLEMENTATION PRIORITIES")
	for i, c := range rep.Recommendation.KeyChanges {
		fmt.Fprintf(b, "%d. %s\n", i+1, c)
	}
	b.WriteString("\n")
}

func metricsSection(b *strings.Builder, rep *analysis.Report) {
	section(b, "SUCCESS METRICS")
	for _, m := range rep.Recommendation.SuccessMetrics {
		fmt.Fprintf(b, "- %s\n", m)
	}
	b.WriteString("\n")
}

func dataNotes(b *strings.Builder, rep *analysis.Report, clean cleaning.Summary) {
	section(b, "DATA NOTES")
	fmt.Fprintf(b, "Sample: %d interviews\n", clean.Records)
	fmt.Fprintf(b, "Usage values recoded: %d\n", clean.RecodedUsage)
	fmt.Fprintf(b, "Missing scores filled: %d\n", clean.FilledScores)
	fmt.Fprintf(b, "Empty text fields normalized: %d\n", clean.NormalizedFields)
	d := rep.Demographics
	fmt.Fprintf(b, "Demographics: avg age %.1f (SD %.1f), avg income %s, median income %s\n\n",
		d.AvgAge, d.AgeStd, analysis.FormatMoney(d.AvgIncome), analysis.FormatMoney(d.MedianIncome))
}

func incomeByUsage(rep *analysis.Report, category string) string {
	for _, g := range rep.Usage.AvgIncomeByUsage {
		if g.Group == category {
			return analysis.FormatMoney(g.Mean)
		}
	}
	return analysis.FormatMoney(0)
}

// prettyName turns a vocabulary value like "social_bonding" into prose.
func prettyName(v string) string {
	return strings.ReplaceAll(v, "_", " ")
}

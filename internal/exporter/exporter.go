// Package exporter writes the cleaned dataset and the machine-readable run
// summary.
package exporter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"saltlens/internal/analysis"
	"saltlens/internal/cleaning"
	"saltlens/internal/interview"
	"saltlens/internal/report"
	"saltlens/internal/utils"
)

const bom = "\xef\xbb\xbf"

// DerivedColumns extends the raw column order with the fields cleaning adds.
var DerivedColumns = []string{
	"usage_category", "income_bracket", "has_price_concern",
	"disappointed_visual", "positive_taste", "would_recommend_final", "segment",
}

// WriteCleanCSV writes records in the canonical column order, raw fields
// first and derived fields after. With withBOM set a UTF-8 byte order mark
// is prepended so spreadsheet apps detect the encoding.
func WriteCleanCSV(path string, recs []interview.Record, withBOM bool) error {
	var buf bytes.Buffer
	if withBOM {
		buf.WriteString(bom)
	}
	w := csv.NewWriter(&buf)

	header := make([]string, 0, len(interview.Columns)+len(DerivedColumns))
	header = append(header, interview.Columns...)
	header = append(header, DerivedColumns...)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range recs {
		if err := w.Write(row(r)); err != nil {
			return fmt.Errorf("write csv row %s: %w", r.ParticipantID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return utils.SafeWriteFile(path, buf.Bytes())
}

func row(r interview.Record) []string {
	out := []string{
		r.ParticipantID, r.Alias, strconv.Itoa(r.Age), r.Gender,
		strconv.Itoa(r.Income), r.Location, r.Education, r.UsageFrequency,
		r.PurchaseReason, r.PricePerception, r.TastePerception,
		r.VisualExpectation, r.WouldRecommend, r.PrimaryJTBD, r.KeyPainPoint,
		r.InterviewDate.Format("2006-01-02"),
	}
	for _, s := range interview.Stages {
		out = append(out, strconv.Itoa(r.Satisfaction(s)))
	}
	return append(out,
		r.UsageCategory, r.IncomeBracket,
		strconv.FormatBool(r.HasPriceConcern),
		strconv.FormatBool(r.DisappointedVisual),
		strconv.FormatBool(r.PositiveTaste),
		strconv.FormatBool(r.WouldRecommendFinal),
		r.Segment,
	)
}

// RunSummary is the machine-readable counterpart of the text report.
type RunSummary struct {
	Meta     report.Meta      `json:"meta"`
	Cleaning cleaning.Summary `json:"cleaning"`
	Analysis *analysis.Report `json:"analysis"`
}

// WriteSummaryJSON writes the run summary as indented JSON.
func WriteSummaryJSON(path string, s RunSummary) error {
	b, err := utils.PrettyJSON(s)
	if err != nil {
		return fmt.Errorf("summary json: %w", err)
	}
	return utils.SafeWriteFile(path, append(b, '\n'))
}

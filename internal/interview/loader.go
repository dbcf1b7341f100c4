package interview

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// ErrEmptyDataset is returned when the source contains no interview rows.
var ErrEmptyDataset = errors.New("empty dataset: no interview records found")

// Columns of the raw interview table, in canonical order.
var Columns = []string{
	"participant_id", "alias", "age", "gender", "income", "location",
	"education", "usage_frequency", "purchase_reason", "price_perception",
	"taste_perception", "visual_expectation", "would_recommend",
	"primary_jtbd", "key_pain_point", "interview_date",
	"sat_awareness", "sat_consideration", "sat_purchase", "sat_usage", "sat_loyalty",
}

// Reader loads interview records from one file format.
type Reader interface {
	CanRead(filename string) bool
	Read(path string) ([]Record, error)
}

var readers []Reader

// Register adds a reader implementation to the registry.
func Register(r Reader) {
	readers = append(readers, r)
}

func init() {
	Register(csvReader{})
	Register(xlsxReader{})
}

// Load reads interview records from path, picking a reader by extension.
func Load(path string) ([]Record, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open data file: %w", err)
	}
	for _, r := range readers {
		if r.CanRead(path) {
			return r.Read(path)
		}
	}
	return nil, fmt.Errorf("unsupported data format %q (use .csv or .xlsx)", filepath.Ext(path))
}

type csvReader struct{}

func (csvReader) CanRead(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".csv")
}

func (csvReader) Read(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return parseTable(rows, path)
}

// parseTable converts a header row plus data rows into records. The CSV and
// XLSX readers share it so both formats produce identical records.
func parseTable(rows [][]string, source string) ([]Record, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %w", source, ErrEmptyDataset)
	}
	idx := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		idx[normalizeHeader(name)] = i
	}
	var missing []string
	for _, col := range Columns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%s: missing required column(s): %s", source, strings.Join(missing, ", "))
	}

	var recs []Record
	for i, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		rec, err := parseRow(row, idx, i+2)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", source, err)
		}
		recs = append(recs, rec)
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("%s: %w", source, ErrEmptyDataset)
	}
	return recs, nil
}

func parseRow(row []string, idx map[string]int, line int) (Record, error) {
	cell := func(col string) string {
		i := idx[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	need := func(col string) (string, error) {
		v := cell(col)
		if v == "" {
			return "", fmt.Errorf("row %d: missing required field %s", line, col)
		}
		return v, nil
	}

	var rec Record
	var err error
	if rec.ParticipantID, err = need("participant_id"); err != nil {
		return Record{}, err
	}
	if rec.Alias, err = need("alias"); err != nil {
		return Record{}, err
	}
	if rec.Gender, err = need("gender"); err != nil {
		return Record{}, err
	}
	if rec.Location, err = need("location"); err != nil {
		return Record{}, err
	}
	if rec.Education, err = need("education"); err != nil {
		return Record{}, err
	}
	if rec.UsageFrequency, err = need("usage_frequency"); err != nil {
		return Record{}, err
	}
	if rec.PricePerception, err = need("price_perception"); err != nil {
		return Record{}, err
	}
	if rec.TastePerception, err = need("taste_perception"); err != nil {
		return Record{}, err
	}
	if rec.WouldRecommend, err = need("would_recommend"); err != nil {
		return Record{}, err
	}
	if rec.PrimaryJTBD, err = need("primary_jtbd"); err != nil {
		return Record{}, err
	}

	ageStr, err := need("age")
	if err != nil {
		return Record{}, err
	}
	if rec.Age, err = strconv.Atoi(ageStr); err != nil {
		return Record{}, fmt.Errorf("row %d: invalid age %q", line, ageStr)
	}

	incomeStr, err := need("income")
	if err != nil {
		return Record{}, err
	}
	if rec.Income, err = parseMoney(incomeStr); err != nil {
		return Record{}, fmt.Errorf("row %d: invalid income %q", line, incomeStr)
	}

	dateStr, err := need("interview_date")
	if err != nil {
		return Record{}, err
	}
	if rec.InterviewDate, err = time.Parse("2006-01-02", dateStr); err != nil {
		return Record{}, fmt.Errorf("row %d: invalid interview_date %q (want YYYY-MM-DD)", line, dateStr)
	}

	// Free-text fields may be empty; cleaning normalizes them.
	rec.PurchaseReason = cell("purchase_reason")
	rec.VisualExpectation = cell("visual_expectation")
	rec.KeyPainPoint = cell("key_pain_point")

	for _, s := range Stages {
		col := satColumn(s)
		v := cell(col)
		if v == "" {
			continue // unrated stage, cleaning fills it
		}
		n, convErr := strconv.Atoi(v)
		if convErr != nil {
			return Record{}, fmt.Errorf("row %d: invalid %s %q", line, col, v)
		}
		rec.SetSatisfaction(s, n)
	}
	return rec, nil
}

func satColumn(s Stage) string {
	return "sat_" + strings.ToLower(string(s))
}

func normalizeHeader(name string) string {
	name = strings.TrimPrefix(name, "\uFEFF")
	return strings.ToLower(strings.TrimSpace(name))
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// parseMoney parses an integer dollar amount, tolerating currency symbols
// and thousands separators.
func parseMoney(s string) (int, error) {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case '$', ',', ' ', '_':
			return -1
		}
		return r
	}, strings.TrimSpace(s))
	return strconv.Atoi(clean)
}

// Package analysis computes the descriptive statistics consumed by the
// chart renderer and the report writer: frequency distributions,
// cross-tabulations, group means, a Pearson correlation, journey-stage
// satisfaction averages, and the strategic recommendation.
package analysis

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"saltlens/internal/interview"
)

// Report is the full set of named results computed from a cleaned table.
type Report struct {
	SampleSize      int             `json:"sample_size"`
	Dates           DateRange       `json:"dates"`
	Demographics    Demographics    `json:"demographics"`
	JTBD            JTBD            `json:"jtbd"`
	PainPoints      PainPoints      `json:"pain_points"`
	Usage           Usage           `json:"usage"`
	Recommend       Rate            `json:"recommend"`
	IncomeFrequency *PairCorr       `json:"income_frequency,omitempty"`
	Journey         Journey         `json:"journey"`
	Segments        []CategoryCount `json:"segments"`
	Recommendation  Recommendation  `json:"recommendation"`
}

// DateRange spans the earliest and latest interview dates.
type DateRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// CategoryCount is one category's count and share of the sample. Label is
// the percentage formatted once; downstream output must reuse it verbatim.
type CategoryCount struct {
	Value   string  `json:"value"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
	Label   string  `json:"label"`
}

// Rate is a single share of the sample.
type Rate struct {
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
	Label   string  `json:"label"`
}

// GroupMean is a group's mean of one numeric field plus member count.
type GroupMean struct {
	Group string  `json:"group"`
	Mean  float64 `json:"mean"`
	Count int     `json:"count"`
}

// CrossTab is a two-way count table with fixed row and column orders.
type CrossTab struct {
	Rows   []string `json:"rows"`
	Cols   []string `json:"cols"`
	Counts [][]int  `json:"counts"`
}

// At returns the count for a row/column pair, zero when absent.
func (ct CrossTab) At(row, col string) int {
	for i, r := range ct.Rows {
		if r != row {
			continue
		}
		for j, c := range ct.Cols {
			if c == col {
				return ct.Counts[i][j]
			}
		}
	}
	return 0
}

// Demographics summarizes who was interviewed.
type Demographics struct {
	AvgAge       float64         `json:"avg_age"`
	AgeStd       float64         `json:"age_std"`
	AvgIncome    float64         `json:"avg_income"`
	MedianIncome float64         `json:"median_income"`
	Gender       []CategoryCount `json:"gender"`
	Locations    []CategoryCount `json:"locations"`
	Education    []CategoryCount `json:"education"`
}

// JTBD summarizes the Jobs-to-be-Done distribution and its income patterns.
type JTBD struct {
	Distribution    []CategoryCount `json:"distribution"`
	DominantJob     string          `json:"dominant_job"`
	Concentration   float64         `json:"concentration"`
	ByIncomeBracket CrossTab        `json:"by_income_bracket"`
	AvgIncomeByJob  []GroupMean     `json:"avg_income_by_job"`
}

// PainPoints are the headline complaint rates plus raw pain themes.
type PainPoints struct {
	Price            Rate            `json:"price"`
	Visual           Rate            `json:"visual"`
	TasteUncertainty Rate            `json:"taste_uncertainty"`
	Themes           []CategoryCount `json:"themes"`
}

// Usage summarizes how often participants use the product.
type Usage struct {
	Distribution     []CategoryCount `json:"distribution"`
	AvgIncomeByUsage []GroupMean     `json:"avg_income_by_usage"`
	DailyPct         float64         `json:"daily_pct"`
	OccasionalPct    float64         `json:"occasional_pct"`
	// IncomeParadox is set when occasional users out-earn daily users.
	IncomeParadox bool `json:"income_paradox"`
}

// PairCorr is a Pearson correlation between two fields.
type PairCorr struct {
	FieldA string  `json:"field_a"`
	FieldB string  `json:"field_b"`
	R      float64 `json:"r"`
	N      int     `json:"n"`
}

// StageSatisfaction is a journey stage's mean score on the 1-5 scale.
type StageSatisfaction struct {
	Stage interview.Stage `json:"stage"`
	Mean  float64         `json:"mean"`
	N     int             `json:"n"`
}

// Journey holds per-stage satisfaction averages in journey order.
type Journey struct {
	Stages []StageSatisfaction `json:"stages"`
	Lowest interview.Stage     `json:"lowest"`
}

// Analyze computes the full result set over cleaned records.
func Analyze(recs []interview.Record) (*Report, error) {
	if len(recs) == 0 {
		return nil, fmt.Errorf("analyze: %w", interview.ErrEmptyDataset)
	}
	n := len(recs)

	rep := &Report{SampleSize: n}
	rep.Dates = dateRange(recs)
	rep.Demographics = demographics(recs)
	rep.JTBD = jobsToBeDone(recs)
	rep.PainPoints = painPoints(recs)
	rep.Usage = usagePatterns(recs)
	rep.Recommend = rate(countIf(recs, func(r interview.Record) bool { return r.WouldRecommendFinal }), n)
	rep.IncomeFrequency = incomeFrequencyCorr(recs)
	rep.Journey = journey(recs)
	rep.Segments = frequency(recs, n, func(r interview.Record) string { return r.Segment })
	rep.Recommendation = buildRecommendation(rep.JTBD, rep.PainPoints)
	return rep, nil
}

func dateRange(recs []interview.Record) DateRange {
	min, max := recs[0].InterviewDate, recs[0].InterviewDate
	for _, r := range recs[1:] {
		if r.InterviewDate.Before(min) {
			min = r.InterviewDate
		}
		if r.InterviewDate.After(max) {
			max = r.InterviewDate
		}
	}
	return DateRange{From: min.Format("2006-01-02"), To: max.Format("2006-01-02")}
}

func demographics(recs []interview.Record) Demographics {
	n := len(recs)
	var age welford
	incomes := make([]float64, 0, n)
	var incomeSum float64
	for _, r := range recs {
		age.add(float64(r.Age))
		incomes = append(incomes, float64(r.Income))
		incomeSum += float64(r.Income)
	}
	return Demographics{
		AvgAge:       age.meanVal(),
		AgeStd:       age.sampleStd(),
		AvgIncome:    incomeSum / float64(n),
		MedianIncome: medianFloat(incomes),
		Gender:       frequency(recs, n, func(r interview.Record) string { return r.Gender }),
		Locations:    frequency(recs, n, func(r interview.Record) string { return r.Location }),
		Education:    frequency(recs, n, func(r interview.Record) string { return r.Education }),
	}
}

func jobsToBeDone(recs []interview.Record) JTBD {
	n := len(recs)
	dist := frequency(recs, n, func(r interview.Record) string { return r.PrimaryJTBD })

	out := JTBD{
		Distribution: dist,
		ByIncomeBracket: crossTab(recs, interview.IncomeBrackets, interview.JTBDValues,
			func(r interview.Record) (string, string) { return r.IncomeBracket, r.PrimaryJTBD }),
		AvgIncomeByJob: groupMeans(recs, interview.JTBDValues,
			func(r interview.Record) string { return r.PrimaryJTBD },
			func(r interview.Record) float64 { return float64(r.Income) }),
	}
	if len(dist) > 0 {
		out.DominantJob = dist[0].Value
		out.Concentration = dist[0].Percent
	}
	return out
}

func painPoints(recs []interview.Record) PainPoints {
	n := len(recs)
	return PainPoints{
		Price:            rate(countIf(recs, func(r interview.Record) bool { return r.HasPriceConcern }), n),
		Visual:           rate(countIf(recs, func(r interview.Record) bool { return r.DisappointedVisual }), n),
		TasteUncertainty: rate(countIf(recs, func(r interview.Record) bool { return !r.PositiveTaste }), n),
		Themes:           frequency(recs, n, func(r interview.Record) string { return r.KeyPainPoint }),
	}
}

func usagePatterns(recs []interview.Record) Usage {
	n := len(recs)
	u := Usage{
		Distribution: frequency(recs, n, func(r interview.Record) string { return r.UsageCategory }),
		AvgIncomeByUsage: groupMeans(recs, interview.UsageCategories,
			func(r interview.Record) string { return r.UsageCategory },
			func(r interview.Record) float64 { return float64(r.Income) }),
	}
	var dailyIncome, occasionalIncome float64
	for _, g := range u.AvgIncomeByUsage {
		switch g.Group {
		case interview.UsageDaily:
			dailyIncome = g.Mean
		case interview.UsageOccasional:
			occasionalIncome = g.Mean
		}
	}
	for _, c := range u.Distribution {
		switch c.Value {
		case interview.UsageDaily:
			u.DailyPct = c.Percent
		case interview.UsageOccasional:
			u.OccasionalPct = c.Percent
		}
	}
	u.IncomeParadox = occasionalIncome > dailyIncome
	return u
}

// incomeFrequencyCorr correlates income with how often the product is used
// (occasional=1, weekly=2, daily=3). Returns nil when undefined.
func incomeFrequencyCorr(recs []interview.Record) *PairCorr {
	var acc corrAcc
	for _, r := range recs {
		score := usageScore(r.UsageCategory)
		if score == 0 {
			continue
		}
		acc.add(float64(r.Income), score)
	}
	r, ok := acc.pearson()
	if !ok {
		return nil
	}
	return &PairCorr{FieldA: "income", FieldB: "usage_frequency", R: r, N: acc.n}
}

func journey(recs []interview.Record) Journey {
	j := Journey{Stages: make([]StageSatisfaction, 0, len(interview.Stages))}
	for _, s := range interview.Stages {
		var acc welford
		for _, r := range recs {
			acc.add(float64(r.Satisfaction(s)))
		}
		j.Stages = append(j.Stages, StageSatisfaction{Stage: s, Mean: acc.meanVal(), N: acc.n})
	}
	lowest := j.Stages[0]
	for _, st := range j.Stages[1:] {
		if st.Mean < lowest.Mean {
			lowest = st
		}
	}
	j.Lowest = lowest.Stage
	return j
}

// usageScore encodes the usage category as an ordinal frequency.
func usageScore(category string) float64 {
	switch category {
	case interview.UsageOccasional:
		return 1
	case interview.UsageWeekly:
		return 2
	case interview.UsageDaily:
		return 3
	}
	return 0
}

// frequency counts values, ordered by count descending then value
// ascending so tied categories come out deterministically.
func frequency(recs []interview.Record, total int, key func(interview.Record) string) []CategoryCount {
	counts := make(map[string]int)
	for _, r := range recs {
		counts[key(r)]++
	}
	out := make([]CategoryCount, 0, len(counts))
	for v, c := range counts {
		p := pct(c, total)
		out = append(out, CategoryCount{Value: v, Count: c, Percent: p, Label: FormatPct(p)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	return out
}

// crossTab counts row×column pairs over the fixed vocabularies, keeping
// empty rows so downstream tables stay rectangular.
func crossTab(recs []interview.Record, rows, cols []string, key func(interview.Record) (string, string)) CrossTab {
	rowIdx := make(map[string]int, len(rows))
	for i, r := range rows {
		rowIdx[r] = i
	}
	colIdx := make(map[string]int, len(cols))
	for i, c := range cols {
		colIdx[c] = i
	}
	counts := make([][]int, len(rows))
	for i := range counts {
		counts[i] = make([]int, len(cols))
	}
	for _, rec := range recs {
		rv, cv := key(rec)
		ri, ok := rowIdx[rv]
		if !ok {
			continue
		}
		ci, ok := colIdx[cv]
		if !ok {
			continue
		}
		counts[ri][ci]++
	}
	return CrossTab{Rows: rows, Cols: cols, Counts: counts}
}

// groupMeans averages a numeric field per group, in vocabulary order,
// dropping groups with no members.
func groupMeans(recs []interview.Record, order []string, key func(interview.Record) string, val func(interview.Record) float64) []GroupMean {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, r := range recs {
		k := key(r)
		sums[k] += val(r)
		counts[k]++
	}
	out := make([]GroupMean, 0, len(order))
	for _, g := range order {
		if counts[g] == 0 {
			continue
		}
		out = append(out, GroupMean{Group: g, Mean: sums[g] / float64(counts[g]), Count: counts[g]})
	}
	return out
}

func countIf(recs []interview.Record, pred func(interview.Record) bool) int {
	n := 0
	for _, r := range recs {
		if pred(r) {
			n++
		}
	}
	return n
}

func rate(count, total int) Rate {
	p := pct(count, total)
	return Rate{Count: count, Percent: p, Label: FormatPct(p)}
}

func pct(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}

// FormatPct renders a percentage with one decimal. Chart labels and report
// text reuse these strings so printed figures match the computed ones.
func FormatPct(p float64) string {
	return strconv.FormatFloat(math.Round(p*10)/10, 'f', 1, 64) + "%"
}

// FormatMoney renders a whole dollar amount with thousands separators.
func FormatMoney(v float64) string {
	n := int64(math.Round(v))
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	s := strconv.FormatInt(n, 10)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return "$" + sign + s
}

// welford accumulates mean and variance in one pass.
type welford struct {
	n    int
	mean float64
	m2   float64
}

func (w *welford) add(x float64) {
	w.n++
	d := x - w.mean
	w.mean += d / float64(w.n)
	w.m2 += d * (x - w.mean)
}

func (w *welford) meanVal() float64 {
	if w.n == 0 {
		return 0
	}
	return w.mean
}

// sampleStd is the n-1 standard deviation.
func (w *welford) sampleStd() float64 {
	if w.n < 2 {
		return 0
	}
	return math.Sqrt(w.m2 / float64(w.n-1))
}

// corrAcc accumulates the sums needed for a Pearson correlation.
type corrAcc struct {
	n                               int
	sumX, sumY, sumXX, sumYY, sumXY float64
}

func (a *corrAcc) add(x, y float64) {
	a.n++
	a.sumX += x
	a.sumY += y
	a.sumXX += x * x
	a.sumYY += y * y
	a.sumXY += x * y
}

// pearson returns the correlation, or ok=false when it is undefined
// (fewer than two points or zero variance on either side).
func (a *corrAcc) pearson() (float64, bool) {
	if a.n < 2 {
		return 0, false
	}
	n := float64(a.n)
	cov := n*a.sumXY - a.sumX*a.sumY
	varX := n*a.sumXX - a.sumX*a.sumX
	varY := n*a.sumYY - a.sumY*a.sumY
	if varX <= 0 || varY <= 0 {
		return 0, false
	}
	return cov / math.Sqrt(varX*varY), true
}

func medianFloat(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

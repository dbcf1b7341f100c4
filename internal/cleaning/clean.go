// Package cleaning standardizes raw interview records into the fixed
// vocabulary, fills missing satisfaction scores, and derives the flag,
// bracket, and segment columns consumed by the analyzer.
package cleaning

import (
	"fmt"
	"math"
	"slices"
	"sort"
	"strings"

	"saltlens/internal/interview"
)

// Summary counts what cleaning changed. The counts depend only on the raw
// fields, so cleaning the same input twice reports the same summary.
type Summary struct {
	Records          int `json:"records"`
	RecodedUsage     int `json:"recoded_usage"`
	FilledScores     int `json:"filled_scores"`
	NormalizedFields int `json:"normalized_fields"`
}

// Result bundles cleaned records with the operation summary.
type Result struct {
	Records []interview.Record
	Summary Summary
}

// Clean standardizes records per the data-model rules and validates the
// result. The input slice is not modified; raw fields are preserved on the
// output so cleaning can be re-run.
func Clean(in []interview.Record) (Result, error) {
	if len(in) == 0 {
		return Result{}, fmt.Errorf("clean: %w", interview.ErrEmptyDataset)
	}
	out := make([]interview.Record, len(in))
	copy(out, in)

	sum := Summary{Records: len(out)}

	medians, err := stageMedians(out)
	if err != nil {
		return Result{}, err
	}

	for i := range out {
		r := &out[i]

		r.Gender = strings.ToUpper(strings.TrimSpace(r.Gender))
		r.PrimaryJTBD = fold(r.PrimaryJTBD)
		r.PricePerception = fold(r.PricePerception)
		r.TastePerception = fold(r.TastePerception)
		r.VisualExpectation = fold(r.VisualExpectation)
		r.WouldRecommend = fold(r.WouldRecommend)

		raw := fold(r.UsageFrequency)
		cat, ok := usageRecode[raw]
		if !ok {
			return Result{}, fmt.Errorf("participant %s: unknown usage_frequency %q", r.ParticipantID, r.UsageFrequency)
		}
		if raw != cat {
			sum.RecodedUsage++
		}
		r.UsageCategory = cat

		if strings.TrimSpace(r.VisualExpectation) == "" {
			r.VisualExpectation = interview.VisualNotMentioned
			sum.NormalizedFields++
		}
		if strings.TrimSpace(r.KeyPainPoint) == "" {
			r.KeyPainPoint = interview.PainNoneMentioned
			sum.NormalizedFields++
		}

		for _, s := range interview.Stages {
			if r.Satisfaction(s) == 0 {
				r.SetSatisfaction(s, medians[s])
				sum.FilledScores++
			}
		}

		r.HasPriceConcern = slices.Contains(priceConcernValues, r.PricePerception)
		r.DisappointedVisual = slices.Contains(visualComplaintValues, r.VisualExpectation)
		r.PositiveTaste = slices.Contains(positiveTasteValues, r.TastePerception)
		r.WouldRecommendFinal = !slices.Contains(notRecommendValues, r.WouldRecommend)

		r.IncomeBracket = incomeBracket(r.Income)
		r.Segment = segmentFor(*r)
	}

	if err := Validate(out); err != nil {
		return Result{}, err
	}
	return Result{Records: out, Summary: sum}, nil
}

// stageMedians computes the fill value per stage from rated records only.
func stageMedians(recs []interview.Record) (map[interview.Stage]int, error) {
	medians := make(map[interview.Stage]int, len(interview.Stages))
	for _, s := range interview.Stages {
		var vals []int
		for _, r := range recs {
			if v := r.Satisfaction(s); v != 0 {
				vals = append(vals, v)
			}
		}
		if len(vals) == 0 {
			return nil, fmt.Errorf("no %s satisfaction scores present; cannot impute", strings.ToLower(string(s)))
		}
		m := int(math.Round(median(vals)))
		if m < 1 {
			m = 1
		}
		if m > 5 {
			m = 5
		}
		medians[s] = m
	}
	return medians, nil
}

// fold maps a raw categorical value onto the lowercase vocabulary.
func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func median(vals []int) float64 {
	sorted := make([]int, len(vals))
	copy(sorted, vals)
	sort.Ints(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return float64(sorted[n/2])
	}
	return float64(sorted[n/2-1]+sorted[n/2]) / 2
}

// incomeBracket buckets annual income. Bounds are upper-inclusive, so an
// income of exactly 100000 lands in the low bracket.
func incomeBracket(income int) string {
	switch {
	case income <= 100000:
		return interview.BracketLow
	case income <= 200000:
		return interview.BracketMid
	default:
		return interview.BracketHigh
	}
}

// segmentFor assigns a customer segment. Rule order matters: the social
// rule wins over the health rule, which wins over the gift rule.
func segmentFor(r interview.Record) string {
	switch {
	case r.PrimaryJTBD == interview.JobSocialBonding:
		return interview.SegmentSocialEntertainers
	case (r.UsageCategory == interview.UsageDaily || r.UsageCategory == interview.UsageWeekly) &&
		r.PrimaryJTBD == interview.JobHealthyMeal:
		return interview.SegmentHealthEnthusiasts
	case r.UsageCategory == interview.UsageOccasional && r.Income > 200000:
		return interview.SegmentPremiumGiftBuyers
	default:
		return interview.SegmentGeneralUsers
	}
}

// Validate checks the data-model invariants on cleaned records.
func Validate(recs []interview.Record) error {
	seen := make(map[string]struct{}, len(recs))
	for _, r := range recs {
		if _, dup := seen[r.ParticipantID]; dup {
			return fmt.Errorf("participant %s: duplicate id", r.ParticipantID)
		}
		seen[r.ParticipantID] = struct{}{}

		if r.Age < 18 || r.Age > 100 {
			return fmt.Errorf("participant %s: age %d outside 18-100", r.ParticipantID, r.Age)
		}
		if r.Income <= 0 {
			return fmt.Errorf("participant %s: income must be positive, got %d", r.ParticipantID, r.Income)
		}
		if err := inVocab(r.ParticipantID, "gender", r.Gender, interview.Genders); err != nil {
			return err
		}
		if err := inVocab(r.ParticipantID, "primary_jtbd", r.PrimaryJTBD, interview.JTBDValues); err != nil {
			return err
		}
		if err := inVocab(r.ParticipantID, "price_perception", r.PricePerception, interview.PricePerceptions); err != nil {
			return err
		}
		if err := inVocab(r.ParticipantID, "taste_perception", r.TastePerception, interview.TastePerceptions); err != nil {
			return err
		}
		if err := inVocab(r.ParticipantID, "visual_expectation", r.VisualExpectation, interview.VisualExpectations); err != nil {
			return err
		}
		if err := inVocab(r.ParticipantID, "would_recommend", r.WouldRecommend, interview.RecommendValues); err != nil {
			return err
		}
		if err := inVocab(r.ParticipantID, "usage_category", r.UsageCategory, interview.UsageCategories); err != nil {
			return err
		}
		if err := inVocab(r.ParticipantID, "income_bracket", r.IncomeBracket, interview.IncomeBrackets); err != nil {
			return err
		}
		if err := inVocab(r.ParticipantID, "segment", r.Segment, interview.Segments); err != nil {
			return err
		}
		for _, s := range interview.Stages {
			if v := r.Satisfaction(s); v < 1 || v > 5 {
				return fmt.Errorf("participant %s: %s satisfaction %d outside 1-5", r.ParticipantID, strings.ToLower(string(s)), v)
			}
		}
	}
	return nil
}

func inVocab(id, field, value string, vocab []string) error {
	if slices.Contains(vocab, value) {
		return nil
	}
	return fmt.Errorf("participant %s: %s %q not in vocabulary", id, field, value)
}

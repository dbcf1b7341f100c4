package analysis

import (
	"fmt"

	"saltlens/internal/interview"
)

// socialThreshold is the share of social-bonding jobs above which the
// product repositions as a social product rather than a health one.
const socialThreshold = 40.0

// Recommendation is the strategic direction derived from the results.
type Recommendation struct {
	PositioningFrom string   `json:"positioning_from"`
	PositioningTo   string   `json:"positioning_to"`
	TargetFrom      string   `json:"target_from"`
	TargetTo        string   `json:"target_to"`
	PricingFrom     string   `json:"pricing_from"`
	PricingTo       string   `json:"pricing_to"`
	Rationale       string   `json:"rationale"`
	KeyChanges      []string `json:"key_changes"`
	SuccessMetrics  []string `json:"success_metrics"`
}

// buildRecommendation picks the strategic direction from the job
// distribution and the headline pain points.
func buildRecommendation(jtbd JTBD, pains PainPoints) Recommendation {
	social := 0.0
	for _, c := range jtbd.Distribution {
		if c.Value == interview.JobSocialBonding {
			social = c.Percent
		}
	}

	rec := Recommendation{
		PositioningFrom: "Premium Salt Brand",
		TargetFrom:      "Health-conscious consumers",
		PricingFrom:     "$14.99-$19.99",
		PricingTo:       "$8.99 (accessible luxury)",
	}

	if social >= socialThreshold {
		rec.PositioningTo = "Social Currency Tool"
		rec.TargetTo = "Status-conscious entertainers"
		rec.Rationale = fmt.Sprintf(
			"Social bonding leads the job distribution at %s, so the product sells as a conversation piece, not a pantry staple.",
			FormatPct(social))
		rec.KeyChanges = []string{
			"Enhance blue color for visual impact",
			"Focus on social occasions over daily health",
			"Simplify value proposition",
			"Create \"conversation starter\" marketing",
		}
	} else {
		rec.PositioningTo = "Premium Health Salt"
		rec.TargetTo = "Health-conscious cooks"
		rec.Rationale = fmt.Sprintf(
			"Social bonding stays below %s of jobs (%s), so the health story remains the strongest purchase driver.",
			FormatPct(socialThreshold), FormatPct(social))
		rec.KeyChanges = []string{
			"Lead with the mineral and provenance story",
			"Publish comparative sodium guidance",
			"Sample through health-food retailers",
			"Simplify value proposition",
		}
	}

	rec.SuccessMetrics = []string{
		"Trial-to-repeat conversion >40%",
		"Social media mentions increase 200%",
		"Gift purchase rate >30%",
	}
	if pains.Price.Percent >= 50 {
		rec.SuccessMetrics = append(rec.SuccessMetrics,
			fmt.Sprintf("Price objections below %s of interviews", FormatPct(25)))
	}
	return rec
}

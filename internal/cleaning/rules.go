package cleaning

import "saltlens/internal/interview"

// usageRecode maps raw usage phrases onto the three canonical categories.
// Canonical values map to themselves so cleaning already-clean data is the
// identity.
var usageRecode = map[string]string{
	"daily":             interview.UsageDaily,
	"every_other_day":   interview.UsageDaily,
	"regular":           interview.UsageWeekly,
	"twice_weekly":      interview.UsageWeekly,
	"once_weekly":       interview.UsageWeekly,
	"weekly":            interview.UsageWeekly,
	"special_occasions": interview.UsageOccasional,
	"once":              interview.UsageOccasional,
	"occasional":        interview.UsageOccasional,
}

// priceConcernValues are the price perceptions that read as a complaint.
var priceConcernValues = []string{"too_high", "price_concern", "wants_reduction", "high"}

// visualComplaintValues are the visual expectations that express
// disappointment. not_mentioned carries no signal and is excluded.
var visualComplaintValues = []string{"not_very_blue", "not_blue_enough", "not_as_blue"}

// positiveTasteValues mark a favorable taste verdict.
var positiveTasteValues = []string{"impressed", "crispier_taste", "enjoyed_taste", "loves_quality", "better_than_others"}

// notRecommendValues are the answers that do not count as a recommendation.
var notRecommendValues = []string{"no", "50-50"}

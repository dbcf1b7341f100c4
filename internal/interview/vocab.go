package interview

// Jobs-to-be-Done categories.
const (
	JobSocialBonding = "social_bonding"
	JobGratification = "gratification"
	JobHealthyMeal   = "healthy_meal"
)

// JTBDValues is the fixed Jobs-to-be-Done vocabulary.
var JTBDValues = []string{JobSocialBonding, JobGratification, JobHealthyMeal}

// Canonical usage categories after cleaning.
const (
	UsageDaily      = "daily"
	UsageWeekly     = "weekly"
	UsageOccasional = "occasional"
)

// UsageCategories is the fixed usage vocabulary after cleaning.
var UsageCategories = []string{UsageDaily, UsageWeekly, UsageOccasional}

// Income brackets. Upper bounds are inclusive; the top bracket is unbounded.
const (
	BracketLow  = "<100k"
	BracketMid  = "100k-200k"
	BracketHigh = "200k+"
)

// IncomeBrackets in ascending order.
var IncomeBrackets = []string{BracketLow, BracketMid, BracketHigh}

// Customer segments assigned during cleaning.
const (
	SegmentSocialEntertainers = "Social Entertainers"
	SegmentHealthEnthusiasts  = "Health Enthusiasts"
	SegmentPremiumGiftBuyers  = "Premium Gift Buyers"
	SegmentGeneralUsers       = "General Users"
)

// Segments lists the segment vocabulary.
var Segments = []string{
	SegmentSocialEntertainers,
	SegmentHealthEnthusiasts,
	SegmentPremiumGiftBuyers,
	SegmentGeneralUsers,
}

// VisualNotMentioned marks interviews where appearance never came up.
// Empty visual_expectation cells are normalized to it during cleaning.
const VisualNotMentioned = "not_mentioned"

// PainNoneMentioned is the normalized value for an empty key_pain_point.
const PainNoneMentioned = "none_mentioned"

// Fixed vocabularies for the perception fields.
var (
	Genders = []string{"F", "M"}

	PricePerceptions = []string{
		"too_high", "price_concern", "wants_reduction", "high",
		"acceptable", "regular_price", "not_sensitive",
	}

	TastePerceptions = []string{
		"no_difference", "impressed", "crispier_taste",
		"enjoyed_taste", "loves_quality", "better_than_others",
	}

	VisualExpectations = []string{
		VisualNotMentioned, "not_very_blue", "blue_speckles_nice",
		"not_blue_enough", "not_as_blue",
	}

	RecommendValues = []string{"yes", "no", "50-50", "yes_but_skeptical"}
)

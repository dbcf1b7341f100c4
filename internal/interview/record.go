// Package interview defines the interview record data model and loads raw
// records from CSV or XLSX sources.
package interview

import "time"

// Stage identifies a customer journey phase rated for satisfaction.
type Stage string

const (
	StageAwareness     Stage = "Awareness"
	StageConsideration Stage = "Consideration"
	StagePurchase      Stage = "Purchase"
	StageUsage         Stage = "Usage"
	StageLoyalty       Stage = "Loyalty"
)

// Stages lists journey stages in journey order.
var Stages = []Stage{StageAwareness, StageConsideration, StagePurchase, StageUsage, StageLoyalty}

// Record is one participant's interview row. Raw fields are set at load
// time; derived fields stay zero until cleaning assigns them.
type Record struct {
	ParticipantID     string
	Alias             string
	Age               int
	Gender            string
	Income            int
	Location          string
	Education         string
	UsageFrequency    string
	PurchaseReason    string
	PricePerception   string
	TastePerception   string
	VisualExpectation string
	WouldRecommend    string
	PrimaryJTBD       string
	KeyPainPoint      string
	InterviewDate     time.Time

	// Satisfaction per journey stage on a 1-5 scale. Zero means the
	// participant did not rate the stage; cleaning fills it.
	SatAwareness     int
	SatConsideration int
	SatPurchase      int
	SatUsage         int
	SatLoyalty       int

	// Derived during cleaning.
	UsageCategory       string
	IncomeBracket       string
	HasPriceConcern     bool
	DisappointedVisual  bool
	PositiveTaste       bool
	WouldRecommendFinal bool
	Segment             string
}

// Satisfaction returns the score for the given journey stage.
func (r Record) Satisfaction(s Stage) int {
	switch s {
	case StageAwareness:
		return r.SatAwareness
	case StageConsideration:
		return r.SatConsideration
	case StagePurchase:
		return r.SatPurchase
	case StageUsage:
		return r.SatUsage
	case StageLoyalty:
		return r.SatLoyalty
	}
	return 0
}

// SetSatisfaction sets the score for the given journey stage.
func (r *Record) SetSatisfaction(s Stage, v int) {
	switch s {
	case StageAwareness:
		r.SatAwareness = v
	case StageConsideration:
		r.SatConsideration = v
	case StagePurchase:
		r.SatPurchase = v
	case StageUsage:
		r.SatUsage = v
	case StageLoyalty:
		r.SatLoyalty = v
	}
}

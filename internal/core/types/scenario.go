package types

import "github.com/shopspring/decimal"

type ToolKind string

const (
	CompetitiveTracking    ToolKind = "competitive-tracking"
	SentimentAnalysis      ToolKind = "sentiment-analysis"
	PitchPersonalization   ToolKind = "pitch-personalization"
	CarryCalculation       ToolKind = "carry-calculation"
	VintageDiversification ToolKind = "vintage-diversification"
	SalesSimulation        ToolKind = "sales-simulation"
)

var ToolKinds = []ToolKind{
	CompetitiveTracking,
	SentimentAnalysis,
	PitchPersonalization,
	CarryCalculation,
	VintageDiversification,
	SalesSimulation,
}

func ParseToolKind(s string) (ToolKind, bool) {
	for _, kind := range ToolKinds {
		if string(kind) == s {
			return kind, true
		}
	}
	return "", false
}

// ScenarioContext holds the form fields of a single submission. Only the
// fields belonging to Tool are read when building a prompt.
type ScenarioContext struct {
	Tool ToolKind

	// competitive-tracking
	FundName        string
	CompetitionData string

	// sentiment-analysis
	LPConversation string

	// pitch-personalization
	LPHistory string

	// carry-calculation
	DealStructure   string
	TotalFund       decimal.Decimal
	CarryPercentage int

	// vintage-diversification
	TotalAllocation decimal.Decimal
	VintageYears    string

	// sales-simulation
	Scenario          string
	CompetitorStyle   string
	Tone              string
	Expertise         int
	UserExperience    int
	AdditionalContext string
	DetectEmotion     bool
}

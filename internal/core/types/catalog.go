package types

import "github.com/shopspring/decimal"

type ToolInfo struct {
	Kind        ToolKind
	Title       string
	Description string
}

var Catalog = []ToolInfo{
	{
		Kind:        CompetitiveTracking,
		Title:       "Competitive Fund Tracker",
		Description: "Monitor other funds raising capital and benchmark your fund's performance.",
	},
	{
		Kind:        SentimentAnalysis,
		Title:       "LP Sentiment Analysis",
		Description: "Analyze LP emails and conversations to detect hesitations or enthusiasm.",
	},
	{
		Kind:        PitchPersonalization,
		Title:       "Pitch Personalizer",
		Description: "Customize fundraising pitches based on LPs' investment history and preferences.",
	},
	{
		Kind:        CarryCalculation,
		Title:       "Carry Calculator",
		Description: "Instantly calculate potential carried interest scenarios for various deal structures.",
	},
	{
		Kind:        VintageDiversification,
		Title:       "Vintage Diversification Optimizer",
		Description: "Advise on fund allocation to achieve a balanced vintage diversification strategy.",
	},
	{
		Kind:        SalesSimulation,
		Title:       "Sales Simulation",
		Description: "Practice a fundraising conversation against a simulated competitor and get coaching tips.",
	},
}

// Form widget bounds and defaults. These are enforced by the front-ends, the
// prompt builder itself accepts anything.
var DealStructures = []string{"Traditional", "Hurdle Rate", "European Waterfall", "American Waterfall"}

const (
	MinCarryPercentage     = 0
	MaxCarryPercentage     = 50
	DefaultCarryPercentage = 20

	MinLevel     = 1
	MaxLevel     = 10
	DefaultLevel = 5
)

var MinFundAmount = decimal.NewFromInt(1_000_000)

package api

import (
	"net/http"
	"slices"

	"fundraise-backend/internal/chat"
	"fundraise-backend/internal/core/types"
	"fundraise-backend/pkg/api"

	"github.com/shopspring/decimal"
)

// ToScenarioContext applies the input constraints of the tool forms:
// slider bounds, number input minimums, select options and their defaults.
// Free text fields are passed through untouched, including empty ones.
func ToScenarioContext(kind types.ToolKind, req api.ToolRequest) (types.ScenarioContext, error) {
	sc := types.ScenarioContext{Tool: kind}

	switch kind {
	case types.CompetitiveTracking:
		sc.FundName = req.FundName
		sc.CompetitionData = req.CompetitionData

	case types.SentimentAnalysis:
		sc.LPConversation = req.LPConversation

	case types.PitchPersonalization:
		sc.LPHistory = req.LPHistory

	case types.CarryCalculation:
		sc.DealStructure = req.DealStructure
		if sc.DealStructure == "" {
			sc.DealStructure = types.DealStructures[0]
		}
		if !slices.Contains(types.DealStructures, sc.DealStructure) {
			return sc, CodedErrorf(http.StatusUnprocessableEntity, "invalid deal_structure '%s', must be one of %v", sc.DealStructure, types.DealStructures)
		}

		amount, err := fundAmount("total_fund", req.TotalFund)
		if err != nil {
			return sc, err
		}
		sc.TotalFund = amount

		carry, err := boundedInt("carry_percentage", req.CarryPercentage, types.MinCarryPercentage, types.MaxCarryPercentage, types.DefaultCarryPercentage)
		if err != nil {
			return sc, err
		}
		sc.CarryPercentage = carry

	case types.VintageDiversification:
		amount, err := fundAmount("total_allocation", req.TotalAllocation)
		if err != nil {
			return sc, err
		}
		sc.TotalAllocation = amount
		sc.VintageYears = req.VintageYears

	case types.SalesSimulation:
		sc.Scenario = req.Scenario
		sc.CompetitorStyle = req.CompetitorStyle
		sc.Tone = req.Tone
		sc.AdditionalContext = req.AdditionalContext
		sc.DetectEmotion = req.DetectEmotion

		expertise, err := boundedInt("expertise", req.Expertise, types.MinLevel, types.MaxLevel, types.DefaultLevel)
		if err != nil {
			return sc, err
		}
		sc.Expertise = expertise

		experience, err := boundedInt("user_experience", req.UserExperience, types.MinLevel, types.MaxLevel, types.DefaultLevel)
		if err != nil {
			return sc, err
		}
		sc.UserExperience = experience
	}

	return sc, nil
}

func fundAmount(field string, value *decimal.Decimal) (decimal.Decimal, error) {
	if value == nil {
		return types.MinFundAmount, nil
	}
	if value.LessThan(types.MinFundAmount) {
		return decimal.Zero, CodedErrorf(http.StatusUnprocessableEntity, "%s must be at least %s", field, types.MinFundAmount)
	}
	return *value, nil
}

func boundedInt(field string, value *int, lo, hi, def int) (int, error) {
	if value == nil {
		return def, nil
	}
	if *value < lo || *value > hi {
		return 0, CodedErrorf(http.StatusUnprocessableEntity, "%s must be between %d and %d, got %d", field, lo, hi, *value)
	}
	return *value, nil
}

func toToolResponse(interaction *chat.Interaction) api.ToolResponse {
	return api.ToolResponse{
		InteractionId: interaction.ID,
		Tool:          string(interaction.Tool),
		Response:      interaction.Response,
		Trigger:       interaction.Trigger,
		Advice:        interaction.Advice,
	}
}

package api

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ToolInfo struct {
	Kind        string `json:"kind"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type ListToolsResponse struct {
	Tools          []ToolInfo `json:"tools"`
	DealStructures []string   `json:"deal_structures"`
}

// ToolRequest carries the form fields of every tool. Only the fields of the
// requested tool are used. Slider and number inputs left unset take the form
// defaults.
type ToolRequest struct {
	FundName        string `json:"fund_name,omitempty"`
	CompetitionData string `json:"competition_data,omitempty"`

	LPConversation string `json:"lp_conversation,omitempty"`

	LPHistory string `json:"lp_history,omitempty"`

	DealStructure   string           `json:"deal_structure,omitempty"`
	TotalFund       *decimal.Decimal `json:"total_fund,omitempty"`
	CarryPercentage *int             `json:"carry_percentage,omitempty"`

	TotalAllocation *decimal.Decimal `json:"total_allocation,omitempty"`
	VintageYears    string           `json:"vintage_years,omitempty"`

	Scenario          string `json:"scenario,omitempty"`
	CompetitorStyle   string `json:"competitor_style,omitempty"`
	Tone              string `json:"tone,omitempty"`
	Expertise         *int   `json:"expertise,omitempty"`
	UserExperience    *int   `json:"user_experience,omitempty"`
	AdditionalContext string `json:"additional_context,omitempty"`
	DetectEmotion     bool   `json:"detect_emotion,omitempty"`
}

type ToolResponse struct {
	InteractionId uuid.UUID `json:"interaction_id"`
	Tool          string    `json:"tool"`
	Response      string    `json:"response"`
	Trigger       string    `json:"trigger,omitempty"`
	Advice        []string  `json:"advice,omitempty"`
}

type FollowUpRequest struct {
	Context ToolRequest `json:"context"`
	Reply   string      `json:"reply"`
}

type AdviceRequest struct {
	Tool string `schema:"tool,required"`
	Text string `schema:"text"`
}

type AdviceResponse struct {
	Trigger string   `json:"trigger,omitempty"`
	Advice  []string `json:"advice"`
}

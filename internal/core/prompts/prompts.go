package prompts

import (
	"errors"
	"fmt"
	"strings"
	"text/template"

	"fundraise-backend/internal/core/types"
)

var ErrUnknownTool = errors.New("unknown tool kind")

const competitiveTrackingPrompt = `Analyze the competitive landscape for {{ .FundName }} compared to the following competitors: {{ .CompetitionData }}. Provide a benchmark of performance.`

const sentimentAnalysisPrompt = `Analyze the sentiment of the following LP conversation and detect any signs of hesitation or enthusiasm: {{ .LPConversation }}`

const pitchPersonalizationPrompt = `Personalize a fundraising pitch for an LP with the following investment history and preferences: {{ .LPHistory }}. Provide a tailored message.`

const carryCalculationPrompt = `Calculate the carried interest for a {{ .DealStructure }} deal structure with a total fund size of ${{ .TotalFund }} and a carry percentage of {{ .CarryPercentage }}%. Provide a detailed breakdown of the potential carried interest.`

const vintageDiversificationPrompt = `Advise on how to optimize vintage diversification for a total fund allocation of ${{ .TotalAllocation }} with the following vintage years and allocations: {{ .VintageYears }}. Provide suggestions for better diversification.`

// EmotionDetectionClause is appended to simulation prompts when emotion
// detection is enabled.
const EmotionDetectionClause = `After your reply, add a final line starting with "Detected Emotion:" that names the dominant emotion your character is conveying and how the prospect is likely to react to it.`

const salesSimulationPrompt = `You are role-playing a sales representative from a competing fund in a practice fundraising conversation.
Scenario: {{ .Scenario }}
Competitor Style: {{ .CompetitorStyle }}
Tone: {{ .Tone }}
Competitor Expertise Level: {{ .Expertise }}/10
User Experience Level: {{ .UserExperience }}/10
Stay in character and deliver your pitch to the prospect. Match the sophistication of your arguments to the expertise level and make the challenge appropriate for the user's experience level.
{{- if .AdditionalContext }}
Additional Context: {{ .AdditionalContext }}
{{- end }}
{{- if .DetectEmotion }}
` + EmotionDetectionClause + `
{{- end }}`

var templates = map[types.ToolKind]*template.Template{
	types.CompetitiveTracking:    template.Must(template.New("competitiveTracking").Parse(competitiveTrackingPrompt)),
	types.SentimentAnalysis:      template.Must(template.New("sentimentAnalysis").Parse(sentimentAnalysisPrompt)),
	types.PitchPersonalization:   template.Must(template.New("pitchPersonalization").Parse(pitchPersonalizationPrompt)),
	types.CarryCalculation:       template.Must(template.New("carryCalculation").Parse(carryCalculationPrompt)),
	types.VintageDiversification: template.Must(template.New("vintageDiversification").Parse(vintageDiversificationPrompt)),
	types.SalesSimulation:        template.Must(template.New("salesSimulation").Parse(salesSimulationPrompt)),
}

// Build renders the prompt for sc.Tool. Fields are interpolated as given:
// empty strings stay empty and nothing is validated.
func Build(sc types.ScenarioContext) (string, error) {
	tmpl, ok := templates[sc.Tool]
	if !ok {
		return "", fmt.Errorf("%w: '%s'", ErrUnknownTool, sc.Tool)
	}
	return render(tmpl, sc)
}

func render(tmpl *template.Template, data any) (string, error) {
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("error rendering %s prompt: %w", tmpl.Name(), err)
	}
	return b.String(), nil
}

package prompts

import (
	"fmt"
	"text/template"

	"fundraise-backend/internal/core/types"
)

type followUpPromptFields struct {
	Reply           string
	Scenario        string
	CompetitorStyle string
}

const followUpPrompt = `The prospect has responded to your pitch with the following reply:
{{ .Reply }}
Continue the practice conversation in the scenario: {{ .Scenario }}. Stay in character as a competitor with a {{ .CompetitorStyle }} style, react to the reply directly and address any objections it raises.`

var followUpPromptTmpl = template.Must(template.New("followUp").Parse(followUpPrompt))

// BuildFollowUp renders the second-round prompt of a sales simulation. Only
// the scenario and competitor style of the submitted context are carried over.
func BuildFollowUp(sc types.ScenarioContext, reply string) (string, error) {
	if sc.Tool != types.SalesSimulation {
		return "", fmt.Errorf("%w: follow-up is not supported for '%s'", ErrUnknownTool, sc.Tool)
	}
	return render(followUpPromptTmpl, followUpPromptFields{
		Reply:           reply,
		Scenario:        sc.Scenario,
		CompetitorStyle: sc.CompetitorStyle,
	})
}

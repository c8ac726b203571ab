package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"fundraise-backend/internal/core/advisory"
	"fundraise-backend/internal/core/llms"
	"fundraise-backend/internal/core/prompts"
	"fundraise-backend/internal/core/sampler"
	"fundraise-backend/internal/core/types"

	"github.com/google/uuid"
)

var ErrFollowUpUnsupported = errors.New("follow-up is only supported for sales simulations")

// Interaction is the rendered result of one submission. It is never stored.
type Interaction struct {
	ID       uuid.UUID
	Tool     types.ToolKind
	Prompt   string
	Response string
	Trigger  string
	Advice   []string
}

type Assistant struct {
	llm       llms.LLM
	model     string
	rules     advisory.RuleBook
	sampling  sampler.Options
	newPicker func() sampler.Picker
}

type Option func(*Assistant)

func WithSampling(opts sampler.Options) Option {
	return func(a *Assistant) {
		a.sampling = opts
	}
}

func WithPicker(newPicker func() sampler.Picker) Option {
	return func(a *Assistant) {
		a.newPicker = newPicker
	}
}

func NewAssistant(llm llms.LLM, model string, rules advisory.RuleBook, opts ...Option) *Assistant {
	a := &Assistant{
		llm:      llm,
		model:    model,
		rules:    rules,
		sampling: sampler.Options{Count: sampler.DefaultCount, Policy: sampler.ShortCircuit},
		newPicker: func() sampler.Picker {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Submit runs one interaction: build the prompt, generate (sampling for
// simulations) and annotate the response with advice. A failed generation
// returns an error wrapping llms.ErrGenerationFailed and no interaction.
func (a *Assistant) Submit(ctx context.Context, sc types.ScenarioContext) (*Interaction, error) {
	prompt, err := prompts.Build(sc)
	if err != nil {
		return nil, err
	}

	var text string
	if sc.Tool == types.SalesSimulation {
		text, err = sampler.New(a.llm, a.newPicker(), a.sampling).Sample(ctx, prompt, a.model)
	} else {
		text, err = a.llm.Generate(ctx, prompt, a.model)
	}
	if err != nil {
		return nil, llms.AsGenerationError(err)
	}

	interaction := &Interaction{
		ID:       uuid.New(),
		Tool:     sc.Tool,
		Prompt:   prompt,
		Response: text,
	}

	if set, ok := a.rules[sc.Tool]; ok {
		rule := advisory.Match(text, set)
		interaction.Trigger = rule.Trigger
		interaction.Advice = rule.Advice
	}

	slog.Info("interaction completed", "interaction_id", interaction.ID, "tool", sc.Tool, "trigger", interaction.Trigger)
	return interaction, nil
}

// FollowUp continues a sales simulation with the user's reply. A blank reply
// skips the round entirely and returns a nil interaction and nil error.
func (a *Assistant) FollowUp(ctx context.Context, sc types.ScenarioContext, reply string) (*Interaction, error) {
	if sc.Tool != types.SalesSimulation {
		return nil, fmt.Errorf("%w: got '%s'", ErrFollowUpUnsupported, sc.Tool)
	}
	if strings.TrimSpace(reply) == "" {
		return nil, nil
	}

	prompt, err := prompts.BuildFollowUp(sc, reply)
	if err != nil {
		return nil, err
	}

	text, err := a.llm.Generate(ctx, prompt, a.model)
	if err != nil {
		return nil, llms.AsGenerationError(err)
	}

	interaction := &Interaction{
		ID:       uuid.New(),
		Tool:     sc.Tool,
		Prompt:   prompt,
		Response: text,
	}
	slog.Info("follow-up completed", "interaction_id", interaction.ID)
	return interaction, nil
}

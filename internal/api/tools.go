package api

import (
	"context"
	"errors"
	"net/http"

	"fundraise-backend/internal/chat"
	"fundraise-backend/internal/core/advisory"
	"fundraise-backend/internal/core/llms"
	"fundraise-backend/internal/core/types"
	"fundraise-backend/pkg/api"

	"github.com/go-chi/chi/v5"
)

type Assistant interface {
	Submit(ctx context.Context, sc types.ScenarioContext) (*chat.Interaction, error)
	FollowUp(ctx context.Context, sc types.ScenarioContext, reply string) (*chat.Interaction, error)
}

type ToolService struct {
	assistant Assistant
	rules     advisory.RuleBook
}

func NewToolService(assistant Assistant, rules advisory.RuleBook) *ToolService {
	return &ToolService{assistant: assistant, rules: rules}
}

func (s *ToolService) AddRoutes(r chi.Router) {
	r.Get("/health", RestHandler(func(r *http.Request) (any, error) { return nil, nil }))
	r.Route("/tools", func(r chi.Router) {
		r.Get("/", RestHandler(s.ListTools))
		r.Post("/{tool_kind}", RestHandler(s.RunTool))
	})
	r.Post("/simulations/follow-up", RestHandler(s.FollowUp))
	r.Get("/advice", RestHandler(s.GetAdvice))
}

func (s *ToolService) ListTools(r *http.Request) (any, error) {
	tools := make([]api.ToolInfo, 0, len(types.Catalog))
	for _, info := range types.Catalog {
		tools = append(tools, api.ToolInfo{
			Kind:        string(info.Kind),
			Title:       info.Title,
			Description: info.Description,
		})
	}
	return api.ListToolsResponse{Tools: tools, DealStructures: types.DealStructures}, nil
}

func (s *ToolService) RunTool(r *http.Request) (any, error) {
	kind, err := URLParamToolKind(r, "tool_kind")
	if err != nil {
		return nil, err
	}

	req, err := ParseRequest[api.ToolRequest](r)
	if err != nil {
		return nil, err
	}

	sc, err := ToScenarioContext(kind, req)
	if err != nil {
		return nil, err
	}

	interaction, err := s.assistant.Submit(r.Context(), sc)
	if err != nil {
		return nil, interactionError(err)
	}

	return toToolResponse(interaction), nil
}

func (s *ToolService) FollowUp(r *http.Request) (any, error) {
	req, err := ParseRequest[api.FollowUpRequest](r)
	if err != nil {
		return nil, err
	}

	sc, err := ToScenarioContext(types.SalesSimulation, req.Context)
	if err != nil {
		return nil, err
	}

	interaction, err := s.assistant.FollowUp(r.Context(), sc, req.Reply)
	if err != nil {
		return nil, interactionError(err)
	}
	if interaction == nil {
		return NoContent, nil
	}

	return toToolResponse(interaction), nil
}

func (s *ToolService) GetAdvice(r *http.Request) (any, error) {
	req, err := ParseRequestQueryParams[api.AdviceRequest](r)
	if err != nil {
		return nil, err
	}

	kind, ok := types.ParseToolKind(req.Tool)
	if !ok {
		return nil, CodedErrorf(http.StatusBadRequest, "unknown tool '%s'", req.Tool)
	}

	set, ok := s.rules[kind]
	if !ok {
		return nil, CodedErrorf(http.StatusNotFound, "no advisory rules configured for '%s'", kind)
	}

	rule := advisory.Match(req.Text, set)
	return api.AdviceResponse{Trigger: rule.Trigger, Advice: rule.Advice}, nil
}

func interactionError(err error) error {
	switch {
	case errors.Is(err, llms.ErrGenerationFailed):
		return CodedError(http.StatusBadGateway, err)
	case errors.Is(err, chat.ErrFollowUpUnsupported):
		return CodedError(http.StatusUnprocessableEntity, err)
	default:
		return CodedError(http.StatusInternalServerError, err)
	}
}

package main

import (
	"bufio"
	"fmt"
	"strings"

	"fundraise-backend/internal/api"
	"fundraise-backend/internal/core/types"
	papi "fundraise-backend/pkg/api"

	"github.com/schollz/progressbar/v3"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// toolFlags collects the form fields from the command line. Sliders and
// amounts always carry a value, defaulting to the form defaults.
type toolFlags struct {
	req papi.ToolRequest

	totalFund       string
	totalAllocation string
	carry           int
	expertise       int
	experience      int
}

func (f *toolFlags) request() (papi.ToolRequest, error) {
	req := f.req

	totalFund, err := decimal.NewFromString(f.totalFund)
	if err != nil {
		return req, fmt.Errorf("invalid --total-fund '%s': %w", f.totalFund, err)
	}
	totalAllocation, err := decimal.NewFromString(f.totalAllocation)
	if err != nil {
		return req, fmt.Errorf("invalid --total-allocation '%s': %w", f.totalAllocation, err)
	}

	req.TotalFund = &totalFund
	req.TotalAllocation = &totalAllocation
	req.CarryPercentage = &f.carry
	req.Expertise = &f.expertise
	req.UserExperience = &f.experience
	return req, nil
}

func trackCmd(a *app) *cobra.Command {
	f := &toolFlags{}
	c := toolCmd(a, types.CompetitiveTracking, "track", f)
	c.Flags().StringVar(&f.req.FundName, "fund-name", "", "your fund's name")
	c.Flags().StringVar(&f.req.CompetitionData, "competition-data", "", "data about competing funds")
	return c
}

func sentimentCmd(a *app) *cobra.Command {
	f := &toolFlags{}
	c := toolCmd(a, types.SentimentAnalysis, "sentiment", f)
	c.Flags().StringVar(&f.req.LPConversation, "conversation", "", "LP email or conversation text")
	return c
}

func pitchCmd(a *app) *cobra.Command {
	f := &toolFlags{}
	c := toolCmd(a, types.PitchPersonalization, "pitch", f)
	c.Flags().StringVar(&f.req.LPHistory, "history", "", "LP investment history and preferences")
	return c
}

func carryCmd(a *app) *cobra.Command {
	f := &toolFlags{}
	c := toolCmd(a, types.CarryCalculation, "carry", f)
	c.Flags().StringVar(&f.req.DealStructure, "deal-structure", types.DealStructures[0], "one of "+strings.Join(types.DealStructures, ", "))
	c.Flags().StringVar(&f.totalFund, "total-fund", types.MinFundAmount.String(), "total fund size")
	c.Flags().IntVar(&f.carry, "carry", types.DefaultCarryPercentage, fmt.Sprintf("carry percentage (%d-%d)", types.MinCarryPercentage, types.MaxCarryPercentage))
	return c
}

func vintageCmd(a *app) *cobra.Command {
	f := &toolFlags{}
	c := toolCmd(a, types.VintageDiversification, "vintage", f)
	c.Flags().StringVar(&f.totalAllocation, "total-allocation", types.MinFundAmount.String(), "total allocation amount")
	c.Flags().StringVar(&f.req.VintageYears, "vintage-years", "", "preferred vintage years, comma separated")
	return c
}

func simulateCmd(a *app) *cobra.Command {
	f := &toolFlags{}
	c := toolCmd(a, types.SalesSimulation, "simulate", f)
	c.Flags().StringVar(&f.req.Scenario, "scenario", "", "sales scenario to practice")
	c.Flags().StringVar(&f.req.CompetitorStyle, "competitor-style", "", "competitor negotiation style")
	c.Flags().StringVar(&f.req.Tone, "tone", "", "competitor tone")
	c.Flags().IntVar(&f.expertise, "expertise", types.DefaultLevel, fmt.Sprintf("competitor expertise level (%d-%d)", types.MinLevel, types.MaxLevel))
	c.Flags().IntVar(&f.experience, "experience", types.DefaultLevel, fmt.Sprintf("your experience level (%d-%d)", types.MinLevel, types.MaxLevel))
	c.Flags().StringVar(&f.req.AdditionalContext, "context", "", "additional context for the simulation")
	c.Flags().BoolVar(&f.req.DetectEmotion, "detect-emotion", false, "ask the competitor to name its emotional state")
	return c
}

func toolCmd(a *app, kind types.ToolKind, use string, f *toolFlags) *cobra.Command {
	title := titleOf(kind)
	f.totalFund = types.MinFundAmount.String()
	f.totalAllocation = types.MinFundAmount.String()
	f.carry = types.DefaultCarryPercentage
	f.expertise = types.DefaultLevel
	f.experience = types.DefaultLevel

	return &cobra.Command{
		Use:   use,
		Short: title,
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			req, err := f.request()
			if err != nil {
				return err
			}
			sc, err := api.ToScenarioContext(kind, req)
			if err != nil {
				return err
			}
			return a.run(c, title, sc)
		},
	}
}

func (a *app) run(c *cobra.Command, title string, sc types.ScenarioContext) error {
	var onGeneration func()
	var bar *progressbar.ProgressBar
	if sc.Tool == types.SalesSimulation {
		bar = progressbar.NewOptions(a.cfg.SampleCount,
			progressbar.OptionSetWriter(a.progress),
			progressbar.OptionSetDescription("generating"),
			progressbar.OptionSetWidth(30),
			progressbar.OptionClearOnFinish(),
		)
		onGeneration = func() { _ = bar.Add(1) }
	}

	assistant, err := a.connect(c.Context(), a.cfg, onGeneration)
	if err != nil {
		return err
	}

	interaction, err := assistant.Submit(c.Context(), sc)
	if err != nil {
		if bar != nil {
			_ = bar.Clear()
		}
		a.renderer.Error(err)
		return errReported
	}
	if bar != nil {
		_ = bar.Finish()
	}
	a.renderer.Interaction(title, interaction)

	if sc.Tool != types.SalesSimulation {
		return nil
	}
	return a.followUp(c, assistant, sc)
}

func (a *app) followUp(c *cobra.Command, assistant api.Assistant, sc types.ScenarioContext) error {
	fmt.Fprint(a.out, "\nYour reply (blank line to finish): ")

	reader := bufio.NewReader(a.in)
	reply, err := reader.ReadString('\n')
	if err != nil && reply == "" {
		return nil
	}
	reply = strings.TrimRight(reply, "\r\n")

	interaction, err := assistant.FollowUp(c.Context(), sc, reply)
	if err != nil {
		a.renderer.Error(err)
		return errReported
	}
	if interaction == nil {
		return nil
	}
	a.renderer.Interaction("Follow-up Response", interaction)
	return nil
}

func titleOf(kind types.ToolKind) string {
	for _, info := range types.Catalog {
		if info.Kind == kind {
			return info.Title
		}
	}
	return string(kind)
}

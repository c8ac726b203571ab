package sampler

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"fundraise-backend/internal/core/llms"
	"fundraise-backend/internal/core/utils"
)

type Policy string

const (
	// ShortCircuit returns the first failure and issues no further calls.
	ShortCircuit Policy = "short-circuit"
	// CollectSuccesses drops failed calls and only fails if every call fails.
	CollectSuccesses Policy = "collect-successes"
)

const DefaultCount = 3

func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case ShortCircuit, "":
		return ShortCircuit, nil
	case CollectSuccesses:
		return CollectSuccesses, nil
	default:
		return "", fmt.Errorf("unknown sample policy '%s'", s)
	}
}

// Picker chooses an index in [0, n). *rand.Rand satisfies it.
type Picker interface {
	Intn(n int) int
}

type Options struct {
	Count   int
	Policy  Policy
	Workers int

	// OnGeneration is called after every completed call, successful or not.
	OnGeneration func()
}

type Sampler struct {
	llm    llms.LLM
	picker Picker
	opts   Options
}

func New(llm llms.LLM, picker Picker, opts Options) *Sampler {
	if opts.Policy == "" {
		opts.Policy = ShortCircuit
	}
	return &Sampler{llm: llm, picker: picker, opts: opts}
}

// Sample issues prompt Count times and returns one of the generated texts,
// chosen uniformly at random.
func (s *Sampler) Sample(ctx context.Context, prompt, model string) (string, error) {
	if s.opts.Count < 1 {
		return "", fmt.Errorf("sample count must be positive, got %d", s.opts.Count)
	}

	var (
		texts []string
		err   error
	)
	if s.opts.Workers > 1 {
		texts, err = s.generateParallel(ctx, prompt, model)
	} else {
		texts, err = s.generateSequential(ctx, prompt, model)
	}
	if err != nil {
		return "", err
	}

	choice := s.picker.Intn(len(texts))
	slog.Debug("selected sampled response", "choice", choice, "candidates", len(texts))
	return texts[choice], nil
}

func (s *Sampler) generateSequential(ctx context.Context, prompt, model string) ([]string, error) {
	texts := make([]string, 0, s.opts.Count)
	var firstErr error

	for i := 0; i < s.opts.Count; i++ {
		text, err := s.llm.Generate(ctx, prompt, model)
		s.completed()
		if err != nil {
			if s.opts.Policy == ShortCircuit {
				return nil, err
			}
			slog.Warn("dropping failed sample", "attempt", i, "error", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		texts = append(texts, text)
	}

	if len(texts) == 0 {
		return nil, firstErr
	}
	return texts, nil
}

type indexed struct {
	index int
	text  string
	err   error
}

func (s *Sampler) generateParallel(ctx context.Context, prompt, model string) ([]string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	inputs := make([]string, s.opts.Count)
	for i := range inputs {
		inputs[i] = prompt
	}

	completed := make(chan utils.CompletedTask[string], s.opts.Count)
	utils.RunInPool(func(p string) (string, error) {
		return s.llm.Generate(ctx, p, model)
	}, inputs, completed, s.opts.Workers)

	results := make([]indexed, 0, s.opts.Count)
	var firstErr error
	for task := range completed {
		s.completed()
		if task.Error != nil && firstErr == nil {
			firstErr = task.Error
			if s.opts.Policy == ShortCircuit {
				// Calls still queued fail fast on the cancelled context.
				cancel()
			}
		}
		results = append(results, indexed{index: task.Index, text: task.Result, err: task.Error})
	}

	if firstErr != nil && s.opts.Policy == ShortCircuit {
		return nil, firstErr
	}

	// Completion order depends on scheduling, call order does not.
	slices.SortFunc(results, func(a, b indexed) int { return a.index - b.index })

	texts := make([]string, 0, len(results))
	for _, res := range results {
		if res.err != nil {
			slog.Warn("dropping failed sample", "attempt", res.index, "error", res.err)
			continue
		}
		texts = append(texts, res.text)
	}

	if len(texts) == 0 {
		return nil, firstErr
	}
	return texts, nil
}

func (s *Sampler) completed() {
	if s.opts.OnGeneration != nil {
		s.opts.OnGeneration()
	}
}

package advisory

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"fundraise-backend/internal/core/types"

	"gopkg.in/yaml.v2"
)

type Rule struct {
	Trigger string   `yaml:"trigger"`
	Advice  []string `yaml:"advice"`
}

// RuleSet is an ordered list of rules plus the advice used when none match.
type RuleSet struct {
	Rules   []Rule   `yaml:"rules"`
	Default []string `yaml:"default"`
}

type RuleBook map[types.ToolKind]RuleSet

//go:embed rules.yaml
var defaultRules []byte

// Match returns the first rule whose trigger occurs in text, ignoring case.
// If no trigger occurs the returned rule has an empty trigger and the
// default advice.
func Match(text string, set RuleSet) Rule {
	lowered := strings.ToLower(text)
	for _, rule := range set.Rules {
		if strings.Contains(lowered, rule.Trigger) {
			return rule
		}
	}
	return Rule{Advice: set.Default}
}

func Advise(text string, set RuleSet) []string {
	return Match(text, set).Advice
}

func DefaultRuleBook() RuleBook {
	book, err := ParseRuleBook(defaultRules)
	if err != nil {
		panic(fmt.Sprintf("invalid embedded advisory rules: %v", err))
	}
	return book
}

// LoadRuleBook reads a rule book from path, or returns the embedded book if
// path is empty.
func LoadRuleBook(path string) (RuleBook, error) {
	if path == "" {
		return DefaultRuleBook(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading advisory rules file: %w", err)
	}

	book, err := ParseRuleBook(data)
	if err != nil {
		return nil, fmt.Errorf("error parsing advisory rules file '%s': %w", path, err)
	}
	return book, nil
}

func ParseRuleBook(data []byte) (RuleBook, error) {
	var raw map[string]RuleSet
	if err := yaml.UnmarshalStrict(data, &raw); err != nil {
		return nil, err
	}

	book := make(RuleBook, len(raw))
	for name, set := range raw {
		kind, ok := types.ParseToolKind(name)
		if !ok {
			return nil, fmt.Errorf("unknown tool kind '%s'", name)
		}

		for i := range set.Rules {
			trigger := strings.ToLower(strings.TrimSpace(set.Rules[i].Trigger))
			if trigger == "" {
				return nil, fmt.Errorf("rule %d for '%s' has an empty trigger", i, name)
			}
			if len(set.Rules[i].Advice) == 0 {
				return nil, fmt.Errorf("rule '%s' for '%s' has no advice", trigger, name)
			}
			set.Rules[i].Trigger = trigger
		}
		if len(set.Default) == 0 {
			return nil, fmt.Errorf("rule set for '%s' has no default advice", name)
		}

		book[kind] = set
	}

	return book, nil
}

// Package rules implements declarative route rules for navigation guarding.
// A rule file is an ordered list of patterns with an allow/deny action;
// evaluation is first match wins, falling through to a default action.
package rules

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Action is the outcome a rule assigns to a matching route.
type Action string

const (
	Allow Action = "allow"
	Deny  Action = "deny"
)

// Rule matches destination routes against a pattern.
// Pattern syntax: *x* for contains, *x for suffix, x* for prefix,
// exact match otherwise. Matching is case-insensitive.
type Rule struct {
	Pattern string `yaml:"pattern"`
	Action  Action `yaml:"action"`
	Reason  string `yaml:"reason"`
}

// Config is the on-disk shape of a rule file.
type Config struct {
	Default Action `yaml:"default"`
	Rules   []Rule `yaml:"rules"`
}

// Decision is the result of evaluating a route against a rule set.
type Decision struct {
	Allowed bool
	Pattern string
	Reason  string
}

// Set is a compiled, immutable rule set.
type Set struct {
	rules     []Rule
	defaultTo Action
}

// Load reads and compiles a rule file. An empty path or a missing file
// yields an empty set that allows everything.
func Load(path string) (*Set, error) {
	if path == "" {
		return Compile(&Config{})
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Compile(&Config{})
		}
		return nil, fmt.Errorf("rules: read %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("rules: parse %q: %w", path, err)
	}
	return Compile(&cfg)
}

// Compile validates a Config and produces a Set.
func Compile(cfg *Config) (*Set, error) {
	def := cfg.Default
	if def == "" {
		def = Allow
	}
	if def != Allow && def != Deny {
		return nil, fmt.Errorf("rules: invalid default action %q", cfg.Default)
	}
	for i, r := range cfg.Rules {
		if r.Action != Allow && r.Action != Deny {
			return nil, fmt.Errorf("rules: rule %d: invalid action %q", i, r.Action)
		}
		if r.Pattern == "" {
			return nil, fmt.Errorf("rules: rule %d: empty pattern", i)
		}
	}
	return &Set{rules: cfg.Rules, defaultTo: def}, nil
}

// Evaluate checks a destination route against the set, first match wins.
func (s *Set) Evaluate(route string) Decision {
	for _, r := range s.rules {
		if matchPattern(r.Pattern, route) {
			reason := r.Reason
			if reason == "" {
				reason = fmt.Sprintf("matched %s rule %q", r.Action, r.Pattern)
			}
			return Decision{
				Allowed: r.Action == Allow,
				Pattern: r.Pattern,
				Reason:  reason,
			}
		}
	}
	return Decision{Allowed: s.defaultTo == Allow, Reason: "default " + string(s.defaultTo)}
}

// Len returns the number of rules in the set.
func (s *Set) Len() int {
	return len(s.rules)
}

// matchPattern checks a route against a pattern.
// *x* — contains, *x — suffix, x* — prefix, exact otherwise.
// Matching is case-insensitive.
func matchPattern(pattern, route string) bool {
	if pattern == "*" {
		return true
	}

	lowerRoute := strings.ToLower(route)
	lowerPattern := strings.ToLower(pattern)

	if strings.HasPrefix(lowerPattern, "*") && strings.HasSuffix(lowerPattern, "*") {
		inner := lowerPattern[1 : len(lowerPattern)-1]
		return strings.Contains(lowerRoute, inner)
	}

	if strings.HasPrefix(lowerPattern, "*") {
		return strings.HasSuffix(lowerRoute, lowerPattern[1:])
	}

	if strings.HasSuffix(lowerPattern, "*") {
		return strings.HasPrefix(lowerRoute, lowerPattern[:len(lowerPattern)-1])
	}

	return lowerRoute == lowerPattern
}

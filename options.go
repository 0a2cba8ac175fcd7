package waygate

import "github.com/sirupsen/logrus"

// Option configures a Pipeline at creation time.
type Option func(*pipelineConfig)

type pipelineConfig struct {
	capacity    int
	logger      *logrus.Logger
	journalPath string
	rulesPath   string
	ruleReload  bool
	fallback    FallbackPolicy
	pages       PageStack
}

// WithCapacity sets the history buffer capacity (default 50).
func WithCapacity(n int) Option {
	return func(c *pipelineConfig) { c.capacity = n }
}

// WithLogger sets the logger for transition diagnostics. Transition
// logging still starts disabled until SetLogging(true).
func WithLogger(l *logrus.Logger) Option {
	return func(c *pipelineConfig) { c.logger = l }
}

// WithJournal enables the persistent transition journal at the given
// SQLite database path.
func WithJournal(path string) Option {
	return func(c *pipelineConfig) { c.journalPath = path }
}

// WithRules loads a declarative route-rule file and registers it as the
// first guard.
func WithRules(path string) Option {
	return func(c *pipelineConfig) { c.rulesPath = path }
}

// WithRuleReload watches the route-rule file and hot-swaps the rule set
// on change. Only meaningful together with WithRules.
func WithRuleReload() Option {
	return func(c *pipelineConfig) { c.ruleReload = true }
}

// WithFallback sets the policy for transition kinds the host does not
// support (default FallbackFail).
func WithFallback(policy FallbackPolicy) Option {
	return func(c *pipelineConfig) { c.fallback = policy }
}

// WithPageStack provides the host's page-stack introspection, used to
// resolve the origin route and BackTo targets.
func WithPageStack(ps PageStack) Option {
	return func(c *pipelineConfig) { c.pages = ps }
}

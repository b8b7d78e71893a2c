package segment

import "log/slog"

const (
	// DefaultBreakOutcome is the sentence outcome label meaning "break here".
	DefaultBreakOutcome = "T"

	// DefaultSplitOutcome is the token outcome label meaning "split here".
	DefaultSplitOutcome = "T"
)

// BreakFilter reports whether an accepted sentence break at candidate is
// acceptable, given the offset just past the previous accepted break.
type BreakFilter func(text string, from, candidate int) bool

// Option configures a SentenceDetector or Tokenizer. Options that do not
// apply to a detector are ignored by it.
type Option func(*config)

type config struct {
	breakFilter  BreakFilter
	breakOutcome string
	splitOutcome string
	alphaNumeric bool
	logger       *slog.Logger
}

func defaultConfig() config {
	return config{
		breakFilter:  acceptAll,
		breakOutcome: DefaultBreakOutcome,
		splitOutcome: DefaultSplitOutcome,
		logger:       slog.Default(),
	}
}

func newConfig(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func acceptAll(string, int, int) bool { return true }

// WithBreakFilter sets the predicate that may veto sentence breaks the
// classifier accepted (default: accept everything).
func WithBreakFilter(f BreakFilter) Option {
	return func(c *config) {
		if f != nil {
			c.breakFilter = f
		}
	}
}

// WithBreakOutcome sets the sentence outcome label that means "break"
// (default: "T").
func WithBreakOutcome(label string) Option {
	return func(c *config) {
		if label != "" {
			c.breakOutcome = label
		}
	}
}

// WithSplitOutcome sets the token outcome label that means "split"
// (default: "T").
func WithSplitOutcome(label string) Option {
	return func(c *config) {
		if label != "" {
			c.splitOutcome = label
		}
	}
}

// WithAlphaNumericOptimization makes the tokenizer emit purely alphanumeric
// runs without consulting the classifier (default: false).
func WithAlphaNumericOptimization(enabled bool) Option {
	return func(c *config) {
		c.alphaNumeric = enabled
	}
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

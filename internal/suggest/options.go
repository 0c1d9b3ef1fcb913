package suggest

import "github.com/rs/zerolog"

// DefaultMaxRetries is the number of re-queries after the initial attempt.
const DefaultMaxRetries = 2

type options struct {
	wordCount     int
	maxRetries    int
	historyWindow int
	log           zerolog.Logger
	pub           EventPublisher
}

func defaultOptions() options {
	return options{
		wordCount:     DefaultWordCount,
		maxRetries:    DefaultMaxRetries,
		historyWindow: DefaultHistoryWindow,
		log:           zerolog.Nop(),
		pub:           noopPublisher{},
	}
}

// Option customizes a Generator or Session.
type Option func(*options)

// WithWordCount sets the candidate set size (1..MaxWordCount).
func WithWordCount(n int) Option { return func(o *options) { o.wordCount = n } }

// WithMaxRetries sets how many times a short predictor yield is re-queried.
func WithMaxRetries(n int) Option {
	return func(o *options) {
		if n < 0 {
			n = 0
		}
		o.maxRetries = n
	}
}

// WithHistoryWindow sets how many recent chat messages enter the context.
func WithHistoryWindow(n int) Option { return func(o *options) { o.historyWindow = n } }

// WithLogger sets the logger used for predictor failures and lifecycle logs.
func WithLogger(l zerolog.Logger) Option { return func(o *options) { o.log = l } }

// WithEventPublisher routes session events to p. Nil keeps the no-op default.
func WithEventPublisher(p EventPublisher) Option {
	return func(o *options) {
		if p != nil {
			o.pub = p
		}
	}
}

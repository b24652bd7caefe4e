package coordinator

import "time"

const (
	defaultMaxAttempts     = 5
	defaultBaseDelay       = 500 * time.Millisecond
	defaultMaxDelay        = 15 * time.Second
	defaultPollInterval    = 2 * time.Second
	defaultConfirmTimeout  = 3 * time.Minute
	defaultActionRetention = time.Hour
)

// Config tunes retry, polling, and confirmation behavior.
type Config struct {
	// MaxAttempts caps submissions per action, counting retries of
	// transient failures.
	MaxAttempts int
	// BaseDelay seeds the exponential backoff between retries.
	BaseDelay time.Duration
	// MaxDelay caps a single backoff interval.
	MaxDelay time.Duration
	// PollInterval spaces status polls for a confirming action.
	PollInterval time.Duration
	// ConfirmTimeout bounds how long an action may stay non-terminal before
	// it fails locally with confirmation_timeout.
	ConfirmTimeout time.Duration
	// ActionRetention bounds how long a terminal action stays queryable
	// before it is evicted from the table.
	ActionRetention time.Duration
}

func (c Config) withDefaults() Config {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = defaultMaxAttempts
	}
	if c.BaseDelay <= 0 {
		c.BaseDelay = defaultBaseDelay
	}
	if c.MaxDelay <= 0 {
		c.MaxDelay = defaultMaxDelay
	}
	if c.PollInterval <= 0 {
		c.PollInterval = defaultPollInterval
	}
	if c.ConfirmTimeout <= 0 {
		c.ConfirmTimeout = defaultConfirmTimeout
	}
	if c.ActionRetention <= 0 {
		c.ActionRetention = defaultActionRetention
	}
	return c
}

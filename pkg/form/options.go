package form

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/formkit/pkg/reactive"
)

// SubmitFunc receives the field values of a sign-up form.
type SubmitFunc func(ctx context.Context, s Submission)

// SignInFunc performs a sign-in attempt.
type SignInFunc func(ctx context.Context, username, password string) SignInOutcome

// ResetFunc requests a password-reset email.
type ResetFunc func(ctx context.Context, username string) ResetOutcome

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithConfig sets timings and thresholds. Non-positive values fall back to
// the defaults.
func WithConfig(cfg Config) Option {
	return func(c *Controller) {
		c.cfg = cfg.withDefaults()
	}
}

// WithScheduler runs every stream callback on s. The controller does not
// close an injected scheduler. By default it owns a reactive.LoopScheduler.
func WithScheduler(s reactive.Scheduler) Option {
	return func(c *Controller) {
		if s != nil {
			c.base = s
		}
	}
}

// WithContext sets the parent context for callbacks and log records.
func WithContext(ctx context.Context) Option {
	return func(c *Controller) {
		if ctx != nil {
			c.parent = ctx
		}
	}
}

// WithMode sets the initial username mode.
func WithMode(mode UsernameMode) Option {
	return func(c *Controller) {
		if mode != nil {
			c.mode = mode
		}
	}
}

// WithSubmitHandler sets the sign-up completion.
func WithSubmitHandler(fn SubmitFunc) Option {
	return func(c *Controller) { c.onSubmit = fn }
}

// WithSignInHandler sets the sign-in callback.
func WithSignInHandler(fn SignInFunc) Option {
	return func(c *Controller) { c.signIn = fn }
}

// WithResetHandler sets the reset-password callback. Without it the sign-in
// form never enters the reset flow.
func WithResetHandler(fn ResetFunc) Option {
	return func(c *Controller) { c.reset = fn }
}

package form

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/formkit/pkg/async"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/statemachine"
)

// Edit replaces the value of field as the user typed it. Classification
// follows once the field has been quiet for its debounce interval, and from
// then on the field shows its error text.
func (c *Controller) Edit(field Field, value string) error {
	var err error
	if !c.do(func() {
		v, ok := c.values[field]
		if !ok {
			err = fmt.Errorf("%w: %s on %s", ErrUnsupportedField, field, c.variant)
			return
		}
		c.edited.Set(statusOwner(field))
		v.Set(value)
	}) {
		return ErrClosed
	}
	return err
}

func (c *Controller) SetFullname(v string) error      { return c.Edit(FieldFullname, v) }
func (c *Controller) SetUsername(v string) error      { return c.Edit(FieldUsername, v) }
func (c *Controller) SetPassword(v string) error      { return c.Edit(FieldPassword, v) }
func (c *Controller) SetPasswordAgain(v string) error { return c.Edit(FieldPasswordAgain, v) }

// SetInit applies the one-time configuration. It switches the username mode
// and placeholder, replaces the submit handler and prefills fields. A full
// name is ignored when the variant has no such field. Sign-in forms reject a
// submit handler with ErrNotSignUpForm.
func (c *Controller) SetInit(init Init) error {
	var err error
	if !c.do(func() {
		if c.initialized {
			err = ErrAlreadyInitialized
			return
		}
		if init.OnSubmit != nil && c.variant.IsSignIn() {
			err = ErrNotSignUpForm
			return
		}
		c.initialized = true

		if init.Mode != nil {
			c.mode = init.Mode
		}
		c.fields[FieldUsername].Placeholder = placeholderFor(c.mode)
		if init.OnSubmit != nil {
			c.onSubmit = init.OnSubmit
		}
		if init.Username != "" {
			c.values[FieldUsername].Set(init.Username)
		}
		if v, ok := c.values[FieldFullname]; ok && init.Fullname != "" {
			v.Set(init.Fullname)
		}
		c.log.DebugContext(c.ctx, "form initialized", slog.String("mode", c.mode.String()))
	}) {
		return ErrClosed
	}
	return err
}

// SetError overwrites inline error texts. The next settled status of a field
// replaces its override again.
func (c *Controller) SetError(o ErrorOverride) error {
	if !c.do(func() { c.applyOverrideLocked(o) }) {
		return ErrClosed
	}
	return nil
}

func (c *Controller) applyOverrideLocked(o ErrorOverride) {
	for f, msg := range map[Field]*string{
		FieldFullname: o.Fullname,
		FieldUsername: o.Username,
		FieldPassword: o.Password,
	} {
		if msg == nil {
			continue
		}
		if fs, ok := c.fields[f]; ok {
			fs.Error = *msg
		}
	}
}

// RequestReset switches a sign-in form to the reset flow. It is a no-op when
// the flow is already requested.
func (c *Controller) RequestReset() error {
	if !c.variant.IsSignIn() {
		return ErrNotSignInForm
	}
	var err error
	if !c.do(func() {
		if c.phase.Is(PhaseResetRequested) {
			return
		}
		if ferr := c.phase.Fire(c.ctx, eventRequestReset, nil); ferr != nil {
			if statemachine.IsTransitionRejectedError(ferr) {
				err = ErrNoResetHandler
				return
			}
			err = fmt.Errorf("request reset: %w", ferr)
		}
	}) {
		return ErrClosed
	}
	return err
}

// CancelReset returns a sign-in form to editing.
func (c *Controller) CancelReset() error {
	if !c.variant.IsSignIn() {
		return ErrNotSignInForm
	}
	var err error
	if !c.do(func() {
		if ferr := c.phase.Fire(c.ctx, eventCancelReset, nil); ferr != nil {
			if statemachine.IsNoTransitionAvailableError(ferr) {
				err = ErrResetNotRequested
				return
			}
			err = fmt.Errorf("cancel reset: %w", ferr)
		}
	}) {
		return ErrClosed
	}
	return err
}

// Submit completes the form. Sign-up forms hand their values to the submit
// handler. Sign-in forms either sign in or, while a reset is requested,
// request the reset email.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	resetting := c.phase.Is(PhaseResetRequested)
	fn := c.onSubmit
	sub := Submission{
		Fullname:      c.valueLocked(FieldFullname),
		Username:      c.valueLocked(FieldUsername),
		Password:      c.valueLocked(FieldPassword),
		PasswordAgain: c.valueLocked(FieldPasswordAgain),
	}
	c.mu.Unlock()

	if c.variant.IsSignIn() {
		var err error
		if resetting {
			_, err = c.ResetPassword(ctx)
		} else {
			_, err = c.SignIn(ctx)
		}
		return err
	}

	if fn == nil {
		return ErrNoSubmitHandler
	}
	c.log.InfoContext(c.ctx, "form submitted")
	fn(ctx, sub)
	return nil
}

// SignIn calls the sign-in handler with the current credentials and shows
// the outcome as inline errors. A handler that panics or outlives
// ActionTimeout counts as SignInUnable.
func (c *Controller) SignIn(ctx context.Context) (SignInOutcome, error) {
	if !c.variant.IsSignIn() {
		return SignInUnable, ErrNotSignInForm
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return SignInUnable, ErrClosed
	}
	fn := c.signIn
	username := c.valueLocked(FieldUsername)
	password := c.valueLocked(FieldPassword)
	c.mu.Unlock()

	if fn == nil {
		return SignInUnable, ErrNoSignInHandler
	}

	start := time.Now()
	outcome, err := callBounded(ctx, c, func(ctx context.Context) SignInOutcome {
		return fn(ctx, username, password)
	})
	if err != nil {
		outcome = SignInUnable
		c.log.WarnContext(c.ctx, "sign-in handler failed", logger.Error(err))
	}
	c.log.InfoContext(c.ctx, "sign-in finished",
		logger.Outcome(outcome.String()),
		logger.Duration(time.Since(start)),
	)

	if !c.do(func() { c.applyOverrideLocked(outcome.overrides()) }) {
		return outcome, ErrClosed
	}
	return outcome, nil
}

// ResetPassword calls the reset handler for the current username, shows the
// outcome and returns the form to editing. It requires RequestReset first.
func (c *Controller) ResetPassword(ctx context.Context) (ResetOutcome, error) {
	if !c.variant.IsSignIn() {
		return ResetUnable, ErrNotSignInForm
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ResetUnable, ErrClosed
	}
	fn := c.reset
	requested := c.phase.Is(PhaseResetRequested)
	username := c.valueLocked(FieldUsername)
	c.mu.Unlock()

	switch {
	case fn == nil:
		return ResetUnable, ErrNoResetHandler
	case !requested:
		return ResetUnable, ErrResetNotRequested
	}

	start := time.Now()
	outcome, err := callBounded(ctx, c, func(ctx context.Context) ResetOutcome {
		return fn(ctx, username)
	})
	if err != nil {
		outcome = ResetUnable
		c.log.WarnContext(c.ctx, "reset handler failed", logger.Error(err))
	}
	c.log.InfoContext(c.ctx, "password reset finished",
		logger.Outcome(outcome.String()),
		logger.Duration(time.Since(start)),
	)

	if !c.do(func() {
		c.applyOverrideLocked(outcome.overrides())
		// the user may have cancelled while the handler ran
		if c.phase.Is(PhaseResetRequested) {
			_ = c.phase.Fire(c.ctx, eventResetDone, nil)
		}
	}) {
		return outcome, ErrClosed
	}
	return outcome, nil
}

// callBounded runs fn on its own goroutine bounded by ActionTimeout and the
// controller lifetime.
func callBounded[T any](ctx context.Context, c *Controller, fn func(context.Context) T) (T, error) {
	if ctx == nil {
		ctx = c.ctx
	}
	ctx, cancel := context.WithTimeout(ctx, c.cfg.ActionTimeout)
	defer cancel()
	stop := context.AfterFunc(c.ctx, cancel)
	defer stop()

	return async.Async(ctx, fn, func(ctx context.Context, fn func(context.Context) T) (T, error) {
		return fn(ctx), nil
	}).AwaitContext(ctx)
}

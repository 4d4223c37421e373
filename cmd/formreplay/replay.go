package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/samber/lo"

	"github.com/dmitrymomot/formkit/pkg/broadcast"
	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/reactive"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

// replayer drives one controller through a script on a virtual clock and
// writes every published state to out.
type replayer struct {
	script *Script
	cfg    form.Config
	out    *slog.Logger
	log    *slog.Logger
}

func (r *replayer) run(ctx context.Context) error {
	sched := reactive.NewManualScheduler(time.Time{})

	c, err := form.New(form.Variant(r.script.Form), r.options(ctx, sched)...)
	if err != nil {
		return err
	}
	defer c.Close()

	sub := c.Subscribe(ctx)
	defer sub.Close()

	if err := r.init(c); err != nil {
		return err
	}
	r.flush(sub)

	for i, step := range r.script.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.apply(ctx, c, sched, i+1, step)
		r.flush(sub)
	}
	return nil
}

func (r *replayer) options(ctx context.Context, sched reactive.Scheduler) []form.Option {
	mode, _ := form.ParseMode(r.script.Mode)
	if len(r.script.Taken) > 0 {
		mode = form.WithChecker(mode, form.UniquenessFunc(func(username string) bool {
			return !lo.Contains(r.script.Taken, username)
		}))
	}

	opts := []form.Option{
		form.WithContext(ctx),
		form.WithScheduler(sched),
		form.WithConfig(r.cfg),
		form.WithLogger(r.log),
		form.WithMode(mode),
		form.WithSubmitHandler(func(ctx context.Context, s form.Submission) {
			// re-check the way a server would before creating the account
			err := form.ValidateSubmission(ctx, form.Variant(r.script.Form), s, mode)
			r.out.InfoContext(ctx, "submitted",
				slog.String("fullname", s.Fullname),
				slog.String("username", s.Username),
				slog.Bool("accepted", err == nil),
				slog.Any("rejected", validator.ExtractValidationErrors(err).Fields()),
			)
		}),
	}
	if r.script.SignIn != "" {
		outcome, _ := form.ParseSignInOutcome(r.script.SignIn)
		opts = append(opts, form.WithSignInHandler(func(context.Context, string, string) form.SignInOutcome {
			return outcome
		}))
	}
	if r.script.Reset != "" {
		outcome, _ := form.ParseResetOutcome(r.script.Reset)
		opts = append(opts, form.WithResetHandler(func(context.Context, string) form.ResetOutcome {
			return outcome
		}))
	}
	return opts
}

func (r *replayer) init(c *form.Controller) error {
	if len(r.script.Prefill) == 0 {
		return nil
	}
	return c.SetInit(form.Init{
		Username: r.script.Prefill[string(form.FieldUsername)],
		Fullname: r.script.Prefill[string(form.FieldFullname)],
	})
}

// apply runs one step. Rejected operations are reported and the replay
// goes on, the way a user would keep typing.
func (r *replayer) apply(ctx context.Context, c *form.Controller, sched *reactive.ManualScheduler, n int, step Step) {
	var err error
	switch {
	case step.Set != nil:
		err = c.Edit(form.Field(step.Set.Field), step.Set.Value)
	case step.Wait > 0:
		sched.Advance(step.Wait)
	default:
		err = r.act(ctx, c, step.Action)
	}
	if err != nil {
		r.out.WarnContext(ctx, "step rejected", slog.Int("step", n), logger.Error(err))
	}
}

func (r *replayer) act(ctx context.Context, c *form.Controller, action string) error {
	switch action {
	case actionSubmit:
		return c.Submit(ctx)
	case actionSignIn:
		_, err := c.SignIn(ctx)
		return err
	case actionResetPassword:
		_, err := c.ResetPassword(ctx)
		return err
	case actionRequestReset:
		return c.RequestReset()
	case actionCancelReset:
		return c.CancelReset()
	}
	return nil
}

// flush prints every state published since the last call.
func (r *replayer) flush(sub broadcast.Subscriber[form.State]) {
	for {
		select {
		case msg, ok := <-sub.Receive():
			if !ok {
				return
			}
			r.print(msg)
		default:
			return
		}
	}
}

func (r *replayer) print(msg broadcast.Message[form.State]) {
	s := msg.Data
	attrs := []any{
		logger.Seq(msg.Seq),
		logger.FormID(s.FormID),
		logger.Phase(string(s.Phase)),
		slog.Bool("valid", s.IsValid),
		slog.Bool("can_submit", s.CanSubmit),
	}
	for _, f := range s.Variant.Fields() {
		fs := s.Field(f)
		attrs = append(attrs, slog.Group(string(f),
			slog.String("value", fs.Value),
			slog.String("status", fs.Status),
			slog.String("error", fs.Error),
		))
	}
	r.out.Info("state", attrs...)
}

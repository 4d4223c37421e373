package form

import (
	"context"

	"github.com/samber/lo"

	"github.com/dmitrymomot/formkit/pkg/async"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/reactive"
)

// buildLocked wires every field of the variant into the combinator that
// drives IsValid. Sources never emit on subscription, so nothing is
// classified until the first edit or prefill.
func (c *Controller) buildLocked() {
	var validity []reactive.Stream[bool]
	if c.variant.Has(FieldFullname) {
		validity = append(validity, bindField(c, FieldFullname, c.fullnameStatuses()))
	}
	validity = append(validity,
		bindField(c, FieldUsername, c.usernameStatuses()),
		bindField(c, FieldPassword, c.passwordStatuses()),
	)

	c.subs = append(c.subs, reactive.CombineLatestAll(validity...).Subscribe(func(vs []bool) {
		c.isValid = lo.EveryBy(vs, func(ok bool) bool { return ok })
	}))
}

// bindField records every settled status of field and projects it into the
// inline error. Statuses settling before the user edits the field, such as a
// prefill, only mark it as classified.
func bindField[S status](c *Controller, field Field, statuses reactive.Stream[S]) reactive.Stream[bool] {
	shared := reactive.Share(statuses)
	edited := reactive.Filter(c.edited.Stream(), func(f Field) bool { return f == field })
	c.subs = append(c.subs,
		shared.Subscribe(func(s S) {
			fs := c.fields[field]
			fs.Status = s.String()
			fs.Valid = s.IsValid()
			c.log.DebugContext(c.ctx, "field settled",
				logger.Field(string(field)),
				logger.Status(s.String()),
			)
		}),
		reactive.SkipUntil(shared, edited).Subscribe(func(s S) {
			c.fields[field].Error = s.Message()
		}),
	)
	return reactive.Map(shared, func(s S) bool { return s.IsValid() })
}

func (c *Controller) fullnameStatuses() reactive.Stream[FullnameStatus] {
	settled := reactive.Distinct(reactive.Debounce(c.sched, c.cfg.FullDebounce, c.values[FieldFullname].Stream()))
	return reactive.Map(settled, c.classifier.Fullname)
}

// usernameStatuses checks every settled username. A raw edit made while a
// check is in flight drops that check, so its answer never lands on newer
// text.
func (c *Controller) usernameStatuses() reactive.Stream[UsernameStatus] {
	raw := c.values[FieldUsername].Stream()
	settled := reactive.Debounce(c.sched, c.cfg.FullDebounce, raw)
	return reactive.SwitchMapAsync(c.sched, settled, raw, c.checkUsername, c.uniquenessFailed)
}

// statusOwner returns the field whose status and error an edit of f feeds.
func statusOwner(f Field) Field {
	if f == FieldPasswordAgain {
		return FieldPassword
	}
	return f
}

// checkUsername classifies value with the current mode. Sign-in forms never
// ask the uniqueness checker. A checker that answers synchronously is
// resolved in place, otherwise the check runs with UniquenessTimeout.
func (c *Controller) checkUsername(ctx context.Context, value string) *async.Future[UsernameStatus] {
	st, checker := c.classifier.precheckUsername(value, c.mode)
	if checker == nil || c.variant.IsSignIn() {
		return async.Resolved(st)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.UniquenessTimeout)
	pending := checker.CheckUnique(ctx, value)
	if pending.IsComplete() {
		defer cancel()
		unique, err := pending.Await()
		if err != nil {
			return async.Failed[UsernameStatus](err)
		}
		return async.Resolved(uniquenessStatus(unique))
	}

	c.log.DebugContext(c.ctx, "uniqueness check started", logger.Field(string(FieldUsername)))
	return async.Async(ctx, pending, func(ctx context.Context, f *async.Future[bool]) (UsernameStatus, error) {
		defer cancel()
		unique, err := f.AwaitContext(ctx)
		if err != nil {
			return UsernameEmpty, err
		}
		return uniquenessStatus(unique), nil
	})
}

// uniquenessFailed treats a failed or timed-out check as a valid username.
func (c *Controller) uniquenessFailed(value string, err error) (UsernameStatus, bool) {
	c.log.WarnContext(c.ctx, "uniqueness check failed",
		logger.Field(string(FieldUsername)),
		logger.Error(err),
	)
	return UsernameValid, true
}

// passwordStatuses settles emptiness on the full debounce and strength and
// confirmation on the quick one, then combines them. Sign-in only checks
// emptiness.
func (c *Controller) passwordStatuses() reactive.Stream[PasswordStatus] {
	pw := c.values[FieldPassword]
	empty := reactive.Map(
		reactive.Distinct(reactive.Debounce(c.sched, c.cfg.FullDebounce, pw.Stream())),
		func(v string) bool { return v == "" },
	)
	if c.variant.IsSignIn() {
		return reactive.Map(empty, func(e bool) PasswordStatus {
			return PasswordFacts{Empty: e, Strong: true, Matching: true}.Status()
		})
	}

	strong := reactive.Map(
		reactive.Distinct(reactive.Debounce(c.sched, c.cfg.QuickDebounce, pw.Stream())),
		c.classifier.Policy.Satisfied,
	)
	again := c.values[FieldPasswordAgain]
	pairs := reactive.CombineLatest2(pw.Observe(), again.Observe(), func(a, b string) [2]string {
		return [2]string{a, b}
	})
	matching := reactive.Map(
		reactive.Debounce(c.sched, c.cfg.QuickDebounce, pairs),
		func(p [2]string) bool { return p[0] == p[1] },
	)

	return reactive.CombineLatest3(empty, strong, matching, func(e, s, m bool) PasswordStatus {
		return PasswordFacts{Empty: e, Strong: s, Matching: m}.Status()
	})
}

package form_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/broadcast"
	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/reactive"
)

const settle = time.Second

func newForm(t *testing.T, variant form.Variant, opts ...form.Option) (*form.Controller, *reactive.ManualScheduler) {
	t.Helper()
	sched := reactive.NewManualScheduler(time.Time{})
	opts = append([]form.Option{
		form.WithScheduler(sched),
		form.WithConfig(form.Config{StateBuffer: 256}),
	}, opts...)
	c, err := form.New(variant, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, sched
}

func drain(sub broadcast.Subscriber[form.State]) []form.State {
	var out []form.State
	for {
		select {
		case msg, ok := <-sub.Receive():
			if !ok {
				return out
			}
			out = append(out, msg.Data)
		default:
			return out
		}
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("unknown variant", func(t *testing.T) {
		_, err := form.New("sign_out")
		assert.ErrorIs(t, err, form.ErrUnknownVariant)
		assert.Panics(t, func() { form.MustNew("sign_out") })
	})

	t.Run("initial state", func(t *testing.T) {
		c, _ := newForm(t, form.SignUpFullname)
		s := c.State()

		assert.Equal(t, c.ID(), s.FormID)
		assert.Equal(t, form.SignUpFullname, s.Variant)
		assert.Equal(t, form.PhaseEditing, s.Phase)
		assert.False(t, s.IsValid)
		assert.False(t, s.CanSubmit)
		assert.False(t, s.CanRequestReset)

		for _, f := range form.SignUpFullname.Fields() {
			fs := s.Field(f)
			assert.Empty(t, fs.Value, f)
			assert.Empty(t, fs.Status, f)
			assert.Empty(t, fs.Error, f)
			assert.False(t, fs.Valid, f)
		}
		assert.Equal(t, form.PlaceholderFullname, s.Fullname.Placeholder)
		assert.Equal(t, form.PlaceholderUsername, s.Username.Placeholder)
		assert.Equal(t, form.PlaceholderPassword, s.Password.Placeholder)
		assert.Equal(t, form.PlaceholderPasswordAgain, s.PasswordAgain.Placeholder)
	})

	t.Run("placeholders follow the variant and mode", func(t *testing.T) {
		signIn, _ := newForm(t, form.SignIn, form.WithMode(form.EmailMode{}))
		assert.Equal(t, form.PlaceholderUserID, signIn.State().Username.Placeholder)

		email, _ := newForm(t, form.SignUpSimple, form.WithMode(form.EmailMode{}))
		assert.Equal(t, form.PlaceholderEmail, email.State().Username.Placeholder)
	})

	t.Run("no classification before the first edit", func(t *testing.T) {
		c, sched := newForm(t, form.SignUpSimple)
		sched.Advance(10 * time.Second)
		assert.Empty(t, c.State().Username.Status)
		assert.Zero(t, sched.Pending())
	})
}

func TestEdit(t *testing.T) {
	t.Parallel()

	t.Run("value is echoed immediately, status after quiet period", func(t *testing.T) {
		c, sched := newForm(t, form.SignUpSimple)

		require.NoError(t, c.SetUsername("abcd"))
		assert.Equal(t, "abcd", c.State().Username.Value)
		assert.Empty(t, c.State().Username.Status)

		sched.Advance(799 * time.Millisecond)
		assert.Empty(t, c.State().Username.Status)
		sched.Advance(time.Millisecond)
		assert.Equal(t, "valid", c.State().Username.Status)
		assert.True(t, c.State().Username.Valid)
	})

	t.Run("field outside the variant", func(t *testing.T) {
		c, _ := newForm(t, form.SignIn)
		err := c.Edit(form.FieldPasswordAgain, "x")
		assert.ErrorIs(t, err, form.ErrUnsupportedField)
		assert.ErrorIs(t, c.SetFullname("Jane"), form.ErrUnsupportedField)
	})

	t.Run("first typed status shows its message", func(t *testing.T) {
		c, sched := newForm(t, form.SignUpSimple)

		require.NoError(t, c.SetUsername("ab"))
		sched.Advance(settle)
		assert.Equal(t, "too_short", c.State().Username.Status)
		assert.False(t, c.State().Username.Valid)
		assert.Equal(t, form.MsgUsernameTooShort, c.State().Username.Error)

		require.NoError(t, c.SetUsername("abcd"))
		sched.Advance(settle)
		assert.Empty(t, c.State().Username.Error)
	})
}

func TestSignUp(t *testing.T) {
	t.Parallel()

	t.Run("strong password without confirmation is a mismatch", func(t *testing.T) {
		c, sched := newForm(t, form.SignUpSimple, form.WithMode(form.StandardMode{}))

		require.NoError(t, c.SetUsername("abcd"))
		require.NoError(t, c.SetPassword("abcdef$1"))
		sched.Advance(settle)

		s := c.State()
		assert.Equal(t, "valid", s.Username.Status)
		assert.True(t, s.Username.Valid)
		assert.Equal(t, "mismatch", s.Password.Status)
		assert.False(t, s.Password.Valid)
		assert.False(t, s.IsValid)
		assert.False(t, s.CanSubmit)
	})

	t.Run("taken email address", func(t *testing.T) {
		taken := form.UniquenessFunc(func(string) bool { return false })
		c, sched := newForm(t, form.SignUpSimple, form.WithMode(form.EmailMode{Unique: taken}))

		require.NoError(t, c.SetUsername("a@b.com"))
		sched.Advance(settle)

		s := c.State()
		assert.Equal(t, "not_unique", s.Username.Status)
		assert.Equal(t, "Username is not available", s.Username.Error)
		assert.False(t, s.Username.Valid)
	})

	t.Run("malformed email address", func(t *testing.T) {
		c, sched := newForm(t, form.SignUpSimple, form.WithMode(form.EmailMode{}))

		require.NoError(t, c.SetUsername("a@b"))
		sched.Advance(settle)
		assert.Equal(t, "invalid_email_format", c.State().Username.Status)
		assert.Equal(t, form.MsgUsernameInvalidEmail, c.State().Username.Error)
	})

	t.Run("transient mismatch is absorbed", func(t *testing.T) {
		c, sched := newForm(t, form.SignUpSimple)
		sub := c.Subscribe(context.Background())

		require.NoError(t, c.SetPassword("Abcdef1!"))
		require.NoError(t, c.SetPasswordAgain("Abcdef1!"))
		sched.Advance(settle)
		assert.Equal(t, "valid", c.State().Password.Status)

		require.NoError(t, c.SetPasswordAgain("x"))
		sched.Advance(100 * time.Millisecond)
		require.NoError(t, c.SetPasswordAgain("Abcdef1!"))
		sched.Advance(settle)

		for _, s := range drain(sub) {
			assert.NotEqual(t, "mismatch", s.Password.Status)
		}
		assert.Equal(t, "valid", c.State().Password.Status)
	})

	t.Run("mismatch after the quick window", func(t *testing.T) {
		c, sched := newForm(t, form.SignUpSimple)

		require.NoError(t, c.SetPassword("Abcdef1!"))
		require.NoError(t, c.SetPasswordAgain("Abcdef1!"))
		sched.Advance(settle)
		require.NoError(t, c.SetPasswordAgain("Abcdef1"))
		sched.Advance(200 * time.Millisecond)

		assert.Equal(t, "mismatch", c.State().Password.Status)
		assert.Equal(t, form.MsgPasswordMismatch, c.State().Password.Error)
	})

	t.Run("form becomes valid", func(t *testing.T) {
		c, sched := newForm(t, form.SignUpSimple)

		require.NoError(t, c.SetUsername("jane"))
		require.NoError(t, c.SetPassword("secret$pw"))
		require.NoError(t, c.SetPasswordAgain("secret$pw"))
		sched.Advance(settle)

		s := c.State()
		assert.True(t, s.IsValid)
		assert.True(t, s.CanSubmit)

		require.NoError(t, c.SetPassword(""))
		sched.Advance(settle)
		assert.Equal(t, "empty", c.State().Password.Status)
		assert.False(t, c.State().IsValid)
	})

	t.Run("full name is required", func(t *testing.T) {
		c, sched := newForm(t, form.SignUpFullname)

		require.NoError(t, c.SetUsername("jane"))
		require.NoError(t, c.SetPassword("secret$pw"))
		require.NoError(t, c.SetPasswordAgain("secret$pw"))
		sched.Advance(settle)
		assert.False(t, c.State().IsValid)

		require.NoError(t, c.SetFullname("  Jo  "))
		sched.Advance(settle)
		assert.Equal(t, "too_short", c.State().Fullname.Status)
		assert.False(t, c.State().IsValid)

		require.NoError(t, c.SetFullname("Jane Doe"))
		sched.Advance(settle)
		assert.Equal(t, "valid", c.State().Fullname.Status)
		assert.True(t, c.State().IsValid)
	})

	t.Run("submit hands over the values", func(t *testing.T) {
		var got form.Submission
		c, _ := newForm(t, form.SignUpFullname, form.WithSubmitHandler(func(_ context.Context, s form.Submission) {
			got = s
		}))

		require.NoError(t, c.SetFullname("Jane Doe"))
		require.NoError(t, c.SetUsername("jane"))
		require.NoError(t, c.SetPassword("pw"))
		require.NoError(t, c.SetPasswordAgain("pw2"))
		require.NoError(t, c.Submit(context.Background()))

		assert.Equal(t, form.Submission{
			Fullname:      "Jane Doe",
			Username:      "jane",
			Password:      "pw",
			PasswordAgain: "pw2",
		}, got)
	})

	t.Run("submit without handler", func(t *testing.T) {
		c, _ := newForm(t, form.SignUp)
		assert.ErrorIs(t, c.Submit(context.Background()), form.ErrNoSubmitHandler)
	})

	t.Run("sign-in operations are rejected", func(t *testing.T) {
		c, _ := newForm(t, form.SignUpSimple)
		assert.ErrorIs(t, c.RequestReset(), form.ErrNotSignInForm)
		assert.ErrorIs(t, c.CancelReset(), form.ErrNotSignInForm)
		_, err := c.SignIn(context.Background())
		assert.ErrorIs(t, err, form.ErrNotSignInForm)
		_, err = c.ResetPassword(context.Background())
		assert.ErrorIs(t, err, form.ErrNotSignInForm)
	})
}

func TestSetInit(t *testing.T) {
	t.Parallel()

	t.Run("switches mode and prefills", func(t *testing.T) {
		var submitted bool
		c, sched := newForm(t, form.SignUpFullname)

		require.NoError(t, c.SetInit(form.Init{
			Mode:     form.EmailMode{},
			Username: "jane@example.com",
			Fullname: "Jane Doe",
			OnSubmit: func(context.Context, form.Submission) { submitted = true },
		}))

		s := c.State()
		assert.Equal(t, form.PlaceholderEmail, s.Username.Placeholder)
		assert.Equal(t, "jane@example.com", s.Username.Value)
		assert.Equal(t, "Jane Doe", s.Fullname.Value)
		assert.Empty(t, s.Username.Status)

		sched.Advance(settle)
		s = c.State()
		assert.Equal(t, "valid", s.Username.Status)
		assert.Equal(t, "valid", s.Fullname.Status)
		assert.Empty(t, s.Username.Error)

		require.NoError(t, c.Submit(context.Background()))
		assert.True(t, submitted)
	})

	t.Run("invalid prefill shows no error until edited", func(t *testing.T) {
		c, sched := newForm(t, form.SignUpFullname)
		require.NoError(t, c.SetInit(form.Init{Username: "jo", Fullname: "Jo"}))
		sched.Advance(settle)

		s := c.State()
		assert.Equal(t, "too_short", s.Username.Status)
		assert.Equal(t, "too_short", s.Fullname.Status)
		assert.Empty(t, s.Username.Error)
		assert.Empty(t, s.Fullname.Error)

		require.NoError(t, c.SetUsername("joe"))
		sched.Advance(settle)
		assert.Equal(t, form.MsgUsernameTooShort, c.State().Username.Error)
		assert.Empty(t, c.State().Fullname.Error)
	})

	t.Run("nil mode keeps the current one", func(t *testing.T) {
		c, _ := newForm(t, form.SignIn, form.WithMode(form.EmailMode{}))
		require.NoError(t, c.SetInit(form.Init{}))
		assert.Equal(t, form.PlaceholderEmail, c.State().Username.Placeholder)
	})

	t.Run("only once", func(t *testing.T) {
		c, _ := newForm(t, form.SignUpSimple)
		require.NoError(t, c.SetInit(form.Init{Mode: form.StandardMode{}}))
		assert.ErrorIs(t, c.SetInit(form.Init{Mode: form.EmailMode{}}), form.ErrAlreadyInitialized)
		assert.Equal(t, form.PlaceholderUsername, c.State().Username.Placeholder)
	})

	t.Run("sign-in takes no submit handler", func(t *testing.T) {
		c, _ := newForm(t, form.SignIn)
		err := c.SetInit(form.Init{OnSubmit: func(context.Context, form.Submission) {}})
		assert.ErrorIs(t, err, form.ErrNotSignUpForm)
		assert.Equal(t, form.PlaceholderUserID, c.State().Username.Placeholder)
	})
}

func TestSetError(t *testing.T) {
	t.Parallel()

	c, sched := newForm(t, form.SignUpSimple)
	require.NoError(t, c.SetUsername("jane"))
	require.NoError(t, c.SetPassword("secret$pw"))
	sched.Advance(settle)

	taken := "Taken on the server"
	require.NoError(t, c.SetError(form.ErrorOverride{Username: &taken}))

	s := c.State()
	assert.Equal(t, taken, s.Username.Error)
	assert.Equal(t, "valid", s.Username.Status, "override does not touch the status")

	require.NoError(t, c.SetPasswordAgain("secret$pw"))
	sched.Advance(settle)
	assert.Equal(t, taken, c.State().Username.Error, "other fields leave it alone")

	require.NoError(t, c.SetUsername("janet"))
	sched.Advance(settle)
	assert.Empty(t, c.State().Username.Error)

	full := "ignored"
	assert.NoError(t, c.SetError(form.ErrorOverride{Fullname: &full}))
	assert.Empty(t, c.State().Fullname.Error)
}

func TestSignIn(t *testing.T) {
	t.Parallel()

	t.Run("only checks that the password is not empty", func(t *testing.T) {
		c, sched := newForm(t, form.SignIn, form.WithMode(form.StandardMode{
			Unique: form.UniquenessFunc(func(string) bool { return false }),
		}))

		require.NoError(t, c.SetUsername("bobby"))
		require.NoError(t, c.SetPassword("x"))
		sched.Advance(settle)

		s := c.State()
		assert.Equal(t, "valid", s.Username.Status)
		assert.Equal(t, "valid", s.Password.Status)
		assert.True(t, s.IsValid)
		assert.True(t, s.CanSubmit)
	})

	outcomes := []struct {
		outcome  form.SignInOutcome
		username string
		password string
	}{
		{form.SignInSuccess, "", ""},
		{form.SignInUsernameNotFound, form.MsgUsernameDoesNotExist, ""},
		{form.SignInWrongPassword, "", form.MsgWrongPassword},
		{form.SignInUnable, form.MsgUnableToSignIn, form.MsgUnableToSignIn},
	}
	for _, tt := range outcomes {
		t.Run("outcome "+tt.outcome.String(), func(t *testing.T) {
			var gotUser, gotPass string
			c, _ := newForm(t, form.SignIn, form.WithSignInHandler(func(_ context.Context, u, p string) form.SignInOutcome {
				gotUser, gotPass = u, p
				return tt.outcome
			}))
			require.NoError(t, c.SetUsername("bobby"))
			require.NoError(t, c.SetPassword("hunter2"))

			outcome, err := c.SignIn(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.outcome, outcome)
			assert.Equal(t, "bobby", gotUser)
			assert.Equal(t, "hunter2", gotPass)

			s := c.State()
			assert.Equal(t, tt.username, s.Username.Error)
			assert.Equal(t, tt.password, s.Password.Error)
			assert.Equal(t, form.PhaseEditing, s.Phase)
		})
	}

	t.Run("submit signs in", func(t *testing.T) {
		calls := 0
		c, _ := newForm(t, form.SignIn, form.WithSignInHandler(func(context.Context, string, string) form.SignInOutcome {
			calls++
			return form.SignInWrongPassword
		}))
		require.NoError(t, c.Submit(context.Background()))
		assert.Equal(t, 1, calls)
		assert.Equal(t, form.MsgWrongPassword, c.State().Password.Error)
	})

	t.Run("handler timeout is unable to sign in", func(t *testing.T) {
		block := make(chan struct{})
		t.Cleanup(func() { close(block) })
		c, _ := newForm(t, form.SignIn,
			form.WithConfig(form.Config{ActionTimeout: 20 * time.Millisecond}),
			form.WithSignInHandler(func(context.Context, string, string) form.SignInOutcome {
				<-block
				return form.SignInSuccess
			}),
		)

		outcome, err := c.SignIn(context.Background())
		require.NoError(t, err)
		assert.Equal(t, form.SignInUnable, outcome)
		assert.Equal(t, form.MsgUnableToSignIn, c.State().Username.Error)
	})

	t.Run("handler panic is unable to sign in", func(t *testing.T) {
		c, _ := newForm(t, form.SignIn, form.WithSignInHandler(func(context.Context, string, string) form.SignInOutcome {
			panic("boom")
		}))

		outcome, err := c.SignIn(context.Background())
		require.NoError(t, err)
		assert.Equal(t, form.SignInUnable, outcome)
	})

	t.Run("no handler", func(t *testing.T) {
		c, _ := newForm(t, form.SignIn)
		_, err := c.SignIn(context.Background())
		assert.ErrorIs(t, err, form.ErrNoSignInHandler)
	})
}

func TestResetPassword(t *testing.T) {
	t.Parallel()

	t.Run("username alone enables submit while reset is requested", func(t *testing.T) {
		var requested string
		c, sched := newForm(t, form.SignIn, form.WithResetHandler(func(_ context.Context, u string) form.ResetOutcome {
			requested = u
			return form.ResetUsernameNotFound
		}))
		assert.True(t, c.State().CanRequestReset)

		require.NoError(t, c.SetUsername("bobby"))
		sched.Advance(settle)
		assert.False(t, c.State().CanSubmit)

		require.NoError(t, c.RequestReset())
		s := c.State()
		assert.Equal(t, form.PhaseResetRequested, s.Phase)
		assert.False(t, s.IsValid)
		assert.True(t, s.CanSubmit)
		assert.False(t, s.CanRequestReset)

		require.NoError(t, c.Submit(context.Background()))
		assert.Equal(t, "bobby", requested)

		s = c.State()
		assert.Equal(t, form.MsgUsernameDoesNotExist, s.Username.Error)
		assert.Equal(t, form.PhaseEditing, s.Phase)
		assert.False(t, s.CanSubmit)
	})

	t.Run("success writes a confirmation", func(t *testing.T) {
		c, _ := newForm(t, form.SignIn, form.WithResetHandler(func(context.Context, string) form.ResetOutcome {
			return form.ResetSuccess
		}))
		require.NoError(t, c.RequestReset())
		require.NoError(t, c.RequestReset(), "requesting twice is a no-op")

		outcome, err := c.ResetPassword(context.Background())
		require.NoError(t, err)
		assert.Equal(t, form.ResetSuccess, outcome)
		assert.Equal(t, form.MsgResetEmailSent, c.State().Password.Error)
		assert.Equal(t, form.PhaseEditing, c.State().Phase)
	})

	t.Run("unable to reset", func(t *testing.T) {
		c, _ := newForm(t, form.SignIn, form.WithResetHandler(func(context.Context, string) form.ResetOutcome {
			return form.ResetUnable
		}))
		require.NoError(t, c.RequestReset())

		_, err := c.ResetPassword(context.Background())
		require.NoError(t, err)
		s := c.State()
		assert.Equal(t, form.MsgUnableToSendResetEmail, s.Username.Error)
		assert.Equal(t, form.MsgUnableToSendResetEmail, s.Password.Error)
	})

	t.Run("cancel returns to editing without calling the handler", func(t *testing.T) {
		calls := 0
		c, _ := newForm(t, form.SignIn, form.WithResetHandler(func(context.Context, string) form.ResetOutcome {
			calls++
			return form.ResetSuccess
		}))

		assert.ErrorIs(t, c.CancelReset(), form.ErrResetNotRequested)
		require.NoError(t, c.RequestReset())
		require.NoError(t, c.CancelReset())
		assert.Equal(t, form.PhaseEditing, c.State().Phase)

		_, err := c.ResetPassword(context.Background())
		assert.ErrorIs(t, err, form.ErrResetNotRequested)
		assert.Zero(t, calls)
	})

	t.Run("unavailable without handler", func(t *testing.T) {
		c, _ := newForm(t, form.SignIn)
		assert.False(t, c.State().CanRequestReset)
		assert.ErrorIs(t, c.RequestReset(), form.ErrNoResetHandler)
		assert.Equal(t, form.PhaseEditing, c.State().Phase)

		_, err := c.ResetPassword(context.Background())
		assert.ErrorIs(t, err, form.ErrNoResetHandler)
	})
}

func TestAsyncUniqueness(t *testing.T) {
	t.Parallel()

	t.Run("stale result is dropped", func(t *testing.T) {
		release := make(chan struct{})
		checker := form.AsyncUniquenessFunc(func(ctx context.Context, u string) (bool, error) {
			if u == "slowpoke" {
				select {
				case <-release:
				case <-ctx.Done():
				}
				return false, nil
			}
			return true, nil
		})
		c, sched := newForm(t, form.SignUpSimple, form.WithMode(form.StandardMode{Unique: checker}))

		require.NoError(t, c.SetUsername("slowpoke"))
		sched.Advance(settle)
		assert.Empty(t, c.State().Username.Status, "check still running")

		require.NoError(t, c.SetUsername("speedy"))
		sched.Advance(settle)
		require.Eventually(t, func() bool {
			sched.Flush()
			return c.State().Username.Status == "valid_and_unique"
		}, time.Second, 5*time.Millisecond)

		close(release)
		time.Sleep(20 * time.Millisecond)
		sched.Flush()
		assert.Equal(t, "valid_and_unique", c.State().Username.Status)
		assert.Equal(t, "speedy", c.State().Username.Value)
	})

	t.Run("edit during a check drops its answer", func(t *testing.T) {
		release := make(chan struct{})
		t.Cleanup(func() { close(release) })
		checker := form.AsyncUniquenessFunc(func(ctx context.Context, u string) (bool, error) {
			if u == "abcd" {
				select {
				case <-release:
				case <-ctx.Done():
				}
			}
			return true, nil
		})
		c, sched := newForm(t, form.SignUpSimple, form.WithMode(form.StandardMode{Unique: checker}))

		require.NoError(t, c.SetUsername("abcd"))
		sched.Advance(settle)
		require.NoError(t, c.SetUsername("abcde"))

		time.Sleep(20 * time.Millisecond)
		sched.Flush()
		s := c.State()
		assert.Equal(t, "abcde", s.Username.Value)
		assert.Empty(t, s.Username.Status, "answer for the old text is not applied")
		assert.False(t, s.Username.Valid)
		assert.False(t, s.IsValid)

		sched.Advance(settle)
		require.Eventually(t, func() bool {
			sched.Flush()
			return c.State().Username.Status == "valid_and_unique"
		}, time.Second, 5*time.Millisecond)
		assert.Equal(t, form.MsgUsernameAvailable, c.State().Username.Error)
	})

	t.Run("reverting during a check asks again", func(t *testing.T) {
		var calls atomic.Int32
		checker := form.AsyncUniquenessFunc(func(ctx context.Context, _ string) (bool, error) {
			if calls.Add(1) == 1 {
				<-ctx.Done()
				return false, ctx.Err()
			}
			return false, nil
		})
		c, sched := newForm(t, form.SignUpSimple, form.WithMode(form.StandardMode{Unique: checker}))

		require.NoError(t, c.SetUsername("abcd"))
		sched.Advance(settle)
		require.NoError(t, c.SetUsername("abcde"))
		require.NoError(t, c.SetUsername("abcd"))
		sched.Advance(settle)

		require.Eventually(t, func() bool {
			sched.Flush()
			return c.State().Username.Status == "not_unique"
		}, time.Second, 5*time.Millisecond)
		assert.EqualValues(t, 2, calls.Load())
	})

	t.Run("failure leaves the username valid", func(t *testing.T) {
		checker := form.AsyncUniquenessFunc(func(context.Context, string) (bool, error) {
			return false, errors.New("service unavailable")
		})
		c, sched := newForm(t, form.SignUpSimple, form.WithMode(form.EmailMode{Unique: checker}))

		require.NoError(t, c.SetUsername("jane@example.com"))
		sched.Advance(settle)
		require.Eventually(t, func() bool {
			sched.Flush()
			return c.State().Username.Status == "valid"
		}, time.Second, 5*time.Millisecond)
		assert.True(t, c.State().Username.Valid)
	})

	t.Run("timeout leaves the username valid", func(t *testing.T) {
		checker := form.AsyncUniquenessFunc(func(ctx context.Context, _ string) (bool, error) {
			<-ctx.Done()
			return false, ctx.Err()
		})
		c, sched := newForm(t, form.SignUpSimple,
			form.WithConfig(form.Config{UniquenessTimeout: 20 * time.Millisecond}),
			form.WithMode(form.StandardMode{Unique: checker}),
		)

		require.NoError(t, c.SetUsername("jane"))
		sched.Advance(settle)
		require.Eventually(t, func() bool {
			sched.Flush()
			return c.State().Username.Status == "valid"
		}, time.Second, 5*time.Millisecond)
	})
}

func TestSubscribe(t *testing.T) {
	t.Parallel()

	t.Run("replays the latest state", func(t *testing.T) {
		c, sched := newForm(t, form.SignUpSimple)
		require.NoError(t, c.SetUsername("jane"))
		sched.Advance(settle)

		sub := c.Subscribe(context.Background())
		states := drain(sub)
		require.Len(t, states, 1)
		assert.Equal(t, c.State(), states[0])
	})

	t.Run("every change is published once", func(t *testing.T) {
		c, sched := newForm(t, form.SignUpSimple)
		sub := c.Subscribe(context.Background())
		require.Len(t, drain(sub), 1)

		require.NoError(t, c.SetUsername("jane"))
		require.NoError(t, c.SetUsername("jane"))
		states := drain(sub)
		require.Len(t, states, 1, "unchanged state is not republished")
		assert.Equal(t, "jane", states[0].Username.Value)

		sched.Advance(settle)
		states = drain(sub)
		require.NotEmpty(t, states)
		assert.Equal(t, "valid", states[len(states)-1].Username.Status)
	})

	t.Run("close ends subscriptions", func(t *testing.T) {
		c, sched := newForm(t, form.SignUpSimple)
		sub := c.Subscribe(context.Background())
		require.NoError(t, c.SetUsername("jane"))

		require.NoError(t, c.Close())
		require.NoError(t, c.Close())
		sched.Advance(settle)

		assert.Eventually(t, func() bool {
			select {
			case _, ok := <-sub.Receive():
				return !ok
			default:
				return false
			}
		}, time.Second, 5*time.Millisecond)

		assert.ErrorIs(t, c.SetUsername("x"), form.ErrClosed)
		assert.ErrorIs(t, c.SetInit(form.Init{}), form.ErrClosed)
		assert.ErrorIs(t, c.Submit(context.Background()), form.ErrClosed)
		assert.Empty(t, c.State().Username.Status)
		assert.Zero(t, sched.Pending())
	})
}

// Package form validates sign-up and sign-in forms while the user types.
//
// A Controller owns the raw inputs of one form. Every edit goes through a
// debounced pipeline per field, is classified into a status (UsernameStatus,
// PasswordStatus, FullnameStatus) and rendered as inline error text. The
// combined validity of all fields gates the submit control. Each change is
// published as an immutable State.
//
// # Variants
//
//   - SignUpSimple, SignUp: username, password, password again
//   - SignUpFullname: full name plus the sign-up fields
//   - SignIn: username and password, with an optional reset-password flow
//
// # Usage
//
//	c, err := form.New(form.SignUpSimple,
//		form.WithLogger(log),
//		form.WithMode(form.EmailMode{Unique: form.AsyncUniquenessFunc(users.IsFree)}),
//		form.WithSubmitHandler(func(ctx context.Context, s form.Submission) {
//			// create the account
//		}),
//	)
//	if err != nil {
//		return err
//	}
//	defer c.Close()
//
//	sub := c.Subscribe(ctx)
//	go func() {
//		for msg := range sub.Receive() {
//			render(msg.Data)
//		}
//	}()
//
//	_ = c.SetUsername("jane@example.com")
//
// # Timing
//
// Username, full name and password emptiness settle after Config.FullDebounce
// of quiet. Password strength and confirmation match settle after
// Config.QuickDebounce. A field shows its inline error once the user has
// edited it; statuses of a prefill are recorded without one. A raw username
// edit drops any uniqueness check still in flight. Tests drive time with
// WithScheduler and a reactive.ManualScheduler.
//
// # Sign-in
//
// SignIn and ResetPassword call the configured handlers on their own
// goroutine, bounded by Config.ActionTimeout, and map the outcome to inline
// errors. RequestReset is only available with a reset handler; while a reset
// is requested the form may be submitted with a valid username alone.
package form

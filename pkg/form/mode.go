package form

import (
	"context"

	"github.com/dmitrymomot/formkit/pkg/async"
)

// UsernameMode selects how usernames are validated. It is either
// StandardMode or EmailMode; both may carry a uniqueness checker.
type UsernameMode interface {
	isUsernameMode()
	String() string
}

// StandardMode accepts any username of sufficient length.
type StandardMode struct {
	Unique UniquenessChecker
}

// EmailMode additionally requires the username to be an email address.
type EmailMode struct {
	Unique UniquenessChecker
}

func (StandardMode) isUsernameMode() {}
func (EmailMode) isUsernameMode()    {}

func (StandardMode) String() string { return "standard" }
func (EmailMode) String() string    { return "email" }

// UniquenessChecker reports whether a username is still available.
type UniquenessChecker interface {
	CheckUnique(ctx context.Context, username string) *async.Future[bool]
}

// UniquenessFunc is a synchronous checker. It is called on the controller's
// scheduling context and must not call back into the controller.
type UniquenessFunc func(username string) bool

func (f UniquenessFunc) CheckUnique(_ context.Context, username string) *async.Future[bool] {
	return async.Resolved(f(username))
}

// AsyncUniquenessFunc is a checker that may block, typically on a network
// round-trip. It runs on its own goroutine and should honour ctx.
type AsyncUniquenessFunc func(ctx context.Context, username string) (bool, error)

func (f AsyncUniquenessFunc) CheckUnique(ctx context.Context, username string) *async.Future[bool] {
	return async.Async(ctx, username, (func(context.Context, string) (bool, error))(f))
}

// ParseMode maps "standard" and "email" to a mode without a checker.
func ParseMode(name string) (UsernameMode, error) {
	switch name {
	case "", "standard":
		return StandardMode{}, nil
	case "email":
		return EmailMode{}, nil
	}
	return nil, ErrUnknownMode
}

// WithChecker returns mode carrying checker.
func WithChecker(mode UsernameMode, checker UniquenessChecker) UsernameMode {
	switch mode.(type) {
	case EmailMode:
		return EmailMode{Unique: checker}
	default:
		return StandardMode{Unique: checker}
	}
}

// withoutChecker drops the uniqueness checker, keeping the mode kind.
func withoutChecker(mode UsernameMode) UsernameMode {
	if _, ok := mode.(EmailMode); ok {
		return EmailMode{}
	}
	return StandardMode{}
}

func placeholderFor(mode UsernameMode) string {
	if _, ok := mode.(EmailMode); ok {
		return PlaceholderEmail
	}
	return PlaceholderUsername
}

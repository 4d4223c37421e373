package form

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/formkit/pkg/broadcast"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/reactive"
	"github.com/dmitrymomot/formkit/pkg/statemachine"
)

type phaseEvent string

const (
	eventRequestReset phaseEvent = "request_reset"
	eventCancelReset  phaseEvent = "cancel_reset"
	eventResetDone    phaseEvent = "reset_done"
)

// Controller owns the inputs of one form and publishes a State after every
// change. All stream callbacks run under the controller lock, so setters,
// timers and async completions never interleave.
type Controller struct {
	mu sync.Mutex

	id      uuid.UUID
	variant Variant
	cfg     Config
	log     *slog.Logger

	parent context.Context
	ctx    context.Context
	cancel context.CancelFunc

	base     reactive.Scheduler
	ownsBase *reactive.LoopScheduler
	sched    reactive.Scheduler

	classifier  Classifier
	mode        UsernameMode
	initialized bool

	values  map[Field]*reactive.Value[string]
	edited  *reactive.Value[Field]
	fields  map[Field]*FieldState
	isValid bool
	phase   *statemachine.Machine[Phase, phaseEvent]

	onSubmit SubmitFunc
	signIn   SignInFunc
	reset    ResetFunc

	subs   []reactive.Cancel
	out    *broadcast.MemoryBroadcaster[State]
	last   State
	closed bool
}

// New builds a controller for variant and publishes its initial state.
func New(variant Variant, opts ...Option) (*Controller, error) {
	def, ok := variants[variant]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, variant)
	}

	c := &Controller{
		id:      uuid.New(),
		variant: variant,
		cfg:     DefaultConfig(),
		log:     logger.Discard(),
		parent:  context.Background(),
		mode:    StandardMode{},
		values:  make(map[Field]*reactive.Value[string], len(def.fields)),
		edited:  reactive.NewValue[Field](""),
		fields:  make(map[Field]*FieldState, len(def.fields)),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.base == nil {
		loop := reactive.NewLoopScheduler()
		c.base, c.ownsBase = loop, loop
	}
	c.sched = reactive.Guarded(c.base, c.run)
	c.ctx, c.cancel = context.WithCancel(c.parent)
	c.classifier = c.cfg.Classifier()
	c.log = c.log.With(
		logger.Component("form"),
		logger.FormID(c.id),
		logger.Form(string(variant)),
	)
	c.out = broadcast.NewMemoryBroadcaster[State](c.cfg.StateBuffer,
		broadcast.WithReplay(),
		broadcast.WithConflation(),
	)
	c.phase = c.newPhaseMachine()

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, f := range def.fields {
		c.values[f] = reactive.NewValue("")
		c.fields[f] = &FieldState{Placeholder: placeholderOf(f)}
	}
	c.fields[FieldUsername].Placeholder = def.placeholder
	if !def.signIn {
		c.fields[FieldUsername].Placeholder = placeholderFor(c.mode)
	}

	c.buildLocked()
	c.publishLocked()
	c.log.DebugContext(c.ctx, "form created", slog.String("mode", c.mode.String()))

	return c, nil
}

// MustNew is New that panics on an unknown variant.
func MustNew(variant Variant, opts ...Option) *Controller {
	c, err := New(variant, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Controller) newPhaseMachine() *statemachine.Machine[Phase, phaseEvent] {
	opts := []statemachine.Option[Phase, phaseEvent]{
		statemachine.WithListener(func(from, to Phase, ev phaseEvent) {
			c.log.DebugContext(c.ctx, "phase changed",
				logger.Phase(string(to)),
				slog.String("from", string(from)),
				slog.String("event", string(ev)),
			)
		}),
	}
	if c.variant.IsSignIn() {
		var hasReset statemachine.Guard[Phase, phaseEvent] = func(context.Context, Phase, phaseEvent, any) bool {
			return c.reset != nil
		}
		opts = append(opts,
			statemachine.WithTransition(PhaseEditing, PhaseResetRequested, eventRequestReset,
				statemachine.WithGuard(hasReset)),
			statemachine.WithTransition(PhaseResetRequested, PhaseEditing, eventCancelReset),
			statemachine.WithTransition(PhaseResetRequested, PhaseEditing, eventResetDone),
		)
	}
	return statemachine.New(PhaseEditing, opts...)
}

// do runs fn under the controller lock and publishes the resulting state.
// It reports false once the controller is closed.
func (c *Controller) do(fn func()) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	fn()
	c.publishLocked()
	return true
}

func (c *Controller) run(fn func()) { c.do(fn) }

func (c *Controller) publishLocked() {
	s := c.snapshotLocked()
	if s == c.last {
		return
	}
	c.last = s
	if err := c.out.Broadcast(s); err != nil {
		c.log.DebugContext(c.ctx, "state not published", logger.Error(err))
	}
}

func (c *Controller) snapshotLocked() State {
	s := State{
		FormID:        c.id,
		Variant:       c.variant,
		Phase:         c.phase.Current(),
		Fullname:      c.fieldLocked(FieldFullname),
		Username:      c.fieldLocked(FieldUsername),
		Password:      c.fieldLocked(FieldPassword),
		PasswordAgain: c.fieldLocked(FieldPasswordAgain),
		IsValid:       c.isValid,
	}
	s.CanRequestReset = c.phase.CanFire(c.ctx, eventRequestReset, nil)
	s.CanSubmit = s.IsValid || (s.Phase == PhaseResetRequested && s.Username.Valid)
	return s
}

func (c *Controller) fieldLocked(f Field) FieldState {
	fs, ok := c.fields[f]
	if !ok {
		return FieldState{}
	}
	out := *fs
	out.Value = c.values[f].Get()
	return out
}

func (c *Controller) valueLocked(f Field) string {
	if v, ok := c.values[f]; ok {
		return v.Get()
	}
	return ""
}

// ID returns the identifier stamped on every published state.
func (c *Controller) ID() uuid.UUID { return c.id }

// Variant returns the form variant.
func (c *Controller) Variant() Variant { return c.variant }

// State returns the latest published state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// Subscribe streams published states, starting with the latest one. Slow
// subscribers skip intermediate states but always receive the newest.
func (c *Controller) Subscribe(ctx context.Context) broadcast.Subscriber[State] {
	return c.out.Subscribe(ctx)
}

// Close detaches every pipeline, cancels in-flight callbacks and closes all
// subscriptions. It is safe to call more than once.
func (c *Controller) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	for i := len(c.subs) - 1; i >= 0; i-- {
		c.subs[i]()
	}
	c.subs = nil
	c.cancel()
	c.mu.Unlock()

	err := c.out.Close()
	if c.ownsBase != nil {
		err = errors.Join(err, c.ownsBase.Close())
	}
	c.log.Debug("form closed")
	return err
}

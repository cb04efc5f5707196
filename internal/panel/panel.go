package panel

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dsipanel/internal/log"
)

// State is the lifecycle state of one panel instance. It only changes inside
// the lifecycle operations and must not be touched concurrently; the host is
// expected to serialize calls.
type State int

const (
	StateUninitialized State = iota
	StatePrepared
	StateEnabled
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StatePrepared:
		return "prepared"
	case StateEnabled:
		return "enabled"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ErrNotPrepared is returned by Enable when the panel hardware has not been
// brought up yet.
var ErrNotPrepared = errors.New("panel: not prepared")

// Device is the lifecycle contract a host display stack drives. Prepare and
// Unprepare touch hardware; Enable and Disable are cheap bookkeeping used for
// frequent blank/unblank toggles.
type Device interface {
	Prepare(ctx context.Context) error
	Unprepare(ctx context.Context) error
	Enable(ctx context.Context) error
	Disable(ctx context.Context) error
	Modes() []Mode
}

// Panel drives one physical panel of a given variant over a Channel and
// tracks its lifecycle state. It implements Device.
type Panel struct {
	variant *Variant
	ch      Channel
	state   State

	sleep func(time.Duration)
}

// Option adjusts a Panel at construction time.
type Option func(*Panel)

// WithSettle overrides the variant's settle delays. A zero duration keeps
// the variant default.
func WithSettle(exitSleep, displayOn time.Duration) Option {
	return func(p *Panel) {
		v := *p.variant
		if exitSleep > 0 {
			v.ExitSleepSettle = exitSleep
		}
		if displayOn > 0 {
			v.DisplayOnSettle = displayOn
		}
		p.variant = &v
	}
}

// withSleep replaces the blocking wait, for tests.
func withSleep(fn func(time.Duration)) Option {
	return func(p *Panel) { p.sleep = fn }
}

// New builds a Panel for the named variant on top of ch.
func New(variant string, ch Channel, opts ...Option) (*Panel, error) {
	v, err := Lookup(variant)
	if err != nil {
		return nil, err
	}
	p := &Panel{
		variant: v,
		ch:      ch,
		state:   StateUninitialized,
		sleep:   time.Sleep,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Variant returns the variant this panel was built for.
func (p *Panel) Variant() *Variant { return p.variant }

// State returns the current lifecycle state.
func (p *Panel) State() State { return p.state }

// Prepare runs the variant's init sequence and switches the display on.
// It is a no-op when the panel is already prepared. On any failure the state
// stays Uninitialized and the error is returned; the host decides whether to
// retry or fail the attach.
func (p *Panel) Prepare(ctx context.Context) error {
	if p.state != StateUninitialized {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	log.Info("preparing panel", "variant", p.variant.Name)

	if err := runSequence(p.ch, p.variant.Init, p.sleep); err != nil {
		return fmt.Errorf("panel: init sequence: %w", err)
	}

	if err := p.ch.ExitSleepMode(); err != nil {
		return fmt.Errorf("panel: exit sleep mode: %w", err)
	}
	p.sleep(p.variant.ExitSleepSettle)

	if err := p.ch.SetDisplayOn(); err != nil {
		return fmt.Errorf("panel: set display on: %w", err)
	}
	p.sleep(p.variant.DisplayOnSettle)

	p.state = StatePrepared
	return nil
}

// Unprepare switches the display off and puts the controller back to sleep.
// Teardown is best-effort: both steps are attempted even if the first fails,
// failures are logged, and the state always ends up Uninitialized. Calling it
// on a never-prepared panel does nothing.
func (p *Panel) Unprepare(ctx context.Context) error {
	if p.state == StateUninitialized {
		return nil
	}

	log.Info("unpreparing panel", "variant", p.variant.Name)

	if err := p.ch.SetDisplayOff(); err != nil {
		log.Warn("failed to set display off", err, "variant", p.variant.Name)
	}
	if err := p.ch.EnterSleepMode(); err != nil {
		log.Warn("failed to enter sleep mode", err, "variant", p.variant.Name)
	}

	p.state = StateUninitialized
	return nil
}

// Enable marks the panel as actively scanned out. It performs no hardware
// I/O. Enabling an unprepared panel is a caller bug and returns
// ErrNotPrepared.
func (p *Panel) Enable(ctx context.Context) error {
	if p.state == StateEnabled {
		return nil
	}
	if p.state != StatePrepared {
		return ErrNotPrepared
	}
	p.state = StateEnabled
	return nil
}

// Disable is the logical counterpart of Enable: pure bookkeeping, no I/O,
// a no-op unless the panel is enabled.
func (p *Panel) Disable(ctx context.Context) error {
	if p.state != StateEnabled {
		return nil
	}
	p.state = StatePrepared
	return nil
}

// Modes returns the timing descriptors this panel supports. The RM69080
// family supports exactly one.
func (p *Panel) Modes() []Mode {
	return []Mode{p.variant.Mode}
}

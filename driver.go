package letterfall

import (
	"context"
	"fmt"
)

// driverState tracks the Driver lifecycle. Stopped is terminal.
type driverState uint8

const (
	stateUninitialized driverState = iota
	stateRunning
	stateStopped
)

// DriverConfig controls a Driver. Zero values select the package defaults.
type DriverConfig struct {
	// Clock returns the current time in seconds. Defaults to the host frame
	// timestamps; a fixed clock makes the driver testable without real
	// wall-clock delays.
	Clock func() float64
	// Field overrides passed through to the lifecycle manager.
	Field FieldConfig
}

// Driver orchestrates the overlay against a Host: initialization, the
// continuous frame loop, resize rebuilds, and teardown.
//
// All state transitions and callbacks run on the host's single-threaded
// frame callback queue; the Driver performs no locking of its own.
type Driver struct {
	host Host
	cfg  DriverConfig

	state driverState
	field *Field

	// Viewport dimensions at the last (re)build, used to skip redundant
	// resize notifications.
	width  float64
	height float64
	// Timestamp of the most recent tick, fed to the resize handler which
	// runs between frames.
	lastNow float64

	cancelTick     func()
	detachResize   func()
	detachTeardown func()
}

// NewDriver creates a Driver bound to host. Call Start to begin animating.
func NewDriver(host Host, cfg DriverConfig) *Driver {
	return &Driver{host: host, cfg: cfg}
}

// Start transitions the driver from Uninitialized to Running: it acquires
// the drawing surface, awaits font readiness, reads the theme color and
// title, builds the initial grid and fade population, and registers the
// frame dispatch plus resize and teardown observers.
//
// A surface acquisition failure is fatal and aborts setup entirely; the page
// must remain usable without the overlay. Starting a driver that is not
// Uninitialized is an error.
func (d *Driver) Start(ctx context.Context) error {
	if d.state != stateUninitialized {
		return fmt.Errorf("letterfall: driver already started or stopped")
	}

	surface, err := d.host.AcquireSurface()
	if err != nil {
		return fmt.Errorf("letterfall: acquire surface: %w", err)
	}
	if err := d.host.WaitFont(ctx); err != nil {
		return fmt.Errorf("letterfall: font readiness: %w", err)
	}

	color, err := ParseChannelTriple(d.host.PrimaryColor())
	if err != nil {
		color = defaultPrimaryColor
	}
	text := DeriveText(d.host.Title())

	d.field = NewField(surface, color, text, d.cfg.Field)
	d.width, d.height = d.host.ViewportSize()
	d.lastNow = d.now(0)
	d.field.Rebuild(d.width, d.height, d.lastNow)

	// One dispatch function registered once; each tick reads and writes the
	// driver state rather than rebinding closures per frame.
	d.cancelTick = d.host.Schedule(d.tick)
	d.detachResize = d.host.NotifyResize(d.handleResize)
	d.detachTeardown = d.host.NotifyTeardown(d.Stop)

	d.state = stateRunning
	return nil
}

// Field returns the lifecycle manager, or nil before Start.
func (d *Driver) Field() *Field {
	return d.field
}

// tick advances one frame. Scheduled by the host; never runs after Stop.
func (d *Driver) tick(now float64) {
	if d.state != stateRunning {
		return
	}
	now = d.now(now)
	d.lastNow = now
	d.field.Advance(now)
}

// handleResize rebuilds the grid and fade population for the new viewport.
// It runs synchronously inside the host's resize notification, never
// interleaved with an in-flight tick, so a tick cannot observe a
// half-rebuilt grid. Redundant notifications with unchanged dimensions are
// ignored.
func (d *Driver) handleResize() {
	if d.state != stateRunning {
		return
	}
	w, h := d.host.ViewportSize()
	if w == d.width && h == d.height {
		return
	}
	d.width, d.height = w, h
	d.field.Rebuild(w, h, d.now(d.lastNow))
}

// Stop transitions the driver to Stopped: the scheduled tick is cancelled
// (no queued callback will fire afterwards) and the observers are detached.
// Stopped is terminal. Stop is idempotent; calling it twice, or before
// Start, is a no-op.
func (d *Driver) Stop() {
	if d.state != stateRunning {
		d.state = stateStopped
		return
	}
	d.cancelTick()
	d.detachResize()
	d.detachTeardown()
	d.state = stateStopped
}

// now applies the injected clock, falling back to the host-provided frame
// timestamp.
func (d *Driver) now(hostNow float64) float64 {
	if d.cfg.Clock != nil {
		return d.cfg.Clock()
	}
	return hostNow
}

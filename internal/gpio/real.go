//go:build linux

package gpio

import (
	"fmt"
	"log"
	"sync/atomic"

	"github.com/warthog618/go-gpiocdev"
)

// Consumer is the label attached to every line this process requests.
const Consumer = "env-controller"

// RealBoard drives the controller's lines through the Linux GPIO character device.
type RealBoard struct {
	chip   *gpiocdev.Chip
	fan    *gpiocdev.Line
	leds   *gpiocdev.Lines
	vent   *gpiocdev.Line
	buses  []*OutputBus
	onEdge EdgeHandler

	// buttons is published after the request returns; edge events that
	// arrive earlier are dropped.
	buttons atomic.Pointer[gpiocdev.Lines]
}

// NewRealBoard requests all board lines on the named chip.
// START and RESET are requested together with both-edge detection, so onEdge
// runs on a single event goroutine and never concurrently with itself.
func NewRealBoard(chipName string, pins Pins, onEdge EdgeHandler) (*RealBoard, error) {
	chip, err := gpiocdev.NewChip(chipName, gpiocdev.WithConsumer(Consumer))
	if err != nil {
		return nil, fmt.Errorf("open gpio chip %s: %w", chipName, err)
	}
	b := &RealBoard{chip: chip, onEdge: onEdge}

	b.fan, err = chip.RequestLine(pins.Fan, gpiocdev.AsOutput(0))
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("request fan pin %d: %w", pins.Fan, err)
	}

	b.leds, err = chip.RequestLines(pins.LEDs[:], gpiocdev.AsOutput(0, 0, 0, 0))
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("request led pins %v: %w", pins.LEDs, err)
	}

	b.vent, err = chip.RequestLine(pins.Vent, ventOptions(pins.ButtonsActiveLow)...)
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("request vent button pin %d: %w", pins.Vent, err)
	}

	buttons, err := chip.RequestLines([]int{pins.Start, pins.Reset}, buttonOptions(pins.ButtonsActiveLow, b.handleEdge)...)
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("request start/reset pins %d/%d: %w", pins.Start, pins.Reset, err)
	}
	b.buttons.Store(buttons)

	return b, nil
}

// ventOptions configures the polled vent button.
func ventOptions(activeLow bool) []gpiocdev.LineReqOption {
	opts := []gpiocdev.LineReqOption{gpiocdev.AsInput, gpiocdev.WithPullUp}
	if activeLow {
		opts = append(opts, gpiocdev.AsActiveLow)
	}
	return opts
}

// buttonOptions configures START/RESET as edge-watched inputs delivering
// events to handler.
func buttonOptions(activeLow bool, handler gpiocdev.EventHandler) []gpiocdev.LineReqOption {
	opts := []gpiocdev.LineReqOption{
		gpiocdev.AsInput,
		gpiocdev.WithPullUp,
		gpiocdev.WithBothEdges,
		gpiocdev.WithEventHandler(handler),
	}
	if activeLow {
		opts = append(opts, gpiocdev.AsActiveLow)
	}
	return opts
}

// handleEdge services a START/RESET edge. Edge direction is ignored: the
// handler reads both levels and reports what is pressed now.
func (b *RealBoard) handleEdge(evt gpiocdev.LineEvent) {
	lines := b.buttons.Load()
	if lines == nil || b.onEdge == nil {
		return
	}
	var values [2]int
	if err := lines.Values(values[:]); err != nil {
		log.Printf("gpio: read buttons after edge on line %d: %v", evt.Offset, err)
		return
	}
	b.onEdge(values[0] == 1, values[1] == 1)
}

// SetFan switches the fan relay.
func (b *RealBoard) SetFan(on bool) error {
	if err := b.fan.SetValue(boolToValue(on)); err != nil {
		return fmt.Errorf("set fan: %w", err)
	}
	return nil
}

// SetIndicator writes the LED bank.
func (b *RealBoard) SetIndicator(mask uint8) error {
	if err := b.leds.SetValues(maskValues(mask)); err != nil {
		return fmt.Errorf("set indicator: %w", err)
	}
	return nil
}

// Buttons returns the START and RESET levels.
func (b *RealBoard) Buttons() (bool, bool, error) {
	lines := b.buttons.Load()
	if lines == nil {
		return false, false, fmt.Errorf("read buttons: lines not requested")
	}
	var values [2]int
	if err := lines.Values(values[:]); err != nil {
		return false, false, fmt.Errorf("read buttons: %w", err)
	}
	return values[0] == 1, values[1] == 1, nil
}

// VentPressed returns the vent button level.
func (b *RealBoard) VentPressed() (bool, error) {
	v, err := b.vent.Value()
	if err != nil {
		return false, fmt.Errorf("read vent button: %w", err)
	}
	return v == 1, nil
}

// OutputBus requests a group of output lines on the board's chip, initially low.
// The bus is released by Close.
func (b *RealBoard) OutputBus(name string, offsets []int) (*OutputBus, error) {
	lines, err := b.chip.RequestLines(offsets, gpiocdev.AsOutput(make([]int, len(offsets))...))
	if err != nil {
		return nil, fmt.Errorf("request %s pins %v: %w", name, offsets, err)
	}
	bus := &OutputBus{name: name, lines: lines, width: len(offsets)}
	b.buses = append(b.buses, bus)
	return bus, nil
}

// Close drives outputs low and returns every line to an input before
// releasing it, so relays and coils are not left energised.
func (b *RealBoard) Close() error {
	var errs []error

	if b.fan != nil {
		if err := b.fan.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("fan off: %w", err))
		}
		errs = appendRelease(errs, "fan", b.fan)
	}
	if b.leds != nil {
		if err := b.leds.SetValues(maskValues(0)); err != nil {
			errs = append(errs, fmt.Errorf("leds off: %w", err))
		}
		errs = appendRelease(errs, "leds", b.leds)
	}
	for _, bus := range b.buses {
		if err := bus.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if b.vent != nil {
		if err := b.vent.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close vent button: %w", err))
		}
	}
	if lines := b.buttons.Swap(nil); lines != nil {
		if err := lines.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close start/reset: %w", err))
		}
	}
	if b.chip != nil {
		if err := b.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

// OutputBus is a group of output lines, e.g. the display data bus or the
// stepper coils.
type OutputBus struct {
	name   string
	lines  *gpiocdev.Lines
	width  int
	closed bool
}

// SetValues writes one value per line.
func (o *OutputBus) SetValues(values []int) error {
	if len(values) != o.width {
		return fmt.Errorf("set %s: got %d values for %d lines", o.name, len(values), o.width)
	}
	if err := o.lines.SetValues(values); err != nil {
		return fmt.Errorf("set %s: %w", o.name, err)
	}
	return nil
}

// Close drives the bus low and releases it.
func (o *OutputBus) Close() error {
	if o.closed {
		return nil
	}
	o.closed = true
	var errs []error
	if err := o.lines.SetValues(make([]int, o.width)); err != nil {
		errs = append(errs, fmt.Errorf("%s low: %w", o.name, err))
	}
	errs = appendRelease(errs, o.name, o.lines)
	if len(errs) > 0 {
		return fmt.Errorf("close %s: %v", o.name, errs)
	}
	return nil
}

type releasable interface {
	Reconfigure(options ...gpiocdev.LineConfigOption) error
	Close() error
}

func appendRelease(errs []error, name string, l releasable) []error {
	if err := l.Reconfigure(gpiocdev.AsInput); err != nil {
		errs = append(errs, fmt.Errorf("reconfigure %s: %w", name, err))
	}
	if err := l.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close %s: %w", name, err))
	}
	return errs
}

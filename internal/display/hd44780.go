// Package display drives a 16x2 HD44780 character LCD in 4-bit mode.
package display

import (
	"fmt"
	"time"
)

// Bus line order for the HD44780 in 4-bit mode.
const (
	LineRS = iota
	LineEN
	LineD4
	LineD5
	LineD6
	LineD7
	BusWidth
)

// HD44780 commands.
const (
	cmdClear        = 0x01
	cmdEntryMode    = 0x06 // increment, no shift
	cmdDisplayOn    = 0x0C // display on, cursor off, blink off
	cmdFunction4Bit = 0x28 // 4-bit, 2 lines, 5x8 font
	cmdSetDDRAM     = 0x80
)

var rowOffsets = [2]byte{0x00, 0x40}

// Bus writes all six LCD lines at once.
type Bus interface {
	SetValues(values []int) error
}

// HD44780 is a character LCD on a 4-bit parallel bus.
type HD44780 struct {
	bus   Bus
	sleep func(time.Duration)
	rs    int
}

// NewHD44780 initialises the controller on bus and returns the driver.
// sleep may be nil to use time.Sleep.
func NewHD44780(bus Bus, sleep func(time.Duration)) (*HD44780, error) {
	if sleep == nil {
		sleep = time.Sleep
	}
	d := &HD44780{bus: bus, sleep: sleep}
	if err := d.init(); err != nil {
		return nil, fmt.Errorf("init lcd: %w", err)
	}
	return d, nil
}

// init runs the 4-bit initialisation-by-instruction sequence.
func (d *HD44780) init() error {
	d.sleep(50 * time.Millisecond)

	d.rs = 0
	for _, wait := range []time.Duration{4500 * time.Microsecond, 4500 * time.Microsecond, 150 * time.Microsecond} {
		if err := d.writeNibble(0x3); err != nil {
			return err
		}
		d.sleep(wait)
	}
	if err := d.writeNibble(0x2); err != nil {
		return err
	}

	for _, c := range []byte{cmdFunction4Bit, cmdDisplayOn, cmdClear, cmdEntryMode} {
		if err := d.command(c); err != nil {
			return err
		}
	}
	return nil
}

// Clear blanks the display and homes the cursor.
func (d *HD44780) Clear() error {
	return d.command(cmdClear)
}

// SetCursor moves the cursor to col on row (0 or 1).
func (d *HD44780) SetCursor(col, row int) error {
	if row < 0 || row >= len(rowOffsets) {
		return fmt.Errorf("set cursor: row %d out of range", row)
	}
	if col < 0 || col >= Columns {
		return fmt.Errorf("set cursor: column %d out of range", col)
	}
	return d.command(cmdSetDDRAM | (rowOffsets[row] + byte(col)))
}

// Print writes text at the cursor. Bytes outside printable ASCII are shown as '?'.
func (d *HD44780) Print(text string) error {
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c < 0x20 || c > 0x7E {
			c = '?'
		}
		if err := d.data(c); err != nil {
			return err
		}
	}
	return nil
}

func (d *HD44780) command(c byte) error {
	d.rs = 0
	if err := d.writeByte(c); err != nil {
		return fmt.Errorf("lcd command 0x%02x: %w", c, err)
	}
	if c == cmdClear {
		d.sleep(2 * time.Millisecond)
	}
	return nil
}

func (d *HD44780) data(c byte) error {
	d.rs = 1
	if err := d.writeByte(c); err != nil {
		return fmt.Errorf("lcd data: %w", err)
	}
	return nil
}

func (d *HD44780) writeByte(b byte) error {
	if err := d.writeNibble(b >> 4); err != nil {
		return err
	}
	if err := d.writeNibble(b & 0x0F); err != nil {
		return err
	}
	d.sleep(40 * time.Microsecond)
	return nil
}

// writeNibble presents four data bits and pulses EN; the controller latches
// on the falling edge.
func (d *HD44780) writeNibble(n byte) error {
	values := make([]int, BusWidth)
	values[LineRS] = d.rs
	for i := 0; i < 4; i++ {
		values[LineD4+i] = int(n>>uint(i)) & 1
	}

	if err := d.bus.SetValues(values); err != nil {
		return err
	}
	values[LineEN] = 1
	if err := d.bus.SetValues(values); err != nil {
		return err
	}
	d.sleep(time.Microsecond)
	values[LineEN] = 0
	return d.bus.SetValues(values)
}

package display

import (
	"fmt"
	"strings"
)

// Columns is the width of each display row.
const Columns = 16

// Rows is the number of display rows.
const Rows = 2

// Device is a character display addressed by cursor position.
type Device interface {
	SetCursor(col, row int) error
	Print(text string) error
}

// Screen writes whole rows to a Device. Each row is clipped to Columns and
// padded with spaces so shorter text clears what was there before. A row is
// only rewritten when its content changes.
type Screen struct {
	dev  Device
	rows [Rows]string
	set  [Rows]bool
}

// NewScreen wraps dev.
func NewScreen(dev Device) *Screen {
	return &Screen{dev: dev}
}

// Line shows text on row.
func (s *Screen) Line(row int, text string) error {
	if row < 0 || row >= Rows {
		return fmt.Errorf("display row %d out of range", row)
	}
	text = Fit(text)
	if s.set[row] && s.rows[row] == text {
		return nil
	}
	if err := s.dev.SetCursor(0, row); err != nil {
		return err
	}
	if err := s.dev.Print(text); err != nil {
		// Row contents are unknown now; force a rewrite next time.
		s.set[row] = false
		return err
	}
	s.rows[row] = text
	s.set[row] = true
	return nil
}

// Fit clips or pads text to exactly Columns characters.
func Fit(text string) string {
	if len(text) >= Columns {
		return text[:Columns]
	}
	return text + strings.Repeat(" ", Columns-len(text))
}

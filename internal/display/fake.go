package display

import "fmt"

// Fake is an in-memory Device for tests.
type Fake struct {
	Cells [Rows][Columns]byte
	col   int
	row   int
	// Prints counts Print calls.
	Prints int
	// PrintError, if set, is returned by Print.
	PrintError error
}

// NewFake returns a blank Fake display.
func NewFake() *Fake {
	f := &Fake{}
	for r := range f.Cells {
		for c := range f.Cells[r] {
			f.Cells[r][c] = ' '
		}
	}
	return f
}

// SetCursor moves the cursor.
func (f *Fake) SetCursor(col, row int) error {
	if row < 0 || row >= Rows || col < 0 || col >= Columns {
		return fmt.Errorf("cursor (%d,%d) out of range", col, row)
	}
	f.col, f.row = col, row
	return nil
}

// Print writes text at the cursor. Characters past the last column are dropped.
func (f *Fake) Print(text string) error {
	if f.PrintError != nil {
		return f.PrintError
	}
	f.Prints++
	for i := 0; i < len(text) && f.col < Columns; i++ {
		f.Cells[f.row][f.col] = text[i]
		f.col++
	}
	return nil
}

// Row returns the contents of row.
func (f *Fake) Row(row int) string {
	return string(f.Cells[row][:])
}

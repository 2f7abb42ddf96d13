// Package eventlog writes the controller's plain-text event log to the serial port.
//
// Protocol: newline-terminated ASCII lines, unidirectional, no framing.
//
//	STATE: IDLE -> RUNNING
//	TIME: 14:3:9
//	VENT MOVED
package eventlog

import (
	"io"
	"log"

	"github.com/sweeney/env-controller/internal/logic"
)

// maxRecord bounds a formatted transition record:
// "STATE: " + 8 + " -> " + 8 + "\n" + "TIME: " + 11 + "\n".
const maxRecord = 64

const ventMoved = "VENT MOVED\n"

// Logger formats events onto a serial line. Writes block until the device
// accepts every byte. Write failures are reported on the process log and
// never returned.
type Logger struct {
	w io.Writer
}

// New creates a Logger writing to w.
func New(w io.Writer) *Logger {
	return &Logger{w: w}
}

// Transition records a state change observed by the control loop at t.
func (l *Logger) Transition(prev, cur logic.State, t logic.TimeOfDay) {
	var buf [maxRecord]byte
	l.write(AppendTransition(buf[:0], prev, cur, t))
}

// VentMoved records a manual vent step.
func (l *Logger) VentMoved() {
	l.write([]byte(ventMoved))
}

func (l *Logger) write(p []byte) {
	if _, err := l.w.Write(p); err != nil {
		log.Printf("eventlog: write failed: %v", err)
	}
}

// AppendTransition appends the two-line transition record to dst.
func AppendTransition(dst []byte, prev, cur logic.State, t logic.TimeOfDay) []byte {
	dst = append(dst, "STATE: "...)
	dst = append(dst, prev.String()...)
	dst = append(dst, " -> "...)
	dst = append(dst, cur.String()...)
	dst = append(dst, '\n')
	dst = append(dst, "TIME: "...)
	dst = logic.AppendTimeOfDay(dst, t)
	dst = append(dst, '\n')
	return dst
}

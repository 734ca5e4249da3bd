// Package xevent is a small structured-event logger in the shape of
// golang.org/x/tools/internal/event: a message plus an ordered list of
// key=value labels, written out by a Printer. It exists for the ambient
// pieces of this repository that do log — the transport adapters and the
// cmd/lspsh demo — not the sans-I/O lspclient core itself, which performs
// no logging of its own.
package xevent

import (
	"fmt"
	"io"
	"time"
)

// Label is one key=value pair attached to an event.
type Label struct {
	Key   string
	Value any
}

// Of builds a Label.
func Of(key string, value any) Label { return Label{Key: key, Value: value} }

// Err builds the conventional "err" label.
func Err(err error) Label { return Label{Key: "err", Value: err} }

// Event is a single log line: a timestamp, a message, and its labels.
type Event struct {
	At      time.Time
	Message string
	Labels  []Label
}

// Exporter receives every event logged through a Logger.
type Exporter interface {
	Export(Event)
}

// Logger pairs an Exporter with nothing else; it exists so call sites read
// as `logger.Log(...)` rather than threading an Exporter by hand.
type Logger struct {
	Export Exporter
}

// Log records an event with the given message and labels.
func (l Logger) Log(message string, labels ...Label) {
	if l.Export == nil {
		return
	}
	l.Export.Export(Event{At: now(), Message: message, Labels: labels})
}

// now is a var so tests can stub it; wall-clock time is not relevant to
// lspclient's own sans-I/O behavior, only to this ambient logger.
var now = time.Now

// Printer writes events to an io.Writer in the teacher's own
// "timestamp message\n\tkey=value" layout.
type Printer struct {
	W io.Writer
}

// Export implements Exporter by writing ev to p.W.
func (p Printer) Export(ev Event) {
	if !ev.At.IsZero() {
		fmt.Fprint(p.W, ev.At.Format("2006/01/02 15:04:05 "))
	}
	io.WriteString(p.W, ev.Message)
	for _, l := range ev.Labels {
		fmt.Fprintf(p.W, "\n\t%s=%v", l.Key, l.Value)
	}
	io.WriteString(p.W, "\n")
}

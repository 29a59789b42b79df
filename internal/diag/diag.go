// Package diag carries the warnings-and-errors channel that the translator
// and the emitter write to (spec.md §6, §7). It is an
// explicit collaborator rather than a bare fmt.Fprintln to stderr so the
// core stays a pure, testable function of its inputs, per SPEC_FULL.md's
// Emitter-as-a-fold design note.
package diag

import (
	"fmt"

	"github.com/golang/glog"
)

// Sink receives diagnostics produced while translating and emitting.
// Warnings correspond to spec.md §7's "skip with warning" taxonomy; errors
// correspond to its "skip with error diagnostic" taxonomy (fatal failures
// are returned as Go errors, not reported through a Sink).
type Sink interface {
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// GlogSink is the default Sink, logging warnings and errors through glog's
// Warning and Error severities.
type GlogSink struct{}

func (GlogSink) Warnf(format string, args ...interface{}) {
	glog.Warningf(format, args...)
}

func (GlogSink) Errorf(format string, args ...interface{}) {
	glog.Errorf(format, args...)
}

// Diagnostic is a single recorded message, used by RecordingSink and by
// codegen.Emit's return value so callers that don't want glog's global
// logger (tests, the generate command before it replays them) can inspect
// what was said.
type Diagnostic struct {
	Level   Level
	Message string
}

// Level distinguishes warnings from errors in a recorded Diagnostic.
type Level int

const (
	Warning Level = iota
	Error
)

func (l Level) String() string {
	if l == Error {
		return "error"
	}
	return "warning"
}

// RecordingSink accumulates diagnostics in memory instead of logging them,
// used by tests and internally by codegen.Emit.
type RecordingSink struct {
	Diagnostics []Diagnostic
}

func (r *RecordingSink) Warnf(format string, args ...interface{}) {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{Level: Warning, Message: fmt.Sprintf(format, args...)})
}

func (r *RecordingSink) Errorf(format string, args ...interface{}) {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{Level: Error, Message: fmt.Sprintf(format, args...)})
}

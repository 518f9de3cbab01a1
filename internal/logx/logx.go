// Package logx is the pipeline's logging capability: leveled helpers over
// fatih/color, matching the teacher's plain colorized-stdout convention
// (no structured logging framework appears anywhere in the reference
// corpus), plus a guarded scoped context-tag primitive for per-project log
// attribution (spec §5, §9: "a process-wide context tag... installed via a
// guarded scoped-acquisition primitive that unconditionally clears on
// exit").
package logx

import (
	"fmt"
	"sync"

	"github.com/fatih/color"
)

var (
	mu      sync.Mutex
	project string
)

func tag() string {
	mu.Lock()
	defer mu.Unlock()
	if project == "" {
		return ""
	}
	return "[" + project + "] "
}

// Info prints an informational line.
func Info(format string, args ...interface{}) {
	fmt.Printf(tag()+format+"\n", args...)
}

// Warn prints a yellow warning line. Used for every "skip record, warn"
// recovery path in spec §7's error table.
func Warn(format string, args ...interface{}) {
	color.Yellow(tag()+format, args...)
}

// Error prints a red error line.
func Error(format string, args ...interface{}) {
	color.Red(tag()+format, args...)
}

// Success prints a green status line.
func Success(format string, args ...interface{}) {
	color.Green(tag()+format, args...)
}

// WithProject installs name as the process-wide context tag for the
// duration of fn, restoring the tag that was installed before it on
// return (including on panic or error), so an outermost call leaves no
// tag behind, mirroring the teacher's PersistentPreRunE/
// PersistentPostRunE acquire/release pairing.
func WithProject(name string, fn func() error) error {
	mu.Lock()
	previous := project
	project = name
	mu.Unlock()

	defer func() {
		mu.Lock()
		project = previous
		mu.Unlock()
	}()

	return fn()
}

// CurrentProject returns the currently installed context tag, or "" if
// none is set. Exposed for tests and for callers that need to propagate
// the tag into a goroutine.
func CurrentProject() string {
	mu.Lock()
	defer mu.Unlock()
	return project
}

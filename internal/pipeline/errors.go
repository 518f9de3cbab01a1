// Package pipeline wires components 1-12 of the mining pipeline (spec
// §2's data flow: (1,2) → 3 → 4 → 5 → 7 → 6 → 8 → 9 → 10, 11 → 12) into
// a single per-project run, plus an outer loop over configured projects.
// Grounded on the teacher's PersistentPreRunE/PersistentPostRunE scoped
// setup in cmd/omen/root.go for the "acquire, guarantee release" shape,
// generalized from one CLI invocation to one project's pipeline.
package pipeline

import "fmt"

// Kind tags a pipeline error with the recovery policy spec §7 assigns it.
// Most kinds are handled inline (skip-and-warn) and never surface past
// the component that raised them; the two that are fatal for a project
// (NetworkFailure, PersistenceFailure) are wrapped with their Kind so
// RunAll's per-project recovery can log it distinctly.
type Kind string

const (
	KindNetworkFailure  Kind = "network_failure"
	KindPersistence     Kind = "persistence_failure"
	KindMissingTag      Kind = "missing_tag"
	KindInsufficientData Kind = "insufficient_data"
)

// Error wraps an underlying error with the pipeline Kind that raised it,
// for the project-level recovery policy in spec §7's table.
type Error struct {
	Kind    Kind
	Project string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("pipeline[%s]: %s: %v", e.Project, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func fail(project string, kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Project: project, Err: err}
}

// Package method implements the stable method-identity table described in
// spec §9: a "last-known-methods" map keyed by (path, signature) that
// survives across releases, rebuilt after each one. Identities are opaque
// uuids; the table owns them, a per-release snapshot only borrows them.
package method

import (
	"github.com/google/uuid"
)

// Key uniquely identifies a callable within a single release: its file
// path plus the parser's canonical signature rendering. Spec §3's
// invariant — "the key separator between file path and signature in any
// serialised form is textually distinct from any character the parser
// emits" — is enforced by keeping Key a struct rather than a concatenated
// string; serialization callers choose their own unambiguous separator.
type Key struct {
	Path      string
	Signature string
}

// Table carries method identity forward across releases.
type Table struct {
	known map[Key]uuid.UUID
}

// NewTable returns an empty identity table.
func NewTable() *Table {
	return &Table{known: make(map[Key]uuid.UUID)}
}

// IdentityFor returns the stable id for key, allocating a fresh one the
// first time key is seen and reusing it on every subsequent call until the
// table is reset.
func (t *Table) IdentityFor(key Key) uuid.UUID {
	if id, ok := t.known[key]; ok {
		return id
	}
	id := uuid.New()
	t.known[key] = id
	return id
}

// ResetTo replaces the table's contents with exactly the given set of
// keys, carrying forward ids for keys that were already known and
// allocating fresh ids for new ones. Call once per release, after all
// IdentityFor lookups for that release have been made, per spec §4.7:
// "The last-known map is reset to the current release's set after each
// release completes."
func (t *Table) ResetTo(keys []Key) {
	next := make(map[Key]uuid.UUID, len(keys))
	for _, k := range keys {
		if id, ok := t.known[k]; ok {
			next[k] = id
		} else {
			next[k] = uuid.New()
		}
	}
	t.known = next
}

// Len reports how many identities the table currently holds.
func (t *Table) Len() int {
	return len(t.known)
}

// Package bugs builds the bug catalogue, links fix commits to tickets, and
// estimates the introduction-version proportion coefficient (spec §4.2,
// §4.3, §4.5).
package bugs

import (
	"time"

	"github.com/go-git/go-git/v5/plumbing"
)

// Ticket is a bug ticket, mutable during linking (spec §3: "BugTicket").
type Ticket struct {
	Key               string
	Created           time.Time
	Resolved          *time.Time
	AffectedVersions  []string // ordered sequence of version names, as parsed
	OpeningVersion    int      // OV, derived
	FixedVersion      int      // FV, derived
	IntroducedVersion int      // IV, derived or estimated
	FixCommit         *plumbing.Hash
}

// HasFixCommit reports whether a fix commit has been linked.
func (t *Ticket) HasFixCommit() bool {
	return t.FixCommit != nil
}

// Valid checks the post-linking invariants from spec §3: OV <= FV when both
// present, and 1 <= IV <= FV once assigned.
func (t *Ticket) Valid() bool {
	if t.OpeningVersion > 0 && t.FixedVersion > 0 && t.OpeningVersion > t.FixedVersion {
		return false
	}
	if t.IntroducedVersion > 0 && (t.IntroducedVersion < 1 || t.IntroducedVersion > t.FixedVersion) {
		return false
	}
	return true
}

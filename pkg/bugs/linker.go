package bugs

import (
	"regexp"

	"github.com/leonardomonnati2796/defectprediction/internal/vcs"
)

// issueKeyPattern matches tracker issue keys like "ABC-123" (spec §4.3).
var issueKeyPattern = regexp.MustCompile(`[A-Z][A-Z0-9]+-\d+`)

// LinkFixCommits scans the entire commit DAG reachable from every head of
// repo. For every commit, it extracts issue keys from the full message;
// for each key present in byKey whose ticket has no fix commit yet, it
// records this commit as the fix commit and the commit's author timestamp
// (converted to local time) as the resolution timestamp. First match wins;
// later commits referencing the same ticket never overwrite (spec §4.3).
func LinkFixCommits(repo vcs.Repository, byKey map[string]*Ticket) error {
	heads, err := repo.Heads()
	if err != nil {
		return err
	}

	seen := make(map[string]bool)
	for _, head := range heads {
		iter, err := repo.LogFrom(head, "")
		if err != nil {
			continue
		}

		walkErr := iter.ForEach(func(c vcs.Commit) error {
			hash := c.Hash().String()
			if seen[hash] {
				return nil
			}
			seen[hash] = true

			for _, key := range issueKeyPattern.FindAllString(c.Message(), -1) {
				ticket, ok := byKey[key]
				if !ok || ticket.HasFixCommit() {
					continue
				}
				h := c.Hash()
				ticket.FixCommit = &h
				resolved := c.Author().When.Local()
				ticket.Resolved = &resolved
			}
			return nil
		})
		iter.Close()
		if walkErr != nil {
			return walkErr
		}
	}
	return nil
}

// IndexByKey builds a lookup table from ticket key to ticket.
func IndexByKey(tickets []*Ticket) map[string]*Ticket {
	m := make(map[string]*Ticket, len(tickets))
	for _, t := range tickets {
		m[t.Key] = t
	}
	return m
}

package bugs

import (
	"context"
	"time"

	"github.com/leonardomonnati2796/defectprediction/internal/logx"
	"github.com/leonardomonnati2796/defectprediction/internal/tracker"
	"github.com/leonardomonnati2796/defectprediction/pkg/release"
)

// FetchCatalogue retrieves fixed-bug tickets from client, parses them, and
// assigns OV/FV from idx. Malformed records (unparsable timestamps) are
// skipped with a warning, never fatal (spec §4.2). Output is in creation
// order, ascending.
func FetchCatalogue(ctx context.Context, client tracker.Client, idx *release.Index) ([]*Ticket, error) {
	raw, err := client.SearchFixedBugs(ctx)
	if err != nil {
		return nil, err
	}

	tickets := make([]*Ticket, 0, len(raw))
	for _, r := range raw {
		t, ok := parseTicket(r, idx)
		if !ok {
			logx.Warn("bugs: skipping malformed ticket %q", r.Key)
			continue
		}
		tickets = append(tickets, t)
	}

	sortByCreation(tickets)
	return tickets, nil
}

func parseTicket(r tracker.RawTicket, idx *release.Index) (*Ticket, bool) {
	if r.Key == "" || r.Fields.Created == "" {
		return nil, false
	}
	created, err := parseTimestamp(r.Fields.Created)
	if err != nil {
		return nil, false
	}

	t := &Ticket{
		Key:              r.Key,
		Created:          created,
		AffectedVersions: append([]string(nil), r.Fields.Versions...),
	}

	if r.Fields.ResolutionDate != "" {
		if resolved, err := parseTimestamp(r.Fields.ResolutionDate); err == nil {
			t.Resolved = &resolved
		}
	}

	if idx != nil {
		t.OpeningVersion = idx.IndexForDate(created)
		if t.Resolved != nil {
			t.FixedVersion = idx.IndexForDate(*t.Resolved)
		}
		if len(t.AffectedVersions) > 0 {
			t.IntroducedVersion = minAffectedIndex(t.AffectedVersions, idx)
		}
	}

	return t, true
}

func minAffectedIndex(versions []string, idx *release.Index) int {
	byName := make(map[string]int, idx.Len())
	for _, r := range idx.Releases() {
		byName[r.Name] = r.Index
	}

	min := 0
	for _, v := range versions {
		i, ok := byName[v]
		if !ok {
			continue
		}
		if min == 0 || i < min {
			min = i
		}
	}
	return min
}

func sortByCreation(tickets []*Ticket) {
	for i := 1; i < len(tickets); i++ {
		for j := i; j > 0 && tickets[j-1].Created.After(tickets[j].Created); j-- {
			tickets[j-1], tickets[j] = tickets[j], tickets[j-1]
		}
	}
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.000-0700",
	"2006-01-02T15:04:05-0700",
	"2006-01-02",
}

func parseTimestamp(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		} else {
			lastErr = err
		}
	}
	return time.Time{}, lastErr
}

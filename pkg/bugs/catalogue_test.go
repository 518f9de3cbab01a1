package bugs

import (
	"context"
	"testing"
	"time"

	"github.com/leonardomonnati2796/defectprediction/internal/tracker"
	"github.com/leonardomonnati2796/defectprediction/pkg/release"
)

type fakeClient struct {
	tickets []tracker.RawTicket
}

func (f *fakeClient) FetchVersions(ctx context.Context) ([]tracker.RawVersion, error) {
	return nil, nil
}

func (f *fakeClient) SearchFixedBugs(ctx context.Context) ([]tracker.RawTicket, error) {
	return f.tickets, nil
}

func buildIndex(t *testing.T) *release.Index {
	t.Helper()
	d1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	d3 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	idx, err := release.NewIndex([]release.Descriptor{
		{Name: "R1", Date: &d1},
		{Name: "R2", Date: &d2},
		{Name: "R3", Date: &d3},
	})
	if err != nil {
		t.Fatal(err)
	}
	return idx
}

func TestFetchCatalogue_ParsesAndSortsByCreation(t *testing.T) {
	client := &fakeClient{tickets: []tracker.RawTicket{
		{Key: "P-2", Fields: struct {
			Created        string   `json:"created"`
			ResolutionDate string   `json:"resolutiondate"`
			Versions       []string `json:"affectedVersions"`
		}{Created: "2024-02-15T00:00:00Z", ResolutionDate: "2024-03-02T00:00:00Z"}},
		{Key: "P-1", Fields: struct {
			Created        string   `json:"created"`
			ResolutionDate string   `json:"resolutiondate"`
			Versions       []string `json:"affectedVersions"`
		}{Created: "2024-01-15T00:00:00Z", Versions: []string{"R1"}}},
	}}

	idx := buildIndex(t)
	tickets, err := FetchCatalogue(context.Background(), client, idx)
	if err != nil {
		t.Fatalf("FetchCatalogue() error = %v", err)
	}
	if len(tickets) != 2 {
		t.Fatalf("expected 2 tickets, got %d", len(tickets))
	}
	if tickets[0].Key != "P-1" || tickets[1].Key != "P-2" {
		t.Fatalf("expected ascending creation order, got %s, %s", tickets[0].Key, tickets[1].Key)
	}
	if tickets[0].IntroducedVersion != 1 {
		t.Errorf("expected P-1 IV=1 from affected versions, got %d", tickets[0].IntroducedVersion)
	}
	if tickets[1].FixedVersion != 3 {
		t.Errorf("expected P-2 FV=3, got %d", tickets[1].FixedVersion)
	}
}

func TestFetchCatalogue_SkipsMalformed(t *testing.T) {
	client := &fakeClient{tickets: []tracker.RawTicket{
		{Key: "", Fields: struct {
			Created        string   `json:"created"`
			ResolutionDate string   `json:"resolutiondate"`
			Versions       []string `json:"affectedVersions"`
		}{Created: "2024-01-15T00:00:00Z"}},
		{Key: "P-2", Fields: struct {
			Created        string   `json:"created"`
			ResolutionDate string   `json:"resolutiondate"`
			Versions       []string `json:"affectedVersions"`
		}{}}, // missing created
	}}

	tickets, err := FetchCatalogue(context.Background(), client, buildIndex(t))
	if err != nil {
		t.Fatalf("FetchCatalogue() error = %v", err)
	}
	if len(tickets) != 0 {
		t.Fatalf("expected 0 tickets after skipping malformed records, got %d", len(tickets))
	}
}

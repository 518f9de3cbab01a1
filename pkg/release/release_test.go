package release

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestNewIndex_EmptyFails(t *testing.T) {
	if _, err := NewIndex(nil); err != ErrNoReleases {
		t.Fatalf("expected ErrNoReleases, got %v", err)
	}
}

func TestNewIndex_FiltersUndated(t *testing.T) {
	idx, err := NewIndex([]Descriptor{
		{Name: "unreleased"},
		{Name: "R1", Date: date(2024, 1, 1)},
	})
	if err != nil {
		t.Fatalf("NewIndex() error = %v", err)
	}
	if idx.Len() != 1 {
		t.Fatalf("expected 1 release, got %d", idx.Len())
	}
}

func TestNewIndex_SortsByDateThenName(t *testing.T) {
	idx, err := NewIndex([]Descriptor{
		{Name: "R3", Date: date(2024, 3, 1)},
		{Name: "R1b", Date: date(2024, 1, 1)},
		{Name: "R1a", Date: date(2024, 1, 1)},
		{Name: "R2", Date: date(2024, 2, 1)},
	})
	if err != nil {
		t.Fatalf("NewIndex() error = %v", err)
	}
	want := []string{"R1a", "R1b", "R2", "R3"}
	for i, name := range want {
		rel, ok := idx.ByIndex(i + 1)
		if !ok || rel.Name != name {
			t.Errorf("index %d: want %s, got %+v", i+1, name, rel)
		}
	}
}

func TestIndex_IndexForDate(t *testing.T) {
	idx, _ := NewIndex([]Descriptor{
		{Name: "R1", Date: date(2024, 1, 1)},
		{Name: "R2", Date: date(2024, 2, 1)},
		{Name: "R3", Date: date(2024, 3, 1)},
	})

	cases := []struct {
		d    time.Time
		want int
	}{
		{time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC), 1},
		{time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 1},
		{time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), 2},
		{time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), 3},
	}
	for _, c := range cases {
		if got := idx.IndexForDate(c.d); got != c.want {
			t.Errorf("IndexForDate(%v) = %d, want %d", c.d, got, c.want)
		}
	}
}

func TestIndex_CutoffCount(t *testing.T) {
	idx, _ := NewIndex([]Descriptor{
		{Name: "R1", Date: date(2024, 1, 1)},
		{Name: "R2", Date: date(2024, 2, 1)},
		{Name: "R3", Date: date(2024, 3, 1)},
	})
	// ceil(3*0.5) = 2: the boundary release is included, per spec's boundary case.
	if got := idx.CutoffCount(0.5); got != 2 {
		t.Errorf("CutoffCount(0.5) = %d, want 2", got)
	}
	if got := idx.CutoffCount(1.0); got != 3 {
		t.Errorf("CutoffCount(1.0) = %d, want 3", got)
	}
	if got := idx.CutoffCount(0); got != 0 {
		t.Errorf("CutoffCount(0) = %d, want 0", got)
	}
}

func TestIndex_ByIndex_OutOfRange(t *testing.T) {
	idx, _ := NewIndex([]Descriptor{{Name: "R1", Date: date(2024, 1, 1)}})
	if _, ok := idx.ByIndex(0); ok {
		t.Error("ByIndex(0) should fail")
	}
	if _, ok := idx.ByIndex(2); ok {
		t.Error("ByIndex(2) should fail for 1-release index")
	}
}

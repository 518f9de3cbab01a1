package label

import "testing"

func TestIsBuggy_WithinWindowAndTouched(t *testing.T) {
	tickets := []Ticket{
		{IntroducedVersion: 1, FixedVersion: 3, Touched: map[string]bool{"f/g": true}},
	}
	if !IsBuggy("f/g", 1, tickets) {
		t.Error("expected IsBuggy at release 1")
	}
	if !IsBuggy("f/g", 2, tickets) {
		t.Error("expected IsBuggy at release 2")
	}
	if IsBuggy("f/g", 3, tickets) {
		t.Error("expected not buggy at release 3: window is half-open [IV, FV)")
	}
}

func TestIsBuggy_NotTouched(t *testing.T) {
	tickets := []Ticket{
		{IntroducedVersion: 1, FixedVersion: 3, Touched: map[string]bool{"other": true}},
	}
	if IsBuggy("f/g", 1, tickets) {
		t.Error("expected not buggy when method key is not in touched set")
	}
}

func TestIsBuggy_DropsNonQualifyingTickets(t *testing.T) {
	tickets := []Ticket{
		{IntroducedVersion: 0, FixedVersion: 3, Touched: map[string]bool{"f/g": true}},
		{IntroducedVersion: 1, FixedVersion: 0, Touched: map[string]bool{"f/g": true}},
	}
	if IsBuggy("f/g", 1, tickets) {
		t.Error("expected tickets lacking IV or FV to be dropped")
	}
}

func TestIsBuggy_ShortCircuitsOnFirstMatch(t *testing.T) {
	tickets := []Ticket{
		{IntroducedVersion: 5, FixedVersion: 6, Touched: map[string]bool{}},
		{IntroducedVersion: 1, FixedVersion: 3, Touched: map[string]bool{"f/g": true}},
	}
	if !IsBuggy("f/g", 2, tickets) {
		t.Error("expected match from second ticket")
	}
}

func TestScenario1_TinyCatalogueOneTicket(t *testing.T) {
	// Spec §8 scenario 1: OV=2, FV=3, IV=1; f/g buggy at R1 and R2, not R3.
	tickets := []Ticket{
		{IntroducedVersion: 1, FixedVersion: 3, Touched: map[string]bool{"f/g": true}},
	}
	if !IsBuggy("f/g", 1, tickets) {
		t.Error("expected buggy at R1")
	}
	if !IsBuggy("f/g", 2, tickets) {
		t.Error("expected buggy at R2")
	}
	if IsBuggy("f/g", 3, tickets) {
		t.Error("expected not buggy at R3")
	}
}

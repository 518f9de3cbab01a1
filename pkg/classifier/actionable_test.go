package classifier

import "testing"

func TestPickActionable_FirstRankedMatchWins(t *testing.T) {
	ranked := []string{"NR", "CyclomaticComplexity", "CodeSmells"}
	actionable := []string{"CodeSmells", "CyclomaticComplexity"}

	got := PickActionable(ranked, actionable)
	if got != "CyclomaticComplexity" {
		t.Errorf("PickActionable() = %q, want CyclomaticComplexity (first ranked match)", got)
	}
}

func TestPickActionable_FallsBackToFirstConfigured(t *testing.T) {
	ranked := []string{"NR", "NAuth"}
	actionable := []string{"CodeSmells", "CyclomaticComplexity"}

	got := PickActionable(ranked, actionable)
	if got != "CodeSmells" {
		t.Errorf("PickActionable() = %q, want fallback CodeSmells", got)
	}
}

func TestPickActionable_EmptyActionableListReturnsEmpty(t *testing.T) {
	if got := PickActionable([]string{"NR"}, nil); got != "" {
		t.Errorf("PickActionable() = %q, want empty", got)
	}
}

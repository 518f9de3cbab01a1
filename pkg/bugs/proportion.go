package bugs

import "sort"

// DefaultProportion is ρ's fallback value when no ticket has a complete
// (IV, OV, FV) triple (spec §3: "ProportionCoefficient... default 1.5
// when unestimable").
const DefaultProportion = 1.5

// EstimateProportion computes ρ, the median of (FV−IV)/(FV−OV) across
// tickets with IV>0, OV>0, FV>0, FV>OV (spec §4.5). Returns
// DefaultProportion if no ticket qualifies.
func EstimateProportion(tickets []*Ticket) float64 {
	var samples []float64
	for _, t := range tickets {
		if t.IntroducedVersion > 0 && t.OpeningVersion > 0 && t.FixedVersion > 0 &&
			t.FixedVersion > t.OpeningVersion {
			p := float64(t.FixedVersion-t.IntroducedVersion) / float64(t.FixedVersion-t.OpeningVersion)
			samples = append(samples, p)
		}
	}
	if len(samples) == 0 {
		return DefaultProportion
	}
	return median(samples)
}

func median(xs []float64) float64 {
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// EstimateIntroducedVersion derives IV for a ticket lacking affected
// versions: round(FV − (FV−OV)·ρ), clamped to >= 1 (spec §4.6). Callers
// must first confirm FV > OV > 0; returns 0 otherwise.
func EstimateIntroducedVersion(t *Ticket, rho float64) int {
	if !(t.FixedVersion > 0 && t.OpeningVersion > 0 && t.FixedVersion > t.OpeningVersion) {
		return 0
	}
	iv := roundHalfAwayFromZero(float64(t.FixedVersion) - float64(t.FixedVersion-t.OpeningVersion)*rho)
	if iv < 1 {
		iv = 1
	}
	return iv
}

func roundHalfAwayFromZero(x float64) int {
	if x >= 0 {
		return int(x + 0.5)
	}
	return -int(-x + 0.5)
}

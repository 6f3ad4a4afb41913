package catalogue

import (
	"context"
	"fmt"

	"github.com/Conceptual-Machines/fretboard-api/internal/fretboard"
	"github.com/Conceptual-Machines/fretboard-api/internal/theory"
)

// AuditResult compares the tones a shape sounds with the tones its quality
// calls for, all as intervals above the root
type AuditResult struct {
	Label    string `json:"label"`
	Chart    string `json:"chart"`
	Position int    `json:"position"`
	Expected []int  `json:"expected"`
	Realized []int  `json:"realized"`
	Missing  []int  `json:"missing"`
	Extra    []int  `json:"extra"`
	// FifthOmitted is set when the perfect fifth is absent; this alone does
	// not fail the audit
	FifthOmitted bool `json:"fifth_omitted"`
	OK           bool `json:"ok"`
}

func (r AuditResult) String() string {
	status := "ok"
	if !r.OK {
		status = "FAIL"
	}
	return fmt.Sprintf("%-4s %-8s %-18s expected=%v realized=%v missing=%v extra=%v",
		status, r.Label, r.Chart, r.Expected, r.Realized, r.Missing, r.Extra)
}

// Audit checks one shape. The perfect fifth may be left out of any chord
// with more than two tones.
func Audit(shape Shape, tuning fretboard.Tuning) AuditResult {
	expected := theory.NormalizeIntervalSet(theory.ResolveQualityToIntervals(shape.Quality))
	realized := fretboard.RealizedIntervals(shape.Frets, tuning, shape.RootPC)

	var want, have [12]bool
	for _, iv := range expected {
		want[iv] = true
	}
	for _, iv := range realized {
		have[iv] = true
	}

	result := AuditResult{
		Label:    shape.Label(),
		Chart:    shape.Chart(),
		Position: shape.Position,
		Expected: expected,
		Realized: realized,
		Missing:  []int{},
		Extra:    []int{},
	}

	for _, iv := range expected {
		if have[iv] {
			continue
		}
		if iv == theory.PerfectFifth && len(expected) > 2 {
			result.FifthOmitted = true
			continue
		}
		result.Missing = append(result.Missing, iv)
	}
	for _, iv := range realized {
		if !want[iv] {
			result.Extra = append(result.Extra, iv)
		}
	}

	result.OK = theory.IsRegistered(shape.Quality) && len(result.Missing) == 0 && len(result.Extra) == 0
	return result
}

// AuditStore audits every shape in store and returns the results in
// catalogue order along with the number of failures
func AuditStore(ctx context.Context, store Store, tuning fretboard.Tuning) ([]AuditResult, int, error) {
	shapes, err := store.All(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load catalogue: %w", err)
	}

	results := make([]AuditResult, 0, len(shapes))
	failures := 0
	for _, s := range shapes {
		r := Audit(s, tuning)
		if !r.OK {
			failures++
		}
		results = append(results, r)
	}
	return results, failures, nil
}

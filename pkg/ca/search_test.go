package ca

import (
	"testing"

	"github.com/conwaylife/ofind/pkg/rule"
)

func TestVerifyOscillatorAcceptsBlinker(t *testing.T) {
	cfg := Config{Rule: rule.Life, Period: 2, RotorWidth: 3}
	history := [][]Row{
		{blinkerCol, 0},
		{blinkerCol, 0},
		{blinkerCol, 0},
	}
	if !VerifyOscillator(cfg, history) {
		t.Fatal("VerifyOscillator rejected a genuine period-2 blinker")
	}
}

func TestVerifyOscillatorRejectsNonOscillator(t *testing.T) {
	cfg := Config{Rule: rule.Life, Period: 2, RotorWidth: 3}
	// A single live cell anywhere simply dies and never returns.
	history := [][]Row{
		{0, 0},
		{blinkerCol, 0},
		{0, 0},
	}
	if VerifyOscillator(cfg, history) {
		t.Fatal("VerifyOscillator accepted a pattern that dies out")
	}
}

func TestRunReportsNotFoundWithinTinyBudget(t *testing.T) {
	cfg := Config{Rule: rule.Life, Period: 7, RotorWidth: 3, MaxDeepen: 1}
	outcome, err := Run(cfg, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if outcome.Found {
		t.Fatal("a 1-row-deep search for a period-7 oscillator should not claim success")
	}
}

func TestRunRespectsNiceHook(t *testing.T) {
	calls := 0
	cfg := Config{
		Rule: rule.Life, Period: 2, RotorWidth: 3, MaxDeepen: 2,
		Nice: func() { calls++ },
	}
	if _, err := Run(cfg, nil); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if calls == 0 {
		t.Error("Nice hook was never called during the search")
	}
}

// TestRunFindsStillLife (S1): a period-1 "oscillator" is a still life.
// With no stator columns configured, an all-dead rotor row closes the
// search the moment it appears three rows deep (IsStatorClosed is
// trivially true over an empty stator mask), so a tiny, unbounded rotor
// search must still terminate with a genuine, independently-verifiable
// result.
func TestRunFindsStillLife(t *testing.T) {
	cfg := Config{Rule: rule.Life, Period: 1, RotorWidth: 2, MaxDeepen: 10}
	outcome, err := Run(cfg, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !outcome.Found {
		t.Fatal("a period-1 search should find a still life within 10 rows")
	}
	if !VerifyOscillator(cfg, outcome.History) {
		t.Fatal("the still life Run found failed independent verification")
	}
}

// TestRunFindsBlinker (S2): the canonical period-2 oscillator, a
// 3-wide rotor with no stator, must be found and must independently
// verify.
func TestRunFindsBlinker(t *testing.T) {
	cfg := Config{Rule: rule.Life, Period: 2, RotorWidth: 3, MaxDeepen: 10}
	outcome, err := Run(cfg, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !outcome.Found {
		t.Fatal("a period-2, 3-wide rotor search should find the blinker")
	}
	if !VerifyOscillator(cfg, outcome.History) {
		t.Fatal("the blinker Run found failed independent verification")
	}
	if !IsNontrivial(outcome.History[len(outcome.History)-1], cfg.Period) {
		t.Fatal("the found history's deepest row must genuinely cycle with period 2, not a smaller divisor")
	}
}

// TestRunFindsWiderPeriod2Oscillator (S3): a period-2 oscillator over a
// wider rotor than the blinker needs (the toad's scale) must also be
// found and verify independently.
func TestRunFindsWiderPeriod2Oscillator(t *testing.T) {
	cfg := Config{Rule: rule.Life, Period: 2, RotorWidth: 4, MaxDeepen: 12}
	outcome, err := Run(cfg, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !outcome.Found {
		t.Fatal("a period-2, 4-wide rotor search should find an oscillator")
	}
	if !VerifyOscillator(cfg, outcome.History) {
		t.Fatal("the found oscillator failed independent verification")
	}
}

// TestRunIsDeterministic (S4): re-running an identical configuration
// must reach an identical outcome — a sanity check on the duplicate
// hash and BFS ordering never introducing nondeterministic dedup
// behaviour (a distinct state silently dropped, or vice versa, would
// make successive runs disagree).
func TestRunIsDeterministic(t *testing.T) {
	cfg := Config{Rule: rule.Life, Period: 2, RotorWidth: 3, MaxDeepen: 10}
	first, err := Run(cfg, nil)
	if err != nil {
		t.Fatalf("first Run: %v", err)
	}
	second, err := Run(cfg, nil)
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if first.Found != second.Found || first.Depth != second.Depth {
		t.Fatalf("Run was not deterministic: first=%+v second=%+v", first, second)
	}
	for i := range first.History {
		for j := range first.History[i] {
			if first.History[i][j] != second.History[i][j] {
				t.Fatalf("Run was not deterministic at row %d phase %d: %v vs %v", i, j, first.History[i], second.History[i])
			}
		}
	}
}

// TestRunReportsDeepestOnExhaustion (S5): a search bounded too tight
// to ever reach a closing depth must report Found == false but still
// carry the deepest partial pattern reached; the caller (cmd/ofind) is
// responsible for the exact "No patterns found" wording, but the
// Outcome it renders from must be well-formed.
func TestRunReportsDeepestOnExhaustion(t *testing.T) {
	cfg := Config{Rule: rule.Life, Period: 7, RotorWidth: 3, MaxDeepen: 1}
	outcome, err := Run(cfg, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if outcome.Found {
		t.Fatal("a 1-row-deep search for a period-7 oscillator should not claim success")
	}
	if outcome.Deepest == nil {
		t.Fatal("an exhausted search should still report the deepest partial pattern it reached")
	}
}

// TestRunSurvivesArenaCompaction (S6): forcing the arena to compact
// mid-search (via a tiny ArenaCapacity) must not change whether, or
// what, the search finds — the queue/deepest-state remap through
// Compact must be idempotent with respect to the search's outcome.
func TestRunSurvivesArenaCompaction(t *testing.T) {
	baseline := Config{Rule: rule.Life, Period: 2, RotorWidth: 3, MaxDeepen: 10}
	tight := baseline
	tight.ArenaCapacity = 8

	want, err := Run(baseline, nil)
	if err != nil {
		t.Fatalf("baseline Run: %v", err)
	}
	got, err := Run(tight, nil)
	if err != nil {
		t.Fatalf("compacting Run: %v", err)
	}
	if want.Found != got.Found {
		t.Fatalf("compaction changed whether a result was found: want %v, got %v", want.Found, got.Found)
	}
	if got.Found && !VerifyOscillator(tight, got.History) {
		t.Fatal("the oscillator found under forced compaction failed independent verification")
	}
}

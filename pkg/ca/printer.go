package ca

import (
	"fmt"
	"strings"
)

// Print renders every generation of a found oscillator as a grid of
// "." (dead) and "o" (alive) cells, one block per phase, in the style
// spec.md section 4.5 describes: ancestor rows are walked from the
// seed down to the deepest row reached, each row optionally completed
// by mirroring across the configured symmetry axis.
func Print(history [][]Row, cfg Config) string {
	var b strings.Builder
	for phase := 0; phase < cfg.Period; phase++ {
		fmt.Fprintf(&b, "Generation %d:\n", phase)
		for _, rows := range history {
			b.WriteString(printRow(rows[phase], cfg))
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// PrintOutcome renders a found Outcome's history in full, expanding it
// first with whichever completion closed the branch — a row-symmetric
// mirror, or an explicit stator Completion — so the printed grid shows
// the whole pattern rather than just the half that was actually
// searched.
func PrintOutcome(o *Outcome, cfg Config) string {
	return Print(expandHistory(o), cfg)
}

// expandHistory returns the full set of spatial row-tuples to display
// for o: its searched History, plus either a row-symmetric mirror
// completion or a stator Completion, whichever closed the branch.
func expandHistory(o *Outcome) [][]Row {
	if o.Axis != AxisNone {
		return mirrorHistory(o.History, o.Axis)
	}
	if len(o.Completion) > 0 {
		out := make([][]Row, 0, len(o.History)+len(o.Completion))
		out = append(out, o.History...)
		out = append(out, o.Completion...)
		return out
	}
	return o.History
}

// mirrorHistory completes a row-symmetric pattern by reflecting
// history back on itself across axis — the same trick printRow
// already applies to columns (SymOdd/SymEven), generalised to the row
// dimension. An "even" axis sits on the closing row itself (its mirror
// is itself, so it is not duplicated); an "odd" axis sits between the
// closing row and its unbuilt mirror partner, so both are included.
func mirrorHistory(history [][]Row, axis RowSymmetryAxis) [][]Row {
	out := append([][]Row{}, history...)
	start := len(history) - 2
	if axis == AxisOddZero || axis == AxisOddHalf {
		start = len(history) - 1
	}
	for i := start; i >= 0; i-- {
		out = append(out, mirrorPhaseTuple(history[i], axis))
	}
	return out
}

// mirrorPhaseTuple reflects a single row's per-phase values across
// axis — the phase-dimension counterpart of the spatial reflection
// mirrorHistory performs: generation i's mirror partner is generation
// m-i (mod Period), where m locates the axis among the Period phases,
// matching the comparisons rowSymmetricWrap made to detect it.
func mirrorPhaseTuple(tuple []Row, axis RowSymmetryAxis) []Row {
	p := len(tuple)
	idx := func(i int) int { return ((i % p) + p) % p }
	var m int
	switch axis {
	case AxisOddZero:
		m = 1
	case AxisEvenHalf:
		m = p
	case AxisOddHalf:
		m = p + 1
	default: // AxisEvenZero
		m = 0
	}
	out := make([]Row, p)
	for i := range out {
		out[i] = tuple[idx(m-i)]
	}
	return out
}

// printRow renders one row, completed with its mirror image when the
// search exploited a symmetry: "odd" mirrors every column except the
// axis column itself (column 0), "even" mirrors every column including
// an implicit one just left of column 0.
func printRow(r Row, cfg Config) string {
	w := cfg.Width()
	cell := func(i int) byte {
		if bit(r, i) {
			return 'o'
		}
		return '.'
	}

	var out []byte
	switch cfg.Symmetry {
	case SymOdd:
		for i := w - 1; i > 0; i-- {
			out = append(out, cell(i))
		}
		for i := 0; i < w; i++ {
			out = append(out, cell(i))
		}
	case SymEven:
		for i := w - 1; i >= 0; i-- {
			out = append(out, cell(i))
		}
		for i := 0; i < w; i++ {
			out = append(out, cell(i))
		}
	default:
		for i := 0; i < w; i++ {
			out = append(out, cell(i))
		}
	}
	return string(out)
}

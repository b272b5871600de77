package ca

import "github.com/conwaylife/ofind/pkg/rule"

// neighborCount counts the live cells among the 8 outer-totalistic
// neighbours of column i, drawing from the row above, the row itself,
// and the row below. Columns outside [0, W) are treated as dead — the
// fixed boundary a bounded rotor+stator pattern implies.
func neighborCount(above, self, below Row, i, w int) int {
	n := 0
	for _, r := range [3]Row{above, self, below} {
		for dx := -1; dx <= 1; dx++ {
			x := i + dx
			if r == self && dx == 0 {
				continue
			}
			if x < 0 || x >= w {
				continue
			}
			if bit(r, x) {
				n++
			}
		}
	}
	return n
}

// Evolve3 advances the middle row (self) one generation given the rows
// directly above and below it, under the outer-totalistic rule r, over
// a fixed-width window of w columns. This is the one true evolution
// primitive of the engine: it is used both as the independent reference
// simulator (the "simulate" CLI command and the rule-consistency
// property test) and, internally, to validate/enumerate row extensions
// across phases (component B/D), since both are literally "evolve a
// three-row window one generation under the rule" per spec.md 4.1/4.2.
func Evolve3(above, self, below Row, w int, r rule.Rule) Row {
	var out Row
	for i := 0; i < w; i++ {
		alive := bit(self, i)
		n := neighborCount(above, self, below, i, w)
		if r.Next(alive, n) {
			out = setBit(out, i, true)
		}
	}
	return out
}

// windowCode packs the 3-cell neighbourhood (prev, self, next) around
// column i of row into the 3-bit encoding of spec.md section 4.1: bit0
// = prev, bit1 = self, bit2 = next. The left boundary respects the
// configured symmetry: "odd" mirrors column -1 to column +1 (the axis
// runs through column 0), "even" mirrors column -1 to column 0 (the
// axis runs between columns -1 and 0); "none" treats off-grid cells as
// dead. The right boundary is always a fixed dead border.
func windowCode(row Row, i, w int, sym Symmetry) uint8 {
	var code uint8
	prev := false
	switch {
	case i-1 >= 0:
		prev = bit(row, i-1)
	case i-1 == -1:
		switch sym {
		case SymOdd:
			if 1 < w {
				prev = bit(row, 1)
			}
		case SymEven:
			prev = bit(row, 0)
		}
	}
	if prev {
		code |= 1
	}
	if bit(row, i) {
		code |= 2
	}
	if i+1 < w && bit(row, i+1) {
		code |= 4
	}
	return code
}

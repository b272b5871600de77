package ca

import "github.com/conwaylife/ofind/pkg/rule"

// tables holds the precomputed, per-rule lookup tables of spec.md
// section 4.1 (component A). They depend only on the rule and are
// built once by newTables; nothing here depends on period, width, or
// symmetry.
type tables struct {
	rule rule.Rule

	// extTab[aCode][bCode][cCode] gives the forced next-generation
	// value of the self cell encoded in bCode, given the 3-cell window
	// codes (spec.md 4.1 "3-cell encoding": bit0=prev, bit1=self,
	// bit2=next) of the row above, the row itself, and the row below,
	// all centred on the same column. This realises the contract of
	// spec.md's extTab: "returns the subset ... consistent with the
	// rule once the middle cell's next value is forced."
	extTab [8][8][8]bool

	// tcompatible[i][j][k] says whether three adjacent 5-cell stator
	// columns are locally rule-compatible; used by the stator
	// termination DP (component E). i, j, k range over the 32 values
	// of a 5-bit column.
	tcompatible [32][32][32]bool

	// stabtab[index] says whether a 3x3-cell neighbourhood stabilises
	// (a live-cell-preserving still life) under the rule; index packs
	// the 3x3 block into 9 bits (bit (row*3+col) = cell state, row/col
	// in 0..2).
	stabtab [512]bool

	// nxTerm and revTerm are the column-sweep stator-termination tables
	// of spec.md section 4.5(b) (component E's primary algorithm): a
	// termState is a bitmask over the 16 possible 2x2 cell-block
	// configurations (top-left/top-right/bottom-left/bottom-right, bit
	// c set iff block c remains a viable still-life completion).
	// nxTerm[state<<6|colWindow] advances state by one swept row, where
	// colWindow packs the 3-bit window codes (spec.md 4.1) of the
	// newly-swept row's top and bottom halves; a config's outgoing
	// (left) column must be a fixed point of the rule before the
	// shifted config survives. revTerm[state] is the pure top/bottom
	// swap permutation, satisfying revTerm[revTerm[x]] == x by
	// construction (the round-trip of testable property 8) for every
	// state, not just initialTermState.
	nxTerm  [1 << 22]uint16
	revTerm [1 << 16]uint16
}

// termState is the column-sweep DP's alphabet (see tables.nxTerm).
type termState uint16

// initialTermState is the singleton state containing only the
// all-dead 2x2 block (config 0): the fixpoint a column sweep converges
// to when swept forward over all-dead columns, per spec.md 4.5(b).1.
const initialTermState termState = 1

// downShifts is the rule-independent table of spec.md 4.1: given an
// 8-element window-code membership bitmap y (bit i set iff window code
// i in [0,8) is still a live possibility), returns the 4-bit
// projection onto the rightmost two cells of those codes after
// shifting one column to the right.
//
// Open question (spec.md section 9, preserved deliberately): the
// original source iterates "x < 0377" rather than "x <= 0377", leaving
// downShifts[255] — the "all three cells of every remaining candidate
// are unknown" entry — zero. We keep that behaviour rather than "fix"
// it; see TestDownShiftsAllUnknownIsZero.
var downShifts [256]uint8

func init() {
	for y := 0; y < 0377; y++ { // deliberately not <= 0377, see doc comment
		var proj uint8
		for code := 0; code < 8; code++ {
			if y&(1<<uint(code)) == 0 {
				continue
			}
			// code's (self, next) become the shifted (prev, self);
			// the new "next" slot is unknown (both values possible),
			// so each surviving code contributes two candidate
			// 2-cell projections.
			self := (code >> 1) & 1
			next := (code >> 2) & 1
			base := self | next<<1
			proj |= 1 << uint(base)
			proj |= 1 << uint(base|1<<2) // next-unknown branch folded in
		}
		downShifts[y] = proj & 0xF
	}
}

// newTables builds the rule-dependent tables for r by direct
// enumeration, per spec.md 4.1 ("Built by direct enumeration over all
// (x,a,b,c)").
func newTables(r rule.Rule) *tables {
	t := &tables{rule: r}

	for a := 0; a < 8; a++ {
		for b := 0; b < 8; b++ {
			for c := 0; c < 8; c++ {
				alive := b&2 != 0
				count := popcount3(uint8(a)) + bitVal(b, 0) + bitVal(b, 2) + popcount3(uint8(c))
				t.extTab[a][b][c] = r.Next(alive, count)
			}
		}
	}

	for i := 0; i < 32; i++ {
		for j := 0; j < 32; j++ {
			for k := 0; k < 32; k++ {
				t.tcompatible[i][j][k] = stillLifeColumnsCompatible(r, i, j, k)
			}
		}
	}
	for idx := 0; idx < 512; idx++ {
		t.stabtab[idx] = stillLifeBlockStable(r, idx)
	}

	t.buildTerm()

	return t
}

// swapTopBottom maps a 2x2 block config c (bit0=tl, bit1=tr, bit2=bl,
// bit3=br) to the config obtained by swapping its top and bottom rows.
func swapTopBottom(c int) int {
	return (c>>2)&3 | (c&3)<<2
}

func boolBit(b bool) int {
	if b {
		return 1
	}
	return 0
}

// buildTerm constructs nxTerm and revTerm, per spec.md section
// 4.5(b)'s column-sweep stator-termination DP (tables doc comment has
// the full alphabet/encoding).
func (t *tables) buildTerm() {
	for x := 0; x < 1<<16; x++ {
		var out uint16
		for c := 0; c < 16; c++ {
			if x&(1<<uint(c)) == 0 {
				continue
			}
			out |= 1 << uint(swapTopBottom(c))
		}
		t.revTerm[x] = out
	}

	for state := 0; state < 1<<16; state++ {
		if state == 0 {
			continue // the empty candidate set has nowhere to go
		}
		for w := 0; w < 1<<6; w++ {
			wTop := uint8(w >> 3)
			wBot := uint8(w & 7)
			var out uint16
			for c := 0; c < 16; c++ {
				if state&(1<<uint(c)) == 0 {
					continue
				}
				tl := c&1 != 0
				tr := c&2 != 0
				bl := c&4 != 0
				br := c&8 != 0

				// The outgoing (leftmost) column's cells are now fully
				// bounded by the new column's window codes; they must
				// be fixed points of the rule to survive the sweep.
				topN := popcount3(wTop) + boolBit(tr)
				botN := popcount3(wBot) + boolBit(br)
				if t.rule.Next(tl, topN) != tl {
					continue
				}
				if t.rule.Next(bl, botN) != bl {
					continue
				}

				newTop := wTop&2 != 0 // "self" bit of the window code
				newBot := wBot&2 != 0
				c2 := boolBit(tr) | boolBit(newTop)<<1 | boolBit(br)<<2 | boolBit(newBot)<<3
				out |= 1 << uint(c2)
			}
			t.nxTerm[state<<6|w] = out
		}
	}
}

func popcount3(x uint8) int {
	n := 0
	for i := 0; i < 3; i++ {
		if x&(1<<uint(i)) != 0 {
			n++
		}
	}
	return n
}

func bitVal(x int, i int) int {
	if x&(1<<uint(i)) != 0 {
		return 1
	}
	return 0
}

// stillLifeColumnsCompatible tests whether three adjacent 5-cell
// stator columns (i, j, k — the centre column's 5 rows plus its left
// and right neighbour columns) are mutually consistent with the rule
// applied to the centre column treated as a still life: every cell in
// column j must evolve to its own current value given its 8
// neighbours drawn from columns i, j, k.
func stillLifeColumnsCompatible(r rule.Rule, i, j, k int) bool {
	col := func(v int, row int) bool { return v&(1<<uint(row)) != 0 }
	for row := 0; row < 5; row++ {
		n := 0
		for _, v := range [3]int{i, j, k} {
			for dr := -1; dr <= 1; dr++ {
				rr := row + dr
				if v == j && dr == 0 {
					continue
				}
				if rr < 0 || rr >= 5 {
					continue
				}
				if col(v, rr) {
					n++
				}
			}
		}
		if r.Next(col(j, row), n) != col(j, row) {
			return false
		}
	}
	return true
}

// stillLifeBlockStable tests whether the centre cell of a packed 3x3
// neighbourhood (bit (row*3+col), row/col in 0..2) is a fixed point of
// the rule: its own next state equals its current state.
func stillLifeBlockStable(r rule.Rule, idx int) bool {
	cell := func(row, col int) bool { return idx&(1<<uint(row*3+col)) != 0 }
	n := 0
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			if cell(1+dr, 1+dc) {
				n++
			}
		}
	}
	self := cell(1, 1)
	return r.Next(self, n) == self
}

// sanityCheck implements the spec.md 4.1 startup assertion:
// tcompatible(0,2,0) must be false for any valid rule, and (testable
// property 8) revTerm is its own inverse.
func (t *tables) sanityCheck() error {
	if t.tcompatible[0][2][0] {
		return &InvariantError{What: "tcompatible(0,2,0) must be false"}
	}
	if t.revTerm[t.revTerm[initialTermState]] != uint16(initialTermState) {
		return &InvariantError{What: "revTerm must be its own inverse"}
	}
	return nil
}

// Package ca implements the oscillator search engine for two-state
// outer-totalistic cellular automata: the rule/transition tables, the
// row-extension enumerator, the state arena with duplicate detection,
// the compatibility/reachability graph, the termination detector, and
// the BFS/iterative-deepening-DFS search driver described by the
// specification.
package ca

import "github.com/conwaylife/ofind/pkg/rule"

// Row is a bitmap of cells in one row of the pattern. Bit i is cell i;
// only relative position (not absolute left/right orientation) matters
// to the core. Width W = RotorWidth + LeftStator + RightStator must
// satisfy W <= 32 so a Row fits one machine word.
type Row uint32

// Symmetry selects the row symmetry the search is allowed to exploit,
// per spec section 6.
type Symmetry int

const (
	SymNone Symmetry = iota
	SymOdd
	SymEven
)

func (s Symmetry) String() string {
	switch s {
	case SymOdd:
		return "odd"
	case SymEven:
		return "even"
	default:
		return "none"
	}
}

// bit reports whether bit i of r is set.
func bit(r Row, i int) bool {
	return r&(1<<uint(i)) != 0
}

// setBit returns r with bit i forced to v.
func setBit(r Row, i int, v bool) Row {
	if v {
		return r | (1 << uint(i))
	}
	return r &^ (1 << uint(i))
}

// Config is the fully-populated configuration record produced by the
// (out-of-scope) interactive parameter reader — the external interface
// of spec.md section 6.
type Config struct {
	Rule rule.Rule

	Period int // generations in one full cycle, 1..19

	RotorWidth     int
	LeftStator     int
	RightStator    int
	Symmetry       Symmetry
	AllowRowSym    bool
	ZeroLotLine    bool
	MaxDeepen      int // 0 = unlimited
	SparkLevel     int // 0, 1, or 2

	// SeedRows installs up to two user-specified history states as
	// ancestors of the root, per spec.md section 4.3: entries are
	// installed oldest-first (SeedRows[0] is the earliest ancestor,
	// self-parented), and the search proper begins extending from the
	// last entry. Each entry must have exactly Period rows. A nil or
	// empty SeedRows falls back to a single all-zero root, as before.
	SeedRows [][]Row

	// Resource caps (spec.md section 5/9: "memory caps should be
	// explicit configuration"). Zero means "use the package default".
	ArenaCapacity   int
	RowCapacity     int
	CompatCapacity  int
	ReachCapacity   int
	HashCapacity    int // must be a power of two

	// Nice is the cooperative yield hook of spec.md section 5, called
	// periodically from the hot loops of B, D and the table
	// initializers. A nil Nice is a no-op, matching "implementations on
	// preemptive platforms may make it a no-op."
	Nice func()
}

// Width returns the total pattern width W.
func (c Config) Width() int {
	return c.RotorWidth + c.LeftStator + c.RightStator
}

// StatorMask isolates the stator bits of a row; the complement is the
// rotor, per spec.md section 3.
func (c Config) StatorMask() Row {
	var m Row
	if c.RightStator > 0 {
		m |= ((Row(1) << uint(c.RightStator)) - 1) << uint(c.RotorWidth+c.LeftStator)
	}
	if c.LeftStator > 0 {
		m |= (Row(1) << uint(c.LeftStator)) - 1
	}
	return m
}

func (c *Config) nice() {
	if c.Nice != nil {
		c.Nice()
	}
}

package ca

import "math/rand"

// stateID indexes into an arena's flat slice; -1 means "no parent"
// (the seed state).
type stateID int32

const noParent stateID = -1

// state is one node of the search tree: the P per-phase rows at the
// current spatial frontier, plus a back-link to the state it extended.
// Per spec.md section 4.3, states never store more than their own
// rows — history is recovered by walking parent links.
type state struct {
	parent stateID
	rows   []Row // length = period
	depth  int   // BFS depth = number of rows placed since the seed
}

// arena is the flat, append-only store of component C. Compaction
// (triggered when the arena fills) rebuilds it keeping only the states
// still reachable from the live search frontier.
type arena struct {
	states []state
	cap    int
}

func newArena(capacity int) *arena {
	return &arena{states: make([]state, 0, capacity), cap: capacity}
}

func (a *arena) Len() int { return len(a.states) }

func (a *arena) Get(id stateID) state { return a.states[id] }

// Add appends a new state, returning CapacityError if the arena is
// full; the caller (search.go) is responsible for compacting and
// retrying.
func (a *arena) Add(parent stateID, rows []Row, depth int) (stateID, error) {
	if len(a.states) >= a.cap {
		return 0, &CapacityError{Which: "arena", Cap: a.cap}
	}
	id := stateID(len(a.states))
	cp := make([]Row, len(rows))
	copy(cp, rows)
	a.states = append(a.states, state{parent: parent, rows: cp, depth: depth})
	return id, nil
}

// Ancestry returns the rows of id and every ancestor, ordered from id
// back to the seed (deepest first) — the order the printer walks in.
func (a *arena) Ancestry(id stateID) [][]Row {
	var out [][]Row
	for id != noParent {
		s := a.Get(id)
		out = append(out, s.rows)
		id = s.parent
	}
	return out
}

// Compact rebuilds the arena keeping only the states in keep and their
// ancestors, and returns a map from old to new stateID. Implements the
// "mark and compact" pass of spec.md section 5: mark every live state
// and its ancestor chain, then relocate the survivors in a single new
// backing slice.
func (a *arena) Compact(keep []stateID) map[stateID]stateID {
	live := make(map[stateID]bool, len(keep)*2)
	for _, id := range keep {
		for id != noParent && !live[id] {
			live[id] = true
			id = a.Get(id).parent
		}
	}

	remap := make(map[stateID]stateID, len(live))
	fresh := make([]state, 0, len(live))
	for old := stateID(0); int(old) < len(a.states); old++ {
		if !live[old] {
			continue
		}
		remap[old] = stateID(len(fresh))
		fresh = append(fresh, a.states[old])
	}
	for i := range fresh {
		if fresh[i].parent != noParent {
			fresh[i].parent = remap[fresh[i].parent]
		}
	}
	a.states = fresh
	return remap
}

// dupHash is a Zobrist-style duplicate detector over full states (all
// P phase rows at once, AND the P phase rows of the state's parent):
// each row contributes the XOR of one random 64-bit word per byte
// position per phase, drawn from one table for the state's own rows
// and a second, independently-seeded table for its parent's rows, per
// spec.md section 4.3 — two states that agree on their own rows but
// were reached via different history are not duplicates, so the
// parent's rows must be part of the key. Lookups resolve collisions
// with a handful of linear probes rather than chaining; a 64-bit sum
// match is only a candidate; Insert re-reads both states' actual rows
// from the arena before calling it a duplicate.
type dupHash struct {
	mask  uint64
	slots []stateID // emptySlot = empty
	h     [][4][256]uint64 // own-row table
	hp    [][4][256]uint64 // parent-row table
}

const probeLimit = 3

// emptySlot marks an unused hash slot. stateID 0 is a valid state (the
// root), so a dedicated sentinel distinct from any real id is needed.
const emptySlot = stateID(-1)

func newDupHash(capacity, period int) *dupHash {
	capacity = nextPowerOfTwo(capacity)
	d := &dupHash{
		mask:  uint64(capacity - 1),
		slots: make([]stateID, capacity),
		h:     make([][4][256]uint64, period),
		hp:    make([][4][256]uint64, period),
	}
	for i := range d.slots {
		d.slots[i] = emptySlot
	}
	rng := rand.New(rand.NewSource(0x9e3779b97f4a7c15))
	for p := range d.h {
		for b := 0; b < 4; b++ {
			for v := 0; v < 256; v++ {
				d.h[p][b][v] = rng.Uint64()
			}
		}
	}
	rngParent := rand.New(rand.NewSource(0xc2b2ae3d27d4eb4f))
	for p := range d.hp {
		for b := 0; b < 4; b++ {
			for v := 0; v < 256; v++ {
				d.hp[p][b][v] = rngParent.Uint64()
			}
		}
	}
	return d
}

func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	if p == 0 {
		p = 1
	}
	return p
}

// Sum computes the Zobrist hash of a full state's rows and its
// parent's rows together.
func (d *dupHash) Sum(rows, parentRows []Row) uint64 {
	var h uint64
	for phase, row := range rows {
		for b := 0; b < 4; b++ {
			h ^= d.h[phase][b][byte(row>>(uint(b)*8))]
		}
	}
	for phase, row := range parentRows {
		for b := 0; b < 4; b++ {
			h ^= d.hp[phase][b][byte(row>>(uint(b)*8))]
		}
	}
	return h
}

// Insert records id (whose rows/parent-rows hash to sum) as present.
// Within probeLimit probes it walks existing occupants and, whenever
// one shares sum, re-reads both states' actual rows and parent rows
// from a and only then calls it a duplicate — a 64-bit sum collision
// alone is never sufficient, per spec.md section 4.3's testable
// property that distinct states must never be silently discarded.
// Returns CapacityError if no empty or matching slot is found.
func (d *dupHash) Insert(sum uint64, id stateID, a *arena) (inserted bool, err error) {
	cand := a.Get(id)
	var candParent []Row
	if cand.parent != noParent {
		candParent = a.Get(cand.parent).rows
	}

	idx := sum & d.mask
	for p := 0; p < probeLimit; p++ {
		slot := (idx + uint64(p)) & d.mask
		occupant := d.slots[slot]
		if occupant == emptySlot {
			d.slots[slot] = id
			return true, nil
		}
		other := a.Get(occupant)
		if !rowsEqual(other.rows, cand.rows) {
			continue
		}
		var otherParent []Row
		if other.parent != noParent {
			otherParent = a.Get(other.parent).rows
		}
		if rowsEqual(otherParent, candParent) {
			return false, nil
		}
	}
	return false, &CapacityError{Which: "duplicate hash", Cap: len(d.slots)}
}

func rowsEqual(a, b []Row) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

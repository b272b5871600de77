package ca

// Extend computes every valid way to grow a state one spatial row
// deeper across all P phases at once — component D of spec.md section
// 4.2/4.3.
//
// For phase p, the evolution relation between consecutive generations
// ties the still-unknown row P[p] at the new depth to the existing row
// of phase (p+1 mod P) at the *current* depth:
//
//	state.rows[(p+1)%P] == Evolve3(parent.rows[p], state.rows[p], P[p])
//
// so each phase's candidate rows are exactly ListRows(parent.rows[p],
// state.rows[p], state.rows[(p+1)%P], sparkMask) — component B applied
// once per phase, independently. The "graph" is the per-phase
// candidate lists plus the P-tuple backtracking that combines them: a
// phase with zero candidates prunes the whole extension immediately
// (the backward-induction reachability check), and phases with more
// than one candidate (spark columns left some columns free) fan out
// into independent children.
//
// Per spec.md section 4.4's "stator group" invariant, the stator is a
// single still life shared by every phase — it is fixed, not
// oscillating — so a valid tuple must have every phase's candidate row
// agree on its stator bits. Candidates are partitioned by their stator
// value (the compatibility classes spec.md 4.4 calls "stator groups",
// bounded by Config.CompatCapacity) and the P-tuple backtracking below
// only ever combines candidates drawn from the same group, which is
// exactly testable property 2 ("stator preservation across phases").
func (ctx *Context) Extend(parentRows, rows []Row, sparkMask Row) ([][]Row, error) {
	p := len(rows)
	mask := ctx.cfg.StatorMask()
	candidates := make([][]Row, p)
	total := 0
	for phase := 0; phase < p; phase++ {
		target := rows[(phase+1)%p]
		cs := ListRows(ctx, parentRows[phase], rows[phase], target, sparkMask)
		if len(cs) == 0 {
			// Backward-induction reachability: one empty phase means no
			// tuple can possibly close, so stop before the cartesian
			// expansion below ever starts.
			return nil, nil
		}
		candidates[phase] = cs
		total += len(cs)
	}
	if cap := ctx.cfg.CompatCapacity; cap > 0 && total > cap {
		return nil, &CapacityError{Which: "compatibility buffer", Cap: cap}
	}

	// Stator groups: every phase's candidates grouped by stator value.
	// Only a stator value present in *every* phase's candidate list can
	// possibly combine into a valid tuple.
	groups := make(map[Row]bool)
	for _, c := range candidates[0] {
		groups[c&mask] = true
	}
	for phase := 1; phase < p; phase++ {
		present := make(map[Row]bool, len(candidates[phase]))
		for _, c := range candidates[phase] {
			present[c&mask] = true
		}
		for g := range groups {
			if !present[g] {
				delete(groups, g)
			}
		}
	}

	var out [][]Row
	combo := make([]Row, p)
	var rec func(phase int, stator Row) error
	rec = func(phase int, stator Row) error {
		ctx.cfg.nice()
		if phase == p {
			cp := make([]Row, p)
			copy(cp, combo)
			out = append(out, cp)
			if ctx.cfg.ReachCapacity > 0 && len(out) > ctx.cfg.ReachCapacity {
				return &CapacityError{Which: "reachability", Cap: ctx.cfg.ReachCapacity}
			}
			return nil
		}
		for _, c := range candidates[phase] {
			if c&mask != stator {
				continue
			}
			combo[phase] = c
			if err := rec(phase+1, stator); err != nil {
				return err
			}
		}
		return nil
	}
	for stator := range groups {
		if err := rec(0, stator); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// sparkMaskFor returns the don't-care column mask for a given spark
// level, per spec.md section 6: level 0 allows no extra live cells,
// level 1 allows the outermost rotor column, level 2 allows the two
// outermost.
func sparkMaskFor(cfg Config, level int) Row {
	if level <= 0 {
		return 0
	}
	var m Row
	left := cfg.LeftStator
	right := cfg.LeftStator + cfg.RotorWidth - 1
	m = setBit(m, left, true)
	m = setBit(m, right, true)
	if level >= 2 && cfg.RotorWidth > 2 {
		m = setBit(m, left+1, true)
		m = setBit(m, right-1, true)
	}
	return m
}

package ca

// Outcome is the result of a completed search run.
type Outcome struct {
	Found   bool
	Depth   int
	History [][]Row // one []Row (length Period) per spatial row, seed first

	// Axis is the row-symmetry axis that closed the found history, or
	// AxisNone if it closed via stator termination instead. The printer
	// uses it to mirror the kept half back out to the full pattern.
	Axis RowSymmetryAxis

	// Completion holds the minimal stator-completion rows terminate
	// computed beyond History's tail, when closure came from stator
	// termination rather than row symmetry. Nil otherwise.
	Completion [][]Row

	// Deepest is the deepest partial pattern the search reached, in the
	// same seed-first row-tuple form as History. Populated even when
	// Found is false, per spec.md section 7's requirement to show the
	// deepest line reached on exhaustion.
	Deepest [][]Row
}

// Stats is a snapshot of in-progress search statistics, read by the
// caller after Run returns (or, for a long-running search, exposed via
// Config.Nice-driven polling) to format the status line of spec.md
// section 4.6.
type Stats struct {
	Depth      int
	Deepening  int
	QueueUsed  int
	QueueCap   int
	ArenaUsed  int
	ArenaCap   int
}

// Run performs the BFS/iterative-deepening search of component F: grow
// a width-W, period-P candidate one spatial row at a time across all P
// phases simultaneously (component D), stopping a branch either when
// it closes via row symmetry or stator closure (component E) or when
// its IsNontrivial check fails, whichever comes first. Each deepening
// round re-runs a fresh breadth-first pass bounded to a larger depth
// than the last, per spec.md section 4.4's iterative-deepening design
// — rather than a single unbounded BFS, which would let an early
// branch consume the whole row/arena budget before a shallower
// solution at a later branch was ever tried.
func Run(cfg Config, onStats func(Stats)) (*Outcome, error) {
	maxDeepen := cfg.MaxDeepen
	if maxDeepen <= 0 {
		maxDeepen = 1 << 30
	}

	var last *Outcome
	for bound := 1; bound <= maxDeepen; bound++ {
		outcome, err := runBounded(cfg, bound, onStats)
		if err != nil {
			return nil, err
		}
		if outcome.Found {
			return outcome, nil
		}
		last = outcome
	}
	if last == nil {
		last = &Outcome{Found: false}
	}
	return last, nil
}

// runBounded runs one breadth-first pass from the seed, never
// extending a state once it reaches bound rows deep.
func runBounded(cfg Config, bound int, onStats func(Stats)) (*Outcome, error) {
	ctx, err := NewContext(cfg)
	if err != nil {
		return nil, err
	}

	// Install the seed history chain: an implicit all-zero root, then
	// up to two user-specified ancestor states installed on top of it
	// (spec.md section 4.3), oldest first. The search proper begins
	// extending from the last entry.
	seedHistory := cfg.SeedRows
	if len(seedHistory) == 0 {
		seedHistory = [][]Row{make([]Row, cfg.Period)}
	}
	var frontier stateID = noParent
	for depth, rows := range seedHistory {
		frontier, err = ctx.arena.Add(frontier, rows, depth)
		if err != nil {
			return nil, err
		}
	}

	rotorMask := ^cfg.StatorMask() & (Row(1)<<uint(cfg.Width()) - 1)
	queue := []stateID{frontier}
	deepest := frontier
	deepestDepth := ctx.arena.Get(frontier).depth

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		s := ctx.arena.Get(id)
		if s.depth >= bound {
			continue
		}

		var parentRows []Row
		if s.parent == noParent {
			parentRows = make([]Row, cfg.Period)
		} else {
			parentRows = ctx.arena.Get(s.parent).rows
		}

		children, err := ctx.Extend(parentRows, s.rows, sparkMaskFor(cfg, cfg.SparkLevel))
		if err != nil {
			return nil, err
		}

		for _, childRows := range children {
			if !IsNontrivial(childRows, cfg.Period) {
				continue
			}
			axis := DetectRowSymmetry(childRows, cfg.AllowRowSym)
			closed := axis != AxisNone

			childID, err := ctx.arena.Add(id, childRows, s.depth+1)
			if err != nil {
				keep := append(append([]stateID{}, queue...), id, deepest)
				remap := ctx.arena.Compact(keep)
				queue = remapQueue(queue, remap)
				id = remap[id]
				deepest = remap[deepest]
				childID, err = ctx.arena.Add(id, childRows, s.depth+1)
				if err != nil {
					return nil, err
				}
			}

			if s.depth+1 > deepestDepth {
				deepestDepth = s.depth + 1
				deepest = childID
			}

			var statorClosed bool
			history := ctx.arena.Ancestry(childID)
			if !closed && rowAllZero(childRows, rotorMask) {
				statorClosed = ctx.IsStatorClosed(reverseHistory(history))
				closed = statorClosed
			}
			if closed {
				outcome := &Outcome{
					Found:   true,
					Depth:   s.depth + 1,
					History: reverseHistory(history),
					Axis:    axis,
				}
				if statorClosed {
					outcome.Completion = ctx.terminate(outcome.History)
				}
				return outcome, nil
			}

			parentOwnRows := s.rows
			sum := ctx.hash.Sum(childRows, parentOwnRows)
			fresh, err := ctx.hash.Insert(sum, childID, ctx.arena)
			if err != nil {
				return nil, err
			}
			if !fresh {
				continue
			}
			queue = append(queue, childID)
		}

		if onStats != nil {
			onStats(Stats{
				Depth:     s.depth,
				Deepening: bound,
				QueueUsed: len(queue),
				QueueCap:  cfg.RowCapacity,
				ArenaUsed: ctx.arena.Len(),
				ArenaCap:  ctx.arena.cap,
			})
		}
		cfg.nice()
	}

	return &Outcome{Found: false, Deepest: reverseHistory(ctx.arena.Ancestry(deepest))}, nil
}

// remapQueue translates a pending queue through an arena.Compact remap,
// dropping any id compaction judged unreachable.
func remapQueue(queue []stateID, remap map[stateID]stateID) []stateID {
	out := make([]stateID, 0, len(queue))
	for _, id := range queue {
		if n, ok := remap[id]; ok {
			out = append(out, n)
		}
	}
	return out
}

func rowAllZero(rows []Row, mask Row) bool {
	for _, r := range rows {
		if r&mask != 0 {
			return false
		}
	}
	return true
}

// reverseHistory flips arena.Ancestry's deepest-first order back into
// seed-first order for presentation.
func reverseHistory(h [][]Row) [][]Row {
	out := make([][]Row, len(h))
	for i, r := range h {
		out[len(h)-1-i] = r
	}
	return out
}

// VerifyOscillator independently re-simulates history's generation-0
// grid for Period generations using Evolve3 and confirms it returns to
// its starting rows — the oracle cross-check of spec.md's testable
// properties, kept distinct from the search's own bookkeeping.
func VerifyOscillator(cfg Config, history [][]Row) bool {
	w := cfg.Width()
	n := len(history)
	gen := make([]Row, n)
	for i, rows := range history {
		gen[i] = rows[0]
	}
	cur := gen
	for g := 0; g < cfg.Period; g++ {
		next := make([]Row, n)
		for i := range next {
			var above, below Row
			if i > 0 {
				above = cur[i-1]
			}
			if i < n-1 {
				below = cur[i+1]
			}
			next[i] = Evolve3(above, cur[i], below, w, cfg.Rule)
		}
		cur = next
	}
	for i := range gen {
		if cur[i] != gen[i] {
			return false
		}
	}
	return true
}

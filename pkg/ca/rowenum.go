package ca

// ListRows enumerates every row "below" that is consistent with the
// known rows "above" and "self" evolving, one generation forward under
// ctx's rule, into "target" — component B of spec.md section 4.1/4.2.
//
// Column i of target is compared against the forced value read from
// extTab once below's bits i-1, i, i+1 are known; columns where
// sparkMask has its bit set are "spark" columns and are never checked,
// letting the search explore extra live cells there freely (spec.md
// section 6, "spark level").
//
// The search proceeds by backtracking column by column, left to
// right: once below's bit at column i is fixed, the constraint on
// column i-1 (whose window is now fully known) is checked immediately,
// so a mismatch prunes the remaining 2^(w-i-1) branches at once rather
// than being discovered only once the whole row is built.
func ListRows(ctx *Context, above, self, target, sparkMask Row) []Row {
	w := ctx.cfg.Width()
	var out []Row

	var rec func(i int, below Row)
	rec = func(i int, below Row) {
		ctx.cfg.nice()
		if i == w {
			if checkColumn(ctx, above, self, below, target, sparkMask, w-1, w) {
				out = append(out, below)
			}
			return
		}
		for _, v := range [2]bool{false, true} {
			next := setBit(below, i, v)
			if i > 0 && !checkColumn(ctx, above, self, next, target, sparkMask, i-1, w) {
				continue
			}
			rec(i+1, next)
		}
	}
	rec(0, 0)
	return out
}

// checkColumn reports whether column i of "below" is consistent with
// target once below's neighbouring bits at i-1, i, i+1 are known (or,
// for i+1 at the row's right edge, implicitly dead). A spark column
// always passes.
func checkColumn(ctx *Context, above, self, below, target, sparkMask Row, i, w int) bool {
	if bit(sparkMask, i) {
		return true
	}
	aCode := windowCode(above, i, w, ctx.cfg.Symmetry)
	bCode := windowCode(self, i, w, ctx.cfg.Symmetry)
	cCode := windowCode(below, i, w, ctx.cfg.Symmetry)
	return ctx.tabs.extTab[aCode][bCode][cCode] == bit(target, i)
}

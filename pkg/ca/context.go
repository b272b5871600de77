package ca

// Context owns everything a search run needs: the configuration, the
// rule-dependent lookup tables, the state arena, and the duplicate
// hash. Nothing here is package-level mutable state — spec.md section
// 5 calls for "a single owning struct threaded explicitly" rather than
// globals, the one place the engine departs from a quick port and
// follows the spec's own design note instead.
type Context struct {
	cfg  Config
	tabs *tables

	arena *arena
	hash  *dupHash
}

// NewContext builds a Context for cfg: it constructs the rule tables
// (component A) and runs their startup sanity check, then allocates
// the arena and duplicate hash sized from cfg's resource caps.
func NewContext(cfg Config) (*Context, error) {
	if cfg.Width() > 32 {
		return nil, &InvariantError{What: "pattern width exceeds 32 columns"}
	}
	tabs := newTables(cfg.Rule)
	if err := tabs.sanityCheck(); err != nil {
		return nil, err
	}

	ctx := &Context{cfg: cfg, tabs: tabs}
	ctx.arena = newArena(ctx.arenaCapacity())
	ctx.hash = newDupHash(ctx.hashCapacity(), cfg.Period)
	return ctx, nil
}

func (ctx *Context) arenaCapacity() int {
	if ctx.cfg.ArenaCapacity > 0 {
		return ctx.cfg.ArenaCapacity
	}
	return 1 << 20
}

func (ctx *Context) hashCapacity() int {
	if ctx.cfg.HashCapacity > 0 {
		return ctx.cfg.HashCapacity
	}
	return 1 << 21
}

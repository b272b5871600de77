// Package result formats search progress and outcomes for display,
// kept independent of package ca so the engine has no presentation
// concerns wired into it.
package result

import "fmt"

// Status is one progress snapshot of a running search, per spec.md
// section 4.6.
type Status struct {
	Depth     int
	Deepening int
	QueueUsed int
	QueueCap  int
	ArenaUsed int
	ArenaCap  int
}

// Line renders the status line printed to stderr while a search runs.
func (s Status) Line() string {
	return fmt.Sprintf(
		"depth = %d, deepening %d, queue %d/%d -> arena %d/%d",
		s.Depth, s.Deepening, s.QueueUsed, s.QueueCap, s.ArenaUsed, s.ArenaCap,
	)
}

// QueueFullLine renders the line spec.md section 4.6 calls for when a
// capacity cap forces a compaction pass: "Queue full, depth = D,
// deepening K, used/cap -> used/cap".
func (s Status) QueueFullLine() string {
	return fmt.Sprintf(
		"Queue full, depth = %d, deepening %d, %d/%d -> %d/%d",
		s.Depth, s.Deepening, s.QueueUsed, s.QueueCap, s.ArenaUsed, s.ArenaCap,
	)
}

package ca

import "fmt"

// CapacityError reports that a preallocated buffer — arena, row
// buffer, compatibility buffer, or reachability buffer — has been
// exhausted. Per spec.md section 7 this is fatal: the caller should
// print the deepest line reached and exit.
type CapacityError struct {
	Which string
	Cap   int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("ca: %s capacity exceeded (cap=%d)", e.Which, e.Cap)
}

// InvariantError reports an internal invariant violation: the search
// could not find a state's parent during compaction, or a rule-level
// sanity check failed. Also fatal per spec.md section 7.
type InvariantError struct {
	What string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("ca: invariant violation: %s", e.What)
}

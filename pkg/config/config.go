// Package config builds and validates the configuration record that
// drives a search run — the boundary between the external interface
// of spec.md section 6 and the internal engine of package ca.
package config

import (
	"fmt"

	"github.com/conwaylife/ofind/pkg/ca"
	"github.com/conwaylife/ofind/pkg/rule"
)

// Default returns a Config with the package's default resource caps
// and Conway's Life as the rule, ready to have its search parameters
// filled in by the caller.
func Default() ca.Config {
	return ca.Config{
		Rule:       rule.Life,
		Period:     2,
		RotorWidth: 4,
		Symmetry:   ca.SymNone,
		MaxDeepen:  64,
	}
}

// Validate checks a Config against the bounds spec.md section 6 lists
// for the interactive parameter reader, returning the first violation
// found.
func Validate(c ca.Config) error {
	if c.Period < 1 || c.Period > 19 {
		return fmt.Errorf("config: period %d out of range 1..19", c.Period)
	}
	if c.RotorWidth <= 0 {
		return fmt.Errorf("config: rotor width must be positive")
	}
	if c.LeftStator < 0 || c.RightStator < 0 {
		return fmt.Errorf("config: stator widths must be non-negative")
	}
	if w := c.Width(); w > 32 {
		return fmt.Errorf("config: total width %d exceeds 32 columns", w)
	}
	if c.SparkLevel < 0 || c.SparkLevel > 2 {
		return fmt.Errorf("config: spark level %d out of range 0..2", c.SparkLevel)
	}
	if len(c.SeedRows) > 2 {
		return fmt.Errorf("config: at most 2 seed history states may be supplied")
	}
	for i, rows := range c.SeedRows {
		if len(rows) != c.Period {
			return fmt.Errorf("config: seed history entry %d has %d rows, want Period (%d)", i, len(rows), c.Period)
		}
	}
	if c.HashCapacity != 0 && c.HashCapacity&(c.HashCapacity-1) != 0 {
		return fmt.Errorf("config: hash capacity %d must be a power of two", c.HashCapacity)
	}
	return nil
}

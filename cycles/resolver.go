// This file is part of CycleSpitter.
//
// CycleSpitter is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// CycleSpitter is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with CycleSpitter.  If not, see <https://www.gnu.org/licenses/>.

// Package cycles assigns a deterministic cycle cost to every instruction of
// the expanded line stream.
//
// Resolution order, first match wins:
//
//  1. explicit override from the line's trailing comment
//  2. manual override table supplied by the caller, keyed by shape
//  3. the cost table, which also covers the register-list shapes whose cost
//     is a function of the operand content
//
// If nothing matches the resolver fails. The tool never guesses a cost.
package cycles

import (
	"github.com/vectronix/cyclespitter/curated"
	"github.com/vectronix/cyclespitter/expander"
)

// UnknownInstructionCost is returned when no override is present and no
// rule matches the instruction shape.
const UnknownInstructionCost = "cycles: unknown instruction cost: line %d: %s (shape %s)"

// Resolver assigns cycle costs. The manual override table is optional; a
// nil map is a valid (empty) table.
type Resolver struct {
	overrides map[string]int
}

// NewResolver is the preferred method of initialisation for the Resolver
// type. Keys of the override table are normalized shapes, exactly as they
// would appear in an annotation comment.
func NewResolver(overrides map[string]int) *Resolver {
	return &Resolver{overrides: overrides}
}

// Resolve computes the cost of a single instruction body. The override
// argument is the explicit per-line override, -1 when absent. num is the
// source line number, used in error messages only.
func (r *Resolver) Resolve(body string, override int, num int) (Cost, error) {
	if override >= 0 {
		return Cost{values: []int{override}, Shape: OverrideShape}, nil
	}

	shape, regCount := Normalize(body)

	if v, ok := r.overrides[shape]; ok {
		return Cost{values: []int{v}, Shape: shape}, nil
	}

	def, ok := table[shape]
	if !ok {
		return Cost{}, curated.Errorf(UnknownInstructionCost, num, body, shape)
	}

	if def.regList {
		return Cost{values: def.cycles, Shape: shape, RegCount: regCount}, nil
	}
	return Cost{values: def.cycles, Shape: shape}, nil
}

// ResolveAll annotates the whole expanded line stream. Comment and blank
// lines pass through with a zero cost.
func (r *Resolver) ResolveAll(lines []expander.Line) ([]CostedLine, error) {
	out := make([]CostedLine, 0, len(lines))

	for _, l := range lines {
		if !l.IsInstruction() {
			out = append(out, CostedLine{Line: l})
			continue
		}

		c, err := r.Resolve(l.Body, l.Override, l.Num)
		if err != nil {
			return nil, err
		}
		out = append(out, CostedLine{Line: l, Cost: c})
	}

	return out, nil
}

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

package cycles

import (
	"fmt"

	"github.com/vectronix/cyclespitter/expander"
)

// OverrideShape is the descriptive label used when the cost came from an
// explicit override rather than a rule, in which case no shape lookup takes
// place.
const OverrideShape = "(override)"

// Cost is the resolved cycle cost of one instruction together with the
// shape description used for the annotation comment. The zero value is a
// costless entry, used for comment-only lines.
type Cost struct {
	// the raw values from the matching table entry. one value for fixed
	// shapes; not-taken/taken for branches; base/per-register for
	// register-list shapes. a single value for overrides
	values []int

	// the normalized shape the cost was matched against, or OverrideShape
	Shape string

	// number of registers named by the register-list operand. zero for
	// anything that is not a register-list shape
	RegCount int
}

// Fixed returns a Cost with a single fixed cycle value and no shape. Used
// for synthesised lines, NOP padding in particular, that never went through
// the resolver.
func Fixed(n int) Cost {
	return Cost{values: []int{n}}
}

// Base returns the first cycle value.
func (c Cost) Base() int {
	if len(c.values) == 0 {
		return 0
	}
	return c.values[0]
}

// PerReg returns the per-register cost of a register-list shape.
func (c Cost) PerReg() int {
	if len(c.values) < 2 {
		return 0
	}
	return c.values[1]
}

// ExtraIfTaken returns the taken cost of a branch shape.
func (c Cost) ExtraIfTaken() int {
	return c.PerReg()
}

// IsRegList returns true if the cost depends on a register count.
func (c Cost) IsRegList() bool {
	return c.RegCount > 0
}

// Cycles is the cost counted toward the scanline budget. For register-list
// shapes this is the base cost plus the per-register cost for every named
// register. For branch shapes the not-taken cost is used; the sync
// programmer arranges for the taken path to leave the scanline entirely.
func (c Cost) Cycles() int {
	if c.IsRegList() {
		return c.Base() + c.RegCount*c.PerReg()
	}
	return c.Base()
}

// String renders the cycle count for the annotation comment. A branch is
// rendered "not-taken/taken"; a register-list cost shows its derivation.
func (c Cost) String() string {
	if c.IsRegList() {
		return fmt.Sprintf("%d -> [base (%d) + (reg count (%d) * reg (%d))]",
			c.Cycles(), c.Base(), c.RegCount, c.PerReg())
	}
	if len(c.values) > 1 {
		return fmt.Sprintf("%d/%d", c.values[0], c.values[1])
	}
	return fmt.Sprintf("%d", c.Base())
}

// CostedLine is an expanded line annotated with its resolved cost. Comment
// and blank lines carry the zero Cost.
type CostedLine struct {
	Line expander.Line
	Cost Cost
}

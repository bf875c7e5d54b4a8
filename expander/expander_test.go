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

package expander_test

import (
	"strings"
	"testing"

	"github.com/vectronix/cyclespitter/curated"
	"github.com/vectronix/cyclespitter/expander"
	"github.com/vectronix/cyclespitter/parser"
	"github.com/vectronix/cyclespitter/test"
)

func expand(t *testing.T, src string) []expander.Line {
	t.Helper()

	lines, err := parser.Parse(src)
	test.ExpectedSuccess(t, err)

	out, err := expander.Expand(lines)
	test.ExpectedSuccess(t, err)
	return out
}

func bodies(out []expander.Line) []string {
	var s []string
	for _, l := range out {
		if l.IsInstruction() {
			s = append(s, l.Body)
		}
	}
	return s
}

func TestSimpleRepeat(t *testing.T) {
	out := expand(t, "\tREPT 3\n\tmove.w #1,d0\n\tENDR")
	test.Equate(t, bodies(out), []string{
		"move.w #1,d0",
		"move.w #1,d0",
		"move.w #1,d0",
	})
}

func TestNestedRepeat(t *testing.T) {
	out := expand(t, `line1
	rept 2
line2
	rept 2
line3
	endr
	endr
line4`)
	test.Equate(t, bodies(out), []string{
		"line1",
		"line2", "line3", "line3",
		"line2", "line3", "line3",
		"line4",
	})
}

func TestSetAccumulatesAcrossIterations(t *testing.T) {
	out := expand(t, `off	SET	0
	REPT 3
	lea off(a1),a1
off	SET	off+8
	ENDR`)
	test.Equate(t, bodies(out), []string{
		"lea 0(a1),a1",
		"lea 8(a1),a1",
		"lea 16(a1),a1",
	})
}

func TestNestingIsolation(t *testing.T) {
	// the inner block inherits a fresh snapshot on every outer iteration.
	// mutations of "off" inside the inner block must not leak back to the
	// next outer iteration
	out := expand(t, `off	SET	0
	REPT 2
	REPT 2
	move.l (a0)+,off(a1)
off	SET	off+8
	ENDR
	move.w #off,d0
	ENDR`)
	test.Equate(t, bodies(out), []string{
		"move.l (a0)+,0(a1)",
		"move.l (a0)+,8(a1)",
		"move.w #0,d0",
		"move.l (a0)+,0(a1)",
		"move.l (a0)+,8(a1)",
		"move.w #0,d0",
	})
}

func TestOuterMutationCarriesToInnerSnapshot(t *testing.T) {
	out := expand(t, `n	SET	1
	REPT 2
n	SET	n*2
	REPT 1
	move.w #n,d0
	ENDR
	ENDR`)
	test.Equate(t, bodies(out), []string{
		"move.w #2,d0",
		"move.w #4,d0",
	})
}

func TestReptCountExpression(t *testing.T) {
	out := expand(t, `n	SET	2
	REPT n*2-1
	nop
	ENDR`)
	test.Equate(t, len(bodies(out)), 3)
}

func TestZeroCount(t *testing.T) {
	out := expand(t, "\tREPT 0\n\tnop\n\tENDR\n\tmove.w d0,d1")
	test.Equate(t, bodies(out), []string{"move.w d0,d1"})
}

func TestUnbalancedRept(t *testing.T) {
	lines, err := parser.Parse("\tREPT 2\n\tnop")
	test.ExpectedSuccess(t, err)

	_, err = expander.Expand(lines)
	test.ExpectedFailure(t, err)
	test.Equate(t, curated.Is(err, expander.UnbalancedRept), true)
}

func TestUnmatchedEndr(t *testing.T) {
	lines, err := parser.Parse("\tnop\n\tENDR")
	test.ExpectedSuccess(t, err)

	_, err = expander.Expand(lines)
	test.ExpectedFailure(t, err)
	test.Equate(t, curated.Is(err, expander.UnbalancedRept), true)
}

func TestUndefinedVariable(t *testing.T) {
	lines, err := parser.Parse("\tREPT never_set\n\tnop\n\tENDR")
	test.ExpectedSuccess(t, err)

	_, err = expander.Expand(lines)
	test.ExpectedFailure(t, err)
	test.Equate(t, curated.Is(err, expander.UndefinedVariable), true)

	// the error message carries the nesting path
	if !strings.Contains(err.Error(), "top level") {
		t.Errorf("expected nesting path in error message: %s", err.Error())
	}
}

func TestSubstitutionIsIdentifierAware(t *testing.T) {
	// variable "a" must not bleed into the register name "a1" or the label
	// "abc"
	out := expand(t, `a	SET	5
	REPT 1
	move.w a(a1),abc
	ENDR`)
	test.Equate(t, bodies(out), []string{"move.w 5(a1),abc"})
}

func TestMnemonicNeverSubstituted(t *testing.T) {
	out := expand(t, `nop	SET	9
	REPT 1
	nop
	ENDR`)
	test.Equate(t, bodies(out), []string{"nop"})
}

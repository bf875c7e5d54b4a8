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

package cycles_test

import (
	"testing"

	"github.com/vectronix/cyclespitter/curated"
	"github.com/vectronix/cyclespitter/cycles"
	"github.com/vectronix/cyclespitter/test"
)

func TestNormalize(t *testing.T) {
	for _, tc := range []struct {
		line  string
		shape string
	}{
		{"move.l d0,a1", "move.l dn,an"},
		{"lea $ffff8240.w,a0", "lea.l xxx.w,an"},
		{"lea $ffff8240,a0", "lea.l xxx.l,an"},
		{"move.w $ffff8240.w,d0", "move.w xxx.w,dn"},
		{"move.w d0,$ffff8240.w", "move.w dn,xxx.w"},
		{"move.w $ffff8240,d0", "move.w xxx.l,dn"},
		{"move.w d0,$ffff8240", "move.w dn,xxx.l"},
		{"move.b\td7,$ffff8260.w\t\t\t;", "move.b dn,xxx.w"},
		{"bne.s label.w", "bne.b xxx.w"},
		{"bne label", "bne.w xxx.l"},
		{" moveq #16,d0", "moveq.l #xxx,dn"},
		{" add #12,d2  ", "add.w #xxx,dn"},
		{" moveq #12,D2", "moveq.l #xxx,dn"},
		{" MOVE.W A1,A2", "move.w an,an"},
		{"addq.l #20,d1", "addq.l #xxx,dn"},
		{"lea 100(sp),a1", "lea.l d(an),an"},
		{"movea.l my_label,a0", "movea.l xxx.l,an"},
		{"my_label:\tmoveq #16,d1", "moveq.l #xxx,dn"},
		{"   add.l     d0,d1 ", "add.l dn,dn"},
		{"movem.l d0-d7/a0-a6,-(sp)", "movem.l reglist,-(an)"},
		{"movem.l (sp)+,d0-d7/a0-a6", "movem.l (an)+,reglist"},
		{"moveq.l #xxx,dn", "moveq.l #xxx,dn"}, // already normalized
	} {
		shape, _ := cycles.Normalize(tc.line)
		test.Equate(t, shape, tc.shape)
	}
}

func TestNormalizeRegCount(t *testing.T) {
	_, n := cycles.Normalize("movem.l d0-d7/a1-a3,-(sp)")
	test.Equate(t, n, 11)

	_, n = cycles.Normalize("movem.w (a0)+,d0/d2/a5-sp")
	test.Equate(t, n, 5)

	// not a movem. the range syntax is left alone and no count is taken
	_, n = cycles.Normalize("move.w d0,d1")
	test.Equate(t, n, 0)
}

func TestCountRegisters(t *testing.T) {
	n, err := cycles.CountRegisters("d0-d7/a1-a3")
	test.ExpectedSuccess(t, err)
	test.Equate(t, n, 11)

	n, err = cycles.CountRegisters("a5")
	test.ExpectedSuccess(t, err)
	test.Equate(t, n, 1)

	n, err = cycles.CountRegisters("a5-sp")
	test.ExpectedSuccess(t, err)
	test.Equate(t, n, 3)

	_, err = cycles.CountRegisters("d0-a3")
	test.ExpectedFailure(t, err)

	_, err = cycles.CountRegisters("d5-d2")
	test.ExpectedFailure(t, err)

	_, err = cycles.CountRegisters("d9")
	test.ExpectedFailure(t, err)
}

func TestResolveStatic(t *testing.T) {
	r := cycles.NewResolver(nil)

	c, err := r.Resolve("moveq #16,d0", -1, 1)
	test.ExpectedSuccess(t, err)
	test.Equate(t, c.Cycles(), 4)
	test.Equate(t, c.Shape, "moveq.l #xxx,dn")

	c, err = r.Resolve("move.b d7,$ffff8260.w", -1, 1)
	test.ExpectedSuccess(t, err)
	test.Equate(t, c.Cycles(), 12)

	c, err = r.Resolve("nop", -1, 1)
	test.ExpectedSuccess(t, err)
	test.Equate(t, c.Cycles(), 4)
}

func TestResolveRegList(t *testing.T) {
	r := cycles.NewResolver(nil)

	// base 8 plus 11 registers at 8 cycles each
	c, err := r.Resolve("movem.l d0-d7/a1-a3,-(sp)", -1, 1)
	test.ExpectedSuccess(t, err)
	test.Equate(t, c.Cycles(), 96)
	test.Equate(t, c.IsRegList(), true)
	test.Equate(t, c.String(), "96 -> [base (8) + (reg count (11) * reg (8))]")
}

func TestResolveDeterminism(t *testing.T) {
	r := cycles.NewResolver(nil)

	a, err := r.Resolve("movem.l d0-d7/a1-a3,-(sp)", -1, 1)
	test.ExpectedSuccess(t, err)
	b, err := r.Resolve("movem.l d0-d7/a1-a3,-(a7)", -1, 2)
	test.ExpectedSuccess(t, err)

	// equivalent operand spellings annotate identically
	test.Equate(t, a.Shape, b.Shape)
	test.Equate(t, a.Cycles(), b.Cycles())
}

func TestOverrideWins(t *testing.T) {
	r := cycles.NewResolver(nil)

	// override wins over a known shape
	c, err := r.Resolve("nop", 20, 1)
	test.ExpectedSuccess(t, err)
	test.Equate(t, c.Cycles(), 20)
	test.Equate(t, c.Shape, cycles.OverrideShape)

	// override wins even when the shape is unknown
	c, err = r.Resolve("frobnicate d0", 16, 1)
	test.ExpectedSuccess(t, err)
	test.Equate(t, c.Cycles(), 16)
	test.Equate(t, c.Shape, cycles.OverrideShape)
}

func TestManualOverrideTable(t *testing.T) {
	r := cycles.NewResolver(map[string]int{
		"adda.l (an)+,an": 16, // pad the awkward 14-cycle shape to 16
	})

	c, err := r.Resolve("adda.l (a2)+,a0", -1, 1)
	test.ExpectedSuccess(t, err)
	test.Equate(t, c.Cycles(), 16)

	// an inline override still beats the manual table
	c, err = r.Resolve("adda.l (a2)+,a0", 14, 1)
	test.ExpectedSuccess(t, err)
	test.Equate(t, c.Cycles(), 14)
}

func TestUnknownInstruction(t *testing.T) {
	r := cycles.NewResolver(nil)

	_, err := r.Resolve("frobnicate d0", -1, 12)
	test.ExpectedFailure(t, err)
	test.Equate(t, curated.Is(err, cycles.UnknownInstructionCost), true)
}

func TestBranchCostString(t *testing.T) {
	r := cycles.NewResolver(nil)

	c, err := r.Resolve("bne loop", -1, 1)
	test.ExpectedSuccess(t, err)
	test.Equate(t, c.String(), "12/10")
	test.Equate(t, c.Cycles(), 12)
}

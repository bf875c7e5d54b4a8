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

package template_test

import (
	"testing"

	"github.com/vectronix/cyclespitter/curated"
	"github.com/vectronix/cyclespitter/cycles"
	"github.com/vectronix/cyclespitter/template"
	"github.com/vectronix/cyclespitter/test"
)

const borderTemplate = `
; 50hz/60hz switch fullscreen template

	move.b	d7,$ffff820a.w	; Left border
	move.b	d0,$ffff820a.w

	dcb.w	40,$4e71

	move.b	d7,$ffff8260.w	; Right border
	move.b	d0,$ffff8260.w

	dcb.w	20,$4e71

stab:	move.b	d7,$ffff8260.w	; Stabilizer
	move.b	d0,$ffff8260.w
	nop
`

func TestParse(t *testing.T) {
	res := cycles.NewResolver(nil)

	tpl, err := template.Parse("border.s", borderTemplate, res)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	test.Equate(t, tpl.Source, "border.s")
	test.Equate(t, tpl.Left.Label, "Left border")
	test.Equate(t, tpl.Right.Label, "Right border")
	test.Equate(t, tpl.Stabilizer.Label, "Stabilizer")

	test.Equate(t, len(tpl.Left.Lines), 2)
	test.Equate(t, len(tpl.Right.Lines), 2)
	test.Equate(t, len(tpl.Stabilizer.Lines), 3)

	// move.b dn,xxx.w is 12 cycles
	test.Equate(t, tpl.Left.Cycles(), 24)
	test.Equate(t, tpl.Right.Cycles(), 24)
	test.Equate(t, tpl.Stabilizer.Cycles(), 28)
}

func TestParseOverride(t *testing.T) {
	res := cycles.NewResolver(nil)

	// the override is read from the trailing comment, the same place the
	// parser reads it from in the main source
	tpl, err := template.Parse("t", `
	stop #$2300 ; Left border (8)
	dcb.w 4,$4e71
	nop ; Right border
	dcb.w 4,$4e71
	nop ; Stabilizer
`, res)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	test.Equate(t, tpl.Left.Cycles(), 8)
	test.Equate(t, tpl.Left.Lines[0].Cost.Shape, cycles.OverrideShape)
}

func TestParseCommentMentioningEquate(t *testing.T) {
	res := cycles.NewResolver(nil)

	// a comment containing the word "set" must not drop the costed line it
	// annotates. real equates are still skipped, however they are spaced
	tpl, err := template.Parse("t", `
height	equ	200
offset set 0

	move.b d7,$ffff8260.w ; set up the left border
	move.b d0,$ffff8260.w
	dcb.w 4,$4e71
	nop ; Right border
	dcb.w 4,$4e71
	nop ; Stabilizer
`, res)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	test.Equate(t, len(tpl.Left.Lines), 2)
	test.Equate(t, tpl.Left.Cycles(), 24)
}

func TestParseSegmentCount(t *testing.T) {
	res := cycles.NewResolver(nil)

	_, err := template.Parse("t", `
	nop ; Left border
	dcb.w 4,$4e71
	nop ; Right border
`, res)
	if !curated.Is(err, template.MalformedTemplate) {
		t.Fatalf("expected malformed template error, got: %v", err)
	}
}

func TestParseUncostableLine(t *testing.T) {
	res := cycles.NewResolver(nil)

	_, err := template.Parse("t", `
	frobnicate d0 ; Left border
	dcb.w 4,$4e71
	nop ; Right border
	dcb.w 4,$4e71
	nop ; Stabilizer
`, res)
	if !curated.Is(err, template.MalformedTemplate) {
		t.Fatalf("expected malformed template error, got: %v", err)
	}
	if !curated.Has(err, cycles.UnknownInstructionCost) {
		t.Fatalf("expected wrapped unknown instruction error, got: %v", err)
	}
}

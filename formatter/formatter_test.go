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

package formatter_test

import (
	"strings"
	"testing"

	"github.com/vectronix/cyclespitter/cycles"
	"github.com/vectronix/cyclespitter/expander"
	"github.com/vectronix/cyclespitter/formatter"
	"github.com/vectronix/cyclespitter/parser"
	"github.com/vectronix/cyclespitter/scheduler"
	"github.com/vectronix/cyclespitter/template"
	"github.com/vectronix/cyclespitter/test"
)

func schedule(t *testing.T, src string) *scheduler.Result {
	t.Helper()

	res := cycles.NewResolver(nil)
	tpl, err := template.Parse("test.s", `
	nop ; Left border
	nop
	dcb.w 2,$4e71
	nop ; Right border
	dcb.w 2,$4e71
	nop ; Stabilizer
	nop
`, res)
	if err != nil {
		t.Fatalf("template parse: %v", err)
	}

	parsed, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	expanded, err := expander.Expand(parsed)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	costed, err := res.ResolveAll(expanded)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	r, err := scheduler.Schedule(costed, tpl, 40)
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	return r
}

func TestWrite(t *testing.T) {
	r := schedule(t, "\tmoveq #0,d0\n\tnop\n")

	b := &strings.Builder{}
	if err := formatter.New("SCANLINES_CONSUMED").Write(b, r); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := b.String()

	test.Equate(t, strings.Contains(out, "SCANLINES_CONSUMED\tequ\t1"), true)
	test.Equate(t, strings.Contains(out, "; --- scanline 1 ---"), true)
	test.Equate(t, strings.Contains(out, "; template: test.s"), true)
	test.Equate(t, strings.Contains(out, "; 40 cycles per scanline, 1 scanlines consumed"), true)

	// the moveq is the first scheduled instruction, so its offset is the
	// 16 cycle template opening
	test.Equate(t, strings.Contains(out, "\tmoveq #0,d0\t;\t(4)\tmoveq.l #xxx,dn\t[16]"), true)

	// padding executes after the 4 cycle right border, 12 cycles short of
	// the 40 cycle target
	test.Equate(t, strings.Contains(out, "\tdcb.w 3,$4e71\t;\t(12)\t[28]"), true)
}

func TestWriteAnnotatesEveryCodeLine(t *testing.T) {
	r := schedule(t, strings.Repeat("\tnop\n", 7))

	b := &strings.Builder{}
	if err := formatter.New("N").Write(b, r); err != nil {
		t.Fatalf("write: %v", err)
	}

	test.Equate(t, strings.Contains(b.String(), "N\tequ\t2"), true)

	count := 0
	for _, line := range strings.Split(b.String(), "\n") {
		if strings.Contains(line, "\tnop\t;\t(4)\tnop.w\t[") {
			count++
		}
	}
	test.Equate(t, count, 7)
}

func TestWriteCommentsUnindented(t *testing.T) {
	r := schedule(t, "; a comment\n\tnop\n")

	b := &strings.Builder{}
	if err := formatter.New("N").Write(b, r); err != nil {
		t.Fatalf("write: %v", err)
	}

	found := false
	for _, line := range strings.Split(b.String(), "\n") {
		if line == "; a comment" {
			found = true
		}
	}
	test.Equate(t, found, true)
}

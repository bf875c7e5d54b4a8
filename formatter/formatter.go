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

// Package formatter renders a scheduled result as assemblable source text.
//
// The output opens with a banner comment and an equ that exports the number
// of scanlines the schedule consumed. Each scanline follows under its own
// heading. Scheduled instructions carry an annotation comment giving the
// cycle cost, the cost table shape that matched and the cycles the scanline
// has consumed before the instruction executes. Template lines are
// reproduced as they appear in the template text.
package formatter

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/vectronix/cyclespitter/scheduler"
	"github.com/vectronix/cyclespitter/version"
)

const rule = "; ----------------------------------------------------------------------"

// Formatter renders scheduled results. The zero value is not usable: use
// New.
type Formatter struct {
	// the symbol under which the scanline count is exported
	countLabel string
}

// New is the preferred method of initialisation for the Formatter type.
func New(countLabel string) *Formatter {
	return &Formatter{countLabel: countLabel}
}

// Write renders the result to w.
func (f *Formatter) Write(w io.Writer, r *scheduler.Result) error {
	b := bufio.NewWriter(w)

	vers, _, _ := version.Version()

	fmt.Fprintln(b, rule)
	fmt.Fprintf(b, "; %s %s\n", version.ApplicationName, vers)
	fmt.Fprintf(b, "; template: %s\n", r.Template.Source)
	fmt.Fprintf(b, "; %d cycles per scanline, %d scanlines consumed\n", r.Target, r.Count())
	fmt.Fprintln(b, rule)
	fmt.Fprintln(b)
	fmt.Fprintf(b, "%s\tequ\t%d\n", f.countLabel, r.Count())

	for _, sl := range r.Scanlines {
		fmt.Fprintln(b)
		fmt.Fprintf(b, "; --- scanline %d ---\n", sl.Num)
		for _, e := range sl.Entries {
			fmt.Fprintln(b, f.entry(e))
		}
	}

	for _, e := range r.Trailing {
		fmt.Fprintln(b, e.Text)
	}

	return b.Flush()
}

// entry renders one line of a scanline. comments keep their own layout,
// everything else is indented to the instruction column.
func (f *Formatter) entry(e scheduler.Entry) string {
	switch e.Kind {
	case scheduler.EntryComment:
		return e.Text
	case scheduler.EntryTemplate:
		return indent(e.Text)
	case scheduler.EntryPadding:
		return fmt.Sprintf("%s\t;\t(%d)\t[%d]", indent(e.Text), e.Cost.Cycles(), e.Offset)
	}
	return fmt.Sprintf("%s\t;\t(%s)\t%s\t[%d]", indent(e.Text), e.Cost, e.Cost.Shape, e.Offset)
}

// indent moves an unlabelled line to the instruction column. labelled lines
// already start at column zero.
func indent(text string) string {
	if f := strings.Fields(text); len(f) > 0 && strings.HasSuffix(f[0], ":") {
		return text
	}
	return "\t" + text
}

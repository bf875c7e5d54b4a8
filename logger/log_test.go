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

package logger

import (
	"strings"
	"testing"

	"github.com/vectronix/cyclespitter/test"
)

func TestRepeatFolding(t *testing.T) {
	l := newLogger(10)

	l.log("scheduler", "scanline closed")
	l.log("scheduler", "scanline closed")
	l.log("scheduler", "scanline closed")

	s := &strings.Builder{}
	l.write(s)

	test.Equate(t, len(l.entries), 1)
	test.Equate(t, s.String(), "scheduler: scanline closed (repeat x3)\n")
}

func TestMaxEntries(t *testing.T) {
	l := newLogger(2)

	l.log("a", "1")
	l.log("b", "2")
	l.log("c", "3")

	test.Equate(t, len(l.entries), 2)

	s := &strings.Builder{}
	l.write(s)
	test.Equate(t, s.String(), "b: 2\nc: 3\n")
}

func TestEcho(t *testing.T) {
	l := newLogger(10)

	s := &strings.Builder{}
	l.setEcho(s)
	l.log("expander", "frame opened")

	test.Equate(t, s.String(), "expander: frame opened\n")
}

func TestTail(t *testing.T) {
	l := newLogger(10)

	l.log("a", "1")
	l.log("b", "2")
	l.log("c", "3")

	s := &strings.Builder{}
	l.tail(s, 2)
	test.Equate(t, s.String(), "b: 2\nc: 3\n")

	// tail of more entries than exist is capped
	s.Reset()
	l.tail(s, 100)
	test.Equate(t, s.String(), "a: 1\nb: 2\nc: 3\n")
}

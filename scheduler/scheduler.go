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

// Package scheduler packs costed instructions into exact-width scanlines.
//
// Every scanline is the same shape: the left border and stabilizer segments
// of the template open the line, as many input instructions as fit come
// next, and the right border segment followed by NOP padding closes the
// line at exactly the target cycle count. Instructions are never split or
// reordered. An instruction that does not fit in the space remaining on the
// current scanline starts the next one.
package scheduler

import (
	"fmt"

	"github.com/vectronix/cyclespitter/curated"
	"github.com/vectronix/cyclespitter/cycles"
	"github.com/vectronix/cyclespitter/template"
)

// Schedule error patterns.
const (
	// the template's opening and closing segments leave no room for even a
	// single instruction
	TemplateExceedsBudget = "scheduler: template exceeds budget: opening %d and closing %d cycles leave no room in a %d cycle scanline"

	// a scanline's remaining gap cannot be filled with an exact number of
	// NOPs
	UnfillableGap = "scheduler: unfillable gap: scanline %d: gap of %d cycles is not a multiple of %d"

	// a single instruction is wider than the schedulable region of an empty
	// scanline
	UnschedulableLine = "scheduler: unschedulable line: line %d: %s: %d cycles never fits in the %d available"
)

// EntryKind distinguishes the lines that make up a scheduled scanline.
type EntryKind int

// List of valid EntryKind values.
const (
	// a line from a template segment
	EntryTemplate EntryKind = iota

	// an input instruction placed on this scanline
	EntryCode

	// a comment or blank line carried through from the input
	EntryComment

	// the dcb.w NOP filler that closes the scanline
	EntryPadding
)

// Entry is one output line of a scheduled scanline.
type Entry struct {
	Kind EntryKind
	Text string
	Cost cycles.Cost

	// cycles consumed on the scanline before this entry executes. zero at
	// the start of every scanline, and zero for comment entries
	Offset int
}

// Scanline is one exact-width scanline. Num counts from one.
type Scanline struct {
	Num     int
	Entries []Entry
}

// Result is a fully scheduled program.
type Result struct {
	Scanlines []Scanline

	// comments from the input that followed the last instruction
	Trailing []Entry

	Target   int
	Template *template.Template
}

// Count returns the number of scanlines consumed by the schedule.
func (r *Result) Count() int {
	return len(r.Scanlines)
}

// scheduler state for a single Schedule call
type scheduler struct {
	tpl    *template.Template
	target int

	// cycles available to input instructions on every scanline
	avail int

	current *Scanline
	used    int
	result  *Result

	// comments are buffered and flushed with the instruction that follows
	// them, so a comment is never separated from the line it describes by a
	// scanline boundary
	pending []Entry
}

// Schedule packs the costed lines into scanlines of exactly target cycles.
// Comment lines travel with the instruction that follows them.
func Schedule(costed []cycles.CostedLine, tpl *template.Template, target int) (*Result, error) {
	opening := tpl.Left.Cycles() + tpl.Stabilizer.Cycles()
	closing := tpl.Right.Cycles()

	s := &scheduler{
		tpl:    tpl,
		target: target,
		avail:  target - opening - closing,
		result: &Result{Target: target, Template: tpl},
	}

	if s.avail <= 0 {
		return nil, curated.Errorf(TemplateExceedsBudget, opening, closing, target)
	}

	for i := range costed {
		l := &costed[i]

		if !l.Line.IsInstruction() {
			s.pending = append(s.pending, Entry{
				Kind: EntryComment,
				Text: commentText(l),
			})
			continue
		}

		// the not-taken cycle count is what a straight-line pass through
		// the scanline costs
		c := l.Cost.Cycles()
		if c > s.avail {
			return nil, curated.Errorf(UnschedulableLine, l.Line.Num, l.Line.Body, c, s.avail)
		}

		if s.current != nil && s.used+c > s.avail {
			if err := s.close(); err != nil {
				return nil, err
			}
		}
		if s.current == nil {
			s.open()
		}

		s.current.Entries = append(s.current.Entries, s.pending...)
		s.pending = s.pending[:0]

		s.current.Entries = append(s.current.Entries, Entry{
			Kind:   EntryCode,
			Text:   l.Line.Text(),
			Cost:   l.Cost,
			Offset: s.offset(),
		})
		s.used += c
	}

	if s.current != nil {
		if err := s.close(); err != nil {
			return nil, err
		}
	}
	s.result.Trailing = append(s.result.Trailing, s.pending...)

	return s.result, nil
}

// offset returns the cycles the current scanline has consumed before its
// next entry executes. opening segments included.
func (s *scheduler) offset() int {
	return s.tpl.Left.Cycles() + s.tpl.Stabilizer.Cycles() + s.used
}

// open starts a new scanline with the left border and stabilizer segments.
func (s *scheduler) open() {
	s.current = &Scanline{Num: len(s.result.Scanlines) + 1}
	s.used = 0

	off := 0
	for _, seg := range []template.Segment{s.tpl.Left, s.tpl.Stabilizer} {
		for _, l := range seg.Lines {
			s.current.Entries = append(s.current.Entries, Entry{
				Kind:   EntryTemplate,
				Text:   l.Text,
				Cost:   l.Cost,
				Offset: off,
			})
			off += l.Cost.Cycles()
		}
	}
}

// close appends the right border segment and the NOP padding that brings
// the scanline to exactly the target width.
func (s *scheduler) close() error {
	gap := s.avail - s.used
	if gap%cycles.NOPCycles() != 0 {
		return curated.Errorf(UnfillableGap, s.current.Num, gap, cycles.NOPCycles())
	}

	off := s.offset()
	for _, l := range s.tpl.Right.Lines {
		s.current.Entries = append(s.current.Entries, Entry{
			Kind:   EntryTemplate,
			Text:   l.Text,
			Cost:   l.Cost,
			Offset: off,
		})
		off += l.Cost.Cycles()
	}

	if gap > 0 {
		s.current.Entries = append(s.current.Entries, Entry{
			Kind:   EntryPadding,
			Text:   fmt.Sprintf("dcb.w %d,$4e71", gap/cycles.NOPCycles()),
			Cost:   cycles.Fixed(gap),
			Offset: off,
		})
	}

	s.result.Scanlines = append(s.result.Scanlines, *s.current)
	s.current = nil
	s.used = 0

	return nil
}

func commentText(l *cycles.CostedLine) string {
	if l.Line.Comment == "" {
		return l.Line.Text()
	}
	t := l.Line.Text()
	if t == "" {
		return "; " + l.Line.Comment
	}
	return t + "\t; " + l.Line.Comment
}

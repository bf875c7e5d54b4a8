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

// Package template parses the border/stabilizer injection template. A
// template is ordinary assembly text organised into exactly three segments,
// in order: left border, right border, stabilizer. Segments are separated by
// NOP filler lines of the form:
//
//	dcb.w <count>,$4e71
//
// Each segment line is costed with the same resolver used for the main
// body, so a template can rely on the cost table, inline (n) overrides or
// the manual override table in exactly the same way the input source can.
package template

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/vectronix/cyclespitter/curated"
	"github.com/vectronix/cyclespitter/cycles"
)

// MalformedTemplate is returned when the template text does not describe
// three segments, or a template line cannot be costed.
const MalformedTemplate = "template: %s: %v"

// Line is one costed line of a template segment.
type Line struct {
	Text string
	Cost cycles.Cost
}

// Segment is one of the three injection sequences. Shared read-only by
// every scanline boundary.
type Segment struct {
	Label string
	Lines []Line
}

// Cycles returns the precomputed total cost of the segment.
func (s Segment) Cycles() int {
	total := 0
	for _, l := range s.Lines {
		total += l.Cost.Cycles()
	}
	return total
}

// Template is the parsed form of a border/stabilizer template.
type Template struct {
	Left       Segment
	Right      Segment
	Stabilizer Segment

	// identifier of the template text, reproduced in the output header
	Source string
}

var (
	fillerMatch   = regexp.MustCompile(`dcb\.w\s*(\d+),\s*\$4e71`)
	overrideMatch = regexp.MustCompile(`(?:^|\s)\(\s*(\d+)\s*\)`)
	labelMatch    = regexp.MustCompile(`^[a-zA-Z_.][a-zA-Z0-9_.]*:`)
)

// the default segment labels, used when a segment has no inline comment to
// take a label from.
var defaultLabels = []string{"Left border", "Right border", "Stabilizer"}

// isEquate recognises "symbol equ value" and "symbol set value" assembler
// lines, whatever whitespace separates the fields.
func isEquate(body string) bool {
	fields := strings.Fields(body)
	if len(fields) < 2 {
		return false
	}
	op := strings.ToLower(fields[1])
	return op == "equ" || op == "set"
}

// Parse converts template text into a Template. The source argument is an
// identifier for the text (usually the file name) used in error messages
// and reproduced in the output header.
func Parse(source string, content string, res *cycles.Resolver) (*Template, error) {
	var segments []Segment
	var current Segment

	closeSegment := func() {
		if len(current.Lines) == 0 {
			return
		}
		if current.Label == "" && len(segments) < len(defaultLabels) {
			current.Label = defaultLabels[len(segments)]
		}
		segments = append(segments, current)
		current = Segment{}
	}

	for num, raw := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}

		if fillerMatch.MatchString(trimmed) {
			closeSegment()
			continue
		}

		body := trimmed
		comment := ""
		if idx := strings.Index(trimmed, ";"); idx != -1 {
			body = strings.TrimSpace(trimmed[:idx])
			comment = strings.TrimSpace(trimmed[idx+1:])
		}

		// comment-only lines and assembler equates contribute no cycles
		// and are not injected. the skip looks at the instruction body
		// only, a comment is free to mention equates
		if body == "" || isEquate(body) {
			continue
		}

		if m := labelMatch.FindString(body); m != "" {
			body = strings.TrimSpace(body[len(m):])
			if body == "" {
				continue
			}
		}

		// an explicit cycle count in the trailing comment wins over the
		// cost table, same as in the main source
		override := -1
		if m := overrideMatch.FindStringSubmatch(comment); m != nil {
			// the regexp only admits digits so this cannot fail
			override, _ = strconv.Atoi(m[1])
		}

		cost, err := res.Resolve(body, override, num+1)
		if err != nil {
			return nil, curated.Errorf(MalformedTemplate, source, err)
		}

		if current.Label == "" && comment != "" {
			current.Label = comment
		}

		current.Lines = append(current.Lines, Line{Text: trimmed, Cost: cost})
	}
	closeSegment()

	if len(segments) != 3 {
		return nil, curated.Errorf(MalformedTemplate, source,
			curated.Errorf("expected 3 segments (left border, right border, stabilizer), found %d", len(segments)))
	}

	return &Template{
		Left:       segments[0],
		Right:      segments[1],
		Stabilizer: segments[2],
		Source:     source,
	}, nil
}

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

// Package parser converts raw assembly text into SourceLine records. A
// SourceLine captures the label, the directive (REPT/ENDR/SET), the
// instruction body, the trailing comment and the explicit cycle override
// embedded in that comment, if any.
//
// The parser is line oriented and keeps only one piece of state between
// lines: the title of the current section, recognised from boxed comment
// headings. Everything else is a pure function of the line text.
package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/vectronix/cyclespitter/curated"
)

// MalformedLine is returned when a directive is recognised but its arguments
// do not parse. The first value is the one-based line number.
const MalformedLine = "parser: malformed line %d: %s"

// DirectiveKind identifies the directive carried by a SourceLine.
type DirectiveKind int

// List of valid DirectiveKind values. NoDirective indicates an instruction,
// comment or blank line.
const (
	NoDirective DirectiveKind = iota
	Rept
	Endr
	Set
)

// SourceLine is one physical line of input. Created once by the parser and
// immutable afterwards.
type SourceLine struct {
	Raw string
	Num int

	Label     string
	Directive DirectiveKind

	// CountExpr is valid when Directive == Rept
	CountExpr *Expr

	// VarName and ValueExpr are valid when Directive == Set
	VarName   string
	ValueExpr *Expr

	// mnemonic and operand text. empty for directive, comment and blank lines
	Body string

	// trailing comment without the leading semi-colon
	Comment string

	// explicit cycle cost override parsed from the comment. -1 when absent
	Override int

	// title of the section the line belongs to. empty before the first
	// boxed comment heading
	Section string
}

// IsInstruction returns true if the line carries an instruction body.
func (l *SourceLine) IsInstruction() bool {
	return l.Directive == NoDirective && l.Body != ""
}

// IsCommentOnly returns true for blank lines and lines that are nothing but
// comment.
func (l *SourceLine) IsCommentOnly() bool {
	return l.Directive == NoDirective && l.Body == ""
}

var (
	labelMatch    = regexp.MustCompile(`^\s*([a-zA-Z_.][a-zA-Z0-9_.]*):\s*`)
	overrideMatch = regexp.MustCompile(`(?:^|\s)\(\s*(\d+)\s*\)`)
	reptMatch     = regexp.MustCompile(`(?i)^rept(\s+(.*))?$`)
	endrMatch     = regexp.MustCompile(`(?i)^endr\b`)
	setMatch      = regexp.MustCompile(`(?i)^([a-z_][a-z0-9_]*)\s+set\s+(.+)$`)

	// a comment made of nothing but box-drawing characters. two of these
	// around a plain comment make a boxed section heading
	ruleMatch = regexp.MustCompile(`^[-=*;#\s]{3,}$`)

	// a one-line heading. for example: "; --- cube loop ---"
	inlineHeading = regexp.MustCompile(`^[-=*]{2,}\s*(.+?)\s*[-=*]{2,}$`)
)

// Parser converts raw lines to SourceLines. The zero value is ready to use.
type Parser struct {
	num     int
	section string

	// whether the previous comment line was a box rule
	rule bool

	// candidate section title. promoted to the current section when the
	// closing rule of the box is seen
	pending string
}

// NewParser is the preferred method of initialisation for the Parser type.
func NewParser() *Parser {
	return &Parser{}
}

// ParseLine converts one raw line of text to a SourceLine. Line numbers
// advance with every call.
func (p *Parser) ParseLine(raw string) (*SourceLine, error) {
	p.num++

	l := &SourceLine{
		Raw:      raw,
		Num:      p.num,
		Override: -1,
		Section:  p.section,
	}

	rest := raw
	if idx := strings.Index(rest, ";"); idx != -1 {
		l.Comment = strings.TrimSpace(rest[idx+1:])
		rest = rest[:idx]
	}

	if m := labelMatch.FindStringSubmatch(rest); m != nil {
		l.Label = m[1]
		rest = rest[len(m[0]):]
	}

	l.Body = strings.TrimSpace(rest)

	if l.Comment != "" {
		if m := overrideMatch.FindStringSubmatch(l.Comment); m != nil {
			// the regexp only admits digits so Atoi cannot fail
			l.Override, _ = strconv.Atoi(m[1])
		}
	}

	if l.Body == "" {
		p.noteHeading(l.Comment, raw)
		return l, nil
	}
	p.rule = false
	p.pending = ""

	if m := reptMatch.FindStringSubmatch(l.Body); m != nil {
		expr := strings.TrimSpace(m[2])
		if expr == "" {
			return nil, curated.Errorf(MalformedLine, l.Num, "rept: missing count")
		}
		count, err := ParseExpr(expr)
		if err != nil {
			return nil, curated.Errorf(MalformedLine, l.Num, err)
		}
		l.Directive = Rept
		l.CountExpr = count
		l.Body = ""
		return l, nil
	}

	if endrMatch.MatchString(l.Body) {
		l.Directive = Endr
		l.Body = ""
		return l, nil
	}

	if m := setMatch.FindStringSubmatch(l.Body); m != nil {
		value, err := ParseExpr(m[2])
		if err != nil {
			return nil, curated.Errorf(MalformedLine, l.Num, err)
		}
		l.Directive = Set
		l.VarName = strings.ToLower(m[1])
		l.ValueExpr = value
		l.Body = ""
		return l, nil
	}

	return l, nil
}

// noteHeading tracks boxed comment headings. A heading is either a single
// comment framed by box rules:
//
//	; ---------------
//	; cube loop
//	; ---------------
//
// or a one-line form: "; --- cube loop ---". The recognised title becomes the
// section for all subsequent lines.
func (p *Parser) noteHeading(comment string, raw string) {
	if strings.TrimSpace(raw) == "" {
		p.rule = false
		p.pending = ""
		return
	}

	if m := inlineHeading.FindStringSubmatch(comment); m != nil {
		p.section = m[1]
		p.rule = false
		p.pending = ""
		return
	}

	if comment == "" || ruleMatch.MatchString(comment) {
		if p.pending != "" {
			// closing rule of a box. promote the pending title
			p.section = p.pending
			p.pending = ""
		}
		p.rule = true
		return
	}

	if p.rule {
		p.pending = comment
	}
	p.rule = false
}

// Parse is a convenience function that converts a whole source text to a
// sequence of SourceLines, stopping at the first error.
func Parse(src string) ([]*SourceLine, error) {
	p := NewParser()

	var lines []*SourceLine
	for _, raw := range strings.Split(src, "\n") {
		l, err := p.ParseLine(raw)
		if err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}

	return lines, nil
}

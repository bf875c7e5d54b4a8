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

// Package expander flattens the parsed line stream by unrolling REPT/ENDR
// blocks. SET directives assign integer variables that are substituted into
// operand text as the body of a repeat block is replayed.
//
// Variable scope follows the repeat nesting. A nested block inherits a
// snapshot of the enclosing variables at the moment it is entered, once per
// enclosing iteration. Mutations inside the nested block never leak back to
// the enclosing block.
//
// Expansion is purely structural. It never inspects instruction semantics.
package expander

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/vectronix/cyclespitter/curated"
	"github.com/vectronix/cyclespitter/parser"
)

// Error patterns for the expansion stage. Both carry the offending line
// number and the active repeat-nesting path.
const (
	UnbalancedRept    = "expander: unbalanced rept: line %d: %s: %v"
	UndefinedVariable = "expander: undefined variable: line %d: %s: %v"
)

// Line is a directive-free line after macro expansion. Fields mirror
// parser.SourceLine minus the directive, with variable substitution already
// applied to the operand text.
type Line struct {
	Num      int
	Label    string
	Body     string
	Comment  string
	Override int

	// the section title in effect when the line was emitted
	Section string
}

// IsInstruction returns true if the line carries an instruction body.
func (l *Line) IsInstruction() bool {
	return l.Body != ""
}

// Text reassembles the line for output. The trailing comment is not
// included; the formatter decides how comments and annotations are laid out.
func (l *Line) Text() string {
	if l.Label != "" {
		if l.Body == "" {
			return l.Label + ":"
		}
		return l.Label + ":\t" + l.Body
	}
	return l.Body
}

// expansion state. env is owned by the currently replaying frame. path
// records the nesting for error reporting, eg. "rept@5/rept@9".
type expansion struct {
	out  []Line
	path []string
}

func (ex *expansion) pathString() string {
	if len(ex.path) == 0 {
		return "top level"
	}
	return strings.Join(ex.path, "/")
}

// Expand unrolls all repeat blocks in the parsed line sequence, producing the
// flat sequence the cycle resolver operates on.
func Expand(lines []*parser.SourceLine) ([]Line, error) {
	ex := &expansion{}

	env := map[string]int{}
	idx, err := ex.span(lines, 0, env)
	if err != nil {
		return nil, err
	}

	// span() only returns early on an ENDR with no matching open frame
	if idx < len(lines) {
		return nil, curated.Errorf(UnbalancedRept, lines[idx].Num, ex.pathString(), "endr without a matching rept")
	}

	return ex.out, nil
}

// span expands lines[idx:] until an ENDR at the current depth or the end of
// input. Returns the index of the unconsumed ENDR, or len(lines).
func (ex *expansion) span(lines []*parser.SourceLine, idx int, env map[string]int) (int, error) {
	for idx < len(lines) {
		l := lines[idx]

		switch l.Directive {
		case parser.Rept:
			count, err := ex.eval(l.CountExpr, env, l.Num)
			if err != nil {
				return idx, err
			}
			if count < 0 {
				return idx, curated.Errorf(parser.MalformedLine, l.Num, fmt.Sprintf("negative repeat count (%d)", count))
			}

			// locate the matching ENDR so the body can be replayed
			end, err := matchEndr(lines, idx+1)
			if err != nil {
				return idx, curated.Errorf(UnbalancedRept, l.Num, ex.pathString(), err)
			}

			// the frame inherits a snapshot of the enclosing variables at
			// creation time. SET mutations in the body accumulate across
			// the frame's own iterations but never reach the enclosing env.
			// a nested REPT re-enters this switch on every replay pass and
			// so takes a fresh snapshot per enclosing iteration
			frame := snapshot(env)
			ex.path = append(ex.path, fmt.Sprintf("rept@%d", l.Num))
			for i := 0; i < count; i++ {
				if _, err := ex.span(lines[idx+1:end], 0, frame); err != nil {
					return idx, err
				}
			}
			ex.path = ex.path[:len(ex.path)-1]

			idx = end + 1

		case parser.Endr:
			return idx, nil

		case parser.Set:
			v, err := ex.eval(l.ValueExpr, env, l.Num)
			if err != nil {
				return idx, err
			}
			env[l.VarName] = v
			idx++

		default:
			ex.emit(l, env)
			idx++
		}
	}

	return idx, nil
}

// emit appends the expanded form of a non-directive line, substituting
// variables into the operand text.
func (ex *expansion) emit(l *parser.SourceLine, env map[string]int) {
	ex.out = append(ex.out, Line{
		Num:      l.Num,
		Label:    l.Label,
		Body:     substitute(l.Body, env),
		Comment:  l.Comment,
		Override: l.Override,
		Section:  l.Section,
	})
}

// matchEndr returns the index of the ENDR that closes the block opened just
// before lines[idx], accounting for nested blocks.
func matchEndr(lines []*parser.SourceLine, idx int) (int, error) {
	depth := 0
	for ; idx < len(lines); idx++ {
		switch lines[idx].Directive {
		case parser.Rept:
			depth++
		case parser.Endr:
			if depth == 0 {
				return idx, nil
			}
			depth--
		}
	}
	return -1, fmt.Errorf("rept never closed")
}

func snapshot(env map[string]int) map[string]int {
	c := make(map[string]int, len(env))
	for k, v := range env {
		c[k] = v
	}
	return c
}

// eval walks an expression tree against the variable environment.
func (ex *expansion) eval(e *parser.Expr, env map[string]int, num int) (int, error) {
	if e.Op == 0 {
		if e.Name == "" {
			return e.Value, nil
		}
		v, ok := env[e.Name]
		if !ok {
			return 0, curated.Errorf(UndefinedVariable, num, ex.pathString(), e.Name)
		}
		return v, nil
	}

	left, err := ex.eval(e.Left, env, num)
	if err != nil {
		return 0, err
	}
	right, err := ex.eval(e.Right, env, num)
	if err != nil {
		return 0, err
	}

	switch e.Op {
	case '+':
		return left + right, nil
	case '-':
		return left - right, nil
	case '*':
		return left * right, nil
	case '/':
		if right == 0 {
			return 0, curated.Errorf(parser.MalformedLine, num, "division by zero in expression")
		}
		return left / right, nil
	}

	// the parser only ever produces the four operators handled above
	panic(fmt.Sprintf("unknown operator %c", e.Op))
}

var identMatch = regexp.MustCompile(`[a-zA-Z_][a-zA-Z0-9_]*`)

// substitute replaces bare identifier occurrences of known variables in the
// operand text with their current decimal value. The mnemonic (the first
// token of the body) is never touched. Replacement is identifier-aware so a
// variable named "a" does not collide with the register "a0" or with a
// longer label that happens to contain "a".
func substitute(body string, env map[string]int) string {
	if len(env) == 0 || body == "" {
		return body
	}

	// split mnemonic from operand text
	cut := strings.IndexAny(body, " \t")
	if cut == -1 {
		return body
	}
	mnemonic := body[:cut]
	operands := body[cut:]

	operands = identMatch.ReplaceAllStringFunc(operands, func(ident string) string {
		if v, ok := env[strings.ToLower(ident)]; ok {
			return strconv.Itoa(v)
		}
		return ident
	})

	return mnemonic + operands
}

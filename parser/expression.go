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

package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// Expr is the parsed form of the integer arithmetic used by the REPT and SET
// directives. Supported syntax: decimal literals, variable references, the
// four operators + - * /, unary minus and parentheses.
//
// Parsing and evaluation are separate steps. The parser package only checks
// syntax; evaluation against a variable environment happens in the expander
// package where the environment lives.
type Expr struct {
	// one of '+', '-', '*', '/'. zero for a leaf node
	Op byte

	Left  *Expr
	Right *Expr

	// leaf values. Name is empty for a literal leaf
	Value int
	Name  string

	src string
}

func (e *Expr) String() string {
	return e.src
}

// IsLiteral returns true if the expression is a single integer literal.
func (e *Expr) IsLiteral() bool {
	return e.Op == 0 && e.Name == ""
}

// ParseExpr parses the arithmetic expression in s. The returned error is a
// plain error; callers wrap it in the MalformedLine pattern together with
// the line number.
func ParseExpr(s string) (*Expr, error) {
	src := strings.TrimSpace(s)
	if src == "" {
		return nil, fmt.Errorf("empty expression")
	}

	t := &exprTokens{}
	if err := t.tokenise(src); err != nil {
		return nil, err
	}

	e, err := t.sum()
	if err != nil {
		return nil, err
	}
	if !t.end() {
		return nil, fmt.Errorf("unexpected %q in expression", t.peek())
	}

	e.src = src
	return e, nil
}

type exprTokens struct {
	toks []string
	idx  int
}

func (t *exprTokens) tokenise(s string) error {
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == ' ' || c == '\t':
			i++

		case c == '+' || c == '-' || c == '*' || c == '/' || c == '(' || c == ')':
			t.toks = append(t.toks, string(c))
			i++

		case c >= '0' && c <= '9':
			j := i
			for j < len(s) && s[j] >= '0' && s[j] <= '9' {
				j++
			}
			t.toks = append(t.toks, s[i:j])
			i = j

		case c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
			j := i
			for j < len(s) && (s[j] == '_' || (s[j] >= 'a' && s[j] <= 'z') || (s[j] >= 'A' && s[j] <= 'Z') || (s[j] >= '0' && s[j] <= '9')) {
				j++
			}
			t.toks = append(t.toks, strings.ToLower(s[i:j]))
			i = j

		default:
			return fmt.Errorf("unexpected character %q in expression", c)
		}
	}
	return nil
}

func (t *exprTokens) end() bool {
	return t.idx >= len(t.toks)
}

func (t *exprTokens) peek() string {
	if t.end() {
		return ""
	}
	return t.toks[t.idx]
}

func (t *exprTokens) next() string {
	tok := t.peek()
	t.idx++
	return tok
}

func (t *exprTokens) sum() (*Expr, error) {
	e, err := t.product()
	if err != nil {
		return nil, err
	}
	for t.peek() == "+" || t.peek() == "-" {
		op := t.next()
		r, err := t.product()
		if err != nil {
			return nil, err
		}
		e = &Expr{Op: op[0], Left: e, Right: r}
	}
	return e, nil
}

func (t *exprTokens) product() (*Expr, error) {
	e, err := t.factor()
	if err != nil {
		return nil, err
	}
	for t.peek() == "*" || t.peek() == "/" {
		op := t.next()
		r, err := t.factor()
		if err != nil {
			return nil, err
		}
		e = &Expr{Op: op[0], Left: e, Right: r}
	}
	return e, nil
}

func (t *exprTokens) factor() (*Expr, error) {
	switch tok := t.next(); {
	case tok == "":
		return nil, fmt.Errorf("unexpected end of expression")

	case tok == "-":
		e, err := t.factor()
		if err != nil {
			return nil, err
		}
		return &Expr{Op: '-', Left: &Expr{Value: 0}, Right: e}, nil

	case tok == "(":
		e, err := t.sum()
		if err != nil {
			return nil, err
		}
		if t.next() != ")" {
			return nil, fmt.Errorf("missing closing parenthesis in expression")
		}
		return e, nil

	case tok[0] >= '0' && tok[0] <= '9':
		v, err := strconv.Atoi(tok)
		if err != nil {
			return nil, fmt.Errorf("bad integer literal %q", tok)
		}
		return &Expr{Value: v}, nil

	case tok == "+" || tok == "*" || tok == "/" || tok == ")":
		return nil, fmt.Errorf("unexpected %q in expression", tok)

	default:
		return &Expr{Name: tok}, nil
	}
}

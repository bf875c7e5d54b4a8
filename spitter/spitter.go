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

// Package spitter drives the whole pipeline: parse, macro expansion, cycle
// resolution, scanline scheduling and output formatting. It is the package
// the command line front-end talks to.
package spitter

import (
	"bytes"
	"io"

	"github.com/bradleyjkemp/memviz"

	"github.com/vectronix/cyclespitter/cycles"
	"github.com/vectronix/cyclespitter/expander"
	"github.com/vectronix/cyclespitter/formatter"
	"github.com/vectronix/cyclespitter/logger"
	"github.com/vectronix/cyclespitter/parser"
	"github.com/vectronix/cyclespitter/scheduler"
	"github.com/vectronix/cyclespitter/template"
)

// Spitter splits assembly source into exact-width scanlines. Once built it
// can process any number of sources against the same template and budget.
type Spitter struct {
	res        *cycles.Resolver
	tpl        *template.Template
	target     int
	countLabel string
}

// New is the preferred method of initialisation for the Spitter type.
func New(tpl *template.Template, res *cycles.Resolver, target int, countLabel string) *Spitter {
	return &Spitter{
		res:        res,
		tpl:        tpl,
		target:     target,
		countLabel: countLabel,
	}
}

// Schedule runs the pipeline up to and including the scheduler, returning
// the scheduled result without formatting it.
func (s *Spitter) Schedule(src string) (*scheduler.Result, error) {
	parsed, err := parser.Parse(src)
	if err != nil {
		return nil, err
	}

	expanded, err := expander.Expand(parsed)
	if err != nil {
		return nil, err
	}
	logger.Logf("spitter", "%d lines after macro expansion", len(expanded))

	costed, err := s.res.ResolveAll(expanded)
	if err != nil {
		return nil, err
	}

	result, err := scheduler.Schedule(costed, s.tpl, s.target)
	if err != nil {
		return nil, err
	}
	logger.Logf("spitter", "%d scanlines of %d cycles", result.Count(), s.target)

	return result, nil
}

// Spit runs the pipeline and writes the formatted output to w. Nothing is
// written unless the whole pipeline succeeds.
func (s *Spitter) Spit(w io.Writer, src string) (*scheduler.Result, error) {
	result, err := s.Schedule(src)
	if err != nil {
		return nil, err
	}

	b := &bytes.Buffer{}
	if err := formatter.New(s.countLabel).Write(b, result); err != nil {
		return nil, err
	}

	if _, err := w.Write(b.Bytes()); err != nil {
		return nil, err
	}

	return result, nil
}

// Dump writes the scheduled result as a graphviz dot graph. Intended for
// debugging schedule decisions visually.
func Dump(w io.Writer, result *scheduler.Result) {
	memviz.Map(w, result)
}

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

// Package config loads the optional HCL project file. A project file sets
// the scanline budget, the template, the exported label and the manual
// override table in one place:
//
//	spit {
//	  target_cycles   = pal
//	  scanlines_label = "SCANLINES_CONSUMED"
//	  template        = "template.s"
//	  source          = "sample.s"
//
//	  override {
//	    shape  = "adda.l (an)+,an"
//	    cycles = 16
//	  }
//	}
//
// The symbols pal and ntsc are predefined with the scanline widths of the
// two video timings. Command line flags take precedence over anything set
// here, and everything here has a default, so the file is never required.
package config

import (
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vectronix/cyclespitter/curated"
)

// BadConfig is returned when the project file cannot be read or decoded.
const BadConfig = "config: %s: %v"

// Defaults for every Config field.
const (
	DefTargetCycles   = 512
	DefScanlinesLabel = "SCANLINES_CONSUMED"
	DefTemplate       = "template.s"
	DefSource         = "sample.s"
)

// Config is the decoded project file with defaults applied.
type Config struct {
	TargetCycles   int
	ScanlinesLabel string
	Template       string
	Source         string

	// output file. empty means standard output
	Output string

	// manual cost override table, keyed by normalized instruction shape
	Overrides map[string]int
}

// hcl decode targets. the public Config deliberately carries no hcl tags
type overrideBlock struct {
	Shape  string `hcl:"shape"`
	Cycles int    `hcl:"cycles"`
}

type spitBlock struct {
	TargetCycles   int             `hcl:"target_cycles,optional"`
	ScanlinesLabel string          `hcl:"scanlines_label,optional"`
	Template       string          `hcl:"template,optional"`
	Source         string          `hcl:"source,optional"`
	Output         string          `hcl:"output,optional"`
	Overrides      []overrideBlock `hcl:"override,block"`
}

type projectFile struct {
	Spit *spitBlock `hcl:"spit,block"`
}

// Defaults returns a Config with every field at its default value.
func Defaults() *Config {
	return &Config{
		TargetCycles:   DefTargetCycles,
		ScanlinesLabel: DefScanlinesLabel,
		Template:       DefTemplate,
		Source:         DefSource,
		Overrides:      map[string]int{},
	}
}

// the scanline widths for the two video timings, usable by name in any
// project file expression
func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"pal":  cty.NumberIntVal(512),
			"ntsc": cty.NumberIntVal(508),
		},
	}
}

// Read decodes project file text. The filename is used in diagnostics only.
func Read(filename string, src []byte) (*Config, error) {
	f, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, curated.Errorf(BadConfig, filename, diags)
	}

	var proj projectFile
	if diags := gohcl.DecodeBody(f.Body, evalContext(), &proj); diags.HasErrors() {
		return nil, curated.Errorf(BadConfig, filename, diags)
	}

	conf := Defaults()
	if proj.Spit == nil {
		return conf, nil
	}

	if proj.Spit.TargetCycles != 0 {
		conf.TargetCycles = proj.Spit.TargetCycles
	}
	if proj.Spit.ScanlinesLabel != "" {
		conf.ScanlinesLabel = proj.Spit.ScanlinesLabel
	}
	if proj.Spit.Template != "" {
		conf.Template = proj.Spit.Template
	}
	if proj.Spit.Source != "" {
		conf.Source = proj.Spit.Source
	}
	conf.Output = proj.Spit.Output

	for _, o := range proj.Spit.Overrides {
		conf.Overrides[o.Shape] = o.Cycles
	}

	return conf, nil
}

// Load reads and decodes the project file at path.
func Load(path string) (*Config, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, curated.Errorf(BadConfig, path, err)
	}
	return Read(path, src)
}

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

package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/vectronix/cyclespitter/config"
	"github.com/vectronix/cyclespitter/cycles"
	"github.com/vectronix/cyclespitter/logger"
	"github.com/vectronix/cyclespitter/modalflag"
	"github.com/vectronix/cyclespitter/paths"
	"github.com/vectronix/cyclespitter/spitter"
	"github.com/vectronix/cyclespitter/statsview"
	"github.com/vectronix/cyclespitter/template"
	"github.com/vectronix/cyclespitter/version"
)

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.AddSubModes("RUN", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)
	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "RUN":
		err = run(md)
	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %v\n", md, err)
		os.Exit(20)
	}
}

func run(md *modalflag.Modes) error {
	md.NewMode()

	configFile := md.AddString("config", "", "project file (HCL)")
	target := md.AddInt("cycles", 0, "cycle budget per scanline (overrides project file)")
	label := md.AddString("label", "", "label under which the scanline count is exported")
	templateFile := md.AddString("template", "", "border/stabilizer template file")
	output := md.AddString("output", "", "output file. stdout by default")
	log := md.AddBool("log", false, "echo debugging log to stdout")
	dump := md.AddString("dump", "", "write schedule structure to file as graphviz dot")
	stats := md.AddBool("stats", false, "run stats server")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stdout)
	} else {
		logger.SetEcho(nil)
	}

	if *stats {
		if statsview.Available() {
			statsview.Launch(os.Stderr)
		} else {
			fmt.Println("* stats server not available. rebuild with the statsview constraint")
		}
	}

	conf := config.Defaults()
	if *configFile != "" {
		conf, err = config.Load(paths.Find(*configFile))
		if err != nil {
			return err
		}
	}

	// command line flags win over the project file
	if *target > 0 {
		conf.TargetCycles = *target
	}
	if *label != "" {
		conf.ScanlinesLabel = *label
	}
	if *templateFile != "" {
		conf.Template = *templateFile
	}
	if *output != "" {
		conf.Output = *output
	}
	if md.GetArg(0) != "" {
		conf.Source = md.GetArg(0)
	}

	res := cycles.NewResolver(conf.Overrides)

	tplSrc, err := os.ReadFile(paths.Find(conf.Template))
	if err != nil {
		return err
	}
	tpl, err := template.Parse(conf.Template, string(tplSrc), res)
	if err != nil {
		return err
	}

	src, err := os.ReadFile(conf.Source)
	if err != nil {
		return err
	}

	// the schedule is rendered in full before the output file is touched,
	// so a failure anywhere in the pipeline cannot leave a truncated file
	// behind
	sp := spitter.New(tpl, res, conf.TargetCycles, conf.ScanlinesLabel)
	buf := &bytes.Buffer{}
	result, err := sp.Spit(buf, string(src))
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if conf.Output != "" {
		f, err := os.Create(conf.Output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return err
	}

	if *dump != "" {
		f, err := os.Create(*dump)
		if err != nil {
			return err
		}
		defer f.Close()
		spitter.Dump(f, result)
	}

	return nil
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()

	revision := md.AddBool("v", false, "display revision information")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	vers, rev, _ := version.Version()
	fmt.Printf("%s %s\n", version.ApplicationName, vers)
	if *revision {
		fmt.Println(rev)
	}

	return nil
}

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

// Package modalflag layers sub-modes on top of the standard flag package.
// The command line is parsed in passes: each pass consumes the flags
// registered since the last NewMode() call and, if a sub-mode keyword
// follows them, selects that mode for the next pass.
//
// Help requests (-h and friends) are caught and printed to the Output
// field, with the list of available sub-modes appended.
package modalflag

import (
	"flag"
	"fmt"
	"io"
	"strings"
)

// Modes is the modal equivalent of flag.FlagSet. Set Output before calling
// Parse() or help messages will go nowhere.
type Modes struct {
	Output io.Writer

	flags *flag.FlagSet

	args    []string
	argsIdx int

	// sub-modes registered for the next Parse(). the first entry is the
	// default
	subModes []string

	// modes selected by successive Parse() calls. never reset
	path []string

	// free-form text printed after the flag summary on a help request
	additionalHelp string
}

func (md *Modes) String() string {
	return md.Path()
}

// Mode returns the most recently selected sub-mode.
func (md *Modes) Mode() string {
	if len(md.path) == 0 {
		return ""
	}
	return md.path[len(md.path)-1]
}

// Path returns every mode selected so far, separated by slashes.
func (md *Modes) Path() string {
	return strings.Join(md.path, "/")
}

// NewArgs begins parsing of a fresh argument list.
func (md *Modes) NewArgs(args []string) {
	md.args = args
	md.argsIdx = 0
	md.NewMode()
}

// NewMode begins a new parsing pass. Flags and sub-modes registered before
// this call are forgotten.
func (md *Modes) NewMode() {
	md.subModes = md.subModes[:0]
	md.flags = flag.NewFlagSet("", flag.ContinueOnError)
}

// AdditionalHelp text is printed after the generated flag summary.
func (md *Modes) AdditionalHelp(help string) {
	md.additionalHelp = help
}

// ParseResult is returned from the Parse() function.
type ParseResult int

// List of valid ParseResult values.
const (
	// carry on. if sub-modes were registered, Mode() says which one was
	// selected
	ParseContinue ParseResult = iota

	// help was requested and has been printed
	ParseHelp

	// an error occurred and is returned as the second return value
	ParseError
)

// Parse the next layer of the argument list.
func (md *Modes) Parse() (ParseResult, error) {
	hw := &strings.Builder{}
	md.flags.SetOutput(hw)

	err := md.flags.Parse(md.args[md.argsIdx:])
	if err != nil {
		if err == flag.ErrHelp {
			md.help(hw.String())
			return ParseHelp, nil
		}

		// an unrecognised flag probably belongs to a sub-mode. select the
		// default sub-mode and let its own parsing pass deal with it
		if len(md.subModes) > 0 {
			md.path = append(md.path, md.subModes[0])
			return ParseContinue, nil
		}

		return ParseError, err
	}

	if len(md.subModes) > 0 {
		// the default sub-mode applies when the next argument is not a
		// recognised sub-mode keyword
		mode := md.subModes[0]

		arg := strings.ToUpper(md.flags.Arg(0))
		for _, sm := range md.subModes {
			if sm == arg {
				mode = arg
				md.argsIdx++
				break // for loop
			}
		}

		md.path = append(md.path, mode)
	}

	return ParseContinue, nil
}

// help prints the flag package's own usage text, decorated with the mode
// path and the registered sub-modes.
func (md *Modes) help(flagUsage string) {
	if md.Output == nil {
		return
	}

	if md.Path() != "" {
		fmt.Fprintf(md.Output, "Usage of %s mode:\n", md.Path())
	} else {
		fmt.Fprintln(md.Output, "Usage:")
	}

	if lines := strings.SplitN(flagUsage, "\n", 2); len(lines) > 1 {
		fmt.Fprint(md.Output, lines[1])
	}

	if len(md.subModes) > 0 {
		fmt.Fprintf(md.Output, "  available sub-modes: %s\n", strings.Join(md.subModes, ", "))
		fmt.Fprintf(md.Output, "    default: %s\n", md.subModes[0])
	}

	if md.additionalHelp != "" {
		fmt.Fprintf(md.Output, "\n%s\n", md.additionalHelp)
	}
}

// RemainingArgs returns the arguments left over after a call to Parse().
func (md *Modes) RemainingArgs() []string {
	return md.flags.Args()
}

// GetArg returns the numbered leftover argument.
func (md *Modes) GetArg(i int) string {
	return md.flags.Arg(i)
}

// AddSubModes registers sub-modes for the next call to Parse(). The first
// sub-mode is the default. Comparisons are case insensitive.
func (md *Modes) AddSubModes(subModes ...string) {
	for _, sm := range subModes {
		md.subModes = append(md.subModes, strings.ToUpper(sm))
	}
}

// AddBool flag for next call to Parse().
func (md *Modes) AddBool(name string, value bool, usage string) *bool {
	return md.flags.Bool(name, value, usage)
}

// AddInt flag for next call to Parse().
func (md *Modes) AddInt(name string, value int, usage string) *int {
	return md.flags.Int(name, value, usage)
}

// AddString flag for next call to Parse().
func (md *Modes) AddString(name string, value string, usage string) *string {
	return md.flags.String(name, value, usage)
}

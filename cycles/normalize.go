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

package cycles

import (
	"regexp"
	"strings"
)

// regular expressions used by Normalize. each one rewrites a class of
// operand spelling into the placeholder used by the cost table, so that
// equivalent spellings share one table entry.
var (
	// displacement addressing. "12(a0)", "-4(sp)". the pre-decrement form
	// "-(a0)" also matches and is put back unchanged
	displacementMatch = regexp.MustCompile(`([^\s,()]+)\((a[0-7]|sp)\)`)

	// immediate values. "#123", "#-45", "#$ff"
	immediateMatch = regexp.MustCompile(`#[^,\s]+`)

	// data registers d0 to d7
	dataRegMatch = regexp.MustCompile(`\bd[0-7]\b`)

	// address registers a0 to a7 and the stack pointer
	addrRegMatch = regexp.MustCompile(`\b(a[0-7]|sp)\b`)

	// symbolic absolute addresses, optionally suffixed .w or .l
	absAddrMatch = regexp.MustCompile(`(^|[ \t,(\[])([a-zA-Z_][a-zA-Z0-9_]*)(\.[lw])?\b`)

	// literal absolute addresses. "$ffff8260", "$ffff8260.w"
	hexAddrMatch = regexp.MustCompile(`\$[0-9a-fA-F]+(\.[lw])?`)

	spacesMatch = regexp.MustCompile(`[ \t]+`)

	// branch mnemonics. the short suffix .s normalises to .b, no suffix
	// normalises to .w
	branchShortMatch = regexp.MustCompile(`^b[a-z]{2}\.s$`)
	branchBareMatch  = regexp.MustCompile(`^b[a-z]{2}$`)

	labelStripMatch = regexp.MustCompile(`^\s*[a-zA-Z_.][a-zA-Z0-9_.]*:\s*`)

	// a register list operand. "d0-d7/a1-a3", "a5", "d0/d2/d4"
	regListMatch = regexp.MustCompile(`^([ad][0-7]|sp)([-/]([ad][0-7]|sp))*$`)
)

// Normalize converts an instruction line into the canonical shape used as
// the cost table key. The mnemonic is given an explicit size suffix and each
// operand is reduced to its addressing-mode class:
//
//	move.w d0,$ffff8240.w   ->  move.w dn,xxx.w
//	lea 100(sp),a1          ->  lea.l d(an),an
//	movem.l d0-d7/a1-a3,-(sp) -> movem.l reglist,-(an)
//
// The returned count is the number of registers named in a register-list
// operand, or zero when the line has none.
func Normalize(line string) (string, int) {
	// strip trailing comment and any leading label
	if idx := strings.Index(line, ";"); idx != -1 {
		line = line[:idx]
	}
	line = labelStripMatch.ReplaceAllString(line, "")

	trimmed := strings.ToLower(strings.TrimSpace(line))

	mnemonic := trimmed
	operands := ""
	if cut := strings.IndexAny(trimmed, " \t"); cut != -1 {
		mnemonic = trimmed[:cut]
		operands = strings.TrimSpace(trimmed[cut+1:])
	}

	switch {
	case mnemonic == "lea" || mnemonic == "moveq":
		// these operate on full addresses/longwords whatever the spelling
		mnemonic += ".l"
	case branchShortMatch.MatchString(mnemonic):
		mnemonic = mnemonic[:3] + ".b"
	case branchBareMatch.MatchString(mnemonic):
		mnemonic += ".w"
	case !strings.Contains(mnemonic, "."):
		mnemonic += ".w"
	}

	// a register-list operand collapses to the "reglist" placeholder before
	// the register classes are rewritten individually. only the movem class
	// of instruction carries one
	regCount := 0
	if strings.HasPrefix(mnemonic, "movem") {
		var rewritten []string
		for _, op := range strings.Split(operands, ",") {
			op = strings.TrimSpace(op)
			if regListMatch.MatchString(op) {
				if n, err := CountRegisters(op); err == nil {
					regCount = n
					rewritten = append(rewritten, "reglist")
					continue
				}
			}
			rewritten = append(rewritten, op)
		}
		operands = strings.Join(rewritten, ",")
	}

	operands = displacementMatch.ReplaceAllStringFunc(operands, func(s string) string {
		m := displacementMatch.FindStringSubmatch(s)
		if m[1] == "-" {
			return "-(" + m[2] + ")"
		}
		return "d(" + m[2] + ")"
	})
	operands = immediateMatch.ReplaceAllString(operands, "#xxx")
	operands = dataRegMatch.ReplaceAllString(operands, "dn")
	operands = addrRegMatch.ReplaceAllString(operands, "an")
	operands = absAddrMatch.ReplaceAllStringFunc(operands, func(s string) string {
		m := absAddrMatch.FindStringSubmatch(s)
		before := m[1]
		token := m[2]
		suffix := m[3]

		// placeholders from the earlier rewrites pass through untouched
		switch token {
		case "an", "dn", "d", "xxx", "reglist":
			return s
		}

		if suffix == ".w" {
			return before + "xxx.w"
		}
		return before + "xxx.l"
	})
	operands = hexAddrMatch.ReplaceAllStringFunc(operands, func(s string) string {
		m := hexAddrMatch.FindStringSubmatch(s)
		if m[1] == ".w" {
			return "xxx.w"
		}
		return "xxx.l"
	})
	operands = strings.TrimSpace(spacesMatch.ReplaceAllString(operands, " "))

	if operands == "" {
		return mnemonic, regCount
	}
	return mnemonic + " " + operands, regCount
}

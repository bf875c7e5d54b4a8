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

// definition is one entry of the cost table.
//
// For most shapes cycles holds a single fixed cost. Branch shapes hold two
// values, not-taken then taken; the not-taken value is the one counted
// toward the scanline budget. Register-list shapes hold the base cost and
// the per-register cost.
type definition struct {
	cycles  []int
	regList bool
}

// the cost table, keyed by normalized instruction shape. the bulk of the
// move/arithmetic entries are derived in init() from the 68000 effective
// address timing; the irregular instructions are listed here directly.
var table = map[string]definition{
	"nop.w": {cycles: []int{4}},
	"rts.w": {cycles: []int{16}},
	"rte.w": {cycles: []int{20}},

	"moveq.l #xxx,dn": {cycles: []int{4}},
	"swap.w dn":       {cycles: []int{4}},
	"ext.w dn":        {cycles: []int{4}},
	"ext.l dn":        {cycles: []int{4}},
	"exg.w dn,dn":     {cycles: []int{6}},
	"exg.w dn,an":     {cycles: []int{6}},
	"exg.w an,an":     {cycles: []int{6}},

	"lea.l (an),an":   {cycles: []int{4}},
	"lea.l d(an),an":  {cycles: []int{8}},
	"lea.l xxx.w,an":  {cycles: []int{8}},
	"lea.l xxx.l,an":  {cycles: []int{12}},
	"pea.w (an)":      {cycles: []int{12}},
	"pea.w d(an)":     {cycles: []int{16}},
	"pea.w xxx.w":     {cycles: []int{16}},
	"pea.w xxx.l":     {cycles: []int{20}},

	"jmp.w (an)":  {cycles: []int{8}},
	"jmp.w d(an)": {cycles: []int{10}},
	"jmp.w xxx.w": {cycles: []int{10}},
	"jmp.w xxx.l": {cycles: []int{12}},
	"jsr.w (an)":  {cycles: []int{16}},
	"jsr.w d(an)": {cycles: []int{18}},
	"jsr.w xxx.w": {cycles: []int{18}},
	"jsr.w xxx.l": {cycles: []int{20}},
}

// effective address classes and their access times. values are for word
// accesses and long accesses respectively. byte accesses time like words.
var eaFetch = map[string][2]int{
	"dn": {0, 0}, "an": {0, 0},
	"(an)": {4, 8}, "(an)+": {4, 8}, "-(an)": {6, 10},
	"d(an)": {8, 12},
	"xxx.w": {8, 12}, "xxx.l": {12, 16},
	"#xxx": {4, 8},
}

var eaStore = map[string][2]int{
	"dn": {0, 0}, "an": {0, 0},
	"(an)": {4, 8}, "(an)+": {4, 8}, "-(an)": {4, 8},
	"d(an)": {8, 12},
	"xxx.w": {8, 12}, "xxx.l": {12, 16},
}

// branch condition codes, excluding bra/bsr which have their own timing.
var conditions = []string{
	"cc", "cs", "eq", "ne", "ge", "gt", "hi", "le", "ls", "lt", "mi", "pl", "vc", "vs",
}

func fixed(n int) definition {
	return definition{cycles: []int{n}}
}

func init() {
	// move/movea across every source/destination pairing
	for src, f := range eaFetch {
		for dst, s := range eaStore {
			table["move.b "+src+","+dst] = fixed(4 + f[0] + s[0])
			table["move.w "+src+","+dst] = fixed(4 + f[0] + s[0])
			table["move.l "+src+","+dst] = fixed(4 + f[1] + s[1])
		}
		table["movea.w "+src+",an"] = fixed(4 + f[0])
		table["movea.l "+src+",an"] = fixed(4 + f[1])
	}

	// alu ops with a data register destination, and the memory-destination
	// forms with a data register source
	for src, f := range eaFetch {
		for _, op := range []string{"add", "sub", "and", "or", "cmp"} {
			table[op+".w "+src+",dn"] = fixed(4 + f[0])
			if src == "dn" || src == "an" || src == "#xxx" {
				table[op+".l "+src+",dn"] = fixed(6 + f[1] + 2)
			} else {
				table[op+".l "+src+",dn"] = fixed(6 + f[1])
			}
		}

		// address register destinations
		table["adda.w "+src+",an"] = fixed(8 + f[0])
		table["suba.w "+src+",an"] = fixed(8 + f[0])
		table["cmpa.w "+src+",an"] = fixed(6 + f[0])
		table["cmpa.l "+src+",an"] = fixed(6 + f[1])
		if src == "dn" || src == "an" || src == "#xxx" {
			table["adda.l "+src+",an"] = fixed(6 + f[1] + 2)
			table["suba.l "+src+",an"] = fixed(6 + f[1] + 2)
		} else {
			table["adda.l "+src+",an"] = fixed(6 + f[1])
			table["suba.l "+src+",an"] = fixed(6 + f[1])
		}
	}

	for dst, s := range eaStore {
		if dst == "dn" || dst == "an" {
			continue
		}
		for _, op := range []string{"add", "sub", "and", "or", "eor"} {
			table[op+".w dn,"+dst] = fixed(8 + s[0])
			table[op+".l dn,"+dst] = fixed(12 + s[1])
		}
		for _, op := range []string{"addq", "subq"} {
			table[op+".w #xxx,"+dst] = fixed(8 + s[0])
			table[op+".l #xxx,"+dst] = fixed(12 + s[1])
		}
		for _, op := range []string{"addi", "subi", "andi", "ori", "eori"} {
			table[op+".w #xxx,"+dst] = fixed(12 + s[0])
			table[op+".l #xxx,"+dst] = fixed(20 + s[1])
		}
		for _, op := range []string{"clr", "neg", "not"} {
			table[op+".b "+dst] = fixed(8 + s[0])
			table[op+".w "+dst] = fixed(8 + s[0])
			table[op+".l "+dst] = fixed(12 + s[1])
		}
	}

	// tst only reads its operand
	for src, f := range eaFetch {
		if src == "#xxx" {
			continue
		}
		table["tst.b "+src] = fixed(4 + f[0])
		table["tst.w "+src] = fixed(4 + f[0])
		table["tst.l "+src] = fixed(4 + f[1])
	}

	// quick/immediate forms with register destinations
	for _, dst := range []string{"dn", "an"} {
		table["addq.w #xxx,"+dst] = fixed(4)
		table["addq.l #xxx,"+dst] = fixed(8)
		table["subq.w #xxx,"+dst] = fixed(4)
		table["subq.l #xxx,"+dst] = fixed(8)
	}
	table["addq.w #xxx,an"] = fixed(8) // adda timing applies whatever the size
	table["subq.w #xxx,an"] = fixed(8)
	for _, op := range []string{"addi", "subi", "andi", "ori", "eori"} {
		table[op+".w #xxx,dn"] = fixed(8)
		table[op+".l #xxx,dn"] = fixed(16)
	}
	table["cmpi.w #xxx,dn"] = fixed(8)
	table["cmpi.l #xxx,dn"] = fixed(14)

	for _, op := range []string{"clr", "neg", "not"} {
		table[op+".b dn"] = fixed(4)
		table[op+".w dn"] = fixed(4)
		table[op+".l dn"] = fixed(6)
	}

	// branches. two values: not-taken then taken. targets normalise to
	// xxx.l (no suffix) or xxx.w
	for _, target := range []string{"xxx.w", "xxx.l"} {
		table["bra.b "+target] = fixed(10)
		table["bra.w "+target] = fixed(10)
		table["bsr.b "+target] = fixed(18)
		table["bsr.w "+target] = fixed(18)
		for _, cc := range conditions {
			table["b"+cc+".b "+target] = definition{cycles: []int{8, 10}}
			table["b"+cc+".w "+target] = definition{cycles: []int{12, 10}}
		}
		for _, cc := range append([]string{"ra", "f", "t"}, conditions...) {
			table["db"+cc+".w dn,"+target] = definition{cycles: []int{10, 14}}
		}
	}

	// register-list moves. base cost plus a per-register cost resolved
	// against the operand content at lookup time
	regList := func(base, per int) definition {
		return definition{cycles: []int{base, per}, regList: true}
	}
	for _, dst := range []string{"(an)", "-(an)"} {
		table["movem.w reglist,"+dst] = regList(8, 4)
		table["movem.l reglist,"+dst] = regList(8, 8)
	}
	table["movem.w reglist,xxx.w"] = regList(12, 4)
	table["movem.l reglist,xxx.w"] = regList(12, 8)
	table["movem.w reglist,xxx.l"] = regList(16, 4)
	table["movem.l reglist,xxx.l"] = regList(16, 8)
	for _, src := range []string{"(an)", "(an)+"} {
		table["movem.w "+src+",reglist"] = regList(12, 4)
		table["movem.l "+src+",reglist"] = regList(12, 8)
	}
	table["movem.w d(an),reglist"] = regList(16, 4)
	table["movem.l d(an),reglist"] = regList(16, 8)
	table["movem.w xxx.w,reglist"] = regList(16, 4)
	table["movem.l xxx.w,reglist"] = regList(16, 8)
	table["movem.w xxx.l,reglist"] = regList(20, 4)
	table["movem.l xxx.l,reglist"] = regList(20, 8)
}

// NOPCycles is the cost of the no-operation filler used for scanline
// padding.
func NOPCycles() int {
	return table["nop.w"].cycles[0]
}

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
	"fmt"
	"strings"
)

// regIndex maps a register token to its class ('d' or 'a') and index. sp is
// an alias for a7.
func regIndex(tok string) (byte, int, error) {
	if tok == "sp" {
		return 'a', 7, nil
	}
	if len(tok) == 2 && (tok[0] == 'd' || tok[0] == 'a') && tok[1] >= '0' && tok[1] <= '7' {
		return tok[0], int(tok[1] - '0'), nil
	}
	return 0, 0, fmt.Errorf("bad register %q in register list", tok)
}

// CountRegisters returns the number of registers named by a register-list
// operand. The list is a union of register tokens and inclusive ranges:
//
//	d0-d7/a1-a3  ->  11
//	a5           ->  1
//
// The count is computed from the ranges directly; the individual register
// names are never materialised.
func CountRegisters(list string) (int, error) {
	count := 0

	for _, part := range strings.Split(strings.ToLower(strings.TrimSpace(list)), "/") {
		lo, hi, ok := strings.Cut(part, "-")
		if !ok {
			if _, _, err := regIndex(part); err != nil {
				return 0, err
			}
			count++
			continue
		}

		loClass, loIdx, err := regIndex(lo)
		if err != nil {
			return 0, err
		}
		hiClass, hiIdx, err := regIndex(hi)
		if err != nil {
			return 0, err
		}
		if loClass != hiClass {
			return 0, fmt.Errorf("register range %q crosses register classes", part)
		}
		if hiIdx < loIdx {
			return 0, fmt.Errorf("register range %q is reversed", part)
		}

		count += hiIdx - loIdx + 1
	}

	return count, nil
}

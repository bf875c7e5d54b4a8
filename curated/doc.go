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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. This is similar to
// the Errorf() function in the fmt package. It takes a formatting pattern,
// placeholder values and returns an error.
//
// Every fatal condition in the cycle splitter is a curated error built from
// an exported pattern constant of the package that detects it. For example,
// the expander package defines the UnbalancedRept pattern and a test (or the
// main program) can check for it specifically:
//
//	_, err := expander.Expand(lines)
//	if curated.Is(err, expander.UnbalancedRept) {
//		...
//	}
//
// The Has() function is similar to Is() but checks if a pattern occurs
// somewhere in the error chain rather than only at the outermost level. This
// is useful when an error has been wrapped by a later pipeline stage.
package curated

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

// Package statsview provides a local HTTP server offering runtime
// statistics. The underlying functionality comes from
// "github.com/go-echarts/statsview" and is built only when the statsview
// build constraint is present. Without the constraint Launch() does
// nothing and Available() returns false.
//
// After launch, graphical statistics are viewable at:
//
//	localhost:12680/debug/statsview
//
// and standard Go pprof statistics at:
//
//	localhost:12680/debug/pprof/
package statsview

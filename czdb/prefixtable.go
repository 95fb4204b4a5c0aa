/*
 * Copyright (c) 2025 shenjunzheng@gmail.com
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package czdb

import "github.com/sjzar/czsearch/internal/addr"

// prefixWindow is the inclusive row-index range a prefix bucket maps to.
// valid is false for a prefix no row's span intersects.
type prefixWindow struct {
	lo, hi int
	valid  bool
}

// prefixTable implements component E: a dense array from the first k
// bytes of an address (k=1 for v4, k=2 for v6) to the inclusive row-index
// window within the column-index region that could possibly match.
type prefixTable struct {
	family  addr.Family
	windows []prefixWindow
}

// buildPrefixTable walks rows once (they must already be sorted by start
// address) and computes, for every possible prefix value, the range of
// rows whose span intersects that prefix's address block. It is built
// once at bootstrap; there is no lazy path.
func buildPrefixTable(family addr.Family, rows RowTable) *prefixTable {
	size := 256
	if family == addr.V6 {
		size = 65536
	}

	t := &prefixTable{
		family:  family,
		windows: make([]prefixWindow, size),
	}

	for i := 0; i < rows.RowCount(); i++ {
		start := rows.Start(i)
		end := rows.End(i)

		spLo := t.prefixOf(start)
		spHi := t.prefixOf(end)

		for p := spLo; p <= spHi; p++ {
			w := &t.windows[p]
			if !w.valid {
				w.lo = i
				w.valid = true
			}
			w.hi = i
		}
	}

	return t
}

// prefixOf extracts the leading-byte prefix used to index the table.
func (t *prefixTable) prefixOf(a []byte) int {
	if t.family == addr.V4 {
		return int(a[0])
	}
	return int(a[0])<<8 | int(a[1])
}

// lookup returns the [lo,hi] row window for addr's prefix, or ok=false if
// no row's span ever intersected that prefix.
func (t *prefixTable) lookup(a []byte) (lo, hi int, ok bool) {
	p := t.prefixOf(a)
	if p < 0 || p >= len(t.windows) {
		return 0, 0, false
	}
	w := t.windows[p]
	return w.lo, w.hi, w.valid
}

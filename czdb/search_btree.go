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

import (
	"github.com/sjzar/czsearch/internal/addr"
	"github.com/sjzar/czsearch/internal/bytesio"
)

// btreeRowTable is the BTree-mode RowTable: a windowed, random-access view
// into the original buffer. Row reads go through the shared byte reader
// rather than an owned copy. It keeps a small mutable last-hit cursor to
// accelerate spatially clustered queries (consecutive lookups in the same
// subnet tend to land on the same or an adjacent row). Pointer records
// every row it is asked for in that cursor, so both the shared binary
// search and cachedHit write to it; that cache is why this strategy is
// documented as single-owner.
type btreeRowTable struct {
	r              *bytesio.Reader
	base           int // colIndexStart
	addrWidth      int
	recordLenWidth int
	rowWidth       int
	rowCount       int

	lastRow int
	hasLast bool
}

func newBTreeRowTable(r *bytesio.Reader, colIndexStart, colIndexLen, addrWidth, recordLenWidth, rowWidth int) *btreeRowTable {
	return &btreeRowTable{
		r:              r,
		base:           colIndexStart,
		addrWidth:      addrWidth,
		recordLenWidth: recordLenWidth,
		rowWidth:       rowWidth,
		rowCount:       colIndexLen / rowWidth,
	}
}

func (t *btreeRowTable) RowCount() int { return t.rowCount }

func (t *btreeRowTable) Start(i int) []byte {
	off := t.base + i*t.rowWidth
	b, err := t.r.Slice(off, t.addrWidth)
	if err != nil {
		return make([]byte, t.addrWidth)
	}
	return b
}

func (t *btreeRowTable) End(i int) []byte {
	off := t.base + i*t.rowWidth + t.addrWidth
	b, err := t.r.Slice(off, t.addrWidth)
	if err != nil {
		return make([]byte, t.addrWidth)
	}
	return b
}

func (t *btreeRowTable) Pointer(i int) (ptr, length int) {
	off := t.base + i*t.rowWidth + 2*t.addrWidth
	p, err := t.r.Uint32(off)
	if err != nil {
		return 0, 0
	}
	lenBytes, err := t.r.Slice(off+recordPtrWidth, t.recordLenWidth)
	if err != nil {
		return 0, 0
	}
	t.lastRow = i
	t.hasLast = true
	return int(p), int(readRecordLen(lenBytes, t.recordLenWidth))
}

// cachedHit checks whether the last row returned by Pointer still covers
// a, letting spatially clustered lookups skip the binary search entirely.
// This is the mutable state that makes btreeRowTable single-owner: two
// goroutines racing here could interleave a stale read with a write to
// lastRow/hasLast.
func (t *btreeRowTable) cachedHit(a []byte) (ptr, length int, ok bool) {
	if !t.hasLast {
		return 0, 0, false
	}
	if addr.Compare(a, t.Start(t.lastRow)) < 0 || addr.Compare(a, t.End(t.lastRow)) > 0 {
		return 0, 0, false
	}
	ptr, length = t.Pointer(t.lastRow)
	return ptr, length, true
}

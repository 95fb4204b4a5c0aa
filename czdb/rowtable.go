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
	"encoding/binary"

	"github.com/sjzar/czsearch/internal/addr"
)

// readRecordLen decodes a row's record-length field, which is 1 byte for
// an IPv4 database and 2 bytes (little-endian) for an IPv6 database.
func readRecordLen(b []byte, width int) uint16 {
	if width == 1 {
		return uint16(b[0])
	}
	return binary.LittleEndian.Uint16(b)
}

// Mode selects which RowTable binding a Searcher uses over the
// column-index region. Both produce identical search results; they differ
// only in where the rows live and what that implies for concurrent use.
type Mode int

const (
	// MemoryMode copies the column-index region into an owned dense
	// array. Safe for concurrent readers.
	MemoryMode Mode = 0

	// BTreeMode keeps the column-index region as a window into the
	// original buffer and maintains a small mutable cursor cache.
	// Single-owner use only.
	BTreeMode Mode = 1
)

// RowTable is the capability both search strategies bind: random access
// to the sorted, disjoint rows of the column-index region. It does not
// itself know how to binary-search; that logic is shared code in
// search.go so both strategies are provably equivalent.
type RowTable interface {
	// RowCount returns the number of rows in the column-index region.
	RowCount() int

	// Start returns row i's start address, addrWidth bytes, big-endian.
	Start(i int) []byte

	// End returns row i's end address, addrWidth bytes, big-endian.
	End(i int) []byte

	// Pointer returns row i's record pointer and record length.
	Pointer(i int) (ptr, length int)
}

// validateRowOrder asserts that every row is internally ordered
// (start(r) <= end(r)) and that consecutive rows are disjoint and sorted
// (end(r) < start(r+1)). buildPrefixTable and searchRows both assume this
// shape; a file that violates it must fail bootstrap with ErrCorrupt
// rather than silently binary-search garbage and return a wrong record.
func validateRowOrder(rt RowTable) error {
	n := rt.RowCount()
	for i := 0; i < n; i++ {
		if addr.Compare(rt.Start(i), rt.End(i)) > 0 {
			return ErrCorrupt
		}
		if i+1 < n && addr.Compare(rt.End(i), rt.Start(i+1)) >= 0 {
			return ErrCorrupt
		}
	}
	return nil
}

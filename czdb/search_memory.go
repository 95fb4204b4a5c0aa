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

import "encoding/binary"

// memoryRowTable is the Memory-mode RowTable: the column-index region
// copied into an owned dense byte array. Row reads are pointer arithmetic
// into this array; there is no locking, and none is needed, because the
// array never changes after construction. Safe for concurrent readers.
type memoryRowTable struct {
	rows           []byte // owned copy of the column-index region
	addrWidth      int
	recordLenWidth int
	rowWidth       int
	rowCount       int
}

func newMemoryRowTable(buf []byte, colIndexStart, colIndexLen, addrWidth, recordLenWidth, rowWidth int) *memoryRowTable {
	rows := make([]byte, colIndexLen)
	copy(rows, buf[colIndexStart:colIndexStart+colIndexLen])

	return &memoryRowTable{
		rows:           rows,
		addrWidth:      addrWidth,
		recordLenWidth: recordLenWidth,
		rowWidth:       rowWidth,
		rowCount:       colIndexLen / rowWidth,
	}
}

func (t *memoryRowTable) RowCount() int { return t.rowCount }

func (t *memoryRowTable) Start(i int) []byte {
	off := i * t.rowWidth
	return t.rows[off : off+t.addrWidth]
}

func (t *memoryRowTable) End(i int) []byte {
	off := i*t.rowWidth + t.addrWidth
	return t.rows[off : off+t.addrWidth]
}

func (t *memoryRowTable) Pointer(i int) (ptr, length int) {
	off := i*t.rowWidth + 2*t.addrWidth
	ptr = int(binary.LittleEndian.Uint32(t.rows[off : off+recordPtrWidth]))
	length = int(readRecordLen(t.rows[off+recordPtrWidth:], t.recordLenWidth))
	return ptr, length
}

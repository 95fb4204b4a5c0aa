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

// searchRows implements component F's binary search: given the window
// [lo,hi] from the prefix-bound table, find the unique row r such that
// start(r) <= a <= end(r). Comparison is bytewise unsigned; ties are
// impossible because rows are disjoint, but the loop never reads outside
// [lo,hi] regardless.
//
// Both the Memory and BTree strategies call this exact function, which is
// what makes their results provably identical: there is exactly one
// comparator implementation in the whole package.
func searchRows(rt RowTable, lo, hi int, a []byte) (ptr, length int, ok bool) {
	if lo > hi || lo < 0 || hi >= rt.RowCount() {
		return 0, 0, false
	}

	for lo <= hi {
		mid := lo + (hi-lo)>>1

		startCmp := addr.Compare(a, rt.Start(mid))
		if startCmp < 0 {
			hi = mid - 1
			continue
		}

		endCmp := addr.Compare(a, rt.End(mid))
		if endCmp > 0 {
			lo = mid + 1
			continue
		}

		ptr, length = rt.Pointer(mid)
		return ptr, length, true
	}

	return 0, 0, false
}

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

// Package czdb implements the CZDB geolocation database bootstrap,
// search and region-materialization pipeline: bytes in, a region string
// out, for a queried IPv4 or IPv6 address.
package czdb

import (
	"github.com/sjzar/czsearch/internal/addr"
	"github.com/sjzar/czsearch/internal/bytesio"
)

type state int32

const (
	stateUninit state = iota
	stateReady
	stateClosed
)

// Searcher is an immutable, bootstrapped view over a CZDB database
// buffer. It is created by Open, used via Search, and released via
// Close. There is no reload: a Searcher that fails to bootstrap is never
// returned to the caller, and a closed Searcher accepts no further
// operations.
//
// Memory-mode Searchers are safe for concurrent use by multiple
// goroutines performing Search. BTree-mode Searchers are not: they
// maintain a small mutable cursor cache and must be single-owner.
type Searcher struct {
	st state

	family addr.Family
	mode   Mode

	h  *header
	pt *prefixTable
	rt RowTable

	// btree is non-nil only in BTree mode; it is the same value as rt,
	// kept with its concrete type so Search can consult its cursor cache.
	btree *btreeRowTable

	records *bytesio.Reader // view over the record region's backing bytes
	buf     []byte          // owned copy (Memory) or borrowed (BTree)
}

// Open bootstraps a Searcher over buffer using key, in the given mode.
// Bootstrap is atomic: on any error no Searcher is returned.
func Open(buffer []byte, key string, mode Mode) (*Searcher, error) {
	h, err := parseHeader(buffer, key)
	if err != nil {
		return nil, err
	}

	s := &Searcher{
		st:     stateReady,
		family: h.family,
		mode:   mode,
		h:      h,
	}

	switch mode {
	case MemoryMode:
		owned := make([]byte, len(buffer))
		copy(owned, buffer)
		s.buf = owned
		s.rt = newMemoryRowTable(owned, h.colIndexStart, h.colIndexLen, h.addrWidth, h.recordLenWidth, h.rowWidth)
		s.records = bytesio.New(owned)
	case BTreeMode:
		s.buf = buffer
		r := bytesio.New(buffer)
		bt := newBTreeRowTable(r, h.colIndexStart, h.colIndexLen, h.addrWidth, h.recordLenWidth, h.rowWidth)
		s.rt = bt
		s.btree = bt
		s.records = r
	default:
		return nil, ErrCorrupt
	}

	if err := validateRowOrder(s.rt); err != nil {
		return nil, err
	}

	s.pt = buildPrefixTable(h.family, s.rt)

	return s, nil
}

// Search resolves addrText to a region string.
func (s *Searcher) Search(addrText string) (string, error) {
	if s.st == stateClosed {
		return "", ErrClosed
	}

	a, err := addr.Parse(addrText, s.family)
	if err != nil {
		return "", ErrInvalidAddress
	}

	ptr, length, ok := s.find(a)
	if !ok {
		return "", ErrNotFound
	}

	if ptr < s.h.recordRegionStart {
		return "", ErrCorrupt
	}

	return materializeRegion(s.records, s.h.keyMaterial, ptr, length)
}

// find runs component F: prefix-bound lookup, then binary search within
// the window, trying the BTree cursor cache first when available.
func (s *Searcher) find(a []byte) (ptr, length int, ok bool) {
	if s.btree != nil {
		if ptr, length, ok = s.btree.cachedHit(a); ok {
			return ptr, length, true
		}
	}

	lo, hi, ok := s.pt.lookup(a)
	if !ok {
		return 0, 0, false
	}

	return searchRows(s.rt, lo, hi, a)
}

// IsIPv4 reports whether this Searcher was bootstrapped from an IPv4
// database.
func (s *Searcher) IsIPv4() bool { return s.family == addr.V4 }

// IsIPv6 reports whether this Searcher was bootstrapped from an IPv6
// database.
func (s *Searcher) IsIPv6() bool { return s.family == addr.V6 }

// Stats summarizes a Searcher's bootstrapped shape, for diagnostics.
type Stats struct {
	Family   addr.Family
	Mode     Mode
	RowCount int
	ClientID uint32
}

// Stats returns a snapshot of this Searcher's bootstrapped parameters.
func (s *Searcher) Stats() (Stats, error) {
	if s.st == stateClosed {
		return Stats{}, ErrClosed
	}
	return Stats{
		Family:   s.family,
		Mode:     s.mode,
		RowCount: s.rt.RowCount(),
		ClientID: s.h.clientID,
	}, nil
}

// Close releases any buffer owned by the Searcher. After Close, Search
// and Stats return ErrClosed.
func (s *Searcher) Close() error {
	s.st = stateClosed
	s.buf = nil
	s.rt = nil
	s.btree = nil
	s.records = nil
	return nil
}

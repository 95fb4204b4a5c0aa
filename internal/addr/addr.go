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

// Package addr normalizes textual IPv4/IPv6 addresses into fixed-width
// big-endian byte vectors for comparison against a CZDB column-index region.
package addr

import (
	"errors"
	"net/netip"
)

// ErrInvalidAddress is returned when the input does not parse as an IP
// address, or parses to a family the caller did not ask for.
var ErrInvalidAddress = errors.New("invalid address")

// Family identifies the address width a Searcher was built for.
type Family uint8

const (
	// V4 is the 4-byte IPv4 family.
	V4 Family = 4
	// V6 is the 16-byte IPv6 family.
	V6 Family = 16
)

// Width returns the byte width of the family (4 or 16).
func (f Family) Width() int {
	return int(f)
}

// Parse parses s and returns its big-endian byte representation, strictly
// matching the requested family. IPv4-mapped IPv6 literals (e.g.
// "::ffff:1.2.3.4") are rejected rather than silently folded into either
// family, since a database's address family should not be guessable from
// the shape of an ambiguous client literal.
func Parse(s string, want Family) ([]byte, error) {
	a, err := netip.ParseAddr(s)
	if err != nil {
		return nil, ErrInvalidAddress
	}

	if a.Is4In6() {
		return nil, ErrInvalidAddress
	}

	switch want {
	case V4:
		if !a.Is4() {
			return nil, ErrInvalidAddress
		}
		b := a.As4()
		return b[:], nil
	case V6:
		if !a.Is6() {
			return nil, ErrInvalidAddress
		}
		b := a.As16()
		return b[:], nil
	default:
		return nil, ErrInvalidAddress
	}
}

// Compare returns -1, 0 or 1 comparing two equal-width addresses as
// unsigned big-endian integers (plain lexicographic byte comparison).
func Compare(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

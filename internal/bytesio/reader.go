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

// Package bytesio provides bounded, offset-addressed little-endian reads
// over an in-memory database buffer.
package bytesio

import (
	"encoding/binary"
	"errors"
)

// ErrInvalidOffset is returned when a requested read falls outside the
// backing buffer.
var ErrInvalidOffset = errors.New("invalid offset")

// Reader is a thin, non-caching view over a byte buffer. It never copies
// unless asked to (Slice returns a sub-slice of the original buffer, not a
// copy); callers that need an owned copy take it themselves.
type Reader struct {
	buf []byte
}

// New wraps buf. It does not copy buf.
func New(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Len returns the length of the backing buffer.
func (r *Reader) Len() int {
	return len(r.buf)
}

// bounded reports whether [off, off+n) lies entirely within the buffer.
func (r *Reader) bounded(off, n int) bool {
	if off < 0 || n < 0 {
		return false
	}
	end := off + n
	return end >= off && end <= len(r.buf)
}

// Slice returns the n bytes starting at off, without copying.
func (r *Reader) Slice(off, n int) ([]byte, error) {
	if !r.bounded(off, n) {
		return nil, ErrInvalidOffset
	}
	return r.buf[off : off+n], nil
}

// Uint8 reads an unsigned byte at off.
func (r *Reader) Uint8(off int) (uint8, error) {
	b, err := r.Slice(off, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// Int8 reads a signed byte at off.
func (r *Reader) Int8(off int) (int8, error) {
	v, err := r.Uint8(off)
	return int8(v), err
}

// Uint16 reads a little-endian uint16 at off.
func (r *Reader) Uint16(off int) (uint16, error) {
	b, err := r.Slice(off, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// Int16 reads a little-endian int16 at off.
func (r *Reader) Int16(off int) (int16, error) {
	v, err := r.Uint16(off)
	return int16(v), err
}

// Uint32 reads a little-endian uint32 at off.
func (r *Reader) Uint32(off int) (uint32, error) {
	b, err := r.Slice(off, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// Int32 reads a little-endian int32 at off.
func (r *Reader) Int32(off int) (int32, error) {
	v, err := r.Uint32(off)
	return int32(v), err
}

// Uint64 reads a little-endian uint64 at off.
func (r *Reader) Uint64(off int) (uint64, error) {
	b, err := r.Slice(off, 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// Int64 reads a little-endian int64 at off.
func (r *Reader) Int64(off int) (int64, error) {
	v, err := r.Uint64(off)
	return int64(v), err
}

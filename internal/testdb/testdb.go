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

// Package testdb builds minimal, valid CZDB-format database buffers in
// memory, for tests that need a real Searcher without a licensed .czdb
// file on disk. The wire-format constants here mirror czdb/const.go; they
// are duplicated rather than imported because they describe the wire
// format itself, not czdb's internal implementation.
package testdb

import (
	"crypto/aes"
	"encoding/base64"
	"encoding/binary"
	"net/netip"
	"testing"
	"time"
)

// Family mirrors czdb's address family.
type Family int

const (
	V4 Family = 4
	V6 Family = 16
)

const (
	familyV4 = 0x04
	familyV6 = 0x06

	preambleLen         = 13
	preambleSuperOff    = 5
	preambleSuperLenOff = 9

	superBlockPlainLen = 32
	sbMagicOff         = 0
	sbClientIDOff      = 4
	sbExpiryOff        = 8
	sbColIdxStartOff   = 12
	sbColIdxLenOff     = 16
	sbRecordBaseOff    = 20
	superBlockMagic    = uint32(0x435A4442)

	recordPtrWidth     = 4
	geoDescriptorWidth = 5
)

// Row is one column-index row plus the record content it points to.
type Row struct {
	Start, End string
	Prefix     string
	GeoFields  []string
}

func recordLenWidth(f Family) int {
	if f == V6 {
		return 2
	}
	return 1
}

func encryptECB(t *testing.T, key, plaintext []byte) []byte {
	t.Helper()
	block, err := aes.NewCipher(key)
	if err != nil {
		t.Fatal(err)
	}
	ciphertext := make([]byte, len(plaintext))
	for off := 0; off < len(plaintext); off += aes.BlockSize {
		block.Encrypt(ciphertext[off:off+aes.BlockSize], plaintext[off:off+aes.BlockSize])
	}
	return ciphertext
}

func padTo16(b []byte) []byte {
	if rem := len(b) % 16; rem != 0 {
		b = append(b, make([]byte, 16-rem)...)
	}
	return b
}

func parseAddr(t *testing.T, s string, f Family) []byte {
	t.Helper()
	a, err := netip.ParseAddr(s)
	if err != nil {
		t.Fatalf("bad fixture address %q: %v", s, err)
	}
	if f == V4 {
		b := a.As4()
		return b[:]
	}
	b := a.As16()
	return b[:]
}

func joinTab(fields []string) string {
	out := ""
	for i, f := range fields {
		if i > 0 {
			out += "\t"
		}
		out += f
	}
	return out
}

// Build constructs a CZDB buffer for rows (which must be pre-sorted by
// Start) and returns it along with the base64 user key that opens it.
func Build(t *testing.T, family Family, expiry time.Time, rows []Row) ([]byte, string) {
	t.Helper()

	keyBytes := make([]byte, 16)
	for i := range keyBytes {
		keyBytes[i] = byte(i*7 + 1)
	}
	userKey := base64.StdEncoding.EncodeToString(keyBytes)

	addrWidth := int(family)
	lenWidth := recordLenWidth(family)
	rowWidth := 2*addrWidth + recordPtrWidth + lenWidth

	familyByte := byte(familyV4)
	if family == V6 {
		familyByte = familyV6
	}

	colIndexStart := preambleLen + superBlockPlainLen
	colIndexLen := rowWidth * len(rows)
	recordRegionStart := colIndexStart + colIndexLen

	var recordBytes, geoBytes []byte
	ptrs := make([]int, len(rows))
	lens := make([]int, len(rows))

	for i, row := range rows {
		ptrs[i] = recordRegionStart + len(recordBytes)

		rec := make([]byte, geoDescriptorWidth)
		if len(row.GeoFields) > 0 {
			content := []byte(joinTab(row.GeoFields))
			plaintext := append([]byte{byte(len(content))}, content...)
			plaintext = padTo16(plaintext)
			ciphertext := encryptECB(t, keyBytes, plaintext)

			relOff := len(geoBytes)
			geoBytes = append(geoBytes, ciphertext...)
			binary.LittleEndian.PutUint32(rec[0:4], uint32(relOff)) // fixed up below
			rec[4] = byte(len(ciphertext))
		}
		rec = append(rec, []byte(row.Prefix)...)
		lens[i] = len(rec)
		recordBytes = append(recordBytes, rec...)
	}

	geoBase := recordRegionStart + len(recordBytes)
	for i, row := range rows {
		if len(row.GeoFields) == 0 {
			continue
		}
		off := ptrs[i] - recordRegionStart
		relOff := binary.LittleEndian.Uint32(recordBytes[off : off+4])
		binary.LittleEndian.PutUint32(recordBytes[off:off+4], uint32(geoBase)+relOff)
	}

	superPlain := make([]byte, superBlockPlainLen)
	binary.LittleEndian.PutUint32(superPlain[sbMagicOff:], superBlockMagic)
	binary.LittleEndian.PutUint32(superPlain[sbClientIDOff:], 42)
	binary.LittleEndian.PutUint32(superPlain[sbExpiryOff:], ymd(expiry))
	binary.LittleEndian.PutUint32(superPlain[sbColIdxStartOff:], uint32(colIndexStart))
	binary.LittleEndian.PutUint32(superPlain[sbColIdxLenOff:], uint32(colIndexLen))
	binary.LittleEndian.PutUint32(superPlain[sbRecordBaseOff:], uint32(recordRegionStart))
	encSuper := encryptECB(t, keyBytes, superPlain)

	buf := make([]byte, 0, colIndexStart+colIndexLen+len(recordBytes)+len(geoBytes))

	preamble := make([]byte, preambleLen)
	preamble[0] = familyByte
	binary.LittleEndian.PutUint32(preamble[1:], 20250101)
	binary.LittleEndian.PutUint32(preamble[preambleSuperOff:], uint32(preambleLen))
	binary.LittleEndian.PutUint32(preamble[preambleSuperLenOff:], uint32(len(encSuper)))
	buf = append(buf, preamble...)
	buf = append(buf, encSuper...)

	for i, row := range rows {
		s := parseAddr(t, row.Start, family)
		e := parseAddr(t, row.End, family)
		buf = append(buf, s...)
		buf = append(buf, e...)

		ptrBytes := make([]byte, 4)
		binary.LittleEndian.PutUint32(ptrBytes, uint32(ptrs[i]))
		buf = append(buf, ptrBytes...)

		if lenWidth == 1 {
			buf = append(buf, byte(lens[i]))
		} else {
			lb := make([]byte, 2)
			binary.LittleEndian.PutUint16(lb, uint16(lens[i]))
			buf = append(buf, lb...)
		}
	}

	buf = append(buf, recordBytes...)
	buf = append(buf, geoBytes...)

	return buf, userKey
}

func ymd(t time.Time) uint32 {
	t = t.UTC()
	y, m, d := t.Date()
	return uint32(y)*10000 + uint32(m)*100 + uint32(d)
}

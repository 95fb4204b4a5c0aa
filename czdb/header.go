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
	"time"

	"github.com/sjzar/czsearch/internal/addr"
	"github.com/sjzar/czsearch/internal/blockcipher"
	"github.com/sjzar/czsearch/internal/bytesio"
)

// now is overridden in tests so expiry checks are deterministic.
var now = func() time.Time { return time.Now().UTC() }

// header is the decoded, validated shape of the preamble plus super-block:
// everything the bootstrap step publishes to the rest of the package.
type header struct {
	family   addr.Family
	addrWidth int

	recordLenWidth int
	rowWidth       int

	colIndexStart    int
	colIndexLen      int
	colIndexRowCount int

	recordRegionStart int

	clientID  uint32
	expiryYMD uint32

	// keyMaterial is the derived 16-byte AES key, cached for the region
	// materializer's geo-mapping decrypt so the key string
	// is decoded exactly once per searcher.
	keyMaterial []byte
}

// parseHeader implements component D: read the preamble, decrypt and
// validate the super-block, and publish the offsets the rest of the
// bootstrap pipeline needs.
func parseHeader(buf []byte, userKey string) (*header, error) {
	r := bytesio.New(buf)

	familyByte, err := r.Uint8(preambleFamilyOff)
	if err != nil {
		return nil, ErrCorrupt
	}

	var family addr.Family
	switch familyByte {
	case FamilyV4:
		family = addr.V4
	case FamilyV6:
		family = addr.V6
	default:
		return nil, ErrCorrupt
	}

	encSuperOff, err := r.Uint32(preambleSuperOff)
	if err != nil {
		return nil, ErrCorrupt
	}
	encSuperLen, err := r.Uint32(preambleSuperLenOff)
	if err != nil {
		return nil, ErrCorrupt
	}

	ciphertext, err := r.Slice(int(encSuperOff), int(encSuperLen))
	if err != nil {
		return nil, ErrCorrupt
	}

	key, err := blockcipher.DeriveKey(userKey)
	if err != nil {
		return nil, ErrInvalidKey
	}

	plaintext, err := blockcipher.Decrypt(key, ciphertext)
	if err != nil {
		return nil, ErrCorrupt
	}
	if len(plaintext) < superBlockPlainLen {
		return nil, ErrCorrupt
	}

	if binary.LittleEndian.Uint32(plaintext[sbMagicOff:]) != superBlockMagic {
		return nil, ErrInvalidKey
	}

	h := &header{
		family:      family,
		addrWidth:   family.Width(),
		clientID:    binary.LittleEndian.Uint32(plaintext[sbClientIDOff:]),
		expiryYMD:   binary.LittleEndian.Uint32(plaintext[sbExpiryOff:]),
		keyMaterial: key,
	}

	colIndexStart := binary.LittleEndian.Uint32(plaintext[sbColIdxStartOff:])
	colIndexLen := binary.LittleEndian.Uint32(plaintext[sbColIdxLenOff:])
	recordRegionStart := binary.LittleEndian.Uint32(plaintext[sbRecordBaseOff:])

	h.colIndexStart = int(colIndexStart)
	h.colIndexLen = int(colIndexLen)
	h.recordRegionStart = int(recordRegionStart)

	if h.family == addr.V4 {
		h.recordLenWidth = recordLenWidthV4
	} else {
		h.recordLenWidth = recordLenWidthV6
	}
	h.rowWidth = 2*h.addrWidth + recordPtrWidth + h.recordLenWidth

	if h.rowWidth <= 0 || h.colIndexLen%h.rowWidth != 0 {
		return nil, ErrCorrupt
	}
	h.colIndexRowCount = h.colIndexLen / h.rowWidth

	if h.colIndexStart < 0 || h.colIndexStart+h.colIndexLen > len(buf) {
		return nil, ErrCorrupt
	}
	if h.recordRegionStart < 0 || h.recordRegionStart > len(buf) {
		return nil, ErrCorrupt
	}

	todayYMD := ymd(now())
	if h.expiryYMD < todayYMD {
		return nil, ErrExpired
	}

	return h, nil
}

// ymd packs a time.Time's UTC calendar day as YYYYMMDD, matching the
// super-block's expiry encoding.
func ymd(t time.Time) uint32 {
	t = t.UTC()
	y, m, d := t.Date()
	return uint32(y)*10000 + uint32(m)*100 + uint32(d)
}

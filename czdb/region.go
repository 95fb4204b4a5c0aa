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
	"strings"
	"unicode/utf8"

	"github.com/sjzar/czsearch/internal/blockcipher"
	"github.com/sjzar/czsearch/internal/bytesio"
)

func isValidUTF8(b []byte) bool { return utf8.Valid(b) }

// materializeRegion implements component G: turn a located record pointer
// into the final UTF-8 region string.
//
// record_ptr/record_len are offsets relative to the start of the file
// buffer (already resolved from the row's little-endian record pointer).
func materializeRegion(r *bytesio.Reader, key []byte, recordPtr, recordLen int) (string, error) {
	if recordLen < geoDescriptorWidth {
		return "", ErrCorrupt
	}

	geoOff, err := r.Uint32(recordPtr)
	if err != nil {
		return "", ErrCorrupt
	}
	geoLen, err := r.Uint8(recordPtr + 4)
	if err != nil {
		return "", ErrCorrupt
	}

	prefixBytes, err := r.Slice(recordPtr+geoDescriptorWidth, recordLen-geoDescriptorWidth)
	if err != nil {
		return "", ErrCorrupt
	}
	prefix := string(prefixBytes)

	if geoLen == 0 {
		return prefix, nil
	}

	ciphertext, err := r.Slice(int(geoOff), int(geoLen))
	if err != nil {
		return "", ErrCorrupt
	}

	plaintext, err := blockcipher.Decrypt(key, ciphertext)
	if err != nil {
		return "", ErrCipherError
	}

	suffix, err := decodeGeoSuffix(plaintext)
	if err != nil {
		return "", err
	}

	return prefix + string(fieldDelimiter) + suffix, nil
}

// decodeGeoSuffix parses a decrypted geo-mapping blob: a 1-byte content
// length followed by that many bytes of tab-delimited UTF-8 fields. The
// length prefix is what lets the decoder ignore the zero-padding AES-ECB
// forces onto the ciphertext (geo_len is always a multiple of the block
// size, but the meaningful content rarely is).
func decodeGeoSuffix(plaintext []byte) (string, error) {
	if len(plaintext) < 1 {
		return "", ErrCipherError
	}

	contentLen := int(plaintext[0])
	if 1+contentLen > len(plaintext) {
		return "", ErrCipherError
	}
	content := plaintext[1 : 1+contentLen]

	if !isValidUTF8(content) {
		return "", ErrCipherError
	}

	// Reject a trailing or doubled delimiter: every field must be
	// non-empty, matching the prefix/suffix's own "tab-joined fields"
	// shape used by materializeRegion.
	fields := strings.Split(string(content), string(fieldDelimiter))
	for _, f := range fields {
		if f == "" {
			return "", ErrCipherError
		}
	}

	return string(content), nil
}

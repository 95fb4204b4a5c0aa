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

// Package blockcipher implements the one fixed-block symmetric primitive
// the CZDB format relies on: AES-128 in ECB mode, called on exact multiples
// of the block size, with no streaming API. It is used at exactly two call
// sites in the czdb package: decrypting the header super-block and
// decrypting a per-record geo-mapping suffix.
package blockcipher

import (
	"crypto/aes"
	"encoding/base64"
	"errors"
)

// KeyLen is the AES-128 key size this cipher always uses.
const KeyLen = 16

// ErrLengthMismatch is returned when ciphertext is not a non-zero multiple
// of the AES block size.
var ErrLengthMismatch = errors.New("ciphertext length is not a multiple of the block size")

// ErrShortKey is returned when the decoded key material is shorter than
// KeyLen bytes.
var ErrShortKey = errors.New("decoded key material shorter than 16 bytes")

// DeriveKey turns the user-supplied printable key into 16 raw AES-key
// bytes. The printable key is a standard-base64 encoding of a byte block;
// the first 16 bytes of the decoded block are the cipher key. A key that
// is not valid base64 or decodes to fewer than 16 bytes is rejected here
// with an error, before any decryption is attempted.
func DeriveKey(userKey string) ([]byte, error) {
	decoded, err := base64.StdEncoding.DecodeString(userKey)
	if err != nil {
		return nil, err
	}
	if len(decoded) < KeyLen {
		return nil, ErrShortKey
	}
	return decoded[:KeyLen], nil
}

// Decrypt decrypts ciphertext in ECB mode using key (which must be exactly
// KeyLen bytes) and returns plaintext of the same length as ciphertext.
func Decrypt(key, ciphertext []byte) ([]byte, error) {
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, ErrLengthMismatch
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	plaintext := make([]byte, len(ciphertext))
	for off := 0; off < len(ciphertext); off += aes.BlockSize {
		block.Decrypt(plaintext[off:off+aes.BlockSize], ciphertext[off:off+aes.BlockSize])
	}
	return plaintext, nil
}

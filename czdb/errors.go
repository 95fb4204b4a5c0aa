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

import "errors"

var (
	// ErrInvalidAddress is returned when the queried text does not parse
	// as an address of the searcher's family.
	ErrInvalidAddress = errors.New("czdb: invalid address")

	// ErrInvalidKey is returned at bootstrap when the user key fails the
	// post-decryption sanity check on the super-block.
	ErrInvalidKey = errors.New("czdb: invalid key")

	// ErrExpired is returned at bootstrap when the database's expiry date
	// has passed.
	ErrExpired = errors.New("czdb: database expired")

	// ErrCorrupt is returned when a length or offset named by the file
	// does not fit inside the buffer.
	ErrCorrupt = errors.New("czdb: corrupt database")

	// ErrNotFound is returned when no column-index row covers the queried
	// address. It is a normal result class, not a failure.
	ErrNotFound = errors.New("czdb: not found")

	// ErrCipherError is returned when a decryption fails, either because
	// of a length mismatch or a malformed plaintext.
	ErrCipherError = errors.New("czdb: cipher error")

	// ErrClosed is returned by Search and Stats on a Searcher after Close
	// has been called.
	ErrClosed = errors.New("czdb: searcher closed")
)

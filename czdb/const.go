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

const (
	// FamilyV4 is the family_tag value for an IPv4 database.
	FamilyV4 = 0x04
	// FamilyV6 is the family_tag value for an IPv6 database.
	FamilyV6 = 0x06

	// preambleLen is the size of the plaintext preamble:
	// 1 byte family_tag + 4 bytes version + 4 bytes enc_super_off + 4 bytes enc_super_len.
	preambleLen = 13

	preambleFamilyOff   = 0
	preambleVersionOff  = 1
	preambleSuperOff    = 5
	preambleSuperLenOff = 9

	// superBlockMagic identifies a correctly decrypted super-block. It is
	// the sanity check below: a wrong key almost never
	// produces these four bytes, so it cleanly separates InvalidKey from
	// Corrupt (out-of-bounds offsets with a structurally sane magic).
	superBlockMagic = uint32(0x435A4442) // "CZDB" in big-endian byte order; stored little-endian as "BDZC"

	// superBlockPlainLen is the decrypted super-block length: 2 AES blocks,
	// enough for the magic plus the five published fields with room to
	// spare for reserved/future fields.
	superBlockPlainLen = 32

	sbMagicOff       = 0
	sbClientIDOff    = 4
	sbExpiryOff      = 8
	sbColIdxStartOff = 12
	sbColIdxLenOff   = 16
	sbRecordBaseOff  = 20

	// recordLenWidthV4 / recordLenWidthV6 are the widths of the record-length
	// field in a column-index row for each family. IPv4 regions are short
	// enough for a single byte; IPv6 databases carry denser reverse-DNS/ASN
	// text and get a 2-byte length; see DESIGN.md for the tradeoff.
	recordLenWidthV4 = 1
	recordLenWidthV6 = 2

	// recordPtrWidth is the width of the record-pointer field in a row.
	recordPtrWidth = 4

	// geoDescriptorWidth is the width of the geo-mapping descriptor at the
	// head of every record: 4 bytes absolute offset + 1 byte length.
	geoDescriptorWidth = 5

	fieldDelimiter = '\t'
)

package czdb

import (
	"crypto/aes"
	"encoding/base64"
	"encoding/binary"
	"testing"

	"github.com/sjzar/czsearch/internal/addr"
)

// synthRow is one column-index row fed to buildSyntheticDB.
type synthRow struct {
	start, end string   // textual addresses, parsed per family
	prefix     string   // region prefix string for this row's record
	geoFields  []string // nil => no geo-mapping expansion for this row
}

// encryptECB is the test-only mirror of blockcipher.Decrypt's encryption
// direction: AES-ECB, used only to build synthetic fixtures.
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

func mustAddr(t *testing.T, s string, family addr.Family) []byte {
	t.Helper()
	b, err := addr.Parse(s, family)
	if err != nil {
		t.Fatalf("bad fixture address %q: %v", s, err)
	}
	return b
}

// buildSyntheticDB constructs a minimal, valid CZDB buffer in the wire
// format czdb/const.go describes, along with the base64 user key that
// opens it.
func buildSyntheticDB(t *testing.T, family addr.Family, expiryYMD uint32, rows []synthRow) ([]byte, string) {
	t.Helper()

	keyBytes := make([]byte, 16)
	for i := range keyBytes {
		keyBytes[i] = byte(i*7 + 1)
	}
	userKey := base64.StdEncoding.EncodeToString(keyBytes)

	addrWidth := family.Width()
	recordLenWidth := recordLenWidthV4
	if family == addr.V6 {
		recordLenWidth = recordLenWidthV6
	}
	rowWidth := 2*addrWidth + recordPtrWidth + recordLenWidth

	familyByte := byte(FamilyV4)
	if family == addr.V6 {
		familyByte = FamilyV6
	}

	colIndexStart := preambleLen + superBlockPlainLen // enc super block is exactly 2 blocks, no extra padding
	colIndexLen := rowWidth * len(rows)
	recordRegionStart := colIndexStart + colIndexLen

	// First pass: lay out records and geo blobs after the record region
	// start, tracking each row's absolute record pointer.
	var recordBytes []byte
	var geoBytes []byte
	ptrs := make([]int, len(rows))
	lens := make([]int, len(rows))
	geoOffs := make([]int, len(rows))
	geoLens := make([]int, len(rows))

	geoBase := 0 // filled in once we know recordRegionStart + len(recordBytes)

	for i, row := range rows {
		ptrs[i] = recordRegionStart + len(recordBytes)

		rec := make([]byte, geoDescriptorWidth)
		if len(row.geoFields) == 0 {
			// geo_off=0, geo_len=0
		} else {
			content := []byte(joinTab(row.geoFields))
			plaintext := append([]byte{byte(len(content))}, content...)
			plaintext = padTo16(plaintext)
			ciphertext := encryptECB(t, keyBytes, plaintext)

			geoOffs[i] = len(geoBytes) // relative for now, fixed up below
			geoLens[i] = len(ciphertext)
			geoBytes = append(geoBytes, ciphertext...)

			binary.LittleEndian.PutUint32(rec[0:4], uint32(geoOffs[i])) // placeholder, fixed below
			rec[4] = byte(geoLens[i])
		}
		rec = append(rec, []byte(row.prefix)...)
		lens[i] = len(rec)
		recordBytes = append(recordBytes, rec...)
	}

	geoBase = recordRegionStart + len(recordBytes)
	// Fix up absolute geo offsets now that geoBase is known.
	for i, row := range rows {
		if len(row.geoFields) == 0 {
			continue
		}
		off := ptrs[i] - recordRegionStart
		absGeoOff := uint32(geoBase + geoOffs[i])
		binary.LittleEndian.PutUint32(recordBytes[off:off+4], absGeoOff)
	}

	superPlain := make([]byte, superBlockPlainLen)
	binary.LittleEndian.PutUint32(superPlain[sbMagicOff:], superBlockMagic)
	binary.LittleEndian.PutUint32(superPlain[sbClientIDOff:], 42)
	binary.LittleEndian.PutUint32(superPlain[sbExpiryOff:], expiryYMD)
	binary.LittleEndian.PutUint32(superPlain[sbColIdxStartOff:], uint32(colIndexStart))
	binary.LittleEndian.PutUint32(superPlain[sbColIdxLenOff:], uint32(colIndexLen))
	binary.LittleEndian.PutUint32(superPlain[sbRecordBaseOff:], uint32(recordRegionStart))
	encSuper := encryptECB(t, keyBytes, superPlain)

	buf := make([]byte, 0, colIndexStart+colIndexLen+len(recordBytes)+len(geoBytes))

	preamble := make([]byte, preambleLen)
	preamble[preambleFamilyOff] = familyByte
	binary.LittleEndian.PutUint32(preamble[preambleVersionOff:], 20250101)
	binary.LittleEndian.PutUint32(preamble[preambleSuperOff:], uint32(preambleLen))
	binary.LittleEndian.PutUint32(preamble[preambleSuperLenOff:], uint32(len(encSuper)))
	buf = append(buf, preamble...)
	buf = append(buf, encSuper...)

	for i, row := range rows {
		s := mustAddr(t, row.start, family)
		e := mustAddr(t, row.end, family)
		buf = append(buf, s...)
		buf = append(buf, e...)

		ptrBytes := make([]byte, 4)
		binary.LittleEndian.PutUint32(ptrBytes, uint32(ptrs[i]))
		buf = append(buf, ptrBytes...)

		if recordLenWidth == 1 {
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

// farFutureYMD is a fixed far-future expiry used by most fixtures so tests
// don't depend on wall-clock time drifting past it.
const farFutureYMD = 99991231

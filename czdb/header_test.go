package czdb

import (
	"testing"
	"time"

	"github.com/sjzar/czsearch/internal/addr"
	"github.com/stretchr/testify/require"
)

func withFixedNow(t *testing.T, ymd string) {
	t.Helper()
	ts, err := time.Parse("20060102", ymd)
	require.NoError(t, err)
	old := now
	now = func() time.Time { return ts }
	t.Cleanup(func() { now = old })
}

func TestParseHeaderValid(t *testing.T) {
	withFixedNow(t, "20260101")
	buf, key := buildSyntheticDB(t, addr.V4, farFutureYMD, []synthRow{
		{start: "1.0.0.0", end: "1.255.255.255", prefix: "A"},
	})

	h, err := parseHeader(buf, key)
	require.NoError(t, err)
	require.Equal(t, addr.V4, h.family)
	require.Equal(t, 4, h.addrWidth)
	require.Equal(t, 1, h.colIndexRowCount)
	require.Equal(t, uint32(42), h.clientID)
}

func TestParseHeaderExpired(t *testing.T) {
	withFixedNow(t, "20270101")
	buf, key := buildSyntheticDB(t, addr.V4, 20260101, []synthRow{
		{start: "1.0.0.0", end: "1.255.255.255", prefix: "A"},
	})

	_, err := parseHeader(buf, key)
	require.ErrorIs(t, err, ErrExpired)
}

func TestParseHeaderWrongKey(t *testing.T) {
	withFixedNow(t, "20260101")
	buf, _ := buildSyntheticDB(t, addr.V4, farFutureYMD, []synthRow{
		{start: "1.0.0.0", end: "1.255.255.255", prefix: "A"},
	})

	wrongKey := "AAAAAAAAAAAAAAAAAAAAAA=="
	_, err := parseHeader(buf, wrongKey)
	require.Error(t, err)
	require.True(t, err == ErrInvalidKey || err == ErrCorrupt)
}

func TestParseHeaderTruncated(t *testing.T) {
	withFixedNow(t, "20260101")
	buf, key := buildSyntheticDB(t, addr.V4, farFutureYMD, []synthRow{
		{start: "1.0.0.0", end: "1.255.255.255", prefix: "A"},
	})

	_, err := parseHeader(buf[:preambleLen+4], key)
	require.ErrorIs(t, err, ErrCorrupt)
}

func TestParseHeaderBadBase64Key(t *testing.T) {
	withFixedNow(t, "20260101")
	buf, _ := buildSyntheticDB(t, addr.V4, farFutureYMD, []synthRow{
		{start: "1.0.0.0", end: "1.255.255.255", prefix: "A"},
	})

	_, err := parseHeader(buf, "not base64!!!")
	require.ErrorIs(t, err, ErrInvalidKey)
}

package czdb

import (
	"testing"

	"github.com/sjzar/czsearch/internal/addr"
	"github.com/stretchr/testify/require"
)

func TestOpenAndSearchV6(t *testing.T) {
	withFixedNow(t, "20260101")

	buf, key := buildSyntheticDB(t, addr.V6, farFutureYMD, []synthRow{
		{
			start:     "2001:4860:4860::",
			end:       "2001:4860:4860:ffff:ffff:ffff:ffff:ffff",
			prefix:    "美国",
			geoFields: []string{"加利福尼亚州", "山景城", "Google"},
		},
	})

	s, err := Open(buf, key, MemoryMode)
	require.NoError(t, err)
	defer s.Close()

	require.True(t, s.IsIPv6())
	require.False(t, s.IsIPv4())

	got, err := s.Search("2001:4860:4860::8888")
	require.NoError(t, err)
	require.Equal(t, "美国\t加利福尼亚州\t山景城\tGoogle", got)
}

func TestSearchRejectsWrongFamily(t *testing.T) {
	withFixedNow(t, "20260101")

	buf, key := buildSyntheticDB(t, addr.V4, farFutureYMD, []synthRow{
		{start: "1.0.0.0", end: "1.255.255.255", prefix: "A"},
	})
	s, err := Open(buf, key, MemoryMode)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Search("2001::1")
	require.ErrorIs(t, err, ErrInvalidAddress)
}

func TestSearchRejectsGarbageAddress(t *testing.T) {
	withFixedNow(t, "20260101")

	buf, key := buildSyntheticDB(t, addr.V4, farFutureYMD, []synthRow{
		{start: "1.0.0.0", end: "1.255.255.255", prefix: "A"},
	})
	s, err := Open(buf, key, MemoryMode)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Search("not.an.ip")
	require.ErrorIs(t, err, ErrInvalidAddress)
}

func TestCloseRejectsFurtherOperations(t *testing.T) {
	withFixedNow(t, "20260101")

	buf, key := buildSyntheticDB(t, addr.V4, farFutureYMD, []synthRow{
		{start: "1.0.0.0", end: "1.255.255.255", prefix: "A"},
	})
	s, err := Open(buf, key, MemoryMode)
	require.NoError(t, err)

	require.NoError(t, s.Close())

	_, err = s.Search("1.0.0.1")
	require.ErrorIs(t, err, ErrClosed)
}

func TestStats(t *testing.T) {
	withFixedNow(t, "20260101")

	buf, key := buildSyntheticDB(t, addr.V4, farFutureYMD, []synthRow{
		{start: "1.0.0.0", end: "1.255.255.255", prefix: "A"},
		{start: "2.0.0.0", end: "2.255.255.255", prefix: "B"},
	})
	s, err := Open(buf, key, BTreeMode)
	require.NoError(t, err)
	defer s.Close()

	stats, err := s.Stats()
	require.NoError(t, err)
	require.Equal(t, addr.V4, stats.Family)
	require.Equal(t, BTreeMode, stats.Mode)
	require.Equal(t, 2, stats.RowCount)
	require.Equal(t, uint32(42), stats.ClientID)
}

func TestStatsRejectsAfterClose(t *testing.T) {
	withFixedNow(t, "20260101")

	buf, key := buildSyntheticDB(t, addr.V4, farFutureYMD, []synthRow{
		{start: "1.0.0.0", end: "1.255.255.255", prefix: "A"},
	})
	s, err := Open(buf, key, MemoryMode)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = s.Stats()
	require.ErrorIs(t, err, ErrClosed)
}

func TestOpenFailsAtomicallyOnBadKey(t *testing.T) {
	withFixedNow(t, "20260101")

	buf, _ := buildSyntheticDB(t, addr.V4, farFutureYMD, []synthRow{
		{start: "1.0.0.0", end: "1.255.255.255", prefix: "A"},
	})

	s, err := Open(buf, "AAAAAAAAAAAAAAAAAAAAAA==", MemoryMode)
	require.Error(t, err)
	require.Nil(t, s)
}

func TestBTreeCursorCacheAcceleratesRepeatedLookupsInSameRow(t *testing.T) {
	withFixedNow(t, "20260101")

	buf, key := buildSyntheticDB(t, addr.V4, farFutureYMD, []synthRow{
		{start: "1.0.0.0", end: "1.0.0.255", prefix: "A"},
		{start: "1.0.2.0", end: "1.0.2.255", prefix: "B"},
	})
	s, err := Open(buf, key, BTreeMode)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Search("1.0.0.1")
	require.NoError(t, err)
	require.Equal(t, "A", got)

	// Second lookup in the same row should hit the cursor cache.
	_, _, hit := s.btree.cachedHit([]byte{1, 0, 0, 200})
	require.True(t, hit)
	got, err = s.Search("1.0.0.200")
	require.NoError(t, err)
	require.Equal(t, "A", got)

	got, err = s.Search("1.0.2.5")
	require.NoError(t, err)
	require.Equal(t, "B", got)
}

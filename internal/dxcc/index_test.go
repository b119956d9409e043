package dxcc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tkerr/ab3gy-dxentity/internal/cty"
)

func TestExactMatch(t *testing.T) {
	ix := buildTestIndex(t)

	t.Run("single", func(t *testing.T) {
		recs := ix.ExactMatch("W1AW")
		require.Len(t, recs, 1)
		assert.Equal(t, "UNITED STATES", recs[0].Country)
	})

	t.Run("duplicates kept in priority order", func(t *testing.T) {
		recs := ix.ExactMatch("4U1VIC")
		require.Len(t, recs, 2)
		assert.Equal(t, "ITU VIENNA", recs[0].Country)
		assert.True(t, recs[0].WAEDC)
		assert.Equal(t, "AUSTRIA", recs[1].Country)
		assert.False(t, recs[1].WAEDC)
		assert.Less(t, recs[0].Priority, recs[1].Priority)
	})

	t.Run("miss", func(t *testing.T) {
		assert.Empty(t, ix.ExactMatch("ZZ9ZZZ"))
	})
}

func TestPrefixMatchLongestWins(t *testing.T) {
	ix := buildTestIndex(t)

	tests := []struct {
		call    string
		country string
	}{
		{"GM4ABC", "SCOTLAND"},
		{"G4ABC", "ENGLAND"},
		{"GS1AB", "SCOTLAND"},
		{"2M0ABC", "SCOTLAND"},
		{"2E0ABC", "ENGLAND"},
		{"KH6ABC", "HAWAII"},
		{"K1ABC", "UNITED STATES"},
		{"NH6XYZ", "HAWAII"},
		{"N1XYZ", "UNITED STATES"},
	}
	for _, tc := range tests {
		t.Run(tc.call, func(t *testing.T) {
			recs := ix.PrefixMatch(tc.call)
			require.NotEmpty(t, recs)
			assert.Equal(t, tc.country, recs[0].Country)
		})
	}
}

func TestPrefixMatchDuplicates(t *testing.T) {
	ix := buildTestIndex(t)

	recs := ix.PrefixMatch("4U1VZZ")
	require.Len(t, recs, 2)
	assert.Equal(t, "ITU VIENNA", recs[0].Country)
	assert.Equal(t, "AUSTRIA", recs[1].Country)
}

func TestPrefixMatchMisses(t *testing.T) {
	ix := buildTestIndex(t)

	assert.Empty(t, ix.PrefixMatch(""))
	assert.Empty(t, ix.PrefixMatch("ZZ9XX"), "empty bucket")
	assert.Empty(t, ix.PrefixMatch("9A1A"), "populated alphabet, empty bucket")
}

func TestZoneTable(t *testing.T) {
	ix := buildTestIndex(t)

	z, ok := ix.Zones("Scotland")
	require.True(t, ok)
	assert.Equal(t, 14, z.CQZone)
	assert.Equal(t, 27, z.ITUZone)
	assert.Equal(t, "EU", z.Continent)

	cq, ok := ix.CQZone("HAWAII")
	require.True(t, ok)
	assert.Equal(t, 31, cq)

	_, ok = ix.Continent("ATLANTIS")
	assert.False(t, ok)
}

func TestVersion(t *testing.T) {
	ix := buildTestIndex(t)
	assert.Equal(t, "VER20250801,VER20250801", ix.Version())
}

func TestEntityByName(t *testing.T) {
	ix := buildTestIndex(t)

	rec, ok := ix.EntityByName("KH6")
	require.True(t, ok)
	assert.Equal(t, "HAWAII", rec.Country)

	rec, ok = ix.EntityByName("hawaii")
	require.True(t, ok, "country name fallback")
	assert.Equal(t, "KH6", rec.Entity)

	_, ok = ix.EntityByName("ATLANTIS")
	assert.False(t, ok)
}

func TestAddAliasLine(t *testing.T) {
	ix := buildTestIndex(t)
	p := cty.NewParser(nil)

	n, err := ix.AddAliasLine(p, "G, GQ,=GB0ABC;")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	recs := ix.PrefixMatch("GQ1ABC")
	require.NotEmpty(t, recs)
	assert.Equal(t, "ENGLAND", recs[0].Country)

	exact := ix.ExactMatch("GB0ABC")
	require.Len(t, exact, 1)
	assert.Equal(t, "ENGLAND", exact[0].Country)

	// Extending must not disturb the existing ordering invariants.
	gm := ix.PrefixMatch("GM4ABC")
	require.NotEmpty(t, gm)
	assert.Equal(t, "SCOTLAND", gm[0].Country)

	_, err = ix.AddAliasLine(p, "ATLANTIS, AT1;")
	require.Error(t, err)
}

func TestRebuildIsDeterministic(t *testing.T) {
	a := buildTestIndex(t)
	b := buildTestIndex(t)

	for _, call := range []string{"W1AW", "GM4ABC", "VP8ABC", "4U1VZZ", "KH6/W1AW"} {
		assert.Equal(t, a.Resolve(call), b.Resolve(call), "call %s", call)
	}
	assert.Equal(t, a.Len(), b.Len())
}

func TestDumps(t *testing.T) {
	ix := buildTestIndex(t)

	calls := ix.Callsigns()
	require.NotEmpty(t, calls)
	for i := 1; i < len(calls); i++ {
		assert.LessOrEqual(t, calls[i-1].Alias, calls[i].Alias, "callsign dump is sorted")
	}

	prefixes := ix.Prefixes()
	assert.Equal(t, ix.Len(), len(prefixes)+len(calls))
}

func TestValidate(t *testing.T) {
	t.Run("clean data", func(t *testing.T) {
		ix := buildTestIndex(t)
		rep := ix.Validate()
		// The test data carries no canonical CSV, so DXCC numbers are
		// expected to be missing; the structural checks must pass.
		assert.Empty(t, rep.DuplicatePriorities)
		assert.NotEmpty(t, rep.MissingDXCC)
		assert.Empty(t, rep.CallsignCollisions)
	})

	t.Run("problems reported", func(t *testing.T) {
		recs := []cty.Record{
			{Kind: cty.KindEntity, Priority: 1, Entity: "G", Alias: "G", Country: "ENGLAND", DXCC: 223},
			{Kind: cty.KindEntity, Priority: 1, Entity: "F", Alias: "F", Country: "FRANCE", DXCC: 227},
			{Kind: cty.KindEntity, Priority: 2, Entity: "OE", Alias: "OE", Country: "AUSTRIA"},
			{Kind: cty.KindCallsign, Priority: 1, Entity: "G", Alias: "AB1CD", Country: "ENGLAND"},
			{Kind: cty.KindCallsign, Priority: 2, Entity: "OE", Alias: "AB1CD", Country: "AUSTRIA"},
		}
		rep := NewIndex(recs).Validate()
		assert.Equal(t, []int{1}, rep.DuplicatePriorities)
		assert.Equal(t, []string{"AUSTRIA"}, rep.MissingDXCC)
		assert.Equal(t, []string{"AB1CD"}, rep.CallsignCollisions)
		assert.False(t, rep.Clean())
	})
}

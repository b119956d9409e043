package dxcc

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tkerr/ab3gy-dxentity/internal/cty"
)

// bucketKeys is the set of valid prefix bucket leaders. Callsign prefixes
// always start with a digit or an uppercase letter.
const bucketKeys = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// lengthGroup marks one run of equal-length prefixes inside a bucket.
type lengthGroup struct {
	length int
	start  int
	end    int // exclusive
}

// bucket holds every prefix starting with one leader character, ordered by
// descending prefix length and alphabetically within each length group.
type bucket struct {
	recs   []cty.Record
	groups []lengthGroup // longest group first
}

// ZoneInfo carries the per-country zone attributes recorded from entity
// header lines.
type ZoneInfo struct {
	CQZone    int
	ITUZone   int
	Continent string
}

// Index answers exact-callsign and longest-prefix queries over a parsed
// entity data set.
//
// An Index is built once and then queried; queries take no locks. To pick up
// new data, build a fresh Index and swap it in atomically (see Reloader) —
// readers holding the old one keep a consistent view.
type Index struct {
	calls   []cty.Record // KindCallsign, sorted by callsign, duplicates kept
	buckets map[byte]*bucket
	zones   map[string]ZoneInfo // uppercased country name, last write wins
	version string
	count   int
}

// NewIndex builds an index from parsed records. Build order is file order;
// duplicate keys keep their priority order.
func NewIndex(records []cty.Record) *Index {
	ix := &Index{
		buckets: make(map[byte]*bucket),
		zones:   make(map[string]ZoneInfo),
	}
	ix.Extend(records)
	return ix
}

// Extend adds records (custom aliases, replayed database rows) and restores
// the sorted invariants. Extend is a build-time operation; do not call it on
// an index other goroutines are querying.
func (ix *Index) Extend(records []cty.Record) {
	for i := range records {
		ix.add(records[i])
	}
	ix.finalize()
}

func (ix *Index) add(rec cty.Record) {
	if rec.Alias == cty.VersionAlias && ix.version == "" {
		ix.version = rec.Entity + "," + rec.Country
	}

	switch rec.Kind {
	case cty.KindCallsign:
		ix.calls = append(ix.calls, rec)
	case cty.KindEntity, cty.KindAlias:
		if rec.Alias == "" {
			rec.Alias = rec.Entity
		}
		if rec.Alias == "" {
			return
		}
		c := rec.Alias[0]
		if strings.IndexByte(bucketKeys, c) < 0 {
			return
		}
		b := ix.buckets[c]
		if b == nil {
			b = &bucket{}
			ix.buckets[c] = b
		}
		b.recs = append(b.recs, rec)
		if rec.Kind == cty.KindEntity {
			ix.zones[strings.ToUpper(rec.Country)] = ZoneInfo{
				CQZone:    rec.CQZone,
				ITUZone:   rec.ITUZone,
				Continent: rec.Continent,
			}
		}
	default:
		return
	}
	ix.count++
}

// finalize sorts the tables and recomputes length-group boundaries. The
// stable sort keeps equal keys in insertion (priority) order.
func (ix *Index) finalize() {
	sort.SliceStable(ix.calls, func(i, j int) bool {
		return ix.calls[i].Alias < ix.calls[j].Alias
	})
	for _, b := range ix.buckets {
		recs := b.recs
		sort.SliceStable(recs, func(i, j int) bool {
			li, lj := len(recs[i].Alias), len(recs[j].Alias)
			if li != lj {
				return li > lj
			}
			return recs[i].Alias < recs[j].Alias
		})
		b.groups = b.groups[:0]
		for i := 0; i < len(recs); {
			l := len(recs[i].Alias)
			j := i
			for j < len(recs) && len(recs[j].Alias) == l {
				j++
			}
			b.groups = append(b.groups, lengthGroup{length: l, start: i, end: j})
			i = j
		}
	}
}

// Len returns the number of records indexed.
func (ix *Index) Len() int {
	return ix.count
}

// Version returns the data set version string ("ENTITY,COUNTRY" of the
// VERSION record), or "" when the data carries none.
func (ix *Index) Version() string {
	return ix.version
}

// ExactMatch returns every record whose callsign equals call, in priority
// order. The match is against literal "=" callsigns only.
func (ix *Index) ExactMatch(call string) []cty.Record {
	i := sort.Search(len(ix.calls), func(k int) bool { return ix.calls[k].Alias >= call })
	j := i
	for j < len(ix.calls) && ix.calls[j].Alias == call {
		j++
	}
	if i == j {
		return nil
	}
	return append([]cty.Record(nil), ix.calls[i:j]...)
}

// PrefixMatch returns the records for the longest indexed prefix of call.
// Groups are probed longest first; groups longer than call are skipped. All
// records equal to the winning prefix are returned, in priority order.
func (ix *Index) PrefixMatch(call string) []cty.Record {
	if call == "" {
		return nil
	}
	b := ix.buckets[call[0]]
	if b == nil {
		return nil
	}
	for _, g := range b.groups {
		if g.length > len(call) {
			continue
		}
		key := call[:g.length]
		recs := b.recs[g.start:g.end]
		i := sort.Search(len(recs), func(k int) bool { return recs[k].Alias >= key })
		j := i
		for j < len(recs) && recs[j].Alias == key {
			j++
		}
		if i < j {
			return append([]cty.Record(nil), recs[i:j]...)
		}
	}
	return nil
}

// Zones returns the zone attributes recorded for a country name.
func (ix *Index) Zones(country string) (ZoneInfo, bool) {
	z, ok := ix.zones[strings.ToUpper(strings.TrimSpace(country))]
	return z, ok
}

// CQZone returns the CQ zone for a country name.
func (ix *Index) CQZone(country string) (int, bool) {
	z, ok := ix.Zones(country)
	return z.CQZone, ok
}

// ITUZone returns the ITU zone for a country name.
func (ix *Index) ITUZone(country string) (int, bool) {
	z, ok := ix.Zones(country)
	return z.ITUZone, ok
}

// Continent returns the continent designator for a country name.
func (ix *Index) Continent(country string) (string, bool) {
	z, ok := ix.Zones(country)
	return z.Continent, ok
}

// EntityByName finds an ENTITY record by primary prefix, falling back to the
// canonical country name. Used when attaching custom aliases.
func (ix *Index) EntityByName(name string) (cty.Record, bool) {
	u := strings.ToUpper(strings.TrimSpace(name))
	var byCountry cty.Record
	var haveCountry bool
	for _, b := range ix.buckets {
		for _, rec := range b.recs {
			if rec.Kind != cty.KindEntity {
				continue
			}
			if rec.Entity == u {
				return rec, true
			}
			if !haveCountry && strings.ToUpper(rec.Country) == u {
				byCountry, haveCountry = rec, true
			}
		}
	}
	return byCountry, haveCountry
}

// AddAliasLine parses one custom-alias fragment ("entity, tok[,tok...]") and
// extends the index with the resulting records. Returns the number of
// records added.
func (ix *Index) AddAliasLine(p *cty.Parser, line string) (int, error) {
	name, tokens, err := cty.SplitAliasLine(line)
	if err != nil {
		return 0, err
	}
	entity, ok := ix.EntityByName(name)
	if !ok {
		return 0, fmt.Errorf("unknown entity %q in alias line", name)
	}
	recs := p.ParseCustomAliases(entity, tokens)
	if len(recs) == 0 {
		return 0, nil
	}
	ix.Extend(recs)
	return len(recs), nil
}

// Callsigns returns a copy of the exact-callsign table in sorted order.
func (ix *Index) Callsigns() []cty.Record {
	return append([]cty.Record(nil), ix.calls...)
}

// Prefixes returns a copy of every prefix record, walking buckets in leader
// order.
func (ix *Index) Prefixes() []cty.Record {
	var out []cty.Record
	for i := 0; i < len(bucketKeys); i++ {
		if b := ix.buckets[bucketKeys[i]]; b != nil {
			out = append(out, b.recs...)
		}
	}
	return out
}

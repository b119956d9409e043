package dxcc

import (
	"strings"

	"github.com/tkerr/ab3gy-dxentity/internal/cty"
)

// AwardHint selects which award program a lookup should favor when a
// callsign matches both a DXCC entity and a WAE-only entity (e.g. IT9 or
// 4U1VIC style prefixes).
type AwardHint int

const (
	HintNone  AwardHint = iota // keep all matches
	HintDXCC                   // prefer the non-WAE record
	HintWAEDC                  // prefer the WAE-flagged record
)

// Info is the flattened lookup answer for a callsign.
type Info struct {
	Entity    string
	Country   string
	DXCC      int
	Continent string
	CQZone    int
	ITUZone   int
}

// SplitCallsign breaks a slash-separated callsign into prefix candidate,
// base call, and suffix candidate. The longest field is the base call (first
// wins on ties); the field before it, if any, is the prefix candidate and
// the field after it the suffix candidate. Suffixes that designate operating
// conditions rather than location (QRP, M, P, R, or a bare area digit) are
// discarded.
func SplitCallsign(call string) (pfx, base, sfx string) {
	fields := strings.Split(call, "/")
	idx := 0
	for i, f := range fields {
		if len(f) > len(fields[idx]) {
			idx = i
		}
	}
	base = fields[idx]
	if idx > 0 {
		pfx = fields[0]
	}
	if idx+1 < len(fields) {
		sfx = fields[idx+1]
	}
	if ignorableSuffix(sfx) {
		sfx = ""
	}
	return pfx, base, sfx
}

func ignorableSuffix(s string) bool {
	switch s {
	case "QRP", "M", "P", "R":
		return true
	}
	return s != "" && allDigits(s)
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Resolve maps a callsign to its entity records with no award preference.
func (ix *Index) Resolve(call string) []cty.Record {
	return ix.ResolveHint(call, HintNone)
}

// ResolveHint maps a callsign to its entity records.
//
// Match priority: the full callsign as a literal entry; then the prefix
// candidate as an alias; then the suffix candidate as an alias; then the
// base call as a literal entry; then the longest indexed prefix of the base
// call. Aeronautical (/AM) and maritime (/MM) mobile stations resolve to
// nothing. An empty result means the callsign is unknown.
func (ix *Index) ResolveHint(call string, hint AwardHint) []cty.Record {
	call = strings.ToUpper(strings.TrimSpace(call))
	if call == "" {
		return nil
	}

	if recs := ix.ExactMatch(call); len(recs) > 0 {
		return filterAward(recs, hint)
	}

	pfx, base, sfx := SplitCallsign(call)

	if sfx == "AM" || sfx == "MM" {
		return nil
	}

	if pfx != "" {
		if recs := ix.matchAlias(base, pfx, hint); len(recs) > 0 {
			return recs
		}
	}
	if sfx != "" {
		if recs := ix.matchAlias(base, sfx, hint); len(recs) > 0 {
			return recs
		}
	}
	if base != "" {
		if recs := ix.ExactMatch(base); len(recs) > 0 {
			return filterAward(recs, hint)
		}
	}
	if recs := ix.PrefixMatch(base); len(recs) > 0 {
		recs = filterSuffix(base, recs)
		return filterAward(recs, hint)
	}
	return nil
}

// matchAlias resolves a prefix or suffix candidate against the prefix
// tables. An unmatched candidate ending in a digit is retried once with the
// digit stripped (W4/K9XX style area suffixes).
func (ix *Index) matchAlias(base, alias string, hint AwardHint) []cty.Record {
	recs := ix.PrefixMatch(alias)
	if len(recs) == 0 && len(alias) > 1 {
		if c := alias[len(alias)-1]; c >= '0' && c <= '9' {
			recs = ix.PrefixMatch(alias[:len(alias)-1])
		}
	}
	if len(recs) == 0 {
		return nil
	}
	recs = filterSuffix(base, recs)
	return filterAward(recs, hint)
}

// filterSuffix narrows a multi-entity match using the per-entity suffix
// character: a record whose Suffix equals the base call's final character
// wins outright.
func filterSuffix(base string, recs []cty.Record) []cty.Record {
	if len(recs) < 2 || base == "" {
		return recs
	}
	last := string(base[len(base)-1])
	for _, r := range recs {
		if r.Suffix != "" && r.Suffix == last {
			return []cty.Record{r}
		}
	}
	return recs
}

// filterAward narrows a multi-entity match by award program. With HintNone
// all matches are kept.
func filterAward(recs []cty.Record, hint AwardHint) []cty.Record {
	if len(recs) < 2 || hint == HintNone {
		return recs
	}
	for _, r := range recs {
		if (hint == HintWAEDC) == r.WAEDC {
			return []cty.Record{r}
		}
	}
	return recs
}

// Lookup resolves call and flattens the best match into an Info.
func (ix *Index) Lookup(call string) (Info, bool) {
	recs := ix.Resolve(call)
	if len(recs) == 0 {
		return Info{}, false
	}
	r := recs[0]
	return Info{
		Entity:    r.Entity,
		Country:   r.Country,
		DXCC:      r.DXCC,
		Continent: r.Continent,
		CQZone:    r.CQZone,
		ITUZone:   r.ITUZone,
	}, true
}

// Country returns the country name for call, or "" when unresolvable.
func (ix *Index) Country(call string) string {
	info, ok := ix.Lookup(call)
	if !ok {
		return ""
	}
	return info.Country
}

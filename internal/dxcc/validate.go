package dxcc

import (
	"sort"

	"github.com/tkerr/ab3gy-dxentity/internal/cty"
)

// CheckReport lists data problems found by Validate. An all-empty report
// means the data set passed.
type CheckReport struct {
	DuplicatePriorities []int    // entity priorities appearing on more than one header
	MissingDXCC         []string // country names that resolved to no DXCC number
	CallsignCollisions  []string // literal callsigns listed under multiple countries
}

// Clean reports whether no problems were found.
func (r CheckReport) Clean() bool {
	return len(r.DuplicatePriorities) == 0 &&
		len(r.MissingDXCC) == 0 &&
		len(r.CallsignCollisions) == 0
}

// Validate runs the data sanity checks: duplicate entity priorities,
// entities missing a DXCC number, and literal callsigns claimed by more than
// one country.
func (ix *Index) Validate() CheckReport {
	var rep CheckReport

	prioSeen := make(map[int]bool)
	prioDup := make(map[int]bool)
	dxccMissing := make(map[string]bool)
	for _, rec := range ix.Prefixes() {
		if rec.Kind != cty.KindEntity {
			continue
		}
		if prioSeen[rec.Priority] {
			prioDup[rec.Priority] = true
		}
		prioSeen[rec.Priority] = true
		if rec.DXCC == 0 && rec.Country != "" {
			dxccMissing[rec.Country] = true
		}
	}
	for p := range prioDup {
		rep.DuplicatePriorities = append(rep.DuplicatePriorities, p)
	}
	sort.Ints(rep.DuplicatePriorities)
	for c := range dxccMissing {
		rep.MissingDXCC = append(rep.MissingDXCC, c)
	}
	sort.Strings(rep.MissingDXCC)

	// calls is sorted, so collisions are adjacent. A WAE/DXCC pair sharing
	// a callsign is deliberate, not a collision.
	collided := make(map[string]bool)
	for i := 1; i < len(ix.calls); i++ {
		a, b := ix.calls[i-1], ix.calls[i]
		if a.Alias == b.Alias && a.Country != b.Country &&
			a.WAEDC == b.WAEDC && a.Alias != cty.VersionAlias {
			collided[a.Alias] = true
		}
	}
	for c := range collided {
		rep.CallsignCollisions = append(rep.CallsignCollisions, c)
	}
	sort.Strings(rep.CallsignCollisions)

	return rep
}

package cty

// Record kinds, as stored in the TYPE column of the entity table.
const (
	KindEntity   = "ENTITY"   // entity header line (primary prefix)
	KindAlias    = "ALIAS"    // prefix alias inherited from an entity header
	KindCallsign = "CALLSIGN" // literal callsign ("=" token)
)

// VersionAlias is the pseudo-callsign whose record carries the data set
// version (e.g. "=VERSION" under a placeholder entity in cty.dat).
const VersionAlias = "VERSION"

// Record is one parsed row of DXCC entity data. ENTITY records come from
// entity header lines; ALIAS and CALLSIGN records come from continuation
// lines and inherit every attribute, including Priority, from the entity
// they appear under (minus any inline overrides).
type Record struct {
	Kind     string
	Priority int // entity header order; monotonic, never reused

	Entity string // primary prefix of the owning entity
	Alias  string // alias prefix, or literal callsign for KindCallsign
	Suffix string // single-character portable designator tied to the entity

	CQZone    int
	ITUZone   int
	Continent string
	Lat       float64
	Lon       float64
	GMTOffset float64

	// WAEDC marks entities that count only for the DARC WAE award, not DXCC.
	WAEDC bool

	Country string // canonical country name
	DXCC    int    // ADIF DXCC entity number, 0 when unknown
}

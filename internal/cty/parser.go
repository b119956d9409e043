package cty

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/tkerr/ab3gy-dxentity/internal/logging"
)

// Token syntax within continuation lines. Overrides may appear in any order
// after the alias or callsign body.
var (
	aliasRe  = regexp.MustCompile(`^\w+`)
	callRe   = regexp.MustCompile(`^[\w/]+`)
	cqRe     = regexp.MustCompile(`^(.+)\((\d+)\)`)    // (5)   CQ zone override
	ituRe    = regexp.MustCompile(`^(.+)\[(\d+)\]`)    // [8]   ITU zone override
	contRe   = regexp.MustCompile(`^(.+)\{(\w+)\}`)    // {EU}  continent override
	latLonRe = regexp.MustCompile(`^(.+)<([+\-./\d]+)>`) // <lat/lon> coordinate override
	gmtRe    = regexp.MustCompile(`^(.+)~([\-+.\d]+)~`)  // ~-5.0~ GMT offset override
)

// Stats counts parser activity across the lifetime of a Parser.
type Stats struct {
	Lines   int // input lines seen
	Records int // records emitted
	Errors  int // malformed lines/fields skipped or zeroed
}

// Parser turns cty.dat formatted text into Record values.
//
// A Parser carries the canonical entity table used to normalize country
// names and assign DXCC numbers; a nil table leaves names as found in the
// file. Per-line problems are logged, counted in Stats, and skipped; only
// I/O failures abort a parse.
type Parser struct {
	entities *EntityTable

	current  Record // attributes inherited by continuation lines
	haveCur  bool
	priority int // increments on every entity header line, never reused

	stats Stats
}

// NewParser returns a Parser using the given canonical entity table, which
// may be nil.
func NewParser(entities *EntityTable) *Parser {
	return &Parser{entities: entities}
}

// Stats returns the running parse counters.
func (p *Parser) Stats() Stats {
	return p.stats
}

// ParseFile opens path and parses it. The returned error covers I/O only.
func (p *Parser) ParseFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cty data file %s: %w", path, err)
	}
	defer f.Close()
	recs, err := p.Parse(f)
	if err != nil {
		return recs, fmt.Errorf("failed to read cty data file %s: %w", path, err)
	}
	return recs, nil
}

// Parse reads r to EOF and returns the records in file order. Input is
// decoded to UTF-8 best-effort; bytes that do not convert are dropped.
func (p *Parser) Parse(r io.Reader) ([]Record, error) {
	utf8r, err := charset.NewReaderLabel("utf-8", r)
	if err != nil {
		return nil, fmt.Errorf("failed to set up UTF-8 decoding: %w", err)
	}

	var records []Record
	sc := bufio.NewScanner(utf8r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		p.stats.Lines++
		line := strings.ReplaceAll(sc.Text(), "�", "")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if line[0] == ' ' || line[0] == '\t' {
			records = append(records, p.parseContinuation(line)...)
			continue
		}
		if rec, ok := p.parseHeader(line); ok {
			records = append(records, rec)
		}
	}
	if err := sc.Err(); err != nil {
		return records, fmt.Errorf("read failed after %d lines: %w", p.stats.Lines, err)
	}
	return records, nil
}

// parseHeader handles an entity header line:
//
//	country:cq:itu:cont:lat:lon:gmt_offset:primary_prefix
//
// The priority counter advances even when the header is malformed, so
// priorities stay monotonic across reloads of the same file.
func (p *Parser) parseHeader(line string) (Record, bool) {
	p.priority++
	p.haveCur = false

	fields := strings.Split(line, ":")
	if len(fields) < 8 {
		p.stats.Errors++
		logging.Warn("cty: line %d: entity header has %d fields, want 8: %q", p.stats.Lines, len(fields), line)
		return Record{}, false
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	rec := Record{Kind: KindEntity, Priority: p.priority}
	rec.Country = strings.ToUpper(fields[0])
	if p.entities != nil {
		rec.Country = p.entities.Canonical(rec.Country)
		if info, ok := p.entities.Lookup(rec.Country); ok {
			rec.DXCC = info.DXCC
		}
	}
	rec.CQZone = p.atoi(fields[1])
	rec.ITUZone = p.atoi(fields[2])
	rec.Continent = strings.ToUpper(fields[3])
	rec.Lat = p.atof(fields[4])
	rec.Lon = p.atof(fields[5])
	rec.GMTOffset = p.atof(fields[6])

	pfx := strings.ToUpper(fields[7])
	if strings.HasPrefix(pfx, "*") {
		rec.WAEDC = true
		pfx = pfx[1:]
	}
	if i := strings.Index(pfx, "/"); i >= 0 {
		rec.Suffix = pfx[i+1:]
		pfx = pfx[:i]
	}
	rec.Entity = pfx
	rec.Alias = pfx

	p.current = rec
	p.haveCur = true
	p.stats.Records++
	return rec, true
}

// parseContinuation handles a whitespace-led alias line: comma-separated
// tokens, semicolon-terminated at the end of the entity's list.
func (p *Parser) parseContinuation(line string) []Record {
	if !p.haveCur {
		p.stats.Errors++
		logging.Warn("cty: line %d: alias line with no preceding entity header", p.stats.Lines)
		return nil
	}

	var out []Record
	for _, field := range strings.Split(strings.TrimSpace(line), ",") {
		field = strings.TrimSuffix(strings.TrimSpace(field), ";")
		if field == "" {
			continue
		}
		if rec, ok := p.parseAliasField(strings.ToUpper(field)); ok {
			out = append(out, rec)
			p.stats.Records++
		}
	}
	return out
}

// parseAliasField turns one continuation token into an ALIAS or CALLSIGN
// record inheriting the current entity's attributes.
func (p *Parser) parseAliasField(field string) (Record, bool) {
	rec := p.current

	if strings.HasPrefix(field, "=") {
		rec.Kind = KindCallsign
		body := field[1:]
		m := callRe.FindString(body)
		if m == "" {
			p.stats.Errors++
			logging.Warn("cty: line %d: bad callsign token %q", p.stats.Lines, field)
			return Record{}, false
		}
		rec.Alias = m
		p.applyOverrides(body, &rec)
		return rec, true
	}

	rec.Kind = KindAlias
	m := aliasRe.FindString(field)
	if m == "" {
		p.stats.Errors++
		logging.Warn("cty: line %d: bad alias token %q", p.stats.Lines, field)
		return Record{}, false
	}
	if m == rec.Entity {
		// The primary prefix restated in its own alias list carries no
		// information.
		return Record{}, false
	}
	rec.Alias = m
	p.applyOverrides(field, &rec)
	return rec, true
}

// applyOverrides replaces inherited attributes with any inline override
// markers present in the token.
func (p *Parser) applyOverrides(field string, rec *Record) {
	if m := cqRe.FindStringSubmatch(field); m != nil {
		rec.CQZone = p.atoi(m[2])
	}
	if m := ituRe.FindStringSubmatch(field); m != nil {
		rec.ITUZone = p.atoi(m[2])
	}
	if m := contRe.FindStringSubmatch(field); m != nil {
		rec.Continent = strings.ToUpper(m[2])
	}
	if m := latLonRe.FindStringSubmatch(field); m != nil {
		val := m[2]
		if i := strings.Index(val, "/"); i >= 0 {
			rec.Lat = p.atof(val[:i])
			rec.Lon = p.atof(val[i+1:])
		} else {
			rec.Lat = p.atof(val)
		}
	}
	if m := gmtRe.FindStringSubmatch(field); m != nil {
		rec.GMTOffset = p.atof(m[2])
	}
}

// atoi parses an integer field, counting a parse failure as a data error and
// falling back to zero.
func (p *Parser) atoi(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		p.stats.Errors++
		logging.Warn("cty: line %d: bad integer field %q", p.stats.Lines, s)
		return 0
	}
	return n
}

// atof parses a float field with the same fallback behavior as atoi.
func (p *Parser) atof(s string) float64 {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		p.stats.Errors++
		logging.Warn("cty: line %d: bad numeric field %q", p.stats.Lines, s)
		return 0
	}
	return f
}

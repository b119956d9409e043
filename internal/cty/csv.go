package cty

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/tkerr/ab3gy-dxentity/internal/logging"
)

// EntityInfo is one row of the canonical DXCC entity list.
type EntityInfo struct {
	DXCC    int
	Name    string // canonical entity name, uppercased
	Deleted bool
	AltName string // alternate name as used by cty.dat, uppercased
}

// EntityTable maps canonical entity names to their DXCC attributes and
// normalizes the country-name spellings found in cty.dat.
type EntityTable struct {
	byName map[string]EntityInfo
	order  []string // file order, for number and alternate-name scans
}

// NewEntityTable returns an empty table. Canonical lookups on an empty table
// pass every name through unchanged.
func NewEntityTable() *EntityTable {
	return &EntityTable{byName: make(map[string]EntityInfo)}
}

// LoadEntityCSV opens path and parses it with ParseEntityCSV.
func LoadEntityCSV(path string) (*EntityTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open entity CSV %s: %w", path, err)
	}
	defer f.Close()
	t, err := ParseEntityCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read entity CSV %s: %w", path, err)
	}
	return t, nil
}

// ParseEntityCSV reads rows of
//
//	dxcc_number,canonical_name,deleted_flag,alternate_name
//
// Canonical names may themselves contain commas; extra fields are folded
// back into the name. Malformed rows are logged and skipped; a header row is
// skipped silently.
func ParseEntityCSV(r io.Reader) (*EntityTable, error) {
	t := NewEntityTable()
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) < 4 {
			logging.Warn("cty: entity CSV line %d: %d fields, want 4: %q", lineNo, len(fields), line)
			continue
		}

		n := len(fields)
		dxcc, err := strconv.Atoi(strings.TrimSpace(fields[0]))
		if err != nil {
			if lineNo > 1 {
				logging.Warn("cty: entity CSV line %d: bad DXCC number %q", lineNo, fields[0])
			}
			continue
		}

		// Unquoted commas inside the name push the deleted flag and
		// alternate name toward the end of the row.
		name := cleanCSVField(strings.Join(fields[1:n-2], ","))
		deleted := cleanCSVField(fields[n-2])
		alt := cleanCSVField(fields[n-1])
		if name == "" {
			logging.Warn("cty: entity CSV line %d: empty entity name", lineNo)
			continue
		}

		info := EntityInfo{
			DXCC:    dxcc,
			Name:    name,
			Deleted: deleted == "Y" || deleted == "YES" || deleted == "TRUE" || deleted == "1",
			AltName: alt,
		}
		if _, dup := t.byName[name]; !dup {
			t.order = append(t.order, name)
		}
		t.byName[name] = info
	}
	if err := sc.Err(); err != nil {
		return t, fmt.Errorf("read failed at line %d: %w", lineNo, err)
	}
	return t, nil
}

// cleanCSVField trims whitespace and surrounding quotes and uppercases.
func cleanCSVField(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"`)
	return strings.ToUpper(strings.TrimSpace(s))
}

// Len returns the number of entities in the table.
func (t *EntityTable) Len() int {
	return len(t.byName)
}

// Lookup finds an entity by exact canonical name.
func (t *EntityTable) Lookup(name string) (EntityInfo, bool) {
	info, ok := t.byName[strings.ToUpper(strings.TrimSpace(name))]
	return info, ok
}

// Canonical normalizes a country name: an exact canonical match wins, then
// the first entity whose alternate name matches, then the name passes
// through unchanged.
func (t *EntityTable) Canonical(name string) string {
	u := strings.ToUpper(strings.TrimSpace(name))
	if _, ok := t.byName[u]; ok {
		return u
	}
	for _, n := range t.order {
		if info := t.byName[n]; info.AltName != "" && info.AltName == u {
			return n
		}
	}
	return u
}

// ByDXCC finds the first entity carrying the given DXCC number, in file
// order.
func (t *EntityTable) ByDXCC(n int) (EntityInfo, bool) {
	for _, name := range t.order {
		if info := t.byName[name]; info.DXCC == n {
			return info, true
		}
	}
	return EntityInfo{}, false
}

// Entities returns all entities in file order.
func (t *EntityTable) Entities() []EntityInfo {
	out := make([]EntityInfo, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, t.byName[name])
	}
	return out
}

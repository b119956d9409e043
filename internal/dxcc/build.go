package dxcc

import (
	"github.com/tkerr/ab3gy-dxentity/internal/cty"
	"github.com/tkerr/ab3gy-dxentity/internal/logging"
)

// BuildFromFiles parses the canonical entity CSV (optional, may be "") and a
// cty.dat file, and builds a queryable index. Per-line data problems are
// logged and counted in the returned stats; only I/O failures return an
// error.
func BuildFromFiles(ctyPath, csvPath string) (*Index, cty.Stats, error) {
	var table *cty.EntityTable
	if csvPath != "" {
		t, err := cty.LoadEntityCSV(csvPath)
		if err != nil {
			return nil, cty.Stats{}, err
		}
		table = t
		logging.Info("dxcc: loaded %d canonical entities from %s", t.Len(), csvPath)
	}

	p := cty.NewParser(table)
	recs, err := p.ParseFile(ctyPath)
	if err != nil {
		return nil, p.Stats(), err
	}

	ix := NewIndex(recs)
	st := p.Stats()
	logging.Notice("dxcc: indexed %d records from %s (%d lines, %d errors)",
		ix.Len(), ctyPath, st.Lines, st.Errors)
	if v := ix.Version(); v != "" {
		logging.Info("dxcc: data set version %s", v)
	}
	return ix, st, nil
}

package dxcc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tkerr/ab3gy-dxentity/internal/cty"
)

// testCty is a miniature cty.dat exercising the interesting cases: UK
// sub-entities sharing the G bucket, a US callsign carrying a Hawaii-shaped
// prefix, the VP8 suffix-marker pair, a WAE-only entity sharing its prefix
// and a literal callsign with a DXCC entity, and a VERSION record.
const testCty = `England:                 14:  27:  EU:   52.36:     0.46:     0.0:  G:
    G,GX,M,2E,=GB50AAA;
Scotland:                14:  27:  EU:   56.82:     4.18:     0.0:  GM:
    GM,GS,2M,=GB2XYZ;
United States:            5:   8:  NA:   37.53:    91.67:     5.0:  K:
    AA,K,N,W,=W1AW,=KH6US;
Hawaii:                  31:  61:  OC:   21.12:   157.48:    10.0:  KH6:
    AH6,KH6,NH6,WH6;
France:                  14:  27:  EU:   46.00:    -2.00:    -1.0:  F:
    F,HW,TM;
Falkland Islands:        13:  73:  SA:  -51.63:    57.72:     4.0:  VP8:
    VP8;
South Georgia:           13:  73:  SA:  -54.28:    36.50:     2.0:  VP8/g:
    =VP8SGI;
ITU Vienna:              15:  28:  EU:   48.20:   -16.30:    -1.0:  *4U1V:
    4U1V,=4U1VIC;
Austria:                 15:  28:  EU:   47.33:   -13.33:    -1.0:  OE:
    OE,4U1V,=4U1VIC;
Ver20250801:              5:   8:  NA:    0.00:     0.00:     0.0:  VER20250801:
    =VERSION;
`

func parseTestRecords(t *testing.T) []cty.Record {
	t.Helper()
	p := cty.NewParser(nil)
	recs, err := p.Parse(strings.NewReader(testCty))
	require.NoError(t, err)
	require.Zero(t, p.Stats().Errors)
	return recs
}

func buildTestIndex(t *testing.T) *Index {
	t.Helper()
	return NewIndex(parseTestRecords(t))
}

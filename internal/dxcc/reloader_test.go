package dxcc

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const englandOnly = `England:                 14:  27:  EU:   52.36:     0.46:     0.0:  G:
    G,GX,M,2E;
`

const englandAndScotland = englandOnly +
	`Scotland:                14:  27:  EU:   56.82:     4.18:     0.0:  GM:
    GM,GS,2M;
`

func writeDataFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestReloaderRebuild(t *testing.T) {
	ctyPath := filepath.Join(t.TempDir(), "cty.dat")
	writeDataFile(t, ctyPath, englandOnly)

	r, err := NewReloader(ctyPath, "")
	require.NoError(t, err)

	old := r.Index()
	require.NotNil(t, old)
	assert.Equal(t, "ENGLAND", old.Country("GM4ABC"), "GM falls back to G before the update")

	writeDataFile(t, ctyPath, englandAndScotland)
	require.NoError(t, r.Rebuild())

	fresh := r.Index()
	assert.NotSame(t, old, fresh, "rebuild swaps in a new index")
	assert.Equal(t, "SCOTLAND", fresh.Country("GM4ABC"))
	// A reader holding the old snapshot is unaffected.
	assert.Equal(t, "ENGLAND", old.Country("GM4ABC"))
}

func TestReloaderKeepsIndexOnFailure(t *testing.T) {
	ctyPath := filepath.Join(t.TempDir(), "cty.dat")
	writeDataFile(t, ctyPath, englandOnly)

	r, err := NewReloader(ctyPath, "")
	require.NoError(t, err)
	old := r.Index()

	require.NoError(t, os.Remove(ctyPath))
	require.Error(t, r.Rebuild())
	assert.Same(t, old, r.Index(), "failed rebuild keeps the previous index")
}

func TestReloaderMissingFile(t *testing.T) {
	_, err := NewReloader(filepath.Join(t.TempDir(), "nope.dat"), "")
	require.Error(t, err)
}

func TestReloaderWatcher(t *testing.T) {
	ctyPath := filepath.Join(t.TempDir(), "cty.dat")
	writeDataFile(t, ctyPath, englandOnly)

	r, err := NewReloader(ctyPath, "")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, r.StartWatcher(ctx))
	defer r.StopWatcher()

	writeDataFile(t, ctyPath, englandAndScotland)

	assert.Eventually(t, func() bool {
		return r.Index().Country("GM4ABC") == "SCOTLAND"
	}, 10*time.Second, 100*time.Millisecond, "watcher should rebuild after the data file changes")
}

func TestReloaderStopWatcherIdempotent(t *testing.T) {
	ctyPath := filepath.Join(t.TempDir(), "cty.dat")
	writeDataFile(t, ctyPath, englandOnly)

	r, err := NewReloader(ctyPath, "")
	require.NoError(t, err)

	// Never started: a no-op.
	r.StopWatcher()

	require.NoError(t, r.StartWatcher(context.Background()))
	r.StopWatcher()
	r.StopWatcher()
}

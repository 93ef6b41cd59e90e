package replay

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileWatcherReportsWatchedFileWrites(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "obras.geojson")
	require.NoError(t, os.WriteFile(watched, []byte("{}"), 0o644))

	fw, err := NewFileWatcher(watched)
	require.NoError(t, err)
	defer fw.Close()

	// a sibling file in the same directory must not surface
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("noise"), 0o644))
	require.NoError(t, os.WriteFile(watched, []byte(`{"type":"FeatureCollection","features":[]}`), 0o644))

	abs, err := filepath.Abs(watched)
	require.NoError(t, err)

	select {
	case event := <-fw.Events():
		assert.Equal(t, abs, event.Path)
	case <-time.After(2 * time.Second):
		t.Fatal("no event delivered for a watched file write")
	}
}

func TestFileWatcherRejectsMissingDirectory(t *testing.T) {
	_, err := NewFileWatcher(filepath.Join(t.TempDir(), "absent", "obras.geojson"))
	assert.Error(t, err)
}

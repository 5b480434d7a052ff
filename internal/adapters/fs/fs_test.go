package fs_test

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/dts/internal/adapters/fs"
)

func TestMapFSAdapter(t *testing.T) {
	root := filepath.FromSlash("/repo")
	adapter := fs.NewMapFSAdapter(root, fstest.MapFS{
		"src/index.ts": {Data: []byte("export const a = 1;\n")},
	})

	data, err := adapter.ReadFile(filepath.Join(root, "src", "index.ts"))
	require.NoError(t, err)
	assert.Equal(t, "export const a = 1;\n", string(data))

	info, err := adapter.Stat(filepath.Join(root, "src"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	_, err = adapter.Stat(filepath.Join(root, "src", "missing.ts"))
	require.Error(t, err)

	_, err = adapter.ReadFile(filepath.FromSlash("/elsewhere/index.ts"))
	require.Error(t, err)
}

func TestOSFS(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.d.ts")
	require.NoError(t, os.WriteFile(path, []byte("export {};\n"), 0o600))

	osfs := fs.NewOSFS()
	data, err := osfs.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "export {};\n", string(data))

	info, err := osfs.Stat(path)
	require.NoError(t, err)
	assert.False(t, info.IsDir())
}

func TestWriter_Write(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dist", "index.d.ts")
	w := fs.NewWriter()

	changed, err := w.Write(path, "export declare const a: number;\n")
	require.NoError(t, err)
	assert.True(t, changed, "first write creates the file")

	info, err := os.Stat(path)
	require.NoError(t, err)
	modTime := info.ModTime()

	time.Sleep(10 * time.Millisecond)
	changed, err = w.Write(path, "export declare const a: number;\n")
	require.NoError(t, err)
	assert.False(t, changed, "identical content is not rewritten")

	info, err = os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, modTime, info.ModTime())

	changed, err = w.Write(path, "export declare const a: string;\n")
	require.NoError(t, err)
	assert.True(t, changed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "export declare const a: string;\n", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files are cleaned up")
}

func TestWriter_Diff(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.d.ts")
	w := fs.NewWriter()

	diff, err := w.Diff(path, "export {};\n")
	require.NoError(t, err)
	assert.Contains(t, diff, "+export {};")

	require.NoError(t, os.WriteFile(path, []byte("export {};\n"), 0o600))

	diff, err = w.Diff(path, "export {};\n")
	require.NoError(t, err)
	assert.Empty(t, diff)

	diff, err = w.Diff(path, "export declare const b: 1;\n")
	require.NoError(t, err)
	assert.Contains(t, diff, "-export {};")
	assert.Contains(t, diff, "+export declare const b: 1;")
	assert.Contains(t, diff, path+" (generated)")
}

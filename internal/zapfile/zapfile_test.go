package zapfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestSink_Commit(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.zap")

	sink, err := CreateSink(out, 0o600, false, nil)
	require.NoError(t, err)
	_, err = sink.Write([]byte("payload"))
	require.NoError(t, err)

	_, err = os.Stat(out)
	assert.True(t, os.IsNotExist(err), "output must not appear before Commit")

	require.NoError(t, sink.Commit())
	sink.Abort()

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	assert.Equal(t, []string{"out.zap"}, listDir(t, dir))

	assert.Error(t, sink.Commit(), "second Commit")
}

func TestSink_Abort(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.zap")

	sink, err := CreateSink(out, 0o644, false, nil)
	require.NoError(t, err)
	_, err = sink.Write([]byte("partial"))
	require.NoError(t, err)
	sink.Abort()

	assert.Empty(t, listDir(t, dir))
}

func TestCreateSink_Existing(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.zap")
	require.NoError(t, os.WriteFile(out, []byte("old"), 0o644))

	_, err := CreateSink(out, 0o644, false, nil)
	assert.ErrorIs(t, err, ErrOutputExists)

	sink, err := CreateSink(out, 0o644, true, nil)
	require.NoError(t, err)
	_, err = sink.Write([]byte("new"))
	require.NoError(t, err)
	require.NoError(t, sink.Commit())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	src, err := OpenSource(out)
	require.NoError(t, err)
	defer src.Close()

	_, err = CreateSink(out, 0o644, true, src)
	assert.ErrorIs(t, err, ErrSameFile)
}

func TestOpenSource(t *testing.T) {
	dir := t.TempDir()

	_, err := OpenSource(filepath.Join(dir, "missing"))
	assert.Error(t, err)

	_, err = OpenSource(dir)
	assert.Error(t, err)

	_, err = CreateSink(dir, 0o644, true, nil)
	assert.Error(t, err)
}

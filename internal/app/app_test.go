package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	huffman "github.com/chronos-tachyon/huffzap"
	"github.com/chronos-tachyon/huffzap/internal/config"
)

func makeConfig(t *testing.T, mode config.Mode, args ...string) *config.Config {
	t.Helper()
	cfg, err := config.NewConfig(mode, args)
	require.NoError(t, err)
	return cfg
}

func TestRun_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "input.txt")
	zapped := filepath.Join(dir, "input.zap")
	restored := filepath.Join(dir, "restored.txt")

	original := "Round and round the rugged rock\nthe ragged rascal ran.\n"
	require.NoError(t, os.WriteFile(in, []byte(original), 0o644))

	require.NoError(t, Run(makeConfig(t, config.Compress, in, zapped)))
	require.NoError(t, Run(makeConfig(t, config.Decompress, zapped, restored)))

	data, err := os.ReadFile(restored)
	require.NoError(t, err)
	require.Equal(t, original, string(data))

	// refuses to clobber without --force
	require.ErrorContains(t, Run(makeConfig(t, config.Decompress, zapped, restored)), "already exists")
	require.NoError(t, Run(makeConfig(t, config.Decompress, "-f", "-d", zapped, restored)))
}

func TestRun_Binary(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "input.bin")
	zapped := filepath.Join(dir, "input.zap")
	restored := filepath.Join(dir, "restored.bin")

	original := []byte{0x00, 0xff, 0x80, 0x80, 0x7f, 0x00}
	require.NoError(t, os.WriteFile(in, original, 0o644))

	err := Run(makeConfig(t, config.Compress, in, zapped))
	require.ErrorIs(t, err, huffman.ErrUnsupportedSymbol)
	_, statErr := os.Stat(zapped)
	require.True(t, os.IsNotExist(statErr), "failed run must not leave output behind")

	require.NoError(t, Run(makeConfig(t, config.Compress, "--binary", in, zapped)))
	require.NoError(t, Run(makeConfig(t, config.Decompress, zapped, restored)))

	data, err := os.ReadFile(restored)
	require.NoError(t, err)
	require.Equal(t, original, data)
}

func TestRun_Truncated(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "input.txt")
	zapped := filepath.Join(dir, "input.zap")
	restored := filepath.Join(dir, "restored.txt")

	require.NoError(t, os.WriteFile(in, []byte("AAAAABBBCC"), 0o644))
	require.NoError(t, Run(makeConfig(t, config.Compress, in, zapped)))

	data, err := os.ReadFile(zapped)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(zapped, data[:len(data)-1], 0o644))

	err = Run(makeConfig(t, config.Decompress, zapped, restored))
	require.ErrorIs(t, err, huffman.ErrTruncatedInput)
	_, statErr := os.Stat(restored)
	require.True(t, os.IsNotExist(statErr))
}

func TestRun_EmptyInput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(in, nil, 0o644))

	err := Run(makeConfig(t, config.Compress, in, filepath.Join(dir, "empty.zap")))
	require.ErrorIs(t, err, huffman.ErrEmptyInput)
}

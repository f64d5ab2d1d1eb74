package utils

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

var payload = []byte{0x00, 0xC3, 0x50, 0x01, 0xCE, 0xED, 0x66, 0x66}

func TestBytes(t *testing.T) {
	assert.Equal(t, uint16(0x1234), BytesToUint16(0x12, 0x34))

	hi, lo := Uint16ToBytes(0xBEEF)
	assert.Equal(t, uint8(0xBE), hi)
	assert.Equal(t, uint8(0xEF), lo)
}

func TestHexDump(t *testing.T) {
	b := make([]byte, 18)
	for i := range b {
		b[i] = uint8(i)
	}

	assert.Equal(t,
		"00 01 02 03 04 05 06 07 08 09 0A 0B 0C 0D 0E 0F\n  10 11",
		HexDump(b, "  "),
	)
	assert.Equal(t, "", HexDump(nil, ""))
}

func TestDecompress(t *testing.T) {
	t.Run("raw", func(t *testing.T) {
		out, err := Decompress(".gb", payload)
		require.NoError(t, err)
		assert.Equal(t, payload, out)
	})
	t.Run("gzip", func(t *testing.T) {
		var buf bytes.Buffer
		w := gzip.NewWriter(&buf)
		_, err := w.Write(payload)
		require.NoError(t, err)
		require.NoError(t, w.Close())

		out, err := Decompress(".gz", buf.Bytes())
		require.NoError(t, err)
		assert.Equal(t, payload, out)
	})
	t.Run("xz", func(t *testing.T) {
		var buf bytes.Buffer
		w, err := xz.NewWriter(&buf)
		require.NoError(t, err)
		_, err = w.Write(payload)
		require.NoError(t, err)
		require.NoError(t, w.Close())

		out, err := Decompress(".XZ", buf.Bytes())
		require.NoError(t, err)
		assert.Equal(t, payload, out)
	})
	t.Run("zip", func(t *testing.T) {
		var buf bytes.Buffer
		w := zip.NewWriter(&buf)
		f, err := w.Create("game.gb")
		require.NoError(t, err)
		_, err = f.Write(payload)
		require.NoError(t, err)
		require.NoError(t, w.Close())

		out, err := Decompress(".zip", buf.Bytes())
		require.NoError(t, err)
		assert.Equal(t, payload, out)
	})
	t.Run("7z", func(t *testing.T) {
		// testdata/game.7z stores game.gb uncompressed
		data, err := os.ReadFile(filepath.Join("testdata", "game.7z"))
		require.NoError(t, err)

		out, err := Decompress(".7z", data)
		require.NoError(t, err)
		assert.Equal(t, payload, out)
	})
	t.Run("corrupt 7z", func(t *testing.T) {
		_, err := Decompress(".7z", payload)
		assert.Error(t, err)
	})
	t.Run("empty zip", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, zip.NewWriter(&buf).Close())

		_, err := Decompress(".zip", buf.Bytes())
		assert.ErrorIs(t, err, ErrEmptyArchive)
	})
	t.Run("corrupt gzip", func(t *testing.T) {
		_, err := Decompress(".gz", payload)
		assert.Error(t, err)
	})
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.gb")
	require.NoError(t, os.WriteFile(path, payload, 0o644))

	out, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, payload, out)

	out, err = LoadFile(filepath.Join("testdata", "game.7z"))
	require.NoError(t, err)
	assert.Equal(t, payload, out)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.gb"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

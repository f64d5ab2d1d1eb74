package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/dmgcore/internal/cpu"
	"github.com/thelolagemann/dmgcore/internal/mmu"
)

func faultingMMU(t *testing.T) (*mmu.MMU, *cpu.Fault) {
	t.Helper()
	bus := mmu.NewMMU()
	rom := make([]byte, 0x4000)
	rom[0x100] = 0xDD
	c := cpu.NewCPU(bus)

	err := c.Run(context.Background(), rom)
	fault := &cpu.Fault{}
	require.ErrorAs(t, err, &fault)
	return bus, fault
}

func TestWriteDump(t *testing.T) {
	bus, fault := faultingMMU(t)
	dir := t.TempDir()

	t.Run("raw", func(t *testing.T) {
		path := filepath.Join(dir, "dump.bin")
		require.NoError(t, writeDump(path, bus, fault))

		b, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Len(t, b, 0x10000)
		assert.Equal(t, uint8(0xDD), b[0x100])
	})
	t.Run("brotli", func(t *testing.T) {
		path := filepath.Join(dir, "dump.bin.br")
		require.NoError(t, writeDump(path, bus, fault))

		f, err := os.Open(path)
		require.NoError(t, err)
		defer f.Close()

		var buf bytes.Buffer
		_, err = buf.ReadFrom(brotli.NewReader(f))
		require.NoError(t, err)
		assert.Equal(t, fault.Dump, buf.Bytes())
	})
	t.Run("text", func(t *testing.T) {
		path := filepath.Join(dir, "dump.txt")
		require.NoError(t, writeDump(path, bus, fault))

		b, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(b), "# ROM0 (0000-3FFF)\n")
		assert.Contains(t, string(b), "0100: DD 00")
	})
}

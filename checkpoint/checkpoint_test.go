package checkpoint

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gopic/types"
)

func testIDs(nrank, nper int) (ids []types.ParticleID) {
	for cpu := 0; cpu < nrank; cpu++ {
		for id := 0; id < nper; id++ {
			ids = append(ids, types.NewParticleID(id*7+1, cpu))
		}
	}
	ids = append(ids, types.LocalIDToGlobal(0xFFFFFFFF, 0xFFFFFFFF))
	return
}

func TestParticleIDColumn(t *testing.T) {
	{ // Round trip
		var (
			buf bytes.Buffer
			ids = testIDs(4, 1000)
		)
		require.NoError(t, WriteParticleIDs(&buf, ids))
		// Far smaller than the raw column
		assert.Less(t, buf.Len(), 8*len(ids)/2)
		var magic uint32
		require.NoError(t, binary.Read(bytes.NewReader(buf.Bytes()), binary.LittleEndian, &magic))
		assert.Equal(t, IDMagic, magic)
		got, err := ReadParticleIDs(&buf)
		require.NoError(t, err)
		assert.Equal(t, ids, got)
	}
	{ // Empty column
		var buf bytes.Buffer
		require.NoError(t, WriteParticleIDs(&buf, nil))
		assert.Equal(t, 12, buf.Len())
		got, err := ReadParticleIDs(&buf)
		require.NoError(t, err)
		assert.Empty(t, got)
	}
	{ // Corrupt input
		var buf bytes.Buffer
		require.NoError(t, WriteParticleIDs(&buf, testIDs(2, 10)))
		data := buf.Bytes()
		_, err := ReadParticleIDs(bytes.NewReader(data[:len(data)-3]))
		assert.Error(t, err)
		bad := append([]byte{}, data...)
		bad[0] ^= 0xFF
		_, err = ReadParticleIDs(bytes.NewReader(bad))
		assert.Error(t, err)
		// Count disagreeing with the blocks
		bad = append([]byte{}, data...)
		binary.LittleEndian.PutUint64(bad[4:12], 11)
		_, err = ReadParticleIDs(bytes.NewReader(bad))
		assert.Error(t, err)
	}
	{ // Huge counts and block lengths in a header are errors, not allocations
		header := func(count, nBuf int64) []byte {
			var buf bytes.Buffer
			require.NoError(t, binary.Write(&buf, binary.LittleEndian, IDMagic))
			require.NoError(t, binary.Write(&buf, binary.LittleEndian, count))
			if nBuf != 0 {
				require.NoError(t, binary.Write(&buf, binary.LittleEndian, nBuf))
			}
			return buf.Bytes()
		}
		for _, hdr := range [][]byte{
			header(1<<60, 0),
			header(1<<60, 1<<59),
			header(10, 1<<40),
			header(math.MaxInt64, 16),
		} {
			var (
				ids []types.ParticleID
				err error
			)
			assert.NotPanics(t, func() { ids, err = ReadParticleIDs(bytes.NewReader(hdr)) })
			assert.Error(t, err)
			assert.Nil(t, ids)
		}
	}
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	{ // Raw bytes
		fn := filepath.Join(dir, "raw.bin")
		require.NoError(t, WriteBinaryDataOnFile(fn, []byte{1, 2, 3}))
		require.NoError(t, WriteBinaryDataOnFile(fn, []byte{4, 5}))
		data, err := os.ReadFile(fn)
		require.NoError(t, err)
		assert.Equal(t, []byte{4, 5}, data)
		assert.Error(t, WriteBinaryDataOnFile(filepath.Join(dir, "missing", "raw.bin"), nil))
	}
	{ // Id column
		var (
			fn  = filepath.Join(dir, "ids.gpid")
			ids = testIDs(3, 50)
		)
		require.NoError(t, WriteParticleIDFile(fn, ids))
		got, err := ReadParticleIDFile(fn)
		require.NoError(t, err)
		assert.Equal(t, ids, got)
		_, err = ReadParticleIDFile(filepath.Join(dir, "nope"))
		assert.Error(t, err)
	}
}

package checkpoint

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/DataDog/zstd"

	"github.com/notargets/gopic/types"
)

// IDMagic marks the start of a particle id column, "gpid" read little endian
const IDMagic uint32 = 0x67706964

/*
WriteParticleIDs writes a column of global particle ids:

	magic  uint32
	count  int64
	8 x { length int64, zstd block }

Block b holds byte b (little endian) of every id. The high bytes carry the
creating rank and compress to almost nothing. An empty column has no blocks.
*/
func WriteParticleIDs(w io.Writer, ids []types.ParticleID) (err error) {
	if err = binary.Write(w, binary.LittleEndian, IDMagic); err != nil {
		return
	}
	if err = binary.Write(w, binary.LittleEndian, int64(len(ids))); err != nil {
		return
	}
	if len(ids) == 0 {
		return
	}
	var (
		col = make([]byte, len(ids))
		buf []byte
	)
	for b := 0; b < 8; b++ {
		for i, id := range ids {
			col[i] = byte(uint64(id) >> (8 * uint(b)))
		}
		if buf, err = zstd.CompressLevel(buf, col, 1); err != nil {
			return
		}
		if err = binary.Write(w, binary.LittleEndian, int64(len(buf))); err != nil {
			return
		}
		if _, err = w.Write(buf); err != nil {
			return
		}
	}
	return
}

// ReadParticleIDs reads a column written by WriteParticleIDs
func ReadParticleIDs(r io.Reader) (ids []types.ParticleID, err error) {
	var (
		magic uint32
		count int64
	)
	if err = binary.Read(r, binary.LittleEndian, &magic); err != nil {
		return
	}
	if magic != IDMagic {
		err = fmt.Errorf("not a particle id column, magic is %#x", magic)
		return
	}
	if err = binary.Read(r, binary.LittleEndian, &count); err != nil {
		return
	}
	if count < 0 {
		err = fmt.Errorf("negative particle count %d", count)
		return
	}
	if count == 0 {
		return []types.ParticleID{}, nil
	}
	var (
		block, col bytes.Buffer
		raw        []uint64
		bound      = int64(zstd.CompressBound(int(count)))
	)
	for b := 0; b < 8; b++ {
		var nBuf int64
		if err = binary.Read(r, binary.LittleEndian, &nBuf); err != nil {
			return nil, fmt.Errorf("reading block %d: %w", b, err)
		}
		if nBuf < 0 || nBuf > bound {
			return nil, fmt.Errorf("length %d of block %d is outside [0, %d] for %d ids", nBuf, b, bound, count)
		}
		// Buffers grow with the bytes actually read, not the header
		block.Reset()
		if _, err = io.CopyN(&block, r, nBuf); err != nil {
			return nil, fmt.Errorf("reading block %d: %w", b, err)
		}
		// Decompressed output is capped at count+1 bytes
		col.Reset()
		zr := zstd.NewReader(&block)
		_, err = io.Copy(&col, io.LimitReader(zr, count+1))
		zr.Close()
		if err != nil {
			return nil, fmt.Errorf("decompressing block %d: %w", b, err)
		}
		if int64(col.Len()) != count {
			return nil, fmt.Errorf("block %d holds %d values, expected %d", b, col.Len(), count)
		}
		if raw == nil {
			raw = make([]uint64, count)
		}
		for i, v := range col.Bytes() {
			raw[i] |= uint64(v) << (8 * uint(b))
		}
	}
	ids = make([]types.ParticleID, count)
	for i, v := range raw {
		ids[i] = types.ParticleID(v)
	}
	return
}

package jmpfile

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/BreakOnExecute/jmpreader/pkg/jmpio"
	"github.com/stretchr/testify/require"
)

// builder accumulates little-endian binary fields, mirroring how the real
// format is assembled field by field.
type builder struct {
	buf bytes.Buffer
}

func (b *builder) u8(v uint8)  { b.buf.WriteByte(v) }
func (b *builder) i8(v int8)   { b.buf.WriteByte(byte(v)) }
func (b *builder) zeros(n int) { b.buf.Write(make([]byte, n)) }
func (b *builder) raw(p []byte) { b.buf.Write(p) }

func (b *builder) u16(v uint16) {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	b.buf.Write(tmp[:])
}

func (b *builder) i16(v int16) { b.u16(uint16(v)) }

func (b *builder) u32(v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	b.buf.Write(tmp[:])
}

func (b *builder) i32(v int32) { b.u32(uint32(v)) }

func (b *builder) f64(v float64) {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], math.Float64bits(v))
	b.buf.Write(tmp[:])
}

func (b *builder) bytes() []byte { return b.buf.Bytes() }

// taggedBlock writes a 2-byte tag, a u32 length, and the payload.
func (b *builder) taggedBlock(tag uint16, payload []byte) {
	b.u16(tag)
	b.u32(uint32(len(payload)))
	b.raw(payload)
}

// columnName writes the length-prefixed, 31-padded (or unpadded, for
// nameLen >= 32) initial name field.
func (b *builder) columnName(name string) {
	n := len(name)
	b.u8(uint8(n))
	b.raw([]byte(name))

	if n < 32 {
		b.zeros(31 - n)
	}
}

// header_ builds the fixed + tagged prefix of a file, stopping just after
// the 2-byte offset-width field (i.e. everything before the offset
// table).
func header_(rowCount, colCount uint32, encoding string) []byte {
	b := &builder{}
	b.raw([]byte{0xFF, 0xFF, 0x00, 0x00, 0x03, 0x00, 0x00, 0x00})
	b.u32(rowCount)
	b.u32(colCount)
	b.zeros(12)
	b.taggedBlock(0x0006, []byte(encoding))
	b.taggedBlock(0x0007, []byte{})
	b.taggedBlock(0xFFFF, []byte{}) // immediately terminate the pre-data loop
	b.u16(4)                        // offset width field (always treated as u32)

	return b.bytes()
}

// assembleFile lays out a complete file: header prefix, then the offset
// table, then each column block contiguously in order.
func assembleFile(t *testing.T, rowCount uint32, encoding string, colBlocks [][]byte) []byte {
	t.Helper()

	prefix := header_(rowCount, uint32(len(colBlocks)), encoding)
	base := uint32(len(prefix)) + 4*uint32(len(colBlocks))

	offsets := make([]uint32, len(colBlocks))
	offset := base

	for i, block := range colBlocks {
		offsets[i] = offset
		offset += uint32(len(block))
	}

	b := &builder{}
	b.raw(prefix)

	for _, off := range offsets {
		b.u32(off)
	}

	for _, block := range colBlocks {
		b.raw(block)
	}

	return b.bytes()
}

// writeFile writes data to a temp file and returns its path.
func writeFile(t *testing.T, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fixture.jmp")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	return path
}

// openSource writes data to a temp file and opens it as a jmpio.Source,
// registering cleanup.
func openSource(t *testing.T, data []byte) *jmpio.Source {
	t.Helper()

	src, err := jmpio.Open(writeFile(t, data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = src.Close() })

	return src
}

// descriptorBlock builds one column descriptor (fixed fields + attribute
// stream) followed immediately by its row-value bytes, as it appears
// contiguously in a real file.
func descriptorBlock(name string, dataType, formatType byte, bytesPerRow uint16, attrs []byte, rowData []byte) []byte {
	b := &builder{}
	b.columnName(name)
	b.u8(dataType)
	b.u8(0) // modeling type
	b.u8(0) // display width
	b.u8(formatType)
	b.u16(bytesPerRow)
	b.zeros(2) // column lock

	numAttrRecords := 0
	if len(attrs) > 0 {
		numAttrRecords = 1 // fixtures only ever carry at most one attribute record
	}

	b.u16(uint16(numAttrRecords + 1))
	b.zeros(12)
	b.raw(attrs)
	b.raw(rowData)

	return b.bytes()
}

package jmpfile

import (
	"bytes"

	"github.com/BreakOnExecute/jmpreader/pkg/jmpio"
)

// magic is the fixed 8-byte prefix identifying a JMP 11 table file.
var magic = [8]byte{0xFF, 0xFF, 0x00, 0x00, 0x03, 0x00, 0x00, 0x00}

// endOfPreData is the tag that terminates the pre-data tag loop.
const endOfPreData = 0xFFFF

// header is the result of walking the fixed and tagged prefix of the file,
// up to and including the column offset table.
type header struct {
	rowCount    uint32
	columnCount uint32
	encoding    string
	offsets     []uint32
}

// readHeader validates the magic prefix, reads the row/column counts and
// declared text encoding, skips the pre-data tag sections, and reads the
// absolute column-descriptor offsets. src must be positioned at offset 0.
func readHeader(src *jmpio.Source) (header, error) {
	var h header

	magicBytes, err := src.ReadBytes(8)
	if err != nil {
		return h, err
	}

	if !bytes.Equal(magicBytes, magic[:]) {
		return h, &BadMagicError{Got: append([]byte(nil), magicBytes...)}
	}

	if h.rowCount, err = src.ReadU32(); err != nil {
		return h, err
	}

	if h.columnCount, err = src.ReadU32(); err != nil {
		return h, err
	}

	// 12 bytes of unspecified metadata.
	if err = src.Skip(12); err != nil {
		return h, err
	}

	if h.encoding, err = readTaggedString(src, 0x0006); err != nil {
		return h, err
	}

	// File timestamp block: same tagged-block shape, discarded.
	if _, err = readTaggedBlock(src, 0x0007); err != nil {
		return h, err
	}

	if err = skipPreDataSections(src); err != nil {
		return h, err
	}

	// Declared width of each offset; always treated as u32.
	if err = src.Skip(2); err != nil {
		return h, err
	}

	h.offsets = make([]uint32, h.columnCount)
	for i := range h.offsets {
		if h.offsets[i], err = src.ReadU32(); err != nil {
			return h, err
		}
	}

	return h, nil
}

// readTaggedBlock reads a 2-byte tag, a u32 length, and that many payload
// bytes, verifying the tag matches expectedTag. It returns the payload.
func readTaggedBlock(src *jmpio.Source, expectedTag uint16) ([]byte, error) {
	pos := src.Pos()

	tag, err := src.ReadU16()
	if err != nil {
		return nil, err
	}

	if tag != expectedTag {
		return nil, &MalformedHeaderError{
			Position: pos,
			Detail:   "unexpected tag " + jmpio.DumpHex([]byte{byte(tag), byte(tag >> 8)}, 16) + " in header block",
		}
	}

	length, err := src.ReadU32()
	if err != nil {
		return nil, err
	}

	return src.ReadBytes(uint(length))
}

// readTaggedString reads a tagged block and decodes its payload as UTF-8.
func readTaggedString(src *jmpio.Source, expectedTag uint16) (string, error) {
	payload, err := readTaggedBlock(src, expectedTag)
	if err != nil {
		return "", err
	}

	return string(payload), nil
}

// skipPreDataSections repeatedly reads a 2-byte tag, a u32 length, and
// skips length bytes, stopping once the terminating tag is read (whose
// length and payload are still consumed).
func skipPreDataSections(src *jmpio.Source) error {
	for {
		tag, err := src.ReadU16()
		if err != nil {
			return err
		}

		length, err := src.ReadU32()
		if err != nil {
			return err
		}

		if err := src.Skip(uint(length)); err != nil {
			return err
		}

		if tag == endOfPreData {
			return nil
		}
	}
}

package jmpfile

import (
	"bytes"

	"github.com/BreakOnExecute/jmpreader/pkg/jmpio"
)

// Data type codes, per the JMP 11 column descriptor.
const (
	dataTypeNumeric   byte = 0x01
	dataTypeString    byte = 0x02
	dataTypeRowState  byte = 0x03
	dataTypeLargeText byte = 0x04
	dataTypeInt32     byte = 0xFC
	dataTypeInt16     byte = 0xFE
	dataTypeInt8      byte = 0xFF
)

// Attribute tags in a column descriptor's attribute stream.
const (
	attrNotes           uint16 = 0x01
	attrListCheck       uint16 = 0x04
	attrRangeCheck      uint16 = 0x05
	attrHiddenExclude   uint16 = 0x06
	attrFormula         uint16 = 0x07
	attrListCheckBytes  uint16 = 0x08
	attrOpaque1         uint16 = 0x09
	attrOpaque2         uint16 = 0x0B
	attrOpaque3         uint16 = 0x0C
	attrLongNameOverrid uint16 = 0x0F
	attrRowStatePayload uint16 = 0x10
	attrOpaque4         uint16 = 0x13
)

// listCheckDict is a list-check (dictionary-compressed) column's ordered
// value table, indexed by the u8 row bytes. Exactly one of numeric or
// text entries is populated, per the owning column's data type.
type listCheckDict struct {
	isNumeric bool
	floats    []float64
	texts     []string
}

func (d *listCheckDict) len() int {
	if d.isNumeric {
		return len(d.floats)
	}

	return len(d.texts)
}

// descriptor is the transient per-column metadata needed to decode that
// column's row values. It does not outlive a single column decode.
type descriptor struct {
	name        string
	dataType    byte
	formatType  byte
	bytesPerRow uint16
	isListCheck bool
	dict        listCheckDict
}

// readDescriptor seeks to offset and parses one column descriptor,
// including its variable-length attribute stream.
func readDescriptor(src *jmpio.Source, offset uint32, columnIndex int) (descriptor, error) {
	var d descriptor

	if err := src.Seek(offset); err != nil {
		return d, err
	}

	nameLen, err := src.ReadU8()
	if err != nil {
		return d, err
	}

	nameBytes, err := src.ReadBytes(uint(nameLen))
	if err != nil {
		return d, err
	}

	d.name = string(nameBytes)

	if nameLen < 32 {
		if err := src.Skip(uint(31 - nameLen)); err != nil {
			return d, err
		}
	}

	if d.dataType, err = src.ReadU8(); err != nil {
		return d, err
	}
	// Modeling type: unused.
	if _, err = src.ReadU8(); err != nil {
		return d, err
	}
	// Display width: unused.
	if _, err = src.ReadU8(); err != nil {
		return d, err
	}

	if d.formatType, err = src.ReadU8(); err != nil {
		return d, err
	}

	if d.bytesPerRow, err = src.ReadU16(); err != nil {
		return d, err
	}
	// Column lock flag: opaque skip, width unreliable (see SPEC_FULL.md).
	if err = src.Skip(2); err != nil {
		return d, err
	}

	attrCount, err := src.ReadU16()
	if err != nil {
		return d, err
	}
	// 12 bytes of opaque fixed header tail.
	if err = src.Skip(12); err != nil {
		return d, err
	}

	iterations := 0
	if attrCount > 0 {
		iterations = int(attrCount) - 1
	}

	for i := 0; i < iterations; i++ {
		if err := readAttribute(src, &d, columnIndex); err != nil {
			return d, err
		}
	}

	return d, nil
}

// readAttribute reads and dispatches one tagged attribute record, mutating
// d in place for the attributes that affect decoding (list-check
// dictionary, long name override).
func readAttribute(src *jmpio.Source, d *descriptor, columnIndex int) error {
	pos := src.Pos()

	tag, err := src.ReadU16()
	if err != nil {
		return err
	}

	switch tag {
	case attrNotes, attrRangeCheck, attrHiddenExclude, attrFormula,
		attrOpaque1, attrOpaque2, attrOpaque3, attrOpaque4, attrRowStatePayload:
		length, err := src.ReadU32()
		if err != nil {
			return err
		}

		return src.Skip(uint(length))
	case attrListCheckBytes:
		n, err := src.ReadU32()
		if err != nil {
			return err
		}

		return src.Skip(uint(n))
	case attrListCheck:
		return readListCheckDict(src, d)
	case attrLongNameOverrid:
		length, err := src.ReadU32()
		if err != nil {
			return err
		}

		nameBytes, err := src.ReadBytes(uint(length))
		if err != nil {
			return err
		}

		d.name = string(nameBytes)

		return nil
	default:
		return &UnknownAttributeError{Tag: tag, ColumnIndex: columnIndex, Offset: pos}
	}
}

// readListCheckDict parses attribute 0x04: a dictionary of K entries, each
// recordLen bytes wide, either all f64 (numeric columns) or all strings
// (text columns).
func readListCheckDict(src *jmpio.Source, d *descriptor) error {
	fieldLen, err := src.ReadU32()
	if err != nil {
		return err
	}

	k, err := src.ReadU16()
	if err != nil {
		return err
	}

	d.isListCheck = true

	if k == 0 {
		return nil
	}

	recordLen := (fieldLen - 2) / uint32(k)

	if d.dataType == dataTypeNumeric {
		d.dict.isNumeric = true
		d.dict.floats = make([]float64, k)

		for i := range d.dict.floats {
			if d.dict.floats[i], err = src.ReadF64(); err != nil {
				return err
			}
		}

		return nil
	}

	d.dict.texts = make([]string, k)

	for i := range d.dict.texts {
		if recordLen-1 < 256 {
			sLen, err := src.ReadU8()
			if err != nil {
				return err
			}

			strBytes, err := src.ReadBytes(uint(sLen))
			if err != nil {
				return err
			}

			d.dict.texts[i] = string(strBytes)

			if err := src.Skip(uint(recordLen - uint32(sLen) - 1)); err != nil {
				return err
			}
		} else {
			// Legacy producer bug: the length byte here is unreliable, so
			// the record is parsed as NUL-terminated within its fixed slot.
			if _, err := src.ReadU8(); err != nil {
				return err
			}

			raw, err := src.ReadBytes(uint(recordLen - 1))
			if err != nil {
				return err
			}

			if idx := bytes.IndexByte(raw, 0); idx >= 0 {
				d.dict.texts[i] = string(raw[:idx])
			} else {
				d.dict.texts[i] = string(raw)
			}
		}
	}

	return nil
}

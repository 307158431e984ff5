package jmpfile

import (
	"bytes"

	"github.com/BreakOnExecute/jmpreader/pkg/jmpio"
	"github.com/BreakOnExecute/jmpreader/pkg/jmptable"
)

// Integer sentinel values denoting Missing, keyed by the type's byte width.
const (
	sentinelInt8  int8  = -127
	sentinelInt16 int16 = -32767
	sentinelInt32 int32 = -2147483647
)

// listCheckMissing is the dictionary-index sentinel for Missing in a
// list-check column, regardless of dictionary length.
const listCheckMissing uint8 = 0xFF

// shortStringMax is the boundary between the short (length-prefixed) and
// long (NUL-terminated) string row encodings.
const shortStringMax = 0x0100

// decodeColumn reads exactly rowCount rows of raw values per d's declared
// width and type, applying missing-value sentinels, resolving list-check
// indices, and converting temporal doubles.
func decodeColumn(src *jmpio.Source, d descriptor, rowCount uint32, columnIndex int) (jmptable.Column, error) {
	switch d.dataType {
	case dataTypeNumeric:
		return decodeNumericColumn(src, d, rowCount)
	case dataTypeString, dataTypeLargeText:
		return decodeStringColumn(src, d, rowCount)
	case dataTypeRowState:
		return decodeRowStateColumn(src, d, rowCount)
	case dataTypeInt8:
		return decodeInt8Column(src, d, rowCount)
	case dataTypeInt16:
		return decodeInt16Column(src, d, rowCount)
	case dataTypeInt32:
		return decodeInt32Column(src, d, rowCount)
	default:
		return jmptable.Column{}, &UnsupportedDataTypeError{Code: d.dataType, ColumnIndex: columnIndex}
	}
}

func decodeNumericColumn(src *jmpio.Source, d descriptor, rowCount uint32) (jmptable.Column, error) {
	kind := classifyFormat(d.formatType)
	col := jmptable.Column{Name: d.name, Type: kind.columnType(), Cells: make([]jmptable.Cell, rowCount)}

	for i := range col.Cells {
		var (
			value   float64
			missing bool
			err     error
		)

		if d.isListCheck {
			idx, rerr := src.ReadU8()
			if rerr != nil {
				return col, rerr
			}

			if idx == listCheckMissing {
				missing = true
			} else {
				value = d.dict.floats[idx]
			}
		} else {
			value, err = src.ReadF64()
			if err != nil {
				return col, err
			}
		}

		switch {
		case missing:
			col.Cells[i] = jmptable.MissingCell()
		case kind != nonTemporal:
			col.Cells[i] = mapTemporal(kind, value)
		default:
			col.Cells[i] = jmptable.NumberCell(value)
		}
	}

	return col, nil
}

func decodeStringColumn(src *jmpio.Source, d descriptor, rowCount uint32) (jmptable.Column, error) {
	col := jmptable.Column{Name: d.name, Type: jmptable.String, Cells: make([]jmptable.Cell, rowCount)}

	for i := range col.Cells {
		if d.isListCheck {
			idx, err := src.ReadU8()
			if err != nil {
				return col, err
			}

			if idx == listCheckMissing {
				col.Cells[i] = jmptable.MissingCell()
			} else {
				col.Cells[i] = jmptable.StringCell(d.dict.texts[idx])
			}

			continue
		}

		if d.bytesPerRow <= shortStringMax {
			sLen, err := src.ReadU8()
			if err != nil {
				return col, err
			}

			strBytes, err := src.ReadBytes(uint(sLen))
			if err != nil {
				return col, err
			}

			col.Cells[i] = jmptable.StringCell(string(strBytes))

			if err := src.Skip(uint(d.bytesPerRow) - uint(sLen) - 1); err != nil {
				return col, err
			}
		} else {
			raw, err := src.ReadBytes(uint(d.bytesPerRow))
			if err != nil {
				return col, err
			}

			if idx := bytes.IndexByte(raw, 0); idx >= 0 {
				col.Cells[i] = jmptable.StringCell(string(raw[:idx]))
			} else {
				col.Cells[i] = jmptable.StringCell(string(raw))
			}
		}
	}

	return col, nil
}

func decodeRowStateColumn(src *jmpio.Source, d descriptor, rowCount uint32) (jmptable.Column, error) {
	col := jmptable.Column{Name: d.name, Type: jmptable.RowState, Cells: make([]jmptable.Cell, rowCount)}

	for i := range col.Cells {
		v, err := src.ReadU16()
		if err != nil {
			return col, err
		}

		col.Cells[i] = jmptable.RowStateCell(v)
	}

	return col, nil
}

func decodeInt8Column(src *jmpio.Source, d descriptor, rowCount uint32) (jmptable.Column, error) {
	col := jmptable.Column{Name: d.name, Type: jmptable.Int8, Cells: make([]jmptable.Cell, rowCount)}

	for i := range col.Cells {
		v, err := src.ReadI8()
		if err != nil {
			return col, err
		}

		if v == sentinelInt8 {
			col.Cells[i] = jmptable.MissingCell()
		} else {
			col.Cells[i] = jmptable.IntCell(int32(v))
		}
	}

	return col, nil
}

func decodeInt16Column(src *jmpio.Source, d descriptor, rowCount uint32) (jmptable.Column, error) {
	col := jmptable.Column{Name: d.name, Type: jmptable.Int16, Cells: make([]jmptable.Cell, rowCount)}

	for i := range col.Cells {
		v, err := src.ReadI16()
		if err != nil {
			return col, err
		}

		if v == sentinelInt16 {
			col.Cells[i] = jmptable.MissingCell()
		} else {
			col.Cells[i] = jmptable.IntCell(int32(v))
		}
	}

	return col, nil
}

func decodeInt32Column(src *jmpio.Source, d descriptor, rowCount uint32) (jmptable.Column, error) {
	col := jmptable.Column{Name: d.name, Type: jmptable.Int32, Cells: make([]jmptable.Cell, rowCount)}

	for i := range col.Cells {
		v, err := src.ReadI32()
		if err != nil {
			return col, err
		}

		if v == sentinelInt32 {
			col.Cells[i] = jmptable.MissingCell()
		} else {
			col.Cells[i] = jmptable.IntCell(v)
		}
	}

	return col, nil
}

package jmpfile

import (
	"github.com/BreakOnExecute/jmpreader/pkg/jmpio"
	"github.com/BreakOnExecute/jmpreader/pkg/jmptable"
)

// Status codes returned by Read, matching the library's external
// interface: 0 on success, -1 for a header-level failure, -2 for a
// column-level failure. No partial table is ever returned on failure.
const (
	StatusOK          = 0
	StatusHeaderError = -1
	StatusColumnError = -2
)

// Stats summarizes a successful decode without requiring the caller to
// re-walk the resulting table.
type Stats struct {
	RowCount         int
	ColumnCount      int
	ListCheckColumns int
	TemporalColumns  int
}

// Result is the outcome of a single Read call.
type Result struct {
	Status  int
	Message string
	Table   *jmptable.Table
	Stats   Stats
}

// Read decodes the JMP 11 table file at path into an in-memory Table. The
// open file handle is released on every exit path, including error.
func Read(path string) Result {
	src, err := jmpio.Open(path)
	if err != nil {
		return Result{Status: StatusHeaderError, Message: err.Error()}
	}
	defer src.Close()

	h, err := readHeader(src)
	if err != nil {
		return Result{Status: StatusHeaderError, Message: err.Error()}
	}

	stats := Stats{RowCount: int(h.rowCount), ColumnCount: int(h.columnCount)}
	columns := make([]jmptable.Column, h.columnCount)

	for i, offset := range h.offsets {
		d, err := readDescriptor(src, offset, i)
		if err != nil {
			return Result{Status: StatusColumnError, Message: err.Error(), Stats: stats}
		}

		if d.isListCheck {
			stats.ListCheckColumns++
		}

		if d.dataType == dataTypeNumeric && classifyFormat(d.formatType) != nonTemporal {
			stats.TemporalColumns++
		}

		col, err := decodeColumn(src, d, h.rowCount, i)
		if err != nil {
			return Result{Status: StatusColumnError, Message: err.Error(), Stats: stats}
		}

		columns[i] = col
	}

	tbl, err := jmptable.Assemble(columns, int(h.rowCount))
	if err != nil {
		return Result{Status: StatusColumnError, Message: err.Error(), Stats: stats}
	}

	return Result{Status: StatusOK, Message: "No error", Table: &tbl, Stats: stats}
}

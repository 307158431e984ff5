package jmptable

import "fmt"

// ColumnType is the logical type of a Column, independent of the on-disk
// encoding that produced it.
type ColumnType uint8

const (
	Number ColumnType = iota
	String
	RowState
	Int8
	Int16
	Int32
	Date
	Time
	DateTime
	Duration
)

// String renders the column type for diagnostics.
func (t ColumnType) String() string {
	switch t {
	case Number:
		return "Number"
	case String:
		return "String"
	case RowState:
		return "RowState"
	case Int8:
		return "Int8"
	case Int16:
		return "Int16"
	case Int32:
		return "Int32"
	case Date:
		return "Date"
	case Time:
		return "Time"
	case DateTime:
		return "DateTime"
	case Duration:
		return "Duration"
	default:
		return "Unknown"
	}
}

// Column is a named, typed, ordered sequence of cells.
type Column struct {
	Name  string
	Type  ColumnType
	Cells []Cell
}

// Len returns the number of rows in this column.
func (c *Column) Len() int { return len(c.Cells) }

// Table is an ordered sequence of equal-length columns.
type Table struct {
	Columns []Column
}

// RowCountMismatchError indicates a decoded column's length disagrees with
// the row count declared in the file header.
type RowCountMismatchError struct {
	ColumnName string
	Got        int
	Expected   int
}

func (e *RowCountMismatchError) Error() string {
	return fmt.Sprintf("row count mismatch in column %q: got %d, expected %d", e.ColumnName, e.Got, e.Expected)
}

// Assemble concatenates decoded columns, preserving their order, into a
// Table. Every column must have exactly expectedRows cells; column names
// are not deduplicated.
func Assemble(columns []Column, expectedRows int) (Table, error) {
	for _, col := range columns {
		if col.Len() != expectedRows {
			return Table{}, &RowCountMismatchError{ColumnName: col.Name, Got: col.Len(), Expected: expectedRows}
		}
	}

	return Table{Columns: columns}, nil
}

// ColumnCount returns the number of columns in the table.
func (t *Table) ColumnCount() int { return len(t.Columns) }

// RowCount returns the row count of the table, or 0 if it has no columns.
func (t *Table) RowCount() int {
	if len(t.Columns) == 0 {
		return 0
	}

	return t.Columns[0].Len()
}

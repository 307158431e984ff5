package jmpio

import "fmt"

// TruncatedInputError indicates a read ran past the end of the file.
type TruncatedInputError struct {
	Expected int
	Got      int
}

func (e *TruncatedInputError) Error() string {
	return fmt.Sprintf("truncated input: expected %d bytes, got %d", e.Expected, e.Got)
}

// BadOffsetError indicates a seek targeted a position beyond the end of the
// file.
type BadOffsetError struct {
	Offset uint32
	Length uint
}

func (e *BadOffsetError) Error() string {
	return fmt.Sprintf("bad offset: %d is beyond end of file (length %d)", e.Offset, e.Length)
}

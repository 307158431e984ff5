package jmpio

import (
	"encoding/binary"
	"math"

	pkgErrors "github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// Source is a seekable, sequential byte reader over a memory-mapped file.
// All reads are little-endian, per the JMP 11 format. A Source owns the
// open file descriptor and backing mapping for the lifetime of a single
// decode call.
type Source struct {
	fd   int
	data []byte
	pos  uint
}

// Open memory-maps path read-only and positions the cursor at offset 0.
func Open(path string) (*Source, error) {
	fd, err := unix.Open(path, unix.O_RDONLY, 0)
	if err != nil {
		return nil, pkgErrors.Wrapf(err, "failed to open file %#v", path)
	}

	var stat unix.Stat_t
	if err := unix.Fstat(fd, &stat); err != nil {
		_ = unix.Close(fd)
		return nil, pkgErrors.Wrapf(err, "failed to stat file %#v", path)
	}

	if stat.Size == 0 {
		// unix.Mmap rejects a zero-length mapping; treat an empty file as
		// an empty byte source rather than a syscall failure.
		_ = unix.Close(fd)
		return &Source{fd: -1, data: nil, pos: 0}, nil
	}

	data, err := unix.Mmap(fd, 0, int(stat.Size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		_ = unix.Close(fd)
		return nil, pkgErrors.Wrapf(err, "failed to memory map file %#v", path)
	}

	return &Source{fd: fd, data: data, pos: 0}, nil
}

// Close releases the mapping and the underlying file descriptor. Safe to
// call on an empty (zero-length) Source.
func (s *Source) Close() error {
	var err error
	if s.data != nil {
		err = unix.Munmap(s.data)
		s.data = nil
	}

	if s.fd >= 0 {
		if cerr := unix.Close(s.fd); err == nil {
			err = cerr
		}

		s.fd = -1
	}

	return err
}

// Pos returns the current absolute cursor position.
func (s *Source) Pos() uint {
	return s.pos
}

// Len returns the total size of the underlying file in bytes.
func (s *Source) Len() uint {
	return uint(len(s.data))
}

// Seek repositions the cursor to an absolute offset. Seeking exactly to
// end-of-file is permitted (a subsequent read of zero bytes succeeds); any
// offset beyond that fails with a BadOffset error.
func (s *Source) Seek(offset uint32) error {
	if uint(offset) > s.Len() {
		return &BadOffsetError{Offset: offset, Length: s.Len()}
	}

	s.pos = uint(offset)

	return nil
}

// ReadBytes advances the cursor by n and returns the bytes traversed. The
// returned slice aliases the underlying mapping and must not be retained
// past the Source's lifetime if it will be reused for writing (it never is
// in this decoder; all data read is copied into strings or scalars by the
// caller).
func (s *Source) ReadBytes(n uint) ([]byte, error) {
	if s.pos+n > s.Len() {
		return nil, &TruncatedInputError{Expected: int(n), Got: int(s.Len() - s.pos)}
	}

	b := s.data[s.pos : s.pos+n]
	s.pos += n

	return b, nil
}

// Skip advances the cursor by n bytes without returning them.
func (s *Source) Skip(n uint) error {
	_, err := s.ReadBytes(n)
	return err
}

// ReadU8 reads an unsigned 8-bit integer.
func (s *Source) ReadU8() (uint8, error) {
	b, err := s.ReadBytes(1)
	if err != nil {
		return 0, err
	}

	return b[0], nil
}

// ReadI8 reads a signed 8-bit integer.
func (s *Source) ReadI8() (int8, error) {
	v, err := s.ReadU8()
	return int8(v), err
}

// ReadU16 reads a little-endian unsigned 16-bit integer.
func (s *Source) ReadU16() (uint16, error) {
	b, err := s.ReadBytes(2)
	if err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint16(b), nil
}

// ReadI16 reads a little-endian signed 16-bit integer.
func (s *Source) ReadI16() (int16, error) {
	v, err := s.ReadU16()
	return int16(v), err
}

// ReadU32 reads a little-endian unsigned 32-bit integer.
func (s *Source) ReadU32() (uint32, error) {
	b, err := s.ReadBytes(4)
	if err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint32(b), nil
}

// ReadI32 reads a little-endian signed 32-bit integer.
func (s *Source) ReadI32() (int32, error) {
	v, err := s.ReadU32()
	return int32(v), err
}

// ReadF64 reads a little-endian IEEE-754 double.
func (s *Source) ReadF64() (float64, error) {
	b, err := s.ReadBytes(8)
	if err != nil {
		return 0, err
	}

	return math.Float64frombits(binary.LittleEndian.Uint64(b)), nil
}

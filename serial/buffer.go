// Package serial implements the big-endian cursor every wire record in
// this module is read from and written to.
package serial

import (
	"encoding/binary"
	"unicode/utf8"

	"github.com/icryptix/core/coreerrors"
)

// MaxVarLenStringBytes is the largest number a 1-byte length prefix can carry.
const MaxVarLenStringBytes = 255

// Buffer is a cursor over a contiguous byte slice. Readers advance
// readPos; writers simply append to buf, so a Buffer used purely for
// writing never needs a separate write cursor.
type Buffer struct {
	buf     []byte
	readPos int
}

// NewBuffer wraps an existing slice for reading.
func NewBuffer(data []byte) *Buffer {
	return &Buffer{buf: data}
}

// NewWriteBuffer preallocates capacity for writing size bytes.
func NewWriteBuffer(size int) *Buffer {
	return &Buffer{buf: make([]byte, 0, size)}
}

// Bytes returns everything written so far.
func (b *Buffer) Bytes() []byte {
	return b.buf
}

// Remaining returns the number of unread bytes.
func (b *Buffer) Remaining() int {
	return len(b.buf) - b.readPos
}

func (b *Buffer) requireRemaining(n int) error {
	if b.Remaining() < n {
		return coreerrors.New(coreerrors.ErrCodeTruncated, "not enough bytes remaining")
	}
	return nil
}

// WriteU8 appends a single byte.
func (b *Buffer) WriteU8(v uint8) {
	b.buf = append(b.buf, v)
}

// ReadU8 reads a single byte.
func (b *Buffer) ReadU8() (uint8, error) {
	if err := b.requireRemaining(1); err != nil {
		return 0, err
	}
	v := b.buf[b.readPos]
	b.readPos++
	return v, nil
}

// WriteU16 appends a big-endian uint16.
func (b *Buffer) WriteU16(v uint16) {
	var tmp [2]byte
	binary.BigEndian.PutUint16(tmp[:], v)
	b.buf = append(b.buf, tmp[:]...)
}

// ReadU16 reads a big-endian uint16.
func (b *Buffer) ReadU16() (uint16, error) {
	if err := b.requireRemaining(2); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(b.buf[b.readPos:])
	b.readPos += 2
	return v, nil
}

// WriteU32 appends a big-endian uint32.
func (b *Buffer) WriteU32(v uint32) {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	b.buf = append(b.buf, tmp[:]...)
}

// ReadU32 reads a big-endian uint32.
func (b *Buffer) ReadU32() (uint32, error) {
	if err := b.requireRemaining(4); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(b.buf[b.readPos:])
	b.readPos += 4
	return v, nil
}

// WriteU64 appends a big-endian uint64.
func (b *Buffer) WriteU64(v uint64) {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], v)
	b.buf = append(b.buf, tmp[:]...)
}

// ReadU64 reads a big-endian uint64.
func (b *Buffer) ReadU64() (uint64, error) {
	if err := b.requireRemaining(8); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint64(b.buf[b.readPos:])
	b.readPos += 8
	return v, nil
}

// WriteBytes appends a fixed-length raw block with no length prefix.
func (b *Buffer) WriteBytes(v []byte) {
	b.buf = append(b.buf, v...)
}

// ReadBytes reads exactly n raw bytes.
func (b *Buffer) ReadBytes(n int) ([]byte, error) {
	if err := b.requireRemaining(n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b.buf[b.readPos:b.readPos+n])
	b.readPos += n
	return out, nil
}

// WriteVarLenString appends a 1-byte length prefix followed by the UTF-8
// bytes of s. Callers are responsible for keeping len(s) <= MaxVarLenStringBytes.
func (b *Buffer) WriteVarLenString(s string) {
	raw := []byte(s)
	b.WriteU8(uint8(len(raw)))
	b.buf = append(b.buf, raw...)
}

// ReadVarLenString reads a 1-byte length N followed by N UTF-8 bytes.
func (b *Buffer) ReadVarLenString() (string, error) {
	n, err := b.ReadU8()
	if err != nil {
		return "", err
	}
	raw, err := b.ReadBytes(int(n))
	if err != nil {
		return "", err
	}
	if !utf8.Valid(raw) {
		return "", coreerrors.New(coreerrors.ErrCodeInvalidUtf8, "var-len string is not valid utf-8")
	}
	return string(raw), nil
}

// VarLenStringSize returns the on-wire size of s as a VarLenString.
func VarLenStringSize(s string) int {
	return 1 + len(s)
}

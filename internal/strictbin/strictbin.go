// Package strictbin provides the low-level primitives of the canonical
// binary encoding. Every multi-byte integer is little-endian and every
// collection is length-prefixed, so the same logical value always
// serializes to the same bytes on every platform.
package strictbin

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// DecodeError reports malformed or truncated canonical bytes.
type DecodeError struct {
	Offset int
	What   string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode error at byte %d: %s", e.Offset, e.What)
}

// Writer accumulates canonical bytes. Write methods never fail; the
// resulting buffer is retrieved with Bytes.
type Writer struct {
	buf bytes.Buffer
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer { return &Writer{} }

// Bytes returns the accumulated canonical encoding.
func (w *Writer) Bytes() []byte { return w.buf.Bytes() }

// Len returns the number of bytes written so far.
func (w *Writer) Len() int { return w.buf.Len() }

func (w *Writer) U8(v uint8)   { w.buf.WriteByte(v) }
func (w *Writer) Raw(b []byte) { w.buf.Write(b) }

func (w *Writer) Bool(v bool) {
	if v {
		w.buf.WriteByte(1)
	} else {
		w.buf.WriteByte(0)
	}
}

func (w *Writer) U16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.buf.Write(b[:])
}

// U24 writes the low 24 bits of v as three little-endian bytes.
func (w *Writer) U24(v uint32) {
	w.buf.WriteByte(byte(v))
	w.buf.WriteByte(byte(v >> 8))
	w.buf.WriteByte(byte(v >> 16))
}

func (w *Writer) U32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf.Write(b[:])
}

// TinyStr writes a string of at most 255 bytes with a one-byte length
// prefix.
func (w *Writer) TinyStr(s string) {
	if len(s) > 255 {
		panic(fmt.Sprintf("strictbin: tiny string of %d bytes", len(s)))
	}
	w.buf.WriteByte(byte(len(s)))
	w.buf.WriteString(s)
}

// Reader consumes canonical bytes produced by a Writer. All methods
// return a DecodeError on truncated input.
type Reader struct {
	data []byte
	pos  int
}

// NewReader wraps data for reading.
func NewReader(data []byte) *Reader { return &Reader{data: data} }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.data) - r.pos }

// Done fails unless the input is fully consumed.
func (r *Reader) Done() error {
	if r.pos != len(r.data) {
		return &DecodeError{Offset: r.pos, What: fmt.Sprintf("%d trailing bytes", len(r.data)-r.pos)}
	}
	return nil
}

func (r *Reader) take(n int, what string) ([]byte, error) {
	if r.Remaining() < n {
		return nil, &DecodeError{Offset: r.pos, What: "truncated " + what}
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *Reader) U8() (uint8, error) {
	b, err := r.take(1, "u8")
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Reader) Bool() (bool, error) {
	b, err := r.take(1, "bool")
	if err != nil {
		return false, err
	}
	switch b[0] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, &DecodeError{Offset: r.pos - 1, What: fmt.Sprintf("invalid boolean byte %#02x", b[0])}
	}
}

func (r *Reader) U16() (uint16, error) {
	b, err := r.take(2, "u16")
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *Reader) U24() (uint32, error) {
	b, err := r.take(3, "u24")
	if err != nil {
		return 0, err
	}
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16, nil
}

func (r *Reader) U32() (uint32, error) {
	b, err := r.take(4, "u32")
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// Raw reads exactly n bytes.
func (r *Reader) Raw(n int, what string) ([]byte, error) {
	return r.take(n, what)
}

// TinyStr reads a one-byte-length-prefixed string.
func (r *Reader) TinyStr() (string, error) {
	n, err := r.U8()
	if err != nil {
		return "", err
	}
	b, err := r.take(int(n), "tiny string")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

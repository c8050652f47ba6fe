// Package text provides the growable byte buffer that backs lisp strings and
// printer output.
package text

import (
	"fmt"
	"io"
)

// SegmentSize is the granularity, in bytes, by which a Buffer grows.
const SegmentSize = 64

// Buffer is a growable byte buffer.  The bytes of a Buffer are always
// followed by a NUL byte in the backing array, so the slice returned by Bytes
// may be handed to code expecting terminated text by extending it one byte.
// The zero Buffer is empty and ready to use.
type Buffer struct {
	b []byte
}

var (
	_ io.Writer       = (*Buffer)(nil)
	_ io.StringWriter = (*Buffer)(nil)
	_ io.ByteWriter   = (*Buffer)(nil)
)

// New returns an empty Buffer.
func New() *Buffer {
	buf := &Buffer{}
	buf.grow(0)
	return buf
}

// FromString returns a new Buffer containing a copy of s.
func FromString(s string) *Buffer {
	buf := &Buffer{}
	buf.AppendString(s)
	return buf
}

// FromBytes returns a new Buffer containing a copy of p.
func FromBytes(p []byte) *Buffer {
	buf := &Buffer{}
	buf.Append(p)
	return buf
}

// Newf returns a new Buffer containing formatted text.
func Newf(format string, v ...interface{}) *Buffer {
	buf := &Buffer{}
	buf.Appendf(format, v...)
	return buf
}

// Cat returns a new Buffer holding the contents of a followed by the
// contents of b.  Neither argument is modified.
func Cat(a, b *Buffer) *Buffer {
	buf := &Buffer{}
	buf.grow(a.Len() + b.Len())
	buf.Append(a.Bytes())
	buf.Append(b.Bytes())
	return buf
}

// Dup returns a physically separate copy of buf.
func (buf *Buffer) Dup() *Buffer {
	return FromBytes(buf.Bytes())
}

// segment rounds n up to the next segment boundary, always adding at least
// one byte of headroom.
func segment(n int) int {
	return n + SegmentSize - (n % SegmentSize)
}

// grow ensures that plus more bytes and a terminating NUL fit in buf.
func (buf *Buffer) grow(plus int) {
	if cap(buf.b)-len(buf.b) > plus {
		return
	}
	b := make([]byte, len(buf.b), cap(buf.b)+segment(plus))
	copy(b, buf.b)
	buf.b = b
}

func (buf *Buffer) terminate() {
	buf.b[:len(buf.b)+1][len(buf.b)] = 0
}

// Append appends the raw bytes p.
func (buf *Buffer) Append(p []byte) {
	buf.grow(len(p))
	buf.b = append(buf.b, p...)
	buf.terminate()
}

// AppendString appends the bytes of s.
func (buf *Buffer) AppendString(s string) {
	buf.grow(len(s))
	buf.b = append(buf.b, s...)
	buf.terminate()
}

// AppendByte appends the single character c.
func (buf *Buffer) AppendByte(c byte) {
	buf.grow(1)
	buf.b = append(buf.b, c)
	buf.terminate()
}

// Appendf appends formatted text.
func (buf *Buffer) Appendf(format string, v ...interface{}) {
	buf.AppendString(fmt.Sprintf(format, v...))
}

// Write implements io.Writer.  Write never fails.
func (buf *Buffer) Write(p []byte) (int, error) {
	buf.Append(p)
	return len(p), nil
}

// WriteString implements io.StringWriter.  WriteString never fails.
func (buf *Buffer) WriteString(s string) (int, error) {
	buf.AppendString(s)
	return len(s), nil
}

// WriteByte implements io.ByteWriter.  WriteByte never fails.
func (buf *Buffer) WriteByte(c byte) error {
	buf.AppendByte(c)
	return nil
}

// Len returns the number of bytes held in buf.
func (buf *Buffer) Len() int {
	if buf == nil {
		return 0
	}
	return len(buf.b)
}

// Cap returns the number of bytes buf can hold, including the terminator,
// before it must grow.
func (buf *Buffer) Cap() int {
	if buf == nil {
		return 0
	}
	return cap(buf.b)
}

// Bytes returns the contents of buf without copying.  The returned slice is
// only valid until the next modification of buf.
func (buf *Buffer) Bytes() []byte {
	if buf == nil {
		return nil
	}
	return buf.b
}

// String returns a copy of the contents of buf.
func (buf *Buffer) String() string {
	if buf == nil {
		return ""
	}
	return string(buf.b)
}

// Reset empties buf but retains its storage.
func (buf *Buffer) Reset() {
	if buf.b == nil {
		buf.grow(0)
	}
	buf.b = buf.b[:0]
	buf.terminate()
}

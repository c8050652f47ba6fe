// Package stream provides a byte stream that reads and writes uniformly over
// a file (or any io.Reader/io.Writer) or over an in-memory string.
package stream

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
)

// EOF is returned by Getc when a stream is exhausted and by Ungetc when a
// byte cannot be pushed back.
const EOF = -1

// ErrNotWritable is returned when writing to a stream with no output side.
var ErrNotWritable = errors.New("stream is not writable")

// ErrClosed is returned when operating on a closed stream.
var ErrClosed = errors.New("stream is closed")

// Stream is a byte stream supporting single byte reads with a one byte
// push-back, bulk reads, and text writes.  A Stream is backed either by host
// io (a file, a reader, a writer) or by memory.
type Stream struct {
	name string

	// io-backed
	src    io.Reader
	r      *bufio.Reader
	w      io.Writer
	closer io.Closer
	seeker io.Seeker

	// pushed holds the byte returned by Ungetc, or EOF.
	pushed int

	// memory-backed
	mem  bool
	data []byte
	idx  int

	unread bool
	closed bool
}

// FromFile returns a stream reading from and writing to f.
func FromFile(f *os.File) *Stream {
	return &Stream{
		name:   f.Name(),
		src:    f,
		r:      bufio.NewReader(f),
		w:      f,
		closer: f,
		seeker: f,
		pushed: EOF,
	}
}

// Open opens the named file with the given flags (see os.OpenFile) and
// returns a stream over it.
func Open(path string, flag int, perm os.FileMode) (*Stream, error) {
	f, err := os.OpenFile(path, flag, perm)
	if err != nil {
		return nil, fmt.Errorf("stream: %w", err)
	}
	return FromFile(f), nil
}

// FromReader returns a read-only stream over r.
func FromReader(name string, r io.Reader) *Stream {
	s := &Stream{
		name:   name,
		src:    r,
		r:      bufio.NewReader(r),
		pushed: EOF,
	}
	if c, ok := r.(io.Closer); ok {
		s.closer = c
	}
	if sk, ok := r.(io.Seeker); ok {
		s.seeker = sk
	}
	return s
}

// ToWriter returns a write-only stream over w.
func ToWriter(name string, w io.Writer) *Stream {
	return &Stream{
		name:   name,
		w:      w,
		pushed: EOF,
	}
}

// FromString returns a memory-backed stream holding a copy of s.
func FromString(s string) *Stream {
	return &Stream{
		name:   "string",
		mem:    true,
		data:   []byte(s),
		pushed: EOF,
	}
}

// Name returns a descriptive name for the stream.
func (s *Stream) Name() string {
	return s.name
}

// IsMemory returns true if s is memory-backed.
func (s *Stream) IsMemory() bool {
	return s.mem
}

// Getc returns the next byte in s or EOF.
func (s *Stream) Getc() int {
	s.unread = false
	if s.closed {
		return EOF
	}
	if s.pushed != EOF {
		c := s.pushed
		s.pushed = EOF
		return c
	}
	if s.mem {
		if s.idx >= len(s.data) {
			return EOF
		}
		c := s.data[s.idx]
		s.idx++
		return int(c)
	}
	if s.r == nil {
		return EOF
	}
	c, err := s.r.ReadByte()
	if err != nil {
		return EOF
	}
	return int(c)
}

// Ungetc pushes c back onto s so that it is returned by the next call to
// Getc.  Only one byte may be pushed back between calls to Getc, and a
// memory-backed stream refuses push-back before anything has been read.
// Ungetc never modifies the contents of s.  Ungetc returns c, or EOF if c
// could not be pushed back.
func (s *Stream) Ungetc(c int) int {
	if c == EOF || s.unread || s.closed {
		return EOF
	}
	if s.mem && s.idx == 0 {
		return EOF
	}
	s.pushed = c & 0xff
	s.unread = true
	return c
}

// ReadBuf reads up to n bytes from s.  ReadBuf returns false when no bytes
// could be read.
func (s *Stream) ReadBuf(n int) ([]byte, bool) {
	s.unread = false
	if s.closed || n <= 0 {
		return nil, false
	}
	buf := make([]byte, 0, n)
	if s.pushed != EOF {
		buf = append(buf, byte(s.pushed))
		s.pushed = EOF
	}
	if s.mem {
		end := s.idx + n - len(buf)
		if end > len(s.data) {
			end = len(s.data)
		}
		buf = append(buf, s.data[s.idx:end]...)
		s.idx = end
		return buf, len(buf) > 0
	}
	if s.r != nil && len(buf) < n {
		m, _ := io.ReadFull(s.r, buf[len(buf):n])
		buf = buf[:len(buf)+m]
	}
	return buf, len(buf) > 0
}

// WriteString writes str to s.  Writing to a memory-backed stream appends to
// its contents and moves the read cursor to the end.
func (s *Stream) WriteString(str string) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}
	if s.mem {
		s.data = append(s.data, str...)
		s.idx = len(s.data)
		s.pushed = EOF
		return len(str), nil
	}
	if s.w == nil {
		return 0, ErrNotWritable
	}
	return io.WriteString(s.w, str)
}

// Write implements io.Writer.
func (s *Stream) Write(p []byte) (int, error) {
	if s.mem && !s.closed {
		s.data = append(s.data, p...)
		s.idx = len(s.data)
		s.pushed = EOF
		return len(p), nil
	}
	if s.closed {
		return 0, ErrClosed
	}
	if s.w == nil {
		return 0, ErrNotWritable
	}
	return s.w.Write(p)
}

// Rewind moves the read position of s back to the beginning.  Rewinding an
// io-backed stream requires the underlying io to be seekable.
func (s *Stream) Rewind() error {
	s.unread = false
	if s.closed {
		return ErrClosed
	}
	if s.mem {
		s.idx = 0
		s.pushed = EOF
		return nil
	}
	if s.seeker == nil {
		return fmt.Errorf("stream %s: not seekable", s.name)
	}
	_, err := s.seeker.Seek(0, io.SeekStart)
	if err != nil {
		return fmt.Errorf("stream %s: %w", s.name, err)
	}
	s.pushed = EOF
	if s.r != nil {
		s.r.Reset(s.src)
	}
	return nil
}

// Close closes s and any underlying io that can be closed.  Closing a closed
// stream has no effect.
func (s *Stream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}

// Contents returns a copy of the data held by a memory-backed stream.  For
// io-backed streams Contents returns an empty string.
func (s *Stream) Contents() string {
	if !s.mem {
		return ""
	}
	return string(s.data)
}

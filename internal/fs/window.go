package fs

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

// Window is a read-only cursor over a single file. Reads consume bytes from
// the cursor and never load more than the requested amount into memory.
//
// The zero value is a closed window ready for Open.
type Window struct {
	file *os.File
	path string
	size int64
	pos  int64

	scratch []byte
}

// Open returns a window over the file at path with the cursor at offset 0.
func Open(path string) (*Window, error) {
	w := &Window{}
	if err := w.Open(path); err != nil {
		return nil, err
	}
	return w, nil
}

// Open opens path for reading and caches its length. Opening an already open
// window is a no-op.
func (w *Window) Open(path string) error {
	if w.file != nil {
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return &Error{Op: "open", Path: path, Kind: KindOpen, Err: err}
	}
	if info, err := f.Stat(); err == nil && info.IsDir() {
		_ = f.Close()
		return &Error{Op: "open", Path: path, Kind: KindOpen, Err: errors.New("is a directory")}
	}

	size, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		_ = f.Close()
		return &Error{Op: "seek", Path: path, Kind: KindSeek, Err: err}
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		_ = f.Close()
		return &Error{Op: "seek", Path: path, Kind: KindSeek, Err: err}
	}

	w.file = f
	w.path = path
	w.size = size
	w.pos = 0
	return nil
}

// Close releases the file handle. Closing a closed window is a no-op.
func (w *Window) Close() error {
	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	w.scratch = nil
	if err != nil {
		return &Error{Op: "close", Path: w.path, Kind: KindIO, Err: err}
	}
	return nil
}

// IsOpen reports whether the window holds an open file.
func (w *Window) IsOpen() bool {
	return w.file != nil
}

// Path returns the path passed to Open.
func (w *Window) Path() string {
	return w.path
}

// Len returns the file length captured at open time.
func (w *Window) Len() int64 {
	return w.size
}

// Tell returns the cursor offset, or -1 when the window is closed.
func (w *Window) Tell() int64 {
	if w.file == nil {
		return -1
	}
	return w.pos
}

// SeekTo moves the cursor to an absolute offset within [0, Len()].
func (w *Window) SeekTo(offset int64) error {
	if w.file == nil {
		return ErrClosed
	}
	if offset < 0 || offset > w.size {
		return &Error{
			Op:   "seek",
			Path: w.path,
			Kind: KindSeek,
			Err:  fmt.Errorf("offset %d outside [0, %d]", offset, w.size),
		}
	}
	w.pos = offset
	return nil
}

// Move shifts the cursor by delta bytes. Backward moves stop at offset 0.
// Forward moves that would land at or past the end of the file are rejected
// with ErrPastEnd and leave the cursor unchanged.
func (w *Window) Move(delta int64) error {
	if w.file == nil {
		return ErrClosed
	}
	switch {
	case delta == 0:
		return nil
	case delta < 0:
		if delta < -w.pos {
			w.pos = 0
			return nil
		}
		w.pos += delta
		return nil
	default:
		// Compared against the remaining length so huge deltas cannot overflow.
		if delta >= w.size-w.pos {
			return ErrPastEnd
		}
		w.pos += delta
		return nil
	}
}

// WillBeEnd reports whether moving the cursor by delta would reach or pass the
// end of the file. The cursor is not changed.
func (w *Window) WillBeEnd(delta int64) (bool, error) {
	if w.file == nil {
		return false, ErrClosed
	}
	if delta < 0 {
		return false, nil
	}
	return delta >= w.size-w.pos, nil
}

// ReadRaw appends up to n bytes from the cursor to dst and advances the cursor
// by the number of bytes appended. Reaching the end of the file is not an error.
func (w *Window) ReadRaw(dst *bytes.Buffer, n int) (int, error) {
	raw, err := w.read(n)
	if err != nil {
		return 0, err
	}
	dst.Write(raw)
	return len(raw), nil
}

// ReadAs reads up to n bytes like ReadRaw and appends them to dst rendered in
// enc. It returns the number of raw bytes consumed, not the rendered length.
func (w *Window) ReadAs(dst *bytes.Buffer, enc Encoding, n int) (int, error) {
	raw, err := w.read(n)
	if err != nil {
		return 0, err
	}
	if len(raw) == 0 {
		return 0, nil
	}
	dst.Grow(enc.FormattedLen(len(raw)))
	dst.Write(enc.AppendFormat(dst.AvailableBuffer(), raw))
	return len(raw), nil
}

// ReadAsHex is ReadAs with EncodingHex.
func (w *Window) ReadAsHex(dst *bytes.Buffer, n int) (int, error) {
	return w.ReadAs(dst, EncodingHex, n)
}

// ReadAsAnnotated is ReadAs with EncodingAnnotated.
func (w *Window) ReadAsAnnotated(dst *bytes.Buffer, n int) (int, error) {
	return w.ReadAs(dst, EncodingAnnotated, n)
}

// ReadAsPlain is ReadAs with EncodingPlain.
func (w *Window) ReadAsPlain(dst *bytes.Buffer, n int) (int, error) {
	return w.ReadAs(dst, EncodingPlain, n)
}

// read returns up to n bytes at the cursor in the window's scratch buffer.
// The slice is only valid until the next read. On failure the cursor stays
// at its pre-read offset.
func (w *Window) read(n int) ([]byte, error) {
	if w.file == nil {
		return nil, ErrClosed
	}
	remaining := w.size - w.pos
	if n <= 0 || remaining <= 0 {
		return nil, nil
	}
	if int64(n) > remaining {
		n = int(remaining)
	}
	if cap(w.scratch) < n {
		w.scratch = make([]byte, n)
	}
	buf := w.scratch[:n]

	read, err := w.file.ReadAt(buf, w.pos)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, &Error{Op: "read", Path: w.path, Kind: KindRead, Err: err}
	}
	w.pos += int64(read)
	return buf[:read], nil
}

package fs

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Window.
var (
	// ErrClosed is returned by operations on a window without an open file.
	ErrClosed = errors.New("window is closed")
	// ErrPastEnd is returned by Move when a forward move would reach the end of
	// the file. The cursor is left where it was.
	ErrPastEnd = errors.New("move past end of file")
)

// Kind classifies a window failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindOpen
	KindIO
	KindRead
	KindSeek
)

func (k Kind) String() string {
	switch k {
	case KindOpen:
		return "open"
	case KindIO:
		return "io"
	case KindRead:
		return "read"
	case KindSeek:
		return "seek"
	default:
		return "unknown"
	}
}

// Error describes a failed window operation.
type Error struct {
	Op   string
	Path string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	msg := e.Op
	if e.Path != "" {
		msg = fmt.Sprintf("%s %s", e.Op, e.Path)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var fe *Error
	return errors.As(err, &fe) && fe.Kind == kind
}

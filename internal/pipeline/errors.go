package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ironsheep/thumbshot/internal/hdrio"
	"github.com/ironsheep/thumbshot/internal/region"
)

// Kind classifies a pipeline failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindUnsupportedFormat
	KindNoMonitorFound
	KindDecode
	KindCapture
	KindSave
	KindInvalidArgument
)

// Sentinel errors, one per Kind. An *Error matches its kind's sentinel with
// errors.Is.
var (
	// ErrUnsupportedFormat is returned when the input extension has no decoder.
	ErrUnsupportedFormat = hdrio.ErrUnsupportedFormat

	// ErrNoMonitorFound is returned when no monitor overlaps or contains the
	// requested capture origin.
	ErrNoMonitorFound = region.ErrNoMonitorFound

	// ErrDecode is returned when an input file cannot be read or decoded.
	ErrDecode = errors.New("decode failed")

	// ErrCapture is returned when monitor enumeration or screen capture fails.
	ErrCapture = errors.New("capture failed")

	// ErrSave is returned when an output file cannot be encoded or written.
	ErrSave = errors.New("save failed")

	// ErrInvalidArgument is returned for out-of-range request parameters.
	ErrInvalidArgument = errors.New("invalid argument")
)

var kindNames = map[Kind]string{
	KindUnknown:           "unknown",
	KindUnsupportedFormat: "unsupported format",
	KindNoMonitorFound:    "no monitor found",
	KindDecode:            "decode",
	KindCapture:           "capture",
	KindSave:              "save",
	KindInvalidArgument:   "invalid argument",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

func (k Kind) sentinel() error {
	switch k {
	case KindUnsupportedFormat:
		return ErrUnsupportedFormat
	case KindNoMonitorFound:
		return ErrNoMonitorFound
	case KindDecode:
		return ErrDecode
	case KindCapture:
		return ErrCapture
	case KindSave:
		return ErrSave
	case KindInvalidArgument:
		return ErrInvalidArgument
	}
	return nil
}

// Error describes a failed pipeline operation.
type Error struct {
	Kind Kind
	// Op is the operation that failed, e.g. "convert" or "capture".
	Op string
	// Path is the file involved, if any.
	Path string
	// Monitors is the number of monitors considered, for KindNoMonitorFound.
	Monitors int
	// Err is the underlying cause.
	Err error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.Path != "" {
		b.WriteString(" ")
		b.WriteString(e.Path)
	}
	b.WriteString(": ")
	if e.Kind == KindNoMonitorFound {
		fmt.Fprintf(&b, "no monitor found among %d monitors", e.Monitors)
		return b.String()
	}
	if e.Err != nil {
		b.WriteString(e.Err.Error())
	} else {
		b.WriteString(e.Kind.String())
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// KindOf returns the Kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return KindUnknown
}

func newError(kind Kind, op, path string, err error) *Error {
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}

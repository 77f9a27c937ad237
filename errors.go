package transcode

import (
	"errors"
	"fmt"
	"strings"
)

// Failure codes.
const (
	CodeTypeMismatch           = "type_mismatch"
	CodeValueMismatch          = "value_mismatch"
	CodeShapeMismatch          = "shape_mismatch"
	CodeMissingProperty        = "missing_property"
	CodeUnmatchedDiscriminator = "unmatched_discriminator"
	CodeMalformedDiscriminator = "malformed_discriminator"
	CodeUnknownProperty        = "unknown_property"
	CodeInvalidFormat          = "invalid_format"
	CodeRefinement             = "refinement"
	CodeUnknownException       = "unknown_exception"
)

// Op tells whether a failure happened while decoding or encoding.
type Op uint8

const (
	OpDecode Op = iota
	OpEncode
)

func (o Op) String() string {
	if o == OpEncode {
		return "encode"
	}
	return "decode"
}

// ErrUnboundRecursive is raised when a recursive codec is used before its
// shape has been bound.
var ErrUnboundRecursive = errors.New("transcode: recursive codec used before Bind")

// Error is a decoding or encoding failure. Scope holds the labels of the
// nested codecs that were active (oldest first), Path the property/index
// trail into the value and Garbage the offending raw value.
type Error struct {
	Op      Op
	Code    string
	Message string
	Scope   []string
	Path    []PathSegment
	Garbage any
}

// Error returns the message followed by the value path when one is known.
func (e *Error) Error() string {
	p := FormatPath(e.Path)
	if p == "" {
		return e.Message
	}
	return e.Message + " at " + p
}

// PathString renders the value path, e.g. foo.bar[2].
func (e *Error) PathString() string { return FormatPath(e.Path) }

// Pointer renders the value path as a JSON Pointer.
func (e *Error) Pointer() string { return Pointer(e.Path) }

// Report renders the full multi-line report: message, value path, scope
// trace and the garbage value.
func (e *Error) Report() string {
	b := &strings.Builder{}
	b.WriteString(FormatMessage(e.Message, e.Scope, e.Path))
	fmt.Fprintf(b, "\nGarbage value: %#v", e.Garbage)
	return b.String()
}

func newError(op Op, code, msg string, scope []string, path []PathSegment, garbage any) *Error {
	return &Error{
		Op:      op,
		Code:    code,
		Message: msg,
		Scope:   append([]string(nil), scope...),
		Path:    append([]PathSegment(nil), path...),
		Garbage: garbage,
	}
}

// AsError extracts an *Error from err using errors.As internally.
func AsError(err error) (*Error, bool) {
	if err == nil {
		return nil, false
	}
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

package transcode

import (
	"strconv"
	"strings"
)

type segmentKind uint8

const (
	segNone segmentKind = iota
	segKey
	segIndex
)

// PathSegment is one marker of the path trail: a property key, an array
// index, or no marker at all (frames that add scope but no location).
type PathSegment struct {
	kind  segmentKind
	key   string
	index int
}

// NoSegment is the marker for frames that do not move within the value.
var NoSegment = PathSegment{}

// Key returns a property-name marker.
func Key(name string) PathSegment { return PathSegment{kind: segKey, key: name} }

// Index returns an array-index marker.
func Index(i int) PathSegment { return PathSegment{kind: segIndex, index: i} }

// IsKey reports whether the segment names a property.
func (s PathSegment) IsKey() bool { return s.kind == segKey }

// IsIndex reports whether the segment is an array index.
func (s PathSegment) IsIndex() bool { return s.kind == segIndex }

// IsNone reports whether the segment carries no location.
func (s PathSegment) IsNone() bool { return s.kind == segNone }

// KeyName returns the property name of a key segment.
func (s PathSegment) KeyName() string { return s.key }

// IndexValue returns the position of an index segment.
func (s PathSegment) IndexValue() int { return s.index }

func (s PathSegment) String() string {
	switch s.kind {
	case segKey:
		return s.key
	case segIndex:
		return "[" + strconv.Itoa(s.index) + "]"
	}
	return ""
}

// FormatPath renders a path trail such as foo.bar[2]. Segments without a
// marker are skipped.
func FormatPath(path []PathSegment) string {
	b := &strings.Builder{}
	for _, s := range path {
		switch s.kind {
		case segKey:
			if b.Len() > 0 {
				b.WriteByte('.')
			}
			b.WriteString(s.key)
		case segIndex:
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(s.index))
			b.WriteByte(']')
		}
	}
	return b.String()
}

// Pointer renders a path trail as an RFC 6901 JSON Pointer.
func Pointer(path []PathSegment) string {
	parts := make([]string, 0, len(path))
	for _, s := range path {
		switch s.kind {
		case segKey:
			parts = append(parts, strings.ReplaceAll(strings.ReplaceAll(s.key, "~", "~0"), "/", "~1"))
		case segIndex:
			parts = append(parts, strconv.Itoa(s.index))
		}
	}
	if len(parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(parts, "/")
}

// FormatMessage renders a failure together with its value path and scope
// trace, one frame per line.
func FormatMessage(msg string, scope []string, path []PathSegment) string {
	b := &strings.Builder{}
	b.WriteString(msg)
	b.WriteString("\nValue path: ")
	b.WriteString(FormatPath(path))
	b.WriteString("\nScope trace:")
	for _, s := range scope {
		b.WriteString("\n\tat ")
		b.WriteString(s)
	}
	return b.String()
}

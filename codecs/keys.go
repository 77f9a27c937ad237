package codecs

import (
	"strconv"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/reoring/transcode"
	"github.com/reoring/transcode/i18n"
)

// LiteralKeys accepts only the given keys.
func LiteralKeys(values ...string) transcode.KeyCodec[string] {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	const name = "literal key"
	return transcode.MakeKey(name,
		func(tc *transcode.Context, k string) (string, error) {
			if _, ok := set[k]; !ok {
				return valueMismatch[string](tc, name, k)
			}
			return k, nil
		},
		func(k string) string { return k })
}

// IntKey decodes base-10 integer keys.
func IntKey() transcode.KeyCodec[int64] {
	const name = "integer key"
	return transcode.MakeKey(name,
		func(tc *transcode.Context, k string) (int64, error) {
			i, err := strconv.ParseInt(k, 10, 64)
			if err != nil {
				return transcode.Fail[int64](tc, transcode.CodeInvalidFormat, tc.Message(i18n.MsgInvalidFormat, name, nil), k)
			}
			return i, nil
		},
		func(i int64) string { return strconv.FormatInt(i, 10) })
}

// Case names a Unicode case mapping.
type Case uint8

const (
	AsIs Case = iota
	Lower
	Upper
	Title
)

func (c Case) caser(tag language.Tag) cases.Caser {
	switch c {
	case Lower:
		return cases.Lower(tag)
	case Upper:
		return cases.Upper(tag)
	case Title:
		return cases.Title(tag)
	}
	return cases.Fold()
}

func (c Case) apply(tag language.Tag, s string) string {
	if c == AsIs {
		return s
	}
	// Casers keep state and are not safe for concurrent use.
	return c.caser(tag).String(s)
}

// CaseKeys maps keys between two case conventions using the rules of tag:
// decoded keys use domain, encoded keys use wire.
func CaseKeys(tag language.Tag, wire, domain Case) transcode.KeyCodec[string] {
	return transcode.MakeKey("cased key",
		func(_ *transcode.Context, k string) (string, error) { return domain.apply(tag, k), nil },
		func(k string) string { return wire.apply(tag, k) })
}

package fontface

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

// Charset selects the characters to rasterize.
//
// The zero value, like ParseCharset("all"), selects every character the
// font maps.
type Charset struct {
	name  string
	table *unicode.RangeTable
}

// Named charsets accepted by ParseCharset.
var namedCharsets = map[string]*unicode.RangeTable{
	"ascii":  span(0x20, 0x7E),
	"latin1": rangetable.Merge(span(0x20, 0x7E), span(0xA0, 0xFF)),
	"digits": span('0', '9'),
	"alnum":  rangetable.Merge(span('0', '9'), span('A', 'Z'), span('a', 'z')),
	"upper":  span('A', 'Z'),
	"lower":  span('a', 'z'),
}

// CharsetNames lists the named charsets in display order.
var CharsetNames = []string{"all", "ascii", "latin1", "alnum", "digits", "upper", "lower"}

// ParseCharset parses a charset description. A description is one or more
// parts joined by "+":
//
//	all                  every character in the font
//	ascii, latin1, ...   a named set, see CharsetNames
//	range:U+0400-U+04FF  an inclusive code point range
//	chars:abc            the literal characters after the colon
//
// A chars part consumes the rest of the description, "+" included.
func ParseCharset(s string) (Charset, error) {
	in := strings.TrimSpace(s)
	if in == "" || strings.EqualFold(in, "all") {
		return Charset{name: "all"}, nil
	}

	var tables []*unicode.RangeTable
	rest := in
	for rest != "" {
		rest = strings.TrimLeft(rest, " ")
		if lit, ok := strings.CutPrefix(rest, "chars:"); ok {
			if lit == "" {
				return Charset{}, &CharsetError{Input: s, Reason: "empty character list"}
			}
			tables = append(tables, rangetable.New([]rune(lit)...))
			break
		}
		part, tail, _ := strings.Cut(rest, "+")
		rest = tail

		part = strings.ToLower(strings.TrimSpace(part))
		if t, ok := namedCharsets[part]; ok {
			tables = append(tables, t)
			continue
		}
		if bounds, ok := strings.CutPrefix(part, "range:"); ok {
			lo, hi, err := parseRange(bounds)
			if err != nil {
				return Charset{}, &CharsetError{Input: s, Reason: err.Error()}
			}
			tables = append(tables, span(lo, hi))
			continue
		}
		if part == "all" {
			return Charset{}, &CharsetError{Input: s, Reason: `"all" cannot be combined`}
		}
		return Charset{}, &CharsetError{Input: s, Reason: "unknown part " + strconv.Quote(part)}
	}
	return Charset{name: in, table: rangetable.Merge(tables...)}, nil
}

// String returns the description the charset was parsed from.
func (c Charset) String() string {
	if c.name == "" {
		return "all"
	}
	return c.name
}

// IsAll reports whether the charset selects every character in the font.
func (c Charset) IsAll() bool {
	return c.table == nil
}

// Contains reports whether r is selected.
func (c Charset) Contains(r rune) bool {
	return c.table == nil || unicode.Is(c.table, r)
}

// Runes returns the selected characters sorted by code point, or nil when
// the charset selects the whole font. The result can be passed to
// Face.Rasterize directly.
func (c Charset) Runes() []rune {
	if c.table == nil {
		return nil
	}
	runes := []rune{}
	rangetable.Visit(c.table, func(r rune) {
		runes = append(runes, r)
	})
	return runes
}

// parseRange parses "U+XXXX-U+YYYY". The "U+" prefixes are optional.
func parseRange(s string) (lo, hi rune, err error) {
	a, b, ok := strings.Cut(s, "-")
	if !ok {
		return 0, 0, &rangeError{s, "missing '-'"}
	}
	lo, err = parseCodePoint(a)
	if err != nil {
		return 0, 0, err
	}
	hi, err = parseCodePoint(b)
	if err != nil {
		return 0, 0, err
	}
	if lo > hi {
		return 0, 0, &rangeError{s, "start after end"}
	}
	return lo, hi, nil
}

func parseCodePoint(s string) (rune, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "u+"), "0x")
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil || v > unicode.MaxRune {
		return 0, &rangeError{s, "invalid code point"}
	}
	return rune(v), nil
}

type rangeError struct {
	input, reason string
}

func (e *rangeError) Error() string {
	return e.reason + " in range " + strconv.Quote(e.input)
}

// span returns a table holding the inclusive range [lo, hi].
func span(lo, hi rune) *unicode.RangeTable {
	t := &unicode.RangeTable{}
	if lo <= 0xFFFF {
		t.R16 = []unicode.Range16{{Lo: uint16(lo), Hi: uint16(min(hi, 0xFFFF)), Stride: 1}}
		if hi <= unicode.MaxLatin1 {
			t.LatinOffset = 1
		}
	}
	if hi > 0xFFFF {
		t.R32 = []unicode.Range32{{Lo: uint32(max(lo, 0x10000)), Hi: uint32(hi), Stride: 1}}
	}
	return t
}

package fontface

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCharsetNamed(t *testing.T) {
	tests := []struct {
		in    string
		count int
		first rune
		last  rune
	}{
		{"ascii", 95, ' ', '~'},
		{"ASCII", 95, ' ', '~'},
		{"alnum", 62, '0', 'z'},
		{"digits", 10, '0', '9'},
		{"upper", 26, 'A', 'Z'},
		{"latin1", 95 + 96, ' ', 0xFF},
		{"digits+upper", 36, '0', 'Z'},
		{"range:U+0400-U+04FF", 256, 0x400, 0x4FF},
		{"range:41-43", 3, 'A', 'C'},
		{"range:U+FFFE-U+10001", 4, 0xFFFE, 0x10001},
		{"chars:cab", 3, 'a', 'c'},
		{"digits + chars:+-", 12, '+', '9'},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			cs, err := ParseCharset(tt.in)
			require.NoError(t, err)
			require.False(t, cs.IsAll())
			runes := cs.Runes()
			require.Len(t, runes, tt.count)
			require.Equal(t, tt.first, runes[0])
			require.Equal(t, tt.last, runes[len(runes)-1])
			for _, r := range runes {
				require.True(t, cs.Contains(r))
			}
		})
	}
}

func TestParseCharsetAll(t *testing.T) {
	for _, in := range []string{"", "all", " ALL "} {
		cs, err := ParseCharset(in)
		require.NoError(t, err)
		require.True(t, cs.IsAll())
		require.Nil(t, cs.Runes())
		require.True(t, cs.Contains('x'))
	}

	var zero Charset
	require.True(t, zero.IsAll())
	require.Equal(t, "all", zero.String())
}

func TestParseCharsetErrors(t *testing.T) {
	for _, in := range []string{
		"klingon",
		"range:U+0041",
		"range:U+0050-U+0041",
		"range:zz-U+0041",
		"range:0-110000",
		"chars:",
		"ascii+all",
		"ascii++digits",
	} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseCharset(in)
			var ce *CharsetError
			require.ErrorAs(t, err, &ce)
			require.Equal(t, in, ce.Input)
		})
	}
}

func TestCharsetContains(t *testing.T) {
	cs, err := ParseCharset("alnum")
	require.NoError(t, err)
	require.True(t, cs.Contains('q'))
	require.False(t, cs.Contains(' '))
	require.False(t, cs.Contains('é'))
}

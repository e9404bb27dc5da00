package valuebox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnescape(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		quote Quote
		want  string
	}{
		{"none copies verbatim", `a\nb\\`, QuoteNone, `a\nb\\`},

		{"literal quote", `it\'s`, QuoteSingle, `it's`},
		{"literal backslash", `a\\b`, QuoteSingle, `a\b`},
		{"literal leaves others", `a\nb\x41`, QuoteSingle, `a\nb\x41`},
		{"literal trailing backslash", `a\`, QuoteSingle, `a\`},

		{"expanded controls", `a\r\n\tb`, QuoteDouble, "a\r\n\tb"},
		{"expanded quote", `say \"hi\"`, QuoteDouble, `say "hi"`},
		{"expanded backtick quote", "a\\`b", QuoteBacktick, "a`b"},
		{"expanded hex", `\x41\x62`, QuoteDouble, "Ab"},
		{"expanded octal", `\101\000z`, QuoteDouble, "A\x00z"},
		{"expanded unknown escape kept", `a\qbcd`, QuoteDouble, `a\qbcd`},
		{"expanded bad hex kept", `\xZZ1`, QuoteDouble, `\xZZ1`},
		{"expanded short escape kept", `ab\x4`, QuoteDouble, `ab\x4`},
		{"expanded trailing backslash", `ab\`, QuoteDouble, `ab\`},
		{"expanded octal out of range kept", `\477`, QuoteDouble, `\477`},
		{"single quote is literal in double", `\'`, QuoteDouble, `\'`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Unescape([]byte(tt.in), tt.quote)
			assert.Equal(t, tt.want, string(got))
			assert.LessOrEqual(t, len(got), len(tt.in))
		})
	}
}

func TestEscape(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		quote Quote
		want  string
	}{
		{"plain", "hello", QuoteDouble, "hello"},
		{"controls", "a\r\n\tb", QuoteDouble, `a\r\n\tb`},
		{"quote and backslash", `a"b\c`, QuoteDouble, `a\"b\\c`},
		{"nul and invalid utf8", "\x00\xff", QuoteDouble, `\000\377`},
		{"utf8 kept", "héllo", QuoteDouble, "héllo"},
		{"literal", `it's a\b`, QuoteSingle, `it\'s a\\b`},
		{"literal keeps newline", "a\nb", QuoteSingle, "a\nb"},
		{"none", `a"b`, QuoteNone, `a"b`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, string(Escape([]byte(tt.in), tt.quote)))
		})
	}
}

func TestEscapeRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"simple",
		"with \"quotes\" and \\backslashes\\",
		"tab\tnewline\ncr\r",
		"\x00\x01\x7f\x80\xfe\xff",
		"mixed üñîçødé and `ticks`",
	}

	for _, quote := range []Quote{QuoteSingle, QuoteDouble, QuoteBacktick} {
		for _, in := range inputs {
			escaped := Escape([]byte(in), quote)
			assert.Equal(t, in, string(Unescape(escaped, quote)), "quote %s input %q", quote, in)
		}
	}

	for c := 0; c < 256; c++ {
		in := []byte{byte(c)}
		assert.Equal(t, in, Unescape(Escape(in, QuoteDouble), QuoteDouble))
	}
}

func TestParseQuote(t *testing.T) {
	for _, q := range []Quote{QuoteNone, QuoteSingle, QuoteDouble, QuoteBacktick} {
		got, err := ParseQuote(q.String())
		require.NoError(t, err)
		assert.Equal(t, q, got)
	}

	got, err := ParseQuote(`"`)
	require.NoError(t, err)
	assert.Equal(t, QuoteDouble, got)

	_, err = ParseQuote("curly")
	assert.Error(t, err)
}

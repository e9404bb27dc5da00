package valuebox

import (
	"fmt"
	"unicode/utf8"
)

// Quote selects the quoting mode used when parsing and printing strings.
type Quote byte

const (
	// QuoteNone copies bytes verbatim.
	QuoteNone Quote = 0
	// QuoteSingle is literal mode: only \\ and \' are escapes.
	QuoteSingle Quote = '\''
	// QuoteDouble is expanded mode.
	QuoteDouble Quote = '"'
	// QuoteBacktick is expanded mode with ` as the quote character.
	QuoteBacktick Quote = '`'
)

// ParseQuote maps a quote name or character to a Quote.
func ParseQuote(s string) (Quote, error) {
	switch s {
	case "", "none":
		return QuoteNone, nil
	case "'", "single":
		return QuoteSingle, nil
	case `"`, "double":
		return QuoteDouble, nil
	case "`", "backtick":
		return QuoteBacktick, nil
	default:
		return QuoteNone, newError(ErrParse, "unknown quote mode %q", s)
	}
}

func (q Quote) String() string {
	switch q {
	case QuoteNone:
		return "none"
	case QuoteSingle:
		return "single"
	case QuoteDouble:
		return "double"
	case QuoteBacktick:
		return "backtick"
	default:
		return fmt.Sprintf("Quote(%q)", byte(q))
	}
}

// Unescape converts a quoted literal body into its binary form. The output is never
// longer than the input and may contain embedded zero bytes.
//
// Invalid escape sequences are copied verbatim, backslash included.
func Unescape(in []byte, quote Quote) []byte {
	out := make([]byte, 0, len(in))

	if quote == QuoteNone {
		return append(out, in...)
	}

	if quote == QuoteSingle {
		for i := 0; i < len(in); i++ {
			if in[i] == '\\' && i+1 < len(in) && (in[i+1] == byte(quote) || in[i+1] == '\\') {
				out = append(out, in[i+1])
				i++
				continue
			}
			out = append(out, in[i])
		}
		return out
	}

	for i := 0; i < len(in); i++ {
		c := in[i]
		if c != '\\' {
			out = append(out, c)
			continue
		}

		rest := in[i+1:]
		if len(rest) == 0 {
			return append(out, c)
		}

		switch rest[0] {
		case 'r':
			out = append(out, '\r')
			i++
			continue
		case 'n':
			out = append(out, '\n')
			i++
			continue
		case 't':
			out = append(out, '\t')
			i++
			continue
		case '\\':
			out = append(out, '\\')
			i++
			continue
		case byte(quote):
			out = append(out, byte(quote))
			i++
			continue
		}

		// hex and octal need three characters after the backslash
		if len(rest) < 3 {
			out = append(out, c)
			return append(out, rest...)
		}

		if rest[0] == 'x' {
			hi, ok1 := unhex(rest[1])
			lo, ok2 := unhex(rest[2])
			if ok1 && ok2 {
				out = append(out, hi<<4|lo)
				i += 3
				continue
			}
		} else if isOctal(rest[0]) && isOctal(rest[1]) && isOctal(rest[2]) && rest[0] <= '3' {
			out = append(out, (rest[0]-'0')<<6|(rest[1]-'0')<<3|(rest[2]-'0'))
			i += 3
			continue
		}

		// unrecognised, keep the backslash and carry on after it
		out = append(out, c)
	}
	return out
}

// Escape is the inverse of Unescape. In expanded mode control characters and bytes
// that are not printable UTF-8 are rendered as \NNN octal escapes.
func Escape(in []byte, quote Quote) []byte {
	out := make([]byte, 0, len(in))

	switch quote {
	case QuoteNone:
		return append(out, in...)

	case QuoteSingle:
		for _, c := range in {
			if c == '\\' || c == byte(quote) {
				out = append(out, '\\')
			}
			out = append(out, c)
		}
		return out
	}

	for i := 0; i < len(in); {
		c := in[i]
		switch {
		case c == '\\' || c == byte(quote):
			out = append(out, '\\', c)
		case c == '\r':
			out = append(out, '\\', 'r')
		case c == '\n':
			out = append(out, '\\', 'n')
		case c == '\t':
			out = append(out, '\\', 't')
		case c < 0x20 || c == 0x7f:
			out = appendOctal(out, c)
		case c < utf8.RuneSelf:
			out = append(out, c)
		default:
			r, size := utf8.DecodeRune(in[i:])
			if r == utf8.RuneError && size <= 1 {
				out = appendOctal(out, c)
				break
			}
			out = append(out, in[i:i+size]...)
			i += size
			continue
		}
		i++
	}
	return out
}

func appendOctal(out []byte, c byte) []byte {
	return append(out, '\\', '0'+c>>6, '0'+(c>>3)&7, '0'+c&7)
}

func isOctal(c byte) bool {
	return c >= '0' && c <= '7'
}

func unhex(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

package parser

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// unquote decodes a quoted JavaScript string literal. Malformed escapes are
// kept verbatim.
func unquote(raw string) string {
	if len(raw) < 2 {
		return raw
	}
	body := raw[1 : len(raw)-1]
	if !strings.ContainsRune(body, '\\') {
		return body
	}

	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); i++ {
		ch := body[i]
		if ch != '\\' || i+1 >= len(body) {
			b.WriteByte(ch)
			continue
		}
		i++
		switch esc := body[i]; esc {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '0':
			b.WriteByte(0)
		case '\n':
			// line continuation
		case 'x':
			if r, n := hexRune(body[i+1:], 2); n > 0 {
				b.WriteRune(r)
				i += n
			} else {
				b.WriteByte(esc)
			}
		case 'u':
			rest := body[i+1:]
			if strings.HasPrefix(rest, "{") {
				if end := strings.IndexByte(rest, '}'); end > 1 {
					if r, n := hexRune(rest[1:end], end-1); n > 0 {
						b.WriteRune(r)
						i += end + 1
						continue
					}
				}
			} else if r, n := hexRune(rest, 4); n > 0 {
				b.WriteRune(r)
				i += n
				continue
			}
			b.WriteByte(esc)
		default:
			b.WriteByte(esc)
		}
	}
	return b.String()
}

// hexRune parses exactly width hex digits from the start of s.
func hexRune(s string, width int) (rune, int) {
	if width <= 0 || len(s) < width {
		return 0, 0
	}
	v, err := strconv.ParseUint(s[:width], 16, 32)
	if err != nil || v > utf8.MaxRune {
		return 0, 0
	}
	return rune(v), width
}

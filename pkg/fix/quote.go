package fix

import "strings"

// QuoteLike renders value as a string literal using the quote character of
// raw, an existing literal's source text. Anything but a leading single
// quote yields double quotes.
func QuoteLike(raw, value string) string {
	q := byte('"')
	if len(raw) > 0 && raw[0] == '\'' {
		q = '\''
	}

	var b strings.Builder
	b.Grow(len(value) + 2)
	b.WriteByte(q)
	for i := 0; i < len(value); i++ {
		switch ch := value[i]; ch {
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case q:
			b.WriteByte('\\')
			b.WriteByte(ch)
		default:
			b.WriteByte(ch)
		}
	}
	b.WriteByte(q)
	return b.String()
}

var templateEscaper = strings.NewReplacer(`\`, `\\`, "`", "\\`", "${", `\${`)

// EscapeTemplate escapes text for insertion into the static part of a
// template literal, so backticks and "${" do not end the chunk.
func EscapeTemplate(s string) string {
	return templateEscaper.Replace(s)
}

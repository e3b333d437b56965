package jsformat

import "strings"

// normalizeString re-quotes a string literal with the preferred quote
// unless the content holds more of those quotes than of the other kind.
// Escapes of the quote that is not used are dropped and the enclosing
// quote is escaped; other escapes are kept as written.
func normalizeString(raw string, preferred QuoteStyle) string {
	if len(raw) < 2 {
		return raw
	}
	body := raw[1 : len(raw)-1]
	enclosing := preferred.quote()
	alternate := byte('\'')
	if enclosing == '\'' {
		alternate = '"'
	}
	if strings.Count(body, string(enclosing)) > strings.Count(body, string(alternate)) {
		enclosing = alternate
	}

	var b strings.Builder
	b.Grow(len(raw) + 2)
	b.WriteByte(enclosing)
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c == '\\' && i+1 < len(body) {
			next := body[i+1]
			i++
			if (next == '"' || next == '\'') && next != enclosing {
				b.WriteByte(next)
				continue
			}
			b.WriteByte(c)
			b.WriteByte(next)
			continue
		}
		if c == enclosing {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	b.WriteByte(enclosing)
	return b.String()
}

// normalizeJSXString switches a JSX attribute string to the preferred quote
// when its content does not contain that quote. JSX strings have no escapes.
func normalizeJSXString(raw string, preferred QuoteStyle) string {
	if len(raw) < 2 {
		return raw
	}
	body := raw[1 : len(raw)-1]
	quote := preferred.quote()
	if strings.IndexByte(body, quote) >= 0 {
		return raw
	}
	return string(quote) + body + string(quote)
}

package lexer

import (
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/quill/pkg/source"
	"github.com/yaklabco/quill/pkg/syntax"
)

const (
	lineSeparator      = '\u2028'
	paragraphSeparator = '\u2029'
	byteOrderMark      = '\ufeff'
)

func (l *Lexer) lexRegular() syntax.Kind {
	if kind, ok := l.lexTrivia(); ok {
		return kind
	}

	c := l.peek()
	switch {
	case isDigit(c), c == '.' && isDigit(l.peekAt(1)):
		return l.lexNumber()
	case c == '"' || c == '\'':
		l.lexString(c, true)
		return syntax.TokStringLiteral
	case c == '`':
		l.pos++
		return syntax.TokBacktick
	case c == '\\' || isIdentStart(l.peekRune()):
		return l.lexIdentOrKeyword()
	}
	return l.lexPunct()
}

// lexTrivia lexes whitespace, line breaks, comments and a leading hashbang.
func (l *Lexer) lexTrivia() (syntax.Kind, bool) {
	c := l.peek()
	switch {
	case c == '\n':
		l.pos++
		return syntax.TokNewline, true
	case c == '\r':
		l.pos++
		l.eat('\n')
		return syntax.TokNewline, true
	case c == ' ' || c == '\t' || c == '\v' || c == '\f':
		l.skipWhitespace()
		return syntax.TokWhitespace, true
	case c == '/' && l.peekAt(1) == '/':
		l.skipLineComment()
		return syntax.TokComment, true
	case c == '/' && l.peekAt(1) == '*':
		l.skipBlockComment()
		return syntax.TokComment, true
	case c == '#' && l.pos == 0 && l.peekAt(1) == '!':
		l.skipLineComment()
		return syntax.TokComment, true
	case c >= utf8.RuneSelf:
		switch r := l.peekRune(); {
		case r == lineSeparator || r == paragraphSeparator:
			l.advanceRune()
			return syntax.TokNewline, true
		case r == byteOrderMark:
			l.advanceRune()
			return syntax.TokSkippedTrivia, true
		case unicode.IsSpace(r):
			l.skipWhitespace()
			return syntax.TokWhitespace, true
		}
	}
	return 0, false
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == ' ' || c == '\t' || c == '\v' || c == '\f' {
			l.pos++
			continue
		}
		if c < utf8.RuneSelf {
			return
		}
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if r == lineSeparator || r == paragraphSeparator || r == byteOrderMark || !unicode.IsSpace(r) {
			return
		}
		l.pos += size
	}
}

func (l *Lexer) skipLineComment() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == '\n' || c == '\r' {
			return
		}
		if c >= utf8.RuneSelf {
			if r := l.peekRune(); r == lineSeparator || r == paragraphSeparator {
				return
			}
			l.advanceRune()
			continue
		}
		l.pos++
	}
}

func (l *Lexer) skipBlockComment() {
	start := l.pos
	l.pos += 2
	for l.pos < len(l.src) {
		if l.src[l.pos] == '*' && l.peekAt(1) == '/' {
			l.pos += 2
			return
		}
		l.pos++
	}
	l.errorf(source.NewRange(start, l.pos), "unterminated block comment")
}

func (l *Lexer) lexNumber() syntax.Kind {
	start := l.pos
	if l.peek() == '0' {
		switch l.peekAt(1) | 0x20 {
		case 'x':
			return l.lexPrefixedNumber(start, isHexDigit)
		case 'o':
			return l.lexPrefixedNumber(start, isOctalDigit)
		case 'b':
			return l.lexPrefixedNumber(start, isBinaryDigit)
		}
	}

	integer := true
	l.skipDigits(isDigit)
	if l.peek() == '.' {
		integer = false
		l.pos++
		l.skipDigits(isDigit)
	}
	if l.peek()|0x20 == 'e' {
		next := l.peekAt(1)
		if isDigit(next) || ((next == '+' || next == '-') && isDigit(l.peekAt(2))) {
			integer = false
			l.pos += 2
			l.skipDigits(isDigit)
		}
	}
	return l.finishNumber(integer)
}

func (l *Lexer) lexPrefixedNumber(start int, accept func(byte) bool) syntax.Kind {
	l.pos += 2
	l.skipDigits(accept)
	if l.pos == start+2 {
		l.errorf(source.NewRange(start, l.pos), "expected digits after the numeric prefix")
	}
	return l.finishNumber(true)
}

func (l *Lexer) finishNumber(integer bool) syntax.Kind {
	kind := syntax.TokNumberLiteral
	if integer && l.peek() == 'n' {
		l.pos++
		kind = syntax.TokBigIntLiteral
	}
	if l.pos < len(l.src) && isIdentStart(l.peekRune()) {
		identStart := l.pos
		l.skipIdentParts()
		l.errorf(source.NewRange(identStart, l.pos), "an identifier cannot appear immediately after a numeric literal")
	}
	return kind
}

func (l *Lexer) skipDigits(accept func(byte) bool) {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if accept(c) || (c == '_' && accept(l.peekAt(1))) {
			l.pos++
			continue
		}
		return
	}
}

// lexString consumes a quoted string. When escapes is false, as in JSX
// attribute values, a backslash is an ordinary character and line breaks
// are allowed.
func (l *Lexer) lexString(quote byte, escapes bool) {
	start := l.pos
	l.pos++
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == quote:
			l.pos++
			return
		case escapes && c == '\\':
			l.pos++
			if l.peek() == '\r' && l.peekAt(1) == '\n' {
				l.pos++
			}
			if l.pos < len(l.src) {
				l.advanceRune()
			}
		case escapes && (c == '\n' || c == '\r'):
			l.errorf(source.NewRange(start, l.pos), "unterminated string literal")
			return
		default:
			l.pos++
		}
	}
	l.errorf(source.NewRange(start, l.pos), "unterminated string literal")
}

func (l *Lexer) lexIdentOrKeyword() syntax.Kind {
	start := l.pos
	escaped := l.skipIdentParts()
	if l.pos == start {
		// A backslash that does not start a unicode escape.
		l.pos++
		l.errorf(source.NewRange(start, l.pos), "unexpected character `\\`")
		return syntax.TokError
	}
	if escaped {
		return syntax.TokIdent
	}
	if kind, ok := syntax.ReservedKeywordKind(l.src[start:l.pos]); ok {
		return kind
	}
	return syntax.TokIdent
}

// skipIdentParts consumes identifier characters and reports whether a
// unicode escape sequence was among them.
func (l *Lexer) skipIdentParts() bool {
	escaped := false
	first := true
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == '\\' {
			if !l.skipUnicodeEscape() {
				return escaped
			}
			escaped = true
			first = false
			continue
		}
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if first && !isIdentStart(r) || !first && !isIdentPart(r) {
			return escaped
		}
		l.pos += size
		first = false
	}
	return escaped
}

func (l *Lexer) skipUnicodeEscape() bool {
	if l.peekAt(1) != 'u' {
		return false
	}
	if l.peekAt(2) == '{' {
		end := l.pos + 3
		for end < len(l.src) && isHexDigit(l.src[end]) {
			end++
		}
		if end < len(l.src) && l.src[end] == '}' && end > l.pos+3 {
			l.pos = end + 1
			return true
		}
		return false
	}
	for i := 2; i < 6; i++ {
		if !isHexDigit(l.peekAt(i)) {
			return false
		}
	}
	l.pos += 6
	return true
}

func (l *Lexer) lexTemplateElement() syntax.Kind {
	start := l.pos
	switch {
	case l.peek() == '`':
		l.pos++
		return syntax.TokBacktick
	case l.peek() == '$' && l.peekAt(1) == '{':
		l.pos += 2
		return syntax.TokDollarCurly
	}
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == '`', c == '$' && l.peekAt(1) == '{':
			return syntax.TokTemplateChunk
		case c == '\\':
			l.pos++
			if l.pos < len(l.src) {
				l.advanceRune()
			}
		default:
			l.pos++
		}
	}
	l.errorf(source.NewRange(start, l.pos), "unterminated template literal")
	return syntax.TokTemplateChunk
}

func (l *Lexer) lexRegex() syntax.Kind {
	start := l.pos
	l.pos++
	inClass := false
	for {
		if l.pos >= len(l.src) {
			l.errorf(source.NewRange(start, l.pos), "unterminated regex literal")
			return syntax.TokRegexLiteral
		}
		c := l.src[l.pos]
		switch {
		case c == '\n' || c == '\r':
			l.errorf(source.NewRange(start, l.pos), "unterminated regex literal")
			return syntax.TokRegexLiteral
		case c == '\\':
			l.pos++
			if l.pos < len(l.src) && l.src[l.pos] != '\n' && l.src[l.pos] != '\r' {
				l.advanceRune()
			}
			continue
		case c == '[':
			inClass = true
		case c == ']':
			inClass = false
		case c == '/' && !inClass:
			l.pos++
			for l.pos < len(l.src) && isIdentPart(l.peekRune()) {
				l.advanceRune()
			}
			return syntax.TokRegexLiteral
		}
		l.pos++
	}
}

func (l *Lexer) lexGreaterThan() syntax.Kind {
	l.pos++
	switch {
	case l.peek() == '>' && l.peekAt(1) == '>' && l.peekAt(2) == '=':
		l.pos += 3
		return syntax.TokUShrEq
	case l.peek() == '>' && l.peekAt(1) == '>':
		l.pos += 2
		return syntax.TokUShr
	case l.peek() == '>' && l.peekAt(1) == '=':
		l.pos += 2
		return syntax.TokShrEq
	case l.peek() == '>':
		l.pos++
		return syntax.TokShr
	case l.peek() == '=':
		l.pos++
		return syntax.TokGtEq
	}
	return syntax.TokRAngle
}

func (l *Lexer) lexJSXChild() syntax.Kind {
	switch l.peek() {
	case '{':
		l.pos++
		return syntax.TokLCurly
	case '<':
		l.pos++
		return syntax.TokLAngle
	}
	for l.pos < len(l.src) && l.src[l.pos] != '{' && l.src[l.pos] != '<' {
		l.pos++
	}
	return syntax.TokJSXText
}

func (l *Lexer) lexJSXTag() syntax.Kind {
	if kind, ok := l.lexTrivia(); ok {
		return kind
	}
	c := l.peek()
	switch {
	case c == '"' || c == '\'':
		l.lexString(c, false)
		return syntax.TokJSXStringLiteral
	case isIdentStart(l.peekRune()):
		l.lexJSXName()
		return syntax.TokJSXIdent
	}
	return l.lexRegular()
}

func (l *Lexer) lexJSXName() {
	for l.pos < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if r != '-' && !isIdentPart(r) {
			return
		}
		l.pos += size
	}
}

func (l *Lexer) lexJSON() syntax.Kind {
	if kind, ok := l.lexTrivia(); ok {
		return kind
	}
	c := l.peek()
	switch {
	case c == '-' && isDigit(l.peekAt(1)), isDigit(c):
		if c == '-' {
			l.pos++
		}
		return l.lexNumber()
	case c == '"' || c == '\'':
		l.lexString(c, true)
		return syntax.TokStringLiteral
	case isIdentStart(l.peekRune()):
		return l.lexIdentOrKeyword()
	}
	return l.lexPunct()
}

func (l *Lexer) lexPunct() syntax.Kind {
	start := l.pos
	c := l.peek()
	l.pos++
	switch c {
	case ';':
		return syntax.TokSemicolon
	case ',':
		return syntax.TokComma
	case '(':
		return syntax.TokLParen
	case ')':
		return syntax.TokRParen
	case '{':
		return syntax.TokLCurly
	case '}':
		return syntax.TokRCurly
	case '[':
		return syntax.TokLBrack
	case ']':
		return syntax.TokRBrack
	case '~':
		return syntax.TokTilde
	case '@':
		return syntax.TokAt
	case '#':
		return syntax.TokHash
	case ':':
		return syntax.TokColon
	case '>':
		return syntax.TokRAngle
	case '<':
		switch {
		case l.peek() == '<' && l.peekAt(1) == '=':
			l.pos += 2
			return syntax.TokShlEq
		case l.eat('<'):
			return syntax.TokShl
		case l.eat('='):
			return syntax.TokLtEq
		}
		return syntax.TokLAngle
	case '?':
		switch {
		case l.peek() == '?' && l.peekAt(1) == '=':
			l.pos += 2
			return syntax.TokQuestion2Eq
		case l.eat('?'):
			return syntax.TokQuestion2
		case l.peek() == '.' && !isDigit(l.peekAt(1)):
			l.pos++
			return syntax.TokQuestionDot
		}
		return syntax.TokQuestion
	case '&':
		return l.doubled('&', syntax.TokAmp, syntax.TokAmpEq, syntax.TokAmp2, syntax.TokAmp2Eq)
	case '|':
		return l.doubled('|', syntax.TokPipe, syntax.TokPipeEq, syntax.TokPipe2, syntax.TokPipe2Eq)
	case '*':
		return l.doubled('*', syntax.TokStar, syntax.TokStarEq, syntax.TokStar2, syntax.TokStar2Eq)
	case '+':
		switch {
		case l.eat('+'):
			return syntax.TokPlus2
		case l.eat('='):
			return syntax.TokPlusEq
		}
		return syntax.TokPlus
	case '-':
		switch {
		case l.eat('-'):
			return syntax.TokMinus2
		case l.eat('='):
			return syntax.TokMinusEq
		}
		return syntax.TokMinus
	case '/':
		if l.eat('=') {
			return syntax.TokSlashEq
		}
		return syntax.TokSlash
	case '^':
		if l.eat('=') {
			return syntax.TokCaretEq
		}
		return syntax.TokCaret
	case '%':
		if l.eat('=') {
			return syntax.TokPercentEq
		}
		return syntax.TokPercent
	case '.':
		if l.peek() == '.' && l.peekAt(1) == '.' {
			l.pos += 2
			return syntax.TokDot3
		}
		return syntax.TokDot
	case '=':
		switch {
		case l.peek() == '=' && l.peekAt(1) == '=':
			l.pos += 2
			return syntax.TokEq3
		case l.eat('='):
			return syntax.TokEq2
		case l.eat('>'):
			return syntax.TokFatArrow
		}
		return syntax.TokEq
	case '!':
		switch {
		case l.peek() == '=' && l.peekAt(1) == '=':
			l.pos += 2
			return syntax.TokNeq2
		case l.eat('='):
			return syntax.TokNeq
		}
		return syntax.TokBang
	}

	l.pos = start
	r := l.advanceRune()
	if r == utf8.RuneError {
		l.errorf(source.NewRange(start, l.pos), "invalid UTF-8 sequence")
	} else {
		l.errorf(source.NewRange(start, l.pos), "unexpected character `%c`", r)
	}
	return syntax.TokError
}

// doubled lexes operators of the form x, x=, xx and xx= after the first x.
func (l *Lexer) doubled(c byte, single, singleEq, double, doubleEq syntax.Kind) syntax.Kind {
	switch {
	case l.peek() == c && l.peekAt(1) == '=':
		l.pos += 2
		return doubleEq
	case l.eat(c):
		return double
	case l.eat('='):
		return singleEq
	}
	return single
}

func isDigit(c byte) bool       { return c >= '0' && c <= '9' }
func isOctalDigit(c byte) bool  { return c >= '0' && c <= '7' }
func isBinaryDigit(c byte) bool { return c == '0' || c == '1' }

func isHexDigit(c byte) bool {
	return isDigit(c) || (c|0x20 >= 'a' && c|0x20 <= 'f')
}

func isIdentStart(r rune) bool {
	if r < utf8.RuneSelf {
		return r == '$' || r == '_' || (r|0x20 >= 'a' && r|0x20 <= 'z')
	}
	return unicode.IsLetter(r) || unicode.Is(unicode.Nl, r)
}

func isIdentPart(r rune) bool {
	if r < utf8.RuneSelf {
		return isIdentStart(r) || (r >= '0' && r <= '9')
	}
	return isIdentStart(r) || unicode.In(r, unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc) ||
		r == '\u200c' || r == '\u200d'
}

package printf

import (
	"strings"
	"unicode/utf8"

	"src.shprintf.dev/pkg/diag"
)

// Mode selects the token set used by Lexer.Read.
type Mode uint8

const (
	// ModeOuter lexes the text of a format string outside directives.
	ModeOuter Mode = iota
	// ModeDirective lexes the inside of a directive, after the %.
	ModeDirective
	// ModeEcho lexes the argument of %b, like echo -e does.
	ModeEcho
)

// Conversion letters recognized by the lexer. Some of them are rejected by
// the compiler.
const typeLetters = "sqbcdiouxXeEfFgG"

// Characters that may follow a backslash to form a OneChar escape.
const oneCharEscapes = `abeEfnrtv\"'?`

// Lexer splits a string into tokens. The caller chooses the mode for every
// token it reads; the lexer keeps no mode of its own.
type Lexer struct {
	src string
	pos int
}

// NewLexer creates a Lexer for src.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src}
}

// Read returns the next token, lexed according to mode. Once the input is
// exhausted it keeps returning EOF tokens.
func (l *Lexer) Read(mode Mode) Token {
	if l.pos >= len(l.src) {
		return l.emit(EOF, 0)
	}
	switch mode {
	case ModeDirective:
		return l.lexDirective()
	case ModeEcho:
		if l.src[l.pos] == '\\' {
			return l.lexEscape(true)
		}
		return l.lexLiterals("\\")
	default:
		switch l.src[l.pos] {
		case '%':
			if l.hasPrefix("%%") {
				return l.emit(EscapedPercent, 2)
			}
			return l.emit(PercentSign, 1)
		case '\\':
			return l.lexEscape(false)
		}
		return l.lexLiterals("%\\")
	}
}

func (l *Lexer) emit(kind TokenKind, n int) Token {
	t := Token{kind, l.src[l.pos : l.pos+n], diag.Ranging{From: l.pos, To: l.pos + n}}
	l.pos += n
	return t
}

func (l *Lexer) hasPrefix(s string) bool {
	return strings.HasPrefix(l.src[l.pos:], s)
}

func (l *Lexer) lexLiterals(stops string) Token {
	n := strings.IndexAny(l.src[l.pos:], stops)
	if n == -1 {
		n = len(l.src) - l.pos
	}
	return l.emit(Literals, n)
}

// Lexes an escape sequence starting at a backslash.
func (l *Lexer) lexEscape(echo bool) Token {
	rest := l.src[l.pos+1:]
	if rest == "" {
		return l.emit(BadBackslash, 1)
	}
	switch c := rest[0]; {
	case strings.IndexByte(oneCharEscapes, c) >= 0:
		return l.emit(OneChar, 2)
	case c == 'c' && echo:
		return l.emit(Stop, 2)
	case c == 'x':
		return l.lexDigits(Hex, 2, 2, isHexDigit)
	case c == 'u':
		return l.lexDigits(Unicode4, 2, 4, isHexDigit)
	case c == 'U':
		return l.lexDigits(Unicode8, 2, 8, isHexDigit)
	case echo && c == '0':
		// \0 followed by up to 3 octal digits; a bare \0 is NUL.
		n := 2 + countPrefix(rest[1:], 3, isOctalDigit)
		return l.emit(Octal, n)
	case !echo && isOctalDigit(c):
		return l.lexDigits(Octal, 1, 3, isOctalDigit)
	}
	_, w := utf8.DecodeRuneInString(rest)
	return l.emit(BadBackslash, 1+w)
}

// Lexes an escape whose prefix has length skip, followed by between 1 and max
// digits. Without any digit the prefix is a BadBackslash.
func (l *Lexer) lexDigits(kind TokenKind, skip, max int, ok func(byte) bool) Token {
	n := countPrefix(l.src[l.pos+skip:], max, ok)
	if n == 0 {
		return l.emit(BadBackslash, skip)
	}
	return l.emit(kind, skip+n)
}

func (l *Lexer) lexDirective() Token {
	switch c := l.src[l.pos]; {
	case c == '-' || c == '+' || c == ' ' || c == '#':
		return l.emit(Flag, 1)
	case c == '0':
		return l.emit(Zero, 1)
	case '1' <= c && c <= '9':
		return l.emit(Num, 1+countPrefix(l.src[l.pos+1:], -1, isDecimalDigit))
	case c == '*':
		return l.emit(Star, 1)
	case c == '.':
		return l.emit(Dot, 1)
	case strings.IndexByte(typeLetters, c) >= 0:
		return l.emit(Type, 1)
	case c == '(':
		// (strftime format)T, with no parentheses inside.
		if n := strings.IndexAny(l.src[l.pos+1:], "()"); n != -1 &&
			l.src[l.pos+1+n] == ')' && strings.HasPrefix(l.src[l.pos+2+n:], "T") {
			return l.emit(Time, n+3)
		}
	}
	_, w := utf8.DecodeRuneInString(l.src[l.pos:])
	return l.emit(Unknown, w)
}

// Returns the length of the longest prefix of s, no longer than max unless
// max is -1, consisting of bytes satisfying ok.
func countPrefix(s string, max int, ok func(byte) bool) int {
	n := 0
	for n < len(s) && (max == -1 || n < max) && ok(s[n]) {
		n++
	}
	return n
}

func isDecimalDigit(c byte) bool { return '0' <= c && c <= '9' }

func isOctalDigit(c byte) bool { return '0' <= c && c <= '7' }

func isHexDigit(c byte) bool {
	return isDecimalDigit(c) || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

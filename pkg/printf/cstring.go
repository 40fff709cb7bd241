package printf

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

var oneCharValues = map[byte]string{
	'a': "\a", 'b': "\b", 'e': "\033", 'E': "\033", 'f': "\f", 'n': "\n",
	'r': "\r", 't': "\t", 'v': "\v", '\\': "\\", '"': "\"", '\'': "'", '?': "?",
}

// DecodeToken returns the text a literal token stands for. The second return
// value is true for a \c token, which stands for no text but stops all
// further output.
func DecodeToken(t Token) (string, bool) {
	switch t.Kind {
	case OneChar:
		return oneCharValues[t.Val[1]], false
	case Hex:
		return string([]byte{byte(mustParseUint(t.Val[2:], 16))}), false
	case Octal:
		digits := strings.TrimLeft(t.Val, "\\")
		if digits == "" {
			return "\x00", false
		}
		// \0400 overflows a byte; wrap as C does.
		return string([]byte{byte(mustParseUint(digits, 8))}), false
	case Unicode4, Unicode8:
		r := rune(mustParseUint(t.Val[2:], 16))
		if !utf8.ValidRune(r) {
			r = utf8.RuneError
		}
		return string(r), false
	case Stop:
		return "", true
	case EscapedPercent:
		return "%", false
	default:
		// Literals and BadBackslash stand for themselves.
		return t.Val, false
	}
}

// DecodeEcho decodes backslash escapes in s the way echo -e does. The second
// return value reports whether decoding stopped at \c.
func DecodeEcho(s string) (string, bool) {
	var sb strings.Builder
	l := NewLexer(s)
	for {
		t := l.Read(ModeEcho)
		if t.Kind == EOF {
			return sb.String(), false
		}
		text, stop := DecodeToken(t)
		if stop {
			return sb.String(), true
		}
		sb.WriteString(text)
	}
}

// Only called on digits already validated by the lexer.
func mustParseUint(s string, base int) uint64 {
	n, err := strconv.ParseUint(s, base, 32)
	if err != nil {
		panic(err)
	}
	return n
}

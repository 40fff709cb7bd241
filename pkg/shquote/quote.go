// Package shquote quotes strings so that POSIX-style shells read them back
// unchanged, and implements the inverse for the same subset of shell syntax.
package shquote

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Quote returns a shell word that evaluates to s. If s consists only of
// characters that never need quoting, it is returned as is. Otherwise it is
// single-quoted if possible, or written as an ANSI-C $'...' string when it
// contains single quotes, unprintable characters or invalid UTF-8.
func Quote(s string) string {
	if s == "" {
		return "''"
	}
	bare, single := true, true
	for i, r := range s {
		if r == utf8.RuneError {
			if _, w := utf8.DecodeRuneInString(s[i:]); w == 1 {
				// Invalid UTF-8 sequence.
				return quoteANSIC(s)
			}
		}
		if !unicode.IsPrint(r) {
			return quoteANSIC(s)
		}
		if r == '\'' {
			single = false
		}
		if !allowedBare(r) {
			bare = false
		}
	}
	switch {
	case bare:
		return s
	case single:
		return "'" + s + "'"
	default:
		return quoteANSIC(s)
	}
}

func allowedBare(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') ||
		('0' <= r && r <= '9') || strings.ContainsRune("_-+./:@%,=", r)
}

var ansiCEscape = map[rune]byte{
	'\a': 'a', '\b': 'b', '\f': 'f', '\n': 'n', '\r': 'r', '\t': 't',
	'\v': 'v', '\033': 'E', '\\': '\\', '\'': '\'',
}

// rtohex is optimized for the common cases encountered when encoding strings
// and should be more efficient than using fmt.Sprintf("%x").
func rtohex(r rune, w int) []byte {
	bytes := make([]byte, w)
	for i := w - 1; i >= 0; i-- {
		d := byte(r % 16)
		r /= 16
		if d <= 9 {
			bytes[i] = '0' + d
		} else {
			bytes[i] = 'a' + d - 10
		}
	}
	return bytes
}

func quoteANSIC(s string) string {
	var sb strings.Builder
	sb.WriteString("$'")
	for s != "" {
		r, w := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError && w == 1 {
			// An invalid UTF-8 sequence; encode the first byte as a hex
			// literal.
			sb.WriteString(`\x`)
			sb.Write(rtohex(rune(s[0]), 2))
		} else if e, ok := ansiCEscape[r]; ok {
			sb.WriteByte('\\')
			sb.WriteByte(e)
		} else if unicode.IsPrint(r) && r != utf8.RuneError {
			sb.WriteRune(r)
		} else if r <= 0x7f {
			sb.WriteString(`\x`)
			sb.Write(rtohex(r, 2))
		} else if r <= 0xffff {
			sb.WriteString(`\u`)
			sb.Write(rtohex(r, 4))
		} else {
			sb.WriteString(`\U`)
			sb.Write(rtohex(r, 8))
		}
		s = s[w:]
	}
	sb.WriteByte('\'')
	return sb.String()
}

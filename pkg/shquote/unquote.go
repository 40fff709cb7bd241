package shquote

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Errors returned by Unquote.
var (
	ErrUnterminated      = errors.New("unterminated quoted string")
	ErrTrailingBackslash = errors.New("trailing backslash")
)

// Unquote returns the value of a single shell word made of bare characters,
// backslash escapes, and '...', "..." and $'...' strings. It does not perform
// any expansion; $ outside $'...' is an ordinary character.
func Unquote(word string) (string, error) {
	var sb strings.Builder
	for i := 0; i < len(word); {
		switch {
		case strings.HasPrefix(word[i:], "$'"):
			n, err := ansiC(&sb, word[i+2:])
			if err != nil {
				return "", err
			}
			i += 2 + n
		case word[i] == '\'':
			end := strings.IndexByte(word[i+1:], '\'')
			if end == -1 {
				return "", ErrUnterminated
			}
			sb.WriteString(word[i+1 : i+1+end])
			i += end + 2
		case word[i] == '"':
			n, err := doubleQuoted(&sb, word[i+1:])
			if err != nil {
				return "", err
			}
			i += 1 + n
		case word[i] == '\\':
			if i+1 == len(word) {
				return "", ErrTrailingBackslash
			}
			_, w := utf8.DecodeRuneInString(word[i+1:])
			sb.WriteString(word[i+1 : i+1+w])
			i += 1 + w
		default:
			sb.WriteByte(word[i])
			i++
		}
	}
	return sb.String(), nil
}

// Decodes the body of a "..." string up to and including the closing quote,
// returning the number of bytes consumed.
func doubleQuoted(sb *strings.Builder, s string) (int, error) {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			return i + 1, nil
		case '\\':
			if i+1 < len(s) && strings.IndexByte("\\\"$`", s[i+1]) >= 0 {
				i++
			}
		}
		sb.WriteByte(s[i])
	}
	return 0, ErrUnterminated
}

var ansiCUnescape = map[byte]byte{
	'a': '\a', 'b': '\b', 'f': '\f', 'n': '\n', 'r': '\r', 't': '\t',
	'v': '\v', 'e': '\033', 'E': '\033', '\\': '\\', '\'': '\'', '"': '"',
	'?': '?',
}

// Decodes the body of a $'...' string up to and including the closing quote,
// returning the number of bytes consumed.
func ansiC(sb *strings.Builder, s string) (int, error) {
	for i := 0; i < len(s); {
		switch s[i] {
		case '\'':
			return i + 1, nil
		case '\\':
			if i+1 == len(s) {
				return 0, ErrUnterminated
			}
			i += 1 + unescapeANSIC(sb, s[i+1:])
		default:
			sb.WriteByte(s[i])
			i++
		}
	}
	return 0, ErrUnterminated
}

// Decodes one escape sequence, given the text after the backslash, and
// returns the number of bytes consumed.
func unescapeANSIC(sb *strings.Builder, s string) int {
	c := s[0]
	if b, ok := ansiCUnescape[c]; ok {
		sb.WriteByte(b)
		return 1
	}
	switch c {
	case 'x', 'u', 'U':
		max := map[byte]int{'x': 2, 'u': 4, 'U': 8}[c]
		n := 0
		for n < max && 1+n < len(s) && isHex(s[1+n]) {
			n++
		}
		if n == 0 {
			break
		}
		v, _ := strconv.ParseUint(s[1:1+n], 16, 32)
		if c == 'x' {
			sb.WriteByte(byte(v))
		} else {
			sb.WriteRune(rune(v))
		}
		return 1 + n
	}
	if '0' <= c && c <= '7' {
		n := 1
		for n < 3 && n < len(s) && '0' <= s[n] && s[n] <= '7' {
			n++
		}
		v, _ := strconv.ParseUint(s[:n], 8, 16)
		sb.WriteByte(byte(v))
		return n
	}
	// Unknown escapes are kept, backslash included.
	sb.WriteByte('\\')
	sb.WriteByte(c)
	return 1
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

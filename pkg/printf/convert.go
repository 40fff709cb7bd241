package printf

import (
	"strconv"
	"strings"
)

// Parses an integer argument. Besides decimal numbers, a string starting with
// a quote yields the code of the byte after it, and the empty string is 0.
func parseInteger(s string) (int64, bool) {
	if s == "" {
		return 0, true
	}
	if n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
		return n, true
	}
	if s[0] == '\'' || s[0] == '"' {
		if len(s) >= 2 {
			return int64(s[1]), true
		}
		return 0, true
	}
	return 0, false
}

func formatUnsigned(n uint64, verb byte) string {
	switch verb {
	case 'o':
		return strconv.FormatUint(n, 8)
	case 'x':
		return strconv.FormatUint(n, 16)
	case 'X':
		return strings.ToUpper(strconv.FormatUint(n, 16))
	default:
		return strconv.FormatUint(n, 10)
	}
}

// Truncates s to n bytes; n < 0 means no truncation.
func truncate(s string, n int) string {
	if n >= 0 && n < len(s) {
		return s[:n]
	}
	return s
}

// Pads s to width bytes according to the flags of d. A signed number padded
// with zeros keeps its sign in front.
func pad(s string, width int, d *Percent, signed bool) string {
	n := width - len(s)
	if n <= 0 {
		return s
	}
	switch {
	case d.HasFlag('-'):
		return s + strings.Repeat(" ", n)
	case d.HasFlag('0'):
		if signed && strings.HasPrefix(s, "-") {
			return "-" + strings.Repeat("0", n) + s[1:]
		}
		return strings.Repeat("0", n) + s
	default:
		return strings.Repeat(" ", n) + s
	}
}

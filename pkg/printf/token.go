package printf

import (
	"fmt"

	"src.shprintf.dev/pkg/diag"
)

// TokenKind identifies the kind of a Token.
type TokenKind uint8

// Kinds of tokens produced in ModeOuter and ModeEcho.
const (
	EOF TokenKind = iota
	// A run of bytes with no special meaning.
	Literals
	// A single-character escape like \n.
	OneChar
	// \xHH.
	Hex
	// \NNN in the format string, \0NNN in a %b argument.
	Octal
	// \uHHHH.
	Unicode4
	// \UHHHHHHHH.
	Unicode8
	// A backslash not starting a known escape; it stands for itself.
	BadBackslash
	// \c, only recognized in ModeEcho.
	Stop
	// %%.
	EscapedPercent
	// A % starting a directive.
	PercentSign
)

// Kinds of tokens produced in ModeDirective.
const (
	Flag TokenKind = iota + PercentSign + 1
	Zero
	Num
	Star
	Dot
	Type
	Time
	Unknown
)

var tokenKindNames = [...]string{
	EOF: "EOF", Literals: "Literals", OneChar: "OneChar", Hex: "Hex",
	Octal: "Octal", Unicode4: "Unicode4", Unicode8: "Unicode8",
	BadBackslash: "BadBackslash", Stop: "Stop",
	EscapedPercent: "EscapedPercent", PercentSign: "PercentSign",
	Flag: "Flag", Zero: "Zero", Num: "Num", Star: "Star", Dot: "Dot",
	Type: "Type", Time: "Time", Unknown: "Unknown",
}

func (k TokenKind) String() string {
	if int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Token is a lexical token of the format language. Its range is relative to
// the text it was lexed from.
type Token struct {
	Kind TokenKind
	Val  string
	diag.Ranging
}

func (t Token) String() string {
	return fmt.Sprintf("%v %q %d-%d", t.Kind, t.Val, t.From, t.To)
}

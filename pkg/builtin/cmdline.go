package builtin

import (
	"strings"

	"src.shprintf.dev/pkg/diag"
	"src.shprintf.dev/pkg/shquote"
)

// CmdLineSourceName is the source name used for diagnostics pointing into a
// command line.
const CmdLineSourceName = "[command]"

// Word is a word of a command line, after quote removal. Its range covers the
// quoted form of the word in the command line's source.
type Word struct {
	Text string
	diag.Ranging
}

// CmdLine is an invocation of a builtin.
type CmdLine struct {
	// Source is the command line as a user would type it.
	Source string
	// Words are the arguments, not including the name of the builtin.
	Words []Word
}

// NewCmdLine builds a CmdLine from the name of a builtin and its arguments,
// quoting each argument.
func NewCmdLine(name string, args []string) *CmdLine {
	var sb strings.Builder
	sb.WriteString(name)
	words := make([]Word, len(args))
	for i, arg := range args {
		sb.WriteByte(' ')
		from := sb.Len()
		sb.WriteString(shquote.Quote(arg))
		words[i] = Word{arg, diag.Ranging{From: from, To: sb.Len()}}
	}
	return &CmdLine{sb.String(), words}
}

// Texts returns the text of all words.
func (cl *CmdLine) Texts() []string {
	texts := make([]string, len(cl.Words))
	for i, w := range cl.Words {
		texts[i] = w.Text
	}
	return texts
}

// Context returns a Context for the given range of the command line.
func (cl *CmdLine) Context(r diag.Ranger) *diag.Context {
	return diag.NewContext(CmdLineSourceName, cl.Source, r)
}

// Returns a range covering words i to j inclusive, or the end of the command
// line if there are no words in that range.
func (cl *CmdLine) wordsRange(i, j int) diag.Ranging {
	if i > j || i >= len(cl.Words) {
		return diag.PointRanging(len(cl.Source))
	}
	return diag.MixedRanging(cl.Words[i], cl.Words[j])
}

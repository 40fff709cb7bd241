package printf

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"time"
)

// Loads a location from a POSIX TZ value of the form
//
//	std offset [dst [offset] [,start[/time],end[/time]]]
//
// The value is checked here and then handed to the time package as the
// footer of a zone file with no transitions, which makes it follow the DST
// rules.
func loadPOSIXLocation(tz string) (*time.Location, error) {
	std, offset, ok := parsePOSIXTZ(tz)
	if !ok {
		return nil, fmt.Errorf("invalid POSIX TZ value %q", tz)
	}
	return time.LoadLocationFromTZData(tz, posixZoneData(std, -offset, tz))
}

// Returns the standard time name and offset in seconds west of UTC.
func parsePOSIXTZ(tz string) (string, int, bool) {
	p := tzParser{s: tz}
	std, ok := p.name()
	if !ok {
		return "", 0, false
	}
	offset, ok := p.clock(24)
	if !ok {
		return "", 0, false
	}
	if p.done() {
		return std, offset, true
	}
	if _, ok := p.name(); !ok {
		return "", 0, false
	}
	if !p.done() && p.peek() != ',' {
		if _, ok := p.clock(24); !ok {
			return "", 0, false
		}
	}
	if !p.done() {
		if !p.skip(',') || !p.rule() || !p.skip(',') || !p.rule() {
			return "", 0, false
		}
	}
	if !p.done() {
		return "", 0, false
	}
	return std, offset, true
}

type tzParser struct {
	s   string
	pos int
}

func (p *tzParser) done() bool { return p.pos == len(p.s) }

func (p *tzParser) peek() byte {
	if p.done() {
		return 0
	}
	return p.s[p.pos]
}

func (p *tzParser) skip(b byte) bool {
	if p.done() || p.peek() != b {
		return false
	}
	p.pos++
	return true
}

// Either at least three letters, or a quoted <...> name of at least three
// alphanumerics and signs.
func (p *tzParser) name() (string, bool) {
	if p.skip('<') {
		from := p.pos
		for !p.done() && p.peek() != '>' {
			c := p.peek()
			if !isAlnum(c) && c != '+' && c != '-' {
				return "", false
			}
			p.pos++
		}
		name := p.s[from:p.pos]
		return name, p.skip('>') && len(name) >= 3
	}
	from := p.pos
	for isLetter(p.peek()) {
		p.pos++
	}
	return p.s[from:p.pos], p.pos-from >= 3
}

// Parses [+-]hh[:mm[:ss]] and returns it in seconds.
func (p *tzParser) clock(maxHours int) (int, bool) {
	sign := 1
	if p.skip('-') {
		sign = -1
	} else {
		p.skip('+')
	}
	h, ok := p.number(maxHours)
	if !ok {
		return 0, false
	}
	secs := h * 3600
	for _, unit := range []int{60, 1} {
		if !p.skip(':') {
			break
		}
		n, ok := p.number(59)
		if !ok {
			return 0, false
		}
		secs += n * unit
	}
	return sign * secs, true
}

// Jn, n or Mm.w.d, followed by an optional /time.
func (p *tzParser) rule() bool {
	var ok bool
	switch {
	case p.skip('J'):
		var n int
		n, ok = p.number(365)
		ok = ok && n >= 1
	case p.skip('M'):
		var m, w int
		m, ok = p.number(12)
		ok = ok && m >= 1 && p.skip('.')
		if ok {
			w, ok = p.number(5)
			ok = ok && w >= 1 && p.skip('.')
		}
		if ok {
			_, ok = p.number(6)
		}
	default:
		_, ok = p.number(365)
	}
	if ok && p.skip('/') {
		_, ok = p.clock(167)
	}
	return ok
}

func (p *tzParser) number(max int) (int, bool) {
	from, n := p.pos, 0
	for isDecimalDigit(p.peek()) {
		n = n*10 + int(p.peek()-'0')
		p.pos++
		if n > max {
			return 0, false
		}
	}
	return n, p.pos > from
}

func isLetter(c byte) bool { return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' }

func isAlnum(c byte) bool { return isLetter(c) || isDecimalDigit(c) }

// Builds version 2 TZif data with a single zone type and no transitions,
// followed by the TZ footer.
func posixZoneData(abbr string, utcOffset int, footer string) []byte {
	var b bytes.Buffer
	header := func(typecnt, charcnt int) {
		b.WriteString("TZif2")
		b.Write(make([]byte, 15))
		// isutcnt, isstdcnt, leapcnt, timecnt, typecnt, charcnt
		for _, n := range []int{0, 0, 0, 0, typecnt, charcnt} {
			binary.Write(&b, binary.BigEndian, uint32(n))
		}
	}
	// Empty version 1 block.
	header(0, 0)
	header(1, len(abbr)+1)
	binary.Write(&b, binary.BigEndian, int32(utcOffset))
	b.WriteByte(0) // isdst
	b.WriteByte(0) // abbreviation index
	b.WriteString(abbr)
	b.WriteByte(0)
	b.WriteString("\n" + footer + "\n")
	return b.Bytes()
}

package vars

import (
	"errors"
	"strings"
)

// Target is the parsed form of an assignment target: NAME or NAME[INDEX].
type Target struct {
	Name string
	// Index is the text between the brackets; only meaningful if Indexed.
	Index   string
	Indexed bool
}

// ErrBadTarget is returned by ParseTarget for text that is not a valid
// target.
var ErrBadTarget = errors.New("invalid assignment target")

// ParseTarget parses NAME or NAME[INDEX]. NAME follows the shell rules for
// identifiers. INDEX may be any text without brackets, including empty
// text.
func ParseTarget(s string) (Target, error) {
	name, rest, indexed := strings.Cut(s, "[")
	if !IsName(name) {
		return Target{}, ErrBadTarget
	}
	if !indexed {
		return Target{Name: name}, nil
	}
	index, ok := strings.CutSuffix(rest, "]")
	if !ok || strings.ContainsAny(index, "[]") {
		return Target{}, ErrBadTarget
	}
	return Target{Name: name, Index: index, Indexed: true}, nil
}

// String returns the target in the form accepted by ParseTarget.
func (t Target) String() string {
	if t.Indexed {
		return t.Name + "[" + t.Index + "]"
	}
	return t.Name
}

// Var returns the variable in s that t refers to.
func (t Target) Var(s *Store) Var {
	if t.Indexed {
		return s.Element(t.Name, t.Index)
	}
	return s.Named(t.Name)
}

// IsName reports whether s is a valid variable name: a letter or underscore
// followed by letters, digits and underscores.
func IsName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_', 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case i > 0 && '0' <= c && c <= '9':
		default:
			return false
		}
	}
	return true
}

// Package vars contains the variable store that the printf builtin assigns
// to and reads TZ from.
package vars

import (
	"errors"
	"sort"
	"strings"
	"sync"
)

// Var is a variable, or an element of one, that can be assigned.
type Var interface {
	Set(v string) error
	Get() (string, bool)
}

// ErrReadOnly is returned when assigning a read-only variable.
var ErrReadOnly = errors.New("variable is read-only")

// Store holds shell variables. A variable has a scalar value, an exported
// bit, a read-only bit and indexed elements. It is safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	cells map[string]*cell
}

type cell struct {
	value    string
	set      bool
	exported bool
	readOnly bool
	elems    map[string]string
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{cells: make(map[string]*cell)}
}

// FromEnviron creates a Store holding the given NAME=VALUE pairs, as
// returned by os.Environ, as exported variables. Entries without "=" are
// skipped.
func FromEnviron(environ []string) *Store {
	s := NewStore()
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		s.cells[name] = &cell{value: value, set: true, exported: true}
	}
	return s
}

func (s *Store) cell(name string) *cell {
	c, ok := s.cells[name]
	if !ok {
		c = &cell{}
		s.cells[name] = c
	}
	return c
}

// Get returns the scalar value of a variable.
func (s *Store) Get(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.cells[name]; ok && c.set {
		return c.value, true
	}
	return "", false
}

// Set sets the scalar value of a variable.
func (s *Store) Set(name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cell(name)
	if c.readOnly {
		return ErrReadOnly
	}
	c.value, c.set = value, true
	return nil
}

// GetIndex returns an element of a variable.
func (s *Store) GetIndex(name, index string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.cells[name]; ok {
		v, ok := c.elems[index]
		return v, ok
	}
	return "", false
}

// SetIndex sets an element of a variable.
func (s *Store) SetIndex(name, index, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cell(name)
	if c.readOnly {
		return ErrReadOnly
	}
	if c.elems == nil {
		c.elems = make(map[string]string)
	}
	c.elems[index] = value
	return nil
}

// Indices returns the indices of a variable's elements, sorted.
func (s *Store) Indices(name string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.cells[name]
	if !ok {
		return nil
	}
	indices := make([]string, 0, len(c.elems))
	for index := range c.elems {
		indices = append(indices, index)
	}
	sort.Strings(indices)
	return indices
}

// Export marks a variable as exported.
func (s *Store) Export(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cell(name).exported = true
}

// SetReadOnly marks a variable as read-only.
func (s *Store) SetReadOnly(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cell(name).readOnly = true
}

// LookupExported returns the value of a variable if it is set and exported.
func (s *Store) LookupExported(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.cells[name]; ok && c.set && c.exported {
		return c.value, true
	}
	return "", false
}

// Named returns the variable with the given name.
func (s *Store) Named(name string) Var { return named{s, name} }

// Element returns the element of a variable at the given index.
func (s *Store) Element(name, index string) Var { return elem{s, name, index} }

type named struct {
	s    *Store
	name string
}

func (v named) Set(value string) error { return v.s.Set(v.name, value) }
func (v named) Get() (string, bool)    { return v.s.Get(v.name) }

type elem struct {
	s           *Store
	name, index string
}

func (v elem) Set(value string) error { return v.s.SetIndex(v.name, v.index, value) }
func (v elem) Get() (string, bool)    { return v.s.GetIndex(v.name, v.index) }

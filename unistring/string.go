// Package unistring contains property name strings and the process-wide
// interning table that turns them into identity-comparable atoms.
package unistring

import (
	"hash/fnv"
	"sync"
)

// String is a property name.
type String string

func NewFromString(s string) String {
	return String(s)
}

func (s String) String() string {
	return string(s)
}

// Atom is an interned String. Two atoms for the same name are the same
// pointer, so atoms can be compared with ==.
type Atom struct {
	s    String
	hash uint32
}

func (a *Atom) String() String {
	return a.s
}

// Hash is stable for the lifetime of the process.
func (a *Atom) Hash() uint32 {
	return a.hash
}

type atomTable struct {
	mu    sync.RWMutex
	atoms map[String]*Atom
}

var atoms = atomTable{
	atoms: make(map[String]*Atom),
}

func hashString(s String) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}

// Intern returns the atom for s, creating it if needed.
func Intern(s String) *Atom {
	atoms.mu.RLock()
	a := atoms.atoms[s]
	atoms.mu.RUnlock()
	if a != nil {
		return a
	}
	atoms.mu.Lock()
	defer atoms.mu.Unlock()
	if a = atoms.atoms[s]; a == nil {
		a = &Atom{s: s, hash: hashString(s)}
		atoms.atoms[s] = a
	}
	return a
}

// Lookup returns the atom for s if one has been interned, nil otherwise.
// A name that was never interned cannot be a key of any static table.
func Lookup(s String) *Atom {
	atoms.mu.RLock()
	a := atoms.atoms[s]
	atoms.mu.RUnlock()
	return a
}

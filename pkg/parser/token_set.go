package parser

import "github.com/yaklabco/quill/pkg/syntax"

// TokenSet is a set of token kinds. Token kinds are all below 256.
type TokenSet [4]uint64

// NewTokenSet returns the set of kinds.
func NewTokenSet(kinds ...syntax.Kind) TokenSet {
	var set TokenSet
	for _, kind := range kinds {
		if !kind.IsToken() && kind != syntax.Tombstone {
			panic("parser: " + kind.String() + " is not a token kind")
		}
		set[kind/64] |= 1 << (kind % 64)
	}
	return set
}

// Contains reports whether kind is in the set.
func (s TokenSet) Contains(kind syntax.Kind) bool {
	if kind >= 256 {
		return false
	}
	return s[kind/64]&(1<<(kind%64)) != 0
}

// Union returns the union of both sets.
func (s TokenSet) Union(other TokenSet) TokenSet {
	for i := range s {
		s[i] |= other[i]
	}
	return s
}

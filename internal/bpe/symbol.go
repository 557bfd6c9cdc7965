// Package bpe learns byte-pair-encoding merge rules from a flat symbol
// stream.
//
// Symbol id layout:
//
//	0-255: raw byte values (base symbols)
//	256+:  merged symbols, minted in training order (256 + rank)
package bpe

import (
	"errors"
	"fmt"
)

// Symbol is a token identifier: either a base byte or a merged unit.
type Symbol int

const (
	// NumBaseSymbols is the size of the byte-level base alphabet.
	NumBaseSymbols = 256
	// FirstMergedSymbol is the id assigned to the first learned merge.
	FirstMergedSymbol Symbol = NumBaseSymbols
)

// ErrSymbolOutOfRange is returned when a training sequence contains an id
// outside the base alphabet.
var ErrSymbolOutOfRange = errors.New("symbol outside base alphabet")

// Pair is an ordered pair of adjacent symbols.
type Pair struct {
	First, Second Symbol
}

// Less orders pairs lexicographically by (First, Second).
func (p Pair) Less(o Pair) bool {
	if p.First != o.First {
		return p.First < o.First
	}
	return p.Second < o.Second
}

func (p Pair) String() string {
	return fmt.Sprintf("(%d,%d)", p.First, p.Second)
}

// SymbolsFromString converts text to its byte-level base symbols.
func SymbolsFromString(s string) []Symbol {
	return SymbolsFromBytes([]byte(s))
}

// SymbolsFromBytes converts raw bytes to base symbols.
func SymbolsFromBytes(b []byte) []Symbol {
	ids := make([]Symbol, len(b))
	for i, c := range b {
		ids[i] = Symbol(c)
	}
	return ids
}

func validateBase(symbols []Symbol) error {
	for i, s := range symbols {
		if s < 0 || s >= NumBaseSymbols {
			return fmt.Errorf("position %d: id %d: %w", i, s, ErrSymbolOutOfRange)
		}
	}
	return nil
}

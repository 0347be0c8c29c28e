package table

import (
	"fmt"
	"io"
)

// Values returned by KeyStrategy.Hash and KeyStrategy.Compare.
const (
	InvalidHash = -1

	Equal        = 0
	NotEqual     = 1
	CompareError = -1
)

// KeyStrategy defines how a table handles its keys. A strategy is bound
// once at creation and used for the whole lifetime of the table.
type KeyStrategy[K any] interface {
	// Clone returns an independent copy of key, owned by the table.
	// It fails with ErrOutOfMemory if the copy cannot be allocated.
	Clone(key K) (K, error)
	// Free releases a key previously returned by Clone.
	Free(key K)
	// Hash maps key to [0, capacity), or returns a negative value on error.
	Hash(key K, capacity int) int
	// Compare returns Equal iff a and b are equal keys.
	Compare(a, b K) int
	// PrintKey renders key for diagnostic output.
	PrintKey(w io.Writer, key K)
}

// ValuePrinter renders a value for diagnostic output.
type ValuePrinter[V any] func(w io.Writer, value V)

// StrategyFuncs builds a KeyStrategy out of individual functions.
// Every function must be set.
type StrategyFuncs[K any] struct {
	CloneFunc    func(key K) (K, error)
	FreeFunc     func(key K)
	HashFunc     func(key K, capacity int) int
	CompareFunc  func(a, b K) int
	PrintKeyFunc func(w io.Writer, key K)
}

func (f StrategyFuncs[K]) Clone(key K) (K, error)       { return f.CloneFunc(key) }
func (f StrategyFuncs[K]) Free(key K)                   { f.FreeFunc(key) }
func (f StrategyFuncs[K]) Hash(key K, capacity int) int { return f.HashFunc(key, capacity) }
func (f StrategyFuncs[K]) Compare(a, b K) int           { return f.CompareFunc(a, b) }
func (f StrategyFuncs[K]) PrintKey(w io.Writer, key K)  { f.PrintKeyFunc(w, key) }

// Validate returns ErrInvalidArgument if any function is missing.
func (f StrategyFuncs[K]) Validate() error {
	missing := ""
	switch {
	case f.CloneFunc == nil:
		missing = "clone"
	case f.FreeFunc == nil:
		missing = "free"
	case f.HashFunc == nil:
		missing = "hash"
	case f.CompareFunc == nil:
		missing = "compare"
	case f.PrintKeyFunc == nil:
		missing = "print-key"
	default:
		return nil
	}
	return fmt.Errorf("%w: key strategy has no %s function", ErrInvalidArgument, missing)
}

type validator interface {
	Validate() error
}

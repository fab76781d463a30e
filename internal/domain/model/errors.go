package model

import "errors"

var (
	// ErrSymbolNotFound: the referenced symbol has no record. Recoverable;
	// jobs and pushes log and skip the symbol.
	ErrSymbolNotFound = errors.New("symbol not found")

	// ErrSymbolExists is returned by registration for a duplicate symbol.
	ErrSymbolExists = errors.New("symbol already registered")

	// ErrWriteConflict: a concurrent update to the same record won the race.
	// The losing write is dropped; the next scheduled firing is the retry.
	ErrWriteConflict = errors.New("write conflict")

	// ErrInvalidPrice rejects non-finite or negative inputs at the tick
	// generator boundary.
	ErrInvalidPrice = errors.New("invalid price")

	// ErrEmptySeries: nothing to roll up yet for the symbol.
	ErrEmptySeries = errors.New("empty series")
)

package ambre

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the ambre core. Callers should use errors.Is
// to test for these, since call sites wrap them with additional context.
var (
	// ErrUnknownItemset is returned by trie lookups when a required itemset
	// has no corresponding node.
	ErrUnknownItemset = errors.New("ambre: unknown itemset")

	// ErrEmptyItemset is returned when a lookup is attempted with an empty path.
	ErrEmptyItemset = errors.New("ambre: empty itemset")

	// ErrNoConsequents is returned by rule derivation when the database has
	// no declared consequents.
	ErrNoConsequents = errors.New("ambre: no consequents declared")

	// ErrUnknownConsequent is returned by the predictor when asked for a
	// consequent outside the declared consequent set.
	ErrUnknownConsequent = errors.New("ambre: unknown consequent")

	// ErrTransactionNotFound is returned by RemoveTransaction when the
	// transaction was never inserted.
	ErrTransactionNotFound = errors.New("ambre: transaction not found")

	// ErrEmptyDatabase is returned by RemoveTransaction when the trie has no
	// transactions at all.
	ErrEmptyDatabase = errors.New("ambre: database is empty")

	// ErrSchemaMismatch is returned by FromBytes/LoadFromFile when a
	// snapshot's schema version does not match the running schema version.
	ErrSchemaMismatch = errors.New("ambre: schema version mismatch")

	// ErrSettingsMismatch is returned by Merge when the two tries were
	// built with different settings.
	ErrSettingsMismatch = errors.New("ambre: settings mismatch")

	// ErrRangeError is returned when a numeric parameter (e.g. a sampling
	// ratio) falls outside its valid range.
	ErrRangeError = errors.New("ambre: value out of range")
)

// InvalidItemCharError is returned by the codec when an item contains a
// character outside the configured alphabet.
type InvalidItemCharError struct {
	Char     rune
	Alphabet string
}

func (e *InvalidItemCharError) Error() string {
	return fmt.Sprintf("ambre: character %q is not part of the item alphabet %q", e.Char, e.Alphabet)
}

// Is allows errors.Is(err, ambre.ErrInvalidItemChar) style checks against a
// generic sentinel despite InvalidItemCharError carrying per-call data.
func (e *InvalidItemCharError) Is(target error) bool {
	return target == ErrInvalidItemChar
}

// ErrInvalidItemChar is the generic sentinel matched by InvalidItemCharError.
var ErrInvalidItemChar = errors.New("ambre: invalid item character")

// InvalidConsequentError is returned when a caller asks the predictor for a
// consequent outside the trie's declared consequent set.
type InvalidConsequentError struct {
	Item string
}

func (e *InvalidConsequentError) Error() string {
	return fmt.Sprintf("ambre: %q is not a declared consequent: %v", e.Item, ErrUnknownConsequent)
}

// Is allows errors.Is(err, ambre.ErrUnknownConsequent) style checks.
func (e *InvalidConsequentError) Is(target error) bool {
	return target == ErrUnknownConsequent
}

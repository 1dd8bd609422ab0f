// Package wire is a compact self-describing binary codec for ambre's
// persistence format, adapted from an RLP-style reflect-based encoder: a
// byte is either a literal (<=0x7f), a length-prefixed string, or a
// length-prefixed list of further items, with struct fields and slices
// encoded as lists. It is domain-agnostic; ambre's only use of it is
// encoding/decoding the flat snapshot records written by the persistence
// layer (persistence.go).
package wire

import "errors"

var (
	// ErrExpectedString is returned when a list is encountered where a string was expected.
	ErrExpectedString = errors.New("wire: expected string")

	// ErrExpectedList is returned when a string is encountered where a list was expected.
	ErrExpectedList = errors.New("wire: expected list")

	// ErrCanonSize is returned when a string uses a non-canonical size encoding.
	ErrCanonSize = errors.New("wire: non-canonical size information")

	// ErrEOL is returned by ListEnd when the current list still has unread items.
	ErrEOL = errors.New("wire: end of list")

	// ErrCanonInt is returned when an integer uses non-canonical encoding (leading zeros).
	ErrCanonInt = errors.New("wire: non-canonical integer encoding")

	// ErrNonCanonicalSize is returned when a size prefix is not in canonical form.
	ErrNonCanonicalSize = errors.New("wire: non-canonical size")

	// ErrUint64Range is returned when a decoded integer exceeds uint64 range.
	ErrUint64Range = errors.New("wire: uint64 overflow")

	// ErrValueTooLarge is returned when a value's kind is not supported by
	// the encoder (e.g. a map, channel, func or complex number).
	ErrValueTooLarge = errors.New("wire: value too large")
)

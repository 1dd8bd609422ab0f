package ambre

import (
	"math/big"
	"sort"
)

// codec compresses/decompresses item strings against a fixed alphabet, per
// spec.md §4.2. It is the identity function when alphabet is empty.
//
// Algorithm: a bijective base-k numeral system, k = len(alphabet). Each
// character is mapped to a digit in [1, k] (its 0-based alphabet position
// plus one — position 0 is never used as a digit, which is what the
// spec's sentinel-prepended A′ achieves). The digit string is read
// Horner-style into a big.Int and rendered as a big-endian byte string.
// Because no digit is ever zero, the encoding has no leading-zero-digit
// ambiguity and is bijective for every non-empty string over the
// alphabet: decompression reverses the digits by repeatedly subtracting
// one before dividing (the standard bijective-numeration decode step),
// which recovers exactly the original digit count. See DESIGN.md for why
// this differs textually (but not behaviorally) from the spec's "bump to
// b when the running number is zero" phrasing, which does not round-trip
// for inputs whose first character is the alphabet's first character.
type codec struct {
	alphabet []rune
	index    map[rune]int
}

func newCodec(alphabet string) *codec {
	if alphabet == "" {
		return nil
	}
	runes := []rune(alphabet)
	idx := make(map[rune]int, len(runes))
	for i, r := range runes {
		idx[r] = i
	}
	return &codec{alphabet: runes, index: idx}
}

// compress encodes item into a compact byte string. Returns
// *InvalidItemCharError if item contains a character outside the alphabet.
func (c *codec) compress(item string) ([]byte, error) {
	if c == nil {
		return []byte(item), nil
	}
	if item == "" {
		return []byte{}, nil
	}
	baseBig := big.NewInt(int64(len(c.alphabet)))
	cumulated := big.NewInt(0)
	for _, r := range item {
		pos, ok := c.index[r]
		if !ok {
			return nil, &InvalidItemCharError{Char: r, Alphabet: string(c.alphabet)}
		}
		cumulated.Mul(cumulated, baseBig)
		cumulated.Add(cumulated, big.NewInt(int64(pos)+1))
	}
	return cumulated.Bytes(), nil
}

// decompress is the exact inverse of compress.
func (c *codec) decompress(data []byte) string {
	if c == nil {
		return string(data)
	}
	if len(data) == 0 {
		return ""
	}
	cumulated := new(big.Int).SetBytes(data)
	base := big.NewInt(int64(len(c.alphabet)))
	one := big.NewInt(1)
	mod := new(big.Int)
	var runes []rune
	for cumulated.Sign() > 0 {
		cumulated.Sub(cumulated, one)
		cumulated.DivMod(cumulated, base, mod)
		runes = append([]rune{c.alphabet[mod.Int64()]}, runes...)
	}
	return string(runes)
}

// newCodecFromSettings builds the codec implied by s's item alphabet,
// collapsing to a sorted, deduplicated, (if case-insensitive) case-folded
// rune set first.
func newCodecFromSettings(s Settings) *codec {
	alphabet, restricted := s.ItemAlphabet()
	if !restricted {
		return nil
	}
	seen := make(map[rune]struct{})
	for _, r := range alphabet {
		seen[r] = struct{}{}
	}
	runes := make([]rune, 0, len(seen))
	for r := range seen {
		runes = append(runes, r)
	}
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })
	return newCodec(string(runes))
}

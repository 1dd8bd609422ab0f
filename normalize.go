package ambre

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/width"
)

var foldCaser = cases.Fold()

// caseFold returns the Unicode case-folded form of s, used both for
// sibling-ordering comparisons and for Settings' own internal bookkeeping.
// Grounded on golang.org/x/text/cases, the same module the rest of the
// example corpus pulls in transitively (see SPEC_FULL.md's DOMAIN STACK).
func caseFold(s string) string {
	return foldCaser.String(s)
}

// collapseWhitespace collapses runs of whitespace to a single space and
// trims leading/trailing whitespace.
func collapseWhitespace(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}

// normalizeItem normalizes a single item per the given flags: optional
// whitespace collapsing, then optional case folding.
func normalizeItem(item string, normalizeWhitespace, caseInsensitive bool) string {
	if normalizeWhitespace {
		item = collapseWhitespace(item)
	}
	if caseInsensitive {
		item = caseFold(item)
	}
	return item
}

// foldWidthVariants folds Unicode fullwidth/halfwidth forms (e.g. the
// fullwidth digit "１") to their canonical narrow form before an item is
// compressed, so a transaction scraped from a fullwidth-heavy source (CJK
// point-of-sale exports, for instance) lands on the same trie path as its
// halfwidth equivalent.
func foldWidthVariants(s string) string {
	return width.Narrow.String(s)
}

// NormalizeItem normalizes a single item according to s's whitespace/case
// settings, additionally folding width variants when configured.
func (s Settings) NormalizeItem(item string) string {
	if s.foldFullwidthVariants {
		item = foldWidthVariants(item)
	}
	return normalizeItem(item, s.normalizeWhitespace, s.caseInsensitive)
}

// NormalizeTransaction normalizes every item in a transaction and removes
// duplicates, per spec.md §4.2.
func (s Settings) NormalizeTransaction(transaction []string) []string {
	seen := make(map[string]struct{}, len(transaction))
	result := make([]string, 0, len(transaction))
	for _, item := range transaction {
		n := s.NormalizeItem(item)
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		result = append(result, n)
	}
	return result
}

// Partition splits a normalized transaction into (consequents, antecedents)
// using s.Consequents(), each side sorted by case-folded uncompressed form.
func (s Settings) Partition(normalizedTransaction []string) (consequents, antecedents []string) {
	consequentSet := make(map[string]struct{}, len(s.consequents))
	for _, c := range s.consequents {
		consequentSet[c] = struct{}{}
	}
	for _, item := range normalizedTransaction {
		if _, ok := consequentSet[item]; ok {
			consequents = append(consequents, item)
		} else {
			antecedents = append(antecedents, item)
		}
	}
	sortByCaseFold(consequents)
	sortByCaseFold(antecedents)
	return consequents, antecedents
}

// IsConsequent reports whether a normalized item is one of s's declared
// consequents.
func (s Settings) IsConsequent(normalizedItem string) bool {
	for _, c := range s.consequents {
		if c == normalizedItem {
			return true
		}
	}
	return false
}

func sortByCaseFold(items []string) {
	sort.Slice(items, func(i, j int) bool { return caseFold(items[i]) < caseFold(items[j]) })
}

// stripColumnName removes a "column<sep>" prefix from item when present,
// used by output formatting when Settings.OmitColumnNames is set. Grounded
// on prepostprocessing.py's separator-driven column handling in the
// original ambre sources.
func stripColumnName(item, sep string) string {
	if sep == "" {
		return item
	}
	if idx := strings.Index(item, sep); idx >= 0 {
		return item[idx+len(sep):]
	}
	return item
}

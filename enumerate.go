package ambre

// ItemsetFilters bounds which itemsets DeriveFrequentItemsets emits.
// Pointer fields are unset (nil) by default, meaning "no bound".
type ItemsetFilters struct {
	MinLength      int
	MaxLength      *int
	MinOccurrences int
	MaxOccurrences *int
	MinSupport     float64
	MaxSupport     float64 // 0 is treated as "unset" (defaults to 1) by DeriveFrequentItemsets
}

// ItemsetRow is one row of DeriveFrequentItemsets' output table.
type ItemsetRow struct {
	Itemset     []string
	Occurrences int
	Support     float64
	Length      int
}

// DeriveFrequentItemsets depth-first walks the trie, collecting every node
// passing filters, per spec.md §4.6. When filterToConsequentOnly is true,
// the root's non-consequent children and their subtrees are skipped
// (only_with_consequents); subtrees under consequent children are walked
// in full.
// When omitColumnNames is true, each item has its "column<sep>" prefix
// stripped using t.Settings().ColumnValueSeparator().
func (t *Trie) DeriveFrequentItemsets(filters ItemsetFilters, filterToConsequentOnly, omitColumnNames bool) []ItemsetRow {
	maxSupport := filters.MaxSupport
	if maxSupport == 0 {
		maxSupport = 1
	}
	var rows []ItemsetRow
	t.DepthFirstWalk(filterToConsequentOnly, func(n *Node) WalkControl {
		length := n.ItemsetLength()
		occurrences := n.Occurrences()
		support := n.Support()
		if length < filters.MinLength {
			return WalkContinue
		}
		if filters.MaxLength != nil && length > *filters.MaxLength {
			return WalkContinue
		}
		if occurrences < filters.MinOccurrences {
			return WalkContinue
		}
		if filters.MaxOccurrences != nil && occurrences > *filters.MaxOccurrences {
			return WalkContinue
		}
		if support < filters.MinSupport || support > maxSupport {
			return WalkContinue
		}
		items := n.Path()
		if omitColumnNames {
			sep := t.settings.ColumnValueSeparator()
			stripped := make([]string, len(items))
			for i, item := range items {
				stripped[i] = stripColumnName(item, sep)
			}
			items = stripped
		}
		rows = append(rows, ItemsetRow{Itemset: items, Occurrences: occurrences, Support: support, Length: length})
		return WalkContinue
	})
	return rows
}

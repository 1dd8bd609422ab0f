package ambre

// FirstAntecedentFrontier returns every node reachable from the root by
// exactly one non-consequent step where every step on the way down was a
// consequent (spec.md §4.3). This set seeds rule derivation.
func (t *Trie) FirstAntecedentFrontier() []*Node {
	var frontier []*Node
	level := consequentPrefix(t.root.order)
	for len(level) > 0 {
		var next []*Node
		for _, node := range level {
			if node.isConsequent {
				next = append(next, node.order...)
			} else {
				frontier = append(frontier, node)
			}
		}
		level = next
	}
	return frontier
}

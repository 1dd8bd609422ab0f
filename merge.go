package ambre

// Merge copies every node of b into a (or vice versa, whichever trie has
// fewer nodes is copied into the larger one to minimise work), summing
// occurrences node by node, and returns the resulting trie. Both tries
// must have Equal Settings or ErrSettingsMismatch is returned.
//
// Schema-version compatibility (spec.md §4.3's other merge prerequisite)
// is enforced at load time by FromBytes/LoadFromFile; two in-memory Tries
// built by the same running binary are definitionally the same schema
// version, so Merge itself only checks Settings.
func Merge(a, b *Trie) (*Trie, error) {
	if !a.settings.Equal(b.settings) {
		return nil, ErrSettingsMismatch
	}
	dst, src := a, b
	if b.numberNodes > a.numberNodes {
		dst, src = b, a
	}

	var walkErr error
	src.DepthFirstWalk(false, func(n *Node) WalkControl {
		path := n.Path()
		node := dst.root
		for _, item := range path {
			child, err := dst.getOrCreateChild(node, item, dst.settings.IsConsequent(item))
			if err != nil {
				walkErr = err
				return WalkStop
			}
			node = child
		}
		node.occurrences += n.occurrences
		return WalkContinue
	})
	if walkErr != nil {
		return nil, walkErr
	}

	dst.numberTransactions += src.numberTransactions
	return dst, nil
}

// MergeMany merges any number of tries into one, left to right.
func MergeMany(tries ...*Trie) (*Trie, error) {
	if len(tries) == 0 {
		return nil, nil
	}
	result := tries[0]
	for _, t := range tries[1:] {
		var err error
		result, err = Merge(result, t)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

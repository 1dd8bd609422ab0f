package ambre

import "fmt"

// RemoveTransaction undoes a prior InsertTransaction of the same
// transaction: every subset touched by the original insertion (consistent
// with the antecedent-length cap) has its occurrences decremented, nodes
// whose counter reaches zero are detached, and NumberTransactions is
// decremented. If the transaction was never inserted, RemoveTransaction
// returns ErrTransactionNotFound unless silent is true.
//
// This mirrors InsertTransaction's worklist exactly (rather than the
// literal "walk every path[s:] suffix" wording in spec.md §4.3) so that
// the invariant spec.md §8 requires — insertion then removal restores
// NumberTransactions and every touched node's occurrences exactly — holds
// by construction. See DESIGN.md for the reasoning.
func (t *Trie) RemoveTransaction(transaction []string, silent bool) error {
	if t.numberTransactions == 0 {
		if silent {
			return nil
		}
		return ErrEmptyDatabase
	}

	normalized := t.settings.NormalizeTransaction(transaction)
	consequents, antecedents := t.settings.Partition(normalized)
	canonical := append(append([]string(nil), consequents...), antecedents...)
	maxAntecedents, hasMax := t.settings.MaxAntecedentsLength()
	var maxPtr *int
	if hasMax {
		maxPtr = &maxAntecedents
	}

	var touched []*Node
	notFound := false
	err := expandPowerset(t.root, canonical, len(consequents), maxPtr, func(parent *Node, itemIndex int, _ int) (*Node, error) {
		if notFound {
			return parent, nil // keep draining the worklist cheaply once we know we'll bail
		}
		item := canonical[itemIndex]
		compressed, err := t.compressItem(item)
		if err != nil {
			return nil, err
		}
		child, ok := parent.children[compressed]
		if !ok || child.occurrences < 1 {
			notFound = true
			return parent, nil
		}
		touched = append(touched, child)
		return child, nil
	})
	if err != nil {
		return err
	}
	if notFound {
		if silent {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrTransactionNotFound, transaction)
	}

	for i := len(touched) - 1; i >= 0; i-- {
		node := touched[i]
		node.occurrences--
		if node.occurrences == 0 && len(node.children) == 0 {
			node.parent.removeChild(node)
			t.numberNodes--
		}
	}
	t.numberTransactions--
	return nil
}

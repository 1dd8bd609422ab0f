package ambre

import "fmt"

// MissingItemBehavior controls how GetNodeFromCompressed reacts to a path
// component that has no corresponding child, per spec.md §4.3.
type MissingItemBehavior int

const (
	// ErrorOnMissingItem raises ErrUnknownItemset (the default).
	ErrorOnMissingItem MissingItemBehavior = iota
	// SkipMissingItems continues the walk from the same node, ignoring the
	// missing component.
	SkipMissingItems
	// NilOnMissingItem returns (nil, nil) instead of erroring.
	NilOnMissingItem
)

// LookupOptions configures GetNode / GetNodeFromCompressed.
type LookupOptions struct {
	OnMissing MissingItemBehavior
}

// HasItemset reports whether the given normalized, canonically-ordered
// itemset exists in the trie (spec.md §4.3's "Has-itemset").
func (t *Trie) HasItemset(items []string) (bool, error) {
	node, err := t.GetNode(items, LookupOptions{OnMissing: NilOnMissingItem})
	if err != nil {
		return false, err
	}
	return node != nil, nil
}

// GetNode looks up the node for a normalized, canonically-ordered itemset
// given as uncompressed items, compressing each component internally.
func (t *Trie) GetNode(items []string, opts LookupOptions) (*Node, error) {
	compressed := make([]string, len(items))
	for i, item := range items {
		c, err := t.codec.compress(item)
		if err != nil {
			return nil, fmt.Errorf("ambre: compress item %q: %w", item, err)
		}
		compressed[i] = string(c)
	}
	return t.GetNodeFromCompressed(compressed, opts)
}

// GetNodeFromCompressed walks the trie along the given compressed items,
// per spec.md §4.3's get_node_from_compressed.
func (t *Trie) GetNodeFromCompressed(compressedItems []string, opts LookupOptions) (*Node, error) {
	if len(compressedItems) == 0 {
		return nil, ErrEmptyItemset
	}
	node := t.root
	for _, item := range compressedItems {
		child, ok := node.children[item]
		if !ok {
			switch opts.OnMissing {
			case SkipMissingItems:
				continue
			case NilOnMissingItem:
				return nil, nil
			default:
				return nil, fmt.Errorf("%w: %v", ErrUnknownItemset, compressedItems)
			}
		}
		node = child
	}
	return node, nil
}

package ambre

// Trie is a consequents-first canonical trie accumulating powerset
// occurrence counts of inserted transactions, per spec.md §3-4.3.
type Trie struct {
	settings           Settings
	root               *Node
	codec              *codec
	numberTransactions int
	numberNodes        int
}

// NewTrie creates an empty itemset trie for the given settings.
func NewTrie(settings Settings) *Trie {
	t := &Trie{settings: settings, codec: newCodecFromSettings(settings)}
	t.root = newRootNode(t)
	return t
}

// Settings returns the trie's immutable configuration.
func (t *Trie) Settings() Settings { return t.settings }

// Root returns the trie's root node.
func (t *Trie) Root() *Node { return t.root }

// NumberTransactions returns how many transactions have been inserted.
func (t *Trie) NumberTransactions() int { return t.numberTransactions }

// NumberNodes returns the number of non-root nodes currently in the trie.
func (t *Trie) NumberNodes() int { return t.numberNodes }

// compressItem compresses a single normalized item using the trie's codec.
func (t *Trie) compressItem(item string) (string, error) {
	b, err := t.codec.compress(item)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// decompressItem decompresses a single compressed item using the trie's codec.
func (t *Trie) decompressItem(compressed string) string {
	return t.codec.decompress([]byte(compressed))
}

// getOrCreateChild returns node's child for the given normalized
// uncompressed item, creating it (and maintaining canonical sibling order)
// if absent. isConsequent must be supplied by the caller since the root
// has no single notion of it.
func (t *Trie) getOrCreateChild(node *Node, item string, isConsequent bool) (*Node, error) {
	compressed, err := t.compressItem(item)
	if err != nil {
		return nil, err
	}
	if child, ok := node.children[compressed]; ok {
		return child, nil
	}
	child := &Node{
		compressedItem: compressed,
		uncompressed:   item,
		foldKey:        caseFold(item),
		isConsequent:   isConsequent,
		parent:         node,
		children:       map[string]*Node{},
		trie:           t,
	}
	node.children[compressed] = child
	node.insertChildSorted(child)
	t.numberNodes++
	return child, nil
}

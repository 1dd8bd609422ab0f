package ambre

import (
	"testing"

	"github.com/klauspost/compress/zstd"

	"github.com/timoklimmer/ambre/internal/wire"
)

// wireEncodeForTest mirrors AsBytes' own encode-then-compress steps so
// TestSnapshotRejectsSchemaMismatch can feed FromBytes a snapshot carrying
// a deliberately wrong SchemaVersion without hand-crafting wire bytes.
func wireEncodeForTest(snap snapshot) ([]byte, error) {
	raw, err := wire.EncodeToBytes(snap)
	if err != nil {
		return nil, err
	}
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(raw, nil), nil
}

func TestSnapshotRoundTrip(t *testing.T) {
	settings := NewSettings(WithConsequents("bread"), WithMaxAntecedentsLength(2))
	trie := NewTrie(settings)
	insertAll(t, trie, wikipediaBasket())

	commonSense := NewCommonSenseRuleSet()
	commonSense.Insert([]string{"butter"}, []string{"bread"}, 0.75)

	data, err := AsBytes(trie, commonSense)
	if err != nil {
		t.Fatalf("AsBytes failed: %v", err)
	}

	restoredTrie, restoredCommonSense, err := FromBytes(data)
	if err != nil {
		t.Fatalf("FromBytes failed: %v", err)
	}

	if !restoredTrie.Settings().Equal(trie.Settings()) {
		t.Error("restored Settings do not match original")
	}
	if restoredTrie.NumberTransactions() != trie.NumberTransactions() {
		t.Errorf("restored NumberTransactions = %d, want %d",
			restoredTrie.NumberTransactions(), trie.NumberTransactions())
	}
	if restoredTrie.NumberNodes() != trie.NumberNodes() {
		t.Errorf("restored NumberNodes = %d, want %d", restoredTrie.NumberNodes(), trie.NumberNodes())
	}

	original := trie.DeriveFrequentItemsets(ItemsetFilters{}, false, false)
	restored := restoredTrie.DeriveFrequentItemsets(ItemsetFilters{}, false, false)
	if len(original) != len(restored) {
		t.Fatalf("restored has %d itemsets, original has %d", len(restored), len(original))
	}

	rules := restoredCommonSense.Rules()
	if len(rules) != 1 || rules[0].Confidence != 0.75 {
		t.Errorf("restored common-sense rules = %+v, want one rule at confidence 0.75", rules)
	}
}

func TestSnapshotRejectsSchemaMismatch(t *testing.T) {
	trie := NewTrie(NewSettings())
	snap := snapshot{
		Header: snapshotHeader{
			PackageVersion:  PackageVersion,
			SchemaVersion:   SchemaVersion + 1,
			LanguageVersion: LanguageVersion,
		},
		Settings:           settingsToRecord(trie.settings),
		NumberTransactions: trie.numberTransactions,
	}
	raw, err := wireEncodeForTest(snap)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	if _, _, err := FromBytes(raw); err == nil {
		t.Fatal("expected ErrSchemaMismatch for a snapshot from a future schema version")
	}
}

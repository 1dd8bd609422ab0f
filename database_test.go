package ambre

import (
	"errors"
	"testing"
)

func TestDatabaseInsertAndGetItemset(t *testing.T) {
	db := NewDatabase(NewSettings(WithConsequents("bread")))
	for _, tx := range wikipediaBasket() {
		if err := db.InsertTransaction(tx); err != nil {
			t.Fatalf("InsertTransaction(%v) failed: %v", tx, err)
		}
	}

	has, err := db.HasItemset([]string{"milk", "bread"})
	if err != nil {
		t.Fatalf("HasItemset failed: %v", err)
	}
	if !has {
		t.Error("expected {milk,bread} to exist")
	}

	occurrences, support, err := db.GetItemset([]string{"bread"})
	if err != nil {
		t.Fatalf("GetItemset failed: %v", err)
	}
	if occurrences != 3 {
		t.Errorf("occurrences = %d, want 3", occurrences)
	}
	if abs(support-0.6) > 1e-9 {
		t.Errorf("support = %v, want 0.6", support)
	}
}

func TestDatabaseInsertTransactionSampledRangeError(t *testing.T) {
	db := NewDatabase(NewSettings())
	if _, err := db.InsertTransactionSampled([]string{"milk"}, -0.1); err == nil {
		t.Error("expected ErrRangeError for a negative sampling ratio")
	}
	if _, err := db.InsertTransactionSampled([]string{"milk"}, 1.1); err == nil {
		t.Error("expected ErrRangeError for a sampling ratio above 1")
	}
}

func TestDatabaseInsertTransactionSampledRatioOneAlwaysInserts(t *testing.T) {
	db := NewDatabase(NewSettings())
	inserted, err := db.InsertTransactionSampled([]string{"milk"}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !inserted {
		t.Error("expected sampling ratio 1 to always insert")
	}
	if db.Trie().NumberTransactions() != 1 {
		t.Errorf("NumberTransactions() = %d, want 1", db.Trie().NumberTransactions())
	}
}

func TestDatabaseInsertTransactionSampledRatioZeroNeverInserts(t *testing.T) {
	db := NewDatabase(NewSettings())
	inserted, err := db.InsertTransactionSampled([]string{"milk"}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inserted {
		t.Error("expected sampling ratio 0 to never insert")
	}
	if db.Trie().NumberTransactions() != 0 {
		t.Errorf("NumberTransactions() = %d, want 0", db.Trie().NumberTransactions())
	}
}

func TestDatabaseMergeUnionsCommonSenseRules(t *testing.T) {
	settings := NewSettings(WithConsequents("bread"))
	a := NewDatabase(settings)
	b := NewDatabase(settings)
	for _, tx := range wikipediaBasket()[:2] {
		if err := a.InsertTransaction(tx); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}
	for _, tx := range wikipediaBasket()[2:] {
		if err := b.InsertTransaction(tx); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}
	a.InsertCommonSenseRule([]string{"butter"}, []string{"bread"}, 1)
	b.InsertCommonSenseRule([]string{"diapers"}, []string{"bread"}, 0.9)

	merged, err := a.Merge(b)
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if merged.Trie().NumberTransactions() != 5 {
		t.Errorf("merged NumberTransactions() = %d, want 5", merged.Trie().NumberTransactions())
	}
	if len(merged.CommonSenseRules().Rules()) != 2 {
		t.Errorf("expected both common-sense rules to survive the merge, got %+v", merged.CommonSenseRules().Rules())
	}
}

func TestDatabaseItemsetToStringRoundTrip(t *testing.T) {
	db := NewDatabase(NewSettings(WithItemSeparator("|")))
	items := []string{"milk", "bread"}
	s := db.ItemsetToString(items)
	if s != "milk|bread" {
		t.Errorf("ItemsetToString = %q, want %q", s, "milk|bread")
	}
	back := db.StringToItemset(s)
	if len(back) != 2 || back[0] != "milk" || back[1] != "bread" {
		t.Errorf("StringToItemset(%q) = %v, want [milk bread]", s, back)
	}
}

func TestDatabasePredictConsequentsRejectsUnknownConsequent(t *testing.T) {
	db := NewDatabase(NewSettings(WithConsequents("bread")))
	_, err := db.PredictConsequents(nil, PredictOptions{Consequents: []string{"milk"}})
	if err == nil {
		t.Fatal("expected an error predicting an undeclared consequent")
	}
	var invalid *InvalidConsequentError
	if !errors.As(err, &invalid) {
		t.Errorf("expected *InvalidConsequentError, got %T: %v", err, err)
	}
}

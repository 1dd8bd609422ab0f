package ambre

import "testing"

func TestNormalizeItemWhitespaceAndCase(t *testing.T) {
	s := NewSettings()
	got := s.NormalizeItem("  Milk   Chocolate  ")
	want := "milk chocolate"
	if got != want {
		t.Errorf("NormalizeItem = %q, want %q", got, want)
	}
}

func TestNormalizeItemCaseSensitive(t *testing.T) {
	s := NewSettings(WithCaseInsensitive(false))
	got := s.NormalizeItem("Milk")
	if got != "Milk" {
		t.Errorf("NormalizeItem (case-sensitive) = %q, want %q", got, "Milk")
	}
}

func TestNormalizeTransactionDeduplicates(t *testing.T) {
	s := NewSettings()
	got := s.NormalizeTransaction([]string{"Milk", "milk", " MILK "})
	if len(got) != 1 || got[0] != "milk" {
		t.Errorf("NormalizeTransaction = %v, want [milk]", got)
	}
}

func TestPartitionSeparatesConsequents(t *testing.T) {
	s := NewSettings(WithConsequents("beer", "diapers"))
	consequents, antecedents := s.Partition([]string{"milk", "beer", "bread", "diapers"})
	if len(consequents) != 2 || consequents[0] != "beer" || consequents[1] != "diapers" {
		t.Errorf("consequents = %v", consequents)
	}
	if len(antecedents) != 2 || antecedents[0] != "bread" || antecedents[1] != "milk" {
		t.Errorf("antecedents = %v", antecedents)
	}
}

func TestFoldWidthVariants(t *testing.T) {
	s := NewSettings(WithFoldFullwidthVariants(true))
	got := s.NormalizeItem("ＡＢＣ") // fullwidth "ABC"
	if got != "abc" {
		t.Errorf("NormalizeItem with width folding = %q, want %q", got, "abc")
	}
}

func TestStripColumnName(t *testing.T) {
	if got := stripColumnName("sex=female", "="); got != "female" {
		t.Errorf("stripColumnName = %q, want %q", got, "female")
	}
	if got := stripColumnName("noseparator", "="); got != "noseparator" {
		t.Errorf("stripColumnName without separator = %q, want unchanged", got)
	}
}

package ambre

import "testing"

func TestCommonSenseRuleSetKeepsHighestConfidencePerKey(t *testing.T) {
	s := NewCommonSenseRuleSet()
	s.InsertAll([]CommonSenseRule{
		{Antecedents: []string{"butter"}, Consequents: []string{"bread"}, Confidence: 0.6},
		{Antecedents: []string{"butter"}, Consequents: []string{"bread"}, Confidence: 0.9},
	})
	rules := s.Rules()
	if len(rules) != 1 {
		t.Fatalf("expected 1 rule after minimisation, got %d: %+v", len(rules), rules)
	}
	if rules[0].Confidence != 0.9 {
		t.Errorf("expected the higher-confidence rule to survive, got %v", rules[0].Confidence)
	}
}

func TestCommonSenseRuleSetDropsStrictSupersetSameConfidence(t *testing.T) {
	s := NewCommonSenseRuleSet()
	s.InsertAll([]CommonSenseRule{
		{Antecedents: []string{"butter"}, Consequents: []string{"bread"}, Confidence: 1},
		{Antecedents: []string{"butter", "milk"}, Consequents: []string{"bread"}, Confidence: 1},
	})
	rules := s.Rules()
	if len(rules) != 1 {
		t.Fatalf("expected the superset rule to be subsumed, got %d rules: %+v", len(rules), rules)
	}
	if len(rules[0].Antecedents) != 1 || rules[0].Antecedents[0] != "butter" {
		t.Errorf("expected the surviving rule to be {butter}=>{bread}, got %+v", rules[0])
	}
}

func TestCommonSenseRuleSetKeepsSupersetWhenConfidenceDiffers(t *testing.T) {
	s := NewCommonSenseRuleSet()
	s.InsertAll([]CommonSenseRule{
		{Antecedents: []string{"butter"}, Consequents: []string{"bread"}, Confidence: 0.8},
		{Antecedents: []string{"butter", "milk"}, Consequents: []string{"bread"}, Confidence: 0.95},
	})
	rules := s.Rules()
	if len(rules) != 2 {
		t.Fatalf("expected both rules to survive (different confidences), got %d: %+v", len(rules), rules)
	}
}

func TestCommonSenseRuleSetCanonicalOrdering(t *testing.T) {
	s := NewCommonSenseRuleSet()
	s.InsertAll([]CommonSenseRule{
		{Antecedents: []string{"zebra"}, Consequents: []string{"bread"}, Confidence: 1},
		{Antecedents: []string{"apple"}, Consequents: []string{"bread"}, Confidence: 1},
	})
	rules := s.Rules()
	if len(rules) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(rules))
	}
	if rules[0].Antecedents[0] != "apple" || rules[1].Antecedents[0] != "zebra" {
		t.Errorf("expected lexicographic order by antecedents, got %+v", rules)
	}
}

func TestCommonSenseRuleSetClear(t *testing.T) {
	s := NewCommonSenseRuleSet()
	s.Insert([]string{"butter"}, []string{"bread"}, 1)
	s.Clear()
	if len(s.Rules()) != 0 {
		t.Error("expected Clear to empty the rule set")
	}
}

package ambre

import "testing"

func TestDeriveRulesNoConsequentsFails(t *testing.T) {
	trie := NewTrie(NewSettings())
	if _, err := trie.DeriveRules(nil, RuleFilters{}, false, false); err == nil {
		t.Fatal("expected ErrNoConsequents")
	}
}

func TestDeriveRulesEmitsExpectedRule(t *testing.T) {
	trie := NewTrie(NewSettings(WithConsequents("bread")))
	insertAll(t, trie, wikipediaBasket())

	rules, err := trie.DeriveRules(nil, RuleFilters{}, false, false)
	if err != nil {
		t.Fatalf("DeriveRules failed: %v", err)
	}

	var found *Rule
	for i := range rules {
		if len(rules[i].Antecedents) == 1 && rules[i].Antecedents[0] == "butter" {
			found = &rules[i]
			break
		}
	}
	if found == nil {
		t.Fatalf("expected a {butter}=>{bread} rule among %+v", rules)
	}
	if abs(found.Confidence-0.5) > 1e-9 {
		t.Errorf("confidence = %v, want 0.5", found.Confidence)
	}
}

func TestDeriveRulesSuppressesCommonSenseRedundancy(t *testing.T) {
	trie := NewTrie(NewSettings(WithConsequents("bread")))
	insertAll(t, trie, wikipediaBasket())

	commonSense := NewCommonSenseRuleSet()
	commonSense.Insert([]string{"butter"}, []string{"bread"}, 0.5)

	rules, err := trie.DeriveRules(commonSense, RuleFilters{}, false, false)
	if err != nil {
		t.Fatalf("DeriveRules failed: %v", err)
	}
	for _, r := range rules {
		if len(r.Antecedents) == 1 && r.Antecedents[0] == "butter" {
			t.Errorf("expected {butter}=>{bread} to be suppressed as redundant, got %+v", r)
		}
	}
}

func TestDeriveRulesDescentGateStopsAtConfidenceOne(t *testing.T) {
	settings := NewSettings(WithConsequents("bread"))
	trie := NewTrie(settings)
	// Every transaction containing butter also contains jam: butter=>bread
	// confidence will be 1.0, so descending to {butter,jam}=>bread must be
	// pruned as a subset-equivalent redundancy.
	insertAll(t, trie, [][]string{
		{"bread", "butter", "jam"},
		{"bread", "butter", "jam"},
		{"bread"},
	})

	rules, err := trie.DeriveRules(nil, RuleFilters{}, false, false)
	if err != nil {
		t.Fatalf("DeriveRules failed: %v", err)
	}
	for _, r := range rules {
		if len(r.Antecedents) == 2 {
			t.Errorf("expected no 2-antecedent rule once the 1-antecedent rule hit confidence 1, got %+v", r)
		}
	}
}

func TestDeriveRulesMinConfidenceFilter(t *testing.T) {
	trie := NewTrie(NewSettings(WithConsequents("bread")))
	insertAll(t, trie, wikipediaBasket())

	rules, err := trie.DeriveRules(nil, RuleFilters{MinConfidence: 0.9}, false, false)
	if err != nil {
		t.Fatalf("DeriveRules failed: %v", err)
	}
	for _, r := range rules {
		if r.Confidence < 0.9 {
			t.Errorf("rule %+v violates MinConfidence filter", r)
		}
	}
}

func TestDeriveRulesNonAntecedentsRules(t *testing.T) {
	trie := NewTrie(NewSettings(WithConsequents("bread")))
	insertAll(t, trie, wikipediaBasket())

	rules, err := trie.DeriveRules(nil, RuleFilters{}, true, false)
	if err != nil {
		t.Fatalf("DeriveRules failed: %v", err)
	}
	var found bool
	for _, r := range rules {
		if len(r.Antecedents) == 0 && len(r.Consequents) == 1 && r.Consequents[0] == "bread" {
			found = true
			if abs(r.Confidence-1) > 1e-9 {
				t.Errorf("non-antecedent rule confidence = %v, want 1", r.Confidence)
			}
		}
	}
	if !found {
		t.Error("expected a non-antecedent rule for {} => {bread}")
	}
}

func TestDeriveRulesNonAntecedentsRulesWalksJointConsequentNodes(t *testing.T) {
	// bread appears in 4/5 transactions (support 0.8), milk in 1/5 (0.2),
	// and the joint {bread,milk} itemset also in 1/5 (0.2). A MaxSupport of
	// 0.3 filters bread out at the root, but the {bread,milk} node one
	// level below bread still passes — it must still be reachable, not
	// skipped just because its depth-1 parent was filtered out.
	trie := NewTrie(NewSettings(WithConsequents("bread", "milk")))
	insertAll(t, trie, [][]string{
		{"bread"},
		{"bread"},
		{"bread"},
		{"bread", "milk"},
		{"eggs"},
	})

	rules, err := trie.DeriveRules(nil, RuleFilters{MaxSupport: 0.3}, true, false)
	if err != nil {
		t.Fatalf("DeriveRules failed: %v", err)
	}

	hasJoint := func(consequents []string) bool {
		if len(consequents) != 2 {
			return false
		}
		want := map[string]bool{"bread": true, "milk": true}
		return want[consequents[0]] && want[consequents[1]]
	}

	var found *Rule
	for i := range rules {
		if len(rules[i].Antecedents) == 0 && hasJoint(rules[i].Consequents) {
			found = &rules[i]
			break
		}
	}
	if found == nil {
		t.Fatalf("expected a {} => {bread,milk} non-antecedent rule among %+v", rules)
	}
	if abs(found.Confidence-1) > 1e-9 {
		t.Errorf("joint non-antecedent rule confidence = %v, want 1", found.Confidence)
	}

	for _, r := range rules {
		if len(r.Antecedents) == 0 && len(r.Consequents) == 1 && r.Consequents[0] == "bread" {
			t.Errorf("expected {} => {bread} alone to be filtered out by MaxSupport, got %+v", r)
		}
	}
}

func TestDeriveRulesOmitColumnNames(t *testing.T) {
	trie := NewTrie(NewSettings(WithConsequents("class=1")))
	insertAll(t, trie, [][]string{
		{"class=1", "sex=female"},
		{"class=1", "sex=female"},
		{"sex=male"},
	})

	rules, err := trie.DeriveRules(nil, RuleFilters{}, false, true)
	if err != nil {
		t.Fatalf("DeriveRules failed: %v", err)
	}
	for _, r := range rules {
		for _, a := range r.Antecedents {
			if a == "sex=female" {
				t.Errorf("expected column name stripped, got %q", a)
			}
		}
	}
}

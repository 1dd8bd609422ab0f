package ambre

import "sort"

// PredictOptions configures Trie.Predict (spec.md §4.7).
type PredictOptions struct {
	// Consequents restricts prediction to this subset of the trie's
	// declared consequents. Nil means "all declared consequents".
	Consequents []string
	// SkipUnknownAntecedents, when true, drops antecedent items outside
	// the trie's alphabet (instead of returning an error) and antecedent
	// items that no inserted transaction contained.
	SkipUnknownAntecedents bool
}

// Prediction is one consequent's predicted confidence.
type Prediction struct {
	Consequent string
	Confidence float64
}

// Predict estimates, for each requested consequent c, the confidence of
// "antecedents => c": first by a common-sense rule whose antecedents match
// exactly (or, with SkipUnknownAntecedents, form a subset), falling back to support({c}∪antecedents)/support(antecedents)
// looked up in the trie (spec.md §4.7).
func (t *Trie) Predict(antecedents []string, commonSense *CommonSenseRuleSet, opts PredictOptions) ([]Prediction, error) {
	declared := t.settings.Consequents()
	targets := declared
	if opts.Consequents != nil {
		targets = opts.Consequents
		declaredSet := make(map[string]struct{}, len(declared))
		for _, c := range declared {
			declaredSet[c] = struct{}{}
		}
		for _, c := range targets {
			if _, ok := declaredSet[c]; !ok {
				return nil, &InvalidConsequentError{Item: c}
			}
		}
	}

	normalizedAntecedents := make([]string, 0, len(antecedents))
	for _, a := range antecedents {
		item := t.settings.NormalizeItem(a)
		compressed, err := t.compressItem(item)
		if err != nil {
			if opts.SkipUnknownAntecedents {
				continue
			}
			return nil, err
		}
		if _, known := t.root.children[compressed]; !known && opts.SkipUnknownAntecedents {
			continue
		}
		normalizedAntecedents = append(normalizedAntecedents, item)
	}
	sortByCaseFold(normalizedAntecedents)

	antecedentSupport := 1.0
	if len(normalizedAntecedents) > 0 {
		antecedentNode, err := t.GetNode(normalizedAntecedents, LookupOptions{OnMissing: NilOnMissingItem})
		if err != nil {
			return nil, err
		}
		if antecedentNode == nil {
			antecedentSupport = 0
		} else {
			antecedentSupport = antecedentNode.Support()
		}
	}

	results := make([]Prediction, 0, len(targets))
	for _, consequent := range targets {
		if confidence, ok := commonSenseConfidence(commonSense, normalizedAntecedents, consequent, opts.SkipUnknownAntecedents); ok {
			results = append(results, Prediction{Consequent: consequent, Confidence: confidence})
			continue
		}

		confidence := 0.0
		if antecedentSupport > 0 {
			combined := append([]string{consequent}, normalizedAntecedents...)
			combinedNode, err := t.GetNode(combined, LookupOptions{OnMissing: NilOnMissingItem})
			if err != nil {
				return nil, err
			}
			if combinedNode != nil {
				confidence = combinedNode.Support() / antecedentSupport
			}
		}
		results = append(results, Prediction{Consequent: consequent, Confidence: confidence})
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Confidence > results[j].Confidence })
	return results, nil
}

// commonSenseConfidence reports the confidence of a common-sense rule whose
// consequents contain the requested consequent and whose antecedents either
// equal the supplied antecedents exactly, or — when skipUnknownAntecedents
// is true — are a subset of them, preferring the highest-confidence match
// (spec.md §4.7's short-circuit).
func commonSenseConfidence(set *CommonSenseRuleSet, antecedents []string, consequent string, skipUnknownAntecedents bool) (float64, bool) {
	if set == nil {
		return 0, false
	}
	have := make(map[string]struct{}, len(antecedents))
	for _, a := range antecedents {
		have[a] = struct{}{}
	}
	found := false
	var best float64
	for _, rule := range set.Rules() {
		if !containsItem(rule.Consequents, consequent) {
			continue
		}
		if skipUnknownAntecedents {
			if !isSubsetOfSet(rule.Antecedents, have) {
				continue
			}
		} else if !equalItemSets(rule.Antecedents, antecedents) {
			continue
		}
		if !found || rule.Confidence > best {
			best = rule.Confidence
			found = true
		}
	}
	return best, found
}

func containsItem(items []string, item string) bool {
	for _, i := range items {
		if i == item {
			return true
		}
	}
	return false
}

func isSubsetOfSet(items []string, set map[string]struct{}) bool {
	for _, item := range items {
		if _, ok := set[item]; !ok {
			return false
		}
	}
	return true
}

// equalItemSets reports whether a and b contain the same items, ignoring
// order (both sides are already canonically sorted by the caller, but this
// stays robust to that).
func equalItemSets(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[string]struct{}, len(a))
	for _, item := range a {
		set[item] = struct{}{}
	}
	for _, item := range b {
		if _, ok := set[item]; !ok {
			return false
		}
	}
	return true
}

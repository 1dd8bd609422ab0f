package ambre

// RuleFilters bounds which candidate rules DeriveRules emits.
type RuleFilters struct {
	MinConfidence       float64
	MaxConfidence       float64 // 0 treated as "unset" (defaults to 1)
	MinSupport          float64
	MaxSupport          float64 // 0 treated as "unset" (defaults to 1)
	MinLift             float64
	MaxLift             *float64
	MinOccurrences      int
	MaxOccurrences      *int
	MaxAntecedentsLength *int // additional cap on emitted rules' antecedent count
	ConfidenceTolerance float64
}

// Rule is one antecedents => consequents association rule.
type Rule struct {
	Antecedents        []string
	Consequents        []string
	Confidence         float64
	Lift               float64
	Occurrences        int
	Support            float64
	AntecedentsLength  int
	ConsequentsLength  int
}

type redundancyEntry struct {
	items      map[string]struct{}
	confidence float64
}

func newRedundancyEntry(antecedents, consequents []string, confidence float64) redundancyEntry {
	items := make(map[string]struct{}, len(antecedents)+len(consequents))
	for _, a := range antecedents {
		items[a] = struct{}{}
	}
	for _, c := range consequents {
		items[c] = struct{}{}
	}
	return redundancyEntry{items: items, confidence: confidence}
}

// isSubsetOf reports whether e.items is a subset of candidate.
func (e redundancyEntry) isSubsetOf(candidate map[string]struct{}) bool {
	for item := range e.items {
		if _, ok := candidate[item]; !ok {
			return false
		}
	}
	return true
}

func itemSet(items ...[]string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, slice := range items {
		for _, item := range slice {
			set[item] = struct{}{}
		}
	}
	return set
}

// DeriveRules breadth-first walks the trie from the first-antecedent
// frontier, emitting rules that pass filters and are not redundant
// against commonSense or previously emitted rules (spec.md §4.5).
func (t *Trie) DeriveRules(commonSense *CommonSenseRuleSet, filters RuleFilters, nonAntecedentsRules, omitColumnNames bool) ([]Rule, error) {
	if len(t.settings.Consequents()) == 0 {
		return nil, ErrNoConsequents
	}
	maxConfidence := filters.MaxConfidence
	if maxConfidence == 0 {
		maxConfidence = 1
	}
	maxSupport := filters.MaxSupport
	if maxSupport == 0 {
		maxSupport = 1
	}

	var redundancy []redundancyEntry
	if commonSense != nil {
		for _, r := range commonSense.Rules() {
			redundancy = append(redundancy, newRedundancyEntry(r.Antecedents, r.Consequents, r.Confidence))
		}
	}
	isRedundant := func(candidate map[string]struct{}, confidence float64) bool {
		for _, entry := range redundancy {
			if !entry.isSubsetOf(candidate) {
				continue
			}
			if entry.confidence == 1 || abs(entry.confidence-confidence) <= filters.ConfidenceTolerance {
				return true
			}
		}
		return false
	}
	passesFilters := func(confidence, support, lift float64, occurrences int) bool {
		if confidence < filters.MinConfidence || confidence > maxConfidence {
			return false
		}
		if support < filters.MinSupport || support > maxSupport {
			return false
		}
		if lift < filters.MinLift {
			return false
		}
		if filters.MaxLift != nil && lift > *filters.MaxLift {
			return false
		}
		if occurrences < filters.MinOccurrences {
			return false
		}
		if filters.MaxOccurrences != nil && occurrences > *filters.MaxOccurrences {
			return false
		}
		return true
	}
	formatItems := func(items []string) []string {
		if !omitColumnNames {
			return items
		}
		sep := t.settings.ColumnValueSeparator()
		out := make([]string, len(items))
		for i, item := range items {
			out[i] = stripColumnName(item, sep)
		}
		return out
	}

	var rules []Rule

	if nonAntecedentsRules {
		// Every node whose full path is consequents-only is a non-antecedent
		// rule candidate, not just the root's direct consequent children:
		// with two or more declared consequents the trie also holds deeper
		// nodes (e.g. {A}->{B} when both A and B are declared consequents)
		// whose path never touches an antecedent.
		var visitConsequentOnly func(node *Node)
		visitConsequentOnly = func(node *Node) {
			consequents, _ := node.ConsequentsAntecedents()
			confidence := 1.0
			support := node.Support()
			lift := 1.0
			occurrences := node.Occurrences()
			candidate := itemSet(consequents)
			if passesFilters(confidence, support, lift, occurrences) && !isRedundant(candidate, confidence) {
				rules = append(rules, Rule{
					Antecedents:       nil,
					Consequents:       formatItems(consequents),
					Confidence:        confidence,
					Lift:              lift,
					Occurrences:       occurrences,
					Support:           support,
					AntecedentsLength: 0,
					ConsequentsLength: len(consequents),
				})
				redundancy = append(redundancy, newRedundancyEntry(nil, consequents, confidence))
			}
			for _, child := range consequentPrefix(node.order) {
				visitConsequentOnly(child)
			}
		}
		for _, node := range consequentPrefix(t.root.order) {
			visitConsequentOnly(node)
		}
	}

	level := t.FirstAntecedentFrontier()
	antecedentCount := 1
	for len(level) > 0 {
		var next []*Node
		for _, node := range level {
			confidence, err := node.Confidence()
			if err != nil {
				return nil, err
			}
			withinCap := filters.MaxAntecedentsLength == nil || antecedentCount <= *filters.MaxAntecedentsLength
			if withinCap {
				parentConfidence, err := node.Parent().Confidence()
				if err != nil {
					return nil, err
				}
				if node.Parent().IsConsequent() || confidence != parentConfidence {
					support := node.Support()
					lift, err := node.Lift()
					if err != nil {
						return nil, err
					}
					occurrences := node.Occurrences()
					if passesFilters(confidence, support, lift, occurrences) {
						consequents, antecedents := node.ConsequentsAntecedents()
						candidate := itemSet(antecedents, consequents)
						if !isRedundant(candidate, confidence) {
							rules = append(rules, Rule{
								Antecedents:       formatItems(antecedents),
								Consequents:       formatItems(consequents),
								Confidence:        confidence,
								Lift:              lift,
								Occurrences:       occurrences,
								Support:           support,
								AntecedentsLength: len(antecedents),
								ConsequentsLength: len(consequents),
							})
							redundancy = append(redundancy, newRedundancyEntry(antecedents, consequents, confidence))
						}
					}
				}
			}
			// Descent gate: confidence == 1 makes every descendant a
			// subset-equivalent redundancy (spec.md §4.5).
			if confidence != 1 && withinCap {
				next = append(next, node.order...)
			}
		}
		level = next
		antecedentCount++
	}

	return rules, nil
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

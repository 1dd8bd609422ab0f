package ambre

import (
	"sort"
	"strings"
)

// CommonSenseRule is an expert-supplied rule used to suppress redundant
// mined rules and to short-circuit predictions (spec.md §3, §4.4).
// Antecedents and Consequents must already be normalized, compressed-free
// (uncompressed) item strings.
type CommonSenseRule struct {
	Antecedents []string
	Consequents []string
	Confidence  float64
}

func (r CommonSenseRule) key() string {
	return strings.Join(r.Consequents, "\x1f") + "\x1e" + strings.Join(r.Antecedents, "\x1f")
}

func (r CommonSenseRule) less(other CommonSenseRule) bool {
	ak := strings.Join(r.Antecedents, "\x1f")
	bk := strings.Join(other.Antecedents, "\x1f")
	if ak != bk {
		return ak < bk
	}
	ck := strings.Join(r.Consequents, "\x1f")
	dk := strings.Join(other.Consequents, "\x1f")
	if ck != dk {
		return ck < dk
	}
	return r.Confidence < other.Confidence
}

// CommonSenseRuleSet holds a deduplicated, canonically ordered set of
// common-sense rules (spec.md §4.4).
type CommonSenseRuleSet struct {
	rules []CommonSenseRule
}

// NewCommonSenseRuleSet returns an empty rule set.
func NewCommonSenseRuleSet() *CommonSenseRuleSet {
	return &CommonSenseRuleSet{}
}

// Rules returns the minimised rule set in canonical order.
func (s *CommonSenseRuleSet) Rules() []CommonSenseRule {
	return append([]CommonSenseRule(nil), s.rules...)
}

// Insert adds a single rule (batch of one) and re-minimises.
func (s *CommonSenseRuleSet) Insert(antecedents, consequents []string, confidence float64) {
	s.InsertAll([]CommonSenseRule{{Antecedents: antecedents, Consequents: consequents, Confidence: confidence}})
}

// InsertAll unions rules into the set and re-applies the two-step
// minimisation from spec.md §4.4:
//  1. for each (antecedents, consequents) key, keep only the highest-
//     confidence rule;
//  2. drop any rule whose antecedents are a strict superset of some kept
//     rule with the same consequents and same confidence.
func (s *CommonSenseRuleSet) InsertAll(rules []CommonSenseRule) {
	all := append(append([]CommonSenseRule(nil), s.rules...), rules...)

	// Step 1: keep highest confidence per (antecedents, consequents) key.
	best := make(map[string]CommonSenseRule, len(all))
	for _, r := range all {
		k := r.key()
		if existing, ok := best[k]; !ok || r.Confidence > existing.Confidence {
			best[k] = r
		}
	}
	kept := make([]CommonSenseRule, 0, len(best))
	for _, r := range best {
		kept = append(kept, r)
	}

	// Step 2: drop rules subsumed by a stronger-or-equal rule with a
	// subset of their antecedents, the same consequents, and the same
	// confidence.
	final := kept[:0:0]
	for _, r := range kept {
		subsumed := false
		for _, other := range kept {
			if isStrictSupersetSameConsequentsSameConfidence(r, other) {
				subsumed = true
				break
			}
		}
		if !subsumed {
			final = append(final, r)
		}
	}

	sort.Slice(final, func(i, j int) bool { return final[i].less(final[j]) })
	s.rules = final
}

func isStrictSupersetSameConsequentsSameConfidence(r, other CommonSenseRule) bool {
	if r.Confidence != other.Confidence {
		return false
	}
	if !sameSet(r.Consequents, other.Consequents) {
		return false
	}
	return isStrictSuperset(r.Antecedents, other.Antecedents)
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[string]struct{}, len(a))
	for _, x := range a {
		set[x] = struct{}{}
	}
	for _, x := range b {
		if _, ok := set[x]; !ok {
			return false
		}
	}
	return true
}

// isStrictSuperset reports whether a is a strict superset of b.
func isStrictSuperset(a, b []string) bool {
	if len(a) <= len(b) {
		return false
	}
	set := make(map[string]struct{}, len(a))
	for _, x := range a {
		set[x] = struct{}{}
	}
	for _, x := range b {
		if _, ok := set[x]; !ok {
			return false
		}
	}
	return true
}

// Clear removes all common-sense rules.
func (s *CommonSenseRuleSet) Clear() {
	s.rules = nil
}

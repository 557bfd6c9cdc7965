package bpe

// MergeRule records one learned merge. Rank is the 0-based iteration at
// which the rule was learned; rules must be replayed in ascending rank.
type MergeRule struct {
	Pair   Pair
	Result Symbol
	Rank   int
}

// MergeRuleSet is an insertion-ordered mapping from pair to merge rule.
type MergeRuleSet struct {
	rules []MergeRule
	index map[Pair]int
}

func newMergeRuleSet(capacity int) *MergeRuleSet {
	return &MergeRuleSet{
		rules: make([]MergeRule, 0, capacity),
		index: make(map[Pair]int, capacity),
	}
}

func (s *MergeRuleSet) add(p Pair, result Symbol) MergeRule {
	r := MergeRule{Pair: p, Result: result, Rank: len(s.rules)}
	s.index[p] = len(s.rules)
	s.rules = append(s.rules, r)
	return r
}

// Len returns the number of learned rules. A nil set is empty.
func (s *MergeRuleSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.rules)
}

// Rules returns a copy of the rules in rank order.
func (s *MergeRuleSet) Rules() []MergeRule {
	if s == nil {
		return nil
	}
	return append([]MergeRule(nil), s.rules...)
}

// Lookup returns the rule learned for p, if any.
func (s *MergeRuleSet) Lookup(p Pair) (MergeRule, bool) {
	if s == nil {
		return MergeRule{}, false
	}
	i, ok := s.index[p]
	if !ok {
		return MergeRule{}, false
	}
	return s.rules[i], true
}

// NextSymbol returns the id the next learned merge would receive.
func (s *MergeRuleSet) NextSymbol() Symbol {
	return FirstMergedSymbol + Symbol(s.Len())
}

// Bytes expands sym into the base bytes it stands for. It reports false for
// ids that are neither base symbols nor minted by this set.
func (s *MergeRuleSet) Bytes(sym Symbol) ([]byte, bool) {
	if sym >= 0 && sym < NumBaseSymbols {
		return []byte{byte(sym)}, true
	}
	i := int(sym - FirstMergedSymbol)
	if i < 0 || i >= s.Len() {
		return nil, false
	}
	r := s.rules[i]
	first, _ := s.Bytes(r.Pair.First)
	second, _ := s.Bytes(r.Pair.Second)
	return append(first, second...), true
}

package cart

// ShippingRule is a three-tier fee table for one (method, category) pair.
// Thresholds ascend: a subtotal below T1 pays F1, below T2 pays F2, below T3
// pays F3, and at or above T3 ships free.
type ShippingRule struct {
	Method   string
	Category string
	T1       int
	F1       int
	T2       int
	F2       int
	T3       int
	F3       int
}

type ruleKey struct {
	method   string
	category string
}

// RateTable holds the shipping rules for one page session, read-only after
// load.
type RateTable struct {
	rules map[ruleKey]ShippingRule
}

func NewRateTable(rules []ShippingRule) *RateTable {
	t := &RateTable{rules: make(map[ruleKey]ShippingRule, len(rules))}
	for _, r := range rules {
		t.rules[ruleKey{method: r.Method, category: r.Category}] = r
	}

	return t
}

// Fee returns the shipping fee for a subtotal under the rule matching
// (method, category). A missing rule is "not yet configured", not an error:
// the fee is 0 and configured is false so the caller can log the silent
// default instead of undercharging quietly.
func (t *RateTable) Fee(method, category string, subtotal int) (fee int, configured bool) {
	rule, ok := t.rules[ruleKey{method: method, category: category}]
	if !ok {
		return 0, false
	}

	switch {
	case subtotal < rule.T1:
		return rule.F1, true
	case subtotal < rule.T2:
		return rule.F2, true
	case subtotal < rule.T3:
		return rule.F3, true
	default:
		return 0, true
	}
}

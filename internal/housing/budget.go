package housing

import (
	"strconv"
	"strings"
)

// BudgetBound is a half-open price constraint in ten-thousand TWD.
// A nil side imposes no constraint on that side.
type BudgetBound struct {
	Min *int
	Max *int
}

// IsZero reports whether the bound constrains nothing.
func (b BudgetBound) IsZero() bool {
	return b.Min == nil && b.Max == nil
}

// Contains reports whether price satisfies the bound.
func (b BudgetBound) Contains(price float64) bool {
	if b.Min != nil && price < float64(*b.Min) {
		return false
	}
	if b.Max != nil && price > float64(*b.Max) {
		return false
	}
	return true
}

// ParseBudget turns a free-text budget expression into a BudgetBound.
// Recognized forms, in priority order:
//
//	"1000-1500"   range, both bounds
//	"1000萬以下"  upper bound only
//	"3000萬以上"  lower bound only
//
// The 「萬」 unit marker is stripped wherever it appears; amounts are
// uniformly in ten-thousand TWD. Anything else, including malformed
// ranges, degrades to no constraint rather than an error.
func ParseBudget(s string) BudgetBound {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "萬", "")
	if s == "" {
		return BudgetBound{}
	}

	if strings.Contains(s, "-") {
		parts := strings.SplitN(s, "-", 2)
		lo, err1 := parseAmount(parts[0])
		hi, err2 := parseAmount(parts[1])
		if err1 != nil || err2 != nil {
			return BudgetBound{}
		}
		return BudgetBound{Min: &lo, Max: &hi}
	}

	if cut, ok := strings.CutSuffix(s, "以下"); ok {
		n, err := parseAmount(cut)
		if err != nil {
			return BudgetBound{}
		}
		return BudgetBound{Max: &n}
	}

	if cut, ok := strings.CutSuffix(s, "以上"); ok {
		n, err := parseAmount(cut)
		if err != nil {
			return BudgetBound{}
		}
		return BudgetBound{Min: &n}
	}

	return BudgetBound{}
}

func parseAmount(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

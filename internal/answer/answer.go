package answer

import (
	"math"
	"strconv"
	"strings"
)

// Tolerance is the absolute difference below which two numeric answers
// are considered equal. It does not scale with magnitude.
const Tolerance = 1e-4

// Rule selects how a learner's answer is compared to the canonical answer.
type Rule string

const (
	RuleExact    Rule = "exact"
	RuleNumeric  Rule = "numeric"
	RuleFraction Rule = "fraction"
)

// ParseRule maps a wire value to a Rule. Unknown or empty values map to RuleExact.
func ParseRule(s string) Rule {
	switch Rule(strings.ToLower(strings.TrimSpace(s))) {
	case RuleNumeric:
		return RuleNumeric
	case RuleFraction:
		return RuleFraction
	default:
		return RuleExact
	}
}

// Validate compares the learner's input against the canonical answer
// under rule. The result is strictly boolean; there is no partial credit.
//
// Comparison rules:
// - Both sides are trimmed of surrounding whitespace
// - exact: case-insensitive equality
// - numeric: both sides parsed as floats, equal within Tolerance
// - fraction: "a/b" values equal within Tolerance; malformed input or a
//   zero denominator falls back to case-sensitive string equality
// - any other rule behaves as exact
func Validate(rule Rule, candidate, canonical string) bool {
	candidate = strings.TrimSpace(candidate)
	canonical = strings.TrimSpace(canonical)

	switch rule {
	case RuleNumeric:
		return checkNumeric(candidate, canonical)
	case RuleFraction:
		return checkFraction(candidate, canonical)
	default:
		return strings.EqualFold(candidate, canonical)
	}
}

func checkNumeric(candidate, canonical string) bool {
	a, err := strconv.ParseFloat(candidate, 64)
	if err != nil {
		return false
	}
	b, err := strconv.ParseFloat(canonical, 64)
	if err != nil {
		return false
	}
	return within(a, b)
}

func checkFraction(candidate, canonical string) bool {
	a, okA := fractionValue(candidate)
	b, okB := fractionValue(canonical)
	if !okA || !okB {
		return candidate == canonical
	}
	return within(a, b)
}

// fractionValue parses "a/b" into a/b. Segments that are empty or not
// numbers are skipped, so "1//2" and "/1/2" read as 1/2. It reports
// false when s does not have exactly two numeric parts or the
// denominator is zero.
func fractionValue(s string) (float64, bool) {
	var nums []float64
	for _, part := range strings.Split(s, "/") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if n, err := strconv.ParseFloat(part, 64); err == nil {
			nums = append(nums, n)
		}
	}
	if len(nums) != 2 || nums[1] == 0 {
		return 0, false
	}
	return nums[0] / nums[1], true
}

func within(a, b float64) bool {
	return math.Abs(a-b) < Tolerance
}

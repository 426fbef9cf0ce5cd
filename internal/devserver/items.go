package devserver

import (
	"fmt"
	"math/rand/v2"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/zxyasa/ai-zhao-tutor/internal/answer"
	"github.com/zxyasa/ai-zhao-tutor/internal/api"
)

const (
	SkillMultiplication  = "yr4_mult_div_001"
	SkillFractionCompare = "yr3_frac_compare_001"
	SkillParity          = "yr3_odd_even_001"
)

// generator produces a fresh item for one skill at a difficulty in 1..5.
type generator func(r *rand.Rand, difficulty int) api.Item

var generators = map[string]generator{
	SkillMultiplication:  multiplicationItem,
	SkillFractionCompare: fractionCompareItem,
	SkillParity:          parityItem,
}

// skillOrder fixes iteration order over generators.
var skillOrder = []string{SkillMultiplication, SkillFractionCompare, SkillParity}

// difficultyFor maps a mastery score onto the 1..5 difficulty scale.
func difficultyFor(score float64) int {
	switch {
	case score < 0.3:
		return 1
	case score < 0.5:
		return 2
	case score < 0.7:
		return 3
	case score < 0.9:
		return 4
	default:
		return 5
	}
}

func itemID(skill string, difficulty int) string {
	suffix, err := gonanoid.Generate("0123456789abcdef", 6)
	if err != nil {
		suffix = "000000"
	}
	return fmt.Sprintf("%s_d%d_%s", skill, difficulty, suffix)
}

// between returns a uniform integer in [lo, hi].
func between(r *rand.Rand, lo, hi int) int {
	return lo + r.IntN(hi-lo+1)
}

func multiplicationItem(r *rand.Rand, difficulty int) api.Item {
	var a, b int
	var hint string
	switch difficulty {
	case 1:
		a, b = between(r, 2, 5), between(r, 1, 10)
		hint = "Use repeated addition or skip counting."
	case 2:
		a, b = between(r, 6, 9), between(r, 1, 10)
		hint = "Break it into easier chunks (e.g. 7×6 = 7×5 + 7)."
	case 3:
		a, b = between(r, 2, 12), between(r, 6, 12)
		hint = "Recall times-table patterns and commutative property."
	default:
		a, b = between(r, 11, 20), between(r, 2, 9)
		hint = "Split by place value: 14×6 = (10×6) + (4×6)."
	}
	if r.IntN(2) == 0 {
		a, b = b, a
	}
	product := a * b

	return api.Item{
		ItemID:       itemID(SkillMultiplication, difficulty),
		SkillID:      SkillMultiplication,
		QuestionText: fmt.Sprintf("What is %d × %d?", a, b),
		QuestionType: "numeric",
		Difficulty:   difficulty,
		Parameters: map[string]api.Value{
			"a": api.Number(float64(a)),
			"b": api.Number(float64(b)),
		},
		CorrectAnswer:  fmt.Sprint(product),
		Hint:           hint,
		Explanation:    fmt.Sprintf("%d × %d = %d", a, b, product),
		ValidationRule: string(answer.RuleNumeric),
	}
}

func fractionCompareItem(r *rand.Rand, difficulty int) api.Item {
	var n1, d1, n2, d2 int
	var hint, explanation string

	if difficulty <= 2 {
		d := between(r, 3, 6+2*difficulty)
		n1 = between(r, 1, d-1)
		n2 = between(r, 1, d-1)
		for n2 == n1 {
			n2 = between(r, 1, d-1)
		}
		d1, d2 = d, d
		hint = "When denominators are the same, compare the numerators."
		explanation = fmt.Sprintf("Both fractions have denominator %d. Compare numerators: %d > %d.",
			d, max(n1, n2), min(n1, n2))
	} else {
		for {
			d1, d2 = between(r, 2, 12), between(r, 2, 12)
			n1, n2 = between(r, 1, d1-1), between(r, 1, d2-1)
			if d1 != d2 && n1*d2 != n2*d1 {
				break
			}
		}
		l := lcm(d1, d2)
		hint = "Find a common denominator to compare fractions with different denominators."
		explanation = fmt.Sprintf("Convert to common denominator %d: %d/%d = %d/%d and %d/%d = %d/%d. Then compare numerators.",
			l, n1, d1, n1*(l/d1), l, n2, d2, n2*(l/d2), l)
	}

	larger := fmt.Sprintf("%d/%d", n1, d1)
	if n2*d1 > n1*d2 {
		larger = fmt.Sprintf("%d/%d", n2, d2)
	}

	return api.Item{
		ItemID:       itemID(SkillFractionCompare, difficulty),
		SkillID:      SkillFractionCompare,
		QuestionText: fmt.Sprintf("Which is larger: %d/%d or %d/%d?", n1, d1, n2, d2),
		QuestionType: "fraction",
		Difficulty:   difficulty,
		Parameters: map[string]api.Value{
			"fractions": api.List(
				api.String(fmt.Sprintf("%d/%d", n1, d1)),
				api.String(fmt.Sprintf("%d/%d", n2, d2)),
			),
		},
		CorrectAnswer:  larger,
		Hint:           hint,
		Explanation:    explanation,
		ValidationRule: string(answer.RuleFraction),
	}
}

func parityItem(r *rand.Rand, difficulty int) api.Item {
	limit := 10
	for i := 1; i < difficulty; i++ {
		limit *= 10
	}
	n := between(r, 1, limit)

	parity, reason := "even", "it divides evenly by 2"
	if n%2 != 0 {
		parity, reason = "odd", "it leaves a remainder of 1 when divided by 2"
	}

	return api.Item{
		ItemID:       itemID(SkillParity, difficulty),
		SkillID:      SkillParity,
		QuestionText: fmt.Sprintf("Is %d odd or even?", n),
		QuestionType: "text",
		Difficulty:   difficulty,
		Parameters: map[string]api.Value{
			"n":       api.Number(float64(n)),
			"choices": api.List(api.String("odd"), api.String("even")),
		},
		CorrectAnswer:  parity,
		Hint:           "Look only at the last digit.",
		Explanation:    fmt.Sprintf("%d is %s because %s.", n, parity, reason),
		ValidationRule: string(answer.RuleExact),
	}
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func lcm(a, b int) int {
	return a / gcd(a, b) * b
}

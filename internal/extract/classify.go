package extract

import (
	"strings"
	"unicode/utf8"
)

// LineClass is the verdict of the line classifier for one caption line.
type LineClass int

const (
	// ClassNoise marks lines too short or too uninformative to carry data.
	ClassNoise LineClass = iota
	// ClassHeader marks section-label lines ("Malzemeler:"); discarded.
	ClassHeader
	// ClassQuantity marks lines opening with a quantity+unit expression;
	// routed to the ingredient extractor and excluded from step candidacy.
	ClassQuantity
	// ClassParenthetical marks lines wholly wrapped in one parenthesis
	// pair; discarded as bare asides.
	ClassParenthetical
	// ClassInstruction marks candidate instruction sentences.
	ClassInstruction
)

// minIngredientLineLen and minStepLineLen are the noise thresholds for
// ingredient and step candidacy respectively.
const (
	minIngredientLineLen = 3
	minStepLineLen       = 10
)

// classifierRule is one predicate in the classifier's fixed priority order.
// Rules are evaluated in sequence and the first match wins, which keeps the
// priority auditable per rule.
type classifierRule struct {
	name  string
	class LineClass
	match func(line string) bool
}

func buildClassifierRules(e *Engine) []classifierRule {
	return []classifierRule{
		{
			name:  "noise",
			class: ClassNoise,
			match: func(line string) bool {
				return utf8.RuneCountInString(line) < minIngredientLineLen
			},
		},
		{
			name:  "header",
			class: ClassHeader,
			match: e.isHeaderLine,
		},
		{
			name:  "quantity",
			class: ClassQuantity,
			match: func(line string) bool {
				m, ok := e.matchQuantity(line)
				return ok && m.unit != ""
			},
		},
		{
			name:  "parenthetical",
			class: ClassParenthetical,
			match: isParentheticalOnly,
		},
		{
			name:  "instruction",
			class: ClassInstruction,
			match: func(line string) bool {
				return utf8.RuneCountInString(line) >= minStepLineLen && e.containsVerb(line)
			},
		},
	}
}

// Classify assigns a class to one trimmed caption line. Classification is
// line-local; no cross-line state is consulted.
func (e *Engine) Classify(line string) LineClass {
	for _, rule := range e.rules {
		if rule.match(line) {
			return rule.class
		}
	}
	return ClassNoise
}

func (e *Engine) isHeaderLine(line string) bool {
	norm := strings.ToLower(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(line), ":")))
	for _, h := range e.lex.Headers {
		if norm == h {
			return true
		}
	}
	for _, p := range e.lex.HeaderPrefixes {
		if strings.HasPrefix(norm, p) {
			return true
		}
	}
	for _, s := range e.lex.HeaderSuffixes {
		if strings.HasSuffix(norm, s) {
			return true
		}
	}
	return false
}

func (e *Engine) containsVerb(line string) bool {
	lower := strings.ToLower(line)
	for _, verb := range e.lex.ActionVerbs {
		if strings.Contains(lower, verb) {
			return true
		}
	}
	return false
}

func isParentheticalOnly(line string) bool {
	return strings.HasPrefix(line, "(") &&
		strings.HasSuffix(line, ")") &&
		strings.Count(line, "(") == 1 &&
		strings.Count(line, ")") == 1
}

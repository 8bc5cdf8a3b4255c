package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// maxDroppedItemLen: items this short after cleanup are discarded, not
// errors. "2 su bardağı un" keeps "un" out only if it normalizes to <=2
// runes, so real two-letter staples still need context to survive.
const maxDroppedItemLen = 2

// quantityTemplate is one entry in the ordered template list. Templates are
// tried in slice order and the first regexp that matches wins; there is no
// backtracking into later templates once one succeeds.
//
// Every template captures (amount, optional unit, remainder).
type quantityTemplate struct {
	name string
	re   *regexp.Regexp
}

// quantityMatch is a successful template application to one line.
type quantityMatch struct {
	template string
	amount   string
	unit     string
	rest     string
}

// buildQuantityTemplates compiles the canonical template order:
//
//  1. vulgar fraction ("1/2 su bardağı un")
//  2. numeric with optional decimal separator ("3 yumurta", "1,5 kg kıyma")
//  3. word numeral ("Yarım su bardağı süt")
//
// The fraction template precedes the numeric one on purpose: the numeric
// amount pattern would otherwise consume the "1" of "1/2" and push "/2 ..."
// into the item. This order is part of the engine's contract, not an
// implementation detail.
func buildQuantityTemplates(lex *Lexicon) []quantityTemplate {
	templates := []quantityTemplate{
		{
			name: "fraction",
			re:   regexp.MustCompile(`(?i)^(\d+/\d+)\s*(` + alternation(lex.FractionUnits) + `)?\s*(.+)$`),
		},
		{
			name: "numeric",
			re:   regexp.MustCompile(`(?i)^(\d+(?:[.,]\d+)?)\s*(` + alternation(lex.NumericUnits) + `)?\s*(.+)$`),
		},
	}
	// Without numerals the word template would match every line with an
	// empty amount, so it only exists when the vocabulary does.
	if len(lex.WordNumerals) > 0 {
		templates = append(templates, quantityTemplate{
			name: "word",
			re:   regexp.MustCompile(`(?i)^(` + alternation(lex.WordNumerals) + `)\s*(` + alternation(lex.WordUnits) + `)?\s*(.+)$`),
		})
	}
	return templates
}

// alternation joins vocabulary words into a regexp alternation, preserving
// the lexicon's order so longer forms shadow their prefixes.
func alternation(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return strings.Join(quoted, "|")
}

// matchQuantity applies the template list to one line, first match wins.
func (e *Engine) matchQuantity(line string) (quantityMatch, bool) {
	for _, t := range e.templates {
		if m := t.re.FindStringSubmatch(line); m != nil {
			return quantityMatch{
				template: t.name,
				amount:   m[1],
				unit:     m[2],
				rest:     strings.TrimSpace(m[3]),
			}, true
		}
	}
	return quantityMatch{}, false
}

// extractIngredients converts quantity-bearing lines into structured
// triples. It deliberately scans every caption line rather than only those
// the classifier routed here: a line matching an amount template is an
// ingredient candidate regardless of its classification, which keeps the
// matching permissive for captions that interleave sections.
//
// Lines matching no template are silently skipped.
func (e *Engine) extractIngredients(lines []string) []Ingredient {
	ingredients := []Ingredient{}
	for _, line := range lines {
		if utf8.RuneCountInString(line) < minIngredientLineLen {
			continue
		}
		m, ok := e.matchQuantity(line)
		if !ok {
			continue
		}
		item := e.cleanItem(m.rest)
		if utf8.RuneCountInString(item) <= maxDroppedItemLen {
			continue
		}
		ingredients = append(ingredients, Ingredient{
			Item:   item,
			Amount: m.amount,
			Unit:   m.unit,
		})
	}
	return ingredients
}

// cleanItem strips a narrow leading filler ("adet", "tane") and collapses
// runs of whitespace.
func (e *Engine) cleanItem(item string) string {
	item = e.matchers.fillerRe.ReplaceAllString(item, "")
	item = e.matchers.spaceRe.ReplaceAllString(item, " ")
	return strings.TrimSpace(item)
}

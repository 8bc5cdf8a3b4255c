package extract

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	titleScanLines = 5
	titleMinLen    = 5
	titleMaxLen    = 60
)

// captionMatchers are the compiled whole-caption matchers. They depend only
// on the lexicon and are built once per engine.
type captionMatchers struct {
	fillerRe   *regexp.Regexp
	spaceRe    *regexp.Regexp
	durationRe *regexp.Regexp
	restRe     *regexp.Regexp
	servingsRe *regexp.Regexp
	totalRe    *regexp.Regexp
	hashtagRe  *regexp.Regexp
	symbolRe   *regexp.Regexp
}

// neverMatch is used when a vocabulary table is empty, keeping every matcher
// non-nil.
var neverMatch = regexp.MustCompile(`\A\z.`)

func vocabRe(pattern string, words []string) *regexp.Regexp {
	if len(words) == 0 {
		return neverMatch
	}
	return regexp.MustCompile(fmt.Sprintf(pattern, alternation(words)))
}

func buildCaptionMatchers(lex *Lexicon) *captionMatchers {
	return &captionMatchers{
		fillerRe:   vocabRe(`(?i)^(?:%s)\s+`, lex.Fillers),
		spaceRe:    regexp.MustCompile(`\s+`),
		durationRe: vocabRe(`(?i)\d+(?:\s*-\s*\d+)?\s*(?:%s)`, lex.DurationUnits),
		restRe:     vocabRe(`(?i)\d+\s*(?:%s)`, lex.RestUnits),
		servingsRe: vocabRe(`(?i)(\d+)\s*(?:%s)`, lex.ServingsWords),
		totalRe:    vocabRe(`(?i)\d+\s*(?:%s)`, lex.MinutesWords),
		hashtagRe:  regexp.MustCompile(`#([\p{L}\p{N}_]+)`),
		symbolRe:   regexp.MustCompile(`[^\p{L}\p{N}_\s]`),
	}
}

// extractTitle scans the first few raw caption lines for a short, meaningful
// one: strictly between 5 and 60 runes, not opening with a digit, and still
// longer than 5 runes once symbols and emoji are stripped. Falls back to the
// lexicon's default label.
func (e *Engine) extractTitle(rawLines []string) string {
	limit := titleScanLines
	if len(rawLines) < limit {
		limit = len(rawLines)
	}
	for _, line := range rawLines[:limit] {
		line = strings.TrimSpace(line)
		n := utf8.RuneCountInString(line)
		if n <= titleMinLen || n >= titleMaxLen {
			continue
		}
		if first, _ := utf8.DecodeRuneInString(line); unicode.IsDigit(first) {
			continue
		}
		title := e.matchers.symbolRe.ReplaceAllString(line, "")
		title = strings.TrimSpace(e.matchers.spaceRe.ReplaceAllString(title, " "))
		if utf8.RuneCountInString(title) > titleMinLen {
			return title
		}
	}
	return e.lex.DefaultTitle
}

// extractDifficulty checks the difficulty vocabularies by case-insensitive
// substring containment. Note this is containment, not whole-word matching:
// a word that merely embeds a keyword triggers it. That behavior is part of
// the contract (see the test) until a product decision tightens it.
func (e *Engine) extractDifficulty(caption string) Difficulty {
	lower := strings.ToLower(caption)
	for _, w := range e.lex.EasyWords {
		if strings.Contains(lower, w) {
			return DifficultyEasy
		}
	}
	for _, w := range e.lex.HardWords {
		if strings.Contains(lower, w) {
			return DifficultyHard
		}
	}
	return DifficultyMedium
}

// extractServings returns the first number+servings-word match, rendered
// through the lexicon's canonical format, or "" when absent.
func (e *Engine) extractServings(caption string) string {
	m := e.matchers.servingsRe.FindStringSubmatch(caption)
	if m == nil {
		return ""
	}
	return fmt.Sprintf(e.lex.ServingsFormat, m[1])
}

// extractTotalDuration returns the first number+minutes match anywhere in
// the caption. This is caption-scoped and distinct from per-step durations.
func (e *Engine) extractTotalDuration(caption string) string {
	return e.matchers.totalRe.FindString(caption)
}

// extractHashtags returns all #word tokens in order of appearance, or nil
// when the caption has none so callers can tell "no hashtags" from "not
// computed".
func (e *Engine) extractHashtags(caption string) []string {
	matches := e.matchers.hashtagRe.FindAllStringSubmatch(caption, -1)
	if len(matches) == 0 {
		return nil
	}
	tags := make([]string, len(matches))
	for i, m := range matches {
		tags[i] = m[1]
	}
	return tags
}

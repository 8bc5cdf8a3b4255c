package extract

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// minStepSentenceLen drops post-split fragments too short to be real
	// instructions.
	minStepSentenceLen = 15
	// minTipLen: shorter parentheticals are assumed to be quantities or
	// throwaway asides, not tips.
	minTipLen = 10
)

// SentenceSplitter breaks one caption line into independent sentences. The
// default implementation is a threshold/regex heuristic, not a real
// tokenizer; it is an interface so a better one can be substituted without
// touching the step extractor's duration and tip logic.
type SentenceSplitter interface {
	Split(text string) []string
}

// HeuristicSplitter splits on sentence-boundary heuristics once a line
// exceeds LongLine runes: at a period followed by whitespace and an
// uppercase start. Pieces still longer than ReSplit runes are re-split on
// bare periods, keeping only fragments longer than MinFragment runes.
type HeuristicSplitter struct {
	LongLine    int
	ReSplit     int
	MinFragment int
}

// NewHeuristicSplitter returns the splitter with the engine's standard
// thresholds.
func NewHeuristicSplitter() *HeuristicSplitter {
	return &HeuristicSplitter{
		LongLine:    150,
		ReSplit:     200,
		MinFragment: 30,
	}
}

var sentenceBoundaryRe = regexp.MustCompile(`\.\s+`)

// Split implements SentenceSplitter. Short lines come back as a
// single-element slice, untouched.
func (s *HeuristicSplitter) Split(text string) []string {
	if utf8.RuneCountInString(text) <= s.LongLine {
		return []string{text}
	}

	pieces := splitAtUppercaseBoundaries(text)

	out := make([]string, 0, len(pieces))
	for _, piece := range pieces {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		if utf8.RuneCountInString(piece) <= s.ReSplit {
			out = append(out, piece)
			continue
		}
		for _, frag := range strings.Split(piece, ".") {
			frag = strings.TrimSpace(frag)
			if utf8.RuneCountInString(frag) > s.MinFragment {
				out = append(out, frag)
			}
		}
	}
	return out
}

// splitAtUppercaseBoundaries cuts at ". " boundaries only when the next rune
// is an uppercase letter of the source script, so decimals and mid-sentence
// abbreviations survive.
func splitAtUppercaseBoundaries(text string) []string {
	var pieces []string
	start := 0
	for _, loc := range sentenceBoundaryRe.FindAllStringIndex(text, -1) {
		next, _ := utf8.DecodeRuneInString(text[loc[1]:])
		if !unicode.IsUpper(next) {
			continue
		}
		// Keep the period with the preceding sentence.
		pieces = append(pieces, text[start:loc[0]+1])
		start = loc[1]
	}
	pieces = append(pieces, text[start:])
	return pieces
}

// extractSteps converts instruction-candidate lines into the ordered step
// sequence. Long lines are split first so that numbering reflects clause
// granularity: one caption line bundling several imperative clauses becomes
// several consecutively numbered steps.
func (e *Engine) extractSteps(lines []string) []Step {
	steps := []Step{}
	order := 1
	for _, line := range lines {
		for _, sentence := range e.splitter.Split(line) {
			sentence = strings.TrimSpace(sentence)
			if utf8.RuneCountInString(sentence) < minStepSentenceLen {
				continue
			}
			steps = append(steps, Step{
				Order:    order,
				Text:     sentence,
				Duration: e.extractStepDuration(sentence),
				Tip:      extractTip(sentence),
			})
			order++
		}
	}
	return steps
}

// extractStepDuration returns the first duration expression in the sentence:
// a number (or N-M range) plus a duration unit, falling back to the rest
// vocabulary ("2 gece"). The matched text stays inside the step text; the
// return value is an annotation.
func (e *Engine) extractStepDuration(sentence string) string {
	if m := e.matchers.durationRe.FindString(sentence); m != "" {
		return m
	}
	return e.matchers.restRe.FindString(sentence)
}

var parentheticalRe = regexp.MustCompile(`\(([^)]+)\)`)

// extractTip returns the first parenthetical whose content is long enough to
// be informative and does not open with a digit (digit-led parentheticals
// are quantities, not tips).
func extractTip(sentence string) string {
	for _, m := range parentheticalRe.FindAllStringSubmatch(sentence, -1) {
		content := strings.TrimSpace(m[1])
		if utf8.RuneCountInString(content) <= minTipLen {
			continue
		}
		first, _ := utf8.DecodeRuneInString(content)
		if unicode.IsDigit(first) {
			continue
		}
		return content
	}
	return ""
}

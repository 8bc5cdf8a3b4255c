// Package extract implements the heuristic recipe extraction engine: a set
// of vocabulary-driven rules that classify caption lines and pull structured
// ingredients, steps and metadata out of free social-media text.
//
// The engine is pure and deterministic. It performs no I/O, holds no mutable
// state after construction, and the same caption always yields the same
// Recipe, so one Engine may be shared across goroutines freely.
package extract

import (
	"strings"
)

// Engine runs all extraction passes over one caption. Build it once per
// lexicon with NewEngine and reuse it.
type Engine struct {
	lex       *Lexicon
	templates []quantityTemplate
	rules     []classifierRule
	splitter  SentenceSplitter
	matchers  *captionMatchers
}

// Option configures an Engine.
type Option func(*Engine)

// WithSentenceSplitter replaces the default threshold-based splitter used by
// the step extractor. Duration and tip annotation are unaffected.
func WithSentenceSplitter(s SentenceSplitter) Option {
	return func(e *Engine) {
		e.splitter = s
	}
}

// NewEngine compiles the lexicon's vocabulary tables into matchers. A nil
// lexicon falls back to the Turkish default.
func NewEngine(lex *Lexicon, opts ...Option) *Engine {
	if lex == nil {
		lex = Turkish()
	}
	e := &Engine{
		lex:       lex,
		templates: buildQuantityTemplates(lex),
		splitter:  NewHeuristicSplitter(),
		matchers:  buildCaptionMatchers(lex),
	}
	e.rules = buildClassifierRules(e)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Language reports the lexicon's language tag.
func (e *Engine) Language() string {
	return e.lex.Language
}

// Extract runs every pass over the caption and assembles the result. It is
// total over all strings: a caption with nothing extractable yields a Recipe
// with the default title, medium difficulty and empty ingredient and step
// lists, never an error.
func (e *Engine) Extract(caption string) Recipe {
	rawLines := strings.Split(caption, "\n")
	lines := make([]string, 0, len(rawLines))
	for _, l := range rawLines {
		if t := strings.TrimSpace(l); t != "" {
			lines = append(lines, t)
		}
	}

	var stepLines []string
	for _, line := range lines {
		if e.Classify(line) == ClassInstruction {
			stepLines = append(stepLines, line)
		}
	}

	return Recipe{
		Title:         e.extractTitle(rawLines),
		Difficulty:    e.extractDifficulty(caption),
		Servings:      e.extractServings(caption),
		TotalDuration: e.extractTotalDuration(caption),
		Ingredients:   e.extractIngredients(lines),
		Steps:         e.extractSteps(stepLines),
		Hashtags:      e.extractHashtags(caption),
	}
}

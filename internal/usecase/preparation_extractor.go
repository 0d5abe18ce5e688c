package usecase

import (
	"regexp"
	"sort"
	"strings"
)

// Package-level cleanup patterns
var (
	multipleSpacesRegex  = regexp.MustCompile(`\s+`)
	repeatedCommasRegex  = regexp.MustCompile(`,(\s*,)+`)
	leadingOfRegex       = regexp.MustCompile(`^(?i:of)\b\s*`)
	edgePunctuationRegex = regexp.MustCompile(`^[\s,;:-]+|[\s,;:-]+$`)
)

// preparationPattern pairs a vocabulary term with its compiled matcher.
type preparationPattern struct {
	term string
	re   *regexp.Regexp
}

// PreparationExtraction is the outcome of preparation-term recognition.
// Terms are listed in the order they appear in the text.
type PreparationExtraction struct {
	Terms   []string
	Cleaned string
}

// PreparationExtractor recognizes known preparation verbs and adjectives
// anywhere in the text remaining after unit removal.
type PreparationExtractor struct {
	patterns []preparationPattern
}

// NewPreparationExtractor compiles matchers for the vocabulary's preparation
// terms, longest term first so "finely chopped" consumes before "chopped".
func NewPreparationExtractor(vocab *Vocabulary) *PreparationExtractor {
	terms := make([]string, len(vocab.Preparations))
	copy(terms, vocab.Preparations)
	sort.Slice(terms, func(i, j int) bool { return len(terms[i]) > len(terms[j]) })

	patterns := make([]preparationPattern, 0, len(terms))
	for _, term := range terms {
		re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
		patterns = append(patterns, preparationPattern{term: term, re: re})
	}
	return &PreparationExtractor{patterns: patterns}
}

// Extract removes every recognized preparation term from text and returns the
// terms in discovery order together with the cleaned residue, which becomes
// the ingredient-name candidate.
func (e *PreparationExtractor) Extract(text string) PreparationExtraction {
	working := []byte(text)

	type found struct {
		pos  int
		term string
	}
	var matches []found

	for _, p := range e.patterns {
		for _, loc := range p.re.FindAllIndex(working, -1) {
			if blankRegion(working, loc[0], loc[1]) {
				continue // already consumed by a longer term
			}
			matches = append(matches, found{pos: loc[0], term: p.term})
			for i := loc[0]; i < loc[1]; i++ {
				working[i] = ' '
			}
		}
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].pos < matches[j].pos })

	terms := make([]string, 0, len(matches))
	for _, m := range matches {
		terms = append(terms, m.term)
	}

	return PreparationExtraction{Terms: terms, Cleaned: collapseResidue(string(working))}
}

// blankRegion reports whether working[from:to] was already blanked out.
func blankRegion(working []byte, from, to int) bool {
	for i := from; i < to; i++ {
		if working[i] != ' ' {
			return false
		}
	}
	return true
}

// collapseResidue normalizes the text left after term removal: comma runs
// left by removal collapse to one, whitespace collapses, a leading "of" and
// edge punctuation are dropped.
func collapseResidue(s string) string {
	s = repeatedCommasRegex.ReplaceAllString(s, ",")
	s = multipleSpacesRegex.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	s = leadingOfRegex.ReplaceAllString(s, "")
	s = edgePunctuationRegex.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

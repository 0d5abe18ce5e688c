package usecase

import (
	"sort"
	"strings"
	"unicode"
)

// Confidence levels for unit recognition
const (
	confidenceUnitWord   = 1.0
	confidenceUnitAbbrev = 0.9
)

// unitForm is a single recognizable surface form of a unit.
type unitForm struct {
	surface   string // lowercase form as it may appear in text
	canonical string // singular canonical unit name
}

// UnitExtraction is the outcome of unit recognition on one line.
type UnitExtraction struct {
	Unit       *string
	Confidence float64
	Remaining  string
}

// UnitExtractor recognizes a unit token anchored at the start of the text
// remaining after quantity removal.
type UnitExtractor struct {
	forms         []unitForm
	abbreviations map[string]string
}

// NewUnitExtractor creates a unit extractor from the vocabulary's unit tables.
// Plural surface forms are derived from each unit name; forms are matched
// longest-first so "fluid ounces" beats "fluid ounce".
func NewUnitExtractor(vocab *Vocabulary) *UnitExtractor {
	var forms []unitForm
	for _, unit := range vocab.allUnits() {
		lower := strings.ToLower(unit)
		forms = append(forms, unitForm{surface: lower, canonical: lower})
		forms = append(forms, unitForm{surface: pluralize(lower), canonical: lower})
	}
	sort.Slice(forms, func(i, j int) bool {
		return len(forms[i].surface) > len(forms[j].surface)
	})

	abbrevs := make(map[string]string, len(vocab.UnitAbbreviations))
	for short, canonical := range vocab.UnitAbbreviations {
		abbrevs[strings.ToLower(short)] = strings.ToLower(canonical)
	}

	return &UnitExtractor{forms: forms, abbreviations: abbrevs}
}

// Extract recognizes a unit at the start of text. No match leaves the text
// unchanged with zero confidence.
func (e *UnitExtractor) Extract(text string) UnitExtraction {
	trimmed := strings.TrimSpace(text)
	lower := strings.ToLower(trimmed)

	for _, form := range e.forms {
		if strings.HasPrefix(lower, form.surface) && wordBoundaryAt(lower, len(form.surface)) {
			unit := form.canonical
			remaining := strings.TrimSpace(trimmed[len(form.surface):])
			return UnitExtraction{Unit: &unit, Confidence: confidenceUnitWord, Remaining: remaining}
		}
	}

	// Abbreviations: first whitespace-delimited token, with a trailing period
	// tolerated ("tbsp." style)
	token := lower
	rest := ""
	if idx := strings.IndexFunc(lower, unicode.IsSpace); idx >= 0 {
		token = lower[:idx]
		rest = trimmed[idx:]
	}
	token = strings.TrimSuffix(token, ".")
	if canonical, ok := e.abbreviations[token]; ok {
		unit := canonical
		return UnitExtraction{Unit: &unit, Confidence: confidenceUnitAbbrev, Remaining: strings.TrimSpace(rest)}
	}

	return UnitExtraction{Remaining: text}
}

// wordBoundaryAt reports whether position i in s ends a word.
func wordBoundaryAt(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r := rune(s[i])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// pluralize derives the regular plural surface form of a unit name.
func pluralize(unit string) string {
	switch {
	case strings.HasSuffix(unit, "sh"), strings.HasSuffix(unit, "ch"),
		strings.HasSuffix(unit, "s"), strings.HasSuffix(unit, "x"):
		return unit + "es"
	default:
		return unit + "s"
	}
}

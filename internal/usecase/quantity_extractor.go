package usecase

import (
	"regexp"
	"strconv"
	"strings"
)

// Package-level compiled regex patterns for performance
var (
	// Matches ASCII fractions in leading position, optionally preceded by an
	// integer for mixed numbers ("1 1/2", "3/4")
	asciiFractionRegex = regexp.MustCompile(`^\s*(?:(\d+)\s+)?(\d+)\s*/\s*(\d+)`)

	// Matches unicode fraction glyphs in leading position ("½", "1 ½")
	unicodeFractionRegex = regexp.MustCompile(`^\s*(?:(\d+)\s*)?([¼½¾⅓⅔⅕⅖⅗⅘⅙⅚⅛⅜⅝⅞])`)

	// Matches integer ranges like "2-3"
	quantityRangeRegex = regexp.MustCompile(`^\s*(\d+)\s*-\s*(\d+)\b`)

	// Matches a plain leading number, integer or decimal
	plainNumberRegex = regexp.MustCompile(`^\s*(\d+(?:\.\d+)?)\b`)
)

// unicodeFractionValues maps fraction glyphs to their numeric value.
var unicodeFractionValues = map[string]float64{
	"¼": 0.25, "½": 0.5, "¾": 0.75,
	"⅓": 1.0 / 3.0, "⅔": 2.0 / 3.0,
	"⅕": 0.2, "⅖": 0.4, "⅗": 0.6, "⅘": 0.8,
	"⅙": 1.0 / 6.0, "⅚": 5.0 / 6.0,
	"⅛": 0.125, "⅜": 0.375, "⅝": 0.625, "⅞": 0.875,
}

// wordedQuantities maps spelled-out quantity phrases to amounts. Checked in
// order; longer phrases first so "a few" wins over any overlap.
var wordedQuantities = []struct {
	phrase     string
	amount     float64
	confidence float64
}{
	{"a couple", 2, 0.8},
	{"a few", 3, 0.6},
	{"one", 1, 0.9},
	{"two", 2, 0.9},
	{"three", 3, 0.9},
}

// Confidence levels per quantity pattern
const (
	confidenceFraction = 0.95
	confidenceRange    = 0.8
	confidencePlain    = 1.0
)

// QuantityExtraction is the outcome of quantity recognition on one line.
// A nil Amount with zero confidence means no quantity was recognized; that is
// a valid outcome, not a failure.
type QuantityExtraction struct {
	Amount     *float64
	Confidence float64
	Remaining  string
}

// QuantityExtractor recognizes a leading numeric, fractional, ranged, or
// worded quantity.
type QuantityExtractor struct{}

// NewQuantityExtractor creates a quantity extractor.
func NewQuantityExtractor() *QuantityExtractor {
	return &QuantityExtractor{}
}

// Extract recognizes a quantity at the start of text and returns the amount,
// a confidence score, and the text with the quantity removed.
func (e *QuantityExtractor) Extract(text string) QuantityExtraction {
	if m := unicodeFractionRegex.FindStringSubmatch(text); m != nil {
		amount := unicodeFractionValues[m[2]]
		if m[1] != "" {
			whole, _ := strconv.ParseFloat(m[1], 64)
			amount += whole
		}
		return consumed(text, unicodeFractionRegex, amount, confidenceFraction)
	}

	if m := asciiFractionRegex.FindStringSubmatch(text); m != nil {
		den, _ := strconv.ParseFloat(m[3], 64)
		if den != 0 {
			num, _ := strconv.ParseFloat(m[2], 64)
			amount := num / den
			if m[1] != "" {
				whole, _ := strconv.ParseFloat(m[1], 64)
				amount += whole
			}
			return consumed(text, asciiFractionRegex, amount, confidenceFraction)
		}
	}

	if m := quantityRangeRegex.FindStringSubmatch(text); m != nil {
		lo, _ := strconv.ParseFloat(m[1], 64)
		hi, _ := strconv.ParseFloat(m[2], 64)
		return consumed(text, quantityRangeRegex, (lo+hi)/2, confidenceRange)
	}

	if m := plainNumberRegex.FindStringSubmatch(text); m != nil {
		amount, _ := strconv.ParseFloat(m[1], 64)
		return consumed(text, plainNumberRegex, amount, confidencePlain)
	}

	lower := strings.ToLower(strings.TrimSpace(text))
	for _, wq := range wordedQuantities {
		if lower == wq.phrase || strings.HasPrefix(lower, wq.phrase+" ") {
			amount := wq.amount
			remaining := strings.TrimSpace(strings.TrimSpace(text)[len(wq.phrase):])
			return QuantityExtraction{Amount: &amount, Confidence: wq.confidence, Remaining: remaining}
		}
	}

	return QuantityExtraction{Remaining: text}
}

// consumed builds the extraction result after re removed its match from text.
func consumed(text string, re *regexp.Regexp, amount, confidence float64) QuantityExtraction {
	loc := re.FindStringIndex(text)
	remaining := strings.TrimSpace(text[loc[1]:])
	return QuantityExtraction{Amount: &amount, Confidence: confidence, Remaining: remaining}
}

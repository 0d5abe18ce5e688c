package usecase

import (
	"reflect"
	"testing"
)

func TestPreparationExtract(t *testing.T) {
	e := NewPreparationExtractor(DefaultVocabulary())

	testCases := []struct {
		name        string
		input       string
		wantTerms   []string
		wantCleaned string
	}{
		{
			name:        "single trailing term",
			input:       "garlic, minced",
			wantTerms:   []string{"minced"},
			wantCleaned: "garlic",
		},
		{
			name:        "longer term consumes before shorter",
			input:       "onion, finely chopped",
			wantTerms:   []string{"finely chopped"},
			wantCleaned: "onion",
		},
		{
			name:        "multiple terms in discovery order",
			input:       "carrots, peeled and diced",
			wantTerms:   []string{"peeled", "diced"},
			wantCleaned: "carrots, and",
		},
		{
			name:        "leading term",
			input:       "chopped walnuts",
			wantTerms:   []string{"chopped"},
			wantCleaned: "walnuts",
		},
		{
			name:        "term between commas keeps residue commas sane",
			input:       "red pepper, seeded, diced",
			wantTerms:   []string{"diced"},
			wantCleaned: "red pepper, seeded",
		},
		{
			name:        "multi-word state term",
			input:       "butter, room temperature",
			wantTerms:   []string{"room temperature"},
			wantCleaned: "butter",
		},
		{
			name:        "no terms",
			input:       "olive oil",
			wantTerms:   []string{},
			wantCleaned: "olive oil",
		},
		{
			name:        "leading of dropped from residue",
			input:       "juice of one lemon",
			wantTerms:   []string{},
			wantCleaned: "juice of one lemon",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := e.Extract(tc.input)
			if !reflect.DeepEqual(got.Terms, tc.wantTerms) {
				t.Errorf("Extract(%q): terms = %v, want %v", tc.input, got.Terms, tc.wantTerms)
			}
			if got.Cleaned != tc.wantCleaned {
				t.Errorf("Extract(%q): cleaned = %q, want %q", tc.input, got.Cleaned, tc.wantCleaned)
			}
		})
	}
}

func TestPreparationExtractCaseInsensitive(t *testing.T) {
	e := NewPreparationExtractor(DefaultVocabulary())

	got := e.Extract("Garlic, MINCED")
	if len(got.Terms) != 1 || got.Terms[0] != "minced" {
		t.Errorf("terms = %v, want [minced]", got.Terms)
	}
	if got.Cleaned != "Garlic" {
		t.Errorf("cleaned = %q, want %q", got.Cleaned, "Garlic")
	}
}

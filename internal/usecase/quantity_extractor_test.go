package usecase

import (
	"math"
	"testing"
)

func TestQuantityExtract(t *testing.T) {
	e := NewQuantityExtractor()

	testCases := []struct {
		name           string
		input          string
		wantAmount     float64
		wantConfidence float64
		wantRemaining  string
	}{
		{
			name:           "mixed ascii fraction",
			input:          "1 1/2 cups flour",
			wantAmount:     1.5,
			wantConfidence: 0.95,
			wantRemaining:  "cups flour",
		},
		{
			name:           "plain ascii fraction",
			input:          "3/4 teaspoon salt",
			wantAmount:     0.75,
			wantConfidence: 0.95,
			wantRemaining:  "teaspoon salt",
		},
		{
			name:           "unicode fraction",
			input:          "¾ cup sugar",
			wantAmount:     0.75,
			wantConfidence: 0.95,
			wantRemaining:  "cup sugar",
		},
		{
			name:           "mixed unicode fraction",
			input:          "1 ½ cups milk",
			wantAmount:     1.5,
			wantConfidence: 0.95,
			wantRemaining:  "cups milk",
		},
		{
			name:           "integer range averages",
			input:          "2-3 carrots",
			wantAmount:     2.5,
			wantConfidence: 0.8,
			wantRemaining:  "carrots",
		},
		{
			name:           "range with spaces",
			input:          "4 - 6 chicken thighs",
			wantAmount:     5,
			wantConfidence: 0.8,
			wantRemaining:  "chicken thighs",
		},
		{
			name:           "plain integer",
			input:          "2 eggs",
			wantAmount:     2,
			wantConfidence: 1.0,
			wantRemaining:  "eggs",
		},
		{
			name:           "plain decimal",
			input:          "2.5 pounds beef",
			wantAmount:     2.5,
			wantConfidence: 1.0,
			wantRemaining:  "pounds beef",
		},
		{
			name:           "worded one",
			input:          "one onion",
			wantAmount:     1,
			wantConfidence: 0.9,
			wantRemaining:  "onion",
		},
		{
			name:           "worded a couple",
			input:          "a couple bay leaves",
			wantAmount:     2,
			wantConfidence: 0.8,
			wantRemaining:  "bay leaves",
		},
		{
			name:           "worded a few",
			input:          "a few sprigs thyme",
			wantAmount:     3,
			wantConfidence: 0.6,
			wantRemaining:  "sprigs thyme",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := e.Extract(tc.input)
			if got.Amount == nil {
				t.Fatalf("Extract(%q): expected amount %v, got nil", tc.input, tc.wantAmount)
			}
			if math.Abs(*got.Amount-tc.wantAmount) > 1e-9 {
				t.Errorf("Extract(%q): amount = %v, want %v", tc.input, *got.Amount, tc.wantAmount)
			}
			if got.Confidence != tc.wantConfidence {
				t.Errorf("Extract(%q): confidence = %v, want %v", tc.input, got.Confidence, tc.wantConfidence)
			}
			if got.Remaining != tc.wantRemaining {
				t.Errorf("Extract(%q): remaining = %q, want %q", tc.input, got.Remaining, tc.wantRemaining)
			}
		})
	}
}

func TestQuantityExtractNoQuantity(t *testing.T) {
	e := NewQuantityExtractor()

	testCases := []struct {
		name  string
		input string
	}{
		{"bare ingredient", "salt to taste"},
		// "onion" must not trip the worded quantity "one"
		{"word prefix is not a quantity", "onion, diced"},
		{"empty input", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := e.Extract(tc.input)
			if got.Amount != nil {
				t.Errorf("Extract(%q): expected no amount, got %v", tc.input, *got.Amount)
			}
			if got.Confidence != 0 {
				t.Errorf("Extract(%q): confidence = %v, want 0", tc.input, got.Confidence)
			}
			if got.Remaining != tc.input {
				t.Errorf("Extract(%q): remaining = %q, want input unchanged", tc.input, got.Remaining)
			}
		})
	}
}

func TestQuantityExtractZeroDenominator(t *testing.T) {
	e := NewQuantityExtractor()

	got := e.Extract("1/0 cup flour")
	if got.Amount == nil {
		t.Fatal("expected fallback to plain number parse")
	}
	// Degenerate fraction falls through to the plain-number pattern
	if *got.Amount != 1 {
		t.Errorf("amount = %v, want 1", *got.Amount)
	}
}

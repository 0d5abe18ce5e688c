package usecase

import (
	"strings"
	"testing"

	"github.com/pantrylens/backend/internal/domain"
)

func strPtr(s string) *string { return &s }
func int64Ptr(v int64) *int64 { return &v }

// testCatalog builds the snapshot used across the matcher tests.
func testCatalog() *CatalogIndex {
	return NewCatalogIndex([]domain.CatalogEntry{
		{ID: 1, Name: "sugar"},
		{ID: 2, Name: "basil"},
		{ID: 3, Name: "flour"},
		{ID: 4, Name: "whole wheat flour", BaseIngredientID: int64Ptr(3)},
		{ID: 5, Name: "onion", PluralName: strPtr("onions")},
		{ID: 6, Name: "chicken breast", PluralName: strPtr("chicken breasts"), BaseIngredientID: int64Ptr(9)},
		{ID: 7, Name: "chicken thigh", PluralName: strPtr("chicken thighs"), BaseIngredientID: int64Ptr(9)},
		{ID: 8, Name: "cabbage"},
		{ID: 9, Name: "chicken"},
	})
}

func TestCatalogMatcherExact(t *testing.T) {
	m := NewCatalogMatcher(DefaultVocabulary())
	catalog := testCatalog()

	t.Run("exact name", func(t *testing.T) {
		got := m.Match("sugar", catalog)
		if got.IngredientID == nil || *got.IngredientID != 1 {
			t.Fatalf("IngredientID = %v, want 1", got.IngredientID)
		}
		if got.Confidence != 1.0 {
			t.Errorf("confidence = %v, want 1.0", got.Confidence)
		}
		if got.Method != domain.MatchMethodExact {
			t.Errorf("method = %q, want exact", got.Method)
		}
		if got.NeedsReview {
			t.Error("exact match must not need review")
		}
	})

	t.Run("plural name", func(t *testing.T) {
		got := m.Match("onions", catalog)
		if got.IngredientID == nil || *got.IngredientID != 5 {
			t.Fatalf("IngredientID = %v, want 5", got.IngredientID)
		}
		if got.Method != domain.MatchMethodExact {
			t.Errorf("method = %q, want exact", got.Method)
		}
	})

	t.Run("case insensitive", func(t *testing.T) {
		got := m.Match("Sugar", catalog)
		if got.IngredientID == nil || *got.IngredientID != 1 {
			t.Fatalf("IngredientID = %v, want 1", got.IngredientID)
		}
	})
}

func TestCatalogMatcherDescriptorStripped(t *testing.T) {
	m := NewCatalogMatcher(DefaultVocabulary())
	catalog := testCatalog()

	got := m.Match("fresh basil", catalog)
	if got.IngredientID == nil || *got.IngredientID != 2 {
		t.Fatalf("IngredientID = %v, want 2", got.IngredientID)
	}
	if got.Confidence != 0.8 {
		t.Errorf("confidence = %v, want 0.8", got.Confidence)
	}
	if got.Method != domain.MatchMethodFuzzy {
		t.Errorf("method = %q, want fuzzy", got.Method)
	}
	if !got.NeedsReview {
		t.Error("descriptor-stripped match must need review")
	}
	if !strings.Contains(got.Notes, "fresh") {
		t.Errorf("notes should name the removed descriptor, got %q", got.Notes)
	}
}

func TestCatalogMatcherPartial(t *testing.T) {
	m := NewCatalogMatcher(DefaultVocabulary())

	t.Run("single partial candidate", func(t *testing.T) {
		catalog := NewCatalogIndex([]domain.CatalogEntry{
			{ID: 1, Name: "parmesan cheese"},
		})
		got := m.Match("parmesan", catalog)
		if got.IngredientID == nil || *got.IngredientID != 1 {
			t.Fatalf("IngredientID = %v, want 1", got.IngredientID)
		}
		if got.Confidence != 0.6 {
			t.Errorf("confidence = %v, want 0.6", got.Confidence)
		}
		if got.Method != domain.MatchMethodPartial {
			t.Errorf("method = %q, want partial", got.Method)
		}
		if !got.NeedsReview {
			t.Error("partial match must need review")
		}
	})

	t.Run("multiple candidates prefer generic", func(t *testing.T) {
		catalog := NewCatalogIndex([]domain.CatalogEntry{
			{ID: 1, Name: "sharp cheddar", BaseIngredientID: int64Ptr(2)},
			{ID: 2, Name: "cheddar cheese"},
		})
		got := m.Match("cheddar", catalog)
		if got.IngredientID == nil || *got.IngredientID != 2 {
			t.Fatalf("IngredientID = %v, want generic entry 2", got.IngredientID)
		}
		if got.Confidence != 0.7 {
			t.Errorf("confidence = %v, want 0.7", got.Confidence)
		}
		if got.Method != domain.MatchMethodFuzzy {
			t.Errorf("method = %q, want fuzzy", got.Method)
		}
		if got.NeedsReview {
			t.Error("generic-preferred match must not need review")
		}
	})

	t.Run("ambiguous without generic", func(t *testing.T) {
		catalog := NewCatalogIndex([]domain.CatalogEntry{
			{ID: 1, Name: "red bell pepper", BaseIngredientID: int64Ptr(10)},
			{ID: 2, Name: "green bell pepper", BaseIngredientID: int64Ptr(10)},
		})
		got := m.Match("bell pepper", catalog)
		if got.IngredientID != nil {
			t.Fatalf("IngredientID = %v, want nil", *got.IngredientID)
		}
		if got.Confidence != 0.3 {
			t.Errorf("confidence = %v, want 0.3", got.Confidence)
		}
		if got.Method != domain.MatchMethodNone {
			t.Errorf("method = %q, want none", got.Method)
		}
		if !got.NeedsReview {
			t.Error("ambiguous match must need review")
		}
		if !strings.Contains(got.Notes, "red bell pepper") {
			t.Errorf("notes should list candidates, got %q", got.Notes)
		}
	})
}

func TestCatalogMatcherNoMatch(t *testing.T) {
	m := NewCatalogMatcher(DefaultVocabulary())

	got := m.Match("dragon fruit", testCatalog())
	if got.IngredientID != nil {
		t.Fatalf("IngredientID = %v, want nil", *got.IngredientID)
	}
	if got.Confidence != 0 {
		t.Errorf("confidence = %v, want 0", got.Confidence)
	}
	if got.Method != domain.MatchMethodNone {
		t.Errorf("method = %q, want none", got.Method)
	}
	if !got.NeedsReview {
		t.Error("miss must need review")
	}
}

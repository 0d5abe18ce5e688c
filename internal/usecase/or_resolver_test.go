package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pantrylens/backend/internal/domain"
)

// recordingSink captures decisions for assertions.
type recordingSink struct {
	decisions []domain.OrPatternDecision
	err       error
}

func (s *recordingSink) Record(_ context.Context, d domain.OrPatternDecision) error {
	s.decisions = append(s.decisions, d)
	return s.err
}

func orCatalog() *CatalogIndex {
	return NewCatalogIndex([]domain.CatalogEntry{
		{ID: 1, Name: "red cabbage", BaseIngredientID: int64Ptr(3)},
		{ID: 2, Name: "green cabbage", BaseIngredientID: int64Ptr(3)},
		{ID: 3, Name: "cabbage"},
		{ID: 4, Name: "jalapeño", PluralName: strPtr("jalapeños")},
		{ID: 5, Name: "fresno chile", PluralName: strPtr("fresno chiles")},
		{ID: 6, Name: "butter"},
		{ID: 7, Name: "margarine"},
	})
}

func TestIsOrPattern(t *testing.T) {
	testCases := []struct {
		input string
		want  bool
	}{
		{"red or green cabbage", true},
		{"butter or margarine", true},
		{"cabbage", false},
		{"oregano", false}, // "or" inside a word is not a separator
		{"or cabbage", false},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			if got := IsOrPattern(tc.input); got != tc.want {
				t.Errorf("IsOrPattern(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestOrResolverColorVariants(t *testing.T) {
	sink := &recordingSink{}
	r := NewOrResolver(DefaultVocabulary(), sink, nil, nil)
	recipe := domain.RecipeContext{RecipeID: "r1", Title: "Slaw"}

	got := r.Resolve(context.Background(), recipe, "red or green cabbage", orCatalog())

	if got.IngredientID == nil || *got.IngredientID != 1 {
		t.Fatalf("IngredientID = %v, want 1 (red cabbage)", got.IngredientID)
	}
	if got.Confidence != 0.95 {
		t.Errorf("confidence = %v, want 0.95", got.Confidence)
	}
	if got.Method != domain.MatchMethodExact {
		t.Errorf("method = %q, want exact", got.Method)
	}
	if got.NeedsReview {
		t.Error("color-variant resolution must not need review")
	}
	if got.Alternative == nil {
		t.Fatal("expected structured alternative reference")
	}
	if got.Alternative.IngredientID != 2 || !got.Alternative.IsEquivalent {
		t.Errorf("alternative = %+v, want equivalent green cabbage (2)", got.Alternative)
	}
	if !strings.Contains(got.Notes, "color variants") {
		t.Errorf("notes = %q, should mention color variants", got.Notes)
	}

	if len(sink.decisions) != 1 {
		t.Fatalf("decisions recorded = %d, want 1", len(sink.decisions))
	}
	d := sink.decisions[0]
	if !d.IsEquivalent {
		t.Error("decision should be marked equivalent")
	}
	if !d.OptionA.Found || !d.OptionB.Found {
		t.Errorf("both options should be found: %+v %+v", d.OptionA, d.OptionB)
	}
	if d.ID == "" {
		t.Error("decision id should be assigned")
	}
	if d.RecipeID != "r1" || d.RecipeTitle != "Slaw" {
		t.Errorf("decision recipe context = %q/%q", d.RecipeID, d.RecipeTitle)
	}
}

func TestOrResolverCommonPrimary(t *testing.T) {
	r := NewOrResolver(DefaultVocabulary(), nil, nil, nil)
	recipe := domain.RecipeContext{RecipeID: "r2"}

	got := r.Resolve(context.Background(), recipe, "fresno chiles or jalapeños", orCatalog())

	if got.IngredientID == nil || *got.IngredientID != 4 {
		t.Fatalf("IngredientID = %v, want 4 (jalapeño)", got.IngredientID)
	}
	if got.Confidence != 0.85 {
		t.Errorf("confidence = %v, want 0.85", got.Confidence)
	}
	if got.Alternative == nil {
		t.Fatal("expected structured alternative reference")
	}
	if got.Alternative.IngredientID != 5 {
		t.Errorf("alternative id = %d, want 5 (fresno chile)", got.Alternative.IngredientID)
	}
	if got.Alternative.IsEquivalent {
		t.Error("allowlist-primary pair is not equivalent")
	}
	if got.NeedsReview {
		t.Error("resolved pair must not need review")
	}
}

func TestOrResolverNoClearPrimary(t *testing.T) {
	r := NewOrResolver(DefaultVocabulary(), nil, nil, nil)
	recipe := domain.RecipeContext{RecipeID: "r3"}

	// Neither option is allowlisted; both resolve, so they are treated as
	// equivalent with the first as primary.
	got := r.Resolve(context.Background(), recipe, "red cabbage or fresno chile", orCatalog())

	if got.IngredientID == nil || *got.IngredientID != 1 {
		t.Fatalf("IngredientID = %v, want 1 (first option)", got.IngredientID)
	}
	if got.Confidence != 0.7 {
		t.Errorf("confidence = %v, want 0.7", got.Confidence)
	}
	if got.Alternative == nil || !got.Alternative.IsEquivalent {
		t.Errorf("alternative = %+v, want equivalent", got.Alternative)
	}
}

func TestOrResolverHeadNounRedistribution(t *testing.T) {
	r := NewOrResolver(DefaultVocabulary(), nil, nil, nil)
	recipe := domain.RecipeContext{RecipeID: "r4"}

	// "red" borrows the head noun from "green cabbage"
	got := r.Resolve(context.Background(), recipe, "red or green cabbage", orCatalog())
	if got.IngredientID == nil || *got.IngredientID != 1 {
		t.Fatalf("IngredientID = %v, want 1 (red cabbage)", got.IngredientID)
	}
}

func TestOrResolverOneOptionMissing(t *testing.T) {
	r := NewOrResolver(DefaultVocabulary(), nil, nil, nil)
	recipe := domain.RecipeContext{RecipeID: "r5"}

	got := r.Resolve(context.Background(), recipe, "butter or ghee", orCatalog())

	if got.IngredientID == nil || *got.IngredientID != 6 {
		t.Fatalf("IngredientID = %v, want 6 (butter)", got.IngredientID)
	}
	if got.Confidence != 0.7 {
		t.Errorf("confidence = %v, want 0.7", got.Confidence)
	}
	if got.Method != domain.MatchMethodPartial {
		t.Errorf("method = %q, want partial", got.Method)
	}
	if !got.NeedsReview {
		t.Error("half-resolved pair must need review")
	}
	if got.Alternative != nil {
		t.Errorf("alternative = %+v, want nil", got.Alternative)
	}
	if !strings.Contains(got.Notes, "ghee") {
		t.Errorf("notes = %q, should name the missing option", got.Notes)
	}
}

func TestOrResolverBaseFallback(t *testing.T) {
	r := NewOrResolver(DefaultVocabulary(), nil, nil, nil)
	recipe := domain.RecipeContext{RecipeID: "r6"}

	// Neither colored variant is listed, only the shared base
	catalog := NewCatalogIndex([]domain.CatalogEntry{
		{ID: 10, Name: "lentil", PluralName: strPtr("lentils")},
	})
	got := r.Resolve(context.Background(), recipe, "red or green lentils", catalog)

	if got.IngredientID == nil || *got.IngredientID != 10 {
		t.Fatalf("IngredientID = %v, want 10 (lentil)", got.IngredientID)
	}
	if got.Confidence != 0.95*0.8 {
		t.Errorf("confidence = %v, want %v", got.Confidence, 0.95*0.8)
	}
	if got.Method != domain.MatchMethodFuzzy {
		t.Errorf("method = %q, want fuzzy", got.Method)
	}
	if got.NeedsReview {
		t.Error("base fallback must not need review")
	}
}

func TestOrResolverNeitherResolves(t *testing.T) {
	r := NewOrResolver(DefaultVocabulary(), nil, nil, nil)
	recipe := domain.RecipeContext{RecipeID: "r7"}

	got := r.Resolve(context.Background(), recipe, "ghee or tahini", orCatalog())

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
		t.Error("unresolved pair must need review")
	}
}

func TestOrResolverSinkFailureIgnored(t *testing.T) {
	sink := &recordingSink{err: errors.New("sink down")}
	r := NewOrResolver(DefaultVocabulary(), sink, nil, nil)
	recipe := domain.RecipeContext{RecipeID: "r8"}

	got := r.Resolve(context.Background(), recipe, "red or green cabbage", orCatalog())

	if got.IngredientID == nil || *got.IngredientID != 1 {
		t.Fatalf("IngredientID = %v, want 1; sink failure must not change the match", got.IngredientID)
	}
	if len(sink.decisions) != 1 {
		t.Errorf("decisions attempted = %d, want 1", len(sink.decisions))
	}
}

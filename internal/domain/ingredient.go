package domain

// RawIngredientLine is a single verbatim ingredient line as captured from a
// recipe. It is never mutated after capture.
type RawIngredientLine struct {
	RecipeID string `json:"recipeId"`
	Position int    `json:"position"` // 1-based order within the recipe
	Text     string `json:"text"`
}

// ConfidenceScores holds per-field extraction confidence, each in [0,1]
type ConfidenceScores struct {
	Quantity   float64 `json:"quantity"`
	Unit       float64 `json:"unit"`
	Ingredient float64 `json:"ingredient"`
}

// ParsedIngredient is the structured decomposition of one ingredient line.
// Created once by the extraction stage and read-only afterward.
type ParsedIngredient struct {
	OriginalText   string           `json:"originalText"`
	QuantityAmount *float64         `json:"quantityAmount,omitempty"`
	QuantityUnit   *string          `json:"quantityUnit,omitempty"`
	Preparation    *string          `json:"preparation,omitempty"` // comma-joined terms
	IngredientName *string          `json:"ingredientName,omitempty"`
	Confidence     ConfidenceScores `json:"confidence"`
}

// CatalogEntry is one row of the canonical ingredient catalog. An entry with
// no BaseIngredientID is generic (e.g. "flour"); an entry pointing at a parent
// is specific (e.g. "whole wheat flour").
type CatalogEntry struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	PluralName       *string `json:"pluralName,omitempty"`
	BaseIngredientID *int64  `json:"baseIngredientId,omitempty"`
}

// IsGeneric reports whether the entry has no parent.
func (e CatalogEntry) IsGeneric() bool {
	return e.BaseIngredientID == nil
}

// AlternativeRef is a structured reference to the secondary option of a
// resolved "X or Y" line.
type AlternativeRef struct {
	IngredientID int64  `json:"ingredientId"`
	Name         string `json:"name"`
	IsEquivalent bool   `json:"isEquivalent"`
}

// MatchResult is the outcome of resolving an ingredient name against the
// catalog. Produced once per ParsedIngredient; never mutated.
type MatchResult struct {
	IngredientID *int64          `json:"ingredientId,omitempty"`
	Confidence   float64         `json:"confidence"`
	Method       MatchMethod     `json:"method"`
	Notes        string          `json:"notes,omitempty"`
	NeedsReview  bool            `json:"needsReview"`
	Alternative  *AlternativeRef `json:"alternative,omitempty"`
}

// AlternativeRelation ties a resolved alternative ingredient to the record
// (by 1-based sequence order) it belongs to.
type AlternativeRelation struct {
	RecordIndex   int   `json:"recordIndex"`
	AlternativeID int64 `json:"alternativeId"`
	IsEquivalent  bool  `json:"isEquivalent"`
}

// PersistRecord aggregates everything a persistence collaborator needs for one
// line. SequenceOrder always equals the originating line's 1-based position,
// regardless of match success or failure.
type PersistRecord struct {
	Line          RawIngredientLine `json:"line"`
	Parsed        ParsedIngredient  `json:"parsed"`
	Match         MatchResult       `json:"match"`
	SequenceOrder int               `json:"sequenceOrder"`
}

// BatchResult is the output of one pipeline run over a recipe's lines.
type BatchResult struct {
	Records      []PersistRecord       `json:"records"`
	Alternatives []AlternativeRelation `json:"alternatives"`
}

// RecipeContext identifies the recipe a batch belongs to.
type RecipeContext struct {
	RecipeID string `json:"recipeId"`
	Title    string `json:"title,omitempty"`
}

// OrPatternOption captures the catalog lookup outcome for one side of an
// "X or Y" pattern.
type OrPatternOption struct {
	Text  string `json:"text"`
	Found bool   `json:"found"`
	ID    *int64 `json:"id,omitempty"`
}

// OrPatternDecision is a write-once, best-effort log entry describing how one
// OR-pattern was resolved. It is never read back by the engine; it feeds
// offline rule tuning.
type OrPatternDecision struct {
	ID           string          `json:"id"`
	RecipeID     string          `json:"recipeId,omitempty"`
	RecipeTitle  string          `json:"recipeTitle,omitempty"`
	OptionA      OrPatternOption `json:"optionA"`
	OptionB      OrPatternOption `json:"optionB"`
	IsEquivalent bool            `json:"isEquivalent"`
	Confidence   float64         `json:"confidence"`
	Reason       string          `json:"reason"`
}

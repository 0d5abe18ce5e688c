package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pantrylens/backend/internal/domain"
	"github.com/pantrylens/backend/internal/metrics"
)

// orSeparatorRegex splits "<A> or <B>" alternative phrasing.
var orSeparatorRegex = regexp.MustCompile(`(?i)^(.+?)\s+or\s+(.+)$`)

// Confidence levels per OR-pattern classification
const (
	confidenceColorVariants  = 0.95
	confidenceCommonPrimary  = 0.85
	confidenceNoClearPrimary = 0.7

	// baseFallbackScale discounts a match resolved only through the shared
	// color-stripped base name.
	baseFallbackScale = 0.8
)

// IsOrPattern reports whether an ingredient name expresses a two-option
// alternative ("X or Y").
func IsOrPattern(name string) bool {
	return orSeparatorRegex.MatchString(strings.TrimSpace(name))
}

// orClassification is the verdict on an option pair, computed before catalog
// resolution decides the final record.
type orClassification struct {
	isEquivalent bool
	primaryIsA   bool
	confidence   float64
	reason       string
}

// OrResolver detects and resolves two-option alternative phrasing. Every
// invocation also attempts a best-effort decision-log write; sink failures
// are counted and logged, never propagated.
type OrResolver struct {
	colors  []string
	common  []string
	sink    domain.DecisionSink
	logger  *zap.Logger
	metrics *metrics.PipelineMetrics
}

// NewOrResolver creates a resolver over the vocabulary's color and
// common-ingredient tables. sink and pm may be nil.
func NewOrResolver(vocab *Vocabulary, sink domain.DecisionSink, logger *zap.Logger, pm *metrics.PipelineMetrics) *OrResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	colors := lowerAll(vocab.Colors)
	common := lowerAll(vocab.CommonIngredients)
	return &OrResolver{colors: colors, common: common, sink: sink, logger: logger, metrics: pm}
}

// Resolve classifies and resolves one "<A> or <B>" ingredient name against
// the catalog snapshot. Lookups here are exact name/plural only; the full
// matcher cascade does not apply to OR patterns.
func (r *OrResolver) Resolve(ctx context.Context, recipe domain.RecipeContext, name string, catalog *CatalogIndex) domain.MatchResult {
	m := orSeparatorRegex.FindStringSubmatch(strings.TrimSpace(strings.ToLower(name)))
	if m == nil {
		return domain.MatchResult{
			Method:      domain.MatchMethodNone,
			Notes:       fmt.Sprintf("%q is not a two-option alternative", name),
			NeedsReview: true,
		}
	}
	optionA, optionB := redistributeHeadNoun(strings.TrimSpace(m[1]), strings.TrimSpace(m[2]))

	colorEquivalent, sharedBase := r.colorVariants(optionA, optionB)
	entryA := catalog.FindExact(optionA)
	entryB := catalog.FindExact(optionB)

	cls := r.classify(optionA, optionB, colorEquivalent, entryA, entryB)
	result := r.resolveOutcome(optionA, optionB, entryA, entryB, cls, colorEquivalent, sharedBase, catalog)

	r.recordDecision(ctx, recipe, optionA, optionB, entryA, entryB, cls, result)
	return result
}

// redistributeHeadNoun handles the "purple or green cabbage" phrasing: when A
// is a single word and B is multi-word, B is assumed to carry the shared head
// noun and A borrows B's tail words. Head-noun-leading phrasings ("whole or
// skim milk") fall through unchanged.
func redistributeHeadNoun(a, b string) (string, string) {
	aWords := strings.Fields(a)
	bWords := strings.Fields(b)
	if len(aWords) == 1 && len(bWords) > 1 {
		a = a + " " + strings.Join(bWords[1:], " ")
	}
	return a, b
}

// classify computes the option-pair verdict. Order matters: color
// equivalence is decided before catalog resolution weighs in.
func (r *OrResolver) classify(a, b string, colorEquivalent bool, entryA, entryB *domain.CatalogEntry) orClassification {
	if colorEquivalent {
		return orClassification{
			isEquivalent: true,
			primaryIsA:   true,
			confidence:   confidenceColorVariants,
			reason:       "color variants of same ingredient",
		}
	}

	commonA := r.isCommon(a)
	commonB := r.isCommon(b)
	if commonA != commonB {
		primary := a
		if commonB {
			primary = b
		}
		return orClassification{
			primaryIsA: commonA,
			confidence: confidenceCommonPrimary,
			reason:     fmt.Sprintf("%q is the more commonly used ingredient", primary),
		}
	}

	if entryA != nil || entryB != nil {
		return orClassification{
			isEquivalent: true,
			primaryIsA:   true,
			confidence:   confidenceNoClearPrimary,
			reason:       "no clear primary; options treated as equivalent",
		}
	}

	return orClassification{reason: "neither option resolved in catalog"}
}

// resolveOutcome converts the classification and lookups into a MatchResult
// with a structured alternative reference when both options resolve.
func (r *OrResolver) resolveOutcome(a, b string, entryA, entryB *domain.CatalogEntry, cls orClassification, colorEquivalent bool, sharedBase string, catalog *CatalogIndex) domain.MatchResult {
	switch {
	case entryA != nil && entryB != nil:
		primary, secondary := entryA, entryB
		if !cls.primaryIsA {
			primary, secondary = entryB, entryA
		}
		return domain.MatchResult{
			IngredientID: &primary.ID,
			Confidence:   cls.confidence,
			Method:       domain.MatchMethodExact,
			Notes:        fmt.Sprintf("%q or %q: %s; alternative: %s", a, b, cls.reason, secondary.Name),
			Alternative: &domain.AlternativeRef{
				IngredientID: secondary.ID,
				Name:         secondary.Name,
				IsEquivalent: cls.isEquivalent,
			},
		}

	case entryA != nil || entryB != nil:
		resolved, missing := entryA, b
		if entryB != nil {
			resolved, missing = entryB, a
		}
		return domain.MatchResult{
			IngredientID: &resolved.ID,
			Confidence:   confidenceNoClearPrimary,
			Method:       domain.MatchMethodPartial,
			Notes:        fmt.Sprintf("option %q not found in catalog", missing),
			NeedsReview:  true,
		}

	default:
		if colorEquivalent && sharedBase != "" {
			if base := catalog.FindExact(sharedBase); base != nil {
				return domain.MatchResult{
					IngredientID: &base.ID,
					Confidence:   cls.confidence * baseFallbackScale,
					Method:       domain.MatchMethodFuzzy,
					Notes:        fmt.Sprintf("neither %q nor %q listed; resolved shared base %q", a, b, base.Name),
				}
			}
		}
		return domain.MatchResult{
			Method:      domain.MatchMethodNone,
			Notes:       fmt.Sprintf("neither %q nor %q found in catalog", a, b),
			NeedsReview: true,
		}
	}
}

// recordDecision sends the best-effort decision log entry.
func (r *OrResolver) recordDecision(ctx context.Context, recipe domain.RecipeContext, a, b string, entryA, entryB *domain.CatalogEntry, cls orClassification, result domain.MatchResult) {
	if r.sink == nil {
		return
	}
	decision := domain.OrPatternDecision{
		ID:           uuid.NewString(),
		RecipeID:     recipe.RecipeID,
		RecipeTitle:  recipe.Title,
		OptionA:      patternOption(a, entryA),
		OptionB:      patternOption(b, entryB),
		IsEquivalent: cls.isEquivalent,
		Confidence:   result.Confidence,
		Reason:       cls.reason,
	}
	if err := r.sink.Record(ctx, decision); err != nil {
		r.metrics.ObserveSinkFailure()
		r.logger.Warn("decision sink write failed",
			zap.String("recipe_id", recipe.RecipeID),
			zap.Error(err))
	}
}

func patternOption(text string, entry *domain.CatalogEntry) domain.OrPatternOption {
	opt := domain.OrPatternOption{Text: text}
	if entry != nil {
		opt.Found = true
		id := entry.ID
		opt.ID = &id
	}
	return opt
}

// colorVariants reports whether both options carry a color term and share the
// same non-color residue, returning that residue as the base name.
func (r *OrResolver) colorVariants(a, b string) (bool, string) {
	hasColorA, residueA := r.stripColors(a)
	hasColorB, residueB := r.stripColors(b)
	if hasColorA && hasColorB && residueA != "" && residueA == residueB {
		return true, residueA
	}
	return false, ""
}

// stripColors removes color words from text and reports whether any were
// present.
func (r *OrResolver) stripColors(text string) (bool, string) {
	words := strings.Fields(text)
	kept := make([]string, 0, len(words))
	found := false
	for _, w := range words {
		if containsFold(r.colors, w) {
			found = true
			continue
		}
		kept = append(kept, w)
	}
	return found, strings.Join(kept, " ")
}

// isCommon reports whether text names an allowlisted common ingredient,
// tolerating regular plurals ("jalapeños" matches "jalapeño").
func (r *OrResolver) isCommon(text string) bool {
	for _, term := range r.common {
		if strings.Contains(term, " ") {
			if strings.Contains(text, term) {
				return true
			}
			continue
		}
		for _, word := range strings.Fields(text) {
			if word == term || word == term+"s" || word == term+"es" {
				return true
			}
		}
	}
	return false
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}

func containsFold(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}

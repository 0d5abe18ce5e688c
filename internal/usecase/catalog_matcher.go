package usecase

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pantrylens/backend/internal/domain"
)

// Confidence levels per cascade stage
const (
	confidenceExact            = 1.0
	confidenceDescriptorFuzzy  = 0.8
	confidenceGenericPreferred = 0.7
	confidenceSinglePartial    = 0.6
	confidenceFinalWord        = 0.5
	confidenceAmbiguous        = 0.3
)

const maxAmbiguousCandidates = 3

// CatalogMatcher resolves an ingredient name against a catalog snapshot with
// a staged cascade: exact, descriptor-stripped, partial/substring, and a
// generic-parent final-word fallback. First success wins; a miss is never an
// error.
type CatalogMatcher struct {
	descriptorRes []*regexp.Regexp
	descriptors   []string
}

// NewCatalogMatcher compiles word-boundary matchers for the vocabulary's
// descriptor adjectives.
func NewCatalogMatcher(vocab *Vocabulary) *CatalogMatcher {
	res := make([]*regexp.Regexp, 0, len(vocab.Descriptors))
	for _, d := range vocab.Descriptors {
		res = append(res, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(d)+`\b`))
	}
	return &CatalogMatcher{descriptorRes: res, descriptors: vocab.Descriptors}
}

// Match runs the cascade for one ingredient name.
func (m *CatalogMatcher) Match(name string, catalog *CatalogIndex) domain.MatchResult {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return domain.MatchResult{
			Method:      domain.MatchMethodNone,
			Notes:       "no ingredient name extracted",
			NeedsReview: true,
		}
	}

	// Stage 1: exact name/plural match
	if entry := catalog.FindExact(name); entry != nil {
		return domain.MatchResult{
			IngredientID: &entry.ID,
			Confidence:   confidenceExact,
			Method:       domain.MatchMethodExact,
		}
	}

	// Stage 2: strip descriptor adjectives and retry exact
	simplified, removed := m.stripDescriptors(name)
	if len(removed) > 0 && simplified != "" {
		if entry := catalog.FindExact(simplified); entry != nil {
			return domain.MatchResult{
				IngredientID: &entry.ID,
				Confidence:   confidenceDescriptorFuzzy,
				Method:       domain.MatchMethodFuzzy,
				Notes:        fmt.Sprintf("matched %q after removing: %s", simplified, strings.Join(removed, ", ")),
				NeedsReview:  true,
			}
		}
	}
	if simplified == "" {
		simplified = name
	}

	// Stage 3: partial/substring containment either direction
	candidates := partialCandidates(simplified, catalog)
	switch {
	case len(candidates) == 1:
		entry := candidates[0]
		return domain.MatchResult{
			IngredientID: &entry.ID,
			Confidence:   confidenceSinglePartial,
			Method:       domain.MatchMethodPartial,
			Notes:        fmt.Sprintf("partial match on %q", entry.Name),
			NeedsReview:  true,
		}
	case len(candidates) > 1:
		for _, entry := range candidates {
			if entry.IsGeneric() {
				return domain.MatchResult{
					IngredientID: &entry.ID,
					Confidence:   confidenceGenericPreferred,
					Method:       domain.MatchMethodFuzzy,
					Notes:        fmt.Sprintf("multiple partial matches; preferred generic entry %q", entry.Name),
				}
			}
		}
		return domain.MatchResult{
			Confidence:  confidenceAmbiguous,
			Method:      domain.MatchMethodNone,
			Notes:       fmt.Sprintf("ambiguous partial matches: %s", candidateNames(candidates)),
			NeedsReview: true,
		}
	}

	// Stage 4: final word of the simplified name against generic entries
	words := strings.Fields(simplified)
	if len(words) > 0 {
		lastWord := words[len(words)-1]
		for i := range catalog.Entries() {
			entry := &catalog.Entries()[i]
			if !entry.IsGeneric() {
				continue
			}
			if equalsNameOrPlural(entry, lastWord) {
				return domain.MatchResult{
					IngredientID: &entry.ID,
					Confidence:   confidenceFinalWord,
					Method:       domain.MatchMethodPartial,
					Notes:        fmt.Sprintf("matched generic %q by final word; %q may warrant a new catalog entry", entry.Name, name),
					NeedsReview:  true,
				}
			}
		}
	}

	// Stage 5: no match
	return domain.MatchResult{
		Method:      domain.MatchMethodNone,
		Notes:       fmt.Sprintf("no catalog match for %q", name),
		NeedsReview: true,
	}
}

// stripDescriptors removes descriptor adjectives from name and returns the
// collapsed residue plus the descriptors removed, in vocabulary order.
func (m *CatalogMatcher) stripDescriptors(name string) (string, []string) {
	var removed []string
	stripped := name
	for i, re := range m.descriptorRes {
		if re.MatchString(stripped) {
			stripped = re.ReplaceAllString(stripped, " ")
			removed = append(removed, m.descriptors[i])
		}
	}
	if len(removed) == 0 {
		return name, nil
	}
	stripped = multipleSpacesRegex.ReplaceAllString(stripped, " ")
	return strings.TrimSpace(stripped), removed
}

// partialCandidates returns entries whose name or plural contains the
// simplified name, or vice versa. Exact equals cannot reach this stage.
func partialCandidates(simplified string, catalog *CatalogIndex) []*domain.CatalogEntry {
	var candidates []*domain.CatalogEntry
	for i := range catalog.Entries() {
		entry := &catalog.Entries()[i]
		if containsEitherWay(strings.ToLower(entry.Name), simplified) {
			candidates = append(candidates, entry)
			continue
		}
		if entry.PluralName != nil && containsEitherWay(strings.ToLower(*entry.PluralName), simplified) {
			candidates = append(candidates, entry)
		}
	}
	return candidates
}

func containsEitherWay(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func equalsNameOrPlural(entry *domain.CatalogEntry, word string) bool {
	if strings.EqualFold(entry.Name, word) {
		return true
	}
	return entry.PluralName != nil && strings.EqualFold(*entry.PluralName, word)
}

// candidateNames renders up to maxAmbiguousCandidates names for match notes.
func candidateNames(candidates []*domain.CatalogEntry) string {
	names := make([]string, 0, maxAmbiguousCandidates)
	for _, entry := range candidates {
		if len(names) == maxAmbiguousCandidates {
			break
		}
		names = append(names, entry.Name)
	}
	return strings.Join(names, ", ")
}

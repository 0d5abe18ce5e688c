package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pantrylens/backend/internal/domain"
	"github.com/pantrylens/backend/internal/metrics"
)

// parentheticalRegex strips notes like "(about 2 lbs)" before extraction.
var parentheticalRegex = regexp.MustCompile(`\([^)]*\)`)

const defaultCatalogTTL = 15 * time.Minute

// PipelineConfig holds configuration for the batch pipeline.
type PipelineConfig struct {
	CatalogTTL time.Duration
}

// PipelineService runs the full extraction-and-matching pipeline over one
// recipe's ingredient lines. Lines are processed strictly in order; one line
// failing degrades that record instead of aborting the batch.
type PipelineService struct {
	catalog    domain.CatalogRepository
	cache      domain.SnapshotCache
	writer     domain.BatchWriter
	quantities *QuantityExtractor
	units      *UnitExtractor
	preps      *PreparationExtractor
	matcher    *CatalogMatcher
	orResolver *OrResolver
	logger     *zap.Logger
	metrics    *metrics.PipelineMetrics
	catalogTTL time.Duration
}

// NewPipelineService wires the pipeline. cache, writer, sink and pm may be
// nil; catalog is required.
func NewPipelineService(
	catalog domain.CatalogRepository,
	cache domain.SnapshotCache,
	writer domain.BatchWriter,
	sink domain.DecisionSink,
	vocab *Vocabulary,
	logger *zap.Logger,
	pm *metrics.PipelineMetrics,
	cfg PipelineConfig,
) *PipelineService {
	if logger == nil {
		logger = zap.NewNop()
	}
	ttl := cfg.CatalogTTL
	if ttl <= 0 {
		ttl = defaultCatalogTTL
	}
	return &PipelineService{
		catalog:    catalog,
		cache:      cache,
		writer:     writer,
		quantities: NewQuantityExtractor(),
		units:      NewUnitExtractor(vocab),
		preps:      NewPreparationExtractor(vocab),
		matcher:    NewCatalogMatcher(vocab),
		orResolver: NewOrResolver(vocab, sink, logger, pm),
		logger:     logger,
		metrics:    pm,
		catalogTTL: ttl,
	}
}

// ProcessRecipe runs the pipeline over lines for one recipe. The catalog is
// fetched exactly once, before any line is processed; if that fetch fails the
// batch produces no records. The returned records preserve input order
// unconditionally: record i has SequenceOrder i+1.
func (s *PipelineService) ProcessRecipe(ctx context.Context, recipe domain.RecipeContext, lines []string) (*domain.BatchResult, error) {
	if recipe.RecipeID == "" {
		return nil, domain.ErrInvalidRequest
	}
	started := time.Now()

	entries, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	index := NewCatalogIndex(entries)

	result := &domain.BatchResult{
		Records: make([]domain.PersistRecord, 0, len(lines)),
	}
	for i, text := range lines {
		line := domain.RawIngredientLine{
			RecipeID: recipe.RecipeID,
			Position: i + 1,
			Text:     text,
		}
		record := s.processLine(ctx, recipe, line, index)
		s.metrics.ObserveLine(record.Match.Method)
		result.Records = append(result.Records, record)

		if alt := record.Match.Alternative; alt != nil {
			result.Alternatives = append(result.Alternatives, domain.AlternativeRelation{
				RecordIndex:   record.SequenceOrder,
				AlternativeID: alt.IngredientID,
				IsEquivalent:  alt.IsEquivalent,
			})
		}
	}

	s.metrics.ObserveBatch(time.Since(started))
	s.logger.Info("recipe batch processed",
		zap.String("recipe_id", recipe.RecipeID),
		zap.Int("lines", len(lines)),
		zap.Int("alternatives", len(result.Alternatives)),
		zap.Duration("elapsed", time.Since(started)))
	return result, nil
}

// PersistBatch writes an assembled batch through the configured writer.
func (s *PipelineService) PersistBatch(ctx context.Context, recipe domain.RecipeContext, result *domain.BatchResult) error {
	if s.writer == nil {
		return nil
	}
	if err := s.writer.SaveRecords(ctx, result.Records); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistenceFailure, err)
	}
	if len(result.Alternatives) > 0 {
		if err := s.writer.SaveAlternatives(ctx, recipe.RecipeID, result.Alternatives); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrPersistenceFailure, err)
		}
	}
	return nil
}

// InvalidateCatalog drops the cached catalog snapshot so the next batch
// re-fetches.
func (s *PipelineService) InvalidateCatalog(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Invalidate(ctx)
}

// loadCatalog returns the snapshot for this batch: cache first, then one
// repository round trip. A failed cache write is logged, not fatal.
func (s *PipelineService) loadCatalog(ctx context.Context) ([]domain.CatalogEntry, error) {
	if s.cache != nil {
		if entries, err := s.cache.GetCatalog(ctx); err == nil {
			return entries, nil
		}
	}

	entries, err := s.catalog.ListEntries(ctx, nil)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetCatalog(ctx, entries, s.catalogTTL); err != nil {
			s.logger.Warn("catalog cache write failed", zap.Error(err))
		}
	}
	return entries, nil
}

// processLine runs extraction and matching for one line. A panic anywhere in
// the line's processing is recovered into a degraded record so the rest of
// the batch continues.
func (s *PipelineService) processLine(ctx context.Context, recipe domain.RecipeContext, line domain.RawIngredientLine, index *CatalogIndex) (record domain.PersistRecord) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("line processing failed",
				zap.String("recipe_id", line.RecipeID),
				zap.Int("position", line.Position),
				zap.Any("panic", r))
			record = degradedRecord(line, fmt.Sprintf("processing failed: %v", r))
		}
	}()

	parsed := s.parseLine(line.Text)

	var match domain.MatchResult
	switch {
	case parsed.IngredientName == nil:
		match = domain.MatchResult{
			Method:      domain.MatchMethodNone,
			Notes:       "no ingredient name extracted",
			NeedsReview: true,
		}
	case IsOrPattern(*parsed.IngredientName):
		match = s.orResolver.Resolve(ctx, recipe, *parsed.IngredientName, index)
	default:
		match = s.matcher.Match(*parsed.IngredientName, index)
	}

	return domain.PersistRecord{
		Line:          line,
		Parsed:        parsed,
		Match:         match,
		SequenceOrder: line.Position,
	}
}

// parseLine decomposes one raw line into quantity, unit, preparation and
// ingredient-name tokens. OriginalText keeps the verbatim input; extraction
// works on a copy with parenthetical notes removed.
func (s *PipelineService) parseLine(text string) domain.ParsedIngredient {
	working := parentheticalRegex.ReplaceAllString(text, " ")
	working = multipleSpacesRegex.ReplaceAllString(working, " ")
	working = strings.TrimSpace(working)

	quantity := s.quantities.Extract(working)
	unit := s.units.Extract(quantity.Remaining)
	prep := s.preps.Extract(unit.Remaining)

	parsed := domain.ParsedIngredient{
		OriginalText:   text,
		QuantityAmount: quantity.Amount,
		QuantityUnit:   unit.Unit,
		Confidence: domain.ConfidenceScores{
			Quantity: quantity.Confidence,
			Unit:     unit.Confidence,
		},
	}

	if len(prep.Terms) > 0 {
		joined := strings.Join(prep.Terms, ", ")
		parsed.Preparation = &joined
	}

	if name := strings.ToLower(strings.TrimSpace(prep.Cleaned)); name != "" {
		parsed.IngredientName = &name
		parsed.Confidence.Ingredient = 1.0
	}

	return parsed
}

// degradedRecord converts a failed line into a reviewable record instead of
// dropping it, preserving its sequence order.
func degradedRecord(line domain.RawIngredientLine, reason string) domain.PersistRecord {
	return domain.PersistRecord{
		Line: line,
		Parsed: domain.ParsedIngredient{
			OriginalText: line.Text,
		},
		Match: domain.MatchResult{
			Method:      domain.MatchMethodError,
			Notes:       reason,
			NeedsReview: true,
		},
		SequenceOrder: line.Position,
	}
}

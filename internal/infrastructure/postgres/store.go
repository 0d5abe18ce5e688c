// Package postgres backs the catalog repository, the batch writer, and the
// OR-pattern decision log with a single Postgres database.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver

	"github.com/pantrylens/backend/internal/domain"
)

// Compile-time contract assertions
var (
	_ domain.CatalogRepository = (*Store)(nil)
	_ domain.BatchWriter       = (*Store)(nil)
	_ domain.DecisionSink      = (*Store)(nil)
)

const driverName = "pgx"

// Store is a Postgres-backed implementation of the engine's persistence
// collaborators.
type Store struct {
	db *sql.DB
}

// NewStore opens a Postgres connection, verifies it, and ensures the schema
// exists.
func NewStore(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if err := ensureSchema(ctx, db); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }

// Close releases the connection pool.
func (s *Store) Close() error { return s.db.Close() }

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS ingredients (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		plural_name TEXT,
		base_ingredient_id BIGINT REFERENCES ingredients(id)
	)`,
	`CREATE TABLE IF NOT EXISTS recipe_ingredients (
		recipe_id TEXT NOT NULL,
		sequence_order INT NOT NULL,
		original_text TEXT NOT NULL,
		quantity_amount DOUBLE PRECISION,
		quantity_unit TEXT,
		preparation TEXT,
		ingredient_name TEXT,
		ingredient_id BIGINT,
		match_confidence DOUBLE PRECISION NOT NULL,
		match_method TEXT NOT NULL,
		match_notes TEXT,
		needs_review BOOLEAN NOT NULL,
		PRIMARY KEY (recipe_id, sequence_order)
	)`,
	`CREATE TABLE IF NOT EXISTS ingredient_alternatives (
		recipe_id TEXT NOT NULL,
		record_index INT NOT NULL,
		alternative_id BIGINT NOT NULL,
		is_equivalent BOOLEAN NOT NULL,
		PRIMARY KEY (recipe_id, record_index, alternative_id)
	)`,
	`CREATE TABLE IF NOT EXISTS or_pattern_decisions (
		id TEXT PRIMARY KEY,
		recipe_id TEXT,
		recipe_title TEXT,
		option_a_text TEXT NOT NULL,
		option_a_found BOOLEAN NOT NULL,
		option_a_id BIGINT,
		option_b_text TEXT NOT NULL,
		option_b_found BOOLEAN NOT NULL,
		option_b_id BIGINT,
		is_equivalent BOOLEAN NOT NULL,
		confidence DOUBLE PRECISION NOT NULL,
		reason TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

func ensureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// ListEntries returns the ingredient catalog. An empty names filter returns
// every entry; otherwise only entries whose name matches the filter
// (case-insensitive) are returned.
func (s *Store) ListEntries(ctx context.Context, names []string) ([]domain.CatalogEntry, error) {
	query := `SELECT id, name, plural_name, base_ingredient_id FROM ingredients`
	var args []any
	if len(names) > 0 {
		placeholders := make([]string, len(names))
		for i, name := range names {
			placeholders[i] = fmt.Sprintf("$%d", i+1)
			args = append(args, strings.ToLower(name))
		}
		query += ` WHERE lower(name) IN (` + strings.Join(placeholders, ", ") + `)`
	}
	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []domain.CatalogEntry
	for rows.Next() {
		var entry domain.CatalogEntry
		var plural sql.NullString
		var base sql.NullInt64
		if err := rows.Scan(&entry.ID, &entry.Name, &plural, &base); err != nil {
			return nil, fmt.Errorf("scan ingredient: %w", err)
		}
		if plural.Valid {
			entry.PluralName = &plural.String
		}
		if base.Valid {
			entry.BaseIngredientID = &base.Int64
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	return entries, nil
}

// SaveRecords inserts one recipe's assembled records in a single
// transaction, replacing any earlier run for the same recipe positions.
func (s *Store) SaveRecords(ctx context.Context, records []domain.PersistRecord) error {
	if len(records) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const insert = `INSERT INTO recipe_ingredients (
		recipe_id, sequence_order, original_text, quantity_amount,
		quantity_unit, preparation, ingredient_name, ingredient_id,
		match_confidence, match_method, match_notes, needs_review
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	ON CONFLICT (recipe_id, sequence_order) DO UPDATE SET
		original_text = EXCLUDED.original_text,
		quantity_amount = EXCLUDED.quantity_amount,
		quantity_unit = EXCLUDED.quantity_unit,
		preparation = EXCLUDED.preparation,
		ingredient_name = EXCLUDED.ingredient_name,
		ingredient_id = EXCLUDED.ingredient_id,
		match_confidence = EXCLUDED.match_confidence,
		match_method = EXCLUDED.match_method,
		match_notes = EXCLUDED.match_notes,
		needs_review = EXCLUDED.needs_review`

	for _, record := range records {
		if !record.Match.Method.Valid() {
			return fmt.Errorf("record %d: invalid match method %q", record.SequenceOrder, record.Match.Method)
		}
		_, err := tx.ExecContext(ctx, insert,
			record.Line.RecipeID,
			record.SequenceOrder,
			record.Parsed.OriginalText,
			record.Parsed.QuantityAmount,
			record.Parsed.QuantityUnit,
			record.Parsed.Preparation,
			record.Parsed.IngredientName,
			record.Match.IngredientID,
			record.Match.Confidence,
			string(record.Match.Method),
			record.Match.Notes,
			record.Match.NeedsReview,
		)
		if err != nil {
			return fmt.Errorf("insert record %d: %w", record.SequenceOrder, err)
		}
	}
	return tx.Commit()
}

// SaveAlternatives inserts the alternative-ingredient relations for one
// recipe.
func (s *Store) SaveAlternatives(ctx context.Context, recipeID string, relations []domain.AlternativeRelation) error {
	if len(relations) == 0 {
		return nil
	}
	const insert = `INSERT INTO ingredient_alternatives (
		recipe_id, record_index, alternative_id, is_equivalent
	) VALUES ($1, $2, $3, $4)
	ON CONFLICT (recipe_id, record_index, alternative_id) DO UPDATE SET
		is_equivalent = EXCLUDED.is_equivalent`

	for _, rel := range relations {
		if _, err := s.db.ExecContext(ctx, insert, recipeID, rel.RecordIndex, rel.AlternativeID, rel.IsEquivalent); err != nil {
			return fmt.Errorf("insert alternative for record %d: %w", rel.RecordIndex, err)
		}
	}
	return nil
}

// Record writes one OR-pattern decision. The caller treats failures as
// best-effort; this method only reports them.
func (s *Store) Record(ctx context.Context, d domain.OrPatternDecision) error {
	const insert = `INSERT INTO or_pattern_decisions (
		id, recipe_id, recipe_title,
		option_a_text, option_a_found, option_a_id,
		option_b_text, option_b_found, option_b_id,
		is_equivalent, confidence, reason
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	ON CONFLICT (id) DO NOTHING`

	_, err := s.db.ExecContext(ctx, insert,
		d.ID, d.RecipeID, d.RecipeTitle,
		d.OptionA.Text, d.OptionA.Found, d.OptionA.ID,
		d.OptionB.Text, d.OptionB.Found, d.OptionB.ID,
		d.IsEquivalent, d.Confidence, d.Reason,
	)
	if err != nil {
		return fmt.Errorf("insert decision: %w", err)
	}
	return nil
}

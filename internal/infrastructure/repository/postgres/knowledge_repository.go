package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/mkuznet/shop-assistant/internal/core/domain"
)

// KnowledgeRepository serves training utterances, FAQ entries and the
// product catalog from Postgres. It is a read-mostly source: rows are
// managed by external import jobs.
type KnowledgeRepository struct {
	db *sql.DB
}

func NewKnowledgeRepository(db *sql.DB) *KnowledgeRepository {
	return &KnowledgeRepository{db: db}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (r *KnowledgeRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across api/worker startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026082901)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS intent_examples (
	id BIGSERIAL PRIMARY KEY,
	utterance TEXT NOT NULL,
	intent TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS faq_entries (
	id BIGSERIAL PRIMARY KEY,
	question TEXT NOT NULL,
	answer TEXT NOT NULL,
	intent TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS products (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	category TEXT NOT NULL DEFAULT '',
	price DOUBLE PRECISION NOT NULL DEFAULT 0,
	rating DOUBLE PRECISION NOT NULL DEFAULT 0,
	tags TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_intent_examples_intent ON intent_examples(intent);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

func (r *KnowledgeRepository) ListTrainingExamples(ctx context.Context) ([]domain.TrainingExample, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT utterance, intent
FROM intent_examples
ORDER BY id
`)
	if err != nil {
		return nil, domain.WrapError(domain.ErrDataUnavailable, "query intent examples", err)
	}
	defer rows.Close()

	var examples []domain.TrainingExample
	for rows.Next() {
		var text, intent string
		if err := rows.Scan(&text, &intent); err != nil {
			return nil, fmt.Errorf("scan intent example: %w", err)
		}
		examples = append(examples, domain.TrainingExample{
			Text:   text,
			Intent: domain.ParseIntent(intent),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate intent examples: %w", err)
	}
	return examples, nil
}

func (r *KnowledgeRepository) ListFAQEntries(ctx context.Context) ([]domain.FAQEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT question, answer, intent
FROM faq_entries
ORDER BY id
`)
	if err != nil {
		return nil, domain.WrapError(domain.ErrDataUnavailable, "query faq entries", err)
	}
	defer rows.Close()

	var entries []domain.FAQEntry
	for rows.Next() {
		var e domain.FAQEntry
		if err := rows.Scan(&e.Question, &e.Answer, &e.Intent); err != nil {
			return nil, fmt.Errorf("scan faq entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate faq entries: %w", err)
	}
	return entries, nil
}

func (r *KnowledgeRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, category, price, rating, tags, description
FROM products
ORDER BY id
`)
	if err != nil {
		return nil, domain.WrapError(domain.ErrDataUnavailable, "query products", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.Rating, &p.Tags, &p.Description); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

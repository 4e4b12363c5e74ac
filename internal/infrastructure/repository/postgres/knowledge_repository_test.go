package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/mkuznet/shop-assistant/internal/core/domain"
)

func newRepoWithMock(t *testing.T) (*KnowledgeRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	return &KnowledgeRepository{db: db}, mock, func() { _ = db.Close() }
}

func TestListTrainingExamplesCoercesIntents(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	rows := sqlmock.NewRows([]string{"utterance", "intent"}).
		AddRow("do you ship abroad", "shipping_policy").
		AddRow("blah", "not_a_real_intent")
	mock.ExpectQuery("SELECT utterance, intent").WillReturnRows(rows)

	examples, err := repo.ListTrainingExamples(context.Background())
	if err != nil {
		t.Fatalf("ListTrainingExamples() error = %v", err)
	}
	if len(examples) != 2 {
		t.Fatalf("expected 2 examples, got %d", len(examples))
	}
	if examples[0].Intent != domain.IntentShippingPolicy {
		t.Fatalf("expected shipping_policy, got %s", examples[0].Intent)
	}
	if examples[1].Intent != domain.IntentFallback {
		t.Fatalf("expected unknown label coerced to fallback, got %s", examples[1].Intent)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestListFAQEntriesKeepsStoredIntentTag(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	rows := sqlmock.NewRows([]string{"question", "answer", "intent"}).
		AddRow("how long does shipping take", "3-5 business days", "shipping_policy").
		AddRow("untagged question", "untagged answer", "")
	mock.ExpectQuery("SELECT question, answer, intent").WillReturnRows(rows)

	entries, err := repo.ListFAQEntries(context.Background())
	if err != nil {
		t.Fatalf("ListFAQEntries() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Intent != "shipping_policy" || entries[1].Intent != "" {
		t.Fatalf("unexpected intent tags: %+v", entries)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestListProductsScansAllColumns(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	rows := sqlmock.NewRows([]string{"id", "name", "category", "price", "rating", "tags", "description"}).
		AddRow("p1", "Phone A", "phone", 15000.0, 4.2, "budget android", "compact budget phone")
	mock.ExpectQuery("SELECT id, name, category, price, rating, tags, description").WillReturnRows(rows)

	products, err := repo.ListProducts(context.Background())
	if err != nil {
		t.Fatalf("ListProducts() error = %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(products))
	}
	p := products[0]
	if p.ID != "p1" || p.Category != "phone" || p.Price != 15000 || p.Rating != 4.2 {
		t.Fatalf("unexpected product: %+v", p)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestListProductsWrapsQueryFailure(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	mock.ExpectQuery("SELECT id, name, category").WillReturnError(errors.New("connection refused"))

	_, err := repo.ListProducts(context.Background())
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrDataUnavailable) {
		t.Fatalf("expected ErrDataUnavailable, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

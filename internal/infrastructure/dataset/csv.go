// Package dataset loads the file-backed data sources: training corpus,
// knowledge base and catalog. Missing columns default to empty values;
// missing files surface as data-unavailable errors.
package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mkuznet/shop-assistant/internal/core/domain"
)

// CSVSource reads the three tabular sources from one data directory using
// the conventional file names.
type CSVSource struct {
	IntentsPath  string
	FAQPath      string
	ProductsPath string
}

func NewCSVSource(dir string) *CSVSource {
	return &CSVSource{
		IntentsPath:  dir + "/intents.csv",
		FAQPath:      dir + "/faq.csv",
		ProductsPath: dir + "/products.csv",
	}
}

func (s *CSVSource) ListTrainingExamples(_ context.Context) ([]domain.TrainingExample, error) {
	f, err := os.Open(s.IntentsPath)
	if err != nil {
		return nil, domain.WrapError(domain.ErrDataUnavailable, "open training corpus", err)
	}
	defer f.Close()
	return ParseTrainingCSV(f)
}

func (s *CSVSource) ListFAQEntries(_ context.Context) ([]domain.FAQEntry, error) {
	f, err := os.Open(s.FAQPath)
	if err != nil {
		return nil, domain.WrapError(domain.ErrDataUnavailable, "open knowledge base", err)
	}
	defer f.Close()
	return ParseFAQCSV(f)
}

func (s *CSVSource) ListProducts(_ context.Context) ([]domain.Product, error) {
	f, err := os.Open(s.ProductsPath)
	if err != nil {
		return nil, domain.WrapError(domain.ErrDataUnavailable, "open catalog", err)
	}
	defer f.Close()
	return ParseProductsCSV(f)
}

// ParseTrainingCSV reads a text/intent table. Intent labels outside the
// closed set coerce to fallback rather than failing.
func ParseTrainingCSV(r io.Reader) ([]domain.TrainingExample, error) {
	rows, header, err := readTable(r)
	if err != nil {
		return nil, fmt.Errorf("read training corpus: %w", err)
	}

	out := make([]domain.TrainingExample, 0, len(rows))
	for _, row := range rows {
		text := column(row, header, "text")
		if text == "" {
			continue
		}
		out = append(out, domain.TrainingExample{
			Text:   text,
			Intent: domain.ParseIntent(column(row, header, "intent")),
		})
	}
	return out, nil
}

// ParseFAQCSV reads a question/answer/intent table. The intent column is
// optional and stored as written.
func ParseFAQCSV(r io.Reader) ([]domain.FAQEntry, error) {
	rows, header, err := readTable(r)
	if err != nil {
		return nil, fmt.Errorf("read knowledge base: %w", err)
	}

	out := make([]domain.FAQEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.FAQEntry{
			Question: column(row, header, "question"),
			Answer:   column(row, header, "answer"),
			Intent:   column(row, header, "intent"),
		})
	}
	return out, nil
}

// ParseProductsCSV reads the catalog table. Price and rating parse leniently:
// malformed numerics become zero instead of failing the load.
func ParseProductsCSV(r io.Reader) ([]domain.Product, error) {
	rows, header, err := readTable(r)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	out := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.Product{
			ID:          column(row, header, "id"),
			Name:        column(row, header, "name"),
			Category:    column(row, header, "category"),
			Price:       parseFloat(column(row, header, "price")),
			Rating:      parseFloat(column(row, header, "rating")),
			Tags:        column(row, header, "tags"),
			Description: column(row, header, "description"),
		})
	}
	return out, nil
}

func readTable(r io.Reader) ([][]string, map[string]int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, map[string]int{}, nil
	}

	header := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		header[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return records[1:], header, nil
}

func column(row []string, header map[string]int, name string) string {
	idx, ok := header[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseFloat(raw string) float64 {
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}

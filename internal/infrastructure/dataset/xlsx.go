package dataset

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/mkuznet/shop-assistant/internal/core/domain"
)

// XLSXSource reads the same three tables from spreadsheet exports, one sheet
// per workbook (the first sheet is used). Column defaulting matches the CSV
// loaders.
type XLSXSource struct {
	IntentsPath  string
	FAQPath      string
	ProductsPath string
}

func NewXLSXSource(dir string) *XLSXSource {
	return &XLSXSource{
		IntentsPath:  dir + "/intents.xlsx",
		FAQPath:      dir + "/faq.xlsx",
		ProductsPath: dir + "/products.xlsx",
	}
}

func (s *XLSXSource) ListTrainingExamples(_ context.Context) ([]domain.TrainingExample, error) {
	rows, header, err := readSheet(s.IntentsPath, "training corpus")
	if err != nil {
		return nil, err
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

func (s *XLSXSource) ListFAQEntries(_ context.Context) ([]domain.FAQEntry, error) {
	rows, header, err := readSheet(s.FAQPath, "knowledge base")
	if err != nil {
		return nil, err
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

func (s *XLSXSource) ListProducts(_ context.Context) ([]domain.Product, error) {
	rows, header, err := readSheet(s.ProductsPath, "catalog")
	if err != nil {
		return nil, err
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

func readSheet(path, what string) ([][]string, map[string]int, error) {
	book, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, domain.WrapError(domain.ErrDataUnavailable, "open "+what, err)
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, domain.WrapError(domain.ErrDataUnavailable, "open "+what, fmt.Errorf("workbook has no sheets"))
	}

	records, err := book.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("read %s sheet: %w", what, err)
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

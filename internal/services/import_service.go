// Package services – ImportService
//
// This file implements bulk FAQ import from uploaded files. The format is
// chosen by extension: CSV and XLSX expect question/answer/category columns,
// JSON expects an array of objects, and PDF is mined for labeled
// Pergunta/Resposta line pairs. Rows missing question or answer are skipped,
// not fatal; the matcher cache is invalidated once per upload.
package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/xuri/excelize/v2"
)

// fallbackCategory receives imported rows that name no category.
const fallbackCategory = "Geral"

// ImportRecord is one parsed question/answer row before insertion.
type ImportRecord struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category"`
}

// ImportResult summarizes one upload.
type ImportResult struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

// ImportService parses uploaded files into FAQs via FAQService.
type ImportService struct {
	Faqs *FAQService
}

// NewImportService constructs an ImportService.
func NewImportService(faqs *FAQService) *ImportService {
	return &ImportService{Faqs: faqs}
}

// Import parses data according to filename's extension and inserts the valid
// rows. Returns ErrUnsupportedFormat for unknown extensions.
func (s *ImportService) Import(ctx context.Context, filename string, data []byte) (*ImportResult, error) {
	var (
		records []ImportRecord
		err     error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		records, err = parseCSV(data)
	case ".json":
		records, err = parseJSON(data)
	case ".xlsx":
		records, err = parseXLSX(data)
	case ".pdf":
		records, err = parsePDF(data)
	default:
		return nil, ErrUnsupportedFormat
	}
	if err != nil {
		return nil, err
	}

	res := &ImportResult{}
	for _, r := range records {
		q := strings.TrimSpace(r.Question)
		a := strings.TrimSpace(r.Answer)
		if q == "" || a == "" {
			res.Skipped++
			continue
		}
		catName := strings.TrimSpace(r.Category)
		if catName == "" {
			catName = fallbackCategory
		}
		cat, err := s.Faqs.ResolveCategory(ctx, catName)
		if err != nil {
			return nil, err
		}
		if _, err := s.Faqs.Create(ctx, FAQInput{
			Question:   q,
			Answer:     a,
			CategoryID: cat.ID,
		}); err != nil {
			return nil, err
		}
		res.Created++
	}
	return res, nil
}

// parseCSV reads question/answer/category columns. A header row naming the
// columns is recognized and skipped; otherwise rows are positional.
func parseCSV(data []byte) ([]ImportRecord, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var out []ImportRecord
	first := true
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if first {
			first = false
			if isHeaderRow(row) {
				continue
			}
		}
		out = append(out, recordFromRow(row))
	}
	return out, nil
}

func isHeaderRow(row []string) bool {
	if len(row) == 0 {
		return false
	}
	h := strings.ToLower(strings.TrimSpace(row[0]))
	return h == "question" || h == "pergunta"
}

func recordFromRow(row []string) ImportRecord {
	var rec ImportRecord
	if len(row) > 0 {
		rec.Question = row[0]
	}
	if len(row) > 1 {
		rec.Answer = row[1]
	}
	if len(row) > 2 {
		rec.Category = row[2]
	}
	return rec
}

// parseJSON expects an array of {question, answer, category} objects.
func parseJSON(data []byte) ([]ImportRecord, error) {
	var out []ImportRecord
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// parseXLSX reads the first sheet with the same column layout as CSV.
func parseXLSX(data []byte) ([]ImportRecord, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}

	var out []ImportRecord
	for i, row := range rows {
		if i == 0 && isHeaderRow(row) {
			continue
		}
		out = append(out, recordFromRow(row))
	}
	return out, nil
}

// parsePDF extracts the document's plain text and collects labeled pairs:
// a "Pergunta:" line opens a record, "Resposta:" fills its answer, and an
// optional "Categoria:" line names the category. Unlabeled lines extend the
// current answer.
func parsePDF(data []byte) ([]ImportRecord, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return nil, err
	}

	var (
		out []ImportRecord
		cur *ImportRecord
	)
	flush := func() {
		if cur != nil {
			out = append(out, *cur)
			cur = nil
		}
	}
	for _, line := range strings.Split(buf.String(), "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "Pergunta:"):
			flush()
			cur = &ImportRecord{Question: strings.TrimSpace(strings.TrimPrefix(line, "Pergunta:"))}
		case cur != nil && strings.HasPrefix(line, "Resposta:"):
			cur.Answer = strings.TrimSpace(strings.TrimPrefix(line, "Resposta:"))
		case cur != nil && strings.HasPrefix(line, "Categoria:"):
			cur.Category = strings.TrimSpace(strings.TrimPrefix(line, "Categoria:"))
		case cur != nil && cur.Answer != "" && line != "":
			cur.Answer += " " + line
		}
	}
	flush()
	return out, nil
}

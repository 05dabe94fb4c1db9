package file_processor

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"sentiment-service/internal/analyzer"
	"sentiment-service/internal/models"
	"sentiment-service/internal/repository"
)

var (
	// ErrUnsupportedFormat means the file suffix is neither CSV nor XLS/XLSX.
	ErrUnsupportedFormat = errors.New("unsupported file type")
	// ErrColumnNotFound means the requested column is absent from the header.
	ErrColumnNotFound = errors.New("column not found in the file")
)

// ParseError means the file could not be read as tabular data at all.
type ParseError struct {
	Filename string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to read file %q: %v", e.Filename, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Entry is the outcome of one input row, success or failure. Exactly one
// of Result/Error is set; DBID always refers to the persisted row.
type Entry struct {
	Text   string              `json:"text"`
	Result []models.Prediction `json:"result,omitempty"`
	Error  string              `json:"error,omitempty"`
	DBID   int64               `json:"db_id"`
}

// Processor runs batch classification over an uploaded tabular file.
type Processor struct {
	analyzer *analyzer.Analyzer
	results  repository.SentimentResultRepository
	logger   *zap.Logger
}

func NewProcessor(analyzer *analyzer.Analyzer, results repository.SentimentResultRepository, logger *zap.Logger) *Processor {
	return &Processor{analyzer: analyzer, results: results, logger: logger}
}

// Process parses the uploaded file, resolves the text column and classifies
// every row in file order. File-level problems (unknown suffix, unreadable
// content, missing column) abort before any row is touched. A failing
// classification only marks its own row: the error detail is recorded, the
// row is persisted with empty label and zero score, and the loop moves on.
// N input rows always produce N entries.
func (p *Processor) Process(ctx context.Context, data []byte, filename, column string) ([]Entry, error) {
	var (
		header []string
		rows   [][]string
		err    error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		header, rows, err = parseCSV(data)
	case ".xls", ".xlsx":
		header, rows, err = parseExcel(data)
	default:
		return nil, ErrUnsupportedFormat
	}
	if err != nil {
		return nil, &ParseError{Filename: filename, Err: err}
	}

	columnIdx := -1
	for i, name := range header {
		if name == column {
			columnIdx = i
			break
		}
	}
	if columnIdx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, column)
	}

	entries := make([]Entry, 0, len(rows))
	for i, row := range rows {
		var cell string
		if columnIdx < len(row) {
			cell = row[columnIdx]
		}

		var entry Entry
		var label string
		var score float64

		analysis, err := p.analyzer.Analyze(ctx, cell)
		if err != nil {
			p.logger.Warn("Classification failed for row",
				zap.Int("row", i),
				zap.Error(err))
			entry = Entry{Text: analyzer.Normalize(cell), Error: err.Error()}
		} else {
			entry = Entry{Text: analysis.Text, Result: analysis.Predictions}
			label = analysis.Label
			score = analysis.Score
		}

		saved, err := p.results.Create(entry.Text, label, score)
		if err != nil {
			return nil, fmt.Errorf("failed to save result for row %d: %w", i, err)
		}
		entry.DBID = saved.ID

		entries = append(entries, entry)
	}

	return entries, nil
}

func parseCSV(data []byte) ([]string, [][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1 // rows shorter than the header are fine

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, errors.New("file contains no header row")
	}
	return records[0], records[1:], nil
}

func parseExcel(data []byte) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, errors.New("workbook contains no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, errors.New("file contains no header row")
	}
	return rows[0], rows[1:], nil
}

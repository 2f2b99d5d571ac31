package collector

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strings"

	"StockLens/internal/model"
)

// CSVSource reads date/close records from a CSV file with a header row.
type CSVSource struct {
	Path        string
	DateColumn  string
	CloseColumn string
}

// NewCSVSource creates a CSV source. Empty column names default to Date and Close.
func NewCSVSource(path, dateColumn, closeColumn string) *CSVSource {
	if dateColumn == "" {
		dateColumn = "Date"
	}
	if closeColumn == "" {
		closeColumn = "Close"
	}
	return &CSVSource{Path: path, DateColumn: dateColumn, CloseColumn: closeColumn}
}

func (s *CSVSource) Name() string { return "csv:" + s.Path }

// Records opens, reads and closes the file within the call.
func (s *CSVSource) Records(ctx context.Context) ([]model.Record, error) {
	const op = "read csv"
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, &model.Error{Kind: model.KindDataFormat, Op: op, Err: err}
	}
	defer f.Close()
	return ParseCSV(f, s.DateColumn, s.CloseColumn)
}

// ParseCSV reads records from r. Columns other than the date and close columns are ignored.
func ParseCSV(r io.Reader, dateColumn, closeColumn string) ([]model.Record, error) {
	const op = "read csv"
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, model.Errorf(model.KindDataFormat, op, "empty file")
	}
	if err != nil {
		return nil, &model.Error{Kind: model.KindDataFormat, Op: op, Err: err}
	}
	dateIdx, closeIdx := columnIndex(header, dateColumn), columnIndex(header, closeColumn)
	if dateIdx < 0 {
		return nil, model.Errorf(model.KindDataFormat, op, "missing %q column", dateColumn)
	}
	if closeIdx < 0 {
		return nil, model.Errorf(model.KindDataFormat, op, "missing %q column", closeColumn)
	}

	var records []model.Record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &model.Error{Kind: model.KindDataFormat, Op: op, Err: err}
		}
		line, _ := cr.FieldPos(0)
		if isBlank(row) {
			continue
		}
		rec := model.Record{Line: line}
		if dateIdx < len(row) {
			rec.Date = row[dateIdx]
		}
		if closeIdx < len(row) {
			rec.Close = row[closeIdx]
		}
		records = append(records, rec)
	}
	return records, nil
}

func columnIndex(header []string, name string) int {
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		if strings.EqualFold(strings.TrimSpace(h), strings.TrimSpace(name)) {
			return i
		}
	}
	return -1
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

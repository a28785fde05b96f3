// Package ingest loads tabular files into datasets. CSV files are read with
// the standard library; workbook files go through excelize, first sheet
// only. A header row is required either way; short rows are padded with
// empty cells.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/datasmith/datasmith/internal/models"
	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFile indicates a file extension this tool cannot parse.
var ErrUnsupportedFile = errors.New("unsupported file type (expected .csv or .xlsx)")

// ErrNoHeader indicates an input with no header row.
var ErrNoHeader = errors.New("input has no header row")

// DetectKind infers the dataset kind from the file name. Returns an error
// when the name hints at none of the three kinds.
func DetectKind(path string) (models.DatasetKind, error) {
	name := strings.ToLower(filepath.Base(path))
	switch {
	case strings.Contains(name, "client"):
		return models.KindClients, nil
	case strings.Contains(name, "worker"):
		return models.KindWorkers, nil
	case strings.Contains(name, "task"):
		return models.KindTasks, nil
	}
	return "", fmt.Errorf("cannot infer dataset kind from file name %q (expected it to mention clients, workers or tasks)", filepath.Base(path))
}

// Load reads a file into a dataset, inferring the kind from the file name.
func Load(path string) (*models.Dataset, error) {
	kind, err := DetectKind(path)
	if err != nil {
		return nil, err
	}
	return LoadKind(path, kind)
}

// LoadKind reads a file into a dataset of the given kind. The extension
// selects the parser; anything but .csv or .xlsx is a structural error.
func LoadKind(path string, kind models.DatasetKind) (*models.Dataset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		return ReadCSV(f, kind)
	case ".xlsx":
		return readWorkbook(path, kind)
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFile)
	}
}

// ReadCSV parses delimited text with a header row into a dataset.
func ReadCSV(r io.Reader, kind models.DatasetKind) (*models.Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	ds := &models.Dataset{Kind: kind, Columns: trimAll(header)}
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(ds.Rows)+1, err)
		}
		ds.Rows = append(ds.Rows, rowFromRecord(ds.Columns, record))
	}
	return ds, nil
}

// readWorkbook parses the first sheet of an xlsx workbook.
func readWorkbook(path string, kind models.DatasetKind) (*models.Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, ErrNoHeader
	}

	ds := &models.Dataset{Kind: kind, Columns: trimAll(rows[0])}
	for _, record := range rows[1:] {
		ds.Rows = append(ds.Rows, rowFromRecord(ds.Columns, record))
	}
	return ds, nil
}

// rowFromRecord maps a record onto the header. Missing trailing cells
// default to empty strings; extra cells beyond the header are dropped.
func rowFromRecord(columns []string, record []string) models.Row {
	row := make(models.Row, len(columns))
	for i, col := range columns {
		if i < len(record) {
			row[col] = record[i]
		} else {
			row[col] = ""
		}
	}
	return row
}

func trimAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = strings.TrimSpace(s)
	}
	return out
}

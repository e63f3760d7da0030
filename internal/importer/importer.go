// Package importer turns an uploaded tabular artifact into reconciliation
// row inputs. Supported formats: xlsx (first sheet) and csv. Row 1 is always
// treated as a header.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	reconciledomain "github.com/campuslabs/feeflow/internal/reconcile/domain"
	"github.com/xuri/excelize/v2"
)

var ErrUnsupportedFormat = errors.New("unsupported_artifact_format")

// Columns: A=student UID, B=term name, C=fee category name.
const (
	colUID = iota
	colTerm
	colCategory
)

func Parse(path string) ([]reconciledomain.RowInput, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return parseWorkbook(path)
	case ".csv":
		return parseCSV(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

func parseWorkbook(path string) ([]reconciledomain.RowInput, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return toInputs(rows), nil
}

func parseCSV(path string) ([]reconciledomain.RowInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		rows = append(rows, record)
	}
	return toInputs(rows), nil
}

// toInputs drops the header row and maps cells positionally. Short rows are
// kept: missing cells become blank fields and fail row validation downstream
// instead of aborting the batch here.
func toInputs(rows [][]string) []reconciledomain.RowInput {
	if len(rows) <= 1 {
		return nil
	}

	inputs := make([]reconciledomain.RowInput, 0, len(rows)-1)
	for _, row := range rows[1:] {
		inputs = append(inputs, reconciledomain.RowInput{
			UID:             cell(row, colUID),
			Term:            cell(row, colTerm),
			FeeCategoryName: cell(row, colCategory),
		})
	}
	return inputs
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

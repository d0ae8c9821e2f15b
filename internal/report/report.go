// Package report writes the spreadsheet listing produced by a directory scan.
//
// The workbook has two sheets: one row per scanned file, and a key/value
// summary of the scan. It is written to a temporary file next to its final
// location and renamed into place, so a failed write leaves nothing behind.
package report

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/idelchi/sheetlist/internal/lister"
)

const (
	// OutputPrefix starts the name of every generated report.
	OutputPrefix = "Excel名称リスト_"
	// StampLayout is the timestamp layout appended to OutputPrefix.
	StampLayout = "20060102_150405"

	// ListingSheet is the name of the per-file sheet.
	ListingSheet = "Excelファイル一覧"
	// SummarySheet is the name of the summary sheet.
	SummarySheet = "サマリー"

	// MaxColumnWidth caps the width of any column.
	MaxColumnWidth = 50
	// ColumnMargin is added to the longest value of a column.
	ColumnMargin = 2
)

//nolint:gochecknoglobals // Sheet layout
var (
	// ListingHeader is the header row of ListingSheet.
	ListingHeader = []string{"ファイル名", "ファイルサイズ(KB)", "更新日時", "フルパス"}
	// SummaryHeader is the header row of SummarySheet.
	SummaryHeader = []string{"項目", "値"}
)

// Summary row labels.
const (
	LabelTotal     = "総ファイル数"
	LabelGenerated = "作成日時"
	LabelTarget    = "対象フォルダ"
)

// table is a named sheet, header row first.
type table struct {
	name string
	rows [][]any
}

// OutputName returns the report file name for the given generation time.
func OutputName(t time.Time) string {
	return OutputPrefix + t.Format(StampLayout) + ".xlsx"
}

func header(cols []string) []any {
	row := make([]any, len(cols))
	for i, c := range cols {
		row[i] = c
	}

	return row
}

func listingTable(records []lister.FileRecord) table {
	rows := make([][]any, 0, len(records)+1)
	rows = append(rows, header(ListingHeader))

	for _, r := range records {
		rows = append(rows, []any{r.Name, r.SizeKB, r.Modified(), r.FullPath})
	}

	return table{name: ListingSheet, rows: rows}
}

func summaryTable(summary lister.ReportSummary) table {
	return table{
		name: SummarySheet,
		rows: [][]any{
			header(SummaryHeader),
			{LabelTotal, summary.TotalCount},
			{LabelGenerated, summary.Generated()},
			{LabelTarget, summary.TargetDirectory},
		},
	}
}

// cellText renders a value the way its width is measured.
func cellText(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case float64:
		return lister.FormatKB(v)
	default:
		return fmt.Sprint(v)
	}
}

// columnWidths returns min(longest value + ColumnMargin, MaxColumnWidth) per column.
func columnWidths(rows [][]any) []float64 {
	var longest []int

	for _, row := range rows {
		for i, v := range row {
			if i >= len(longest) {
				longest = append(longest, 0)
			}

			longest[i] = max(longest[i], utf8.RuneCountInString(cellText(v)))
		}
	}

	widths := make([]float64, len(longest))
	for i, n := range longest {
		widths[i] = float64(min(n+ColumnMargin, MaxColumnWidth))
	}

	return widths
}

func writeTable(f *excelize.File, t table) error {
	for i, row := range t.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}

		if err := f.SetSheetRow(t.name, cell, &row); err != nil {
			return fmt.Errorf("writing row %d of %q: %w", i+1, t.name, err)
		}
	}

	for i, width := range columnWidths(t.rows) {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}

		if err := f.SetColWidth(t.name, col, col, width); err != nil {
			return fmt.Errorf("sizing column %s of %q: %w", col, t.name, err)
		}
	}

	return nil
}

// build assembles the workbook in memory.
func build(records []lister.FileRecord, summary lister.ReportSummary) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName(f.GetSheetName(0), ListingSheet); err != nil {
		f.Close()

		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	if _, err := f.NewSheet(SummarySheet); err != nil {
		f.Close()

		return nil, fmt.Errorf("creating sheet: %w", err)
	}

	for _, t := range []table{listingTable(records), summaryTable(summary)} {
		if err := writeTable(f, t); err != nil {
			f.Close()

			return nil, err
		}
	}

	f.SetActiveSheet(0)

	return f, nil
}

// Write saves the report for records and summary into dir and returns its path.
// The file name is derived from summary.GeneratedAt. Any failure is returned
// as a *WriteError and no report file is left in dir.
func Write(dir string, records []lister.FileRecord, summary lister.ReportSummary) (string, error) {
	path := filepath.Join(dir, OutputName(summary.GeneratedAt))

	f, err := build(records, summary)
	if err != nil {
		return "", serialization(path, err)
	}
	defer f.Close()

	tmpPath := filepath.Join(dir, "."+filepath.Base(path)+".tmp")

	// A leftover from an interrupted run would keep its old mode.
	_ = os.Remove(tmpPath)

	// Created with 0o666 so the umask decides the final mode.
	tmp, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o666) //nolint:gosec // Reports follow the umask
	if err != nil {
		return "", classify(path, err)
	}

	committed := false

	defer func() {
		if !committed {
			os.Remove(tmpPath)
		}
	}()

	if err := f.Write(tmp); err != nil {
		tmp.Close()

		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return "", classify(path, err)
		}

		return "", serialization(path, err)
	}

	if err := tmp.Close(); err != nil {
		return "", classify(path, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return "", classify(path, err)
	}

	committed = true

	return path, nil
}

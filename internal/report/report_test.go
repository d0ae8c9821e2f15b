package report_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/idelchi/sheetlist/internal/lister"
	"github.com/idelchi/sheetlist/internal/report"
)

var generated = time.Date(2025, 5, 20, 9, 30, 15, 0, time.Local)

func sampleRecords(dir string) []lister.FileRecord {
	mod := time.Date(2025, 1, 2, 3, 4, 5, 0, time.Local)

	return []lister.FileRecord{
		{Name: "a.xlsx", Size: 2048, SizeKB: 2, ModifiedAt: mod, FullPath: filepath.Join(dir, "a.xlsx")},
		{Name: "c.xls", Size: 512, SizeKB: 0.5, ModifiedAt: mod, FullPath: filepath.Join(dir, "c.xls")},
	}
}

func entries(t *testing.T, dir string) []string {
	t.Helper()

	list, err := os.ReadDir(dir)
	require.NoError(t, err)

	out := make([]string, 0, len(list))
	for _, e := range list {
		out = append(out, e.Name())
	}

	return out
}

func TestOutputName(t *testing.T) {
	assert.Equal(t, "Excel名称リスト_20250520_093015.xlsx", report.OutputName(generated))
}

func TestWrite_Workbook(t *testing.T) {
	dir := t.TempDir()
	records := sampleRecords(dir)
	summary := lister.ReportSummary{TotalCount: 2, GeneratedAt: generated, TargetDirectory: dir}

	path, err := report.Write(dir, records, summary)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Excel名称リスト_20250520_093015.xlsx"), path)
	assert.Equal(t, []string{filepath.Base(path)}, entries(t, dir))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{report.ListingSheet, report.SummarySheet}, f.GetSheetList())
	assert.Equal(t, 0, f.GetActiveSheetIndex())

	rows, err := f.GetRows(report.ListingSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, report.ListingHeader, rows[0])
	assert.Equal(t, []string{"a.xlsx", "2", "2025-01-02 03:04:05", filepath.Join(dir, "a.xlsx")}, rows[1])
	assert.Equal(t, []string{"c.xls", "0.5", "2025-01-02 03:04:05", filepath.Join(dir, "c.xls")}, rows[2])

	summaryRows, err := f.GetRows(report.SummarySheet)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		report.SummaryHeader,
		{report.LabelTotal, "2"},
		{report.LabelGenerated, "2025-05-20 09:30:15"},
		{report.LabelTarget, dir},
	}, summaryRows)
}

func TestWrite_ColumnWidths(t *testing.T) {
	dir := t.TempDir()
	records := sampleRecords(dir)
	summary := lister.ReportSummary{TotalCount: 2, GeneratedAt: generated, TargetDirectory: dir}

	path, err := report.Write(dir, records, summary)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	pathWidth := float64(min(utf8.RuneCountInString(records[0].FullPath)+2, 50))

	want := map[string]float64{
		"A": 8,  // "a.xlsx"
		"B": 13, // header "ファイルサイズ(KB)"
		"C": 21, // "2025-01-02 03:04:05"
		"D": pathWidth,
	}

	for col, w := range want {
		got, err := f.GetColWidth(report.ListingSheet, col)
		require.NoError(t, err)
		assert.InDelta(t, w, got, 0.01, "column %s", col)
	}
}

func TestWrite_WidthIsCapped(t *testing.T) {
	dir := t.TempDir()
	long := "a-very-long-workbook-name-that-keeps-going-and-going-and-going.xlsx"
	records := []lister.FileRecord{{Name: long, FullPath: filepath.Join(dir, long)}}
	summary := lister.ReportSummary{TotalCount: 1, GeneratedAt: generated, TargetDirectory: dir}

	path, err := report.Write(dir, records, summary)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetColWidth(report.ListingSheet, "A")
	require.NoError(t, err)
	assert.InDelta(t, float64(report.MaxColumnWidth), got, 0.01)
}

func TestWrite_EmptyListing(t *testing.T) {
	dir := t.TempDir()
	summary := lister.ReportSummary{GeneratedAt: generated, TargetDirectory: dir}

	path, err := report.Write(dir, nil, summary)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(report.ListingSheet)
	require.NoError(t, err)
	assert.Equal(t, [][]string{report.ListingHeader}, rows)

	summaryRows, err := f.GetRows(report.SummarySheet)
	require.NoError(t, err)
	require.Len(t, summaryRows, 4)
	assert.Equal(t, []string{report.LabelTotal, "0"}, summaryRows[1])
}

func TestWrite_ModeFollowsUmask(t *testing.T) {
	dir := t.TempDir()
	summary := lister.ReportSummary{GeneratedAt: generated, TargetDirectory: dir}

	// A stale temporary file with a restrictive mode must not leak into the report.
	stale := filepath.Join(dir, "."+report.OutputName(generated)+".tmp")
	require.NoError(t, os.WriteFile(stale, []byte("partial"), 0o600))

	path, err := report.Write(dir, sampleRecords(dir), summary)
	require.NoError(t, err)

	reference := filepath.Join(t.TempDir(), "reference")
	ref, err := os.OpenFile(reference, os.O_CREATE|os.O_WRONLY, 0o666)
	require.NoError(t, err)
	require.NoError(t, ref.Close())

	want, err := os.Stat(reference)
	require.NoError(t, err)

	got, err := os.Stat(path)
	require.NoError(t, err)

	assert.Equal(t, want.Mode().Perm(), got.Mode().Perm())
	assert.Equal(t, []string{filepath.Base(path)}, entries(t, dir))
}

func TestWrite_MissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "gone")
	summary := lister.ReportSummary{GeneratedAt: generated, TargetDirectory: dir}

	_, err := report.Write(dir, nil, summary)
	require.Error(t, err)

	var writeErr *report.WriteError
	require.ErrorAs(t, err, &writeErr)
	assert.Equal(t, report.KindDisk, writeErr.Kind)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), "disk error")
}

func TestWrite_PermissionDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}

	dir := t.TempDir()
	require.NoError(t, os.Chmod(dir, 0o500))
	t.Cleanup(func() { os.Chmod(dir, 0o700) })

	summary := lister.ReportSummary{GeneratedAt: generated, TargetDirectory: dir}

	_, err := report.Write(dir, sampleRecords(dir), summary)

	var writeErr *report.WriteError
	require.True(t, errors.As(err, &writeErr))
	assert.Equal(t, report.KindPermission, writeErr.Kind)
	assert.Empty(t, entries(t, dir))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "permission denied", report.KindPermission.String())
	assert.Equal(t, "disk error", report.KindDisk.String())
	assert.Equal(t, "serialization error", report.KindSerialization.String())
}

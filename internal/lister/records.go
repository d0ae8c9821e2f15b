package lister

import (
	"cmp"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
)

// TimeLayout is the layout used to render modification and generation times.
const TimeLayout = "2006-01-02 15:04:05"

// DefaultExtensions are the spreadsheet suffixes matched when none are given.
// They are checked in order and the first match wins.
//
//nolint:gochecknoglobals // Config constant
var DefaultExtensions = []string{".xlsx", ".xls", ".xlsm", ".xlsb"}

// FileRecord describes a single matching file.
type FileRecord struct {
	// Name is the base name of the file.
	Name string `json:"name"`
	// Size is the size in bytes.
	Size int64 `json:"size"`
	// SizeKB is Size / 1024 rounded to two decimals.
	SizeKB float64 `json:"size_kb"`
	// ModifiedAt is the modification time of the file.
	ModifiedAt time.Time `json:"modified_at"`
	// FullPath is the target directory joined with Name.
	FullPath string `json:"full_path"`
}

// Modified returns the modification time formatted with TimeLayout.
func (r FileRecord) Modified() string {
	return r.ModifiedAt.Format(TimeLayout)
}

// ReportSummary holds the metadata written next to the listing.
type ReportSummary struct {
	// TotalCount is the number of records found.
	TotalCount int `json:"total_count"`
	// GeneratedAt is the time the scan finished.
	GeneratedAt time.Time `json:"generated_at"`
	// TargetDirectory is the scanned path as it was passed in.
	TargetDirectory string `json:"target_directory"`
}

// Generated returns the generation time formatted with TimeLayout.
func (s ReportSummary) Generated() string {
	return s.GeneratedAt.Format(TimeLayout)
}

// Result is the outcome of a directory scan.
type Result struct {
	// Records are the matching files sorted by name.
	Records []FileRecord `json:"records"`
	// Summary describes the scan.
	Summary ReportSummary `json:"summary"`
	// Skipped is the number of entries that could not be inspected.
	Skipped int `json:"skipped"`
}

// Options configures a directory scan.
type Options struct {
	// Path is the directory to scan.
	Path string
	// Extensions to match, in priority order (empty = DefaultExtensions).
	Extensions []string
	// Now returns the current time (nil = time.Now).
	Now func() time.Time
	// Debug receives debug output when non-nil.
	Debug io.Writer
}

// SizeKB converts a byte count to kilobytes rounded to two decimals.
// Exact halves round to even, e.g. 128 bytes is 0.12.
func SizeKB(size int64) float64 {
	return math.RoundToEven(float64(size)/1024*100) / 100
}

// FormatKB renders a kilobyte value with at least one decimal, e.g. "2.0" or "0.98".
func FormatKB(kb float64) string {
	s := strconv.FormatFloat(kb, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}

	return s
}

// collector gathers records from fastwalk callbacks using a mutex.
type collector struct {
	mu      sync.Mutex
	records []FileRecord
	skipped int
}

// newCollector creates an empty collector.
func newCollector() *collector {
	return &collector{
		records: make([]FileRecord, 0),
	}
}

// addSkipped counts an entry that could not be inspected.
func (c *collector) addSkipped() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.skipped++
}

// add records a matching file.
func (c *collector) add(record FileRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.records = append(c.records, record)
}

// finalize sorts the collected records by name and builds the Result.
// Equal names keep their scan order; nothing is deduplicated.
func (c *collector) finalize(target string, now time.Time) *Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	records := slices.Clone(c.records)
	slices.SortStableFunc(records, func(a, b FileRecord) int {
		return cmp.Compare(a.Name, b.Name)
	})

	return &Result{
		Records: records,
		Summary: ReportSummary{
			TotalCount:      len(records),
			GeneratedAt:     now,
			TargetDirectory: target,
		},
		Skipped: c.skipped,
	}
}

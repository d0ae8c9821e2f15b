package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/idelchi/sheetlist/internal/lister"
	"github.com/idelchi/sheetlist/internal/report"
)

const (
	// RuleWidth is the width of the banner rules.
	RuleWidth = 60
	// TabSpacing is the number of spaces between tabwriter columns.
	TabSpacing = 1
)

// console prints operator messages. Markers are only shown on terminals.
type console struct {
	w        io.Writer
	decorate bool

	title   *color.Color
	success *color.Color
	fail    *color.Color
	warn    *color.Color
	label   *color.Color
}

func newConsole(w io.Writer, decorate bool) *console {
	return &console{
		w:        w,
		decorate: decorate,
		title:    color.New(color.Bold),
		success:  color.New(color.FgGreen),
		fail:     color.New(color.FgRed),
		warn:     color.New(color.FgYellow),
		label:    color.New(color.FgCyan),
	}
}

// mark returns the marker followed by a space, or nothing when undecorated.
func (c *console) mark(m string) string {
	if !c.decorate {
		return ""
	}

	return m + " "
}

func (c *console) rule() {
	fmt.Fprintln(c.w, strings.Repeat("=", RuleWidth))
}

func (c *console) banner() {
	c.rule()
	c.title.Fprintln(c.w, c.mark("🔍")+"Excelファイル名称リスト作成ツール")
	c.rule()
}

func (c *console) footer() {
	fmt.Fprintln(c.w)
	c.rule()
	fmt.Fprintln(c.w, "処理完了")
}

func (c *console) configError(err *lister.ConfigError) {
	c.fail.Fprintf(c.w, "フォルダが見つかりません: %s\n", err.Path)
}

func (c *console) writeError(err *report.WriteError) {
	c.fail.Fprintf(c.w, "%sエラーが発生しました (%s): %v\n", c.mark("❌"), err.Kind, err.Err)
}

// result prints the written report and the files it lists.
func (c *console) result(path string, res *lister.Result) error {
	c.success.Fprintf(c.w, "%sExcel名称リストを作成しました: %s\n", c.mark("✅"), filepath.Base(path))

	var total int64
	for _, r := range res.Records {
		total += r.Size
	}

	w := tabwriter.NewWriter(c.w, 0, 4, TabSpacing, ' ', 0)
	fmt.Fprintf(w, "%s%s\t%s\n", c.mark("📁"), c.label.Sprint("保存場所:"), path)
	fmt.Fprintf(w, "%s%s\t%d\n", c.mark("📊"), c.label.Sprint("検出されたExcelファイル数:"), res.Summary.TotalCount)
	fmt.Fprintf(w, "%s%s\t%s (%d bytes)\n", c.mark("💾"), c.label.Sprint("合計サイズ:"),
		humanize.IBytes(uint64(total)), total) //nolint:gosec // Sizes are never negative

	if err := w.Flush(); err != nil {
		return err
	}

	if res.Skipped > 0 {
		c.warn.Fprintf(c.w, "%s読み取れなかった項目: %d\n", c.mark("⚠️"), res.Skipped)
	}

	if len(res.Records) == 0 {
		c.fail.Fprintf(c.w, "%s指定フォルダにExcelファイルが見つかりませんでした\n", c.mark("❌"))

		return nil
	}

	fmt.Fprintf(c.w, "\n%s検出されたExcelファイル:\n", c.mark("📋"))

	for i, r := range res.Records {
		fmt.Fprintf(c.w, "  %2d. %s (%sKB)\n", i+1, r.Name, lister.FormatKB(r.SizeKB))
	}

	return nil
}

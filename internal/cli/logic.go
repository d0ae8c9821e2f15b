package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/idelchi/sheetlist/internal/lister"
	"github.com/idelchi/sheetlist/internal/report"
)

// streams are the standard streams of a run.
type streams struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

// isTerminal reports whether v is an *os.File attached to a terminal.
func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// waitForEnter blocks until a line (or EOF) is read from in.
func waitForEnter(out io.Writer, in io.Reader) {
	fmt.Fprint(out, "Enterキーを押して終了...")
	_, _ = bufio.NewReader(in).ReadString('\n')
}

func (c CLI) logic(ctx context.Context, options Options, s streams) error {
	con := newConsole(s.out, isTerminal(s.out))

	con.banner()

	defer func() {
		con.footer()

		if options.Pause && isTerminal(s.in) {
			waitForEnter(s.out, s.in)
		}
	}()

	scan := lister.Options{Path: options.Path, Now: c.now}
	if options.Debug {
		scan.Debug = s.errOut
	}

	result, err := lister.Run(ctx, scan)

	var cfgErr *lister.ConfigError

	switch {
	case errors.As(err, &cfgErr):
		con.configError(cfgErr)

		return nil
	case err != nil:
		return err
	}

	path, err := report.Write(result.Summary.TargetDirectory, result.Records, result.Summary)

	var writeErr *report.WriteError

	switch {
	case errors.As(err, &writeErr):
		con.writeError(writeErr)

		return nil
	case err != nil:
		return err
	}

	return con.result(path, result)
}

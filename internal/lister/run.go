package lister

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charlievieth/fastwalk"
)

// logger provides conditional debug output.
type logger struct {
	w io.Writer
}

// printf prints debug output if a writer is set.
func (l logger) printf(format string, args ...any) {
	if l.w != nil {
		fmt.Fprintf(l.w, format, args...)
	}
}

// matchExtension returns the first extension in exts that name ends with.
func matchExtension(name string, exts []string) (string, bool) {
	for _, ext := range exts {
		if strings.HasSuffix(name, ext) {
			return ext, true
		}
	}

	return "", false
}

// validateDirectory checks that path exists and is a directory.
func validateDirectory(path string) error {
	info, err := os.Stat(path)

	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ErrNotFound
	case err != nil:
		return err
	case !info.IsDir():
		return ErrNotDirectory
	}

	return nil
}

// Run lists the spreadsheet files directly inside opt.Path.
// Subdirectories are not descended into and hidden entries are ignored.
// A missing or non-directory target yields a *ConfigError and no scan.
//
// The returned records are sorted by name; the summary carries the count,
// the time of the scan and opt.Path exactly as given.
func Run(ctx context.Context, opt Options) (*Result, error) {
	log := logger{w: opt.Debug}

	target := opt.Path
	if target == "" {
		target = "."
	}

	if len(opt.Extensions) == 0 {
		opt.Extensions = DefaultExtensions
	}

	if opt.Now == nil {
		opt.Now = time.Now
	}

	root := filepath.Clean(target)

	if err := validateDirectory(root); err != nil {
		return nil, &ConfigError{Path: target, Err: err}
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving absolute path: %w", err)
	}

	log.printf("[debug]: scanning %s\n", absRoot)
	log.printf("[debug]: extensions: %s\n", strings.Join(opt.Extensions, ", "))

	collector := newCollector()

	// One worker keeps the walk serial.
	conf := &fastwalk.Config{
		Follow:     false,
		NumWorkers: 1,
	}

	//nolint:varnamelen // d is standard for DirEntry
	walkErr := fastwalk.Walk(conf, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.printf("[debug]: error accessing path %s: %v\n", path, err)
			collector.addSkipped()

			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if path == root {
			return nil
		}

		if d.IsDir() {
			log.printf("[debug]: skipping directory: %s\n", path)

			return filepath.SkipDir
		}

		name := d.Name()
		if strings.HasPrefix(name, ".") {
			log.printf("[debug]: skipping hidden file: %s\n", path)

			return nil
		}

		ext, ok := matchExtension(name, opt.Extensions)
		if !ok {
			return nil
		}

		var info fs.FileInfo

		switch {
		case d.Type().IsRegular():
			info, err = d.Info()
		case d.Type()&fs.ModeSymlink != 0:
			info, err = os.Stat(path)
		default:
			return nil
		}

		if err != nil {
			log.printf("[debug]: error reading %s: %v\n", path, err)
			collector.addSkipped()

			return nil //nolint:nilerr // Unreadable entries are skipped
		}

		if !info.Mode().IsRegular() {
			return nil
		}

		log.printf("[debug]: matched %s (%s)\n", name, ext)

		collector.add(FileRecord{
			Name:       name,
			Size:       info.Size(),
			SizeKB:     SizeKB(info.Size()),
			ModifiedAt: info.ModTime(),
			FullPath:   filepath.Join(absRoot, name),
		})

		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("listing %q: %w", target, walkErr)
	}

	return collector.finalize(target, opt.Now()), nil
}

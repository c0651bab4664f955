// Command zipstream streams a ZIP archive of the given files to stdout or
// a file, compressing as it reads. Input files are never buffered whole.
//
// Files can be listed as arguments or described by a YAML manifest that
// maps archive names to source paths:
//
//	entries:
//	  - path: ./build/report.pdf
//	    name: report.pdf
//	  - path: ./data/raw.csv
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/flate"

	"github.com/meigma/zipstream"
)

type config struct {
	output   string
	manifest string
	level    int
	verbose  bool
}

func parseFlags() (config, []string) {
	var cfg config
	flag.StringVar(&cfg.output, "o", "", "output file (default stdout)")
	flag.StringVar(&cfg.manifest, "manifest", "", "YAML manifest of entries to archive")
	flag.IntVar(&cfg.level, "level", flate.DefaultCompression, "DEFLATE compression level")
	flag.BoolVar(&cfg.verbose, "v", false, "log progress to stderr")
	flag.Parse()
	return cfg, flag.Args()
}

func main() {
	cfg, args := parseFlags()

	entries, err := collectEntries(cfg.manifest, args)
	if err != nil {
		log.Fatal(err)
	}
	if len(entries) == 0 {
		log.Fatal("nothing to archive: pass file paths or -manifest")
	}

	out := io.Writer(os.Stdout)
	if cfg.output != "" {
		f, createErr := os.Create(cfg.output)
		if createErr != nil {
			log.Fatal(createErr)
		}
		defer f.Close()
		out = f
	}

	opts := []zipstream.Option{zipstream.WithCompressionLevel(cfg.level)}
	if cfg.verbose {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		opts = append(opts, zipstream.WithLogger(logger))
	}

	if err := archive(out, entries, opts); err != nil {
		log.Fatal(err)
	}
}

// collectEntries merges manifest entries with positional paths. Positional
// paths are archived under their base name.
func collectEntries(manifestPath string, args []string) ([]Entry, error) {
	var entries []Entry
	if manifestPath != "" {
		m, err := loadManifest(manifestPath)
		if err != nil {
			return nil, err
		}
		entries = m.Entries
	}
	for _, path := range args {
		entries = append(entries, Entry{Path: path, Name: filepath.Base(path)})
	}
	return entries, nil
}

// archive streams every entry through a single writer in order.
func archive(out io.Writer, entries []Entry, opts []zipstream.Option) error {
	w, err := zipstream.NewWriter(out, opts...)
	if err != nil {
		return err
	}
	defer w.Close()

	for _, e := range entries {
		if err := addFile(w, e); err != nil {
			return fmt.Errorf("add %s: %w", e.Path, err)
		}
	}
	return w.Finish()
}

func addFile(w *zipstream.Writer, e Entry) error {
	f, err := os.Open(e.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("not a regular file: %s", e.Path)
	}

	if err := w.Create(e.Name, info.ModTime()); err != nil {
		return err
	}
	if _, err := io.Copy(w, f); err != nil {
		return err
	}
	return w.CloseEntry()
}

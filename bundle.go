package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/prantlf/concat-source-text/concat"
	"github.com/prantlf/concat-source-text/internal/config"
	"github.com/prantlf/concat-source-text/internal/errorList"
)

// maxReportedErrors limits the input failures reported by one run.
const maxReportedErrors = 10

// bundle joins the configured inputs into the output file. Every run starts
// from scratch; nothing is kept between runs except the list of files the
// last run read, which watch mode observes.
type bundle struct {
	config *config.Config
	// dir is the base of relative inputs and of the output.
	dir    string
	stdout io.Writer

	inputs []string
}

type inputFile struct {
	path     string
	source   string
	contents string
}

func newBundle(cfg *config.Config, dir string, stdout io.Writer) *bundle {
	return &bundle{config: cfg, dir: dir, stdout: stdout}
}

// abs resolves a configured path against the bundle directory.
func (b *bundle) abs(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(b.dir, path)
}

func (b *bundle) outputPath() string { return b.abs(b.config.Output) }

// outputDir is the directory the source identifiers are relative to.
func (b *bundle) outputDir() string {
	if b.config.Output == "" {
		return b.dir
	}
	return filepath.Dir(b.outputPath())
}

// mapPath returns where a map returned by the join is written, or an empty
// string if there is no place for it.
func (b *bundle) mapPath() string {
	switch {
	case b.config.SourceMap.MapFile != "":
		if filepath.IsAbs(b.config.SourceMap.MapFile) {
			return b.config.SourceMap.MapFile
		}
		return filepath.Join(b.outputDir(), filepath.FromSlash(b.config.SourceMap.MapFile))
	case b.config.Output != "":
		return b.outputPath() + ".map"
	default:
		return ""
	}
}

// expand resolves the input patterns to files. Files keep the order of the
// patterns; a file matched by more than one pattern is read once. A failing
// pattern repeated in a row is reported once.
func (b *bundle) expand() ([]string, error) {
	var errs errorList.ErrorList
	var paths []string
	seen := map[string]bool{}
	for _, pattern := range b.config.Inputs {
		matches, err := doublestar.FilepathGlob(b.abs(pattern))
		if err != nil {
			errs = errs.AppendDistinct(fmt.Errorf("%s: %w", pattern, err))
			continue
		}
		if len(matches) == 0 {
			errs = errs.AppendDistinct(fmt.Errorf("%s: no input files match", pattern))
			continue
		}
		for _, match := range matches {
			if info, err := os.Stat(match); err == nil && info.IsDir() {
				continue
			}
			if !seen[match] {
				seen[match] = true
				paths = append(paths, match)
			}
		}
	}
	return paths, errs.Trim(maxReportedErrors).ErrOrNil()
}

// read loads the input files concurrently. Failures of all files are
// reported together.
func (b *bundle) read(ctx context.Context, paths []string) ([]inputFile, error) {
	outDir := b.outputDir()
	files := make([]inputFile, len(paths))
	errs := make([]error, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				errs[i] = err
				return nil
			}
			source := path
			if rel, err := filepath.Rel(outDir, path); err == nil {
				source = rel
			}
			files[i] = inputFile{path: path, source: filepath.ToSlash(source), contents: string(data)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var list errorList.ErrorList
	for _, err := range errs {
		list = list.Append(err)
	}
	if err := list.Trim(maxReportedErrors).ErrOrNil(); err != nil {
		return nil, err
	}
	return files, nil
}

// joinOptions completes the configured options with the ways the command
// finds external maps of its inputs.
func (b *bundle) joinOptions(files []inputFile) concat.Options {
	opts := b.config.JoinOptions()
	if opts.SourceMap == nil {
		return opts
	}
	if opts.SourceMap.MapDir != "" {
		opts.SourceMap.MapDir = b.abs(opts.SourceMap.MapDir)
		return opts
	}
	dirs := make(map[string]string, len(files))
	for _, f := range files {
		dirs[f.source] = filepath.Dir(f.path)
	}
	opts.SourceMap.LocateSourceMap = func(mapFile, source string) string {
		return dirs[source]
	}
	return opts
}

// run joins the inputs once and writes the results.
func (b *bundle) run(ctx context.Context) error {
	paths, err := b.expand()
	if err != nil {
		return err
	}
	b.inputs = paths

	files, err := b.read(ctx, paths)
	if err != nil {
		return err
	}

	c := concat.New()
	for _, f := range files {
		c.Append(f.contents, f.source)
	}
	result, err := c.Join(b.joinOptions(files))
	if err != nil {
		return err
	}

	if err := b.writeText(result.Text); err != nil {
		return err
	}
	if result.Map != nil {
		if err := b.writeMap(result.Map); err != nil {
			return err
		}
	}
	log.WithField("output", b.config.Output).Infof("Joined %d files.", len(files))
	return nil
}

func (b *bundle) writeText(text string) error {
	if b.config.Output == "" {
		_, err := io.WriteString(b.stdout, text)
		return err
	}
	path := b.outputPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o777); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(text), 0o666)
}

func (b *bundle) writeMap(m *concat.SourceMap) (err error) {
	path := b.mapPath()
	if path == "" {
		log.Warn("The source map was not written; set an output or a map file.")
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o777); err != nil {
		return err
	}
	mapFile, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := mapFile.Close(); err == nil {
			err = cerr
		}
	}()
	_, err = m.WriteTo(mapFile)
	return err
}

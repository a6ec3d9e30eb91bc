package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/prantlf/concat-source-text/concat"
	"github.com/prantlf/concat-source-text/internal/config"
	"github.com/prantlf/concat-source-text/internal/errorList"
)

const (
	appName = "concat-source-text"
	Version = "1.0.0"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd(os.Stdout).ExecuteContext(ctx)
	stop()
	os.Exit(handleError(err, os.Stderr))
}

// handleError prints err and returns the process exit code. Every entry of
// an error list gets its own line.
func handleError(err error, stderr io.Writer) int {
	var list errorList.ErrorList
	switch {
	case err == nil:
		return 0
	case errors.As(err, &list):
		for _, entry := range list {
			printError(stderr, entry)
		}
		return 1
	default:
		printError(stderr, err)
		return 1
	}
}

func printError(w io.Writer, err error) {
	var mapErr *concat.MapError
	if errors.As(err, &mapErr) && mapErr.MapFile != "" {
		mapErr.MapFile = makeRel(mapErr.MapFile)
	}
	fmt.Fprintln(w, err)
}

// makeRel shortens paths under the working directory.
func makeRel(name string) string {
	wd, err := os.Getwd()
	if err != nil {
		return name
	}
	if relname, err := filepath.Rel(wd, name); err == nil && filepath.IsAbs(name) {
		if relname[0] != '.' {
			return "." + string(filepath.Separator) + relname
		}
		return relname
	}
	return name
}

func rootCmd(stdout io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Concatenates text files and their source maps",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	cmd.SetOut(stdout)

	cmd.AddCommand(joinCmd(stdout))
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
		},
	})
	return cmd
}

// joinFlags are the command-line counterparts of the config file values.
type joinFlags struct {
	configPath       string
	output           string
	separator        string
	sourceMap        bool
	inline           bool
	external         bool
	separate         bool
	mapFile          string
	sourcesContent   bool
	multilineComment bool
	readSourceMaps   bool
	mapDir           string
	watch            bool
	verbose          bool
}

func joinCmd(stdout io.Writer) *cobra.Command {
	var f joinFlags
	cmd := &cobra.Command{
		Use:   "join [patterns...]",
		Short: "Join files matching the patterns, optionally with a source map",
		Long: `Join concatenates the files matching the patterns in the order of the
patterns. Patterns support ** to match any number of directories.

Settings are read from the file given by --config or from concat.yaml found
in the working directory or above it. Flags override the file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := os.Getwd()
			if err != nil {
				return err
			}
			cfg, err := loadConfig(f.configPath, dir)
			if err != nil {
				return err
			}
			applyFlags(cfg, cmd.Flags(), &f, args)
			if err := cfg.Validate(); err != nil {
				return err
			}

			switch {
			case f.verbose:
				log.SetLevel(log.DebugLevel)
			case cfg.Watch.Enabled:
				log.SetLevel(log.InfoLevel)
			default:
				log.SetLevel(log.WarnLevel)
			}

			b := newBundle(cfg, dir, stdout)
			if cfg.Watch.Enabled {
				return watch(cmd.Context(), b)
			}
			return b.run(cmd.Context())
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.configPath, "config", "c", "", "config file path (YAML)")
	flags.StringVarP(&f.output, "output", "o", "", "output file; standard output if empty")
	flags.StringVar(&f.separator, "separator", "", "text inserted between the files")
	flags.BoolVar(&f.sourceMap, "source-map", false, "generate a source map")
	flags.BoolVar(&f.inline, "inline", true, "embed the source map as a data URL comment")
	flags.BoolVar(&f.external, "external", false, "refer to the source map file by a comment")
	flags.BoolVar(&f.separate, "separate", true, "write the source map file without a comment, unless inline")
	flags.StringVar(&f.mapFile, "map-file", "", "source map file name; defaults to the output with .map")
	flags.BoolVar(&f.sourcesContent, "sources-content", false, "store the input texts in the source map")
	flags.BoolVar(&f.multilineComment, "multiline-comment", false, "use /*# ... */ instead of //# ... comments")
	flags.BoolVar(&f.readSourceMaps, "read-source-maps", false, "merge source maps attached to the inputs")
	flags.StringVar(&f.mapDir, "map-dir", "", "directory with source maps of the inputs; defaults to their own directories")
	flags.BoolVarP(&f.watch, "watch", "w", false, "join again whenever the inputs change")
	flags.BoolVarP(&f.verbose, "verbose", "v", false, "log what is being done")
	return cmd
}

// loadConfig reads the explicit config file, or the one found from dir up,
// or returns the defaults.
func loadConfig(path, dir string) (*config.Config, error) {
	if path == "" {
		path = config.Find(dir)
	}
	if path == "" {
		return config.DefaultConfig(), nil
	}
	log.WithField("config", path).Debug("Loading configuration.")
	return config.LoadFromFile(path)
}

// applyFlags overrides config values by the flags set on the command line.
// Any source map flag enables the source map.
func applyFlags(cfg *config.Config, flags *pflag.FlagSet, f *joinFlags, args []string) {
	if len(args) > 0 {
		cfg.Inputs = args
	}
	if flags.Changed("output") {
		cfg.Output = f.output
	}
	if flags.Changed("separator") {
		cfg.Separator = f.separator
	}
	if flags.Changed("watch") {
		cfg.Watch.Enabled = f.watch
	}

	s := &cfg.SourceMap
	mapFlagSet := false
	visit := func(name string, apply func()) {
		if flags.Changed(name) {
			apply()
			mapFlagSet = true
		}
	}
	visit("inline", func() { s.Inline = concat.Bool(f.inline) })
	visit("external", func() { s.External = f.external })
	visit("separate", func() { s.Separate = concat.Bool(f.separate) })
	visit("map-file", func() { s.MapFile = f.mapFile })
	visit("sources-content", func() { s.SourcesContent = f.sourcesContent })
	visit("multiline-comment", func() { s.MultilineComment = f.multilineComment })
	visit("read-source-maps", func() { s.ReadSourceMaps = f.readSourceMaps })
	visit("map-dir", func() { s.MapDir = f.mapDir })
	if mapFlagSet {
		s.Enabled = true
	}
	if flags.Changed("source-map") {
		s.Enabled = f.sourceMap
	}
}

package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/Masterminds/semver/v3"
	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/cpp2-lang/cpp2go/internal/cli"
	"github.com/cpp2-lang/cpp2go/internal/config"
	"github.com/cpp2-lang/cpp2go/internal/lexer"
	"github.com/cpp2-lang/cpp2go/internal/parser"
	"github.com/cpp2-lang/cpp2go/internal/source"
)

var parseCmd = &cobra.Command{
	Use:   "parse [files...]",
	Short: "Parse Cpp2 source files and report diagnostics",
	Long: `Parse lexes and parses each Cpp2 source file into a parse tree and
reports diagnostics as file:line:col: message on stderr. With --print-ast
the indented parse tree is written to stdout. With --watch the files are
re-parsed whenever they change on disk, until interrupted.`,
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("config", "", "path to a .cpp2go.yaml configuration file")
	parseCmd.Flags().Bool("print-ast", false, "print the parse tree of each file")
	parseCmd.Flags().Bool("watch", false, "re-parse files when they change")
	parseCmd.Flags().Int("jobs", 0, "how many files to parse concurrently (0 = one per CPU)")
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if cfg.RequireVersion != "" {
		if err := checkVersion(cfg.RequireVersion); err != nil {
			return err
		}
	}

	files := args
	if len(files) == 0 {
		files = cfg.Sources
	}
	if len(files) == 0 {
		return errors.New("no input files (name them on the command line or in the config's sources)")
	}

	ok, err := parseAll(files, cfg)
	if err != nil {
		return err
	}

	if cfg.Watch {
		return watch(files, cfg)
	}
	if !ok {
		return errors.New("parsing failed")
	}
	return nil
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	explicit := path != ""
	if !explicit {
		path = config.DefaultFileName
	}
	cfg, err := config.Load(path, explicit)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("print-ast") {
		cfg.PrintAST, _ = cmd.Flags().GetBool("print-ast")
	}
	if cmd.Flags().Changed("watch") {
		cfg.Watch, _ = cmd.Flags().GetBool("watch")
	}
	if cmd.Flags().Changed("jobs") {
		cfg.Jobs, _ = cmd.Flags().GetInt("jobs")
	}
	return cfg, nil
}

// checkVersion refuses to run when the tool's own version does not
// satisfy the configured constraint.
func checkVersion(constraint string) error {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return errors.Wrapf(err, "invalid require_version %q", constraint)
	}
	v, err := semver.NewVersion(cli.Version)
	if err != nil {
		return errors.Wrapf(err, "invalid tool version %q", cli.Version)
	}
	if !c.Check(v) {
		return errors.Errorf("cpp2go %s does not satisfy required version %q", cli.Version, constraint)
	}
	return nil
}

// fileResult is the outcome of parsing one file.
type fileResult struct {
	diags []source.Error
	tree  bytes.Buffer
	ok    bool
}

// parseAll parses the files concurrently, bounded by cfg.Jobs, and prints
// results in input order. It returns false when any file failed to parse.
func parseAll(files []string, cfg *config.Config) (bool, error) {
	jobs := cfg.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	results := make([]fileResult, len(files))
	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(jobs)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			return parseFile(file, cfg.PrintAST, &results[i])
		})
	}
	if err := g.Wait(); err != nil {
		return false, err
	}

	allOK := true
	for i, file := range files {
		for _, d := range results[i].diags {
			fmt.Fprintf(os.Stderr, "%s:%s\n", file, d.Error())
		}
		if cfg.PrintAST {
			os.Stdout.Write(results[i].tree.Bytes())
		}
		if !results[i].ok {
			allOK = false
		}
	}
	return allOK, nil
}

func parseFile(path string, printAST bool, res *fileResult) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", path)
	}

	tokens := lexer.Tokenize(string(data), &res.diags)
	p := parser.New(&res.diags)
	res.ok = p.Parse(tokens) && len(res.diags) == 0

	if printAST {
		p.Visit(parser.NewParseTreePrinter(&res.tree))
	}
	return nil
}

// watch re-parses a file whenever a write to it is reported, until the
// process is interrupted.
func watch(files []string, cfg *config.Config) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create watcher")
	}
	defer watcher.Close()

	watched := make(map[string]bool, len(files))
	for _, f := range files {
		if err := watcher.Add(f); err != nil {
			return errors.Wrapf(err, "failed to watch %s", f)
		}
		watched[f] = true
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(os.Stderr, "watching %d file(s), interrupt to stop\n", len(files))
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !watched[ev.Name] || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if _, err := parseAll([]string{ev.Name}, cfg); err != nil {
				fmt.Fprintf(os.Stderr, "%v\n", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
		}
	}
}

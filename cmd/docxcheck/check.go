// Copyright 2026 Suffolk University Legal Innovation and Technology Lab
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/SuffolkLITLab/ALActions/pkg/core/config"
	"github.com/SuffolkLITLab/ALActions/pkg/core/logging"
	"github.com/SuffolkLITLab/ALActions/pkg/docx"
	"github.com/SuffolkLITLab/ALActions/pkg/report"
	"github.com/SuffolkLITLab/ALActions/pkg/validator"
)

var (
	checkConfigFile     string
	checkOutputDir      string
	checkSummaryPath    string
	checkWorkers        int
	checkLogLevel       string
	checkFailOnWarnings bool
)

// checkCmd represents the check command.
var checkCmd = &cobra.Command{
	Use:   "check [path ...]",
	Short: "Check DOCX files for template expression errors",
	Long: `Check DOCX files for template expression errors and unknown filters.

Each path may be a single DOCX file or a directory, which is walked
recursively for *.docx files. Without arguments the current directory
is checked.

Every file gets one status line on stdout (OK, WARNINGS, or ERRORS).
Files with findings additionally get an HTML report page under the
output directory, and the whole run is summarized in a Markdown file
suitable for a CI job summary.

Example usage:
  # Check every DOCX under the current directory
  docxcheck check

  # Check specific templates with custom artifact locations
  docxcheck check templates/ --output-dir artifacts --summary artifacts/summary.md

  # Treat unknown filters as fatal
  docxcheck check templates/ --fail-on-warnings`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVarP(&checkConfigFile, "config", "c", "",
		"Path to a YAML config file with known/stub filter lists and defaults")
	checkCmd.Flags().StringVar(&checkOutputDir, "output-dir", "",
		"Directory for generated HTML artifacts (default: jinja_validation)")
	checkCmd.Flags().StringVar(&checkSummaryPath, "summary", "",
		"Path of the Markdown summary file (default: jinja_validation_summary.md)")
	checkCmd.Flags().IntVar(&checkWorkers, "workers", 0,
		"Number of files validated concurrently (default: 4)")
	checkCmd.Flags().StringVar(&checkLogLevel, "log-level", "",
		"Log level: ERROR, WARNING, INFO, DEBUG (default: INFO)")
	checkCmd.Flags().BoolVar(&checkFailOnWarnings, "fail-on-warnings", false,
		"Exit non-zero when unknown filters are detected")

	rootCmd.AddCommand(checkCmd)
}

// fileOutcome is the validation result of one document.
type fileOutcome struct {
	path     string
	errors   string
	warnings string
	skipped  bool
	skipNote string
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigFile(checkConfigFile)
	if err != nil {
		return err
	}
	applyFlagOverrides(cfg)
	if err := config.ValidateStructure(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := logging.NewLogger(cfg.Logging.Level)
	slog.SetDefault(logger)

	runID := uuid.NewString()
	gomemlimit := "unlimited"
	if limit := debug.SetMemoryLimit(-1); limit != math.MaxInt64 {
		gomemlimit = fmt.Sprintf("%.2f MiB", float64(limit)/(1024*1024))
	}
	logger.Info("docxcheck starting",
		"run_id", runID,
		"workers", cfg.Validation.Workers,
		"output_dir", cfg.Report.OutputDir,
		"gomaxprocs", runtime.GOMAXPROCS(0),
		"gomemlimit", gomemlimit)

	files, err := collectFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		message := "No DOCX files found under the given paths."
		fmt.Println(message)
		return os.WriteFile(cfg.Report.Summary, []byte(message+"\n"), 0o644)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	outcomes, err := validateFiles(ctx, cfg, logger, files)
	if err != nil {
		return err
	}
	return writeResults(cfg, logger, outcomes)
}

// applyFlagOverrides layers explicit CLI flags over the loaded config.
func applyFlagOverrides(cfg *config.Config) {
	if checkOutputDir != "" {
		cfg.Report.OutputDir = checkOutputDir
	}
	if checkSummaryPath != "" {
		cfg.Report.Summary = checkSummaryPath
	}
	if checkWorkers > 0 {
		cfg.Validation.Workers = checkWorkers
	}
	if checkLogLevel != "" {
		cfg.Logging.Level = checkLogLevel
	}
	if checkFailOnWarnings {
		cfg.Validation.FailOnWarnings = true
	}
}

// collectFiles resolves the command arguments to a list of DOCX files.
// Directories are walked recursively; explicit file arguments are taken as
// given. Word lock files (~$foo.docx) are skipped.
func collectFiles(args []string) ([]string, error) {
	if len(args) == 0 {
		args = []string{"."}
	}
	var files []string
	seen := make(map[string]struct{})
	add := func(path string) {
		if _, dup := seen[path]; dup {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("reading path %s: %w", arg, err)
		}
		if !info.IsDir() {
			add(arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			name := d.Name()
			if strings.HasPrefix(name, "~$") || !strings.EqualFold(filepath.Ext(name), ".docx") {
				return nil
			}
			add(path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", arg, err)
		}
	}
	return files, nil
}

// validateFiles runs validation over all files with a bounded worker pool.
// Results keep the input order regardless of completion order.
func validateFiles(ctx context.Context, cfg *config.Config, logger *slog.Logger, files []string) ([]fileOutcome, error) {
	v := validator.New(
		validator.WithMaxIterations(cfg.Validation.MaxIterations),
		validator.WithKnownFilters(cfg.Validation.KnownFilters...),
		validator.WithStubFilters(cfg.Validation.StubFilters...),
		validator.WithLogger(logger),
	)

	outcomes := make([]fileOutcome, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Validation.Workers)

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			outcome := fileOutcome{path: path}
			text, err := docx.ExtractFile(path)
			if err != nil {
				logger.Warn("skipping unreadable file", "file", path, "error", err)
				outcome.skipped = true
				outcome.skipNote = err.Error()
			} else {
				result := v.ValidateSource(text)
				outcome.errors = result.ErrorMessage()
				outcome.warnings = result.WarningsMessage()
			}
			outcomes[i] = outcome
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// writeResults prints per-file status lines, emits the HTML and Markdown
// artifacts, and turns findings into the process exit status.
func writeResults(cfg *config.Config, logger *slog.Logger, outcomes []fileOutcome) error {
	htmlWriter, err := report.NewHTMLWriter(cfg.Report.OutputDir)
	if err != nil {
		return err
	}
	summary := report.NewSummary()

	invalid := 0
	warned := 0
	for _, outcome := range outcomes {
		switch {
		case outcome.skipped:
			fmt.Printf("%s: SKIPPED (%s)\n", outcome.path, outcome.skipNote)
			summary.AddSkipped(outcome.path)

		case outcome.errors == "" && outcome.warnings == "":
			fmt.Printf("%s: OK\n", outcome.path)

		default:
			status := "WARNINGS"
			if outcome.errors != "" {
				status = "ERRORS"
				invalid++
			} else {
				warned++
			}
			fmt.Printf("%s: %s\n", outcome.path, status)

			message := report.CombineMessages(outcome.errors, outcome.warnings)
			if _, err := htmlWriter.WriteFileReport(outcome.path, message); err != nil {
				return err
			}
			summary.AddFile(outcome.path, outcome.errors, outcome.warnings)
		}
	}

	if err := htmlWriter.WriteIndex(); err != nil {
		return err
	}
	if err := summary.WriteFile(cfg.Report.Summary); err != nil {
		return err
	}

	logger.Info("validation finished",
		"files", len(outcomes),
		"with_errors", invalid,
		"with_warnings", warned)

	if invalid > 0 {
		return fmt.Errorf("%d file(s) contain invalid template expressions", invalid)
	}
	if cfg.Validation.FailOnWarnings && warned > 0 {
		return fmt.Errorf("%d file(s) produced warnings and --fail-on-warnings is set", warned)
	}
	return nil
}

// Copyright 2025 Naren Yellavula
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
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/cybrota/avlbench/bench"
	"github.com/cybrota/avlbench/dataset"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

const banner = `
 █████╗ ██╗   ██╗██╗     ██████╗ ███████╗███╗   ██╗ ██████╗██╗  ██╗
██╔══██╗██║   ██║██║     ██╔══██╗██╔════╝████╗  ██║██╔════╝██║  ██║
███████║██║   ██║██║     ██████╔╝█████╗  ██╔██╗ ██║██║     ███████║
██╔══██║╚██╗ ██╔╝██║     ██╔══██╗██╔══╝  ██║╚██╗██║██║     ██╔══██║
██║  ██║ ╚████╔╝ ███████╗██████╔╝███████╗██║ ╚████║╚██████╗██║  ██║
╚═╝  ╚═╝  ╚═══╝  ╚══════╝╚═════╝ ╚══════╝╚═╝  ╚═══╝ ╚═════╝╚═╝  ╚═╝
Pointer-linked vs arena-backed AVL trees, benchmarked [Version: %s]
`

// app is the state shared by every command once flags are parsed.
type app struct {
	configFlag string
	logLevel   string

	configPath string
	config     *Config
	logger     *slog.Logger
	datasets   *DatasetCache
}

func (a *app) setup(cmd *cobra.Command) error {
	logger, err := newLogger(cmd.ErrOrStderr(), a.logLevel)
	if err != nil {
		return err
	}
	a.logger = logger

	path, err := getConfigPath(a.configFlag)
	if err != nil {
		logger.Warn("cannot resolve home directory, using defaults", "error", err)
		a.config = defaultConfig()
	} else {
		a.configPath = path
		a.config = LoadConfig(path, logger)
	}
	a.datasets = NewDatasetCache(logger)
	return nil
}

func (a *app) registry() *bench.Registry {
	return bench.NewRegistry(a.config.ArenaOptions(a.logger)...)
}

func (a *app) rng(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	a.logger.Debug("random source", "seed", seed)
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func newRootCmd() *cobra.Command {
	a := &app{}
	logo := fmt.Sprintf(banner, version)

	rootCmd := &cobra.Command{
		Use:           "avlbench",
		Version:       version,
		Short:         "Benchmark pointer-linked and arena-backed AVL trees",
		Long:          logo,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.configFlag, "config", "", "config file (default ~/"+configFileName+")")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "log level: debug, info, warn, error")

	rootCmd.AddCommand(
		newGenerateCmd(a),
		newBenchCmd(a),
		newGraphCmd(a),
		newShowCmd(a),
		newExploreCmd(a),
		newConfigCmd(a),
		&cobra.Command{
			Use:   "usage",
			Short: "Print avlbench usage guide",
			Long:  fmt.Sprintf("%s\n%s", logo, "Usage displays the avlbench usage guide"),
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintln(cmd.OutOrStdout(), getHelpMessage())
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print avlbench version",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintln(cmd.OutOrStdout(), version)
			},
		},
	)
	return rootCmd
}

func newGenerateCmd(a *app) *cobra.Command {
	var dir string
	var spread int
	var seed uint64

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write random key datasets",
		Long:  "Generate writes one dataset_<name>.txt per configured size, each holding distinct random keys.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.config
			if cmd.Flags().Changed("dir") {
				cfg.Datasets.Dir = dir
			}
			if cmd.Flags().Changed("spread") {
				cfg.Datasets.Spread = spread
			}
			if cmd.Flags().Changed("seed") {
				cfg.Datasets.Seed = seed
			}

			paths, err := dataset.GenerateAll(cfg.Datasets.Dir, cfg.DatasetSpecs(), cfg.Datasets.Spread, a.rng(cfg.Datasets.Seed))
			if err != nil {
				return err
			}
			for _, path := range paths {
				a.logger.Info("dataset written", "path", path)
				fmt.Fprintf(cmd.OutOrStdout(), "✅ %s\n", path)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "output directory (default from config)")
	cmd.Flags().IntVar(&spread, "spread", 0, "keys are drawn from [1, size*spread)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed, 0 for a fresh one")
	return cmd
}

func newBenchCmd(a *app) *cobra.Command {
	var variants, ops []string
	var verify, noMemory, noProgress bool
	var resultsPath, metricsPath string

	cmd := &cobra.Command{
		Use:   "bench [dataset files...]",
		Short: "Time tree operations over datasets",
		Long:  "Bench runs every operation for each variant and dataset, writes the per-call samples to a results file and prints a summary.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.config
			if cmd.Flags().Changed("variant") {
				cfg.Bench.Variants = variants
			}
			if cmd.Flags().Changed("op") {
				cfg.Bench.Operations = ops
			}
			if cmd.Flags().Changed("results") {
				cfg.Bench.Results = resultsPath
			}
			if cmd.Flags().Changed("metrics") {
				cfg.Bench.Metrics = metricsPath
			}
			if verify {
				cfg.Bench.Verify = true
			}
			if noMemory {
				cfg.Bench.SampleMemory = false
			}

			paths := args
			if len(paths) == 0 {
				paths = cfg.DatasetPaths()
			}
			datasets, err := a.datasets.LoadAll(paths)
			if err != nil {
				return fmt.Errorf("%w (run `avlbench generate` first)", err)
			}
			selected, err := a.registry().Select(cfg.Bench.Variants)
			if err != nil {
				return err
			}
			operations, err := cfg.operations()
			if err != nil {
				return err
			}

			opts := bench.Options{
				Datasets:     datasets,
				Variants:     selected,
				Operations:   operations,
				SampleMemory: cfg.Bench.SampleMemory,
				Verify:       cfg.Bench.Verify,
				Logger:       a.logger,
			}
			if !noProgress {
				opts.Progress = cmd.ErrOrStderr()
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			report, err := bench.Run(ctx, opts)
			if err != nil {
				return err
			}

			if err := report.WriteResultsFile(cfg.Bench.Results); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n📊 Run %s\n", report.RunID)
			for _, line := range summaryLines(report) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintf(out, "✅ Results written to %s\n", cfg.Bench.Results)

			if cfg.Bench.Metrics != "" {
				if err := writeMetricsFile(report, cfg.Bench.Metrics); err != nil {
					return err
				}
				fmt.Fprintf(out, "✅ Metrics written to %s\n", cfg.Bench.Metrics)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&variants, "variant", nil, "variants to run (reference, arena)")
	cmd.Flags().StringSliceVar(&ops, "op", nil, "operations to run in order (insert, search, delete)")
	cmd.Flags().BoolVar(&verify, "verify", false, "validate the tree after every mutation")
	cmd.Flags().BoolVar(&noMemory, "no-memory", false, "skip per-call heap sampling")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "hide the progress bar")
	cmd.Flags().StringVar(&resultsPath, "results", "", "results file (default from config)")
	cmd.Flags().StringVar(&metricsPath, "metrics", "", "also write Prometheus text metrics to this file")
	return cmd
}

func writeMetricsFile(report *bench.Report, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create metrics: %w", err)
	}
	if err := report.WriteMetrics(file); err != nil {
		file.Close()
		return fmt.Errorf("write metrics: %w", err)
	}
	return file.Close()
}

func newGraphCmd(a *app) *cobra.Command {
	var summaryOnly bool

	cmd := &cobra.Command{
		Use:   "graph [results file]",
		Short: "Chart mean latencies from a results file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.config.Bench.Results
			if len(args) == 1 {
				path = args[0]
			}
			report, err := bench.ParseResultsFile(path)
			if err != nil {
				return err
			}
			if summaryOnly {
				for _, line := range summaryLines(report) {
					fmt.Fprintln(cmd.OutOrStdout(), line)
				}
				return nil
			}
			return runGraph(report, path, a.logger)
		},
	}
	cmd.Flags().BoolVar(&summaryOnly, "summary", false, "print the summary table instead of opening the chart")
	return cmd
}

// treeInput resolves keys from arguments or a dataset file.
func (a *app) treeInput(args []string, datasetPath string) ([]int64, error) {
	if datasetPath != "" {
		if len(args) > 0 {
			return nil, fmt.Errorf("give keys or --dataset, not both")
		}
		return a.datasets.Load(datasetPath)
	}
	return parseKeys(args)
}

func newShowCmd(a *app) *cobra.Command {
	var variantName, format, datasetPath string

	cmd := &cobra.Command{
		Use:   "show [keys...]",
		Short: "Build a tree and print it",
		Long:  "Show inserts the keys in order and prints the resulting tree as text, an outline or Graphviz DOT.",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := parseRenderFormat(format)
			if err != nil {
				return err
			}
			keys, err := a.treeInput(args, datasetPath)
			if err != nil {
				return err
			}
			variant, err := a.registry().Get(variantName)
			if err != nil {
				return err
			}

			tree := variant.New()
			if err := insertAll(tree, keys); err != nil {
				return err
			}
			if err := tree.Validate(); err != nil {
				return err
			}
			out, err := renderIndex(tree, f, variant.Label(), false)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&variantName, "variant", "arena", "tree variant (reference, arena)")
	cmd.Flags().StringVar(&format, "format", string(formatText), "output format: text, outline, dot")
	cmd.Flags().StringVar(&datasetPath, "dataset", "", "read keys from a dataset file")
	return cmd
}

func newExploreCmd(a *app) *cobra.Command {
	var variantName, datasetPath string

	cmd := &cobra.Command{
		Use:   "explore [keys...]",
		Short: "Edit a tree interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := a.treeInput(args, datasetPath)
			if err != nil {
				return err
			}
			variant, err := a.registry().Get(variantName)
			if err != nil {
				return err
			}
			return runExplore(variant, keys)
		},
	}
	cmd.Flags().StringVar(&variantName, "variant", "arena", "tree variant (reference, arena)")
	cmd.Flags().StringVar(&datasetPath, "dataset", "", "start from the keys in a dataset file")
	return cmd
}

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or initialise the configuration file",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "init",
			Short: "Write the default configuration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if a.configPath == "" {
					return fmt.Errorf("no config path; pass --config")
				}
				if _, err := os.Stat(a.configPath); err == nil {
					return fmt.Errorf("%s already exists", a.configPath)
				}
				if err := createDefaultConfigFile(a.configPath); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✅ Created default configuration at: %s\n", a.configPath)
				return nil
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective configuration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return displaySettings(cmd.OutOrStdout(), a.configPath, a.config)
			},
		},
	)
	return cmd
}

func main() {
	ctx := context.Background()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s❌ %v%s\n", Error, err, Reset)
		os.Exit(1)
	}
}

// Package main provides the CLI entrypoint for benford.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rlvaugh/benford/internal/benford"
	"github.com/rlvaugh/benford/internal/config"
	"github.com/rlvaugh/benford/internal/dataset"
	"github.com/rlvaugh/benford/internal/model"
	"github.com/rlvaugh/benford/internal/prompt"
	"github.com/rlvaugh/benford/internal/report"
	"github.com/rlvaugh/benford/internal/store"
)

const (
	defaultHeight = 12
	defaultLast   = 20

	stdinSource = "stdin"
)

var (
	checkHeight  int
	checkWidth   int
	checkNoChart bool
	checkColor   bool
	checkNoSave  bool

	historySource string
	historySince  string
	historyLast   int
	historyRun    int64
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, prompt.ErrSourceExhausted) {
			logErrln("\nEnough! Stop and check file name. Terminating.")
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "benford [file]",
		Short:         "Check count data against Benford's Law",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runCheckCmd,
	}

	rootCmd.Flags().IntVar(&checkHeight, "height", defaultHeight, "chart height in rows")
	rootCmd.Flags().IntVar(&checkWidth, "width", 0, "chart width in columns (default: terminal width)")
	rootCmd.Flags().BoolVar(&checkNoChart, "no-chart", false, "skip the bar chart")
	rootCmd.Flags().BoolVar(&checkColor, "color", false, "force color output")
	rootCmd.Flags().BoolVar(&checkNoSave, "no-save", false, "do not record the run in history")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newHistoryCmd())

	return rootCmd
}

func runCheckCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "height", &checkHeight, fileCfg.Report.Height)
	applyIntConfig(cmd, "width", &checkWidth, fileCfg.Report.Width)
	applyBoolConfig(cmd, "no-chart", &checkNoChart, fileCfg.Report.NoChart)
	applyBoolConfig(cmd, "color", &checkColor, fileCfg.Report.Color)
	applyBoolConfig(cmd, "no-save", &checkNoSave, fileCfg.Report.NoSave)

	cfg := model.Config{
		Height:  checkHeight,
		Width:   checkWidth,
		NoChart: checkNoChart,
		Color:   checkColor,
		NoSave:  checkNoSave,
	}
	if len(args) > 0 {
		cfg.File = args[0]
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	samples, source, err := loadSamples(cfg)
	if err != nil {
		return err
	}

	analysis, err := benford.Analyze(samples)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := report.RenderAnalysis(out, analysis); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	if !cfg.NoChart {
		if _, err := fmt.Fprintln(out, ""); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		if err := report.RenderAnalysisChart(out, analysis, cfg.Width, cfg.Height, cfg.Color); err != nil {
			return fmt.Errorf("failed to render chart: %w", err)
		}
	}

	if !cfg.NoSave {
		if err := saveRun(source, analysis); err != nil {
			logErrf("failed to record run: %v\n", err)
		}
	}
	return nil
}

func validateConfig(cfg model.Config) error {
	if cfg.Height <= 0 {
		return fmt.Errorf("--height must be > 0")
	}
	if cfg.Width < 0 {
		return fmt.Errorf("--width must be >= 0")
	}
	return nil
}

func loadSamples(cfg model.Config) ([]string, string, error) {
	if cfg.File != "" {
		samples, err := dataset.LoadSamples(cfg.File)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load data file: %w", err)
		}
		return samples, filepath.Base(cfg.File), nil
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		samples, err := dataset.ReadSamples(os.Stdin)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return samples, stdinSource, nil
	}
	result, err := prompt.AskForSamples(dataset.LoadSamples)
	if err != nil {
		return nil, "", err
	}
	return result.Samples, filepath.Base(result.Path), nil
}

func saveRun(source string, analysis model.Analysis) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	if _, err := st.InsertRun(context.Background(), time.Now(), source, analysis); err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past runs",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historySource, "source", "", "source file filter")
	cmd.Flags().StringVar(&historySince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N runs")
	cmd.Flags().Int64Var(&historyRun, "run", 0, "show per-digit counts for a run id")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "last", &historyLast, fileCfg.History.Last)
	if historyLast == 0 {
		historyLast = defaultLast
	}

	var sinceTime *time.Time
	if historySince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", historySince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := context.Background()
	out := cmd.OutOrStdout()
	if historyRun > 0 {
		digits, err := st.ListRunDigits(ctx, historyRun)
		if err != nil {
			return fmt.Errorf("failed to list run digits: %w", err)
		}
		return report.RenderRunDigits(out, historyRun, digits)
	}

	runs, err := st.ListRuns(ctx, model.HistoryConfig{
		Source: historySource,
		Since:  sinceTime,
		Last:   historyLast,
	})
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	return report.RenderHistory(out, runs)
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# benford configuration
# Uncomment a value to enable it. CLI flags override config values.

[report]
# height = %d            # Chart height in rows
# width = 0              # Chart width in columns (0 = terminal width)
# no-chart = false       # Skip the bar chart
# color = false          # Force color output
# no-save = false        # Do not record runs in history

[history]
# last = %d              # Number of runs shown by default
`,
		defaultHeight,
		defaultLast,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

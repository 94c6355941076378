// Package main provides the CLI entrypoint for typeracer.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/typeracer/internal/config"
	"github.com/verte-zerg/typeracer/internal/generator"
	"github.com/verte-zerg/typeracer/internal/input"
	"github.com/verte-zerg/typeracer/internal/logging"
	"github.com/verte-zerg/typeracer/internal/loop"
	"github.com/verte-zerg/typeracer/internal/model"
	"github.com/verte-zerg/typeracer/internal/passage"
	"github.com/verte-zerg/typeracer/internal/session"
	"github.com/verte-zerg/typeracer/internal/stats"
	"github.com/verte-zerg/typeracer/internal/terminal"
	"github.com/verte-zerg/typeracer/internal/tui"
)

const (
	defaultLang     = "en"
	defaultWords    = 25
	defaultCaps     = 0.0
	defaultPunct    = 0.0
	defaultFrontend = model.FrontendLoop
	defaultLogLevel = "info"
)

const defaultPunctSet = ".,!?;:"

var (
	practiceText     string
	practiceFile     string
	practiceLang     string
	practiceWords    int
	practiceCaps     float64
	practicePunct    float64
	practicePunctSet string
	practiceFrontend string

	logFile  string
	logLevel string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "typeracer",
		Short:         "Terminal typing speed trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runPracticeCmd,
	}

	flags := rootCmd.Flags()
	flags.StringVar(&practiceText, "text", "", "passage to type (overrides --file and word lists)")
	flags.StringVar(&practiceFile, "file", "", "read the passage from a file")
	flags.StringVar(&practiceLang, "lang", defaultLang, "word list language code")
	flags.IntVar(&practiceWords, "words", defaultWords, "words per generated passage")
	flags.Float64Var(&practiceCaps, "caps", defaultCaps, "probability of capitalized first letter (0-1)")
	flags.Float64Var(&practicePunct, "punct", defaultPunct, "punctuation probability per word (0-1)")
	flags.StringVar(&practicePunctSet, "punct-set", defaultPunctSet, "punctuation set")
	flags.StringVar(&practiceFrontend, "frontend", defaultFrontend, "terminal frontend: loop or tea")
	flags.StringVar(&logFile, "log-file", config.DefaultLogPath(), "diagnostics log file (empty disables logging)")
	flags.StringVar(&logLevel, "log-level", defaultLogLevel, "log level: debug, info, warn, error")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newLangsCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyConfig(cmd, "file", &practiceFile, fileCfg.Practice.File)
	applyConfig(cmd, "lang", &practiceLang, fileCfg.Practice.Lang)
	applyConfig(cmd, "words", &practiceWords, fileCfg.Practice.Words)
	applyConfig(cmd, "caps", &practiceCaps, fileCfg.Practice.CapsPct)
	applyConfig(cmd, "punct", &practicePunct, fileCfg.Practice.PunctPct)
	applyConfig(cmd, "punct-set", &practicePunctSet, fileCfg.Practice.PunctSet)
	applyConfig(cmd, "frontend", &practiceFrontend, fileCfg.Practice.Frontend)
	applyConfig(cmd, "log-file", &logFile, fileCfg.Log.File)
	applyConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)

	cfg := model.Config{
		Text:     practiceText,
		File:     practiceFile,
		Lang:     practiceLang,
		Words:    practiceWords,
		CapsPct:  practiceCaps,
		PunctPct: practicePunct,
		PunctSet: practicePunctSet,
		Frontend: practiceFrontend,
	}
	logCfg := model.LogConfig{File: logFile, Level: logLevel}
	if err := validateConfig(cfg, logCfg); err != nil {
		return err
	}

	logger, closeLog := openLogger(logCfg)
	defer closeLog()

	text, source, err := passage.Resolve(passage.Options{
		Text:         cfg.Text,
		File:         cfg.File,
		Lang:         cfg.Lang,
		WordListPath: config.DefaultWordListPath(cfg.Lang),
		Generate: generator.Options{
			Words:    cfg.Words,
			CapsPct:  cfg.CapsPct,
			PunctPct: cfg.PunctPct,
			PunctSet: []rune(cfg.PunctSet),
		},
	}, generator.New())
	if err != nil {
		return fmt.Errorf("failed to prepare passage: %w", err)
	}
	logger.Info("passage ready", "source", string(source), "chars", len([]rune(text)), "frontend", cfg.Frontend)

	s := session.New(text)
	var snap session.Snapshot
	switch cfg.Frontend {
	case model.FrontendTea:
		snap, err = runTea(s, logger)
	default:
		snap, err = runLoop(cmd.Context(), s, logger)
	}
	if err != nil {
		return err
	}
	return stats.RenderResult(cmd.OutOrStdout(), snap)
}

func runLoop(ctx context.Context, s *session.Session, logger *slog.Logger) (session.Snapshot, error) {
	if !terminal.IsInteractive(os.Stdin) {
		return s.Snapshot(), fmt.Errorf("stdin is not a terminal; use --frontend tea or run interactively")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	l, err := loop.New(loop.Options{
		Input:    input.NewReader(os.Stdin),
		Terminal: terminal.New(os.Stdin, os.Stdout, logger),
		Render:   tui.Render,
		Logger:   logger,
	})
	if err != nil {
		return s.Snapshot(), err
	}
	snap, err := l.Run(ctx, s)
	if err != nil {
		return snap, fmt.Errorf("typing session failed: %w", err)
	}
	return snap, nil
}

func runTea(s *session.Session, logger *slog.Logger) (session.Snapshot, error) {
	program := tea.NewProgram(tui.NewModel(s, logger), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return s.Snapshot(), fmt.Errorf("failed to run TUI: %w", err)
	}
	return s.Snapshot(), nil
}

// openLogger falls back to a discarding logger when the log file cannot be
// opened; diagnostics must never block a game.
func openLogger(cfg model.LogConfig) (*slog.Logger, func()) {
	logger, closer, err := logging.New(logging.Options{Path: cfg.File, Level: cfg.Level})
	if err != nil {
		logErrf("logging disabled: %v\n", err)
		return logging.Discard(), func() {}
	}
	return logger, func() {
		if cerr := closer.Close(); cerr != nil {
			logErrf("failed to close log: %v\n", cerr)
		}
	}
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
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newLangsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "langs",
		Short: "List available word list languages",
		Args:  cobra.NoArgs,
		RunE:  runLangsCmd,
	}
}

func runLangsCmd(cmd *cobra.Command, _ []string) error {
	langs, err := listLangs(config.DefaultWordListDir())
	if err != nil {
		return err
	}
	for _, lang := range langs {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), lang); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

// listLangs returns the languages with a word list in dir. English is
// always available through the bundled list.
func listLangs(dir string) ([]string, error) {
	seen := map[string]struct{}{defaultLang: {}}
	entries, err := os.ReadDir(dir)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read wordlist directory: %w", err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".txt") {
			continue
		}
		seen[strings.TrimSuffix(name, ".txt")] = struct{}{}
	}
	langs := make([]string, 0, len(seen))
	for lang := range seen {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs, nil
}

func applyConfig[T any](cmd *cobra.Command, name string, target, value *T) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# typeracer configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# file = ""               # Passage file; empty generates from a word list
# lang = %q             # Word list language
# words = %d              # Words per generated passage
# caps = %.2f           # Probability of capitalized first letter (0-1)
# punct = %.2f          # Punctuation probability per word (0-1)
# punct-set = %q    # Punctuation set
# frontend = %q       # "loop" (raw terminal) or "tea" (Bubble Tea)

[log]
# file = %q
# level = %q
`,
		defaultLang,
		defaultWords,
		defaultCaps,
		defaultPunct,
		defaultPunctSet,
		defaultFrontend,
		config.DefaultLogPath(),
		defaultLogLevel,
	)
}

func validateConfig(cfg model.Config, logCfg model.LogConfig) error {
	if cfg.Text == "" && cfg.File == "" && cfg.Words <= 0 {
		return fmt.Errorf("--words must be > 0")
	}
	if cfg.CapsPct < 0 || cfg.CapsPct > 1 {
		return fmt.Errorf("--caps must be between 0 and 1")
	}
	if cfg.PunctPct < 0 || cfg.PunctPct > 1 {
		return fmt.Errorf("--punct must be between 0 and 1")
	}
	if cfg.PunctPct > 0 && cfg.PunctSet == "" {
		return fmt.Errorf("--punct-set must not be empty")
	}
	switch cfg.Frontend {
	case model.FrontendLoop, model.FrontendTea:
	default:
		return fmt.Errorf("--frontend must be %q or %q", model.FrontendLoop, model.FrontendTea)
	}
	if _, err := logging.ParseLevel(logCfg.Level); err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}
	return nil
}

func logErrf(format string, args ...any) {
	// Best-effort logging to stderr.
	_, _ = fmt.Fprintf(os.Stderr, format, args...)
}

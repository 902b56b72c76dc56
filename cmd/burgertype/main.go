// Package main provides the CLI entrypoint for burgertype.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/burgertype/internal/config"
	"github.com/verte-zerg/burgertype/internal/logging"
	"github.com/verte-zerg/burgertype/internal/model"
	"github.com/verte-zerg/burgertype/internal/passage"
	"github.com/verte-zerg/burgertype/internal/tui"
	"github.com/verte-zerg/burgertype/internal/wordlist"
)

const (
	defaultMode     = model.ModeFixed
	defaultLang     = "en"
	defaultWords    = 25
	defaultSeconds  = 30
	defaultCaps     = 0.0
	defaultPunct    = 0.0
	defaultLogLevel = "info"
)

const defaultPunctSet = ".,!?;:"

var (
	practiceMode        string
	practiceWords       int
	practiceSeconds     int
	practicePunctuation bool
	practiceCaps        float64
	practicePunct       float64
	practicePunctSet    string
	practiceLang        string
	practiceWordList    string
	practiceText        string
	practiceCustom      bool

	logLevel string
	logFile  string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "burgertype",
		Short:         "Terminal typing speed test",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runPracticeCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&practiceMode, "mode", defaultMode, "test mode: fixed, words or time")
	flags.IntVar(&practiceWords, "words", defaultWords, "words per test in words mode")
	flags.IntVar(&practiceSeconds, "time", defaultSeconds, "time limit in seconds in time mode")
	flags.BoolVar(&practicePunctuation, "punctuation", true, "keep punctuation (commas are stripped when false)")
	flags.Float64Var(&practiceCaps, "caps", defaultCaps, "probability of capitalized first letter for generated words (0-1)")
	flags.Float64Var(&practicePunct, "punct", defaultPunct, "punctuation probability per generated word (0-1)")
	flags.StringVar(&practicePunctSet, "punct-set", defaultPunctSet, "punctuation set for generated words")
	flags.StringVar(&practiceLang, "lang", defaultLang, "word list language")
	flags.StringVar(&practiceWordList, "wordlist", "", "word list file (whitespace-delimited words)")
	flags.StringVar(&practiceText, "text", "", "fixed passage or custom prompt")
	flags.BoolVar(&practiceCustom, "custom", false, "type a custom prompt")
	rootCmd.Flags().StringVar(&logLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error, off)")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "log file path")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newWordsCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg, err := resolvePracticeConfig(cmd, fileCfg)
	if err != nil {
		return err
	}
	applyConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)
	applyConfig(cmd, "log-file", &logFile, fileCfg.Log.File)

	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	logPath := logFile
	if logPath == "" {
		logPath = config.DefaultLogPath()
	}
	logger, closer, err := logging.Open(logPath, level)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closer.Close(); cerr != nil {
			logErrf("failed to close log: %v\n", cerr)
		}
	}()

	words, err := loadWordList(cfg)
	if err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("burgertype needs an interactive terminal")
	}

	m, err := tui.NewModel(cfg, passage.New(), words, logger)
	if err != nil {
		return err
	}
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		logger.Error().Err(err).Msg("tui exited")
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newWordsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "words",
		Short: "Print a passage for the current settings",
		Args:  cobra.NoArgs,
		RunE:  runWordsCmd,
	}
}

func runWordsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg, err := resolvePracticeConfig(cmd, fileCfg)
	if err != nil {
		return err
	}
	words, err := loadWordList(cfg)
	if err != nil {
		return err
	}
	return printPassage(cmd.OutOrStdout(), cfg, passage.New(), words)
}

func printPassage(w io.Writer, cfg model.Config, gen *passage.Generator, words []string) error {
	req := passage.Request{
		Punctuation: cfg.Punctuation,
		CapsPct:     cfg.CapsPct,
		PunctPct:    cfg.PunctPct,
		PunctSet:    []rune(cfg.PunctSet),
	}
	if cfg.UsesWordList() {
		req.Words = words
		req.Count = cfg.PassageWords()
	} else {
		req.Text = cfg.Text
		if req.Text == "" {
			req.Text = passage.DefaultSample
		}
	}
	target, err := gen.Build(req)
	if err != nil {
		return fmt.Errorf("failed to build passage: %w", err)
	}
	if _, err := fmt.Fprintln(w, strings.Join(target, " ")); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
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

// resolvePracticeConfig merges the config file under the command-line flags.
func resolvePracticeConfig(cmd *cobra.Command, fileCfg config.FileConfig) (model.Config, error) {
	applyConfig(cmd, "mode", &practiceMode, fileCfg.Practice.Mode)
	applyConfig(cmd, "words", &practiceWords, fileCfg.Practice.Words)
	applyConfig(cmd, "time", &practiceSeconds, fileCfg.Practice.Seconds)
	applyConfig(cmd, "punctuation", &practicePunctuation, fileCfg.Practice.Punctuation)
	applyConfig(cmd, "caps", &practiceCaps, fileCfg.Practice.CapsPct)
	applyConfig(cmd, "punct", &practicePunct, fileCfg.Practice.PunctPct)
	applyConfig(cmd, "punct-set", &practicePunctSet, fileCfg.Practice.PunctSet)
	applyConfig(cmd, "lang", &practiceLang, fileCfg.Practice.Lang)
	applyConfig(cmd, "wordlist", &practiceWordList, fileCfg.Practice.WordList)
	applyConfig(cmd, "text", &practiceText, fileCfg.Practice.Text)

	cfg := model.Config{
		Mode:         strings.ToLower(strings.TrimSpace(practiceMode)),
		Words:        practiceWords,
		Seconds:      practiceSeconds,
		Punctuation:  practicePunctuation,
		CapsPct:      practiceCaps,
		PunctPct:     practicePunct,
		PunctSet:     practicePunctSet,
		Lang:         practiceLang,
		WordListPath: practiceWordList,
		Text:         practiceText,
		Custom:       practiceCustom,
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

// loadWordList returns nil when the configured mode does not draw words.
func loadWordList(cfg model.Config) ([]string, error) {
	if !cfg.UsesWordList() {
		return nil, nil
	}
	path := cfg.WordListPath
	if path == "" {
		candidate := config.DefaultWordListPath(cfg.Lang)
		if _, err := os.Stat(candidate); err == nil {
			path = candidate
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat word list: %w", err)
		}
	}

	var words []string
	if path == "" {
		if !strings.EqualFold(cfg.Lang, defaultLang) {
			return nil, wordListLoadError(cfg.Lang, config.DefaultWordListPath(cfg.Lang), os.ErrNotExist)
		}
		words = wordlist.Default()
	} else {
		loaded, err := wordlist.LoadWords(path)
		if err != nil {
			return nil, wordListLoadError(cfg.Lang, path, err)
		}
		words = loaded
	}
	words = wordlist.Filter(words, wordlist.FilterForLang(cfg.Lang))
	if len(words) == 0 {
		return nil, fmt.Errorf("word list has no usable %s words", cfg.Lang)
	}
	return words, nil
}

// applyConfig copies a config file value into target unless the flag was
// set on the command line.
func applyConfig[T any](cmd *cobra.Command, name string, target *T, value *T) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# burgertype configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# mode = %q            # fixed, words or time
# words = %d              # Words per test in words mode
# time = %d               # Time limit in seconds in time mode
# punctuation = true      # Keep punctuation (commas are stripped when false)
# caps = %.2f             # Probability of capitalized first letter (0-1)
# punct = %.2f            # Punctuation probability per generated word (0-1)
# punct-set = %q      # Punctuation set for generated words
# lang = %q               # Word list language
# wordlist = ""           # Word list file (whitespace-delimited words)
# text = ""               # Fixed passage

[log]
# level = %q           # debug, info, warn, error or off
# file = ""               # Log file path
`,
		defaultMode,
		defaultWords,
		defaultSeconds,
		defaultCaps,
		defaultPunct,
		defaultPunctSet,
		defaultLang,
		defaultLogLevel,
	)
}

func validateConfig(cfg model.Config) error {
	if _, err := cfg.SessionMode(); err != nil {
		return fmt.Errorf("--mode: %w", err)
	}
	if cfg.Words <= 0 {
		return fmt.Errorf("--words must be > 0")
	}
	if cfg.Seconds <= 0 {
		return fmt.Errorf("--time must be > 0")
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
	if !cfg.Custom && cfg.Text != "" && strings.TrimSpace(cfg.Text) == "" {
		return fmt.Errorf("--text must contain at least one word")
	}
	if cfg.Custom && cfg.Text != "" {
		if _, err := passage.Custom(cfg.Text); err != nil {
			return fmt.Errorf("--text: %w", err)
		}
	}
	return nil
}

func wordListLoadError(lang, path string, err error) error {
	lines := []string{
		fmt.Sprintf("failed to load word list: %v", err),
		fmt.Sprintf("expected %s word list at: %s", lang, path),
		"Pass one with: burgertype --wordlist <file>",
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

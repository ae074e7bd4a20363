// Package main provides the CLI entrypoint for tuimath.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/tuimath/internal/config"
	"github.com/verte-zerg/tuimath/internal/generator"
	"github.com/verte-zerg/tuimath/internal/logging"
	"github.com/verte-zerg/tuimath/internal/model"
	"github.com/verte-zerg/tuimath/internal/preset"
	"github.com/verte-zerg/tuimath/internal/tui"
)

const (
	defaultDifficulty = "easy"
	defaultQuestions  = 5
	defaultLogLevel   = "info"
)

var defaultOps = []string{"add", "sub", "mul", "div"}

var (
	playDifficulty  string
	playOps         []string
	playQuestions   int
	playTimeLimit   float64
	playDigits      int
	playMaxMultiple int
	playSeed        int64
	playSound       bool
	playLogLevel    string
	playLogFile     string

	presetsQuestions int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tuimath",
		Short:         "TUI arithmetic quiz",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runPlayCmd,
	}

	rootCmd.Flags().StringVar(&playDifficulty, "difficulty", defaultDifficulty, "difficulty: easy, medium or hard")
	rootCmd.Flags().StringSliceVar(&playOps, "ops", defaultOps, "operators to quiz: add, sub, mul, div")
	rootCmd.Flags().IntVar(&playQuestions, "questions", defaultQuestions, "questions per round")
	rootCmd.Flags().Float64Var(&playTimeLimit, "time-limit", 0, "round time limit in seconds (0: derived from difficulty)")
	rootCmd.Flags().IntVar(&playDigits, "digits", 0, "max digits for add/sub terms (0: preset)")
	rootCmd.Flags().IntVar(&playMaxMultiple, "max-multiple", 0, "exclusive bound for mul/div factors (0: preset)")
	rootCmd.Flags().Int64Var(&playSeed, "seed", 0, "random seed (0: clock)")
	rootCmd.Flags().BoolVar(&playSound, "sound", true, "ring the terminal bell on answers")
	rootCmd.Flags().StringVar(&playLogLevel, "log-level", defaultLogLevel, "log level: debug, info, warn, error")
	rootCmd.Flags().StringVar(&playLogFile, "log-file", "", "log file path (default: $XDG_STATE_HOME/tuimath/tuimath.log)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newPresetsCmd())

	return rootCmd
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyConfig(cmd, "difficulty", &playDifficulty, fileCfg.Game.Difficulty)
	applyConfig(cmd, "ops", &playOps, fileCfg.Game.Operators)
	applyConfig(cmd, "questions", &playQuestions, fileCfg.Game.Questions)
	applyConfig(cmd, "time-limit", &playTimeLimit, fileCfg.Game.TimeLimit)
	applyConfig(cmd, "digits", &playDigits, fileCfg.Game.MaxDigits)
	applyConfig(cmd, "max-multiple", &playMaxMultiple, fileCfg.Game.MaxMultiple)
	applyConfig(cmd, "sound", &playSound, fileCfg.Game.Sound)
	applyConfig(cmd, "log-level", &playLogLevel, fileCfg.Log.Level)
	applyConfig(cmd, "log-file", &playLogFile, fileCfg.Log.File)

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("tuimath needs an interactive terminal")
	}

	logPath := playLogFile
	if logPath == "" {
		logPath = config.DefaultLogPath()
	}
	logFile, err := logging.OpenFile(logPath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := logFile.Close(); cerr != nil {
			logErrf("failed to close log file: %v\n", cerr)
		}
	}()
	log, err := logging.New(logFile, playLogLevel)
	if err != nil {
		return err
	}

	gen := generator.New()
	if playSeed != 0 {
		gen = generator.NewSeeded(playSeed)
	}
	gen = gen.WithLogger(log)

	m, err := tui.NewModel(cfg, gen, log, playSound, os.Stderr)
	if err != nil {
		log.Error().Err(err).Msg("failed to start round")
		return err
	}
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	log.Info().Int("retries", gen.Retries()).Msg("session ended")
	return nil
}

func buildConfig() (model.DifficultyConfig, error) {
	difficulty, err := model.ParseDifficulty(playDifficulty)
	if err != nil {
		return model.DifficultyConfig{}, fmt.Errorf("--difficulty: %w", err)
	}
	ops, err := model.ParseOperators(playOps)
	if err != nil {
		return model.DifficultyConfig{}, fmt.Errorf("--ops: %w", err)
	}
	if playTimeLimit < 0 {
		return model.DifficultyConfig{}, fmt.Errorf("%w: --time-limit must be >= 0", model.ErrConfiguration)
	}
	cfg, err := preset.Build(preset.Options{
		Difficulty:  difficulty,
		Operators:   ops,
		Questions:   playQuestions,
		TimeLimit:   time.Duration(playTimeLimit * float64(time.Second)),
		MaxDigits:   playDigits,
		MaxMultiple: playMaxMultiple,
	})
	if err != nil {
		return model.DifficultyConfig{}, fmt.Errorf("invalid round setup: %w", err)
	}
	return cfg, nil
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

	cmd, err := editorCommand(os.Getenv("EDITOR"), path)
	if err != nil {
		return err
	}
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// editorCommand builds the command opening path in editor, which may carry
// arguments. An unset editor falls back to vi.
func editorCommand(editor, path string) (*exec.Cmd, error) {
	if strings.TrimSpace(editor) == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return nil, fmt.Errorf("editor command is empty")
	}
	return exec.Command(parts[0], append(parts[1:], path)...), nil
}

func newPresetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "Show difficulty presets",
		Args:  cobra.NoArgs,
		RunE:  runPresetsCmd,
	}
	cmd.Flags().IntVar(&presetsQuestions, "questions", defaultQuestions, "questions per round used for the time limit column")
	return cmd
}

func runPresetsCmd(cmd *cobra.Command, _ []string) error {
	if presetsQuestions <= 0 {
		return fmt.Errorf("--questions must be > 0")
	}
	if err := preset.RenderTable(cmd.OutOrStdout(), presetsQuestions); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// applyConfig copies a config file value into target unless the flag was set.
func applyConfig[T any](cmd *cobra.Command, name string, target *T, value *T) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# tuimath configuration
# Uncomment a value to enable it. CLI flags override config values.

[game]
# difficulty = %q                            # easy, medium or hard
# operators = ["add", "sub", "mul", "div"]     # Operators to quiz
# questions = %d                              # Questions per round
# time-limit = 0                              # Seconds per round (0: derived from difficulty)
# digits = 0                                  # Max digits for add/sub terms (0: preset)
# max-multiple = 0                            # Exclusive bound for mul/div factors (0: preset)
# sound = true                                # Ring the terminal bell on answers

[log]
# level = %q                                 # debug, info, warn or error
# file = %q
`,
		defaultDifficulty,
		defaultQuestions,
		defaultLogLevel,
		config.DefaultLogPath(),
	)
}

// logErrf writes CLI messages that must not go through the TUI or the log file.
func logErrf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format, args...)
}

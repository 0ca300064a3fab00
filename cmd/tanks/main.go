// tanks is a terminal tank arena: drive, aim and shoot down the target
// tanks of an arena, locally or over SSH.
//
// Usage:
//
//	tanks list               - List available arenas
//	tanks play <arena>       - Play an arena
//	tanks menu               - Start menu to pick arenas interactively
//	tanks serve              - Start SSH server for remote play
//	tanks scores <arena>     - Show high scores for an arena
//	tanks runs [arena]       - Show recent runs
//	tanks sim                - Run an arena headless with scripted keys
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 60)
//	--seed <value>     - Seed recorded with each run
//	--db <path>        - Set database path (default: ~/.tanks/scores.db)
//	--log-file <path>  - Write logs to a file during interactive play
//	--debug            - Log at debug level
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tanks/internal/config"
	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks"
	"github.com/vovakirdan/tui-tanks/internal/logging"
	"github.com/vovakirdan/tui-tanks/internal/platform/tui"
	"github.com/vovakirdan/tui-tanks/internal/registry"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagLogFile string
	flagDebug   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tanks",
	Short: "TUI Tanks - a tank arena in your terminal",
	Long: `TUI Tanks is a top-down tank arena that runs in your terminal.
Drive your tank, turn the barrel and shoot every target before the
clock runs out.

Available commands:
  list     - Show all available arenas
  play     - Play a specific arena directly
  menu     - Interactive arena picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores
  runs     - View recent runs
  sim      - Run an arena headless

Examples:
  tanks list
  tanks play training
  tanks menu
  tanks serve --ssh :2222
  tanks scores crossfire
  tanks sim --arena training --ticks 600 --hold forward,fire --trace out.csv`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Run seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tanks/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file during play")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log at debug level")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(simCmd)
}

// resolveGameID accepts either a registry id ("tanks-training") or a bare
// arena id ("training").
func resolveGameID(arg string) (string, bool) {
	if registry.Exists(arg) {
		return arg, true
	}
	if id := tanks.GameID(arg); registry.Exists(id) {
		return id, true
	}
	return "", false
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// playLogger opens the --log-file logger for interactive play and hands it
// to the game layer. The terminal is in use, so nothing goes to stderr.
func playLogger() (*log.Logger, func() error) {
	logger, closeLog, err := logging.Open(flagLogFile, "tanks", flagDebug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		logger, closeLog = logging.Discard(), func() error { return nil }
	}
	tanks.SetLogger(logger)
	return logger, closeLog
}

// holdWindow reads the held-key window from the tanks config.
func holdWindow(configPath string) time.Duration {
	cfg, err := config.LoadTanks(configPath)
	if err != nil {
		return tui.DefaultHold
	}
	return cfg.Input.Hold()
}

// applyGameFlags validates and sets the config and difficulty used by
// every round created afterwards.
func applyGameFlags(configPath, difficulty string) {
	if _, err := config.ParsePreset(difficulty); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if configPath != "" {
		if _, err := config.LoadTanks(configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	tanks.SetConfigPath(configPath)
	tanks.SetDifficultyPreset(difficulty)
}

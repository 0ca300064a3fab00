package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tanks/internal/platform/tui"
	"github.com/vovakirdan/tui-tanks/internal/registry"
	"github.com/vovakirdan/tui-tanks/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with an arena picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select an arena.
After a round ends, press B to return to the menu and play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select arena
  Tab          - Scoreboard
  Q            - Quit

Examples:
  tanks menu
  tanks menu --fps 30
  tanks menu --difficulty hard
  tanks menu --db ./scores.db`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom tanks config YAML")
	menuCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runMenu(_ *cobra.Command, _ []string) {
	applyGameFlags(flagConfig, flagDifficulty)

	logger, closeLog := playLogger()
	//nolint:errcheck // Best-effort close on exit
	defer closeLog()

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}

	cfg := runtimeConfig()
	hold := holdWindow(flagConfig)

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from scoreboard
		}

		if menuResult.GameID == "" {
			break
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		// Update seed for each round
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		if err := tui.Run(game, store, cfg, tui.WithHold(hold), tui.WithLogger(logger)); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}

		// Loop back to menu
	}

	// Cleanup
	if store != nil {
		store.Close()
	}
}

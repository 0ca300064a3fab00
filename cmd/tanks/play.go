package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tanks/internal/games/tanks"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks/arenas"
	"github.com/vovakirdan/tui-tanks/internal/platform/tui"
	"github.com/vovakirdan/tui-tanks/internal/registry"
	"github.com/vovakirdan/tui-tanks/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagArenaFile  string
)

var playCmd = &cobra.Command{
	Use:   "play [arena]",
	Short: "Play an arena",
	Long: `Start playing the specified arena.

Controls:
  W/S, Up/Down      - Drive forward / reverse
  A/D, Left/Right   - Turn hull
  J/L               - Turn barrel
  Space             - Fire
  P, Esc            - Pause
  R                 - Restart (after game over)
  B, Esc            - Leave (when paused or after game over)
  Ctrl+S            - Save a screenshot to ~/.tanks/screenshots
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - Faster reload and bullets, reload slows as you score
  normal - Starts at 30% difficulty, shorter time limits
  hard   - Starts at 70% difficulty, slower reload and bullets
  fixed  - No progression, stays at config's initial level

Examples:
  tanks play training
  tanks play crossfire --difficulty hard
  tanks play gauntlet --config ./my-tanks.yaml
  tanks play --arena-file ./my-arena.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom tanks config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagArenaFile, "arena-file", "", "Play an arena from a YAML file")
}

func runPlay(cmd *cobra.Command, args []string) {
	applyGameFlags(flagConfig, flagDifficulty)

	var game registry.Game
	switch {
	case flagArenaFile != "":
		a, err := arenas.Load(flagArenaFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		game = tanks.New(a)

	case len(args) == 1:
		gameID, ok := resolveGameID(args[0])
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown arena %q\n", args[0])
			fmt.Fprintln(os.Stderr, "Run 'tanks list' to see available arenas.")
			os.Exit(1)
		}
		created, err := registry.Create(gameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			os.Exit(1)
		}
		game = created

	default:
		fmt.Fprintln(os.Stderr, "Error: name an arena or pass --arena-file")
		os.Exit(1)
	}

	logger, closeLog := playLogger()
	//nolint:errcheck // Best-effort close on exit
	defer closeLog()

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(game, store, runtimeConfig(),
		tui.WithHold(holdWindow(flagConfig)),
		tui.WithLogger(logger),
	)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

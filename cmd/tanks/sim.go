package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks/arenas"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks/sim"
	"github.com/vovakirdan/tui-tanks/internal/logging"
	"github.com/vovakirdan/tui-tanks/internal/storage"
	"github.com/vovakirdan/tui-tanks/internal/trace"
)

var (
	flagSimArena      string
	flagSimArenaFile  string
	flagSimTicks      int
	flagSimHold       string
	flagSimTrace      string
	flagSimConfig     string
	flagSimDifficulty string
	flagSimSave       bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run an arena headless",
	Long: `Run an arena without a terminal, holding the same keys every tick.
The round ends after --ticks ticks or when the game is over.

Keys for --hold: forward, backward, left, right, aim-left, aim-right, fire.

With --trace, every entity is written to a CSV file once per tick and the
kills, shots and pushes of each tick go to a matching .events.csv file.

Examples:
  tanks sim --arena training --ticks 600 --hold fire
  tanks sim --arena crossfire --hold forward,aim-left,fire --trace run.csv
  tanks sim --arena-file ./my-arena.yaml --seed 42 --save`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().StringVar(&flagSimArena, "arena", "training", "Arena id")
	simCmd.Flags().StringVar(&flagSimArenaFile, "arena-file", "", "Arena YAML file (overrides --arena)")
	simCmd.Flags().IntVar(&flagSimTicks, "ticks", 600, "Maximum number of ticks")
	simCmd.Flags().StringVar(&flagSimHold, "hold", "", "Comma separated keys held every tick")
	simCmd.Flags().StringVar(&flagSimTrace, "trace", "", "Write a per-tick CSV trace to this file")
	simCmd.Flags().StringVar(&flagSimConfig, "config", "", "Path to custom tanks config YAML")
	simCmd.Flags().StringVar(&flagSimDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Record the run in the scores database")
}

// parseHold parses a --hold list such as "forward,fire".
func parseHold(list string) (sim.KeySet, error) {
	var keys sim.KeySet
	for _, name := range strings.Split(list, ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}
		k, err := sim.ParseKey(name)
		if err != nil {
			return 0, err
		}
		keys = keys.With(k)
	}
	return keys, nil
}

// eventsPath derives the events file name from the trace file name.
func eventsPath(tracePath string) string {
	return strings.TrimSuffix(tracePath, ".csv") + ".events.csv"
}

// openTrace creates the rows file and its events file. If the second
// cannot be created the first is closed and removed again.
func openTrace(path string) (*trace.Recorder, func() error, error) {
	rows, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	events, err := os.Create(eventsPath(path))
	if err != nil {
		rows.Close()
		os.Remove(path) //nolint:errcheck // Best effort; the create error is what matters
		return nil, nil, err
	}
	closeBoth := func() error {
		return errors.Join(rows.Close(), events.Close())
	}
	return trace.NewRecorder(rows, events), closeBoth, nil
}

func runSim(_ *cobra.Command, _ []string) {
	// simulate returns before exiting so the trace files are closed.
	if err := simulate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func simulate() error {
	applyGameFlags(flagSimConfig, flagSimDifficulty)

	logger := logging.New(os.Stderr, "tanks-sim", flagDebug)
	tanks.SetLogger(logger)

	keys, err := parseHold(flagSimHold)
	if err != nil {
		return err
	}

	arena, err := simArena()
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	game := tanks.New(arena)
	game.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: flagFPS, Seed: seed})

	var rec *trace.Recorder
	if flagSimTrace != "" {
		var closeTrace func() error
		rec, closeTrace, err = openTrace(flagSimTrace)
		if err != nil {
			return fmt.Errorf("trace: %w", err)
		}
		defer func() {
			if err := closeTrace(); err != nil {
				logger.Error("trace", "error", err)
			}
		}()

		// Tick 0 is the spawn layout.
		if err := rec.WriteRows(trace.Rows(game.World())); err != nil {
			logger.Error("trace", "error", err)
			rec = nil
		}
	}

	frame := tanks.FrameFromKeys(keys)
	logger.Debug("sim start", "arena", arena.ID, "hold", keys, "ticks", flagSimTicks)

	var state core.GameState
	for range flagSimTicks {
		state = game.Step(frame).State
		if rec != nil {
			if err := rec.Capture(game.World(), game.LastStep()); err != nil {
				logger.Error("trace", "error", err)
				rec = nil
			}
		}
		if state.GameOver {
			break
		}
	}

	stats := game.Stats()
	outcome := stats.Outcome
	if outcome == "" {
		outcome = "running"
	}

	fmt.Printf("Arena    %s\n", arena.ID)
	fmt.Printf("Ticks    %d (%s)\n", stats.Ticks, game.World().Now())
	fmt.Printf("Result   %s\n", outcome)
	fmt.Printf("Score    %d\n", state.Score)
	fmt.Printf("Kills    %d of %d shots, %d targets left\n", stats.Kills, stats.Shots, game.TargetsLeft())
	snap := game.Snapshot()
	fmt.Printf("Hash     %016x\n", snap.Hash())
	if rec != nil {
		rows, events := rec.Counts()
		fmt.Printf("Trace    %d rows to %s, %d events to %s\n",
			rows, flagSimTrace, events, eventsPath(flagSimTrace))
	}

	if flagSimSave {
		return saveSimRun(game, state.Score, stats, seed)
	}
	return nil
}

func simArena() (arenas.Arena, error) {
	if flagSimArenaFile != "" {
		return arenas.Load(flagSimArenaFile)
	}
	all, err := arenas.Embedded()
	if err != nil {
		return arenas.Arena{}, err
	}
	id := strings.TrimPrefix(flagSimArena, "tanks-")
	for _, a := range all {
		if a.ID == id {
			return a, nil
		}
	}
	return arenas.Arena{}, fmt.Errorf("unknown arena %q", flagSimArena)
}

func saveSimRun(game *tanks.Game, score int, stats core.RunStats, seed int64) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	id, err := store.SaveRun(storage.RunRecord{
		GameID:  game.ID(),
		Player:  "sim",
		Score:   score,
		Kills:   stats.Kills,
		Shots:   stats.Shots,
		Ticks:   stats.Ticks,
		Seed:    seed,
		Outcome: stats.Outcome,
	})
	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}
	fmt.Printf("Run      %s\n", id)
	return nil
}

package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tanks/internal/storage"
)

var (
	flagRunsLimit int
	flagRunID     string
)

var runsCmd = &cobra.Command{
	Use:   "runs [arena]",
	Short: "Show recent runs",
	Long: `Display the most recent finished rounds, newest first, for one arena
or for all of them. Every run carries a UUID; pass it with --id to see
the full record.

Examples:
  tanks runs
  tanks runs crossfire --limit 5
  tanks runs --id 6f1c0a52-...`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "Number of runs to show")
	runsCmd.Flags().StringVar(&flagRunID, "id", "", "Show a single run by its UUID")
}

func runRuns(cmd *cobra.Command, args []string) {
	gameID := ""
	if len(args) == 1 {
		id, ok := resolveGameID(args[0])
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown arena %q\n", args[0])
			os.Exit(1)
		}
		gameID = id
	}

	var runID uuid.UUID
	if flagRunID != "" {
		id, err := uuid.Parse(flagRunID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid run id: %v\n", err)
			os.Exit(1)
		}
		runID = id
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if runID != uuid.Nil {
		showRun(store, runID)
		return
	}

	runs, err := store.RecentRuns(gameID, flagRunsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	fmt.Printf("  %-8s  %-16s  %-18s  %6s  %5s  %5s  %4s  %-9s  %s\n",
		"Run", "Date", "Arena", "Score", "Kills", "Shots", "Acc", "Result", "Player")
	for _, r := range runs {
		player := r.Player
		if player == "" {
			player = "-"
		}
		fmt.Printf("  %-8s  %-16s  %-18s  %6d  %5d  %5d  %3.0f%%  %-9s  %s\n",
			r.RunID.String()[:8],
			r.CreatedAt.Format("2006-01-02 15:04"),
			r.GameID,
			r.Score, r.Kills, r.Shots, r.Accuracy()*100,
			r.Outcome, player)
	}
}

func showRun(store *storage.Store, id uuid.UUID) {
	r, err := store.RunByID(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving run: %v\n", err)
		os.Exit(1)
	}
	if r == nil {
		fmt.Fprintf(os.Stderr, "Error: no run %s\n", id)
		os.Exit(1)
	}

	fmt.Printf("Run      %s\n", r.RunID)
	fmt.Printf("Arena    %s\n", r.GameID)
	if r.Player != "" {
		fmt.Printf("Player   %s\n", r.Player)
	}
	fmt.Printf("Date     %s\n", r.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Result   %s\n", r.Outcome)
	fmt.Printf("Score    %d\n", r.Score)
	fmt.Printf("Kills    %d of %d shots (%.0f%%)\n", r.Kills, r.Shots, r.Accuracy()*100)
	fmt.Printf("Ticks    %d\n", r.Ticks)
	fmt.Printf("Seed     %d\n", r.Seed)
}

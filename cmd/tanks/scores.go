package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tanks/internal/registry"
	"github.com/vovakirdan/tui-tanks/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores <arena>",
	Short: "Show high scores for an arena",
	Long: `Display the top 10 high scores for the specified arena.

Examples:
  tanks scores training
  tanks scores tanks-gauntlet`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func runScores(cmd *cobra.Command, args []string) {
	gameID, ok := resolveGameID(args[0])
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown arena %q\n", args[0])
		fmt.Fprintln(os.Stderr, "Run 'tanks list' to see available arenas.")
		os.Exit(1)
	}
	info, _ := registry.Lookup(gameID)

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	fmt.Printf("High Scores - %s\n", info.Title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'tanks play %s' to set the first high score!\n", args[0])
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, dateStr)
	}

	fmt.Println()
	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Printf("Best: %d  Rounds: %d  Avg: %.0f  Kills: %d\n",
			stats.HighScore, stats.GamesCount, stats.AvgScore, stats.TotalKills)
	}
}

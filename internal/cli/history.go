package cli

import (
	"fmt"
	"time"

	"github.com/billmal071/booksearch/internal/config"
	"github.com/billmal071/booksearch/internal/db"
	"github.com/billmal071/booksearch/internal/tui"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View and manage search history",
	Long: `View and manage your search history.

Examples:
  booksearch history                     List recent searches
  booksearch history pick                Choose a past search and run it again
  booksearch history prune --older 720h  Remove searches older than 30 days
  booksearch history clear               Clear all search history`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return showSearchHistory(20)
	},
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent searches",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		return showSearchHistory(limit)
	},
}

var historyPickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Run a previous search again",
	RunE: func(cmd *cobra.Command, args []string) error {
		history, err := db.GetUniqueSearchHistory(50)
		if err != nil {
			return fmt.Errorf("failed to get search history: %w", err)
		}

		selected, err := tui.RunHistorySelector(history)
		if err != nil {
			return err
		}
		if selected == nil {
			return nil // User cancelled
		}

		cfg := config.Get()
		return runQuery(cmd.Context(), selected.Query, selected.RequestURL, fetcherOptions(cfg), cfg.Search.Interactive && isTerminal())
	},
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove old searches",
	RunE: func(cmd *cobra.Command, args []string) error {
		older, _ := cmd.Flags().GetDuration("older")
		if older <= 0 {
			return fmt.Errorf("--older must be a positive duration")
		}
		if err := db.DeleteSearchHistoryOlderThan(older); err != nil {
			return fmt.Errorf("failed to prune history: %w", err)
		}
		Successf("Removed searches older than %s", older)
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear all search history",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := db.ClearSearchHistory(); err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		Successf("Search history cleared.")
		return nil
	},
}

func init() {
	historyListCmd.Flags().IntP("limit", "n", 20, "number of entries to show")
	historyPruneCmd.Flags().Duration("older", 30*24*time.Hour, "remove searches older than this")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyPickCmd)
	historyCmd.AddCommand(historyPruneCmd)
	historyCmd.AddCommand(historyClearCmd)
}

// showSearchHistory lists unique recent searches
func showSearchHistory(limit int) error {
	history, err := db.GetUniqueSearchHistory(limit)
	if err != nil {
		return fmt.Errorf("failed to get search history: %w", err)
	}

	if len(history) == 0 {
		fmt.Println("No search history.")
		fmt.Println("\nSearches are saved automatically when you search for books.")
		return nil
	}

	fmt.Printf("Recent Searches (%d):\n\n", len(history))

	for i, h := range history {
		fmt.Printf("  %d. \"%s\" (%d results, %s)\n", i+1, h.Query, h.ResultCount, h.Outcome)
		if h.ErrorMessage != "" {
			fmt.Printf("     Problem: %s\n", h.ErrorMessage)
		}
		fmt.Printf("     %s\n\n", h.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	return nil
}

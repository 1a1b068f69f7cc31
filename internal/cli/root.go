package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/billmal071/booksearch/internal/config"
	"github.com/billmal071/booksearch/internal/db"
	"github.com/billmal071/booksearch/internal/logger"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool

	stderr io.Writer = os.Stderr
)

var rootCmd = &cobra.Command{
	Use:   "booksearch",
	Short: "Search Google Books from the terminal",
	Long: `booksearch queries a book search API and lists the titles and authors it finds.

Pass either free text, which is sent to the configured endpoint, or a complete
request URL, which is used as is.

Examples:
  booksearch search "clean code"                  Search for books
  booksearch search -n 20 "terry pratchett"       Ask for up to 20 results
  booksearch search "https://www.googleapis.com/books/v1/volumes?q=dune"
  booksearch history                              List recent searches`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize config
		if err := config.Init(cfgFile); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		// Initialize diagnostics
		cfg := config.Get()
		level := cfg.Log.Level
		if verbose {
			level = "debug"
		}
		if err := logger.Setup(level, cfg.Log.Format); err != nil {
			return fmt.Errorf("failed to initialize logging: %w", err)
		}

		// Initialize database
		if err := db.Init(); err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		db.Close()
	},
}

// Execute runs the root command; an interrupt cancels the running search
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.config/booksearch/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Add subcommands
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// Printf prints if verbose mode is enabled
func Printf(format string, args ...interface{}) {
	if verbose {
		fmt.Printf(format, args...)
	}
}

// Errorf prints an error message to stderr
func Errorf(format string, args ...interface{}) {
	fmt.Fprintf(stderr, "Error: "+format+"\n", args...)
}

// Successf prints a success message
func Successf(format string, args ...interface{}) {
	fmt.Printf("✓ "+format+"\n", args...)
}

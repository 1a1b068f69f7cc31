package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/billmal071/booksearch/internal/books"
	"github.com/billmal071/booksearch/internal/config"
	"github.com/billmal071/booksearch/internal/db"
	"github.com/billmal071/booksearch/internal/logger"
	"github.com/billmal071/booksearch/internal/tui"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search [query | url]",
	Short: "Search for books",
	Long: `Search for books matching the query and list their titles and authors.

A single argument starting with http:// or https:// is used as the complete
request URL. Anything else is treated as free text and sent to the endpoint
configured under google_books.base_url.

By default, results are shown in an interactive list when the output is a
terminal. Use --no-interactive to print them instead.

Examples:
  booksearch search "clean code"
  booksearch search -n 5 "golang programming"
  booksearch search --no-interactive "design patterns"
  booksearch search "https://www.googleapis.com/books/v1/volumes?q=intitle:dune"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntP("limit", "n", 0, "number of results to request (default search.max_results)")
	searchCmd.Flags().Bool("no-interactive", false, "disable interactive mode, just print results")
	searchCmd.Flags().Bool("raw-body", false, "keep line breaks in the response body instead of joining lines")
	searchCmd.Flags().Bool("progress", false, "show download progress of the response")
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	limit, _ := cmd.Flags().GetInt("limit")
	if limit <= 0 {
		limit = cfg.Search.MaxResults
	}

	query, requestURL, err := resolveRequest(args, cfg.GoogleBooks.BaseURL, limit)
	if err != nil {
		return fmt.Errorf("cannot build request: %w", err)
	}

	opts := fetcherOptions(cfg)
	if rawBody, _ := cmd.Flags().GetBool("raw-body"); rawBody {
		opts.JoinLines = false
	}
	if showProgress, _ := cmd.Flags().GetBool("progress"); showProgress {
		opts.BodyHook = progressHook
	}

	noInteractive, _ := cmd.Flags().GetBool("no-interactive")
	interactive := !noInteractive && cfg.Search.Interactive && isTerminal()

	return runQuery(cmd.Context(), query, requestURL, opts, interactive)
}

// runQuery fetches one page of results, records it and shows it
func runQuery(ctx context.Context, query, requestURL string, opts books.Options, interactive bool) error {
	Printf("Searching for: %s\n", query)
	Printf("Request URL: %s\n", requestURL)

	res := books.NewFetcher(opts).Fetch(ctx, requestURL)

	if err := db.AddSearchHistory(historyEntry(query, requestURL, res)); err != nil {
		Printf("Could not save search history: %v\n", err)
	}

	if res.Err != nil {
		Printf("Search degraded: %v\n", res.Err)
	}

	if len(res.Books) == 0 {
		fmt.Println("No books found matching your query.")
		return nil
	}

	Printf("Found %d result(s)\n\n", len(res.Books))

	if !interactive {
		printBooks(os.Stdout, res.Books)
		return nil
	}

	selected, err := tui.RunSelector(res.Books, fmt.Sprintf("Results for %q", truncateQuery(query)))
	if err != nil {
		return fmt.Errorf("selection failed: %w", err)
	}
	if selected == nil {
		return nil // User cancelled
	}

	fmt.Println()
	printBook(os.Stdout, selected)
	return nil
}

// resolveRequest turns command arguments into the query label and request URL
func resolveRequest(args []string, baseURL string, limit int) (string, string, error) {
	if len(args) == 1 && isRequestURL(args[0]) {
		raw := strings.TrimSpace(args[0])
		return raw, raw, nil
	}

	query := strings.TrimSpace(strings.Join(args, " "))
	requestURL, err := books.SearchURL(baseURL, query, limit)
	if err != nil {
		return "", "", err
	}
	return query, requestURL, nil
}

func isRequestURL(arg string) bool {
	lower := strings.ToLower(strings.TrimSpace(arg))
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// fetcherOptions maps configuration onto fetcher options
func fetcherOptions(cfg *config.Config) books.Options {
	opts := books.DefaultOptions()
	if cfg.Network.ConnectTimeout > 0 {
		opts.ConnectTimeout = cfg.Network.ConnectTimeout
	}
	if cfg.Network.ReadTimeout > 0 {
		opts.ReadTimeout = cfg.Network.ReadTimeout
	}
	opts.UserAgent = cfg.Network.UserAgent
	opts.JoinLines = cfg.Search.JoinLines
	opts.Logger = logger.For("books")
	return opts
}

// historyEntry converts a fetch result into a history row
func historyEntry(query, requestURL string, res *books.Result) *db.SearchHistory {
	h := &db.SearchHistory{
		Query:       query,
		RequestURL:  requestURL,
		ResultCount: len(res.Books),
		Outcome:     string(res.Outcome()),
	}
	if res.Err != nil {
		h.ErrorMessage = res.Err.Error()
	}
	return h
}

func progressHook(body io.Reader, size int64) io.Reader {
	bar := progressbar.DefaultBytes(size, "Fetching results")
	return io.TeeReader(body, bar)
}

func isTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// printBooks prints books in a simple format
func printBooks(w io.Writer, results []*books.Book) {
	for i, book := range results {
		fmt.Fprintf(w, "%d. ", i+1)
		printBook(w, book)
		fmt.Fprintln(w)
	}
}

func printBook(w io.Writer, book *books.Book) {
	fmt.Fprintln(w, book.Title)
	if book.HasAuthors() {
		fmt.Fprintf(w, "   Authors: %s\n", strings.Join(book.AuthorList(), ", "))
	}
}

func truncateQuery(q string) string {
	r := []rune(q)
	if len(r) > 40 {
		return string(r[:37]) + "..."
	}
	return q
}

package books

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultBaseURL is the Google Books volumes search endpoint
const DefaultBaseURL = "https://www.googleapis.com/books/v1/volumes"

// SearchURL builds a request URL for a free-text query against baseURL.
// Existing query parameters on baseURL are kept; maxResults <= 0 leaves the
// server default in place.
func SearchURL(baseURL, query string, maxResults int) (string, error) {
	if strings.TrimSpace(baseURL) == "" {
		return "", fmt.Errorf("%w: empty base url", ErrInvalidURL)
	}
	if strings.TrimSpace(query) == "" {
		return "", fmt.Errorf("empty search query")
	}

	u, err := parseRequestURL(baseURL)
	if err != nil {
		return "", err
	}

	q := u.Query()
	q.Set("q", query)
	if maxResults > 0 {
		q.Set("maxResults", strconv.Itoa(maxResults))
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}

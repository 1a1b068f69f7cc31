package books

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultConnectTimeout bounds establishing the connection
	DefaultConnectTimeout = 15 * time.Second
	// DefaultReadTimeout bounds each read from the connection
	DefaultReadTimeout = 10 * time.Second
)

// BodyHook may wrap the response body before it is read. size is the
// Content-Length, or -1 when unknown.
type BodyHook func(body io.Reader, size int64) io.Reader

// Options configures a Fetcher
type Options struct {
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	// JoinLines drops line terminators from the body before parsing
	JoinLines bool
	// UserAgent is sent when non-empty; otherwise Go's default is used
	UserAgent string
	Logger    logrus.FieldLogger
	BodyHook  BodyHook
}

// DefaultOptions returns the options FetchBooks uses
func DefaultOptions() Options {
	return Options{
		ConnectTimeout: DefaultConnectTimeout,
		ReadTimeout:    DefaultReadTimeout,
		JoinLines:      true,
	}
}

// Fetcher retrieves one page of book search results.
// It holds no per-request state and is safe for concurrent use.
type Fetcher struct {
	opts Options
	http *http.Client
	log  logrus.FieldLogger
}

// NewFetcher creates a fetcher, filling unset timeouts with the defaults
func NewFetcher(opts Options) *Fetcher {
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = DefaultConnectTimeout
	}
	if opts.ReadTimeout <= 0 {
		opts.ReadTimeout = DefaultReadTimeout
	}
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &Fetcher{
		opts: opts,
		http: newHTTPClient(opts.ConnectTimeout, opts.ReadTimeout),
		log:  log,
	}
}

var defaultFetcher = NewFetcher(DefaultOptions())

// FetchBooks queries requestURL and returns the books found.
//
// A nil result means no response body was obtained (bad URL, network
// failure, non-200 status). An empty, non-nil result means a body was
// received but held no usable books. Problems are logged, never returned.
func FetchBooks(requestURL string) []*Book {
	return defaultFetcher.Fetch(context.Background(), requestURL).Books
}

// Fetch queries requestURL and reports the books found together with the
// condition, if any, that degraded the result.
func (f *Fetcher) Fetch(ctx context.Context, requestURL string) *Result {
	log := f.log.WithField("fetch_id", uuid.NewString())
	res := &Result{}

	body, status, err := f.get(ctx, requestURL)
	res.Status = status
	if err != nil {
		res.Err = err
		log.WithError(err).WithField("url", requestURL).Error(describe(err))
	}

	books, err := ExtractBooks(body)
	if err != nil {
		res.Err = err
		log.WithError(err).Error("problem parsing the book search results")
	}
	res.Books = books

	log.WithFields(logrus.Fields{
		"status":  res.Status,
		"outcome": res.Outcome(),
		"count":   len(res.Books),
	}).Debug("book search finished")

	return res
}

// get returns the response body, or "" together with the reason no body
// could be obtained.
func (f *Fetcher) get(ctx context.Context, requestURL string) (string, int, error) {
	u, err := parseRequestURL(requestURL)
	if err != nil {
		return "", 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if f.opts.UserAgent != "" {
		req.Header.Set("User-Agent", f.opts.UserAgent)
	}

	resp, err := f.http.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", resp.StatusCode, &StatusError{Code: resp.StatusCode}
	}

	var r io.Reader = resp.Body
	if f.opts.BodyHook != nil {
		r = f.opts.BodyHook(r, resp.ContentLength)
	}

	body, err := readBody(r, f.opts.JoinLines)
	if err != nil {
		return "", resp.StatusCode, fmt.Errorf("%w: reading body: %w", ErrTransport, err)
	}

	return body, resp.StatusCode, nil
}

// parseRequestURL accepts only absolute http(s) URLs with a host
func parseRequestURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: missing host", ErrInvalidURL)
	}
	return u, nil
}

func describe(err error) string {
	switch {
	case errors.Is(err, ErrInvalidURL):
		return "problem building the request url"
	case errors.Is(err, ErrUnexpectedStatus):
		return "server did not answer with 200 OK"
	default:
		return "problem making the http request"
	}
}

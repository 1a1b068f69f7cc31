package books

import (
	"context"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// newHTTPClient builds a client that bounds dialing by connectTimeout and
// every individual read on the connection by readTimeout. There is no cap
// on the total transfer time.
func newHTTPClient(connectTimeout, readTimeout time.Duration) *http.Client {
	dialer := &net.Dialer{Timeout: connectTimeout}

	return &http.Client{
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
				conn, err := dialer.DialContext(ctx, network, addr)
				if err != nil {
					return nil, err
				}
				return &readDeadlineConn{Conn: conn, timeout: readTimeout}, nil
			},
			TLSHandshakeTimeout: connectTimeout,
			DisableKeepAlives:   true,
		},
	}
}

// readDeadlineConn pushes the read deadline forward before each Read
type readDeadlineConn struct {
	net.Conn
	timeout time.Duration
}

func (c *readDeadlineConn) Read(b []byte) (int, error) {
	if c.timeout > 0 {
		if err := c.Conn.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
			return 0, err
		}
	}
	return c.Conn.Read(b)
}

var lineBreaks = strings.NewReplacer("\r\n", "", "\r", "", "\n", "")

// readBody decodes r as UTF-8 text, replacing invalid sequences with U+FFFD.
//
// With joinLines set the text is split into lines and the lines are
// concatenated without their terminators. That is harmless for single-line
// JSON but glues together the pieces of a string value that spans lines.
func readBody(r io.Reader, joinLines bool) (string, error) {
	data, err := io.ReadAll(transform.NewReader(r, unicode.UTF8.NewDecoder()))
	if err != nil {
		return "", err
	}
	text := string(data)
	if joinLines {
		text = lineBreaks.Replace(text)
	}
	return text, nil
}

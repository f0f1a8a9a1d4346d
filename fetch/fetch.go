// Package fetch retrieves the raw Unicode emoji test document with a single
// plain HTTP/1.1 request written directly to a TCP stream.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// Host serving the emoji test data.
	Host = "unicode.org"
	// Path of the emoji-test.txt document for the cataloged dataset version.
	Path = "/Public/emoji/13.0/emoji-test.txt"
	// Port is the standard unencrypted web port.
	Port = "80"
)

var (
	// ErrUnexpectedStatus means the server did not send the expected payload.
	ErrUnexpectedStatus  = errors.New("unexpected response status")
	ErrConnectionFailed  = errors.New("connection failed")
	ErrMalformedResponse = errors.New("response missing body")
)

// DialFunc opens a stream connection to addr.
type DialFunc func(ctx context.Context, network, addr string) (net.Conn, error)

// Fetcher downloads the emoji test document.
type Fetcher struct {
	// Dial defaults to a net.Dialer.
	Dial DialFunc

	// ReadTimeout bounds the whole exchange once connected. Zero means wait
	// until the peer closes.
	ReadTimeout time.Duration

	logger *zap.Logger
}

// New returns a Fetcher using the system dialer.
func New(logger *zap.Logger, readTimeout time.Duration) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{
		Dial:        (&net.Dialer{}).DialContext,
		ReadTimeout: readTimeout,
		logger:      logger,
	}
}

// Request returns the literal request sent for resource on host.
func Request(host, resource string) string {
	return "GET " + resource + " HTTP/1.1\r\n" +
		"Host: " + host + "\r\n" +
		"\r\n"
}

// Fetch downloads the emoji test document and returns its body.
func (f *Fetcher) Fetch(ctx context.Context) (string, error) {
	return f.FetchResource(ctx, Host, Path)
}

// FetchResource requests resource from host on the web port and returns the
// response body. The whole response is held in memory; the peer is expected
// to close the connection after sending it.
func (f *Fetcher) FetchResource(ctx context.Context, host, resource string) (string, error) {
	logger := f.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	dial := f.Dial
	if dial == nil {
		dial = (&net.Dialer{}).DialContext
	}

	logger.Info("Fetching", zap.String("host", host), zap.String("resource", resource))
	start := time.Now()

	conn, err := dial(ctx, "tcp", net.JoinHostPort(host, Port))
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrConnectionFailed, host, err)
	}
	defer conn.Close()

	if f.ReadTimeout > 0 {
		if err := conn.SetDeadline(time.Now().Add(f.ReadTimeout)); err != nil {
			return "", fmt.Errorf("%w: set deadline: %v", ErrConnectionFailed, err)
		}
	}

	if _, err := io.WriteString(conn, Request(host, resource)); err != nil {
		return "", fmt.Errorf("%w: write request: %v", ErrConnectionFailed, err)
	}

	raw, err := io.ReadAll(conn)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", ErrConnectionFailed, err)
	}

	logger.Debug("Response received",
		zap.Int("bytes", len(raw)),
		zap.Duration("elapsed", time.Since(start)))

	return ExtractBody(string(raw))
}

// ExtractBody validates a raw HTTP response and returns everything after the
// first blank line.
//
// The status check is a substring search for "200 OK" anywhere in the
// response, not a status line parse.
func ExtractBody(response string) (string, error) {
	if !strings.Contains(response, "200 OK") {
		return "", ErrUnexpectedStatus
	}

	_, body, found := strings.Cut(response, "\r\n\r\n")
	if !found {
		return "", ErrMalformedResponse
	}
	return body, nil
}

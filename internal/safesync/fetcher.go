// Package safesync reads the last known good revision a solution publishes
// over HTTP.
package safesync

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gclient-go/gclient/internal/logging"
)

// maxBody bounds the response; a revision is a short token.
const maxBody = 4096

// HTTPClient abstracts HTTP operations for testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Error reports a safesync lookup that did not produce a revision.
type Error struct {
	URL  string
	Err  error
	Hint string
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("safesync %s: %s", e.URL, e.Err)
	if e.Hint != "" {
		msg += "; " + e.Hint
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Fetcher retrieves safesync revisions.
type Fetcher struct {
	Client  HTTPClient
	Timeout time.Duration
}

// Revision fetches url and returns its trimmed body. An empty body means the
// server has no revision to offer and yields "".
func (f *Fetcher) Revision(ctx context.Context, url string) (string, error) {
	if f.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &Error{URL: url, Err: fmt.Errorf("creating request: %w", err)}
	}

	logger := logging.GetLogger("safesync")
	logger.Debug().Str("url", url).Msg("fetching safesync revision")
	resp, err := client.Do(req)
	if err != nil {
		return "", &Error{URL: url, Err: err, Hint: "check network connectivity, or pass --head to skip safesync"}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &Error{URL: url, Err: fmt.Errorf("HTTP %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody+1))
	if err != nil {
		return "", &Error{URL: url, Err: fmt.Errorf("reading response: %w", err)}
	}
	if len(body) > maxBody {
		return "", &Error{URL: url, Err: fmt.Errorf("response exceeds %d bytes", maxBody)}
	}

	rev := strings.TrimSpace(string(body))
	if strings.ContainsAny(rev, " \t\n@") {
		return "", &Error{URL: url, Err: fmt.Errorf("response %q is not a revision", rev)}
	}
	return rev, nil
}

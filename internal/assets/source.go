package assets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// DirSource serves assets from a file system. Asset paths are web-rooted
// ("/ferrari_f40.glb"), so the leading slash is dropped before opening.
type DirSource struct {
	FS fs.FS
}

func (s DirSource) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name := strings.TrimPrefix(path, "/")
	if !fs.ValidPath(name) {
		return nil, fmt.Errorf("invalid asset path %q", path)
	}
	f, err := s.FS.Open(name)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// HTTPSource fetches assets relative to BaseURL. Network errors and 5xx
// responses are retried with exponential backoff for up to MaxElapsed;
// other non-200 responses fail immediately.
type HTTPSource struct {
	BaseURL    string
	Client     *http.Client
	MaxElapsed time.Duration
}

// StatusError is a non-200 response from an HTTPSource.
type StatusError struct {
	URL    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: %d %s", e.URL, e.Status, http.StatusText(e.Status))
}

func (s HTTPSource) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	target, err := url.JoinPath(s.BaseURL, path)
	if err != nil {
		return nil, fmt.Errorf("asset url: %w", err)
	}
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = s.MaxElapsed
	if s.MaxElapsed <= 0 {
		policy.MaxElapsedTime = 10 * time.Second
	}

	var body []byte
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			statusErr := &StatusError{URL: target, Status: resp.StatusCode}
			if resp.StatusCode >= 500 {
				return statusErr
			}
			return backoff.Permanent(statusErr)
		}
		body, err = io.ReadAll(resp.Body)
		return err
	}

	if err := backoff.Retry(op, backoff.WithContext(policy, ctx)); err != nil {
		var perm *backoff.PermanentError
		if errors.As(err, &perm) {
			return nil, perm.Err
		}
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(body)), nil
}

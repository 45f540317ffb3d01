package fetcher

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
)

const (
	userAgent = "fetchbites/1.0"

	// DefaultMaxImageBytes caps a single image download.
	DefaultMaxImageBytes int64 = 20 * 1024 * 1024
)

// ErrPayloadTooLarge is wrapped by NetworkError when a body exceeds the
// fetcher's size cap.
var ErrPayloadTooLarge = errors.New("payload too large")

// ImageFetcher downloads the raw bytes behind a locator. Implementations make
// a single attempt; they do not retry or cache.
type ImageFetcher interface {
	Fetch(ctx context.Context, locator string) ([]byte, error)
}

type imageFetcher struct {
	client   *http.Client
	maxBytes int64
}

// NewImageFetcher returns an HTTP fetcher. A non-positive timeout leaves
// requests bounded only by their context.
func NewImageFetcher(timeout time.Duration) ImageFetcher {
	client := &http.Client{}
	if timeout > 0 {
		client.Timeout = timeout
	}
	return &imageFetcher{client: client, maxBytes: DefaultMaxImageBytes}
}

// NewImageFetcherWithClient wraps an existing client.
func NewImageFetcherWithClient(client *http.Client) ImageFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &imageFetcher{client: client, maxBytes: DefaultMaxImageBytes}
}

func (f *imageFetcher) Fetch(ctx context.Context, locator string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, locator, nil)
	if err != nil {
		return nil, &NetworkError{Locator: locator, Err: errors.Wrap(err, "build request")}
	}
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &NetworkError{Locator: locator, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &NetworkError{
			Locator:    locator,
			StatusCode: resp.StatusCode,
			Err:        errors.Newf("unexpected status %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, &NetworkError{Locator: locator, Err: errors.Wrap(err, "read body")}
	}
	if int64(len(body)) > f.maxBytes {
		return nil, &NetworkError{
			Locator: locator,
			Err:     errors.Wrapf(ErrPayloadTooLarge, "body exceeds %d bytes", f.maxBytes),
		}
	}

	logrus.WithFields(logrus.Fields{
		"locator":  locator,
		"bytes":    len(body),
		"duration": time.Since(start),
	}).Debug("fetched image")

	return body, nil
}

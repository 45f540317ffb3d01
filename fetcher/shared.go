package fetcher

import (
	"context"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

type sharedFetcher struct {
	next  ImageFetcher
	group singleflight.Group
}

// Shared wraps f so that concurrent fetches of the same locator, typically
// from different slots showing the same image, share one request. Each caller
// still receives its own copy of the bytes.
//
// The shared request is not cancelled when the caller that started it goes
// away, so other waiters are unaffected; it stays bounded by the wrapped
// fetcher's own timeout.
func Shared(f ImageFetcher) ImageFetcher {
	return &sharedFetcher{next: f}
}

func (s *sharedFetcher) Fetch(ctx context.Context, locator string) ([]byte, error) {
	detached := context.WithoutCancel(ctx)
	ch := s.group.DoChan(locator, func() (interface{}, error) {
		return s.next.Fetch(detached, locator)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			logrus.WithField("locator", locator).Debug("joined in-flight fetch")
		}
		data := res.Val.([]byte)
		out := make([]byte, len(data))
		copy(out, data)
		return out, nil
	case <-ctx.Done():
		return nil, &NetworkError{Locator: locator, Err: ctx.Err()}
	}
}

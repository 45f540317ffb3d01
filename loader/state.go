package loader

import "fetchbites/cache"

type Phase int

const (
	Idle Phase = iota
	Loading
	Loaded
)

func (p Phase) String() string {
	switch p {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	default:
		return "idle"
	}
}

// State is what a consumer renders from. A failed load is reported as Idle
// with Locator and Err set and no Image.
type State struct {
	Phase   Phase
	Locator string
	Image   *cache.Image
	Err     error
}

func (s State) IsLoading() bool {
	return s.Phase == Loading
}

// Failed reports whether the last load for Locator ended without an image.
func (s State) Failed() bool {
	return s.Phase == Idle && s.Err != nil
}

func (s State) isZero() bool {
	return s.Phase == Idle && s.Locator == "" && s.Image == nil && s.Err == nil
}

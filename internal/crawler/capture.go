package crawler

import (
	"errors"
	"image"

	"github.com/v0xg/termbrowse/internal/executor"
)

var (
	// ErrRetrieval covers navigation, network, DNS and timeout failures.
	ErrRetrieval = errors.New("retrieval failed")

	// ErrImage covers screenshot and decode failures.
	ErrImage = errors.New("snapshot failed")

	// ErrNoField is returned by Submit when the live page has no field
	// matching the requested name or id.
	ErrNoField = executor.ErrNoField
)

// Capture is the outcome of loading one page. Markup and Snapshot fail
// independently: a Capture with Err set may still carry a Snapshot and
// vice versa.
type Capture struct {
	// URL is the page address after redirects, or the requested target
	// when the browser could not report one.
	URL    string
	Markup string
	Err    error

	// Snapshot is already resampled to the requested terminal box.
	Snapshot    image.Image
	SnapshotErr error
}

// Failed returns a Capture for target where neither markup nor snapshot
// could be obtained.
func Failed(target string, err error) *Capture {
	return &Capture{URL: target, Err: err, SnapshotErr: err}
}

// Package cache stores rendered artifacts keyed by a hash of their inputs.
//
// Three backends implement [Cache]:
//   - [FileCache]: one JSON file per entry under a directory, used by the CLI
//   - [RedisCache]: shared storage for the HTTP server
//   - [NullCache]: stores nothing, used with --no-cache and in tests
//
// Keys are built by a [Keyer]. [DefaultKeyer] hashes every input that
// influences an artifact so that any change to the enclosure, grouping or
// format produces a new key. [ScopedKeyer] prefixes keys to share one
// backend between several deployments.
package cache

import (
	"context"
	"time"
)

// Default time-to-live values.
const (
	// ArtifactTTL is how long rendered artifacts stay cached.
	ArtifactTTL = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the data stored under key and whether it was found.
	// Expired and unreadable entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A non-positive ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey identifies one rendered artifact of one group.
	ArtifactKey(inputHash string, opts ArtifactKeyOpts) string

	// PanelsKey identifies the derived panel groups of an enclosure.
	PanelsKey(inputHash string) string
}

// ArtifactKeyOpts are the render parameters that distinguish artifacts
// built from the same input.
type ArtifactKeyOpts struct {
	Group  string `json:"group"`
	Format string `json:"format"`
	Size   int    `json:"size,omitempty"`
}

// DefaultKeyer is the unscoped [Keyer].
type DefaultKeyer struct{}

// NewDefaultKeyer returns a [DefaultKeyer].
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", inputHash, opts)
}

// PanelsKey returns "panels:<sha256>".
func (DefaultKeyer) PanelsKey(inputHash string) string {
	return hashKey("panels", inputHash)
}

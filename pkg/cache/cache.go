// Package cache stores derived rendering artifacts between runs.
//
// The mobility math is closed-form and never cached, but layouts and rendered
// images are: re-running the same simulation with the same options should not
// shell out to rsvg-convert again. Keys are content hashes of the inputs, so
// a cache never serves stale output for changed fragments.
//
// Three backends are provided: FileCache (the CLI default, XDG cache dir),
// RedisCache (for shared setups, enabled via config), and NullCache (caching
// disabled).
package cache

import (
	"context"
	"time"
)

// TTLs for the cached stages. Layouts and artifacts are pure functions of
// their inputs, so the TTL exists only to bound disk usage.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A TTL of zero means no
	// expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKeyOpts are the options that affect layout computation and therefore
// participate in the layout cache key.
type LayoutKeyOpts struct {
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	GelLengthCM float64 `json:"gel_length_cm"`
	Title       string  `json:"title"`
}

// ArtifactKeyOpts are the options that affect rendered output and therefore
// participate in the artifact cache key.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Style  string  `json:"style"`
	Scale  float64 `json:"scale"`
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// LayoutKey keys a computed layout by the hash of the simulation input
	// and the layout options.
	LayoutKey(inputHash string, opts LayoutKeyOpts) string

	// ArtifactKey keys a rendered artifact by the hash of the layout it was
	// rendered from and the render options.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(inputHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", inputHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

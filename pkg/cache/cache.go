// Package cache provides result caching for pipeline runs. A run is a
// pure function of its input geometry and options, so a cached result
// keyed by their hash is always valid until evicted.
package cache

import (
	"context"
	"time"
)

// TTLRun is how long a cached pipeline result stays valid. Results are
// deterministic, so the TTL only bounds disk usage.
const TTLRun = 7 * 24 * time.Hour

// Cache stores opaque byte values under string keys with optional
// expiry.
type Cache interface {
	// Get retrieves a value. The second result reports whether the
	// key was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A non-positive ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value; deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// RunKeyOpts are the option values that affect a run's output and
// therefore participate in its cache key.
type RunKeyOpts struct {
	Engine            string  `json:"engine"`
	BufferRadius      float64 `json:"buffer_radius"`
	RasterScale       float64 `json:"raster_scale"`
	SimplifyTolerance float64 `json:"simplify_tolerance"`
	KnotRemoval       bool    `json:"knot_removal"`
	SegmentedBuffer   bool    `json:"segmented_buffer"`
	SeedScale         float64 `json:"seed_scale"`
	SnapTolerance     float64 `json:"snap_tolerance"`
	HoleMaxArea       int     `json:"hole_max_area"`
	MaxPixels         int     `json:"max_pixels"`
}

// Keyer derives cache keys for pipeline runs.
type Keyer interface {
	// RunKey builds the key for a run over the hashed input geometry
	// with the given options.
	RunKey(inputHash string, opts RunKeyOpts) string
}

// DefaultKeyer hashes the input hash and normalized options together.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// RunKey implements Keyer.
func (DefaultKeyer) RunKey(inputHash string, opts RunKeyOpts) string {
	return hashKey("run", inputHash, opts)
}

// Package cache stores rendered documents and loaded graphs between runs.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the HTTP server
//   - [NullCache]: caching disabled
//
// # Keys
//
// A [Keyer] derives keys from content hashes. Rendered artifacts are keyed
// by the hash of the graph's N-Quads encoding and every option that changes
// the output, so a changed graph or option never hits a stale entry.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// TTLs for the kinds of entries written by the pipeline.
const (
	// TTLSource bounds how long a graph loaded from a remote store is reused.
	TTLSource = 10 * time.Minute

	// TTLArtifact applies to rendered documents. They are content addressed,
	// so the TTL only limits disk and memory use.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the entry stored under key. A missing or expired entry is
	// reported as a miss, not an error.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend.
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	// SourceKey is the key of a graph loaded from a named source.
	SourceKey(source string) string

	// ArtifactKey is the key of one rendered format of a graph.
	ArtifactKey(graphHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts lists every option that changes a rendered artifact.
type ArtifactKeyOpts struct {
	Format          string            `json:"format"`
	Vocabulary      string            `json:"vocabulary,omitempty"`
	Namespaces      []string          `json:"namespaces,omitempty"`
	Overrides       map[string]string `json:"overrides,omitempty"`
	IgnoreNamespace string            `json:"ignore,omitempty"`
	CURIEKeys       bool              `json:"curie,omitempty"`
	HTMLBase        string            `json:"html_base,omitempty"`
	Detailed        bool              `json:"detailed,omitempty"`
}

// DefaultKeyer produces keys of the form kind:sha256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default key scheme.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// SourceKey implements [Keyer].
func (DefaultKeyer) SourceKey(source string) string {
	return hashKey("source", source)
}

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", graphHash, opts)
}

// hashKey returns prefix:sha256(json(parts)).
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// NullCache never stores anything. It is used when caching is disabled.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache { return NullCache{} }

// Get always misses.
func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

// Set discards data.
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

// Delete does nothing.
func (NullCache) Delete(context.Context, string) error { return nil }

// Close does nothing.
func (NullCache) Close() error { return nil }

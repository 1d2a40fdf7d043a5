// Package config loads rdftree settings from a TOML file and name overrides
// from YAML files.
//
// A configuration file looks like:
//
//	vocabulary  = "http://purl.org/ontology/rdf-result/"
//	namespaces  = ["http://example.org/core/", "http://schema.org/"]
//	formats     = ["json", "xml"]
//	html_base   = "https://example.org/browse?uri="
//	overrides_file = "names.yaml"
//
//	[prefixes]
//	core = "http://example.org/core/"
//
//	[overrides]
//	"http://www.w3.org/2000/01/rdf-schema#label" = "label"
//
//	[cache]
//	ttl = "24h"
//	redis_addr = "localhost:6379"
//
//	[server]
//	addr = ":8080"
//
//	[mongo]
//	uri = "mongodb://localhost:27017"
//	database = "rdftree"
//	collection = "statements"
//
// Unknown keys are rejected so that typos surface as errors.
package config

import (
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/rdftree/pkg/errors"
	"github.com/matzehuels/rdftree/pkg/names"
)

// FileName is the configuration file looked up in the working directory.
const FileName = "rdftree.toml"

// Config is the decoded configuration file.
type Config struct {
	// Vocabulary is the namespace of the result vocabulary.
	Vocabulary string `toml:"vocabulary"`

	// Namespaces are prioritised when short names collide.
	Namespaces []string `toml:"namespaces"`

	// Prefixes maps prefix to namespace and is added to every loaded graph.
	Prefixes map[string]string `toml:"prefixes"`

	// Overrides maps resource IRIs to fixed names.
	Overrides map[string]string `toml:"overrides"`

	// OverridesFile is a YAML file of further overrides, relative to the
	// configuration file. Entries in Overrides win.
	OverridesFile string `toml:"overrides_file"`

	// Formats are rendered when no format is given on the command line.
	Formats []string `toml:"formats"`

	// HTMLBase prefixes the links of the HTML rendering.
	HTMLBase string `toml:"html_base"`

	// CURIEKeys keys JSON fields by prefix:local instead of short names.
	CURIEKeys bool `toml:"curie_keys"`

	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
	Mongo  MongoConfig  `toml:"mongo"`

	// path is the file the configuration was read from, if any.
	path string
}

// CacheConfig selects and tunes the render cache.
type CacheConfig struct {
	Dir           string        `toml:"dir"`
	Disabled      bool          `toml:"disabled"`
	TTL           time.Duration `toml:"ttl"`
	RedisAddr     string        `toml:"redis_addr"`
	RedisPassword string        `toml:"redis_password"`
	RedisDB       int           `toml:"redis_db"`
	KeyPrefix     string        `toml:"key_prefix"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	Addr string `toml:"addr"`

	// MaxBodyBytes bounds uploaded graphs.
	MaxBodyBytes int64 `toml:"max_body_bytes"`
}

// MongoConfig locates graph snapshots stored in MongoDB.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Default values.
const (
	DefaultAddr         = ":8080"
	DefaultMaxBodyBytes = 10 << 20
	DefaultDatabase     = "rdftree"
	DefaultCollection   = "statements"
)

// Default returns the configuration used when no file is found.
func Default() *Config {
	c := &Config{}
	c.setDefaults()
	return c
}

func (c *Config) setDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.MaxBodyBytes <= 0 {
		c.Server.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.Mongo.Database == "" {
		c.Mongo.Database = DefaultDatabase
	}
	if c.Mongo.Collection == "" {
		c.Mongo.Collection = DefaultCollection
	}
}

// Path returns the file the configuration was loaded from, or "".
func (c *Config) Path() string { return c.path }

// Load reads the configuration at path. With an empty path, Load looks for
// [FileName] in the working directory and then in the user configuration
// directory, and returns [Default] when neither exists.
func Load(path string) (*Config, error) {
	if path == "" {
		path = find()
		if path == "" {
			return Default(), nil
		}
	}
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s does not exist", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "open config %s", path)
	}
	defer f.Close()

	c, err := Decode(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	c.path = path

	if c.OverridesFile != "" {
		file := c.OverridesFile
		if !filepath.IsAbs(file) {
			file = filepath.Join(filepath.Dir(path), file)
		}
		fromFile, err := LoadOverrides(file)
		if err != nil {
			return nil, err
		}
		c.Overrides = MergeOverrides(fromFile, c.Overrides)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Decode parses a TOML configuration from r and applies defaults. It does
// not read the overrides file.
func Decode(r io.Reader) (*Config, error) {
	var c Config
	md, err := toml.NewDecoder(r).Decode(&c)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode TOML")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	c.setDefaults()
	return &c, nil
}

// Encode writes c as TOML.
func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Validate checks namespaces, prefixes, URLs and overrides.
func (c *Config) Validate() error {
	if c.Vocabulary != "" {
		if err := errors.ValidateNamespace(c.Vocabulary); err != nil {
			return errors.WithHint(err, "vocabulary must be the namespace IRI of the result vocabulary")
		}
	}
	for _, ns := range c.Namespaces {
		if err := errors.ValidateNamespace(ns); err != nil {
			return err
		}
	}
	for _, p := range slices.Sorted(maps.Keys(c.Prefixes)) {
		if err := errors.ValidatePrefix(p); err != nil {
			return err
		}
		if err := errors.ValidateNamespace(c.Prefixes[p]); err != nil {
			return err
		}
	}
	if c.HTMLBase != "" {
		if err := errors.ValidateURL(c.HTMLBase); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "html_base")
		}
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache ttl cannot be negative")
	}
	return names.ValidateOverrides(c.Overrides)
}

// find returns the first existing default configuration file.
func find() string {
	candidates := []string{FileName}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "rdftree", "config.toml"))
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

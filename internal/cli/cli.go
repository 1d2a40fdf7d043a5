package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/rdftree/pkg/cache"
	"github.com/matzehuels/rdftree/pkg/config"
	rdfio "github.com/matzehuels/rdftree/pkg/io"
	"github.com/matzehuels/rdftree/pkg/pipeline"
	store "github.com/matzehuels/rdftree/pkg/store/mongo"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "rdftree"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath is set by the persistent --config flag.
	configPath string
	// mongoURI is set by the persistent --mongo-uri flag and wins over the
	// configuration file.
	mongoURI string

	cfg *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// loadConfig loads the configuration file once per process.
func (c *CLI) loadConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	if c.mongoURI != "" {
		cfg.Mongo.URI = c.mongoURI
	}
	if cfg.Path() != "" {
		c.Logger.Debug("loaded config", "path", cfg.Path())
	}
	c.cfg = cfg
	return cfg, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. The returned cleanup
// closes the cache and the snapshot store.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, func(), error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, nil, err
	}

	ch, err := newCache(ctx, cfg.Cache, noCache)
	if err != nil {
		return nil, nil, err
	}
	var keyer cache.Keyer
	if cfg.Cache.KeyPrefix != "" {
		keyer = cache.NewScopedKeyer(cache.NewDefaultKeyer(), cfg.Cache.KeyPrefix)
	}

	runner := pipeline.NewRunner(ch, keyer, c.Logger)
	runner.TTL = cfg.Cache.TTL

	var st *store.Store
	if cfg.Mongo.URI != "" {
		st, err = c.openStore(ctx)
		if err != nil {
			ch.Close()
			return nil, nil, err
		}
		runner.Store = st
	}

	cleanup := func() {
		if err := runner.Close(); err != nil {
			c.Logger.Debug("close cache", "error", err)
		}
		if st != nil {
			_ = st.Close(context.Background())
		}
	}
	return runner, cleanup, nil
}

// newCache picks Redis when an address is configured and the file cache
// otherwise.
func newCache(ctx context.Context, cfg config.CacheConfig, noCache bool) (cache.Cache, error) {
	if noCache || cfg.Disabled {
		return cache.NewNullCache(), nil
	}
	if cfg.RedisAddr != "" {
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	}
	dir := cfg.Dir
	if dir == "" {
		d, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		dir = d
	}
	return cache.NewFileCache(dir)
}

// openStore connects to the configured MongoDB snapshot store.
func (c *CLI) openStore(ctx context.Context) (*store.Store, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	return store.Connect(ctx, store.Config{
		URI:        cfg.Mongo.URI,
		Database:   cfg.Mongo.Database,
		Collection: cfg.Mongo.Collection,
	})
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/rdftree/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Flags
// =============================================================================

// buildFlags are the tree building options shared by convert, names and
// serve.
type buildFlags struct {
	vocabulary    string
	namespaces    []string
	prefixes      map[string]string
	overrides     map[string]string
	overridesFile string
	inputFormat   string
	base          string
}

func (f *buildFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.vocabulary, "vocabulary", "", "namespace of the result vocabulary")
	fs.StringSliceVar(&f.namespaces, "namespace", nil, "namespace preferred when short names collide (repeatable, highest first)")
	fs.StringToStringVar(&f.prefixes, "prefix", nil, "extra prefix as name=namespace (repeatable)")
	fs.StringToStringVar(&f.overrides, "override", nil, "fixed short name as iri=name (repeatable)")
	fs.StringVar(&f.overridesFile, "overrides-file", "", "YAML file of name overrides")
	fs.StringVar(&f.inputFormat, "input-format", "", "input format: nquads or jsonld (default: from extension)")
	fs.StringVar(&f.base, "base", "", "base IRI for relative references in JSON-LD input")
}

// apply merges the flags over the configuration file into opts. Flags
// win; flag namespaces are tried before configured ones.
func (f *buildFlags) apply(cfg *config.Config, opts *pipeline.Options) error {
	opts.Vocabulary = cfg.Vocabulary
	if f.vocabulary != "" {
		opts.Vocabulary = f.vocabulary
	}
	opts.Namespaces = append(append([]string{}, f.namespaces...), cfg.Namespaces...)
	opts.Prefixes = config.MergeOverrides(cfg.Prefixes, f.prefixes)

	overrides := cfg.Overrides
	if f.overridesFile != "" {
		fromFile, err := config.LoadOverrides(f.overridesFile)
		if err != nil {
			return err
		}
		overrides = config.MergeOverrides(overrides, fromFile)
	}
	opts.Overrides = config.MergeOverrides(overrides, f.overrides)

	if f.inputFormat != "" {
		format, err := rdfio.ParseFormat(f.inputFormat)
		if err != nil {
			return err
		}
		opts.InputFormat = format
	}
	opts.Base = f.base
	return nil
}

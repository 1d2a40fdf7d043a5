package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/rdftree/pkg/cache"
	"github.com/matzehuels/rdftree/pkg/errors"
	rdfio "github.com/matzehuels/rdftree/pkg/io"
	"github.com/matzehuels/rdftree/pkg/names"
	"github.com/matzehuels/rdftree/pkg/observability"
	"github.com/matzehuels/rdftree/pkg/rdf"
	"github.com/matzehuels/rdftree/pkg/result"
	"github.com/matzehuels/rdftree/pkg/tree"
)

// GraphStore loads named graph snapshots. It is satisfied by
// [github.com/matzehuels/rdftree/pkg/store/mongo.Store].
type GraphStore interface {
	Load(ctx context.Context, name string) (*rdf.MemGraph, error)
}

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use it so the caching rules live in one place.
//
// The Runner holds no per-run state. Multiple goroutines can share one
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// Store resolves mongo: sources. Nil disables them.
	Store GraphStore

	// TTL replaces cache.TTLArtifact for rendered artifacts when positive.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// If logger is nil, the runner logs nothing.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = discard
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → build → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	start := time.Now()
	g, hit, err := r.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, err
	}
	res, err := r.ExecuteGraph(ctx, g, opts)
	if err != nil {
		return nil, err
	}
	res.Stats.LoadTime = time.Since(start) - res.Stats.BuildTime - res.Stats.RenderTime
	res.CacheInfo.SourceHit = hit
	return res, nil
}

// ExecuteGraph runs the build and render stages on a graph that is
// already in memory. Artifacts are looked up by the graph's content hash
// first, so an unchanged graph is never rebuilt.
func (r *Runner) ExecuteGraph(ctx context.Context, g rdf.Graph, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	data, err := rdfio.MarshalNQuads(g)
	if err != nil {
		return nil, err
	}
	res := &Result{
		Graph:     g,
		GraphHash: cache.Hash(data),
		Artifacts: make(map[string][]byte, len(opts.Formats)),
	}
	res.Stats.Statements = len(g.Statements(rdf.Pattern{}))

	if !opts.Refresh {
		if artifacts, ok := r.cachedArtifacts(ctx, res.GraphHash, opts); ok {
			res.Artifacts = artifacts
			res.CacheInfo.RenderHit = true
			opts.Logger.Debug("artifacts from cache", "hash", res.GraphHash[:12], "formats", opts.Formats)
			return res, nil
		}
	}

	buildStart := time.Now()
	sel, t, err := r.Build(ctx, g, opts)
	if err != nil {
		return nil, err
	}
	res.Selection, res.Tree = sel, t
	res.Stats.BuildTime = time.Since(buildStart)
	res.Stats.Branches = t.Len()

	renderStart := time.Now()
	artifacts, err := r.Render(ctx, t, opts)
	if err != nil {
		return nil, err
	}
	res.Artifacts = artifacts
	res.Stats.RenderTime = time.Since(renderStart)

	for format, out := range artifacts {
		key := r.Keyer.ArtifactKey(res.GraphHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, out, r.artifactTTL()); err != nil {
			opts.Logger.Warn("cache write failed", "format", format, "error", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, key, len(out))
	}
	return res, nil
}

// cachedArtifacts returns every requested format from the cache, or false
// when at least one is missing.
func (r *Runner) cachedArtifacts(ctx context.Context, graphHash string, opts Options) (map[string][]byte, bool) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(graphHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			observability.Cache().OnCacheMiss(ctx, key)
			return nil, false
		}
		observability.Cache().OnCacheHit(ctx, key)
		artifacts[format] = data
	}
	return artifacts, true
}

// LoadWithCacheInfo reads the source graph and reports whether it came
// from the cache. Only mongo: snapshots are cached; local files are
// always read from disk.
func (r *Runner) LoadWithCacheInfo(ctx context.Context, opts Options) (*rdf.MemGraph, bool, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, false, err
	}
	if err := opts.ValidateForBuild(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, opts.Source)
	start := time.Now()

	g, hit, err := r.load(ctx, opts)
	statements := 0
	if g != nil {
		statements = g.Len()
	}
	hooks.OnLoadComplete(ctx, opts.Source, statements, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	opts.Logger.Info("loaded graph",
		"source", opts.Source,
		"statements", statements,
		"cached", hit,
		"duration", time.Since(start))
	return g, hit, nil
}

// Load is a convenience wrapper that discards the cache hit info.
func (r *Runner) Load(ctx context.Context, opts Options) (*rdf.MemGraph, error) {
	g, _, err := r.LoadWithCacheInfo(ctx, opts)
	return g, err
}

func (r *Runner) load(ctx context.Context, opts Options) (*rdf.MemGraph, bool, error) {
	readOpts := rdfio.Options{Format: opts.InputFormat, Base: opts.Base, Prefixes: opts.Prefixes}
	if !opts.IsMongoSource() {
		g, err := rdfio.Import(ctx, opts.Source, readOpts)
		return g, false, err
	}

	if r.Store == nil {
		return nil, false, errors.WithHint(
			errors.New(errors.ErrCodeInvalidConfig, "source %s needs a MongoDB connection", opts.Source),
			"set mongo.uri in rdftree.toml or pass --mongo-uri")
	}

	key := r.Keyer.SourceKey(opts.Source)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			readOpts.Format = rdfio.FormatNQuads
			if g, err := rdfio.Read(ctx, bytes.NewReader(data), readOpts); err == nil {
				observability.Cache().OnCacheHit(ctx, key)
				return g, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, key)
	}

	g, err := r.Store.Load(ctx, opts.MongoName())
	if err != nil {
		return nil, false, err
	}
	for prefix, ns := range opts.Prefixes {
		g.SetPrefix(prefix, ns)
	}
	if data, err := rdfio.MarshalNQuads(g); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLSource); err == nil {
			observability.Cache().OnCacheSet(ctx, key, len(data))
		}
	}
	return g, false, nil
}

// Build selects the roots of g, resolves display names and expands the
// canonical tree.
func (r *Runner) Build(ctx context.Context, g rdf.Graph, opts Options) (*result.Selection, *tree.Tree, error) {
	if err := opts.ValidateForBuild(); err != nil {
		return nil, nil, err
	}
	r.applyLogger(&opts)

	statements := len(g.Statements(rdf.Pattern{}))
	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx, statements)
	start := time.Now()

	sel, t, err := build(g, opts)
	shape, branches := "", 0
	if sel != nil {
		shape = sel.Shape.String()
	}
	if t != nil {
		branches = t.Len()
	}
	hooks.OnBuildComplete(ctx, shape, branches, time.Since(start), err)
	if err != nil {
		return nil, nil, err
	}

	opts.Logger.Info("built tree",
		"shape", shape,
		"branches", branches,
		"duration", time.Since(start))
	return sel, t, nil
}

func build(g rdf.Graph, opts Options) (*result.Selection, *tree.Tree, error) {
	vocab := opts.Vocab()
	sel, err := result.Select(g, vocab)
	if err != nil {
		return nil, nil, err
	}
	resolver, err := names.New(g, names.Options{
		Namespaces:      opts.Namespaces,
		Overrides:       opts.Overrides,
		IgnoreNamespace: vocab.Namespace,
	})
	if err != nil {
		return sel, nil, err
	}
	t := tree.FromSelection(g, resolver, sel, tree.Options{IgnoreNamespace: vocab.Namespace})
	t.Canonicalize()
	return sel, t, nil
}

// Render encodes t in every requested format.
func (r *Runner) Render(ctx context.Context, t *tree.Tree, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts, err := RenderTree(ctx, t, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", time.Since(start))
	return artifacts, nil
}

func (r *Runner) artifactTTL() time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return cache.TTLArtifact
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil || opts.Logger == discard {
		opts.Logger = r.Logger
	}
}

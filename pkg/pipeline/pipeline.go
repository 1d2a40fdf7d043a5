// Package pipeline provides the graph to document pipeline shared by the
// CLI and the HTTP server.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: read a graph from a file or a MongoDB snapshot
//  2. Build: select the roots, resolve short names and expand the tree
//  3. Render: encode the tree as JSON-LD, XML, HTML or a diagram
//
// Rendered artifacts are cached by the hash of the graph's N-Quads encoding
// and the options that influence the output.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Source:  "people.nq",
//	    Formats: []string{"json", "xml"},
//	})
//	if err != nil {
//	    return err
//	}
//	os.Stdout.Write(result.Artifacts["json"])
//
// A graph that is already in memory skips the load stage:
//
//	result, err := runner.ExecuteGraph(ctx, g, opts)
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/rdftree/pkg/cache"
	"github.com/matzehuels/rdftree/pkg/errors"
	rdfio "github.com/matzehuels/rdftree/pkg/io"
	"github.com/matzehuels/rdftree/pkg/names"
	"github.com/matzehuels/rdftree/pkg/rdf"
	"github.com/matzehuels/rdftree/pkg/result"
	"github.com/matzehuels/rdftree/pkg/tree"
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatXML  = "xml"
	FormatHTML = "html"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
)

// DefaultPNGScale is the resolution multiplier for PNG diagrams.
const DefaultPNGScale = 2.0

// MongoScheme prefixes sources that name a MongoDB snapshot.
const MongoScheme = "mongo:"

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatXML:  true,
	FormatHTML: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
}

var contentTypes = map[string]string{
	FormatJSON: "application/ld+json",
	FormatXML:  "application/xml; charset=utf-8",
	FormatHTML: "text/html; charset=utf-8",
	FormatDOT:  "text/vnd.graphviz; charset=utf-8",
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatPDF:  "application/pdf",
}

// ContentType returns the media type of a rendered format.
func ContentType(format string) string {
	if ct, ok := contentTypes[format]; ok {
		return ct
	}
	return "application/octet-stream"
}

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options
	Source      string            `json:"source,omitempty"` // file path or mongo:<name>
	InputFormat rdfio.Format      `json:"input_format,omitempty"`
	Base        string            `json:"base,omitempty"`
	Prefixes    map[string]string `json:"prefixes,omitempty"`
	Refresh     bool              `json:"refresh,omitempty"` // bypass cache reads

	// Build options
	Vocabulary string            `json:"vocabulary,omitempty"`
	Namespaces []string          `json:"namespaces,omitempty"`
	Overrides  map[string]string `json:"overrides,omitempty"`

	// Render options
	Formats   []string `json:"formats,omitempty"`
	CURIEKeys bool     `json:"curie_keys,omitempty"`
	HTMLBase  string   `json:"html_base,omitempty"`
	Detailed  bool     `json:"detailed,omitempty"` // diagram labels
	PNGScale  float64  `json:"png_scale,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the loaded graph.
	Graph rdf.Graph

	// GraphHash is the SHA-256 of the graph's N-Quads encoding.
	GraphHash string

	// Selection and Tree are nil when every artifact came from the cache.
	Selection *result.Selection
	Tree      *tree.Tree

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Statements int
	Branches   int
	LoadTime   time.Duration
	BuildTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	SourceHit bool // graph snapshot came from cache
	RenderHit bool // every artifact came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)",
			format, strings.Join(FormatNames(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// FormatNames returns the supported formats in lexical order.
func FormatNames() []string {
	out := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}

// ParseFormats parses a comma-separated format list, ignoring blanks and
// duplicates.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// ValidateAndSetDefaults checks the options and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForBuild(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks the source and sets defaults for loading.
func (o *Options) ValidateForLoad() error {
	o.setLogger()
	if o.Source == "" {
		return errors.New(errors.ErrCodeInvalidInput, "source is required")
	}
	if o.IsMongoSource() {
		if o.MongoName() == "" {
			return errors.New(errors.ErrCodeInvalidInput, "source %q names no snapshot", o.Source)
		}
		return nil
	}
	return errors.ValidatePath(o.Source)
}

// ValidateForBuild checks the vocabulary, namespaces and overrides.
func (o *Options) ValidateForBuild() error {
	o.setLogger()
	if o.Vocabulary != "" {
		if err := errors.ValidateNamespace(o.Vocabulary); err != nil {
			return err
		}
	}
	for _, ns := range o.Namespaces {
		if err := errors.ValidateNamespace(ns); err != nil {
			return err
		}
	}
	for p, ns := range o.Prefixes {
		if err := errors.ValidatePrefix(p); err != nil {
			return err
		}
		if err := errors.ValidateNamespace(ns); err != nil {
			return err
		}
	}
	// Overrides merged from several sources are only checked here, before
	// any graph is loaded or scanned.
	return names.ValidateOverrides(o.Overrides)
}

// ValidateForRender checks formats and sets render defaults.
func (o *Options) ValidateForRender() error {
	o.setLogger()
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.PNGScale <= 0 {
		o.PNGScale = DefaultPNGScale
	}
	if o.HTMLBase != "" {
		if err := errors.ValidateURL(o.HTMLBase); err != nil {
			return err
		}
	}
	return ValidateFormats(o.Formats)
}

// discard is the logger of options that were validated without one. A
// [Runner] replaces it with its own logger.
var discard = log.NewWithOptions(io.Discard, log.Options{})

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = discard
	}
}

// IsMongoSource reports whether Source names a MongoDB snapshot.
func (o *Options) IsMongoSource() bool {
	return strings.HasPrefix(o.Source, MongoScheme)
}

// MongoName returns the snapshot name of a mongo: source.
func (o *Options) MongoName() string {
	return strings.TrimPrefix(o.Source, MongoScheme)
}

// Vocab returns the result vocabulary for the configured namespace.
func (o *Options) Vocab() result.Vocabulary {
	return result.NewVocabulary(o.Vocabulary)
}

// ArtifactKeyOpts returns cache key options for one rendered format.
// Options that do not affect format are left out so that, for example,
// changing the HTML base does not invalidate cached JSON.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:          format,
		Vocabulary:      o.Vocab().Namespace,
		Namespaces:      o.Namespaces,
		Overrides:       o.Overrides,
		IgnoreNamespace: o.Vocab().Namespace,
	}
	switch format {
	case FormatJSON:
		k.CURIEKeys = o.CURIEKeys
	case FormatHTML:
		k.HTMLBase = o.HTMLBase
	case FormatDOT, FormatSVG, FormatPDF:
		k.Detailed = o.Detailed
	case FormatPNG:
		k.Detailed = o.Detailed
		k.Format = fmt.Sprintf("%s@%g", format, o.PNGScale)
	}
	return k
}

package server

import (
	"mime"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/pquerna/cachecontrol/cacheobject"

	"github.com/matzehuels/rdftree/pkg/cache"
	"github.com/matzehuels/rdftree/pkg/errors"
	rdfio "github.com/matzehuels/rdftree/pkg/io"
	"github.com/matzehuels/rdftree/pkg/pipeline"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleFormats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"formats": pipeline.FormatNames()})
}

func (s *Server) handleGraphs(w http.ResponseWriter, r *http.Request) {
	if s.lister == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "no snapshot store is configured"))
		return
	}
	names, err := s.lister.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"graphs": names})
}

// handleConvert converts the graph in the request body.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	opts, err := s.options(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	in, err := inputFormat(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	base := r.URL.Query().Get("base")
	if base == "" {
		base = s.defaults.Base
	}
	body := http.MaxBytesReader(w, r.Body, s.maxBody)
	g, err := rdfio.Read(r.Context(), body, rdfio.Options{Format: in, Base: base, Prefixes: s.defaults.Prefixes})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.runner.ExecuteGraph(r.Context(), g, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeArtifact(w, r, res, opts.Formats[0])
}

// handleTree converts a stored snapshot.
func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	if s.runner.Store == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "no snapshot store is configured"))
		return
	}
	opts, err := s.options(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Source = pipeline.MongoScheme + chi.URLParam(r, "name")

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeArtifact(w, r, res, opts.Formats[0])
}

// options merges the query string of r over the server defaults.
func (s *Server) options(r *http.Request) (pipeline.Options, error) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		return pipeline.Options{}, err
	}

	d := s.defaults
	opts := pipeline.Options{
		Vocabulary: d.Vocabulary,
		Namespaces: slices.Clone(d.Namespaces),
		Prefixes:   d.Prefixes,
		Overrides:  d.Overrides,
		Formats:    []string{format},
		CURIEKeys:  d.CURIEKeys,
		HTMLBase:   d.HTMLBase,
		Detailed:   d.Detailed,
		PNGScale:   d.PNGScale,
		Refresh:    noCache(r),
		Logger:     loggerFrom(r.Context(), s.logger),
	}

	q := r.URL.Query()
	if v := q.Get("vocabulary"); v != "" {
		opts.Vocabulary = v
	}
	if ns := q["namespace"]; len(ns) > 0 {
		opts.Namespaces = append(slices.Clone(ns), opts.Namespaces...)
	}
	if v := q.Get("html_base"); v != "" {
		opts.HTMLBase = v
	}
	for name, dst := range map[string]*bool{"curie_keys": &opts.CURIEKeys, "detailed": &opts.Detailed} {
		v := q.Get(name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return pipeline.Options{}, errors.New(errors.ErrCodeInvalidInput, "%s must be a boolean, got %q", name, v)
		}
		*dst = b
	}
	return opts, nil
}

// noCache reports whether the client asked to bypass cached artifacts.
func noCache(r *http.Request) bool {
	if strings.EqualFold(r.Header.Get("Pragma"), "no-cache") {
		return true
	}
	cc, err := cacheobject.ParseRequestCacheControl(r.Header.Get("Cache-Control"))
	if err != nil {
		return false
	}
	return cc.NoCache || cc.NoStore
}

// inputFormat picks the upload format from the input query parameter or
// the Content-Type header. N-Quads is assumed when neither is set.
func inputFormat(r *http.Request) (rdfio.Format, error) {
	if v := r.URL.Query().Get("input"); v != "" {
		return rdfio.ParseFormat(v)
	}
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return rdfio.FormatNQuads, nil
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidFormat, err, "malformed Content-Type %q", ct)
	}
	switch mt {
	case "application/n-quads", "application/n-triples", "text/plain":
		return rdfio.FormatNQuads, nil
	case "application/ld+json", "application/json":
		return rdfio.FormatJSONLD, nil
	}
	return "", errors.WithHint(
		errors.New(errors.ErrCodeInvalidFormat, "unsupported Content-Type %q", mt),
		"send application/n-quads or application/ld+json, or set ?input=")
}

// writeArtifact writes one rendered format with validators derived from
// its content.
func writeArtifact(w http.ResponseWriter, r *http.Request, res *pipeline.Result, format string) {
	data := res.Artifacts[format]
	etag := `"` + cache.Hash(data)[:32] + `"`

	h := w.Header()
	h.Set("ETag", etag)
	h.Set("X-Graph-Hash", res.GraphHash)
	if res.CacheInfo.RenderHit {
		h.Set("X-Cache", "hit")
	} else {
		h.Set("X-Cache", "miss")
	}

	if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	h.Set("Content-Type", pipeline.ContentType(format))
	h.Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

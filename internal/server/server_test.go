package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/rdftree/pkg/errors"
	"github.com/matzehuels/rdftree/pkg/pipeline"
	"github.com/matzehuels/rdftree/pkg/rdf"
)

const people = `# @prefix ex: <http://example.org/> .
<http://purl.org/ontology/rdf-result/this> <http://purl.org/ontology/rdf-result/item> <http://example.org/alice> .
<http://example.org/alice> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://example.org/Person> .
<http://example.org/alice> <http://example.org/name> "Alice" .
<http://example.org/alice> <http://example.org/knows> <http://example.org/bob> .
<http://example.org/bob> <http://example.org/name> "Bob" .
`

const peopleJSONLD = `{
  "@context": {"ex": "http://example.org/", "result": "http://purl.org/ontology/rdf-result/"},
  "@id": "result:this",
  "result:item": {"@id": "ex:alice", "ex:name": "Alice"}
}`

type memCache struct{ data map[string][]byte }

func (c *memCache) Get(_ context.Context, k string) ([]byte, bool, error) {
	d, ok := c.data[k]
	return d, ok, nil
}

func (c *memCache) Set(_ context.Context, k string, d []byte, _ time.Duration) error {
	c.data[k] = d
	return nil
}

func (c *memCache) Delete(_ context.Context, k string) error {
	delete(c.data, k)
	return nil
}

func (c *memCache) Close() error { return nil }

type memStore map[string]*rdf.MemGraph

func (s memStore) Load(_ context.Context, name string) (*rdf.MemGraph, error) {
	g, ok := s[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "no snapshot named %q", name)
	}
	return g, nil
}

func (s memStore) List(context.Context) ([]string, error) {
	out := make([]string, 0, len(s))
	for name := range s {
		out = append(out, name)
	}
	return out, nil
}

func newTestServer(t *testing.T, opts ...Option) (*httptest.Server, *pipeline.Runner) {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(&memCache{data: map[string][]byte{}}, nil, logger)
	srv := httptest.NewServer(New(runner, pipeline.Options{}, logger, opts...).Handler())
	t.Cleanup(srv.Close)
	return srv, runner
}

func post(t *testing.T, url, contentType, body string, header map[string]string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, url, strings.NewReader(body))
	require.NoError(t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(data)
}

func TestHealthAndFormats(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(RequestIDHeader))

	resp, err = http.Get(srv.URL + "/formats")
	require.NoError(t, err)
	defer resp.Body.Close()
	var body struct{ Formats []string }
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body.Formats, "json")
	assert.Contains(t, body.Formats, "xml")
}

func TestConvert(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := post(t, srv.URL+"/convert/json", "application/n-quads", people, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/ld+json", resp.Header.Get("Content-Type"))
	assert.Equal(t, "miss", resp.Header.Get("X-Cache"))
	assert.Len(t, resp.Header.Get("X-Graph-Hash"), 64)
	body := readBody(t, resp)
	assert.Contains(t, body, `"name": "Alice"`)

	again := post(t, srv.URL+"/convert/json", "application/n-quads", people, nil)
	assert.Equal(t, "hit", again.Header.Get("X-Cache"))
	assert.Equal(t, body, readBody(t, again))

	refreshed := post(t, srv.URL+"/convert/json", "application/n-quads", people,
		map[string]string{"Cache-Control": "no-cache"})
	assert.Equal(t, "miss", refreshed.Header.Get("X-Cache"))
}

func TestConvertNotModified(t *testing.T) {
	srv, _ := newTestServer(t)

	first := post(t, srv.URL+"/convert/xml", "", people, nil)
	require.Equal(t, http.StatusOK, first.StatusCode)
	etag := first.Header.Get("ETag")
	require.NotEmpty(t, etag)

	second := post(t, srv.URL+"/convert/xml", "", people, map[string]string{"If-None-Match": etag})
	assert.Equal(t, http.StatusNotModified, second.StatusCode)
}

func TestConvertJSONLDInput(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := post(t, srv.URL+"/convert/xml", "application/ld+json", peopleJSONLD, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Alice")

	resp = post(t, srv.URL+"/convert/xml?input=jsonld", "text/turtle", peopleJSONLD, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestConvertQueryOptions(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := post(t, srv.URL+"/convert/json?curie_keys=true", "", people, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), `"ex:name": "Alice"`)

	resp = post(t, srv.URL+"/convert/html?html_base=https://example.org/browse%3Furi%3D", "", people, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "https://example.org/browse?uri=")
}

func TestConvertErrors(t *testing.T) {
	srv, _ := newTestServer(t, WithMaxBodyBytes(2048))

	tests := []struct {
		name        string
		path        string
		contentType string
		body        string
		status      int
		code        string
	}{
		{"unknown format", "/convert/gif", "", people, http.StatusBadRequest, "INVALID_FORMAT"},
		{"bad boolean", "/convert/json?detailed=maybe", "", people, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad content type", "/convert/json", "text/turtle", people, http.StatusBadRequest, "INVALID_FORMAT"},
		{"unparseable", "/convert/json", "", "<a> <b> .", http.StatusBadRequest, "INVALID_INPUT"},
		{"no root", "/convert/json", "", "<http://a> <http://b> <http://c> .\n", http.StatusUnprocessableEntity, "NO_ROOT"},
		{"too large", "/convert/json", "", strings.Repeat("# padding\n", 500), http.StatusRequestEntityTooLarge, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv.URL+tt.path, tt.contentType, tt.body, nil)
			assert.Equal(t, tt.status, resp.StatusCode)

			var body errorBody
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.NotEmpty(t, body.Error)
			assert.NotEmpty(t, body.RequestID)
			if tt.code != "" {
				assert.Equal(t, tt.code, body.Code)
			}
		})
	}
}

func TestRequestIDIsEchoed(t *testing.T) {
	srv, _ := newTestServer(t)
	const id = "0b3c8e4e-8d39-4c55-9d8b-6d2f1c1d2e3f"

	resp := post(t, srv.URL+"/convert/json", "", people, map[string]string{RequestIDHeader: id})
	assert.Equal(t, id, resp.Header.Get(RequestIDHeader))

	resp = post(t, srv.URL+"/convert/json", "", people, map[string]string{RequestIDHeader: "not-a-uuid"})
	assert.NotEqual(t, "not-a-uuid", resp.Header.Get(RequestIDHeader))
}

func TestStoredGraphs(t *testing.T) {
	g := rdf.NewMemGraph()
	g.SetPrefix("ex", "http://example.org/")
	g.MustAdd(rdf.IRI("http://purl.org/ontology/rdf-result/this"), rdf.IRI("http://purl.org/ontology/rdf-result/item"), rdf.IRI("http://example.org/alice"))
	g.MustAdd(rdf.IRI("http://example.org/alice"), rdf.IRI("http://example.org/name"), rdf.Literal("Alice"))
	store := memStore{"people": g}

	srv, runner := newTestServer(t, WithLister(store))

	resp, err := http.Get(srv.URL + "/graphs/people/tree.json")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "without a store snapshots are unavailable")

	runner.Store = store

	resp, err = http.Get(srv.URL + "/graphs")
	require.NoError(t, err)
	defer resp.Body.Close()
	var list struct{ Graphs []string }
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.Equal(t, []string{"people"}, list.Graphs)

	resp, err = http.Get(srv.URL + "/graphs/people/tree.xml")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Alice")

	resp, err = http.Get(srv.URL + "/graphs/nobody/tree.json")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGraphsWithoutLister(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, err := http.Get(srv.URL + "/graphs")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusUnprocessableEntity, statusFor(errors.New(errors.ErrCodeMalformedChain, "loop")))
	assert.Equal(t, http.StatusBadRequest, statusFor(errors.New(errors.ErrCodeInvalidOverrides, "dup")))
	assert.Equal(t, http.StatusNotFound, statusFor(errors.New(errors.ErrCodeFileNotFound, "gone")))
	assert.Equal(t, http.StatusNotImplemented, statusFor(errors.New(errors.ErrCodeUnsupported, "pdf")))
	assert.Equal(t, http.StatusInternalServerError, statusFor(io.ErrUnexpectedEOF))
}

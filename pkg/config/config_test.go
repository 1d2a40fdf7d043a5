package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/rdftree/pkg/errors"
)

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "names.yaml", `
overrides:
  http://schema.org/name: title
  http://schema.org/label: label
`)
	path := write(t, dir, "rdftree.toml", `
vocabulary = "http://example.org/result/"
namespaces = ["http://example.org/core/"]
formats = ["json", "html"]
html_base = "https://example.org/browse?uri="
overrides_file = "names.yaml"
curie_keys = true

[prefixes]
core = "http://example.org/core/"

[overrides]
"http://schema.org/label" = "caption"

[cache]
ttl = "2h"
redis_addr = "localhost:6379"

[server]
addr = ":9090"
`)

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, path, c.Path())
	assert.Equal(t, "http://example.org/result/", c.Vocabulary)
	assert.Equal(t, []string{"http://example.org/core/"}, c.Namespaces)
	assert.Equal(t, []string{"json", "html"}, c.Formats)
	assert.True(t, c.CURIEKeys)
	assert.Equal(t, map[string]string{"core": "http://example.org/core/"}, c.Prefixes)
	assert.Equal(t, map[string]string{
		"http://schema.org/name":  "title",
		"http://schema.org/label": "caption",
	}, c.Overrides)
	assert.Equal(t, 2*time.Hour, c.Cache.TTL)
	assert.Equal(t, "localhost:6379", c.Cache.RedisAddr)
	assert.Equal(t, ":9090", c.Server.Addr)
	assert.Equal(t, int64(DefaultMaxBodyBytes), c.Server.MaxBodyBytes)
	assert.Equal(t, DefaultCollection, c.Mongo.Collection)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
		code    errors.Code
	}{
		{"unknown key", `vocabulry = "http://example.org/"`, errors.ErrCodeInvalidConfig},
		{"bad toml", `namespaces = [`, errors.ErrCodeInvalidConfig},
		{"relative namespace", `namespaces = ["core/"]`, errors.ErrCodeInvalidConfig},
		{"bad prefix", "[prefixes]\n\"2x\" = \"http://example.org/\"", errors.ErrCodeInvalidConfig},
		{"bad html base", `html_base = "ftp://example.org/"`, errors.ErrCodeInvalidConfig},
		{"duplicate override", "[overrides]\n\"http://a/x\" = \"x\"\n\"http://b/x\" = \"x\"", errors.ErrCodeInvalidOverrides},
		{"missing overrides file", `overrides_file = "nope.yaml"`, errors.ErrCodeFileNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := write(t, dir, strings.ReplaceAll(tt.name, " ", "_")+".toml", tt.content)
			_, err := Load(path)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err), err.Error())
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound))
}

func TestDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, DefaultAddr, c.Server.Addr)
	assert.Equal(t, DefaultDatabase, c.Mongo.Database)
	assert.Empty(t, c.Path())
	assert.NoError(t, c.Validate())
}

func TestEncodeRoundTrip(t *testing.T) {
	c := Default()
	c.Namespaces = []string{"http://example.org/"}
	c.Formats = []string{"xml"}
	c.Cache.RedisAddr = "redis:6379"

	var buf bytes.Buffer
	require.NoError(t, c.Encode(&buf))

	back, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, c.Namespaces, back.Namespaces)
	assert.Equal(t, c.Formats, back.Formats)
	assert.Equal(t, c.Cache.RedisAddr, back.Cache.RedisAddr)
	assert.Equal(t, c.Server, back.Server)
}

func TestDecodeOverrides(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want map[string]string
	}{
		{"nested", "overrides:\n  http://a/x: x\n", map[string]string{"http://a/x": "x"}},
		{"flat", "http://a/x: x\nhttp://a/y: y\n", map[string]string{"http://a/x": "x", "http://a/y": "y"}},
		{"empty", "", map[string]string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeOverrides(strings.NewReader(tt.yaml))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := DecodeOverrides(strings.NewReader("http://a/x: x\nhttp://b/x: x\n"))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidOverrides))
}

func TestMergeOverrides(t *testing.T) {
	got := MergeOverrides(
		map[string]string{"a": "1", "b": "2"},
		map[string]string{"b": "3"},
	)
	assert.Equal(t, map[string]string{"a": "1", "b": "3"}, got)
}

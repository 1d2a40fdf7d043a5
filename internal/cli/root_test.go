package cli

import (
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/rdftree/pkg/config"
	"github.com/matzehuels/rdftree/pkg/pipeline"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, log.InfoLevel).RootCommand()

	for _, name := range []string{"convert", "names", "serve", "store", "cache", "config", "completion"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd == root {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	for _, flag := range []string{"config", "mongo-uri"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("persistent flag --%s missing", flag)
		}
	}
}

func TestConvertFlags(t *testing.T) {
	root := New(io.Discard, log.InfoLevel).RootCommand()
	cmd, _, err := root.Find([]string{"convert"})
	if err != nil {
		t.Fatal(err)
	}
	for _, flag := range []string{"format", "output", "vocabulary", "namespace", "prefix", "override", "overrides-file", "curie-keys", "html-base", "no-cache", "refresh"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("convert flag --%s missing", flag)
		}
	}
}

func TestBuildFlagsApply(t *testing.T) {
	cfg := &config.Config{
		Vocabulary: "http://example.org/result/",
		Namespaces: []string{"http://b.example/"},
		Prefixes:   map[string]string{"ex": "http://example.org/"},
		Overrides:  map[string]string{"http://example.org/name": "label", "http://example.org/age": "years"},
	}
	f := buildFlags{
		namespaces:  []string{"http://a.example/"},
		prefixes:    map[string]string{"foaf": "http://xmlns.com/foaf/0.1/"},
		overrides:   map[string]string{"http://example.org/name": "fullName"},
		inputFormat: "jsonld",
		base:        "http://example.org/base/",
	}

	var opts pipeline.Options
	if err := f.apply(cfg, &opts); err != nil {
		t.Fatalf("apply: %v", err)
	}

	if opts.Vocabulary != cfg.Vocabulary {
		t.Errorf("vocabulary = %q, want %q", opts.Vocabulary, cfg.Vocabulary)
	}
	if want := []string{"http://a.example/", "http://b.example/"}; !reflect.DeepEqual(opts.Namespaces, want) {
		t.Errorf("namespaces = %v, want %v", opts.Namespaces, want)
	}
	if len(opts.Prefixes) != 2 {
		t.Errorf("prefixes = %v, want config and flag prefixes", opts.Prefixes)
	}
	if got := opts.Overrides["http://example.org/name"]; got != "fullName" {
		t.Errorf("flag override = %q, want fullName", got)
	}
	if got := opts.Overrides["http://example.org/age"]; got != "years" {
		t.Errorf("config override = %q, want years", got)
	}
	if opts.InputFormat != "jsonld" {
		t.Errorf("input format = %q, want jsonld", opts.InputFormat)
	}
	if opts.Base != f.base {
		t.Errorf("base = %q, want %q", opts.Base, f.base)
	}
}

func TestBuildFlagsApplyVocabularyFlagWins(t *testing.T) {
	cfg := &config.Config{Vocabulary: "http://example.org/result/"}
	f := buildFlags{vocabulary: "http://other.example/result/"}

	var opts pipeline.Options
	if err := f.apply(cfg, &opts); err != nil {
		t.Fatal(err)
	}
	if opts.Vocabulary != f.vocabulary {
		t.Errorf("vocabulary = %q, want %q", opts.Vocabulary, f.vocabulary)
	}
}

func TestBuildFlagsApplyBadInputFormat(t *testing.T) {
	f := buildFlags{inputFormat: "turtle"}
	var opts pipeline.Options
	if err := f.apply(config.Default(), &opts); err == nil {
		t.Error("expected an error for an unknown input format")
	}
}

func TestBuildFlagsApplyOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "names.yaml")
	if err := os.WriteFile(path, []byte("http://example.org/name: label\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	f := buildFlags{overridesFile: path}

	var opts pipeline.Options
	if err := f.apply(config.Default(), &opts); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got := opts.Overrides["http://example.org/name"]; got != "label" {
		t.Errorf("override = %q, want label", got)
	}
}

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		output  string
		formats []string
		want    map[string]string
	}{
		{"text to stdout", "data/people.nq", "", []string{"json"}, map[string]string{"json": ""}},
		{"explicit stdout", "people.nq", "-", []string{"xml"}, map[string]string{"xml": ""}},
		{"single file", "people.nq", "out.json", []string{"json"}, map[string]string{"json": "out.json"}},
		{"binary next to source", "data/people.nq", "", []string{"png"}, map[string]string{"png": "data/people.png"}},
		{"several formats", "people.jsonld", "", []string{"json", "html"},
			map[string]string{"json": "people.json", "html": "people.html"}},
		{"base with format extension", "people.nq", "out/tree.json", []string{"json", "xml"},
			map[string]string{"json": "out/tree.json", "xml": "out/tree.xml"}},
		{"mongo source", "mongo:people", "", []string{"svg", "pdf"},
			map[string]string{"svg": "people.svg", "pdf": "people.pdf"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputPaths(tt.source, tt.output, tt.formats)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("outputPaths(%q, %q, %v) = %v, want %v", tt.source, tt.output, tt.formats, got, tt.want)
			}
		})
	}
}

func TestWriteStdoutAddsNewline(t *testing.T) {
	var buf stringWriter
	if err := writeStdout(&buf, []byte("{}")); err != nil {
		t.Fatal(err)
	}
	if buf.s != "{}\n" {
		t.Errorf("got %q, want %q", buf.s, "{}\n")
	}

	buf.s = ""
	if err := writeStdout(&buf, []byte("<List/>\n")); err != nil {
		t.Fatal(err)
	}
	if buf.s != "<List/>\n" {
		t.Errorf("got %q, want a single trailing newline", buf.s)
	}
}

type stringWriter struct{ s string }

func (w *stringWriter) Write(p []byte) (int, error) {
	w.s += string(p)
	return len(p), nil
}

func TestPipelineOptionsMergesConfig(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	c.cfg = &config.Config{
		Formats:   []string{"xml"},
		HTMLBase:  "https://example.org/browse?uri=",
		CURIEKeys: true,
	}

	opts, err := c.pipelineOptions("people.nq", &convertOpts{})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(opts.Formats, []string{"xml"}) {
		t.Errorf("formats = %v, want config formats", opts.Formats)
	}
	if !opts.CURIEKeys || opts.HTMLBase != c.cfg.HTMLBase {
		t.Errorf("config rendering options not applied: %+v", opts)
	}

	opts, err = c.pipelineOptions("people.nq", &convertOpts{formats: "json, html", htmlBase: "https://other.example/"})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(opts.Formats, []string{"json", "html"}) {
		t.Errorf("formats = %v, want flag formats", opts.Formats)
	}
	if opts.HTMLBase != "https://other.example/" {
		t.Errorf("html base = %q, want flag value", opts.HTMLBase)
	}
}

func TestFileCacheDir(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)

	c.cfg = &config.Config{Cache: config.CacheConfig{RedisAddr: "localhost:6379"}}
	if dir, err := c.fileCacheDir(); err != nil || dir != "" {
		t.Errorf("with redis: got %q, %v; want empty", dir, err)
	}

	c.cfg = &config.Config{Cache: config.CacheConfig{Dir: "/tmp/rdftree-cache"}}
	if dir, _ := c.fileCacheDir(); dir != "/tmp/rdftree-cache" {
		t.Errorf("configured dir: got %q", dir)
	}
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.FileName)

	root := New(io.Discard, log.InfoLevel).RootCommand()
	root.SetArgs([]string{"config", "init", path})
	if err := root.Execute(); err != nil {
		t.Fatalf("config init: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("written config does not load: %v", err)
	}
	if cfg.Server.Addr != config.DefaultAddr {
		t.Errorf("server addr = %q, want %q", cfg.Server.Addr, config.DefaultAddr)
	}

	root = New(io.Discard, log.InfoLevel).RootCommand()
	root.SetArgs([]string{"config", "init", path})
	root.SilenceErrors = true
	if err := root.Execute(); err == nil {
		t.Error("config init should refuse to overwrite an existing file")
	}
}

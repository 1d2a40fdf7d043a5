package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rdftree/pkg/pipeline"
)

// convertOpts holds the command-line flags for the convert command.
type convertOpts struct {
	build     buildFlags
	formats   string  // comma-separated output formats
	output    string  // output file (single format) or base path (multiple)
	curieKeys bool    // key JSON fields by prefix:local
	htmlBase  string  // link prefix for HTML output
	detailed  bool    // type and IRI in diagram labels
	pngScale  float64 // PNG resolution multiplier
	noCache   bool    // disable the artifact cache entirely
	refresh   bool    // ignore cached artifacts but store new ones
}

// textFormats may be written to stdout.
var textFormats = map[string]bool{
	pipeline.FormatJSON: true,
	pipeline.FormatXML:  true,
	pipeline.FormatHTML: true,
	pipeline.FormatDOT:  true,
	pipeline.FormatSVG:  true,
}

// convertCommand creates the convert command.
func (c *CLI) convertCommand() *cobra.Command {
	var opts convertOpts

	cmd := &cobra.Command{
		Use:   "convert <source>",
		Short: "Convert a result graph into a tree document",
		Long: `Convert reads an N-Quads or JSON-LD file, or a stored mongo:<name> snapshot,
builds the tree described by its result:this statements and writes it in one or
more formats.

A single text format is written to stdout unless --output is given. Several
formats, and binary formats (png, pdf), are written next to the source or to
the --output base path with the format as extension.`,
		Example: `  rdftree convert results.nq
  rdftree convert results.jsonld -f json,xml,html -o out/results
  rdftree convert mongo:people -f svg --detailed --mongo-uri mongodb://localhost:27017`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConvert(cmd.Context(), args[0], &opts)
		},
	}

	opts.build.register(cmd)
	fs := cmd.Flags()
	fs.StringVarP(&opts.formats, "format", "f", "", "output format(s): "+strings.Join(pipeline.FormatNames(), ", ")+" (comma-separated, default json)")
	fs.StringVarP(&opts.output, "output", "o", "", "output file (single format, - for stdout) or base path (multiple)")
	fs.BoolVar(&opts.curieKeys, "curie-keys", false, "key JSON fields and values by prefix:local")
	fs.StringVar(&opts.htmlBase, "html-base", "", "prefix of resource links in HTML output")
	fs.BoolVar(&opts.detailed, "detailed", false, "show types and IRIs in diagram labels")
	fs.Float64Var(&opts.pngScale, "png-scale", pipeline.DefaultPNGScale, "PNG resolution multiplier")
	fs.BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	fs.BoolVar(&opts.refresh, "refresh", false, "ignore cached artifacts")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)

	return cmd
}

// pipelineOptions merges the flags over the configuration file.
func (c *CLI) pipelineOptions(source string, o *convertOpts) (pipeline.Options, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return pipeline.Options{}, err
	}

	opts := pipeline.Options{
		Source:    source,
		Formats:   cfg.Formats,
		CURIEKeys: cfg.CURIEKeys || o.curieKeys,
		HTMLBase:  cfg.HTMLBase,
		Detailed:  o.detailed,
		PNGScale:  o.pngScale,
		Refresh:   o.refresh,
		Logger:    c.Logger,
	}
	if o.formats != "" {
		opts.Formats = pipeline.ParseFormats(o.formats)
	}
	if o.htmlBase != "" {
		opts.HTMLBase = o.htmlBase
	}
	if err := o.build.apply(cfg, &opts); err != nil {
		return pipeline.Options{}, err
	}
	return opts, nil
}

func (c *CLI) runConvert(ctx context.Context, source string, o *convertOpts) error {
	logger := loggerFromContext(ctx)

	opts, err := c.pipelineOptions(source, o)
	if err != nil {
		return err
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, cleanup, err := c.newRunner(ctx, o.noCache)
	if err != nil {
		return err
	}
	defer cleanup()

	paths := outputPaths(source, o.output, opts.Formats)
	toFiles := paths[opts.Formats[0]] != ""

	prog := newProgress(logger)
	var spinner *Spinner
	if toFiles && isTerminal(os.Stderr) {
		spinner = newSpinnerWithContext(ctx, os.Stderr, "Converting "+source)
		spinner.Start()
	}
	res, err := runner.Execute(ctx, opts)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}
	prog.done("Converted "+source,
		"statements", res.Stats.Statements,
		"branches", res.Stats.Branches,
		"cached", res.CacheInfo.RenderHit)

	if !toFiles {
		return writeStdout(os.Stdout, res.Artifacts[opts.Formats[0]])
	}

	printSuccess("Converted %s", StyleHighlight.Render(source))
	printStats(res)
	for _, format := range opts.Formats {
		path := paths[format]
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(path, res.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}

// outputPaths decides where each format is written. An empty path means
// stdout, which is used only for a single text format without --output
// or with --output -.
func outputPaths(source, output string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 {
		f := formats[0]
		switch {
		case output == "-":
			paths[f] = ""
			return paths
		case output != "":
			paths[f] = output
			return paths
		case textFormats[f]:
			paths[f] = ""
			return paths
		}
	}

	base := basePath(output, source)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

// basePath derives the base output path from the output and source.
// If output is empty, it strips the extension (or the mongo: scheme) from
// source. If output has a format extension, that extension is stripped.
func basePath(output, source string) string {
	if output == "" || output == "-" {
		name := strings.TrimPrefix(source, pipeline.MongoScheme)
		return strings.TrimSuffix(name, filepath.Ext(name))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeStdout writes data followed by a newline if it lacks one.
func writeStdout(w io.Writer, data []byte) error {
	if _, err := w.Write(data); err != nil {
		return err
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		_, err := io.WriteString(w, "\n")
		return err
	}
	return nil
}

// isTerminal reports whether f is attached to a character device.
func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

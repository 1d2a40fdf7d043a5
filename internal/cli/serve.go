package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rdftree/internal/server"
	"github.com/matzehuels/rdftree/pkg/config"
	"github.com/matzehuels/rdftree/pkg/pipeline"
)

type serveOpts struct {
	build     buildFlags
	addr      string
	curieKeys bool
	htmlBase  string
	detailed  bool
	noCache   bool
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve conversions over HTTP",
		Long: `Serve starts an HTTP server that converts uploaded graphs:

  POST /convert/{format}              convert the N-Quads or JSON-LD request body
  GET  /graphs                        list stored snapshots
  GET  /graphs/{name}/tree.{format}   convert a stored snapshot
  GET  /formats                       list output formats
  GET  /healthz                       liveness probe

Build flags set the defaults; requests may override the vocabulary,
namespaces and rendering options with query parameters.`,
		Example: `  rdftree serve --addr :9000
  curl --data-binary @results.nq -H 'Content-Type: application/n-quads' localhost:9000/convert/json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), &opts)
		},
	}

	opts.build.register(cmd)
	fs := cmd.Flags()
	fs.StringVar(&opts.addr, "addr", "", "listen address (default: [server] addr or "+config.DefaultAddr+")")
	fs.BoolVar(&opts.curieKeys, "curie-keys", false, "key JSON fields and values by prefix:local by default")
	fs.StringVar(&opts.htmlBase, "html-base", "", "prefix of resource links in HTML output")
	fs.BoolVar(&opts.detailed, "detailed", false, "show types and IRIs in diagram labels by default")
	fs.BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, o *serveOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	defaults := pipeline.Options{
		CURIEKeys: cfg.CURIEKeys || o.curieKeys,
		HTMLBase:  cfg.HTMLBase,
		Detailed:  o.detailed,
		PNGScale:  pipeline.DefaultPNGScale,
	}
	if o.htmlBase != "" {
		defaults.HTMLBase = o.htmlBase
	}
	if err := o.build.apply(cfg, &defaults); err != nil {
		return err
	}
	if err := defaults.ValidateForBuild(); err != nil {
		return err
	}

	runner, cleanup, err := c.newRunner(ctx, o.noCache)
	if err != nil {
		return err
	}
	defer cleanup()

	srvOpts := []server.Option{server.WithMaxBodyBytes(cfg.Server.MaxBodyBytes)}
	if l, ok := runner.Store.(server.Lister); ok {
		srvOpts = append(srvOpts, server.WithLister(l))
	}

	addr := o.addr
	if addr == "" {
		addr = cfg.Server.Addr
	}
	display := addr
	if strings.HasPrefix(display, ":") {
		display = "localhost" + display
	}
	printInfo("Listening on %s", StyleLink.Render("http://"+display))
	if runner.Store != nil {
		printDetail("Serving snapshots from %s", cfg.Mongo.Database)
	}

	return server.New(runner, defaults, c.Logger, srvOpts...).ListenAndServe(ctx, addr)
}

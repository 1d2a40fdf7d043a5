package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	rdfio "github.com/matzehuels/rdftree/pkg/io"
	"github.com/matzehuels/rdftree/pkg/pipeline"
)

// storeCommand creates the store command for managing MongoDB snapshots.
func (c *CLI) storeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage graph snapshots stored in MongoDB",
		Long: `Store saves graphs to MongoDB so they can be converted later as
mongo:<name> sources, or served by rdftree serve under /graphs/<name>.
The database is configured by [mongo] in rdftree.toml or --mongo-uri.`,
	}

	cmd.AddCommand(c.storeSaveCommand())
	cmd.AddCommand(c.storeListCommand())
	cmd.AddCommand(c.storeExportCommand())
	cmd.AddCommand(c.storeDeleteCommand())
	return cmd
}

func (c *CLI) storeSaveCommand() *cobra.Command {
	var flags buildFlags

	cmd := &cobra.Command{
		Use:     "save <name> <file>",
		Short:   "Save a graph file as a named snapshot",
		Example: `  rdftree store save people results.nq`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name, path := args[0], args[1]

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts := pipeline.Options{Source: path}
			if err := flags.apply(cfg, &opts); err != nil {
				return err
			}
			if err := opts.ValidateForLoad(); err != nil {
				return err
			}

			g, err := rdfio.Import(ctx, path, rdfio.Options{
				Format:   opts.InputFormat,
				Base:     opts.Base,
				Prefixes: opts.Prefixes,
			})
			if err != nil {
				return err
			}

			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close(context.Background())

			if err := st.Save(ctx, name, g); err != nil {
				return err
			}
			printSuccess("Saved %s", StyleHighlight.Render(pipeline.MongoScheme+name))
			printDetail("%d statements", g.Len())
			printNextStep("Convert it", "rdftree convert "+pipeline.MongoScheme+name)
			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&flags.inputFormat, "input-format", "", "input format: nquads or jsonld (default: from extension)")
	fs.StringVar(&flags.base, "base", "", "base IRI for relative references in JSON-LD input")
	fs.StringToStringVar(&flags.prefixes, "prefix", nil, "extra prefix as name=namespace (repeatable)")
	return cmd
}

func (c *CLI) storeListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored snapshots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close(context.Background())

			names, err := st.List(ctx)
			if err != nil {
				return err
			}
			if len(names) == 0 {
				printInfo("No snapshots stored")
				return nil
			}
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}
}

func (c *CLI) storeExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export <name> [file]",
		Short: "Write a snapshot as N-Quads",
		Long:  `Export writes a stored snapshot as N-Quads to file, or to stdout when no file is given.`,
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close(context.Background())

			g, err := st.Load(ctx, args[0])
			if err != nil {
				return err
			}
			if len(args) == 1 {
				return rdfio.WriteNQuads(g, os.Stdout)
			}
			if err := rdfio.ExportNQuads(g, args[1]); err != nil {
				return err
			}
			printSuccess("Exported %s", StyleHighlight.Render(args[0]))
			printFile(args[1])
			return nil
		},
	}
}

func (c *CLI) storeDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a stored snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close(context.Background())

			if err := st.Delete(ctx, args[0]); err != nil {
				return err
			}
			printSuccess("Deleted %s", StyleHighlight.Render(args[0]))
			return nil
		},
	}
}

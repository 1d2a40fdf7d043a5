package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/rdftree/pkg/buildinfo"
	"github.com/matzehuels/rdftree/pkg/config"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// The persistent --config flag names the configuration file; without it
// rdftree.toml is looked up in the working directory and the user
// configuration directory. --mongo-uri enables mongo:<name> sources.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "rdftree turns RDF result graphs into trees",
		Long: `rdftree converts an RDF graph that marks its roots with the result vocabulary
into a canonical tree and encodes it as JSON-LD, XML, HTML or a Graphviz diagram.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "configuration file (default: ./"+config.FileName+")")
	root.PersistentFlags().StringVar(&c.mongoURI, "mongo-uri", "", "MongoDB URI for mongo:<name> sources and the store command")

	root.AddCommand(c.convertCommand())
	root.AddCommand(c.namesCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.storeCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

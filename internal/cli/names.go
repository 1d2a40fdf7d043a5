package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/rdftree/pkg/names"
	"github.com/matzehuels/rdftree/pkg/pipeline"
)

// namesCommand creates the names command, which shows the short names a
// conversion would use without building the tree.
func (c *CLI) namesCommand() *cobra.Command {
	var (
		flags   buildFlags
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "names <source>",
		Short: "List the short names assigned to a graph's resources",
		Long: `Names loads a graph and prints the display name chosen for every subject,
object and predicate, together with its prefixed form and full IRI. Use it to
find collisions worth fixing with --namespace or --override.`,
		Example: `  rdftree names results.nq
  rdftree names results.nq --namespace http://xmlns.com/foaf/0.1/`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runNames(cmd.Context(), args[0], &flags, noCache)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}

func (c *CLI) runNames(ctx context.Context, source string, flags *buildFlags, noCache bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	opts := pipeline.Options{Source: source, Logger: c.Logger}
	if err := flags.apply(cfg, &opts); err != nil {
		return err
	}
	if err := opts.ValidateForLoad(); err != nil {
		return err
	}

	runner, cleanup, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer cleanup()

	g, err := runner.Load(ctx, opts)
	if err != nil {
		return err
	}
	r, err := names.New(g, names.Options{
		Namespaces:      opts.Namespaces,
		Overrides:       opts.Overrides,
		IgnoreNamespace: opts.Vocab().Namespace,
	})
	if err != nil {
		return err
	}

	fmt.Println(renderNamesTable(r))
	printDetail("%d names", r.Len())
	return nil
}

// renderNamesTable lays out the resolver entries in key order.
func renderNamesTable(r *names.Resolver) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	keyStyle := lipgloss.NewStyle().Foreground(colorCyan).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Foreground(colorWhite).Padding(0, 1)
	dimStyle := lipgloss.NewStyle().Foreground(colorDim).Padding(0, 1)

	entries := r.Entries()
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Key, e.Type.String(), r.PrefixedName(e.Resource), e.Resource.Value})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("NAME", "KIND", "PREFIXED", "IRI").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return keyStyle
			case col == 1:
				return dimStyle
			default:
				return cellStyle
			}
		})
	return t.Render()
}

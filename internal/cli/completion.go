package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rdftree/pkg/pipeline"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for rdftree. Besides commands and flags,
the scripts complete the comma-separated values of convert --format.

To load completions:

Bash:
  $ source <(rdftree completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ rdftree completion bash > /etc/bash_completion.d/rdftree
  # macOS:
  $ rdftree completion bash > $(brew --prefix)/etc/bash_completion.d/rdftree

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ rdftree completion zsh > "${fpath[1]}/_rdftree"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ rdftree completion fish | source

  # To load completions for each session, execute once:
  $ rdftree completion fish > ~/.config/fish/completions/rdftree.fish

PowerShell:
  PS> rdftree completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> rdftree completion powershell > rdftree.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(w)
			case "zsh":
				return cmd.Root().GenZshCompletion(w)
			case "fish":
				return cmd.Root().GenFishCompletion(w, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(w)
			}
			return nil
		},
	}

	return cmd
}

// completeFormats completes the last element of a comma-separated
// --format value, skipping formats already listed.
func completeFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	done, partial := "", toComplete
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		done, partial = toComplete[:i+1], toComplete[i+1:]
	}
	listed := make(map[string]bool)
	for _, f := range strings.Split(done, ",") {
		listed[strings.TrimSpace(f)] = true
	}

	var out []string
	for _, f := range pipeline.FormatNames() {
		if !listed[f] && strings.HasPrefix(f, partial) {
			out = append(out, done+f)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}

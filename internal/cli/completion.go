package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand prints a completion script for the requested shell.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Print a shell completion script",
		Long: `Print a shell completion script for spritter.

Completions cover the spritesheet, icon, gif, optimize and split commands
together with their flags, so that for example
"spritter spritesheet --scale-<TAB>" expands to --scale-filter.

Load them for the current session:

  source <(spritter completion bash)
  spritter completion fish | source
  spritter completion powershell | Out-String | Invoke-Expression

Or install them once, for zsh:

  spritter completion zsh > "${fpath[1]}/_spritter"`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, w := cmd.Root(), cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(w, true)
			case "zsh":
				return root.GenZshCompletion(w)
			case "fish":
				return root.GenFishCompletion(w, true)
			default:
				return root.GenPowerShellCompletionWithDesc(w)
			}
		},
	}
}

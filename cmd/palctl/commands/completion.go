package commands

import (
	"os"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion script for palctl.

To load completions:

Bash:
  # Linux:
  $ palctl completion bash > /etc/bash_completion.d/palctl
  # macOS:
  $ palctl completion bash > $(brew --prefix)/etc/bash_completion.d/palctl

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  # Linux:
  $ palctl completion zsh > "${fpath[1]}/_palctl"
  # macOS:
  $ palctl completion zsh > $(brew --prefix)/share/zsh/site-functions/_palctl

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ palctl completion fish > ~/.config/fish/completions/palctl.fish

PowerShell:
  PS> palctl completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> palctl completion powershell > palctl.ps1
  # and source this file from your PowerShell profile.
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return cmd.Root().GenBashCompletion(os.Stdout)
		case "zsh":
			return cmd.Root().GenZshCompletion(os.Stdout)
		case "fish":
			return cmd.Root().GenFishCompletion(os.Stdout, true)
		case "powershell":
			return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
		}
		return nil
	},
}

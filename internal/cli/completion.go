package cli

import (
	"net"
	"strings"

	"github.com/spf13/cobra"
)

// commonMTUs are offered when completing the target-mtu argument.
var commonMTUs = []string{
	"1280\tIPv6 minimum",
	"1420\tWireGuard",
	"1492\tPPPoE",
	"1500\tEthernet",
	"9000\tjumbo frames",
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion script",
		Long: `Generate shell completion script for mtuwatcher.

To load completions:

Bash:
  $ source <(mtuwatcher completion bash)
  # To load completions for each session, execute once:
  # Linux:
  $ mtuwatcher completion bash > /etc/bash_completion.d/mtuwatcher
  # macOS:
  $ mtuwatcher completion bash > $(brew --prefix)/etc/bash_completion.d/mtuwatcher

Zsh:
  $ mtuwatcher completion zsh > "${fpath[1]}/_mtuwatcher"

Fish:
  $ mtuwatcher completion fish > ~/.config/fish/completions/mtuwatcher.fish

PowerShell:
  PS> mtuwatcher completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

// completeWatchArgs completes the interface name and then the MTU.
func completeWatchArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	switch len(args) {
	case 0:
		return completeInterfaceNames(toComplete)
	case 1:
		return commonMTUs, cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

func completeInterfaceNames(toComplete string) ([]string, cobra.ShellCompDirective) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	var completions []string
	for _, ifi := range ifaces {
		if strings.HasPrefix(ifi.Name, toComplete) {
			completions = append(completions, ifi.Name)
		}
	}

	return completions, cobra.ShellCompDirectiveNoFileComp
}

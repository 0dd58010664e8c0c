package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Build information, set via ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func versionString() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
}

// NewVersionCmd prints build information.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "foodpulse %s\n", versionString())
		},
	}
}

// NewRootCmd assembles every subcommand.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "foodpulse",
		Short: "Food Pulse: surplus food donation platform and FAQ assistant",
		Long: `Food Pulse connects restaurants with surplus food to NGOs and old-age
homes. This binary serves the JSON API, the chatbot (HTTP, Telegram and
terminal) and manages the database.`,
		Version:       versionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(NewServeCmd())
	root.AddCommand(NewInitDBCmd())
	root.AddCommand(NewChatCmd())
	root.AddCommand(NewVersionCmd())
	return root
}

// Package cli holds the imagedive commands
package cli

import (
	"github.com/lumipallolabs/imagedive/internal/config"
	"github.com/lumipallolabs/imagedive/internal/ui/tui"
	"github.com/lumipallolabs/imagedive/internal/viewstate"
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates the imagedive command. Without a subcommand it
// opens the terminal panel on the given roots.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "imagedive [roots...]",
		Short: "Browse the images of your project folders",
		Long: `ImageDive scans project folders for image files, groups them by
directory and shows them in a terminal panel with filtering, background
styles and copy/open actions.

Roots default to the working directory. Settings are read from
imagedive.yaml in the first root, then ~/.imagedive/imagedive.yaml,
then IMAGEDIVE_* environment variables and flags.`,
		Version:      Version,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd, args, nil)
			if err != nil {
				return err
			}
			defer func() { _ = ws.ctrl.Stop() }()
			return tui.Run(tui.Options{
				Version:    Version,
				Controller: ws.ctrl,
				Views:      viewstate.New(viewstate.DefaultDir()),
			})
		},
	}

	config.InitFlags(cmd)

	cmd.AddCommand(NewScanCommand())
	cmd.AddCommand(NewServeCommand())

	return cmd
}

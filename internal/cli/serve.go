package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/lumipallolabs/imagedive/internal/logging"
	"github.com/lumipallolabs/imagedive/internal/scanner"
	"github.com/lumipallolabs/imagedive/internal/server"
	"github.com/lumipallolabs/imagedive/internal/viewstate"
	"github.com/spf13/cobra"
)

// DefaultAddr is where the panel server listens unless --addr is given
const DefaultAddr = "127.0.0.1:7341"

// NewServeCommand creates the serve subcommand
func NewServeCommand() *cobra.Command {
	var (
		addr    string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "serve [roots...]",
		Short: "Serve the image panel over HTTP and WebSocket",
		Long: `Serve the browser panel for the roots. The page connects back over a
WebSocket, receives the scanned collection and sends copy, open and
configuration requests. Only one panel is attached at a time.`,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				logging.SetOutput(cmd.ErrOrStderr())
			}

			files := server.NewRegistry()
			ws, err := openWorkspace(cmd, args, scanner.LocatorFunc(files.Locate))
			if err != nil {
				return err
			}
			defer func() { _ = ws.ctrl.Stop() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			url := color.New(color.FgCyan, color.Underline)
			if !isTerminal(cmd.OutOrStdout()) {
				url.DisableColor()
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Serving %d roots on %s\n", len(ws.roots), url.Sprintf("http://%s/", addr))

			srv := server.New(ws.ctrl, files)
			srv.SetViewState(viewstate.New(viewstate.DefaultDir()))
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", DefaultAddr, "address to listen on")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log requests and scans to stderr")

	return cmd
}

package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lumipallolabs/imagedive/internal/config"
	"github.com/lumipallolabs/imagedive/internal/core"
	"github.com/lumipallolabs/imagedive/internal/logging"
	"github.com/lumipallolabs/imagedive/internal/platform"
	"github.com/lumipallolabs/imagedive/internal/scanner"
	"github.com/spf13/cobra"
)

// resolveRoots turns the positional arguments into absolute workspace
// roots, defaulting to the working directory
func resolveRoots(args []string) ([]string, error) {
	if len(args) == 0 {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("working directory: %w", err)
		}
		return []string{wd}, nil
	}

	roots := make([]string, 0, len(args))
	for _, arg := range args {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", arg, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("root %s: %w", arg, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("root %s: not a directory", arg)
		}
		roots = append(roots, abs)
	}
	return roots, nil
}

// workspace bundles what every command needs to run a controller
type workspace struct {
	roots []string
	ctrl  *core.Controller
}

// openWorkspace loads settings for roots and builds a controller. A nil
// locator produces file:// URIs.
func openWorkspace(cmd *cobra.Command, args []string, loc scanner.Locator) (*workspace, error) {
	roots, err := resolveRoots(args)
	if err != nil {
		return nil, err
	}

	settings, savePath, err := config.Load(cmd, roots[0])
	if err != nil {
		return nil, err
	}
	logging.Debug.Printf("[cli] %d roots, settings saved to %s", len(roots), savePath)

	ctrl := core.NewController(core.Options{
		Roots:     roots,
		Config:    config.NewManager(savePath, settings),
		Locator:   loc,
		Clipboard: platform.NewClipboard(nil),
		Opener:    platform.System{},
	})
	return &workspace{roots: roots, ctrl: ctrl}, nil
}

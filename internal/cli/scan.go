package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/lumipallolabs/imagedive/internal/grouper"
	"github.com/lumipallolabs/imagedive/internal/model"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Output formats of the scan command
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// NewScanCommand creates the scan subcommand
func NewScanCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "scan [roots...]",
		Short: "Scan roots and print the images found",
		Long: `Scan the roots once with the configured include/exclude filters and
print the collection.

Formats:
  text  grouped tree, colored on a terminal
  json  the collection as sent to a panel
  yaml  the same collection as YAML`,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case FormatText, FormatJSON, FormatYAML:
			default:
				return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
			}

			ws, err := openWorkspace(cmd, args, nil)
			if err != nil {
				return err
			}
			defer func() { _ = ws.ctrl.Stop() }()

			if _, err := ws.ctrl.Scan(cmd.Context()); err != nil {
				return err
			}
			coll := ws.ctrl.Display()
			sortGroups := ws.ctrl.Settings().SortGroups

			return writeCollection(cmd.OutOrStdout(), coll, format, sortGroups)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", FormatText, "output format: text, json or yaml")

	return cmd
}

// writeCollection prints coll in the requested format
func writeCollection(w io.Writer, coll model.ProjectDirCollection, format string, sortGroups bool) error {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(coll, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(coll); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return writeTree(w, grouper.Fold(coll, grouper.Options{SortByPath: sortGroups}))
	}
}

// isTerminal reports whether w is a terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// writeTree prints the folded collection, colored when w is a terminal
func writeTree(w io.Writer, tree *grouper.Tree) error {
	bold := color.New(color.Bold)
	cyan := color.New(color.FgCyan, color.Bold)
	yellow := color.New(color.FgYellow)
	dim := color.New(color.Faint)
	colors := []*color.Color{bold, cyan, yellow, dim}
	for _, c := range colors {
		if isTerminal(w) {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	if len(tree.Projects) == 0 {
		_, err := dim.Fprintln(w, "No images found")
		return err
	}

	if tree.CommonBase != "" {
		bold.Fprintln(w, tree.CommonBase)
	}
	for _, p := range tree.Projects {
		cyan.Fprint(w, p.Title)
		dim.Fprintf(w, "  (%d images)\n", p.ImageCount())
		for _, g := range p.Groups {
			yellow.Fprint(w, "  "+g.Title)
			dim.Fprintf(w, "  (%d)\n", len(g.Images))
			for _, img := range g.Images {
				fmt.Fprintf(w, "    %s\n", img.Name)
			}
		}
	}

	_, err := dim.Fprintf(w, "%d images in %d groups\n", tree.ImageCount(), tree.GroupCount())
	return err
}

package cli

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/phanxgames/famexplorer"
	"github.com/phanxgames/famexplorer/internal/source"
)

// NewResolveCommand creates the resolve command.
func NewResolveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <image-url>...",
		Short: "Print the atlas render position of avatar URLs",
		Long: `Print the atlas key and render-space position for each avatar URL, using
the configured atlas and size factor. URLs missing from the atlas show the
default avatar's position.`,
		Example: `  famexplorer resolve https://pbs.twimg.com/profile_images/42/a_normal.jpg`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, args)
		},
	}
}

func runResolve(cmd *cobra.Command, urls []string) error {
	cfg := GetConfig(cmd.Context())
	if cfg.Atlas == "" {
		return fmt.Errorf("no atlas configured")
	}
	assets, err := source.Load(cmd.Context(), source.Sources{Atlas: cfg.Atlas, AtlasImage: cfg.AtlasImage}, GetLogger(cmd.Context()))
	if err != nil {
		return err
	}
	atlas, err := famexplorer.LoadAtlas(assets.AtlasJSON, nil)
	if err != nil {
		return err
	}
	// Without an image the manifest must carry its own size; otherwise take
	// it from the decoded page.
	if !atlas.Properties.Loaded() && assets.Page != nil {
		b := assets.Page.Bounds()
		atlas.Properties = famexplorer.AtlasProperties{Width: float64(b.Dx()), Height: float64(b.Dy())}
	}
	renderResolved(cmd.OutOrStdout(), atlas, cfg.SizeFactor, urls)
	return nil
}

func renderResolved(w io.Writer, atlas *famexplorer.Atlas, sizeFactor float64, urls []string) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"URL", "Key", "X", "Y", "Entry"})
	for _, u := range urls {
		key := famexplorer.ImageKey(u)
		pos, ok := atlas.Resolve(u, sizeFactor)
		if !ok {
			t.AppendRow(table.Row{u, key, "-", "-", "none"})
			continue
		}
		entry := "default"
		if _, hit := atlas.Entry(key); hit {
			entry = "hit"
		}
		t.AppendRow(table.Row{u, key, fmt.Sprintf("%.2f", pos.X), fmt.Sprintf("%.2f", pos.Y), entry})
	}
	t.Render()
}

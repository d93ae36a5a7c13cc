package cli

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/phanxgames/famexplorer"
	"github.com/phanxgames/famexplorer/internal/config"
	"github.com/phanxgames/famexplorer/internal/source"
)

// NewSearchCommand creates the search command.
func NewSearchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Print the profiles matching a query",
		Long: `Print the profiles whose name or handle contains the query, ignoring case
and one leading "@", in collection order. This is the same match set the
explorer's search box dims the grid with.`,
		Example: `  famexplorer search alice
  famexplorer search @bob --limit 5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			return runSearch(cmd, args[0], limit)
		},
	}
	cmd.Flags().Int("limit", 0, "show at most this many rows (0 for all)")
	return cmd
}

func runSearch(cmd *cobra.Command, query string, limit int) error {
	cfg := GetConfig(cmd.Context())
	matches, total, err := searchProfiles(cmd, cfg, query)
	if err != nil {
		return err
	}
	return renderMatches(cmd.OutOrStdout(), matches, total, limit)
}

func searchProfiles(cmd *cobra.Command, cfg *config.Config, query string) ([]famexplorer.Profile, int, error) {
	ctx := cmd.Context()
	switch {
	case cfg.ProfilesDB != "":
		store, err := source.OpenStore(ctx, cfg.ProfilesDB)
		if err != nil {
			return nil, 0, err
		}
		defer func() { _ = store.Close() }()
		total, err := store.Count(ctx)
		if err != nil {
			return nil, 0, err
		}
		matches, err := store.Search(ctx, query)
		return matches, total, err
	case cfg.Profiles != "":
		profiles, err := source.LoadProfiles(cfg.Profiles)
		if err != nil {
			return nil, 0, err
		}
		return famexplorer.Filter(profiles, query), len(profiles), nil
	default:
		return nil, 0, fmt.Errorf("no profile source: set profiles or profiles_db")
	}
}

func renderMatches(w io.Writer, matches []famexplorer.Profile, total, limit int) error {
	shown := matches
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}
	if len(shown) > 0 {
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"#", "Handle", "Name", "Followers", "Fam followers"})
		for i, p := range shown {
			t.AppendRow(table.Row{
				i + 1,
				"@" + p.Handle,
				p.Name,
				humanize.Comma(int64(p.FollowersCount)),
				humanize.Comma(int64(p.FamFollowerCount)),
			})
		}
		t.Render()
	}
	_, err := fmt.Fprintf(w, "(%s of %s profiles match)\n",
		humanize.Comma(int64(len(matches))), humanize.Comma(int64(total)))
	return err
}

package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/burnlikeash/SentimentScope/internal/api"
	"github.com/burnlikeash/SentimentScope/internal/config"
	"github.com/burnlikeash/SentimentScope/internal/loader"
	"github.com/burnlikeash/SentimentScope/internal/store"
	"github.com/burnlikeash/SentimentScope/internal/tui"
	"github.com/burnlikeash/SentimentScope/internal/update"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Launch straight into the catalog browser",
	Long:  "Open sentimentscope in browse mode, skipping the home screen.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(true)
	},
}

func runTUI(cmd *cobra.Command, args []string) error {
	return runApp(false)
}

func runApp(browseMode bool) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := store.Open(config.SnapshotPath())
	if err != nil {
		return fmt.Errorf("opening snapshot store: %w", err)
	}
	defer db.Close()

	client := api.NewClient(cfg.CatalogAPIURL, cfg.RequestTimeoutDuration(), cfg.CacheTTLDuration())
	ld := loader.New(client)

	// Refresh ahead of the TUI when the local snapshot is stale, so the
	// first screen is never empty on a cold start.
	if flagRefresh || db.NeedsRefresh(cfg.RefreshDuration()) {
		fmt.Println("Fetching catalog...")
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		snap, err := ld.Load(ctx)
		cancel()

		if err != nil {
			fmt.Printf("  [warn] %v (falling back to local snapshot)\n", err)
		} else {
			if err := db.ReplaceProducts(snap.Products); err != nil {
				return fmt.Errorf("caching products: %w", err)
			}
			db.SetLastRefresh()

			// Auto-prune stale snapshot rows after refresh
			db.Prune(cfg.RetentionDuration())
		}
	}

	var updateVersion string
	if rel := update.Latest(context.Background(), version); rel != nil {
		updateVersion = rel.Version
	}

	return tui.Run(tui.RunOpts{
		Cfg:           cfg,
		Client:        client,
		Loader:        ld,
		Store:         db,
		BrowseMode:    browseMode,
		UpdateVersion: updateVersion,
	})
}

func parseAge(s string) (time.Duration, error) {
	if len(s) > 1 && s[len(s)-1] == 'd' {
		var days int
		if _, err := fmt.Sscanf(s, "%dd", &days); err == nil {
			return time.Duration(days) * 24 * time.Hour, nil
		}
	}
	return time.ParseDuration(s)
}

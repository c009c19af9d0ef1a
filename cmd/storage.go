package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/burnlikeash/SentimentScope/internal/api"
	"github.com/burnlikeash/SentimentScope/internal/config"
	"github.com/burnlikeash/SentimentScope/internal/store"
)

var flagPruneOlderThan string

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove stale products from the local snapshot",
	Long: `Delete snapshot rows older than the retention period and reclaim disk space.

Uses the retention value from config (default: 7d) unless overridden with --older-than.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		db, err := store.Open(config.SnapshotPath())
		if err != nil {
			return fmt.Errorf("opening snapshot store: %w", err)
		}
		defer db.Close()

		retention := cfg.RetentionDuration()
		if flagPruneOlderThan != "" {
			d, err := parseAge(flagPruneOlderThan)
			if err != nil {
				return fmt.Errorf("invalid --older-than value: %w", err)
			}
			retention = d
		}

		deleted, err := db.Prune(retention)
		if err != nil {
			return fmt.Errorf("pruning: %w", err)
		}

		if deleted == 0 {
			fmt.Println("Nothing to prune.")
		} else {
			fmt.Printf("Pruned %d product(s) older than %s.\n", deleted, formatDuration(retention))
		}
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show local snapshot and service statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		dbPath := config.SnapshotPath()
		db, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("opening snapshot store: %w", err)
		}
		defer db.Close()

		count, size, err := db.Stats(dbPath)
		if err != nil {
			return fmt.Errorf("reading stats: %w", err)
		}

		fmt.Printf("Snapshot: %s\n", dbPath)
		fmt.Printf("Products: %d\n", count)
		fmt.Printf("Size: %s\n", formatBytes(size))

		// Remote counters are best-effort; the local numbers still print
		// when the service is down.
		client := api.NewClient(cfg.CatalogAPIURL, cfg.RequestTimeoutDuration(), cfg.CacheTTLDuration())
		ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeoutDuration())
		defer cancel()
		remote, err := client.Stats(ctx)
		if err != nil {
			fmt.Printf("Service: unreachable (%v)\n", err)
			return nil
		}
		fmt.Printf("Service: %d brands, %d phones, %d reviews (%d analyzed), %d topics\n",
			remote.Brands, remote.Phones, remote.Reviews, remote.ProcessedSentiments, remote.Topics)
		return nil
	},
}

func init() {
	pruneCmd.Flags().StringVar(&flagPruneOlderThan, "older-than", "", "override retention period (e.g., 3d, 72h)")
}

func formatDuration(d time.Duration) string {
	days := int(d.Hours() / 24)
	if days > 0 {
		return fmt.Sprintf("%dd", days)
	}
	return fmt.Sprintf("%dh", int(d.Hours()))
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

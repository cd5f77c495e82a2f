package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/adverify/supplyval/internal/config"
	"github.com/adverify/supplyval/internal/fetch"
	"github.com/adverify/supplyval/internal/logger"
	"github.com/adverify/supplyval/internal/model"
	"github.com/adverify/supplyval/internal/presenter"
	"github.com/adverify/supplyval/internal/repository"
	"github.com/adverify/supplyval/internal/usecase/refresh"
)

var snapshotCmd = &cobra.Command{
	Use:     "snapshot",
	Short:   "Manage stored ads.txt snapshots",
	GroupID: "snapshots",
}

var snapshotListFlags struct {
	PersistenceFlags
	SortBy string
}

var snapshotListCmd = &cobra.Command{
	Use:           "list",
	Short:         "List stored snapshots",
	SilenceUsage:  true,
	SilenceErrors: true,
	Long: `Display the stored ads.txt snapshots with their status and age.

Examples:
  # List all snapshots in a JSON store
  supplyval snapshot list --file ./snapshots.json

  # List snapshots sorted by fetch time
  supplyval snapshot list --file ./snapshots.json --sort fetch-time`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		repo, err := repository.NewRepository(ctx, repository.RepositoryConfig{
			FilePath:       snapshotListFlags.FilePath,
			DynamoTable:    snapshotListFlags.DynamoTable,
			DynamoEndpoint: snapshotListFlags.DynamoEndpoint,
		})
		if err != nil {
			return err
		}

		snaps, err := repo.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list snapshots: %w", err)
		}
		if len(snaps) == 0 {
			fmt.Println("No snapshots stored.")
			return nil
		}

		model.SortSnapshots(snaps, snapshotListFlags.SortBy)

		fmt.Printf("%-40s %-8s %-6s %-10s %s\n", "Domain", "Status", "Rev", "Fetched", "Lines")
		fmt.Println(strings.Repeat("-", 80))
		for _, snap := range snaps {
			lines := 0
			if snap.Content != "" {
				lines = strings.Count(snap.Content, "\n") + 1
			}
			fmt.Printf("%-40s %-8s %-6d %-10s %d\n",
				snap.Domain,
				snap.Status,
				snap.Rev,
				presenter.FormatTimeSinceCompact(snap.FetchedAt),
				lines)
		}
		fmt.Printf("\nTotal snapshots: %d\n", len(snaps))
		return nil
	},
}

var snapshotRefreshFlags struct {
	PersistenceFlags
	WatchList string
	Timeout   time.Duration
}

var snapshotRefreshCmd = &cobra.Command{
	Use:           "refresh",
	Short:         "Re-fetch stored snapshots",
	SilenceUsage:  true,
	SilenceErrors: true,
	Long: `Re-fetch the ads.txt for every stored domain and update the snapshots
whose content changed. With --watch-list, domains from the watch-list
file that have no snapshot yet are fetched and added first.

Examples:
  # Refresh every stored snapshot
  supplyval snapshot refresh --file ./snapshots.json

  # Seed from a watch list, then refresh
  supplyval snapshot refresh --file ./snapshots.json --watch-list ./watchlist.yaml

  # See what would change without writing
  supplyval snapshot refresh --file ./snapshots.json --dry-run`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		log := logger.NewDefaultLogger()

		repo, err := repository.NewRepository(ctx, repository.RepositoryConfig{
			FilePath:       snapshotRefreshFlags.FilePath,
			DynamoTable:    snapshotRefreshFlags.DynamoTable,
			DynamoEndpoint: snapshotRefreshFlags.DynamoEndpoint,
		})
		if err != nil {
			return err
		}

		fetchClient := fetch.NewClient(snapshotRefreshFlags.Timeout)

		if snapshotRefreshFlags.WatchList != "" {
			wl, err := config.Load(snapshotRefreshFlags.WatchList)
			if err != nil {
				return err
			}
			if err := seedFromWatchList(ctx, repo, fetchClient, wl, snapshotRefreshFlags.DryRun); err != nil {
				return err
			}
		}

		if snapshotRefreshFlags.DryRun {
			return dryRunRefresh(ctx, repo, fetchClient)
		}

		results, err := refresh.NewRefreshUseCase(fetchClient, repo, log).RefreshAll(ctx)
		if err != nil {
			return err
		}

		changed := 0
		failed := 0
		for _, result := range results {
			switch {
			case result.ErrorMessage != "":
				failed++
				fmt.Printf("  %s: FAILED (%s)\n", result.Domain, result.ErrorMessage)
			case result.Changed:
				changed++
				fmt.Printf("  %s: updated to rev %d\n", result.Domain, result.Rev)
			default:
				fmt.Printf("  %s: unchanged\n", result.Domain)
			}
		}
		fmt.Printf("\nRefreshed %d domains: %d changed, %d failed\n", len(results), changed, failed)
		return nil
	},
}

// seedFromWatchList fetches snapshots for enabled watch-list domains that are
// not stored yet.
func seedFromWatchList(ctx context.Context, repo model.SnapshotRepository, fetchClient *fetch.Client, wl *config.WatchList, dryRun bool) error {
	for _, domain := range wl.EnabledDomains() {
		if _, err := repo.Get(ctx, domain); err == nil {
			continue
		}

		if dryRun {
			fmt.Printf("  %s: would fetch initial snapshot\n", domain)
			continue
		}

		snap := fetchClient.FetchAdsTxt(ctx, domain)
		if err := repo.Store(ctx, snap); err != nil {
			return fmt.Errorf("failed to store initial snapshot for %s: %w", domain, err)
		}
		fmt.Printf("  %s: fetched initial snapshot (%s)\n", domain, snap.Status)
	}
	return nil
}

// dryRunRefresh reports which snapshots would change without writing
func dryRunRefresh(ctx context.Context, repo model.SnapshotRepository, fetchClient *fetch.Client) error {
	snaps, err := repo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list snapshots: %w", err)
	}

	for _, prev := range snaps {
		fresh := fetchClient.FetchAdsTxt(ctx, prev.Domain)
		switch {
		case fresh.Status != model.SnapshotStatusSuccess:
			fmt.Printf("  %s: fetch would fail (%s)\n", prev.Domain, fresh.Content)
		case prev.Status != model.SnapshotStatusSuccess || prev.Content != fresh.Content:
			fmt.Printf("  %s: would update to rev %d\n", prev.Domain, prev.Rev+1)
		default:
			fmt.Printf("  %s: unchanged\n", prev.Domain)
		}
	}
	return nil
}

var snapshotDeleteFlags struct {
	PersistenceFlags
}

var snapshotDeleteCmd = &cobra.Command{
	Use:           "delete <domain>",
	Short:         "Delete a stored snapshot",
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		domain := args[0]
		ctx := context.Background()

		repo, err := repository.NewRepository(ctx, repository.RepositoryConfig{
			FilePath:       snapshotDeleteFlags.FilePath,
			DynamoTable:    snapshotDeleteFlags.DynamoTable,
			DynamoEndpoint: snapshotDeleteFlags.DynamoEndpoint,
		})
		if err != nil {
			return err
		}

		if snapshotDeleteFlags.DryRun {
			if _, err := repo.Get(ctx, domain); err != nil {
				return fmt.Errorf("no snapshot stored for %s", domain)
			}
			fmt.Printf("Would delete snapshot for %s\n", domain)
			return nil
		}

		if err := repo.Delete(ctx, domain); err != nil {
			return fmt.Errorf("failed to delete snapshot for %s: %w", domain, err)
		}
		fmt.Printf("Deleted snapshot for %s\n", domain)
		return nil
	},
}

func init() {
	addPersistenceFlags(snapshotListCmd, &snapshotListFlags.PersistenceFlags)
	snapshotListCmd.Flags().StringVar(&snapshotListFlags.SortBy, "sort", "", "Sort by: domain, fetch-time, or status")

	addPersistenceFlags(snapshotRefreshCmd, &snapshotRefreshFlags.PersistenceFlags)
	snapshotRefreshCmd.Flags().StringVar(&snapshotRefreshFlags.WatchList, "watch-list", "", "Path to a yaml watch-list file of publisher domains")
	snapshotRefreshCmd.Flags().DurationVar(&snapshotRefreshFlags.Timeout, "timeout", 30*time.Second, "HTTP timeout for fetches")

	addPersistenceFlags(snapshotDeleteCmd, &snapshotDeleteFlags.PersistenceFlags)

	snapshotCmd.AddCommand(snapshotListCmd)
	snapshotCmd.AddCommand(snapshotRefreshCmd)
	snapshotCmd.AddCommand(snapshotDeleteCmd)
}

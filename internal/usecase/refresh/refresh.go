package refresh

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/adverify/supplyval/internal/model"
)

// Fetcher retrieves the live ads.txt document for a publisher domain
type Fetcher interface {
	FetchAdsTxt(ctx context.Context, domain string) *model.Snapshot
}

// RefreshUseCase re-fetches every stored snapshot and updates the ones whose
// content changed upstream.
type RefreshUseCase struct {
	fetcher    Fetcher
	repository model.SnapshotRepository
	log        *slog.Logger
}

// NewRefreshUseCase creates a new refresh use case
func NewRefreshUseCase(fetcher Fetcher, repo model.SnapshotRepository, log *slog.Logger) *RefreshUseCase {
	if log == nil {
		log = slog.Default()
	}
	return &RefreshUseCase{
		fetcher:    fetcher,
		repository: repo,
		log:        log,
	}
}

// DomainRefreshResult contains the result of refreshing one domain
type DomainRefreshResult struct {
	Domain       string
	Changed      bool
	Rev          int64
	ErrorMessage string
}

// RefreshAll re-fetches the ads.txt for every domain in the data store.
// Domains whose content changed get a new snapshot revision; fetch failures
// are stored as error snapshots so operators can see when a document
// disappeared. Returns a per-domain result list.
func (uc *RefreshUseCase) RefreshAll(ctx context.Context) ([]DomainRefreshResult, error) {
	snaps, err := uc.repository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}

	if len(snaps) == 0 {
		return []DomainRefreshResult{}, nil
	}

	results := make([]DomainRefreshResult, 0, len(snaps))
	for _, prev := range snaps {
		results = append(results, uc.refreshOne(ctx, prev))
	}

	return results, nil
}

// RefreshDomain re-fetches the ads.txt for a single stored domain
func (uc *RefreshUseCase) RefreshDomain(ctx context.Context, domain string) (DomainRefreshResult, error) {
	prev, err := uc.repository.Get(ctx, domain)
	if err != nil {
		return DomainRefreshResult{}, fmt.Errorf("failed to load snapshot for %s: %w", domain, err)
	}
	return uc.refreshOne(ctx, prev), nil
}

func (uc *RefreshUseCase) refreshOne(ctx context.Context, prev *model.Snapshot) DomainRefreshResult {
	fresh := uc.fetcher.FetchAdsTxt(ctx, prev.Domain)

	if fresh.Status != model.SnapshotStatusSuccess {
		fresh.Rev = prev.Rev + 1
		if err := uc.repository.Put(ctx, fresh); err != nil {
			return DomainRefreshResult{
				Domain:       prev.Domain,
				Rev:          prev.Rev,
				ErrorMessage: fmt.Sprintf("failed to store error snapshot: %v", err),
			}
		}
		uc.log.Warn("refresh fetch failed",
			"domain", prev.Domain, "message", fresh.Content)
		return DomainRefreshResult{
			Domain:       prev.Domain,
			Changed:      prev.Status == model.SnapshotStatusSuccess,
			Rev:          fresh.Rev,
			ErrorMessage: fresh.Content,
		}
	}

	if prev.Status == model.SnapshotStatusSuccess && prev.Content == fresh.Content {
		return DomainRefreshResult{
			Domain: prev.Domain,
			Rev:    prev.Rev,
		}
	}

	fresh.Rev = prev.Rev + 1
	if err := uc.repository.Put(ctx, fresh); err != nil {
		return DomainRefreshResult{
			Domain:       prev.Domain,
			Rev:          prev.Rev,
			ErrorMessage: fmt.Sprintf("failed to store snapshot: %v", err),
		}
	}

	uc.log.Info("refreshed snapshot",
		"domain", prev.Domain, "rev", fresh.Rev)
	return DomainRefreshResult{
		Domain:  prev.Domain,
		Changed: true,
		Rev:     fresh.Rev,
	}
}

package validate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/adverify/supplyval/internal/crosscheck"
	"github.com/adverify/supplyval/internal/duplicate"
	"github.com/adverify/supplyval/internal/model"
	"github.com/adverify/supplyval/internal/parser"
)

// Fetcher retrieves the live ads.txt document for a publisher domain
type Fetcher interface {
	FetchAdsTxt(ctx context.Context, domain string) *model.Snapshot
}

// ValidateUseCase orchestrates the full validation pipeline: parse, mark
// duplicates against the previously stored snapshot, cross-check against
// seller directories, and persist the fresh snapshot.
type ValidateUseCase struct {
	repository model.SnapshotRepository
	checker    *crosscheck.Checker
	fetcher    Fetcher
	log        *slog.Logger
}

// NewValidateUseCase creates a new validate use case. The repository and
// fetcher may be nil, in which case duplicate detection has no history to
// compare against and ValidateDomain is unavailable, respectively.
func NewValidateUseCase(repo model.SnapshotRepository, checker *crosscheck.Checker, fetcher Fetcher, log *slog.Logger) *ValidateUseCase {
	if log == nil {
		log = slog.Default()
	}
	return &ValidateUseCase{
		repository: repo,
		checker:    checker,
		fetcher:    fetcher,
		log:        log,
	}
}

// Result contains the annotated entries from one validation run
type Result struct {
	Domain       string
	Entries      []model.Entry
	ErrorCount   int
	WarningCount int
}

// ValidateContent runs the validation pipeline over raw ads.txt content for
// a publisher domain and stores the content as the domain's new snapshot.
func (uc *ValidateUseCase) ValidateContent(ctx context.Context, publisherDomain, content string) (*Result, error) {
	entries := parser.ParseContent(content, publisherDomain)

	known, prevRev, err := uc.knownRecords(ctx, publisherDomain)
	if err != nil {
		return nil, err
	}
	entries = duplicate.MarkDuplicates(publisherDomain, entries, known)

	if uc.checker != nil {
		entries = uc.checker.CrossCheckRecords(ctx, publisherDomain, entries)
	}

	if uc.repository != nil {
		snap := &model.Snapshot{
			Domain:    publisherDomain,
			Status:    model.SnapshotStatusSuccess,
			Content:   content,
			FetchedAt: time.Now().UTC(),
			Rev:       prevRev + 1,
		}
		if err := uc.repository.Put(ctx, snap); err != nil {
			return nil, fmt.Errorf("failed to store snapshot: %w", err)
		}
	}

	return buildResult(publisherDomain, entries), nil
}

// ValidateDomain fetches the live ads.txt for a publisher domain and runs
// the validation pipeline over it. A fetch failure is stored as an error
// snapshot and returned as an error.
func (uc *ValidateUseCase) ValidateDomain(ctx context.Context, publisherDomain string) (*Result, error) {
	if uc.fetcher == nil {
		return nil, errors.New("no fetcher configured")
	}

	snap := uc.fetcher.FetchAdsTxt(ctx, publisherDomain)
	if snap.Status != model.SnapshotStatusSuccess {
		if uc.repository != nil {
			if err := uc.repository.Put(ctx, snap); err != nil {
				uc.log.Warn("failed to store error snapshot",
					"domain", publisherDomain, "error", err)
			}
		}
		return nil, fmt.Errorf("failed to fetch ads.txt for %s: %s", publisherDomain, snap.Content)
	}

	return uc.ValidateContent(ctx, publisherDomain, snap.Content)
}

// knownRecords parses the previously stored snapshot for the domain and
// returns its valid records for duplicate comparison, along with the stored
// revision number.
func (uc *ValidateUseCase) knownRecords(ctx context.Context, publisherDomain string) ([]*model.Record, int64, error) {
	if uc.repository == nil {
		return nil, 0, nil
	}

	prev, err := uc.repository.Get(ctx, publisherDomain)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("failed to load previous snapshot: %w", err)
	}
	if prev.Status != model.SnapshotStatusSuccess {
		return nil, prev.Rev, nil
	}

	return model.Records(parser.ParseContent(prev.Content, publisherDomain)), prev.Rev, nil
}

func buildResult(domain string, entries []model.Entry) *Result {
	result := &Result{
		Domain:  domain,
		Entries: entries,
	}
	for _, entry := range entries {
		record, ok := entry.(*model.Record)
		if !ok {
			continue
		}
		if !record.IsValid {
			result.ErrorCount++
		}
		if record.HasWarning {
			result.WarningCount++
		}
	}
	return result
}

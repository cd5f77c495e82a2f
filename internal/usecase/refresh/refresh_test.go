package refresh

import (
	"context"
	"testing"
	"time"

	"github.com/adverify/supplyval/internal/model"
	"github.com/adverify/supplyval/internal/repository/memrepo"
)

type fakeFetcher struct {
	content map[string]string
}

func (f *fakeFetcher) FetchAdsTxt(ctx context.Context, domain string) *model.Snapshot {
	content, ok := f.content[domain]
	if !ok {
		return &model.Snapshot{
			Domain:    domain,
			Status:    model.SnapshotStatusError,
			Content:   "connection refused",
			FetchedAt: time.Now().UTC(),
		}
	}
	return &model.Snapshot{
		Domain:    domain,
		Status:    model.SnapshotStatusSuccess,
		Content:   content,
		FetchedAt: time.Now().UTC(),
	}
}

func storedSnapshot(domain, content string, rev int64) *model.Snapshot {
	return &model.Snapshot{
		Domain:    domain,
		Status:    model.SnapshotStatusSuccess,
		Content:   content,
		FetchedAt: time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC),
		Rev:       rev,
	}
}

func TestRefreshAll_UpdatesChangedDomains(t *testing.T) {
	ctx := context.Background()
	repo := memrepo.NewMemoryRepository()
	repo.Put(ctx, storedSnapshot("same.example.com", "google.com, pub-1, DIRECT\n", 2))
	repo.Put(ctx, storedSnapshot("changed.example.com", "google.com, pub-2, DIRECT\n", 7))

	fetcher := &fakeFetcher{content: map[string]string{
		"same.example.com":    "google.com, pub-1, DIRECT\n",
		"changed.example.com": "google.com, pub-2, RESELLER\n",
	}}

	results, err := NewRefreshUseCase(fetcher, repo, nil).RefreshAll(ctx)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}

	byDomain := make(map[string]DomainRefreshResult)
	for _, r := range results {
		byDomain[r.Domain] = r
	}

	if byDomain["same.example.com"].Changed {
		t.Errorf("Expected unchanged content to be skipped")
	}
	if !byDomain["changed.example.com"].Changed {
		t.Errorf("Expected changed content to be detected")
	}

	snap, _ := repo.Get(ctx, "changed.example.com")
	if snap.Rev != 8 {
		t.Errorf("Expected revision bump to 8, got %d", snap.Rev)
	}
	if snap.Content != "google.com, pub-2, RESELLER\n" {
		t.Errorf("Expected updated content, got %q", snap.Content)
	}

	unchanged, _ := repo.Get(ctx, "same.example.com")
	if unchanged.Rev != 2 {
		t.Errorf("Expected unchanged snapshot to keep its revision, got %d", unchanged.Rev)
	}
}

func TestRefreshAll_StoresErrorSnapshotOnFetchFailure(t *testing.T) {
	ctx := context.Background()
	repo := memrepo.NewMemoryRepository()
	repo.Put(ctx, storedSnapshot("down.example.com", "google.com, pub-1, DIRECT\n", 1))

	results, err := NewRefreshUseCase(&fakeFetcher{}, repo, nil).RefreshAll(ctx)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(results) != 1 || results[0].ErrorMessage == "" {
		t.Fatalf("Expected a failure result, got %+v", results)
	}

	snap, _ := repo.Get(ctx, "down.example.com")
	if snap.Status != model.SnapshotStatusError {
		t.Errorf("Expected error snapshot to be stored, got %s", snap.Status)
	}
	if snap.Rev != 2 {
		t.Errorf("Expected revision bump on error snapshot, got %d", snap.Rev)
	}
}

func TestRefreshAll_EmptyStore(t *testing.T) {
	results, err := NewRefreshUseCase(&fakeFetcher{}, memrepo.NewMemoryRepository(), nil).RefreshAll(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Expected no results for an empty store, got %d", len(results))
	}
}

func TestRefreshDomain_MissingDomain(t *testing.T) {
	uc := NewRefreshUseCase(&fakeFetcher{}, memrepo.NewMemoryRepository(), nil)

	if _, err := uc.RefreshDomain(context.Background(), "missing.example.com"); err == nil {
		t.Errorf("Expected an error for a domain with no stored snapshot")
	}
}

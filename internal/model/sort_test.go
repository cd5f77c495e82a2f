package model

import (
	"testing"
	"time"
)

func makeTestSnapshots() []*Snapshot {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return []*Snapshot{
		{Domain: "zeta.example", Status: SnapshotStatusSuccess, FetchedAt: base.Add(-2 * time.Hour)},
		{Domain: "Alpha.example", Status: SnapshotStatusError, FetchedAt: base},
		{Domain: "mid.example", Status: SnapshotStatusSuccess, FetchedAt: base.Add(-1 * time.Hour)},
	}
}

func TestSortSnapshots_DefaultByDomain(t *testing.T) {
	snaps := makeTestSnapshots()

	SortSnapshots(snaps, "")

	if snaps[0].Domain != "Alpha.example" {
		t.Errorf("Expected Alpha.example first, got %s", snaps[0].Domain)
	}
	if snaps[2].Domain != "zeta.example" {
		t.Errorf("Expected zeta.example last, got %s", snaps[2].Domain)
	}
}

func TestSortSnapshots_ByFetchTimeNewestFirst(t *testing.T) {
	snaps := makeTestSnapshots()

	SortSnapshots(snaps, "fetch-time")

	if snaps[0].Domain != "Alpha.example" {
		t.Errorf("Expected most recently fetched snapshot first, got %s", snaps[0].Domain)
	}
	if snaps[2].Domain != "zeta.example" {
		t.Errorf("Expected oldest snapshot last, got %s", snaps[2].Domain)
	}
}

func TestSortSnapshots_ByStatus(t *testing.T) {
	snaps := makeTestSnapshots()

	SortSnapshots(snaps, "status")

	if snaps[0].Status != SnapshotStatusError {
		t.Errorf("Expected error snapshots first, got %s", snaps[0].Status)
	}
}

func TestSortSnapshots_UnrecognizedFallsBackToDomain(t *testing.T) {
	snaps := makeTestSnapshots()

	SortSnapshots(snaps, "bogus")

	if snaps[0].Domain != "Alpha.example" {
		t.Errorf("Expected domain sort fallback, got %s first", snaps[0].Domain)
	}
}

package model

import (
	"sort"
	"strings"
)

// SortBy specifies the field and order for sorting snapshots
type SortBy string

const (
	SortByDomain    SortBy = "domain"
	SortByFetchTime SortBy = "fetch-time"
	SortByStatus    SortBy = "status"
	SortByDefault   SortBy = "" // Default sort: domain
)

// SortSnapshots sorts a slice of snapshots in place based on the specified
// field. The sortBy parameter should be one of: "domain", "fetch-time",
// "status". If sortBy is empty or unrecognized, snapshots are sorted by
// domain (case-insensitive).
func SortSnapshots(snaps []*Snapshot, sortBy string) {
	switch SortBy(sortBy) {
	case SortByFetchTime:
		sort.Slice(snaps, func(i, j int) bool {
			return snaps[i].FetchedAt.After(snaps[j].FetchedAt)
		})
	case SortByStatus:
		sort.Slice(snaps, func(i, j int) bool {
			if snaps[i].Status != snaps[j].Status {
				return snaps[i].Status < snaps[j].Status
			}
			return strings.ToLower(snaps[i].Domain) < strings.ToLower(snaps[j].Domain)
		})
	default:
		sort.Slice(snaps, func(i, j int) bool {
			return strings.ToLower(snaps[i].Domain) < strings.ToLower(snaps[j].Domain)
		})
	}
}

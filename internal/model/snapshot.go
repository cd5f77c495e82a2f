package model

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("snapshot not found")
	ErrAlreadyExists = errors.New("snapshot already exists")
)

// Snapshot statuses. A failure snapshot records that the last fetch did not
// produce usable content; its Content field holds the failure message.
const (
	SnapshotStatusSuccess = "success"
	SnapshotStatusError   = "error"
)

// Snapshot is a previously fetched ads.txt document for one publisher
// domain. Snapshots are what the repositories store and what the duplicate
// detector treats as the previously known version of a document.
type Snapshot struct {
	// Domain is the publisher domain the document was fetched for
	Domain string
	// Status is success or error
	Status string
	// Content is the raw document text (or the failure message)
	Content string
	// FetchedAt is when the document was retrieved
	FetchedAt time.Time
	// Rev is a monotonically increasing revision number
	Rev int64
}

// SnapshotRepository defines the interface for storing and retrieving
// fetched ads.txt snapshots, keyed by publisher domain.
type SnapshotRepository interface {
	// Store saves a snapshot; ErrAlreadyExists if the domain is present
	Store(ctx context.Context, snap *Snapshot) error

	// Put saves a snapshot, overwriting any existing one for the domain
	Put(ctx context.Context, snap *Snapshot) error

	// Get retrieves the snapshot for a publisher domain
	Get(ctx context.Context, domain string) (*Snapshot, error)

	// List retrieves all stored snapshots
	List(ctx context.Context) ([]*Snapshot, error)

	// Delete removes the snapshot for a publisher domain
	Delete(ctx context.Context, domain string) error
}

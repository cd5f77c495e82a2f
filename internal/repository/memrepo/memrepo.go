package memrepo

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/adverify/supplyval/internal/model"
)

// snapshotDTO is the JSON persistence form of a snapshot
type snapshotDTO struct {
	Domain    string    `json:"domain"`
	Status    string    `json:"status"`
	Content   string    `json:"content"`
	FetchedAt time.Time `json:"fetched_at"`
	Rev       int64     `json:"rev"`
}

// MemoryRepository is an in-memory implementation of SnapshotRepository
// optionally backed by a JSON file.
type MemoryRepository struct {
	mu       sync.RWMutex
	data     map[string]*model.Snapshot
	filePath string
}

func makeKey(domain string) string {
	return strings.ToLower(strings.TrimSpace(domain))
}

// NewMemoryRepository creates a new in-memory repository without
// persistence. Data is stored only in memory and will be lost when the
// process terminates.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		data: make(map[string]*model.Snapshot),
	}
}

// NewMemoryRepositoryWithPersistence creates a new in-memory repository
// backed by a JSON file. Existing data is loaded on initialization and all
// changes (Store, Put, Delete) are persisted to the file automatically.
func NewMemoryRepositoryWithPersistence(filePath string) (*MemoryRepository, error) {
	repo := &MemoryRepository{
		data:     make(map[string]*model.Snapshot),
		filePath: filePath,
	}

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	if err := repo.load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return repo, nil
}

// NewMemoryRepositoryFromJSONString creates a new in-memory repository
// initialized from a JSON array of snapshots. The repository is not backed
// by a file and does not persist changes.
func NewMemoryRepositoryFromJSONString(jsonString string) (*MemoryRepository, error) {
	repo := &MemoryRepository{
		data: make(map[string]*model.Snapshot),
	}
	if err := repo.loadFromReader(strings.NewReader(jsonString)); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *MemoryRepository) loadFromReader(reader io.Reader) error {
	var dtos []snapshotDTO
	if err := json.NewDecoder(reader).Decode(&dtos); err != nil {
		return err
	}

	r.data = make(map[string]*model.Snapshot)
	for _, d := range dtos {
		// Last occurrence wins, matching DynamoDB overwrite semantics
		r.data[makeKey(d.Domain)] = &model.Snapshot{
			Domain:    d.Domain,
			Status:    d.Status,
			Content:   d.Content,
			FetchedAt: d.FetchedAt,
			Rev:       d.Rev,
		}
	}
	return nil
}

func (r *MemoryRepository) load() error {
	f, err := os.Open(r.filePath)
	if err != nil {
		return err
	}
	defer f.Close()
	return r.loadFromReader(f)
}

// save writes the current data to the persistence file; callers hold the lock
func (r *MemoryRepository) save() error {
	if r.filePath == "" {
		return nil
	}

	dtos := make([]snapshotDTO, 0, len(r.data))
	for _, s := range r.data {
		dtos = append(dtos, snapshotDTO{
			Domain:    s.Domain,
			Status:    s.Status,
			Content:   s.Content,
			FetchedAt: s.FetchedAt,
			Rev:       s.Rev,
		})
	}

	payload, err := json.MarshalIndent(dtos, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(r.filePath, payload, 0644)
}

// Store saves a snapshot, failing if one already exists for the domain
func (r *MemoryRepository) Store(ctx context.Context, snap *model.Snapshot) error {
	if snap == nil {
		return errors.New("snapshot cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := makeKey(snap.Domain)
	if _, exists := r.data[key]; exists {
		return model.ErrAlreadyExists
	}

	r.data[key] = snap
	return r.save()
}

// Put saves a snapshot, overwriting any existing one for the domain
func (r *MemoryRepository) Put(ctx context.Context, snap *model.Snapshot) error {
	if snap == nil {
		return errors.New("snapshot cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.data[makeKey(snap.Domain)] = snap
	return r.save()
}

// Get retrieves the snapshot for a publisher domain
func (r *MemoryRepository) Get(ctx context.Context, domain string) (*model.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snap, exists := r.data[makeKey(domain)]
	if !exists {
		return nil, model.ErrNotFound
	}
	return snap, nil
}

// List retrieves all stored snapshots
func (r *MemoryRepository) List(ctx context.Context) ([]*model.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.Snapshot, 0, len(r.data))
	for _, snap := range r.data {
		result = append(result, snap)
	}
	return result, nil
}

// Delete removes the snapshot for a publisher domain
func (r *MemoryRepository) Delete(ctx context.Context, domain string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := makeKey(domain)
	if _, exists := r.data[key]; !exists {
		return model.ErrNotFound
	}

	delete(r.data, key)
	return r.save()
}

package s3materializedview

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/adverify/supplyval/internal/repository/memrepo"
)

// snapshotView is the public JSON form of one snapshot in the materialized
// view. Content is included so downstream consumers can re-parse without
// touching DynamoDB.
type snapshotView struct {
	Domain    string    `json:"domain"`
	Status    string    `json:"status"`
	Content   string    `json:"content"`
	FetchedAt time.Time `json:"fetched_at"`
	Rev       int64     `json:"rev"`
}

// S3MaterializedView handles loading and saving snapshot data to S3
type S3MaterializedView struct {
	s3Client     *s3.Client
	bucketName   string
	key          string
	contentType  string
	cacheControl string
}

// New creates a new S3MaterializedView adapter
func New(s3Client *s3.Client, bucketName, key string) *S3MaterializedView {
	return &S3MaterializedView{
		s3Client:     s3Client,
		bucketName:   bucketName,
		key:          key,
		contentType:  "application/json",
		cacheControl: "max-age=60", // Cache for 1 minute
	}
}

// Load loads the materialized view from S3 into a new MemoryRepository
func (s *S3MaterializedView) Load(ctx context.Context) (*memrepo.MemoryRepository, error) {
	result, err := s.s3Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &s.bucketName,
		Key:    &s.key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object from S3: %w", err)
	}
	defer result.Body.Close()

	bodyBytes, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read S3 object body: %w", err)
	}

	repo, err := memrepo.NewMemoryRepositoryFromJSONString(string(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create repository from JSON: %w", err)
	}

	return repo, nil
}

// Save saves the repository's snapshots to S3
func (s *S3MaterializedView) Save(ctx context.Context, repo *memrepo.MemoryRepository) error {
	snaps, err := repo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list snapshots from repository: %w", err)
	}

	views := make([]snapshotView, 0, len(snaps))
	for _, snap := range snaps {
		views = append(views, snapshotView{
			Domain:    snap.Domain,
			Status:    snap.Status,
			Content:   snap.Content,
			FetchedAt: snap.FetchedAt,
			Rev:       snap.Rev,
		})
	}

	jsonData, err := json.MarshalIndent(views, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshots: %w", err)
	}

	_, err = s.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       &s.bucketName,
		Key:          &s.key,
		Body:         bytes.NewReader(jsonData),
		ContentType:  stringPtr(s.contentType),
		CacheControl: stringPtr(s.cacheControl),
	})
	if err != nil {
		return fmt.Errorf("failed to upload to S3: %w", err)
	}

	slog.Info("Successfully updated S3 data file",
		slog.String("bucket", s.bucketName),
		slog.String("key", s.key),
		slog.Int("snapshot_count", len(snaps)))
	return nil
}

// stringPtr returns a pointer to a string
func stringPtr(s string) *string {
	return &s
}

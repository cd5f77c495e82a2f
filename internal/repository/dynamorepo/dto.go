package dynamorepo

import (
	"time"

	"github.com/adverify/supplyval/internal/model"
)

// DynamoDTO represents the persistence layer DTO for DynamoDB.
// The partition key is the lowercased publisher domain; snapshots are a
// one-item-per-domain table.
type DynamoDTO struct {
	PK        string    `dynamodbav:"pk"` // Partition Key - lowercased publisher domain
	Status    string    `dynamodbav:"Status"`
	Content   string    `dynamodbav:"Content"`
	FetchedAt time.Time `dynamodbav:"FetchedAt"`
	Rev       int64     `dynamodbav:"Rev"` // Monotonically increasing revision number
}

// ToDomain converts a DynamoDTO to a model Snapshot
func (dto *DynamoDTO) ToDomain() *model.Snapshot {
	return &model.Snapshot{
		Domain:    dto.PK,
		Status:    dto.Status,
		Content:   dto.Content,
		FetchedAt: dto.FetchedAt,
		Rev:       dto.Rev,
	}
}

// FromDomain creates a DynamoDTO from a model Snapshot
func FromDomain(snap *model.Snapshot) *DynamoDTO {
	return &DynamoDTO{
		PK:        snap.Domain,
		Status:    snap.Status,
		Content:   snap.Content,
		FetchedAt: snap.FetchedAt,
		Rev:       snap.Rev,
	}
}

// ToDomainList converts a slice of DynamoDTOs to model Snapshots
func ToDomainList(dtos []*DynamoDTO) []*model.Snapshot {
	snaps := make([]*model.Snapshot, len(dtos))
	for i, dto := range dtos {
		snaps[i] = dto.ToDomain()
	}
	return snaps
}

package dynamorepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/adverify/supplyval/internal/model"
)

// DynamoRepository is a DynamoDB implementation of SnapshotRepository
type DynamoRepository struct {
	client    *dynamodb.Client
	tableName string
}

// NewDynamoRepository creates a new DynamoDB-backed repository
func NewDynamoRepository(client *dynamodb.Client, tableName string) *DynamoRepository {
	return &DynamoRepository{
		client:    client,
		tableName: tableName,
	}
}

func keyOf(domain string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"pk": &types.AttributeValueMemberS{Value: strings.ToLower(strings.TrimSpace(domain))},
	}
}

// Store saves a snapshot to DynamoDB, failing with ErrAlreadyExists if one
// is already stored for the domain.
func (r *DynamoRepository) Store(ctx context.Context, snap *model.Snapshot) error {
	item, err := r.marshal(snap)
	if err != nil {
		return err
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(pk)"),
	})
	if err != nil {
		var ccfe *types.ConditionalCheckFailedException
		if errors.As(err, &ccfe) {
			return model.ErrAlreadyExists
		}
		return fmt.Errorf("failed to store snapshot: %w", err)
	}

	return nil
}

// Put saves a snapshot, overwriting any existing one for the domain
func (r *DynamoRepository) Put(ctx context.Context, snap *model.Snapshot) error {
	item, err := r.marshal(snap)
	if err != nil {
		return err
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to put snapshot: %w", err)
	}
	return nil
}

// Get retrieves the snapshot for a publisher domain from DynamoDB
func (r *DynamoRepository) Get(ctx context.Context, domain string) (*model.Snapshot, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       keyOf(domain),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}
	if result.Item == nil {
		return nil, model.ErrNotFound
	}

	var dto DynamoDTO
	if err := attributevalue.UnmarshalMap(result.Item, &dto); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return dto.ToDomain(), nil
}

// List retrieves all snapshots from DynamoDB
// Note: For production use with large tables, consider using pagination
func (r *DynamoRepository) List(ctx context.Context) ([]*model.Snapshot, error) {
	result, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan snapshots: %w", err)
	}

	var snaps []*model.Snapshot
	for _, item := range result.Items {
		var dto DynamoDTO
		if err := attributevalue.UnmarshalMap(item, &dto); err != nil {
			return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
		}
		snaps = append(snaps, dto.ToDomain())
	}
	return snaps, nil
}

// Delete removes the snapshot for a publisher domain from DynamoDB
func (r *DynamoRepository) Delete(ctx context.Context, domain string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 keyOf(domain),
		ConditionExpression: aws.String("attribute_exists(pk)"),
	})
	if err != nil {
		var ccfe *types.ConditionalCheckFailedException
		if errors.As(err, &ccfe) {
			return model.ErrNotFound
		}
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}

func (r *DynamoRepository) marshal(snap *model.Snapshot) (map[string]types.AttributeValue, error) {
	if snap == nil {
		return nil, fmt.Errorf("snapshot cannot be nil")
	}
	item, err := attributevalue.MarshalMap(FromDomain(snap))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return item, nil
}

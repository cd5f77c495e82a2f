package repository

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/adverify/supplyval/internal/model"
	"github.com/adverify/supplyval/internal/repository/dynamorepo"
	"github.com/adverify/supplyval/internal/repository/memrepo"
)

// RepositoryConfig holds configuration for creating a snapshot repository
type RepositoryConfig struct {
	// FilePath for JSON file persistence (mutually exclusive with DynamoDB options)
	FilePath string

	// DynamoTable is the DynamoDB table name for persistence
	DynamoTable string

	// DynamoEndpoint is an optional custom DynamoDB endpoint URL
	DynamoEndpoint string
}

// NewRepository creates a SnapshotRepository based on the provided
// configuration. It returns an error if neither file nor DynamoDB
// configuration is provided, or if repository creation fails.
//
// The function prints informational messages about which persistence mechanism
// is being used to help with debugging and user awareness.
func NewRepository(ctx context.Context, cfg RepositoryConfig) (model.SnapshotRepository, error) {
	if cfg.DynamoTable != "" {
		awsCfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}

		var client *dynamodb.Client
		if cfg.DynamoEndpoint != "" {
			// Custom endpoints are used against dynamodb-local in development
			client = dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
				o.BaseEndpoint = &cfg.DynamoEndpoint
			})
			fmt.Printf("Using DynamoDB endpoint: %s\n", cfg.DynamoEndpoint)
		} else {
			client = dynamodb.NewFromConfig(awsCfg)
		}

		repo := dynamorepo.NewDynamoRepository(client, cfg.DynamoTable)
		fmt.Printf("Using DynamoDB table: %s\n", cfg.DynamoTable)
		return repo, nil
	}

	if cfg.FilePath != "" {
		memRepo, err := memrepo.NewMemoryRepositoryWithPersistence(cfg.FilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to create repository: %w", err)
		}
		fmt.Printf("Using JSON persistence: %s\n", cfg.FilePath)
		return memRepo, nil
	}

	return nil, fmt.Errorf("must specify either FilePath or DynamoTable in repository configuration")
}

package refreshbatch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/adverify/supplyval/internal/fetch"
	"github.com/adverify/supplyval/internal/logger"
	"github.com/adverify/supplyval/internal/repository/dynamorepo"
	"github.com/adverify/supplyval/internal/usecase/refresh"
)

// Handler holds the dependencies for the refreshbatch Lambda handler
type Handler struct {
	log         *slog.Logger
	dynamoTable string
}

// NewHandler creates a new refreshbatch handler with initialized dependencies
func NewHandler() (*Handler, error) {
	// Initialize logger with executable name for filtering
	log := logger.NewDefaultLogger()
	log = logger.WithExecutable(log, "refreshbatch")
	logger.SetDefault(log)

	dynamoTable := os.Getenv("DYNAMODB_TABLE")
	if dynamoTable == "" {
		return nil, fmt.Errorf("DYNAMODB_TABLE environment variable is required")
	}
	log.Info("Using DynamoDB table", slog.String("table", dynamoTable))

	return &Handler{
		log:         log,
		dynamoTable: dynamoTable,
	}, nil
}

// Handle processes scheduled Lambda events for batch snapshot refresh.
// Every stored domain is re-fetched; changed documents get a new snapshot
// revision, which the streamer Lambda then propagates to the S3 view.
func (h *Handler) Handle(ctx context.Context, event map[string]interface{}) error {
	requestLogger := logger.WithLambda(h.log,
		os.Getenv("AWS_LAMBDA_FUNCTION_NAME"),
		os.Getenv("AWS_LAMBDA_FUNCTION_VERSION"),
		"") // No request ID for scheduled events

	requestLogger.Info("Scheduled Lambda triggered", slog.Any("event", event))

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		requestLogger.Error("Failed to load AWS config", slog.String("error", err.Error()))
		return fmt.Errorf("failed to load AWS config: %w", err)
	}

	dynamoClient := dynamodb.NewFromConfig(cfg)
	repo := dynamorepo.NewDynamoRepository(dynamoClient, h.dynamoTable)

	fetchClient := fetch.NewClient(30 * time.Second)
	refreshUC := refresh.NewRefreshUseCase(fetchClient, repo, requestLogger)

	results, err := refreshUC.RefreshAll(ctx)
	if err != nil {
		requestLogger.Error("Failed to refresh snapshots",
			slog.Bool("notify", true),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to refresh snapshots: %w", err)
	}

	changed := 0
	failed := 0
	for _, result := range results {
		domainLogger := requestLogger.With(
			slog.String("domain", result.Domain),
			slog.Int64("rev", result.Rev))

		switch {
		case result.ErrorMessage != "":
			failed++
			domainLogger.Warn("Snapshot refresh failed",
				slog.String("error", result.ErrorMessage))
		case result.Changed:
			changed++
			domainLogger.Info("Snapshot updated")
		default:
			domainLogger.Debug("Snapshot unchanged")
		}
	}

	requestLogger.Info("Refresh completed",
		slog.Int("domains_processed", len(results)),
		slog.Int("domains_changed", changed),
		slog.Int("domains_failed", failed))

	return nil
}

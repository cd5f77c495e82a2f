package streamer

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/adverify/supplyval/internal/adapter/s3materializedview"
	"github.com/adverify/supplyval/internal/logger"
	"github.com/adverify/supplyval/internal/service/applystream"
)

// Handler holds the dependencies for the streamer Lambda handler
type Handler struct {
	s3BucketName    string
	s3DataKey       string
	s3Client        *s3.Client
	streamerService *applystream.Service
	log             *slog.Logger
}

// NewHandler creates a new streamer handler with initialized dependencies
func NewHandler() (*Handler, error) {
	// Initialize logger with executable name for filtering
	log := logger.NewDefaultLogger()
	log = logger.WithExecutable(log, "streamer")
	logger.SetDefault(log)

	s3BucketName := os.Getenv("S3_BUCKET")
	if s3BucketName == "" {
		return nil, fmt.Errorf("S3_BUCKET environment variable is required")
	}
	log.Info("Using S3 bucket", slog.String("bucket", s3BucketName))

	// Use S3_DATA_KEY from environment or default to snapshots/domains.json
	s3DataKey := os.Getenv("S3_DATA_KEY")
	if s3DataKey == "" {
		s3DataKey = "snapshots/domains.json"
	}
	log.Info("Using S3 key", slog.String("key", s3DataKey))

	ctx := context.Background()

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		log.Error("Failed to load AWS config", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(cfg)
	log.Info("S3 client initialized", slog.String("bucket", s3BucketName))

	s3View := s3materializedview.New(s3Client, s3BucketName, s3DataKey)
	log.Info("S3 materialized view initialized",
		slog.String("bucket", s3BucketName),
		slog.String("key", s3DataKey))

	streamerService := applystream.New(s3View)
	log.Info("Stream processing service initialized")

	return &Handler{
		s3BucketName:    s3BucketName,
		s3DataKey:       s3DataKey,
		s3Client:        s3Client,
		streamerService: streamerService,
		log:             log,
	}, nil
}

// Handle processes DynamoDB stream events
func (h *Handler) Handle(ctx context.Context, event events.DynamoDBEvent) error {
	// Delegate all processing to the applystream service
	err := h.streamerService.ProcessStreamBatch(ctx, event.Records)
	if err != nil {
		h.log.Error("Stream processing failed",
			slog.String("error", err.Error()),
			slog.Bool("notify", true))
	}
	return err
}

package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/adverify/supplyval/internal/crosscheck"
	"github.com/adverify/supplyval/internal/fetch"
	"github.com/adverify/supplyval/internal/logger"
	"github.com/adverify/supplyval/internal/model"
	"github.com/adverify/supplyval/internal/optimizer"
	"github.com/adverify/supplyval/internal/repository/dynamorepo"
	"github.com/adverify/supplyval/internal/usecase/validate"
)

// Handler holds the dependencies for the httpapi Lambda handler
type Handler struct {
	repo       model.SnapshotRepository
	validateUC *validate.ValidateUseCase
	log        *slog.Logger
}

// ValidateRequest represents the expected JSON payload for validation.
// If Content is empty, the live ads.txt for Domain is fetched.
type ValidateRequest struct {
	Domain  string `json:"domain"`
	Content string `json:"content,omitempty"`
}

// ValidateResponse represents the JSON response for validation
type ValidateResponse struct {
	Domain       string            `json:"domain"`
	Records      []*model.Record   `json:"records"`
	Variables    []*model.Variable `json:"variables"`
	ErrorCount   int               `json:"errorCount"`
	WarningCount int               `json:"warningCount"`
}

// OptimizeRequest represents the expected JSON payload for optimization
type OptimizeRequest struct {
	Domain  string `json:"domain,omitempty"`
	Content string `json:"content"`
}

// OptimizeResponse represents the JSON response for optimization
type OptimizeResponse struct {
	OptimizedContent string `json:"optimizedContent"`
}

// NewHandler creates a new httpapi handler with initialized dependencies
func NewHandler() (*Handler, error) {
	// Initialize logger with executable name for filtering
	log := logger.NewDefaultLogger()
	log = logger.WithExecutable(log, "httpapi")
	logger.SetDefault(log)

	// Optional endpoint override for local development or testing
	dynamoEndpoint := os.Getenv("DYNAMODB_ENDPOINT")
	if dynamoEndpoint != "" {
		log.Info("Using custom DynamoDB endpoint", slog.String("endpoint", dynamoEndpoint))
	} else {
		// When not using a custom endpoint, AWS_REGION is required
		awsRegion := os.Getenv("AWS_REGION")
		if awsRegion == "" {
			return nil, fmt.Errorf("AWS_REGION environment variable is required when DYNAMODB_ENDPOINT is not set")
		}
		log.Info("Using AWS region", slog.String("region", awsRegion))
	}

	dynamoTable := os.Getenv("DYNAMODB_TABLE")
	if dynamoTable == "" {
		return nil, fmt.Errorf("DYNAMODB_TABLE environment variable is required")
	}
	log.Info("Using DynamoDB table", slog.String("table", dynamoTable))

	ctx := context.Background()

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		log.Error("Failed to load AWS config", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var client *dynamodb.Client
	if dynamoEndpoint != "" {
		client = dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
			o.BaseEndpoint = &dynamoEndpoint
		})
	} else {
		client = dynamodb.NewFromConfig(cfg)
	}

	repo := dynamorepo.NewDynamoRepository(client, dynamoTable)
	log.Info("DynamoDB repository initialized", slog.String("table", dynamoTable))

	// The fetch client doubles as the sellers.json provider and the
	// ads.txt fetcher
	fetchClient := fetch.NewClient(30 * time.Second)
	checker := crosscheck.New(fetchClient, log)
	validateUC := validate.NewValidateUseCase(repo, checker, fetchClient, log)
	log.Info("Validation use case initialized")

	return &Handler{
		repo:       repo,
		validateUC: validateUC,
		log:        log,
	}, nil
}

// Handle processes API Gateway HTTP requests
func (h *Handler) Handle(ctx context.Context, request events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	requestLogger := logger.WithLambda(h.log,
		os.Getenv("AWS_LAMBDA_FUNCTION_NAME"),
		os.Getenv("AWS_LAMBDA_FUNCTION_VERSION"),
		request.RequestContext.RequestID)

	requestLogger.Info("Incoming request",
		slog.String("method", request.RequestContext.HTTP.Method),
		slog.String("path", request.RequestContext.HTTP.Path),
		slog.String("raw_path", request.RawPath))

	// For API Gateway v2, the path is in RequestContext.HTTP.Path
	path := request.RequestContext.HTTP.Path
	if path == "" {
		path = request.RawPath
	}

	// Remove the /api prefix if present since we're matching on the API path
	path = strings.TrimPrefix(path, "/api")

	switch {
	case strings.HasSuffix(path, "/v1/validate"):
		return h.handleValidate(ctx, requestLogger, request)
	case strings.HasSuffix(path, "/v1/optimize"):
		return h.handleOptimize(ctx, requestLogger, request)
	default:
		requestLogger.Warn("Path not matched", slog.String("path", path))
		return errorResponseV2(404, fmt.Sprintf("Unknown endpoint: %s", path))
	}
}

func (h *Handler) handleValidate(ctx context.Context, requestLogger *slog.Logger, request events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	httpMethod := request.RequestContext.HTTP.Method
	if httpMethod != "POST" {
		return errorResponseV2(405, fmt.Sprintf("Method not allowed. Only POST is supported for this endpoint (received: %s)", httpMethod))
	}

	var validateReq ValidateRequest
	if err := json.Unmarshal([]byte(request.Body), &validateReq); err != nil {
		return errorResponseV2(400, fmt.Sprintf("Invalid request body: %v", err))
	}
	if validateReq.Domain == "" {
		return errorResponseV2(400, "domain field is required")
	}

	var result *validate.Result
	var err error
	if validateReq.Content != "" {
		result, err = h.validateUC.ValidateContent(ctx, validateReq.Domain, validateReq.Content)
	} else {
		result, err = h.validateUC.ValidateDomain(ctx, validateReq.Domain)
	}
	if err != nil {
		requestLogger.Error("Validation failed", slog.String("error", err.Error()))
		return errorResponseV2(500, fmt.Sprintf("validation failed: %v", err))
	}

	response := ValidateResponse{
		Domain:       result.Domain,
		Records:      model.Records(result.Entries),
		Variables:    model.Variables(result.Entries),
		ErrorCount:   result.ErrorCount,
		WarningCount: result.WarningCount,
	}
	return jsonResponseV2(response, requestLogger)
}

func (h *Handler) handleOptimize(ctx context.Context, requestLogger *slog.Logger, request events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	httpMethod := request.RequestContext.HTTP.Method
	if httpMethod != "POST" {
		return errorResponseV2(405, fmt.Sprintf("Method not allowed. Only POST is supported for this endpoint (received: %s)", httpMethod))
	}

	var optimizeReq OptimizeRequest
	if err := json.Unmarshal([]byte(request.Body), &optimizeReq); err != nil {
		return errorResponseV2(400, fmt.Sprintf("Invalid request body: %v", err))
	}
	if optimizeReq.Content == "" {
		return errorResponseV2(400, "content field is required")
	}

	optimized := optimizer.Optimize(optimizeReq.Content, optimizeReq.Domain)
	return jsonResponseV2(OptimizeResponse{OptimizedContent: optimized}, requestLogger)
}

func jsonResponseV2(payload any, requestLogger *slog.Logger) (events.APIGatewayV2HTTPResponse, error) {
	responseBody, err := json.Marshal(payload)
	if err != nil {
		requestLogger.Error("Failed to marshal response", slog.String("error", err.Error()))
		return errorResponseV2(500, "failed to generate response")
	}

	return events.APIGatewayV2HTTPResponse{
		StatusCode: 200,
		Body:       string(responseBody),
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}

// errorResponseV2 creates a standardized error response for API Gateway v2
func errorResponseV2(statusCode int, message string) (events.APIGatewayV2HTTPResponse, error) {
	errorBody := map[string]string{
		"error": message,
	}
	body, _ := json.Marshal(errorBody)

	return events.APIGatewayV2HTTPResponse{
		StatusCode: statusCode,
		Body:       string(body),
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}

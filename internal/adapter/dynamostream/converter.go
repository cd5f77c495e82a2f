package dynamostream

import (
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-lambda-go/events"

	"github.com/adverify/supplyval/internal/model"
)

// ConvertToSnapshot converts a DynamoDB stream NewImage map to a Snapshot
func ConvertToSnapshot(newImage map[string]events.DynamoDBAttributeValue) (*model.Snapshot, error) {
	if newImage == nil {
		return nil, fmt.Errorf("newImage is nil")
	}

	snap := &model.Snapshot{}

	// Domain comes from pk
	if pk, ok := newImage["pk"]; ok && pk.DataType() == events.DataTypeString {
		snap.Domain = pk.String()
	}
	if snap.Domain == "" {
		return nil, fmt.Errorf("missing required field: Domain (pk)")
	}

	if status, ok := newImage["Status"]; ok && status.DataType() == events.DataTypeString {
		snap.Status = status.String()
	} else {
		return nil, fmt.Errorf("missing required field: Status")
	}

	// Content may legitimately be empty for domains serving a blank ads.txt
	if content, ok := newImage["Content"]; ok && content.DataType() == events.DataTypeString {
		snap.Content = content.String()
	}

	// FetchedAt - required and must be valid RFC3339
	if fetchedAt, ok := newImage["FetchedAt"]; ok && fetchedAt.DataType() == events.DataTypeString {
		t, err := time.Parse(time.RFC3339, fetchedAt.String())
		if err != nil {
			return nil, fmt.Errorf("invalid FetchedAt format: %w", err)
		}
		snap.FetchedAt = t
	} else {
		return nil, fmt.Errorf("missing required field: FetchedAt")
	}

	if rev, ok := newImage["Rev"]; ok && rev.DataType() == events.DataTypeNumber {
		n, err := strconv.ParseInt(rev.Number(), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid Rev format: %w", err)
		}
		snap.Rev = n
	}

	return snap, nil
}

// ExtractStringAttribute extracts a string value from DynamoDB attribute map
func ExtractStringAttribute(attrs map[string]events.DynamoDBAttributeValue, key string) string {
	if attr, ok := attrs[key]; ok {
		if attr.DataType() == events.DataTypeString {
			return attr.String()
		}
	}
	return ""
}

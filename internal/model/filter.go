package model

import "strings"

// RecordFilter contains criteria for filtering parsed records with multiple
// values per field. All criteria are optional; only non-empty slices are
// applied. Within each field, values are combined with OR logic (any value
// matches). Between fields, criteria are combined with AND logic (all fields
// must match).
type RecordFilter struct {
	// Domains filters by ad-system domain (case-insensitive, OR within list)
	Domains []string

	// Relationships filters by relationship (case-insensitive, OR within list)
	Relationships []string

	// ErrorCodes filters by parse error code (exact match, OR within list)
	ErrorCodes []string

	// WarningCodes filters by primary warning code (exact match, OR within list)
	WarningCodes []string
}

// FilterRecords filters a slice of records based on the provided criteria.
// Returns a new slice containing only records that match the filter.
// Empty filter slices are ignored (treated as "match all").
func FilterRecords(records []*Record, filter RecordFilter) []*Record {
	// If no filters specified, return all records
	if len(filter.Domains) == 0 && len(filter.Relationships) == 0 &&
		len(filter.ErrorCodes) == 0 && len(filter.WarningCodes) == 0 {
		return records
	}

	// Create lookup maps for efficient filtering
	domainMap := make(map[string]bool)
	for _, domain := range filter.Domains {
		domainMap[strings.ToLower(domain)] = true
	}

	relationshipMap := make(map[string]bool)
	for _, rel := range filter.Relationships {
		relationshipMap[strings.ToUpper(rel)] = true
	}

	errorCodeMap := make(map[string]bool)
	for _, code := range filter.ErrorCodes {
		errorCodeMap[code] = true
	}

	warningCodeMap := make(map[string]bool)
	for _, code := range filter.WarningCodes {
		warningCodeMap[code] = true
	}

	var filtered []*Record

	for _, record := range records {
		// Apply domain filter (case-insensitive)
		if len(filter.Domains) > 0 && !domainMap[strings.ToLower(record.Domain)] {
			continue
		}

		// Apply relationship filter (case-insensitive)
		if len(filter.Relationships) > 0 && !relationshipMap[string(record.Relationship)] {
			continue
		}

		// Apply error code filter (exact match)
		if len(filter.ErrorCodes) > 0 && !errorCodeMap[string(record.ErrorCode)] {
			continue
		}

		// Apply warning code filter (exact match)
		if len(filter.WarningCodes) > 0 && !warningCodeMap[string(record.WarningCode)] {
			continue
		}

		filtered = append(filtered, record)
	}

	return filtered
}

package model

// ErrorCode identifies why a line failed to parse as a record.
// A record carries at most one error code; an errored record is excluded
// from canonicalized output but retained in the parse result for diagnostics.
type ErrorCode string

const (
	ErrMissingFields          ErrorCode = "MISSING_FIELDS"
	ErrInvalidFormat          ErrorCode = "INVALID_FORMAT"
	ErrInvalidRelationship    ErrorCode = "INVALID_RELATIONSHIP"
	ErrMisspelledRelationship ErrorCode = "MISSPELLED_RELATIONSHIP"
	ErrInvalidRootDomain      ErrorCode = "INVALID_ROOT_DOMAIN"
	ErrEmptyAccountID         ErrorCode = "EMPTY_ACCOUNT_ID"
)

// WarningCode identifies a semantic finding on a syntactically valid record.
// Warnings never invalidate a record.
type WarningCode string

const (
	WarnDuplicate                       WarningCode = "DUPLICATE"
	WarnNoSellersJSON                   WarningCode = "NO_SELLERS_JSON"
	WarnDirectAccountIDNotInDirectory   WarningCode = "DIRECT_ACCOUNT_ID_NOT_IN_DIRECTORY"
	WarnResellerAccountIDNotInDirectory WarningCode = "RESELLER_ACCOUNT_ID_NOT_IN_DIRECTORY"
	WarnDomainMismatch                  WarningCode = "DOMAIN_MISMATCH"
	WarnDirectNotPublisher              WarningCode = "DIRECT_NOT_PUBLISHER"
	WarnResellerNotIntermediary         WarningCode = "RESELLER_NOT_INTERMEDIARY"
	WarnSellerIDNotUnique               WarningCode = "SELLER_ID_NOT_UNIQUE"
	WarnDirectoryValidationError        WarningCode = "DIRECTORY_VALIDATION_ERROR"
)

// Warning is one semantic finding with its message parameters
type Warning struct {
	Code   WarningCode       `json:"code"`
	Params map[string]string `json:"params,omitempty"`
}

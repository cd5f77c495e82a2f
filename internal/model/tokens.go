package model

import "strings"

// Relationship declares whether an account ID identifies the publisher itself
// or an authorized reseller of its inventory.
type Relationship string

const (
	RelationshipDirect   Relationship = "DIRECT"
	RelationshipReseller Relationship = "RESELLER"
)

// ParseRelationship matches a raw token against the two relationship values,
// case-insensitively. Returns false if the token is neither.
func ParseRelationship(token string) (Relationship, bool) {
	switch strings.ToUpper(strings.TrimSpace(token)) {
	case string(RelationshipDirect):
		return RelationshipDirect, true
	case string(RelationshipReseller):
		return RelationshipReseller, true
	}
	return "", false
}

// VariableType represents the type of an ads.txt variable declaration
type VariableType string

const (
	VarContact                VariableType = "CONTACT"
	VarSubdomain              VariableType = "SUBDOMAIN"
	VarInventoryPartnerDomain VariableType = "INVENTORYPARTNERDOMAIN"
	VarOwnerDomain            VariableType = "OWNERDOMAIN"
	VarManagerDomain          VariableType = "MANAGERDOMAIN"
)

// VariableTypeOrder lists the variable types in their canonical serialization order
var VariableTypeOrder = []VariableType{
	VarContact,
	VarSubdomain,
	VarInventoryPartnerDomain,
	VarOwnerDomain,
	VarManagerDomain,
}

// ParseVariableType matches a raw token against the fixed variable-type set,
// case-insensitively. Returns false for unknown tokens.
func ParseVariableType(token string) (VariableType, bool) {
	upper := VariableType(strings.ToUpper(strings.TrimSpace(token)))
	for _, vt := range VariableTypeOrder {
		if vt == upper {
			return vt, true
		}
	}
	return "", false
}

// ValidVariableTypesText returns a human-readable list of the valid variable types
func ValidVariableTypesText() string {
	names := make([]string, 0, len(VariableTypeOrder))
	for _, vt := range VariableTypeOrder {
		names = append(names, string(vt))
	}
	return "Valid variable types: " + strings.Join(names, ", ")
}

// SellerType is the normalized seller_type field of a sellers.json entry
type SellerType string

const (
	SellerTypePublisher    SellerType = "PUBLISHER"
	SellerTypeIntermediary SellerType = "INTERMEDIARY"
	SellerTypeBoth         SellerType = "BOTH"
)

// NormalizeSellerType uppercases and trims a raw seller_type token
func NormalizeSellerType(raw string) SellerType {
	return SellerType(strings.ToUpper(strings.TrimSpace(raw)))
}

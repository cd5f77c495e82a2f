// Package sellers parses sellers.json directory documents published by
// advertising systems and answers the lookups the cross-validator needs.
package sellers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/adverify/supplyval/internal/model"
)

// Identifier is one entry of the optional identifiers array
type Identifier struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Directory is a parsed sellers.json document for one ad-system domain
type Directory struct {
	Version      string               `json:"version"`
	ContactEmail string               `json:"contact_email,omitempty"`
	Identifiers  []Identifier         `json:"identifiers,omitempty"`
	Sellers      []model.SellerRecord `json:"sellers"`
}

// Provider supplies the sellers.json directory for an ad-system domain.
// A nil directory with a nil error means no directory is available for the
// domain; an error means the fetch or parse failed.
type Provider interface {
	GetByDomain(ctx context.Context, domain string) (*Directory, error)
}

// confidentialFlag tolerates the two encodings seen in the wild: the
// spec's numeric 0/1 and plain JSON booleans.
type confidentialFlag bool

func (f *confidentialFlag) UnmarshalJSON(b []byte) error {
	switch strings.TrimSpace(string(b)) {
	case "1", "true":
		*f = true
	default:
		*f = false
	}
	return nil
}

type sellerDTO struct {
	SellerID       string           `json:"seller_id"`
	Domain         string           `json:"domain"`
	SellerType     string           `json:"seller_type"`
	IsConfidential confidentialFlag `json:"is_confidential"`
	Name           string           `json:"name"`
}

type directoryDTO struct {
	Version      string       `json:"version"`
	ContactEmail string       `json:"contact_email"`
	Identifiers  []Identifier `json:"identifiers"`
	Sellers      []sellerDTO  `json:"sellers"`
}

// ParseContent parses raw sellers.json text into a Directory. Seller types
// are normalized to their uppercase canonical form.
func ParseContent(raw string) (*Directory, error) {
	var dto directoryDTO
	if err := json.Unmarshal([]byte(raw), &dto); err != nil {
		return nil, fmt.Errorf("failed to parse sellers.json: %w", err)
	}

	dir := &Directory{
		Version:      dto.Version,
		ContactEmail: dto.ContactEmail,
		Identifiers:  dto.Identifiers,
		Sellers:      make([]model.SellerRecord, 0, len(dto.Sellers)),
	}
	for _, s := range dto.Sellers {
		dir.Sellers = append(dir.Sellers, model.SellerRecord{
			SellerID:       s.SellerID,
			Domain:         s.Domain,
			SellerType:     model.NormalizeSellerType(s.SellerType),
			IsConfidential: bool(s.IsConfidential),
			Name:           s.Name,
		})
	}
	return dir, nil
}

// FindSeller returns the first seller whose trimmed seller_id equals the
// trimmed account ID, or nil when none matches. The comparison is
// case-sensitive.
func (d *Directory) FindSeller(accountID string) *model.SellerRecord {
	want := strings.TrimSpace(accountID)
	for i := range d.Sellers {
		if strings.TrimSpace(d.Sellers[i].SellerID) == want {
			return &d.Sellers[i]
		}
	}
	return nil
}

// CountSellerID returns how many sellers in this directory share the given
// seller_id. Counts never span directories of other ad-system domains.
func (d *Directory) CountSellerID(sellerID string) int {
	want := strings.TrimSpace(sellerID)
	count := 0
	for i := range d.Sellers {
		if strings.TrimSpace(d.Sellers[i].SellerID) == want {
			count++
		}
	}
	return count
}

package model

// SellerRecord is one entry of an advertising system's sellers.json
// directory. It is externally sourced and read-only.
type SellerRecord struct {
	SellerID       string     `json:"seller_id"`
	Domain         string     `json:"domain,omitempty"`
	SellerType     SellerType `json:"seller_type,omitempty"`
	IsConfidential bool       `json:"is_confidential,omitempty"`
	Name           string     `json:"name,omitempty"`
}

// CrossCheckResult records the outcome of every cross-check rule for one
// record. A nil field means the rule was not applicable to this record
// (for example the reseller fields on a DIRECT record, or all later rules
// once no directory was found).
type CrossCheckResult struct {
	HasSellersDirectory              *bool `json:"has_sellers_directory"`
	DirectAccountIDInDirectory       *bool `json:"direct_account_id_in_directory"`
	ResellerAccountIDInDirectory     *bool `json:"reseller_account_id_in_directory"`
	DirectDomainMatchesSellerEntry   *bool `json:"direct_domain_matches_seller_entry"`
	ResellerDomainMatchesSellerEntry *bool `json:"reseller_domain_matches_seller_entry"`
	DirectEntryHasPublisherType      *bool `json:"direct_entry_has_publisher_type"`
	ResellerEntryHasIntermediaryType *bool `json:"reseller_entry_has_intermediary_type"`
	SellerIDIsUnique                 *bool `json:"seller_id_is_unique"`

	// MatchedSeller is a snapshot of the directory entry whose seller_id
	// matched this record's account ID, if any
	MatchedSeller *SellerRecord `json:"matched_seller,omitempty"`
}

// Clone returns a deep copy of the result
func (c *CrossCheckResult) Clone() *CrossCheckResult {
	out := *c
	out.HasSellersDirectory = cloneBool(c.HasSellersDirectory)
	out.DirectAccountIDInDirectory = cloneBool(c.DirectAccountIDInDirectory)
	out.ResellerAccountIDInDirectory = cloneBool(c.ResellerAccountIDInDirectory)
	out.DirectDomainMatchesSellerEntry = cloneBool(c.DirectDomainMatchesSellerEntry)
	out.ResellerDomainMatchesSellerEntry = cloneBool(c.ResellerDomainMatchesSellerEntry)
	out.DirectEntryHasPublisherType = cloneBool(c.DirectEntryHasPublisherType)
	out.ResellerEntryHasIntermediaryType = cloneBool(c.ResellerEntryHasIntermediaryType)
	out.SellerIDIsUnique = cloneBool(c.SellerIDIsUnique)
	if c.MatchedSeller != nil {
		seller := *c.MatchedSeller
		out.MatchedSeller = &seller
	}
	return &out
}

func cloneBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}

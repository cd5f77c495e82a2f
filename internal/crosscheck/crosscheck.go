// Package crosscheck evaluates parsed ads.txt records against the sellers
// directories published by the advertising systems they reference.
//
// Every valid record passes through the same rule sequence: directory
// presence, account-ID membership, seller domain match, seller type match,
// and seller-id uniqueness within the directory. All triggered findings are
// accumulated; nothing short-circuits except the two terminal cases
// (missing directory, unknown account ID). A provider failure for one
// domain degrades to a warning on the records referencing it and never
// aborts validation of records for other domains.
package crosscheck

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/adverify/supplyval/internal/model"
	"github.com/adverify/supplyval/internal/sellers"
)

// Checker cross-validates records against sellers directories supplied by
// an injected provider.
type Checker struct {
	provider sellers.Provider
	log      *slog.Logger
}

// New creates a Checker using the given directory provider
func New(provider sellers.Provider, log *slog.Logger) *Checker {
	if log == nil {
		log = slog.Default()
	}
	return &Checker{provider: provider, log: log}
}

// CrossCheckRecords evaluates every valid record in entries and returns a
// new entry list with annotated copies; the input is never mutated. With an
// empty publisher domain the call is a pure pass-through. Directory content
// is fetched at most once per distinct ad-system domain, with the distinct
// domains fetched concurrently before any record is evaluated.
func (c *Checker) CrossCheckRecords(ctx context.Context, publisherDomain string, entries []model.Entry) []model.Entry {
	if publisherDomain == "" {
		return entries
	}
	if c.provider == nil {
		c.log.Warn("no sellers directory provider configured, skipping cross-check")
		return entries
	}

	cache := newDirectoryCache(c.provider)

	// Populate the per-domain cache before any record reads it
	var wg sync.WaitGroup
	for _, domain := range distinctDomains(entries) {
		wg.Add(1)
		go func(domain string) {
			defer wg.Done()
			cache.get(ctx, domain)
		}(domain)
	}
	wg.Wait()

	declared := declaredDomains(entries)

	out := make([]model.Entry, 0, len(entries))
	for _, entry := range entries {
		record, ok := entry.(*model.Record)
		if !ok || !record.IsValid {
			out = append(out, entry)
			continue
		}

		annotated := record.Clone()
		c.evaluate(ctx, cache, publisherDomain, declared, annotated)
		out = append(out, annotated)
	}

	return out
}

// evaluate runs the rule sequence for one record, replacing its
// ValidationResults wholesale.
func (c *Checker) evaluate(ctx context.Context, cache *directoryCache, publisherDomain string, declared []string, record *model.Record) {
	results := &model.CrossCheckResult{}
	record.ValidationResults = results

	lookup := cache.get(ctx, record.Domain)
	if lookup.err != nil {
		record.AddWarning(model.WarnDirectoryValidationError, map[string]string{
			"domain":  record.Domain,
			"message": lookup.err.Error(),
		})
		return
	}

	isDirect := record.Relationship == model.RelationshipDirect

	if lookup.dir == nil {
		results.HasSellersDirectory = boolPtr(false)
		record.AddWarning(model.WarnNoSellersJSON, map[string]string{"domain": record.Domain})
		return
	}
	results.HasSellersDirectory = boolPtr(true)

	seller := lookup.dir.FindSeller(record.AccountID)
	if seller == nil {
		params := map[string]string{
			"domain":     record.Domain,
			"account_id": record.AccountID,
		}
		if isDirect {
			results.DirectAccountIDInDirectory = boolPtr(false)
			record.AddWarning(model.WarnDirectAccountIDNotInDirectory, params)
		} else {
			results.ResellerAccountIDInDirectory = boolPtr(false)
			record.AddWarning(model.WarnResellerAccountIDNotInDirectory, params)
		}
		return
	}

	matched := *seller
	results.MatchedSeller = &matched
	if isDirect {
		results.DirectAccountIDInDirectory = boolPtr(true)
	} else {
		results.ResellerAccountIDInDirectory = boolPtr(true)
	}

	sharedCount := lookup.dir.CountSellerID(record.AccountID)

	// Domain match. Confidential entries and entries without a domain are
	// skipped; RESELLER records matched to an intermediary seller are exempt.
	exempt := !isDirect &&
		(seller.SellerType == model.SellerTypeIntermediary || seller.SellerType == model.SellerTypeBoth)
	if !seller.IsConfidential && seller.Domain != "" && !exempt {
		ok := domainMatches(seller.Domain, declared, publisherDomain)
		if isDirect {
			results.DirectDomainMatchesSellerEntry = boolPtr(ok)
		} else {
			results.ResellerDomainMatchesSellerEntry = boolPtr(ok)
		}
		if !ok {
			record.AddWarning(model.WarnDomainMismatch, map[string]string{
				"domain":           record.Domain,
				"account_id":       record.AccountID,
				"seller_domain":    seller.Domain,
				"publisher_domain": publisherDomain,
			})
		}
	}

	if isDirect {
		ok := seller.SellerType == model.SellerTypePublisher || seller.SellerType == model.SellerTypeBoth
		results.DirectEntryHasPublisherType = boolPtr(ok)
		if !ok {
			record.AddWarning(model.WarnDirectNotPublisher, typeParams(record, seller))
		}
	} else {
		ok := seller.SellerType == model.SellerTypeIntermediary || seller.SellerType == model.SellerTypeBoth
		results.ResellerEntryHasIntermediaryType = boolPtr(ok)
		if !ok {
			record.AddWarning(model.WarnResellerNotIntermediary, typeParams(record, seller))
		}
	}

	unique := sharedCount <= 1
	results.SellerIDIsUnique = boolPtr(unique)
	if !unique {
		record.AddWarning(model.WarnSellerIDNotUnique, map[string]string{
			"domain":     record.Domain,
			"account_id": record.AccountID,
			"count":      strconv.Itoa(sharedCount),
		})
	}
}

// distinctDomains collects the ad-system domains of the valid records,
// lowercased and deduplicated, preserving first-seen order.
func distinctDomains(entries []model.Entry) []string {
	seen := make(map[string]bool)
	var domains []string
	for _, entry := range entries {
		record, ok := entry.(*model.Record)
		if !ok || !record.IsValid {
			continue
		}
		domain := strings.ToLower(strings.TrimSpace(record.Domain))
		if domain == "" || seen[domain] {
			continue
		}
		seen[domain] = true
		domains = append(domains, domain)
	}
	return domains
}

// declaredDomains harvests every OWNERDOMAIN and MANAGERDOMAIN value from
// the entry list, lowercased, with any ",<COUNTRY>" suffix removed from
// manager declarations.
func declaredDomains(entries []model.Entry) []string {
	var declared []string
	for _, entry := range entries {
		variable, ok := entry.(*model.Variable)
		if !ok {
			continue
		}
		switch variable.Type {
		case model.VarOwnerDomain:
			declared = append(declared, strings.ToLower(strings.TrimSpace(variable.Value)))
		case model.VarManagerDomain:
			value := variable.Value
			if idx := strings.Index(value, ","); idx >= 0 {
				value = value[:idx]
			}
			declared = append(declared, strings.ToLower(strings.TrimSpace(value)))
		}
	}
	return declared
}

// domainMatches compares the seller's declared domain against the
// OWNERDOMAIN/MANAGERDOMAIN values, falling back to the publisher domain
// when the document declares neither.
func domainMatches(sellerDomain string, declared []string, publisherDomain string) bool {
	got := strings.ToLower(strings.TrimSpace(sellerDomain))
	if len(declared) == 0 {
		return got == strings.ToLower(strings.TrimSpace(publisherDomain))
	}
	for _, want := range declared {
		if got == want {
			return true
		}
	}
	return false
}

func typeParams(record *model.Record, seller *model.SellerRecord) map[string]string {
	return map[string]string{
		"domain":      record.Domain,
		"account_id":  record.AccountID,
		"seller_type": string(seller.SellerType),
	}
}

func boolPtr(b bool) *bool { return &b }

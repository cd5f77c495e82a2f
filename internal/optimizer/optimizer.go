// Package optimizer re-serializes an ads.txt document into a normalized
// canonical form: invalid lines dropped, duplicates removed, variables
// grouped ahead of records, and everything deterministically sorted. The
// transformation is idempotent and never fails on malformed input.
package optimizer

import (
	"sort"
	"strings"

	"github.com/adverify/supplyval/internal/model"
	"github.com/adverify/supplyval/internal/parser"
)

// defaultLeadingComment heads the output when the original document has no
// leading comment of its own.
const defaultLeadingComment = "# ads.txt"

type recordKey struct {
	domain       string
	accountID    string
	relationship model.Relationship
}

type variableKey struct {
	varType model.VariableType
	value   string
}

// Optimize parses content, discards invalid entries, deduplicates, sorts,
// and re-serializes. If publisherDomain is non-empty and no OWNERDOMAIN
// survives, one is synthesized from its root domain. Both section headers
// are emitted even when no valid entries exist.
func Optimize(content string, publisherDomain string) string {
	entries := parser.ParseContent(content, publisherDomain)

	// Deduplicate, first occurrence wins
	seenVars := make(map[variableKey]bool)
	seenRecords := make(map[recordKey]bool)
	variablesByType := make(map[model.VariableType][]*model.Variable)
	var records []*model.Record

	for _, entry := range entries {
		switch e := entry.(type) {
		case *model.Variable:
			key := variableKey{varType: e.Type, value: strings.ToLower(e.Value)}
			if seenVars[key] {
				continue
			}
			seenVars[key] = true
			variablesByType[e.Type] = append(variablesByType[e.Type], e)
		case *model.Record:
			if !e.IsValid {
				continue
			}
			key := recordKey{
				domain:       strings.ToLower(e.Domain),
				accountID:    e.AccountID,
				relationship: e.Relationship,
			}
			if seenRecords[key] {
				continue
			}
			seenRecords[key] = true
			records = append(records, e)
		}
	}

	sortRecords(records)

	var b strings.Builder
	b.WriteString(leadingComment(content))
	b.WriteString("\n\n")

	hasVariables := false
	for _, varType := range model.VariableTypeOrder {
		group := variablesByType[varType]
		if len(group) == 0 {
			continue
		}
		hasVariables = true
		sort.Slice(group, func(i, j int) bool {
			return strings.ToLower(group[i].Value) < strings.ToLower(group[j].Value)
		})

		b.WriteString("# " + string(varType) + " Variables\n")
		for _, v := range group {
			b.WriteString(string(v.Type) + "=" + v.Value + "\n")
		}
		b.WriteString("\n")
	}
	if !hasVariables {
		b.WriteString("# Variables\n\n")
	}

	b.WriteString("# Advertising System Records\n")
	for _, r := range records {
		line := r.Domain + ", " + r.AccountID + ", " + string(r.Relationship)
		if r.CertAuthorityID != "" {
			line += ", " + r.CertAuthorityID
		}
		b.WriteString(line + "\n")
	}

	return b.String()
}

// sortRecords groups records by domain (lexical, case-insensitive), with
// DIRECT before RESELLER within a domain, then by account ID.
func sortRecords(records []*model.Record) {
	sort.Slice(records, func(i, j int) bool {
		di := strings.ToLower(records[i].Domain)
		dj := strings.ToLower(records[j].Domain)
		if di != dj {
			return di < dj
		}
		if records[i].Relationship != records[j].Relationship {
			return records[i].Relationship == model.RelationshipDirect
		}
		return records[i].AccountID < records[j].AccountID
	})
}

// leadingComment returns the document's first comment line when the
// document starts with one, otherwise the default header.
func leadingComment(content string) string {
	for _, line := range strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "#") {
			return trimmed
		}
		break
	}
	return defaultLeadingComment
}

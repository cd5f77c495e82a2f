// Package parser turns raw ads.txt text into typed entries: advertising
// system records, variable declarations, or invalid records carrying a
// diagnosis. Parsing is a pure function of the input text.
package parser

import (
	"strings"

	"github.com/adverify/supplyval/internal/model"
)

// ParseLine parses one raw line into an entry. Blank lines and comment lines
// return nil. A line matching TYPE=value against the fixed variable-type set
// becomes a Variable; everything else is parsed as a record, valid or not.
func ParseLine(line string, lineNumber int) model.Entry {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil
	}

	// Tolerate a trailing #comment on any data line
	content := trimmed
	if idx := strings.Index(content, "#"); idx >= 0 {
		content = strings.TrimSpace(content[:idx])
		if content == "" {
			return nil
		}
	}

	// Variable declaration: TYPE=value. The value of MANAGERDOMAIN may carry
	// a ",<COUNTRY>" suffix, so the comma test applies to the name part only.
	if eq := strings.Index(content, "="); eq >= 0 && !strings.Contains(content[:eq], ",") {
		name := strings.TrimSpace(content[:eq])
		value := strings.TrimSpace(content[eq+1:])
		if varType, ok := model.ParseVariableType(name); ok {
			return &model.Variable{
				Type:       varType,
				Value:      value,
				LineNumber: lineNumber,
				RawLine:    line,
			}
		}
		// Variable-shaped line with an unknown type cannot be a record either
		// when it has no comma-separated fields
		if !strings.Contains(content, ",") {
			return invalidRecord(line, lineNumber, model.ErrInvalidFormat)
		}
	}

	fields := strings.Split(content, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	if len(fields) < 3 {
		return invalidRecord(line, lineNumber, model.ErrMissingFields)
	}

	record := &model.Record{
		Domain:     fields[0],
		AccountID:  fields[1],
		LineNumber: lineNumber,
		RawLine:    line,
	}

	// The relationship is normally the third field. Some documents insert an
	// account-type token before it, pushing the relationship to the fourth
	// field and the certification authority ID to the fifth.
	if rel, ok := model.ParseRelationship(fields[2]); ok {
		record.Relationship = rel
		if len(fields) > 3 {
			record.CertAuthorityID = fields[3]
		}
	} else if len(fields) > 3 {
		if rel, ok := model.ParseRelationship(fields[3]); ok {
			record.AccountType = fields[2]
			record.Relationship = rel
			if len(fields) > 4 {
				record.CertAuthorityID = fields[4]
			}
		} else if IsMisspelledRelationship(fields[3]) || IsMisspelledRelationship(fields[2]) {
			record.ErrorCode = model.ErrMisspelledRelationship
			return record
		} else {
			record.ErrorCode = model.ErrInvalidRelationship
			return record
		}
	} else if IsMisspelledRelationship(fields[2]) {
		record.ErrorCode = model.ErrMisspelledRelationship
		return record
	} else {
		record.ErrorCode = model.ErrInvalidRelationship
		return record
	}

	if !IsRootDomain(record.Domain) {
		record.ErrorCode = model.ErrInvalidRootDomain
		return record
	}

	if record.AccountID == "" {
		record.ErrorCode = model.ErrEmptyAccountID
		return record
	}

	record.IsValid = true
	return record
}

// ParseContent parses a full document into its entries. If publisherDomain
// is non-empty and the document declares no OWNERDOMAIN variable, a default
// one is synthesized from the root domain of publisherDomain, marked with
// the synthetic line number sentinel.
func ParseContent(content string, publisherDomain string) []model.Entry {
	var entries []model.Entry
	hasOwnerDomain := false

	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	for i, line := range lines {
		entry := ParseLine(line, i+1)
		if entry == nil {
			continue
		}
		if v, ok := entry.(*model.Variable); ok && v.Type == model.VarOwnerDomain {
			hasOwnerDomain = true
		}
		entries = append(entries, entry)
	}

	if publisherDomain != "" && !hasOwnerDomain {
		owner := RootDomainOf(publisherDomain)
		entries = append(entries, &model.Variable{
			Type:       model.VarOwnerDomain,
			Value:      owner,
			LineNumber: model.SyntheticLineNumber,
			RawLine:    string(model.VarOwnerDomain) + "=" + owner,
		})
	}

	return entries
}

func invalidRecord(line string, lineNumber int, code model.ErrorCode) *model.Record {
	return &model.Record{
		LineNumber: lineNumber,
		RawLine:    line,
		ErrorCode:  code,
	}
}

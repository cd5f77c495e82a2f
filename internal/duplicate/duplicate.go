// Package duplicate flags records that were already present in a previously
// known version of the same publisher's document. Duplication is a warning,
// never a hard error.
package duplicate

import (
	"strings"

	"github.com/adverify/supplyval/internal/model"
)

// recordKey identifies a record for duplicate detection: domain is compared
// case-insensitively, account ID case-sensitively, and the relationship is
// part of the key so a DIRECT line never shadows a RESELLER line.
type recordKey struct {
	domain       string
	accountID    string
	relationship model.Relationship
}

func keyOf(r *model.Record) recordKey {
	return recordKey{
		domain:       strings.ToLower(r.Domain),
		accountID:    r.AccountID,
		relationship: r.Relationship,
	}
}

// MarkDuplicates annotates every valid candidate record that also appears
// among the valid previously known records. Annotated records are copies;
// the input entries are never mutated. Variables and invalid records pass
// through unchanged.
func MarkDuplicates(publisherDomain string, entries []model.Entry, known []*model.Record) []model.Entry {
	seen := make(map[recordKey]bool, len(known))
	for _, r := range known {
		if r.IsValid {
			seen[keyOf(r)] = true
		}
	}

	out := make([]model.Entry, 0, len(entries))
	for _, entry := range entries {
		record, ok := entry.(*model.Record)
		if !ok || !record.IsValid || !seen[keyOf(record)] {
			out = append(out, entry)
			continue
		}

		annotated := record.Clone()
		annotated.AddWarning(model.WarnDuplicate, map[string]string{"domain": publisherDomain})
		annotated.DuplicateDomain = publisherDomain
		out = append(out, annotated)
	}

	return out
}

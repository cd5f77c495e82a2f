// Package presenter renders validation results and timestamps for human
// consumption. All output helpers write plain text; JSON output is handled
// at the API layer.
package presenter

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/adverify/supplyval/internal/model"
)

// WriteReport writes a human-readable validation report for a parsed and
// annotated entry list.
func WriteReport(w io.Writer, domain string, entries []model.Entry) {
	fmt.Fprintf(w, "=== Validation Report: %s ===\n", domain)

	records := model.Records(entries)
	variables := model.Variables(entries)

	if len(variables) > 0 {
		fmt.Fprintf(w, "\nVariables (%d):\n", len(variables))
		for _, v := range variables {
			if v.LineNumber == model.SyntheticLineNumber {
				fmt.Fprintf(w, "  %s=%s (defaulted)\n", v.Type, v.Value)
			} else {
				fmt.Fprintf(w, "  line %d: %s=%s\n", v.LineNumber, v.Type, v.Value)
			}
		}
	}

	fmt.Fprintf(w, "\nRecords (%d):\n", len(records))
	errorCount := 0
	warningCount := 0
	for _, r := range records {
		fmt.Fprintf(w, "  line %d: %s\n", r.LineNumber, strings.TrimSpace(r.RawLine))
		if !r.IsValid {
			errorCount++
			fmt.Fprintf(w, "    ERROR %s\n", r.ErrorCode)
			continue
		}
		if !r.HasWarning {
			fmt.Fprintf(w, "    OK\n")
			continue
		}
		warningCount++
		for _, warning := range r.AllWarnings {
			fmt.Fprintf(w, "    WARNING %s%s\n", warning.Code, formatParams(warning.Params))
		}
	}

	fmt.Fprintf(w, "\nSummary: %d records, %d errors, %d warnings\n",
		len(records), errorCount, warningCount)
}

// WriteRecordTable writes a compact one-line-per-record table
func WriteRecordTable(w io.Writer, records []*model.Record) {
	fmt.Fprintf(w, "%-6s %-30s %-24s %-10s %s\n", "Line", "Domain", "Account ID", "Rel", "Status")
	fmt.Fprintln(w, strings.Repeat("-", 90))

	for _, r := range records {
		fmt.Fprintf(w, "%-6d %-30s %-24s %-10s %s\n",
			r.LineNumber,
			truncate(r.Domain, 28),
			truncate(r.AccountID, 22),
			r.Relationship,
			recordStatus(r))
	}
}

func recordStatus(r *model.Record) string {
	if !r.IsValid {
		return "ERROR " + string(r.ErrorCode)
	}
	if r.HasWarning {
		return "WARN " + string(r.WarningCode)
	}
	return "OK"
}

// formatParams renders warning parameters as " (k=v, k=v)" in key order
func formatParams(params map[string]string) string {
	if len(params) == 0 {
		return ""
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}
	return " (" + strings.Join(pairs, ", ") + ")"
}

// truncate shortens a string to maxLen with ellipsis
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen < 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

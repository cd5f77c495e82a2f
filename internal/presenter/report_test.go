package presenter

import (
	"strings"
	"testing"

	"github.com/adverify/supplyval/internal/model"
	"github.com/adverify/supplyval/internal/parser"
)

func TestWriteReport(t *testing.T) {
	content := "google.com, pub-1, DIRECT\nbad line\n"
	entries := parser.ParseContent(content, "pub.example.com")
	for _, r := range model.Records(entries) {
		if r.AccountID == "pub-1" {
			r.AddWarning(model.WarnNoSellersJSON, map[string]string{"domain": "google.com"})
		}
	}

	var buf strings.Builder
	WriteReport(&buf, "pub.example.com", entries)
	out := buf.String()

	if !strings.Contains(out, "Validation Report: pub.example.com") {
		t.Errorf("Expected the report header, got:\n%s", out)
	}
	if !strings.Contains(out, "WARNING NO_SELLERS_JSON (domain=google.com)") {
		t.Errorf("Expected the warning line with params, got:\n%s", out)
	}
	if !strings.Contains(out, "ERROR MISSING_FIELDS") {
		t.Errorf("Expected the error line, got:\n%s", out)
	}
	if !strings.Contains(out, "OWNERDOMAIN=example.com (defaulted)") {
		t.Errorf("Expected the defaulted variable, got:\n%s", out)
	}
	if !strings.Contains(out, "Summary: 2 records, 1 errors, 1 warnings") {
		t.Errorf("Expected the summary line, got:\n%s", out)
	}
}

func TestWriteRecordTable(t *testing.T) {
	entries := parser.ParseContent("google.com, pub-1, DIRECT\n", "")

	var buf strings.Builder
	WriteRecordTable(&buf, model.Records(entries))
	out := buf.String()

	if !strings.Contains(out, "google.com") || !strings.Contains(out, "OK") {
		t.Errorf("Expected a table row with status, got:\n%s", out)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("Expected unchanged string, got %q", got)
	}
	if got := truncate("averylongdomainname.example.com", 10); got != "averylo..." {
		t.Errorf("Expected truncation with ellipsis, got %q", got)
	}
}

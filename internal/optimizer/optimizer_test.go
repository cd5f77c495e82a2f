package optimizer

import (
	"strings"
	"testing"
)

func TestOptimize_DeduplicatesCaseInsensitiveDomains(t *testing.T) {
	content := "google.com, pub-1, DIRECT\nGOOGLE.COM, pub-1, DIRECT"

	out := Optimize(content, "")

	count := strings.Count(out, "pub-1")
	if count != 1 {
		t.Errorf("Expected exactly one pub-1 line, got %d in:\n%s", count, out)
	}
	if !strings.Contains(out, "google.com, pub-1, DIRECT") {
		t.Errorf("Expected the first occurrence to win, got:\n%s", out)
	}
}

func TestOptimize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"google.com, pub-1, DIRECT",
		"# header\nCONTACT=a@b.com\nzeta.com, 9, RESELLER\nalpha.com, 1, DIRECT\nalpha.com, 1, DIRECT",
		"not a valid line at all\nmanagerdomain=m.example.com,US\nopenx.com, 42, reseller, certid",
		"\r\nGOOGLE.com, A, DIRECT # trailing\n google.com , A , direct\n",
	}

	for _, input := range inputs {
		once := Optimize(input, "pub.example.com")
		twice := Optimize(once, "pub.example.com")
		if once != twice {
			t.Errorf("Expected idempotent output for %q.\nFirst:\n%s\nSecond:\n%s", input, once, twice)
		}
	}
}

func TestOptimize_SortsVariablesBeforeRecords(t *testing.T) {
	content := "zeta.com, 9, RESELLER\nOWNERDOMAIN=owner.com\nalpha.com, 2, RESELLER\nalpha.com, 1, DIRECT\nCONTACT=a@b.com"

	out := Optimize(content, "")
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	var order []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		order = append(order, trimmed)
	}

	expected := []string{
		"CONTACT=a@b.com",
		"OWNERDOMAIN=owner.com",
		"alpha.com, 1, DIRECT",
		"alpha.com, 2, RESELLER",
		"zeta.com, 9, RESELLER",
	}
	if len(order) != len(expected) {
		t.Fatalf("Expected %d data lines, got %d:\n%s", len(expected), len(order), out)
	}
	for i := range expected {
		if order[i] != expected[i] {
			t.Errorf("Expected line %d to be %q, got %q", i, expected[i], order[i])
		}
	}
}

func TestOptimize_DropsInvalidEntries(t *testing.T) {
	content := "sub.example.com, id, DIRECT\nexample.com, id, DIRECR\nexample.com, id, DIRECT"

	out := Optimize(content, "")

	if strings.Contains(out, "sub.example.com") {
		t.Errorf("Expected subdomain record to be dropped:\n%s", out)
	}
	if strings.Contains(out, "DIRECR") {
		t.Errorf("Expected misspelled record to be dropped:\n%s", out)
	}
	if !strings.Contains(out, "example.com, id, DIRECT") {
		t.Errorf("Expected the valid record to survive:\n%s", out)
	}
}

func TestOptimize_SynthesizesOwnerDomain(t *testing.T) {
	out := Optimize("google.com, pub-1, DIRECT", "pub.example.com")

	if !strings.Contains(out, "OWNERDOMAIN=example.com") {
		t.Errorf("Expected synthesized OWNERDOMAIN, got:\n%s", out)
	}
}

func TestOptimize_PreservesLeadingComment(t *testing.T) {
	out := Optimize("# Managed by adops\ngoogle.com, pub-1, DIRECT", "")

	if !strings.HasPrefix(out, "# Managed by adops\n") {
		t.Errorf("Expected the original leading comment to be preserved, got:\n%s", out)
	}
}

func TestOptimize_EmptyInputStillEmitsHeaders(t *testing.T) {
	out := Optimize("", "")

	if !strings.Contains(out, "# Variables") {
		t.Errorf("Expected a variables header on empty input:\n%s", out)
	}
	if !strings.Contains(out, "# Advertising System Records") {
		t.Errorf("Expected a records header on empty input:\n%s", out)
	}
}

func TestOptimize_KeepsCertificationAuthorityID(t *testing.T) {
	out := Optimize("adnetwork.com, abcd, RESELLER, f08c47fec0942fa0", "")

	if !strings.Contains(out, "adnetwork.com, abcd, RESELLER, f08c47fec0942fa0") {
		t.Errorf("Expected the cert authority ID to be kept:\n%s", out)
	}
}

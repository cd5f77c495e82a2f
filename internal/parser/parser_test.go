package parser

import (
	"testing"

	"github.com/adverify/supplyval/internal/model"
)

func TestParseLine_ValidDirectRecord(t *testing.T) {
	entry := ParseLine("example.com, id1, DIRECT", 1)
	record, ok := entry.(*model.Record)
	if !ok {
		t.Fatalf("Expected a record, got %T", entry)
	}

	if !record.IsValid {
		t.Errorf("Expected valid record, got error code %s", record.ErrorCode)
	}
	if record.Domain != "example.com" {
		t.Errorf("Expected domain example.com, got %s", record.Domain)
	}
	if record.AccountID != "id1" {
		t.Errorf("Expected account ID id1, got %s", record.AccountID)
	}
	if record.Relationship != model.RelationshipDirect {
		t.Errorf("Expected DIRECT relationship, got %s", record.Relationship)
	}
	if record.LineNumber != 1 {
		t.Errorf("Expected line number 1, got %d", record.LineNumber)
	}
}

func TestParseLine_CaseInsensitiveRelationship(t *testing.T) {
	entry := ParseLine("example.com, id1, reseller", 3)
	record, ok := entry.(*model.Record)
	if !ok {
		t.Fatalf("Expected a record, got %T", entry)
	}

	if !record.IsValid {
		t.Errorf("Expected valid record, got error code %s", record.ErrorCode)
	}
	if record.Relationship != model.RelationshipReseller {
		t.Errorf("Expected RESELLER relationship, got %s", record.Relationship)
	}
}

func TestParseLine_CertificationAuthorityID(t *testing.T) {
	entry := ParseLine("adnetwork.com, abcd, RESELLER, f08c47fec0942fa0", 2)
	record := entry.(*model.Record)

	if !record.IsValid {
		t.Fatalf("Expected valid record, got error code %s", record.ErrorCode)
	}
	if record.CertAuthorityID != "f08c47fec0942fa0" {
		t.Errorf("Expected cert authority ID f08c47fec0942fa0, got %s", record.CertAuthorityID)
	}
}

func TestParseLine_AccountTypeBeforeRelationship(t *testing.T) {
	entry := ParseLine("example.com, id1, SILO, DIRECT, certid", 4)
	record := entry.(*model.Record)

	if !record.IsValid {
		t.Fatalf("Expected valid record, got error code %s", record.ErrorCode)
	}
	if record.AccountType != "SILO" {
		t.Errorf("Expected account type SILO, got %s", record.AccountType)
	}
	if record.Relationship != model.RelationshipDirect {
		t.Errorf("Expected DIRECT relationship, got %s", record.Relationship)
	}
	if record.CertAuthorityID != "certid" {
		t.Errorf("Expected cert authority ID certid, got %s", record.CertAuthorityID)
	}
}

func TestParseLine_BlankAndCommentLines(t *testing.T) {
	if entry := ParseLine("", 1); entry != nil {
		t.Errorf("Expected nil for blank line, got %v", entry)
	}
	if entry := ParseLine("   ", 2); entry != nil {
		t.Errorf("Expected nil for whitespace line, got %v", entry)
	}
	if entry := ParseLine("# a comment", 3); entry != nil {
		t.Errorf("Expected nil for comment line, got %v", entry)
	}
}

func TestParseLine_TrailingComment(t *testing.T) {
	entry := ParseLine("example.com, id1, DIRECT # banner inventory", 1)
	record := entry.(*model.Record)

	if !record.IsValid {
		t.Fatalf("Expected valid record, got error code %s", record.ErrorCode)
	}
	if record.Relationship != model.RelationshipDirect {
		t.Errorf("Expected DIRECT relationship, got %s", record.Relationship)
	}
}

func TestParseLine_MissingFields(t *testing.T) {
	entry := ParseLine("example.com, id1", 1)
	record := entry.(*model.Record)

	if record.IsValid {
		t.Errorf("Expected invalid record")
	}
	if record.ErrorCode != model.ErrMissingFields {
		t.Errorf("Expected MISSING_FIELDS, got %s", record.ErrorCode)
	}
}

func TestParseLine_MisspelledRelationship(t *testing.T) {
	entry := ParseLine("example.com, id1, DIRECR", 1)
	record := entry.(*model.Record)

	if record.IsValid {
		t.Errorf("Expected invalid record")
	}
	if record.ErrorCode != model.ErrMisspelledRelationship {
		t.Errorf("Expected MISSPELLED_RELATIONSHIP, got %s", record.ErrorCode)
	}
}

func TestParseLine_InvalidRelationship(t *testing.T) {
	entry := ParseLine("example.com, id1, SPONSOR", 1)
	record := entry.(*model.Record)

	if record.ErrorCode != model.ErrInvalidRelationship {
		t.Errorf("Expected INVALID_RELATIONSHIP, got %s", record.ErrorCode)
	}
}

func TestParseLine_SubdomainRejected(t *testing.T) {
	entry := ParseLine("sub.example.com, id1, DIRECT", 1)
	record := entry.(*model.Record)

	if record.IsValid {
		t.Errorf("Expected invalid record for subdomain")
	}
	if record.ErrorCode != model.ErrInvalidRootDomain {
		t.Errorf("Expected INVALID_ROOT_DOMAIN, got %s", record.ErrorCode)
	}
}

func TestParseLine_DomainWithSpaceRejected(t *testing.T) {
	entry := ParseLine("examp le.com, id1, DIRECT", 1)
	record := entry.(*model.Record)

	if record.ErrorCode != model.ErrInvalidRootDomain {
		t.Errorf("Expected INVALID_ROOT_DOMAIN, got %s", record.ErrorCode)
	}
}

func TestParseLine_EmptyAccountID(t *testing.T) {
	entry := ParseLine("example.com, , DIRECT", 1)
	record := entry.(*model.Record)

	if record.ErrorCode != model.ErrEmptyAccountID {
		t.Errorf("Expected EMPTY_ACCOUNT_ID, got %s", record.ErrorCode)
	}
}

func TestParseLine_Variable(t *testing.T) {
	entry := ParseLine("contact=ads@example.com", 5)
	variable, ok := entry.(*model.Variable)
	if !ok {
		t.Fatalf("Expected a variable, got %T", entry)
	}

	if variable.Type != model.VarContact {
		t.Errorf("Expected CONTACT variable, got %s", variable.Type)
	}
	if variable.Value != "ads@example.com" {
		t.Errorf("Expected value ads@example.com, got %s", variable.Value)
	}
	if !variable.Valid() {
		t.Errorf("Expected variables to always be valid")
	}
}

func TestParseLine_ManagerDomainWithCountry(t *testing.T) {
	entry := ParseLine("MANAGERDOMAIN=manager.example.com,US", 2)
	variable, ok := entry.(*model.Variable)
	if !ok {
		t.Fatalf("Expected a variable, got %T", entry)
	}

	if variable.Type != model.VarManagerDomain {
		t.Errorf("Expected MANAGERDOMAIN variable, got %s", variable.Type)
	}
	if variable.Value != "manager.example.com,US" {
		t.Errorf("Expected value to keep the country suffix, got %s", variable.Value)
	}
}

func TestParseLine_UnknownVariableType(t *testing.T) {
	entry := ParseLine("FOO=bar", 1)
	record, ok := entry.(*model.Record)
	if !ok {
		t.Fatalf("Expected an invalid record, got %T", entry)
	}

	if record.ErrorCode != model.ErrInvalidFormat {
		t.Errorf("Expected INVALID_FORMAT, got %s", record.ErrorCode)
	}
}

func TestParseContent_EndToEnd(t *testing.T) {
	content := "CONTACT=a@b.com\ngoogle.com, pub-1, DIRECT\nadnetwork.com, abcd, RESELLER, f08c47fec0942fa0"

	entries := ParseContent(content, "pub.example.com")

	if len(entries) != 4 {
		t.Fatalf("Expected 4 entries, got %d", len(entries))
	}

	records := model.Records(entries)
	if len(records) != 2 {
		t.Errorf("Expected 2 records, got %d", len(records))
	}

	variables := model.Variables(entries)
	if len(variables) != 2 {
		t.Fatalf("Expected 2 variables, got %d", len(variables))
	}

	owner := variables[1]
	if owner.Type != model.VarOwnerDomain {
		t.Errorf("Expected synthesized OWNERDOMAIN, got %s", owner.Type)
	}
	if owner.Value != "example.com" {
		t.Errorf("Expected OWNERDOMAIN example.com, got %s", owner.Value)
	}
	if owner.LineNumber != model.SyntheticLineNumber {
		t.Errorf("Expected synthetic line number, got %d", owner.LineNumber)
	}
}

func TestParseContent_NoSynthesisWhenOwnerDomainPresent(t *testing.T) {
	content := "OWNERDOMAIN=declared.com\ngoogle.com, pub-1, DIRECT"

	entries := ParseContent(content, "pub.example.com")

	ownerCount := 0
	for _, v := range model.Variables(entries) {
		if v.Type == model.VarOwnerDomain {
			ownerCount++
		}
	}
	if ownerCount != 1 {
		t.Errorf("Expected exactly one OWNERDOMAIN, got %d", ownerCount)
	}
}

func TestParseContent_NoSynthesisWithoutPublisherDomain(t *testing.T) {
	entries := ParseContent("google.com, pub-1, DIRECT", "")

	if len(entries) != 1 {
		t.Errorf("Expected 1 entry without publisher domain, got %d", len(entries))
	}
}

func TestParseContent_WindowsLineEndings(t *testing.T) {
	entries := ParseContent("google.com, pub-1, DIRECT\r\nopenx.com, 42, RESELLER\r\n", "")

	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	for _, e := range entries {
		if !e.Valid() {
			t.Errorf("Expected valid entries, line %d has raw %q", e.Line(), e.Raw())
		}
	}
}

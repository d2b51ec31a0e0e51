package extraction

import (
	"encoding/json"
	"testing"
)

func TestParseFieldsCanonicalKeys(t *testing.T) {
	raw := json.RawMessage(`{
		"title": "Food Service License",
		"document_category": "license",
		"permit_number": "FSL-001",
		"status": "pending renewal",
		"start_date": "03/15/2026",
		"end_date": "2027-03-15",
		"auto_renew": "yes",
		"jurisdiction": "Travis County",
		"issuing_authority": "Health Department"
	}`)

	f := ParseFields(raw)
	if f.Title != "Food Service License" {
		t.Errorf("title: got %q", f.Title)
	}
	if f.DocumentCategory != "LICENSE" {
		t.Errorf("category: got %q", f.DocumentCategory)
	}
	if f.Status != "PENDING_RENEWAL" {
		t.Errorf("status: got %q", f.Status)
	}
	if f.StartDate != "2026-03-15" {
		t.Errorf("start date: got %q", f.StartDate)
	}
	if f.EndDate != "2027-03-15" {
		t.Errorf("end date: got %q", f.EndDate)
	}
	if !f.AutoRenew {
		t.Errorf("expected autoRenew true")
	}
	if f.JurisdictionName != "Travis County" {
		t.Errorf("jurisdiction: got %q", f.JurisdictionName)
	}
}

func TestParseFieldsSynonymKeys(t *testing.T) {
	raw := json.RawMessage(`{
		"documentTitle": "Building Permit",
		"category": "permit",
		"licenseNumber": "BP-789",
		"issueDate": "2026-01-01",
		"expirationDate": "2026-12-31",
		"issuer": "City of Austin"
	}`)

	f := ParseFields(raw)
	if f.Title != "Building Permit" {
		t.Errorf("title via synonym: got %q", f.Title)
	}
	if f.PermitNumber != "BP-789" {
		t.Errorf("permit number via synonym: got %q", f.PermitNumber)
	}
	if f.StartDate != "2026-01-01" || f.EndDate != "2026-12-31" {
		t.Errorf("dates via synonyms: got %q / %q", f.StartDate, f.EndDate)
	}
	if f.IssuingAuthorityName != "City of Austin" {
		t.Errorf("authority via synonym: got %q", f.IssuingAuthorityName)
	}
}

func TestParseFieldsStripsNonASCII(t *testing.T) {
	raw := json.RawMessage(`{"title": "Café Permit™ "}`)
	f := ParseFields(raw)
	if f.Title != "Caf Permit" {
		t.Errorf("expected non-ASCII stripped, got %q", f.Title)
	}
}

func TestParseFieldsDefaultsOnGarbage(t *testing.T) {
	f := ParseFields(json.RawMessage(`not json at all`))
	if f.DocumentCategory != "PERMIT" {
		t.Errorf("expected default category PERMIT, got %q", f.DocumentCategory)
	}
	if f.Status != "ACTIVE" {
		t.Errorf("expected default status ACTIVE, got %q", f.Status)
	}
	if f.Title != "" || f.StartDate != "" {
		t.Errorf("expected zero fields, got %+v", f)
	}
}

func TestValidateExtraction(t *testing.T) {
	good := []byte(`{"title":"T","auto_renew":true}`)
	if err := ValidateExtraction(good); err != nil {
		t.Errorf("expected valid, got %v", err)
	}

	alsoGood := []byte(`{"auto_renew":"yes"}`)
	if err := ValidateExtraction(alsoGood); err != nil {
		t.Errorf("expected loose types to validate, got %v", err)
	}

	bad := []byte(`{"title":123}`)
	if err := ValidateExtraction(bad); err == nil {
		t.Errorf("expected type mismatch to fail")
	}

	if err := ValidateExtraction([]byte(`{`)); err == nil {
		t.Errorf("expected broken JSON to fail")
	}
}

package openai

import (
	"strings"
	"testing"
	"time"
)

func TestBuildSystemPromptEmbedsToday(t *testing.T) {
	today := time.Date(2026, time.August, 29, 0, 0, 0, 0, time.UTC)
	system, instructions := BuildSystemPrompt(today)

	if !strings.Contains(system, "JSON only") {
		t.Errorf("system prompt should demand JSON, got %q", system)
	}
	if !strings.Contains(instructions, "2026-08-29") {
		t.Errorf("instructions should embed today's date")
	}
	if strings.Contains(instructions, "{{TODAY}}") {
		t.Errorf("placeholder left unreplaced")
	}
	for _, field := range []string{"document_category", "permit_number", "start_date", "end_date", "auto_renew", "issuing_authority"} {
		if !strings.Contains(instructions, field) {
			t.Errorf("instructions missing field %s", field)
		}
	}
	for _, status := range []string{"PENDING_ACTIVATION", "PENDING_RENEWAL", "EXPIRED", "INACTIVE"} {
		if !strings.Contains(instructions, status) {
			t.Errorf("instructions missing status %s", status)
		}
	}
}

func TestStatusProcedureMatchesDateRules(t *testing.T) {
	_, instructions := BuildSystemPrompt(time.Date(2026, time.August, 29, 0, 0, 0, 0, time.UTC))

	// Future start wins over everything, then past end, otherwise active.
	rules := []string{
		"If the effective/start date is after today: PENDING_ACTIVATION",
		"If the expiration/end date is before today: EXPIRED",
		"including when no dates are printed: ACTIVE",
	}
	last := -1
	for _, rule := range rules {
		idx := strings.Index(instructions, rule)
		if idx < 0 {
			t.Fatalf("instructions missing rule %q", rule)
		}
		if idx < last {
			t.Fatalf("rule %q out of order", rule)
		}
		last = idx
	}
	if strings.Contains(instructions, "within 30 days") {
		t.Errorf("renewal window rule should not be part of the procedure")
	}

	examples := []string{
		`end_date "2025-12-31", today 2025-06-01 -> "ACTIVE"`,
		`end_date "2025-12-31", today 2026-01-01 -> "EXPIRED"`,
		`start_date "2026-01-01", no end date, today 2025-06-01 -> "PENDING_ACTIVATION"`,
	}
	for _, example := range examples {
		if !strings.Contains(instructions, example) {
			t.Errorf("instructions missing worked example %q", example)
		}
	}
}

func TestBuildUserTextIncludesHint(t *testing.T) {
	text := buildUserText("permit.pdf", "CITY OF AUSTIN\nPERMIT NO 123")
	if !strings.Contains(text, "permit.pdf") {
		t.Errorf("expected file name in user text")
	}
	if !strings.Contains(text, "PERMIT NO 123") {
		t.Errorf("expected text hint in user text")
	}

	noHint := buildUserText("scan.jpg", "")
	if strings.Contains(noHint, "Text extracted") {
		t.Errorf("expected no hint section for empty hint")
	}
}

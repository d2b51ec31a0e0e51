package permits

import (
	"strings"
	"time"
)

// NormalizeCategory maps a free-form category string to the nearest
// enumerated value. Matching ignores case, spaces, hyphens, and underscores;
// unrecognized input falls back to PERMIT.
func NormalizeCategory(raw string) Category {
	switch foldEnum(raw) {
	case "PERMIT":
		return CategoryPermit
	case "LICENSE", "LICENCE":
		return CategoryLicense
	case "INSPECTION":
		return CategoryInspection
	case "INSURANCE":
		return CategoryInsurance
	case "REGISTRATION":
		return CategoryRegistration
	case "CERTIFICATION", "CERTIFICATE":
		return CategoryCertification
	case "AGREEMENT":
		return CategoryAgreement
	case "OTHER":
		return CategoryOther
	default:
		return CategoryPermit
	}
}

// NormalizeStatus maps a free-form status string to the nearest enumerated
// value, falling back to ACTIVE.
func NormalizeStatus(raw string) Status {
	switch foldEnum(raw) {
	case "ACTIVE":
		return StatusActive
	case "PENDINGACTIVATION":
		return StatusPendingActivation
	case "PENDINGRENEWAL":
		return StatusPendingRenewal
	case "EXPIRED":
		return StatusExpired
	case "INACTIVE":
		return StatusInactive
	default:
		return StatusActive
	}
}

func foldEnum(raw string) string {
	s := strings.ToUpper(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"02-01-2006",
}

// ParseDate parses any recognized date string and truncates it to a calendar
// day in UTC. Unparseable or blank input yields nil, never an error.
func ParseDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &day
		}
	}
	return nil
}

// CoerceBool interprets booleans and yes/no-like strings, defaulting false.
func CoerceBool(raw any) bool {
	switch v := raw.(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "yes", "y", "1", "on":
			return true
		}
	case float64:
		return v != 0
	}
	return false
}

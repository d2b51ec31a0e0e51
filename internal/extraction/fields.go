package extraction

import (
	"encoding/json"

	"permits-backend/internal/permits"
	"permits-backend/internal/shared/util"
)

// Fields is the reviewed-before-save draft distilled from raw model output.
// Dates are normalized to YYYY-MM-DD or empty.
type Fields struct {
	Title                string `json:"title"`
	DocumentCategory     string `json:"documentCategory"`
	PermitNumber         string `json:"permitNumber"`
	Status               string `json:"status"`
	StartDate            string `json:"startDate"`
	EndDate              string `json:"endDate"`
	AutoRenew            bool   `json:"autoRenew"`
	JurisdictionName     string `json:"jurisdictionName"`
	IssuingAuthorityName string `json:"issuingAuthorityName"`
}

// Key synonyms in priority order. Providers rename fields between model
// versions; the first present key wins.
var (
	titleKeys        = []string{"title", "document_title", "documentTitle", "name"}
	categoryKeys     = []string{"document_category", "documentCategory", "category", "document_type", "type"}
	permitNumberKeys = []string{"permit_number", "permitNumber", "license_number", "licenseNumber", "number"}
	statusKeys       = []string{"status", "document_status"}
	startDateKeys    = []string{"start_date", "startDate", "issue_date", "issueDate", "effective_date", "effectiveDate"}
	endDateKeys      = []string{"end_date", "endDate", "expiration_date", "expirationDate", "expiry_date", "expiryDate"}
	autoRenewKeys    = []string{"auto_renew", "autoRenew", "automatic_renewal"}
	jurisdictionKeys = []string{"jurisdiction", "jurisdiction_name", "jurisdictionName"}
	authorityKeys    = []string{"issuing_authority", "issuingAuthority", "issuer", "authority"}
)

// ParseFields maps raw model output into a normalized draft. Unusable raw
// JSON yields a zero draft with the category and status defaults applied.
func ParseFields(raw json.RawMessage) Fields {
	var doc map[string]any
	_ = json.Unmarshal(raw, &doc)

	f := Fields{
		Title:                pickString(doc, titleKeys),
		PermitNumber:         pickString(doc, permitNumberKeys),
		JurisdictionName:     pickString(doc, jurisdictionKeys),
		IssuingAuthorityName: pickString(doc, authorityKeys),
		AutoRenew:            permits.CoerceBool(pick(doc, autoRenewKeys)),
	}
	f.DocumentCategory = string(permits.NormalizeCategory(pickString(doc, categoryKeys)))
	f.Status = string(permits.NormalizeStatus(pickString(doc, statusKeys)))
	f.StartDate = normalizeDay(pickString(doc, startDateKeys))
	f.EndDate = normalizeDay(pickString(doc, endDateKeys))
	return f
}

func pick(doc map[string]any, keys []string) any {
	for _, key := range keys {
		if v, ok := doc[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

func pickString(doc map[string]any, keys []string) string {
	for _, key := range keys {
		v, ok := doc[key]
		if !ok {
			continue
		}
		if s, ok := v.(string); ok {
			if cleaned := util.StripNonASCII(s); cleaned != "" {
				return cleaned
			}
		}
	}
	return ""
}

func normalizeDay(raw string) string {
	t := permits.ParseDate(raw)
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

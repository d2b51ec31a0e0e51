package openai

import (
	"fmt"
	"strings"
	"time"
)

const (
	systemPromptExtract = "You are a document data extraction engine for business permits and licenses. Respond with JSON only. No markdown. Never omit keys. Output must match the schema exactly."
	systemPromptFixJSON = "You are a JSON repair tool. Return only valid JSON that matches the schema exactly."
)

const extractInstructions = `Extract the following fields from the attached regulatory document and return them as a single JSON object:

{
  "title": string,               // short human-readable document title
  "document_category": string,   // one of: PERMIT, LICENSE, INSPECTION, INSURANCE, REGISTRATION, CERTIFICATION, AGREEMENT, OTHER
  "permit_number": string,       // the identifying number printed on the document, or ""
  "status": string,              // one of: ACTIVE, PENDING_ACTIVATION, PENDING_RENEWAL, EXPIRED, INACTIVE
  "start_date": string,          // issue/effective date as YYYY-MM-DD, or ""
  "end_date": string,            // expiration date as YYYY-MM-DD, or ""
  "auto_renew": boolean,         // true only if the document states it renews automatically
  "jurisdiction": string,        // issuing city/county/state/country, or ""
  "issuing_authority": string    // the agency or department that issued it, or ""
}

Today's date is {{TODAY}}. Decide "status" with this procedure, in order:
1. If the effective/start date is after today: PENDING_ACTIVATION.
2. If the expiration/end date is before today: EXPIRED.
3. Otherwise, including when no dates are printed: ACTIVE.
Use PENDING_RENEWAL or INACTIVE only when the document itself states that status.

Worked examples:
- start_date "2025-01-01", end_date "2025-12-31", today 2025-06-01 -> "ACTIVE"
- start_date "2025-01-01", end_date "2025-12-31", today 2026-01-01 -> "EXPIRED"
- start_date "2026-01-01", no end date, today 2025-06-01 -> "PENDING_ACTIVATION"
- no dates printed -> "ACTIVE"

Do not guess values that are not on the document; use "" instead. Dates printed in any format must be converted to YYYY-MM-DD.`

// BuildSystemPrompt returns the system and instruction messages for an
// extraction request, anchored to the given day.
func BuildSystemPrompt(today time.Time) (string, string) {
	instructions := strings.ReplaceAll(extractInstructions, "{{TODAY}}", today.Format("2006-01-02"))
	return systemPromptExtract, instructions
}

func buildUserText(fileName, textHint string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Document file name: %s\n", fileName)
	if strings.TrimSpace(textHint) != "" {
		fmt.Fprintf(&b, "\nText extracted from the document (may be partial):\n%s\n", textHint)
	}
	b.WriteString("\nExtract the fields from the attached document.")
	return b.String()
}

func fixUserPrompt(raw []byte) string {
	return fmt.Sprintf("Rewrite this output as a single JSON object matching the schema exactly. Output JSON only:\n%s", string(raw))
}

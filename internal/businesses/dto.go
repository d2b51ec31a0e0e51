package businesses

import "time"

// BusinessResponse is the outward-facing representation of a business.
type BusinessResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Phone            string    `json:"phone,omitempty"`
	Notes            string    `json:"notes,omitempty"`
	BusinessTypeName string    `json:"businessTypeName,omitempty"`
	JurisdictionName string    `json:"jurisdictionName,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func toResponse(biz Business) BusinessResponse {
	return BusinessResponse{
		ID:               biz.ID,
		Name:             biz.Name,
		Phone:            biz.Phone,
		Notes:            biz.Notes,
		BusinessTypeName: biz.BusinessTypeName,
		JurisdictionName: biz.JurisdictionName,
		CreatedAt:        biz.CreatedAt,
		UpdatedAt:        biz.UpdatedAt,
	}
}

package dto

import (
	"gstbill/internal/core/types"
	"gstbill/internal/domain/settings"
)

// TaxPreviewRequest for POST /settings/tax-preview. TaxRate is optional
// and falls back to the stored default rate.
type TaxPreviewRequest struct {
	Amount        types.Money    `json:"amount" binding:"required"`
	TaxRate       *types.Percent `json:"taxRate"`
	PlaceOfSupply string         `json:"placeOfSupply"`
	CompanyState  string         `json:"companyState"`
}

// ToInput converts the request into a preview input.
func (r TaxPreviewRequest) ToInput() settings.TaxPreviewInput {
	return settings.TaxPreviewInput{
		Amount:        r.Amount,
		TaxRate:       r.TaxRate,
		PlaceOfSupply: r.PlaceOfSupply,
		CompanyState:  r.CompanyState,
	}
}

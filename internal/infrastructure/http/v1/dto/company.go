package dto

import (
	"gstbill/internal/domain/catalogs/company"
)

// CreateCompanyRequest for creating companies.
type CreateCompanyRequest struct {
	Name        string               `json:"name" binding:"required"`
	Code        string               `json:"code"`
	GSTIN       string               `json:"gstin" binding:"required"`
	PAN         *string              `json:"pan"`
	Address     company.Address      `json:"address" binding:"required"`
	Mobile      string               `json:"mobile" binding:"required"`
	Email       *string              `json:"email"`
	Website     *string              `json:"website"`
	Logo        *string              `json:"logo"`
	BankDetails *company.BankDetails `json:"bankDetails"`
}

// ToEntity converts the request into a domain entity.
func (r CreateCompanyRequest) ToEntity() *company.Company {
	c := company.NewCompany(r.Code, r.Name, r.GSTIN, r.Mobile, r.Address)
	c.PAN = r.PAN
	c.Email = r.Email
	c.Website = r.Website
	c.Logo = r.Logo
	c.BankDetails = r.BankDetails
	return c
}

// UpdateCompanyRequest for updating companies. Nil fields are left
// unchanged.
type UpdateCompanyRequest struct {
	Name        *string              `json:"name"`
	GSTIN       *string              `json:"gstin"`
	PAN         *string              `json:"pan"`
	Address     *company.Address     `json:"address"`
	Mobile      *string              `json:"mobile"`
	Email       *string              `json:"email"`
	Website     *string              `json:"website"`
	Logo        *string              `json:"logo"`
	BankDetails *company.BankDetails `json:"bankDetails"`
	Version     int                  `json:"version" binding:"required,min=1"`
}

// ApplyTo applies non-nil fields onto an existing entity.
func (r UpdateCompanyRequest) ApplyTo(c *company.Company) {
	if r.Name != nil {
		c.Name = *r.Name
	}
	if r.GSTIN != nil {
		c.GSTIN = *r.GSTIN
	}
	if r.PAN != nil {
		c.PAN = r.PAN
	}
	if r.Address != nil {
		c.Address = *r.Address
	}
	if r.Mobile != nil {
		c.Mobile = *r.Mobile
	}
	if r.Email != nil {
		c.Email = r.Email
	}
	if r.Website != nil {
		c.Website = r.Website
	}
	if r.Logo != nil {
		c.Logo = r.Logo
	}
	if r.BankDetails != nil {
		c.BankDetails = r.BankDetails
	}
	c.Version = r.Version
}

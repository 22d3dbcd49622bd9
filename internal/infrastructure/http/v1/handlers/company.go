package handlers

import (
	"gstbill/internal/core/id"
	"gstbill/internal/domain/catalogs/company"
	"gstbill/internal/infrastructure/http/v1/dto"
)

// Type alias keeps the handler signatures readable.
type CompanyHTTPHandler = CatalogHandler[
	*company.Company,
	dto.CreateCompanyRequest,
	dto.UpdateCompanyRequest,
]

// NewCompanyHandler wires the generic catalog handler for companies.
func NewCompanyHandler(
	base *BaseHandler,
	service *company.Service,
) *CompanyHTTPHandler {
	config := CatalogHandlerConfig[
		*company.Company,
		dto.CreateCompanyRequest,
		dto.UpdateCompanyRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "company",

		MapCreateDTO: func(req dto.CreateCompanyRequest, userID id.ID) *company.Company {
			c := req.ToEntity()
			c.UserID = userID
			return c
		},

		MapUpdateDTO: func(req dto.UpdateCompanyRequest, existing *company.Company) *company.Company {
			req.ApplyTo(existing)
			return existing
		},

		OwnerOf: func(c *company.Company) id.ID {
			return c.UserID
		},
	}

	return NewCatalogHandler(base, config)
}

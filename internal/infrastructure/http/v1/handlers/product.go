package handlers

import (
	"gstbill/internal/core/id"
	"gstbill/internal/domain/catalogs/product"
	"gstbill/internal/infrastructure/http/v1/dto"
)

type ProductHTTPHandler = CatalogHandler[
	*product.Product,
	dto.CreateProductRequest,
	dto.UpdateProductRequest,
]

// NewProductHandler wires the generic catalog handler for products.
func NewProductHandler(
	base *BaseHandler,
	service *product.Service,
) *ProductHTTPHandler {
	config := CatalogHandlerConfig[
		*product.Product,
		dto.CreateProductRequest,
		dto.UpdateProductRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "product",

		MapCreateDTO: func(req dto.CreateProductRequest, userID id.ID) *product.Product {
			p := req.ToEntity()
			p.UserID = userID
			return p
		},

		MapUpdateDTO: func(req dto.UpdateProductRequest, existing *product.Product) *product.Product {
			req.ApplyTo(existing)
			return existing
		},

		OwnerOf: func(p *product.Product) id.ID {
			return p.UserID
		},
	}

	return NewCatalogHandler(base, config)
}

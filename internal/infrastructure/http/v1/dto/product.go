package dto

import (
	"gstbill/internal/core/types"
	"gstbill/internal/domain/catalogs/product"
)

// CreateProductRequest for creating products.
type CreateProductRequest struct {
	Name        string        `json:"name" binding:"required"`
	Code        string        `json:"code"`
	Description *string       `json:"description"`
	HSNCode     *string       `json:"hsnCode"`
	Price       types.Money   `json:"price"`
	TaxRate     types.Percent `json:"taxRate"`
	Unit        string        `json:"unit" binding:"required"`
	Category    *string       `json:"category"`
}

// ToEntity converts the request into a domain entity.
func (r CreateProductRequest) ToEntity() *product.Product {
	p := product.NewProduct(r.Code, r.Name, r.Price, r.TaxRate, r.Unit)
	p.Description = r.Description
	p.HSNCode = r.HSNCode
	p.Category = r.Category
	return p
}

// UpdateProductRequest for updating products. Nil fields are left
// unchanged.
type UpdateProductRequest struct {
	Name        *string        `json:"name"`
	Description *string        `json:"description"`
	HSNCode     *string        `json:"hsnCode"`
	Price       *types.Money   `json:"price"`
	TaxRate     *types.Percent `json:"taxRate"`
	Unit        *string        `json:"unit"`
	Category    *string        `json:"category"`
	Version     int            `json:"version" binding:"required,min=1"`
}

// ApplyTo applies non-nil fields onto an existing entity.
func (r UpdateProductRequest) ApplyTo(p *product.Product) {
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.Description != nil {
		p.Description = r.Description
	}
	if r.HSNCode != nil {
		p.HSNCode = r.HSNCode
	}
	if r.Price != nil {
		p.Price = *r.Price
	}
	if r.TaxRate != nil {
		p.TaxRate = *r.TaxRate
	}
	if r.Unit != nil {
		p.Unit = *r.Unit
	}
	if r.Category != nil {
		p.Category = r.Category
	}
	p.Version = r.Version
}

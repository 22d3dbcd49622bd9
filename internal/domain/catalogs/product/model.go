// Package product provides the Product catalog: the goods and services
// that can be billed on an invoice line.
package product

import (
	"context"

	"gstbill/internal/core/apperror"
	"gstbill/internal/core/entity"
	"gstbill/internal/core/types"
)

// Product represents a billable good or service.
type Product struct {
	entity.Catalog

	// Description is printed under the product name on invoices
	Description *string `db:"description" json:"description,omitempty"`

	// HSNCode - HSN/SAC classification code for tax reporting
	HSNCode *string `db:"hsn_code" json:"hsnCode,omitempty"`

	// Price is the default rate per unit
	Price types.Money `db:"price" json:"price"`

	// TaxRate is the GST rate in percent (0-100)
	TaxRate types.Percent `db:"tax_rate" json:"taxRate"`

	// Unit of measure, e.g. "pcs", "kg", "ltr"
	Unit string `db:"unit" json:"unit"`

	// Category groups products in the catalog UI
	Category *string `db:"category" json:"category,omitempty"`
}

// NewProduct creates a new Product with required fields.
func NewProduct(code, name string, price types.Money, taxRate types.Percent, unit string) *Product {
	return &Product{
		Catalog: entity.NewCatalog(code, name),
		Price:   price,
		TaxRate: taxRate,
		Unit:    unit,
	}
}

// Validate implements entity.Validatable interface.
func (p *Product) Validate(ctx context.Context) error {
	if err := p.Catalog.Validate(ctx); err != nil {
		return err
	}

	if p.Price.IsNegative() {
		return apperror.NewValidation("price cannot be negative").
			WithDetail("field", "price")
	}

	if p.TaxRate.IsNegative() || p.TaxRate.GreaterThan(types.Hundred) {
		return apperror.NewValidation("tax rate must be between 0 and 100").
			WithDetail("field", "taxRate")
	}

	if p.Unit == "" {
		return apperror.NewValidation("unit is required").
			WithDetail("field", "unit")
	}

	return nil
}

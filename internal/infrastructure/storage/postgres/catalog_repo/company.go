package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"gstbill/internal/core/apperror"
	"gstbill/internal/domain/catalogs/company"
	"gstbill/internal/infrastructure/storage/postgres"
)

const companyTable = "cat_companies"

// CompanyRepo implements company.Repository.
type CompanyRepo struct {
	*BaseCatalogRepo[*company.Company]
}

var _ company.Repository = (*CompanyRepo)(nil)

// NewCompanyRepo creates a new company repository.
func NewCompanyRepo(txManager *postgres.TxManager) *CompanyRepo {
	return &CompanyRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*company.Company](
			txManager,
			companyTable,
			postgres.ExtractDBColumns[company.Company](),
			func() *company.Company { return &company.Company{} },
		),
	}
}

// FindByGSTIN retrieves a company by GSTIN.
func (r *CompanyRepo) FindByGSTIN(ctx context.Context, gstin string) (*company.Company, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"gstin": gstin}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	c, err := r.FindOne(ctx, q)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("company", gstin)
		}
		return nil, err
	}
	return c, nil
}

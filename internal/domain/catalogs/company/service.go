package company

import (
	"context"
	"strings"

	"gstbill/internal/core/apperror"
	"gstbill/internal/core/tx"
	"gstbill/internal/domain"
)

// Service provides business logic for the Company catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Company]
	repo Repository
}

// NewService creates a new Company service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Company]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "company",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
	}

	base.Hooks().On(domain.BeforeCreate, svc.prepareForCreate)
	base.Hooks().On(domain.BeforeUpdate, svc.prepareForUpdate)

	return svc
}

// prepareForCreate normalizes fields and checks GSTIN uniqueness.
func (s *Service) prepareForCreate(ctx context.Context, c *Company) error {
	c.GSTIN = strings.ToUpper(strings.TrimSpace(c.GSTIN))

	if c.Code == "" {
		c.Code = "CMP-" + strings.ToUpper(c.ID.String()[:8])
	}

	return s.checkGSTINUnique(ctx, c)
}

// prepareForUpdate checks GSTIN uniqueness excluding the record itself.
func (s *Service) prepareForUpdate(ctx context.Context, c *Company) error {
	c.GSTIN = strings.ToUpper(strings.TrimSpace(c.GSTIN))
	return s.checkGSTINUnique(ctx, c)
}

// FindByGSTIN retrieves a company by GSTIN.
func (s *Service) FindByGSTIN(ctx context.Context, gstin string) (*Company, error) {
	return s.repo.FindByGSTIN(ctx, strings.ToUpper(strings.TrimSpace(gstin)))
}

func (s *Service) checkGSTINUnique(ctx context.Context, c *Company) error {
	existing, err := s.repo.FindByGSTIN(ctx, c.GSTIN)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != c.ID && existing.UserID == c.UserID {
		return apperror.NewDuplicate("company", "gstin", c.GSTIN)
	}
	return nil
}

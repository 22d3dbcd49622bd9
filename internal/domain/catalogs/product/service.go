package product

import (
	"context"
	"strings"

	"gstbill/internal/core/id"
	"gstbill/internal/core/tx"
	"gstbill/internal/domain"
)

// Service provides business logic for the Product catalog.
type Service struct {
	*domain.CatalogService[*Product]
	repo Repository
}

// NewService creates a new Product service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Product]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "product",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
	}

	base.Hooks().On(domain.BeforeCreate, svc.prepareForCreate)

	return svc
}

func (s *Service) prepareForCreate(ctx context.Context, p *Product) error {
	if p.Code == "" {
		p.Code = "PRD-" + strings.ToUpper(p.ID.String()[:8])
	}
	return nil
}

// FindByIDs resolves product references for invoice line items.
func (s *Service) FindByIDs(ctx context.Context, ids []id.ID) ([]*Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return s.repo.FindByIDs(ctx, ids)
}

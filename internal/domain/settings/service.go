package settings

import (
	"context"
	"fmt"

	"gstbill/internal/core/apperror"
	"gstbill/internal/core/id"
	"gstbill/internal/core/tx"
	"gstbill/internal/core/types"
	"gstbill/internal/domain/billing"
	"gstbill/internal/domain/invoice"
)

// Service provides business logic for user settings.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new settings service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{repo: repo, txManager: txManager}
}

// Get returns the user's settings, falling back to defaults when no
// row exists yet. The defaults are not persisted until first saved.
func (s *Service) Get(ctx context.Context, userID id.ID) (*Settings, error) {
	stored, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return Defaults(userID), nil
		}
		return nil, err
	}
	return stored, nil
}

// Save validates and persists the user's settings.
func (s *Service) Save(ctx context.Context, settings *Settings) error {
	if err := settings.Validate(ctx); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Save(ctx, settings); err != nil {
			return fmt.Errorf("save settings: %w", err)
		}
		return nil
	})
}

// Reset removes the stored settings so the user is back on defaults.
func (s *Service) Reset(ctx context.Context, userID id.ID) (*Settings, error) {
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Delete(ctx, userID)
	})
	if err != nil && !apperror.IsNotFound(err) {
		return nil, err
	}
	return Defaults(userID), nil
}

// TaxPreviewInput is a single amount to split per the user's tax
// settings. A nil TaxRate falls back to the stored default line rate.
type TaxPreviewInput struct {
	Amount        types.Money
	TaxRate       *types.Percent
	PlaceOfSupply string
	CompanyState  string
}

// PreviewTax splits the tax on a single amount using the user's stored
// tax settings, so the settings screen can show how an amount breaks
// down under the configured rounding rules. This is the display
// codepath: persisted invoice totals come from the invoice calculator.
func (s *Service) PreviewTax(ctx context.Context, userID id.ID, in TaxPreviewInput) (billing.TaxBreakdown, error) {
	stored, err := s.Get(ctx, userID)
	if err != nil {
		return billing.TaxBreakdown{}, err
	}

	rate := stored.Tax.DefaultTaxRate
	if in.TaxRate != nil {
		rate = *in.TaxRate
	}

	return billing.ComputeTax(in.Amount, rate, stored.Tax.TaxSettings, in.PlaceOfSupply, in.CompanyState), nil
}

// SchemeFor implements invoice.SchemeSource.
func (s *Service) SchemeFor(ctx context.Context, userID id.ID, docType invoice.Type) (invoice.NumberingScheme, error) {
	settings, err := s.Get(ctx, userID)
	if err != nil {
		return invoice.NumberingScheme{}, err
	}
	return settings.SchemeForType(docType), nil
}

var _ invoice.SchemeSource = (*Service)(nil)

package invoice

import (
	"context"
	"fmt"
	"time"

	"gstbill/internal/core/apperror"
	appctx "gstbill/internal/core/context"
	"gstbill/internal/core/id"
	"gstbill/internal/core/tx"
	"gstbill/internal/core/types"
	"gstbill/internal/domain"
	"gstbill/internal/domain/billing"
	"gstbill/internal/domain/catalogs/company"
	"gstbill/internal/domain/catalogs/product"
	"gstbill/pkg/logger"
)

// SchemeSource supplies the numbering scheme for a user and document
// type. Implemented by the settings service.
type SchemeSource interface {
	SchemeFor(ctx context.Context, userID id.ID, docType Type) (NumberingScheme, error)
}

// AuditLogger records entity changes. Implemented by the postgres
// audit service.
type AuditLogger interface {
	LogChange(ctx context.Context, entityType string, entityID id.ID, action string, changes map[string]any) error
}

// Audit actions recorded by the invoice service.
const (
	auditActionCreate  = "create"
	auditActionUpdate  = "update"
	auditActionDelete  = "delete"
	auditActionPayment = "payment"
	auditActionStatus  = "status_change"
)

// ItemInput references a product with a quantity and an optional rate
// override. Inputs without a product are dropped before calculation.
type ItemInput struct {
	ProductID id.ID        `json:"productId"`
	Quantity  types.Money  `json:"quantity"`
	Rate      *types.Money `json:"rate,omitempty"`
}

// CreateInput carries everything needed to create or re-edit an invoice.
type CreateInput struct {
	Type              Type                       `json:"type"`
	CompanyID         id.ID                      `json:"companyId"`
	Number            string                     `json:"invoiceNumber,omitempty"`
	Date              time.Time                  `json:"invoiceDate"`
	DueDate           *time.Time                 `json:"dueDate,omitempty"`
	PlaceOfSupply     string                     `json:"placeOfSupply"`
	BillTo            BillTo                     `json:"billTo"`
	Items             []ItemInput                `json:"items"`
	DiscountType      billing.DiscountType       `json:"discountType"`
	DiscountValue     types.Money                `json:"discountValue"`
	AdditionalCharges []billing.AdditionalCharge `json:"additionalCharges,omitempty"`
	Notes             string                     `json:"notes,omitempty"`
	Terms             string                     `json:"terms,omitempty"`
}

// Service provides business logic for invoices: creation with computed
// totals, numbering, payments and status changes.
type Service struct {
	repo      Repository
	companies company.Repository
	products  product.Repository
	schemes   SchemeSource
	txManager tx.Manager
	audit     AuditLogger
}

// NewService creates a new invoice service.
func NewService(
	repo Repository,
	companies company.Repository,
	products product.Repository,
	schemes SchemeSource,
	txManager tx.Manager,
	audit AuditLogger,
) *Service {
	return &Service{
		repo:      repo,
		companies: companies,
		products:  products,
		schemes:   schemes,
		txManager: txManager,
		audit:     audit,
	}
}

// Create builds an invoice from the input, computes its totals and
// persists it. The document number is derived from the numbering
// scheme when not supplied.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Invoice, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	comp, err := s.loadOwnedCompany(ctx, input.CompanyID, userID)
	if err != nil {
		return nil, err
	}

	if input.Type == "" {
		input.Type = TypeInvoice
	}

	inv := New(input.Type, comp.ID, userID)
	if !input.Date.IsZero() {
		inv.Date = input.Date
	}

	if err := s.populate(ctx, inv, input, comp); err != nil {
		return nil, err
	}

	scheme, err := s.schemes.SchemeFor(ctx, userID, inv.Type)
	if err != nil {
		return nil, err
	}

	if input.Number != "" {
		inv.Number = input.Number
	} else {
		count, err := s.repo.CountInYear(ctx, userID, inv.Type, inv.Date.Year())
		if err != nil {
			return nil, fmt.Errorf("count invoices: %w", err)
		}
		inv.Number = scheme.NextNumber(count, inv.Date)
	}

	if input.DueDate != nil {
		inv.DueDate = *input.DueDate
	} else {
		inv.DueDate = billing.DueDate(inv.Date, scheme.DueDays)
	}

	if err := inv.Validate(ctx); err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, inv); err != nil {
			return fmt.Errorf("create invoice: %w", err)
		}
		return s.audit.LogChange(ctx, "invoice", inv.ID, auditActionCreate, map[string]any{
			"number": inv.Number,
			"type":   string(inv.Type),
			"total":  inv.Total.String(),
		})
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "invoice created",
		"invoice_id", inv.ID,
		"number", inv.Number,
		"total", inv.Total.String(),
	)
	return inv, nil
}

// Update re-edits an invoice: line items and totals are rebuilt from
// the input, payments and status are left untouched.
func (s *Service) Update(ctx context.Context, invoiceID id.ID, input CreateInput) (*Invoice, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	inv, err := s.loadOwned(ctx, invoiceID, userID)
	if err != nil {
		return nil, err
	}

	comp, err := s.loadOwnedCompany(ctx, input.CompanyID, userID)
	if err != nil {
		return nil, err
	}

	inv.CompanyID = comp.ID
	if !input.Date.IsZero() {
		inv.Date = input.Date
	}
	if input.Number != "" {
		inv.Number = input.Number
	}
	if input.DueDate != nil {
		inv.DueDate = *input.DueDate
	}

	if err := s.populate(ctx, inv, input, comp); err != nil {
		return nil, err
	}

	if err := inv.Validate(ctx); err != nil {
		return nil, err
	}

	inv.Touch()

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, inv); err != nil {
			return fmt.Errorf("update invoice: %w", err)
		}
		return s.audit.LogChange(ctx, "invoice", inv.ID, auditActionUpdate, map[string]any{
			"number": inv.Number,
			"total":  inv.Total.String(),
		})
	})
	if err != nil {
		return nil, err
	}

	return inv, nil
}

// GetByID retrieves an invoice, checking ownership.
func (s *Service) GetByID(ctx context.Context, invoiceID id.ID) (*Invoice, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	inv, err := s.loadOwned(ctx, invoiceID, userID)
	if err != nil {
		return nil, err
	}
	inv.DisplayStatus = inv.DerivedStatus(time.Now().UTC())
	return inv, nil
}

// List retrieves the current user's invoices. DisplayStatus is derived
// per row so overdue documents read as overdue without a stored
// status change.
func (s *Service) List(ctx context.Context, f domain.ListFilter) (domain.ListResult[*Invoice], error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return domain.ListResult[*Invoice]{}, err
	}
	f.UserID = &userID

	result, err := s.repo.List(ctx, f)
	if err != nil {
		return domain.ListResult[*Invoice]{}, err
	}

	now := time.Now().UTC()
	for _, inv := range result.Items {
		inv.DisplayStatus = inv.DerivedStatus(now)
	}
	return result, nil
}

// Delete soft-deletes an invoice. The numbering count excludes deleted
// invoices, so the freed number can be issued again.
func (s *Service) Delete(ctx context.Context, invoiceID id.ID) error {
	userID, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	inv, err := s.loadOwned(ctx, invoiceID, userID)
	if err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.SetDeletionMark(ctx, inv.ID, true); err != nil {
			return fmt.Errorf("delete invoice: %w", err)
		}
		return s.audit.LogChange(ctx, "invoice", inv.ID, auditActionDelete, map[string]any{
			"number": inv.Number,
		})
	})
}

// RecordPayment appends a payment to an invoice and persists the result.
func (s *Service) RecordPayment(ctx context.Context, invoiceID id.ID, payment Payment) (*Invoice, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	inv, err := s.loadOwned(ctx, invoiceID, userID)
	if err != nil {
		return nil, err
	}

	previousStatus := inv.Status
	if err := inv.RecordPayment(payment); err != nil {
		return nil, err
	}
	inv.Touch()

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, inv); err != nil {
			return fmt.Errorf("record payment: %w", err)
		}
		return s.audit.LogChange(ctx, "invoice", inv.ID, auditActionPayment, map[string]any{
			"amount":     payment.Amount.String(),
			"amountPaid": inv.AmountPaid.String(),
			"status":     map[string]any{"old": string(previousStatus), "new": string(inv.Status)},
		})
	})
	if err != nil {
		return nil, err
	}

	return inv, nil
}

// SetStatus changes an invoice's status, with auto-settlement on paid.
func (s *Service) SetStatus(ctx context.Context, invoiceID id.ID, newStatus Status) (*Invoice, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	inv, err := s.loadOwned(ctx, invoiceID, userID)
	if err != nil {
		return nil, err
	}

	previousStatus := inv.Status
	if err := inv.SetStatus(newStatus); err != nil {
		return nil, err
	}
	inv.Touch()

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, inv); err != nil {
			return fmt.Errorf("set status: %w", err)
		}
		return s.audit.LogChange(ctx, "invoice", inv.ID, auditActionStatus, map[string]any{
			"status": map[string]any{"old": string(previousStatus), "new": string(inv.Status)},
		})
	})
	if err != nil {
		return nil, err
	}

	return inv, nil
}

// NextNumber previews the next document number without persisting
// anything. Used to prefill the creation form.
func (s *Service) NextNumber(ctx context.Context, docType Type, date time.Time) (string, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return "", err
	}

	if !ValidType(docType) {
		docType = TypeInvoice
	}

	scheme, err := s.schemes.SchemeFor(ctx, userID, docType)
	if err != nil {
		return "", err
	}

	count, err := s.repo.CountInYear(ctx, userID, docType, date.Year())
	if err != nil {
		return "", fmt.Errorf("count invoices: %w", err)
	}

	return scheme.NextNumber(count, date), nil
}

// populate rebuilds line items from product references and recomputes
// the calculation snapshot.
func (s *Service) populate(ctx context.Context, inv *Invoice, input CreateInput, comp *company.Company) error {
	items, err := s.resolveItems(ctx, input.Items)
	if err != nil {
		return err
	}

	inv.BillTo = input.BillTo
	inv.PlaceOfSupply = input.PlaceOfSupply
	inv.Items = items
	inv.DiscountType = input.DiscountType
	inv.DiscountValue = input.DiscountValue
	inv.AdditionalCharges = input.AdditionalCharges
	inv.Notes = input.Notes
	inv.Terms = input.Terms

	calc := billing.ComputeInvoiceTotal(
		items,
		inv.DiscountSpec(),
		comp.Address.State,
		inv.PlaceOfSupply,
		inv.AdditionalCharges,
	)
	return inv.ApplyCalculation(calc)
}

// resolveItems expands product references into line items. Inputs with
// a nil product reference are skipped. A rate override replaces the
// catalog price.
func (s *Service) resolveItems(ctx context.Context, inputs []ItemInput) ([]billing.LineItem, error) {
	ids := make([]id.ID, 0, len(inputs))
	for _, in := range inputs {
		if !id.IsNil(in.ProductID) {
			ids = append(ids, in.ProductID)
		}
	}

	prods, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve products: %w", err)
	}

	byID := make(map[id.ID]*product.Product, len(prods))
	for _, p := range prods {
		byID[p.ID] = p
	}

	items := make([]billing.LineItem, 0, len(inputs))
	for _, in := range inputs {
		p, ok := byID[in.ProductID]
		if !ok {
			if id.IsNil(in.ProductID) {
				continue
			}
			return nil, apperror.NewNotFound("product", in.ProductID.String())
		}

		rate := p.Price
		if in.Rate != nil {
			rate = *in.Rate
		}

		li := billing.LineItem{
			ProductID:   p.ID.String(),
			Description: p.Name,
			Unit:        p.Unit,
			Quantity:    in.Quantity,
			Rate:        rate,
			TaxRate:     p.TaxRate,
		}
		if p.Description != nil {
			li.Description = p.Name + " - " + *p.Description
		}
		if p.HSNCode != nil {
			li.HSNCode = *p.HSNCode
		}
		li.Recalculate()
		items = append(items, li)
	}

	return items, nil
}

func (s *Service) loadOwned(ctx context.Context, invoiceID, userID id.ID) (*Invoice, error) {
	inv, err := s.repo.GetByID(ctx, invoiceID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("invoice", invoiceID.String())
		}
		return nil, err
	}
	if inv.UserID != userID {
		return nil, apperror.NewForbidden("invoice belongs to another account")
	}
	return inv, nil
}

func (s *Service) loadOwnedCompany(ctx context.Context, companyID, userID id.ID) (*company.Company, error) {
	if id.IsNil(companyID) {
		return nil, apperror.NewValidation("company is required").WithDetail("field", "companyId")
	}
	comp, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("company", companyID.String())
		}
		return nil, err
	}
	if comp.UserID != userID {
		return nil, apperror.NewForbidden("company belongs to another account")
	}
	return comp, nil
}

func currentUserID(ctx context.Context) (id.ID, error) {
	raw := appctx.GetUserID(ctx)
	if raw == "" {
		return id.Nil(), apperror.NewUnauthorized("authentication required")
	}
	userID, err := id.Parse(raw)
	if err != nil {
		return id.Nil(), apperror.NewUnauthorized("invalid user identity")
	}
	return userID, nil
}

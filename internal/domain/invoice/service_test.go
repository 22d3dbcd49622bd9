package invoice

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstbill/internal/core/apperror"
	appctx "gstbill/internal/core/context"
	"gstbill/internal/core/id"
	"gstbill/internal/core/types"
	"gstbill/internal/domain"
	"gstbill/internal/domain/billing"
	"gstbill/internal/domain/catalogs/company"
	"gstbill/internal/domain/catalogs/product"
)

// --- Mocks ---

type mockInvoiceRepo struct {
	byID    map[id.ID]*Invoice
	created []*Invoice
	updated []*Invoice
}

func newMockInvoiceRepo() *mockInvoiceRepo {
	return &mockInvoiceRepo{byID: make(map[id.ID]*Invoice)}
}

func (m *mockInvoiceRepo) Create(ctx context.Context, inv *Invoice) error {
	m.byID[inv.ID] = inv
	m.created = append(m.created, inv)
	return nil
}

func (m *mockInvoiceRepo) GetByID(ctx context.Context, invoiceID id.ID) (*Invoice, error) {
	inv, ok := m.byID[invoiceID]
	if !ok {
		return nil, apperror.NewNotFound("invoice", invoiceID.String())
	}
	return inv, nil
}

func (m *mockInvoiceRepo) Update(ctx context.Context, inv *Invoice) error {
	m.byID[inv.ID] = inv
	m.updated = append(m.updated, inv)
	return nil
}

func (m *mockInvoiceRepo) SetDeletionMark(ctx context.Context, invoiceID id.ID, marked bool) error {
	inv, ok := m.byID[invoiceID]
	if !ok {
		return apperror.NewNotFound("invoice", invoiceID.String())
	}
	inv.DeletionMark = marked
	return nil
}

func (m *mockInvoiceRepo) List(ctx context.Context, f domain.ListFilter) (domain.ListResult[*Invoice], error) {
	var items []*Invoice
	for _, inv := range m.byID {
		if !f.IncludeDeleted && inv.DeletionMark {
			continue
		}
		if f.UserID != nil && inv.UserID != *f.UserID {
			continue
		}
		items = append(items, inv)
	}
	return domain.ListResult[*Invoice]{Items: items, TotalCount: int64(len(items))}, nil
}

func (m *mockInvoiceRepo) CountInYear(ctx context.Context, userID id.ID, docType Type, year int) (int, error) {
	count := 0
	for _, inv := range m.byID {
		if inv.UserID == userID && inv.Type == docType && inv.Date.Year() == year && !inv.DeletionMark {
			count++
		}
	}
	return count, nil
}

type mockCompanyRepo struct {
	domain.CatalogRepository[*company.Company]
	byID map[id.ID]*company.Company
}

func (m *mockCompanyRepo) GetByID(ctx context.Context, companyID id.ID) (*company.Company, error) {
	c, ok := m.byID[companyID]
	if !ok {
		return nil, apperror.NewNotFound("company", companyID.String())
	}
	return c, nil
}

func (m *mockCompanyRepo) FindByGSTIN(ctx context.Context, gstin string) (*company.Company, error) {
	return nil, apperror.NewNotFound("company", gstin)
}

type mockProductRepo struct {
	domain.CatalogRepository[*product.Product]
	byID map[id.ID]*product.Product
}

func (m *mockProductRepo) FindByIDs(ctx context.Context, ids []id.ID) ([]*product.Product, error) {
	var out []*product.Product
	for _, pid := range ids {
		if p, ok := m.byID[pid]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

type staticSchemes struct {
	scheme NumberingScheme
}

func (s staticSchemes) SchemeFor(ctx context.Context, userID id.ID, docType Type) (NumberingScheme, error) {
	return s.scheme, nil
}

type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type recordingAudit struct {
	actions []string
}

func (a *recordingAudit) LogChange(ctx context.Context, entityType string, entityID id.ID, action string, changes map[string]any) error {
	a.actions = append(a.actions, fmt.Sprintf("%s:%s", entityType, action))
	return nil
}

// --- Fixture ---

type fixture struct {
	svc       *Service
	repo      *mockInvoiceRepo
	audit     *recordingAudit
	userID    id.ID
	companyID id.ID
	productID id.ID
	ctx       context.Context
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	userID := id.New()

	comp := company.NewCompany("CMP-1", "Acme Traders", "29ABCDE1234F1Z5", "9876543210", company.Address{
		Street: "1 MG Road", City: "Bengaluru", State: "Karnataka", Pincode: "560001", Country: "India",
	})
	comp.UserID = userID

	prod := product.NewProduct("PRD-1", "Widget", types.MustMoney("500"), types.MustMoney("18"), "pcs")
	prod.UserID = userID

	repo := newMockInvoiceRepo()
	audit := &recordingAudit{}

	svc := NewService(
		repo,
		&mockCompanyRepo{byID: map[id.ID]*company.Company{comp.ID: comp}},
		&mockProductRepo{byID: map[id.ID]*product.Product{prod.ID: prod}},
		staticSchemes{NumberingScheme{Prefix: "INV", StartingNumber: 1, DueDays: 30}},
		passthroughTx{},
		audit,
	)

	ctx := appctx.WithUser(context.Background(), &appctx.UserContext{UserID: userID.String()})

	return &fixture{
		svc:       svc,
		repo:      repo,
		audit:     audit,
		userID:    userID,
		companyID: comp.ID,
		productID: prod.ID,
		ctx:       ctx,
	}
}

func (f *fixture) createInput() CreateInput {
	return CreateInput{
		Type:          TypeInvoice,
		CompanyID:     f.companyID,
		Date:          time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		PlaceOfSupply: "Karnataka",
		BillTo: BillTo{
			Name:    "Customer Pvt Ltd",
			Address: company.Address{State: "Karnataka"},
		},
		Items: []ItemInput{
			{ProductID: f.productID, Quantity: types.MustMoney("2")},
		},
	}
}

// --- Tests ---

func TestServiceCreate_ComputesTotalsAndNumber(t *testing.T) {
	f := newFixture(t)

	inv, err := f.svc.Create(f.ctx, f.createInput())
	require.NoError(t, err)

	assert.Equal(t, "INV-2024-0001", inv.Number)
	assert.Equal(t, StatusDraft, inv.Status)

	// 2 x 500 @ 18%, intra-state: CGST 90 / SGST 90.
	assert.True(t, inv.Subtotal.Equal(types.MustMoney("1000")), "subtotal = %s", inv.Subtotal)
	assert.True(t, inv.CGST.Equal(types.MustMoney("90")))
	assert.True(t, inv.SGST.Equal(types.MustMoney("90")))
	assert.True(t, inv.IGST.IsZero())
	assert.True(t, inv.Total.Equal(types.MustMoney("1180")), "total = %s", inv.Total)

	// Due date from scheme: issue date + 30 days.
	assert.Equal(t, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), inv.DueDate)

	assert.Equal(t, []string{"invoice:create"}, f.audit.actions)
}

func TestServiceCreate_SequentialNumbers(t *testing.T) {
	f := newFixture(t)

	first, err := f.svc.Create(f.ctx, f.createInput())
	require.NoError(t, err)
	second, err := f.svc.Create(f.ctx, f.createInput())
	require.NoError(t, err)

	assert.Equal(t, "INV-2024-0001", first.Number)
	assert.Equal(t, "INV-2024-0002", second.Number)
}

func TestServiceCreate_NumberReuseAfterDelete(t *testing.T) {
	f := newFixture(t)

	first, err := f.svc.Create(f.ctx, f.createInput())
	require.NoError(t, err)
	require.NoError(t, f.svc.Delete(f.ctx, first.ID))

	// The count-based derivation hands out the freed number again.
	second, err := f.svc.Create(f.ctx, f.createInput())
	require.NoError(t, err)
	assert.Equal(t, "INV-2024-0001", second.Number)
}

func TestServiceCreate_RateOverride(t *testing.T) {
	f := newFixture(t)

	override := types.MustMoney("750")
	input := f.createInput()
	input.Items[0].Rate = &override

	inv, err := f.svc.Create(f.ctx, input)
	require.NoError(t, err)
	assert.True(t, inv.Subtotal.Equal(types.MustMoney("1500")), "subtotal = %s", inv.Subtotal)
}

func TestServiceCreate_InterState(t *testing.T) {
	f := newFixture(t)

	input := f.createInput()
	input.PlaceOfSupply = "Maharashtra"

	inv, err := f.svc.Create(f.ctx, input)
	require.NoError(t, err)
	assert.True(t, inv.CGST.IsZero())
	assert.True(t, inv.SGST.IsZero())
	assert.True(t, inv.IGST.Equal(types.MustMoney("180")), "igst = %s", inv.IGST)
}

func TestServiceCreate_NoItems(t *testing.T) {
	f := newFixture(t)

	input := f.createInput()
	input.Items = nil

	_, err := f.svc.Create(f.ctx, input)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeNoCalculation, appErr.Code)
}

func TestServiceCreate_UnknownProductSkipped(t *testing.T) {
	f := newFixture(t)

	input := f.createInput()
	input.Items = append(input.Items, ItemInput{ProductID: id.New(), Quantity: types.MustMoney("1")})

	_, err := f.svc.Create(f.ctx, input)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestServiceCreate_RequiresAuth(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), f.createInput())
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)
}

func TestServiceRecordPayment_PersistsAndAudits(t *testing.T) {
	f := newFixture(t)

	inv, err := f.svc.Create(f.ctx, f.createInput())
	require.NoError(t, err)

	updated, err := f.svc.RecordPayment(f.ctx, inv.ID, Payment{Amount: types.MustMoney("1180"), Method: "UPI"})
	require.NoError(t, err)

	assert.Equal(t, StatusPaid, updated.Status)
	assert.True(t, updated.AmountPaid.Equal(updated.Total))
	assert.Len(t, f.repo.updated, 1)
	assert.Contains(t, f.audit.actions, "invoice:payment")
}

func TestServiceSetStatus_AuditsTransition(t *testing.T) {
	f := newFixture(t)

	inv, err := f.svc.Create(f.ctx, f.createInput())
	require.NoError(t, err)

	updated, err := f.svc.SetStatus(f.ctx, inv.ID, StatusSent)
	require.NoError(t, err)

	assert.Equal(t, StatusSent, updated.Status)
	assert.Contains(t, f.audit.actions, "invoice:status_change")
}

func TestServiceOwnership(t *testing.T) {
	f := newFixture(t)

	inv, err := f.svc.Create(f.ctx, f.createInput())
	require.NoError(t, err)

	stranger := appctx.WithUser(context.Background(), &appctx.UserContext{UserID: id.New().String()})

	_, err = f.svc.GetByID(stranger, inv.ID)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeForbidden, appErr.Code)
}

func TestServiceCreate_AdditionalCharges(t *testing.T) {
	f := newFixture(t)

	input := f.createInput()
	input.AdditionalCharges = []billing.AdditionalCharge{
		{Name: "Shipping", Amount: types.MustMoney("120")},
	}

	inv, err := f.svc.Create(f.ctx, input)
	require.NoError(t, err)

	assert.True(t, inv.ChargesTotal.Equal(types.MustMoney("120")))
	assert.True(t, inv.Total.Equal(types.MustMoney("1300")), "total = %s", inv.Total)
}

func TestServiceRead_DerivesDisplayStatus(t *testing.T) {
	f := newFixture(t)

	// Issued 2024-06-01 with 30-day terms, so long past due by now.
	inv, err := f.svc.Create(f.ctx, f.createInput())
	require.NoError(t, err)

	fetched, err := f.svc.GetByID(f.ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusDraft, fetched.Status, "stored status is untouched")
	assert.Equal(t, StatusOverdue, fetched.DisplayStatus)

	listed, err := f.svc.List(f.ctx, domain.DefaultListFilter())
	require.NoError(t, err)
	require.Len(t, listed.Items, 1)
	assert.Equal(t, StatusOverdue, listed.Items[0].DisplayStatus)

	// Settlement wins over the due date.
	_, err = f.svc.RecordPayment(f.ctx, inv.ID, Payment{Amount: types.MustMoney("1180")})
	require.NoError(t, err)

	fetched, err = f.svc.GetByID(f.ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, fetched.DisplayStatus)
}

func TestServiceNextNumber_Preview(t *testing.T) {
	f := newFixture(t)

	number, err := f.svc.NextNumber(f.ctx, TypeInvoice, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "INV-2024-0001", number)

	_, err = f.svc.Create(f.ctx, f.createInput())
	require.NoError(t, err)

	number, err = f.svc.NextNumber(f.ctx, TypeInvoice, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "INV-2024-0002", number)
}

package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"gstbill/internal/core/id"
	"gstbill/internal/domain/invoice"
	"gstbill/internal/infrastructure/storage/postgres"
)

const invoicesTable = "doc_invoices"

// InvoiceRepo implements invoice.Repository. Invoices and proforma
// invoices share one table, discriminated by the type column.
type InvoiceRepo struct {
	*BaseDocumentRepo[*invoice.Invoice]
	txManager *postgres.TxManager
}

var _ invoice.Repository = (*InvoiceRepo)(nil)

// NewInvoiceRepo creates a new invoice repository.
func NewInvoiceRepo(txManager *postgres.TxManager) *InvoiceRepo {
	return &InvoiceRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*invoice.Invoice](
			txManager,
			invoicesTable,
			postgres.ExtractDBColumns[invoice.Invoice](),
			func() *invoice.Invoice { return &invoice.Invoice{} },
		),
		txManager: txManager,
	}
}

// CountInYear counts a user's documents of one type dated within the
// given calendar year. Soft-deleted documents are excluded, so their
// numbers become available again.
func (r *InvoiceRepo) CountInYear(ctx context.Context, userID id.ID, docType invoice.Type, year int) (int, error) {
	q := r.Builder().
		Select("COUNT(*)").
		From(invoicesTable).
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.Eq{"type": docType}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Where(squirrel.Expr("EXTRACT(YEAR FROM date) = ?", year))

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var count int
	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count in year: %w", err)
	}

	return count, nil
}

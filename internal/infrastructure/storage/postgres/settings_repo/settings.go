// Package settings_repo provides the PostgreSQL implementation for user settings.
package settings_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"gstbill/internal/core/apperror"
	"gstbill/internal/core/id"
	"gstbill/internal/domain/settings"
	"gstbill/internal/infrastructure/storage/postgres"
)

const settingsTable = "sys_settings"

// SettingsRepo implements settings.Repository. One row per user; the
// section structs (general, invoice, proforma, tax, backup) are JSONB.
type SettingsRepo struct {
	txManager  *postgres.TxManager
	selectCols []string
}

var _ settings.Repository = (*SettingsRepo)(nil)

// NewSettingsRepo creates a new settings repository.
func NewSettingsRepo(txManager *postgres.TxManager) *SettingsRepo {
	return &SettingsRepo{
		txManager:  txManager,
		selectCols: postgres.ExtractDBColumns[settings.Settings](),
	}
}

func (r *SettingsRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// GetByUser retrieves a user's settings.
func (r *SettingsRepo) GetByUser(ctx context.Context, userID id.ID) (*settings.Settings, error) {
	q := r.builder().
		Select(r.selectCols...).
		From(settingsTable).
		Where(squirrel.Eq{"user_id": userID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	s := &settings.Settings{}
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, s, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("settings", userID.String())
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}

	return s, nil
}

// Save inserts or updates a user's settings (upsert on user_id).
func (r *SettingsRepo) Save(ctx context.Context, s *settings.Settings) error {
	data := postgres.StructToMap(s)

	cols := make([]string, 0, len(r.selectCols))
	vals := make([]any, 0, len(r.selectCols))
	for _, col := range r.selectCols {
		if v, ok := data[col]; ok {
			cols = append(cols, col)
			vals = append(vals, v)
		}
	}

	q := r.builder().
		Insert(settingsTable).
		Columns(cols...).
		Values(vals...).
		Suffix(`ON CONFLICT (user_id) DO UPDATE SET
			general = EXCLUDED.general,
			invoice = EXCLUDED.invoice,
			proforma = EXCLUDED.proforma,
			tax = EXCLUDED.tax,
			backup = EXCLUDED.backup,
			attributes = EXCLUDED.attributes,
			version = ` + settingsTable + `.version + 1`)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	return nil
}

// Delete removes a user's settings row.
func (r *SettingsRepo) Delete(ctx context.Context, userID id.ID) error {
	q := r.builder().
		Delete(settingsTable).
		Where(squirrel.Eq{"user_id": userID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete settings: %w", err)
	}

	return nil
}

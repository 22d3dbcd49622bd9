// Package settings provides per-user application settings: currency and
// date formatting, numbering schemes, tax display rules and backup
// preferences.
package settings

import (
	"context"
	"time"

	"gstbill/internal/core/apperror"
	"gstbill/internal/core/entity"
	"gstbill/internal/core/id"
	"gstbill/internal/core/types"
	"gstbill/internal/domain/billing"
	"gstbill/internal/domain/invoice"
)

// LogoSize controls the rendered logo size on documents.
type LogoSize string

const (
	LogoSmall  LogoSize = "small"
	LogoMedium LogoSize = "medium"
	LogoLarge  LogoSize = "large"
)

// General holds locale and default-company preferences.
type General struct {
	DefaultCompanyID *id.ID `json:"defaultCompanyId,omitempty"`
	Currency         string `json:"currency"`
	DateFormat       string `json:"dateFormat"`
	Timezone         string `json:"timezone"`
}

// DocumentDefaults extends a numbering scheme with document presets.
type DocumentDefaults struct {
	invoice.NumberingScheme

	DefaultNotes    string   `json:"defaultNotes,omitempty"`
	DefaultTerms    string   `json:"defaultTerms,omitempty"`
	ShowHSNCode     bool     `json:"showHsnCode"`
	ShowBankDetails bool     `json:"showBankDetails"`
	LogoSize        LogoSize `json:"logoSize"`
}

// Backup holds export/backup preferences.
type Backup struct {
	AutoBackup      bool       `json:"autoBackup"`
	BackupFrequency string     `json:"backupFrequency"`
	LastBackup      *time.Time `json:"lastBackup,omitempty"`
}

// Tax extends the billing tax settings with the default line rate.
type Tax struct {
	DefaultTaxRate types.Percent `json:"defaultTaxRate"`
	billing.TaxSettings
}

// Settings is the per-user settings document, stored as one row per
// user with JSONB sections.
type Settings struct {
	entity.BaseEntity

	UserID   id.ID            `db:"user_id" json:"userId"`
	General  General          `db:"general" json:"general"`
	Invoice  DocumentDefaults `db:"invoice" json:"invoice"`
	Proforma DocumentDefaults `db:"proforma" json:"proforma"`
	Tax      Tax              `db:"tax" json:"tax"`
	Backup   Backup           `db:"backup" json:"backup"`
}

// Defaults returns the settings a fresh account starts with.
func Defaults(userID id.ID) *Settings {
	return &Settings{
		BaseEntity: entity.NewBaseEntity(),
		UserID:     userID,
		General: General{
			Currency:   "INR",
			DateFormat: "DD/MM/YYYY",
			Timezone:   "Asia/Kolkata",
		},
		Invoice: DocumentDefaults{
			NumberingScheme: invoice.NumberingScheme{
				Prefix:         "INV",
				StartingNumber: 1,
				DueDays:        30,
			},
			ShowHSNCode:     true,
			ShowBankDetails: true,
			LogoSize:        LogoMedium,
		},
		Proforma: DocumentDefaults{
			NumberingScheme: invoice.NumberingScheme{
				Prefix:         "PRO",
				StartingNumber: 1,
				DueDays:        15,
			},
			ShowHSNCode:     true,
			ShowBankDetails: false,
			LogoSize:        LogoMedium,
		},
		Tax: Tax{
			DefaultTaxRate: types.MustMoney("18"),
			TaxSettings: billing.TaxSettings{
				IncludeStateCode: true,
				RoundingMethod:   billing.RoundingNearest,
				DecimalPlaces:    2,
			},
		},
		Backup: Backup{
			AutoBackup:      false,
			BackupFrequency: "weekly",
		},
	}
}

// SchemeForType returns the numbering scheme for a document type.
func (s *Settings) SchemeForType(docType invoice.Type) invoice.NumberingScheme {
	if docType == invoice.TypeProforma {
		return s.Proforma.NumberingScheme
	}
	return s.Invoice.NumberingScheme
}

// Validate implements entity.Validatable.
func (s *Settings) Validate(ctx context.Context) error {
	if id.IsNil(s.UserID) {
		return apperror.NewValidation("user is required").
			WithDetail("field", "userId")
	}

	for _, section := range []struct {
		name   string
		scheme invoice.NumberingScheme
	}{
		{"invoice", s.Invoice.NumberingScheme},
		{"proforma", s.Proforma.NumberingScheme},
	} {
		if section.scheme.Prefix == "" {
			return apperror.NewValidation("number prefix is required").
				WithDetail("field", section.name+".numberPrefix")
		}
		if section.scheme.StartingNumber < 1 {
			return apperror.NewValidation("starting number must be at least 1").
				WithDetail("field", section.name+".startingNumber")
		}
		if section.scheme.DueDays < 0 {
			return apperror.NewValidation("due days cannot be negative").
				WithDetail("field", section.name+".dueDays")
		}
	}

	switch s.Tax.RoundingMethod {
	case billing.RoundingNone, billing.RoundingNearest, billing.RoundingUp, billing.RoundingDown:
	default:
		return apperror.NewValidation("unknown rounding method").
			WithDetail("field", "tax.roundingMethod").
			WithDetail("value", string(s.Tax.RoundingMethod))
	}

	if s.Tax.DecimalPlaces < 0 || s.Tax.DecimalPlaces > 6 {
		return apperror.NewValidation("decimal places must be between 0 and 6").
			WithDetail("field", "tax.decimalPlaces")
	}

	return nil
}

package settings

import (
	"context"
	"encoding/json"
	"errors"

	settingsdomain "github.com/bizbooks/backend/internal/domain/settings"
	"github.com/bizbooks/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// SettingsService reads and updates the two-key configuration store. Reads
// are self-healing: a missing or unreadable section comes back as that
// section's built-in default, persisted immediately so later readers see a
// well-formed value again.
type SettingsService struct {
	repo   settingsdomain.Repository
	logger *zap.Logger
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(repo settingsdomain.Repository, logger *zap.Logger) *SettingsService {
	return &SettingsService{repo: repo, logger: logger}
}

// Get returns both settings sections. Each key heals independently: a broken
// company section does not reset the numbering section.
func (s *SettingsService) Get(ctx context.Context) (settingsdomain.AppSettings, error) {
	company, err := loadCompanyDetails(ctx, s.repo, s.logger)
	if err != nil {
		return settingsdomain.AppSettings{}, err
	}

	invoice, err := LoadInvoiceSettings(ctx, s.repo, s.logger)
	if err != nil {
		return settingsdomain.AppSettings{}, err
	}

	return settingsdomain.AppSettings{
		CompanyDetails:  company,
		InvoiceSettings: invoice,
	}, nil
}

// UpdateSettingsRequest carries partial updates for both sections. Nil
// sections and nil fields are left untouched.
type UpdateSettingsRequest struct {
	CompanyDetails  *settingsdomain.CompanyDetailsPatch  `json:"companyDetails"`
	InvoiceSettings *settingsdomain.InvoiceSettingsPatch `json:"invoiceSettings"`
}

// Update shallow-merges the provided patches into the current (healed)
// sections and persists each changed section.
func (s *SettingsService) Update(ctx context.Context, req UpdateSettingsRequest) (settingsdomain.AppSettings, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return settingsdomain.AppSettings{}, err
	}

	if req.CompanyDetails != nil {
		current.CompanyDetails.Apply(*req.CompanyDetails)
		if err := saveSection(ctx, s.repo, settingsdomain.KeyCompanyDetails, current.CompanyDetails); err != nil {
			return settingsdomain.AppSettings{}, err
		}
	}

	if req.InvoiceSettings != nil {
		current.InvoiceSettings.Apply(*req.InvoiceSettings)
		if err := saveSection(ctx, s.repo, settingsdomain.KeyInvoiceSettings, current.InvoiceSettings); err != nil {
			return settingsdomain.AppSettings{}, err
		}
	}

	s.logger.Info("settings updated",
		zap.Bool("company_details", req.CompanyDetails != nil),
		zap.Bool("invoice_settings", req.InvoiceSettings != nil),
	)
	return current, nil
}

// LoadInvoiceSettings reads the numbering section through repo, healing a
// missing or malformed value to the built-in default. Exposed for the
// document services, which consume numbering counters inside their own
// atomic units.
func LoadInvoiceSettings(ctx context.Context, repo settingsdomain.Repository, logger *zap.Logger) (settingsdomain.InvoiceSettings, error) {
	return loadSection(ctx, repo, settingsdomain.KeyInvoiceSettings, settingsdomain.DefaultInvoiceSettings, logger)
}

// AllocateInvoiceNumber formats the next sales invoice number, advances the
// counter, and writes the section back. Callers run it inside the same
// atomic unit as the invoice insert so the counter never advances for a
// creation that fails.
func AllocateInvoiceNumber(ctx context.Context, repo settingsdomain.Repository, logger *zap.Logger) (string, error) {
	section, err := LoadInvoiceSettings(ctx, repo, logger)
	if err != nil {
		return "", err
	}

	number := section.ConsumeInvoiceNumber()
	if err := saveSection(ctx, repo, settingsdomain.KeyInvoiceSettings, section); err != nil {
		return "", err
	}
	return number, nil
}

// AllocateQuotationNumber formats the next quotation number, advances the
// counter, and writes the section back.
func AllocateQuotationNumber(ctx context.Context, repo settingsdomain.Repository, logger *zap.Logger) (string, error) {
	section, err := LoadInvoiceSettings(ctx, repo, logger)
	if err != nil {
		return "", err
	}

	number := section.ConsumeQuotationNumber()
	if err := saveSection(ctx, repo, settingsdomain.KeyInvoiceSettings, section); err != nil {
		return "", err
	}
	return number, nil
}

func loadCompanyDetails(ctx context.Context, repo settingsdomain.Repository, logger *zap.Logger) (settingsdomain.CompanyDetails, error) {
	return loadSection(ctx, repo, settingsdomain.KeyCompanyDetails, settingsdomain.DefaultCompanyDetails, logger)
}

// loadSection fetches one keyed section, substituting and persisting the
// default when the key is absent or its value does not decode.
func loadSection[T any](ctx context.Context, repo settingsdomain.Repository, key string, defaults func() T, logger *zap.Logger) (T, error) {
	raw, err := repo.GetValue(ctx, key)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			var zero T
			return zero, err
		}

		value := defaults()
		if err := saveSection(ctx, repo, key, value); err != nil {
			var zero T
			return zero, err
		}
		return value, nil
	}

	var value T
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		logger.Warn("malformed settings section, restoring defaults",
			zap.String("key", key),
			zap.Error(err),
		)

		value = defaults()
		if saveErr := saveSection(ctx, repo, key, value); saveErr != nil {
			var zero T
			return zero, saveErr
		}
	}
	return value, nil
}

func saveSection(ctx context.Context, repo settingsdomain.Repository, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return repo.SetValue(ctx, key, string(raw))
}

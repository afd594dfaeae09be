package service

import (
	"context"
	"encoding/base64"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/jesses-code-adventures/facturier/internal/models"
)

func (s *FacturierService) Settings(ctx context.Context) models.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Settings.Copy()
}

// UpdateSettings replaces the business settings. The logo is managed separately and is
// left as it is.
func (s *FacturierService) UpdateSettings(ctx context.Context, in models.Settings) (models.Settings, error) {
	in = trimSettings(in)
	if in.InvoicePrefix == "" {
		in.InvoicePrefix = models.DefaultInvoicePrefix
	}
	if in.QuotePrefix == "" {
		in.QuotePrefix = models.DefaultQuotePrefix
	}
	if err := s.validate.Struct(in); err != nil {
		return models.Settings{}, s.validationError(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	in.Logo = s.state.Settings.Logo
	s.state.Settings = in

	s.log.Debug().Msg("settings updated")
	return in.Copy(), s.persist(ctx, "save settings")
}

func trimSettings(in models.Settings) models.Settings {
	for _, f := range []*string{
		&in.CompanyName, &in.Address, &in.PostalCode, &in.City, &in.Siret,
		&in.TvaNumber, &in.Phone, &in.Email, &in.Website, &in.Bank, &in.Iban,
		&in.Bic, &in.DefaultPaymentTerms, &in.InvoicePrefix, &in.QuotePrefix,
		&in.LegalMentions,
	} {
		*f = strings.TrimSpace(*f)
	}
	return in
}

// SetLogo stores an image as a data URL. Only PNG and JPEG up to MaxLogoSize are accepted.
func (s *FacturierService) SetLogo(ctx context.Context, data []byte) error {
	if len(data) > MaxLogoSize {
		return &AssetTooLargeError{Size: len(data), Limit: MaxLogoSize}
	}
	detected := mimetype.Detect(data)
	if !detected.Is("image/png") && !detected.Is("image/jpeg") {
		return &ValidationError{Field: "logo", Message: "logo must be a PNG or JPEG image, got " + detected.String()}
	}
	mime := detected.String()

	url := "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Settings.Logo = &url
	return s.persist(ctx, "save logo")
}

func (s *FacturierService) RemoveLogo(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Settings.Logo = nil
	return s.persist(ctx, "remove logo")
}

package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jesses-code-adventures/facturier/internal/models"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 37, G: 99, B: 235, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestUpdateSettingsFallsBackToDefaultPrefixes(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, newMemDB())

	in := svc.Settings(ctx)
	in.CompanyName = "  Atelier Dupont  "
	in.InvoicePrefix = " "
	in.QuotePrefix = ""
	in.DefaultPaymentDelay = 0
	in.DefaultTva = 0

	got, err := svc.UpdateSettings(ctx, in)
	require.NoError(t, err)
	require.Equal(t, "Atelier Dupont", got.CompanyName)
	require.Equal(t, "F", got.InvoicePrefix)
	require.Equal(t, "D", got.QuotePrefix)
	require.Equal(t, 0, got.DefaultPaymentDelay)
	require.Equal(t, 0.0, got.DefaultTva)
}

func TestUpdateSettingsRejectsOutOfRangeNumbers(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, newMemDB())

	tests := []struct {
		field string
		edit  func(*models.Settings)
	}{
		{"defaultTva", func(s *models.Settings) { s.DefaultTva = -1 }},
		{"defaultTva", func(s *models.Settings) { s.DefaultTva = 101 }},
		{"defaultPaymentDelay", func(s *models.Settings) { s.DefaultPaymentDelay = -5 }},
	}
	for _, tt := range tests {
		in := svc.Settings(ctx)
		tt.edit(&in)
		_, err := svc.UpdateSettings(ctx, in)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		require.Equal(t, tt.field, verr.Field)
	}
	require.Equal(t, models.DefaultSettings(), svc.Settings(ctx))
}

func TestUpdateSettingsKeepsLogo(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, newMemDB())
	require.NoError(t, svc.SetLogo(ctx, pngBytes(t)))

	in := svc.Settings(ctx)
	in.Logo = nil
	got, err := svc.UpdateSettings(ctx, in)
	require.NoError(t, err)
	require.NotNil(t, got.Logo)
}

func TestSetLogo(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, newMemDB())

	require.NoError(t, svc.SetLogo(ctx, pngBytes(t)))
	logo := svc.Settings(ctx).Logo
	require.NotNil(t, logo)
	require.True(t, strings.HasPrefix(*logo, "data:image/png;base64,"))

	require.NoError(t, svc.RemoveLogo(ctx))
	require.Nil(t, svc.Settings(ctx).Logo)

	var verr *ValidationError
	require.ErrorAs(t, svc.SetLogo(ctx, []byte("GIF89a not really")), &verr)
}

func TestSetLogoSizeLimit(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, newMemDB())

	// a PNG header padded out to the limit
	exact := make([]byte, MaxLogoSize)
	copy(exact, pngBytes(t))
	require.NoError(t, svc.SetLogo(ctx, exact))

	tooBig := make([]byte, MaxLogoSize+1)
	copy(tooBig, pngBytes(t))
	err := svc.SetLogo(ctx, tooBig)

	var sizeErr *AssetTooLargeError
	require.ErrorAs(t, err, &sizeErr)
	require.Equal(t, MaxLogoSize+1, sizeErr.Size)
}

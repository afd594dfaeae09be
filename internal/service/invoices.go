package service

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jesses-code-adventures/facturier/internal/models"
	"github.com/jesses-code-adventures/facturier/internal/render"
)

// WritePDF renders a saved document into dir as {number}.pdf. A draft is marked as sent;
// a paid document stays paid.
// It returns the path written.
func (s *FacturierService) WritePDF(ctx context.Context, ref, dir string) (string, error) {
	doc, err := s.ResolveDocument(ctx, ref)
	if err != nil {
		return "", err
	}

	model := render.NewModel(doc)
	var buf bytes.Buffer
	if err := render.PDF(&buf, model); err != nil {
		return "", fmt.Errorf("failed to generate PDF for %s: %w", doc.Number, err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(dir, render.FileName(model))
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	s.log.Info().Str("number", doc.Number).Str("path", path).Msg("PDF written")

	if doc.Status == models.StatusDraft {
		if err := s.SetStatus(ctx, doc.ID, models.StatusSent); err != nil {
			return path, err
		}
	}
	return path, nil
}

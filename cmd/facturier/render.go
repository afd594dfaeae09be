package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jesses-code-adventures/facturier/internal/config"
	"github.com/jesses-code-adventures/facturier/internal/render"
	"github.com/jesses-code-adventures/facturier/internal/service"
)

func newPDFCmd(facturierService *service.FacturierService, cfg *config.Config) *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "pdf <id-or-number>",
		Short: "Generate the PDF of a document",
		Long: `Write {number}.pdf for a saved document. A draft is marked as sent once the PDF
has been written.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := outputDir
			if dir == "" {
				dir = cfg.OutputDir
			}

			path, err := facturierService.WritePDF(cmd.Context(), args[0], dir)
			if path == "" {
				return err
			}
			if err != nil {
				warn(err)
			}
			fmt.Printf("PDF written to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory (default: OUTPUT_DIR)")
	return cmd
}

func newPreviewCmd(facturierService *service.FacturierService, log zerolog.Logger) *cobra.Command {
	var output, addr string

	cmd := &cobra.Command{
		Use:   "preview <id-or-number>",
		Short: "Render the HTML preview of a document",
		Long: `Write the HTML preview of a document to stdout or to a file. With --serve the preview
is served over HTTP, with the PDF at /pdf, and reflects edits made while it runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			doc, err := facturierService.ResolveDocument(ctx, args[0])
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			if addr != "" {
				load := func(ctx context.Context) (render.Model, error) {
					current, err := facturierService.GetDocument(ctx, doc.ID)
					if err != nil {
						return render.Model{}, err
					}
					return render.NewModel(current), nil
				}
				fmt.Printf("Previewing %s on http://%s/ (PDF at /pdf), Ctrl+C to stop\n", doc.Number, addr)
				return servePreview(ctx, addr, render.NewPreviewRouter(load, log))
			}

			if output == "" || output == "-" {
				return render.HTML(os.Stdout, render.NewModel(doc))
			}

			file, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer file.Close()
			if err := render.HTML(file, render.NewModel(doc)); err != nil {
				return err
			}
			fmt.Printf("Preview written to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVar(&addr, "serve", "", "Serve the preview on this address, e.g. localhost:8080")
	return cmd
}

// servePreview runs until ctx is cancelled, then shuts the server down.
func servePreview(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("preview server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

package main

import (
	"embed"
	"io/fs"
	"log/slog"
	"os"

	"github.com/sofiaalage/product-sales-forecasting/internal/app"
)

// Embedded web UI.
//
//go:embed web
var webFiles embed.FS

func main() {
	webFS, err := fs.Sub(webFiles, "web")
	if err != nil {
		slog.Error("failed to mount embedded UI", slog.String("error", err.Error()))
		os.Exit(1)
	}

	application, err := app.NewApplication(webFS)
	if err != nil {
		slog.Error("failed to initialize application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

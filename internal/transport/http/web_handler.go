package http

import (
	"io"
	"io/fs"
	"log/slog"
	"net/http"
)

// ServeIndex serves the embedded single-page UI. Everything the page needs
// beyond the chart library CDN is inlined in index.html.
func ServeIndex(webFS fs.FS, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		file, err := webFS.Open("index.html")
		if err != nil {
			logger.ErrorContext(r.Context(), "embedded UI missing",
				slog.String("error", err.Error()))
			http.Error(w, "UI not available", http.StatusInternalServerError)
			return
		}
		defer file.Close()

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		io.Copy(w, file)
	}
}

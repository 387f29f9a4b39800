package reportserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"examplayer/internal/report"
)

// NewHandler builds the HTTP handler for the report page and its JSON form.
func NewHandler(cfg Config) (http.Handler, error) {
	if cfg.Source == nil {
		return nil, errors.New("reportserver: source is required")
	}

	mux := http.NewServeMux()
	mux.Handle("/", getOnly(serveIndex(cfg.Source)))
	mux.Handle("/summary.json", getOnly(serveSummary(cfg.Source)))
	return mux, nil
}

// serveIndex renders the report page from the latest saved progress.
func serveIndex(source Source) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		summary, err := source(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		html, err := report.RenderReportHTML(r.Context(), summary)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = io.WriteString(w, html)
	})
}

func serveSummary(source Source) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		summary, err := source(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(summary)
	})
}

func getOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		next.ServeHTTP(w, r)
	})
}

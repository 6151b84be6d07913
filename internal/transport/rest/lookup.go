package rest

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/heartmarshall/lexlookup/internal/domain"
)

type lookupService interface {
	Lookup(ctx context.Context, raw string) domain.LexicalEntry
}

// LookupHandler serves GET /lookup.
type LookupHandler struct {
	svc lookupService
	log *slog.Logger
}

// NewLookupHandler creates a LookupHandler.
func NewLookupHandler(svc lookupService, logger *slog.Logger) *LookupHandler {
	return &LookupHandler{svc: svc, log: logger.With("handler", "lookup")}
}

// Lookup resolves the "word" query parameter. The response is always 200:
// unresolved fields are rendered as placeholders instead of an error status.
// format=json switches from the six-line text layout to a flat JSON record.
func (h *LookupHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	entry := h.svc.Lookup(r.Context(), rawQueryParam(r.URL.RawQuery, "word"))

	w.Header().Set("Cache-Control", "no-store")

	if strings.EqualFold(r.URL.Query().Get("format"), "json") {
		writeJSON(w, http.StatusOK, entry)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, entry.Text()); err != nil {
		h.log.WarnContext(r.Context(), "write lookup response", slog.String("error", err.Error()))
	}
}

// rawQueryParam returns the first value of name without decoding it, so that
// the headword normalizer sees exactly what the client sent ("+", single and
// double percent-encoding included).
func rawQueryParam(rawQuery, name string) string {
	for rawQuery != "" {
		var pair string
		pair, rawQuery, _ = strings.Cut(rawQuery, "&")

		key, value, _ := strings.Cut(pair, "=")
		if k, err := url.QueryUnescape(key); err == nil && k == name {
			return value
		}
	}
	return ""
}

package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/heartmarshall/lexlookup/pkg/ctxutil"
)

func TestLogger_Success(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Word: дом"))
	})

	req := httptest.NewRequest(http.MethodGet, "/lookup?word=%D0%B4%D0%BE%D0%BC", nil)
	req.RemoteAddr = "10.0.0.7:51234"
	rec := httptest.NewRecorder()

	Logger(logger)(handler).ServeHTTP(rec, req)

	logOutput := buf.String()
	for _, want := range []string{
		`"msg":"http.request"`,
		`"method":"GET"`,
		`"path":"/lookup"`,
		`"status":200`,
		`"bytes":12`,
		`"remote_ip":"10.0.0.7"`,
		`"level":"INFO"`,
		"duration",
	} {
		if !strings.Contains(logOutput, want) {
			t.Errorf("expected log to contain %s, got %q", want, logOutput)
		}
	}
}

func TestLogger_ServerError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	Logger(logger)(handler).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/error", nil))

	logOutput := buf.String()
	if !strings.Contains(logOutput, "ERROR") {
		t.Errorf("expected ERROR level for status 500, got %q", logOutput)
	}
	if !strings.Contains(logOutput, `"status":500`) {
		t.Errorf("expected log to contain status 500, got %q", logOutput)
	}
}

func TestLogger_IncludesRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(ctxutil.WithRequestID(req.Context(), "test-request-id-123"))

	Logger(logger)(handler).ServeHTTP(httptest.NewRecorder(), req)

	if !strings.Contains(buf.String(), "test-request-id-123") {
		t.Errorf("expected log to contain request_id %q, got %q", "test-request-id-123", buf.String())
	}
}

package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type routeRegistrar interface {
	RegisterRoutes(r chi.Router)
}

// setupTestRouter scopes the handler to /api/v1 to match main.go setup
func setupTestRouter(h routeRegistrar) chi.Router {
	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		h.RegisterRoutes(r)
	})
	return r
}

// performRequest sends a request to the router. A string body is sent verbatim, anything else as JSON.
func performRequest(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeResponse[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v))
	return v
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decodeResponse[map[string]string](t, w)["error"]
}

func TestBaseHandler_DecodeJSON(t *testing.T) {
	h := newBaseHandler(zap.NewNop())

	type payload struct {
		Name string `json:"name" validate:"required,max=5"`
	}

	tests := []struct {
		name        string
		body        string
		limit       int64
		expectedErr string
	}{
		{name: "valid", body: `{"name":"ok"}`},
		{name: "malformed", body: `{"name":`, expectedErr: "invalid request body"},
		{name: "missing field", body: `{}`, expectedErr: "name is required"},
		{name: "too long", body: `{"name":"toolong"}`, expectedErr: "name is max"},
		{name: "body too large", body: `{"name":"ok"}`, limit: 4, expectedErr: "request body too large"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			if tt.limit > 0 {
				req.Body = http.MaxBytesReader(httptest.NewRecorder(), req.Body, tt.limit)
			}

			var dst payload
			err := h.DecodeJSON(req, &dst)
			if tt.expectedErr != "" {
				require.EqualError(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, "ok", dst.Name)
		})
	}
}

func TestBaseHandler_DecodeJSON_NonStruct(t *testing.T) {
	h := newBaseHandler(zap.NewNop())
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`["a","b"]`))

	var dst []string
	require.NoError(t, h.DecodeJSON(req, &dst))
	require.Equal(t, []string{"a", "b"}, dst)
}

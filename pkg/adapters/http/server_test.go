package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/ramp"
	httpAdapter "github.com/aretw0/ramp/pkg/adapters/http"
	"github.com/aretw0/ramp/pkg/domain"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	pal := ramp.New("http-test")
	t.Cleanup(pal.Close)
	return httpAdapter.NewHandler(pal)
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func applyColor(t *testing.T, handler http.Handler, at string, r, g, b int) {
	t.Helper()
	w := doJSON(t, handler, "POST", "/apply", map[string]any{
		"kind": "insert-color",
		"at":   addrPayload(at),
		"color": map[string]any{
			"r": r, "g": g, "b": b,
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func addrPayload(s string) map[string]any {
	a, err := domain.ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return map[string]any{"page": a.Page, "line": a.Line, "column": a.Column}
}

func TestHealthAndInfo(t *testing.T) {
	handler := newTestHandler(t)

	w := doJSON(t, handler, "GET", "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)

	w = doJSON(t, handler, "GET", "/info", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"app":"ramp-http"`)
	assert.Contains(t, w.Body.String(), `"palette":"http-test"`)
}

func TestApplyAndQuery(t *testing.T) {
	handler := newTestHandler(t)

	applyColor(t, handler, "0:0:0", 50, 50, 78)
	applyColor(t, handler, "0:0:1", 0, 0, 255)

	w := doJSON(t, handler, "POST", "/apply", map[string]any{
		"kind":  "insert-ramp",
		"at":    addrPayload("0:1:0"),
		"from":  addrPayload("0:0:0"),
		"to":    addrPayload("0:0:1"),
		"count": 6,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var summary domain.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, domain.OpInsertRamp, summary.Kind)
	assert.Len(t, summary.Affected, 6)

	w = doJSON(t, handler, "GET", "/palette?match=0:1:*", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var entries []domain.Entry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	assert.Len(t, entries, 6)
	for _, e := range entries {
		assert.Equal(t, 2, e.Order)
	}
}

func TestApplyErrors(t *testing.T) {
	handler := newTestHandler(t)
	applyColor(t, handler, "0:0:0", 1, 1, 1)

	tests := []struct {
		name       string
		payload    map[string]any
		wantStatus int
	}{
		{"Occupied", map[string]any{
			"kind": "insert-color", "at": addrPayload("0:0:0"),
			"color": map[string]any{"r": 2, "g": 2, "b": 2},
		}, http.StatusConflict},
		{"Unknown Kind", map[string]any{"kind": "explode"}, http.StatusBadRequest},
		{"Remove Empty", map[string]any{
			"kind": "remove", "at": addrPayload("0:5:5"),
		}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, handler, "POST", "/apply", tt.payload)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
		})
	}

	// Malformed JSON body.
	req := httptest.NewRequest("POST", "/apply", strings.NewReader("{nope"))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUndoRedoEndpoints(t *testing.T) {
	handler := newTestHandler(t)

	w := doJSON(t, handler, "POST", "/undo", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	applyColor(t, handler, "0:0:0", 1, 1, 1)

	w = doJSON(t, handler, "POST", "/undo", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var d domain.Describe
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &d))
	assert.Equal(t, 0, d.Elements)

	w = doJSON(t, handler, "POST", "/redo", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &d))
	assert.Equal(t, 1, d.Elements)
}

func TestDescribeAndExport(t *testing.T) {
	handler := newTestHandler(t)
	applyColor(t, handler, "0:0:0", 50, 50, 78)

	w := doJSON(t, handler, "GET", "/describe", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var d domain.Describe
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &d))
	assert.Equal(t, "http-test", d.Name)
	assert.Equal(t, 1, d.Elements)

	w = doJSON(t, handler, "GET", "/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/yaml", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "name: http-test")
	assert.Contains(t, w.Body.String(), "policy: Default")
}

func TestQueryInvalidPattern(t *testing.T) {
	handler := newTestHandler(t)

	w := doJSON(t, handler, "GET", "/palette?match=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// Each apply goes through the dispatcher, so context cancellation surfaces
// as a client error rather than a hung request.
func TestApplyHonorsRequestContext(t *testing.T) {
	pal := ramp.New("ctx-test")
	t.Cleanup(pal.Close)
	handler := httpAdapter.NewHandler(pal)

	payload, _ := json.Marshal(map[string]any{
		"kind": "insert-color", "at": addrPayload("0:0:0"),
		"color": map[string]any{"r": 1, "g": 1, "b": 1},
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest("POST", "/apply", bytes.NewReader(payload)).WithContext(ctx)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.NotEqual(t, http.StatusOK, w.Code)
}

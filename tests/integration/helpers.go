//go:build integration
// +build integration

package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/formhub/formhub-go/response"
)

func doRequest(t *testing.T, method, path, token string, body any, wantStatus int) *httptest.ResponseRecorder {
	t.Helper()

	var buf *bytes.Buffer
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewBuffer(encoded)
	} else {
		buf = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, "/api"+path, buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, wantStatus, rec.Code, "unexpected status for %s %s: %s", method, path, rec.Body.String())
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func login(t *testing.T, email, password string) response.TokenResponse {
	t.Helper()
	body := map[string]string{"email": email, "password": password}
	rec := doRequest(t, http.MethodPost, "/login", "", body, http.StatusOK)
	return decode[response.TokenResponse](t, rec)
}

package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSettingsCreatesDefaults(t *testing.T) {
	srv := newTestServer(t)
	token, userID := signupUser(t, srv)

	resp, raw := doRequest(t, srv, http.MethodGet, "/settings", token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	m := decodeBody(t, raw)
	assert.Equal(t, userID, m["user"])
	assert.NotEmpty(t, m["id"])
	assert.Equal(t, "light", m["theme"])

	currency, ok := m["currencySettings"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "$", currency["currencySymbol"])
	assert.Equal(t, "USD", currency["currencyCode"])
	assert.Equal(t, "before", currency["symbolPosition"])

	qa, ok := m["quickAmountSettings"].(map[string]any)
	require.True(t, ok)
	assert.Empty(t, qa["quickAmounts"])

	cats, ok := m["categorySettings"].(map[string]any)
	require.True(t, ok)
	assert.Empty(t, cats["categories"])

	// A second read returns the same document, not a new one.
	resp, raw = doRequest(t, srv, http.MethodGet, "/settings", token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, m["id"], decodeBody(t, raw)["id"])
}

func TestUpdateSettingsPartialSections(t *testing.T) {
	srv := newTestServer(t)
	token, _ := signupUser(t, srv)

	body := `{"theme":"dark","currencySettings":{"currencySymbol":"€","currencyCode":"EUR","symbolPosition":"after"}}`
	resp, raw := doRequest(t, srv, http.MethodPut, "/settings", token, body)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	m := decodeBody(t, raw)
	assert.Equal(t, "dark", m["theme"])
	currency := m["currencySettings"].(map[string]any)
	assert.Equal(t, "EUR", currency["currencyCode"])
	assert.Equal(t, "after", currency["symbolPosition"])

	// The untouched sections keep their defaults.
	qa := m["quickAmountSettings"].(map[string]any)
	assert.Empty(t, qa["quickAmounts"])
}

func TestUpdateSettingsRejectsBadTheme(t *testing.T) {
	srv := newTestServer(t)
	token, _ := signupUser(t, srv)

	resp, _ := doRequest(t, srv, http.MethodPut, "/settings", token, `{"theme":"solarized"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCurrencySettingsRoundTrip(t *testing.T) {
	srv := newTestServer(t)
	token, _ := signupUser(t, srv)

	body := `{"currencySymbol":"Rs","currencyCode":"LKR","symbolPosition":"before"}`
	resp, raw := doRequest(t, srv, http.MethodPut, "/settings/currency", token, body)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.Equal(t, "LKR", decodeBody(t, raw)["currencyCode"])

	resp, raw = doRequest(t, srv, http.MethodGet, "/settings/currency", token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	m := decodeBody(t, raw)
	assert.Equal(t, "Rs", m["currencySymbol"])
	assert.Equal(t, "LKR", m["currencyCode"])

	resp, _ = doRequest(t, srv, http.MethodPut, "/settings/currency", token,
		`{"currencySymbol":"$","currencyCode":"USD","symbolPosition":"sideways"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestQuickAmountSettingsRoundTrip(t *testing.T) {
	srv := newTestServer(t)
	token, _ := signupUser(t, srv)

	body := `{"quickAmounts":[{"id":"qa-1","amount":5,"enabled":true},{"id":"qa-2","amount":10,"enabled":false}]}`
	resp, raw := doRequest(t, srv, http.MethodPut, "/settings/quick-amounts", token, body)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	qa, ok := decodeBody(t, raw)["quickAmounts"].([]any)
	require.True(t, ok)
	require.Len(t, qa, 2)
	first := qa[0].(map[string]any)
	assert.Equal(t, "qa-1", first["id"])
	assert.Equal(t, 5.0, first["amount"])
	assert.Equal(t, true, first["enabled"])

	resp, raw = doRequest(t, srv, http.MethodGet, "/settings/quick-amounts", token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	qa, ok = decodeBody(t, raw)["quickAmounts"].([]any)
	require.True(t, ok)
	assert.Len(t, qa, 2)

	// Elements missing their id are rejected.
	resp, _ = doRequest(t, srv, http.MethodPut, "/settings/quick-amounts", token,
		`{"quickAmounts":[{"amount":5,"enabled":true}]}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCategorySettingsRoundTrip(t *testing.T) {
	srv := newTestServer(t)
	token, _ := signupUser(t, srv)

	body := `{"categories":[{"id":"cat-1","value":"food","label":"Food","emoji":"🍔","enabled":true}]}`
	resp, raw := doRequest(t, srv, http.MethodPut, "/settings/categories", token, body)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	cats, ok := decodeBody(t, raw)["categories"].([]any)
	require.True(t, ok)
	require.Len(t, cats, 1)
	assert.Equal(t, "food", cats[0].(map[string]any)["value"])

	resp, _ = doRequest(t, srv, http.MethodPut, "/settings/categories", token,
		`{"categories":[{"id":"cat-2","value":"rent"}]}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "label and emoji are required")
}

func TestThemeRoundTrip(t *testing.T) {
	srv := newTestServer(t)
	token, _ := signupUser(t, srv)

	resp, raw := doRequest(t, srv, http.MethodGet, "/settings/theme", token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "light", decodeBody(t, raw)["theme"])

	resp, raw = doRequest(t, srv, http.MethodPut, "/settings/theme", token, `{"theme":"dark"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "dark", decodeBody(t, raw)["theme"])

	resp, raw = doRequest(t, srv, http.MethodGet, "/settings/theme", token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "dark", decodeBody(t, raw)["theme"])

	resp, _ = doRequest(t, srv, http.MethodPut, "/settings/theme", token, `{"theme":"sepia"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSettingsAreScopedPerUser(t *testing.T) {
	srv := newTestServer(t)
	tokenA, _ := signupUser(t, srv)
	tokenB, _ := signupUser(t, srv)

	resp, _ := doRequest(t, srv, http.MethodPut, "/settings/theme", tokenA, `{"theme":"dark"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, raw := doRequest(t, srv, http.MethodGet, "/settings/theme", tokenB, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "light", decodeBody(t, raw)["theme"])
}

func TestSettingsRequireAuth(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doRequest(t, srv, http.MethodGet, "/settings", "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

package web_test

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"finadvisor/internal/assistant"
	"finadvisor/internal/config"
	"finadvisor/internal/logging"
	"finadvisor/internal/store"
	"finadvisor/internal/web"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleStatement = `Exportación de movimientos

FECHA OPERACIÓN;FECHA VALOR;CONCEPTO;IMPORTE EUR
01/03/2024;01/03/2024;NOMINA EMPRESA SL;2000,00
05/03/2024;05/03/2024;COMPRA SUPERMERCADO DIA;-150,00
10/03/2024;11/03/2024;DEVOLUCION COMPRA SUPERMERCADO;30,00
`

func testServer(t *testing.T) *web.Server {
	t.Helper()

	cfg := &config.Config{}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.CSV.Delimiter = ";"
	cfg.Advisor.CategoryShareThreshold = 0.30
	cfg.Advisor.TargetSavingsRate = 0.20
	cfg.Savings.Rate = 0.20
	cfg.Subscriptions.AmountTolerance = 2.0
	cfg.Subscriptions.MinOccurrences = 2

	a := assistant.New(cfg, store.DefaultRules(), logging.NewMockLogger())
	s, err := web.NewServer(":0", a, 1<<20, logging.NewMockLogger())
	require.NoError(t, err)
	return s
}

func multipartBody(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = io.WriteString(fw, content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestHandleIndex(t *testing.T) {
	s := testServer(t)
	rec := httptest.NewRecorder()

	s.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Analyze a bank statement")
}

func TestHandleIndex_UnknownPath(t *testing.T) {
	s := testServer(t)
	rec := httptest.NewRecorder()

	s.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleAnalyze(t *testing.T) {
	s := testServer(t)
	body, contentType := multipartBody(t, "statement", "movimientos.csv", sampleStatement)

	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	s.Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	out := rec.Body.String()
	assert.Contains(t, out, "2000.00")
	assert.Contains(t, out, "120.00")
	assert.Contains(t, out, "1880.00")
	assert.Contains(t, out, "groceries")
	assert.Contains(t, out, "Savings plan")
}

func TestHandleAnalyze_WrongMethod(t *testing.T) {
	s := testServer(t)
	rec := httptest.NewRecorder()

	s.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/analyze", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleAnalyze_MissingFile(t *testing.T) {
	s := testServer(t)
	body, contentType := multipartBody(t, "wrongfield", "movimientos.csv", sampleStatement)

	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	s.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Could not analyze the statement")
}

func TestHandleAnalyze_UnsupportedFormat(t *testing.T) {
	s := testServer(t)
	body, contentType := multipartBody(t, "statement", "statement.pdf", "%PDF-1.4")

	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	s.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Could not analyze the statement")
}

func TestHealthz(t *testing.T) {
	s := testServer(t)
	rec := httptest.NewRecorder()

	s.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestStaticAssets(t *testing.T) {
	s := testServer(t)
	rec := httptest.NewRecorder()

	s.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/style.css", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Cache-Control"), "max-age")
}

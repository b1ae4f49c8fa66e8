package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"croprec/recommend"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClassifier struct {
	mu    sync.Mutex
	label string
	err   error
	rows  [][]float64
}

func (f *fakeClassifier) Predict(rows [][]float64) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = append(f.rows, rows...)
	if f.err != nil {
		return nil, f.err
	}
	return []string{f.label}, nil
}

func (f *fakeClassifier) set(label string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.label, f.err = label, err
}

func (f *fakeClassifier) seen() [][]float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]float64(nil), f.rows...)
}

func newTestServer(t *testing.T, service *recommend.Service) http.Handler {
	t.Helper()
	server, err := NewServer(DefaultServerConfig(), service, nil)
	require.NoError(t, err)
	return server.Handler()
}

func TestHealthHandler(t *testing.T) {
	handler := newTestServer(t, recommend.NewService(&fakeClassifier{label: "rice"}))

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var payload healthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &payload))
	assert.Equal(t, "ok", payload.Status)
	assert.Equal(t, "loaded", payload.Classifier)
	assert.Empty(t, payload.ModelPath)
	assert.Empty(t, payload.Classes)
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
}

func TestHealthReportsArtifact(t *testing.T) {
	path := filepath.Join("..", "ml", "testdata", "decision_tree.json")
	handler := newTestServer(t, recommend.Open(path))

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var payload healthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &payload))
	assert.Equal(t, "loaded", payload.Classifier)
	assert.Equal(t, path, payload.ModelPath)
	assert.Equal(t, []string{"rice", "maize", "chickpea"}, payload.Classes)
}

func TestIndexRendersDefaults(t *testing.T) {
	handler := newTestServer(t, recommend.NewService(&fakeClassifier{label: "rice"}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "Crop Recommendation System")
	assert.Contains(t, body, `name="N" min="5" max="140" step="1" value="50"`)
	assert.Contains(t, body, `name="ph" min="3.6" max="9.9" step="0.1" value="6.5"`)
	assert.Contains(t, body, recommend.ButtonLabel)
	assert.Contains(t, body, "Always consult with local agricultural experts")
	assert.NotContains(t, body, "The recommended crop is")
	assert.Equal(t, "default-src 'self'", rr.Header().Get("Content-Security-Policy"))
}

func TestIndexClampsQuery(t *testing.T) {
	handler := newTestServer(t, recommend.NewService(&fakeClassifier{label: "rice"}))

	req := httptest.NewRequest(http.MethodGet, "/?N=900&rainfall=abc&temperature=30.04", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	body := rr.Body.String()
	assert.Contains(t, body, `name="N" min="5" max="140" step="1" value="140"`)
	assert.Contains(t, body, `value="100.0"`)
	assert.Contains(t, body, `<td data-key="temperature">30.0</td>`)
}

func TestPredictForm(t *testing.T) {
	fake := &fakeClassifier{label: "rice"}
	handler := newTestServer(t, recommend.NewService(fake))

	form := url.Values{}
	for _, spec := range recommend.Fields() {
		form.Set(spec.Key, spec.Format(spec.Default))
	}
	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "The recommended crop is: Rice")
	assert.Contains(t, rr.Body.String(), `class="panel success"`)
	assert.Equal(t, [][]float64{{50, 50, 50, 25.0, 70.0, 6.5, 100.0}}, fake.seen())
}

func TestPredictFormClassifierError(t *testing.T) {
	fake := &fakeClassifier{err: errors.New("shape mismatch")}
	handler := newTestServer(t, recommend.NewService(fake))

	post := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader("N=60"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr
	}

	rr := post()
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "An error occurred during prediction: shape mismatch")
	assert.Contains(t, rr.Body.String(), recommend.ButtonLabel)

	fake.set("maize", nil)
	rr = post()
	assert.Contains(t, rr.Body.String(), "The recommended crop is: Maize")
}

func TestPredictWithoutClassifier(t *testing.T) {
	path := filepath.Join(t.TempDir(), "NBClassifier.json")
	handler := newTestServer(t, recommend.Open(path))

	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader("N=60"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusConflict, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "Error: Model file not found at "+path)
	assert.Contains(t, body, recommend.NotLoadedWarning)
	assert.NotContains(t, body, recommend.ButtonLabel)
	assert.NotContains(t, body, "The recommended crop is")
}

func TestStaticAssets(t *testing.T) {
	handler := newTestServer(t, recommend.NewService(&fakeClassifier{label: "rice"}))

	for _, path := range []string{"/static/app.js", "/static/style.css"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code, path)
	}
}

func TestNewHandlersRequiresService(t *testing.T) {
	_, err := NewHandlers(nil, nil)
	assert.Error(t, err)
}

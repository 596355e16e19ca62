package http_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/vlogger"
	"github.com/aretw0/vlogger/internal/testutils"
	api "github.com/aretw0/vlogger/pkg/adapters/http"
	"github.com/aretw0/vlogger/pkg/adapters/memory"
	redisAdapter "github.com/aretw0/vlogger/pkg/adapters/redis"
	"github.com/aretw0/vlogger/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	localOrigin   = "http://localhost:3000"
	foreignOrigin = "https://evil.example"
)

func newHandler(t *testing.T, opts ...vlogger.Option) http.Handler {
	t.Helper()
	eng, err := vlogger.New(opts...)
	require.NoError(t, err)

	h, err := api.NewHandler(eng,
		api.WithCORSOrigins(localOrigin, "https://travelvlogger.netlify.app"),
		api.WithVersion(vlogger.Version),
	)
	require.NoError(t, err)
	return h
}

func post(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func detail(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["detail"]
}

func TestGenerate_Demo(t *testing.T) {
	h := newHandler(t, vlogger.WithDemoMode(true))

	w := post(t, h, `{"location": "New York"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	want, err := json.Marshal(domain.DemoResult("New York", nil))
	require.NoError(t, err)
	assert.JSONEq(t, string(want), w.Body.String())
	assert.Empty(t, w.Header().Get(api.HeaderRunID))
}

func TestGenerate_Pipeline(t *testing.T) {
	model := testutils.ScriptedModel()
	h := newHandler(t, vlogger.WithModel(model))

	w := post(t, h, `{"location": "Lisbon", "user_prefs": {"duration": 1, "style": "calm"}}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	want, err := json.Marshal(testutils.ScriptedResult("Lisbon", domain.Prefs{"duration": 1, "style": "calm"}))
	require.NoError(t, err)
	assert.JSONEq(t, string(want), w.Body.String())
	assert.Equal(t, domain.Pipeline(), model.CalledStages())
}

func TestGenerate_ExplorerFailure(t *testing.T) {
	model := testutils.ScriptedModel().Fail(domain.StageExplorer, errors.New("429 Resource has been exhausted"))
	h := newHandler(t, vlogger.WithModel(model))

	w := post(t, h, `{"location": "Paris"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "429 Resource has been exhausted", detail(t, w))
	assert.Equal(t, []domain.Stage{domain.StageExplorer}, model.CalledStages())
}

func TestGenerate_InvalidBody(t *testing.T) {
	model := testutils.ScriptedModel()
	h := newHandler(t, vlogger.WithModel(model))

	cases := map[string]string{
		"missing location": `{"user_prefs": {}}`,
		"wrong type":       `{"location": 42}`,
		"prefs not object": `{"location": "Rome", "user_prefs": [1]}`,
		"not json":         `location=Rome`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			w := post(t, h, body)
			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
			assert.NotEmpty(t, detail(t, w))
		})
	}
	assert.Empty(t, model.Calls())
}

func TestGenerate_LocationTooLarge(t *testing.T) {
	h := newHandler(t, vlogger.WithDemoMode(true), vlogger.WithMaxInputSize(4))

	w := post(t, h, `{"location": "Amsterdam"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, detail(t, w), "exceeds maximum allowed size")
}

func TestRuns(t *testing.T) {
	h := newHandler(t, vlogger.WithModel(testutils.ScriptedModel()), vlogger.WithRunStore(memory.NewStore()))

	w := post(t, h, `{"location": "Lisbon"}`)
	require.Equal(t, http.StatusOK, w.Code)
	runID := w.Header().Get(api.HeaderRunID)
	require.NotEmpty(t, runID)

	req := httptest.NewRequest(http.MethodGet, "/runs/"+runID, nil)
	got := httptest.NewRecorder()
	h.ServeHTTP(got, req)
	require.Equal(t, http.StatusOK, got.Code)
	assert.JSONEq(t, w.Body.String(), got.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/runs/unknown", nil)
	missing := httptest.NewRecorder()
	h.ServeHTTP(missing, req)
	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.Equal(t, domain.ErrRunNotFound.Error(), detail(t, missing))
}

func TestRuns_ListAndDelete(t *testing.T) {
	mr := miniredis.RunT(t)
	store, err := redisAdapter.New(mr.Addr(), "", 0, redisAdapter.WithTTL(time.Hour))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	h := newHandler(t, vlogger.WithModel(testutils.ScriptedModel()), vlogger.WithRunStore(store))

	w := post(t, h, `{"location": "Lisbon"}`)
	require.Equal(t, http.StatusOK, w.Code)
	runID := w.Header().Get(api.HeaderRunID)
	require.NotEmpty(t, runID)

	// An index entry whose expiry has passed is pruned on listing.
	_, err = mr.ZAdd("vlogger:run:index", 1, "expired-run")
	require.NoError(t, err)

	list := func() []string {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/runs", nil))
		require.Equal(t, http.StatusOK, w.Code)
		var body struct {
			Runs []string `json:"runs"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		return body.Runs
	}
	assert.Equal(t, []string{runID}, list())

	del := httptest.NewRecorder()
	h.ServeHTTP(del, httptest.NewRequest(http.MethodDelete, "/runs/"+runID, nil))
	assert.Equal(t, http.StatusNoContent, del.Code)
	assert.False(t, mr.Exists("vlogger:run:"+runID))
	assert.Empty(t, list())

	again := httptest.NewRecorder()
	h.ServeHTTP(again, httptest.NewRequest(http.MethodDelete, "/runs/"+runID, nil))
	assert.Equal(t, http.StatusNotFound, again.Code)
	assert.Equal(t, domain.ErrRunNotFound.Error(), detail(t, again))
}

func TestGenerate_NonFiniteScore(t *testing.T) {
	for _, score := range []string{`"NaN"`, `"Infinity"`, `"-Inf"`} {
		t.Run(score, func(t *testing.T) {
			model := testutils.ScriptedModel().OnText(domain.StageEvaluator, `{"score": `+score+`}`)
			h := newHandler(t, vlogger.WithModel(model))

			w := post(t, h, `{"location": "Lisbon"}`)
			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.Contains(t, detail(t, w), "not finite")
		})
	}
}

func TestRuns_ArchiveDisabled(t *testing.T) {
	h := newHandler(t, vlogger.WithDemoMode(true))

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/runs/abc", nil),
		httptest.NewRequest(http.MethodGet, "/runs", nil),
		httptest.NewRequest(http.MethodDelete, "/runs/abc", nil),
	} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code, "%s %s", req.Method, req.URL.Path)
		assert.Equal(t, domain.ErrArchiveDisabled.Error(), detail(t, w))
	}
}

func TestStages(t *testing.T) {
	h := newHandler(t, vlogger.WithDemoMode(true))

	req := httptest.NewRequest(http.MethodGet, "/stages", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Stages  []string `json:"stages"`
		Mermaid string   `json:"mermaid"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []string{"explorer", "foodie", "guide", "vlogger", "evaluator"}, body.Stages)
	assert.Contains(t, body.Mermaid, "evaluator --> done")
}

func TestHealthAndInfo(t *testing.T) {
	h := newHandler(t, vlogger.WithDemoMode(true))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/info", nil))
	assert.JSONEq(t, `{"app":"vlogger","version":"`+vlogger.Version+`","api_version":"v1"}`, w.Body.String())
}

func TestDocs(t *testing.T) {
	h := newHandler(t, vlogger.WithDemoMode(true))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/generate:")

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger", nil))
	assert.Contains(t, w.Body.String(), "SwaggerUIBundle")
}

func TestMetricsEndpoint(t *testing.T) {
	eng, err := vlogger.New(vlogger.WithDemoMode(true))
	require.NoError(t, err)

	h, err := api.NewHandler(eng, api.WithMetricsHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("# metrics"))
	})))
	require.NoError(t, err)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, "# metrics", w.Body.String())
}

func TestCORS(t *testing.T) {
	h := newHandler(t, vlogger.WithDemoMode(true))

	preflight := func(origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/generate", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", "POST")
		req.Header.Set("Access-Control-Request-Headers", "content-type")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w
	}

	t.Run("allowed preflight", func(t *testing.T) {
		w := preflight(localOrigin)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, localOrigin, w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
		assert.Equal(t, "content-type", w.Header().Get("Access-Control-Allow-Headers"))
	})

	t.Run("foreign preflight", func(t *testing.T) {
		w := preflight(foreignOrigin)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("simple request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "https://travelvlogger.netlify.app")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		assert.Equal(t, "https://travelvlogger.netlify.app", w.Header().Get("Access-Control-Allow-Origin"))

		req = httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", foreignOrigin)
		w = httptest.NewRecorder()
		h.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-pestel/pkg/analysis"
	"github.com/goliatone/go-pestel/pkg/client"
	"github.com/goliatone/go-pestel/pkg/form"
	"github.com/goliatone/go-pestel/pkg/model"
	rendertemplate "github.com/goliatone/go-pestel/pkg/render/template"
	"github.com/goliatone/go-pestel/pkg/renderers/html"
	"github.com/goliatone/go-pestel/pkg/renderers/text"
	"github.com/goliatone/go-pestel/pkg/results"
	"github.com/goliatone/go-pestel/pkg/schema"
)

type fakeBackend struct {
	summary  atomic.Value
	notFound atomic.Bool
	posted   atomic.Value
}

func newFakeBackend(t *testing.T, summary string) (*fakeBackend, *httptest.Server) {
	t.Helper()
	fb := &fakeBackend{}
	fb.summary.Store(summary)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /analyze_pestel", func(w http.ResponseWriter, r *http.Request) {
		var in analysis.FormInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		fb.posted.Store(in)
		_, _ = w.Write([]byte(`{"message":"stored"}`))
	})
	mux.HandleFunc("GET /get_summary/{name}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if fb.notFound.Load() {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"Summary not found"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"summary": fb.summary.Load().(string)})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return fb, srv
}

func newTestServer(t *testing.T, backendURL string, options ...Option) *Server {
	t.Helper()
	c, err := client.New(backendURL)
	require.NoError(t, err)

	s, err := schema.Load(context.Background())
	require.NoError(t, err)
	formModel, err := s.FormModel(schema.OperationAnalyze)
	require.NoError(t, err)

	page, err := html.New()
	require.NoError(t, err)

	return New(form.NewController(c), page, formModel, options...)
}

func validForm() url.Values {
	return url.Values{
		"business_name":      {"Acme"},
		"industry":           {"Retail"},
		"geographical_focus": {"India"},
		"target_market":      {"SMB"},
		"time_frame":         {"Long-term"},
		"political_factors":  {"Tax Regulations", "Political Stability"},
	}
}

func postForm(t *testing.T, h http.Handler, values url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestServer_IndexEmptyState(t *testing.T) {
	_, backend := newFakeBackend(t, "")
	s := newTestServer(t, backend.URL)

	rec := get(t, s.Handler(), "/")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, html.ContentType, rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Body.String(), results.EmptyMessage)
	require.Nil(t, s.Current())
}

func TestServer_SubmitStoresResult(t *testing.T) {
	fb, backend := newFakeBackend(t, "Political Analysis Summary\n**Tax Regulations:**\nGST at 18%")
	s := newTestServer(t, backend.URL)

	rec := postForm(t, s.Handler(), validForm())
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, "Tax Regulations:")
	require.Contains(t, body, "GST at 18%")
	require.NotContains(t, body, results.EmptyMessage)

	posted := fb.posted.Load().(analysis.FormInput)
	require.Equal(t, "Acme", posted.BusinessName)
	require.Equal(t, analysis.TimeFrameLong, posted.TimeFrame)
	require.Equal(t, map[string]bool{"Tax Regulations": true, "Political Stability": true}, posted.PoliticalFactors)

	rec = get(t, s.Handler(), "/api/result")
	require.Equal(t, http.StatusOK, rec.Code)
	var doc text.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	require.False(t, doc.Empty)
	require.Equal(t, []results.Block{
		{Kind: results.BlockHeading, Text: "Political Analysis Summary"},
		{Kind: results.BlockHeading, Text: "Tax Regulations:"},
		{Kind: results.BlockBullet, Text: "GST at 18%"},
	}, doc.Blocks)
}

func TestServer_FailureKeepsPreviousResult(t *testing.T) {
	fb, backend := newFakeBackend(t, "Summary\nfirst")
	s := newTestServer(t, backend.URL)

	postForm(t, s.Handler(), validForm())
	require.Equal(t, "Summary\nfirst", s.Current().Summary)

	fb.notFound.Store(true)
	rec := postForm(t, s.Handler(), validForm())
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "first")
	require.NotContains(t, rec.Body.String(), "Summary not found", "errors are hidden by default")
	require.Equal(t, "Summary\nfirst", s.Current().Summary)
}

func TestServer_ShowErrors(t *testing.T) {
	fb, backend := newFakeBackend(t, "")
	fb.notFound.Store(true)
	s := newTestServer(t, backend.URL, WithShowErrors(true))

	rec := postForm(t, s.Handler(), validForm())
	require.Contains(t, rec.Body.String(), "Summary not found")

	missing := validForm()
	missing.Del("industry")
	rec = postForm(t, s.Handler(), missing)
	require.Contains(t, rec.Body.String(), "Please fill in: Industry")
	require.Nil(t, s.Current())
}

func TestServer_RejectsUnknownFactor(t *testing.T) {
	_, backend := newFakeBackend(t, "Summary")
	s := newTestServer(t, backend.URL)

	values := validForm()
	values.Add("political_factors", "Weather")
	rec := postForm(t, s.Handler(), values)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_HealthAndAssets(t *testing.T) {
	_, backend := newFakeBackend(t, "")
	s := newTestServer(t, backend.URL)

	rec := get(t, s.Handler(), "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = get(t, s.Handler(), "/assets/pestel.css")
	require.Equal(t, http.StatusOK, rec.Code)
	css, _ := io.ReadAll(rec.Body)
	require.Contains(t, string(css), ".pestel-card")

	rec = get(t, s.Handler(), "/api/result")
	require.JSONEq(t, `{"title":"Political Analysis Summary","empty":true,"message":"No results yet. Submit the form above.","blocks":[]}`, rec.Body.String())

	rec = get(t, s.Handler(), "/missing")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_ListenAndServeStopsOnCancel(t *testing.T) {
	_, backend := newFakeBackend(t, "")
	s := newTestServer(t, backend.URL)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0") }()
	cancel()
	require.NoError(t, <-done)
}

func TestServer_SubmitWhileBusyConflicts(t *testing.T) {
	var block atomic.Bool
	var summary atomic.Value
	summary.Store("Summary\nfirst")
	entered := make(chan struct{}, 1)
	release := make(chan struct{})

	mux := http.NewServeMux()
	mux.HandleFunc("POST /analyze_pestel", func(w http.ResponseWriter, r *http.Request) {
		if block.Load() {
			entered <- struct{}{}
			<-release
		}
		_, _ = w.Write([]byte(`{"message":"stored"}`))
	})
	mux.HandleFunc("GET /get_summary/{name}", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"summary": summary.Load().(string)})
	})
	backend := httptest.NewServer(mux)
	t.Cleanup(backend.Close)
	var releaseOnce sync.Once
	unblock := func() { releaseOnce.Do(func() { close(release) }) }
	t.Cleanup(unblock)

	s := newTestServer(t, backend.URL, WithShowErrors(true))
	h := s.Handler()

	rec := postForm(t, h, validForm())
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Summary\nfirst", s.Current().Summary)

	block.Store(true)
	summary.Store("Summary\nsecond")
	done := make(chan *httptest.ResponseRecorder, 1)
	go func() { done <- postForm(t, h, validForm()) }()
	<-entered

	rec = postForm(t, h, validForm())
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Contains(t, rec.Body.String(), "An analysis is already running")
	require.Contains(t, rec.Body.String(), "first")
	require.Equal(t, "Summary\nfirst", s.Current().Summary)

	unblock()
	rec = <-done
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Summary\nsecond", s.Current().Summary)
}

type failingTemplates struct{}

func (failingTemplates) RenderTemplate(string, any, ...io.Writer) (string, error) {
	return "", errors.New("template exploded")
}

func (failingTemplates) RegisterFilter(string, rendertemplate.FilterFunc) error { return nil }

func (failingTemplates) GlobalContext(any) error { return nil }

func TestServer_RenderFailureIsServerError(t *testing.T) {
	_, backend := newFakeBackend(t, "")
	c, err := client.New(backend.URL)
	require.NoError(t, err)
	page, err := html.New(html.WithTemplateRenderer(failingTemplates{}))
	require.NoError(t, err)

	s := New(form.NewController(c), page, model.FormModel{})

	rec := get(t, s.Handler(), "/")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotEqual(t, html.ContentType, rec.Header().Get("Content-Type"))
	require.Equal(t, "Internal Server Error\n", rec.Body.String())
}

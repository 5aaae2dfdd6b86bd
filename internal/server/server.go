// Package server serves the web UI: the analysis form, the formatted result
// and a couple of JSON endpoints.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-pestel/pkg/analysis"
	"github.com/goliatone/go-pestel/pkg/form"
	"github.com/goliatone/go-pestel/pkg/model"
	"github.com/goliatone/go-pestel/pkg/renderers/html"
	"github.com/goliatone/go-pestel/pkg/renderers/text"
)

// DefaultShutdownGrace bounds how long ListenAndServe waits for in-flight
// requests once its context is done.
const DefaultShutdownGrace = 5 * time.Second

// maxFormBytes caps urlencoded form bodies.
const maxFormBytes = 64 << 10

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger for request and error logging.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithShowErrors surfaces submission failures on the page. Off by default:
// failures are logged and the page keeps its previous result.
func WithShowErrors(enabled bool) Option {
	return func(s *Server) {
		s.showErrors = enabled
	}
}

// WithShutdownGrace overrides DefaultShutdownGrace.
func WithShutdownGrace(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.grace = d
		}
	}
}

// Server owns the current result. Only a successful submission replaces it.
type Server struct {
	controller *form.Controller
	page       *html.Renderer
	form       model.FormModel
	logger     logrus.FieldLogger
	showErrors bool
	grace      time.Duration

	mu      sync.RWMutex
	current *analysis.Result
	input   analysis.FormInput

	handler http.Handler
}

// New wires the handlers.
func New(controller *form.Controller, page *html.Renderer, formModel model.FormModel, options ...Option) *Server {
	s := &Server{
		controller: controller,
		page:       page,
		form:       formModel,
		logger:     logrus.StandardLogger(),
		grace:      DefaultShutdownGrace,
		input:      analysis.NewFormInput(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /{$}", s.handleSubmit)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /api/result", s.handleResult)
	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServerFS(html.AssetsFS())))
	s.handler = s.logRequests(mux)
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Current returns the result currently on display, or nil.
func (s *Server) Current() *analysis.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	s.logger.WithField("addr", addr).Info("server: listening")

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.grace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	page := html.Page{Form: s.form, Input: s.input, Result: s.current}
	s.mu.RUnlock()
	s.render(w, r, http.StatusOK, page)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	input, err := s.decodeForm(r)
	if err != nil {
		s.logger.WithError(err).Warn("server: rejected form")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := s.controller.Submit(r.Context(), input)

	s.mu.Lock()
	s.input = input
	if err == nil {
		s.current = result
	}
	page := html.Page{Form: s.form, Input: s.input, Result: s.current}
	s.mu.Unlock()

	status := http.StatusOK
	if err != nil {
		if errors.Is(err, form.ErrSubmitInProgress) {
			status = http.StatusConflict
		}
		if s.showErrors {
			page.Error = userMessage(err)
		}
	}
	s.render(w, r, status, page)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleResult(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, text.NewDocument(s.Current()))
}

func (s *Server) decodeForm(r *http.Request) (analysis.FormInput, error) {
	if err := r.ParseForm(); err != nil {
		return analysis.FormInput{}, fmt.Errorf("server: parse form: %w", err)
	}

	input := analysis.NewFormInput()
	for _, field := range s.form.Fields {
		if field.IsGroup() {
			for _, name := range r.PostForm[field.Name] {
				if err := input.SetFactor(name, true); err != nil {
					return analysis.FormInput{}, err
				}
			}
			continue
		}
		value := r.PostForm.Get(field.Name)
		if value == "" && field.Default != "" {
			value = field.Default
		}
		if err := input.SetField(field.Name, value); err != nil {
			return analysis.FormInput{}, err
		}
	}
	return input, nil
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, page html.Page) {
	var buf bytes.Buffer
	if err := s.page.Render(r.Context(), &buf, page); err != nil {
		s.logger.WithError(err).Error("server: render page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", s.page.ContentType())
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start).String(),
		}).Debug("server: request")
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func userMessage(err error) string {
	var submitErr *form.SubmitError
	if !errors.As(err, &submitErr) {
		if errors.Is(err, form.ErrSubmitInProgress) {
			return "An analysis is already running. Please wait for it to finish."
		}
		return err.Error()
	}
	switch submitErr.Kind {
	case form.KindValidation:
		var validation *analysis.ValidationError
		if errors.As(err, &validation) {
			return "Please fill in: " + joinLabels(validation.Fields)
		}
		return "Please fill in the required fields."
	case form.KindBackend:
		return submitErr.Message
	default:
		return "Could not reach the analysis service. Please try again."
	}
}

func joinLabels(fields []string) string {
	labels := make([]string, len(fields))
	for i, name := range fields {
		labels[i] = model.DefaultLabeler(name)
	}
	return strings.Join(labels, ", ")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

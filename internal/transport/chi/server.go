package chi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/eseries/internal/domain"
	"github.com/kailas-cloud/eseries/internal/domain/search/objective"
	"github.com/kailas-cloud/eseries/internal/domain/search/request"
	"github.com/kailas-cloud/eseries/internal/domain/search/result"
	"github.com/kailas-cloud/eseries/internal/domain/series"
	"github.com/kailas-cloud/eseries/internal/format"
	healthuc "github.com/kailas-cloud/eseries/internal/usecase/health"
	searchuc "github.com/kailas-cloud/eseries/internal/usecase/search"
)

// Error codes returned in errorResponse.Code.
const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
	codeUndefinedPercent = "undefined_percent"
	codeUnknownSeries    = "unknown_series"
	codeUnauthorized     = "unauthorized"
	codeInternalError    = "internal_error"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the combination search HTTP API.
type Server struct {
	search           *searchuc.Service
	health           *healthuc.Service
	defaultCount     int
	maxCount         int
	defaultTolerance float64
	logger           *zap.Logger
	errorHandlers    []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(search *searchuc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	s := &Server{
		search:           search,
		health:           health,
		defaultCount:     5,
		maxCount:         500,
		defaultTolerance: 1,
		logger:           logger,
	}
	s.errorHandlers = []errorHandler{
		unknownSeriesHandler,
		sentinelHandler(domain.ErrUndefinedPercent, http.StatusUnprocessableEntity, codeUndefinedPercent),
		sentinelHandler(domain.ErrInvalidTarget, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrInvalidQuantity, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrInvalidCount, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrUnknownTolerance, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrInvalidObjective, http.StatusBadRequest, codeValidationFailed),
	}
	return s
}

// WithLimits sets the result count used when a request names none and the cap applied to all requests.
func (s *Server) WithLimits(defaultCount, maxCount int) *Server {
	if maxCount > 0 {
		s.maxCount = maxCount
	}
	if defaultCount > 0 {
		s.defaultCount = min(defaultCount, s.maxCount)
	}
	return s
}

// WithDefaultTolerance sets the resistor tolerance used when a request names neither tolerance nor series.
func (s *Server) WithDefaultTolerance(pct float64) *Server {
	if series.ValidTolerance(pct) {
		s.defaultTolerance = pct
	}
	return s
}

// Unauthenticated routes.
const (
	pathHealth  = "/health"
	pathMetrics = "/metrics"
)

// PublicPaths returns the routes Routes serves without an API key.
func PublicPaths() []string {
	return []string{pathHealth, pathMetrics}
}

// Routes registers the API on r.
func (s *Server) Routes(r chi.Router) {
	r.Get(pathHealth, s.HealthCheck)
	r.Get(pathMetrics, s.Metrics)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/search/rc", s.SearchTimeConstant)
		r.Post("/search/ratio", s.SearchRatio)
		r.Get("/series", s.ListSeries)
		r.Get("/series/{name}", s.GetSeries)
	})
}

// searchRequest is the body of POST /v1/search/*.
// Target is a JSON number in base units or a string such as "10ms".
type searchRequest struct {
	Target    json.RawMessage `json:"target"`
	Count     *int            `json:"count,omitempty"`
	Tolerance *float64        `json:"tolerance,omitempty"`
	Series    string          `json:"series,omitempty"`
}

type searchItem struct {
	A            float64 `json:"a"`
	B            float64 `json:"b"`
	Value        float64 `json:"value"`
	Error        float64 `json:"error"`
	PercentError float64 `json:"percent_error"`
	ADisplay     string  `json:"a_display"`
	BDisplay     string  `json:"b_display"`
	ValueDisplay string  `json:"value_display"`
	ErrorDisplay string  `json:"error_display"`
}

type searchResponse struct {
	Objective       string       `json:"objective"`
	Target          float64      `json:"target"`
	Title           string       `json:"title"`
	Labels          [3]string    `json:"labels"`
	Series          string       `json:"series"`
	CapacitorSeries string       `json:"capacitor_series,omitempty"`
	Items           []searchItem `json:"items"`
	Total           int          `json:"total"`
}

type seriesResponse struct {
	Name      string    `json:"name"`
	Tolerance string    `json:"tolerance"`
	Count     int       `json:"count"`
	Values    []float64 `json:"values,omitempty"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

type errorResponse struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// SearchTimeConstant handles POST /v1/search/rc.
func (s *Server) SearchTimeConstant(w http.ResponseWriter, r *http.Request) {
	s.runSearch(w, r, objective.TimeConstant)
}

// SearchRatio handles POST /v1/search/ratio.
func (s *Server) SearchRatio(w http.ResponseWriter, r *http.Request) {
	s.runSearch(w, r, objective.Ratio)
}

func (s *Server) runSearch(w http.ResponseWriter, r *http.Request, kind objective.Kind) {
	var body searchRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	req, err := s.requestFromBody(kind, body)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	results, err := s.search.Search(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, s.searchResponse(&req, results))
}

func (s *Server) requestFromBody(kind objective.Kind, body searchRequest) (request.Request, error) {
	target, err := parseTarget(body.Target, kind.Unit())
	if err != nil {
		return request.Request{}, err
	}

	count := s.defaultCount
	if body.Count != nil {
		count = min(*body.Count, s.maxCount)
	}

	tolerance := s.defaultTolerance
	if body.Tolerance != nil {
		tolerance = *body.Tolerance
	}

	return request.New(kind, target, count, tolerance, body.Series)
}

// parseTarget accepts a JSON number or a quantity string in unit.
func parseTarget(raw json.RawMessage, unit string) (float64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, fmt.Errorf("%w: target is required", domain.ErrInvalidQuantity)
	}
	if raw[0] == '"' {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0, fmt.Errorf("%w: %w", domain.ErrInvalidQuantity, err)
		}
		return format.ParseQuantity(text, unit)
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrInvalidQuantity, err)
	}
	return v, nil
}

func (s *Server) searchResponse(req *request.Request, results []result.Result) searchResponse {
	kind := req.Kind()
	l := kind.Labels()

	items := make([]searchItem, len(results))
	for i := range results {
		items[i] = searchItemFromResult(&results[i], l)
	}

	resp := searchResponse{
		Objective: string(kind),
		Target:    req.Target(),
		Title:     format.Title(kind, req.Target(), req.Count()),
		Labels:    [3]string{l.A, l.B, l.Value},
		Series:    req.Resistors().Name(),
		Items:     items,
		Total:     len(items),
	}
	if kind == objective.TimeConstant {
		resp.CapacitorSeries = s.search.CapacitorSeries().Name()
	}
	return resp
}

func searchItemFromResult(r *result.Result, l objective.Labels) searchItem {
	return searchItem{
		A:            r.A(),
		B:            r.B(),
		Value:        r.Value(),
		Error:        r.AbsError(),
		PercentError: r.PercentError(),
		ADisplay:     format.SI(r.A(), l.UnitA),
		BDisplay:     format.SI(r.B(), l.UnitB),
		ValueDisplay: format.SI(r.Value(), l.UnitValue),
		ErrorDisplay: format.SI(r.AbsError(), l.UnitValue),
	}
}

// ListSeries handles GET /v1/series.
func (s *Server) ListSeries(w http.ResponseWriter, _ *http.Request) {
	all := series.All()
	items := make([]seriesResponse, len(all))
	for i, sr := range all {
		items[i] = seriesResponse{Name: sr.Name(), Tolerance: sr.Tolerance(), Count: sr.Len()}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

// GetSeries handles GET /v1/series/{name}.
func (s *Server) GetSeries(w http.ResponseWriter, r *http.Request) {
	sr, err := series.Lookup(chi.URLParam(r, "name"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, seriesResponse{
		Name:      sr.Name(),
		Tolerance: sr.Tolerance(),
		Count:     sr.Len(),
		Values:    sr.Values(),
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a client-facing message for known domain errors without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidTarget,
		domain.ErrUndefinedPercent,
		domain.ErrInvalidQuantity,
		domain.ErrInvalidCount,
		domain.ErrUnknownTolerance,
		domain.ErrUnknownSeries,
		domain.ErrInvalidObjective,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return err.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// unknownSeriesHandler handles ErrUnknownSeries and passes on the closest series name.
func unknownSeriesHandler(w http.ResponseWriter, err error, msg string) bool {
	if !errors.Is(err, domain.ErrUnknownSeries) {
		return false
	}
	resp := errorResponse{Code: codeUnknownSeries, Message: msg}
	var use *domain.UnknownSeriesError
	if errors.As(err, &use) {
		resp.Suggestion = use.Suggestion
	}
	writeJSON(w, http.StatusBadRequest, resp)
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}

// Package httpserver exposes the BeeFirst registration REST API.
package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/AnibalRGC/beefirst/internal/errs"
	"github.com/AnibalRGC/beefirst/internal/metrics"
	"github.com/AnibalRGC/beefirst/internal/model"
	"github.com/AnibalRGC/beefirst/internal/service"
)

// unauthorizedDetail is the one body every failed activation answers with.
// The wording never varies with the reason.
const unauthorizedDetail = "Invalid credentials or code"

// Pinger reports storage liveness for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server wires the registration service into HTTP handlers.
type Server struct {
	svc     service.RegistrationService
	db      Pinger
	metrics *metrics.Metrics
	logger  *zap.Logger
	window  time.Duration
}

// New constructs an HTTP server with injected collaborators. window is the
// verification window reported to clients on successful registration.
func New(svc service.RegistrationService, db Pinger, m *metrics.Metrics, logger *zap.Logger, window time.Duration) *Server {
	return &Server{svc: svc, db: db, metrics: m, logger: logger, window: window}
}

// Router assembles the route tree with middleware.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(Recover(s.logger))
	r.Use(Logging(s.logger))

	r.Post("/v1/register", s.handleRegister)
	r.Post("/v1/activate", s.handleActivate)
	r.Get("/healthz", s.handleHealthz)
	r.Handle("/metrics", promhttp.Handler())
	return r
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerResponse struct {
	Message          string `json:"message"`
	Email            string `json:"email"`
	ExpiresInSeconds int    `json:"expires_in_seconds"`
}

type activateRequest struct {
	Code string `json:"code"`
}

type activateResponse struct {
	Message string `json:"message"`
	Email   string `json:"email"`
}

type detailResponse struct {
	Detail string `json:"detail"`
}

type statusResponse struct {
	Status string `json:"status"`
}

// handleRegister claims an identity and reports the verification window.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, detailResponse{Detail: "invalid request body"})
		return
	}

	email, err := s.svc.Register(r.Context(), req.Email, req.Password)
	switch {
	case err == nil:
		s.metrics.IncrementClaim(metrics.OutcomeClaimed)
		writeJSON(w, http.StatusCreated, registerResponse{
			Message:          "Verification code sent",
			Email:            email,
			ExpiresInSeconds: int(s.window.Seconds()),
		})
	case errors.Is(err, errs.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, detailResponse{Detail: "invalid email or password"})
	case errors.Is(err, errs.ErrAlreadyClaimed):
		s.metrics.IncrementClaim(metrics.OutcomeRejected)
		// generic on purpose: the body must not reveal whether the
		// identity exists or which state blocked the claim
		writeJSON(w, http.StatusConflict, detailResponse{Detail: "Registration failed"})
	default:
		s.logger.Error("register", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, detailResponse{Detail: "Internal error"})
	}
}

// handleActivate runs one verification attempt. Credentials arrive via HTTP
// Basic Auth, the code in the body. Everything except success answers 401
// with the same message.
func (s *Server) handleActivate(w http.ResponseWriter, r *http.Request) {
	email, password, ok := r.BasicAuth()
	if !ok {
		s.unauthorized(w)
		return
	}

	var req activateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.unauthorized(w)
		return
	}

	res, err := s.svc.Activate(r.Context(), email, req.Code, password)
	if err != nil {
		s.logger.Error("activate", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, detailResponse{Detail: "Internal error"})
		return
	}
	s.metrics.IncrementActivation(res)

	if res != model.VerifySuccess {
		s.unauthorized(w)
		return
	}
	writeJSON(w, http.StatusOK, activateResponse{Message: "Account activated", Email: email})
}

// handleHealthz answers ok once the pool reaches the database.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, statusResponse{Status: "degraded"})
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

// unauthorized collapses every activation failure into one response.
func (s *Server) unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Basic")
	writeJSON(w, http.StatusUnauthorized, detailResponse{Detail: unauthorizedDetail})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

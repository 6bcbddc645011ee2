// Package httptransport exposes the member and admin HTTP surfaces over chi.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"member-gateway/internal/user"
	userservice "member-gateway/internal/user/service"
	dErrors "member-gateway/pkg/domain-errors"
	"member-gateway/pkg/platform/httputil"
	"member-gateway/pkg/requestcontext"
)

// UserService is the slice of the user service the member surface needs.
type UserService interface {
	Register(ctx context.Context, reg user.Registration) (int64, error)
	Login(ctx context.Context, account, password string) (userservice.LoginResult, error)
	GetByAccount(ctx context.Context, account string) (user.User, error)
}

// UserHandler wires the public and authenticated member endpoints.
type UserHandler struct {
	users  UserService
	logger *slog.Logger
}

// NewUserHandler constructs the member-facing handler.
func NewUserHandler(users UserService, logger *slog.Logger) *UserHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{users: users, logger: logger}
}

// RegisterPublic mounts the endpoints that need no token.
func (h *UserHandler) RegisterPublic(r chi.Router) {
	r.Post("/api/users/register", h.HandleRegister)
	r.Post("/api/users/login", h.HandleLogin)
	r.Get("/api/users/health", h.HandleHealth)
}

// RegisterAuthenticated mounts the endpoints behind bearer auth.
func (h *UserHandler) RegisterAuthenticated(r chi.Router) {
	r.Get("/api/users/me", h.HandleMe)
}

// HandleRegister handles POST /api/users/register.
func (h *UserHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.Decode[RegisterRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	if err := req.Validate(); err != nil {
		httputil.WriteError(w, err)
		return
	}

	id, err := h.users.Register(ctx, req.Registration())
	if err != nil {
		if dErrors.CodeOf(err) == dErrors.CodeInternal {
			h.logger.ErrorContext(ctx, "registration failed",
				"request_id", requestID,
				"error", err,
			)
		}
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, RegisterResponse{ID: id})
}

// HandleLogin handles POST /api/users/login.
func (h *UserHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.Decode[LoginRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	if err := req.Validate(); err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := h.users.Login(ctx, req.Account, req.Password)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, LoginResponse{Token: result.Token, UserID: result.UserID})
}

// HandleHealth handles GET /api/users/health.
func (h *UserHandler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleMe handles GET /api/users/me. Identity comes from the validated
// bearer token, never from the request.
func (h *UserHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	account := requestcontext.Account(ctx)
	if account == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	u, err := h.users.GetByAccount(ctx, account)
	if err != nil {
		if dErrors.CodeOf(err) == dErrors.CodeInternal {
			h.logger.ErrorContext(ctx, "profile lookup failed",
				"request_id", requestcontext.RequestID(ctx),
				"user_id", requestcontext.UserID(ctx),
				"account", account,
				"error", err,
			)
		}
		httputil.WriteError(w, err)
		return
	}

	// The request-scoped clock keeps the derived age consistent with any
	// audit timestamps recorded for the same request.
	httputil.WriteJSON(w, http.StatusOK, NewProfileResponse(u, requestcontext.Now(ctx)))
}

package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"member-gateway/internal/notify"
	"member-gateway/internal/user"
	dErrors "member-gateway/pkg/domain-errors"
	"member-gateway/pkg/platform/httputil"
	"member-gateway/pkg/requestcontext"
)

// AdminService is the slice of the user service the admin surface needs.
type AdminService interface {
	List(ctx context.Context, page user.Page) (user.PagedUsers, error)
	GetByID(ctx context.Context, id int64) (user.User, error)
	UpdateUser(ctx context.Context, id int64, update user.Update) error
	DeleteUser(ctx context.Context, id int64) error
}

// MessageService triggers bulk messaging to an age band of the member base.
type MessageService interface {
	SendByAgeRange(ctx context.Context, minAge, maxAge int, body string) (notify.Result, error)
}

// AdminHandler wires the basic-auth-protected administration endpoints.
type AdminHandler struct {
	users    AdminService
	messages MessageService
	logger   *slog.Logger
}

// NewAdminHandler constructs the admin-facing handler.
func NewAdminHandler(users AdminService, messages MessageService, logger *slog.Logger) *AdminHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminHandler{users: users, messages: messages, logger: logger}
}

// Register mounts the admin endpoints. The caller is expected to have already
// applied the basic-auth middleware to r.
func (h *AdminHandler) Register(r chi.Router) {
	r.Get("/api/admin/users", h.HandleList)
	r.Get("/api/admin/users/{id}", h.HandleGet)
	r.Put("/api/admin/users/{id}", h.HandleUpdate)
	r.Delete("/api/admin/users/{id}", h.HandleDelete)
	r.Post("/api/admin/messages", h.HandleSendMessages)
}

// HandleList handles GET /api/admin/users with page, size and sort query
// parameters. Out-of-range values are clamped by the service.
func (h *AdminHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page := user.Page{
		Number: intQuery(r, "page", 0),
		Size:   intQuery(r, "size", 10),
		Sort:   r.URL.Query().Get("sort"),
	}

	result, err := h.users.List(ctx, page)
	if err != nil {
		h.logger.ErrorContext(ctx, "user listing failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, NewPagedUsersResponse(result))
}

// HandleGet handles GET /api/admin/users/{id}.
func (h *AdminHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	u, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, NewAdminUserResponse(u))
}

// HandleUpdate handles PUT /api/admin/users/{id}. Only the password and
// address may change.
func (h *AdminHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	req, ok := httputil.Decode[UpdateUserRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	if err := req.Validate(); err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.users.UpdateUser(ctx, id, req.Update()); err != nil {
		httputil.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleDelete handles DELETE /api/admin/users/{id}.
func (h *AdminHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.users.DeleteUser(r.Context(), id); err != nil {
		httputil.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleSendMessages handles POST /api/admin/messages. The call blocks until
// the dispatch finishes or its deadline lapses, then reports the counts.
func (h *AdminHandler) HandleSendMessages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.Decode[SendMessageRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	if err := req.Validate(); err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := h.messages.SendByAgeRange(ctx, req.MinAge, req.MaxAge, req.Message)
	if err != nil {
		if dErrors.CodeOf(err) == dErrors.CodeInternal {
			h.logger.ErrorContext(ctx, "bulk message dispatch failed",
				"request_id", requestID,
				"error", err,
			)
		}
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "bulk message request completed",
		"request_id", requestID,
		"targets", result.Targets,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, NewDispatchResponse(result))
}

// pathID parses the {id} segment, responding on failure.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "id must be a positive integer"))
		return 0, false
	}
	return id, true
}

// intQuery reads an integer query parameter with a fallback.
func intQuery(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

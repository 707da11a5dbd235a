package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/service"
)

// UserHandler serves the /users endpoints.
type UserHandler struct {
	users  service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a UserHandler. A nil logger falls back to slog.Default().
func NewUserHandler(users service.UserService, logger *slog.Logger) *UserHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{
		users:  users,
		logger: logger.With(slog.String("component", "user_handler")),
	}
}

// Routes mounts the user endpoints on r.
func (h *UserHandler) Routes(r chi.Router) {
	r.Post("/users", h.RegisterUser)
	r.Get("/users/{email}", h.LookupUser)
}

// RegisterUser handles POST /users.
func (h *UserHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req RegisterUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.users.Register(r.Context(), service.RegisterUserInput{
		UID:      req.UID,
		Email:    req.Email,
		Name:     req.Name,
		Role:     req.Role,
		Password: req.Password,
	})
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, RegisterUserResponse{
		Success: true,
		Message: MsgUserCreated,
		User: UserPayload{
			UID:   user.UID,
			Email: user.Email,
			Name:  user.Name,
			Role:  user.Role,
		},
	})
}

// LookupUser handles GET /users/{email}.
func (h *UserHandler) LookupUser(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	user, err := h.users.Lookup(r.Context(), email)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, LookupUserResponse{Success: true, User: user})
}

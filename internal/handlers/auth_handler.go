package handlers

import (
	"net/http"

	"github.com/antigone-study/backend/internal/models"
	"github.com/antigone-study/backend/internal/services"
	"github.com/antigone-study/backend/internal/session"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Login error keys, translated by the client
const (
	loginErrorEmpty   = "login.error.empty"
	loginErrorInvalid = "login.error.invalid"
)

// AuthHandler handles login, logout and session requests of a device
type AuthHandler struct {
	BaseHandler
	authService session.Authenticator
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService session.Authenticator, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: newBaseHandler(logger),
		authService: authService,
	}
}

// RegisterRoutes registers all auth handler routes
// Note: This assumes the router is already scoped to /api/v1 and identifies the device
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Get("/session", h.GetSession)
	})
}

// Login handles POST /auth/login
// @Summary Log in a student
// @Description Check the credentials against the class roster and open a session for the calling device. The username is case-insensitive, the password is not.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Credentials"
// @Success 200 {object} models.SessionResponse
// @Failure 400 {object} map[string]string "login.error.empty"
// @Failure 401 {object} map[string]string "login.error.invalid"
// @Failure 500 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if !services.CredentialsProvided(req.Username, req.Password) {
		h.RespondError(w, http.StatusBadRequest, loginErrorEmpty)
		return
	}

	sess := session.New(h.authService, h.Logger)
	ok, err := sess.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.Logger.Error("failed to log in", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to log in")
		return
	}
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, loginErrorInvalid)
		return
	}

	h.RespondJSON(w, http.StatusOK, sessionResponse(sess.State()))
}

// Logout handles POST /auth/logout
// @Summary Log out
// @Description Close the session of the calling device. Logging out without a session succeeds.
// @Tags auth
// @Produce json
// @Success 200 {object} models.SessionResponse
// @Failure 500 {object} map[string]string
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess := session.New(h.authService, h.Logger)
	if err := sess.Logout(r.Context()); err != nil {
		h.Logger.Error("failed to log out", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to log out")
		return
	}

	h.RespondJSON(w, http.StatusOK, sessionResponse(sess.State()))
}

// GetSession handles GET /auth/session
// @Summary Get the current session
// @Description Report whether the calling device has a logged in student, and who
// @Tags auth
// @Produce json
// @Success 200 {object} models.SessionResponse
// @Failure 500 {object} map[string]string
// @Router /auth/session [get]
func (h *AuthHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sess := session.New(h.authService, h.Logger)
	state, err := sess.Init(r.Context())
	if err != nil {
		h.Logger.Error("failed to restore session", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to get session")
		return
	}

	h.RespondJSON(w, http.StatusOK, sessionResponse(state))
}

func sessionResponse(state session.State) models.SessionResponse {
	return models.SessionResponse{
		Authenticated: state.Authenticated,
		User:          state.User,
	}
}

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/authdemo/apiserver/internal/services"
	"github.com/authdemo/apiserver/types"
)

// Client-facing messages. Browser code matches on some of these, so they
// must not change.
const (
	msgSignUpOK           = "User registered successfully"
	msgSignInOK           = "Sign in successful"
	msgAllFieldsRequired  = "All fields are required"
	msgPasswordTooShort   = "Password must be at least 6 characters long"
	msgEmailTaken         = "User with this email already exists"
	msgCredentialsMissing = "Email and password are required"
	msgInvalidCredentials = "Invalid credentials"
	msgTokenRequired      = "Access token required"
	msgTokenInvalid       = "Invalid or expired token"
	msgUserNotFound       = "User not found"
	msgInternal           = "Internal server error"
)

// AuthHandler provides sign up, sign in and profile endpoints.
type AuthHandler struct {
	service      *services.AuthService
	logger       *slog.Logger
	maxBodyBytes int64
}

// NewAuthHandler constructs an AuthHandler with the provided dependencies.
func NewAuthHandler(service *services.AuthService, logger *slog.Logger, maxBodyBytes int64) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		service:      service,
		logger:       logger,
		maxBodyBytes: maxBodyBytes,
	}
}

// AuthRouter registers auth and profile routes on the given router.
func AuthRouter(r chi.Router, handler *AuthHandler) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", handler.SignUp)
		r.Post("/signin", handler.SignIn)
	})
	r.With(handler.RequireAuth).Get("/profile", handler.Profile)
}

// RequireAuth rejects requests without a valid bearer token and stores the
// token's user id in the request context.
func (h *AuthHandler) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, err := bearerToken(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, msgTokenRequired)
			return
		}

		userID, err := h.service.VerifyToken(tokenString)
		if err != nil {
			h.logger.DebugContext(r.Context(), "token rejected",
				slog.String("request_id", middleware.GetReqID(r.Context())),
				slog.Any("error", err),
			)
			writeError(w, http.StatusForbidden, msgTokenInvalid)
			return
		}

		next.ServeHTTP(w, r.WithContext(withUserID(r.Context(), userID)))
	})
}

// SignUp registers a new user and returns it with a token.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req services.RegisterInput
	if err := decodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgAllFieldsRequired)
		return
	}

	result, err := h.service.Register(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, msgAllFieldsRequired)
		case errors.Is(err, services.ErrWeakPassword):
			writeError(w, http.StatusBadRequest, msgPasswordTooShort)
		case errors.Is(err, services.ErrEmailTaken):
			writeError(w, http.StatusBadRequest, msgEmailTaken)
		default:
			h.internalError(w, r, "sign up failed", err)
		}
		return
	}

	writeSuccess(w, http.StatusCreated, msgSignUpOK, result)
}

// SignIn verifies credentials and returns the user with a fresh token.
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req services.AuthenticateInput
	if err := decodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgCredentialsMissing)
		return
	}

	result, err := h.service.Authenticate(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, msgCredentialsMissing)
		case errors.Is(err, services.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, msgInvalidCredentials)
		default:
			h.internalError(w, r, "sign in failed", err)
		}
		return
	}

	writeSuccess(w, http.StatusOK, msgSignInOK, result)
}

// Profile returns the authenticated user.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, msgTokenRequired)
		return
	}

	user, err := h.service.Profile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			writeError(w, http.StatusNotFound, msgUserNotFound)
			return
		}
		h.internalError(w, r, "load profile failed", err)
		return
	}

	writeSuccess(w, http.StatusOK, "", ProfileResponse{User: user.Profile()})
}

// ProfileResponse is the data payload of the profile endpoint.
type ProfileResponse struct {
	User types.ProfileUser `json:"user"`
}

func (h *AuthHandler) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.logger.ErrorContext(r.Context(), msg,
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.Any("error", err),
	)
	writeError(w, http.StatusInternalServerError, msgInternal)
}

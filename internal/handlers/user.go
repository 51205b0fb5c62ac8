package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/coursedesk/courseapi/internal/logging"
	"github.com/coursedesk/courseapi/internal/models"
	"github.com/coursedesk/courseapi/internal/services"
	"github.com/coursedesk/courseapi/internal/validation"
)

// maxBodyBytes caps request bodies; payloads here are small JSON objects.
const maxBodyBytes = 1 << 20

type UserHandler struct {
	userService  services.UserServiceInterface
	authService  services.AuthServiceInterface
	emailChecker services.EmailCheckerInterface
}

func NewUserHandler(userService services.UserServiceInterface, authService services.AuthServiceInterface, emailChecker services.EmailCheckerInterface) *UserHandler {
	return &UserHandler{
		userService:  userService,
		authService:  authService,
		emailChecker: emailChecker,
	}
}

// registrationFields is the declared validation order for POST /api/users.
var registrationFields = []string{"firstName", "lastName", "emailAddress", "password"}

type CreateUserRequest struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	EmailAddress string `json:"emailAddress"`
	Password     string `json:"password"`
}

// UserResponse is the self-profile projection. The password hash and
// timestamps never leave the server.
type UserResponse struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	EmailAddress string `json:"emailAddress"`
}

// Me answers GET /api/users with the authenticated user's profile.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeMessage(w, http.StatusBadRequest, accessDeniedMessage)
		return
	}

	writeJSON(w, http.StatusOK, UserResponse{
		ID:           user.ID,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		EmailAddress: user.EmailAddress,
	})
}

// Create answers POST /api/users: field validation, email plausibility,
// password hashing, then the store write.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	payload, body, err := decodePayload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if messages := validation.RequireFields(payload, registrationFields); len(messages) > 0 {
		writeValidationErrors(w, messages)
		return
	}

	var req CreateUserRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.emailChecker.Check(r.Context(), req.EmailAddress); err != nil {
		if errors.Is(err, services.ErrEmailImplausible) {
			writeMessage(w, http.StatusBadRequest, "Email address doesn't check out")
			return
		}
		// Checker trouble is surfaced to the client as a 400 carrying
		// the underlying cause, not hidden behind a 500.
		logging.Warn("Email plausibility check failed", map[string]interface{}{
			"error": err.Error(),
		})
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	passwordHash, err := h.authService.HashPassword(req.Password)
	if err != nil {
		if errors.Is(err, services.ErrPasswordTooLong) {
			writeValidationErrors(w, []string{"Password is too long"})
			return
		}
		logging.Error("Hashing password", map[string]interface{}{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	_, err = h.userService.Create(r.Context(), models.CreateUserParams{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		EmailAddress: req.EmailAddress,
		PasswordHash: passwordHash,
	})
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		writeValidationErrors(w, verr.Errors)
		return
	}
	if errors.Is(err, services.ErrEmailAlreadyExists) {
		writeValidationErrors(w, []string{"Email address is already in use"})
		return
	}
	if err != nil {
		logging.Error("Creating user", map[string]interface{}{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.Header().Set("Location", "/")
	w.WriteHeader(http.StatusCreated)
}

// decodePayload reads the body once and decodes it generically so the
// required-field check can distinguish absent, null, and falsy values.
func decodePayload(r *http.Request) (map[string]any, []byte, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, nil, err
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, nil, err
	}

	return payload, body, nil
}

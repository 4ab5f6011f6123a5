package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/aimarket/haggle-engine/internal/middleware"
	"github.com/aimarket/haggle-engine/internal/storage"
	"github.com/aimarket/haggle-engine/pkg/user"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	users  storage.UserStore
	jwtKey []byte
	logger *slog.Logger
}

func NewAuthHandler(users storage.UserStore, jwtKey []byte, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		users:  users,
		jwtKey: jwtKey,
		logger: logger,
	}
}

func (h *AuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Only POST is supported.")
		return
	}

	switch strings.TrimPrefix(r.URL.Path, "/v1/auth/") {
	case "register":
		h.handleRegister(w, r)
	case "login":
		h.handleLogin(w, r)
	default:
		writeError(w, h.logger, http.StatusNotFound, "Not found.")
	}
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req user.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid register request body", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.logger.Error("Failed to hash password", "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to register user.")
		return
	}

	u := &user.User{
		ID:           ulid.Make().String(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	if err := h.users.CreateUser(r.Context(), u); err != nil {
		if errors.Is(err, storage.ErrEmailTaken) {
			writeError(w, h.logger, http.StatusBadRequest, "Email is already registered.")
			return
		}
		h.logger.Error("Failed to create user", "email", req.Email, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to register user.")
		return
	}

	token, err := middleware.IssueToken(h.jwtKey, u.ID)
	if err != nil {
		h.logger.Error("Failed to issue token", "user_id", u.ID, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to register user.")
		return
	}

	h.logger.Info("User registered", "user_id", u.ID, "username", u.Username)
	writeJSON(w, h.logger, http.StatusCreated, user.LoginResponse{Token: token, User: u})
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req user.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid login request body", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	u, err := h.users.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		h.logger.Error("Failed to look up user", "email", req.Email, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to log in.")
		return
	}
	if u == nil || bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		writeError(w, h.logger, http.StatusUnauthorized, "Invalid email or password.")
		return
	}

	token, err := middleware.IssueToken(h.jwtKey, u.ID)
	if err != nil {
		h.logger.Error("Failed to issue token", "user_id", u.ID, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to log in.")
		return
	}

	h.logger.Info("User logged in", "user_id", u.ID)
	writeJSON(w, h.logger, http.StatusOK, user.LoginResponse{Token: token, User: u})
}

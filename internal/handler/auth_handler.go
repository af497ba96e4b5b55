package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"collegeerp/internal/auth"
	"collegeerp/internal/entity"
	middleware "collegeerp/internal/midlleware"
	"collegeerp/internal/repository"

	"go.uber.org/zap"
)

// ProfileStore fetches the full record behind a session.
type ProfileStore interface {
	ProfileByID(kind entity.Kind, id int) (any, error)
}

type AuthHandler struct {
	resolver *auth.Resolver
	profiles ProfileStore

	// secureCookies switches the token cookie to Secure + SameSite=None
	// for cross-site production frontends; local use stays on Lax.
	secureCookies bool

	logger *zap.Logger
}

func NewAuthHandler(resolver *auth.Resolver, profiles ProfileStore, secureCookies bool, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		resolver:      resolver,
		profiles:      profiles,
		secureCookies: secureCookies,
		logger:        logger,
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Email and password required")
		return
	}

	principal, token, err := h.resolver.Resolve(req.Email, req.Password)
	if err != nil {
		var ve *auth.ValidationError
		switch {
		case errors.As(err, &ve):
			writeMessage(w, http.StatusBadRequest, ve.Error())
		case errors.Is(err, auth.ErrInvalidCredentials):
			h.logger.Info("login rejected", zap.String("email", req.Email))
			writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
		case errors.Is(err, auth.ErrServiceUnavailable):
			writeMessage(w, http.StatusServiceUnavailable, "Database not ready")
		default:
			writeMessage(w, http.StatusInternalServerError, "Server error")
		}
		return
	}

	http.SetCookie(w, h.sessionCookie(token, int(auth.SessionTTL.Seconds())))

	name := principal.Name
	if name == "" {
		name = "User"
	}

	user := map[string]any{
		"id":    principal.ID,
		"email": principal.Email,
		"role":  string(principal.Kind),
		"name":  name,
	}
	switch principal.Kind {
	case entity.KindTeacher:
		user["salary"] = principal.Salary
	case entity.KindStudent:
		user["rollNo"] = principal.RollNo
	}

	h.logger.Info("login success",
		zap.String("email", principal.Email), zap.String("role", string(principal.Kind)))

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "user": user})
}

// Logout clears the token cookie. There is nothing server-side to tear
// down, so it always succeeds.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.sessionCookie("", -1))
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "No token provided")
		return
	}

	profile, err := h.profiles.ProfileByID(claims.Kind, claims.AccountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "User not found")
			return
		}
		h.logger.Error("profile lookup failed",
			zap.Int("id", claims.AccountID), zap.Error(err))
		writeMessage(w, http.StatusServiceUnavailable, "Service unavailable")
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

func (h *AuthHandler) sessionCookie(value string, maxAge int) *http.Cookie {
	cookie := &http.Cookie{
		Name:     auth.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if h.secureCookies {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteNoneMode
	}
	return cookie
}

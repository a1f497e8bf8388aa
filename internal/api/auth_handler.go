package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/rmsato/todoapi/internal/api/shared"
	"github.com/rmsato/todoapi/internal/domain"
	"github.com/rmsato/todoapi/internal/platform/logger"
	"github.com/rmsato/todoapi/internal/service"
	"github.com/rmsato/todoapi/internal/service/auth"
	"github.com/rmsato/todoapi/internal/store"
)

// AuthHandler handles registration, login, logout, token refresh, and
// the current-account endpoints.
type AuthHandler struct {
	registration *service.RegistrationService
	users        *service.UserService
	jwtService   auth.JWTService
	blacklist    auth.TokenBlacklist
	cookies      cookieWriter
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	registration *service.RegistrationService,
	users *service.UserService,
	jwtService auth.JWTService,
	blacklist auth.TokenBlacklist,
	cookieSecure bool,
) *AuthHandler {
	return &AuthHandler{
		registration: registration,
		users:        users,
		jwtService:   jwtService,
		blacklist:    blacklist,
		cookies:      cookieWriter{secure: cookieSecure},
	}
}

// Register handles POST /api/v1/auth/registration/.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.registration.Register(r.Context(), req.Email, req.Password1, req.FirstName, req.LastName)
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			shared.RespondWithFieldErrors(w, r, shared.FieldErrors{
				"email": {"A user is already registered with this e-mail address."},
			})
			return
		}
		HandleAPIError(w, r, err, "")
		return
	}

	h.respondWithSession(w, r, user, http.StatusCreated)
}

// Login handles POST /api/v1/auth/login/.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			HandleAPIError(w, r, err, "Unable to log in with provided credentials.")
			return
		}
		HandleAPIError(w, r, err, "")
		return
	}

	h.respondWithSession(w, r, user, http.StatusOK)
}

// Logout handles POST /api/v1/auth/logout/. The presented refresh
// token's JTI is blacklisted best effort; the cookies are cleared
// regardless, so logout always succeeds from the client's view.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), slog.Default())

	if refresh := h.refreshTokenFromRequest(r); refresh != "" {
		claims, err := h.jwtService.ValidateRefreshToken(r.Context(), refresh)
		if err == nil {
			h.revokeClaims(r.Context(), claims)
		} else {
			log.Debug("ignoring invalid refresh token on logout", slog.String("error", err.Error()))
		}
	}

	h.cookies.clearTokenCookies(w)
	shared.RespondWithJSON(w, r, http.StatusOK, DetailResponse{Detail: "Successfully logged out."})
}

// RefreshToken handles POST /api/v1/auth/token/refresh/. The spent
// refresh token's JTI is blacklisted before the new pair is issued, so
// each refresh token works exactly once.
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	refresh := h.refreshTokenFromRequest(r)
	if refresh == "" {
		HandleAPIError(w, r, auth.ErrInvalidRefreshToken, "")
		return
	}

	claims, err := h.jwtService.ValidateRefreshToken(r.Context(), refresh)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	revoked, err := h.blacklist.IsRevoked(r.Context(), claims.ID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if revoked {
		HandleAPIError(w, r, auth.ErrRevokedToken, "")
		return
	}

	h.revokeClaims(r.Context(), claims)

	access, refreshToken, err := h.generateTokenPair(r.Context(), claims.UserID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to refresh token.")
		return
	}

	h.cookies.setTokenCookies(w, access, refreshToken,
		h.jwtService.AccessTokenLifetime(), h.jwtService.RefreshTokenLifetime())
	shared.RespondWithJSON(w, r, http.StatusOK, RefreshResponse{Access: access})
}

// CurrentUser handles GET /api/v1/auth/user/.
func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "Authentication credentials were not provided.")
		return
	}

	user, err := h.users.Get(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewUserResponse(user))
}

// UpdateUser handles PATCH /api/v1/auth/user/.
func (h *AuthHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "Authentication credentials were not provided.")
		return
	}

	var req UserUpdateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.users.UpdateProfile(r.Context(), userID, domain.UserPatch{
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewUserResponse(user))
}

// respondWithSession issues a fresh token pair for the user, sets the
// cookies, and writes the auth response.
func (h *AuthHandler) respondWithSession(w http.ResponseWriter, r *http.Request, user *domain.User, status int) {
	access, refresh, err := h.generateTokenPair(r.Context(), user.ID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to generate authentication tokens.")
		return
	}

	h.cookies.setTokenCookies(w, access, refresh,
		h.jwtService.AccessTokenLifetime(), h.jwtService.RefreshTokenLifetime())
	shared.RespondWithJSON(w, r, status, AuthResponse{
		Access: access,
		User:   NewUserResponse(user),
	})
}

func (h *AuthHandler) generateTokenPair(ctx context.Context, userID uuid.UUID) (access, refresh string, err error) {
	access, err = h.jwtService.GenerateToken(ctx, userID)
	if err != nil {
		return "", "", err
	}

	refresh, err = h.jwtService.GenerateRefreshToken(ctx, userID)
	if err != nil {
		return "", "", err
	}

	return access, refresh, nil
}

// refreshTokenFromRequest reads the refresh token from the cookie, or
// the JSON body for non-browser clients.
func (h *AuthHandler) refreshTokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(refreshTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	var req RefreshTokenRequest
	if err := shared.DecodeJSON(r, &req); err == nil {
		return req.Refresh
	}
	return ""
}

// revokeClaims blacklists the claims' JTI for the remainder of its
// lifetime. Failures are logged; revocation is best effort.
func (h *AuthHandler) revokeClaims(ctx context.Context, claims *auth.Claims) {
	ttl := time.Until(claims.ExpiresAt)
	if ttl <= 0 {
		return
	}

	if err := h.blacklist.Revoke(ctx, claims.ID, ttl); err != nil {
		log := logger.FromContextOrDefault(ctx, slog.Default())
		log.Error("failed to blacklist refresh token",
			slog.String("jti", claims.ID),
			slog.String("error", err.Error()))
	}
}

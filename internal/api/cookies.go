package api

import (
	"net/http"
	"time"
)

// Cookie names for the token pair.
const (
	accessTokenCookie  = "access-token"
	refreshTokenCookie = "refresh-token"
)

// cookieWriter builds the session cookies. SameSite is None so the
// browser sends them from a frontend on another origin; browsers only
// accept that combination with Secure set, so secure is false only in
// local development.
type cookieWriter struct {
	secure bool
}

// setTokenCookies writes the access and refresh token cookies with
// max-ages matching the token lifetimes.
func (c cookieWriter) setTokenCookies(w http.ResponseWriter, access, refresh string, accessTTL, refreshTTL time.Duration) {
	http.SetCookie(w, c.tokenCookie(accessTokenCookie, access, int(accessTTL.Seconds())))
	http.SetCookie(w, c.tokenCookie(refreshTokenCookie, refresh, int(refreshTTL.Seconds())))
}

// clearTokenCookies expires both token cookies.
func (c cookieWriter) clearTokenCookies(w http.ResponseWriter) {
	http.SetCookie(w, c.tokenCookie(accessTokenCookie, "", -1))
	http.SetCookie(w, c.tokenCookie(refreshTokenCookie, "", -1))
}

func (c cookieWriter) tokenCookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteNoneMode,
	}
}

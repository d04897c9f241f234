package auth

import "net/http"

// CookieName is the session cookie carrying the admin token. The CLI
// replays the same name as a raw Cookie header.
const CookieName = "auth_token"

// SessionCookie wraps a token in the hardened cookie the login endpoint
// sets: http-only, secure, strict same-site, lifetime mirroring the token.
func SessionCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(TokenValidity.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	}
}

// ExpiredCookie returns a cookie that clears the session client-side.
func ExpiredCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	}
}

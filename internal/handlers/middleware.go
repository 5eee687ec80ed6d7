package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"tymonteam/internal/models"
	"tymonteam/internal/security"
	"tymonteam/internal/service"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const ProfileContextKey ContextKey = "profile"

// Middleware holds dependencies for middleware functions
type Middleware struct {
	profileService *service.ProfileService
	csrfGen        *security.CSRFGenerator
	adminJWTKey    []byte
	loginLimiter   *security.RateLimiter
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(profileService *service.ProfileService, csrfGen *security.CSRFGenerator, adminJWTKey []byte) *Middleware {
	return &Middleware{
		profileService: profileService,
		csrfGen:        csrfGen,
		adminJWTKey:    adminJWTKey,
		loginLimiter:   security.NewRateLimiter(20, time.Minute),
	}
}

// RequireUser is middleware that requires a valid profile session
func (m *Middleware) RequireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		profile, err := m.profileService.ValidateSession(cookie.Value)
		if err != nil {
			http.SetCookie(w, security.CreateDeleteCookie(r, SessionCookieName))
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		ctx := context.WithValue(r.Context(), ProfileContextKey, profile)
		next(w, r.WithContext(ctx))
	}
}

// RequireAdmin is middleware that requires a valid admin token
func (m *Middleware) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(AdminCookieName)
		if err != nil {
			http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
			return
		}

		if err := security.ValidateAdminToken(m.adminJWTKey, cookie.Value); err != nil {
			http.SetCookie(w, security.CreateDeleteCookie(r, AdminCookieName))
			http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
			return
		}

		next(w, r)
	}
}

// RateLimitLogin throttles login attempts per client IP
func (m *Middleware) RateLimitLogin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := security.GetClientIP(r)
		if !m.loginLimiter.Allow(ip) {
			respondWithError(w, http.StatusTooManyRequests, "Too many attempts, slow down", "", nil)
			return
		}
		next(w, r)
	}
}

// GetCSRFToken derives the CSRF token for the request's session
func (m *Middleware) GetCSRFToken(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	token, _ := m.csrfGen.GenerateToken(cookie.Value)
	return token
}

// ValidateCSRF checks the csrf_token form field against the session
func (m *Middleware) ValidateCSRF(r *http.Request) bool {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return false
	}
	return m.csrfGen.ValidateToken(cookie.Value, r.FormValue("csrf_token"))
}

// GetAdminCSRFToken derives the CSRF token for the admin cookie
func (m *Middleware) GetAdminCSRFToken(r *http.Request) string {
	cookie, err := r.Cookie(AdminCookieName)
	if err != nil {
		return ""
	}
	token, _ := m.csrfGen.GenerateToken(cookie.Value)
	return token
}

// ValidateAdminCSRF checks the csrf_token form field against the admin cookie
func (m *Middleware) ValidateAdminCSRF(r *http.Request) bool {
	cookie, err := r.Cookie(AdminCookieName)
	if err != nil {
		return false
	}
	return m.csrfGen.ValidateToken(cookie.Value, r.FormValue("csrf_token"))
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// GetProfileFromContext retrieves the logged-in profile from the request context
func GetProfileFromContext(ctx context.Context) *models.UserProfile {
	profile, ok := ctx.Value(ProfileContextKey).(*models.UserProfile)
	if !ok {
		return nil
	}
	return profile
}

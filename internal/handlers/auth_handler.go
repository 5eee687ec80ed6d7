package handlers

import (
	"html/template"
	"log"
	"net/http"

	"tymonteam/internal/models"
	"tymonteam/internal/repository"
	"tymonteam/internal/security"
	"tymonteam/internal/service"
	"tymonteam/internal/validation"
)

// AuthHandler handles login, logout and the theme toggle
type AuthHandler struct {
	profileService *service.ProfileService
	settingsRepo   *repository.SettingsRepository
	settings       *settingsReader
	middleware     *Middleware
	templates      *template.Template
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(profileService *service.ProfileService, settingsRepo *repository.SettingsRepository, settings *settingsReader, middleware *Middleware, templates *template.Template) *AuthHandler {
	return &AuthHandler{
		profileService: profileService,
		settingsRepo:   settingsRepo,
		settings:       settings,
		middleware:     middleware,
		templates:      templates,
	}
}

// Home renders the login page, or sends a logged-in kid to the learning zone
func (h *AuthHandler) Home(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		if _, err := h.profileService.ValidateSession(cookie.Value); err == nil {
			http.Redirect(w, r, "/learn", http.StatusSeeOther)
			return
		}
	}

	data := LoginViewData{
		Title: "TymonTeam",
		Theme: h.settings.Theme(),
	}
	if err := h.templates.ExecuteTemplate(w, "login.tmpl", data); err != nil {
		log.Printf("Error rendering login template: %v", err)
		http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
	}
}

// Login handles the username form. An unknown name becomes a new profile.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}

	username := r.FormValue("username")

	session, _, err := h.profileService.Login(username)
	if err != nil {
		message := "Something went wrong, try again"
		if _, ok := err.(validation.ValidationError); ok {
			message = err.Error()
		} else {
			log.Printf("Login failed for %q: %v", username, err)
		}

		data := LoginViewData{
			Title:    "TymonTeam",
			Theme:    h.settings.Theme(),
			Error:    message,
			Username: username,
		}
		if err := h.templates.ExecuteTemplate(w, "login.tmpl", data); err != nil {
			log.Printf("Error rendering login template: %v", err)
			http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
		}
		return
	}

	http.SetCookie(w, security.CreateSessionCookie(r, SessionCookieName, session.ID, session.ExpiresAt))
	http.Redirect(w, r, "/learn", http.StatusSeeOther)
}

// Logout ends the browser session
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		if err := h.profileService.Logout(cookie.Value); err != nil {
			log.Printf("Failed to delete session: %v", err)
		}
	}

	http.SetCookie(w, security.CreateDeleteCookie(r, SessionCookieName))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ToggleTheme flips the shared light/dark preference
func (h *AuthHandler) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}
	if !h.middleware.ValidateCSRF(r) {
		http.Error(w, ErrUnauthorized, http.StatusForbidden)
		return
	}

	next := models.ThemeDark
	if h.settings.Theme() == models.ThemeDark {
		next = models.ThemeLight
	}
	if err := h.settingsRepo.Set(ThemeSettingKey, next); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to save theme", err)
		return
	}

	redirect := r.FormValue("return_to")
	if redirect == "" || redirect[0] != '/' {
		redirect = "/learn"
	}
	http.Redirect(w, r, redirect, http.StatusSeeOther)
}

package handlers

import (
	"encoding/json"
	"html/template"
	"log"
	"net/http"

	"tymonteam/internal/ledger"
	"tymonteam/internal/timer"
)

// PlayHandler guards the entertainment zone behind the screen-time gate
// and drives the session countdown
type PlayHandler struct {
	ledger     *ledger.Service
	timekeeper *timer.Timekeeper
	settings   *settingsReader
	middleware *Middleware
	templates  *template.Template
}

// NewPlayHandler creates a new play handler
func NewPlayHandler(ledgerService *ledger.Service, timekeeper *timer.Timekeeper, settings *settingsReader, middleware *Middleware, templates *template.Template) *PlayHandler {
	return &PlayHandler{
		ledger:     ledgerService,
		timekeeper: timekeeper,
		settings:   settings,
		middleware: middleware,
		templates:  templates,
	}
}

// Zone renders the entertainment zone, or the "earn more time" page
// when the balance is empty
func (h *PlayHandler) Zone(w http.ResponseWriter, r *http.Request) {
	profile := GetProfileFromContext(r.Context())

	allowed, err := h.ledger.CanAccess(profile.Username)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to check ledger", err)
		return
	}

	remaining, err := h.ledger.Remaining(profile.Username)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to read ledger", err)
		return
	}

	seconds, active := h.timekeeper.Remaining(profile.Username)

	data := PlayViewData{
		Title:            "Games - TymonTeam",
		Theme:            h.settings.Theme(),
		Profile:          profile,
		RemainingMinutes: remaining,
		TimerActive:      active,
		TimerSeconds:     seconds,
		Denied:           !allowed,
		CSRFToken:        h.middleware.GetCSRFToken(r),
	}
	if err := h.templates.ExecuteTemplate(w, "play.tmpl", data); err != nil {
		log.Printf("Error rendering play template: %v", err)
		http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
	}
}

// Enter starts or resumes the play session countdown. The gate is
// checked again here with a fresh read, not trusted from the page.
func (h *PlayHandler) Enter(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}
	if !h.middleware.ValidateCSRF(r) {
		http.Error(w, ErrUnauthorized, http.StatusForbidden)
		return
	}

	profile := GetProfileFromContext(r.Context())

	allowed, err := h.ledger.CanAccess(profile.Username)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to check ledger", err)
		return
	}
	if !allowed {
		http.Redirect(w, r, "/play", http.StatusSeeOther)
		return
	}

	if _, err := h.timekeeper.Begin(profile.Username, nil); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to start countdown", err)
		return
	}

	http.Redirect(w, r, "/play", http.StatusSeeOther)
}

// Timer is the JSON heartbeat polled by the countdown banner
func (h *PlayHandler) Timer(w http.ResponseWriter, r *http.Request) {
	profile := GetProfileFromContext(r.Context())

	seconds, active := h.timekeeper.Remaining(profile.Username)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"active":  active,
		"seconds": seconds,
	}); err != nil {
		log.Printf("Failed to encode timer response: %v", err)
	}
}

// Exit ends the play session and books the minutes actually used
func (h *PlayHandler) Exit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}
	if !h.middleware.ValidateCSRF(r) {
		http.Error(w, ErrUnauthorized, http.StatusForbidden)
		return
	}

	profile := GetProfileFromContext(r.Context())

	if _, err := h.timekeeper.Exit(profile.Username); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to end session", err)
		return
	}

	http.Redirect(w, r, "/learn", http.StatusSeeOther)
}

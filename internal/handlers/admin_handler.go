package handlers

import (
	"errors"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"time"

	"tymonteam/internal/ledger"
	"tymonteam/internal/repository"
	"tymonteam/internal/security"
	"tymonteam/internal/service"
	"tymonteam/internal/timer"
)

// AdminHandler is the parent-facing dashboard: ledgers, minute
// adjustments and profile removal, behind a password
type AdminHandler struct {
	profileService *service.ProfileService
	scoreRepo      *repository.ScoreRepository
	ledger         *ledger.Service
	timekeeper     *timer.Timekeeper
	games          *GamesHandler
	settings       *settingsReader
	middleware     *Middleware
	templates      *template.Template

	adminHash   string
	adminJWTKey []byte
}

// NewAdminHandler creates a new admin handler. adminHash is the bcrypt
// hash of the admin password, computed once at startup.
func NewAdminHandler(profileService *service.ProfileService, scoreRepo *repository.ScoreRepository, ledgerService *ledger.Service, timekeeper *timer.Timekeeper, gamesHandler *GamesHandler, settings *settingsReader, middleware *Middleware, templates *template.Template, adminHash string, adminJWTKey []byte) *AdminHandler {
	return &AdminHandler{
		profileService: profileService,
		scoreRepo:      scoreRepo,
		ledger:         ledgerService,
		timekeeper:     timekeeper,
		games:          gamesHandler,
		settings:       settings,
		middleware:     middleware,
		templates:      templates,
		adminHash:      adminHash,
		adminJWTKey:    adminJWTKey,
	}
}

// ShowLogin renders the admin password form
func (h *AdminHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	data := AdminLoginViewData{
		Title: "Admin Login - TymonTeam",
		Theme: h.settings.Theme(),
	}
	if err := h.templates.ExecuteTemplate(w, "admin_login.tmpl", data); err != nil {
		log.Printf("Error rendering admin login template: %v", err)
		http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
	}
}

// Login checks the password and sets the signed admin cookie
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}

	if !security.CheckPassword(h.adminHash, r.FormValue("password")) {
		data := AdminLoginViewData{
			Title: "Admin Login - TymonTeam",
			Theme: h.settings.Theme(),
			Error: "Wrong password",
		}
		if err := h.templates.ExecuteTemplate(w, "admin_login.tmpl", data); err != nil {
			log.Printf("Error rendering admin login template: %v", err)
			http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
		}
		return
	}

	token, err := security.GenerateAdminToken(h.adminJWTKey)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to issue admin token", err)
		return
	}

	http.SetCookie(w, security.CreateSessionCookie(r, AdminCookieName, token, time.Now().Add(security.AdminTokenDuration)))
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// Logout clears the admin cookie
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, security.CreateDeleteCookie(r, AdminCookieName))
	http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
}

// Dashboard lists every kid with their ledger and quiz totals
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.profileService.ListProfiles()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to list profiles", err)
		return
	}

	rows := make([]AdminProfileRow, 0, len(profiles))
	for _, p := range profiles {
		passed, err := h.scoreRepo.CountPassed(p.ID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to count quizzes", err)
			return
		}
		_, active := h.timekeeper.Remaining(p.Username)
		rows = append(rows, AdminProfileRow{
			Profile:          p,
			RemainingMinutes: p.Ledger.RemainingMinutes(),
			QuizzesPassed:    passed,
			SessionActive:    active || p.Ledger.LastSession.Active,
		})
	}

	data := AdminDashboardViewData{
		Title:     "Admin - TymonTeam",
		Theme:     h.settings.Theme(),
		Profiles:  rows,
		CSRFToken: h.middleware.GetAdminCSRFToken(r),
	}
	if err := h.templates.ExecuteTemplate(w, "admin.tmpl", data); err != nil {
		log.Printf("Error rendering admin template: %v", err)
		http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
	}
}

// AdjustMinutes grants or revokes earned minutes for a profile
func (h *AdminHandler) AdjustMinutes(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}
	if !h.middleware.ValidateAdminCSRF(r) {
		http.Error(w, ErrUnauthorized, http.StatusForbidden)
		return
	}

	username := r.PathValue("username")
	delta, err := strconv.Atoi(r.FormValue("minutes"))
	if err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}

	if err := h.ledger.Adjust(username, delta); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to adjust minutes", err)
		return
	}

	log.Printf("Admin adjusted minutes for %s by %+d", username, delta)
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// DeleteProfile removes a kid's profile, scores, sessions and any
// running countdown
func (h *AdminHandler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}
	if !h.middleware.ValidateAdminCSRF(r) {
		http.Error(w, ErrUnauthorized, http.StatusForbidden)
		return
	}

	username := r.PathValue("username")

	profile, err := h.profileService.GetProfile(username)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			http.Redirect(w, r, "/admin", http.StatusSeeOther)
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to look up profile", err)
		return
	}

	// Stop the clock first so a running countdown cannot write to a
	// deleted profile
	if _, err := h.timekeeper.Exit(username); err != nil {
		log.Printf("Failed to stop countdown for %s before delete: %v", username, err)
	}
	h.games.DropState(profile.ID)

	if err := h.profileService.DeleteProfile(username); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to delete profile", err)
		return
	}

	log.Printf("Admin deleted profile %s", username)
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

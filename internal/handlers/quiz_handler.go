package handlers

import (
	"errors"
	"html/template"
	"log"
	"net/http"
	"strconv"

	"tymonteam/internal/models"
	"tymonteam/internal/service"
)

// QuizHandler runs the 20-question subject quizzes
type QuizHandler struct {
	quizService   *service.QuizService
	settings      *settingsReader
	middleware    *Middleware
	templates     *template.Template
	rewardMinutes int
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(quizService *service.QuizService, settings *settingsReader, middleware *Middleware, templates *template.Template, rewardMinutes int) *QuizHandler {
	return &QuizHandler{
		quizService:   quizService,
		settings:      settings,
		middleware:    middleware,
		templates:     templates,
		rewardMinutes: rewardMinutes,
	}
}

// Start begins a fresh attempt and sends the kid to the first question
func (h *QuizHandler) Start(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}
	if !h.middleware.ValidateCSRF(r) {
		http.Error(w, ErrUnauthorized, http.StatusForbidden)
		return
	}

	profile := GetProfileFromContext(r.Context())

	subject := models.Subject(r.PathValue("subject"))
	if !subject.Valid() {
		http.Error(w, "Unknown subject", http.StatusBadRequest)
		return
	}

	grade := 1
	if g := r.FormValue("grade"); g != "" {
		parsed, err := strconv.Atoi(g)
		if err != nil {
			http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
			return
		}
		grade = parsed
	}

	if _, err := h.quizService.StartAttempt(profile.ID, subject, grade); err != nil {
		respondWithError(w, http.StatusBadRequest, "Could not start quiz", "Failed to start attempt", err)
		return
	}

	http.Redirect(w, r, "/quiz", http.StatusSeeOther)
}

// Show renders the current question of the attempt in progress
func (h *QuizHandler) Show(w http.ResponseWriter, r *http.Request) {
	profile := GetProfileFromContext(r.Context())

	question, number, total, err := h.quizService.CurrentQuestion(profile.ID)
	if err != nil {
		if errors.Is(err, service.ErrNoAttempt) {
			http.Redirect(w, r, "/learn", http.StatusSeeOther)
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to load question", err)
		return
	}

	data := QuizViewData{
		Title:     "Quiz - TymonTeam",
		Theme:     h.settings.Theme(),
		Profile:   profile,
		Question:  question,
		Number:    number,
		Total:     total,
		CSRFToken: h.middleware.GetCSRFToken(r),
	}
	if err := h.templates.ExecuteTemplate(w, "quiz.tmpl", data); err != nil {
		log.Printf("Error rendering quiz template: %v", err)
		http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
	}
}

// Answer records the selected option. The last answer grades the
// attempt and redirects to the results page.
func (h *QuizHandler) Answer(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}
	if !h.middleware.ValidateCSRF(r) {
		http.Error(w, ErrUnauthorized, http.StatusForbidden)
		return
	}

	profile := GetProfileFromContext(r.Context())

	_, finished, err := h.quizService.SubmitAnswer(profile.Username, profile.ID, r.FormValue("answer"))
	if err != nil {
		if errors.Is(err, service.ErrNoAttempt) {
			http.Redirect(w, r, "/learn", http.StatusSeeOther)
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to submit answer", err)
		return
	}

	if finished {
		http.Redirect(w, r, "/quiz/results", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/quiz", http.StatusSeeOther)
}

// Results shows the graded outcome of the kid's latest attempt
func (h *QuizHandler) Results(w http.ResponseWriter, r *http.Request) {
	profile := GetProfileFromContext(r.Context())

	result, err := h.quizService.LastResult(profile.ID)
	if err != nil {
		http.Redirect(w, r, "/learn", http.StatusSeeOther)
		return
	}

	data := QuizResultsViewData{
		Title:         "Quiz Results - TymonTeam",
		Theme:         h.settings.Theme(),
		Profile:       profile,
		Result:        result,
		RewardMinutes: h.rewardMinutes,
	}
	if err := h.templates.ExecuteTemplate(w, "quiz_results.tmpl", data); err != nil {
		log.Printf("Error rendering quiz results template: %v", err)
		http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
	}
}

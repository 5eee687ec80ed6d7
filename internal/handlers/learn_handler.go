package handlers

import (
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"strings"

	"tymonteam/internal/ledger"
	"tymonteam/internal/quiz"
	"tymonteam/internal/service"
	"tymonteam/internal/validation"
	"tymonteam/internal/vocab"
)

// LearnHandler serves the learning zone: the subject menu, the
// multiplication table trainer, and the vocabulary browser
type LearnHandler struct {
	quizService *service.QuizService
	ledger      *ledger.Service
	settings    *settingsReader
	middleware  *Middleware
	templates   *template.Template
}

// NewLearnHandler creates a new learn handler
func NewLearnHandler(quizService *service.QuizService, ledgerService *ledger.Service, settings *settingsReader, middleware *Middleware, templates *template.Template) *LearnHandler {
	return &LearnHandler{
		quizService: quizService,
		ledger:      ledgerService,
		settings:    settings,
		middleware:  middleware,
		templates:   templates,
	}
}

// Zone renders the learning zone menu with the screen-time balance and
// the kid's quiz history
func (h *LearnHandler) Zone(w http.ResponseWriter, r *http.Request) {
	profile := GetProfileFromContext(r.Context())

	remaining, err := h.ledger.Remaining(profile.Username)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to read ledger", err)
		return
	}

	history, err := h.quizService.History(profile.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to load quiz history", err)
		return
	}

	data := LearnViewData{
		Title:            "Learning Zone - TymonTeam",
		Theme:            h.settings.Theme(),
		Profile:          profile,
		RemainingMinutes: remaining,
		History:          history,
		CSRFToken:        h.middleware.GetCSRFToken(r),
	}
	if err := h.templates.ExecuteTemplate(w, "learn.tmpl", data); err != nil {
		log.Printf("Error rendering learn template: %v", err)
		http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
	}
}

// Multiplication renders the times table with a fresh practice question
func (h *LearnHandler) Multiplication(w http.ResponseWriter, r *http.Request) {
	h.renderMultiplication(w, r, quiz.NewPracticeQuestion(), "")
}

// MultiplicationAnswer checks a typed practice answer and serves the
// next question with feedback
func (h *LearnHandler) MultiplicationAnswer(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}
	if !h.middleware.ValidateCSRF(r) {
		http.Error(w, ErrUnauthorized, http.StatusForbidden)
		return
	}

	a, errA := strconv.Atoi(r.FormValue("factor_a"))
	b, errB := strconv.Atoi(r.FormValue("factor_b"))
	if errA != nil || errB != nil || a < 2 || a > 9 || b < 2 || b > 9 {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}
	question := quiz.PracticeQuestion{A: a, B: b}

	answer, err := strconv.Atoi(strings.TrimSpace(r.FormValue("answer")))
	feedback := fmt.Sprintf("Not quite: %d × %d = %d", a, b, a*b)
	if err == nil && question.Check(answer) {
		feedback = "Correct, well done!"
	}

	h.renderMultiplication(w, r, quiz.NewPracticeQuestion(), feedback)
}

func (h *LearnHandler) renderMultiplication(w http.ResponseWriter, r *http.Request, question quiz.PracticeQuestion, feedback string) {
	profile := GetProfileFromContext(r.Context())

	table := make([][]int, 0, 8)
	for a := 2; a <= 9; a++ {
		row := make([]int, 0, 8)
		for b := 2; b <= 9; b++ {
			row = append(row, a*b)
		}
		table = append(table, row)
	}

	data := MultiplicationViewData{
		Title:     "Multiplication - TymonTeam",
		Theme:     h.settings.Theme(),
		Profile:   profile,
		Table:     table,
		Question:  question,
		Feedback:  feedback,
		CSRFToken: h.middleware.GetCSRFToken(r),
	}
	if err := h.templates.ExecuteTemplate(w, "multiplication.tmpl", data); err != nil {
		log.Printf("Error rendering multiplication template: %v", err)
		http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
	}
}

// Vocabulary renders the word list for the requested grade tier
func (h *LearnHandler) Vocabulary(w http.ResponseWriter, r *http.Request) {
	profile := GetProfileFromContext(r.Context())

	grade := 1
	if g := r.URL.Query().Get("grade"); g != "" {
		parsed, err := strconv.Atoi(g)
		if err != nil || validation.ValidateGrade(parsed) != nil {
			http.Error(w, "Unknown grade", http.StatusBadRequest)
			return
		}
		grade = parsed
	}

	category := r.URL.Query().Get("category")
	words := vocab.ByGrade(grade)
	if category != "" {
		words = vocab.ByCategory(grade, category)
	}

	data := VocabularyViewData{
		Title:      "Vocabulary - TymonTeam",
		Theme:      h.settings.Theme(),
		Profile:    profile,
		Grade:      grade,
		Category:   category,
		Categories: vocab.Categories(grade),
		Words:      words,
	}
	if err := h.templates.ExecuteTemplate(w, "vocabulary.tmpl", data); err != nil {
		log.Printf("Error rendering vocabulary template: %v", err)
		http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
	}
}

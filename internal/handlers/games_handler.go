package handlers

import (
	"html/template"
	"log"
	"net/http"
	"strconv"
	"sync"

	"tymonteam/internal/games"
	"tymonteam/internal/models"
	"tymonteam/internal/timer"
)

// GamesHandler serves the mini-games inside the entertainment zone.
// Game state lives in memory per profile; losing it on restart only
// resets a board, never the screen-time ledger.
type GamesHandler struct {
	mu        sync.Mutex
	tictactoe map[int64]*games.TicTacToe
	cups      map[int64]*games.ThreeCups

	timekeeper *timer.Timekeeper
	settings   *settingsReader
	middleware *Middleware
	templates  *template.Template
}

// NewGamesHandler creates a new games handler
func NewGamesHandler(timekeeper *timer.Timekeeper, settings *settingsReader, middleware *Middleware, templates *template.Template) *GamesHandler {
	return &GamesHandler{
		tictactoe:  make(map[int64]*games.TicTacToe),
		cups:       make(map[int64]*games.ThreeCups),
		timekeeper: timekeeper,
		settings:   settings,
		middleware: middleware,
		templates:  templates,
	}
}

// requireTimer sends the kid back to the zone page unless a session
// countdown is running. Games are only playable on the clock.
func (h *GamesHandler) requireTimer(w http.ResponseWriter, r *http.Request) (*models.UserProfile, int, bool) {
	profile := GetProfileFromContext(r.Context())
	seconds, active := h.timekeeper.Remaining(profile.Username)
	if !active {
		http.Redirect(w, r, "/play", http.StatusSeeOther)
		return nil, 0, false
	}
	return profile, seconds, true
}

func (h *GamesHandler) tictactoeFor(profileID int64) *games.TicTacToe {
	h.mu.Lock()
	defer h.mu.Unlock()
	g, ok := h.tictactoe[profileID]
	if !ok {
		g = games.NewTicTacToe()
		h.tictactoe[profileID] = g
	}
	return g
}

func (h *GamesHandler) cupsFor(profileID int64) *games.ThreeCups {
	h.mu.Lock()
	defer h.mu.Unlock()
	g, ok := h.cups[profileID]
	if !ok {
		g = games.NewThreeCups()
		h.cups[profileID] = g
	}
	return g
}

// TicTacToe renders the kid's board
func (h *GamesHandler) TicTacToe(w http.ResponseWriter, r *http.Request) {
	profile, seconds, ok := h.requireTimer(w, r)
	if !ok {
		return
	}
	h.renderTicTacToe(w, r, profile, seconds)
}

// TicTacToeMove places a mark on the chosen cell
func (h *GamesHandler) TicTacToeMove(w http.ResponseWriter, r *http.Request) {
	profile, _, ok := h.requireTimer(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}
	if !h.middleware.ValidateCSRF(r) {
		http.Error(w, ErrUnauthorized, http.StatusForbidden)
		return
	}

	cell, err := strconv.Atoi(r.FormValue("cell"))
	if err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}

	g := h.tictactoeFor(profile.ID)
	if err := g.Move(cell); err != nil {
		// A tap on a finished board or a taken cell just re-renders
		log.Printf("Rejected tictactoe move for %s: %v", profile.Username, err)
	}

	http.Redirect(w, r, "/play/tictactoe", http.StatusSeeOther)
}

// TicTacToeReset clears the board for a rematch
func (h *GamesHandler) TicTacToeReset(w http.ResponseWriter, r *http.Request) {
	profile, _, ok := h.requireTimer(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}
	if !h.middleware.ValidateCSRF(r) {
		http.Error(w, ErrUnauthorized, http.StatusForbidden)
		return
	}

	h.tictactoeFor(profile.ID).Reset()
	http.Redirect(w, r, "/play/tictactoe", http.StatusSeeOther)
}

func (h *GamesHandler) renderTicTacToe(w http.ResponseWriter, r *http.Request, profile *models.UserProfile, seconds int) {
	g := h.tictactoeFor(profile.ID)

	data := TicTacToeViewData{
		Title:        "Tic-Tac-Toe - TymonTeam",
		Theme:        h.settings.Theme(),
		Profile:      profile,
		Game:         g,
		Draw:         g.IsDraw(),
		TimerSeconds: seconds,
		CSRFToken:    h.middleware.GetCSRFToken(r),
	}
	if err := h.templates.ExecuteTemplate(w, "tictactoe.tmpl", data); err != nil {
		log.Printf("Error rendering tictactoe template: %v", err)
		http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
	}
}

// Cups renders the three-cups guessing game
func (h *GamesHandler) Cups(w http.ResponseWriter, r *http.Request) {
	profile, seconds, ok := h.requireTimer(w, r)
	if !ok {
		return
	}
	h.renderCups(w, r, profile, seconds, "", -1)
}

// CupsShuffle hides the ball under a random cup and opens a round
func (h *GamesHandler) CupsShuffle(w http.ResponseWriter, r *http.Request) {
	profile, _, ok := h.requireTimer(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}
	if !h.middleware.ValidateCSRF(r) {
		http.Error(w, ErrUnauthorized, http.StatusForbidden)
		return
	}

	h.cupsFor(profile.ID).Shuffle()
	http.Redirect(w, r, "/play/cups", http.StatusSeeOther)
}

// CupsGuess resolves the round and shows where the ball was
func (h *GamesHandler) CupsGuess(w http.ResponseWriter, r *http.Request) {
	profile, seconds, ok := h.requireTimer(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}
	if !h.middleware.ValidateCSRF(r) {
		http.Error(w, ErrUnauthorized, http.StatusForbidden)
		return
	}

	cup, err := strconv.Atoi(r.FormValue("cup"))
	if err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}

	win, ball, err := h.cupsFor(profile.ID).Guess(cup)
	if err != nil {
		http.Redirect(w, r, "/play/cups", http.StatusSeeOther)
		return
	}

	feedback := "Wrong cup this time!"
	if win {
		feedback = "You found the ball!"
	}
	h.renderCups(w, r, profile, seconds, feedback, ball)
}

func (h *GamesHandler) renderCups(w http.ResponseWriter, r *http.Request, profile *models.UserProfile, seconds int, feedback string, revealed int) {
	g := h.cupsFor(profile.ID)

	data := CupsViewData{
		Title:        "Three Cups - TymonTeam",
		Theme:        h.settings.Theme(),
		Profile:      profile,
		Game:         g,
		Feedback:     feedback,
		RevealedCup:  revealed,
		TimerSeconds: seconds,
		CSRFToken:    h.middleware.GetCSRFToken(r),
	}
	if err := h.templates.ExecuteTemplate(w, "cups.tmpl", data); err != nil {
		log.Printf("Error rendering cups template: %v", err)
		http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
	}
}

// Snake renders the canvas snake game, which runs entirely in the browser
func (h *GamesHandler) Snake(w http.ResponseWriter, r *http.Request) {
	profile, seconds, ok := h.requireTimer(w, r)
	if !ok {
		return
	}

	data := GameViewData{
		Title:        "Snake - TymonTeam",
		Theme:        h.settings.Theme(),
		Profile:      profile,
		TimerSeconds: seconds,
		CSRFToken:    h.middleware.GetCSRFToken(r),
	}
	if err := h.templates.ExecuteTemplate(w, "snake.tmpl", data); err != nil {
		log.Printf("Error rendering snake template: %v", err)
		http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
	}
}

// DropState discards any in-memory boards for a deleted profile
func (h *GamesHandler) DropState(profileID int64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.tictactoe, profileID)
	delete(h.cups, profileID)
}

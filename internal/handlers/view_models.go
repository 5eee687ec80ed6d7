package handlers

import (
	"tymonteam/internal/games"
	"tymonteam/internal/models"
	"tymonteam/internal/quiz"
	"tymonteam/internal/vocab"
)

type LoginViewData struct {
	Title    string
	Theme    string
	Profile  *models.UserProfile // always nil here, the header expects it
	Error    string
	Username string
}

type LearnViewData struct {
	Title            string
	Theme            string
	Profile          *models.UserProfile
	RemainingMinutes int
	History          map[models.Subject][]models.ScoreRecord
	CSRFToken        string
}

type MultiplicationViewData struct {
	Title     string
	Theme     string
	Profile   *models.UserProfile
	Table     [][]int
	Question  quiz.PracticeQuestion
	Feedback  string
	CSRFToken string
}

type VocabularyViewData struct {
	Title      string
	Theme      string
	Profile    *models.UserProfile
	Grade      int
	Category   string // empty shows every topic
	Categories []string
	Words      []vocab.Word
}

type QuizViewData struct {
	Title     string
	Theme     string
	Profile   *models.UserProfile
	Question  quiz.Question
	Number    int
	Total     int
	CSRFToken string
}

type QuizResultsViewData struct {
	Title         string
	Theme         string
	Profile       *models.UserProfile
	Result        quiz.Result
	RewardMinutes int
}

type PlayViewData struct {
	Title            string
	Theme            string
	Profile          *models.UserProfile
	RemainingMinutes int
	TimerActive      bool
	TimerSeconds     int
	Denied           bool
	CSRFToken        string
}

type GameViewData struct {
	Title        string
	Theme        string
	Profile      *models.UserProfile
	TimerSeconds int
	CSRFToken    string
}

type TicTacToeViewData struct {
	Title        string
	Theme        string
	Profile      *models.UserProfile
	Game         *games.TicTacToe
	Draw         bool
	TimerSeconds int
	CSRFToken    string
}

type CupsViewData struct {
	Title        string
	Theme        string
	Profile      *models.UserProfile
	Game         *games.ThreeCups
	Feedback     string
	RevealedCup  int
	TimerSeconds int
	CSRFToken    string
}

type AdminLoginViewData struct {
	Title   string
	Theme   string
	Profile *models.UserProfile
	Error   string
}

type AdminDashboardViewData struct {
	Title     string
	Theme     string
	Profile   *models.UserProfile
	Profiles  []AdminProfileRow
	CSRFToken string
}

type AdminProfileRow struct {
	Profile          models.UserProfile
	RemainingMinutes int
	QuizzesPassed    int
	SessionActive    bool
}

package engine

import "prepmaster/internal/models"

type Mode string

const (
	ModeTimedTest Mode = "timed-test"
	ModePractice  Mode = "practice"
	ModeOlympiad  Mode = "olympiad"
)

// AllowsSolutionReveal reports whether the mode permits showing explanations
// and video hints while the session is still open. Timed tests hide them
// until the result is produced.
func (m Mode) AllowsSolutionReveal() bool {
	return m == ModePractice || m == ModeOlympiad
}

// SecondsPerQuestion is the per-question time budget for the mode.
func SecondsPerQuestion(mode Mode) int {
	if mode == ModeTimedTest {
		return 120
	}
	return 300
}

type State string

const (
	StateIdle       State = "idle"
	StateActive     State = "active"
	StateTerminated State = "terminated"
)

// Session is the live attempt, owned exclusively by the Engine. It exists
// only between Start and the submit that terminates it.
type Session struct {
	Questions        []models.Question `json:"questions"`
	Subject          models.Subject    `json:"subject"`
	Chapter          string            `json:"chapter"`
	Mode             Mode              `json:"mode"`
	CurrentIndex     int               `json:"current_index"`
	Answers          map[string]int    `json:"answers"`
	MarkedForReview  map[string]bool   `json:"marked_for_review"`
	AllocatedSeconds int               `json:"allocated_seconds"`
	RemainingSeconds int               `json:"remaining_seconds"`
}

// Tally is the aggregate produced by the scorer.
type Tally struct {
	Score          int `json:"score"`
	CorrectCount   int `json:"correct_count"`
	IncorrectCount int `json:"incorrect_count"`
}

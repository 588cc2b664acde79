package engine

import (
	"errors"

	"prepmaster/internal/models"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrSessionActive = errors.New("a session is already active")
	ErrNoSession     = errors.New("no active session")
)

// Engine manages exactly one attempt at a time and exposes the intents that
// mutate it. It holds no timer of its own; the host drives Tick once per
// second. All methods are synchronous and the engine is not safe for
// concurrent use — callers serialize intents.
type Engine struct {
	state   State
	session *Session
}

func New() *Engine {
	return &Engine{state: StateIdle}
}

func (e *Engine) State() State { return e.state }

// Session exposes the live attempt for observation. Nil unless Active.
func (e *Engine) Session() *Session {
	if e.state != StateActive {
		return nil
	}
	return e.session
}

// Start transitions Idle -> Active. The question set is fixed for the life
// of the session; the time budget is len(questions) * SecondsPerQuestion.
// Starting while another session is active is refused; the caller must
// terminate the prior one explicitly.
func (e *Engine) Start(questions []models.Question, subject models.Subject, chapter string, mode Mode) error {
	if e.state == StateActive {
		return ErrSessionActive
	}
	if len(questions) == 0 {
		return ErrInvalidInput
	}

	allocated := len(questions) * SecondsPerQuestion(mode)
	e.session = &Session{
		Questions:        questions,
		Subject:          subject,
		Chapter:          chapter,
		Mode:             mode,
		CurrentIndex:     0,
		Answers:          map[string]int{},
		MarkedForReview:  map[string]bool{},
		AllocatedSeconds: allocated,
		RemainingSeconds: allocated,
	}
	e.state = StateActive
	return nil
}

// SelectOption records an answer for a question in the current set. Last
// write wins; re-selecting the same option is allowed. An unknown question
// id or out-of-range option index is rejected as invalid input and leaves
// the session untouched.
func (e *Engine) SelectOption(questionID string, optionIndex int) error {
	if e.state != StateActive {
		return ErrNoSession
	}
	if optionIndex < 0 || optionIndex >= models.OptionCount {
		return ErrInvalidInput
	}
	if !e.hasQuestion(questionID) {
		return ErrInvalidInput
	}
	e.session.Answers[questionID] = optionIndex
	return nil
}

// ToggleReview flips the review mark on a question. Marks never affect
// scoring.
func (e *Engine) ToggleReview(questionID string) error {
	if e.state != StateActive {
		return ErrNoSession
	}
	if !e.hasQuestion(questionID) {
		return ErrInvalidInput
	}
	if e.session.MarkedForReview[questionID] {
		delete(e.session.MarkedForReview, questionID)
	} else {
		e.session.MarkedForReview[questionID] = true
	}
	return nil
}

// Navigate moves the cursor by delta, clamped to the question range.
// Out-of-range deltas clamp rather than error.
func (e *Engine) Navigate(delta int) error {
	if e.state != StateActive {
		return ErrNoSession
	}
	next := e.session.CurrentIndex + delta
	if next < 0 {
		next = 0
	}
	if max := len(e.session.Questions) - 1; next > max {
		next = max
	}
	e.session.CurrentIndex = next
	return nil
}

// Tick consumes one second of the time budget. When the budget reaches zero
// the session auto-submits and the result is returned; otherwise Tick
// returns nil. Ticking a non-active engine is a no-op.
func (e *Engine) Tick() *models.TestResult {
	if e.state != StateActive {
		return nil
	}
	e.session.RemainingSeconds--
	if e.session.RemainingSeconds <= 0 {
		e.session.RemainingSeconds = 0
		return e.Submit()
	}
	return nil
}

// Submit transitions Active -> Terminated and produces the result. Calling
// it again is a no-op returning nil, so a manual submit racing a
// timer-expiry submit can never score the attempt twice.
func (e *Engine) Submit() *models.TestResult {
	if e.state != StateActive {
		return nil
	}
	result := buildResult(e.session)
	e.session = nil
	e.state = StateTerminated
	return result
}

func (e *Engine) hasQuestion(id string) bool {
	for i := range e.session.Questions {
		if e.session.Questions[i].ID == id {
			return true
		}
	}
	return false
}

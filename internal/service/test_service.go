package service

import (
	"context"
	"errors"
	"log"
	"sync"

	"prepmaster/internal/engine"
	"prepmaster/internal/gemini"
	"prepmaster/internal/models"
	"prepmaster/utils"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrUserHasSession  = errors.New("user already has an active session")
	ErrUnknownMode     = errors.New("unknown test mode")
)

// QuestionSource produces the question set for a new test. It never fails;
// the provider substitutes a fallback set instead.
type QuestionSource interface {
	GenerateQuestions(ctx context.Context, subject models.Subject, chapter string, difficulty models.Difficulty, count int, mode gemini.QuestionMode) []models.Question
}

// ResultStore persists completed results.
type ResultStore interface {
	Create(ctx context.Context, result *models.TestResult) error
}

// Publisher emits domain events.
type Publisher interface {
	Publish(eventType string, payload interface{}) error
}

type activeTest struct {
	engine *engine.Engine
	userID string
}

// TestService owns the live test sessions. Each session gets its own engine
// instance keyed by an opaque token; the mutex serializes intents so the
// engine itself never sees concurrent calls.
type TestService struct {
	mu       sync.Mutex
	sessions map[string]*activeTest

	questions     QuestionSource
	results       ResultStore
	publisher     Publisher
	questionCount int
}

func NewTestService(questions QuestionSource, results ResultStore, publisher Publisher, questionCount int) *TestService {
	if questionCount <= 0 {
		questionCount = 10
	}
	return &TestService{
		sessions:      map[string]*activeTest{},
		questions:     questions,
		results:       results,
		publisher:     publisher,
		questionCount: questionCount,
	}
}

// StartedTest is the payload returned to the presentation layer when a test
// begins. FallbackNotice signals that generation failed and the fallback
// question set was served; the flow still continues.
type StartedTest struct {
	Token            string            `json:"token"`
	Mode             engine.Mode       `json:"mode"`
	Questions        []models.Question `json:"questions"`
	RemainingSeconds int               `json:"remaining_seconds"`
	FallbackNotice   bool              `json:"fallback_notice"`
}

// resolveMode maps a requested mode onto the engine mode and the generation
// prompt family. PYQ requests run under the timed-test clock but pull
// past-year material; there is no separate PYQ engine mode.
func resolveMode(requested string) (engine.Mode, gemini.QuestionMode, error) {
	switch requested {
	case "timed-test", "test":
		return engine.ModeTimedTest, gemini.QuestionModePractice, nil
	case "pyq":
		return engine.ModeTimedTest, gemini.QuestionModePYQ, nil
	case "practice":
		return engine.ModePractice, gemini.QuestionModePractice, nil
	case "olympiad":
		return engine.ModeOlympiad, gemini.QuestionModeOlympiad, nil
	default:
		return "", "", ErrUnknownMode
	}
}

// StartTest generates a question set and opens a session for the user. A
// user with a live session must submit or abandon it first; the engine is
// never discarded implicitly.
func (s *TestService) StartTest(ctx context.Context, userID string, subject models.Subject, chapter string, difficulty models.Difficulty, requestedMode string) (*StartedTest, error) {
	mode, questionMode, err := resolveMode(requestedMode)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.userHasActiveLocked(userID) {
		s.mu.Unlock()
		return nil, ErrUserHasSession
	}
	s.mu.Unlock()

	// Generation happens outside the lock; the provider can be slow and
	// never errors.
	questions := s.questions.GenerateQuestions(ctx, subject, chapter, difficulty, s.questionCount, questionMode)

	e := engine.New()
	if err := e.Start(questions, subject, chapter, mode); err != nil {
		return nil, err
	}

	// Re-check under the same lock as the insert: a concurrent StartTest
	// for this user may have won the slot while generation ran. The loser's
	// engine is discarded before anything observed it.
	token := utils.GenerateID()
	s.mu.Lock()
	if s.userHasActiveLocked(userID) {
		s.mu.Unlock()
		return nil, ErrUserHasSession
	}
	s.sessions[token] = &activeTest{engine: e, userID: userID}
	s.mu.Unlock()

	return &StartedTest{
		Token:            token,
		Mode:             mode,
		Questions:        presentQuestions(questions, mode),
		RemainingSeconds: e.Session().RemainingSeconds,
		FallbackNotice:   questions[0].Fallback,
	}, nil
}

// presentQuestions prepares the question set for the presentation layer.
// Modes that hide solutions until submission get the set with explanations
// and video hints stripped; the session keeps the full questions, so the
// result snapshot is unaffected.
func presentQuestions(questions []models.Question, mode engine.Mode) []models.Question {
	if mode.AllowsSolutionReveal() {
		return questions
	}
	out := make([]models.Question, len(questions))
	copy(out, questions)
	for i := range out {
		out[i].Explanation = ""
		out[i].VideoQuery = ""
	}
	return out
}

// userHasActiveLocked reports whether the user already owns a live session.
// Caller holds s.mu. Stored sessions are always Active; terminated ones are
// removed from the map at finalization.
func (s *TestService) userHasActiveLocked(userID string) bool {
	for _, t := range s.sessions {
		if t.userID == userID && t.engine.State() == engine.StateActive {
			return true
		}
	}
	return false
}

// SelectOption records an answer in the user's session.
func (s *TestService) SelectOption(token, questionID string, optionIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.sessions[token]
	if !ok {
		return ErrSessionNotFound
	}
	return t.engine.SelectOption(questionID, optionIndex)
}

// ToggleReview flips the review mark on a question.
func (s *TestService) ToggleReview(token, questionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.sessions[token]
	if !ok {
		return ErrSessionNotFound
	}
	return t.engine.ToggleReview(questionID)
}

// Navigate moves the session cursor, clamped to the question range.
func (s *TestService) Navigate(token string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.sessions[token]
	if !ok {
		return ErrSessionNotFound
	}
	return t.engine.Navigate(delta)
}

// SessionStatus is the observable slice of a live session.
type SessionStatus struct {
	Token            string          `json:"token"`
	State            engine.State    `json:"state"`
	Mode             engine.Mode     `json:"mode"`
	CurrentIndex     int             `json:"current_index"`
	TotalQuestions   int             `json:"total_questions"`
	RemainingSeconds int             `json:"remaining_seconds"`
	Answers          map[string]int  `json:"answers"`
	MarkedForReview  map[string]bool `json:"marked_for_review"`
}

// Status reports the current session state for the presentation layer.
func (s *TestService) Status(token string) (*SessionStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.sessions[token]
	if !ok {
		return nil, ErrSessionNotFound
	}
	sess := t.engine.Session()
	if sess == nil {
		return &SessionStatus{Token: token, State: t.engine.State()}, nil
	}

	answers := make(map[string]int, len(sess.Answers))
	for id, idx := range sess.Answers {
		answers[id] = idx
	}
	marked := make(map[string]bool, len(sess.MarkedForReview))
	for id := range sess.MarkedForReview {
		marked[id] = true
	}

	return &SessionStatus{
		Token:            token,
		State:            t.engine.State(),
		Mode:             sess.Mode,
		CurrentIndex:     sess.CurrentIndex,
		TotalQuestions:   len(sess.Questions),
		RemainingSeconds: sess.RemainingSeconds,
		Answers:          answers,
		MarkedForReview:  marked,
	}, nil
}

// Submit terminates the session and runs the completion pipeline. A second
// submit for the same token reports ErrSessionNotFound since the session is
// already gone.
func (s *TestService) Submit(ctx context.Context, token string) (*models.TestResult, error) {
	s.mu.Lock()
	t, ok := s.sessions[token]
	if !ok {
		s.mu.Unlock()
		return nil, ErrSessionNotFound
	}
	result := t.engine.Submit()
	delete(s.sessions, token)
	s.mu.Unlock()

	if result == nil {
		// Lost the race against a timer-expiry submit; no new result.
		return nil, ErrSessionNotFound
	}

	s.finalize(ctx, t.userID, result)
	return result, nil
}

// Abandon discards a session without producing a result. The attempt is
// silent data loss, not an error.
func (s *TestService) Abandon(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[token]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, token)
	return nil
}

// TickAll advances every live session clock by one second and finalizes the
// sessions the tick expired.
func (s *TestService) TickAll(ctx context.Context) {
	type expired struct {
		userID string
		result *models.TestResult
	}

	s.mu.Lock()
	var done []expired
	for token, t := range s.sessions {
		if result := t.engine.Tick(); result != nil {
			done = append(done, expired{userID: t.userID, result: result})
			delete(s.sessions, token)
		}
	}
	s.mu.Unlock()

	for _, d := range done {
		s.finalize(ctx, d.userID, d.result)
	}
}

// finalize stamps, persists and announces a completed result. Persistence
// failure is logged and swallowed: losing history must not interrupt the
// flow.
func (s *TestService) finalize(ctx context.Context, userID string, result *models.TestResult) {
	result.ID = utils.GenerateID()
	result.UserID = userID

	if s.results != nil {
		if err := s.results.Create(ctx, result); err != nil {
			log.Printf("failed to persist result %s: %v", result.ID, err)
		}
	}
	if s.publisher != nil {
		s.publisher.Publish("prep.test.completed", map[string]interface{}{
			"result_id": result.ID,
			"user_id":   userID,
			"score":     result.Score,
			"subject":   result.Subject,
			"chapter":   result.Chapter,
		})
	}
}

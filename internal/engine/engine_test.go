package engine

import (
	"fmt"
	"testing"

	"prepmaster/internal/models"
)

func makeQuestions(n int) []models.Question {
	qs := make([]models.Question, n)
	for i := range qs {
		qs[i] = models.Question{
			ID:                 fmt.Sprintf("q%d", i+1),
			Text:               fmt.Sprintf("question %d", i+1),
			Options:            []string{"A", "B", "C", "D"},
			CorrectOptionIndex: i % models.OptionCount,
			Subject:            models.SubjectPhysics,
			Chapter:            "Kinematics",
			Difficulty:         models.DifficultyMedium,
		}
	}
	return qs
}

func startEngine(t *testing.T, n int, mode Mode) *Engine {
	t.Helper()
	e := New()
	if err := e.Start(makeQuestions(n), models.SubjectPhysics, "Kinematics", mode); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	return e
}

func TestTimeAllocation(t *testing.T) {
	testCases := []struct {
		name            string
		mode            Mode
		questions       int
		expectedSeconds int
	}{
		{"timed test 5 questions", ModeTimedTest, 5, 600},
		{"practice 5 questions", ModePractice, 5, 1500},
		{"olympiad 5 questions", ModeOlympiad, 5, 1500},
		{"timed test 10 questions", ModeTimedTest, 10, 1200},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e := startEngine(t, tc.questions, tc.mode)
			if got := e.Session().RemainingSeconds; got != tc.expectedSeconds {
				t.Errorf("Expected %d remaining seconds, got %d", tc.expectedSeconds, got)
			}
			if got := e.Session().AllocatedSeconds; got != tc.expectedSeconds {
				t.Errorf("Expected %d allocated seconds, got %d", tc.expectedSeconds, got)
			}
		})
	}
}

func TestStartValidation(t *testing.T) {
	e := New()
	if err := e.Start(nil, models.SubjectPhysics, "Kinematics", ModeTimedTest); err != ErrInvalidInput {
		t.Errorf("Expected ErrInvalidInput for empty question set, got %v", err)
	}
	if e.State() != StateIdle {
		t.Errorf("Expected engine to stay idle, got %s", e.State())
	}

	if err := e.Start(makeQuestions(2), models.SubjectPhysics, "Kinematics", ModeTimedTest); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := e.Start(makeQuestions(2), models.SubjectPhysics, "Kinematics", ModeTimedTest); err != ErrSessionActive {
		t.Errorf("Expected ErrSessionActive when starting over a live session, got %v", err)
	}
}

func TestSelectOption(t *testing.T) {
	e := startEngine(t, 3, ModeTimedTest)

	if err := e.SelectOption("q1", 2); err != nil {
		t.Fatalf("SelectOption failed: %v", err)
	}
	if got := e.Session().Answers["q1"]; got != 2 {
		t.Errorf("Expected answer 2, got %d", got)
	}

	// Last write wins.
	if err := e.SelectOption("q1", 0); err != nil {
		t.Fatalf("re-selection failed: %v", err)
	}
	if got := e.Session().Answers["q1"]; got != 0 {
		t.Errorf("Expected overwritten answer 0, got %d", got)
	}

	if err := e.SelectOption("q1", 4); err != ErrInvalidInput {
		t.Errorf("Expected ErrInvalidInput for option index 4, got %v", err)
	}
	if err := e.SelectOption("q1", -1); err != ErrInvalidInput {
		t.Errorf("Expected ErrInvalidInput for option index -1, got %v", err)
	}
	if err := e.SelectOption("missing", 0); err != ErrInvalidInput {
		t.Errorf("Expected ErrInvalidInput for unknown question, got %v", err)
	}
	if len(e.Session().Answers) != 1 {
		t.Errorf("Invalid intents must not touch answers, got %d entries", len(e.Session().Answers))
	}
}

func TestToggleReview(t *testing.T) {
	e := startEngine(t, 2, ModePractice)

	if err := e.ToggleReview("q2"); err != nil {
		t.Fatalf("ToggleReview failed: %v", err)
	}
	if !e.Session().MarkedForReview["q2"] {
		t.Error("Expected q2 to be marked for review")
	}
	if err := e.ToggleReview("q2"); err != nil {
		t.Fatalf("second ToggleReview failed: %v", err)
	}
	if e.Session().MarkedForReview["q2"] {
		t.Error("Expected q2 mark to be cleared")
	}
}

func TestNavigateClamping(t *testing.T) {
	testCases := []struct {
		name          string
		startIndex    int
		delta         int
		expectedIndex int
	}{
		{"back at first stays", 0, -1, 0},
		{"forward at last stays", 4, 1, 4},
		{"normal forward", 1, 1, 2},
		{"normal back", 3, -1, 2},
		{"large positive clamps", 0, 100, 4},
		{"large negative clamps", 4, -100, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e := startEngine(t, 5, ModeTimedTest)
			e.Session().CurrentIndex = tc.startIndex
			if err := e.Navigate(tc.delta); err != nil {
				t.Fatalf("Navigate failed: %v", err)
			}
			if got := e.Session().CurrentIndex; got != tc.expectedIndex {
				t.Errorf("Expected index %d, got %d", tc.expectedIndex, got)
			}
		})
	}
}

func TestTickAutoSubmit(t *testing.T) {
	e := startEngine(t, 5, ModeTimedTest)
	e.Session().RemainingSeconds = 5
	e.Session().AllocatedSeconds = 5

	for i := 0; i < 4; i++ {
		if result := e.Tick(); result != nil {
			t.Fatalf("Tick %d produced a premature result", i+1)
		}
	}
	result := e.Tick()
	if result == nil {
		t.Fatal("Expected auto-submit on the 5th tick")
	}
	if e.State() != StateTerminated {
		t.Errorf("Expected terminated state, got %s", e.State())
	}
	if result.TimeTakenSeconds != 5 {
		t.Errorf("Expected timeTaken 5, got %d", result.TimeTakenSeconds)
	}

	// Further ticks are no-ops on a terminated engine.
	if extra := e.Tick(); extra != nil {
		t.Error("Tick after termination must not produce a result")
	}
}

func TestSubmitIdempotent(t *testing.T) {
	e := startEngine(t, 2, ModeTimedTest)

	first := e.Submit()
	if first == nil {
		t.Fatal("Expected a result from the first submit")
	}
	second := e.Submit()
	if second != nil {
		t.Error("Second submit must be a no-op returning no new result")
	}
	if e.State() != StateTerminated {
		t.Errorf("Expected terminated state, got %s", e.State())
	}
}

func TestIntentsRejectedWithoutSession(t *testing.T) {
	e := New()
	if err := e.SelectOption("q1", 0); err != ErrNoSession {
		t.Errorf("Expected ErrNoSession from SelectOption, got %v", err)
	}
	if err := e.ToggleReview("q1"); err != ErrNoSession {
		t.Errorf("Expected ErrNoSession from ToggleReview, got %v", err)
	}
	if err := e.Navigate(1); err != ErrNoSession {
		t.Errorf("Expected ErrNoSession from Navigate, got %v", err)
	}
	if result := e.Submit(); result != nil {
		t.Error("Submit without a session must return nil")
	}
}

func TestResultSnapshotIsFrozen(t *testing.T) {
	e := startEngine(t, 2, ModeTimedTest)
	if err := e.SelectOption("q1", 0); err != nil {
		t.Fatalf("SelectOption failed: %v", err)
	}

	result := e.Submit()
	if result == nil {
		t.Fatal("Expected a result")
	}
	if result.Subject != models.SubjectPhysics || result.Chapter != "Kinematics" {
		t.Errorf("Result lost session classification: %s / %s", result.Subject, result.Chapter)
	}
	if len(result.Questions) != 2 {
		t.Fatalf("Expected 2 snapshot questions, got %d", len(result.Questions))
	}
	if got, ok := result.UserAnswers["q1"]; !ok || got != 0 {
		t.Errorf("Expected snapshot answer q1=0, got %d (present=%v)", got, ok)
	}
	if e.Session() != nil {
		t.Error("Engine must hold no session reference after emitting the result")
	}
}

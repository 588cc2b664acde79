package engine

import (
	"time"

	"prepmaster/internal/models"
)

// Score applies the fixed marking rule once per question, independent of
// order: +4 for a correct answer, -1 for a wrong one, 0 for a skipped
// question (id absent from answers). The total may be negative.
func Score(questions []models.Question, answers map[string]int) Tally {
	var t Tally
	for _, q := range questions {
		chosen, answered := answers[q.ID]
		if !answered {
			continue
		}
		if chosen == q.CorrectOptionIndex {
			t.Score += 4
			t.CorrectCount++
		} else {
			t.Score--
			t.IncorrectCount++
		}
	}
	return t
}

// buildResult freezes the session into an immutable TestResult. The question
// slice and answer map are copied so the caller can discard the session.
func buildResult(s *Session) *models.TestResult {
	tally := Score(s.Questions, s.Answers)

	questions := make([]models.Question, len(s.Questions))
	copy(questions, s.Questions)

	answers := make(map[string]int, len(s.Answers))
	for id, idx := range s.Answers {
		answers[id] = idx
	}

	return &models.TestResult{
		Score:            tally.Score,
		TotalQuestions:   len(s.Questions),
		CorrectCount:     tally.CorrectCount,
		IncorrectCount:   tally.IncorrectCount,
		TimeTakenSeconds: s.AllocatedSeconds - s.RemainingSeconds,
		Questions:        questions,
		UserAnswers:      answers,
		Subject:          s.Subject,
		Chapter:          s.Chapter,
		CreatedAt:        time.Now(),
	}
}

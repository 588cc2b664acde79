package models

import "time"

// TestResult is the immutable scored outcome of a completed session. It is
// created exactly once, when the session terminates, and carries snapshot
// copies of the question set and captured answers so the session itself can
// be discarded.
type TestResult struct {
	ID               string         `bson:"_id,omitempty" json:"id"`
	UserID           string         `bson:"user_id" json:"userId"`
	Score            int            `bson:"score" json:"score"`
	TotalQuestions   int            `bson:"total_questions" json:"totalQuestions"`
	CorrectCount     int            `bson:"correct_count" json:"correctCount"`
	IncorrectCount   int            `bson:"incorrect_count" json:"incorrectCount"`
	TimeTakenSeconds int            `bson:"time_taken_seconds" json:"timeTakenSeconds"`
	Questions        []Question     `bson:"questions" json:"questions"`
	UserAnswers      map[string]int `bson:"user_answers" json:"userAnswers"`
	Subject          Subject        `bson:"subject" json:"subject"`
	Chapter          string         `bson:"chapter" json:"chapter"`
	CreatedAt        time.Time      `bson:"created_at" json:"createdAt"`
}

// SkippedCount derives the questions that were neither correct nor incorrect.
func (r *TestResult) SkippedCount() int {
	return r.TotalQuestions - r.CorrectCount - r.IncorrectCount
}

// MaxScore is the score a perfect attempt would have earned.
func (r *TestResult) MaxScore() int {
	return r.TotalQuestions * 4
}

// Accuracy returns the percentage of attempted questions answered correctly,
// rounded to the nearest integer. Attempting nothing yields 0.
func (r *TestResult) Accuracy() int {
	attempted := r.CorrectCount + r.IncorrectCount
	if attempted == 0 {
		return 0
	}
	return int(float64(r.CorrectCount)/float64(attempted)*100 + 0.5)
}

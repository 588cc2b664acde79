package engine

import (
	"testing"

	"prepmaster/internal/models"
)

func TestScore(t *testing.T) {
	questions := []models.Question{
		{ID: "q1", Options: []string{"a", "b", "c", "d"}, CorrectOptionIndex: 0},
		{ID: "q2", Options: []string{"a", "b", "c", "d"}, CorrectOptionIndex: 1},
	}

	testCases := []struct {
		name              string
		answers           map[string]int
		expectedScore     int
		expectedCorrect   int
		expectedIncorrect int
	}{
		{"one correct one skipped", map[string]int{"q1": 0}, 4, 1, 0},
		{"both wrong", map[string]int{"q1": 1, "q2": 0}, -2, 0, 2},
		{"both correct", map[string]int{"q1": 0, "q2": 1}, 8, 2, 0},
		{"all skipped", map[string]int{}, 0, 0, 0},
		{"mixed", map[string]int{"q1": 0, "q2": 3}, 3, 1, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tally := Score(questions, tc.answers)
			if tally.Score != tc.expectedScore {
				t.Errorf("Expected score %d, got %d", tc.expectedScore, tally.Score)
			}
			if tally.CorrectCount != tc.expectedCorrect {
				t.Errorf("Expected %d correct, got %d", tc.expectedCorrect, tally.CorrectCount)
			}
			if tally.IncorrectCount != tc.expectedIncorrect {
				t.Errorf("Expected %d incorrect, got %d", tc.expectedIncorrect, tally.IncorrectCount)
			}
		})
	}
}

// score = 4*correct - incorrect and correct+incorrect+skipped = total must
// hold for any answer set, including answers for questions outside the set.
func TestScoreIdentity(t *testing.T) {
	questions := makeQuestions(7)
	answers := map[string]int{
		"q1":    0, // correct (index 0)
		"q2":    1, // correct (index 1)
		"q3":    0, // wrong (correct is 2)
		"q5":    3, // wrong (correct is 0)
		"ghost": 2, // not in the set, must be ignored
	}

	tally := Score(questions, answers)
	if tally.Score != 4*tally.CorrectCount-tally.IncorrectCount {
		t.Errorf("Score identity broken: score=%d correct=%d incorrect=%d",
			tally.Score, tally.CorrectCount, tally.IncorrectCount)
	}
	skipped := len(questions) - tally.CorrectCount - tally.IncorrectCount
	if tally.CorrectCount+tally.IncorrectCount+skipped != len(questions) {
		t.Error("Counts do not partition the question set")
	}
	if skipped != 3 {
		t.Errorf("Expected 3 skipped, got %d", skipped)
	}
}

func TestScoreCanGoNegative(t *testing.T) {
	questions := makeQuestions(4)
	answers := map[string]int{}
	for _, q := range questions {
		answers[q.ID] = (q.CorrectOptionIndex + 1) % models.OptionCount
	}

	tally := Score(questions, answers)
	if tally.Score != -4 {
		t.Errorf("Expected score -4 for four wrong answers, got %d", tally.Score)
	}
}

package models

import "testing"

func TestQuestionValid(t *testing.T) {
	tests := []struct {
		name     string
		question Question
		want     bool
	}{
		{
			name: "well formed",
			question: Question{
				Options:            []string{"a", "b", "c", "d"},
				CorrectOptionIndex: 2,
			},
			want: true,
		},
		{
			name: "too few options",
			question: Question{
				Options:            []string{"a", "b", "c"},
				CorrectOptionIndex: 0,
			},
			want: false,
		},
		{
			name: "too many options",
			question: Question{
				Options:            []string{"a", "b", "c", "d", "e"},
				CorrectOptionIndex: 0,
			},
			want: false,
		},
		{
			name: "correct index out of range",
			question: Question{
				Options:            []string{"a", "b", "c", "d"},
				CorrectOptionIndex: 4,
			},
			want: false,
		},
		{
			name: "negative correct index",
			question: Question{
				Options:            []string{"a", "b", "c", "d"},
				CorrectOptionIndex: -1,
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.question.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResultDerivedCounts(t *testing.T) {
	r := TestResult{
		Score:          7,
		TotalQuestions: 10,
		CorrectCount:   2,
		IncorrectCount: 1,
	}

	if got := r.SkippedCount(); got != 7 {
		t.Errorf("SkippedCount() = %d, want 7", got)
	}
	if got := r.MaxScore(); got != 40 {
		t.Errorf("MaxScore() = %d, want 40", got)
	}
	if got := r.Accuracy(); got != 67 {
		t.Errorf("Accuracy() = %d, want 67", got)
	}
}

func TestResultAccuracyNothingAttempted(t *testing.T) {
	r := TestResult{TotalQuestions: 5}
	if got := r.Accuracy(); got != 0 {
		t.Errorf("Accuracy() = %d, want 0", got)
	}
	if got := r.SkippedCount(); got != 5 {
		t.Errorf("SkippedCount() = %d, want 5", got)
	}
}

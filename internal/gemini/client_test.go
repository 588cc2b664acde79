package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"prepmaster/internal/models"
)

// modelServer wraps a question payload in the generateContent response
// envelope the client expects.
func modelServer(t *testing.T, inner string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		envelope := map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": inner}}}},
			},
		}
		json.NewEncoder(w).Encode(envelope)
	}))
}

func testClient(url string) *Client {
	c := NewClient(url, "test-key", "gemini-2.5-flash")
	return c
}

func TestGenerateQuestionsSuccess(t *testing.T) {
	payload := `[{"text":"What is 2+2?","options":["3","4","5","6"],"correctOptionIndex":1,"explanation":"### Solution\nCount.","year":"JEE Main 2023","videoQuery":"basic arithmetic"}]`
	srv := modelServer(t, payload, http.StatusOK)
	defer srv.Close()

	qs := testClient(srv.URL).GenerateQuestions(context.Background(), models.SubjectMaths, "Arithmetic", models.DifficultyEasy, 1, QuestionModePractice)
	if len(qs) != 1 {
		t.Fatalf("Expected 1 question, got %d", len(qs))
	}
	q := qs[0]
	if q.Fallback {
		t.Error("Successful generation must not be flagged fallback")
	}
	if q.Text != "What is 2+2?" || q.CorrectOptionIndex != 1 {
		t.Errorf("Question not converted faithfully: %+v", q)
	}
	if q.Subject != models.SubjectMaths || q.Chapter != "Arithmetic" || q.Difficulty != models.DifficultyEasy {
		t.Errorf("Classification metadata not applied: %+v", q)
	}
	if q.ID == "" {
		t.Error("Generated question must be assigned an id")
	}
}

func TestGenerateQuestionsFallbackPaths(t *testing.T) {
	testCases := []struct {
		name  string
		inner string
		// status applies to the envelope response
		status int
	}{
		{"server error", "", http.StatusInternalServerError},
		{"unauthorized", "", http.StatusForbidden},
		{"payload not json", "the model rambled instead of emitting JSON", http.StatusOK},
		{"empty array", "[]", http.StatusOK},
		{"wrong option count", `[{"text":"q","options":["a","b","c"],"correctOptionIndex":0}]`, http.StatusOK},
		{"index out of range", `[{"text":"q","options":["a","b","c","d"],"correctOptionIndex":4}]`, http.StatusOK},
		{"negative index", `[{"text":"q","options":["a","b","c","d"],"correctOptionIndex":-1}]`, http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := modelServer(t, tc.inner, tc.status)
			defer srv.Close()

			qs := testClient(srv.URL).GenerateQuestions(context.Background(), models.SubjectPhysics, "Laws of Motion", models.DifficultyMedium, 5, QuestionModePractice)
			if len(qs) != 1 {
				t.Fatalf("Expected exactly one fallback question, got %d", len(qs))
			}
			if !qs[0].Fallback {
				t.Error("Expected the fallback flag to be set")
			}
			if qs[0].ID != "fallback-1" {
				t.Errorf("Expected deterministic fallback id, got %q", qs[0].ID)
			}
			if !qs[0].Valid() {
				t.Error("Fallback question must satisfy the question invariants")
			}
			if qs[0].Subject != models.SubjectPhysics || qs[0].Chapter != "Laws of Motion" {
				t.Errorf("Fallback must carry the requested classification: %+v", qs[0])
			}
		})
	}
}

func TestGenerateQuestionsUnreachableServer(t *testing.T) {
	srv := modelServer(t, "", http.StatusOK)
	srv.Close() // connection refused from here on

	qs := testClient(srv.URL).GenerateQuestions(context.Background(), models.SubjectChemistry, "Mole Concept", models.DifficultyHard, 10, QuestionModePYQ)
	if len(qs) != 1 || !qs[0].Fallback {
		t.Fatalf("Expected fallback question for unreachable provider, got %+v", qs)
	}
}

func TestGenerateQuestionsMissingAPIKey(t *testing.T) {
	c := NewClient("http://localhost:0", "", "gemini-2.5-flash")
	qs := c.GenerateQuestions(context.Background(), models.SubjectPhysics, "Optics", models.DifficultyEasy, 5, QuestionModeOlympiad)
	if len(qs) != 1 || !qs[0].Fallback {
		t.Fatalf("Expected fallback question without credential, got %+v", qs)
	}
}

func TestGenerateAnalysisFallback(t *testing.T) {
	srv := modelServer(t, "", http.StatusBadGateway)
	defer srv.Close()

	analysis := testClient(srv.URL).GenerateAnalysis(context.Background(), 12, 40, models.SubjectPhysics, []string{"Kinematics"})
	if analysis.Summary != FallbackAnalysis().Summary {
		t.Errorf("Expected fallback summary, got %q", analysis.Summary)
	}
	if len(analysis.Tips) != 3 {
		t.Errorf("Expected 3 fallback tips, got %d", len(analysis.Tips))
	}
}

func TestGenerateAnalysisSuccess(t *testing.T) {
	srv := modelServer(t, `{"summary":"Solid attempt.","tips":["Revise units","Time yourself"]}`, http.StatusOK)
	defer srv.Close()

	analysis := testClient(srv.URL).GenerateAnalysis(context.Background(), 30, 40, models.SubjectMaths, []string{"Calculus"})
	if analysis.Summary != "Solid attempt." {
		t.Errorf("Expected model summary, got %q", analysis.Summary)
	}
	if len(analysis.Tips) != 2 {
		t.Errorf("Expected 2 tips, got %d", len(analysis.Tips))
	}
}

func TestGenerateNotesFallback(t *testing.T) {
	srv := modelServer(t, "", http.StatusInternalServerError)
	defer srv.Close()

	notes := testClient(srv.URL).GenerateNotes(context.Background(), models.SubjectChemistry, "Thermodynamics")
	if notes.Content != FallbackNotes().Content {
		t.Errorf("Expected fallback notes, got %q", notes.Content)
	}
}

func TestGenerateNotesSuccess(t *testing.T) {
	srv := modelServer(t, "<h3>Thermodynamics</h3><ul><li>First law</li></ul>", http.StatusOK)
	defer srv.Close()

	notes := testClient(srv.URL).GenerateNotes(context.Background(), models.SubjectChemistry, "Thermodynamics")
	if notes.Content == FallbackNotes().Content {
		t.Error("Expected generated notes, got the fallback")
	}
}

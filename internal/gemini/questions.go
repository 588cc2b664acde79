package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"prepmaster/internal/models"
)

// QuestionMode selects the prompt family for question generation.
type QuestionMode string

const (
	QuestionModePractice QuestionMode = "practice"
	QuestionModePYQ      QuestionMode = "pyq"
	QuestionModeOlympiad QuestionMode = "olympiad"
)

// generatedQuestion is the strict schema expected from the model. It is
// validated and converted to a typed Question at this boundary; untyped data
// never travels further in.
type generatedQuestion struct {
	Text               string   `json:"text"`
	Options            []string `json:"options"`
	CorrectOptionIndex int      `json:"correctOptionIndex"`
	Explanation        string   `json:"explanation"`
	Year               string   `json:"year"`
	VideoQuery         string   `json:"videoQuery"`
}

// GenerateQuestions asks the model for count questions on the given chapter.
// On any failure — network, malformed payload, schema mismatch, missing
// credential — it returns the deterministic single-question fallback set
// instead of an error, so the test flow can always continue.
func (c *Client) GenerateQuestions(ctx context.Context, subject models.Subject, chapter string, difficulty models.Difficulty, count int, mode QuestionMode) []models.Question {
	prompt := questionPrompt(subject, chapter, difficulty, count, mode)

	raw, err := c.generateText(ctx, prompt, true)
	if err != nil {
		log.Printf("question generation failed, serving fallback: %v", err)
		return FallbackQuestions(subject, chapter, difficulty)
	}

	var generated []generatedQuestion
	if err := json.Unmarshal([]byte(raw), &generated); err != nil {
		log.Printf("question payload malformed, serving fallback: %v", err)
		return FallbackQuestions(subject, chapter, difficulty)
	}
	if len(generated) == 0 {
		log.Printf("question payload empty, serving fallback")
		return FallbackQuestions(subject, chapter, difficulty)
	}

	now := time.Now().UnixNano()
	questions := make([]models.Question, 0, len(generated))
	for i, g := range generated {
		q := models.Question{
			ID:                 fmt.Sprintf("gen-%d-%d", now, i),
			Text:               g.Text,
			Options:            g.Options,
			CorrectOptionIndex: g.CorrectOptionIndex,
			Explanation:        g.Explanation,
			Subject:            subject,
			Chapter:            chapter,
			Difficulty:         difficulty,
			Year:               g.Year,
			VideoQuery:         g.VideoQuery,
		}
		if q.Year == "" && mode != QuestionModePractice {
			q.Year = "Previous Year"
		}
		if q.VideoQuery == "" {
			q.VideoQuery = fmt.Sprintf("%s %s %s solution", chapter, subject, mode)
		}
		if !q.Valid() {
			log.Printf("generated question %d failed schema validation, serving fallback", i)
			return FallbackQuestions(subject, chapter, difficulty)
		}
		questions = append(questions, q)
	}
	return questions
}

func questionPrompt(subject models.Subject, chapter string, difficulty models.Difficulty, count int, mode QuestionMode) string {
	if mode == QuestionModePYQ || mode == QuestionModeOlympiad {
		examFocus := "previous JEE Main/Advanced or NEET exams from the last 20 years"
		difficultyText := string(difficulty)
		if mode == QuestionModeOlympiad {
			examFocus = "prestigious Olympiads (NSEP, INPhO, RMO, INChO, NSEC) from the last 10 years"
			difficultyText = "Very Hard/Olympiad Level"
		}
		return fmt.Sprintf(`Generate %d authentic Past Year Questions (PYQs) for %s - %s.
Source material: %s.
Difficulty: %s.
Include the specific exam year source (e.g., "INPhO 2019", "JEE Adv 2020") in the 'year' field.

CRITICAL REQUIREMENT for 'explanation':
The explanation MUST use Markdown headers exactly as follows:
### Key Concept
(Briefly state the physical/chemical concept involved)

### Formulas & Rules
(List specific formulas or rules required)

### Step-by-Step Solution
(Show the full derivation or logical steps to reach the answer)

CRITICAL REQUIREMENT for 'videoQuery':
Provide a specific YouTube search string to find a video solution for this exact concept or question.

Output a JSON array of objects with: text, options (array of 4 strings), correctOptionIndex (0-3 integer), explanation (string), year (string), videoQuery (string).`,
			count, subject, chapter, examFocus, difficultyText)
	}

	return fmt.Sprintf(`Generate %d multiple choice questions for a %s level student preparing for competitive exams.
Subject: %s.
Chapter: %s.

CRITICAL REQUIREMENT for 'explanation':
The explanation MUST use Markdown headers exactly as follows:
### Key Concept
### Formulas
### Step-by-Step Solution

Output a JSON array of objects with: text, options (array of 4 strings), correctOptionIndex (0-3 integer), explanation (string), videoQuery (string).`,
		count, difficulty, subject, chapter)
}

// FallbackQuestions is the deterministic substitute served whenever real
// generation fails.
func FallbackQuestions(subject models.Subject, chapter string, difficulty models.Difficulty) []models.Question {
	return []models.Question{
		{
			ID:                 "fallback-1",
			Text:               "(API Error - using fallback) What is the unit of Force?",
			Options:            []string{"Newton", "Joule", "Watt", "Pascal"},
			CorrectOptionIndex: 0,
			Explanation:        "### Key Concept\nSI Units\n\n### Formulas\nF = ma\n\n### Step-by-Step Solution\nNewton is the SI unit of force defined as kg·m/s².",
			Subject:            subject,
			Chapter:            chapter,
			Difficulty:         difficulty,
			Year:               "Sample",
			VideoQuery:         "Force unit physics",
			Fallback:           true,
		},
	}
}

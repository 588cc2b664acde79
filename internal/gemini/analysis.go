package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"prepmaster/internal/models"
)

// Analysis is the AI-written performance summary attached to a result.
type Analysis struct {
	Summary string   `json:"summary"`
	Tips    []string `json:"tips"`
}

// GenerateAnalysis summarizes a scored attempt. Failure returns the fixed
// encouragement payload, never an error.
func (c *Client) GenerateAnalysis(ctx context.Context, score, maxScore int, subject models.Subject, weakTopics []string) Analysis {
	prompt := fmt.Sprintf(`A student scored %d/%d in a %s test. Their potential weak areas might be related to: %s.
Give a 2-sentence encouraging summary and 3 specific actionable tips to improve.
Return a JSON object with: summary (string), tips (array of strings).`,
		score, maxScore, subject, strings.Join(weakTopics, ", "))

	raw, err := c.generateText(ctx, prompt, true)
	if err != nil {
		log.Printf("analysis generation failed, serving fallback: %v", err)
		return FallbackAnalysis()
	}

	var analysis Analysis
	if err := json.Unmarshal([]byte(raw), &analysis); err != nil || analysis.Summary == "" {
		log.Printf("analysis payload malformed, serving fallback: %v", err)
		return FallbackAnalysis()
	}
	return analysis
}

func FallbackAnalysis() Analysis {
	return Analysis{
		Summary: "Great effort! Keep practicing to improve your accuracy.",
		Tips: []string{
			"Review the chapter formulas.",
			"Practice more numericals.",
			"Analyze your mistakes.",
		},
	}
}

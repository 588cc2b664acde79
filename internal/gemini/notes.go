package gemini

import (
	"context"
	"fmt"
	"log"

	"prepmaster/internal/models"
)

// Notes carries generated chapter study notes as a restricted HTML subset
// (h3 headings, lists, strong emphasis, formula divs).
type Notes struct {
	Content string `json:"content"`
}

// GenerateNotes creates study notes for a chapter. Failure returns the fixed
// placeholder content, never an error.
func (c *Client) GenerateNotes(ctx context.Context, subject models.Subject, chapter string) Notes {
	prompt := fmt.Sprintf(`Create comprehensive study notes for %s chapter: "%s".
Include:
1. Key Concepts & Definitions
2. Important Formulas (formatted clearly)
3. Key Tricks or Mnemonics for JEE/NEET/Olympiads
4. Two Solved Examples (Olympiad Level)

Format the output as clean HTML (use <h3> for headings, <ul>/<li> for lists, <strong> for emphasis, <div class="formula"> for formulas). Do not include <html> or <body> tags, just the content div.`,
		subject, chapter)

	text, err := c.generateText(ctx, prompt, false)
	if err != nil || text == "" {
		log.Printf("notes generation failed, serving fallback: %v", err)
		return FallbackNotes()
	}
	return Notes{Content: text}
}

func FallbackNotes() Notes {
	return Notes{Content: "<p>Could not generate notes at this time. Please try again.</p>"}
}

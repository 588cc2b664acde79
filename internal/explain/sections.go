// Package explain splits a generated explanation string into its named
// sections. Generated explanations use markdown-style "###" markers; the
// split is best effort and malformed input degrades to a single solution
// section instead of failing.
package explain

import (
	"regexp"
	"strings"
)

type Sections struct {
	Concept  string `json:"concept"`
	Formulas string `json:"formulas"`
	Solution string `json:"solution"`
}

var (
	conceptRe  = regexp.MustCompile(`(?is)###\s*Key Concept\s*([\s\S]*?)(?:###|$)`)
	formulasRe = regexp.MustCompile(`(?is)###\s*Formulas?[^\n]*\s*([\s\S]*?)(?:###|$)`)
	solutionRe = regexp.MustCompile(`(?is)###\s*[^\n]*Solution\s*([\s\S]*?)(?:###|$)`)
)

// Parse extracts the Key Concept, Formulas and Solution sections. Each
// section runs from its marker to the next marker or end of string. Missing
// sections stay empty; if no marker matches at all the whole text is treated
// as the solution.
func Parse(raw string) Sections {
	var s Sections
	if m := conceptRe.FindStringSubmatch(raw); m != nil {
		s.Concept = strings.TrimSpace(m[1])
	}
	if m := formulasRe.FindStringSubmatch(raw); m != nil {
		s.Formulas = strings.TrimSpace(m[1])
	}
	if m := solutionRe.FindStringSubmatch(raw); m != nil {
		s.Solution = strings.TrimSpace(m[1])
	}
	if s.Concept == "" && s.Formulas == "" && s.Solution == "" {
		s.Solution = raw
	}
	return s
}

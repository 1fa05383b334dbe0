package profile

import (
	"strings"
	"unicode/utf8"
)

// maxPromptChars caps how much resume text is handed to a prompt.
const maxPromptChars = 8000

// Identity is the candidate contact block that always overrides whatever
// the model writes into a generated resume.
type Identity struct {
	Name     string
	Email    string
	Phone    string
	LinkedIn string
	Location string
}

// Profile combines the candidate identity with the base resume text that
// grounds content synthesis.
type Profile struct {
	Identity
	ResumeText string
	// Source is the file the resume text was read from.
	Source string
}

// Compact returns the resume text trimmed and truncated to the prompt
// budget, cutting on a rune boundary.
func (p Profile) Compact() string {
	text := strings.TrimSpace(p.ResumeText)
	if len(text) <= maxPromptChars {
		return text
	}
	cut := maxPromptChars
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

package entity

// WorkbookItem is a multiple-choice quiz question from a content pack.
type WorkbookItem struct {
	ID            string   `json:"id"`
	Question      string   `json:"question,omitempty"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer,omitempty"`
	// Answer is the legacy name of CorrectAnswer kept for older packs.
	Answer string `json:"answer,omitempty"`
}

// Correct returns the canonical correct choice, falling back to the legacy field.
func (w WorkbookItem) Correct() string {
	if w.CorrectAnswer != "" {
		return w.CorrectAnswer
	}
	return w.Answer
}

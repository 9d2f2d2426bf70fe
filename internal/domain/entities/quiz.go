// Package entities contains domain entities used across the application.
package entities

// Quiz represents a single question unit served by the quiz API.
// Options are kept in display order; Answer equals exactly one of them.
type Quiz struct {
	Genre       string   `json:"genre"`       // category label shown above the question
	Question    string   `json:"question"`    // question text
	Options     []string `json:"options"`     // answer choices in display order
	Answer      string   `json:"answer"`      // correct option, compared by exact string equality
	Explanation string   `json:"explanation"` // shown once the question is answered
}

// IsCorrect reports whether the selected option is the correct answer.
func (q Quiz) IsCorrect(selected string) bool {
	return selected == q.Answer
}

package entities

// Difficulty identifies a quiz level. Any value is accepted; unknown values
// only affect the displayed label.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
)

// UnknownDifficultyLabel is shown for difficulties missing from the label table.
const UnknownDifficultyLabel = "Unknown"

var difficultyLabels = map[Difficulty]string{
	DifficultyEasy:   "かんたん",
	DifficultyNormal: "ふつう",
	DifficultyHard:   "むずかしい",
}

// Difficulties returns the known difficulties in menu order.
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyNormal, DifficultyHard}
}

// Label returns the human-readable label of the difficulty.
func (d Difficulty) Label() string {
	if label, ok := difficultyLabels[d]; ok {
		return label
	}
	return UnknownDifficultyLabel
}

// IsKnown reports whether the difficulty has a label.
func (d Difficulty) IsKnown() bool {
	_, ok := difficultyLabels[d]
	return ok
}

func (d Difficulty) String() string {
	return string(d)
}

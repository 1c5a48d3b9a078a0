package entities

// Difficulty is a closed enumeration of grading tiers. Each tier maps
// to a fixed passing score.
type Difficulty int

const (
	DifficultyBeginner     Difficulty = 1
	DifficultyIntermediate Difficulty = 2
	DifficultyAdvanced     Difficulty = 3
)

// PassingScore returns the minimum score required to pass at this tier.
func (d Difficulty) PassingScore() int {
	switch d {
	case DifficultyBeginner:
		return 50
	case DifficultyAdvanced:
		return 90
	default:
		return 70
	}
}

// Normalize maps unknown tier values to the intermediate default.
func (d Difficulty) Normalize() Difficulty {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return d
	}
	return DifficultyIntermediate
}

func (d Difficulty) String() string {
	switch d {
	case DifficultyBeginner:
		return "beginner"
	case DifficultyAdvanced:
		return "advanced"
	default:
		return "intermediate"
	}
}

// GradingResult is the outcome of grading one free-text answer against
// a keyword set.
type GradingResult struct {
	IsCorrect       bool       `json:"is_correct"`
	Score           int        `json:"score"` // 0-100
	MatchedKeywords []string   `json:"matched_keywords"`
	MissedKeywords  []string   `json:"missed_keywords"`
	MatchedCount    int        `json:"matched_count"`
	TotalKeywords   int        `json:"total_keywords"`
	PassingScore    int        `json:"passing_score"`
	Difficulty      Difficulty `json:"difficulty"`
	Message         string     `json:"message"`
}

package models

// QuizQuestion is the public view of a quiz question, without the answer
type QuizQuestion struct {
	Index    int      `json:"index"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// QuizSubmitRequest represents the answers given to a quiz.
// Answers[i] is the option chosen for question i, an empty string means skipped.
type QuizSubmitRequest struct {
	Locale  string   `json:"locale" validate:"required"`
	Answers []string `json:"answers" validate:"required"`
}

// QuizAnswerReview reports the outcome of one answered question
type QuizAnswerReview struct {
	Index         int    `json:"index"`
	Answer        string `json:"answer"`
	CorrectAnswer string `json:"correctAnswer"`
	Correct       bool   `json:"correct"`
	Explanation   string `json:"explanation,omitempty"`
}

// QuizRating is the verdict shown at the end of a quiz
type QuizRating string

const (
	QuizRatingGood   QuizRating = "good"   // 80% and above
	QuizRatingMedium QuizRating = "medium" // 50% and above
	QuizRatingBad    QuizRating = "bad"
)

// RatingFor returns the verdict of a percentage
func RatingFor(percentage float64) QuizRating {
	switch {
	case percentage >= 80:
		return QuizRatingGood
	case percentage >= 50:
		return QuizRatingMedium
	default:
		return QuizRatingBad
	}
}

// QuizOutcome is the graded result of a quiz submission
type QuizOutcome struct {
	Result  QuizResult         `json:"result"`
	Rating  QuizRating         `json:"rating"`
	Reviews []QuizAnswerReview `json:"reviews"`
}

package models

import "time"

// MaxQuizResults is the number of most recent quiz results kept in the history
const MaxQuizResults = 50

// QuizResult represents one completed quiz attempt
type QuizResult struct {
	Date           time.Time `json:"date"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"totalQuestions"`
	Percentage     float64   `json:"percentage"` // stored as provided, never recomputed
}

// NewQuizResult builds a quiz result and computes its percentage.
// A quiz with no questions yields a zero percentage.
func NewQuizResult(score, totalQuestions int, at time.Time) QuizResult {
	var percentage float64
	if totalQuestions > 0 {
		percentage = float64(score) / float64(totalQuestions) * 100
	}
	return QuizResult{
		Date:           at,
		Score:          score,
		TotalQuestions: totalQuestions,
		Percentage:     percentage,
	}
}

// StudyProgress is the per-device study progress record
type StudyProgress struct {
	SectionsVisited []string             `json:"sectionsVisited"`
	LastVisit       map[string]time.Time `json:"lastVisit"`
	TimeSpent       map[string]float64   `json:"timeSpent"` // minutes per section
	QuizResults     []QuizResult         `json:"quizResults"`
}

// NewStudyProgress returns an empty progress record
func NewStudyProgress() *StudyProgress {
	return &StudyProgress{
		SectionsVisited: []string{},
		LastVisit:       map[string]time.Time{},
		TimeSpent:       map[string]float64{},
		QuizResults:     []QuizResult{},
	}
}

// Normalize replaces nil collections with empty ones so that a record
// persisted by an older client still behaves like a default record.
func (p *StudyProgress) Normalize() {
	if p.SectionsVisited == nil {
		p.SectionsVisited = []string{}
	}
	if p.LastVisit == nil {
		p.LastVisit = map[string]time.Time{}
	}
	if p.TimeSpent == nil {
		p.TimeSpent = map[string]float64{}
	}
	if p.QuizResults == nil {
		p.QuizResults = []QuizResult{}
	}
}

// ProgressSummary represents aggregated statistics shown on the progress page
type ProgressSummary struct {
	SectionsVisited int          `json:"sectionsVisited"`
	TotalTimeSpent  float64      `json:"totalTimeSpent"`
	QuizzesTaken    int          `json:"quizzesTaken"`
	AverageScore    float64      `json:"averageScore"`
	BestScore       float64      `json:"bestScore"`
	RecentResults   []QuizResult `json:"recentResults"` // newest first
}

// VisitRequest represents a request to record a section visit.
// Either Section or Path must be provided.
type VisitRequest struct {
	Section string `json:"section,omitempty"`
	Path    string `json:"path,omitempty"`
}

// TimeSpentRequest represents a request to add study time to a section
type TimeSpentRequest struct {
	Section string  `json:"section" validate:"required"`
	Minutes float64 `json:"minutes" validate:"gte=0"`
}

// QuizResultRequest represents a request to record a quiz result
type QuizResultRequest struct {
	Score          int `json:"score" validate:"gte=0"`
	TotalQuestions int `json:"totalQuestions" validate:"gt=0,gtefield=Score"`
}
